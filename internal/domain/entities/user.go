package entities

import "time"

// User is a registered farmer profile.
type User struct {
	ID          string    `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Phone       string    `json:"phone" db:"phone"`
	State       string    `json:"state" db:"state"`
	District    string    `json:"district" db:"district"`
	Village     string    `json:"village" db:"village"`
	Crops       []string  `json:"crops" db:"crops"`
	LandHolding float64   `json:"land_holding" db:"land_holding"`
	Lang        string    `json:"lang" db:"lang"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}
