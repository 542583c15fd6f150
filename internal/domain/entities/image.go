package entities

import "time"

// MaxImageSizeBytes is the upload limit for crop images.
const MaxImageSizeBytes = 5 * 1024 * 1024

// CropImage is an uploaded crop photo with its stub analysis.
type CropImage struct {
	ID          string    `json:"image_id" db:"id"`
	UserID      string    `json:"user_id,omitempty" db:"user_id"`
	Filename    string    `json:"filename" db:"filename"`
	StoragePath string    `json:"url" db:"storage_path"`
	Label       string    `json:"label" db:"label"`
	Confidence  float64   `json:"confidence" db:"confidence"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}
