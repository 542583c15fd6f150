package entities

import "time"

// Scheme is a government support program with applicability rules.
type Scheme struct {
	Code             string    `json:"code" db:"code"`
	Name             string    `json:"name" db:"name"`
	Description      string    `json:"description" db:"description"`
	URL              string    `json:"url" db:"url"`
	ApplicableStates []string  `json:"applicable_states" db:"applicable_states"`
	ApplicableCrops  []string  `json:"applicable_crops" db:"applicable_crops"`
	CreatedAt        time.Time `json:"created_at" db:"created_at"`
}

// SchemeMatch is one matched scheme enriched with its requirements.
type SchemeMatch struct {
	Scheme       string   `json:"scheme"`
	Code         string   `json:"code"`
	Description  string   `json:"description"`
	URL          string   `json:"url"`
	Eligibility  []string `json:"eligibility"`
	RequiredDocs []string `json:"required_docs"`
}

// SchemeMatchResult is the response shape for a scheme-matching request.
type SchemeMatchResult struct {
	Matches    []SchemeMatch `json:"matches"`
	Confidence float64       `json:"confidence"`
	State      string        `json:"state"`
	Crop       string        `json:"crop"`
	Profile    *User         `json:"user_profile,omitempty"`
}
