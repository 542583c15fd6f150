package entities

// SymptomCategory is the coarse bucket a crop symptom falls into.
// Recommendations are deliberately conservative; the service never
// emits dosages or prescriptive chemical guidance.
type SymptomCategory string

const (
	SymptomLeafSpots  SymptomCategory = "leaf_spots"
	SymptomYellowing  SymptomCategory = "yellowing"
	SymptomWilting    SymptomCategory = "wilting"
	SymptomPestDamage SymptomCategory = "pest_damage"
	SymptomGeneral    SymptomCategory = "general"
)

// AdvisoryRequest asks for a treatment recommendation.
type AdvisoryRequest struct {
	Crop    string `json:"crop"`
	Symptom string `json:"symptom"`
	ImageID string `json:"image_id,omitempty"`
	UserID  string `json:"user_id,omitempty"`
}

// AdvisoryMeta carries the request context back to the client.
type AdvisoryMeta struct {
	Crop            string          `json:"crop"`
	SymptomCategory SymptomCategory `json:"symptom_category"`
	ImageID         string          `json:"image_id,omitempty"`
}

// Advisory is a conservative IPM recommendation for a crop symptom.
type Advisory struct {
	Recommendation string       `json:"recommendation"`
	Confidence     float64      `json:"confidence"`
	Sources        []Source     `json:"sources"`
	NextSteps      []string     `json:"next_steps"`
	SafetyNotice   string       `json:"safety_notice"`
	Meta           AdvisoryMeta `json:"meta"`
}
