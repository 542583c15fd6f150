package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/farmguru/backend/internal/domain/entities"
)

func TestCategorizeSymptom(t *testing.T) {
	cases := []struct {
		symptom string
		want    entities.SymptomCategory
	}{
		{"brown spots on leaves", entities.SymptomLeafSpots},
		{"early blight", entities.SymptomLeafSpots},
		{"rust patches", entities.SymptomLeafSpots},
		{"leaves turning YELLOW", entities.SymptomYellowing},
		{"chlorosis visible", entities.SymptomYellowing},
		{"plants wilting fast", entities.SymptomWilting},
		{"drooping stems", entities.SymptomWilting},
		{"aphid colonies", entities.SymptomPestDamage},
		{"caterpillar holes", entities.SymptomPestDamage},
		{"plant looks weak", entities.SymptomGeneral},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, CategorizeSymptom(tc.symptom), "symptom: %s", tc.symptom)
	}
}

func TestRecommendPerCategory(t *testing.T) {
	svc := NewAdvisoryService(nil, nil)

	cases := []struct {
		symptom    string
		confidence float64
	}{
		{"leaf spots", 0.35},
		{"yellowing leaves", 0.40},
		{"wilting", 0.45},
		{"pest holes", 0.50},
		{"looks unwell", 0.30},
	}

	for _, tc := range cases {
		advisory, err := svc.Recommend(context.Background(), &entities.AdvisoryRequest{
			Crop:    "tomato",
			Symptom: tc.symptom,
		})
		require.NoError(t, err)
		assert.Equal(t, tc.confidence, advisory.Confidence, "symptom: %s", tc.symptom)
		assert.NotEmpty(t, advisory.Recommendation)
		assert.NotEmpty(t, advisory.NextSteps)
		assert.Equal(t, safetyNotice, advisory.SafetyNotice)
		assert.Equal(t, "tomato", advisory.Meta.Crop)
	}
}

func TestRecommendNeverPrescribesDosage(t *testing.T) {
	svc := NewAdvisoryService(nil, nil)

	advisory, err := svc.Recommend(context.Background(), &entities.AdvisoryRequest{
		Crop:    "cotton",
		Symptom: "pest damage everywhere",
	})
	require.NoError(t, err)
	assert.NotContains(t, advisory.Recommendation, "ml per")
	assert.NotContains(t, advisory.Recommendation, "dosage:")
	assert.True(t, advisory.Confidence < entities.EscalationThreshold,
		"advisories stay below the escalation threshold")
}

func TestRecommendAttachesSources(t *testing.T) {
	searchRepo := &stubSearchRepo{docs: []entities.RetrievedDoc{
		{Document: entities.Document{ID: "d1", Title: "Blight guide", Content: "Remove infected leaves."}, Similarity: 0.9},
	}}
	svc := NewAdvisoryService(searchRepo, nil)

	advisory, err := svc.Recommend(context.Background(), &entities.AdvisoryRequest{
		Crop:    "potato",
		Symptom: "blight",
	})
	require.NoError(t, err)
	require.Len(t, advisory.Sources, 1)
	assert.Equal(t, "Blight guide", advisory.Sources[0].Title)
}

func TestRecommendValidation(t *testing.T) {
	svc := NewAdvisoryService(nil, nil)

	_, err := svc.Recommend(context.Background(), &entities.AdvisoryRequest{Crop: "", Symptom: "spots"})
	assert.Error(t, err)

	_, err = svc.Recommend(context.Background(), &entities.AdvisoryRequest{Crop: "tomato", Symptom: ""})
	assert.Error(t, err)
}
