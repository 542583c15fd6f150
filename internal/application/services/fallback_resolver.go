package services

import (
	"strings"

	"github.com/farmguru/backend/internal/domain/entities"
)

// Fallback keyword vocabularies. The pest rule also fires for any
// submission carrying an image, whatever its text says.
var (
	fallbackPestKeywords       = []string{"pest", "insect", "bug"}
	fallbackFertilizerKeywords = []string{"fertilizer", "nutrient", "nitrogen"}
)

// ResolveFallback produces a canned result when remote synthesis is
// unavailable. It is pure: the same (text, hasImage) pair always yields
// an identical result, and every submission resolves to something.
func ResolveFallback(text string, hasImage bool, agent entities.Agent) *entities.QueryResult {
	lower := strings.ToLower(text)

	var result entities.QueryResult
	switch {
	case hasImage || containsAny(lower, fallbackPestKeywords):
		result = pestFallback()
	case containsAny(lower, fallbackFertilizerKeywords):
		result = fertilizerFallback()
	default:
		result = irrigationFallback()
	}

	result.Meta = entities.QueryMeta{Agent: agent, Fallback: true}
	return &result
}

func pestFallback() entities.QueryResult {
	return entities.QueryResult{
		Answer:     "Likely aphid infestation. Inspect the underside of leaves and apply neem-based treatment following IPM practices.",
		Confidence: 0.65,
		Actions: []string{
			"Inspect underside of leaves for clusters",
			"Spray neem oil solution in the evening",
			"Consult your local KVK if spread continues",
		},
		Sources: []entities.Source{
			{
				Title:   "Integrated Pest Management Basics",
				URL:     "https://farmer.gov.in/ipm",
				Snippet: "IPM combines monitoring, biological controls and targeted treatment to manage pest outbreaks.",
			},
		},
	}
}

func fertilizerFallback() entities.QueryResult {
	return entities.QueryResult{
		Answer:     "Conduct a soil test before applying fertilizer, then use a balanced NPK dose matched to the test report.",
		Confidence: 0.78,
		Actions: []string{
			"Get a soil test from the nearest lab",
			"Apply balanced fertilizer in the morning",
			"Avoid application just before heavy rain",
		},
		Sources: []entities.Source{
			{
				Title:   "Soil Health and Balanced Fertilization",
				URL:     "https://soilhealth.dac.gov.in",
				Snippet: "Soil testing identifies nutrient deficiencies so fertilizer can be applied only where needed.",
			},
		},
	}
}

func irrigationFallback() entities.QueryResult {
	return entities.QueryResult{
		Answer:     "Check soil moisture at 2-3 inch depth before watering. Irrigate early morning and watch the weather forecast.",
		Confidence: 0.85,
		Actions: []string{
			"Check soil moisture at root depth",
			"Water early morning to reduce evaporation",
			"Skip irrigation if rain is forecast",
		},
		Sources: []entities.Source{
			{
				Title:   "Efficient Irrigation Scheduling",
				URL:     "https://farmer.gov.in/irrigation",
				Snippet: "Irrigation timed to soil moisture and weather cuts water use without hurting yield.",
			},
		},
	}
}
