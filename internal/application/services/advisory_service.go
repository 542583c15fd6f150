package services

import (
	"context"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/farmguru/backend/internal/domain/entities"
	"github.com/farmguru/backend/internal/domain/repositories"
	apperrors "github.com/farmguru/backend/pkg/errors"
)

// safetyNotice is attached to every advisory. The service never emits
// dosages or prescriptive chemical guidance.
const safetyNotice = "IMPORTANT: This is general guidance only. Always consult local agricultural experts before applying any treatments."

// ipmRecommendations are the conservative recommendations per symptom
// category. Confidence is deliberately low across the board so every
// advisory surfaces the escalation affordance.
var ipmRecommendations = map[entities.SymptomCategory]struct {
	Recommendation string
	Confidence     float64
	NextSteps      []string
}{
	entities.SymptomLeafSpots: {
		Recommendation: "Suspected foliar fungal infection. Follow IPM: remove severely affected leaves, use neem-based biopesticide or consult KVK for certified fungicide. Do not apply chemicals without expert verification.",
		Confidence:     0.35,
		NextSteps:      []string{"Remove affected plant parts", "Use neem oil spray", "Consult local KVK expert"},
	},
	entities.SymptomYellowing: {
		Recommendation: "Possible nutrient deficiency or root problems. Check soil pH and drainage. Apply organic compost and consult agricultural expert for soil testing.",
		Confidence:     0.40,
		NextSteps:      []string{"Check soil moisture", "Test soil pH", "Apply organic matter", "Consult extension officer"},
	},
	entities.SymptomWilting: {
		Recommendation: "Possible water stress or root rot. Check irrigation schedule and soil drainage. Avoid overwatering. Consult expert if symptoms persist.",
		Confidence:     0.45,
		NextSteps:      []string{"Check soil moisture", "Improve drainage", "Adjust irrigation", "Monitor plant recovery"},
	},
	entities.SymptomPestDamage: {
		Recommendation: "Visible pest damage detected. Use IPM approach: manual removal of pests, neem oil application, and beneficial insect conservation. Consult KVK for pest identification.",
		Confidence:     0.50,
		NextSteps:      []string{"Identify pest species", "Manual pest removal", "Use sticky traps", "Consult pest management expert"},
	},
	entities.SymptomGeneral: {
		Recommendation: "Plant health issue detected. Recommend comprehensive crop assessment by local agricultural extension officer. Follow integrated crop management practices.",
		Confidence:     0.30,
		NextSteps:      []string{"Contact local KVK", "Document symptoms", "Get professional diagnosis"},
	},
}

// Symptom vocabularies for categorization, checked in order.
var (
	spotKeywords      = []string{"spot", "spots", "lesion", "blotch", "blight", "rust"}
	yellowingKeywords = []string{"yellow", "yellowing", "chlorosis", "pale"}
	wiltingKeywords   = []string{"wilt", "wilting", "droop", "drooping"}
	pestKeywords      = []string{"pest", "insect", "bug", "caterpillar", "aphid", "mite"}
)

// AdvisoryService produces conservative IPM treatment recommendations.
type AdvisoryService struct {
	searchRepo repositories.DocumentSearchRepository
	docRepo    repositories.DocumentRepository
}

// NewAdvisoryService creates a new advisory service
func NewAdvisoryService(searchRepo repositories.DocumentSearchRepository, docRepo repositories.DocumentRepository) *AdvisoryService {
	return &AdvisoryService{searchRepo: searchRepo, docRepo: docRepo}
}

// Recommend builds a safe recommendation for a crop symptom, citing
// retrieved corpus passages where available.
func (s *AdvisoryService) Recommend(ctx context.Context, req *entities.AdvisoryRequest) (*entities.Advisory, error) {
	if req.Crop == "" || req.Symptom == "" {
		return nil, apperrors.NewValidationError("crop and symptom are required")
	}

	category := CategorizeSymptom(req.Symptom)
	reco := ipmRecommendations[category]

	sources := s.retrieveSources(ctx, req.Crop+" "+req.Symptom+" disease management IPM")

	return &entities.Advisory{
		Recommendation: reco.Recommendation,
		Confidence:     reco.Confidence,
		Sources:        sources,
		NextSteps:      reco.NextSteps,
		SafetyNotice:   safetyNotice,
		Meta: entities.AdvisoryMeta{
			Crop:            req.Crop,
			SymptomCategory: category,
			ImageID:         req.ImageID,
		},
	}, nil
}

// CategorizeSymptom buckets free-text symptoms into coarse categories.
func CategorizeSymptom(symptom string) entities.SymptomCategory {
	lower := strings.ToLower(symptom)

	switch {
	case containsAny(lower, spotKeywords):
		return entities.SymptomLeafSpots
	case containsAny(lower, yellowingKeywords):
		return entities.SymptomYellowing
	case containsAny(lower, wiltingKeywords):
		return entities.SymptomWilting
	case containsAny(lower, pestKeywords):
		return entities.SymptomPestDamage
	default:
		return entities.SymptomGeneral
	}
}

// retrieveSources pulls citations, tolerating retrieval failure.
func (s *AdvisoryService) retrieveSources(ctx context.Context, query string) []entities.Source {
	var docs []entities.RetrievedDoc
	var err error

	if s.searchRepo != nil {
		docs, err = s.searchRepo.Search(ctx, query, 2)
		if err != nil {
			log.Warn().Err(err).Msg("advisory search retrieval failed")
		}
	}
	if len(docs) == 0 && s.docRepo != nil {
		docs, err = s.docRepo.Search(ctx, query, 2)
		if err != nil {
			log.Warn().Err(err).Msg("advisory database retrieval failed")
		}
	}

	sources := make([]entities.Source, 0, len(docs))
	for i := range docs {
		sources = append(sources, docs[i].Source())
	}
	return sources
}
