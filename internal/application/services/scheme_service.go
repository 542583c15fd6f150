package services

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/farmguru/backend/internal/domain/entities"
	"github.com/farmguru/backend/internal/domain/repositories"
	apperrors "github.com/farmguru/backend/pkg/errors"
)

// schemeRequirements maps scheme codes to eligibility criteria and the
// documents a farmer must produce. Codes not listed get a generic entry.
var schemeRequirements = map[string]struct {
	Eligibility  []string
	RequiredDocs []string
}{
	"PM-KISAN": {
		Eligibility:  []string{"Small and marginal farmers", "Landholding up to 2 hectares", "Indian citizen"},
		RequiredDocs: []string{"Aadhaar card", "Land ownership documents", "Bank account details", "Mobile number"},
	},
	"PMFBY": {
		Eligibility:  []string{"All farmers (loanee and non-loanee)", "Crop area should be insurable", "Premium payment required"},
		RequiredDocs: []string{"Aadhaar card", "Land records", "Sowing certificate", "Bank account details"},
	},
	"PKVY": {
		Eligibility:  []string{"Farmers practicing organic farming", "Minimum 20 hectares cluster", "3-year conversion period"},
		RequiredDocs: []string{"Land documents", "Organic certification", "Group formation certificate"},
	},
	"KCC": {
		Eligibility:  []string{"Farmers with cultivable land", "Good credit history", "Age 18-75 years"},
		RequiredDocs: []string{"Aadhaar card", "Land documents", "Income certificate", "Two passport photos"},
	},
}

// SchemeService matches farmers with applicable government schemes.
type SchemeService struct {
	repo     repositories.SchemeRepository
	userRepo repositories.UserRepository
}

// NewSchemeService creates a new scheme service
func NewSchemeService(repo repositories.SchemeRepository, userRepo repositories.UserRepository) *SchemeService {
	return &SchemeService{repo: repo, userRepo: userRepo}
}

// Match returns the schemes applicable to a state and crop, enriched with
// eligibility and document requirements. Database failure degrades to the
// two nationwide flagship schemes.
func (s *SchemeService) Match(ctx context.Context, userID, state, crop string) (*entities.SchemeMatchResult, error) {
	if state == "" || crop == "" {
		return nil, apperrors.NewValidationError("state and crop are required")
	}

	var profile *entities.User
	if userID != "" && s.userRepo != nil {
		user, err := s.userRepo.GetByID(ctx, userID)
		if err == nil {
			profile = user
		}
	}

	schemes, err := s.repo.FindApplicable(ctx, state, crop)
	if err != nil {
		log.Warn().Err(err).Str("state", state).Str("crop", crop).Msg("scheme lookup failed, using fallback")
		return fallbackSchemeResult(state, crop, profile), nil
	}

	matches := make([]entities.SchemeMatch, 0, len(schemes))
	for _, scheme := range schemes {
		eligibility, docs := requirementsFor(scheme.Code)
		matches = append(matches, entities.SchemeMatch{
			Scheme:       scheme.Name,
			Code:         scheme.Code,
			Description:  scheme.Description,
			URL:          scheme.URL,
			Eligibility:  eligibility,
			RequiredDocs: docs,
		})
	}

	confidence := 0.1
	if len(matches) > 0 {
		confidence = 0.9
	}

	return &entities.SchemeMatchResult{
		Matches:    matches,
		Confidence: confidence,
		State:      state,
		Crop:       crop,
		Profile:    profile,
	}, nil
}

// requirementsFor returns eligibility and document lists for a scheme code.
func requirementsFor(code string) ([]string, []string) {
	if req, ok := schemeRequirements[code]; ok {
		return req.Eligibility, req.RequiredDocs
	}
	return []string{"Eligible farmers", "As per scheme guidelines"},
		[]string{"Required documents as per scheme"}
}

// fallbackSchemeResult lists the nationwide flagship schemes when the
// database is unreachable.
func fallbackSchemeResult(state, crop string, profile *entities.User) *entities.SchemeMatchResult {
	pmKisanElig, pmKisanDocs := requirementsFor("PM-KISAN")
	pmfbyElig, pmfbyDocs := requirementsFor("PMFBY")

	return &entities.SchemeMatchResult{
		Matches: []entities.SchemeMatch{
			{
				Scheme:       "PM-KISAN",
				Code:         "PM-KISAN",
				Description:  "Income support scheme providing Rs 6000 per year to eligible farmers",
				URL:          "https://pmkisan.gov.in",
				Eligibility:  pmKisanElig,
				RequiredDocs: pmKisanDocs,
			},
			{
				Scheme:       "Pradhan Mantri Fasal Bima Yojana",
				Code:         "PMFBY",
				Description:  "Crop insurance scheme protecting farmers from crop losses",
				URL:          "https://pmfby.gov.in",
				Eligibility:  pmfbyElig,
				RequiredDocs: pmfbyDocs,
			},
		},
		Confidence: 0.7,
		State:      state,
		Crop:       crop,
		Profile:    profile,
	}
}
