package handlers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/farmguru/backend/internal/api/handlers"
	"github.com/farmguru/backend/internal/domain/entities"
)

type stubWeatherService struct {
	report      *entities.WeatherReport
	gotState    string
	gotDistrict string
}

func (s *stubWeatherService) GetForecast(ctx context.Context, state, district string) (*entities.WeatherReport, error) {
	s.gotState = state
	s.gotDistrict = district
	return s.report, nil
}

type stubMarketService struct {
	report *entities.MarketReport
}

func (s *stubMarketService) GetReport(ctx context.Context, commodity, mandi string) (*entities.MarketReport, error) {
	return s.report, nil
}

type stubSchemeService struct {
	result *entities.SchemeMatchResult

	gotUserID string
	gotState  string
	gotCrop   string
}

func (s *stubSchemeService) Match(ctx context.Context, userID, state, crop string) (*entities.SchemeMatchResult, error) {
	s.gotUserID = userID
	s.gotState = state
	s.gotCrop = crop
	return s.result, nil
}

type stubAdvisoryService struct {
	advisory *entities.Advisory
	got      *entities.AdvisoryRequest
}

func (s *stubAdvisoryService) Recommend(ctx context.Context, req *entities.AdvisoryRequest) (*entities.Advisory, error) {
	s.got = req
	return s.advisory, nil
}

func TestWeatherHandler_GetWeather_Success(t *testing.T) {
	service := &stubWeatherService{
		report: &entities.WeatherReport{
			Forecast:       entities.Forecast{Location: "Pune, Maharashtra", Humidity: 65},
			Recommendation: "Good conditions for most field operations",
		},
	}
	handler := handlers.NewWeatherHandler(service)

	req := httptest.NewRequest("GET", "/api/weather?state=Maharashtra&district=Pune", nil)
	w := httptest.NewRecorder()

	handler.GetWeather(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Maharashtra", service.gotState)
	assert.Equal(t, "Pune", service.gotDistrict)

	var response entities.WeatherReport
	require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
	assert.Equal(t, "Pune, Maharashtra", response.Forecast.Location)
}

func TestWeatherHandler_GetWeather_MissingParams(t *testing.T) {
	handler := handlers.NewWeatherHandler(&stubWeatherService{})

	req := httptest.NewRequest("GET", "/api/weather?state=Maharashtra", nil)
	w := httptest.NewRecorder()

	handler.GetWeather(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestMarketHandler_GetMarket_Success(t *testing.T) {
	service := &stubMarketService{
		report: &entities.MarketReport{
			Commodity:   "tomato",
			Mandi:       "Pune",
			LatestPrice: 2600,
			Signal:      entities.SignalHold,
		},
	}
	handler := handlers.NewMarketHandler(service)

	req := httptest.NewRequest("GET", "/api/market?commodity=tomato&mandi=Pune", nil)
	w := httptest.NewRecorder()

	handler.GetMarket(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var response entities.MarketReport
	require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
	assert.Equal(t, entities.SignalHold, response.Signal)
	assert.Equal(t, 2600.0, response.LatestPrice)
}

func TestMarketHandler_GetMarket_MissingParams(t *testing.T) {
	handler := handlers.NewMarketHandler(&stubMarketService{})

	req := httptest.NewRequest("GET", "/api/market?commodity=tomato", nil)
	w := httptest.NewRecorder()

	handler.GetMarket(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSchemeHandler_MatchSchemes_Success(t *testing.T) {
	service := &stubSchemeService{
		result: &entities.SchemeMatchResult{
			Matches:    []entities.SchemeMatch{{Scheme: "PM-KISAN", Code: "PM-KISAN"}},
			Confidence: 0.9,
			State:      "Punjab",
			Crop:       "wheat",
		},
	}
	handler := handlers.NewSchemeHandler(service)

	body := `{"user_id":"farmer-1","state":"Punjab","crop":"wheat"}`
	req := httptest.NewRequest("POST", "/api/schemes/match", strings.NewReader(body))
	w := httptest.NewRecorder()

	handler.MatchSchemes(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "farmer-1", service.gotUserID)
	assert.Equal(t, "Punjab", service.gotState)
	assert.Equal(t, "wheat", service.gotCrop)

	var response entities.SchemeMatchResult
	require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
	require.Len(t, response.Matches, 1)
	assert.Equal(t, 0.9, response.Confidence)
}

func TestSchemeHandler_MatchSchemes_InvalidJSON(t *testing.T) {
	handler := handlers.NewSchemeHandler(&stubSchemeService{})

	req := httptest.NewRequest("POST", "/api/schemes/match", strings.NewReader("{broken"))
	w := httptest.NewRecorder()

	handler.MatchSchemes(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAdvisoryHandler_GetRecommendation_Success(t *testing.T) {
	service := &stubAdvisoryService{
		advisory: &entities.Advisory{
			Recommendation: "Soil test first.",
			Confidence:     0.40,
			Meta:           entities.AdvisoryMeta{Crop: "wheat", SymptomCategory: entities.SymptomYellowing},
		},
	}
	handler := handlers.NewAdvisoryHandler(service)

	body := `{"crop":"wheat","symptom":"leaves turning yellow"}`
	req := httptest.NewRequest("POST", "/api/advisory", strings.NewReader(body))
	w := httptest.NewRecorder()

	handler.GetRecommendation(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, service.got)
	assert.Equal(t, "wheat", service.got.Crop)

	var response entities.Advisory
	require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
	assert.Equal(t, entities.SymptomYellowing, response.Meta.SymptomCategory)
}

func TestAdvisoryHandler_GetRecommendation_InvalidJSON(t *testing.T) {
	handler := handlers.NewAdvisoryHandler(&stubAdvisoryService{})

	req := httptest.NewRequest("POST", "/api/advisory", strings.NewReader("not json"))
	w := httptest.NewRecorder()

	handler.GetRecommendation(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
