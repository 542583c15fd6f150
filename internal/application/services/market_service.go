package services

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/farmguru/backend/internal/domain/entities"
	"github.com/farmguru/backend/internal/domain/repositories"
	apperrors "github.com/farmguru/backend/pkg/errors"
)

// fallbackBasePrices are the per-quintal baselines used when no price
// data exists for a commodity.
var fallbackBasePrices = map[string]float64{
	"tomato": 2500,
	"onion":  1800,
	"potato": 1200,
	"wheat":  2100,
	"rice":   2800,
	"maize":  1900,
}

const defaultBasePrice = 2000

// MarketService computes mandi price reports with a 7-day moving average
// and a BUY/SELL/HOLD signal.
type MarketService struct {
	repo repositories.MarketRepository
}

// NewMarketService creates a new market service
func NewMarketService(repo repositories.MarketRepository) *MarketService {
	return &MarketService{repo: repo}
}

// GetReport builds the price report for a commodity at a mandi. Missing
// data degrades to a commodity baseline instead of failing.
func (s *MarketService) GetReport(ctx context.Context, commodity, mandi string) (*entities.MarketReport, error) {
	if commodity == "" || mandi == "" {
		return nil, apperrors.NewValidationError("commodity and mandi are required")
	}

	latest, err := s.repo.GetLatest(ctx, commodity, mandi)
	if err != nil {
		if _, ok := apperrors.AsAppError(err); !ok {
			log.Warn().Err(err).Str("commodity", commodity).Msg("market lookup failed, using fallback")
		}
		return fallbackMarketReport(commodity, mandi), nil
	}

	weekAgo := latest.Date.AddDate(0, 0, -7)
	history, err := s.repo.ListSince(ctx, commodity, mandi, weekAgo)
	if err != nil {
		log.Warn().Err(err).Str("commodity", commodity).Msg("price history lookup failed")
		history = []entities.MarketPrice{*latest}
	}

	prices := make([]float64, 0, len(history))
	points := make([]entities.PricePoint, 0, len(history))
	for i, p := range history {
		prices = append(prices, p.ModalPrice)
		if i < 7 {
			points = append(points, entities.PricePoint{
				Price: p.ModalPrice,
				Date:  p.Date.Format("2006-01-02"),
			})
		}
	}

	movingAvg := mean(prices)
	if movingAvg == 0 {
		movingAvg = latest.ModalPrice
	}

	signal, analysis := tradingSignal(latest.ModalPrice, movingAvg, prices)

	return &entities.MarketReport{
		Commodity:    commodity,
		Mandi:        mandi,
		LatestPrice:  latest.ModalPrice,
		SevenDayMA:   math.Round(movingAvg*100) / 100,
		Signal:       signal,
		Analysis:     analysis,
		PriceHistory: points,
	}, nil
}

// RecordPrice stores a new price observation.
func (s *MarketService) RecordPrice(ctx context.Context, price *entities.MarketPrice) error {
	if price.Commodity == "" || price.Mandi == "" {
		return apperrors.NewValidationError("commodity and mandi are required")
	}
	if price.ModalPrice <= 0 {
		return apperrors.NewValidationError("modal price must be positive")
	}
	return s.repo.Upsert(ctx, price)
}

// tradingSignal derives guidance from how the latest price sits against
// the moving average and the 3-day trend. prices is newest first.
func tradingSignal(current, movingAvg float64, prices []float64) (entities.MarketSignal, string) {
	changePct := (current - movingAvg) / movingAvg * 100

	trendPct := changePct
	if len(prices) >= 3 && prices[2] > 0 {
		trendPct = (prices[0] - prices[2]) / prices[2] * 100
	}

	switch {
	case changePct > 5 && trendPct > 3:
		return entities.SignalSell, fmt.Sprintf(
			"Price above 7-day average by %.1f%%. Upward trend of %.1f%% - consider selling.", changePct, trendPct)
	case changePct < -5 && trendPct < -3:
		return entities.SignalBuy, fmt.Sprintf(
			"Price below 7-day average by %.1f%%. Downward trend - may be good buying opportunity.", math.Abs(changePct))
	default:
		return entities.SignalHold, fmt.Sprintf(
			"Price near 7-day average (%+.1f%%). Stable market conditions - hold current position.", changePct)
	}
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// fallbackMarketReport builds a baseline report when no data exists.
func fallbackMarketReport(commodity, mandi string) *entities.MarketReport {
	base, ok := fallbackBasePrices[strings.ToLower(commodity)]
	if !ok {
		base = defaultBasePrice
	}

	return &entities.MarketReport{
		Commodity:   commodity,
		Mandi:       mandi,
		LatestPrice: base,
		SevenDayMA:  base * 0.95,
		Signal:      entities.SignalHold,
		Analysis: fmt.Sprintf(
			"Limited price data available for %s in %s. Monitor market trends closely.", commodity, mandi),
		PriceHistory: []entities.PricePoint{},
	}
}
