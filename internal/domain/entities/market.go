package entities

import "time"

// MarketSignal is the trading guidance derived from price analysis.
type MarketSignal string

const (
	SignalBuy  MarketSignal = "BUY"
	SignalSell MarketSignal = "SELL"
	SignalHold MarketSignal = "HOLD"
)

// MarketPrice is one modal price observation for a commodity at a mandi.
type MarketPrice struct {
	ID         string    `json:"id" db:"id"`
	Commodity  string    `json:"commodity" db:"commodity"`
	Mandi      string    `json:"mandi" db:"mandi"`
	Date       time.Time `json:"date" db:"date"`
	ModalPrice float64   `json:"modal_price" db:"modal_price"`
}

// PricePoint is one entry of the history returned to the client.
type PricePoint struct {
	Price float64 `json:"price"`
	Date  string  `json:"date"`
}

// MarketReport is the response shape for a market lookup.
type MarketReport struct {
	Commodity    string       `json:"commodity"`
	Mandi        string       `json:"mandi"`
	LatestPrice  float64      `json:"latest_price"`
	SevenDayMA   float64      `json:"7d_ma"`
	Signal       MarketSignal `json:"signal"`
	Analysis     string       `json:"analysis"`
	PriceHistory []PricePoint `json:"price_history"`
}
