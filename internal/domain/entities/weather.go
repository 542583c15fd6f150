package entities

import "time"

// TemperatureRange is a daily min/max pair in Celsius.
type TemperatureRange struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// Forecast is one cached weather forecast payload for a district.
type Forecast struct {
	Location            string           `json:"location"`
	Temperature         TemperatureRange `json:"temperature"`
	Humidity            int              `json:"humidity"`
	RainfallProbability int              `json:"rainfall_probability"`
	WindSpeed           int              `json:"wind_speed"`
	Conditions          string           `json:"conditions"`
}

// WeatherRecord is a stored forecast row.
type WeatherRecord struct {
	ID           string    `json:"id" db:"id"`
	State        string    `json:"state" db:"state"`
	District     string    `json:"district" db:"district"`
	ForecastDate time.Time `json:"forecast_date" db:"forecast_date"`
	Payload      []byte    `json:"payload" db:"json_payload"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

// WeatherReport is the response shape for a weather lookup.
type WeatherReport struct {
	Forecast       Forecast  `json:"forecast"`
	LastUpdated    time.Time `json:"last_updated"`
	Recommendation string    `json:"recommendation"`
}
