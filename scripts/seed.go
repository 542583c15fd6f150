package main

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"time"

	"github.com/farmguru/backend/internal/adapters/database"
	"github.com/farmguru/backend/internal/adapters/search"
	"github.com/farmguru/backend/internal/domain/entities"
	"github.com/farmguru/backend/internal/infrastructure/clients/postgres"
	"github.com/farmguru/backend/internal/infrastructure/clients/typesense"
	"github.com/farmguru/backend/pkg/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	pgClient, err := postgres.NewClient(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to DB: %v", err)
	}
	defer pgClient.Close()

	tsClient, err := typesense.NewClient(&cfg.Typesense)
	var searchRepo *search.TypesenseAdapter
	if err == nil {
		searchRepo = search.NewTypesenseAdapter(tsClient)
		if err := searchRepo.InitSchema(context.Background()); err != nil {
			log.Printf("Failed to init Typesense schema: %v", err)
		}
	}

	docRepo := database.NewDocumentAdapter(pgClient)
	weatherRepo := database.NewWeatherAdapter(pgClient)
	marketRepo := database.NewMarketAdapter(pgClient)
	schemeRepo := database.NewSchemeAdapter(pgClient)

	ctx := context.Background()

	if os.Getenv("RESET_DB") == "true" {
		log.Println("RESET_DB=true detected, truncating tables before seeding")
		_, err := pgClient.DB().ExecContext(ctx, `
			TRUNCATE TABLE
				queries,
				community_posts,
				crop_images,
				docs,
				weather_cache,
				market_prices,
				schemes,
				users
			RESTART IDENTITY CASCADE
		`)
		if err != nil {
			log.Fatalf("Failed to reset tables: %v", err)
		}
	}

	// 1. Knowledge corpus
	docs := []entities.Document{
		{
			Title:     "Irrigation Management Guide",
			Category:  "irrigation",
			SourceURL: "https://farmer.gov.in/irrigation",
			Content: "Irrigate crops early in the morning or late in the evening to minimise evaporation losses. " +
				"Drip irrigation saves 30-50% water compared to flood irrigation and delivers moisture directly to the root zone. " +
				"Check soil moisture at a 15 cm depth before each watering; most field crops need irrigation when the top layer is dry but the subsoil still holds moisture. " +
				"During flowering and grain filling, water stress causes the largest yield losses, so never skip scheduled irrigation in those stages.",
		},
		{
			Title:     "IPM Guide",
			Category:  "pest",
			SourceURL: "https://farmer.gov.in/ipm",
			Content: "Integrated Pest Management starts with monitoring: inspect plants twice a week and look under leaves for eggs and nymphs. " +
				"Use yellow sticky traps for sucking pests such as aphids and whiteflies. " +
				"Neem oil at 5 ml per litre of water is an effective first response for most soft-bodied insects. " +
				"Introduce chemical pesticides only when pest populations cross the economic threshold, and always consult your local Krishi Vigyan Kendra before spraying.",
		},
		{
			Title:     "Fertilizer Management",
			Category:  "fertilizer",
			SourceURL: "https://farmer.gov.in/fertilizer",
			Content: "Apply fertilizer based on a soil test rather than a fixed schedule. " +
				"Nitrogen should be split into two or three doses: at sowing, tillering and heading. " +
				"Excess urea causes lush growth that attracts pests and lodges easily. " +
				"Phosphorus is best placed near the seed at sowing; potassium improves drought tolerance and grain quality.",
		},
		{
			Title:     "PM-KISAN Scheme",
			Category:  "scheme",
			SourceURL: "https://pmkisan.gov.in",
			Content: "PM-KISAN provides income support of Rs 6000 per year to all landholding farmer families, paid in three equal instalments. " +
				"Registration requires an Aadhaar card, bank account details and land records. " +
				"Farmers can register at their local Common Service Centre or through the PM-KISAN portal.",
		},
		{
			Title:     "PMFBY Crop Insurance",
			Category:  "scheme",
			SourceURL: "https://pmfby.gov.in",
			Content: "Pradhan Mantri Fasal Bima Yojana insures crops against natural calamities, pests and diseases. " +
				"Premium is 2% of the sum insured for kharif crops, 1.5% for rabi crops and 5% for commercial crops. " +
				"Enrolment closes before the sowing season; claims are settled based on crop cutting experiments in the insured area.",
		},
	}

	for i := range docs {
		if err := docRepo.Upsert(ctx, &docs[i]); err != nil {
			log.Printf("Failed to seed document %s: %v", docs[i].Title, err)
			continue
		}
		if searchRepo != nil {
			if err := searchRepo.Index(ctx, &docs[i]); err != nil {
				log.Printf("Failed to index document %s: %v", docs[i].Title, err)
			}
		}
		log.Printf("Seeded document: %s", docs[i].Title)
	}

	// 2. Weather forecasts
	today := time.Now().Truncate(24 * time.Hour)
	forecasts := []struct {
		state    string
		district string
		forecast entities.Forecast
	}{
		{
			state:    "Karnataka",
			district: "Bangalore",
			forecast: entities.Forecast{
				Location:            "Bangalore, Karnataka",
				Temperature:         entities.TemperatureRange{Min: 19, Max: 29},
				Humidity:            62,
				RainfallProbability: 35,
				WindSpeed:           11,
				Conditions:          "Partly cloudy",
			},
		},
		{
			state:    "Karnataka",
			district: "Mysore",
			forecast: entities.Forecast{
				Location:            "Mysore, Karnataka",
				Temperature:         entities.TemperatureRange{Min: 20, Max: 31},
				Humidity:            58,
				RainfallProbability: 20,
				WindSpeed:           9,
				Conditions:          "Sunny",
			},
		},
		{
			state:    "Maharashtra",
			district: "Pune",
			forecast: entities.Forecast{
				Location:            "Pune, Maharashtra",
				Temperature:         entities.TemperatureRange{Min: 18, Max: 32},
				Humidity:            55,
				RainfallProbability: 15,
				WindSpeed:           13,
				Conditions:          "Clear",
			},
		},
	}

	for _, f := range forecasts {
		payload, err := json.Marshal(f.forecast)
		if err != nil {
			log.Printf("Failed to marshal forecast for %s: %v", f.district, err)
			continue
		}
		record := &entities.WeatherRecord{
			State:        f.state,
			District:     f.district,
			ForecastDate: today,
			Payload:      payload,
		}
		if err := weatherRepo.Upsert(ctx, record); err != nil {
			log.Printf("Failed to seed weather for %s: %v", f.district, err)
			continue
		}
		log.Printf("Seeded weather for %s, %s", f.district, f.state)
	}

	// 3. Market prices: a week of history per commodity so the trading
	// signal has something to work with
	basePrices := map[string]float64{
		"tomato": 2500,
		"onion":  1800,
		"potato": 1200,
		"wheat":  2100,
	}
	drift := []float64{-0.04, -0.02, 0.00, 0.01, 0.02, 0.03, 0.05}

	for commodity, base := range basePrices {
		for i, d := range drift {
			price := &entities.MarketPrice{
				Commodity:  commodity,
				Mandi:      "Bangalore",
				Date:       today.AddDate(0, 0, i-len(drift)+1),
				ModalPrice: base * (1 + d),
			}
			if err := marketRepo.Upsert(ctx, price); err != nil {
				log.Printf("Failed to seed price for %s: %v", commodity, err)
			}
		}
		log.Printf("Seeded %d days of prices for %s", len(drift), commodity)
	}

	// 4. Government schemes
	schemes := []entities.Scheme{
		{
			Code:             "PM-KISAN",
			Name:             "Pradhan Mantri Kisan Samman Nidhi",
			Description:      "Income support scheme providing Rs 6000 per year to eligible farmers",
			ApplicableStates: []string{"ALL"},
			ApplicableCrops:  []string{"ALL"},
			URL:              "https://pmkisan.gov.in",
		},
		{
			Code:             "PMFBY",
			Name:             "Pradhan Mantri Fasal Bima Yojana",
			Description:      "Crop insurance scheme protecting farmers from crop losses",
			ApplicableStates: []string{"ALL"},
			ApplicableCrops:  []string{"rice", "wheat", "maize", "sugarcane", "cotton"},
			URL:              "https://pmfby.gov.in",
		},
		{
			Code:             "PKVY",
			Name:             "Paramparagat Krishi Vikas Yojana",
			Description:      "Organic farming promotion scheme",
			ApplicableStates: []string{"ALL"},
			ApplicableCrops:  []string{"ALL"},
			URL:              "https://pgsindia-ncof.gov.in",
		},
		{
			Code:             "KCC",
			Name:             "Kisan Credit Card",
			Description:      "Credit facility for farmers to meet production credit needs",
			ApplicableStates: []string{"ALL"},
			ApplicableCrops:  []string{"ALL"},
			URL:              "https://pmkisan.gov.in/Kcc.aspx",
		},
	}

	for i := range schemes {
		if err := schemeRepo.Upsert(ctx, &schemes[i]); err != nil {
			log.Printf("Failed to seed scheme %s: %v", schemes[i].Code, err)
			continue
		}
		log.Printf("Seeded scheme: %s", schemes[i].Code)
	}

	log.Println("Seeding completed")
}
