package service

import (
	"context"

	"pillulu/internal/application/dto"
	"pillulu/internal/infrastructure/openfda"
)

// MedSearcher finds drug labels by name.
type MedSearcher interface {
	Search(ctx context.Context, query string, limit int) ([]openfda.Result, error)
}

// WeatherFetcher returns current weather for a named region.
type WeatherFetcher interface {
	CurrentWeather(ctx context.Context, region string) (map[string]any, error)
}

// Asker answers a free-text medication question.
type Asker interface {
	Ask(ctx context.Context, question, contextMedName string) (string, error)
}

// LookupService defines the interface for third-party lookups and AI Q&A.
type LookupService interface {
	// SearchMeds searches OpenFDA; q must not be blank.
	SearchMeds(ctx context.Context, q string) ([]openfda.Result, error)
	// Weather returns Open-Meteo's current_weather for a US state.
	Weather(ctx context.Context, region string) (map[string]any, error)
	// Ask answers a medication question with the standing disclaimer.
	Ask(ctx context.Context, req dto.AIAskRequest) (dto.AIAskResponse, error)
}
