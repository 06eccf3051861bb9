package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"pillulu/internal/application/dto"
	"pillulu/internal/infrastructure/assistant"
	"pillulu/internal/infrastructure/openfda"
	"pillulu/internal/infrastructure/openmeteo"
	appErrors "pillulu/internal/pkg/errors"
	"pillulu/internal/pkg/logger"
)

const (
	medSearchLimit    = 10
	maxQuestionLen    = 2000
	maxContextNameLen = 255
)

type lookupService struct {
	meds    MedSearcher
	weather WeatherFetcher
	asker   Asker // nil when OPENAI_API_KEY is unset
	log     logger.Logger
}

// NewLookupService creates a new instance of LookupService implementation.
func NewLookupService(meds MedSearcher, weather WeatherFetcher, asker Asker, log logger.Logger) LookupService {
	return &lookupService{meds: meds, weather: weather, asker: asker, log: log}
}

func (s *lookupService) SearchMeds(ctx context.Context, q string) ([]openfda.Result, error) {
	q = strings.TrimSpace(q)
	if q == "" {
		return nil, fmt.Errorf("%w: Query parameter 'q' is required and cannot be empty", appErrors.ErrInvalidInput)
	}
	results, err := s.meds.Search(ctx, q, medSearchLimit)
	if err != nil {
		s.log.Error(fmt.Sprintf("Medication search for %q failed", q), err)
		return nil, fmt.Errorf("%w: Medication search failed: %v", appErrors.ErrUpstream, err)
	}
	return results, nil
}

func (s *lookupService) Weather(ctx context.Context, region string) (map[string]any, error) {
	current, err := s.weather.CurrentWeather(ctx, region)
	switch {
	case err == nil:
		return current, nil
	case errors.Is(err, openmeteo.ErrUnknownRegion):
		return nil, fmt.Errorf("%w: %v", appErrors.ErrInvalidInput, err)
	case errors.Is(err, openmeteo.ErrNoCurrentWeather):
		return nil, fmt.Errorf("%w: %v", appErrors.ErrUpstream, err)
	default:
		s.log.Error(fmt.Sprintf("Weather lookup for %s failed", region), err)
		return nil, fmt.Errorf("%w: %v", appErrors.ErrUpstream, err)
	}
}

func (s *lookupService) Ask(ctx context.Context, req dto.AIAskRequest) (dto.AIAskResponse, error) {
	question := strings.TrimSpace(req.Question)
	if question == "" || len(req.Question) > maxQuestionLen {
		return dto.AIAskResponse{}, fmt.Errorf("%w: question must be 1-%d characters", appErrors.ErrInvalidInput, maxQuestionLen)
	}
	contextName := ""
	if req.ContextMedName != nil {
		contextName = strings.TrimSpace(*req.ContextMedName)
		if len(contextName) > maxContextNameLen {
			return dto.AIAskResponse{}, fmt.Errorf("%w: context_med_name too long", appErrors.ErrInvalidInput)
		}
	}
	if s.asker == nil {
		return dto.AIAskResponse{}, fmt.Errorf("%w: OPENAI_API_KEY is not configured", appErrors.ErrNotConfigured)
	}

	answer, err := s.asker.Ask(ctx, req.Question, contextName)
	if err != nil {
		s.log.Error("AI ask failed", err)
		return dto.AIAskResponse{}, fmt.Errorf("%w: AI service error: %v", appErrors.ErrUpstream, err)
	}
	return dto.AIAskResponse{Answer: answer, Disclaimer: assistant.Disclaimer}, nil
}
