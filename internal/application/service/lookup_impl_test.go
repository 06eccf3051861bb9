package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"pillulu/internal/application/dto"
	"pillulu/internal/infrastructure/assistant"
	"pillulu/internal/infrastructure/openfda"
	"pillulu/internal/infrastructure/openmeteo"
	appErrors "pillulu/internal/pkg/errors"
	"pillulu/internal/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSearcher struct {
	results []openfda.Result
	err     error
	query   string
}

func (f *fakeSearcher) Search(_ context.Context, q string, _ int) ([]openfda.Result, error) {
	f.query = q
	return f.results, f.err
}

type fakeWeather struct {
	err error
}

func (f fakeWeather) CurrentWeather(_ context.Context, region string) (map[string]any, error) {
	if f.err != nil {
		return nil, f.err
	}
	return map[string]any{"region": region, "temperature": 21.5}, nil
}

type fakeAsker struct {
	answer  string
	err     error
	context string
}

func (f *fakeAsker) Ask(_ context.Context, _, contextMedName string) (string, error) {
	f.context = contextMedName
	return f.answer, f.err
}

func TestLookupService_SearchMeds(t *testing.T) {
	searcher := &fakeSearcher{results: []openfda.Result{{DisplayName: "Advil"}}}
	svc := NewLookupService(searcher, fakeWeather{}, nil, logger.NewNop())

	_, err := svc.SearchMeds(context.Background(), "   ")
	assert.ErrorIs(t, err, appErrors.ErrInvalidInput)

	got, err := svc.SearchMeds(context.Background(), " ibuprofen ")
	require.NoError(t, err)
	assert.Len(t, got, 1)
	assert.Equal(t, "ibuprofen", searcher.query)

	searcher.err = errors.New("timeout")
	_, err = svc.SearchMeds(context.Background(), "ibuprofen")
	assert.ErrorIs(t, err, appErrors.ErrUpstream)
}

func TestLookupService_Weather(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{"ok", nil, nil},
		{"unknown region", fmt.Errorf("%w: XX", openmeteo.ErrUnknownRegion), appErrors.ErrInvalidInput},
		{"no current weather", openmeteo.ErrNoCurrentWeather, appErrors.ErrUpstream},
		{"transport", errors.New("dial tcp"), appErrors.ErrUpstream},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewLookupService(&fakeSearcher{}, fakeWeather{err: tt.err}, nil, logger.NewNop())
			got, err := svc.Weather(context.Background(), "NY")
			if tt.want == nil {
				require.NoError(t, err)
				assert.Equal(t, "NY", got["region"])
				return
			}
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestLookupService_Ask(t *testing.T) {
	ctx := context.Background()

	svc := NewLookupService(&fakeSearcher{}, fakeWeather{}, nil, logger.NewNop())
	_, err := svc.Ask(ctx, dto.AIAskRequest{Question: "Can I take it with food?"})
	assert.ErrorIs(t, err, appErrors.ErrNotConfigured)

	asker := &fakeAsker{answer: "Yes."}
	svc = NewLookupService(&fakeSearcher{}, fakeWeather{}, asker, logger.NewNop())

	_, err = svc.Ask(ctx, dto.AIAskRequest{Question: " "})
	assert.ErrorIs(t, err, appErrors.ErrInvalidInput)

	name := " Aspirin "
	got, err := svc.Ask(ctx, dto.AIAskRequest{Question: "Can I take it with food?", ContextMedName: &name})
	require.NoError(t, err)
	assert.Equal(t, "Yes.", got.Answer)
	assert.Equal(t, assistant.Disclaimer, got.Disclaimer)
	assert.Equal(t, "Aspirin", asker.context)

	asker.err = errors.New("rate limited")
	_, err = svc.Ask(ctx, dto.AIAskRequest{Question: "Again?"})
	assert.ErrorIs(t, err, appErrors.ErrUpstream)
	assert.Contains(t, err.Error(), "AI service error")
}
