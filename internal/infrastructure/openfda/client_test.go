package openfda

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_Search(t *testing.T) {
	longWarning := strings.Repeat("w", 400)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		search := r.URL.Query().Get("search")
		assert.Equal(t, "20", r.URL.Query().Get("limit"))
		w.Header().Set("Content-Type", "application/json")
		switch search {
		case "openfda.generic_name:ibuprofen":
			_, _ = w.Write([]byte(`{"results":[
				{"openfda":{"brand_name":["Advil"],"generic_name":["IBUPROFEN"],"manufacturer_name":["Pfizer"],"route":["ORAL"],"substance_name":["IBUPROFEN"]},"warnings":["` + longWarning + `"]},
				{"openfda":{"brand_name":["Motrin"],"generic_name":["Ibuprofen"]}},
				{"openfda":{}}
			]}`))
		case "openfda.brand_name:ibuprofen":
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"error":{"code":"NOT_FOUND"}}`))
		case "openfda.substance_name:ibuprofen":
			_, _ = w.Write([]byte(`{"results":[{"openfda":{"substance_name":"IBUPROFEN LYSINE"}}]}`))
		default:
			t.Errorf("unexpected search %q", search)
		}
	}))
	defer srv.Close()

	results, err := NewClient(srv.URL).Search(context.Background(), ` "ibuprofen"* `, 10)
	require.NoError(t, err)
	require.Len(t, results, 2)

	first := results[0]
	assert.Equal(t, "Advil", first.DisplayName)
	assert.Equal(t, "IBUPROFEN", first.CanonicalName)
	require.NotNil(t, first.Manufacturer)
	assert.Equal(t, "Pfizer", *first.Manufacturer)
	require.NotNil(t, first.WarningsSnippet)
	assert.Len(t, *first.WarningsSnippet, warningsSnippetLen)

	// Motrin shares the canonical name with Advil.
	assert.Equal(t, "IBUPROFEN LYSINE", results[1].DisplayName)
	assert.Nil(t, results[1].BrandName)
}

func TestClient_SearchLimit(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"results":[
			{"openfda":{"generic_name":["a"]}},
			{"openfda":{"generic_name":["b"]}},
			{"openfda":{"generic_name":["c"]}}
		]}`))
	}))
	defer srv.Close()

	results, err := NewClient(srv.URL).Search(context.Background(), "x", 2)
	require.NoError(t, err)
	assert.Len(t, results, 2)
}

func TestClient_SearchUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).Search(context.Background(), "aspirin", 10)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "500")
}

func TestBuildTerm(t *testing.T) {
	assert.Equal(t, "", buildTerm(` "*" `))
	assert.Equal(t, "vitamin d", buildTerm("vitamin+d"))
}
