// Package openfda searches drug labels on the OpenFDA API.
package openfda

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// DefaultBaseURL is the OpenFDA drug label endpoint.
const DefaultBaseURL = "https://api.fda.gov/drug/label.json"

const warningsSnippetLen = 300

var searchFields = []string{"generic_name", "brand_name", "substance_name"}

// Result is one medication found on OpenFDA.
type Result struct {
	BrandName       *string `json:"brand_name"`
	GenericName     *string `json:"generic_name"`
	Manufacturer    *string `json:"manufacturer"`
	Route           *string `json:"route"`
	SubstanceName   *string `json:"substance_name"`
	WarningsSnippet *string `json:"warnings_snippet"`
	DisplayName     string  `json:"display_name"`
	CanonicalName   string  `json:"canonical_name"`
}

// Client queries OpenFDA.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a client. An empty baseURL selects DefaultBaseURL.
func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{baseURL: baseURL, http: &http.Client{Timeout: 15 * time.Second}}
}

type labelResponse struct {
	Results []label `json:"results"`
}

type label struct {
	OpenFDA  map[string]json.RawMessage `json:"openfda"`
	Warnings []string                   `json:"warnings"`
}

// Search looks the query up by generic, brand and substance name and
// returns up to limit results, one per canonical (generic) name.
func (c *Client) Search(ctx context.Context, query string, limit int) ([]Result, error) {
	term := buildTerm(query)
	if term == "" {
		return []Result{}, nil
	}

	seen := make(map[string]bool)
	results := make([]Result, 0, limit)
	for _, field := range searchFields {
		labels, err := c.fetchField(ctx, field, term, limit*2)
		if err != nil {
			return nil, err
		}
		for _, l := range labels {
			r, ok := toResult(l)
			if !ok {
				continue
			}
			key := normalizeName(r.CanonicalName)
			if key == "" || seen[key] {
				continue
			}
			seen[key] = true
			results = append(results, r)
			if len(results) >= limit {
				return results, nil
			}
		}
	}
	return results, nil
}

func (c *Client) fetchField(ctx context.Context, field, term string, limit int) ([]label, error) {
	q := url.Values{}
	q.Set("search", fmt.Sprintf("openfda.%s:%s", field, term))
	q.Set("limit", strconv.Itoa(limit))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("OpenFDA request failed: %w", err)
	}
	defer resp.Body.Close()

	// OpenFDA answers 404 when nothing matches.
	if resp.StatusCode == http.StatusNotFound {
		return nil, nil
	}
	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("OpenFDA API error: status %d", resp.StatusCode)
	}

	var body labelResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("OpenFDA response decode failed: %w", err)
	}
	return body.Results, nil
}

func toResult(l label) (Result, bool) {
	r := Result{
		BrandName:     firstString(l.OpenFDA["brand_name"]),
		GenericName:   firstString(l.OpenFDA["generic_name"]),
		Manufacturer:  firstString(l.OpenFDA["manufacturer_name"]),
		Route:         firstString(l.OpenFDA["route"]),
		SubstanceName: firstString(l.OpenFDA["substance_name"]),
	}
	r.DisplayName = firstNonEmpty(r.BrandName, r.GenericName, r.SubstanceName)
	if r.DisplayName == "" {
		return r, false
	}
	r.CanonicalName = firstNonEmpty(r.GenericName, r.SubstanceName)
	if r.CanonicalName == "" {
		r.CanonicalName = r.DisplayName
	}
	if len(l.Warnings) > 0 {
		w := truncateRunes(l.Warnings[0], warningsSnippetLen)
		r.WarningsSnippet = &w
	}
	return r, true
}

// firstString accepts either a JSON string or an array of strings.
func firstString(raw json.RawMessage) *string {
	if len(raw) == 0 {
		return nil
	}
	var list []string
	var s string
	if err := json.Unmarshal(raw, &list); err == nil {
		if len(list) == 0 {
			return nil
		}
		s = list[0]
	} else if err := json.Unmarshal(raw, &s); err != nil {
		return nil
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

func firstNonEmpty(values ...*string) string {
	for _, v := range values {
		if v != nil && *v != "" {
			return *v
		}
	}
	return ""
}

var nonAlnum = regexp.MustCompile(`[^a-z0-9]+`)

func normalizeName(s string) string {
	return strings.TrimSpace(nonAlnum.ReplaceAllString(strings.ToLower(s), " "))
}

// buildTerm strips characters with meaning in the OpenFDA query syntax.
func buildTerm(query string) string {
	r := strings.NewReplacer(`"`, "", "+", " ", "*", "")
	return strings.TrimSpace(r.Replace(query))
}

func truncateRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
