package resolver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"time"
)

// ErrNotFound reports that the nutrition database has no usable energy value
// for the query. Transport and parse failures are returned as distinct,
// wrapped errors.
var ErrNotFound = errors.New("food not found")

// OpenFoodFacts resolves kcal/100g through the Open Food Facts search API.
type OpenFoodFacts struct {
	baseURL string
	client  *http.Client
}

func NewOpenFoodFacts(baseURL string) *OpenFoodFacts {
	return &OpenFoodFacts{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

type searchResponse struct {
	Products []struct {
		Nutriments struct {
			// Pointer so an absent field is distinguishable from an
			// explicit zero: water really is 0 kcal.
			EnergyKcal100g *float64 `json:"energy-kcal_100g"`
		} `json:"nutriments"`
	} `json:"products"`
}

// Resolve issues one search request limited to a single result and returns
// the first product's energy-per-100g value rounded to the nearest integer.
func (o *OpenFoodFacts) Resolve(ctx context.Context, query string) (int, error) {
	u := fmt.Sprintf(
		"%s/cgi/search.pl?action=process&search_terms=%s&json=1&page_size=1",
		o.baseURL, url.QueryEscape(query),
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to create search request: %w", err)
	}

	resp, err := o.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("failed to call Open Food Facts: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, fmt.Errorf("failed to read search response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("open food facts API error %d: %s", resp.StatusCode, string(body))
	}

	var sr searchResponse
	if err := json.Unmarshal(body, &sr); err != nil {
		return 0, fmt.Errorf("failed to parse search JSON: %w", err)
	}

	if len(sr.Products) == 0 {
		return 0, ErrNotFound
	}
	kcal := sr.Products[0].Nutriments.EnergyKcal100g
	if kcal == nil {
		return 0, ErrNotFound
	}
	return int(math.Round(*kcal)), nil
}
