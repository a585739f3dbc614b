// ABOUTME: HTTP download of the exercise catalog with schema validation.
// ABOUTME: The remote JSON is untrusted; invalid records fail the whole fetch.
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gfauredev/logout/internal/models"
)

// catalogPath is the JSON file below the configured catalog origin.
const catalogPath = "dist/exercises.json"

// Fetcher downloads the full exercise catalog from the remote source.
type Fetcher interface {
	Fetch(ctx context.Context) ([]models.Exercise, error)
}

// HTTPFetcher fetches the catalog JSON over HTTP(S).
type HTTPFetcher struct {
	client *http.Client
	url    string
}

// NewHTTPFetcher creates a fetcher for the given catalog origin.
func NewHTTPFetcher(baseURL string) *HTTPFetcher {
	return &HTTPFetcher{
		client: &http.Client{Timeout: 60 * time.Second},
		url:    baseURL + catalogPath,
	}
}

// Fetch downloads and validates the catalog. Every record must pass schema
// validation; a single invalid record rejects the download so a bad feed
// can never replace a good cache. An empty catalog is a failure too.
func (f *HTTPFetcher) Fetch(ctx context.Context) ([]models.Exercise, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.url, nil)
	if err != nil {
		return nil, fmt.Errorf("build catalog request: %w", err)
	}
	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("download catalog: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("download catalog: HTTP %d", resp.StatusCode)
	}

	var exercises []models.Exercise
	if err := json.NewDecoder(resp.Body).Decode(&exercises); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	return validateCatalog(exercises)
}

func validateCatalog(exercises []models.Exercise) ([]models.Exercise, error) {
	if len(exercises) == 0 {
		return nil, fmt.Errorf("catalog is empty")
	}
	for i := range exercises {
		if !exercises[i].Validate() {
			return nil, fmt.Errorf("catalog record %d (%q) failed validation", i, exercises[i].ID)
		}
	}
	return exercises, nil
}
