// Package images resolves an illustration URL for a word or sentence. Every
// resolved URL is cached permanently in its own storage key, keyed by the
// lowercased query; the cache always wins over a new lookup, and lookup
// failures degrade to a deterministic placeholder URL that is cached like a
// real hit.
package images

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/avast/retry-go"
	"github.com/go-resty/resty/v2"
)

//go:generate mockgen -source=fetcher.go -destination=../mocks/images/mock_fetcher.go -package=mock_images

const (
	unsplashBaseURL  = "https://api.unsplash.com"
	fetchTimeout     = 10 * time.Second
	maxFetchAttempts = 3
)

// Fetcher looks up a remote illustration URL for a query.
type Fetcher interface {
	Fetch(ctx context.Context, query string) (string, error)
}

// UnsplashFetcher queries the Unsplash search API.
type UnsplashFetcher struct {
	client    *resty.Client
	accessKey string
}

// NewUnsplashFetcher creates a fetcher. An empty access key makes every
// lookup fail, which the library turns into placeholder URLs.
func NewUnsplashFetcher(accessKey string) *UnsplashFetcher {
	return &UnsplashFetcher{
		client: resty.New().
			SetBaseURL(unsplashBaseURL).
			SetTimeout(fetchTimeout),
		accessKey: accessKey,
	}
}

type searchResponse struct {
	Results []struct {
		URLs struct {
			Small string `json:"small"`
		} `json:"urls"`
	} `json:"results"`
}

// Fetch returns the first search hit's small image URL.
func (f *UnsplashFetcher) Fetch(ctx context.Context, query string) (string, error) {
	if f.accessKey == "" {
		return "", fmt.Errorf("no image API access key configured")
	}

	var found string
	err := retry.Do(
		func() error {
			var response searchResponse
			resp, err := f.client.R().
				SetContext(ctx).
				SetQueryParams(map[string]string{
					"query":       query,
					"per_page":    "1",
					"orientation": "landscape",
				}).
				SetHeader("Authorization", "Client-ID "+f.accessKey).
				SetResult(&response).
				Get("/search/photos")
			if err != nil {
				return fmt.Errorf("search photos for %q: %w", query, err)
			}
			if resp.StatusCode() == 403 || resp.StatusCode() == 429 {
				// Rate limited; retrying within the same window cannot help.
				return retry.Unrecoverable(fmt.Errorf("image API rate limit exceeded: %s", resp.Status()))
			}
			if resp.IsError() {
				return fmt.Errorf("search photos for %q: %s", query, resp.Status())
			}
			if len(response.Results) == 0 {
				return retry.Unrecoverable(fmt.Errorf("no image found for %q", query))
			}
			found = response.Results[0].URLs.Small
			return nil
		},
		retry.Context(ctx),
		retry.Attempts(maxFetchAttempts),
	)
	if err != nil {
		return "", err
	}
	return found, nil
}

// PlaceholderURL builds the locally-deterministic fallback image URL shown
// when no remote image can be resolved.
func PlaceholderURL(text string) string {
	label := url.QueryEscape(strings.ToUpper(text))
	return fmt.Sprintf("https://via.placeholder.com/400x240/e2e8f0/64748b?text=%s", label)
}
