// Package services provides external service integrations.
package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"moviedate/models"

	"github.com/google/uuid"
	"github.com/hashicorp/go-hclog"
)

const (
	defaultBaseURL  = "https://api.themoviedb.org/3"
	defaultLanguage = "en-US"

	// Year bounds used when a query spans every year
	earliestYear = 1900
	latestYear   = 2030

	sortPopularityDesc  = "popularity.desc"
	sortReleaseDateDesc = "primary_release_date.desc"
)

// TMDBService handles interactions with The Movie Database API
type TMDBService struct {
	apiKey     string
	baseURL    string
	language   string
	bearer     bool
	httpClient *http.Client
	logger     hclog.Logger
}

// DiscoverResponse models the paginated discover and list responses
type DiscoverResponse struct {
	Results      []models.Movie `json:"results"`
	Page         int            `json:"page"`
	TotalPages   int            `json:"total_pages"`
	TotalResults int            `json:"total_results"`
}

// Option configures a TMDBService
type Option func(*TMDBService)

// WithBaseURL overrides the API base URL
func WithBaseURL(baseURL string) Option {
	return func(t *TMDBService) {
		if baseURL = strings.TrimSpace(baseURL); baseURL != "" {
			t.baseURL = strings.TrimRight(baseURL, "/")
		}
	}
}

// WithLanguage sets the response language sent with every request
func WithLanguage(language string) Option {
	return func(t *TMDBService) {
		t.language = strings.TrimSpace(language)
	}
}

// WithHTTPClient overrides the default HTTP client
func WithHTTPClient(client *http.Client) Option {
	return func(t *TMDBService) {
		if client != nil {
			t.httpClient = client
		}
	}
}

// WithBearerAuth sends the credential as a bearer token instead of an api_key parameter
func WithBearerAuth() Option {
	return func(t *TMDBService) {
		t.bearer = true
	}
}

// WithLogger sets the logger used for request diagnostics
func WithLogger(logger hclog.Logger) Option {
	return func(t *TMDBService) {
		if logger != nil {
			t.logger = logger
		}
	}
}

// NewTMDBService creates a new TMDB service instance
func NewTMDBService(apiKey string, opts ...Option) (*TMDBService, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errors.New("tmdb api key required")
	}
	t := &TMDBService{
		apiKey:   apiKey,
		baseURL:  defaultBaseURL,
		language: defaultLanguage,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		logger: hclog.NewNullLogger(),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t, nil
}

// DiscoverParams returns the query string for a date-driven discover request.
// An exact year narrows the range to that single day ordered by popularity;
// otherwise every year is searched newest first.
func DiscoverParams(q models.QueryParams) url.Values {
	monthDay := fmt.Sprintf("%02d-%02d", q.Month, q.Day)
	params := url.Values{}
	if q.Year != nil {
		exact := fmt.Sprintf("%04d-%s", *q.Year, monthDay)
		params.Set("primary_release_date.gte", exact)
		params.Set("primary_release_date.lte", exact)
		params.Set("sort_by", sortPopularityDesc)
	} else {
		params.Set("primary_release_date.gte", fmt.Sprintf("%d-%s", earliestYear, monthDay))
		params.Set("primary_release_date.lte", fmt.Sprintf("%d-%s", latestYear, monthDay))
		params.Set("sort_by", sortReleaseDateDesc)
	}
	params.Set("page", "1")
	return params
}

// DiscoverByDate fetches the first page of movies released on the queried day
func (t *TMDBService) DiscoverByDate(ctx context.Context, q models.QueryParams) ([]models.Movie, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}
	payload, err := t.get(ctx, "/discover/movie", DiscoverParams(q))
	if err != nil {
		return nil, err
	}
	return payload.Results, nil
}

// Trending fetches a single page of currently popular movies
func (t *TMDBService) Trending(ctx context.Context) ([]models.Movie, error) {
	params := url.Values{}
	params.Set("page", "1")
	payload, err := t.get(ctx, "/movie/popular", params)
	if err != nil {
		return nil, err
	}
	return payload.Results, nil
}

func (t *TMDBService) get(ctx context.Context, path string, params url.Values) (*DiscoverResponse, error) {
	endpoint, err := url.Parse(t.baseURL + path)
	if err != nil {
		return nil, fmt.Errorf("parse tmdb url: %w", err)
	}
	if t.language != "" {
		params.Set("language", t.language)
	}
	if !t.bearer {
		params.Set("api_key", t.apiKey)
	}
	endpoint.RawQuery = params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if t.bearer {
		req.Header.Set("Authorization", "Bearer "+t.apiKey)
	}

	requestID := uuid.NewString()
	logger := t.logger.With("request_id", requestID, "path", path)
	logger.Debug("tmdb request", "query", redact(params))

	requestStart := time.Now()
	resp, err := t.httpClient.Do(req)
	latency := time.Since(requestStart)
	if err != nil {
		return nil, &FetchError{
			Kind:    KindNetwork,
			Message: fmt.Sprintf("tmdb request failed (latency=%v)", latency),
			Err:     err,
		}
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			logger.Warn("failed to close response body", "error", err)
		}
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &FetchError{
			Kind:    KindHTTP,
			Status:  resp.StatusCode,
			Message: fmt.Sprintf("tmdb returned %d (latency=%v)", resp.StatusCode, latency),
		}
	}

	var payload DiscoverResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, &FetchError{
			Kind:    KindParse,
			Status:  resp.StatusCode,
			Message: "decode tmdb response",
			Err:     err,
		}
	}
	if payload.Results == nil {
		payload.Results = []models.Movie{}
	}
	logger.Debug("tmdb response",
		"latency", latency,
		"results", len(payload.Results),
		"total_results", payload.TotalResults)
	return &payload, nil
}

// redact returns the encoded query with the credential masked
func redact(params url.Values) string {
	if params.Get("api_key") == "" {
		return params.Encode()
	}
	masked := url.Values{}
	for k, v := range params {
		masked[k] = v
	}
	masked.Set("api_key", "***")
	return masked.Encode()
}

// MovieURL returns the public catalog page for a movie
func MovieURL(id int) string {
	return "https://www.themoviedb.org/movie/" + strconv.Itoa(id)
}
