// Package jobs provides background job processing functionality.
package jobs

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"moviedate/models"
	"moviedate/services"

	"github.com/hashicorp/go-hclog"
)

// TrendingSource fetches the current popular movies
type TrendingSource interface {
	Trending(ctx context.Context) ([]models.Movie, error)
}

// TrendingJob keeps the latest trending snapshot used for backdrop art
type TrendingJob struct {
	source TrendingSource
	logger hclog.Logger
	intn   func(n int) int

	mu        sync.RWMutex
	movies    []models.Movie
	fetchedAt time.Time
}

// NewTrendingJob creates a new trending job. A nil intn uses math/rand.
func NewTrendingJob(source TrendingSource, logger hclog.Logger, intn func(n int) int) *TrendingJob {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	if intn == nil {
		intn = rand.Intn
	}
	return &TrendingJob{
		source: source,
		logger: logger,
		intn:   intn,
	}
}

// Refresh fetches a new snapshot. On failure the previous snapshot is kept.
func (j *TrendingJob) Refresh(ctx context.Context) error {
	if j.source == nil {
		return fmt.Errorf("no trending source configured")
	}
	movies, err := j.source.Trending(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch trending movies: %w", err)
	}

	j.mu.Lock()
	j.movies = append([]models.Movie{}, movies...)
	j.fetchedAt = time.Now()
	j.mu.Unlock()

	j.logger.Info("trending snapshot refreshed", "movies", len(movies))
	return nil
}

// Snapshot returns the latest trending movies and when they were fetched
func (j *TrendingJob) Snapshot() ([]models.Movie, time.Time) {
	j.mu.RLock()
	defer j.mu.RUnlock()
	return append([]models.Movie{}, j.movies...), j.fetchedAt
}

// Backdrop picks a random snapshot movie with backdrop art and returns its
// full-size image URL, or "" when none has any.
func (j *TrendingJob) Backdrop() string {
	j.mu.RLock()
	defer j.mu.RUnlock()

	var paths []string
	for _, m := range j.movies {
		if m.BackdropPath != "" {
			paths = append(paths, m.BackdropPath)
		}
	}
	if len(paths) == 0 {
		return ""
	}
	return services.ImageURL(paths[j.intn(len(paths))], services.ImageSizeOriginal)
}
