// Package main provides the entry point for the movie-by-date discovery application.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"moviedate/config"
	"moviedate/discovery"
	"moviedate/jobs"
	"moviedate/services"

	"github.com/gorilla/mux"
	"github.com/hashicorp/go-hclog"
)

// App represents the application with its dependencies
type App struct {
	pipeline    *discovery.Pipeline
	trendingJob *jobs.TrendingJob
	jobManager  *jobs.JobManager
	logger      hclog.Logger
}

func main() {
	cfg, cfgErr := config.Load()

	logger := hclog.New(&hclog.LoggerOptions{
		Name:  "moviedate",
		Level: hclog.LevelFromString(cfg.LogLevel),
	})
	if cfgErr != nil {
		logger.Warn("could not load .env file", "error", cfgErr)
	}
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	opts := []services.Option{
		services.WithBaseURL(cfg.TMDBBaseURL),
		services.WithLanguage(cfg.TMDBLanguage),
		services.WithLogger(logger.Named("tmdb")),
	}
	if cfg.UseBearer() {
		opts = append(opts, services.WithBearerAuth())
	}
	tmdbService, err := services.NewTMDBService(cfg.TMDBAPIKey, opts...)
	if err != nil {
		logger.Error("failed to create TMDB service", "error", err)
		os.Exit(1)
	}

	pipeline := discovery.New(tmdbService,
		discovery.WithLogger(logger.Named("discovery")),
		discovery.WithRequestTimeout(cfg.RequestTimeout),
		discovery.WithExactYear(cfg.ExactYear),
	)

	trendingJob := jobs.NewTrendingJob(tmdbService, logger.Named("trending"), nil)
	jobManager := jobs.NewJobManager(trendingJob, cfg.TrendingRefreshInterval, logger.Named("jobs"))
	jobManager.Start()

	app := &App{
		pipeline:    pipeline,
		trendingJob: trendingJob,
		jobManager:  jobManager,
		logger:      logger,
	}

	server := &http.Server{
		Addr:         cfg.ListenAddr,
		Handler:      app.router(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("server starting", "addr", cfg.ListenAddr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown failed", "error", err)
	}
	jobManager.Stop()
	pipeline.Close()
}

func (app *App) router() *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/health", app.healthHandler).Methods("GET")

	api := r.PathPrefix("/api/v1").Subrouter()

	api.HandleFunc("/discovery", app.getDiscoveryHandler).Methods("GET")
	api.HandleFunc("/discovery/date", app.selectDateHandler).Methods("PUT")
	api.HandleFunc("/discovery/genre", app.setGenreHandler).Methods("PUT")
	api.HandleFunc("/discovery/language", app.setLanguageHandler).Methods("PUT")
	api.HandleFunc("/discovery/sort", app.setSortHandler).Methods("PUT")
	api.HandleFunc("/discovery/exact-year", app.setExactYearHandler).Methods("PUT")
	api.HandleFunc("/discovery/movies/{id:[0-9]+}", app.getMovieCardHandler).Methods("GET")

	api.HandleFunc("/trending", app.getTrendingHandler).Methods("GET")
	api.HandleFunc("/trending/refresh", app.refreshTrendingHandler).Methods("POST")

	return r
}
