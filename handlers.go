package main

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"moviedate/facets"
	"moviedate/models"
	"moviedate/services"

	"github.com/gorilla/mux"
)

const cardGenreLimit = 3

type selectDateRequest struct {
	Date *string `json:"date"`
}

type setGenreRequest struct {
	GenreID *int `json:"genre_id"`
}

type setLanguageRequest struct {
	Language *string `json:"language"`
}

type setSortRequest struct {
	Sort string `json:"sort"`
}

type setExactYearRequest struct {
	ExactYear *bool `json:"exact_year"`
}

type trendingResponse struct {
	Movies      []models.Movie `json:"movies"`
	BackdropURL string         `json:"backdrop_url"`
	FetchedAt   *time.Time     `json:"fetched_at"`
}

func (app *App) healthHandler(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("OK")); err != nil {
		app.logger.Error("failed to write response", "error", err)
	}
}

func (app *App) getDiscoveryHandler(w http.ResponseWriter, _ *http.Request) {
	app.writeJSON(w, http.StatusOK, app.pipeline.State())
}

func (app *App) selectDateHandler(w http.ResponseWriter, r *http.Request) {
	var req selectDateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if req.Date == nil || strings.TrimSpace(*req.Date) == "" {
		app.pipeline.ClearDate()
		app.writeJSON(w, http.StatusOK, app.pipeline.State())
		return
	}

	date, err := time.Parse("2006-01-02", strings.TrimSpace(*req.Date))
	if err != nil {
		http.Error(w, "Invalid date, expected YYYY-MM-DD", http.StatusBadRequest)
		return
	}

	app.pipeline.SelectDate(date)
	app.writeJSON(w, http.StatusAccepted, app.pipeline.State())
}

func (app *App) setGenreHandler(w http.ResponseWriter, r *http.Request) {
	var req setGenreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	app.pipeline.SetGenre(req.GenreID)
	app.writeJSON(w, http.StatusOK, app.pipeline.State())
}

func (app *App) setLanguageHandler(w http.ResponseWriter, r *http.Request) {
	var req setLanguageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	app.pipeline.SetLanguage(req.Language)
	app.writeJSON(w, http.StatusOK, app.pipeline.State())
}

func (app *App) setSortHandler(w http.ResponseWriter, r *http.Request) {
	var req setSortRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	key, err := models.ParseSortKey(req.Sort)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := app.pipeline.SetSort(key); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	app.writeJSON(w, http.StatusOK, app.pipeline.State())
}

func (app *App) setExactYearHandler(w http.ResponseWriter, r *http.Request) {
	var req setExactYearRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.ExactYear == nil {
		http.Error(w, "exact_year is required", http.StatusBadRequest)
		return
	}

	app.pipeline.SetExactYear(*req.ExactYear)
	app.writeJSON(w, http.StatusOK, app.pipeline.State())
}

func (app *App) getMovieCardHandler(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "Invalid movie ID", http.StatusBadRequest)
		return
	}

	movie, ok := app.pipeline.Movie(id)
	if !ok {
		http.Error(w, "Movie not found", http.StatusNotFound)
		return
	}

	card := models.MovieCard{
		Movie:     movie,
		PosterURL: services.ImageURL(movie.PosterPath, services.ImageSizePoster),
		Genres:    facets.GenreLabels(movie.GenreIDs, cardGenreLimit),
		PageURL:   services.MovieURL(movie.ID),
	}
	app.writeJSON(w, http.StatusOK, card)
}

func (app *App) getTrendingHandler(w http.ResponseWriter, _ *http.Request) {
	if app.trendingJob == nil {
		http.Error(w, "Trending is not available", http.StatusServiceUnavailable)
		return
	}

	movies, fetchedAt := app.trendingJob.Snapshot()
	resp := trendingResponse{
		Movies:      movies,
		BackdropURL: app.trendingJob.Backdrop(),
	}
	if !fetchedAt.IsZero() {
		resp.FetchedAt = &fetchedAt
	}
	app.writeJSON(w, http.StatusOK, resp)
}

func (app *App) refreshTrendingHandler(w http.ResponseWriter, _ *http.Request) {
	if app.jobManager == nil {
		http.Error(w, "Trending is not available", http.StatusServiceUnavailable)
		return
	}

	app.jobManager.TriggerRefresh()
	w.WriteHeader(http.StatusAccepted)
}

func (app *App) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		app.logger.Error("failed to encode response", "error", err)
	}
}
