// Package models defines the data structures used throughout the application.
package models

import (
	"errors"
	"fmt"
	"time"
)

// Movie represents a single catalog entry as returned by a discovery query
type Movie struct {
	ID               int     `json:"id"`
	Title            string  `json:"title"`
	ReleaseDate      string  `json:"release_date"` // yyyy-mm-dd, empty when unknown
	PosterPath       string  `json:"poster_path"`
	BackdropPath     string  `json:"backdrop_path"`
	Overview         string  `json:"overview"`
	VoteAverage      float64 `json:"vote_average"`
	Popularity       float64 `json:"popularity"`
	GenreIDs         []int   `json:"genre_ids"`
	OriginalLanguage string  `json:"original_language"`
}

// HasGenre reports whether the movie is tagged with the given genre id
func (m Movie) HasGenre(id int) bool {
	for _, g := range m.GenreIDs {
		if g == id {
			return true
		}
	}
	return false
}

// Genre is a filterable genre facet
type Genre struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Language is a filterable original-language facet keyed by ISO 639-1 code
type Language struct {
	Code        string `json:"iso_639_1"`
	EnglishName string `json:"english_name"`
}

// MovieCard is the presentation view of a single movie
type MovieCard struct {
	Movie     Movie    `json:"movie"`
	PosterURL string   `json:"poster_url"`
	Genres    []string `json:"genres"`
	PageURL   string   `json:"page_url"`
}

// ErrInvalidQuery is returned when query parameters are out of range
var ErrInvalidQuery = errors.New("invalid discovery query")

// QueryParams identifies a discovery query. A nil Year means any year.
type QueryParams struct {
	Month int  `json:"month"`
	Day   int  `json:"day"`
	Year  *int `json:"year,omitempty"`
}

// QueryParamsFromDate builds query parameters for a calendar date
func QueryParamsFromDate(t time.Time, exactYear bool) QueryParams {
	params := QueryParams{Month: int(t.Month()), Day: t.Day()}
	if exactYear {
		year := t.Year()
		params.Year = &year
	}
	return params
}

// Validate checks that month and day are in range
func (q QueryParams) Validate() error {
	if q.Month < 1 || q.Month > 12 {
		return fmt.Errorf("%w: month %d out of range", ErrInvalidQuery, q.Month)
	}
	if q.Day < 1 || q.Day > 31 {
		return fmt.Errorf("%w: day %d out of range", ErrInvalidQuery, q.Day)
	}
	return nil
}
