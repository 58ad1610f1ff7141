package models

import (
	"fmt"
	"strings"
)

// SortKey selects the ordering of the displayed movie list
type SortKey string

// Sort key constants
const (
	SortReleaseDateDesc SortKey = "release_date_desc"
	SortPopularityDesc  SortKey = "popularity_desc"
	SortTitleAsc        SortKey = "title_asc"
)

// DefaultSortKey is the ordering used before the user picks one
const DefaultSortKey = SortPopularityDesc

// ParseSortKey accepts the canonical keys and their short forms
func ParseSortKey(s string) (SortKey, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case string(SortReleaseDateDesc), "release_date":
		return SortReleaseDateDesc, nil
	case string(SortPopularityDesc), "popularity":
		return SortPopularityDesc, nil
	case string(SortTitleAsc), "title":
		return SortTitleAsc, nil
	}
	return "", fmt.Errorf("unknown sort key %q", s)
}

// Valid reports whether k is one of the known sort keys
func (k SortKey) Valid() bool {
	switch k {
	case SortReleaseDateDesc, SortPopularityDesc, SortTitleAsc:
		return true
	}
	return false
}

// Phase is the lifecycle stage of the discovery pipeline
type Phase string

// Phase constants
const (
	PhaseIdle    Phase = "idle"
	PhaseLoading Phase = "loading"
	PhaseReady   Phase = "ready"
	PhaseFailed  Phase = "failed"
)

// DiscoveryState is the snapshot handed to the presentation layer
type DiscoveryState struct {
	Phase            Phase      `json:"phase"`
	Date             *string    `json:"date"`
	ExactYear        bool       `json:"exact_year"`
	Movies           []Movie    `json:"movies"`
	TotalResults     int        `json:"total_results"`
	Genres           []Genre    `json:"genres"`
	Languages        []Language `json:"languages"`
	SelectedGenre    *int       `json:"selected_genre"`
	SelectedLanguage *string    `json:"selected_language"`
	SortKey          SortKey    `json:"sort_key"`
	Loading          bool       `json:"loading"`
	Error            *string    `json:"error"`
}

// NoResults reports the distinct empty-but-successful outcome
func (s DiscoveryState) NoResults() bool {
	return s.Phase == PhaseReady && s.TotalResults == 0
}
