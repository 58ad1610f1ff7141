// Package facets derives the genre and language filter values present in a
// discovery result set.
package facets

import (
	"sort"

	"moviedate/models"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Result holds the facets found in a result set
type Result struct {
	Genres    []models.Genre    `json:"genres"`
	Languages []models.Language `json:"languages"`
}

// NewNameCollator returns a case-insensitive English collator. Collators are
// not safe for concurrent use, so callers create one per operation.
func NewNameCollator() *collate.Collator {
	return collate.New(language.English, collate.IgnoreCase)
}

// NewTitleCollator returns an English collator that keeps case as a tiebreak
func NewTitleCollator() *collate.Collator {
	return collate.New(language.English)
}

// Derive returns the sorted, deduplicated genres and languages referenced by
// movies. The output depends only on the set of ids and codes present.
func Derive(movies []models.Movie) Result {
	genreIDs := make(map[int]struct{})
	codes := make(map[string]struct{})
	for _, m := range movies {
		for _, id := range m.GenreIDs {
			genreIDs[id] = struct{}{}
		}
		if code := NormalizeCode(m.OriginalLanguage); code != "" {
			codes[code] = struct{}{}
		}
	}

	genres := make([]models.Genre, 0, len(genreIDs))
	for id := range genreIDs {
		genres = append(genres, models.Genre{ID: id, Name: GenreName(id)})
	}
	languages := make([]models.Language, 0, len(codes))
	for code := range codes {
		languages = append(languages, models.Language{Code: code, EnglishName: LanguageName(code)})
	}

	col := NewNameCollator()
	sort.Slice(genres, func(i, j int) bool {
		if c := col.CompareString(genres[i].Name, genres[j].Name); c != 0 {
			return c < 0
		}
		return genres[i].ID < genres[j].ID
	})
	sort.Slice(languages, func(i, j int) bool {
		if c := col.CompareString(languages[i].EnglishName, languages[j].EnglishName); c != 0 {
			return c < 0
		}
		return languages[i].Code < languages[j].Code
	})

	return Result{Genres: genres, Languages: languages}
}
