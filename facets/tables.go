package facets

import (
	"strconv"
	"strings"
)

// TMDB movie genre ids
var genreNames = map[int]string{
	28:    "Action",
	12:    "Adventure",
	16:    "Animation",
	35:    "Comedy",
	80:    "Crime",
	99:    "Documentary",
	18:    "Drama",
	10751: "Family",
	14:    "Fantasy",
	36:    "History",
	27:    "Horror",
	10402: "Music",
	9648:  "Mystery",
	10749: "Romance",
	878:   "Science Fiction",
	10770: "TV Movie",
	53:    "Thriller",
	10752: "War",
	37:    "Western",
}

// ISO 639-1 codes
var languageNames = map[string]string{
	"en": "English",
	"es": "Spanish",
	"fr": "French",
	"de": "German",
	"it": "Italian",
	"pt": "Portuguese",
	"ja": "Japanese",
	"ko": "Korean",
	"zh": "Chinese",
	"cn": "Cantonese",
	"ru": "Russian",
	"ar": "Arabic",
	"hi": "Hindi",
	"ta": "Tamil",
	"te": "Telugu",
	"ml": "Malayalam",
	"nl": "Dutch",
	"pl": "Polish",
	"sv": "Swedish",
	"da": "Danish",
	"no": "Norwegian",
	"fi": "Finnish",
	"tr": "Turkish",
	"th": "Thai",
	"tl": "Tagalog",
	"id": "Indonesian",
	"fa": "Persian",
	"he": "Hebrew",
	"cs": "Czech",
	"hu": "Hungarian",
	"el": "Greek",
}

// GenreName maps a genre id to its display name
func GenreName(id int) string {
	if name, ok := genreNames[id]; ok {
		return name
	}
	return "Unknown (" + strconv.Itoa(id) + ")"
}

// NormalizeCode is the canonical form of a language code. Facets and the
// language filter both compare codes in this form.
func NormalizeCode(code string) string {
	return strings.ToLower(strings.TrimSpace(code))
}

// LanguageName maps an ISO 639-1 code to its English name
func LanguageName(code string) string {
	code = NormalizeCode(code)
	if name, ok := languageNames[code]; ok {
		return name
	}
	return "Unknown (" + code + ")"
}

// GenreLabels returns display names for the first limit genre ids, in the
// order the movie lists them. A limit <= 0 returns all of them.
func GenreLabels(ids []int, limit int) []string {
	if limit <= 0 || limit > len(ids) {
		limit = len(ids)
	}
	labels := make([]string, 0, limit)
	for _, id := range ids[:limit] {
		labels = append(labels, GenreName(id))
	}
	return labels
}
