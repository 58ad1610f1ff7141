package discovery

import (
	"sort"

	"moviedate/facets"
	"moviedate/models"
)

// Filters are the user's current facet selections and ordering
type Filters struct {
	Genre    *int
	Language *string
	Sort     models.SortKey
}

// Apply filters and sorts raw into a new slice. Filters are conjunctive and
// a nil selection passes everything. Language codes match in their
// normalized form, the same form Derive reports. The sort is stable, so equal keys keep
// their order from raw.
func Apply(raw []models.Movie, f Filters) []models.Movie {
	var language string
	if f.Language != nil {
		language = facets.NormalizeCode(*f.Language)
	}

	out := make([]models.Movie, 0, len(raw))
	for _, m := range raw {
		if f.Genre != nil && !m.HasGenre(*f.Genre) {
			continue
		}
		if f.Language != nil && facets.NormalizeCode(m.OriginalLanguage) != language {
			continue
		}
		out = append(out, m)
	}

	switch f.Sort {
	case models.SortReleaseDateDesc:
		// ISO dates order lexically; empty dates land last
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].ReleaseDate > out[j].ReleaseDate
		})
	case models.SortPopularityDesc:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].Popularity > out[j].Popularity
		})
	case models.SortTitleAsc:
		col := facets.NewTitleCollator()
		sort.SliceStable(out, func(i, j int) bool {
			return col.CompareString(out[i].Title, out[j].Title) < 0
		})
	}
	return out
}
