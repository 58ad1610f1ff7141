package discovery

import (
	"testing"

	"moviedate/facets"
	"moviedate/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }

func ids(movies []models.Movie) []int {
	out := make([]int, 0, len(movies))
	for _, m := range movies {
		out = append(out, m.ID)
	}
	return out
}

func transformFixture() []models.Movie {
	return []models.Movie{
		{ID: 1, Title: "Zodiac", ReleaseDate: "2007-03-02", Popularity: 12, GenreIDs: []int{80, 18}, OriginalLanguage: "en"},
		{ID: 2, Title: "amélie", ReleaseDate: "2001-04-25", Popularity: 30, GenreIDs: []int{35, 10749}, OriginalLanguage: "fr"},
		{ID: 3, Title: "Bound", ReleaseDate: "", Popularity: 0, GenreIDs: []int{80}, OriginalLanguage: "en"},
		{ID: 4, Title: "Oldboy", ReleaseDate: "2003-11-21", Popularity: 30, GenreIDs: []int{18, 53}, OriginalLanguage: "ko"},
	}
}

func TestApply_NoFiltersIsPassThrough(t *testing.T) {
	raw := transformFixture()
	out := Apply(raw, Filters{})

	assert.Equal(t, raw, out)
}

func TestApply_LanguageFacetsSelectEveryMovie(t *testing.T) {
	raw := []models.Movie{
		{ID: 1, OriginalLanguage: " en"},
		{ID: 2, OriginalLanguage: "EN"},
		{ID: 3, OriginalLanguage: "en"},
		{ID: 4, OriginalLanguage: "Fr "},
	}

	languages := facets.Derive(raw).Languages
	require.Len(t, languages, 2)

	selected := map[int]bool{}
	for _, lang := range languages {
		for _, m := range Apply(raw, Filters{Language: strPtr(lang.Code)}) {
			selected[m.ID] = true
		}
	}
	assert.Len(t, selected, len(raw))

	out := Apply(raw, Filters{Language: strPtr("en")})
	assert.Equal(t, []int{1, 2, 3}, ids(out))
}

func TestApply_GenreFilter(t *testing.T) {
	out := Apply(transformFixture(), Filters{Genre: intPtr(80)})
	assert.Equal(t, []int{1, 3}, ids(out))
}

func TestApply_LanguageFilter(t *testing.T) {
	out := Apply(transformFixture(), Filters{Language: strPtr("en")})
	assert.Equal(t, []int{1, 3}, ids(out))
}

func TestApply_FiltersAreConjunctive(t *testing.T) {
	out := Apply(transformFixture(), Filters{Genre: intPtr(18), Language: strPtr("ko")})
	assert.Equal(t, []int{4}, ids(out))

	out = Apply(transformFixture(), Filters{Genre: intPtr(35), Language: strPtr("en")})
	assert.Empty(t, out)
}

func TestApply_ReleaseDateDesc(t *testing.T) {
	out := Apply(transformFixture(), Filters{Sort: models.SortReleaseDateDesc})
	assert.Equal(t, []int{1, 4, 2, 3}, ids(out))
}

func TestApply_PopularityDescIsStable(t *testing.T) {
	out := Apply(transformFixture(), Filters{Sort: models.SortPopularityDesc})
	assert.Equal(t, []int{2, 4, 1, 3}, ids(out))

	raw := []models.Movie{
		{ID: 10, Title: "Z", Popularity: 5},
		{ID: 11, Title: "A", Popularity: 5},
	}
	out = Apply(raw, Filters{Sort: models.SortPopularityDesc})
	assert.Equal(t, []int{10, 11}, ids(out))
}

func TestApply_TitleAscLocaleAware(t *testing.T) {
	out := Apply(transformFixture(), Filters{Sort: models.SortTitleAsc})
	assert.Equal(t, []int{2, 3, 4, 1}, ids(out))
}

func TestApply_Idempotent(t *testing.T) {
	raw := transformFixture()
	f := Filters{Genre: intPtr(18), Sort: models.SortTitleAsc}

	first := Apply(raw, f)
	second := Apply(raw, f)
	assert.Equal(t, first, second)
}

func TestApply_DoesNotMutateInput(t *testing.T) {
	raw := transformFixture()
	before := ids(raw)

	_ = Apply(raw, Filters{Sort: models.SortReleaseDateDesc})
	assert.Equal(t, before, ids(raw))
}

func TestApply_EmptyInput(t *testing.T) {
	out := Apply(nil, Filters{Sort: models.SortTitleAsc})
	assert.NotNil(t, out)
	assert.Empty(t, out)
}
