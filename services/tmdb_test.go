package services

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"moviedate/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(i int) *int { return &i }

func setupTestService(t *testing.T, handler http.HandlerFunc, opts ...Option) *TMDBService {
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	svc, err := NewTMDBService("key", append([]Option{WithBaseURL(server.URL)}, opts...)...)
	require.NoError(t, err)
	return svc
}

func TestNewTMDBService_RequiresAPIKey(t *testing.T) {
	_, err := NewTMDBService("   ")
	assert.Error(t, err)
}

func TestDiscoverParams_ExactYear(t *testing.T) {
	params := DiscoverParams(models.QueryParams{Month: 3, Day: 31, Year: intPtr(1999)})

	assert.Equal(t, "1999-03-31", params.Get("primary_release_date.gte"))
	assert.Equal(t, "1999-03-31", params.Get("primary_release_date.lte"))
	assert.Equal(t, "popularity.desc", params.Get("sort_by"))
	assert.Equal(t, "1", params.Get("page"))
}

func TestDiscoverParams_AnyYear(t *testing.T) {
	params := DiscoverParams(models.QueryParams{Month: 7, Day: 4})

	assert.Equal(t, "1900-07-04", params.Get("primary_release_date.gte"))
	assert.Equal(t, "2030-07-04", params.Get("primary_release_date.lte"))
	assert.Equal(t, "primary_release_date.desc", params.Get("sort_by"))
	assert.Equal(t, "1", params.Get("page"))
}

func TestDiscoverByDate_Success(t *testing.T) {
	svc := setupTestService(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/discover/movie", r.URL.Path)
		q := r.URL.Query()
		assert.Equal(t, "key", q.Get("api_key"))
		assert.Equal(t, "en-US", q.Get("language"))
		assert.Equal(t, "1999-03-31", q.Get("primary_release_date.gte"))
		assert.Empty(t, r.Header.Get("Authorization"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"page":1,"total_pages":4,"total_results":61,"results":[
			{"id":603,"title":"The Matrix","release_date":"1999-03-31","genre_ids":[28,878],
			 "original_language":"en","popularity":88.5,"vote_average":8.2,"adult":false}]}`))
	})

	movies, err := svc.DiscoverByDate(context.Background(), models.QueryParams{Month: 3, Day: 31, Year: intPtr(1999)})
	require.NoError(t, err)
	require.Len(t, movies, 1)
	assert.Equal(t, 603, movies[0].ID)
	assert.Equal(t, "The Matrix", movies[0].Title)
	assert.Equal(t, []int{28, 878}, movies[0].GenreIDs)
	assert.Equal(t, "en", movies[0].OriginalLanguage)
	assert.InDelta(t, 88.5, movies[0].Popularity, 0.001)
}

func TestDiscoverByDate_BearerAuth(t *testing.T) {
	svc := setupTestService(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer key", r.Header.Get("Authorization"))
		assert.Empty(t, r.URL.Query().Get("api_key"))
		_, _ = w.Write([]byte(`{"results":[]}`))
	}, WithBearerAuth())

	movies, err := svc.DiscoverByDate(context.Background(), models.QueryParams{Month: 1, Day: 1})
	require.NoError(t, err)
	assert.Empty(t, movies)
}

func TestDiscoverByDate_NullResults(t *testing.T) {
	svc := setupTestService(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"page":1,"results":null,"total_results":0}`))
	})

	movies, err := svc.DiscoverByDate(context.Background(), models.QueryParams{Month: 2, Day: 29})
	require.NoError(t, err)
	assert.NotNil(t, movies)
	assert.Empty(t, movies)
}

func TestDiscoverByDate_HTTPError(t *testing.T) {
	svc := setupTestService(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"status_code":500}`))
	})

	_, err := svc.DiscoverByDate(context.Background(), models.QueryParams{Month: 3, Day: 31})
	require.Error(t, err)

	var fetchErr *FetchError
	require.True(t, errors.As(err, &fetchErr))
	assert.Equal(t, KindHTTP, fetchErr.Kind)
	assert.Equal(t, http.StatusInternalServerError, fetchErr.Status)
}

func TestDiscoverByDate_ParseError(t *testing.T) {
	svc := setupTestService(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"results": [`))
	})

	_, err := svc.DiscoverByDate(context.Background(), models.QueryParams{Month: 3, Day: 31})
	var fetchErr *FetchError
	require.True(t, errors.As(err, &fetchErr))
	assert.Equal(t, KindParse, fetchErr.Kind)
}

func TestDiscoverByDate_NetworkError(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	baseURL := server.URL
	server.Close()

	svc, err := NewTMDBService("key", WithBaseURL(baseURL))
	require.NoError(t, err)

	_, err = svc.DiscoverByDate(context.Background(), models.QueryParams{Month: 3, Day: 31})
	var fetchErr *FetchError
	require.True(t, errors.As(err, &fetchErr))
	assert.Equal(t, KindNetwork, fetchErr.Kind)
	assert.Zero(t, fetchErr.Status)
	assert.NotNil(t, errors.Unwrap(fetchErr))
}

func TestDiscoverByDate_InvalidQuery(t *testing.T) {
	called := false
	svc := setupTestService(t, func(w http.ResponseWriter, _ *http.Request) {
		called = true
	})

	_, err := svc.DiscoverByDate(context.Background(), models.QueryParams{Month: 13, Day: 1})
	assert.ErrorIs(t, err, models.ErrInvalidQuery)
	assert.False(t, called)
}

func TestTrending(t *testing.T) {
	svc := setupTestService(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/movie/popular", r.URL.Path)
		assert.Equal(t, "1", r.URL.Query().Get("page"))
		_, _ = w.Write([]byte(`{"results":[{"id":1,"title":"A","backdrop_path":"/a.jpg"},{"id":2,"title":"B"}]}`))
	})

	movies, err := svc.Trending(context.Background())
	require.NoError(t, err)
	require.Len(t, movies, 2)
	assert.Equal(t, "/a.jpg", movies[0].BackdropPath)
	assert.Empty(t, movies[1].BackdropPath)
}

func TestImageURL(t *testing.T) {
	assert.Equal(t, PlaceholderImage, ImageURL("", ImageSizePoster))
	assert.Equal(t, "https://image.tmdb.org/t/p/w300/abc.jpg", ImageURL("/abc.jpg", ImageSizeThumb))
	assert.Equal(t, "https://image.tmdb.org/t/p/original/abc.jpg", ImageURL("/abc.jpg", ImageSizeOriginal))
	assert.Equal(t, "https://image.tmdb.org/t/p/w500/abc.jpg", ImageURL("/abc.jpg", ""))
}

func TestMovieURL(t *testing.T) {
	assert.Equal(t, "https://www.themoviedb.org/movie/603", MovieURL(603))
}
