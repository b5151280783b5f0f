package tmdb

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shelfarr/shelfarr/internal/catalog"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient("test-key", WithBaseURL(srv.URL))
}

func TestSearchTV(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/3/search/tv", r.URL.Path)
		assert.Equal(t, "test-key", r.URL.Query().Get("api_key"))
		assert.Equal(t, "Breaking Bad", r.URL.Query().Get("query"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"page":1,"results":[{
			"id": 1396,
			"name": "Breaking Bad",
			"first_air_date": "2008-01-20",
			"poster_path": "/poster.jpg",
			"backdrop_path": "/backdrop.jpg",
			"overview": "A chemistry teacher turns to crime.",
			"vote_average": 8.9,
			"vote_count": 12000,
			"popularity": 245.1
		}]}`))
	})

	got, err := client.Search(context.Background(), "Breaking Bad", catalog.MediaTV)
	require.NoError(t, err)
	require.Len(t, got, 1)

	c := got[0]
	assert.Equal(t, int64(1396), c.ID)
	assert.Equal(t, "Breaking Bad", c.Title)
	assert.Equal(t, catalog.MediaTV, c.MediaType)
	assert.Equal(t, 2008, c.Year)
	assert.Equal(t, "https://image.tmdb.org/t/p/w500/poster.jpg", c.PosterURL)
	assert.Equal(t, "https://image.tmdb.org/t/p/w1280/backdrop.jpg", c.BackdropURL)
	assert.Equal(t, 8.9, c.Rating)
	assert.Equal(t, 12000, c.VoteCount)
}

func TestSearchMovie(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/3/search/movie", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"page":1,"results":[{
			"id": 27205,
			"title": "Inception",
			"release_date": "2010-07-15"
		}]}`))
	})

	got, err := client.Search(context.Background(), "Inception", catalog.MediaMovie)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Inception", got[0].Title)
	assert.Equal(t, 2010, got[0].Year)
	assert.Empty(t, got[0].PosterURL)
}

func TestSearchNoResults(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"page":1,"results":[]}`))
	})

	got, err := client.Search(context.Background(), "zzzzz", catalog.MediaMovie)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestSearchServerError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	_, err := client.Search(context.Background(), "query", catalog.MediaTV)
	assert.Error(t, err)
}

func TestDetails(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/3/tv/1396", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"id": 1396,
			"name": "Breaking Bad",
			"first_air_date": "2008-01-20",
			"genres": [{"name": "Drama"}, {"name": "Crime"}],
			"networks": [{"name": "AMC"}],
			"status": "Ended",
			"number_of_seasons": 5,
			"number_of_episodes": 62
		}`))
	})

	got, err := client.Details(context.Background(), 1396, catalog.MediaTV)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Breaking Bad", got.Title)
	assert.Equal(t, []string{"Drama", "Crime"}, got.Genres)
	assert.Equal(t, []string{"AMC"}, got.Networks)
	assert.Equal(t, "Ended", got.Status)
	assert.Equal(t, 5, got.SeasonCount)
	assert.Equal(t, 62, got.EpisodeCount)
}

func TestDetailsNotFound(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	got, err := client.Details(context.Background(), 999999, catalog.MediaMovie)
	require.NoError(t, err)
	assert.Nil(t, got)
}
