package collection

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/shelfarr/shelfarr/internal/catalog"
	"github.com/shelfarr/shelfarr/internal/migrations"
	"github.com/shelfarr/shelfarr/internal/scanner"
)

func setupTestStore(t *testing.T) *Store {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(migrations.InitialSQL)
	require.NoError(t, err)
	return NewStore(db)
}

func testSeasons() []scanner.ScannedSeason {
	return []scanner.ScannedSeason{{
		SeasonNumber: 1,
		Episodes: []scanner.ScannedEpisode{
			{EpisodeNumber: 1, EpisodeTitle: "Pilot", FilePath: "/tv/e1.mkv",
				FileName: "e1.mkv", FileSize: 100, Quality: "720p", ReleaseGroup: "CTU"},
			{EpisodeNumber: 2, FilePath: "/tv/e2.mkv", FileName: "e2.mkv", FileSize: 250},
		},
	}}
}

func TestCreateShow(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	show := &Show{
		CatalogID: 1396, Title: "Breaking Bad", Year: 2008,
		Rating: 8.9, FolderPath: "/tv/Breaking Bad (2008)", Monitored: true,
	}
	require.NoError(t, store.CreateShow(ctx, show, testSeasons()))
	assert.NotZero(t, show.ID)
	assert.Equal(t, int64(350), show.TotalSize)
	assert.False(t, show.AddedAt.IsZero())

	shows, err := store.ListShows(ctx)
	require.NoError(t, err)
	require.Len(t, shows, 1)
	assert.Equal(t, "Breaking Bad", shows[0].Title)
	assert.Equal(t, int64(350), shows[0].TotalSize)

	episodes, err := store.ListEpisodes(ctx, show.ID)
	require.NoError(t, err)
	require.Len(t, episodes, 2)
	assert.Equal(t, "Pilot", episodes[0].Title)
	// Untitled episodes fall back to a numbered title.
	assert.Equal(t, "Episode 2", episodes[1].Title)
	assert.True(t, episodes[0].Downloaded)
}

func TestCreateShow_DuplicateCatalogID(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	first := &Show{CatalogID: 1396, Title: "Breaking Bad"}
	require.NoError(t, store.CreateShow(ctx, first, nil))

	dup := &Show{CatalogID: 1396, Title: "Breaking Bad Again"}
	err := store.CreateShow(ctx, dup, nil)
	assert.ErrorIs(t, err, ErrDuplicate)

	// The failed insert must not leave partial rows behind.
	shows, err := store.ListShows(ctx)
	require.NoError(t, err)
	assert.Len(t, shows, 1)
}

func TestExists(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.CreateShow(ctx, &Show{CatalogID: 1396, Title: "Breaking Bad"}, nil))
	require.NoError(t, store.CreateMovie(ctx, &Movie{CatalogID: 27205, Title: "Inception"}))

	tests := []struct {
		id   int64
		kind catalog.MediaType
		want bool
	}{
		{1396, catalog.MediaTV, true},
		{1396, catalog.MediaMovie, false},
		{27205, catalog.MediaMovie, true},
		{27205, catalog.MediaTV, false},
		{42, catalog.MediaTV, false},
	}
	for _, tt := range tests {
		got, err := store.Exists(ctx, tt.id, tt.kind)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "Exists(%d, %s)", tt.id, tt.kind)
	}
}

func TestCreateMovie(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	movie := &Movie{
		CatalogID: 27205, Title: "Inception", Year: 2010, Rating: 8.4,
		FilePath: "/movies/Inception (2010)/Inception (2010) [1080p][XYZ].mkv",
		FileName: "Inception (2010) [1080p][XYZ].mkv",
		FileSize: 4096, Quality: "1080p", ReleaseGroup: "XYZ",
		Downloaded: true, Monitored: true,
	}
	require.NoError(t, store.CreateMovie(ctx, movie))
	assert.NotZero(t, movie.ID)

	movies, err := store.ListMovies(ctx)
	require.NoError(t, err)
	require.Len(t, movies, 1)
	assert.Equal(t, "Inception", movies[0].Title)
	assert.Equal(t, "1080p", movies[0].Quality)
	assert.True(t, movies[0].Downloaded)

	err = store.CreateMovie(ctx, &Movie{CatalogID: 27205, Title: "Inception"})
	assert.ErrorIs(t, err, ErrDuplicate)
}

func TestListEmpty(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	shows, err := store.ListShows(ctx)
	require.NoError(t, err)
	assert.Empty(t, shows)

	movies, err := store.ListMovies(ctx)
	require.NoError(t, err)
	assert.Empty(t, movies)
}
