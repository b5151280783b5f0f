package collection

import (
	"context"
	"fmt"
	"time"
)

// CreateMovie inserts a movie row. Sets movie.ID and AddedAt on success.
func (s *Store) CreateMovie(ctx context.Context, movie *Movie) error {
	now := time.Now()
	result, err := s.db.ExecContext(ctx, `
		INSERT INTO movies (tmdb_id, title, overview, poster_url, backdrop_url, rating, year, runtime, file_path, file_name, file_size, quality, release_group, downloaded, monitored, added_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		movie.CatalogID, movie.Title, movie.Overview, movie.PosterURL, movie.BackdropURL,
		movie.Rating, movie.Year, movie.Runtime, movie.FilePath, movie.FileName,
		movie.FileSize, movie.Quality, movie.ReleaseGroup, movie.Downloaded, movie.Monitored, now,
	)
	if err != nil {
		return fmt.Errorf("insert movie: %w", mapSQLiteError(err))
	}
	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("get last insert id: %w", err)
	}
	movie.ID = id
	movie.AddedAt = now
	return nil
}

// ListMovies returns all movies ordered by title.
func (s *Store) ListMovies(ctx context.Context) ([]Movie, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, tmdb_id, title, overview, poster_url, backdrop_url, rating, year, runtime, file_path, file_name, file_size, quality, release_group, downloaded, monitored, added_at
		FROM movies ORDER BY title`)
	if err != nil {
		return nil, fmt.Errorf("list movies: %w", mapSQLiteError(err))
	}
	defer func() { _ = rows.Close() }()

	var movies []Movie
	for rows.Next() {
		var m Movie
		if err := rows.Scan(&m.ID, &m.CatalogID, &m.Title, &m.Overview,
			&m.PosterURL, &m.BackdropURL, &m.Rating, &m.Year, &m.Runtime,
			&m.FilePath, &m.FileName, &m.FileSize, &m.Quality, &m.ReleaseGroup,
			&m.Downloaded, &m.Monitored, &m.AddedAt); err != nil {
			return nil, fmt.Errorf("scan movie: %w", err)
		}
		movies = append(movies, m)
	}
	return movies, rows.Err()
}
