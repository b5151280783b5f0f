// Package collection persists imported shows and movies in SQLite.
package collection

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/shelfarr/shelfarr/internal/catalog"
)

// Store provides access to collection data.
type Store struct {
	db *sql.DB
}

// NewStore creates a new collection store.
func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// Show is a TV show row in the collection.
type Show struct {
	ID          int64
	CatalogID   int64
	Title       string
	Overview    string
	PosterURL   string
	BackdropURL string
	Rating      float64
	Year        int
	FolderPath  string
	TotalSize   int64
	Monitored   bool
	AddedAt     time.Time
}

// Season is one season row belonging to a show.
type Season struct {
	ID           int64
	ShowID       int64
	SeasonNumber int
	Title        string
	Monitored    bool
}

// Episode is one episode row belonging to a season.
type Episode struct {
	ID            int64
	SeasonID      int64
	EpisodeNumber int
	Title         string
	FilePath      string
	FileName      string
	FileSize      int64
	Quality       string
	ReleaseGroup  string
	Downloaded    bool
	Monitored     bool
}

// Movie is a movie row in the collection.
type Movie struct {
	ID           int64
	CatalogID    int64
	Title        string
	Overview     string
	PosterURL    string
	BackdropURL  string
	Rating       float64
	Year         int
	Runtime      int
	FilePath     string
	FileName     string
	FileSize     int64
	Quality      string
	ReleaseGroup string
	Downloaded   bool
	Monitored    bool
	AddedAt      time.Time
}

// mapSQLiteError converts SQLite errors to custom error types.
func mapSQLiteError(err error) error {
	if err == nil {
		return nil
	}
	if err == sql.ErrNoRows {
		return ErrNotFound
	}
	// modernc.org/sqlite wraps errors; check error message for constraint violations
	errStr := err.Error()
	if strings.Contains(errStr, "UNIQUE constraint failed") ||
		strings.Contains(errStr, "PRIMARY KEY constraint failed") {
		return ErrDuplicate
	}
	if strings.Contains(errStr, "FOREIGN KEY constraint failed") ||
		strings.Contains(errStr, "CHECK constraint failed") {
		return ErrConstraint
	}
	return err
}

// Exists reports whether a catalog entry is already in the collection.
func (s *Store) Exists(ctx context.Context, catalogID int64, kind catalog.MediaType) (bool, error) {
	table := "movies"
	if kind == catalog.MediaTV {
		table = "shows"
	}
	var count int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM "+table+" WHERE tmdb_id = ?", catalogID,
	).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("check %s existence: %w", table, mapSQLiteError(err))
	}
	return count > 0, nil
}
