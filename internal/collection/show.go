package collection

import (
	"context"
	"fmt"
	"time"

	"github.com/shelfarr/shelfarr/internal/scanner"
)

// CreateShow inserts a show with its seasons and episodes in one
// transaction. Episode rows come from the scanned seasons; the show's
// TotalSize is accumulated from their file sizes. Sets show.ID, TotalSize,
// and AddedAt on success.
func (s *Store) CreateShow(ctx context.Context, show *Show, seasons []scanner.ScannedSeason) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	now := time.Now()
	result, err := tx.ExecContext(ctx, `
		INSERT INTO shows (tmdb_id, title, overview, poster_url, backdrop_url, rating, year, folder_path, total_size, monitored, added_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, 0, ?, ?)`,
		show.CatalogID, show.Title, show.Overview, show.PosterURL, show.BackdropURL,
		show.Rating, show.Year, show.FolderPath, show.Monitored, now,
	)
	if err != nil {
		return fmt.Errorf("insert show: %w", mapSQLiteError(err))
	}
	showID, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("get last insert id: %w", err)
	}

	var totalSize int64
	for _, season := range seasons {
		seasonResult, err := tx.ExecContext(ctx, `
			INSERT INTO seasons (show_id, season_number, title, monitored)
			VALUES (?, ?, ?, 1)`,
			showID, season.SeasonNumber, fmt.Sprintf("Season %d", season.SeasonNumber),
		)
		if err != nil {
			return fmt.Errorf("insert season %d: %w", season.SeasonNumber, mapSQLiteError(err))
		}
		seasonID, err := seasonResult.LastInsertId()
		if err != nil {
			return fmt.Errorf("get last insert id: %w", err)
		}

		for _, ep := range season.Episodes {
			title := ep.EpisodeTitle
			if title == "" {
				title = fmt.Sprintf("Episode %d", ep.EpisodeNumber)
			}
			_, err := tx.ExecContext(ctx, `
				INSERT INTO episodes (season_id, episode_number, title, file_path, file_name, file_size, quality, release_group, downloaded, monitored)
				VALUES (?, ?, ?, ?, ?, ?, ?, ?, 1, 1)`,
				seasonID, ep.EpisodeNumber, title, ep.FilePath, ep.FileName,
				ep.FileSize, ep.Quality, ep.ReleaseGroup,
			)
			if err != nil {
				return fmt.Errorf("insert episode S%02dE%02d: %w",
					season.SeasonNumber, ep.EpisodeNumber, mapSQLiteError(err))
			}
			totalSize += ep.FileSize
		}
	}

	if _, err := tx.ExecContext(ctx,
		"UPDATE shows SET total_size = ? WHERE id = ?", totalSize, showID,
	); err != nil {
		return fmt.Errorf("update show size: %w", mapSQLiteError(err))
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	show.ID = showID
	show.TotalSize = totalSize
	show.AddedAt = now
	return nil
}

// ListShows returns all shows ordered by title.
func (s *Store) ListShows(ctx context.Context) ([]Show, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, tmdb_id, title, overview, poster_url, backdrop_url, rating, year, folder_path, total_size, monitored, added_at
		FROM shows ORDER BY title`)
	if err != nil {
		return nil, fmt.Errorf("list shows: %w", mapSQLiteError(err))
	}
	defer func() { _ = rows.Close() }()

	var shows []Show
	for rows.Next() {
		var show Show
		if err := rows.Scan(&show.ID, &show.CatalogID, &show.Title, &show.Overview,
			&show.PosterURL, &show.BackdropURL, &show.Rating, &show.Year,
			&show.FolderPath, &show.TotalSize, &show.Monitored, &show.AddedAt); err != nil {
			return nil, fmt.Errorf("scan show: %w", err)
		}
		shows = append(shows, show)
	}
	return shows, rows.Err()
}

// ListEpisodes returns the episodes of one show, ordered by season then
// episode number.
func (s *Store) ListEpisodes(ctx context.Context, showID int64) ([]Episode, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT e.id, e.season_id, e.episode_number, e.title, e.file_path, e.file_name, e.file_size, e.quality, e.release_group, e.downloaded, e.monitored
		FROM episodes e
		JOIN seasons se ON se.id = e.season_id
		WHERE se.show_id = ?
		ORDER BY se.season_number, e.episode_number`, showID)
	if err != nil {
		return nil, fmt.Errorf("list episodes: %w", mapSQLiteError(err))
	}
	defer func() { _ = rows.Close() }()

	var episodes []Episode
	for rows.Next() {
		var ep Episode
		if err := rows.Scan(&ep.ID, &ep.SeasonID, &ep.EpisodeNumber, &ep.Title,
			&ep.FilePath, &ep.FileName, &ep.FileSize, &ep.Quality,
			&ep.ReleaseGroup, &ep.Downloaded, &ep.Monitored); err != nil {
			return nil, fmt.Errorf("scan episode: %w", err)
		}
		episodes = append(episodes, ep)
	}
	return episodes, rows.Err()
}
