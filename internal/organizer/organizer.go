// Package organizer computes canonical library paths for scanned media and
// plans, validates, and executes the file moves that realize them.
package organizer

import (
	"log/slog"
	"path/filepath"

	"github.com/shelfarr/shelfarr/internal/scanner"
)

// OpKind distinguishes folder moves from file renames and relocations.
type OpKind string

const (
	OpRename   OpKind = "rename"
	OpMove     OpKind = "move"
	OpOrganize OpKind = "organize"
)

// Operation describes one pending rename/move. Operations are recomputed
// on every planning request and never persisted.
type Operation struct {
	CurrentPath   string
	SuggestedPath string
	CurrentName   string
	SuggestedName string
	Kind          OpKind

	ShowName          string
	SeasonNumber      int
	EpisodeNumber     int
	NeedsConfirmation bool
}

// Organizer plans and applies canonical-layout file operations.
type Organizer struct {
	log    *slog.Logger
	naming Naming
}

// New creates an organizer. A nil logger falls back to slog.Default();
// empty naming templates fall back to the canonical defaults.
func New(log *slog.Logger, naming Naming) *Organizer {
	if log == nil {
		log = slog.Default()
	}
	return &Organizer{log: log, naming: naming.withDefaults()}
}

// PlanShows produces the operations that bring the scanned shows into the
// canonical layout under base. Files already in place yield no operation,
// so planning an already-canonical tree returns an empty list.
func (o *Organizer) PlanShows(shows []scanner.ScannedShow, base string) []Operation {
	var ops []Operation
	for _, show := range shows {
		folderName := o.showFolderName(show.Name, show.Year)
		folderPath := filepath.Join(base, folderName)

		if filepath.Base(show.FolderPath) != folderName {
			ops = append(ops, Operation{
				CurrentPath:       show.FolderPath,
				SuggestedPath:     folderPath,
				CurrentName:       filepath.Base(show.FolderPath),
				SuggestedName:     folderName,
				Kind:              OpMove,
				ShowName:          show.Name,
				NeedsConfirmation: true,
			})
		}

		for _, season := range show.Seasons {
			seasonPath := filepath.Join(folderPath, seasonFolderName(season.SeasonNumber))
			for _, ep := range season.Episodes {
				suggestedName := o.episodeFileName(show.Name, ep)
				suggestedPath := filepath.Join(seasonPath, suggestedName)
				if ep.FilePath == suggestedPath {
					continue
				}
				ops = append(ops, Operation{
					CurrentPath:       ep.FilePath,
					SuggestedPath:     suggestedPath,
					CurrentName:       ep.FileName,
					SuggestedName:     suggestedName,
					Kind:              OpOrganize,
					ShowName:          show.Name,
					SeasonNumber:      season.SeasonNumber,
					EpisodeNumber:     ep.EpisodeNumber,
					NeedsConfirmation: true,
				})
			}
		}
	}
	return ops
}

// PlanMovies produces the operations that bring the scanned movies into
// per-movie folders under base.
func (o *Organizer) PlanMovies(movies []scanner.ScannedMovie, base string) []Operation {
	var ops []Operation
	for _, movie := range movies {
		folderName := o.movieFolderName(movie.Title, movie.Year)
		suggestedName := o.movieFileName(movie)
		suggestedPath := filepath.Join(base, folderName, suggestedName)
		if movie.FilePath == suggestedPath {
			continue
		}
		ops = append(ops, Operation{
			CurrentPath:       movie.FilePath,
			SuggestedPath:     suggestedPath,
			CurrentName:       movie.FileName,
			SuggestedName:     suggestedName,
			Kind:              OpOrganize,
			ShowName:          movie.Title,
			NeedsConfirmation: true,
		})
	}
	return ops
}
