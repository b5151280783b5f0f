package organizer

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/shelfarr/shelfarr/internal/scanner"
)

// illegalChars are characters not allowed in filenames on common filesystems.
var illegalChars = regexp.MustCompile(`[<>:"/\\|?*\x00]`)

// multiSpace matches multiple consecutive spaces.
var multiSpace = regexp.MustCompile(`\s+`)

// CleanName strips characters that are unsafe in folder and file names and
// collapses runs of whitespace.
func CleanName(name string) string {
	name = illegalChars.ReplaceAllString(name, "")
	name = multiSpace.ReplaceAllString(name, " ")
	return strings.TrimSpace(name)
}

// showFolderName builds the show folder from the template, by default
// "Name (Year)", or just the name when the year is unknown.
func (o *Organizer) showFolderName(name string, year int) string {
	return polishName(applyTemplate(o.naming.ShowFolder, map[string]any{
		"title": CleanName(name),
		"year":  yearVar(year),
	}))
}

func (o *Organizer) movieFolderName(title string, year int) string {
	return polishName(applyTemplate(o.naming.MovieFolder, map[string]any{
		"title": CleanName(title),
		"year":  yearVar(year),
	}))
}

func seasonFolderName(season int) string {
	return fmt.Sprintf("Season %02d", season)
}

// episodeFileName builds the episode file name from the template, by
// default "Show - S01E01 - Title [Quality][Group].ext".
func (o *Organizer) episodeFileName(showName string, ep scanner.ScannedEpisode) string {
	return polishName(applyTemplate(o.naming.EpisodeFile, map[string]any{
		"title":         CleanName(showName),
		"season":        ep.SeasonNumber,
		"episode":       ep.EpisodeNumber,
		"episode_title": CleanName(ep.EpisodeTitle),
		"quality":       ep.Quality,
		"group":         ep.ReleaseGroup,
		"ext":           extVar(ep.FilePath),
	}))
}

// movieFileName builds the movie file name from the template, by default
// "Title (Year) [Quality][Group].ext".
func (o *Organizer) movieFileName(movie scanner.ScannedMovie) string {
	return polishName(applyTemplate(o.naming.MovieFile, map[string]any{
		"title":   CleanName(movie.Title),
		"year":    yearVar(movie.Year),
		"quality": movie.Quality,
		"group":   movie.ReleaseGroup,
		"ext":     extVar(movie.FilePath),
	}))
}

// yearVar renders an unknown year as empty so "({year})" collapses away.
func yearVar(year int) any {
	if year == 0 {
		return ""
	}
	return year
}

func extVar(path string) string {
	return strings.TrimPrefix(filepath.Ext(path), ".")
}
