package organizer

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Default naming templates. Placeholders use {name}, or {name:02} for
// zero-padded integers.
const (
	DefaultShowFolderNaming  = "{title} ({year})"
	DefaultEpisodeFileNaming = "{title} - S{season:02}E{episode:02} - {episode_title} [{quality}][{group}].{ext}"
	DefaultMovieFolderNaming = "{title} ({year})"
	DefaultMovieFileNaming   = "{title} ({year}) [{quality}][{group}].{ext}"
)

// Naming carries the folder and file name templates for both library
// kinds. Empty fields fall back to the canonical defaults.
type Naming struct {
	ShowFolder  string
	EpisodeFile string
	MovieFolder string
	MovieFile   string
}

func (n Naming) withDefaults() Naming {
	if n.ShowFolder == "" {
		n.ShowFolder = DefaultShowFolderNaming
	}
	if n.EpisodeFile == "" {
		n.EpisodeFile = DefaultEpisodeFileNaming
	}
	if n.MovieFolder == "" {
		n.MovieFolder = DefaultMovieFolderNaming
	}
	if n.MovieFile == "" {
		n.MovieFile = DefaultMovieFileNaming
	}
	return n
}

// placeholderRe matches {name} or {name:02} style placeholders.
var placeholderRe = regexp.MustCompile(`\{(\w+)(?::(\d+))?\}`)

// applyTemplate substitutes variables into a template string. Unknown
// placeholders are left as-is.
func applyTemplate(template string, vars map[string]any) string {
	return placeholderRe.ReplaceAllStringFunc(template, func(match string) string {
		parts := placeholderRe.FindStringSubmatch(match)
		val, ok := vars[parts[1]]
		if !ok {
			return match
		}
		if parts[2] != "" {
			if width, err := strconv.Atoi(parts[2]); err == nil {
				if i, ok := val.(int); ok {
					return fmt.Sprintf("%0*d", width, i)
				}
			}
		}
		return fmt.Sprintf("%v", val)
	})
}

var (
	emptyTagsRe    = regexp.MustCompile(`\(\)|\[\]|\{\}`)
	danglingDashRe = regexp.MustCompile(`\s-\s([\[.])`)
	spaceDotRe     = regexp.MustCompile(`\s+\.`)
)

// polishName removes the artifacts left when a placeholder expands empty:
// bare "()"/"[]" pairs, a dash dangling before a tag or the extension, and
// whitespace before the extension dot.
func polishName(s string) string {
	s = emptyTagsRe.ReplaceAllString(s, "")
	s = multiSpace.ReplaceAllString(s, " ")
	s = danglingDashRe.ReplaceAllString(s, " $1")
	s = spaceDotRe.ReplaceAllString(s, ".")
	s = strings.TrimSpace(s)
	return strings.TrimSuffix(s, " -")
}
