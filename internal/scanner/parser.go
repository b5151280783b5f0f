package scanner

import (
	"regexp"
	"strconv"
	"strings"
)

// EpisodeInfo is the structured result of parsing an episode filename.
type EpisodeInfo struct {
	Show         string
	Season       int
	Episode      int
	Title        string
	Quality      string
	ReleaseGroup string
}

// MovieInfo is the structured result of parsing a movie filename.
type MovieInfo struct {
	Title        string
	Year         int
	Quality      string
	ReleaseGroup string
}

// TV episode patterns, tried in order of strictness. Group order:
// show, season, episode, optional title, extension.
var tvPatterns = []*regexp.Regexp{
	// Show - S01E01 - Title [Quality][Group]{Tag}.ext
	regexp.MustCompile(`^(?i)(.+?)\s*-\s*s(\d{1,2})e(\d{1,3})(?:\s*-\s*(.+?))?(?:\s*\[[^\]]+\])*(?:\s*\{[^}]+\})?\.(\w+)$`),
	// Show S01E01 Title [Quality][Group].ext
	regexp.MustCompile(`^(?i)(.+?)\s+s(\d{1,2})e(\d{1,3})(?:\s+(.+?))?(?:\s*\[[^\]]+\])*\.(\w+)$`),
	// Show.S01E01.Title.ext
	regexp.MustCompile(`^(?i)(.+?)\.s(\d{1,2})e(\d{1,3})(?:\.(.+?))?\.(\w+)$`),
}

// Permissive fallbacks for loose files with no season-folder context.
// Group order: show, season, episode.
var tvFallbackPatterns = []*regexp.Regexp{
	regexp.MustCompile(`^(?i)(.+?)[\s._-]+s(\d{1,2})e(\d{1,3}).*\.\w+$`),
	regexp.MustCompile(`^(?i)(.+?)[\s._-]+(\d{1,2})x(\d{1,3}).*\.\w+$`),
	regexp.MustCompile(`^(?i)(.+?)[\s._-]+season[\s._-]*(\d{1,2})[\s._-]*episode[\s._-]*(\d{1,3}).*\.\w+$`),
}

// Movie patterns, tried in order of strictness. Group order: title, year.
var moviePatterns = []*regexp.Regexp{
	// Title (Year) [Quality][Group].ext
	regexp.MustCompile(`^(?i)(.+?)\s*\((\d{4})\)(?:\s*\[[^\]]+\])*(?:\s*\{[^}]+\})?\.(\w+)$`),
	// Title (Year) Quality Group.ext
	regexp.MustCompile(`^(?i)(.+?)\s*\((\d{4})\)(?:\s+.+?)?\.(\w+)$`),
	// Title.Year.Quality.Group.ext
	regexp.MustCompile(`^(?i)(.+?)\.((?:19|20)\d{2})(?:\.(?:.+?))?\.(\w+)$`),
}

// Quality vocabulary, tiered: resolution markers outrank source markers so
// "Movie.1080p.BluRay.mkv" reports 1080p. Within a tier the longest
// matching token wins.
var qualityTiers = [][]string{
	{"2160p", "1080p", "1080i", "720p", "480p", "4k", "uhd"},
	{"remux", "bluray", "brrip", "dvdrip", "webrip", "webdl", "hdtv", "proper", "repack"},
}

var qualityTokens = func() map[string]bool {
	m := make(map[string]bool)
	for _, tier := range qualityTiers {
		for _, tok := range tier {
			m[tok] = true
		}
	}
	return m
}()

var (
	bracketGroupRe  = regexp.MustCompile(`\[([^\]]+)\]`)
	braceGroupRe    = regexp.MustCompile(`\{([^}]+)\}`)
	trailingGroupRe = regexp.MustCompile(`-([A-Za-z0-9]+)\.\w+$`)
	showFolderRe    = regexp.MustCompile(`^(.+?)\s*\((\d{4})\)$`)
	seasonFolderRe  = regexp.MustCompile(`^(?i)(?:season\s*|s)(\d{1,2})$`)
	digitsRe        = regexp.MustCompile(`\d+`)
)

// ParseEpisodeFile parses an episode filename against the strict pattern
// set. The second return is false when no pattern matches.
func ParseEpisodeFile(name string) (EpisodeInfo, bool) {
	for _, re := range tvPatterns {
		m := re.FindStringSubmatch(name)
		if m == nil {
			continue
		}
		season, err1 := strconv.Atoi(m[2])
		episode, err2 := strconv.Atoi(m[3])
		if err1 != nil || err2 != nil {
			continue
		}
		quality, group := ExtractQualityAndGroup(name)
		return EpisodeInfo{
			Show:         normalizeSeparators(m[1]),
			Season:       season,
			Episode:      episode,
			Title:        normalizeSeparators(m[4]),
			Quality:      quality,
			ReleaseGroup: group,
		}, true
	}
	return EpisodeInfo{}, false
}

// ParseEpisodeFilePermissive tries the strict patterns first, then the
// looser separators (S01E01, 1x01, Season 1 Episode 1). Used for loose
// files with no season-folder context.
func ParseEpisodeFilePermissive(name string) (EpisodeInfo, bool) {
	if info, ok := ParseEpisodeFile(name); ok {
		return info, true
	}
	for _, re := range tvFallbackPatterns {
		m := re.FindStringSubmatch(name)
		if m == nil {
			continue
		}
		season, err1 := strconv.Atoi(m[2])
		episode, err2 := strconv.Atoi(m[3])
		if err1 != nil || err2 != nil {
			continue
		}
		quality, group := ExtractQualityAndGroup(name)
		return EpisodeInfo{
			Show:         normalizeSeparators(m[1]),
			Season:       season,
			Episode:      episode,
			Quality:      quality,
			ReleaseGroup: group,
		}, true
	}
	return EpisodeInfo{}, false
}

// ParseMovieFile parses a movie filename. The second return is false when
// no pattern matches.
func ParseMovieFile(name string) (MovieInfo, bool) {
	for _, re := range moviePatterns {
		m := re.FindStringSubmatch(name)
		if m == nil {
			continue
		}
		year, err := strconv.Atoi(m[2])
		if err != nil {
			continue
		}
		quality, group := ExtractQualityAndGroup(name)
		return MovieInfo{
			Title:        normalizeSeparators(m[1]),
			Year:         year,
			Quality:      quality,
			ReleaseGroup: group,
		}, true
	}
	return MovieInfo{}, false
}

// ParseShowFolder splits "Show Name (2008)" into name and year. A folder
// without a year yields the trimmed name and year 0.
func ParseShowFolder(name string) (string, int) {
	if m := showFolderRe.FindStringSubmatch(name); m != nil {
		year, _ := strconv.Atoi(m[2])
		return strings.TrimSpace(m[1]), year
	}
	return strings.TrimSpace(name), 0
}

// IsSeasonFolder reports whether a folder name follows the season naming
// heuristic ("Season 01", "Season 1", "S01").
func IsSeasonFolder(name string) bool {
	return seasonFolderRe.MatchString(name)
}

// SeasonNumber extracts the season number from a season folder name.
func SeasonNumber(name string) (int, bool) {
	m := digitsRe.FindString(name)
	if m == "" {
		return 0, false
	}
	n, err := strconv.Atoi(m)
	if err != nil {
		return 0, false
	}
	return n, true
}

// ExtractQualityAndGroup scans a filename for a quality token and a release
// group, independent of the primary pattern. Resolution markers take
// precedence over source markers; within a tier the longest match wins.
// The release group is the first of: a bracketed group, a braced group, or
// a trailing -TOKEN before the extension, skipping candidates that collide
// with a quality token.
func ExtractQualityAndGroup(name string) (quality, group string) {
	lower := strings.ToLower(name)
	for _, tier := range qualityTiers {
		for _, tok := range tier {
			if strings.Contains(lower, tok) && len(tok) > len(quality) {
				quality = tok
			}
		}
		if quality != "" {
			break
		}
	}

	for _, re := range []*regexp.Regexp{bracketGroupRe, braceGroupRe, trailingGroupRe} {
		for _, m := range re.FindAllStringSubmatch(name, -1) {
			if !qualityTokens[strings.ToLower(m[1])] {
				return quality, m[1]
			}
		}
	}
	return quality, ""
}

// normalizeSeparators turns dot/underscore separators into spaces and trims.
func normalizeSeparators(s string) string {
	s = strings.ReplaceAll(s, ".", " ")
	s = strings.ReplaceAll(s, "_", " ")
	return strings.Join(strings.Fields(s), " ")
}
