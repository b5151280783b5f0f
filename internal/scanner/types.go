package scanner

import "time"

// ScannedEpisode is a single parsed episode file. Immutable once parsed.
type ScannedEpisode struct {
	FilePath      string
	FileName      string
	FileSize      int64
	ModifiedTime  time.Time
	SeasonNumber  int
	EpisodeNumber int
	EpisodeTitle  string // empty if not present in the filename
	Quality       string
	ReleaseGroup  string
}

// ScannedSeason groups episodes of one season, ordered by episode number.
type ScannedSeason struct {
	SeasonNumber int
	Episodes     []ScannedEpisode
	FolderPath   string
}

// ScannedShow is a show assembled from one folder (or from loose files
// grouped under a root), seasons ordered by season number.
type ScannedShow struct {
	Name       string
	Year       int // 0 if unknown
	FolderPath string
	Seasons    []ScannedSeason
}

// TotalEpisodes returns the episode count summed across seasons.
func (s *ScannedShow) TotalEpisodes() int {
	total := 0
	for _, season := range s.Seasons {
		total += len(season.Episodes)
	}
	return total
}

// ScannedMovie is a single parsed movie file.
type ScannedMovie struct {
	Title        string
	Year         int // 0 if unknown
	FilePath     string
	FileName     string
	FileSize     int64
	ModifiedTime time.Time
	Quality      string
	ReleaseGroup string
	FolderPath   string
}

// Result is the complete output of one scan. Video files that no pattern
// could interpret are returned in Unparsed rather than dropped.
type Result struct {
	Shows    []ScannedShow
	Movies   []ScannedMovie
	Unparsed []string
}

// ItemCount returns the number of scanned top-level items (shows or movies).
func (r *Result) ItemCount() int {
	if len(r.Shows) > 0 {
		return len(r.Shows)
	}
	return len(r.Movies)
}

// ProgressFunc receives scan progress updates: a human-readable message,
// the index of the root being scanned, and the total number of roots.
type ProgressFunc func(message string, current, total int)
