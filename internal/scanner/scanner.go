// Package scanner walks library roots and parses video files into
// structured shows, seasons, episodes, and movies.
package scanner

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
)

// Scanner walks directory trees and assembles scan results.
type Scanner struct {
	log *slog.Logger
}

// New creates a scanner. A nil logger falls back to slog.Default().
func New(log *slog.Logger) *Scanner {
	if log == nil {
		log = slog.Default()
	}
	return &Scanner{log: log}
}

// ScanTV scans the given roots for TV shows. Each immediate subdirectory of
// a root is treated as a show folder; video files directly under a root are
// parsed permissively and grouped into synthetic shows. Permission errors
// are logged and skipped, never aborting sibling paths.
func (s *Scanner) ScanTV(ctx context.Context, roots []string, progress ProgressFunc) (*Result, error) {
	result := &Result{}
	for i, root := range roots {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if progress != nil {
			progress(fmt.Sprintf("Scanning %s...", root), i, len(roots))
		}
		s.scanTVRoot(ctx, root, result)
	}
	return result, nil
}

func (s *Scanner) scanTVRoot(ctx context.Context, root string, result *Result) {
	entries, err := os.ReadDir(root)
	if err != nil {
		s.log.Warn("skipping unreadable root", "path", root, "error", err)
		return
	}

	var looseFiles []string
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return
		}
		name := entry.Name()
		if name[0] == '.' {
			continue
		}
		path := filepath.Join(root, name)
		if entry.IsDir() {
			if show := s.scanShowFolder(path, result); show != nil {
				result.Shows = append(result.Shows, *show)
			}
			continue
		}
		if IsVideoFile(name) && !isSample(name) {
			looseFiles = append(looseFiles, path)
		}
	}

	result.Shows = append(result.Shows, s.groupLooseFiles(looseFiles, root, result)...)
}

// scanShowFolder assembles one show from a show directory: season folders
// are scanned strictly, video files directly in the show folder are parsed
// permissively and grouped by inferred season. Returns nil when the folder
// yields no episodes.
func (s *Scanner) scanShowFolder(showPath string, result *Result) *ScannedShow {
	name, year := ParseShowFolder(filepath.Base(showPath))

	entries, err := os.ReadDir(showPath)
	if err != nil {
		s.log.Warn("skipping unreadable show folder", "path", showPath, "error", err)
		return nil
	}

	show := &ScannedShow{Name: name, Year: year, FolderPath: showPath}
	looseBySeason := make(map[int][]ScannedEpisode)

	for _, entry := range entries {
		entryName := entry.Name()
		if entryName[0] == '.' {
			continue
		}
		path := filepath.Join(showPath, entryName)
		if entry.IsDir() {
			if !IsSeasonFolder(entryName) {
				continue
			}
			if season := s.scanSeasonFolder(path, result); season != nil {
				show.Seasons = append(show.Seasons, *season)
			}
			continue
		}
		if !IsVideoFile(entryName) || isSample(entryName) {
			continue
		}
		episode, ok := s.parseEpisode(path, entryName, true, result)
		if !ok {
			continue
		}
		looseBySeason[episode.SeasonNumber] = append(looseBySeason[episode.SeasonNumber], episode)
	}

	for seasonNum, episodes := range looseBySeason {
		sortEpisodes(episodes)
		show.Seasons = append(show.Seasons, ScannedSeason{
			SeasonNumber: seasonNum,
			Episodes:     episodes,
			FolderPath:   showPath,
		})
	}

	if len(show.Seasons) == 0 {
		return nil
	}
	sortSeasons(show.Seasons)
	return show
}

func (s *Scanner) scanSeasonFolder(seasonPath string, result *Result) *ScannedSeason {
	seasonNum, ok := SeasonNumber(filepath.Base(seasonPath))
	if !ok {
		return nil
	}

	entries, err := os.ReadDir(seasonPath)
	if err != nil {
		s.log.Warn("skipping unreadable season folder", "path", seasonPath, "error", err)
		return nil
	}

	season := &ScannedSeason{SeasonNumber: seasonNum, FolderPath: seasonPath}
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || name[0] == '.' || !IsVideoFile(name) || isSample(name) {
			continue
		}
		episode, ok := s.parseEpisode(filepath.Join(seasonPath, name), name, false, result)
		if !ok {
			continue
		}
		season.Episodes = append(season.Episodes, episode)
	}

	if len(season.Episodes) == 0 {
		return nil
	}
	sortEpisodes(season.Episodes)
	return season
}

// groupLooseFiles parses loose video files found directly under a root and
// groups them into synthetic shows keyed by (show name, year).
func (s *Scanner) groupLooseFiles(files []string, root string, result *Result) []ScannedShow {
	type showKey struct {
		name string
		year int
	}
	grouped := make(map[showKey]map[int][]ScannedEpisode)
	var order []showKey

	for _, path := range files {
		name := filepath.Base(path)
		info, ok := ParseEpisodeFilePermissive(name)
		if !ok {
			result.Unparsed = append(result.Unparsed, path)
			continue
		}
		episode, ok := s.statEpisode(path, name, info)
		if !ok {
			continue
		}
		key := showKey{name: info.Show, year: 0}
		if grouped[key] == nil {
			grouped[key] = make(map[int][]ScannedEpisode)
			order = append(order, key)
		}
		grouped[key][info.Season] = append(grouped[key][info.Season], episode)
	}

	shows := make([]ScannedShow, 0, len(order))
	for _, key := range order {
		show := ScannedShow{Name: key.name, Year: key.year, FolderPath: root}
		for seasonNum, episodes := range grouped[key] {
			sortEpisodes(episodes)
			show.Seasons = append(show.Seasons, ScannedSeason{
				SeasonNumber: seasonNum,
				Episodes:     episodes,
				FolderPath:   root,
			})
		}
		sortSeasons(show.Seasons)
		shows = append(shows, show)
	}
	return shows
}

// parseEpisode parses and stats a single episode file. A parse miss is
// recorded in result.Unparsed; a stat failure is logged and skipped.
func (s *Scanner) parseEpisode(path, name string, permissive bool, result *Result) (ScannedEpisode, bool) {
	var info EpisodeInfo
	var ok bool
	if permissive {
		info, ok = ParseEpisodeFilePermissive(name)
	} else {
		info, ok = ParseEpisodeFile(name)
	}
	if !ok {
		result.Unparsed = append(result.Unparsed, path)
		return ScannedEpisode{}, false
	}
	return s.statEpisode(path, name, info)
}

func (s *Scanner) statEpisode(path, name string, info EpisodeInfo) (ScannedEpisode, bool) {
	fi, err := os.Stat(path)
	if err != nil {
		s.log.Warn("skipping unreadable file", "path", path, "error", err)
		return ScannedEpisode{}, false
	}
	return ScannedEpisode{
		FilePath:      path,
		FileName:      name,
		FileSize:      fi.Size(),
		ModifiedTime:  fi.ModTime(),
		SeasonNumber:  info.Season,
		EpisodeNumber: info.Episode,
		EpisodeTitle:  info.Title,
		Quality:       info.Quality,
		ReleaseGroup:  info.ReleaseGroup,
	}, true
}

// ScanMovies scans the given roots for movie files at any depth. Every
// video file is parsed independently; no folder grouping is implied.
func (s *Scanner) ScanMovies(ctx context.Context, roots []string, progress ProgressFunc) (*Result, error) {
	result := &Result{}
	for i, root := range roots {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if progress != nil {
			progress(fmt.Sprintf("Scanning %s...", root), i, len(roots))
		}
		s.scanMovieRoot(ctx, root, result)
	}
	return result, nil
}

func (s *Scanner) scanMovieRoot(ctx context.Context, root string, result *Result) {
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			s.log.Warn("skipping unreadable path", "path", path, "error", err)
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		name := d.Name()
		if name[0] == '.' && path != root {
			if d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if d.IsDir() || !IsVideoFile(name) || isSample(name) {
			return nil
		}

		info, ok := ParseMovieFile(name)
		if !ok {
			result.Unparsed = append(result.Unparsed, path)
			return nil
		}
		fi, err := os.Stat(path)
		if err != nil {
			s.log.Warn("skipping unreadable file", "path", path, "error", err)
			return nil
		}
		result.Movies = append(result.Movies, ScannedMovie{
			Title:        info.Title,
			Year:         info.Year,
			FilePath:     path,
			FileName:     name,
			FileSize:     fi.Size(),
			ModifiedTime: fi.ModTime(),
			Quality:      info.Quality,
			ReleaseGroup: info.ReleaseGroup,
			FolderPath:   filepath.Dir(path),
		})
		return nil
	})
	if err != nil && err != context.Canceled && err != context.DeadlineExceeded {
		s.log.Warn("movie walk ended early", "path", root, "error", err)
	}
}

func sortEpisodes(episodes []ScannedEpisode) {
	sort.SliceStable(episodes, func(i, j int) bool {
		return episodes[i].EpisodeNumber < episodes[j].EpisodeNumber
	})
}

func sortSeasons(seasons []ScannedSeason) {
	sort.SliceStable(seasons, func(i, j int) bool {
		return seasons[i].SeasonNumber < seasons[j].SeasonNumber
	})
}
