// Package matcher pairs scanned library items with catalog candidates and
// classifies each pairing with a confidence status.
package matcher

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/shelfarr/shelfarr/internal/catalog"
	"github.com/shelfarr/shelfarr/internal/scanner"
)

// ErrUnknownCandidate is returned when a manual selection names a catalog
// id that is not in the match's candidate list.
var ErrUnknownCandidate = errors.New("matcher: unknown candidate id")

// Status classifies a match after scoring or manual review.
type Status string

const (
	StatusPending             Status = "pending"
	StatusMatched             Status = "matched"
	StatusNeedsReview         Status = "needs_review"
	StatusManual              Status = "manual"
	StatusSkipped             Status = "skipped"
	StatusAlreadyInCollection Status = "already_in_collection"
)

// ScoredCandidate is a catalog candidate with its computed match score.
type ScoredCandidate struct {
	catalog.Candidate
	Score float64
}

// Match ties one scanned item to its scored candidate list. Exactly one of
// Show or Movie is set, per MediaType.
type Match struct {
	MediaType  catalog.MediaType
	Show       *scanner.ScannedShow
	Movie      *scanner.ScannedMovie
	Candidates []ScoredCandidate
	Selected   *catalog.Candidate
	Confidence float64
	Status     Status
}

// ScannedTitle returns the raw title of the scanned item behind the match.
func (m *Match) ScannedTitle() string {
	if m.Show != nil {
		return m.Show.Name
	}
	if m.Movie != nil {
		return m.Movie.Title
	}
	return ""
}

// SelectCandidate marks the candidate with the given catalog id as the
// user's manual choice.
func (m *Match) SelectCandidate(id int64) error {
	for i := range m.Candidates {
		if m.Candidates[i].ID == id {
			selected := m.Candidates[i].Candidate
			m.Selected = &selected
			m.Status = StatusManual
			return nil
		}
	}
	return ErrUnknownCandidate
}

// Skip marks the item as excluded from import.
func (m *Match) Skip() {
	m.Selected = nil
	m.Status = StatusSkipped
}

//go:generate mockgen -destination=mocks/mock_matcher.go -package=mocks github.com/shelfarr/shelfarr/internal/matcher CollectionChecker

// CollectionChecker reports whether a catalog entry is already present in
// the local collection.
type CollectionChecker interface {
	Exists(ctx context.Context, catalogID int64, kind catalog.MediaType) (bool, error)
}

// Options tune matcher behavior. Zero-value thresholds fall back to the
// defaults used across the app.
type Options struct {
	TVThreshold    float64
	MovieThreshold float64
	Log            *slog.Logger
}

// Matcher scores catalog candidates against scanned items.
type Matcher struct {
	search         catalog.Searcher
	collection     CollectionChecker
	tvThreshold    float64
	movieThreshold float64
	log            *slog.Logger
}

// New creates a matcher around a catalog searcher and a collection checker.
func New(search catalog.Searcher, collection CollectionChecker, opts Options) *Matcher {
	if opts.TVThreshold == 0 {
		opts.TVThreshold = 0.80
	}
	if opts.MovieThreshold == 0 {
		opts.MovieThreshold = 0.85
	}
	if opts.Log == nil {
		opts.Log = slog.Default()
	}
	return &Matcher{
		search:         search,
		collection:     collection,
		tvThreshold:    opts.TVThreshold,
		movieThreshold: opts.MovieThreshold,
		log:            opts.Log,
	}
}

// MatchShows matches every scanned show, preserving input order. A failed
// catalog lookup leaves that item pending with no candidates; it never
// aborts the batch.
func (m *Matcher) MatchShows(ctx context.Context, shows []scanner.ScannedShow, progress scanner.ProgressFunc) ([]Match, error) {
	matches := make([]Match, 0, len(shows))
	for i := range shows {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		show := &shows[i]
		if progress != nil {
			progress(fmt.Sprintf("Matching %s...", show.Name), i, len(shows))
		}
		matches = append(matches, m.matchShow(ctx, show))
	}
	return matches, nil
}

func (m *Matcher) matchShow(ctx context.Context, show *scanner.ScannedShow) Match {
	match := Match{MediaType: catalog.MediaTV, Show: show, Status: StatusPending}

	candidates, err := m.search.Search(ctx, BuildQuery(show.Name, show.Year), catalog.MediaTV)
	if err != nil {
		m.log.Warn("catalog lookup failed", "title", show.Name, "error", err)
		return match
	}

	scored := scoreCandidates(candidates, func(c catalog.Candidate) float64 {
		return scoreTV(show, c)
	}, scoreFloor)
	m.classify(ctx, &match, scored, m.tvThreshold)
	return match
}

// MatchMovies matches every scanned movie, preserving input order, with
// the same per-item failure semantics as MatchShows.
func (m *Matcher) MatchMovies(ctx context.Context, movies []scanner.ScannedMovie, progress scanner.ProgressFunc) ([]Match, error) {
	matches := make([]Match, 0, len(movies))
	for i := range movies {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		movie := &movies[i]
		if progress != nil {
			progress(fmt.Sprintf("Matching %s...", movie.Title), i, len(movies))
		}
		matches = append(matches, m.matchMovie(ctx, movie))
	}
	return matches, nil
}

func (m *Matcher) matchMovie(ctx context.Context, movie *scanner.ScannedMovie) Match {
	match := Match{MediaType: catalog.MediaMovie, Movie: movie, Status: StatusPending}

	candidates, err := m.search.Search(ctx, BuildQuery(movie.Title, movie.Year), catalog.MediaMovie)
	if err != nil {
		m.log.Warn("catalog lookup failed", "title", movie.Title, "error", err)
		return match
	}

	scored := scoreCandidates(candidates, func(c catalog.Candidate) float64 {
		return scoreMovie(movie, c)
	}, scoreFloor)
	m.classify(ctx, &match, scored, m.movieThreshold)
	return match
}

// classify assigns status from the scored candidate list: no survivors
// means skipped; a top candidate already in the collection wins outright;
// otherwise the auto-match threshold decides matched vs needs_review.
func (m *Matcher) classify(ctx context.Context, match *Match, scored []ScoredCandidate, threshold float64) {
	match.Candidates = scored
	if len(scored) == 0 {
		match.Status = StatusSkipped
		return
	}
	match.Confidence = scored[0].Score
	top := scored[0].Candidate

	exists, err := m.collection.Exists(ctx, top.ID, match.MediaType)
	if err != nil {
		m.log.Warn("collection lookup failed", "title", top.Title, "error", err)
	}
	if exists {
		match.Selected = &top
		match.Status = StatusAlreadyInCollection
		return
	}

	if match.Confidence >= threshold {
		match.Selected = &top
		match.Status = StatusMatched
	} else {
		match.Status = StatusNeedsReview
	}
}

// Research replaces a match's candidate list with a fresh catalog search
// for a user-supplied query and resets the match to pending.
func (m *Matcher) Research(ctx context.Context, match *Match, query string) error {
	candidates, err := m.search.Search(ctx, query, match.MediaType)
	if err != nil {
		return fmt.Errorf("research %q: %w", query, err)
	}

	score := func(c catalog.Candidate) float64 {
		if match.Show != nil {
			return scoreTV(match.Show, c)
		}
		return scoreMovie(match.Movie, c)
	}
	// No floor here: the user asked for these results, show them all.
	match.Candidates = scoreCandidates(candidates, score, -1)
	match.Selected = nil
	match.Confidence = 0
	if len(match.Candidates) > 0 {
		match.Confidence = match.Candidates[0].Score
	}
	match.Status = StatusPending
	return nil
}
