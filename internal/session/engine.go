package session

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/shelfarr/shelfarr/internal/catalog"
	"github.com/shelfarr/shelfarr/internal/collection"
	"github.com/shelfarr/shelfarr/internal/config"
	"github.com/shelfarr/shelfarr/internal/matcher"
	"github.com/shelfarr/shelfarr/internal/organizer"
	"github.com/shelfarr/shelfarr/internal/scanner"
)

// ManualChoice is one manual-match instruction for a preview item: select
// a candidate by catalog id, re-search with a free-text query, or skip.
// Exactly one field should be set.
type ManualChoice struct {
	CandidateID *int64
	Query       string
	Skip        bool
}

// Engine drives sessions through scan, match, review, and import.
type Engine struct {
	cfg        *config.Config
	scanner    *scanner.Scanner
	matcher    *matcher.Matcher
	collection *collection.Store
	organizer  *organizer.Organizer
	sessions   *Store
	log        *slog.Logger

	group errgroup.Group
}

// NewEngine wires the pipeline components around a session store.
func NewEngine(cfg *config.Config, sc *scanner.Scanner, m *matcher.Matcher,
	coll *collection.Store, org *organizer.Organizer, sessions *Store, log *slog.Logger) *Engine {
	if log == nil {
		log = slog.Default()
	}
	return &Engine{
		cfg:        cfg,
		scanner:    sc,
		matcher:    m,
		collection: coll,
		organizer:  org,
		sessions:   sessions,
		log:        log,
	}
}

// Wait blocks until all background session tasks have finished. Intended
// for shutdown.
func (e *Engine) Wait() error {
	return e.group.Wait()
}

// Start validates the requested roots against the configured libraries,
// registers a new session, and launches the scan-and-match pipeline in the
// background. Validation failures are reported before any work begins.
func (e *Engine) Start(ctx context.Context, kind catalog.MediaType, roots []string) (Snapshot, error) {
	if kind != catalog.MediaTV && kind != catalog.MediaMovie {
		return Snapshot{}, fmt.Errorf("unknown media type %q", kind)
	}
	if err := e.cfg.ValidateRoots(string(kind), roots); err != nil {
		return Snapshot{}, err
	}

	sess := e.sessions.Create(kind, roots)
	taskCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	sess.mu.Lock()
	sess.cancel = cancel
	sess.mu.Unlock()

	e.group.Go(func() error {
		e.runPipeline(taskCtx, sess)
		return nil
	})
	return sess.Snapshot(), nil
}

// runPipeline executes the scanning and matching phases, leaving the
// session in preview on success or error on failure.
func (e *Engine) runPipeline(ctx context.Context, sess *Session) {
	progress := func(message string, current, total int) {
		sess.setProgress(message, current, total)
	}

	sess.setProgress("Scanning library...", 0, 1)
	var result *scanner.Result
	var err error
	if sess.MediaType == catalog.MediaTV {
		result, err = e.scanner.ScanTV(ctx, sess.Roots, progress)
	} else {
		result, err = e.scanner.ScanMovies(ctx, sess.Roots, progress)
	}
	if err != nil {
		e.log.Error("scan failed", "session", sess.ID, "error", err)
		sess.fail(err)
		return
	}

	sess.mu.Lock()
	sess.scan = result
	sess.scannedCount = result.ItemCount()
	sess.mu.Unlock()

	if err := sess.transition(StatusMatching); err != nil {
		return
	}
	sess.setProgress("Matching with catalog...", 0, 1)

	var matches []matcher.Match
	if sess.MediaType == catalog.MediaTV {
		matches, err = e.matcher.MatchShows(ctx, result.Shows, progress)
	} else {
		matches, err = e.matcher.MatchMovies(ctx, result.Movies, progress)
	}
	if err != nil {
		e.log.Error("match failed", "session", sess.ID, "error", err)
		sess.fail(err)
		return
	}

	matched := 0
	for i := range matches {
		if matches[i].Status == matcher.StatusMatched {
			matched++
		}
	}

	sess.mu.Lock()
	sess.matches = matches
	sess.matchedCount = matched
	if sess.transitionLocked(StatusPreview) == nil {
		sess.progress = 1.0
		sess.message = "Ready for review"
	}
	sess.mu.Unlock()
}

// Status returns the current snapshot of a session.
func (e *Engine) Status(id string) (Snapshot, error) {
	sess, ok := e.sessions.Get(id)
	if !ok {
		return Snapshot{}, ErrNotFound
	}
	return sess.Snapshot(), nil
}

// Preview returns copies of the session's matches for review.
func (e *Engine) Preview(id string) ([]matcher.Match, error) {
	sess, ok := e.sessions.Get(id)
	if !ok {
		return nil, ErrNotFound
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	matches := make([]matcher.Match, len(sess.matches))
	copy(matches, sess.matches)
	return matches, nil
}

// Unparsed returns the files the session's scan could not interpret.
func (e *Engine) Unparsed(id string) ([]string, error) {
	sess, ok := e.sessions.Get(id)
	if !ok {
		return nil, ErrNotFound
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	if sess.scan == nil {
		return nil, nil
	}
	return append([]string(nil), sess.scan.Unparsed...), nil
}

// ManualMatch applies one manual-match instruction to a preview item. It
// may be applied any number of times and never changes the session status.
func (e *Engine) ManualMatch(ctx context.Context, id string, index int, choice ManualChoice) error {
	sess, ok := e.sessions.Get(id)
	if !ok {
		return ErrNotFound
	}
	sess.mu.Lock()
	if sess.status != StatusPreview {
		sess.mu.Unlock()
		return ErrNotInPreview
	}
	if index < 0 || index >= len(sess.matches) {
		sess.mu.Unlock()
		return fmt.Errorf("match index %d out of range", index)
	}

	if choice.Query != "" {
		// Research hits the catalog; work on a copy so status polling is
		// not blocked behind the search.
		pending := sess.matches[index]
		sess.mu.Unlock()
		if err := e.matcher.Research(ctx, &pending, choice.Query); err != nil {
			return err
		}
		sess.mu.Lock()
		defer sess.mu.Unlock()
		if sess.status != StatusPreview || index >= len(sess.matches) {
			return ErrNotInPreview
		}
		sess.matches[index] = pending
		return nil
	}

	defer sess.mu.Unlock()
	match := &sess.matches[index]
	switch {
	case choice.CandidateID != nil:
		return match.SelectCandidate(*choice.CandidateID)
	case choice.Skip:
		match.Skip()
		return nil
	}
	return fmt.Errorf("empty manual match choice")
}

// Execute starts the import phase. Legal only from preview. The import is
// best-effort: records committed before a failure stay committed.
func (e *Engine) Execute(ctx context.Context, id string) error {
	sess, ok := e.sessions.Get(id)
	if !ok {
		return ErrNotFound
	}
	if err := sess.transition(StatusImporting); err != nil {
		return err
	}
	sess.setProgress("Importing matched items...", 0, 1)

	taskCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	sess.mu.Lock()
	prevCancel := sess.cancel
	sess.cancel = cancel
	sess.mu.Unlock()
	if prevCancel != nil {
		prevCancel()
	}

	e.group.Go(func() error {
		e.runImport(taskCtx, sess)
		return nil
	})
	return nil
}

func (e *Engine) runImport(ctx context.Context, sess *Session) {
	sess.mu.Lock()
	matches := make([]matcher.Match, len(sess.matches))
	copy(matches, sess.matches)
	sess.mu.Unlock()

	imported := 0
	for i := range matches {
		if err := ctx.Err(); err != nil {
			sess.fail(err)
			return
		}
		match := &matches[i]
		if !importable(match) {
			continue
		}
		sess.setProgress(fmt.Sprintf("Importing %s...", match.Selected.Title), i, len(matches))

		if err := e.importOne(ctx, match); err != nil {
			e.log.Error("import failed", "session", sess.ID,
				"title", match.Selected.Title, "error", err)
			sess.fail(err)
			return
		}
		imported++
	}

	sess.mu.Lock()
	if sess.transitionLocked(StatusComplete) == nil {
		sess.progress = 1.0
		sess.message = fmt.Sprintf("Import complete! %d items imported.", imported)
	}
	sess.mu.Unlock()
}

// importable selects matches that carry a confirmed candidate. Items
// already in the collection are deliberately not re-imported.
func importable(m *matcher.Match) bool {
	if m.Selected == nil {
		return false
	}
	return m.Status == matcher.StatusMatched || m.Status == matcher.StatusManual
}

func (e *Engine) importOne(ctx context.Context, match *matcher.Match) error {
	exists, err := e.collection.Exists(ctx, match.Selected.ID, match.MediaType)
	if err != nil {
		return err
	}
	if exists {
		e.log.Info("already in collection, skipping", "title", match.Selected.Title)
		return nil
	}

	if match.MediaType == catalog.MediaTV {
		show := &collection.Show{
			CatalogID:   match.Selected.ID,
			Title:       match.Selected.Title,
			Overview:    match.Selected.Overview,
			PosterURL:   match.Selected.PosterURL,
			BackdropURL: match.Selected.BackdropURL,
			Rating:      match.Selected.Rating,
			Year:        match.Selected.Year,
			FolderPath:  match.Show.FolderPath,
			Monitored:   true,
		}
		return e.collection.CreateShow(ctx, show, match.Show.Seasons)
	}

	movie := &collection.Movie{
		CatalogID:    match.Selected.ID,
		Title:        match.Selected.Title,
		Overview:     match.Selected.Overview,
		PosterURL:    match.Selected.PosterURL,
		BackdropURL:  match.Selected.BackdropURL,
		Rating:       match.Selected.Rating,
		Year:         match.Selected.Year,
		FilePath:     match.Movie.FilePath,
		FileName:     match.Movie.FileName,
		FileSize:     match.Movie.FileSize,
		Quality:      match.Movie.Quality,
		ReleaseGroup: match.Movie.ReleaseGroup,
		Downloaded:   true,
		Monitored:    true,
	}
	return e.collection.CreateMovie(ctx, movie)
}

// Cancel discards a session from any state and stops its background work.
// The id becomes invalid immediately.
func (e *Engine) Cancel(id string) error {
	sess, ok := e.sessions.Get(id)
	if !ok {
		return ErrNotFound
	}
	sess.mu.Lock()
	cancel := sess.cancel
	sess.mu.Unlock()
	if cancel != nil {
		cancel()
	}
	e.sessions.Delete(id)
	return nil
}

// RenameOperations plans and validates organizer operations for the
// session's scanned items, using the first library root as the base path.
func (e *Engine) RenameOperations(id string) ([]organizer.Operation, *organizer.ValidationResult, error) {
	sess, ok := e.sessions.Get(id)
	if !ok {
		return nil, nil, ErrNotFound
	}
	sess.mu.Lock()
	result := sess.scan
	roots := sess.Roots
	kind := sess.MediaType
	sess.mu.Unlock()

	if result == nil || len(roots) == 0 {
		return nil, nil, fmt.Errorf("session has no scanned items")
	}

	var ops []organizer.Operation
	if kind == catalog.MediaTV {
		ops = e.organizer.PlanShows(result.Shows, roots[0])
	} else {
		ops = e.organizer.PlanMovies(result.Movies, roots[0])
	}
	return ops, e.organizer.Validate(ops), nil
}
