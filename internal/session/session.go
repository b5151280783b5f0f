// Package session orchestrates import sessions through the
// scan → match → preview → import lifecycle.
package session

import (
	"errors"
	"sync"
	"time"

	"github.com/shelfarr/shelfarr/internal/catalog"
	"github.com/shelfarr/shelfarr/internal/matcher"
	"github.com/shelfarr/shelfarr/internal/scanner"
)

var (
	// ErrNotFound indicates the session id is unknown (or was cancelled).
	ErrNotFound = errors.New("session: not found")

	// ErrInvalidTransition indicates an illegal status change.
	ErrInvalidTransition = errors.New("session: invalid status transition")

	// ErrNotInPreview indicates an operation that is only legal while the
	// session is in preview.
	ErrNotInPreview = errors.New("session: not in preview")
)

// Status is the lifecycle phase of an import session.
type Status string

const (
	StatusScanning  Status = "scanning"
	StatusMatching  Status = "matching"
	StatusPreview   Status = "preview"
	StatusImporting Status = "importing"
	StatusComplete  Status = "complete"
	StatusError     Status = "error"
)

// validNext encodes the only legal forward transitions. Error is reachable
// from any non-terminal state; complete and error are terminal.
var validNext = map[Status]Status{
	StatusScanning:  StatusMatching,
	StatusMatching:  StatusPreview,
	StatusPreview:   StatusImporting,
	StatusImporting: StatusComplete,
}

func canTransition(from, to Status) bool {
	if to == StatusError {
		return from != StatusComplete && from != StatusError
	}
	return validNext[from] == to
}

// Session tracks one import run. All mutable fields are guarded; callers
// observe the session through Snapshot while a background pipeline
// advances it.
type Session struct {
	ID        string
	MediaType catalog.MediaType
	Roots     []string
	CreatedAt time.Time

	mu           sync.Mutex
	status       Status
	progress     float64
	message      string
	scannedCount int
	matchedCount int
	scan         *scanner.Result
	matches      []matcher.Match
	errMessage   string
	cancel       func()
}

// Snapshot is a point-in-time copy of session state, safe to hand out.
type Snapshot struct {
	ID           string
	MediaType    catalog.MediaType
	Status       Status
	Progress     float64
	Message      string
	ScannedCount int
	MatchedCount int
	ErrorMessage string
	CreatedAt    time.Time
}

// Snapshot returns the current session state.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot{
		ID:           s.ID,
		MediaType:    s.MediaType,
		Status:       s.status,
		Progress:     s.progress,
		Message:      s.message,
		ScannedCount: s.scannedCount,
		MatchedCount: s.matchedCount,
		ErrorMessage: s.errMessage,
		CreatedAt:    s.CreatedAt,
	}
}

// transition moves the session to the target status, enforcing the state
// machine.
func (s *Session) transition(to Status) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.transitionLocked(to)
}

func (s *Session) transitionLocked(to Status) error {
	if !canTransition(s.status, to) {
		return ErrInvalidTransition
	}
	s.status = to
	return nil
}

// fail moves the session to the error state, capturing the cause as the
// user-visible message. A no-op on terminal sessions.
func (s *Session) fail(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.transitionLocked(StatusError) != nil {
		return
	}
	s.errMessage = err.Error()
	s.message = "Error: " + err.Error()
}

// setProgress updates the message and progress fraction within a phase.
func (s *Session) setProgress(message string, current, total int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.message = message
	if total > 0 {
		s.progress = float64(current) / float64(total)
	} else {
		s.progress = 0
	}
}
