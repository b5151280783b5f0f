package session

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shelfarr/shelfarr/internal/catalog"
)

var allStatuses = []Status{
	StatusScanning, StatusMatching, StatusPreview,
	StatusImporting, StatusComplete, StatusError,
}

func TestCanTransition(t *testing.T) {
	legal := map[[2]Status]bool{
		{StatusScanning, StatusMatching}:  true,
		{StatusMatching, StatusPreview}:   true,
		{StatusPreview, StatusImporting}:  true,
		{StatusImporting, StatusComplete}: true,
	}
	for _, from := range allStatuses {
		for _, to := range allStatuses {
			want := legal[[2]Status{from, to}]
			// error is reachable from every non-terminal state
			if to == StatusError && from != StatusComplete && from != StatusError {
				want = true
			}
			if got := canTransition(from, to); got != want {
				t.Errorf("canTransition(%s, %s) = %v, want %v", from, to, got, want)
			}
		}
	}
}

func TestTransition_RandomWalk(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	for run := 0; run < 100; run++ {
		sess := &Session{status: StatusScanning}
		for step := 0; step < 20; step++ {
			before := sess.status
			target := allStatuses[rng.Intn(len(allStatuses))]
			err := sess.transition(target)

			if canTransition(before, target) {
				require.NoError(t, err)
				assert.Equal(t, target, sess.status)
			} else {
				assert.ErrorIs(t, err, ErrInvalidTransition)
				assert.Equal(t, before, sess.status, "illegal transition changed state")
			}

			// Terminal states never move again.
			if before == StatusComplete || before == StatusError {
				assert.Equal(t, before, sess.status)
			}
		}
	}
}

func TestFail(t *testing.T) {
	sess := &Session{status: StatusMatching}
	sess.fail(errors.New("catalog unavailable"))

	snap := sess.Snapshot()
	assert.Equal(t, StatusError, snap.Status)
	assert.Equal(t, "catalog unavailable", snap.ErrorMessage)
	assert.Contains(t, snap.Message, "catalog unavailable")

	// Failing a terminal session is a no-op.
	done := &Session{status: StatusComplete, message: "Import complete!"}
	done.fail(errors.New("late"))
	assert.Equal(t, StatusComplete, done.Snapshot().Status)
	assert.Equal(t, "Import complete!", done.Snapshot().Message)
}

func TestStore(t *testing.T) {
	store := NewStore()

	s1 := store.Create(catalog.MediaTV, []string{"/tv"})
	s2 := store.Create(catalog.MediaMovie, []string{"/movies"})
	assert.NotEqual(t, s1.ID, s2.ID)
	assert.Equal(t, StatusScanning, s1.Snapshot().Status)

	got, ok := store.Get(s1.ID)
	require.True(t, ok)
	assert.Equal(t, s1, got)

	assert.Len(t, store.List(), 2)

	store.Delete(s1.ID)
	_, ok = store.Get(s1.ID)
	assert.False(t, ok)
	assert.Len(t, store.List(), 1)
}

func TestSetProgress(t *testing.T) {
	sess := &Session{status: StatusScanning}
	sess.setProgress("Scanning /tv...", 1, 4)

	snap := sess.Snapshot()
	assert.Equal(t, "Scanning /tv...", snap.Message)
	assert.Equal(t, 0.25, snap.Progress)

	sess.setProgress("empty", 0, 0)
	assert.Zero(t, sess.Snapshot().Progress)
}
