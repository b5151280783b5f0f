package organizer

import "errors"

var (
	// ErrLibraryLocked means another process holds the library lock.
	ErrLibraryLocked = errors.New("organizer: library is locked by another process")

	// ErrDestinationExists means a move target already exists.
	ErrDestinationExists = errors.New("organizer: destination already exists")
)
