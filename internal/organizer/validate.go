package organizer

import (
	"fmt"
	"os"
	"path/filepath"
)

// ValidationResult aggregates the outcome of validating an operation list.
type ValidationResult struct {
	Valid    int
	Invalid  int
	Warnings []string
	Errors   []string
}

// Validate checks every operation without moving anything: the source must
// still exist and its parent must be writable, and the destination parent
// must be creatable. An existing destination is a warning, not a failure.
func (o *Organizer) Validate(ops []Operation) *ValidationResult {
	result := &ValidationResult{}
	for _, op := range ops {
		if _, err := os.Stat(op.CurrentPath); err != nil {
			result.Invalid++
			result.Errors = append(result.Errors,
				fmt.Sprintf("source does not exist: %s", op.CurrentPath))
			continue
		}
		if !dirWritable(filepath.Dir(op.CurrentPath)) {
			result.Invalid++
			result.Errors = append(result.Errors,
				fmt.Sprintf("no write permission for: %s", filepath.Dir(op.CurrentPath)))
			continue
		}
		if _, err := os.Stat(op.SuggestedPath); err == nil {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("destination already exists: %s", op.SuggestedPath))
		}
		destParent := filepath.Dir(op.SuggestedPath)
		if err := os.MkdirAll(destParent, 0o755); err != nil {
			result.Invalid++
			result.Errors = append(result.Errors,
				fmt.Sprintf("cannot create destination directory: %v", err))
			continue
		}
		if !dirWritable(destParent) {
			result.Invalid++
			result.Errors = append(result.Errors,
				fmt.Sprintf("no write permission for destination: %s", destParent))
			continue
		}
		result.Valid++
	}
	return result
}

// dirWritable probes a directory by creating and removing a temp file.
// Never touches existing files.
func dirWritable(dir string) bool {
	f, err := os.CreateTemp(dir, ".shelfarr-probe-*")
	if err != nil {
		return false
	}
	name := f.Name()
	_ = f.Close()
	_ = os.Remove(name)
	return true
}
