package organizer

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
)

// OpError records one failed operation during execution.
type OpError struct {
	Path string
	Err  string
}

// ExecResult summarizes an Execute call. Partial success is expected:
// failures are reported per operation and never abort the remainder.
type ExecResult struct {
	Total     int
	Succeeded int
	Failed    int
	DryRun    bool
	Errors    []OpError
}

// Execute applies the operations under an exclusive library lock held on
// base. In dry-run mode no lock is taken and nothing is touched; each
// operation only re-checks that its source still exists.
func (o *Organizer) Execute(ops []Operation, base string, dryRun bool) (*ExecResult, error) {
	result := &ExecResult{Total: len(ops), DryRun: dryRun}

	if !dryRun {
		lock := flock.New(filepath.Join(base, ".shelfarr.lock"))
		locked, err := lock.TryLock()
		if err != nil {
			return nil, fmt.Errorf("acquire library lock: %w", err)
		}
		if !locked {
			return nil, ErrLibraryLocked
		}
		defer func() { _ = lock.Unlock() }()
	}

	for _, op := range ops {
		if err := o.apply(op, dryRun); err != nil {
			o.log.Warn("operation failed", "source", op.CurrentPath, "error", err)
			result.Failed++
			result.Errors = append(result.Errors, OpError{Path: op.CurrentPath, Err: err.Error()})
			continue
		}
		result.Succeeded++
	}
	return result, nil
}

func (o *Organizer) apply(op Operation, dryRun bool) error {
	if dryRun {
		_, err := os.Stat(op.CurrentPath)
		return err
	}
	if err := os.MkdirAll(filepath.Dir(op.SuggestedPath), 0o755); err != nil {
		return fmt.Errorf("create destination directory: %w", err)
	}
	o.log.Info("moving", "from", op.CurrentPath, "to", op.SuggestedPath)
	return moveFile(op.CurrentPath, op.SuggestedPath)
}

// moveFile renames src to dst, falling back to copy-and-delete when the
// rename crosses filesystems.
func moveFile(src, dst string) error {
	if err := os.Rename(src, dst); err == nil {
		return nil
	}
	if err := copyFile(src, dst); err != nil {
		return err
	}
	return os.Remove(src)
}

// copyFile copies src to dst, cleaning up the partial file on failure.
// Refuses to overwrite an existing destination.
func copyFile(src, dst string) error {
	if _, err := os.Stat(dst); err == nil {
		return ErrDestinationExists
	}

	srcFile, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("open source: %w", err)
	}
	defer func() { _ = srcFile.Close() }()

	dstFile, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("create destination: %w", err)
	}
	defer func() { _ = dstFile.Close() }()

	if _, err := io.Copy(dstFile, srcFile); err != nil {
		_ = os.Remove(dst)
		return fmt.Errorf("copy content: %w", err)
	}
	if err := dstFile.Sync(); err != nil {
		return fmt.Errorf("sync: %w", err)
	}
	return nil
}
