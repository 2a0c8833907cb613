package export

import (
	"fmt"
	"os"
	"path/filepath"
)

// WriteFile encodes snap to path atomically: the snapshot is written to a
// temp file in the same directory and renamed over path.
func WriteFile(path string, snap *Snapshot, format Format) error {
	data, err := Marshal(snap, format)
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("failed to create export directory: %w", err)
	}

	tempFile, err := os.CreateTemp(dir, filepath.Base(path)+".tmp.*")
	if err != nil {
		return fmt.Errorf("failed to create temp export file: %w", err)
	}
	tempPath := tempFile.Name()
	defer func() {
		_ = tempFile.Close()    // Best effort: may already be closed before rename
		_ = os.Remove(tempPath) // Best effort: may already be renamed
	}()

	if _, err := tempFile.Write(data); err != nil {
		return fmt.Errorf("failed to write export: %w", err)
	}

	// Close before rename (required on Windows; double-close in defer is harmless)
	if err := tempFile.Close(); err != nil {
		return fmt.Errorf("failed to flush export: %w", err)
	}

	if err := os.Rename(tempPath, path); err != nil {
		return fmt.Errorf("failed to replace export file: %w", err)
	}

	// 0600: exports may carry reporter locations
	if err := os.Chmod(path, 0o600); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to set export permissions: %v\n", err)
	}
	return nil
}
