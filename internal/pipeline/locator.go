package pipeline

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// dicomExt is the extension a file must carry to be considered part of
// the collection.
const dicomExt = ".dcm"

// Locator discovers candidate DICOM files directly inside one directory.
// Subdirectories and foreign extensions are ignored; the scan is
// non-recursive.
type Locator struct {
	log *slog.Logger
}

func NewLocator(log *slog.Logger) *Locator {
	return &Locator{log: log}
}

// Locate returns the matching paths in a fixed, deterministic order so
// that downstream row order is reproducible. It fails with
// ErrDirectoryNotFound when dir is absent and ErrNoFilesFound when the
// directory holds no matching files.
func (l *Locator) Locate(dir string) ([]string, error) {
	info, err := os.Stat(dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrDirectoryNotFound, dir)
		}
		return nil, fmt.Errorf("stat %q: %w", dir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", ErrDirectoryNotFound, dir)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read directory %q: %w", dir, err)
	}

	// os.ReadDir returns entries sorted by name, which fixes row order.
	var paths []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if !strings.EqualFold(filepath.Ext(entry.Name()), dicomExt) {
			continue
		}
		paths = append(paths, filepath.Join(dir, entry.Name()))
	}

	if len(paths) == 0 {
		return nil, fmt.Errorf("%w in %s", ErrNoFilesFound, dir)
	}

	l.log.Info("discovered collection files", slog.Int("found", len(paths)), slog.String("dir", dir))

	return paths, nil
}
