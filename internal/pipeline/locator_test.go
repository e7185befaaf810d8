package pipeline_test

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrsinham/dicomscan/internal/dicomtest"
	"github.com/mrsinham/dicomscan/internal/pipeline"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func TestLocator_DirectoryNotFound(t *testing.T) {
	t.Parallel()

	locator := pipeline.NewLocator(discardLogger())

	_, err := locator.Locate(filepath.Join(t.TempDir(), "nope"))
	require.ErrorIs(t, err, pipeline.ErrDirectoryNotFound)
}

func TestLocator_NotADirectory(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "plain.txt")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0644))

	locator := pipeline.NewLocator(discardLogger())

	_, err := locator.Locate(path)
	require.ErrorIs(t, err, pipeline.ErrDirectoryNotFound)
}

func TestLocator_NoMatches(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		setup func(t *testing.T, dir string)
	}{
		{
			name:  "empty_directory",
			setup: func(t *testing.T, dir string) {},
		},
		{
			name: "only_foreign_extensions",
			setup: func(t *testing.T, dir string) {
				require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0644))
				require.NoError(t, os.WriteFile(filepath.Join(dir, "image.png"), []byte("x"), 0644))
			},
		},
		{
			name: "matches_only_in_subdirectory",
			setup: func(t *testing.T, dir string) {
				sub := filepath.Join(dir, "nested")
				require.NoError(t, os.Mkdir(sub, 0755))
				require.NoError(t, dicomtest.WriteCorrupt(filepath.Join(sub, "deep.dcm")))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			dir := t.TempDir()
			tt.setup(t, dir)

			locator := pipeline.NewLocator(discardLogger())

			_, err := locator.Locate(dir)
			require.ErrorIs(t, err, pipeline.ErrNoFilesFound)
		})
	}
}

func TestLocator_DeterministicOrder(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	// Created out of order on purpose; discovery order must not depend
	// on creation order.
	for _, name := range []string{"c.dcm", "a.dcm", "b.DCM", "skip.txt"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0644))
	}

	locator := pipeline.NewLocator(discardLogger())

	paths, err := locator.Locate(dir)
	require.NoError(t, err)

	want := []string{
		filepath.Join(dir, "a.dcm"),
		filepath.Join(dir, "b.DCM"),
		filepath.Join(dir, "c.dcm"),
	}
	assert.Equal(t, want, paths)

	again, err := locator.Locate(dir)
	require.NoError(t, err)
	assert.Equal(t, paths, again)
}
