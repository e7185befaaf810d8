package pipeline

import "errors"

// Fatal error kinds. Everything else that goes wrong during a scan is
// absorbed at its stage and surfaces as an absent value plus a diagnostic
// line, never as an error.
var (
	// ErrDirectoryNotFound reports a source directory that does not exist.
	ErrDirectoryNotFound = errors.New("collection directory does not exist")

	// ErrNoFilesFound reports a valid directory with zero matching files.
	ErrNoFilesFound = errors.New("no .dcm files found")

	// ErrNoBatch reports a stage invoked without a loaded batch.
	ErrNoBatch = errors.New("no batch loaded")

	// ErrNoTable reports the analyzer invoked before aggregation.
	ErrNoTable = errors.New("no metadata table built")
)
