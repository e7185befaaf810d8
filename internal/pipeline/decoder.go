package pipeline

import (
	"errors"
	"log/slog"

	"github.com/suyashkumar/dicom"

	"github.com/mrsinham/dicomscan/internal/dataset"
)

// DecodeResult is the outcome of one decode attempt: either a Record, or
// a skip carrying the reason. Skips are data, not errors; nothing about a
// single file may abort the batch.
type DecodeResult struct {
	Path   string
	Record *dataset.Record
	Reason error
}

// Skipped reports whether the file was left out of the batch.
func (r DecodeResult) Skipped() bool {
	return r.Record == nil
}

// Decoder parses individual files, classifying failures instead of
// propagating them.
type Decoder struct {
	log *slog.Logger
}

func NewDecoder(log *slog.Logger) *Decoder {
	return &Decoder{log: log}
}

// Decode parses one file. A file that is not DICOM at all (missing DICM
// magic word) is reported as a warning; any other parse or I/O failure is
// reported with its cause. Both become skip results.
func (d *Decoder) Decode(path string) DecodeResult {
	ds, err := dicom.ParseFile(path, nil)
	switch {
	case err == nil:
		return DecodeResult{Path: path, Record: dataset.NewRecord(path, ds)}

	case errors.Is(err, dicom.ErrorMagicWord):
		d.log.Warn("not a valid DICOM file, skipping", slog.String("file", path))
		return DecodeResult{Path: path, Reason: err}

	default:
		d.log.Warn("failed to decode file, skipping",
			slog.String("file", path),
			slog.String("err", err.Error()),
		)
		return DecodeResult{Path: path, Reason: err}
	}
}
