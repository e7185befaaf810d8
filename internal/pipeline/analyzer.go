package pipeline

import (
	"errors"
	"log/slog"

	"github.com/mrsinham/dicomscan/internal/dataset"
	"github.com/mrsinham/dicomscan/internal/report"
)

// Analyzer appends the derived mean-intensity column to a built table.
type Analyzer struct {
	log *slog.Logger
}

func NewAnalyzer(log *slog.Logger) *Analyzer {
	return &Analyzer{log: log}
}

// Analyze computes one intensity value per batch entry, positionally
// aligned with the table rows. Records without an image payload and
// per-image read failures both become absent cells; neither aborts the
// batch. Calling Analyze before the table exists fails with ErrNoTable.
func (a *Analyzer) Analyze(table *report.Table, batch *Batch) error {
	if table == nil {
		return ErrNoTable
	}
	if batch == nil {
		return ErrNoBatch
	}

	values := make([]report.NullFloat64, 0, batch.Len())
	for _, e := range batch.Entries() {
		mean, err := e.Record.MeanIntensity()
		switch {
		case err == nil:
			values = append(values, report.SomeFloat64(mean))

		case errors.Is(err, dataset.ErrNoPixelData):
			// Non-image files are a normal part of a collection.
			a.log.Debug("no pixel data", slog.String("file", e.Path))
			values = append(values, report.NullFloat64{})

		default:
			a.log.Warn("failed to analyze image",
				slog.String("file", e.Path),
				slog.String("err", err.Error()),
			)
			values = append(values, report.NullFloat64{})
		}
	}

	return table.AppendIntensity(values)
}
