package pipeline

import (
	"log/slog"

	"github.com/mrsinham/dicomscan/internal/dataset"
	"github.com/mrsinham/dicomscan/internal/report"
)

// Aggregator turns a loaded batch into the metadata table.
type Aggregator struct {
	log *slog.Logger
}

func NewAggregator(log *slog.Logger) *Aggregator {
	return &Aggregator{log: log}
}

// BuildTable produces exactly one row per batch entry, in batch order.
// The file name column is always present; every metadata cell may be
// absent. A nil batch is a sequencing bug and fails with ErrNoBatch; a
// loaded batch with zero entries yields a legal empty table.
func (a *Aggregator) BuildTable(batch *Batch) (*report.Table, error) {
	if batch == nil {
		return nil, ErrNoBatch
	}

	rows := make([]report.Row, 0, batch.Len())
	for _, e := range batch.Entries() {
		rows = append(rows, report.Row{
			FileName:         e.Record.BaseName(),
			PatientID:        cell(e.Record, dataset.FieldPatientID),
			PatientName:      cell(e.Record, dataset.FieldPatientName),
			StudyInstanceUID: cell(e.Record, dataset.FieldStudyInstanceUID),
			StudyDescription: cell(e.Record, dataset.FieldStudyDescription),
			StudyDate:        cell(e.Record, dataset.FieldStudyDate),
			Modality:         cell(e.Record, dataset.FieldModality),
			Rows:             cell(e.Record, dataset.FieldRows),
			Columns:          cell(e.Record, dataset.FieldColumns),
		})
	}

	a.log.Info("metadata table built", slog.Int("rows", len(rows)))

	return report.New(rows), nil
}

func cell(rec *dataset.Record, f dataset.Field) report.NullString {
	v, ok := rec.Field(f)
	if !ok {
		return report.NullString{}
	}
	return report.SomeString(v)
}
