// Package pipeline implements the batch scan: directory discovery,
// per-file safe decode, metadata aggregation and intensity analysis.
//
// The stages run strictly in sequence and each fully consumes its input
// before the next starts. Per-file problems are absorbed where they occur
// and surface as absent values plus diagnostics; only the fatal
// conditions in errors.go reach the caller.
package pipeline

import (
	"fmt"
	"log/slog"

	"github.com/mrsinham/dicomscan/internal/report"
)

// Pipeline is the sole orchestration entry point: load, aggregate,
// analyze.
type Pipeline struct {
	loader     *Loader
	aggregator *Aggregator
	analyzer   *Analyzer
}

func New(log *slog.Logger) *Pipeline {
	return &Pipeline{
		loader:     NewLoader(log),
		aggregator: NewAggregator(log),
		analyzer:   NewAnalyzer(log),
	}
}

// Run scans dir and returns the final table. The batch stays addressable
// across aggregation and analysis so both stages read the same entries.
func (p *Pipeline) Run(dir string) (*report.Table, error) {
	batch, err := p.loader.Load(dir)
	if err != nil {
		return nil, fmt.Errorf("load collection: %w", err)
	}

	table, err := p.aggregator.BuildTable(batch)
	if err != nil {
		return nil, err
	}

	if err := p.analyzer.Analyze(table, batch); err != nil {
		return nil, err
	}

	return table, nil
}
