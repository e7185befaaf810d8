package pipeline

import (
	"log/slog"

	"github.com/mrsinham/dicomscan/internal/dataset"
)

// Entry pairs a source path with its decoded record.
type Entry struct {
	Path   string
	Record *dataset.Record
}

// Batch is the ordered collection of successfully decoded files. Entry
// order is discovery order; the aggregator and the analyzer both read the
// same batch, so rows and intensity values stay positionally aligned.
type Batch struct {
	entries []Entry
}

// Entries returns the batch entries in load order.
func (b *Batch) Entries() []Entry {
	return b.entries
}

// Len returns the number of loaded files.
func (b *Batch) Len() int {
	return len(b.entries)
}

// Loader drives the locator and the decoder across a directory.
type Loader struct {
	log     *slog.Logger
	locator *Locator
	decoder *Decoder
}

func NewLoader(log *slog.Logger) *Loader {
	return &Loader{
		log:     log,
		locator: NewLocator(log),
		decoder: NewDecoder(log),
	}
}

// Load decodes every discovered file in discovery order. Only locator
// failures propagate; individual decode failures shrink the batch. A
// batch with zero loaded files is valid.
func (l *Loader) Load(dir string) (*Batch, error) {
	paths, err := l.locator.Locate(dir)
	if err != nil {
		return nil, err
	}

	batch := &Batch{entries: make([]Entry, 0, len(paths))}
	for _, path := range paths {
		res := l.decoder.Decode(path)
		if res.Skipped() {
			continue
		}
		batch.entries = append(batch.entries, Entry{Path: path, Record: res.Record})
	}

	l.log.Info("collection loaded",
		slog.Int("loaded", batch.Len()),
		slog.Int("found", len(paths)),
	)

	return batch, nil
}
