package extract

import (
	"context"
	"errors"
	"fmt"
	"time"

	"tablet-ingest/core/archive"
	"tablet-ingest/feature/naming"

	"go.uber.org/zap"
)

// ErrSkip marks a unit (file, line, row) that is excluded from the output
// without aborting the run.
var ErrSkip = errors.New("skipped")

func skipf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrSkip, fmt.Sprintf(format, args...))
}

// Source is one artifact ready to be parsed.
type Source struct {
	// Artifact is the classified upload.
	Artifact naming.Artifact
	// Path is the file to read; for archives, the expanded file.
	Path string
	// Period is the week-ending date the artifact was collected in.
	Period time.Time
}

// Extractor parses usage events out of one artifact format.
type Extractor interface {
	Extract(ctx context.Context, src Source) ([]Event, error)
}

// Dispatcher routes each artifact to the extractor for its Kind, expanding
// archives first.
type Dispatcher struct {
	extractors map[naming.Kind]Extractor
	logger     *zap.Logger
}

// NewDispatcher creates a dispatcher with no extractors registered.
func NewDispatcher(logger *zap.Logger) *Dispatcher {
	return &Dispatcher{
		extractors: make(map[naming.Kind]Extractor),
		logger:     logger,
	}
}

// Register sets the extractor for a kind.
func (d *Dispatcher) Register(kind naming.Kind, e Extractor) {
	d.extractors[kind] = e
}

// Extract parses one artifact. Skips are returned wrapped in ErrSkip.
func (d *Dispatcher) Extract(ctx context.Context, a naming.Artifact, period time.Time) ([]Event, error) {
	e, ok := d.extractors[a.Kind]
	if !ok {
		return nil, skipf("no extractor for %s artifact %s", a.Kind, a.Base)
	}

	if !a.Archived {
		return e.Extract(ctx, Source{Artifact: a, Path: a.Path, Period: period})
	}

	var events []Event
	err := archive.Expand(a.Path, func(extracted string) error {
		d.logger.Debug("Expanded archive", zap.String("archive", a.Path), zap.String("file", extracted))
		var err error
		events, err = e.Extract(ctx, Source{Artifact: a, Path: extracted, Period: period})
		return err
	})
	if errors.Is(err, archive.ErrCorrupt) {
		return nil, fmt.Errorf("%w: %v", ErrSkip, err)
	}
	if err != nil {
		return nil, err
	}
	return events, nil
}
