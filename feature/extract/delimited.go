package extract

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"strings"

	"tablet-ingest/core/table"

	"go.uber.org/zap"
)

// Delimited extracts events from comma-separated user logs where one column
// holds a prefixed content label and another a device-local timestamp.
//
// Files containing NUL bytes are skipped whole. Rows that are short, carry a
// foreign label or an unparseable timestamp are skipped individually.
type Delimited struct {
	// LabelColumn is the zero-based index of the label column.
	LabelColumn int
	// TimeColumn is the zero-based index of the timestamp column.
	TimeColumn int
	// Prefix precedes the content id in the label.
	Prefix string

	logger *zap.Logger
}

// NewUserlog returns the extractor for "entityType,entityId,event,loggedAt,name"
// user logs with "storyId_<id>" labels.
func NewUserlog(logger *zap.Logger) *Delimited {
	return &Delimited{LabelColumn: 4, TimeColumn: 3, Prefix: "storyId_", logger: logger}
}

// Extract implements Extractor.
func (d *Delimited) Extract(_ context.Context, src Source) ([]Event, error) {
	if src.Artifact.Serial == "" {
		return nil, skipf("%s has no serial number", src.Path)
	}

	data, err := os.ReadFile(src.Path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", src.Path, err)
	}
	if bytes.IndexByte(data, 0) >= 0 {
		return nil, skipf("%s contains NUL bytes", src.Path)
	}

	t, err := table.Decode(bytes.NewReader(data), table.Options{NoHeader: true})
	if err != nil {
		return nil, skipf("%s: %v", src.Path, err)
	}

	minColumns := max(d.LabelColumn, d.TimeColumn) + 1
	var events []Event
	for i, row := range t.Rows {
		if len(row) < minColumns {
			d.logger.Debug("Skipping incomplete row", zap.String("file", src.Path), zap.Int("row", i+1))
			continue
		}

		id, ok := strings.CutPrefix(row[d.LabelColumn], d.Prefix)
		if !ok {
			continue
		}

		start, err := ParseTimestamp(row[d.TimeColumn])
		if err != nil {
			d.logger.Warn("Skipping row with unparseable timestamp",
				zap.String("file", src.Path),
				zap.Int("row", i+1),
				zap.Error(err),
			)
			continue
		}

		events = append(events, Event{
			Serial:    src.Artifact.Serial,
			ContentID: id,
			Start:     ptr(start),
		})
	}
	return events, nil
}
