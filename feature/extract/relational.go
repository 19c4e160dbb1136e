package extract

import (
	"context"
	"errors"
	"fmt"

	"tablet-ingest/core/database"
	"tablet-ingest/core/serial"
	"tablet-ingest/core/utils"
	"tablet-ingest/feature/legacy"
	"tablet-ingest/feature/naming"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	storybookQuery = "SELECT unitid, startTime, endTime FROM unitinstances " +
		"WHERE unitid IN (SELECT unitid FROM units WHERE config LIKE 'oc-reading/books/%')"
	videoQuery = "SELECT unitid, startTime, endTime FROM unitinstances " +
		"WHERE unitid IN (SELECT unitid FROM units WHERE params LIKE '%video=%')"
)

// sessionSchema is what the session queries read.
var sessionSchema = database.Schema{
	"units":         {"unitid", "config", "params"},
	"unitinstances": {"unitid", "starttime", "endtime"},
}

// Relational extracts unit sessions from per-device SQLite databases.
//
// Any failure to open, verify or query a database skips the file. A file
// name that does not resolve to a serial is fatal from the migration date on;
// before it the resolver outcome decides.
type Relational struct {
	Query    string
	Resolver legacy.Resolver
	DB       database.Config

	logger *zap.Logger
}

// NewRelational returns the extractor for one content type.
func NewRelational(content naming.ContentType, resolver legacy.Resolver, cfg database.Config, logger *zap.Logger) (*Relational, error) {
	var q string
	switch content {
	case naming.Storybooks:
		q = storybookQuery
	case naming.Videos:
		q = videoQuery
	default:
		return nil, fmt.Errorf("no session query for content %q", content)
	}
	return &Relational{Query: q, Resolver: resolver, DB: cfg, logger: logger}, nil
}

// Extract implements Extractor.
func (r *Relational) Extract(ctx context.Context, src Source) ([]Event, error) {
	tablet, err := r.serialFor(src)
	if err != nil {
		return nil, err
	}

	db, err := database.Open(src.Path, r.DB)
	if err != nil {
		return nil, skipf("%v", err)
	}
	defer database.Close(db)

	ctx, cancel := context.WithTimeout(ctx, r.DB.Timeout())
	defer cancel()

	if err := database.VerifySchema(db.WithContext(ctx), sessionSchema); err != nil {
		return nil, skipf("invalid database %s: %v", src.Path, err)
	}

	events, err := r.sessions(ctx, db, tablet)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return nil, err
		}
		return nil, skipf("invalid database %s: %v", src.Path, err)
	}
	return events, nil
}

func (r *Relational) serialFor(src Source) (serial.Number, error) {
	a := src.Artifact
	if !a.Legacy {
		if a.Serial == "" {
			return "", skipf("%s has no serial number", src.Path)
		}
		return a.Serial, nil
	}

	n, outcome, err := r.Resolver.Resolve(a.Segment, src.Period)
	if err != nil {
		return "", &naming.InvalidSerialError{Path: src.Path, Rule: a.Rule, Segment: a.Segment, Strict: true}
	}
	switch outcome {
	case legacy.Resolved:
		return n, nil
	case legacy.Unknown:
		r.logger.Warn("Device address not in mapping, keeping events with an empty serial",
			zap.String("file", src.Path),
			zap.String("address", a.Segment),
		)
		return "", nil
	default:
		return "", skipf("device address %q of %s not in mapping", a.Segment, src.Path)
	}
}

// sessions runs the query and converts each row. Values are scanned untyped
// since device databases store the same column as INTEGER, REAL or TEXT.
func (r *Relational) sessions(ctx context.Context, db *gorm.DB, tablet serial.Number) ([]Event, error) {
	rows, err := db.WithContext(ctx).Raw(r.Query).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []Event
	for rows.Next() {
		var unit, start, end any
		if err := rows.Scan(&unit, &start, &end); err != nil {
			return nil, err
		}
		events = append(events, Event{
			Serial:    tablet,
			ContentID: utils.ToString(unit),
			Start:     utils.ToNullableInt64(start),
			End:       utils.ToNullableInt64(end),
		})
	}
	return events, rows.Err()
}
