package extract

import (
	"sort"
	"strconv"

	"tablet-ingest/core/serial"
	"tablet-ingest/feature/naming"
)

// Event is one session of a tablet with one storybook or video.
// Start and End are epoch seconds; nil means the format does not record it.
type Event struct {
	Serial    serial.Number
	ContentID string
	Start     *int64
	End       *int64
}

// Header returns the usage-event table columns for a content type.
func Header(content naming.ContentType) []string {
	return []string{"tablet_serial", string(content) + "_id", "start_time", "end_time"}
}

// Record returns the event as a table row; nil times are empty cells.
func (e Event) Record() []string {
	return []string{e.Serial.String(), e.ContentID, formatTime(e.Start), formatTime(e.End)}
}

func formatTime(t *int64) string {
	if t == nil {
		return ""
	}
	return strconv.FormatInt(*t, 10)
}

type eventKey struct {
	serial           serial.Number
	content          string
	start, end       int64
	hasStart, hasEnd bool
}

func (e Event) key() eventKey {
	k := eventKey{serial: e.Serial, content: e.ContentID}
	if e.Start != nil {
		k.start, k.hasStart = *e.Start, true
	}
	if e.End != nil {
		k.end, k.hasEnd = *e.End, true
	}
	return k
}

// Dedupe drops events equal in every field, keeping the first.
func Dedupe(events []Event) []Event {
	seen := make(map[eventKey]struct{}, len(events))
	out := make([]Event, 0, len(events))
	for _, e := range events {
		k := e.key()
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, e)
	}
	return out
}

// Sort orders events by serial, then start time. Unknown start times sort first.
func Sort(events []Event) {
	sort.SliceStable(events, func(i, j int) bool {
		a, b := events[i], events[j]
		if a.Serial != b.Serial {
			return a.Serial < b.Serial
		}
		switch {
		case a.Start == nil:
			return b.Start != nil
		case b.Start == nil:
			return false
		default:
			return *a.Start < *b.Start
		}
	})
}

// Records converts events to table rows.
func Records(events []Event) [][]string {
	rows := make([][]string, 0, len(events))
	for _, e := range events {
		rows = append(rows, e.Record())
	}
	return rows
}

func ptr(n int64) *int64 {
	return &n
}
