package legacy

import (
	"time"

	"tablet-ingest/core/serial"
)

// Resolver turns the identifier segment of a file name into a serial number,
// depending on whether the file was collected before the migration date.
type Resolver struct {
	Mapping   *Mapping
	Migration time.Time
}

// Resolve returns the serial for segment within the given period.
//
// From the migration date onward the segment must be a serial number; an
// invalid one is returned as an error wrapping serial.ErrInvalid. Before it,
// the segment is looked up in the mapping, and a segment that is already a
// valid serial is accepted as is.
func (r Resolver) Resolve(segment string, period time.Time) (serial.Number, Outcome, error) {
	if !period.Before(r.Migration) {
		n, err := serial.Parse(segment)
		if err != nil {
			return "", Skip, err
		}
		return n, Resolved, nil
	}

	n, outcome := r.Mapping.Lookup(segment)
	if outcome == Resolved {
		return n, Resolved, nil
	}
	if serial.IsValid(segment) {
		return serial.Number(segment), Resolved, nil
	}
	return "", outcome, nil
}
