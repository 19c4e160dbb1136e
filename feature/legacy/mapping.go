package legacy

import (
	"errors"
	"fmt"
	"strings"

	"tablet-ingest/core/serial"
	"tablet-ingest/core/table"
)

// ErrDuplicateAddress is returned when the mapping table lists an address twice.
var ErrDuplicateAddress = errors.New("duplicate hardware address")

// Outcome classifies a lookup.
type Outcome int

const (
	// Resolved means the address maps to a serial number.
	Resolved Outcome = iota
	// Unknown means the address is unmapped and the record is kept with an empty serial.
	Unknown
	// Skip means the address is unmapped and the record is dropped.
	Skip
)

func (o Outcome) String() string {
	switch o {
	case Resolved:
		return "resolved"
	case Unknown:
		return "unknown"
	case Skip:
		return "skip"
	default:
		return fmt.Sprintf("outcome(%d)", int(o))
	}
}

// Policy decides the Outcome of a lookup miss.
type Policy string

const (
	// PolicySkip drops records whose address is unmapped.
	PolicySkip Policy = "skip"
	// PolicyUnknown keeps them with an empty serial.
	PolicyUnknown Policy = "unknown"
)

// ParsePolicy validates a configured policy name.
func ParsePolicy(s string) (Policy, error) {
	switch p := Policy(strings.ToLower(strings.TrimSpace(s))); p {
	case PolicySkip, PolicyUnknown:
		return p, nil
	case "":
		return PolicySkip, nil
	default:
		return "", fmt.Errorf("unknown unmapped policy %q", s)
	}
}

// Mapping resolves hardware addresses, used in file names before the
// migration date, to tablet serial numbers. It is immutable once built.
type Mapping struct {
	entries  map[string]serial.Number
	rejected []string
	policy   Policy
}

// New builds a mapping from address/serial pairs. A repeated address is an
// error. An address paired with an invalid serial is left out, so looking it
// up misses; Rejected lists those addresses.
func New(pairs [][2]string, policy Policy) (*Mapping, error) {
	m := &Mapping{
		entries: make(map[string]serial.Number, len(pairs)),
		policy:  policy,
	}
	seen := make(map[string]struct{}, len(pairs))
	for _, p := range pairs {
		addr := strings.TrimSpace(p[0])
		if _, dup := seen[addr]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateAddress, addr)
		}
		seen[addr] = struct{}{}

		n, err := serial.Parse(strings.TrimSpace(p[1]))
		if err != nil {
			m.rejected = append(m.rejected, addr)
			continue
		}
		m.entries[addr] = n
	}
	return m, nil
}

// Rejected returns the addresses dropped for an invalid serial, in table order.
func (m *Mapping) Rejected() []string {
	if m == nil {
		return nil
	}
	return m.rejected
}

// Load reads a two-column mapping table (header row, then address,serial).
func Load(path string, policy Policy) (*Mapping, error) {
	t, err := table.Read(path)
	if err != nil {
		return nil, fmt.Errorf("loading legacy mapping: %w", err)
	}

	pairs := make([][2]string, 0, len(t.Rows))
	for i, row := range t.Rows {
		if len(row) < 2 {
			return nil, fmt.Errorf("legacy mapping %s: row %d has %d columns", path, i+2, len(row))
		}
		pairs = append(pairs, [2]string{row[0], row[1]})
	}

	m, err := New(pairs, policy)
	if err != nil {
		return nil, fmt.Errorf("legacy mapping %s: %w", path, err)
	}
	return m, nil
}

// Lookup resolves an address. On a miss the serial is empty and the outcome
// follows the mapping's policy.
func (m *Mapping) Lookup(address string) (serial.Number, Outcome) {
	if m != nil {
		if n, ok := m.entries[address]; ok {
			return n, Resolved
		}
	}
	if m != nil && m.policy == PolicyUnknown {
		return "", Unknown
	}
	return "", Skip
}

// Len returns the number of entries.
func (m *Mapping) Len() int {
	if m == nil {
		return 0
	}
	return len(m.entries)
}
