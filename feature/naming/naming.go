package naming

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"tablet-ingest/core/archive"
	"tablet-ingest/core/serial"
)

// Kind is the format of an uploaded artifact.
type Kind int

const (
	// KindIgnored is recognized but carries no serial number.
	KindIgnored Kind = iota
	// KindMarker identifies a tablet but holds no parsed events.
	KindMarker
	// KindDelimited is a comma-separated user log.
	KindDelimited
	// KindJSONLines is a text log with one JSON object per line.
	KindJSONLines
	// KindRelational is an embedded SQLite database.
	KindRelational
)

func (k Kind) String() string {
	switch k {
	case KindIgnored:
		return "ignored"
	case KindMarker:
		return "marker"
	case KindDelimited:
		return "delimited"
	case KindJSONLines:
		return "json-lines"
	case KindRelational:
		return "relational"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// ErrUnrecognized is returned when no rule matches a name.
var ErrUnrecognized = errors.New("unrecognized file name")

// InvalidSerialError is returned when a rule extracts something that is not a
// serial number. Strict rules come from naming conventions that guarantee a
// serial, so callers treat a strict failure as fatal and skip the others.
type InvalidSerialError struct {
	Path    string
	Rule    string
	Segment string
	Strict  bool
}

func (e *InvalidSerialError) Error() string {
	return fmt.Sprintf("invalid tablet serial %q in %s (rule %s)", e.Segment, e.Path, e.Rule)
}

func (e *InvalidSerialError) Unwrap() error {
	return serial.ErrInvalid
}

// Rule is one naming convention.
type Rule struct {
	// Name identifies the convention in diagnostics.
	Name string
	// Kind is the format of matching artifacts.
	Kind Kind
	// Dir makes the rule apply to directories instead of files.
	Dir bool
	// Strict makes an invalid serial fatal.
	Strict bool
	// Legacy marks segments that may be hardware addresses; they are returned
	// unvalidated for legacy.Resolver.
	Legacy bool
	// Match reports whether the base name follows the convention.
	Match func(base string) bool
	// Segment extracts the identifier segment from the full path.
	Segment func(path string) string
}

// Artifact is a classified file or directory.
type Artifact struct {
	Path     string
	Base     string
	Rule     string
	Kind     Kind
	Archived bool
	// Segment is the raw identifier text taken from the name.
	Segment string
	// Serial is set when Segment is a valid serial number.
	Serial serial.Number
	// Legacy mirrors Rule.Legacy.
	Legacy bool
}

// RuleSet is an ordered list of rules; the first match wins.
type RuleSet []Rule

// Classify matches path against the rules.
func (rs RuleSet) Classify(path string, isDir bool) (Artifact, error) {
	base := filepath.Base(path)
	for _, r := range rs {
		if r.Dir != isDir || !r.Match(base) {
			continue
		}

		a := Artifact{
			Path:     path,
			Base:     base,
			Rule:     r.Name,
			Kind:     r.Kind,
			Archived: !isDir && archive.IsArchive(base),
			Legacy:   r.Legacy,
		}
		if r.Kind == KindIgnored {
			return a, nil
		}

		a.Segment = r.Segment(path)
		if serial.IsValid(a.Segment) {
			a.Serial = serial.Number(a.Segment)
			return a, nil
		}
		if r.Legacy {
			return a, nil
		}
		return a, &InvalidSerialError{Path: path, Rule: r.Name, Segment: a.Segment, Strict: r.Strict}
	}
	return Artifact{Path: path, Base: base}, fmt.Errorf("%w: %s", ErrUnrecognized, base)
}

// IsFatal reports whether err from Classify must abort the run.
func IsFatal(err error) bool {
	var invalid *InvalidSerialError
	return errors.As(err, &invalid) && invalid.Strict
}

// Prefix matches base names starting with p.
func Prefix(p string) func(string) bool {
	return func(base string) bool { return strings.HasPrefix(base, p) }
}

// Suffix matches base names ending with s.
func Suffix(s string) func(string) bool {
	return func(base string) bool { return strings.HasSuffix(base, s) }
}

// ContainsAndSuffix matches base names containing c and ending with s.
func ContainsAndSuffix(c, s string) func(string) bool {
	return func(base string) bool { return strings.Contains(base, c) && strings.HasSuffix(base, s) }
}

// Any matches every base name.
func Any(string) bool { return true }

// Slice extracts base[from:to]; out of range yields "".
func Slice(from, to int) func(string) string {
	return func(path string) string {
		base := filepath.Base(path)
		if from < 0 || to > len(base) || from > to {
			return ""
		}
		return base[from:to]
	}
}

// FromEnd extracts base[len-from:len-to].
func FromEnd(from, to int) func(string) string {
	return func(path string) string {
		base := filepath.Base(path)
		return Slice(len(base)-from, len(base)-to)(base)
	}
}

// WithoutSuffixLen extracts base[:len-n].
func WithoutSuffixLen(n int) func(string) string {
	return func(path string) string {
		base := filepath.Base(path)
		return Slice(0, len(base)-n)(base)
	}
}

// BaseName extracts the whole base name.
func BaseName(path string) string {
	return filepath.Base(path)
}

// ParentName extracts the name of the containing directory.
func ParentName(path string) string {
	return filepath.Base(filepath.Dir(path))
}
