package aggregate

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"time"

	"tablet-ingest/core/team"
)

// ErrInvalidPeriod is returned when a weekly directory is not named YYYY-MM-DD.
var ErrInvalidPeriod = errors.New("incorrect date format, should be YYYY-MM-DD")

var periodPattern = regexp.MustCompile(`^[0-9]{4}-[0-9]{2}-[0-9]{2}$`)

// ParsePeriod returns the week-ending date named by the last element of dir.
func ParsePeriod(dir string) (time.Time, error) {
	label := filepath.Base(filepath.Clean(dir))
	if !periodPattern.MatchString(label) {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidPeriod, label)
	}
	t, err := time.Parse(team.DateLayout, label)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidPeriod, label)
	}
	return t, nil
}

// Periods returns the weekly directories directly under base, oldest first.
// Entries not named like a period are ignored.
func Periods(base string) ([]string, error) {
	entries, err := os.ReadDir(base)
	if err != nil {
		return nil, fmt.Errorf("listing periods in %s: %w", base, err)
	}

	var dirs []string
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		if _, err := ParsePeriod(e.Name()); err != nil {
			continue
		}
		dirs = append(dirs, filepath.Join(base, e.Name()))
	}
	// YYYY-MM-DD sorts chronologically as text
	sort.Strings(dirs)
	return dirs, nil
}
