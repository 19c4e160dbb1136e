package inventory

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"tablet-ingest/core/serial"
	"tablet-ingest/core/table"
	"tablet-ingest/core/team"
)

// Header is the inventory table columns.
var Header = []string{"team", "village_id", "week_end_date", "tablet_serials_count", "tablet_serials"}

const listColumn = 4

// Record lists the tablets that uploaded data from one site in one period.
type Record struct {
	Team    string
	Site    int
	Period  time.Time
	Serials []serial.Number
}

// NewRecord deduplicates and sorts serials.
func NewRecord(teamName string, site int, period time.Time, serials []serial.Number) Record {
	set := make(map[serial.Number]struct{}, len(serials))
	unique := make([]serial.Number, 0, len(serials))
	for _, s := range serials {
		if _, dup := set[s]; dup {
			continue
		}
		set[s] = struct{}{}
		unique = append(unique, s)
	}
	sort.Slice(unique, func(i, j int) bool { return unique[i] < unique[j] })
	return Record{Team: teamName, Site: site, Period: period, Serials: unique}
}

// Row returns the record as a table row.
func (r Record) Row() []string {
	return []string{
		r.Team,
		strconv.Itoa(r.Site),
		r.Period.Format(team.DateLayout),
		strconv.Itoa(len(r.Serials)),
		FormatList(r.Serials),
	}
}

// Rows converts records to table rows.
func Rows(records []Record) [][]string {
	rows := make([][]string, 0, len(records))
	for _, r := range records {
		rows = append(rows, r.Row())
	}
	return rows
}

// FormatList joins serials into a single cell.
func FormatList(serials []serial.Number) string {
	parts := make([]string, len(serials))
	for i, s := range serials {
		parts[i] = s.String()
	}
	return strings.Join(parts, ";")
}

var legacyItem = regexp.MustCompile(`^'([0-9A-F]*)'$`)

// ParseList reads a serial list cell. Both "A;B" and the older
// "['A', 'B']" form are accepted; every item must be a valid serial.
func ParseList(cell string) ([]serial.Number, error) {
	cell = strings.TrimSpace(cell)
	if cell == "" || cell == "[]" {
		return nil, nil
	}

	var items []string
	if inner, ok := strings.CutPrefix(cell, "["); ok {
		inner, ok = strings.CutSuffix(inner, "]")
		if !ok {
			return nil, fmt.Errorf("unterminated serial list %q", cell)
		}
		for _, item := range strings.Split(inner, ",") {
			m := legacyItem.FindStringSubmatch(strings.TrimSpace(item))
			if m == nil {
				return nil, fmt.Errorf("malformed serial list item %q", item)
			}
			items = append(items, m[1])
		}
	} else {
		items = strings.Split(cell, ";")
	}

	serials := make([]serial.Number, 0, len(items))
	for _, item := range items {
		n, err := serial.Parse(item)
		if err != nil {
			return nil, fmt.Errorf("serial list %q: %w", cell, err)
		}
		serials = append(serials, n)
	}
	return serials, nil
}

// ReadSerials returns every serial listed in an inventory table, in order of
// first appearance and without repeats.
func ReadSerials(path string) ([]serial.Number, error) {
	t, err := table.Read(path)
	if err != nil {
		return nil, err
	}

	seen := make(map[serial.Number]struct{})
	var out []serial.Number
	for i, row := range t.Rows {
		if len(row) <= listColumn {
			return nil, fmt.Errorf("%s row %d: expected %d columns", path, i+2, len(Header))
		}
		serials, err := ParseList(row[listColumn])
		if err != nil {
			return nil, fmt.Errorf("%s row %d: %w", path, i+2, err)
		}
		for _, s := range serials {
			if _, dup := seen[s]; !dup {
				seen[s] = struct{}{}
				out = append(out, s)
			}
		}
	}
	return out, nil
}
