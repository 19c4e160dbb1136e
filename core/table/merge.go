package table

import (
	"fmt"
	"slices"
)

// MergeReport describes a completed merge.
type MergeReport struct {
	// Rows is the number of data rows written.
	Rows int
	// Mismatched lists the sources whose header differed from the first one.
	Mismatched []string
}

// Merge concatenates the tables at srcs, in order, into dst. The header of the
// first table is kept and the first row of every later table is dropped, even
// when it differs from that header.
func Merge(dst string, srcs []string) (MergeReport, error) {
	var (
		report MergeReport
		header []string
		rows   [][]string
	)

	for i, src := range srcs {
		t, err := Read(src)
		if err != nil {
			return MergeReport{}, err
		}
		if i == 0 {
			header = t.Header
		} else if t.Header != nil && !slices.Equal(t.Header, header) {
			report.Mismatched = append(report.Mismatched, src)
		}
		rows = append(rows, t.Rows...)
	}

	if header == nil {
		return MergeReport{}, fmt.Errorf("nothing to merge")
	}
	if err := Write(dst, header, rows); err != nil {
		return MergeReport{}, err
	}
	report.Rows = len(rows)
	return report, nil
}
