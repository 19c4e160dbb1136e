package catalog

import (
	"fmt"
	"strings"

	"tablet-ingest/core/table"
	"tablet-ingest/feature/extract"
)

// LabelIndex resolves content titles, as logged by the apps, to catalog ids.
// Lookups ignore case. When two assets share a title the later one wins.
type LabelIndex struct {
	ids map[string]string
}

// NewLabelIndex indexes assets by title.
func NewLabelIndex(assets []Asset) *LabelIndex {
	ids := make(map[string]string, len(assets))
	for _, a := range assets {
		ids[strings.ToLower(a.Title)] = a.ID
	}
	return &LabelIndex{ids: ids}
}

// LoadLabelIndex reads a catalog table written by the catalog command.
func LoadLabelIndex(path string) (*LabelIndex, error) {
	t, err := table.Read(path)
	if err != nil {
		return nil, fmt.Errorf("loading catalog: %w", err)
	}

	assets := make([]Asset, 0, len(t.Rows))
	for i, row := range t.Rows {
		if len(row) < 2 {
			return nil, fmt.Errorf("catalog %s row %d: expected id and title", path, i+2)
		}
		assets = append(assets, Asset{ID: row[0], Title: row[1]})
	}
	return NewLabelIndex(assets), nil
}

// Resolve implements extract.LabelResolver.
func (x *LabelIndex) Resolve(label string) (string, error) {
	id, ok := x.ids[strings.ToLower(label)]
	if !ok {
		return "", fmt.Errorf("%w: %q", extract.ErrUnknownLabel, label)
	}
	return id, nil
}

// Len returns the number of distinct titles.
func (x *LabelIndex) Len() int {
	return len(x.ids)
}
