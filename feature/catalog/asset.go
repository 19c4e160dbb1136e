package catalog

import (
	"sort"
	"strconv"

	"tablet-ingest/feature/naming"
)

// Asset is one storybook or video in a team's content catalog.
type Asset struct {
	ID    string
	Title string
	// Comprehension tells whether the storybook has comprehension questions.
	// nil means the source does not say.
	Comprehension *bool
	AssetPath     string
}

// Header returns the catalog table columns for a content type.
// Video catalogs carry no comprehension column.
func Header(content naming.ContentType) []string {
	if content == naming.Videos {
		return []string{"id", "title", "asset_path"}
	}
	return []string{"id", "title", "comprehension_questions", "asset_path"}
}

// Record returns the asset as a row matching Header(content).
func (a Asset) Record(content naming.ContentType) []string {
	if content == naming.Videos {
		return []string{a.ID, a.Title, a.AssetPath}
	}
	var comprehension string
	if a.Comprehension != nil {
		comprehension = strconv.FormatBool(*a.Comprehension)
	}
	return []string{a.ID, a.Title, comprehension, a.AssetPath}
}

// Records converts assets to rows.
func Records(assets []Asset, content naming.ContentType) [][]string {
	rows := make([][]string, 0, len(assets))
	for _, a := range assets {
		rows = append(rows, a.Record(content))
	}
	return rows
}

// Sort orders assets by id, numerically when both ids are numbers.
func Sort(assets []Asset) {
	sort.SliceStable(assets, func(i, j int) bool {
		a, aErr := strconv.Atoi(assets[i].ID)
		b, bErr := strconv.Atoi(assets[j].ID)
		switch {
		case aErr == nil && bErr == nil:
			return a < b
		case aErr == nil:
			return true
		case bErr == nil:
			return false
		default:
			return assets[i].ID < assets[j].ID
		}
	})
}

// Dedupe drops assets repeated in every field.
func Dedupe(assets []Asset) []Asset {
	type key struct{ id, title, path string }
	seen := make(map[key]struct{}, len(assets))
	out := make([]Asset, 0, len(assets))
	for _, a := range assets {
		k := key{a.ID, a.Title, a.AssetPath}
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, a)
	}
	return out
}
