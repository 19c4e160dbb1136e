package reconcile

import (
	"sort"

	"tablet-ingest/core/serial"
)

// FindMissing returns every serial of observed that is absent from reference,
// annotated with its closest match in reference.
func FindMissing(reference, observed []serial.Number, opts Options) []MatchResult {
	return difference(observed, reference, opts)
}

// FindUnused returns every serial of reference that is absent from observed,
// annotated with its closest match in observed.
func FindUnused(reference, observed []serial.Number, opts Options) []MatchResult {
	return difference(reference, observed, opts)
}

// Reconcile runs both directions and summarizes them.
func Reconcile(reference, observed []serial.Number, opts Options) *Report {
	missing := FindMissing(reference, observed, opts)
	unused := FindUnused(reference, observed, opts)

	return &Report{
		Missing: missing,
		Unused:  unused,
		Summary: Summary{
			Reference: len(Unique(reference)),
			Observed:  len(Unique(observed)),
			Missing:   len(missing),
			Unused:    len(unused),
		},
	}
}

// Unique drops repeated serials, keeping the first appearance of each.
func Unique(ids []serial.Number) []serial.Number {
	seen := make(map[serial.Number]struct{}, len(ids))
	out := make([]serial.Number, 0, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// difference annotates every serial of from that is absent from against.
func difference(from, against []serial.Number, opts Options) []MatchResult {
	candidates := Unique(against)
	present := make(map[serial.Number]struct{}, len(candidates))
	for _, id := range candidates {
		present[id] = struct{}{}
	}

	results := make([]MatchResult, 0)
	for _, id := range Unique(from) {
		if _, ok := present[id]; ok {
			continue
		}
		results = append(results, annotate(id, candidates))
	}

	if opts.Sort {
		sort.Slice(results, func(i, j int) bool {
			return results[i].ID < results[j].ID
		})
	}

	return results
}

func annotate(id serial.Number, candidates []serial.Number) MatchResult {
	best, score, ok := serial.BestMatch(id, candidates)
	return MatchResult{
		ID:           id,
		ClosestMatch: best,
		Score:        score,
		Matched:      ok,
	}
}
