// Package reconcile cross-references two collections of tablet serial numbers.
//
// The reference collection is the authoritative tablet tracker. The observed
// collection is every serial seen in uploaded usage data. Reconciliation runs in
// both directions:
//
//   - FindMissing: serials observed in usage data but absent from the tracker.
//   - FindUnused: serials registered in the tracker but never observed.
//
// Every unmatched serial is annotated with its closest counterpart on the
// other side (see serial.BestMatch), which usually points at a typo in the
// tracker.
//
// # Ordering
//
// Results follow the first appearance of each serial in its source collection.
// Set Options.Sort to order them lexicographically instead. Duplicate serials
// are reported once.
//
// # Usage
//
//	report := reconcile.Reconcile(tracker, observed, reconcile.Options{Sort: true})
//	for _, r := range report.Missing {
//	    fmt.Println(r.ID, r.ClosestMatch, r.Score)
//	}
package reconcile
