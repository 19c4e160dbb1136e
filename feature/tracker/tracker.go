package tracker

import (
	"fmt"
	"path/filepath"
	"strings"

	"tablet-ingest/core/reconcile"
	"tablet-ingest/core/serial"
	"tablet-ingest/core/table"
	"tablet-ingest/feature/inventory"

	"go.uber.org/zap"
)

const (
	// MissingFile lists serials seen uploading data but absent from the tracker.
	MissingFile = "serial-numbers-not-found-in-tablet-tracker.csv"
	// UnusedFile lists tracker serials never seen uploading data.
	UnusedFile = "serial-numbers-not-found-in-tablet-usage-data.csv"
)

// slotColumn returns the column of the i-th serial slot (zero-based).
// The first two slots are adjacent; later ones alternate with a notes column.
func slotColumn(i int) int {
	if i == 0 {
		return 2
	}
	return 1 + 2*i
}

// Load reads the serials recorded in a tablet tracker sheet, in order of
// first appearance. Cells are kept as typed: a malformed serial is exactly
// what reconciliation should surface.
func Load(path string, slots int) ([]serial.Number, error) {
	t, err := table.Read(path)
	if err != nil {
		return nil, fmt.Errorf("loading tracker: %w", err)
	}

	seen := make(map[serial.Number]struct{})
	var out []serial.Number
	for _, row := range t.Rows {
		for i := range slots {
			col := slotColumn(i)
			if col >= len(row) {
				break
			}
			cell := strings.TrimSpace(row[col])
			if cell == "" {
				continue
			}
			n := serial.Number(cell)
			if _, dup := seen[n]; !dup {
				seen[n] = struct{}{}
				out = append(out, n)
			}
		}
	}
	return out, nil
}

// Reconciler compares a tracker with the inventory of uploading tablets.
type Reconciler struct {
	slots  int
	opts   reconcile.Options
	logger *zap.Logger
}

// NewReconciler creates a reconciler for trackers with the given slot count.
func NewReconciler(slots int, opts reconcile.Options, logger *zap.Logger) *Reconciler {
	return &Reconciler{slots: slots, opts: opts, logger: logger}
}

// Run loads both sides and reconciles them.
func (r *Reconciler) Run(trackerPath, inventoryPath string) (*reconcile.Report, error) {
	reference, err := Load(trackerPath, r.slots)
	if err != nil {
		return nil, err
	}
	invalid := 0
	for _, n := range reference {
		if !serial.IsValid(n.String()) {
			invalid++
		}
	}
	if invalid > 0 {
		r.logger.Warn("Tracker holds malformed serial numbers", zap.Int("count", invalid))
	}

	observed, err := inventory.ReadSerials(inventoryPath)
	if err != nil {
		return nil, fmt.Errorf("loading inventory: %w", err)
	}

	report := reconcile.Reconcile(reference, observed, r.opts)
	r.logger.Info("Reconciled tracker",
		zap.Int("tracker", report.Summary.Reference),
		zap.Int("observed", report.Summary.Observed),
		zap.Int("missing", report.Summary.Missing),
		zap.Int("unused", report.Summary.Unused),
	)
	return report, nil
}

// Write stores both directions of a report in dir.
func Write(dir string, report *reconcile.Report) ([]string, error) {
	files := []struct {
		name    string
		results []reconcile.MatchResult
	}{
		{MissingFile, report.Missing},
		{UnusedFile, report.Unused},
	}

	paths := make([]string, 0, len(files))
	for _, f := range files {
		rows := make([][]string, 0, len(f.results))
		for _, res := range f.results {
			rows = append(rows, res.Record())
		}
		path := filepath.Join(dir, f.name)
		if err := table.Write(path, reconcile.Header, rows); err != nil {
			return nil, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}
