package cmd

import (
	"tablet-ingest/core/reconcile"
	"tablet-ingest/feature/tracker"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// reconcileCmd compares the tablet tracker with the tablets seen uploading data.
var reconcileCmd = &cobra.Command{
	Use:   "reconcile [inventory-table]",
	Short: "Reconcile the tablet tracker with the tablets uploading data",
	Long: `Compares the serials recorded in the tablet tracker (paths.tracker, default
tablet-tracker/tablet-tracker-<TEAM>.csv) with a merged inventory table
(default tablets-uploading-data/tablets-uploading-data-<TEAM>.csv).

Writes two tables, each serial annotated with its closest match on the other
side:
  serial-numbers-not-found-in-tablet-tracker.csv
  serial-numbers-not-found-in-tablet-usage-data.csv`,
	Args: withUsage(cobra.MaximumNArgs(1)),
	RunE: runReconcile,
}

func init() {
	RootCmd.AddCommand(reconcileCmd)
}

func runReconcile(cmd *cobra.Command, args []string) error {
	s, err := newSession()
	if err != nil {
		return err
	}
	defer s.logger.Sync()

	inventoryPath := s.cfg.Paths.InventoryFor(s.profile.Name)
	if len(args) == 1 {
		inventoryPath = args[0]
	}
	trackerPath := s.cfg.Paths.TrackerFor(s.profile.Name)

	r := tracker.NewReconciler(s.profile.TrackerSlots, reconcile.Options{Sort: s.cfg.Team.SortReconcile}, s.logger)
	report, err := r.Run(trackerPath, inventoryPath)
	if err != nil {
		return err
	}

	paths, err := tracker.Write(s.cfg.Paths.OutputDir, report)
	if err != nil {
		return err
	}
	s.logger.Info("Wrote reconciliation", zap.Strings("paths", paths))
	return nil
}
