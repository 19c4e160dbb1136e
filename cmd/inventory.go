package cmd

import (
	"context"

	"tablet-ingest/feature/aggregate"
	"tablet-ingest/feature/inventory"
	"tablet-ingest/feature/naming"

	"github.com/spf13/cobra"
)

var inventoryAll bool

// inventoryCmd lists the tablets that uploaded data, per site and week.
var inventoryCmd = &cobra.Command{
	Use:   "inventory [period-dir]",
	Short: "Extract the serial numbers of tablets uploading data",
	Long: `Walks one week of uploads (a directory named YYYY-MM-DD) and writes
tablets-uploading-data-<TEAM>_<DATE>.csv with one row per site.

Examples:
  # One week
  tablet-ingest inventory ../tablet-usage-data/2018-05-25 --team KITKIT

  # Every week, plus the merged table
  tablet-ingest inventory ../tablet-usage-data --all`,
	Args: withUsage(cobra.ExactArgs(1)),
	RunE: runInventory,
}

func init() {
	inventoryCmd.Flags().BoolVar(&inventoryAll, "all", false, "Treat the argument as a directory of weekly directories")
	RootCmd.AddCommand(inventoryCmd)
}

func runInventory(cmd *cobra.Command, args []string) error {
	s, err := newSession()
	if err != nil {
		return err
	}
	defer s.logger.Sync()

	rules, err := naming.Inventory(s.profile.Name)
	if err != nil {
		return err
	}
	mapping, err := s.mapping()
	if err != nil {
		return err
	}

	agg := aggregate.New(s.profile, s.logger).WithWorkers(s.cfg.Team.Workers)
	base := "tablets-uploading-data-" + s.profile.Name
	return s.writePeriods(cmd.Context(), args[0], inventoryAll, base, inventory.Header,
		func(ctx context.Context, dir string) ([][]string, error) {
			records, err := agg.Inventory(ctx, dir, rules, mapping)
			if err != nil {
				return nil, err
			}
			return inventory.Rows(records), nil
		})
}
