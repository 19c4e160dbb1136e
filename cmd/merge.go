package cmd

import (
	"tablet-ingest/core/table"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// mergeCmd concatenates period tables produced by the other commands.
var mergeCmd = &cobra.Command{
	Use:   "merge [output] [input...]",
	Short: "Merge period tables into one, keeping a single header",
	Long: `Concatenates the input tables in the order given into the output table.
The header of the first input is kept and the first line of every later
input is dropped; inputs whose header differs are reported with a warning.

Example:
  tablet-ingest merge tablets-uploading-data-KITKIT.csv tablets-uploading-data-KITKIT_2018-*.csv`,
	Args: withUsage(cobra.MinimumNArgs(2)),
	RunE: runMerge,
}

func init() {
	RootCmd.AddCommand(mergeCmd)
}

func runMerge(cmd *cobra.Command, args []string) error {
	s, err := newSession()
	if err != nil {
		return err
	}
	defer s.logger.Sync()

	report, err := table.Merge(args[0], args[1:])
	if err != nil {
		return err
	}
	if len(report.Mismatched) > 0 {
		s.logger.Warn("Dropped differing headers", zap.Strings("paths", report.Mismatched))
	}
	s.logger.Info("Merged tables", zap.String("path", args[0]), zap.Int("inputs", len(args)-1), zap.Int("rows", report.Rows))
	return nil
}
