package cmd

import (
	"context"
	"fmt"

	"tablet-ingest/core/table"
	"tablet-ingest/core/team"
	"tablet-ingest/feature/aggregate"

	"go.uber.org/zap"
)

// periodTable produces the rows of one period's table.
type periodTable func(ctx context.Context, dir string) ([][]string, error)

// writePeriods runs produce for the period directory arg, or with all for
// every period directory under arg. Each period is written to
// "<base>_<date>.csv"; with all the periods are also merged into "<base>.csv".
func (s *session) writePeriods(ctx context.Context, arg string, all bool, base string, header []string, produce periodTable) error {
	dirs := []string{arg}
	if all {
		var err error
		if dirs, err = aggregate.Periods(arg); err != nil {
			return err
		}
		if len(dirs) == 0 {
			return fmt.Errorf("no period directories in %s", arg)
		}
	}

	written := make([]string, 0, len(dirs))
	for _, dir := range dirs {
		period, err := aggregate.ParsePeriod(dir)
		if err != nil {
			return err
		}
		rows, err := produce(ctx, dir)
		if err != nil {
			return fmt.Errorf("period %s: %w", period.Format(team.DateLayout), err)
		}

		path := s.cfg.Paths.Output(fmt.Sprintf("%s_%s.csv", base, period.Format(team.DateLayout)))
		if err := table.Write(path, header, rows); err != nil {
			return err
		}
		s.logger.Info("Wrote table", zap.String("path", path), zap.Int("rows", len(rows)))
		written = append(written, path)
	}

	if !all {
		return nil
	}
	merged := s.cfg.Paths.Output(base + ".csv")
	report, err := table.Merge(merged, written)
	if err != nil {
		return fmt.Errorf("merging periods: %w", err)
	}
	if len(report.Mismatched) > 0 {
		s.logger.Warn("Dropped differing headers", zap.Strings("paths", report.Mismatched))
	}
	s.logger.Info("Merged periods", zap.String("path", merged), zap.Int("periods", len(written)), zap.Int("rows", report.Rows))
	return nil
}
