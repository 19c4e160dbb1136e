package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"tablet-ingest/core/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// teamOverride replaces the configured team for one invocation.
var teamOverride string

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "tablet-ingest",
	Short: "Tablet log ingestion",
	Long: `tablet-ingest turns the weekly uploads of field tablets into tables:
which tablets uploaded data from which site, which storybooks and videos were
used, and how the tablet tracker compares with reality.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := RootCmd.ExecuteContext(ctx); err != nil {
		var usage *usageError
		if errors.As(err, &usage) {
			fmt.Fprint(os.Stderr, usage.cmd.UsageString())
		}

		// Console format with ISO8601 timestamps, whatever the configured logger
		cfg := &logger.Config{
			Level:  "debug",
			Format: "console",
		}

		l, logErr := logger.New(cfg)
		if logErr == nil {
			l.Error("command failed", zap.Error(err))
			_ = l.Sync()
		} else {
			fmt.Println(err)
		}
		stop()
		os.Exit(1)
	}
}

func init() {
	RootCmd.PersistentFlags().StringVar(&teamOverride, "team", "", "Content team, overrides TEAM_NAME (CHIMPLE, KITKIT, ONEBILLION, ROBOTUTOR, CCI)")
}

// usageError is a rejected command line. Its message ends with the usage line.
type usageError struct {
	err error
	cmd *cobra.Command
}

func (e *usageError) Error() string {
	return fmt.Sprintf("%v\nUsage: %s", e.err, e.cmd.UseLine())
}

func (e *usageError) Unwrap() error { return e.err }

// withUsage makes argument validation failures carry the command's usage.
func withUsage(check cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := check(cmd, args); err != nil {
			return &usageError{err: err, cmd: cmd}
		}
		return nil
	}
}
