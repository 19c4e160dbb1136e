package cmd

import (
	"fmt"

	"tablet-ingest/core/storage"
	"tablet-ingest/feature/publish"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// publishCmd uploads output tables to object storage.
var publishCmd = &cobra.Command{
	Use:   "publish [dir]",
	Short: "Upload output tables to the configured bucket",
	Long: `Uploads every .csv file in dir (default paths.output_dir) to
storage.bucket under storage.prefix. The bucket is created when missing.`,
	Args: withUsage(cobra.MaximumNArgs(1)),
	RunE: runPublish,
}

func init() {
	RootCmd.AddCommand(publishCmd)
}

func runPublish(cmd *cobra.Command, args []string) error {
	s, err := newSession()
	if err != nil {
		return err
	}
	defer s.logger.Sync()

	dir := s.cfg.Paths.OutputDir
	if len(args) == 1 {
		dir = args[0]
	}

	client, err := storage.NewClient(s.cfg.Storage)
	if err != nil {
		return fmt.Errorf("failed to connect to storage: %w", err)
	}

	svc := publish.NewService(client, s.cfg.Storage.Bucket, s.cfg.Storage.Prefix, s.logger)
	report, err := svc.Publish(cmd.Context(), dir)
	if err != nil {
		return err
	}
	s.logger.Info("Published tables",
		zap.String("bucket", s.cfg.Storage.Bucket),
		zap.Int("objects", len(report.Objects)),
		zap.Int("replaced", report.Replaced),
		zap.Int64("bytes", report.Bytes),
	)
	return nil
}
