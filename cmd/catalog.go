package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"tablet-ingest/core/database"
	"tablet-ingest/core/table"
	"tablet-ingest/core/team"
	"tablet-ingest/feature/aggregate"
	"tablet-ingest/feature/catalog"
	"tablet-ingest/feature/naming"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var catalogContent string

// catalogCmd builds a team's storybook or video catalog.
var catalogCmd = &cobra.Command{
	Use:   "catalog [source]",
	Short: "Extract a storybook or video catalog",
	Long: `Writes <content>s-<TEAM>.csv from the team's content source:

  CHIMPLE storybooks   titles.json
  KITKIT storybooks    library book data sheet (.tsv)
  KITKIT videos        library video data sheet (.tsv)
  ONEBILLION videos    a week of uploads; video units are read from the device databases`,
	Args: withUsage(cobra.ExactArgs(1)),
	RunE: runCatalog,
}

func init() {
	catalogCmd.Flags().StringVar(&catalogContent, "content", string(naming.Storybooks), "Content type (storybook, video)")
	RootCmd.AddCommand(catalogCmd)
}

func runCatalog(cmd *cobra.Command, args []string) error {
	s, err := newSession()
	if err != nil {
		return err
	}
	defer s.logger.Sync()

	content, err := parseContent(catalogContent)
	if err != nil {
		return err
	}

	var assets []catalog.Asset
	switch {
	case s.profile.Name == team.TeamChimple && content == naming.Storybooks:
		assets, err = readCatalog(args[0], func(f *os.File) ([]catalog.Asset, error) { return catalog.FromTitlesJSON(f) })
	case s.profile.Name == team.TeamKitkit && content == naming.Storybooks:
		assets, err = readCatalog(args[0], func(f *os.File) ([]catalog.Asset, error) { return catalog.FromStorybookTSV(f) })
	case s.profile.Name == team.TeamKitkit && content == naming.Videos:
		assets, err = readCatalog(args[0], func(f *os.File) ([]catalog.Asset, error) { return catalog.FromVideoTSV(f) })
	case s.profile.Name == team.TeamOnebillion && content == naming.Videos:
		assets, err = s.videoUnits(cmd.Context(), args[0])
	default:
		return fmt.Errorf("team %s has no %s catalog", s.profile.Name, content)
	}
	if err != nil {
		return err
	}

	path := s.cfg.Paths.Output(fmt.Sprintf("%ss-%s.csv", content, s.profile.Name))
	if err := table.Write(path, catalog.Header(content), catalog.Records(assets, content)); err != nil {
		return err
	}
	s.logger.Info("Wrote catalog", zap.String("path", path), zap.Int("assets", len(assets)))
	return nil
}

func readCatalog(path string, parse func(*os.File) ([]catalog.Asset, error)) ([]catalog.Asset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	assets, err := parse(f)
	if err != nil {
		return nil, fmt.Errorf("reading catalog %s: %w", path, err)
	}
	return assets, nil
}

// videoUnits collects the video units of every device database in a period.
// Unreadable databases are skipped.
func (s *session) videoUnits(ctx context.Context, dir string) ([]catalog.Asset, error) {
	rules, err := naming.Events(s.profile.Name, naming.Videos)
	if err != nil {
		return nil, err
	}
	agg := aggregate.New(s.profile, s.logger)
	sites, err := agg.Sites(dir)
	if err != nil {
		return nil, err
	}

	var assets []catalog.Asset
	for _, site := range sites {
		err := agg.Walk(ctx, site, rules, func(a naming.Artifact) error {
			found, err := s.readVideoUnits(ctx, a.Path)
			if err != nil {
				if errors.Is(err, context.Canceled) {
					return err
				}
				s.logger.Warn("Skipping invalid database", zap.String("path", a.Path), zap.Error(err))
				return nil
			}
			assets = append(assets, found...)
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	assets = catalog.Dedupe(assets)
	catalog.Sort(assets)
	return assets, nil
}

func (s *session) readVideoUnits(ctx context.Context, path string) ([]catalog.Asset, error) {
	db, err := database.Open(path, s.cfg.Database)
	if err != nil {
		return nil, err
	}
	defer database.Close(db)

	ctx, cancel := context.WithTimeout(ctx, s.cfg.Database.Timeout())
	defer cancel()
	return catalog.FromVideoUnits(ctx, db)
}
