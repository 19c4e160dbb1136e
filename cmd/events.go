package cmd

import (
	"context"
	"fmt"

	"tablet-ingest/core/team"
	"tablet-ingest/feature/aggregate"
	"tablet-ingest/feature/catalog"
	"tablet-ingest/feature/extract"
	"tablet-ingest/feature/naming"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	eventsAll     bool
	eventsContent string
)

// eventsCmd extracts storybook or video usage events.
var eventsCmd = &cobra.Command{
	Use:   "events [period-dir]",
	Short: "Extract storybook or video usage events",
	Long: `Walks one week of uploads and writes <content>-events-<TEAM>_<DATE>.csv
with one row per distinct session.

KITKIT video titles are resolved through the video catalog
(paths.video_catalog, default videos/videos-KITKIT.csv).

Examples:
  tablet-ingest events ../tablet-usage-data/2019-03-01 --team ONEBILLION --content video
  tablet-ingest events ../tablet-usage-data --team CHIMPLE --all`,
	Args: withUsage(cobra.ExactArgs(1)),
	RunE: runEvents,
}

func init() {
	eventsCmd.Flags().BoolVar(&eventsAll, "all", false, "Treat the argument as a directory of weekly directories")
	eventsCmd.Flags().StringVar(&eventsContent, "content", string(naming.Storybooks), "Content type (storybook, video)")
	RootCmd.AddCommand(eventsCmd)
}

func runEvents(cmd *cobra.Command, args []string) error {
	s, err := newSession()
	if err != nil {
		return err
	}
	defer s.logger.Sync()

	content, err := parseContent(eventsContent)
	if err != nil {
		return err
	}
	rules, err := naming.Events(s.profile.Name, content)
	if err != nil {
		return err
	}
	d, err := s.dispatcher(content)
	if err != nil {
		return err
	}

	agg := aggregate.New(s.profile, s.logger).WithWorkers(s.cfg.Team.Workers)
	base := fmt.Sprintf("%s-events-%s", content, s.profile.Name)
	return s.writePeriods(cmd.Context(), args[0], eventsAll, base, extract.Header(content),
		func(ctx context.Context, dir string) ([][]string, error) {
			events, err := agg.Events(ctx, dir, rules, d)
			if err != nil {
				return nil, err
			}
			return extract.Records(events), nil
		})
}

// dispatcher wires the extractor the team's event artifacts need.
func (s *session) dispatcher(content naming.ContentType) (*extract.Dispatcher, error) {
	d := extract.NewDispatcher(s.logger)

	switch s.profile.Name {
	case team.TeamChimple:
		d.Register(naming.KindDelimited, extract.NewUserlog(s.logger))

	case team.TeamKitkit:
		action := "start_book"
		var labels extract.LabelResolver = extract.PrefixResolver{Prefix: "sw_"}
		if content == naming.Videos {
			action = "start_video"
			path := s.cfg.Paths.VideoCatalogFor(s.profile.Name)
			index, err := catalog.LoadLabelIndex(path)
			if err != nil {
				return nil, err
			}
			s.logger.Info("Loaded video catalog", zap.String("path", path), zap.Int("titles", index.Len()))
			labels = index
		}
		d.Register(naming.KindJSONLines, extract.NewJSONLines(action, labels, s.logger))

	case team.TeamOnebillion:
		resolver, err := s.resolver()
		if err != nil {
			return nil, err
		}
		r, err := extract.NewRelational(content, resolver, s.cfg.Database, s.logger)
		if err != nil {
			return nil, err
		}
		d.Register(naming.KindRelational, r)

	default:
		return nil, fmt.Errorf("team %s has no %s events", s.profile.Name, content)
	}
	return d, nil
}
