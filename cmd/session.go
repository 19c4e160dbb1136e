package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"tablet-ingest/core/config"
	"tablet-ingest/core/logger"
	"tablet-ingest/core/team"
	"tablet-ingest/feature/legacy"
	"tablet-ingest/feature/naming"

	"go.uber.org/zap"
)

// session is the state shared by every command of one run.
type session struct {
	cfg       *config.Config
	logger    *zap.Logger
	profile   team.Profile
	migration time.Time
	policy    legacy.Policy
}

func newSession() (*session, error) {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if teamOverride != "" {
		cfg.Team.Name = strings.ToUpper(teamOverride)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	l, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	l = logger.WithRunID(l, logger.NewRunID()).With(zap.String("team", cfg.Team.Name))

	profiles, err := team.LoadProfiles(cfg.Team.ProfilesFile)
	if err != nil {
		return nil, err
	}
	profile, err := profiles.Get(cfg.Team.Name)
	if err != nil {
		return nil, err
	}

	migration, err := cfg.Team.Migration()
	if err != nil {
		return nil, fmt.Errorf("invalid migration date: %w", err)
	}
	policy, err := legacy.ParsePolicy(cfg.Team.UnmappedPolicy)
	if err != nil {
		return nil, err
	}

	return &session{
		cfg:       cfg,
		logger:    l,
		profile:   profile,
		migration: migration,
		policy:    policy,
	}, nil
}

// mapping loads the legacy address mapping. Only teams whose devices were
// once named by hardware address need it; the others get an empty mapping.
func (s *session) mapping() (*legacy.Mapping, error) {
	if s.profile.Name != team.TeamOnebillion {
		return legacy.New(nil, s.policy)
	}

	m, err := legacy.Load(s.cfg.Paths.Mapping, s.policy)
	if errors.Is(err, os.ErrNotExist) {
		s.logger.Warn("Legacy mapping not found, hardware addresses will not resolve",
			zap.String("path", s.cfg.Paths.Mapping),
		)
		return legacy.New(nil, s.policy)
	}
	if err != nil {
		return nil, err
	}
	if rejected := m.Rejected(); len(rejected) > 0 {
		s.logger.Warn("Ignoring legacy mapping rows with an invalid serial", zap.Strings("addresses", rejected))
	}
	s.logger.Info("Loaded legacy mapping", zap.Int("addresses", m.Len()))
	return m, nil
}

func (s *session) resolver() (legacy.Resolver, error) {
	m, err := s.mapping()
	if err != nil {
		return legacy.Resolver{}, err
	}
	return legacy.Resolver{Mapping: m, Migration: s.migration}, nil
}

func parseContent(s string) (naming.ContentType, error) {
	switch c := naming.ContentType(strings.ToLower(strings.TrimSuffix(s, "s"))); c {
	case naming.Storybooks, naming.Videos:
		return c, nil
	default:
		return "", fmt.Errorf("unknown content %q, expected storybook or video", s)
	}
}
