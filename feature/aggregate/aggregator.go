package aggregate

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"sync/atomic"

	"tablet-ingest/core/serial"
	"tablet-ingest/core/team"
	"tablet-ingest/feature/extract"
	"tablet-ingest/feature/inventory"
	"tablet-ingest/feature/legacy"
	"tablet-ingest/feature/naming"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// DefaultWorkers processes sites one at a time, in directory order.
const DefaultWorkers = 1

// Site is one site directory inside a period.
type Site struct {
	ID   int
	Path string
}

// Aggregator walks one period of uploads for a team.
type Aggregator struct {
	profile team.Profile
	logger  *zap.Logger
	workers int
}

// New creates an aggregator for the team described by profile.
func New(profile team.Profile, logger *zap.Logger) *Aggregator {
	return &Aggregator{profile: profile, logger: logger, workers: DefaultWorkers}
}

// WithWorkers sets how many sites are processed concurrently.
func (a *Aggregator) WithWorkers(n int) *Aggregator {
	if n > 0 {
		a.workers = n
	}
	return a
}

// Sites lists the site directories of a period the team's allow-list accepts,
// ordered by site id.
func (a *Aggregator) Sites(dir string) ([]Site, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("listing sites in %s: %w", dir, err)
	}

	var sites []Site
	for _, e := range entries {
		path := filepath.Join(dir, e.Name())
		if !e.IsDir() {
			a.logger.Warn("Skipping non-directory site entry", zap.String("path", path))
			continue
		}
		id, err := strconv.Atoi(e.Name())
		if err != nil {
			a.logger.Warn("Skipping site with non-numeric name", zap.String("path", path))
			continue
		}
		if !a.profile.Allows(id) {
			a.logger.Warn("Skipping site not assigned to team",
				zap.Int("site", id),
				zap.String("team", a.profile.Name),
			)
			continue
		}
		sites = append(sites, Site{ID: id, Path: path})
	}

	sort.Slice(sites, func(i, j int) bool { return sites[i].ID < sites[j].ID })
	return sites, nil
}

// Walk classifies every file and directory below site and calls fn for each
// recognized artifact. An invalid serial under a strict rule stops the walk.
func (a *Aggregator) Walk(ctx context.Context, site Site, rules naming.RuleSet, fn func(naming.Artifact) error) error {
	return filepath.WalkDir(site.Path, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if path == site.Path {
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		artifact, err := rules.Classify(path, d.IsDir())
		switch {
		case errors.Is(err, naming.ErrUnrecognized):
			if !d.IsDir() {
				a.logger.Debug("Skipping unrecognized file", zap.String("path", path))
			}
			return nil
		case naming.IsFatal(err):
			return err
		case err != nil:
			a.logger.Debug("Skipping artifact without a serial number", zap.String("path", path), zap.Error(err))
			return nil
		case artifact.Kind == naming.KindIgnored:
			return nil
		}
		return fn(artifact)
	})
}

// Inventory returns, for each accepted site of the period in dir, the tablets
// that uploaded anything. Sites without uploads get an empty record.
func (a *Aggregator) Inventory(ctx context.Context, dir string, rules naming.RuleSet, mapping *legacy.Mapping) ([]inventory.Record, error) {
	period, err := ParsePeriod(dir)
	if err != nil {
		return nil, err
	}
	sites, err := a.Sites(dir)
	if err != nil {
		return nil, err
	}

	found := make([][]serial.Number, len(sites))
	err = a.eachSite(ctx, sites, func(ctx context.Context, i int, site Site) error {
		return a.Walk(ctx, site, rules, func(artifact naming.Artifact) error {
			if n, ok := a.resolve(artifact, mapping); ok {
				found[i] = append(found[i], n)
			}
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	records := make([]inventory.Record, 0, len(sites))
	for i, site := range sites {
		r := inventory.NewRecord(a.profile.Name, site.ID, period, found[i])
		a.logger.Debug("Site inventory", zap.Int("site", site.ID), zap.Int("tablets", len(r.Serials)))
		records = append(records, r)
	}
	return records, nil
}

// eachSite runs fn for every site on the worker pool. The first error cancels
// the remaining sites.
func (a *Aggregator) eachSite(ctx context.Context, sites []Site, fn func(ctx context.Context, i int, site Site) error) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(a.workers)
	for i, site := range sites {
		g.Go(func() error {
			if err := fn(gctx, i, site); err != nil {
				return fmt.Errorf("site %d: %w", site.ID, err)
			}
			return nil
		})
	}
	return g.Wait()
}

// resolve returns the serial an inventory artifact stands for. Legacy names
// holding a valid serial are taken as is whatever the period; anything else is
// looked up as a hardware address. Unmapped addresses are left out of the
// inventory whatever the policy.
func (a *Aggregator) resolve(artifact naming.Artifact, mapping *legacy.Mapping) (serial.Number, bool) {
	if artifact.Serial != "" {
		return artifact.Serial, true
	}

	n, outcome := mapping.Lookup(artifact.Segment)
	if outcome != legacy.Resolved {
		a.logger.Warn("Skipping unmapped device address",
			zap.String("path", artifact.Path),
			zap.String("address", artifact.Segment),
			zap.Stringer("outcome", outcome),
		)
		return "", false
	}
	return n, true
}

// Events extracts the usage events of every accepted site of the period in
// dir. The result is deduplicated and ordered by serial and start time.
func (a *Aggregator) Events(ctx context.Context, dir string, rules naming.RuleSet, d *extract.Dispatcher) ([]extract.Event, error) {
	period, err := ParsePeriod(dir)
	if err != nil {
		return nil, err
	}
	sites, err := a.Sites(dir)
	if err != nil {
		return nil, err
	}

	found := make([][]extract.Event, len(sites))
	var skipped atomic.Int64
	err = a.eachSite(ctx, sites, func(ctx context.Context, i int, site Site) error {
		return a.Walk(ctx, site, rules, func(artifact naming.Artifact) error {
			if artifact.Kind == naming.KindMarker {
				return nil
			}
			events, err := d.Extract(ctx, artifact, period)
			if errors.Is(err, extract.ErrSkip) {
				skipped.Add(1)
				a.logger.Warn("Skipping artifact", zap.String("path", artifact.Path), zap.Error(err))
				return nil
			}
			if err != nil {
				return err
			}
			found[i] = append(found[i], events...)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	var events []extract.Event
	for _, siteEvents := range found {
		events = append(events, siteEvents...)
	}
	events = extract.Dedupe(events)
	extract.Sort(events)
	a.logger.Info("Extracted events",
		zap.String("period", period.Format(team.DateLayout)),
		zap.Int("sites", len(sites)),
		zap.Int("events", len(events)),
		zap.Int64("skipped", skipped.Load()),
	)
	return events, nil
}
