package team

import (
	_ "embed"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed profiles.yaml
var defaultProfiles []byte

// Profile describes where a team deploys tablets and how its tracker is laid out.
type Profile struct {
	// Name is the team name.
	Name string `yaml:"-"`
	// Sites lists allowed site ids as single values ("142") or ranges ("29-56").
	Sites []string `yaml:"sites"`
	// TrackerSlots is the number of serial columns per tracker row.
	TrackerSlots int `yaml:"tracker_slots"`

	allowed map[int]struct{}
}

// Allows reports whether the site id is in the profile's allow-list.
func (p Profile) Allows(site int) bool {
	_, ok := p.allowed[site]
	return ok
}

// SiteIDs returns the expanded allow-list in ascending order.
func (p Profile) SiteIDs() []int {
	ids := make([]int, 0, len(p.allowed))
	for id := range p.allowed {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

// Profiles maps team names to their profiles.
type Profiles map[string]Profile

type profilesFile struct {
	Teams map[string]Profile `yaml:"teams"`
}

// LoadProfiles reads team profiles from path, or the built-in ones when path is empty.
func LoadProfiles(path string) (Profiles, error) {
	data := defaultProfiles
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading profiles %s: %w", path, err)
		}
		data = b
	}
	return ParseProfiles(data)
}

// ParseProfiles decodes a YAML profiles document.
func ParseProfiles(data []byte) (Profiles, error) {
	var f profilesFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing profiles: %w", err)
	}

	profiles := make(Profiles, len(f.Teams))
	for name, p := range f.Teams {
		allowed, err := expandSites(p.Sites)
		if err != nil {
			return nil, fmt.Errorf("team %s: %w", name, err)
		}
		if p.TrackerSlots != 7 && p.TrackerSlots != 14 {
			return nil, fmt.Errorf("team %s: tracker_slots must be 7 or 14, got %d", name, p.TrackerSlots)
		}
		p.Name = name
		p.allowed = allowed
		profiles[name] = p
	}
	return profiles, nil
}

// Get returns the profile for a team.
func (ps Profiles) Get(name string) (Profile, error) {
	p, ok := ps[name]
	if !ok {
		return Profile{}, fmt.Errorf("unknown team %q", name)
	}
	return p, nil
}

func expandSites(specs []string) (map[int]struct{}, error) {
	allowed := make(map[int]struct{})
	for _, spec := range specs {
		lo, hi, isRange := strings.Cut(spec, "-")
		from, err := strconv.Atoi(strings.TrimSpace(lo))
		if err != nil {
			return nil, fmt.Errorf("invalid site %q", spec)
		}
		to := from
		if isRange {
			if to, err = strconv.Atoi(strings.TrimSpace(hi)); err != nil || to < from {
				return nil, fmt.Errorf("invalid site range %q", spec)
			}
		}
		for id := from; id <= to; id++ {
			allowed[id] = struct{}{}
		}
	}
	return allowed, nil
}
