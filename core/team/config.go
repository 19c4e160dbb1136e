package team

import "time"

const (
	// TeamCCI is the CCI content team.
	TeamCCI = "CCI"
	// TeamChimple is the CHIMPLE content team.
	TeamChimple = "CHIMPLE"
	// TeamKitkit is the KITKIT content team.
	TeamKitkit = "KITKIT"
	// TeamOnebillion is the ONEBILLION content team.
	TeamOnebillion = "ONEBILLION"
	// TeamRobotutor is the ROBOTUTOR content team.
	TeamRobotutor = "ROBOTUTOR"
)

// DateLayout is the layout of period labels and configured dates.
const DateLayout = "2006-01-02"

// Config holds configuration for the team whose data is processed.
type Config struct {
	// Name is the content team (CCI, CHIMPLE, KITKIT, ONEBILLION, ROBOTUTOR).
	Name string `mapstructure:"name" default:"KITKIT"`
	// ProfilesFile optionally replaces the built-in team profiles.
	ProfilesFile string `mapstructure:"profiles_file" default:""`
	// MigrationDate is the first period whose log files are named by serial
	// number instead of hardware address.
	MigrationDate string `mapstructure:"migration_date" default:"2018-03-23"`
	// UnmappedPolicy decides what happens to a hardware address missing from
	// the legacy mapping (skip, unknown).
	UnmappedPolicy string `mapstructure:"unmapped_policy" default:"skip"`
	// SortReconcile orders reconciliation output by serial number.
	SortReconcile bool `mapstructure:"sort_reconcile" default:"true"`
	// Workers is how many sites of a period are processed concurrently.
	// The default of 1 processes sites sequentially.
	Workers int `mapstructure:"workers" default:"1"`
}

// IsValidTeam checks if the configured team is supported.
func (c Config) IsValidTeam() bool {
	switch c.Name {
	case TeamCCI, TeamChimple, TeamKitkit, TeamOnebillion, TeamRobotutor:
		return true
	default:
		return false
	}
}

// Migration parses MigrationDate.
func (c Config) Migration() (time.Time, error) {
	return time.Parse(DateLayout, c.MigrationDate)
}
