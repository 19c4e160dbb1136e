package config

import (
	"fmt"
	"path/filepath"
)

// Paths holds the locations of input tables and the output directory.
// Empty table paths fall back to the conventional per-team locations.
type Paths struct {
	// OutputDir is where extracted tables are written.
	OutputDir string `mapstructure:"output_dir" default:"."`
	// Tracker is the tablet tracker table.
	Tracker string `mapstructure:"tracker" default:""`
	// Mapping is the legacy hardware-address to serial number table.
	Mapping string `mapstructure:"mapping" default:"tablet-tracker/tablet-mac-to-serial-mappings.csv"`
	// Inventory is the merged tablets-uploading-data table used for reconciliation.
	Inventory string `mapstructure:"inventory" default:""`
	// StorybookCatalog is the storybook catalog table.
	StorybookCatalog string `mapstructure:"storybook_catalog" default:""`
	// VideoCatalog is the video catalog table used to resolve video titles.
	VideoCatalog string `mapstructure:"video_catalog" default:""`
}

// TrackerFor returns the tracker path for a team.
func (p Paths) TrackerFor(team string) string {
	return orDefault(p.Tracker, filepath.Join("tablet-tracker", fmt.Sprintf("tablet-tracker-%s.csv", team)))
}

// InventoryFor returns the merged inventory table path for a team.
func (p Paths) InventoryFor(team string) string {
	return orDefault(p.Inventory, filepath.Join("tablets-uploading-data", fmt.Sprintf("tablets-uploading-data-%s.csv", team)))
}

// VideoCatalogFor returns the video catalog path for a team.
func (p Paths) VideoCatalogFor(team string) string {
	return orDefault(p.VideoCatalog, filepath.Join("videos", fmt.Sprintf("videos-%s.csv", team)))
}

// StorybookCatalogFor returns the storybook catalog path for a team.
func (p Paths) StorybookCatalogFor(team string) string {
	return orDefault(p.StorybookCatalog, filepath.Join("storybooks", fmt.Sprintf("storybooks-%s.csv", team)))
}

// Output joins name onto the output directory.
func (p Paths) Output(name string) string {
	return filepath.Join(p.OutputDir, name)
}

func orDefault(v, def string) string {
	if v != "" {
		return v
	}
	return def
}
