package config

import (
	"fmt"
	"reflect"
	"strings"

	"tablet-ingest/core/database"
	"tablet-ingest/core/logger"
	"tablet-ingest/core/storage"
	"tablet-ingest/core/team"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
// It is divided into partial configurations for better modularity.
type Config struct {
	// Team holds the content team and its processing options.
	Team team.Config `mapstructure:"team"`
	// Paths holds the locations of input tables and the output directory.
	Paths Paths `mapstructure:"paths"`
	// Database holds options for opening per-device SQLite files.
	Database database.Config `mapstructure:"database"`
	// Storage holds configuration for the object storage publish target.
	Storage storage.Config `mapstructure:"storage"`
	// Log holds configuration for the logger.
	Log logger.Config `mapstructure:"log"`
}

// LoadConfig loads configuration from environment variables and .env file.
func LoadConfig(path string) (*Config, error) {
	envPath := path + "/.env"
	if path == "." {
		envPath = ".env"
	}

	// Ignore error if file doesn't exist
	_ = godotenv.Overload(envPath)

	v := viper.New()

	// Recursively parse struct tags to set default values
	bindValues(v, Config{}, "")

	// Map environment variables to nested keys (e.g. TEAM_NAME -> team.name)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// Validate reports the first setting a run cannot start with.
func (c *Config) Validate() error {
	if !c.Team.IsValidTeam() {
		return fmt.Errorf("unsupported team %q", c.Team.Name)
	}
	if _, err := c.Team.Migration(); err != nil {
		return fmt.Errorf("invalid team.migration_date %q: %w", c.Team.MigrationDate, err)
	}
	if c.Team.Workers < 1 {
		return fmt.Errorf("team.workers must be at least 1, got %d", c.Team.Workers)
	}
	if c.Paths.OutputDir == "" {
		return fmt.Errorf("paths.output_dir is empty")
	}
	return nil
}

// bindValues uses reflection to iterate over the struct and set default values in Viper
// based on the 'default' and 'mapstructure' tags.
func bindValues(v *viper.Viper, iface any, prefix string) {
	t := reflect.TypeOf(iface)

	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tag := field.Tag.Get("mapstructure")
		if tag == "" {
			continue
		}

		key := tag
		if prefix != "" {
			key = prefix + "." + tag
		}

		if field.Type.Kind() == reflect.Struct {
			bindValues(v, reflect.New(field.Type).Elem().Interface(), key)
			continue
		}

		// Always set default (even if empty) to register the key for AutomaticEnv
		v.SetDefault(key, field.Tag.Get("default"))
	}
}
