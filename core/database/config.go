package database

// Config holds options for opening per-device SQLite files.
type Config struct {
	// ReadOnly opens files with mode=ro so uploaded data is never modified.
	ReadOnly bool `mapstructure:"read_only" default:"true"`
	// TimeoutSeconds bounds a single query against one file.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
}
