// Package config provides configuration management for tablet-ingest.
//
// It utilizes Viper for loading configuration from environment variables and an
// optional .env file. Defaults come from the `default` struct tags of every
// section.
//
// # Configuration Structure
//
// The Config struct is divided into subsections:
//   - Team: content team, migration date, unmapped address policy
//   - Paths: tracker, legacy mapping, catalogs and output directory
//   - Database: options for opening per-device SQLite files
//   - Storage: S3/MinIO credentials and bucket for publishing tables
//   - Log: Logging level and format
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Team.Name)
package config
