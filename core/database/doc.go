// Package database opens the SQLite files uploaded by tablets.
//
// Some content apps record usage in an embedded SQLite database, one file per
// tablet upload. The package wraps GORM with the SQLite dialector to open those
// files read-only and to inspect their schema before querying.
//
// # Schema Inspection
//
// Uploaded files are sometimes truncated or overwritten by other content. The
// VerifySchema helper reads PRAGMA table_info for every expected table so that
// a structurally broken file can be skipped before any query runs.
//
// # Usage
//
//	db, err := database.Open(path, cfg.Database)
//	if err != nil {
//	    return err
//	}
//	defer database.Close(db)
//
//	err = database.VerifySchema(db, database.Schema{"units": {"unitid"}})
package database
