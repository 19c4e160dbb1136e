// Package table reads and writes the flat delimited tables the pipeline
// exchanges: inventories, usage events, catalogs and reconciliation reports.
// Catalog spreadsheets arrive tab-separated with a fixed preamble; Options
// covers both.
package table
