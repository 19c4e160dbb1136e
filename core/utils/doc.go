// Package utils provides common utility functions for tablet-ingest.
// It includes helpers for converting loosely typed database values, since
// SQLite columns carry whatever type the writing app chose.
package utils
