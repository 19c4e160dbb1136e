// Package publish uploads the generated tables to an S3-compatible bucket so
// the analytics side can pick them up.
package publish
