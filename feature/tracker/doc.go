// Package tracker reads the tablet tracker sheet, where field staff record
// the serials deployed at each site, and reconciles it with the inventory of
// tablets actually uploading data.
package tracker
