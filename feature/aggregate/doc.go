// Package aggregate turns one week of uploads, laid out as
// <period>/<site>/.../<artifact>, into inventory records and usage events.
//
// Periods are directories named YYYY-MM-DD. Sites are numeric directories
// filtered by the team's allow-list. Everything below a site is walked
// recursively and classified with the team's naming rules.
package aggregate
