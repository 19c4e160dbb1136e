// Package inventory models the weekly list of tablets seen uploading data at
// each site, and the single-cell serial list format used in its table.
package inventory
