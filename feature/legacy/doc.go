// Package legacy maps the hardware addresses that named tablet log files
// before the software update of 2018-03-23 to the serial numbers used since.
//
// A lookup miss is an explicit Outcome rather than an empty string: Resolved,
// Unknown (keep the record with an empty serial) or Skip (drop it). The
// configured Policy picks between the last two for every caller.
package legacy
