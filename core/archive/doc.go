// Package archive expands the single-file zip containers some tablets upload
// their logs in (e.g. "com_enuma_xprize.6116002162.A.log.zip").
//
// Expansion always happens in a private temporary directory that lives only for
// the duration of one callback, so extracted files never leak across artifacts
// or periods.
package archive
