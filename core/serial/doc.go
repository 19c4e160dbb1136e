// Package serial validates and compares tablet serial numbers.
//
// A serial number is a 10 character code over the alphabet [0-9A-F], e.g.
// "5A27001390". Serials issued in the same manufacturing batch share a common
// prefix, so two serials are compared position by position rather than with an
// edit distance.
//
// # Validation
//
//	serial.IsValid("5A27001390") // true
//	serial.IsValid("5a27001390") // false
//
// # Matching
//
//	best, score, ok := serial.BestMatch("5A23002711", candidates)
package serial
