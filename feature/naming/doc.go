// Package naming classifies uploaded artifacts by their file name.
//
// Every content app names its log files differently, and the conventions
// changed between app versions. A RuleSet is an ordered list of conventions;
// Classify returns the first match as an Artifact carrying the format Kind and
// the serial number embedded in the name.
//
// Some conventions guarantee a serial at a fixed position (Strict rules); an
// invalid serial there means the data is not what the pipeline expects and
// the run must stop. Lenient rules cover names that vary across app versions
// and are skipped instead.
package naming
