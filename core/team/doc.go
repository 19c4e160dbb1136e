// Package team defines the content teams whose tablets upload data, and the
// per-team deployment profile: the allow-list of site ids and the layout of the
// team's tablet tracker.
//
// The built-in profiles are embedded from profiles.yaml. A deployment can
// replace them by pointing team.profiles_file at another YAML document of the
// same shape.
package team
