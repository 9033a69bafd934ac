// Package config defines the format-agnostic project definition model for
// the generator, along with the Loader interface for reading it from disk.
//
// The `config.Project` is the single source of truth for the `scan` and
// `pbx` packages. Concrete loader implementations, such as for HCL, are
// provided in separate packages.
package config
