package config

import "context"

// Loader is the interface for a format-specific project definition loader.
type Loader interface {
	// Load reads a project definition from the given path (a single file or
	// a directory of definition files) and translates it into the
	// format-agnostic model. Defaults are applied and the model is validated
	// before it is returned.
	Load(ctx context.Context, path string) (*Project, error)
}
