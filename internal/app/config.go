package app

import "errors"

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	DefinitionPath string // .hcl file or directory of .hcl files
	OutputPath     string // empty means <name>.xcodeproj/project.pbxproj

	LogFormat string
	LogLevel  string
	DryRun    bool
}

// NewConfig validates and returns an application configuration.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.DefinitionPath == "" {
		return nil, errors.New("DefinitionPath is a required configuration field and cannot be empty")
	}

	return &cfg, nil
}
