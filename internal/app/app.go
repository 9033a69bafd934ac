package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/8cH9azbsFifZ/DigiFox/internal/config"
	"github.com/8cH9azbsFifZ/DigiFox/internal/ctxlog"
)

// teamIDEnv overrides the definition's team_id when set, so a repository
// can ship a definition without hard-coding a developer account.
const teamIDEnv = "PBXGEN_TEAM_ID"

// App encapsulates the generator's dependencies, configuration, and
// lifecycle.
type App struct {
	outW    io.Writer
	logger  *slog.Logger
	config  *Config
	project *config.Project
}

// NewApp is the constructor for the main application. It returns a fully
// initialized App instance with its own isolated logger and a loaded,
// validated project definition.
func NewApp(outW, logW io.Writer, appConfig *Config, loader config.Loader) *App {
	logger := newLogger(appConfig.LogLevel, appConfig.LogFormat, logW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	project, err := loader.Load(ctx, appConfig.DefinitionPath)
	if err != nil {
		// A failure to load the definition is a fatal startup error.
		panic(fmt.Errorf("failed to load project definition: %w", err))
	}

	if teamID := os.Getenv(teamIDEnv); teamID != "" {
		logger.Debug("Overriding team id from environment.", "var", teamIDEnv)
		project.TeamID = teamID
	}
	logger.Debug("Project definition ready.", "project", project.Name)

	return &App{
		outW:    outW,
		logger:  logger,
		config:  appConfig,
		project: project,
	}
}

// Project returns the loaded project definition. This is primarily for
// testing.
func (a *App) Project() *config.Project {
	return a.project
}
