package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/8cH9azbsFifZ/DigiFox/internal/ctxlog"
	"github.com/8cH9azbsFifZ/DigiFox/internal/fsutil"
	"github.com/8cH9azbsFifZ/DigiFox/internal/pbx"
	"github.com/8cH9azbsFifZ/DigiFox/internal/scan"
	"github.com/8cH9azbsFifZ/DigiFox/internal/xcid"
)

// Run executes the generation pipeline: scan, assemble, validate,
// serialize, write. The stages are strictly linear; no stage re-enters an
// earlier one, and nothing is written until the full graph has validated.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	inventory, err := scan.Scan(ctx, a.project.SourceDir)
	if err != nil {
		return fmt.Errorf("failed to scan source tree: %w", err)
	}

	alloc := xcid.New()
	graph, err := pbx.Assemble(ctx, a.project, inventory, alloc)
	if err != nil {
		return fmt.Errorf("failed to assemble object graph: %w", err)
	}
	a.logger.Debug("Identifiers allocated.", "count", alloc.Len())

	if err := graph.Validate(ctx); err != nil {
		return err
	}

	text := graph.Render()

	if a.config.DryRun {
		fmt.Fprint(a.outW, text)
		a.logger.Info("Dry run complete, no file written.")
		return nil
	}

	outPath := a.config.OutputPath
	if outPath == "" {
		outPath = filepath.Join(a.project.Name+".xcodeproj", "project.pbxproj")
	}
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	if err := fsutil.WriteFileAtomic(outPath, []byte(text), 0o644); err != nil {
		return fmt.Errorf("failed to write project descriptor: %w", err)
	}
	a.logger.Info("Project descriptor written.", "path", outPath, "bytes", len(text))

	a.printSummary(outPath, inventory)
	return nil
}

// printSummary reports the per-role counts on the user output stream,
// mirroring the exit contract: a short human-readable summary on success.
func (a *App) printSummary(outPath string, inventory *scan.Inventory) {
	counts := inventory.Counts()
	fmt.Fprintf(a.outW, "Generated %s\n", outPath)
	fmt.Fprintf(a.outW, "  Swift files:    %d\n", counts[scan.RoleSwift])
	fmt.Fprintf(a.outW, "  ObjC files:     %d\n", counts[scan.RoleObjC])
	fmt.Fprintf(a.outW, "  C files:        %d\n", counts[scan.RoleC])
	fmt.Fprintf(a.outW, "  Headers:        %d\n", counts[scan.RoleHeader])
	fmt.Fprintf(a.outW, "  Asset catalogs: %d\n", counts[scan.RoleAssetCatalog])
	fmt.Fprintf(a.outW, "  Other files:    %d\n", counts[scan.RolePassthrough])
	fmt.Fprintf(a.outW, "  Frameworks:     %d\n", len(a.project.Frameworks))
}
