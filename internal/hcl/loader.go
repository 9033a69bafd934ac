package hcl

import (
	"context"
	"fmt"
	"sort"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/8cH9azbsFifZ/DigiFox/internal/config"
	"github.com/8cH9azbsFifZ/DigiFox/internal/ctxlog"
	"github.com/8cH9azbsFifZ/DigiFox/internal/fsutil"
	"github.com/8cH9azbsFifZ/DigiFox/internal/schema"
)

// Loader reads HCL project definition files.
type Loader struct{}

// NewLoader creates a new HCL loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load implements config.Loader. The path may be a single .hcl file or a
// directory; for a directory, every .hcl file beneath it is decoded and the
// project blocks are merged. Exactly one project block must result.
func (l *Loader) Load(ctx context.Context, path string) (*config.Project, error) {
	logger := ctxlog.FromContext(ctx)

	files, err := l.definitionFiles(path)
	if err != nil {
		return nil, err
	}
	logger.Debug("Discovered definition files.", "path", path, "count", len(files))

	parser := hclparse.NewParser()
	var projects []*schema.Project
	for _, file := range files {
		hclFile, diags := parser.ParseHCLFile(file)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to parse definition file %s: %w", file, diags)
		}

		var parsed schema.File
		if diags := gohcl.DecodeBody(hclFile.Body, nil, &parsed); diags.HasErrors() {
			return nil, fmt.Errorf("failed to decode definition file %s: %w", file, diags)
		}
		projects = append(projects, parsed.Projects...)
	}

	switch len(projects) {
	case 0:
		return nil, fmt.Errorf("no project block found in %s", path)
	case 1:
		// ok
	default:
		return nil, fmt.Errorf("expected exactly one project block in %s, found %d", path, len(projects))
	}

	project, err := l.translateProject(projects[0])
	if err != nil {
		return nil, err
	}

	project.ApplyDefaults()
	if err := project.Validate(); err != nil {
		return nil, fmt.Errorf("invalid project definition: %w", err)
	}

	logger.Debug("Project definition loaded.", "project", project.Name)
	return project, nil
}

// definitionFiles resolves the given path to the ordered list of .hcl files
// to decode.
func (l *Loader) definitionFiles(path string) ([]string, error) {
	isDir, err := fsutil.IsDir(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read definition path %s: %w", path, err)
	}
	if !isDir {
		return []string{path}, nil
	}

	files, err := fsutil.FindFilesByExtension(path, ".hcl")
	if err != nil {
		return nil, fmt.Errorf("failed to scan definition directory %s: %w", path, err)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no .hcl files found in %s", path)
	}
	sort.Strings(files)
	return files, nil
}
