package pbx

import (
	"context"
	"fmt"
	"sort"

	"github.com/8cH9azbsFifZ/DigiFox/internal/config"
	"github.com/8cH9azbsFifZ/DigiFox/internal/ctxlog"
	"github.com/8cH9azbsFifZ/DigiFox/internal/scan"
	"github.com/8cH9azbsFifZ/DigiFox/internal/xcid"
)

// assembler accumulates the graph under construction. The allocator and
// the path registries are explicit state passed through it, never ambient.
type assembler struct {
	alloc   *xcid.Allocator
	project *config.Project

	graph      *Graph
	refsByPath map[string]*FileRef
}

// Assemble builds the complete object graph from the project definition and
// the scanned inventory. The returned graph is fully cross-wired; callers
// must still run Validate before serializing it.
func Assemble(ctx context.Context, p *config.Project, inv *scan.Inventory, alloc *xcid.Allocator) (*Graph, error) {
	logger := ctxlog.FromContext(ctx)

	a := &assembler{
		alloc:   alloc,
		project: p,
		graph: &Graph{
			Name:              p.Name,
			DevelopmentRegion: p.DevelopmentRegion,
			KnownRegions:      p.KnownRegions,
			FrameworksDir:     p.FrameworksDir,
		},
		refsByPath: make(map[string]*FileRef),
	}

	steps := []func(*scan.Inventory) error{
		a.addSingletons,
		a.addSourceFiles,
		a.addHeaders,
		a.addAssetCatalogs,
		a.addMetadataFiles,
		a.addFrameworks,
		a.addGroupTree,
		a.addPhases,
		a.addConfigurations,
		a.addTarget,
	}
	for _, step := range steps {
		if err := step(inv); err != nil {
			return nil, err
		}
	}

	logger.Debug("Object graph assembled.",
		"file_refs", len(a.graph.FileRefs),
		"build_files", len(a.graph.BuildFiles),
		"groups", len(a.graph.Tree.Nodes),
	)
	return a.graph, nil
}

// addSingletons allocates the fixed identities referenced by name rather
// than by path.
func (a *assembler) addSingletons(*scan.Inventory) error {
	g := a.graph

	var err error
	assign := func(dst *string, key string) {
		if err != nil {
			return
		}
		*dst, err = a.alloc.ID(key)
	}

	assign(&g.RootID, "project")
	assign(&g.MainGroupID, "mainGroup")
	assign(&g.FrameworksGroupID, "frameworksGroup")
	assign(&g.ProductsGroupID, "productsGroup")
	if err != nil {
		return err
	}

	productName := a.project.Name + ".app"
	productID, err := a.alloc.ID("product_" + productName)
	if err != nil {
		return err
	}
	g.Product = &ProductRef{ID: productID, Name: productName}
	return nil
}

// fileRef creates and registers the FileReference for a path. Each path is
// referenced at most once; a second registration is an assembly bug.
func (a *assembler) fileRef(p string) (*FileRef, error) {
	if _, dup := a.refsByPath[p]; dup {
		return nil, fmt.Errorf("file reference for %q created twice", p)
	}
	id, err := a.alloc.ID("fileRef_" + p)
	if err != nil {
		return nil, err
	}
	ref := &FileRef{ID: id, Path: p, FileType: fileTypeFor(p)}
	a.refsByPath[p] = ref
	a.graph.FileRefs = append(a.graph.FileRefs, ref)
	return ref, nil
}

// buildFile creates a phase membership wrapper for an existing reference.
func (a *assembler) buildFile(key string, ref *FileRef, signOnCopy bool) (*BuildFile, error) {
	id, err := a.alloc.ID(key)
	if err != nil {
		return nil, err
	}
	bf := &BuildFile{ID: id, FileRef: ref, SignOnCopy: signOnCopy}
	a.graph.BuildFiles = append(a.graph.BuildFiles, bf)
	return bf, nil
}

// sortedPaths extracts the entry paths for a role in lexicographic order.
func sortedPaths(inv *scan.Inventory, role scan.Role) []string {
	entries := inv.ByRole(role)
	paths := make([]string, 0, len(entries))
	for _, e := range entries {
		paths = append(paths, e.Path)
	}
	sort.Strings(paths)
	return paths
}

// addSourceFiles wires every compiled-source entry: one reference plus one
// sources-phase membership, ordered lexicographically by path.
func (a *assembler) addSourceFiles(inv *scan.Inventory) error {
	var paths []string
	for _, role := range []scan.Role{scan.RoleSwift, scan.RoleObjC, scan.RoleC} {
		paths = append(paths, sortedPaths(inv, role)...)
	}
	sort.Strings(paths)

	for _, p := range paths {
		ref, err := a.fileRef(p)
		if err != nil {
			return err
		}
		bf, err := a.buildFile("buildFile_"+p, ref, false)
		if err != nil {
			return err
		}
		a.graph.sources = append(a.graph.sources, bf)
	}
	return nil
}

// addHeaders wires header entries: group members only, no phase.
func (a *assembler) addHeaders(inv *scan.Inventory) error {
	for _, p := range sortedPaths(inv, scan.RoleHeader) {
		if _, err := a.fileRef(p); err != nil {
			return err
		}
	}
	return nil
}

// addAssetCatalogs wires each opaque catalog as a single resources-phase
// entry.
func (a *assembler) addAssetCatalogs(inv *scan.Inventory) error {
	for _, p := range sortedPaths(inv, scan.RoleAssetCatalog) {
		ref, err := a.fileRef(p)
		if err != nil {
			return err
		}
		bf, err := a.buildFile("buildFile_"+p, ref, false)
		if err != nil {
			return err
		}
		a.graph.resources = append(a.graph.resources, bf)
	}
	return nil
}

// addMetadataFiles wires the fixed-path entitlements and Info.plist
// references. They belong to the group tree but to no build phase.
func (a *assembler) addMetadataFiles(*scan.Inventory) error {
	for _, p := range []string{a.project.Entitlements, a.project.InfoPlist} {
		if _, err := a.fileRef(p); err != nil {
			return err
		}
	}
	return nil
}

// addFrameworks wires every prebuilt framework: one reference and a link
// membership each; embedded frameworks additionally get a sign-on-copy
// membership with its own identity.
func (a *assembler) addFrameworks(*scan.Inventory) error {
	frameworks := make([]*config.Framework, len(a.project.Frameworks))
	copy(frameworks, a.project.Frameworks)
	sort.Slice(frameworks, func(i, j int) bool {
		return frameworks[i].FileName < frameworks[j].FileName
	})

	for _, fw := range frameworks {
		p := fw.Path(a.project.FrameworksDir)
		ref, err := a.fileRef(p)
		if err != nil {
			return err
		}
		a.graph.FrameworkRefs = append(a.graph.FrameworkRefs, ref)

		link, err := a.buildFile("linkFile_"+p, ref, false)
		if err != nil {
			return err
		}
		a.graph.frameworks = append(a.graph.frameworks, link)

		if fw.Embed {
			embed, err := a.buildFile("embedFile_"+p, ref, true)
			if err != nil {
				return err
			}
			a.graph.embeds = append(a.graph.embeds, embed)
		}
	}
	return nil
}

// addGroupTree builds the directory-mirroring group tree over every
// reference except the frameworks, which live in their own fixed group.
func (a *assembler) addGroupTree(*scan.Inventory) error {
	inFrameworksGroup := make(map[string]struct{}, len(a.graph.FrameworkRefs))
	for _, ref := range a.graph.FrameworkRefs {
		inFrameworksGroup[ref.Path] = struct{}{}
	}

	var paths []string
	for _, ref := range a.graph.FileRefs {
		if _, skip := inFrameworksGroup[ref.Path]; skip {
			continue
		}
		paths = append(paths, ref.Path)
	}

	tree, err := BuildGroupTree(a.alloc, a.project.SourceDir, paths)
	if err != nil {
		return err
	}
	a.graph.Tree = tree
	return nil
}

// addPhases materializes the four build phases. All four exist even when
// empty; the consuming tool expects the full canonical sequence.
func (a *assembler) addPhases(*scan.Inventory) error {
	for _, ph := range []struct {
		key   string
		kind  PhaseKind
		files []*BuildFile
	}{
		{"sources_phase", PhaseSources, a.graph.sources},
		{"frameworks_phase", PhaseFrameworks, a.graph.frameworks},
		{"resources_phase", PhaseResources, a.graph.resources},
		{"embed_fw_phase", PhaseEmbed, a.graph.embeds},
	} {
		id, err := a.alloc.ID(ph.key)
		if err != nil {
			return err
		}
		a.graph.Phases = append(a.graph.Phases, &Phase{ID: id, Kind: ph.kind, Files: ph.files})
	}
	return nil
}

// addConfigurations builds the four configuration objects and the two
// lists. Project configurations are base plus variant overrides; target
// configurations layer the target settings and the user's extras on top.
func (a *assembler) addConfigurations(*scan.Inventory) error {
	base := baseSettings(a.project)
	target := targetLayer(a.project)

	specs := []struct {
		key      string
		name     string
		settings map[string]config.SettingValue
	}{
		{"config_debug_project", "Debug", mergeSettings(base, debugOverrides())},
		{"config_release_project", "Release", mergeSettings(base, releaseOverrides())},
		{"config_debug_target", "Debug", mergeSettings(base, debugOverrides(), target, a.project.ExtraSettings)},
		{"config_release_target", "Release", mergeSettings(base, releaseOverrides(), target, a.project.ExtraSettings)},
	}

	configs := make([]*Configuration, len(specs))
	for i, spec := range specs {
		id, err := a.alloc.ID(spec.key)
		if err != nil {
			return err
		}
		configs[i] = &Configuration{ID: id, Name: spec.name, Settings: spec.settings}
	}

	projListID, err := a.alloc.ID("configList_project")
	if err != nil {
		return err
	}
	targetListID, err := a.alloc.ID("configList_target")
	if err != nil {
		return err
	}

	a.graph.ProjectConfigs = &ConfigList{
		ID:      projListID,
		Comment: "Build configuration list for PBXProject",
		Configs: configs[:2],
	}
	a.graph.TargetConfigs = &ConfigList{
		ID:      targetListID,
		Comment: "Build configuration list for PBXNativeTarget",
		Configs: configs[2:],
	}
	return nil
}

// addTarget wires the single native target.
func (a *assembler) addTarget(*scan.Inventory) error {
	id, err := a.alloc.ID("native_target")
	if err != nil {
		return err
	}
	a.graph.Target = &Target{
		ID:         id,
		Name:       a.project.Name,
		ConfigList: a.graph.TargetConfigs,
		Phases:     a.graph.Phases,
		Product:    a.graph.Product,
	}
	return nil
}
