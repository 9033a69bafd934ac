package pbx

import (
	"context"
	"fmt"
	"strings"

	"github.com/8cH9azbsFifZ/DigiFox/internal/ctxlog"
)

// Validate performs a strict consistency check on the assembled graph
// before it is allowed to reach the serializer: every identity referenced
// anywhere must resolve to exactly one defined object of the expected kind,
// and every file reference must have an unbroken ancestor chain of groups.
func (g *Graph) Validate(ctx context.Context) error {
	var errs []string
	logger := ctxlog.FromContext(ctx)

	defined := make(map[string]string) // id -> kind
	define := func(id, kind, label string) {
		if id == "" {
			errs = append(errs, fmt.Sprintf("%s %q has no identity", kind, label))
			return
		}
		if prev, dup := defined[id]; dup {
			errs = append(errs, fmt.Sprintf("identity %s defined twice (%s and %s %q)", id, prev, kind, label))
			return
		}
		defined[id] = kind
	}

	refsByPath := make(map[string]*FileRef, len(g.FileRefs))
	for _, ref := range g.FileRefs {
		define(ref.ID, "PBXFileReference", ref.Path)
		refsByPath[ref.Path] = ref
	}
	define(g.Product.ID, "PBXFileReference", g.Product.Name)
	for _, bf := range g.BuildFiles {
		define(bf.ID, "PBXBuildFile", bf.FileRef.Name())
	}
	define(g.MainGroupID, "PBXGroup", "mainGroup")
	define(g.FrameworksGroupID, "PBXGroup", "Frameworks")
	define(g.ProductsGroupID, "PBXGroup", "Products")
	for _, node := range g.Tree.Nodes {
		define(node.ID, "PBXGroup", node.Path)
	}
	for _, ph := range g.Phases {
		define(ph.ID, ph.Kind.Isa(), ph.Kind.DisplayName())
	}
	define(g.Target.ID, "PBXNativeTarget", g.Target.Name)
	define(g.RootID, "PBXProject", g.Name)
	for _, list := range []*ConfigList{g.ProjectConfigs, g.TargetConfigs} {
		define(list.ID, "XCConfigurationList", list.Comment)
		for _, cfg := range list.Configs {
			define(cfg.ID, "XCBuildConfiguration", cfg.Name)
		}
	}

	require := func(id, kind, context string) {
		got, ok := defined[id]
		if !ok {
			errs = append(errs, fmt.Sprintf("%s references undefined identity %s", context, id))
			return
		}
		if got != kind {
			errs = append(errs, fmt.Sprintf("%s references %s, expected %s but it is a %s", context, id, kind, got))
		}
	}

	// Build file wrappers point at defined file references.
	for _, bf := range g.BuildFiles {
		require(bf.FileRef.ID, "PBXFileReference", fmt.Sprintf("build file %s", bf.ID))
	}

	// Phase member lists resolve to defined build files.
	for _, ph := range g.Phases {
		for _, bf := range ph.Files {
			require(bf.ID, "PBXBuildFile", fmt.Sprintf("%s phase", ph.Kind.DisplayName()))
		}
	}

	// Every group child resolves to a group node or a file reference, and
	// every referenced path in the tree has its full ancestor chain.
	for _, node := range g.Tree.Nodes {
		for _, child := range node.Children() {
			if _, ok := g.Tree.Nodes[child]; ok {
				continue
			}
			if _, ok := refsByPath[child]; ok {
				continue
			}
			errs = append(errs, fmt.Sprintf("group %q has child %q that is neither a group nor a file reference", node.Path, child))
		}
	}
	for p := range refsByPath {
		if !strings.Contains(p, "/") {
			continue
		}
		parts := strings.Split(p, "/")
		for i := 1; i < len(parts); i++ {
			prefix := strings.Join(parts[:i], "/")
			if _, ok := g.Tree.Nodes[prefix]; ok {
				continue
			}
			if isFrameworkPath(g, p) {
				break
			}
			errs = append(errs, fmt.Sprintf("file %q is missing ancestor group %q", p, prefix))
		}
	}

	// Target and project wiring.
	require(g.Target.ConfigList.ID, "XCConfigurationList", "target")
	require(g.Target.Product.ID, "PBXFileReference", "target")
	for _, ph := range g.Target.Phases {
		require(ph.ID, ph.Kind.Isa(), "target")
	}
	require(g.ProjectConfigs.ID, "XCConfigurationList", "project")
	require(g.MainGroupID, "PBXGroup", "project")
	require(g.ProductsGroupID, "PBXGroup", "project")
	require(g.Target.ID, "PBXNativeTarget", "project")
	for _, list := range []*ConfigList{g.ProjectConfigs, g.TargetConfigs} {
		for _, cfg := range list.Configs {
			require(cfg.ID, "XCBuildConfiguration", list.Comment)
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("graph validation failed:\n- %s", strings.Join(errs, "\n- "))
	}

	logger.Debug("Graph validation passed.", "objects", len(defined))
	return nil
}

// isFrameworkPath reports whether the path belongs to the fixed frameworks
// group, which replaces the generic ancestor chain for its members.
func isFrameworkPath(g *Graph, p string) bool {
	for _, ref := range g.FrameworkRefs {
		if ref.Path == p {
			return true
		}
	}
	return false
}
