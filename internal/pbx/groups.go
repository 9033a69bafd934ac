package pbx

import (
	"fmt"
	"path"
	"sort"
	"strings"

	"github.com/8cH9azbsFifZ/DigiFox/internal/xcid"
)

// GroupNode is one container group mirroring a source directory. Children
// are recorded as normalized paths and resolved to object identities at
// serialization time.
type GroupNode struct {
	ID   string
	Path string

	children map[string]struct{}
}

// Name returns the group's display name, its basename.
func (n *GroupNode) Name() string { return path.Base(n.Path) }

// Children returns the node's child paths sorted by basename. All children
// share this node's path as prefix, so sorting the full paths orders them
// by basename.
func (n *GroupNode) Children() []string {
	out := make([]string, 0, len(n.children))
	for c := range n.children {
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}

// GroupTree is the arena of group nodes, keyed by normalized directory
// path. Node creation is idempotent: repeated insertion of a shared
// ancestor always resolves to the same node.
type GroupTree struct {
	SourceDir string
	Nodes     map[string]*GroupNode

	roots map[string]struct{}
}

// Roots returns the top-level paths (directories or files) that hang
// directly off the main group, source directory first, the rest sorted.
func (t *GroupTree) Roots() []string {
	rest := make([]string, 0, len(t.roots))
	for r := range t.roots {
		if r != t.SourceDir {
			rest = append(rest, r)
		}
	}
	sort.Strings(rest)

	var out []string
	if _, ok := t.roots[t.SourceDir]; ok {
		out = append(out, t.SourceDir)
	}
	return append(out, rest...)
}

// DirPaths returns every group node path in sorted order.
func (t *GroupTree) DirPaths() []string {
	out := make([]string, 0, len(t.Nodes))
	for p := range t.Nodes {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}

// BuildGroupTree constructs the group tree for the given file reference
// paths. Every proper prefix of every path becomes a node; the source
// directory receives the pre-reserved sourceGroup identity because the
// project object names it directly.
func BuildGroupTree(alloc *xcid.Allocator, sourceDir string, paths []string) (*GroupTree, error) {
	tree := &GroupTree{
		SourceDir: sourceDir,
		Nodes:     make(map[string]*GroupNode),
		roots:     make(map[string]struct{}),
	}

	for _, p := range paths {
		if p == "" || strings.HasPrefix(p, "/") {
			return nil, fmt.Errorf("group tree requires relative paths, got %q", p)
		}

		parts := strings.Split(p, "/")
		tree.roots[parts[0]] = struct{}{}

		for i := 0; i < len(parts)-1; i++ {
			parent := strings.Join(parts[:i+1], "/")
			child := strings.Join(parts[:i+2], "/")

			node, ok := tree.Nodes[parent]
			if !ok {
				id, err := tree.nodeID(alloc, parent)
				if err != nil {
					return nil, err
				}
				node = &GroupNode{ID: id, Path: parent, children: make(map[string]struct{})}
				tree.Nodes[parent] = node
			}
			node.children[child] = struct{}{}
		}
	}

	return tree, nil
}

// nodeID derives a node's identity from its normalized path. The source
// directory is special-cased onto the reserved sourceGroup key.
func (t *GroupTree) nodeID(alloc *xcid.Allocator, dir string) (string, error) {
	if dir == t.SourceDir {
		return alloc.ID("sourceGroup")
	}
	return alloc.ID("group_" + dir)
}
