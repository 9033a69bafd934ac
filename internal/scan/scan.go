package scan

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/8cH9azbsFifZ/DigiFox/internal/ctxlog"
)

// Role classifies a source tree entry. It is resolved exactly once, during
// the scan; downstream stages never re-derive it from the path.
type Role int

const (
	// RoleSwift, RoleObjC, and RoleC are compiled-source units.
	RoleSwift Role = iota
	RoleObjC
	RoleC
	// RoleHeader units join the group tree but no build phase.
	RoleHeader
	// RoleAssetCatalog marks a directory treated as one indivisible
	// resource bundle; its contents are never listed individually.
	RoleAssetCatalog
	// RolePassthrough covers unrecognized extensions. Passthrough entries
	// are counted but excluded from the object graph.
	RolePassthrough
)

// String returns the human-readable role name used in logs and the summary.
func (r Role) String() string {
	switch r {
	case RoleSwift:
		return "swift"
	case RoleObjC:
		return "objc"
	case RoleC:
		return "c"
	case RoleHeader:
		return "header"
	case RoleAssetCatalog:
		return "asset-catalog"
	case RolePassthrough:
		return "passthrough"
	default:
		return fmt.Sprintf("role(%d)", int(r))
	}
}

// Compiled reports whether entries with this role belong in the sources
// build phase.
func (r Role) Compiled() bool {
	return r == RoleSwift || r == RoleObjC || r == RoleC
}

// assetCatalogSuffix is the reserved resource-bundle directory suffix.
const assetCatalogSuffix = ".xcassets"

// SourceEntry is a classified path from the source tree. Immutable once
// created.
type SourceEntry struct {
	Path string
	Role Role
}

// Inventory is the result of a scan: all classified entries in discovery
// order. Ordering for output purposes is applied downstream.
type Inventory struct {
	Entries []SourceEntry
}

// ByRole returns the entries with the given role, preserving discovery order.
func (inv *Inventory) ByRole(role Role) []SourceEntry {
	var out []SourceEntry
	for _, e := range inv.Entries {
		if e.Role == role {
			out = append(out, e)
		}
	}
	return out
}

// Counts returns the number of entries per role.
func (inv *Inventory) Counts() map[Role]int {
	counts := make(map[Role]int)
	for _, e := range inv.Entries {
		counts[e.Role]++
	}
	return counts
}

// Classify maps a file name to its role.
func Classify(name string) Role {
	switch {
	case strings.HasSuffix(name, ".swift"):
		return RoleSwift
	case strings.HasSuffix(name, ".m"):
		return RoleObjC
	case strings.HasSuffix(name, ".c"):
		return RoleC
	case strings.HasSuffix(name, ".h"):
		return RoleHeader
	default:
		return RolePassthrough
	}
}

// Scan walks the source tree rooted at root and classifies every entry.
// Asset catalog directories become single entries and are not descended
// into. Any traversal error aborts the scan; no partial inventory is
// returned.
func Scan(ctx context.Context, root string) (*Inventory, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Scanning source tree.", "root", root)

	inv := &Inventory{}
	err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		rel := filepath.ToSlash(p)

		if d.IsDir() {
			if strings.HasSuffix(d.Name(), assetCatalogSuffix) {
				inv.Entries = append(inv.Entries, SourceEntry{Path: rel, Role: RoleAssetCatalog})
				return filepath.SkipDir
			}
			return nil
		}

		// Loose members of an asset catalog never reach this point because
		// the catalog directory is skipped, but Contents.json also appears
		// in localization containers and is never a project entity.
		if d.Name() == "Contents.json" {
			return nil
		}

		inv.Entries = append(inv.Entries, SourceEntry{Path: rel, Role: Classify(d.Name())})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan source tree %s: %w", root, err)
	}

	logger.Debug("Scan complete.", "entries", len(inv.Entries))
	return inv, nil
}
