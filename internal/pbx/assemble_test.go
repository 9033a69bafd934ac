package pbx

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/8cH9azbsFifZ/DigiFox/internal/config"
	"github.com/8cH9azbsFifZ/DigiFox/internal/scan"
	"github.com/8cH9azbsFifZ/DigiFox/internal/xcid"
)

// testProject returns a minimal valid project definition with defaults
// applied.
func testProject(t *testing.T) *config.Project {
	t.Helper()
	p := &config.Project{
		Name:     "DigiFox",
		BundleID: "com.digifox.ios",
		Frameworks: []*config.Framework{
			{FileName: "Hamlib.xcframework", Embed: true},
		},
	}
	p.ApplyDefaults()
	require.NoError(t, p.Validate())
	return p
}

func inventory(entries ...scan.SourceEntry) *scan.Inventory {
	return &scan.Inventory{Entries: entries}
}

func assemble(t *testing.T, p *config.Project, inv *scan.Inventory) *Graph {
	t.Helper()
	g, err := Assemble(context.Background(), p, inv, xcid.New())
	require.NoError(t, err)
	require.NoError(t, g.Validate(context.Background()))
	return g
}

func TestAssemble_SourcesPhaseOrderedByPath(t *testing.T) {
	g := assemble(t, testProject(t), inventory(
		scan.SourceEntry{Path: "DigiFox/Zeta.swift", Role: scan.RoleSwift},
		scan.SourceEntry{Path: "DigiFox/Alpha.swift", Role: scan.RoleSwift},
		scan.SourceEntry{Path: "DigiFox/Codec/decoder.c", Role: scan.RoleC},
	))

	ph := g.phase(PhaseSources)
	require.Len(t, ph.Files, 3)
	assert.Equal(t, "DigiFox/Alpha.swift", ph.Files[0].FileRef.Path)
	assert.Equal(t, "DigiFox/Codec/decoder.c", ph.Files[1].FileRef.Path)
	assert.Equal(t, "DigiFox/Zeta.swift", ph.Files[2].FileRef.Path)
}

func TestAssemble_AssetCatalogSingleEntry(t *testing.T) {
	g := assemble(t, testProject(t), inventory(
		scan.SourceEntry{Path: "DigiFox/Assets.xcassets", Role: scan.RoleAssetCatalog},
	))

	ph := g.phase(PhaseResources)
	require.Len(t, ph.Files, 1)
	assert.Equal(t, "DigiFox/Assets.xcassets", ph.Files[0].FileRef.Path)
	assert.Equal(t, "folder.assetcatalog", ph.Files[0].FileRef.FileType)

	// One reference and one wrapper for the catalog as a whole.
	var refs, wrappers int
	for _, ref := range g.FileRefs {
		if ref.Path == "DigiFox/Assets.xcassets" {
			refs++
		}
	}
	for _, bf := range g.BuildFiles {
		if bf.FileRef.Path == "DigiFox/Assets.xcassets" {
			wrappers++
		}
	}
	assert.Equal(t, 1, refs)
	assert.Equal(t, 1, wrappers)
}

func TestAssemble_IdenticalBasenamesStayDistinct(t *testing.T) {
	g := assemble(t, testProject(t), inventory(
		scan.SourceEntry{Path: "DigiFox/A/util.c", Role: scan.RoleC},
		scan.SourceEntry{Path: "DigiFox/B/util.c", Role: scan.RoleC},
	))

	var a, b *FileRef
	for _, ref := range g.FileRefs {
		switch ref.Path {
		case "DigiFox/A/util.c":
			a = ref
		case "DigiFox/B/util.c":
			b = ref
		}
	}
	require.NotNil(t, a)
	require.NotNil(t, b)
	assert.NotEqual(t, a.ID, b.ID)

	// Each sits under its own parent group.
	assert.Contains(t, g.Tree.Nodes["DigiFox/A"].Children(), "DigiFox/A/util.c")
	assert.Contains(t, g.Tree.Nodes["DigiFox/B"].Children(), "DigiFox/B/util.c")
}

func TestAssemble_FrameworkLinkedAndEmbedded(t *testing.T) {
	g := assemble(t, testProject(t), inventory())

	link := g.phase(PhaseFrameworks)
	embed := g.phase(PhaseEmbed)
	require.Len(t, link.Files, 1)
	require.Len(t, embed.Files, 1)

	// One reference, two wrappers with distinct identities.
	assert.Equal(t, link.Files[0].FileRef, embed.Files[0].FileRef)
	assert.NotEqual(t, link.Files[0].ID, embed.Files[0].ID)
	assert.False(t, link.Files[0].SignOnCopy)
	assert.True(t, embed.Files[0].SignOnCopy)

	// The framework lives in the frameworks group, not the source tree.
	require.Len(t, g.FrameworkRefs, 1)
	assert.Equal(t, "Frameworks/Hamlib.xcframework", g.FrameworkRefs[0].Path)
	assert.NotContains(t, g.Tree.Nodes, "Frameworks")
}

func TestAssemble_LinkOnlyFramework(t *testing.T) {
	p := testProject(t)
	p.Frameworks = []*config.Framework{{FileName: "Static.xcframework"}}

	g := assemble(t, p, inventory())
	assert.Len(t, g.phase(PhaseFrameworks).Files, 1)
	assert.Empty(t, g.phase(PhaseEmbed).Files)
}

func TestAssemble_HeadersAndMetadataHaveNoWrapper(t *testing.T) {
	g := assemble(t, testProject(t), inventory(
		scan.SourceEntry{Path: "DigiFox/Codec/decoder.h", Role: scan.RoleHeader},
	))

	for _, bf := range g.BuildFiles {
		assert.NotEqual(t, "DigiFox/Codec/decoder.h", bf.FileRef.Path)
		assert.NotEqual(t, "DigiFox/DigiFox.entitlements", bf.FileRef.Path)
		assert.NotEqual(t, "DigiFox/Info.plist", bf.FileRef.Path)
	}

	// But all three are referenced and grouped.
	paths := make(map[string]bool)
	for _, ref := range g.FileRefs {
		paths[ref.Path] = true
	}
	assert.True(t, paths["DigiFox/Codec/decoder.h"])
	assert.True(t, paths["DigiFox/DigiFox.entitlements"])
	assert.True(t, paths["DigiFox/Info.plist"])
}

func TestAssemble_PassthroughExcluded(t *testing.T) {
	g := assemble(t, testProject(t), inventory(
		scan.SourceEntry{Path: "DigiFox/README.md", Role: scan.RolePassthrough},
	))

	for _, ref := range g.FileRefs {
		assert.NotEqual(t, "DigiFox/README.md", ref.Path)
	}
}

func TestAssemble_PhaseCanonicalOrder(t *testing.T) {
	g := assemble(t, testProject(t), inventory())

	require.Len(t, g.Phases, 4)
	assert.Equal(t, PhaseSources, g.Phases[0].Kind)
	assert.Equal(t, PhaseFrameworks, g.Phases[1].Kind)
	assert.Equal(t, PhaseResources, g.Phases[2].Kind)
	assert.Equal(t, PhaseEmbed, g.Phases[3].Kind)
	assert.Equal(t, g.Phases, g.Target.Phases)
}

func TestAssemble_ConfigurationLayering(t *testing.T) {
	p := testProject(t)
	p.LinkerFlags = []string{"-lhamlib"}
	p.ExtraSettings = map[string]config.SettingValue{
		"SWIFT_VERSION": config.String("6.0"), // overrides the base layer
		"CUSTOM_FLAG":   config.String("1"),
	}

	g := assemble(t, p, inventory())

	require.Len(t, g.ProjectConfigs.Configs, 2)
	require.Len(t, g.TargetConfigs.Configs, 2)

	projDebug := g.ProjectConfigs.Configs[0]
	assert.Equal(t, "Debug", projDebug.Name)
	assert.Equal(t, config.String("dwarf"), projDebug.Settings["DEBUG_INFORMATION_FORMAT"])
	assert.NotContains(t, projDebug.Settings, "PRODUCT_BUNDLE_IDENTIFIER")

	projRelease := g.ProjectConfigs.Configs[1]
	assert.Equal(t, config.String("dwarf-with-dsym"), projRelease.Settings["DEBUG_INFORMATION_FORMAT"])
	assert.Equal(t, config.String("wholemodule"), projRelease.Settings["SWIFT_COMPILATION_MODE"])

	targetRelease := g.TargetConfigs.Configs[1]
	assert.Equal(t, config.String("com.digifox.ios"), targetRelease.Settings["PRODUCT_BUNDLE_IDENTIFIER"])
	assert.Equal(t, config.List("-lhamlib"), targetRelease.Settings["OTHER_LDFLAGS"])
	// Extra settings win over every generated layer.
	assert.Equal(t, config.String("6.0"), targetRelease.Settings["SWIFT_VERSION"])
	assert.Equal(t, config.String("1"), targetRelease.Settings["CUSTOM_FLAG"])
	// Project configs never see the extras.
	assert.NotContains(t, projRelease.Settings, "CUSTOM_FLAG")
}

func TestAssemble_EmptyTree(t *testing.T) {
	g := assemble(t, testProject(t), inventory())

	assert.Empty(t, g.phase(PhaseSources).Files)
	assert.Empty(t, g.phase(PhaseResources).Files)
	assert.Len(t, g.phase(PhaseFrameworks).Files, 1)
	assert.Len(t, g.phase(PhaseEmbed).Files, 1)
	assert.NotNil(t, g.Target)
	assert.NotEmpty(t, g.RootID)
}
