package scan

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeTree creates the given relative files (with empty content) under dir.
func writeTree(t *testing.T, dir string, files ...string) {
	t.Helper()
	for _, f := range files {
		full := filepath.Join(dir, filepath.FromSlash(f))
		require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o755))
		require.NoError(t, os.WriteFile(full, nil, 0o644))
	}
}

// chdir switches the working directory for the test so scan paths stay
// relative, the way the generator is invoked from the repository root.
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(old) })
}

func TestClassify(t *testing.T) {
	assert.Equal(t, RoleSwift, Classify("ContentView.swift"))
	assert.Equal(t, RoleObjC, Classify("RigControl.m"))
	assert.Equal(t, RoleC, Classify("cw_decoder.c"))
	assert.Equal(t, RoleHeader, Classify("cw_decoder.h"))
	assert.Equal(t, RolePassthrough, Classify("README.md"))
	assert.Equal(t, RolePassthrough, Classify("Makefile"))
}

func TestRole_Compiled(t *testing.T) {
	assert.True(t, RoleSwift.Compiled())
	assert.True(t, RoleObjC.Compiled())
	assert.True(t, RoleC.Compiled())
	assert.False(t, RoleHeader.Compiled())
	assert.False(t, RoleAssetCatalog.Compiled())
	assert.False(t, RolePassthrough.Compiled())
}

func TestScan_ClassifiesByExtension(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir,
		"App/Main.swift",
		"App/Codec/decoder.c",
		"App/Codec/decoder.h",
		"App/Legacy/bridge.m",
		"App/notes.txt",
	)
	chdir(t, dir)

	inv, err := Scan(context.Background(), "App")
	require.NoError(t, err)

	counts := inv.Counts()
	assert.Equal(t, 1, counts[RoleSwift])
	assert.Equal(t, 1, counts[RoleObjC])
	assert.Equal(t, 1, counts[RoleC])
	assert.Equal(t, 1, counts[RoleHeader])
	assert.Equal(t, 1, counts[RolePassthrough])

	swift := inv.ByRole(RoleSwift)
	require.Len(t, swift, 1)
	assert.Equal(t, "App/Main.swift", swift[0].Path)
}

func TestScan_AssetCatalogIsOpaque(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir,
		"App/Assets.xcassets/Contents.json",
		"App/Assets.xcassets/AppIcon.appiconset/Contents.json",
		"App/Assets.xcassets/AppIcon.appiconset/icon.png",
		"App/Main.swift",
	)
	chdir(t, dir)

	inv, err := Scan(context.Background(), "App")
	require.NoError(t, err)

	catalogs := inv.ByRole(RoleAssetCatalog)
	require.Len(t, catalogs, 1)
	assert.Equal(t, "App/Assets.xcassets", catalogs[0].Path)

	// Nothing inside the catalog is listed individually.
	for _, e := range inv.Entries {
		if e.Role != RoleAssetCatalog {
			assert.NotContains(t, e.Path, ".xcassets/")
		}
	}
}

func TestScan_SkipsLooseContentsJSON(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir, "App/Localization/Contents.json", "App/Main.swift")
	chdir(t, dir)

	inv, err := Scan(context.Background(), "App")
	require.NoError(t, err)

	for _, e := range inv.Entries {
		assert.NotEqual(t, "App/Localization/Contents.json", e.Path)
	}
}

func TestScan_MissingRootFails(t *testing.T) {
	chdir(t, t.TempDir())

	_, err := Scan(context.Background(), "DoesNotExist")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DoesNotExist")
}

func TestScan_EmptyTree(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "App"), 0o755))
	chdir(t, dir)

	inv, err := Scan(context.Background(), "App")
	require.NoError(t, err)
	assert.Empty(t, inv.Entries)
}
