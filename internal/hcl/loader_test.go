package hcl

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/8cH9azbsFifZ/DigiFox/internal/config"
)

// writeDefinition writes an .hcl definition file into a temp dir and
// returns its path.
func writeDefinition(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

const minimalDefinition = `
project "DigiFox" {
	bundle_id = "com.digifox.ios"
}
`

func TestLoad_Minimal(t *testing.T) {
	loader := NewLoader()
	p, err := loader.Load(context.Background(), writeDefinition(t, "project.hcl", minimalDefinition))
	require.NoError(t, err)

	assert.Equal(t, "DigiFox", p.Name)
	assert.Equal(t, "com.digifox.ios", p.BundleID)
	// Defaults are applied by the loader.
	assert.Equal(t, "DigiFox", p.SourceDir)
	assert.Equal(t, "17.0", p.DeploymentTarget)
	assert.Empty(t, p.Frameworks)
}

func TestLoad_FullDefinition(t *testing.T) {
	def := `
project "DigiFox" {
	source_dir         = "DigiFox"
	bundle_id          = "com.digifox.ios"
	team_id            = "ABCDE12345"
	deployment_target  = "16.4"
	development_region = "de"
	known_regions      = ["de", "Base"]

	header_search_paths  = ["$(PROJECT_DIR)/vendor/hamlib/include"]
	library_search_paths = ["$(PROJECT_DIR)/vendor/hamlib/lib"]
	linker_flags         = ["-lhamlib"]

	framework "Hamlib.xcframework" {
		embed = true
	}

	framework "Static.xcframework" {}

	settings {
		SWIFT_STRICT_CONCURRENCY = "complete"
		WARNING_CFLAGS           = ["-Wall", "-Wextra"]
		CODE_SIGN_IDENTITY       = ""
	}
}
`
	loader := NewLoader()
	p, err := loader.Load(context.Background(), writeDefinition(t, "project.hcl", def))
	require.NoError(t, err)

	assert.Equal(t, "ABCDE12345", p.TeamID)
	assert.Equal(t, "16.4", p.DeploymentTarget)
	assert.Equal(t, "de", p.DevelopmentRegion)
	assert.Equal(t, []string{"de", "Base"}, p.KnownRegions)
	assert.Equal(t, []string{"-lhamlib"}, p.LinkerFlags)

	require.Len(t, p.Frameworks, 2)
	assert.Equal(t, "Hamlib.xcframework", p.Frameworks[0].FileName)
	assert.True(t, p.Frameworks[0].Embed)
	assert.False(t, p.Frameworks[1].Embed)

	assert.Equal(t, config.String("complete"), p.ExtraSettings["SWIFT_STRICT_CONCURRENCY"])
	assert.Equal(t, config.List("-Wall", "-Wextra"), p.ExtraSettings["WARNING_CFLAGS"])
	assert.Equal(t, config.String(""), p.ExtraSettings["CODE_SIGN_IDENTITY"])
}

func TestLoad_SettingsNumbersAndBools(t *testing.T) {
	def := `
project "DigiFox" {
	bundle_id = "com.digifox.ios"
	settings {
		CURRENT_PROJECT_VERSION = 42
		ENABLE_PREVIEWS         = true
	}
}
`
	loader := NewLoader()
	p, err := loader.Load(context.Background(), writeDefinition(t, "project.hcl", def))
	require.NoError(t, err)

	assert.Equal(t, config.String("42"), p.ExtraSettings["CURRENT_PROJECT_VERSION"])
	assert.Equal(t, config.String("true"), p.ExtraSettings["ENABLE_PREVIEWS"])
}

func TestLoad_Directory(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "project.hcl"), []byte(minimalDefinition), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0o644))

	loader := NewLoader()
	p, err := loader.Load(context.Background(), dir)
	require.NoError(t, err)
	assert.Equal(t, "DigiFox", p.Name)
}

func TestLoad_Errors(t *testing.T) {
	loader := NewLoader()
	ctx := context.Background()

	t.Run("missing path", func(t *testing.T) {
		_, err := loader.Load(ctx, filepath.Join(t.TempDir(), "nope.hcl"))
		require.Error(t, err)
	})

	t.Run("no project block", func(t *testing.T) {
		_, err := loader.Load(ctx, writeDefinition(t, "empty.hcl", ""))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no project block")
	})

	t.Run("two project blocks", func(t *testing.T) {
		def := minimalDefinition + `
project "Other" {
	bundle_id = "com.other"
}
`
		_, err := loader.Load(ctx, writeDefinition(t, "two.hcl", def))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "exactly one project block")
	})

	t.Run("missing bundle id", func(t *testing.T) {
		_, err := loader.Load(ctx, writeDefinition(t, "nobundle.hcl", `project "X" {}`))
		require.Error(t, err)
	})

	t.Run("syntax error", func(t *testing.T) {
		_, err := loader.Load(ctx, writeDefinition(t, "bad.hcl", `project "X" {`))
		require.Error(t, err)
	})

	t.Run("empty directory", func(t *testing.T) {
		_, err := loader.Load(ctx, t.TempDir())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no .hcl files")
	})
}
