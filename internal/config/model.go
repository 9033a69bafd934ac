package config

import (
	"fmt"
	"path"
	"strings"
)

// Project is the unified, format-agnostic representation of a project
// definition: everything the generator needs beyond the source tree itself.
type Project struct {
	Name          string
	SourceDir     string
	FrameworksDir string

	BundleID string
	TeamID   string

	DeploymentTarget  string
	DevelopmentRegion string
	KnownRegions      []string

	BridgingHeader string
	Entitlements   string
	InfoPlist      string

	HeaderSearchPaths  []string
	LibrarySearchPaths []string
	LinkerFlags        []string

	Frameworks []*Framework

	// ExtraSettings are user-supplied target-level build settings. They are
	// merged last, so they win over every generated setting on key collision.
	ExtraSettings map[string]SettingValue
}

// Framework is a prebuilt binary dependency located in FrameworksDir. Every
// framework is linked; embedded frameworks are additionally copied into the
// app bundle with code-sign-on-copy semantics.
type Framework struct {
	FileName string
	Embed    bool
}

// SettingValue is a single build-setting value: either a scalar string or an
// ordered list of strings.
type SettingValue struct {
	Scalar string
	List   []string
}

// String returns a scalar SettingValue.
func String(s string) SettingValue { return SettingValue{Scalar: s} }

// List returns a list-valued SettingValue. An empty list is still a list.
func List(items ...string) SettingValue {
	if items == nil {
		items = []string{}
	}
	return SettingValue{List: items}
}

// IsList reports whether the value renders as a list.
func (v SettingValue) IsList() bool { return v.List != nil }

// Path returns the framework's project-relative path under frameworksDir.
func (f *Framework) Path(frameworksDir string) string {
	return path.Join(frameworksDir, f.FileName)
}

// ApplyDefaults fills the optional fields that derive from the project name.
func (p *Project) ApplyDefaults() {
	if p.SourceDir == "" {
		p.SourceDir = p.Name
	}
	if p.FrameworksDir == "" {
		p.FrameworksDir = "Frameworks"
	}
	if p.DeploymentTarget == "" {
		p.DeploymentTarget = "17.0"
	}
	if p.DevelopmentRegion == "" {
		p.DevelopmentRegion = "en"
	}
	if len(p.KnownRegions) == 0 {
		p.KnownRegions = []string{p.DevelopmentRegion, "Base"}
	}
	if p.BridgingHeader == "" {
		p.BridgingHeader = path.Join(p.SourceDir, p.Name+"-Bridging-Header.h")
	}
	if p.Entitlements == "" {
		p.Entitlements = path.Join(p.SourceDir, p.Name+".entitlements")
	}
	if p.InfoPlist == "" {
		p.InfoPlist = path.Join(p.SourceDir, "Info.plist")
	}
}

// Validate checks the model for the errors a loader cannot express
// structurally. It assumes ApplyDefaults has run.
func (p *Project) Validate() error {
	if p.Name == "" {
		return fmt.Errorf("project name must not be empty")
	}
	if p.BundleID == "" {
		return fmt.Errorf("project %q: bundle_id is required", p.Name)
	}
	seen := make(map[string]struct{}, len(p.Frameworks))
	for _, fw := range p.Frameworks {
		if !strings.HasSuffix(fw.FileName, ".xcframework") && !strings.HasSuffix(fw.FileName, ".framework") {
			return fmt.Errorf("framework %q: expected a .framework or .xcframework file name", fw.FileName)
		}
		if _, dup := seen[fw.FileName]; dup {
			return fmt.Errorf("framework %q declared twice", fw.FileName)
		}
		seen[fw.FileName] = struct{}{}
	}
	return nil
}
