package schema

import "github.com/hashicorp/hcl/v2"

// File represents the top-level structure of a project definition file.
// Definitions may be split across several files in a directory; the loader
// merges them and requires exactly one project block overall.
type File struct {
	Projects []*Project `hcl:"project,block"`
}

// Project represents a `project` block from a definition file.
type Project struct {
	Name          string `hcl:"name,label"`
	SourceDir     string `hcl:"source_dir,optional"`
	FrameworksDir string `hcl:"frameworks_dir,optional"`

	BundleID string `hcl:"bundle_id"`
	TeamID   string `hcl:"team_id,optional"`

	DeploymentTarget  string   `hcl:"deployment_target,optional"`
	DevelopmentRegion string   `hcl:"development_region,optional"`
	KnownRegions      []string `hcl:"known_regions,optional"`

	BridgingHeader string `hcl:"bridging_header,optional"`
	Entitlements   string `hcl:"entitlements,optional"`
	InfoPlist      string `hcl:"info_plist,optional"`

	HeaderSearchPaths  []string `hcl:"header_search_paths,optional"`
	LibrarySearchPaths []string `hcl:"library_search_paths,optional"`
	LinkerFlags        []string `hcl:"linker_flags,optional"`

	Frameworks []*Framework `hcl:"framework,block"`
	Settings   *Settings    `hcl:"settings,block"`
}

// Framework represents a `framework` block naming a prebuilt binary under
// the frameworks directory.
type Framework struct {
	FileName string `hcl:"file_name,label"`
	Embed    bool   `hcl:"embed,optional"`
}

// Settings represents the content of the optional `settings` block. Its
// attributes are free-form build-setting overrides, so the body is kept
// raw and evaluated by the loader.
type Settings struct {
	Body hcl.Body `hcl:",remain"`
}
