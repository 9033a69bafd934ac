package pbx

import (
	"path"
	"strings"

	"github.com/8cH9azbsFifZ/DigiFox/internal/config"
)

// FileRef is a PBXFileReference: one per source tree entry, fixed metadata
// file, and framework. Never mutated after creation.
type FileRef struct {
	ID       string
	Path     string // project-relative, slash-separated
	FileType string // lastKnownFileType
}

// Name returns the reference's display name, its basename.
func (f *FileRef) Name() string { return path.Base(f.Path) }

// ProductRef is the build product's PBXFileReference. It lives in the
// products group rather than the source tree and resolves against
// BUILT_PRODUCTS_DIR.
type ProductRef struct {
	ID   string
	Name string // e.g. "DigiFox.app"
}

// BuildFile is a PBXBuildFile: the membership of one FileRef in one build
// phase. A framework that is both linked and embedded gets two BuildFiles
// with distinct identities.
type BuildFile struct {
	ID      string
	FileRef *FileRef
	// SignOnCopy marks embed-phase members that are re-signed and have
	// their headers stripped when copied into the app bundle.
	SignOnCopy bool
}

// PhaseKind enumerates the build phases in their canonical target order.
type PhaseKind int

const (
	PhaseSources PhaseKind = iota
	PhaseFrameworks
	PhaseResources
	PhaseEmbed
)

// Isa returns the phase's descriptor object class.
func (k PhaseKind) Isa() string {
	switch k {
	case PhaseSources:
		return "PBXSourcesBuildPhase"
	case PhaseFrameworks:
		return "PBXFrameworksBuildPhase"
	case PhaseResources:
		return "PBXResourcesBuildPhase"
	case PhaseEmbed:
		return "PBXCopyFilesBuildPhase"
	default:
		return "PBXBuildPhase"
	}
}

// DisplayName returns the phase's comment name.
func (k PhaseKind) DisplayName() string {
	switch k {
	case PhaseSources:
		return "Sources"
	case PhaseFrameworks:
		return "Frameworks"
	case PhaseResources:
		return "Resources"
	case PhaseEmbed:
		return "Embed Frameworks"
	default:
		return "Build Phase"
	}
}

// Phase is one build phase and its ordered member list.
type Phase struct {
	ID    string
	Kind  PhaseKind
	Files []*BuildFile
}

// Configuration is one XCBuildConfiguration: a named variant with its fully
// merged settings map.
type Configuration struct {
	ID       string
	Name     string // Debug or Release
	Settings map[string]config.SettingValue
}

// ConfigList is an XCConfigurationList pairing the Debug and Release
// configurations for the project or the target.
type ConfigList struct {
	ID      string
	Comment string
	Configs []*Configuration
}

// Target is the single native application target.
type Target struct {
	ID         string
	Name       string
	ConfigList *ConfigList
	Phases     []*Phase // canonical order: sources, frameworks, resources, embed
	Product    *ProductRef
}

// Graph is the fully assembled object graph, ready for validation and
// serialization.
type Graph struct {
	Name string

	RootID            string // PBXProject object
	DevelopmentRegion string
	KnownRegions      []string

	MainGroupID       string
	FrameworksGroupID string
	ProductsGroupID   string
	FrameworksDir     string

	Tree *GroupTree

	FileRefs      []*FileRef // everything except the product
	FrameworkRefs []*FileRef // subset of FileRefs shown in the frameworks group
	Product       *ProductRef
	BuildFiles    []*BuildFile

	Phases []*Phase
	Target *Target

	ProjectConfigs *ConfigList
	TargetConfigs  *ConfigList

	// per-phase membership lists in assembly order, promoted into Phases.
	sources    []*BuildFile
	frameworks []*BuildFile
	resources  []*BuildFile
	embeds     []*BuildFile
}

// fileTypeFor maps a path to its lastKnownFileType declaration.
func fileTypeFor(p string) string {
	switch {
	case strings.HasSuffix(p, ".swift"):
		return "sourcecode.swift"
	case strings.HasSuffix(p, ".m"):
		return "sourcecode.c.objc"
	case strings.HasSuffix(p, ".h"):
		return "sourcecode.c.h"
	case strings.HasSuffix(p, ".c"):
		return "sourcecode.c.c"
	case strings.HasSuffix(p, ".xcassets"):
		return "folder.assetcatalog"
	case strings.HasSuffix(p, ".entitlements"):
		return "text.plist.entitlements"
	case strings.HasSuffix(p, ".plist"):
		return "text.plist.xml"
	case strings.HasSuffix(p, ".xcframework"):
		return "wrapper.xcframework"
	case strings.HasSuffix(p, ".framework"):
		return "wrapper.framework"
	default:
		return "text"
	}
}
