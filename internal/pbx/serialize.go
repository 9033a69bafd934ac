package pbx

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/8cH9azbsFifZ/DigiFox/internal/config"
)

// bareToken matches values that the pbxproj grammar accepts unquoted.
// Anything else (spaces, hyphens, parens, empty strings) must be quoted.
var bareToken = regexp.MustCompile(`^[A-Za-z0-9_$./]+$`)

// quote returns the value in descriptor syntax, quoting when required.
func quote(s string) string {
	if bareToken.MatchString(s) {
		return s
	}
	return `"` + strings.ReplaceAll(strings.ReplaceAll(s, `\`, `\\`), `"`, `\"`) + `"`
}

// renderer writes the descriptor line by line.
type renderer struct {
	b strings.Builder
}

func (r *renderer) line(s string) {
	r.b.WriteString(s)
	r.b.WriteByte('\n')
}

func (r *renderer) linef(format string, args ...any) {
	fmt.Fprintf(&r.b, format+"\n", args...)
}

// Render serializes the graph into the project descriptor text. The graph
// must have passed Validate; rendering itself cannot fail.
func (g *Graph) Render() string {
	r := &renderer{}

	r.line("// !$*UTF8*$!")
	r.line("{")
	r.line("\tarchiveVersion = 1;")
	r.line("\tclasses = {};")
	r.line("\tobjectVersion = 56;")
	r.line("\tobjects = {")
	r.line("")

	g.renderBuildFiles(r)
	g.renderEmbedPhase(r)
	g.renderFileRefs(r)
	g.renderFrameworksPhase(r)
	g.renderGroups(r)
	g.renderTarget(r)
	g.renderProject(r)
	g.renderListPhase(r, PhaseResources)
	g.renderListPhase(r, PhaseSources)
	g.renderConfigurations(r)
	g.renderConfigLists(r)

	r.line("\t};")
	r.linef("\trootObject = %s /* Project object */;", g.RootID)
	r.line("}")

	return r.b.String()
}

// phase returns the phase of the given kind. All four always exist.
func (g *Graph) phase(kind PhaseKind) *Phase {
	for _, ph := range g.Phases {
		if ph.Kind == kind {
			return ph
		}
	}
	panic(fmt.Sprintf("phase %s missing from graph", kind.DisplayName()))
}

// inlineFiles renders a phase member list in the single-line form used by
// the frameworks and embed phases. Each member keeps a trailing comma.
func inlineFiles(files []*BuildFile) string {
	var sb strings.Builder
	for _, bf := range files {
		fmt.Fprintf(&sb, "%s /* %s */,", bf.ID, bf.FileRef.Name())
	}
	return sb.String()
}

func (g *Graph) renderBuildFiles(r *renderer) {
	sorted := make([]*BuildFile, len(g.BuildFiles))
	copy(sorted, g.BuildFiles)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].FileRef.Path != sorted[j].FileRef.Path {
			return sorted[i].FileRef.Path < sorted[j].FileRef.Path
		}
		// A linked and an embedded wrapper may share a path; link first.
		return !sorted[i].SignOnCopy && sorted[j].SignOnCopy
	})

	r.line("/* Begin PBXBuildFile section */")
	for _, bf := range sorted {
		name := bf.FileRef.Name()
		if bf.SignOnCopy {
			r.linef("\t\t%s /* %s */ = {isa = PBXBuildFile; fileRef = %s /* %s */; settings = {ATTRIBUTES = (CodeSignOnCopy, RemoveHeadersOnCopy, ); }; };",
				bf.ID, name, bf.FileRef.ID, name)
		} else {
			r.linef("\t\t%s /* %s */ = {isa = PBXBuildFile; fileRef = %s /* %s */; };",
				bf.ID, name, bf.FileRef.ID, name)
		}
	}
	r.line("/* End PBXBuildFile section */")
	r.line("")
}

func (g *Graph) renderEmbedPhase(r *renderer) {
	ph := g.phase(PhaseEmbed)

	r.line("/* Begin PBXCopyFilesBuildPhase section */")
	r.linef("\t\t%s /* Embed Frameworks */ = {", ph.ID)
	r.line("\t\t\tisa = PBXCopyFilesBuildPhase;")
	r.line("\t\t\tbuildActionMask = 2147483647;")
	r.line("\t\t\tdstPath = \"\";")
	r.line("\t\t\tdstSubfolderSpec = 10;")
	r.linef("\t\t\tfiles = (%s);", inlineFiles(ph.Files))
	r.line("\t\t\tname = \"Embed Frameworks\";")
	r.line("\t\t\trunOnlyForDeploymentPostprocessing = 0;")
	r.line("\t\t};")
	r.line("/* End PBXCopyFilesBuildPhase section */")
	r.line("")
}

func (g *Graph) renderFileRefs(r *renderer) {
	sorted := make([]*FileRef, len(g.FileRefs))
	copy(sorted, g.FileRefs)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Path < sorted[j].Path })

	r.line("/* Begin PBXFileReference section */")
	for _, ref := range sorted {
		name := ref.Name()
		r.linef("\t\t%s /* %s */ = {isa = PBXFileReference; lastKnownFileType = %s; path = %s; sourceTree = \"<group>\"; };",
			ref.ID, name, ref.FileType, quote(name))
	}
	r.linef("\t\t%s /* %s */ = {isa = PBXFileReference; explicitFileType = wrapper.application; includeInIndex = 0; path = %s; sourceTree = BUILT_PRODUCTS_DIR; };",
		g.Product.ID, g.Product.Name, quote(g.Product.Name))
	r.line("/* End PBXFileReference section */")
	r.line("")
}

func (g *Graph) renderFrameworksPhase(r *renderer) {
	ph := g.phase(PhaseFrameworks)

	r.line("/* Begin PBXFrameworksBuildPhase section */")
	r.linef("\t\t%s /* Frameworks */ = {", ph.ID)
	r.line("\t\t\tisa = PBXFrameworksBuildPhase;")
	r.line("\t\t\tbuildActionMask = 2147483647;")
	r.linef("\t\t\tfiles = (%s);", inlineFiles(ph.Files))
	r.line("\t\t\trunOnlyForDeploymentPostprocessing = 0;")
	r.line("\t\t};")
	r.line("/* End PBXFrameworksBuildPhase section */")
	r.line("")
}

// childEntry resolves a child path to its identity and display name.
func (g *Graph) childEntry(child string, refsByPath map[string]*FileRef) (id, name string) {
	if node, ok := g.Tree.Nodes[child]; ok {
		return node.ID, node.Name()
	}
	ref := refsByPath[child]
	return ref.ID, ref.Name()
}

func (g *Graph) renderGroups(r *renderer) {
	refsByPath := make(map[string]*FileRef, len(g.FileRefs))
	for _, ref := range g.FileRefs {
		refsByPath[ref.Path] = ref
	}

	r.line("/* Begin PBXGroup section */")

	// Main group: source tree roots, then the fixed frameworks and
	// products groups.
	r.linef("\t\t%s = {", g.MainGroupID)
	r.line("\t\t\tisa = PBXGroup;")
	r.line("\t\t\tchildren = (")
	for _, root := range g.Tree.Roots() {
		id, name := g.childEntry(root, refsByPath)
		r.linef("\t\t\t\t%s /* %s */,", id, name)
	}
	r.linef("\t\t\t\t%s /* %s */,", g.FrameworksGroupID, g.FrameworksDir)
	r.linef("\t\t\t\t%s /* Products */,", g.ProductsGroupID)
	r.line("\t\t\t);")
	r.line("\t\t\tsourceTree = \"<group>\";")
	r.line("\t\t};")

	// Products group.
	r.linef("\t\t%s /* Products */ = {", g.ProductsGroupID)
	r.line("\t\t\tisa = PBXGroup;")
	r.linef("\t\t\tchildren = (%s /* %s */,);", g.Product.ID, g.Product.Name)
	r.line("\t\t\tname = Products;")
	r.line("\t\t\tsourceTree = \"<group>\";")
	r.line("\t\t};")

	// Frameworks group.
	r.linef("\t\t%s /* %s */ = {", g.FrameworksGroupID, g.FrameworksDir)
	r.line("\t\t\tisa = PBXGroup;")
	var fw strings.Builder
	for _, ref := range g.FrameworkRefs {
		fmt.Fprintf(&fw, "%s /* %s */,", ref.ID, ref.Name())
	}
	r.linef("\t\t\tchildren = (%s);", fw.String())
	r.linef("\t\t\tpath = %s;", quote(g.FrameworksDir))
	r.line("\t\t\tsourceTree = \"<group>\";")
	r.line("\t\t};")

	// Directory groups mirroring the source tree.
	for _, dir := range g.Tree.DirPaths() {
		node := g.Tree.Nodes[dir]
		r.linef("\t\t%s /* %s */ = {", node.ID, node.Name())
		r.line("\t\t\tisa = PBXGroup;")
		r.line("\t\t\tchildren = (")
		for _, child := range node.Children() {
			id, name := g.childEntry(child, refsByPath)
			r.linef("\t\t\t\t%s /* %s */,", id, name)
		}
		r.line("\t\t\t);")
		r.linef("\t\t\tpath = %s;", quote(node.Name()))
		r.line("\t\t\tsourceTree = \"<group>\";")
		r.line("\t\t};")
	}

	r.line("/* End PBXGroup section */")
	r.line("")
}

func (g *Graph) renderTarget(r *renderer) {
	t := g.Target

	r.line("/* Begin PBXNativeTarget section */")
	r.linef("\t\t%s /* %s */ = {", t.ID, t.Name)
	r.line("\t\t\tisa = PBXNativeTarget;")
	r.linef("\t\t\tbuildConfigurationList = %s;", t.ConfigList.ID)
	r.line("\t\t\tbuildPhases = (")
	for _, ph := range t.Phases {
		r.linef("\t\t\t\t%s /* %s */,", ph.ID, ph.Kind.DisplayName())
	}
	r.line("\t\t\t);")
	r.line("\t\t\tbuildRules = ();")
	r.line("\t\t\tdependencies = ();")
	r.linef("\t\t\tname = %s;", quote(t.Name))
	r.linef("\t\t\tproductName = %s;", quote(t.Name))
	r.linef("\t\t\tproductReference = %s /* %s */;", t.Product.ID, t.Product.Name)
	r.line("\t\t\tproductType = \"com.apple.product-type.application\";")
	r.line("\t\t};")
	r.line("/* End PBXNativeTarget section */")
	r.line("")
}

func (g *Graph) renderProject(r *renderer) {
	regions := make([]string, len(g.KnownRegions))
	for i, region := range g.KnownRegions {
		regions[i] = quote(region)
	}

	r.line("/* Begin PBXProject section */")
	r.linef("\t\t%s /* Project object */ = {", g.RootID)
	r.line("\t\t\tisa = PBXProject;")
	r.linef("\t\t\tbuildConfigurationList = %s;", g.ProjectConfigs.ID)
	r.line("\t\t\tcompatibilityVersion = \"Xcode 14.0\";")
	r.linef("\t\t\tdevelopmentRegion = %s;", quote(g.DevelopmentRegion))
	r.line("\t\t\thasScannedForEncodings = 0;")
	r.linef("\t\t\tknownRegions = (%s);", strings.Join(regions, ", "))
	r.linef("\t\t\tmainGroup = %s;", g.MainGroupID)
	r.linef("\t\t\tproductRefGroup = %s /* Products */;", g.ProductsGroupID)
	r.line("\t\t\tprojectDirPath = \"\";")
	r.line("\t\t\tprojectRoot = \"\";")
	r.linef("\t\t\ttargets = (%s /* %s */,);", g.Target.ID, g.Target.Name)
	r.line("\t\t};")
	r.line("/* End PBXProject section */")
	r.line("")
}

// renderListPhase renders the sources or resources phase, whose member
// lists use the multi-line form.
func (g *Graph) renderListPhase(r *renderer, kind PhaseKind) {
	ph := g.phase(kind)

	r.linef("/* Begin %s section */", kind.Isa())
	r.linef("\t\t%s /* %s */ = {", ph.ID, kind.DisplayName())
	r.linef("\t\t\tisa = %s;", kind.Isa())
	r.line("\t\t\tbuildActionMask = 2147483647;")
	r.line("\t\t\tfiles = (")
	for _, bf := range ph.Files {
		r.linef("\t\t\t\t%s /* %s */,", bf.ID, bf.FileRef.Name())
	}
	r.line("\t\t\t);")
	r.line("\t\t\trunOnlyForDeploymentPostprocessing = 0;")
	r.line("\t\t};")
	r.linef("/* End %s section */", kind.Isa())
	r.line("")
}

// renderSettingValue renders a build-setting value in descriptor syntax.
// List items are always quoted, matching the generated style for search
// paths and preprocessor definitions.
func renderSettingValue(v config.SettingValue) string {
	if v.IsList() {
		items := make([]string, len(v.List))
		for i, item := range v.List {
			items[i] = `"` + strings.ReplaceAll(strings.ReplaceAll(item, `\`, `\\`), `"`, `\"`) + `"`
		}
		return "(" + strings.Join(items, ", ") + ")"
	}
	return quote(v.Scalar)
}

func (g *Graph) renderConfigurations(r *renderer) {
	r.line("/* Begin XCBuildConfiguration section */")
	for _, list := range []*ConfigList{g.ProjectConfigs, g.TargetConfigs} {
		for _, cfg := range list.Configs {
			r.linef("\t\t%s /* %s */ = {", cfg.ID, cfg.Name)
			r.line("\t\t\tisa = XCBuildConfiguration;")
			r.line("\t\t\tbuildSettings = {")

			keys := make([]string, 0, len(cfg.Settings))
			for k := range cfg.Settings {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			for _, k := range keys {
				r.linef("\t\t\t\t%s = %s;", k, renderSettingValue(cfg.Settings[k]))
			}

			r.line("\t\t\t};")
			r.linef("\t\t\tname = %s;", cfg.Name)
			r.line("\t\t};")
		}
	}
	r.line("/* End XCBuildConfiguration section */")
	r.line("")
}

func (g *Graph) renderConfigLists(r *renderer) {
	r.line("/* Begin XCConfigurationList section */")
	for _, list := range []*ConfigList{g.ProjectConfigs, g.TargetConfigs} {
		var members strings.Builder
		for _, cfg := range list.Configs {
			fmt.Fprintf(&members, "%s /* %s */, ", cfg.ID, cfg.Name)
		}
		r.linef("\t\t%s /* %s */ = {", list.ID, list.Comment)
		r.line("\t\t\tisa = XCConfigurationList;")
		r.linef("\t\t\tbuildConfigurations = (%s);", strings.TrimSuffix(members.String(), " "))
		r.line("\t\t\tdefaultConfigurationIsVisible = 0;")
		r.line("\t\t\tdefaultConfigurationName = Release;")
		r.line("\t\t};")
	}
	r.line("/* End XCConfigurationList section */")
	r.line("")
}
