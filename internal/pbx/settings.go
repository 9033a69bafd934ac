package pbx

import (
	"github.com/8cH9azbsFifZ/DigiFox/internal/config"
)

// baseSettings is the common settings layer shared by all four build
// configurations.
func baseSettings(p *config.Project) map[string]config.SettingValue {
	return map[string]config.SettingValue{
		"ALWAYS_SEARCH_USER_PATHS":    config.String("NO"),
		"CLANG_ANALYZER_NONNULL":      config.String("YES"),
		"CLANG_CXX_LANGUAGE_STANDARD": config.String("gnu++20"),
		"CLANG_ENABLE_MODULES":        config.String("YES"),
		"CLANG_ENABLE_OBJC_ARC":       config.String("YES"),
		"COPY_PHASE_STRIP":            config.String("NO"),
		"ENABLE_STRICT_OBJC_MSGSEND":  config.String("YES"),
		"GCC_C_LANGUAGE_STANDARD":     config.String("gnu17"),
		"GCC_NO_COMMON_BLOCKS":        config.String("YES"),
		"IPHONEOS_DEPLOYMENT_TARGET":  config.String(p.DeploymentTarget),
		"SDKROOT":                     config.String("iphoneos"),
		"SWIFT_VERSION":               config.String("5.0"),
	}
}

// debugOverrides is the Debug variant layer: full debug info, no
// optimization.
func debugOverrides() map[string]config.SettingValue {
	return map[string]config.SettingValue{
		"DEBUG_INFORMATION_FORMAT":            config.String("dwarf"),
		"ENABLE_TESTABILITY":                  config.String("YES"),
		"GCC_OPTIMIZATION_LEVEL":              config.String("0"),
		"GCC_PREPROCESSOR_DEFINITIONS":        config.List("DEBUG=1", "$(inherited)"),
		"ONLY_ACTIVE_ARCH":                    config.String("YES"),
		"SWIFT_ACTIVE_COMPILATION_CONDITIONS": config.String("$(inherited) DEBUG"),
		"SWIFT_OPTIMIZATION_LEVEL":            config.String("-Onone"),
	}
}

// releaseOverrides is the Release variant layer: dSYM generation,
// whole-module optimization, product validation.
func releaseOverrides() map[string]config.SettingValue {
	return map[string]config.SettingValue{
		"DEBUG_INFORMATION_FORMAT": config.String("dwarf-with-dsym"),
		"ENABLE_NS_ASSERTIONS":     config.String("NO"),
		"SWIFT_COMPILATION_MODE":   config.String("wholemodule"),
		"SWIFT_OPTIMIZATION_LEVEL": config.String("-O"),
		"VALIDATE_PRODUCT":         config.String("YES"),
	}
}

// targetLayer carries the settings that only make sense on the target:
// product identity, signing, interop header, and search paths. The user's
// extra settings are merged in by the caller so they win last.
func targetLayer(p *config.Project) map[string]config.SettingValue {
	layer := map[string]config.SettingValue{
		"ASSETCATALOG_COMPILER_APPICON_NAME":             config.String("AppIcon"),
		"ASSETCATALOG_COMPILER_GLOBAL_ACCENT_COLOR_NAME": config.String("AccentColor"),
		"CODE_SIGN_ENTITLEMENTS":                         config.String(p.Entitlements),
		"CODE_SIGN_STYLE":                                config.String("Automatic"),
		"DEVELOPMENT_TEAM":                               config.String(p.TeamID),
		"EXCLUDED_ARCHS[sdk=iphonesimulator*]":           config.String("x86_64"),
		"GENERATE_INFOPLIST_FILE":                        config.String("NO"),
		"INFOPLIST_FILE":                                 config.String(p.InfoPlist),
		"LD_RUNPATH_SEARCH_PATHS":                        config.String("$(inherited) @executable_path/Frameworks"),
		"PRODUCT_BUNDLE_IDENTIFIER":                      config.String(p.BundleID),
		"PRODUCT_NAME":                                   config.String("$(TARGET_NAME)"),
		"SWIFT_EMIT_LOC_STRINGS":                         config.String("YES"),
		"SWIFT_OBJC_BRIDGING_HEADER":                     config.String(p.BridgingHeader),
		"TARGETED_DEVICE_FAMILY":                         config.String("1,2"),
	}
	if len(p.HeaderSearchPaths) > 0 {
		layer["HEADER_SEARCH_PATHS"] = config.List(p.HeaderSearchPaths...)
	}
	if len(p.LibrarySearchPaths) > 0 {
		layer["LIBRARY_SEARCH_PATHS"] = config.List(p.LibrarySearchPaths...)
	}
	if len(p.LinkerFlags) > 0 {
		layer["OTHER_LDFLAGS"] = config.List(p.LinkerFlags...)
	}
	return layer
}

// mergeSettings layers the given maps left to right; later entries strictly
// win on key collision. There is no other conflict resolution.
func mergeSettings(layers ...map[string]config.SettingValue) map[string]config.SettingValue {
	merged := make(map[string]config.SettingValue)
	for _, layer := range layers {
		for k, v := range layer {
			merged[k] = v
		}
	}
	return merged
}
