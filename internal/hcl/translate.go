package hcl

import (
	"fmt"
	"sort"

	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"

	"github.com/8cH9azbsFifZ/DigiFox/internal/config"
	"github.com/8cH9azbsFifZ/DigiFox/internal/schema"
)

// translateProject converts the HCL-specific project schema into the
// agnostic model.
func (l *Loader) translateProject(s *schema.Project) (*config.Project, error) {
	p := &config.Project{
		Name:               s.Name,
		SourceDir:          s.SourceDir,
		FrameworksDir:      s.FrameworksDir,
		BundleID:           s.BundleID,
		TeamID:             s.TeamID,
		DeploymentTarget:   s.DeploymentTarget,
		DevelopmentRegion:  s.DevelopmentRegion,
		KnownRegions:       s.KnownRegions,
		BridgingHeader:     s.BridgingHeader,
		Entitlements:       s.Entitlements,
		InfoPlist:          s.InfoPlist,
		HeaderSearchPaths:  s.HeaderSearchPaths,
		LibrarySearchPaths: s.LibrarySearchPaths,
		LinkerFlags:        s.LinkerFlags,
	}

	for _, fw := range s.Frameworks {
		p.Frameworks = append(p.Frameworks, &config.Framework{
			FileName: fw.FileName,
			Embed:    fw.Embed,
		})
	}

	if s.Settings != nil {
		settings, err := l.translateSettings(s.Settings)
		if err != nil {
			return nil, err
		}
		p.ExtraSettings = settings
	}

	return p, nil
}

// translateSettings evaluates the free-form attributes of a settings block
// into build-setting values. Only constant string, number, bool, and
// string-list expressions are accepted.
func (l *Loader) translateSettings(s *schema.Settings) (map[string]config.SettingValue, error) {
	attrs, diags := s.Body.JustAttributes()
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to read settings block: %w", diags)
	}

	// Evaluate in name order so the first error reported is stable.
	names := make([]string, 0, len(attrs))
	for name := range attrs {
		names = append(names, name)
	}
	sort.Strings(names)

	settings := make(map[string]config.SettingValue, len(attrs))
	for _, name := range names {
		val, diags := attrs[name].Expr.Value(nil)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to evaluate setting %q: %w", name, diags)
		}
		sv, err := settingValue(val)
		if err != nil {
			return nil, fmt.Errorf("setting %q: %w", name, err)
		}
		settings[name] = sv
	}
	return settings, nil
}

// settingValue converts an evaluated cty value into a SettingValue.
func settingValue(val cty.Value) (config.SettingValue, error) {
	ty := val.Type()
	if ty.IsTupleType() || ty.IsListType() || ty.IsSetType() {
		var items []string
		for it := val.ElementIterator(); it.Next(); {
			_, elem := it.Element()
			s, err := stringify(elem)
			if err != nil {
				return config.SettingValue{}, err
			}
			items = append(items, s)
		}
		if items == nil {
			items = []string{}
		}
		return config.List(items...), nil
	}

	s, err := stringify(val)
	if err != nil {
		return config.SettingValue{}, err
	}
	return config.String(s), nil
}

// stringify converts a scalar cty value to its string form.
func stringify(val cty.Value) (string, error) {
	if val.IsNull() {
		return "", fmt.Errorf("null values are not allowed")
	}
	converted, err := convert.Convert(val, cty.String)
	if err != nil {
		return "", fmt.Errorf("unsupported value type %s", val.Type().FriendlyName())
	}
	return converted.AsString(), nil
}
