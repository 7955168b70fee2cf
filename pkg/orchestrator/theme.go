package orchestrator

import (
	"errors"
	"fmt"
	"strings"

	theme "github.com/goliatone/go-theme"
)

// cssVarPrefix marks tokens exported as CSS custom properties: "var.brand"
// becomes "--brand".
const cssVarPrefix = "var."

// StaticSelector resolves themes from a fixed set of manifests. The first
// manifest is used when a lookup names no theme.
type StaticSelector struct {
	order     []string
	manifests map[string]*theme.Manifest
}

var _ theme.ThemeSelector = (*StaticSelector)(nil)

// NewStaticSelector indexes manifests by name. Nil manifests are skipped.
func NewStaticSelector(manifests ...*theme.Manifest) *StaticSelector {
	s := &StaticSelector{manifests: make(map[string]*theme.Manifest, len(manifests))}
	for _, manifest := range manifests {
		if manifest == nil || manifest.Name == "" {
			continue
		}
		if _, exists := s.manifests[manifest.Name]; !exists {
			s.order = append(s.order, manifest.Name)
		}
		s.manifests[manifest.Name] = manifest
	}
	return s
}

// Select implements theme.ThemeSelector. Query options are not used.
func (s *StaticSelector) Select(name, variant string, _ ...theme.QueryOption) (*theme.Selection, error) {
	if s == nil || len(s.order) == 0 {
		return nil, errors.New("theme: no manifests registered")
	}
	if name == "" {
		name = s.order[0]
	}
	manifest, ok := s.manifests[name]
	if !ok {
		return nil, fmt.Errorf("theme: %q not found", name)
	}
	if variant != "" {
		if _, ok := manifest.Variants[variant]; !ok {
			return nil, fmt.Errorf("theme: %q has no variant %q", name, variant)
		}
	}
	return &theme.Selection{Theme: name, Variant: variant, Manifest: manifest}, nil
}

// RendererConfig flattens a selection into the configuration renderers
// consume: variant tokens, templates and assets override the base manifest.
func RendererConfig(selection *theme.Selection) (*theme.RendererConfig, error) {
	if selection == nil {
		return nil, nil
	}
	manifest := selection.Manifest
	if manifest == nil {
		return nil, fmt.Errorf("theme: selection %q has no manifest", selection.Theme)
	}

	tokens := mergeStrings(manifest.Tokens, nil)
	partials := mergeStrings(manifest.Templates, nil)
	files := mergeStrings(manifest.Assets.Files, nil)
	prefix := manifest.Assets.Prefix

	if variant, ok := manifest.Variants[selection.Variant]; ok && selection.Variant != "" {
		tokens = mergeStrings(tokens, variant.Tokens)
		partials = mergeStrings(partials, variant.Templates)
		files = mergeStrings(files, variant.Assets.Files)
		if variant.Assets.Prefix != "" {
			prefix = variant.Assets.Prefix
		}
	}

	cssVars := make(map[string]string)
	for key, value := range tokens {
		if name, ok := strings.CutPrefix(key, cssVarPrefix); ok && name != "" {
			cssVars["--"+name] = value
		}
	}
	if len(cssVars) == 0 {
		cssVars = nil
	}

	return &theme.RendererConfig{
		Theme:    selection.Theme,
		Variant:  selection.Variant,
		Partials: partials,
		Tokens:   tokens,
		CSSVars:  cssVars,
		AssetURL: assetResolver(prefix, files),
	}, nil
}

func assetResolver(prefix string, files map[string]string) func(string) string {
	prefix = strings.TrimRight(prefix, "/")
	return func(key string) string {
		file, ok := files[key]
		if !ok || file == "" {
			return ""
		}
		if strings.Contains(file, "://") || strings.HasPrefix(file, "/") {
			return file
		}
		return prefix + "/" + file
	}
}

func mergeStrings(base, overlay map[string]string) map[string]string {
	if len(base) == 0 && len(overlay) == 0 {
		return nil
	}
	out := make(map[string]string, len(base)+len(overlay))
	for key, value := range base {
		out[key] = value
	}
	for key, value := range overlay {
		out[key] = value
	}
	return out
}
