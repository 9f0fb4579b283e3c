package themes

import (
	"fmt"
	"sort"
	"strings"

	theme "github.com/goliatone/go-theme"
)

// CSSVarPrefix prefixes every CSS custom property derived from theme tokens.
const CSSVarPrefix = "--ws-"

// Manifest exposes a registered theme as a go-theme manifest. Tokens are the
// snake_case field values; variants carry only the tokens that differ from the
// base theme.
func (r *Registry) Manifest(name string) (*theme.Manifest, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, err := r.lookup(name)
	if err != nil {
		return nil, err
	}
	return e.manifest(strings.TrimSpace(name)), nil
}

func (e *entry) manifest(name string) *theme.Manifest {
	base := e.theme.WithDefaults().Tokens()
	m := &theme.Manifest{
		Name:    name,
		Version: "1",
		Tokens:  base,
	}
	if e.prefix != "" || len(e.assets) > 0 {
		m.Assets = theme.Assets{Prefix: e.prefix, Files: copyStrings(e.assets)}
	}
	if len(e.variants) > 0 {
		m.Variants = make(map[string]theme.Variant, len(e.variants))
		for variant, t := range e.variants {
			diff := make(map[string]string)
			for key, value := range t.WithDefaults().Tokens() {
				if base[key] != value {
					diff[key] = value
				}
			}
			m.Variants[variant] = theme.Variant{Tokens: diff}
		}
	}
	return m
}

// Select implements theme.ThemeSelector. An empty name selects the default
// theme.
func (r *Registry) Select(name, variant string, _ ...theme.QueryOption) (*theme.Selection, error) {
	if strings.TrimSpace(name) == "" {
		name = r.DefaultName()
	}
	manifest, err := r.Manifest(name)
	if err != nil {
		return nil, err
	}
	variant = strings.TrimSpace(variant)
	if variant != "" {
		if _, ok := manifest.Variants[variant]; !ok {
			return nil, fmt.Errorf("%w %q for theme %q", ErrUnknownVariant, variant, name)
		}
	}
	return &theme.Selection{Theme: manifest.Name, Variant: variant, Manifest: manifest}, nil
}

// RendererConfig flattens a selection into tokens, CSS variables and an asset
// resolver. Variant tokens and assets override the base manifest.
func RendererConfig(sel *theme.Selection) *theme.RendererConfig {
	if sel == nil || sel.Manifest == nil {
		return nil
	}
	m := sel.Manifest
	tokens := copyStrings(m.Tokens)
	prefix := m.Assets.Prefix
	files := copyStrings(m.Assets.Files)

	if v, ok := m.Variants[sel.Variant]; ok && sel.Variant != "" {
		if tokens == nil && len(v.Tokens) > 0 {
			tokens = make(map[string]string, len(v.Tokens))
		}
		for key, value := range v.Tokens {
			tokens[key] = value
		}
		if v.Assets.Prefix != "" {
			prefix = v.Assets.Prefix
		}
		if files == nil && len(v.Assets.Files) > 0 {
			files = make(map[string]string, len(v.Assets.Files))
		}
		for key, value := range v.Assets.Files {
			files[key] = value
		}
	}

	return &theme.RendererConfig{
		Theme:    sel.Theme,
		Variant:  sel.Variant,
		Tokens:   tokens,
		CSSVars:  CSSVars(tokens),
		AssetURL: assetResolver(prefix, files),
	}
}

// CSSVars maps tokens to "--ws-" prefixed custom properties.
func CSSVars(tokens map[string]string) map[string]string {
	if len(tokens) == 0 {
		return nil
	}
	out := make(map[string]string, len(tokens))
	for key, value := range tokens {
		out[CSSVarPrefix+strings.ReplaceAll(key, "_", "-")] = value
	}
	return out
}

// CSSVarsStyle renders a :root block declaring vars in sorted order.
func CSSVarsStyle(vars map[string]string) string {
	if len(vars) == 0 {
		return ""
	}
	keys := make([]string, 0, len(vars))
	for key := range vars {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString(":root {\n")
	for _, key := range keys {
		b.WriteString("  ")
		b.WriteString(key)
		b.WriteString(": ")
		b.WriteString(vars[key])
		b.WriteString(";\n")
	}
	b.WriteString("}")
	return b.String()
}

func assetResolver(prefix string, files map[string]string) func(string) string {
	return func(key string) string {
		file, ok := files[key]
		if !ok || file == "" {
			return ""
		}
		if isAbsoluteURL(file) || prefix == "" {
			return file
		}
		return strings.TrimRight(prefix, "/") + "/" + strings.TrimLeft(file, "/")
	}
}

func isAbsoluteURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://") || strings.HasPrefix(s, "//")
}

func copyStrings(in map[string]string) map[string]string {
	if len(in) == 0 {
		return nil
	}
	out := make(map[string]string, len(in))
	for key, value := range in {
		out[key] = value
	}
	return out
}
