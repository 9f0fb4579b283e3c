package themes

import (
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Definition is one theme read from a theme document.
type Definition struct {
	Name     string
	Extends  string
	Source   string
	Theme    Theme
	Variants map[string]map[string]any
	Prefix   string
	Assets   map[string]string
}

type documentFile struct {
	Name     string                    `yaml:"name"`
	Extends  string                    `yaml:"extends"`
	Variants map[string]map[string]any `yaml:"variants"`
	Assets   struct {
		Prefix string            `yaml:"prefix"`
		Files  map[string]string `yaml:"files"`
	} `yaml:"assets"`
	Fields map[string]any `yaml:",inline"`
}

// LoadFS parses every *.yaml, *.yml and *.json theme document in fsys. A
// document without a name takes its file stem. Results are sorted by source
// path.
func LoadFS(fsys fs.FS) ([]Definition, error) {
	if fsys == nil {
		return nil, nil
	}
	var defs []Definition
	seen := make(map[string]string)

	err := fs.WalkDir(fsys, ".", func(p string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if d.IsDir() || !isThemeFile(p) {
			return nil
		}
		data, err := fs.ReadFile(fsys, p)
		if err != nil {
			return fmt.Errorf("themes: read %s: %w", p, err)
		}
		def, err := parseDefinition(data, p)
		if err != nil {
			return err
		}
		if prev, ok := seen[def.Name]; ok {
			return fmt.Errorf("themes: duplicate theme %q (files %s and %s)", def.Name, prev, p)
		}
		seen[def.Name] = p
		defs = append(defs, def)
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.SliceStable(defs, func(i, j int) bool { return defs[i].Source < defs[j].Source })
	return defs, nil
}

func parseDefinition(data []byte, source string) (Definition, error) {
	if strings.TrimSpace(string(data)) == "" {
		return Definition{}, fmt.Errorf("themes: file %s is empty", source)
	}
	var doc documentFile
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return Definition{}, fmt.Errorf("themes: parse %s: %w", source, err)
	}

	name := strings.TrimSpace(doc.Name)
	if name == "" {
		name = strings.TrimSuffix(path.Base(source), path.Ext(source))
	}
	known := FieldNames()
	for key := range doc.Fields {
		if _, ok := known[key]; !ok {
			return Definition{}, fmt.Errorf("themes: file %s: %w %q", source, ErrUnknownField, key)
		}
	}
	var t Theme
	if len(doc.Fields) > 0 {
		payload, err := yaml.Marshal(doc.Fields)
		if err != nil {
			return Definition{}, fmt.Errorf("themes: file %s: %w", source, err)
		}
		if err := yaml.Unmarshal(payload, &t); err != nil {
			return Definition{}, fmt.Errorf("themes: file %s: %w", source, err)
		}
	}

	return Definition{
		Name:     name,
		Extends:  strings.TrimSpace(doc.Extends),
		Source:   source,
		Theme:    t,
		Variants: doc.Variants,
		Prefix:   doc.Assets.Prefix,
		Assets:   doc.Assets.Files,
	}, nil
}

// LoadFS registers every theme document in fsys. Documents may extend a theme
// that is already registered or defined in another loaded document; fields set
// in the document override the parent's. Variants are applied on top of the
// resolved theme. It returns the names registered.
func (r *Registry) LoadFS(fsys fs.FS) ([]string, error) {
	defs, err := LoadFS(fsys)
	if err != nil {
		return nil, err
	}
	byName := make(map[string]Definition, len(defs))
	for _, def := range defs {
		byName[def.Name] = def
	}

	resolved := make(map[string]Theme, len(defs))
	var resolve func(name string, chain []string) (Theme, error)
	resolve = func(name string, chain []string) (Theme, error) {
		if t, ok := resolved[name]; ok {
			return t, nil
		}
		def, ok := byName[name]
		if !ok {
			return r.Get(name)
		}
		for _, prev := range chain {
			if prev == name {
				return Theme{}, fmt.Errorf("themes: extends cycle: %s", strings.Join(append(chain, name), " -> "))
			}
		}
		t := def.Theme.WithDefaults()
		if def.Extends != "" {
			parent, err := resolve(def.Extends, append(chain, name))
			if err != nil {
				return Theme{}, fmt.Errorf("themes: %s extends %q: %w", def.Source, def.Extends, err)
			}
			fields, err := def.Theme.fields()
			if err != nil {
				return Theme{}, err
			}
			t, err = parent.With(fields)
			if err != nil {
				return Theme{}, fmt.Errorf("themes: %s: %w", def.Source, err)
			}
		}
		resolved[name] = t
		return t, nil
	}

	names := make([]string, 0, len(defs))
	for _, def := range defs {
		t, err := resolve(def.Name, nil)
		if err != nil {
			return names, err
		}
		opts := []RegisterOption{WithAssets(def.Prefix, def.Assets)}
		for _, variant := range sortedVariantNames(def.Variants) {
			vt, err := t.With(def.Variants[variant])
			if err != nil {
				return names, fmt.Errorf("themes: %s variant %q: %w", def.Source, variant, err)
			}
			opts = append(opts, WithVariant(variant, vt))
		}
		if err := r.Register(def.Name, t, opts...); err != nil {
			return names, err
		}
		names = append(names, def.Name)
	}
	return names, nil
}

func sortedVariantNames(m map[string]map[string]any) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func isThemeFile(p string) bool {
	switch strings.ToLower(path.Ext(p)) {
	case ".json", ".yaml", ".yml":
		return true
	default:
		return false
	}
}
