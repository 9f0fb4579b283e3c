package upstream

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/goliatone/go-wavesurf/pkg/events"
	"github.com/goliatone/go-wavesurf/pkg/options"
)

// Report is the drift between a wavesurfer.js release and the local tables.
type Report struct {
	TrackedVersion  string              `json:"tracked_version"`
	UpstreamVersion string              `json:"upstream_version"`
	OptionsAdded    []Field             `json:"options_added,omitempty"`
	OptionsRemoved  []string            `json:"options_removed,omitempty"`
	EventsAdded     map[string][]string `json:"events_added,omitempty"`
	EventsRemoved   []string            `json:"events_removed,omitempty"`
	PluginOptions   map[string][]Field  `json:"plugin_options_added,omitempty"`
	Unwrapped       []string            `json:"unwrapped_plugins,omitempty"`
	// Warnings collects sources that could not be fetched.
	Warnings []string `json:"warnings,omitempty"`
}

// HasDrift reports whether options, events or plugin options changed.
// Unwrapped plugins alone are not drift.
func (r *Report) HasDrift() bool {
	return len(r.OptionsAdded) > 0 ||
		len(r.OptionsRemoved) > 0 ||
		len(r.EventsAdded) > 0 ||
		len(r.EventsRemoved) > 0 ||
		len(r.PluginOptions) > 0
}

// CompareOptions diffs upstream option fields against the option table.
// Excluded names count as known on both sides.
func CompareOptions(upstream []Field, excluded []string) (added []Field, removed []string) {
	skip := toSet(excluded)
	known := make(map[string]struct{})
	for _, spec := range options.Known() {
		known[spec.JSName] = struct{}{}
	}

	seen := make(map[string]struct{}, len(upstream))
	for _, f := range upstream {
		seen[f.Name] = struct{}{}
		if _, ok := skip[f.Name]; ok {
			continue
		}
		if _, ok := known[f.Name]; !ok {
			added = append(added, f)
		}
	}
	for name := range known {
		_, up := seen[name]
		_, ex := skip[name]
		if !up && !ex {
			removed = append(removed, name)
		}
	}
	sort.Strings(removed)
	return added, removed
}

// CompareEvents diffs upstream events against events.Params.
func CompareEvents(upstream map[string][]string, excluded []string) (added map[string][]string, removed []string) {
	skip := toSet(excluded)
	for name, params := range upstream {
		if _, ok := skip[name]; ok {
			continue
		}
		if _, ok := events.Params[name]; !ok {
			if added == nil {
				added = make(map[string][]string)
			}
			added[name] = params
		}
	}
	for name := range events.Params {
		_, up := upstream[name]
		_, ex := skip[name]
		if !up && !ex {
			removed = append(removed, name)
		}
	}
	sort.Strings(removed)
	return added, removed
}

// ComparePluginOptions returns upstream plugin fields the wrapper cannot set.
// wrapped holds the option names the plugin constructor supports, in either
// camelCase or snake_case.
func ComparePluginOptions(upstream []Field, excluded, wrapped []string) []Field {
	skip := toSet(excluded)
	have := toSet(wrapped)
	var added []Field
	for _, f := range upstream {
		if _, ok := skip[f.Name]; ok {
			continue
		}
		_, camel := have[f.Name]
		_, snake := have[options.SnakeCase(f.Name)]
		if !camel && !snake {
			added = append(added, f)
		}
	}
	return added
}

// Format writes a human-readable report with suggested table entries.
func (r *Report) Format(w io.Writer) error {
	var b strings.Builder
	fmt.Fprintf(&b, "Upstream version: %s\n", r.UpstreamVersion)
	fmt.Fprintf(&b, "Tracked version:  %s\n\n", r.TrackedVersion)

	for _, warning := range r.Warnings {
		fmt.Fprintf(&b, "warning: %s\n", warning)
	}
	if len(r.Warnings) > 0 {
		b.WriteString("\n")
	}

	switch {
	case !r.HasDrift() && len(r.Unwrapped) == 0:
		b.WriteString("No drift detected. Tables are in sync.\n")
		_, err := io.WriteString(w, b.String())
		return err
	case !r.HasDrift():
		b.WriteString("No API drift detected.\n\n")
	}

	if len(r.OptionsAdded) > 0 {
		b.WriteString("=== OPTIONS: Added upstream ===\n")
		for _, f := range r.OptionsAdded {
			snake := options.SnakeCase(f.Name)
			fmt.Fprintf(&b, "  + %s (%s)\n", f.Name, f.Type)
			fmt.Fprintf(&b, "    table entry: {Name: %q, JSName: %q, Kind: ...},\n", snake, f.Name)
			if f.Comment != "" {
				fmt.Fprintf(&b, "    upstream doc: %s\n", f.Comment)
			}
		}
		b.WriteString("\n")
	}
	if len(r.OptionsRemoved) > 0 {
		b.WriteString("=== OPTIONS: Removed upstream ===\n")
		for _, name := range r.OptionsRemoved {
			fmt.Fprintf(&b, "  - %s\n", name)
		}
		b.WriteString("\n")
	}
	if len(r.EventsAdded) > 0 {
		b.WriteString("=== EVENTS: Added upstream ===\n")
		for _, name := range sortedKeys(r.EventsAdded) {
			params := r.EventsAdded[name]
			quoted := make([]string, len(params))
			for i, p := range params {
				quoted[i] = fmt.Sprintf("%q", p)
			}
			fmt.Fprintf(&b, "  + %s: [%s]\n", name, strings.Join(params, ", "))
			fmt.Fprintf(&b, "    Params entry: %q: {%s},\n", name, strings.Join(quoted, ", "))
		}
		b.WriteString("\n")
	}
	if len(r.EventsRemoved) > 0 {
		b.WriteString("=== EVENTS: Removed upstream ===\n")
		for _, name := range r.EventsRemoved {
			fmt.Fprintf(&b, "  - %s\n", name)
		}
		b.WriteString("\n")
	}
	if len(r.PluginOptions) > 0 {
		b.WriteString("=== PLUGIN OPTIONS: Added upstream ===\n")
		for _, plugin := range sortedKeys(r.PluginOptions) {
			fmt.Fprintf(&b, "  [%s]\n", plugin)
			for _, f := range r.PluginOptions[plugin] {
				fmt.Fprintf(&b, "    + %s (%s)\n", f.Name, f.Type)
			}
		}
		b.WriteString("\n")
	}
	if len(r.Unwrapped) > 0 {
		b.WriteString("=== UNWRAPPED PLUGINS (available upstream) ===\n")
		fmt.Fprintf(&b, "  %s\n", strings.Join(r.Unwrapped, ", "))
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func toSet(items []string) map[string]struct{} {
	out := make(map[string]struct{}, len(items))
	for _, item := range items {
		out[item] = struct{}{}
	}
	return out
}

func sortedKeys[V any](m map[string]V) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
