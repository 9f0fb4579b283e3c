// Package upstream checks the option, event and plugin tables against the
// TypeScript sources of a wavesurfer.js release and reports drift.
package upstream

import (
	"regexp"
	"strings"
)

// Field is one property of a TypeScript object type.
type Field struct {
	Name     string `json:"name" yaml:"name"`
	Type     string `json:"type" yaml:"type"`
	Optional bool   `json:"optional,omitempty" yaml:"optional,omitempty"`
	Comment  string `json:"comment,omitempty" yaml:"comment,omitempty"`
}

var (
	fieldPattern = regexp.MustCompile(`(?m)(?:/\*\*\s*((?s:.*?))\s*\*/\s*)?(\w+)(\??):\s*(.+?)$`)
	eventPattern = regexp.MustCompile(`(?m)(\w+)\s*:\s*\[(.*?)\]`)
	docPrefix    = regexp.MustCompile(`(?m)^\s*\*\s?`)
)

// typeBody returns the text between `export type <name> = {` and the first
// closing brace at the start of a line, so nested braces inside field types
// do not end the block early.
func typeBody(src, name string) (string, bool) {
	pattern := regexp.MustCompile(`(?s)export\s+type\s+` + regexp.QuoteMeta(name) + `\s*=\s*\{(.*?)\n\}`)
	m := pattern.FindStringSubmatch(src)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// ParseTypeBlock extracts the flat fields of `export type <name> = { ... }`,
// keeping any preceding JSDoc comment. A missing block yields nil.
func ParseTypeBlock(src, name string) []Field {
	body, ok := typeBody(src, name)
	if !ok {
		return nil
	}
	var fields []Field
	for _, m := range fieldPattern.FindAllStringSubmatch(body, -1) {
		fields = append(fields, Field{
			Name:     m[2],
			Type:     strings.TrimRight(strings.TrimSpace(m[4]), ",;"),
			Optional: m[3] == "?",
			Comment:  cleanComment(m[1]),
		})
	}
	return fields
}

// ParseEvents extracts labelled-tuple event definitions such as
// `timeupdate: [currentTime: number]` into event name to parameter labels.
func ParseEvents(src, name string) map[string][]string {
	body, ok := typeBody(src, name)
	if !ok {
		return nil
	}
	out := make(map[string][]string)
	for _, m := range eventPattern.FindAllStringSubmatch(body, -1) {
		params := []string{}
		for _, param := range strings.Split(m[2], ",") {
			label, _, found := strings.Cut(strings.TrimSpace(param), ":")
			if found {
				params = append(params, strings.TrimSpace(label))
			}
		}
		out[m[1]] = params
	}
	return out
}

func cleanComment(raw string) string {
	raw = docPrefix.ReplaceAllString(raw, "")
	return strings.Join(strings.Fields(raw), " ")
}
