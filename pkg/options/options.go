package options

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"reflect"
	"sort"
	"strings"
)

var (
	// ErrUnknownOption reports a key that is not part of the option table.
	ErrUnknownOption = errors.New("options: unknown option")
	// ErrInvalidValue reports a value whose type does not match the option kind.
	ErrInvalidValue = errors.New("options: invalid value")
)

// OptionError describes a single rejected option.
type OptionError struct {
	Key        string
	Kind       Kind
	Value      any
	Suggestion string
	Err        error
}

func (e *OptionError) Error() string {
	switch {
	case errors.Is(e.Err, ErrUnknownOption) && e.Suggestion != "":
		return fmt.Sprintf("options: unknown option %q (did you mean %q?)", e.Key, e.Suggestion)
	case errors.Is(e.Err, ErrUnknownOption):
		return fmt.Sprintf("options: unknown option %q", e.Key)
	default:
		return fmt.Sprintf("options: %q expects %s, got %T", e.Key, e.Kind, e.Value)
	}
}

func (e *OptionError) Unwrap() error {
	return e.Err
}

// Options holds validated wavesurfer options keyed by snake_case name. The
// zero value is empty and ready to use. Options is immutable: every mutating
// method returns a new value.
type Options struct {
	values map[string]any
}

// Parse validates raw snake_case options. Unknown keys and values of the
// wrong shape are reported together.
func Parse(raw map[string]any) (Options, error) {
	return parse(raw, true)
}

// ParseLenient validates raw options but silently drops unknown keys.
func ParseLenient(raw map[string]any) (Options, error) {
	return parse(raw, false)
}

// MustParse panics when Parse fails. Intended for static option literals.
func MustParse(raw map[string]any) Options {
	opts, err := Parse(raw)
	if err != nil {
		panic(err)
	}
	return opts
}

func parse(raw map[string]any, strict bool) (Options, error) {
	out := Options{values: make(map[string]any, len(raw))}

	keys := make([]string, 0, len(raw))
	for key := range raw {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var errs []error
	for _, key := range keys {
		name := strings.TrimSpace(key)
		spec, ok := bySnake[name]
		if !ok {
			if strict {
				errs = append(errs, &OptionError{
					Key:        name,
					Suggestion: suggest(name),
					Err:        ErrUnknownOption,
				})
			}
			continue
		}
		value := raw[key]
		if value == nil {
			continue
		}
		normalized, err := normalize(spec, value)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		out.values[name] = normalized
	}

	if len(errs) > 0 {
		return Options{}, errors.Join(errs...)
	}
	return out, nil
}

// Len reports how many options are set.
func (o Options) Len() int {
	return len(o.values)
}

// Get returns the value stored for a snake_case option.
func (o Options) Get(name string) (any, bool) {
	v, ok := o.values[name]
	return v, ok
}

// Has reports whether the option is set.
func (o Options) Has(name string) bool {
	_, ok := o.values[name]
	return ok
}

// Keys returns the set option names in table order.
func (o Options) Keys() []string {
	keys := make([]string, 0, len(o.values))
	for key := range o.values {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		return order[keys[i]] < order[keys[j]]
	})
	return keys
}

// Map returns a snake_case copy of the stored options.
func (o Options) Map() map[string]any {
	out := make(map[string]any, len(o.values))
	for key, value := range o.values {
		out[key] = value
	}
	return out
}

// Merge returns a new Options with overrides applied on top of o.
func (o Options) Merge(overrides Options) Options {
	out := Options{values: make(map[string]any, len(o.values)+len(overrides.values))}
	for key, value := range o.values {
		out.values[key] = value
	}
	for key, value := range overrides.values {
		out.values[key] = value
	}
	return out
}

// With returns a copy with a single option validated and set.
func (o Options) With(name string, value any) (Options, error) {
	next, err := Parse(map[string]any{name: value})
	if err != nil {
		return o, err
	}
	return o.Merge(next), nil
}

// Without returns a copy with the named options removed.
func (o Options) Without(names ...string) Options {
	out := Options{values: make(map[string]any, len(o.values))}
	for key, value := range o.values {
		out.values[key] = value
	}
	for _, name := range names {
		delete(out.values, name)
	}
	return out
}

// IntValue returns an integer option, reporting false when unset or when the
// value is a CSS length string.
func (o Options) IntValue(name string) (int, bool) {
	v, ok := o.values[name]
	if !ok {
		return 0, false
	}
	n, ok := v.(int)
	return n, ok
}

// JS returns the camelCase wavesurfer object for the set options, in table
// order.
func (o Options) JS() Object {
	obj := make(Object, 0, len(o.values))
	for _, key := range o.Keys() {
		spec := bySnake[key]
		obj = append(obj, Field{
			Key:   spec.JSName,
			Value: o.values[key],
			Raw:   spec.Kind == KindRaw,
		})
	}
	return obj
}

// MarshalJSON encodes the snake_case view, primarily for logging and config
// round trips.
func (o Options) MarshalJSON() ([]byte, error) {
	return json.Marshal(o.values)
}

func normalize(spec Spec, value any) (any, error) {
	invalid := func() error {
		return &OptionError{Key: spec.Name, Kind: spec.Kind, Value: value, Err: ErrInvalidValue}
	}

	switch spec.Kind {
	case KindBool:
		if b, ok := value.(bool); ok {
			return b, nil
		}
		return nil, invalid()
	case KindInt:
		if n, ok := asInt(value); ok {
			return n, nil
		}
		return nil, invalid()
	case KindNumber:
		if f, ok := asFloat(value); ok {
			if n, isInt := asInt(value); isInt {
				return n, nil
			}
			return f, nil
		}
		return nil, invalid()
	case KindString, KindRaw:
		if s, ok := value.(string); ok {
			return s, nil
		}
		return nil, invalid()
	case KindColor:
		if s, ok := value.(string); ok {
			return s, nil
		}
		if list, ok := asStringList(value); ok {
			return list, nil
		}
		return nil, invalid()
	case KindDimension:
		if n, ok := asInt(value); ok {
			return n, nil
		}
		if s, ok := value.(string); ok {
			return s, nil
		}
		return nil, invalid()
	case KindObject:
		if m, ok := asObject(value); ok {
			return m, nil
		}
		return nil, invalid()
	case KindBoolOrObject:
		if b, ok := value.(bool); ok {
			return b, nil
		}
		if m, ok := asObject(value); ok {
			return m, nil
		}
		return nil, invalid()
	case KindObjectList:
		if list, ok := asObjectList(value); ok {
			return list, nil
		}
		return nil, invalid()
	}
	return nil, invalid()
}

func asInt(value any) (int, bool) {
	switch v := value.(type) {
	case int:
		return v, true
	case int8:
		return int(v), true
	case int16:
		return int(v), true
	case int32:
		return int(v), true
	case int64:
		return int(v), true
	case uint:
		return int(v), true
	case uint8:
		return int(v), true
	case uint16:
		return int(v), true
	case uint32:
		return int(v), true
	case uint64:
		return int(v), true
	case float32:
		if float64(v) == math.Trunc(float64(v)) {
			return int(v), true
		}
	case float64:
		if v == math.Trunc(v) && !math.IsInf(v, 0) {
			return int(v), true
		}
	case json.Number:
		if n, err := v.Int64(); err == nil {
			return int(n), true
		}
	}
	return 0, false
}

func asFloat(value any) (float64, bool) {
	switch v := value.(type) {
	case float32:
		return float64(v), true
	case float64:
		return v, true
	case json.Number:
		f, err := v.Float64()
		return f, err == nil
	}
	if n, ok := asInt(value); ok {
		return float64(n), true
	}
	return 0, false
}

func asStringList(value any) ([]string, bool) {
	switch v := value.(type) {
	case []string:
		out := make([]string, len(v))
		copy(out, v)
		return out, true
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, false
			}
			out = append(out, s)
		}
		return out, true
	}
	return nil, false
}

func asObject(value any) (map[string]any, bool) {
	if m, ok := value.(map[string]any); ok {
		out := make(map[string]any, len(m))
		for key, v := range m {
			out[key] = v
		}
		return out, true
	}
	rv := reflect.ValueOf(value)
	if rv.Kind() != reflect.Map || rv.Type().Key().Kind() != reflect.String {
		return nil, false
	}
	out := make(map[string]any, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		out[iter.Key().String()] = iter.Value().Interface()
	}
	return out, true
}

func asObjectList(value any) ([]map[string]any, bool) {
	switch v := value.(type) {
	case []map[string]any:
		out := make([]map[string]any, 0, len(v))
		for _, item := range v {
			m, _ := asObject(item)
			out = append(out, m)
		}
		return out, true
	case []any:
		out := make([]map[string]any, 0, len(v))
		for _, item := range v {
			m, ok := asObject(item)
			if !ok {
				return nil, false
			}
			out = append(out, m)
		}
		return out, true
	}
	return nil, false
}
