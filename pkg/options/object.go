package options

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Field is a single property of a JavaScript object literal. Raw fields are
// written verbatim (callbacks); all other values are JSON encoded.
type Field struct {
	Key   string
	Value any
	Raw   bool
}

// Object is an ordered JavaScript object literal.
type Object []Field

// Get returns the value stored under key.
func (o Object) Get(key string) (any, bool) {
	for _, field := range o {
		if field.Key == key {
			return field.Value, true
		}
	}
	return nil, false
}

// Has reports whether key is present.
func (o Object) Has(key string) bool {
	_, ok := o.Get(key)
	return ok
}

// Set replaces key in place or appends it when missing.
func (o Object) Set(key string, value any) Object {
	for i, field := range o {
		if field.Key == key {
			out := make(Object, len(o))
			copy(out, o)
			out[i] = Field{Key: key, Value: value}
			return out
		}
	}
	out := make(Object, len(o), len(o)+1)
	copy(out, o)
	return append(out, Field{Key: key, Value: value})
}

// SetDefault appends key only when it is not already present.
func (o Object) SetDefault(key string, value any) Object {
	if o.Has(key) {
		return o
	}
	return o.Set(key, value)
}

// MarshalJS encodes the object as a JavaScript literal. The output is valid
// JSON unless a raw field is present. JSON encoding escapes <, > and & so the
// literal is safe inside an inline script element.
func (o Object) MarshalJS() (string, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, field := range o {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(field.Key)
		if err != nil {
			return "", fmt.Errorf("options: encode key %q: %w", field.Key, err)
		}
		buf.Write(key)
		buf.WriteByte(':')
		if field.Raw {
			src, ok := field.Value.(string)
			if !ok {
				return "", fmt.Errorf("options: raw field %q must be a string", field.Key)
			}
			buf.WriteString(src)
			continue
		}
		value, err := json.Marshal(field.Value)
		if err != nil {
			return "", fmt.Errorf("options: encode %q: %w", field.Key, err)
		}
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.String(), nil
}

// MarshalJSON implements json.Marshaler. Raw fields are encoded as strings.
func (o Object) MarshalJSON() ([]byte, error) {
	plain := make(Object, len(o))
	for i, field := range o {
		plain[i] = Field{Key: field.Key, Value: field.Value}
	}
	out, err := plain.MarshalJS()
	if err != nil {
		return nil, err
	}
	return []byte(out), nil
}
