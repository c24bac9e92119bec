package scheme

import (
	"fmt"
	"strings"
)

const (
	attrSeparator = ";"
	attrAssign    = "="
)

// Attr is one style attribute.
type Attr struct {
	Key   string
	Value string
}

// StyleSpec is an ordered attribute table attached to a dataset as a single
// `key=value; key=value` string.
type StyleSpec []Attr

// String serializes the spec in declaration order.
func (s StyleSpec) String() string {
	var b strings.Builder
	for i, a := range s {
		if i > 0 {
			b.WriteString(attrSeparator)
			b.WriteByte(' ')
		}
		b.WriteString(a.Key)
		b.WriteString(attrAssign)
		b.WriteString(a.Value)
	}
	return b.String()
}

// Get returns the value of the last attribute named key.
func (s StyleSpec) Get(key string) (string, bool) {
	for i := len(s) - 1; i >= 0; i-- {
		if s[i].Key == key {
			return s[i].Value, true
		}
	}
	return "", false
}

// Keys returns attribute names in order.
func (s StyleSpec) Keys() []string {
	keys := make([]string, 0, len(s))
	for _, a := range s {
		keys = append(keys, a.Key)
	}
	return keys
}

// Clone returns a copy that shares nothing with s.
func (s StyleSpec) Clone() StyleSpec {
	if s == nil {
		return nil
	}
	out := make(StyleSpec, len(s))
	copy(out, s)
	return out
}

// ParseStyle reads a `key=value; key=value` string. Empty segments are
// skipped; a segment without '=' or with an empty key is an error.
func ParseStyle(raw string) (StyleSpec, error) {
	var spec StyleSpec
	for i, segment := range strings.Split(raw, attrSeparator) {
		segment = strings.TrimSpace(segment)
		if segment == "" {
			continue
		}
		key, value, ok := strings.Cut(segment, attrAssign)
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf("style segment %d: expected key=value, got %q", i+1, segment)
		}
		spec = append(spec, Attr{Key: key, Value: strings.TrimSpace(value)})
	}
	return spec, nil
}
