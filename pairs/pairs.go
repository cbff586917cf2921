// Package pairs provides the ordered key/value mapping produced by kvline.
package pairs

import (
	"fmt"
	"iter"
	"maps"
	"strings"

	"github.com/KimNorgaard/go-kvline/internal/token"
)

// Map is an ordered mapping from key to value. Keys are unique; setting an
// existing key replaces its value but keeps its original position.
//
// The zero value is an empty map ready to use.
type Map struct {
	keys   []string
	values map[string]string
}

// New returns an empty Map.
func New() *Map {
	return &Map{values: make(map[string]string)}
}

// Set stores value under key.
func (m *Map) Set(key, value string) {
	if m.values == nil {
		m.values = make(map[string]string)
	}
	if _, ok := m.values[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.values[key] = value
}

// Get returns the value stored under key and whether it was present.
func (m *Map) Get(key string) (string, bool) {
	v, ok := m.values[key]
	return v, ok
}

// Value returns the value stored under key, or "" if absent.
func (m *Map) Value(key string) string {
	return m.values[key]
}

// Has reports whether key is present.
func (m *Map) Has(key string) bool {
	_, ok := m.values[key]
	return ok
}

// Len returns the number of distinct keys.
func (m *Map) Len() int {
	return len(m.keys)
}

// Keys returns the keys in insertion order.
func (m *Map) Keys() []string {
	out := make([]string, len(m.keys))
	copy(out, m.keys)
	return out
}

// All returns an iterator over the pairs in insertion order.
func (m *Map) All() iter.Seq2[string, string] {
	return func(yield func(string, string) bool) {
		for _, k := range m.keys {
			if !yield(k, m.values[k]) {
				return
			}
		}
	}
}

// ToMap returns the pairs as a plain Go map.
func (m *Map) ToMap() map[string]string {
	out := make(map[string]string, len(m.keys))
	maps.Copy(out, m.values)
	return out
}

// Equal reports whether m and other hold the same pairs in the same order.
// A nil other is never equal.
func (m *Map) Equal(other *Map) bool {
	if other == nil || m.Len() != other.Len() {
		return false
	}
	for i, k := range m.keys {
		if other.keys[i] != k || other.values[k] != m.values[k] {
			return false
		}
	}
	return true
}

// MarshalText returns the canonical single-line encoding of m, which parses
// back into an equal Map. Values are double-quoted unless they contain a
// quote, in which case they are written bare.
func (m *Map) MarshalText() ([]byte, error) {
	var sb strings.Builder
	for i, k := range m.keys {
		if i > 0 {
			sb.WriteByte(' ')
		}
		if err := writePair(&sb, k, m.values[k]); err != nil {
			return nil, err
		}
	}
	return []byte(sb.String()), nil
}

// String returns the canonical encoding of m. Pairs that cannot be encoded
// are rendered with %q so the output is still readable.
func (m *Map) String() string {
	b, err := m.MarshalText()
	if err == nil {
		return string(b)
	}
	var sb strings.Builder
	for i, k := range m.keys {
		if i > 0 {
			sb.WriteByte(' ')
		}
		fmt.Fprintf(&sb, "%s=%q", k, m.values[k])
	}
	return sb.String()
}

func writePair(sb *strings.Builder, key, value string) error {
	if !validKey(key) {
		return fmt.Errorf("pairs: cannot encode key %q", key)
	}
	sb.WriteString(key)
	sb.WriteByte('=')
	if !strings.ContainsRune(value, '"') {
		sb.WriteByte('"')
		sb.WriteString(value)
		sb.WriteByte('"')
		return nil
	}
	// A bare value ends at the first space and cannot open with a quote.
	if value[0] == '"' || strings.IndexFunc(value, func(r rune) bool {
		return token.Classify(r) == token.Space
	}) >= 0 {
		return fmt.Errorf("pairs: cannot encode value %q for key %q", value, key)
	}
	sb.WriteString(value)
	return nil
}

func validKey(key string) bool {
	if key == "" {
		return false
	}
	for _, r := range key {
		if !token.IsKeyChar(r) {
			return false
		}
	}
	return true
}
