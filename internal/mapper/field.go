package mapper

import (
	"reflect"
	"strings"
	"sync"
)

// Field represents a cached struct field that a key can be stored in.
type Field struct {
	Name      string
	Index     []int
	Tagged    bool
	OmitEmpty bool
}

// fieldCache caches the fields of each struct type seen by Fields.
var fieldCache sync.Map

// Fields returns the settable fields of struct type t in declaration order.
// It skips unexported and embedded fields and fields tagged with `kv:"-"`.
func Fields(t reflect.Type) []Field {
	if f, ok := fieldCache.Load(t); ok {
		return f.([]Field)
	}

	var fields []Field
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if sf.Anonymous || !sf.IsExported() {
			continue
		}

		tag := sf.Tag.Get("kv")
		if tag == "-" {
			continue
		}

		f := Field{Index: sf.Index}
		name, opts, _ := strings.Cut(tag, ",")
		if name != "" {
			f.Name = name
			f.Tagged = true
		} else {
			f.Name = sf.Name
		}

		for opts != "" {
			var opt string
			opt, opts, _ = strings.Cut(opts, ",")
			if opt == "omitempty" {
				f.OmitEmpty = true
			}
		}
		fields = append(fields, f)
	}

	f, _ := fieldCache.LoadOrStore(t, fields)
	return f.([]Field)
}

// Lookup finds the field for key, preferring an exact name match over a
// case-insensitive one.
func Lookup(fields []Field, key string) (Field, bool) {
	for _, f := range fields {
		if f.Name == key {
			return f, true
		}
	}
	for _, f := range fields {
		if strings.EqualFold(f.Name, key) {
			return f, true
		}
	}
	return Field{}, false
}

// Names returns the key names of fields.
func Names(fields []Field) []string {
	names := make([]string, len(fields))
	for i, f := range fields {
		names[i] = f.Name
	}
	return names
}
