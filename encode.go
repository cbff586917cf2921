package kvline

import (
	"encoding"
	"fmt"
	"maps"
	"reflect"
	"slices"
	"strconv"
	"time"

	"github.com/KimNorgaard/go-kvline/internal/mapper"
	"github.com/KimNorgaard/go-kvline/pairs"
)

var textMarshalerType = reflect.TypeFor[encoding.TextMarshaler]()

// An UnsupportedTypeError is returned by Marshal when attempting to encode
// a value of a type that has no single-line representation.
type UnsupportedTypeError struct {
	Type reflect.Type
}

func (e *UnsupportedTypeError) Error() string {
	return "kvline: unsupported type: " + e.Type.String()
}

// Marshal returns the canonical key=value line for v, which parses back into
// the same pairs.
//
// v may be a struct, a map with string keys and values (written in sorted
// key order), or a pairs.Map. Struct fields use the same `kv` tags as
// Unmarshal; the "omitempty" option skips zero values. Field values are
// formatted with encoding.TextMarshaler when implemented, otherwise with
// strconv.
func Marshal(v any) ([]byte, error) {
	m, err := toPairs(reflect.ValueOf(v))
	if err != nil {
		return nil, err
	}
	return m.MarshalText()
}

func toPairs(rv reflect.Value) (*pairs.Map, error) {
	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return nil, fmt.Errorf("kvline: Marshal(nil)")
		}
		rv = rv.Elem()
	}
	if !rv.IsValid() {
		return nil, fmt.Errorf("kvline: Marshal(nil)")
	}

	m := pairs.New()
	if rv.Type() == pairsMapType {
		src := rv.Interface().(pairs.Map)
		for k, v := range src.All() {
			m.Set(k, v)
		}
		return m, nil
	}

	switch rv.Kind() {
	case reflect.Struct:
		for _, f := range mapper.Fields(rv.Type()) {
			fv := rv.FieldByIndex(f.Index)
			if f.OmitEmpty && fv.IsZero() {
				continue
			}
			s, err := formatValue(fv)
			if err != nil {
				return nil, err
			}
			m.Set(f.Name, s)
		}
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String || rv.Type().Elem().Kind() != reflect.String {
			return nil, &UnsupportedTypeError{Type: rv.Type()}
		}
		values := make(map[string]string, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			values[iter.Key().String()] = iter.Value().String()
		}
		for _, k := range slices.Sorted(maps.Keys(values)) {
			m.Set(k, values[k])
		}
	default:
		return nil, &UnsupportedTypeError{Type: rv.Type()}
	}
	return m, nil
}

func formatValue(rv reflect.Value) (string, error) {
	if rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return "", nil
		}
		rv = rv.Elem()
	}

	if rv.Type().Implements(textMarshalerType) || reflect.PointerTo(rv.Type()).Implements(textMarshalerType) {
		pv := reflect.New(rv.Type())
		pv.Elem().Set(rv)
		b, err := pv.Interface().(encoding.TextMarshaler).MarshalText()
		if err != nil {
			return "", fmt.Errorf("kvline: error calling MarshalText for type %s: %w", rv.Type(), err)
		}
		return string(b), nil
	}

	if rv.Type() == durationType {
		return time.Duration(rv.Int()).String(), nil
	}

	switch rv.Kind() {
	case reflect.String:
		return rv.String(), nil
	case reflect.Bool:
		return strconv.FormatBool(rv.Bool()), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(rv.Int(), 10), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return strconv.FormatUint(rv.Uint(), 10), nil
	case reflect.Float32, reflect.Float64:
		return strconv.FormatFloat(rv.Float(), 'g', -1, rv.Type().Bits()), nil
	default:
		return "", &UnsupportedTypeError{Type: rv.Type()}
	}
}
