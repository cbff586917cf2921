package kvline

import (
	"encoding"
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"time"

	"github.com/KimNorgaard/go-kvline/internal/mapper"
	"github.com/KimNorgaard/go-kvline/pairs"
)

var (
	textUnmarshalerType = reflect.TypeFor[encoding.TextUnmarshaler]()
	durationType        = reflect.TypeFor[time.Duration]()
	pairsMapType        = reflect.TypeFor[pairs.Map]()
)

// Unmarshal parses line and stores the result in the value pointed to by v.
//
// v must be a non-nil pointer to a struct, a map[string]string or a
// pairs.Map. Struct fields are matched by their `kv` tag, falling back to
// the field name; an exact match is preferred over a case-insensitive one.
// Keys without a matching field are ignored unless KnownFields is set.
//
// Supported field types are strings, booleans, integers, floats,
// time.Duration, pointers to those, and types implementing
// encoding.TextUnmarshaler.
func Unmarshal(line string, v any, opts ...Option) error {
	var o options
	for _, opt := range opts {
		if err := opt(&o); err != nil {
			return err
		}
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return fmt.Errorf("kvline: Unmarshal(non-pointer %T or nil)", v)
	}
	rv = rv.Elem()

	var fields []mapper.Field
	switch {
	case rv.Type() == pairsMapType:
	case rv.Kind() == reflect.Struct:
		fields = mapper.Fields(rv.Type())
	case rv.Kind() == reflect.Map && rv.Type().Key().Kind() == reflect.String && rv.Type().Elem().Kind() == reflect.String:
	default:
		return fmt.Errorf("kvline: cannot unmarshal into Go value of type %s", rv.Type())
	}

	if o.knownFields && rv.Kind() != reflect.Struct {
		return fmt.Errorf("kvline: KnownFields requires a struct, got %s", rv.Type())
	}

	m, err := o.parser(fields).Parse(line)
	if err != nil {
		return err
	}

	switch {
	case rv.Type() == pairsMapType:
		rv.Set(reflect.ValueOf(m).Elem())
		return nil
	case rv.Kind() == reflect.Map:
		return decodeMap(m, rv)
	default:
		return decodeStruct(m, fields, rv)
	}
}

func (o *options) parser(fields []mapper.Field) *Parser {
	if !o.strict {
		return defaultParser
	}
	allow := o.allow
	if o.knownFields {
		allow = append(mapper.Names(fields), allow...)
	}
	return NewStrictParser(allow, !o.caseInsensitive)
}

func decodeMap(m *pairs.Map, rv reflect.Value) error {
	if rv.IsNil() {
		rv.Set(reflect.MakeMapWithSize(rv.Type(), m.Len()))
	}
	for k, v := range m.All() {
		rv.SetMapIndex(reflect.ValueOf(k).Convert(rv.Type().Key()), reflect.ValueOf(v).Convert(rv.Type().Elem()))
	}
	return nil
}

func decodeStruct(m *pairs.Map, fields []mapper.Field, rv reflect.Value) error {
	for k, v := range m.All() {
		f, ok := mapper.Lookup(fields, k)
		if !ok {
			continue
		}
		if err := setValue(rv.FieldByIndex(f.Index), k, v); err != nil {
			return err
		}
	}
	return nil
}

func setValue(rv reflect.Value, key, s string) error { //nolint:gocyclo
	if rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			rv.Set(reflect.New(rv.Type().Elem()))
		}
		return setValue(rv.Elem(), key, s)
	}

	if rv.CanAddr() && rv.Addr().Type().Implements(textUnmarshalerType) {
		u := rv.Addr().Interface().(encoding.TextUnmarshaler)
		if err := u.UnmarshalText([]byte(s)); err != nil {
			return &UnmarshalTypeError{Key: key, Value: s, Type: rv.Type(), Err: err}
		}
		return nil
	}

	if rv.Type() == durationType {
		d, err := time.ParseDuration(s)
		if err != nil {
			return &UnmarshalTypeError{Key: key, Value: s, Type: rv.Type(), Err: err}
		}
		rv.SetInt(int64(d))
		return nil
	}

	switch rv.Kind() {
	case reflect.String:
		rv.SetString(s)
	case reflect.Bool:
		b, err := strconv.ParseBool(s)
		if err != nil {
			return typeError(key, s, rv, err)
		}
		rv.SetBool(b)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		i, err := strconv.ParseInt(s, 10, rv.Type().Bits())
		if err != nil {
			return typeError(key, s, rv, err)
		}
		rv.SetInt(i)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		u, err := strconv.ParseUint(s, 10, rv.Type().Bits())
		if err != nil {
			return typeError(key, s, rv, err)
		}
		rv.SetUint(u)
	case reflect.Float32, reflect.Float64:
		f, err := strconv.ParseFloat(s, rv.Type().Bits())
		if err != nil {
			return typeError(key, s, rv, err)
		}
		rv.SetFloat(f)
	default:
		return &UnmarshalTypeError{Key: key, Value: s, Type: rv.Type(), Err: errors.New("unsupported type")}
	}
	return nil
}

// typeError unwraps strconv's NumError so messages don't repeat the input.
func typeError(key, s string, rv reflect.Value, err error) error {
	var ne *strconv.NumError
	if errors.As(err, &ne) {
		err = ne.Err
	}
	return &UnmarshalTypeError{Key: key, Value: s, Type: rv.Type(), Err: err}
}
