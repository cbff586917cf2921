package kvline

import (
	"reflect"
	"strconv"
)

// An UnmarshalTypeError describes a value that could not be converted to the
// type of the Go value it was destined for.
type UnmarshalTypeError struct {
	Key   string
	Value string
	Type  reflect.Type
	Err   error
}

func (e *UnmarshalTypeError) Error() string {
	msg := "kvline: cannot unmarshal " + strconv.Quote(e.Value) + " for key " + strconv.Quote(e.Key) +
		" into Go value of type " + e.Type.String()
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *UnmarshalTypeError) Unwrap() error { return e.Err }
