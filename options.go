package kvline

import "fmt"

// Option configures Unmarshal.
type Option func(*options) error

type options struct {
	allow           []string
	strict          bool
	knownFields     bool
	caseInsensitive bool
}

// AllowKeys returns an Option that rejects every key not in keys with an
// InvalidKey error. It may be combined with KnownFields.
func AllowKeys(keys ...string) Option {
	return func(o *options) error {
		if len(keys) == 0 {
			return fmt.Errorf("kvline: AllowKeys requires at least one key")
		}
		for _, k := range keys {
			if k == "" {
				return fmt.Errorf("kvline: AllowKeys does not accept an empty key")
			}
		}
		o.allow = append(o.allow, keys...)
		o.strict = true
		return nil
	}
}

// KnownFields returns an Option that rejects keys that do not map to a field
// of the destination struct.
func KnownFields() Option {
	return func(o *options) error {
		o.knownFields = true
		o.strict = true
		return nil
	}
}

// CaseInsensitive returns an Option that compares keys against the
// allow-list without regard to case.
func CaseInsensitive() Option {
	return func(o *options) error {
		o.caseInsensitive = true
		return nil
	}
}
