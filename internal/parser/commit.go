package parser

import (
	"slices"

	kverrors "github.com/KimNorgaard/go-kvline/errors"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Committer decides whether the pair accumulated in a Context may be stored.
// Implementations must be safe for concurrent use; all per-parse state lives
// in the Context.
type Committer interface {
	Commit(c *Context) error
}

// Permissive accepts every pair.
type Permissive struct{}

func (Permissive) Commit(c *Context) error {
	c.store()
	return nil
}

// Strict accepts only keys from a fixed allow-list.
type Strict struct {
	allowed       []string
	caseSensitive bool
}

// NewStrict returns a Strict committer for allowed. The slice is copied.
// An empty allow-list rejects every key.
func NewStrict(allowed []string, caseSensitive bool) *Strict {
	s := &Strict{caseSensitive: caseSensitive}
	for _, k := range allowed {
		if !caseSensitive {
			k = lower(k)
		}
		s.allowed = append(s.allowed, k)
	}
	return s
}

func (s *Strict) Commit(c *Context) error {
	if !s.Allows(c.Key()) {
		return kverrors.WithKey(kverrors.InvalidKey, c.Key(), c.KeyStart())
	}
	c.store()
	return nil
}

// Allows reports whether key is in the allow-list.
func (s *Strict) Allows(key string) bool {
	if !s.caseSensitive {
		key = lower(key)
	}
	return slices.Contains(s.allowed, key)
}

// lower builds a new Caser per call because Casers are not safe for
// concurrent use.
func lower(s string) string {
	return cases.Lower(language.Und).String(s)
}
