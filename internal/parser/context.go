package parser

import (
	"strings"
	"unicode/utf8"

	"github.com/KimNorgaard/go-kvline/pairs"
)

// Context holds the mutable scan state of a single parse. It is the only
// writer of the resulting pairs.Map and must not be shared between parses.
type Context struct {
	src      string
	off      int // byte offset of the character under examination
	pos      int // rune index of the character under examination
	keyStart int // index of the first character of the current key
	key      strings.Builder
	value    strings.Builder
	result   *pairs.Map
	commit   Committer
}

// NewContext returns a Context positioned at the start of input.
func NewContext(input string, c Committer) *Context {
	if c == nil {
		c = Permissive{}
	}
	return &Context{
		src:    input,
		result: pairs.New(),
		commit: c,
	}
}

// AppendToKey appends ch to the key being read. The first character of a key
// records where the key began.
func (c *Context) AppendToKey(ch rune) {
	if c.key.Len() == 0 {
		c.keyStart = c.pos
	}
	c.write(&c.key, ch)
}

// AppendToValue appends ch to the value being read.
func (c *Context) AppendToValue(ch rune) {
	c.write(&c.value, ch)
}

// write appends ch to b. A byte that is not valid UTF-8 is copied from the
// input unchanged rather than stored as utf8.RuneError.
func (c *Context) write(b *strings.Builder, ch rune) {
	if ch == utf8.RuneError && !c.atEOF() {
		if r, w := utf8.DecodeRuneInString(c.src[c.off:]); r == utf8.RuneError && w == 1 {
			b.WriteByte(c.src[c.off])
			return
		}
	}
	b.WriteRune(ch)
}

// ResetKeysAndValues clears both buffers.
func (c *Context) ResetKeysAndValues() {
	c.key.Reset()
	c.value.Reset()
}

// CommitPair hands the accumulated pair to the commit policy.
func (c *Context) CommitPair() error {
	return c.commit.Commit(c)
}

// store writes the accumulated pair into the result and resets the buffers.
func (c *Context) store() {
	c.result.Set(c.key.String(), c.value.String())
	c.ResetKeysAndValues()
}

// Len returns the number of pairs committed so far.
func (c *Context) Len() int {
	return c.result.Len()
}

// Key returns the key accumulated so far.
func (c *Context) Key() string {
	return c.key.String()
}

// Value returns the value accumulated so far.
func (c *Context) Value() string {
	return c.value.String()
}

// Position returns the index of the character under examination.
func (c *Context) Position() int {
	return c.pos
}

// KeyStart returns the index at which the current key began.
func (c *Context) KeyStart() int {
	return c.keyStart
}

// Result returns the pairs committed so far.
func (c *Context) Result() *pairs.Map {
	return c.result
}

func (c *Context) atEOF() bool {
	return c.off >= len(c.src)
}

func (c *Context) current() rune {
	r, _ := utf8.DecodeRuneInString(c.src[c.off:])
	return r
}

func (c *Context) advance() {
	_, w := utf8.DecodeRuneInString(c.src[c.off:])
	c.off += w
	c.pos++
}

// last returns the index of the last consumed character.
func (c *Context) last() int {
	if c.pos == 0 {
		return 0
	}
	return c.pos - 1
}
