package parser

import (
	kverrors "github.com/KimNorgaard/go-kvline/errors"
	"github.com/KimNorgaard/go-kvline/internal/token"
	"github.com/KimNorgaard/go-kvline/pairs"
)

// stateFn handles the character under examination for one state. It consumes
// at most one character and returns the next state.
type stateFn func(c *Context, ch rune) (State, error)

var transitions = [...]stateFn{
	SeekKey:          seekKey,
	InKey:            inKey,
	SeekEquals:       seekEquals,
	SeekValue:        seekValue,
	InUnquotedValue:  inUnquotedValue,
	InQuotedValue:    inQuotedValue,
	AfterQuotedValue: afterQuotedValue,
}

// Parse scans input with the given commit policy and returns the committed
// pairs. Any fault aborts the parse and no partial result is returned.
func Parse(input string, c Committer) (*pairs.Map, error) {
	ctx := NewContext(input, c)
	state := SeekKey
	for !ctx.atEOF() {
		next, err := Step(ctx, state, ctx.current())
		if err != nil {
			return nil, err
		}
		state = next
	}
	if err := Finish(ctx, state); err != nil {
		return nil, err
	}
	return ctx.Result(), nil
}

// Step applies the transition for state on ch.
func Step(c *Context, state State, ch rune) (State, error) {
	return transitions[state](c, ch)
}

// Finish closes the parse at end of input.
func Finish(c *Context, state State) error {
	switch state {
	case InKey, SeekEquals:
		return kverrors.New(kverrors.IncompleteKeyValuePair, c.last())
	case SeekValue:
		return kverrors.WithKey(kverrors.MissingValue, c.Key(), c.last())
	case InQuotedValue:
		return kverrors.WithKey(kverrors.MissingEndQuote, c.Key(), c.last())
	case InUnquotedValue:
		return c.CommitPair()
	default:
		return nil
	}
}

func seekKey(c *Context, ch rune) (State, error) {
	switch token.Classify(ch) {
	case token.Space:
		c.advance()
		return SeekKey, nil
	case token.KeyChar:
		c.AppendToKey(ch)
		c.advance()
		return InKey, nil
	default:
		return SeekKey, kverrors.New(kverrors.MissingKey, c.Position())
	}
}

func inKey(c *Context, ch rune) (State, error) {
	switch token.Classify(ch) {
	case token.Space:
		c.advance()
		return SeekEquals, nil
	case token.KeyChar:
		c.AppendToKey(ch)
		c.advance()
		return InKey, nil
	case token.Equals:
		c.advance()
		return SeekValue, nil
	default:
		return InKey, kverrors.New(kverrors.MissingAssignmentOperator, c.Position())
	}
}

func seekEquals(c *Context, ch rune) (State, error) {
	switch token.Classify(ch) {
	case token.Space:
		c.advance()
		return SeekEquals, nil
	case token.Equals:
		c.advance()
		return SeekValue, nil
	default:
		return SeekEquals, kverrors.New(kverrors.MissingAssignmentOperator, c.Position())
	}
}

func seekValue(c *Context, ch rune) (State, error) {
	switch token.Classify(ch) {
	case token.Space:
		c.advance()
		return SeekValue, nil
	case token.Quote:
		c.advance()
		return InQuotedValue, nil
	default:
		c.AppendToValue(ch)
		c.advance()
		return InUnquotedValue, nil
	}
}

func inUnquotedValue(c *Context, ch rune) (State, error) {
	if token.Classify(ch) == token.Space {
		if err := c.CommitPair(); err != nil {
			return InUnquotedValue, err
		}
		c.advance()
		return SeekKey, nil
	}
	c.AppendToValue(ch)
	c.advance()
	return InUnquotedValue, nil
}

func inQuotedValue(c *Context, ch rune) (State, error) {
	if token.Classify(ch) == token.Quote {
		if err := c.CommitPair(); err != nil {
			return InQuotedValue, err
		}
		c.advance()
		return AfterQuotedValue, nil
	}
	c.AppendToValue(ch)
	c.advance()
	return InQuotedValue, nil
}

// afterQuotedValue lets a character that directly follows a closing quote
// start the next pair.
func afterQuotedValue(c *Context, ch rune) (State, error) {
	if token.Classify(ch) == token.Space {
		c.advance()
		return SeekKey, nil
	}
	return seekKey(c, ch)
}
