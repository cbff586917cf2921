package kvline

import (
	"github.com/KimNorgaard/go-kvline/internal/parser"
	"github.com/KimNorgaard/go-kvline/pairs"
)

// Parser parses key=value lines. A Parser is immutable once constructed and
// may be used by multiple goroutines at the same time.
type Parser struct {
	commit parser.Committer
	strict *parser.Strict
}

var defaultParser = NewParser()

// NewParser returns a Parser that accepts any syntactically valid key.
func NewParser() *Parser {
	return &Parser{commit: parser.Permissive{}}
}

// NewStrictParser returns a Parser that rejects keys not listed in
// allowedKeys with an InvalidKey error. When caseSensitive is false, keys are
// compared after lowercasing both sides. An empty allowedKeys rejects every key.
func NewStrictParser(allowedKeys []string, caseSensitive bool) *Parser {
	s := parser.NewStrict(allowedKeys, caseSensitive)
	return &Parser{commit: s, strict: s}
}

// Parse parses input into an ordered mapping. On malformed input it returns
// a *errors.ParseError describing the first fault and no mapping.
func (p *Parser) Parse(input string) (*pairs.Map, error) {
	return parser.Parse(input, p.commit)
}

// Strict reports whether p validates keys against an allow-list.
func (p *Parser) Strict() bool {
	return p.strict != nil
}

// Allows reports whether p would accept key. Permissive parsers accept every key.
func (p *Parser) Allows(key string) bool {
	if p.strict == nil {
		return true
	}
	return p.strict.Allows(key)
}

// Parse parses input with a permissive Parser.
func Parse(input string) (*pairs.Map, error) {
	return defaultParser.Parse(input)
}
