package token

import "unicode"

// Class is the lexical class of a single input character.
type Class int

const (
	// Other is any character without a dedicated class below.
	Other Class = iota
	// Space is any Unicode white space character.
	Space
	// KeyChar is an ASCII letter, digit or underscore.
	KeyChar
	// Equals is the assignment operator '='.
	Equals
	// Quote is the value delimiter '"'.
	Quote
)

var classNames = [...]string{
	Other:   "OTHER",
	Space:   "SPACE",
	KeyChar: "KEYCHAR",
	Equals:  "=",
	Quote:   `"`,
}

func (c Class) String() string {
	if c >= 0 && int(c) < len(classNames) {
		return classNames[c]
	}
	return "ILLEGAL"
}

// Classify returns the lexical class of ch.
func Classify(ch rune) Class {
	switch {
	case ch == '=':
		return Equals
	case ch == '"':
		return Quote
	case IsKeyChar(ch):
		return KeyChar
	case unicode.IsSpace(ch):
		return Space
	default:
		return Other
	}
}

// IsKeyChar reports whether ch may appear in a key.
func IsKeyChar(ch rune) bool {
	return ('a' <= ch && ch <= 'z') || ('A' <= ch && ch <= 'Z') || ('0' <= ch && ch <= '9') || ch == '_'
}
