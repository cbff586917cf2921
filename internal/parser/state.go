package parser

import "fmt"

// State is the parser's current expectation about the next character.
type State int

const (
	SeekKey State = iota
	InKey
	SeekEquals
	SeekValue
	InUnquotedValue
	InQuotedValue
	AfterQuotedValue
)

var stateNames = [...]string{
	SeekKey:          "SeekKey",
	InKey:            "InKey",
	SeekEquals:       "SeekEquals",
	SeekValue:        "SeekValue",
	InUnquotedValue:  "InUnquotedValue",
	InQuotedValue:    "InQuotedValue",
	AfterQuotedValue: "AfterQuotedValue",
}

func (s State) String() string {
	if s >= 0 && int(s) < len(stateNames) {
		return stateNames[s]
	}
	return fmt.Sprintf("State(%d)", int(s))
}
