package token

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		input    rune
		expected Class
	}{
		{'a', KeyChar},
		{'Z', KeyChar},
		{'7', KeyChar},
		{'_', KeyChar},
		{' ', Space},
		{'\t', Space},
		{'\n', Space},
		{'\u00a0', Space},
		{'=', Equals},
		{'"', Quote},
		{'\'', Other},
		{'-', Other},
		{'é', Other},
	}

	for _, tt := range tests {
		t.Run(string(tt.input), func(t *testing.T) {
			require.Equal(t, tt.expected, Classify(tt.input))
		})
	}
}

func TestClassString(t *testing.T) {
	require.Equal(t, "KEYCHAR", KeyChar.String())
	require.Equal(t, `"`, Quote.String())
	require.Equal(t, "ILLEGAL", Class(99).String())
}
