package errors_test

import (
	"errors"
	"fmt"
	"testing"

	kverrors "github.com/KimNorgaard/go-kvline/errors"
	"github.com/stretchr/testify/require"
)

func TestParseError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *kverrors.ParseError
		expected string
	}{
		{"without key", kverrors.New(kverrors.MissingKey, 0), "kvline: missing key at position 0"},
		{"with key", kverrors.WithKey(kverrors.MissingValue, "key", 3), `kvline: missing value at position 3 (key "key")`},
		{"invalid key", kverrors.WithKey(kverrors.InvalidKey, "other", 0), `kvline: invalid key at position 0 (key "other")`},
		{"unknown kind", kverrors.New(kverrors.Kind(42), 1), "kvline: Kind(42) at position 1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.EqualError(t, tt.err, tt.expected)
		})
	}
}

func TestParseError_Is(t *testing.T) {
	err := fmt.Errorf("line 1: %w", kverrors.New(kverrors.MissingEndQuote, 9))

	require.ErrorIs(t, err, kverrors.ErrMissingEndQuote)
	require.NotErrorIs(t, err, kverrors.ErrMissingValue)

	var pe *kverrors.ParseError
	require.True(t, errors.As(err, &pe))
	require.Equal(t, 9, pe.Position)
	require.Empty(t, pe.Key)
}
