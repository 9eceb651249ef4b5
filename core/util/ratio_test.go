package util

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewRatio(t *testing.T) {
	r, err := NewRatio(RatioDenominator)
	require.NoError(t, err)
	require.Equal(t, RatioDenominator, r.Numerator())

	_, err = NewRatio(RatioDenominator + 1)
	require.Error(t, err)
}

func TestParseRatio(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		want        uint64
		expectError bool
	}{
		{name: "one half", input: "0.5", want: RatioDenominator / 2},
		{name: "zero", input: "0", want: 0},
		{name: "one", input: "1", want: RatioDenominator},
		{name: "full precision", input: "0.000000000000000001", want: 1},
		{name: "quarter", input: "0.25", want: RatioDenominator / 4},
		{name: "above one", input: "1.1", expectError: true},
		{name: "negative", input: "-0.5", expectError: true},
		{name: "too precise", input: "0.0000000000000000001", expectError: true},
		{name: "not a number", input: "half", expectError: true},
		{name: "empty", input: "", expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := ParseRatio(tt.input)
			if tt.expectError {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, r.Numerator())
		})
	}
}

func TestRatioString(t *testing.T) {
	tests := []struct {
		ratio Ratio
		want  string
	}{
		{DefaultRatio, "0.5"},
		{Ratio(0), "0"},
		{Ratio(RatioDenominator), "1"},
		{Ratio(RatioDenominator / 4), "0.25"},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, tt.ratio.String())
	}
}

func TestParseRatioRoundTrips(t *testing.T) {
	for _, s := range []string{"0.5", "0.25", "1", "0"} {
		r, err := ParseRatio(s)
		require.NoError(t, err)
		require.Equal(t, s, r.String())
	}
}
