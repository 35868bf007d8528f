package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePriceARS(t *testing.T) {
	tests := []struct {
		name  string
		input interface{}
		want  float64
	}{
		{"argentine thousands and decimal comma", "15.000,50", 15000.50},
		{"plain integer string", "1500", 1500},
		{"comma decimal only", "99,9", 99.9},
		{"json number", float64(12345.678), 12345.68},
		{"rounds half up at the cent", "0,125", 0.13},
		{"multiple thousands groups", "1.234.567,89", 1234567.89},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParsePriceARS(tt.input)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestParsePriceARS_Rejected(t *testing.T) {
	// 0.004 is positive before rounding but lands on 0.00 at the cent.
	for _, input := range []interface{}{float64(0), float64(-10), "0", "-10", float64(0.004), "0,004", "abc", "", nil, true} {
		_, err := ParsePriceARS(input)
		require.Error(t, err, "input %v", input)
		var vErr *ValidationError
		assert.ErrorAs(t, err, &vErr, "input %v", input)
	}
}

func TestParseETAHours(t *testing.T) {
	tests := []struct {
		name  string
		input interface{}
		want  int
	}{
		{"comma decimal rounds to nearest", "3,5", 4},
		{"plain number", float64(24), 24},
		{"clamps to max", float64(5000), 720},
		{"clamps to max from string", "5.000", 720},
		{"sub-hour clamps to min", float64(0.4), 1},
		{"exact bounds stay", float64(720), 720},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseETAHours(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseETAHours_Rejected(t *testing.T) {
	for _, input := range []interface{}{float64(0), float64(-3), "0", "nope", nil} {
		_, err := ParseETAHours(input)
		require.Error(t, err, "input %v", input)
		var vErr *ValidationError
		assert.ErrorAs(t, err, &vErr, "input %v", input)
	}
}

func TestFormatARS(t *testing.T) {
	assert.Equal(t, "$ 15.000,50", FormatARS(15000.50))
	assert.Equal(t, "$ 999,00", FormatARS(999))
	assert.Equal(t, "$ 1.234.567,89", FormatARS(1234567.89))
	assert.Equal(t, "$ 0,99", FormatARS(0.99))
}
