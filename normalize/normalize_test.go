package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFloat(t *testing.T) {
	tests := []struct {
		input string
		want  *float64
	}{
		{"(4.74)", fptr(-4.74)},
		{"1,234.5%", fptr(1234.5)},
		{"--", nil},
		{"-", nil},
		{"", nil},
		{"   ", nil},
		{"312.50", fptr(312.5)},
		{"-4.25", fptr(-4.25)},
		{"91,798.62", fptr(91798.62)},
		{"24.6%", fptr(24.6)},
		{"(1,250.00)", fptr(-1250)},
		{"( 12.5 )", fptr(-12.5)}, // inner whitespace is stripped after the sign flip
		{"N/A", nil},
		{"12.5 Rs", nil},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := Float(tt.input)
			if tt.want == nil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.InDelta(t, *tt.want, *got, 1e-9)
		})
	}
}

func TestInt(t *testing.T) {
	tests := []struct {
		input string
		want  *int64
	}{
		{"1,234,567", iptr(1234567)},
		{"12.9", iptr(12)}, // decimal portion truncated after the float parse
		{"(42)", iptr(-42)},
		{"--", nil},
		{"abc", nil},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := Int(tt.input)
			if tt.want == nil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, *tt.want, *got)
		})
	}
}

func fptr(v float64) *float64 { return &v }
func iptr(v int64) *int64     { return &v }
