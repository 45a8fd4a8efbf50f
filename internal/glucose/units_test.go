package glucose

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToCanonical(t *testing.T) {
	tests := []struct {
		mmol float64
		mgdl int
	}{
		{5.5, 99},
		{5.6, 101}, // 100.8 rounds up
		{7.0, 126},
		{3.9, 70},  // 70.2 rounds down
		{2.0, 36},
		{40.0, 720},
		{6.25, 113}, // 112.5, half rounds away from zero
	}
	for _, tt := range tests {
		assert.Equal(t, tt.mgdl, ToCanonical(tt.mmol), "ToCanonical(%v)", tt.mmol)
	}
}

func TestFromCanonicalUnrounded(t *testing.T) {
	assert.InDelta(t, 5.5, FromCanonical(99), 1e-9)
	assert.InDelta(t, 5.555555, FromCanonical(100), 1e-5)
}

func TestConversionRoundTrip(t *testing.T) {
	// Converting to canonical and back moves a value by at most one
	// rounding step of the canonical unit.
	step := 0.5 / MgdlPerMmol
	for v := 2.0; v <= 40.0; v += 0.1 {
		back := FromCanonical(ToCanonical(v))
		assert.LessOrEqual(t, math.Abs(back-v), step+1e-9, "round trip of %v drifted to %v", v, back)
	}
}
