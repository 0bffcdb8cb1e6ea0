package chartrange

import (
	"math"
	"testing"

	"github.com/eco-tools/cpi-pulse/pkg/models/domain"
	"github.com/stretchr/testify/assert"
)

func TestCompute(t *testing.T) {
	tests := []struct {
		name     string
		series   [][]float64
		expected domain.DisplayRange
	}{
		{
			name:     "no values falls back",
			series:   nil,
			expected: domain.DisplayRange{Min: -1, Max: 5},
		},
		{
			name:     "only extreme and invalid values falls back",
			series:   [][]float64{{math.NaN(), math.Inf(1), 1500, -2000}},
			expected: domain.DisplayRange{Min: -1, Max: 5},
		},
		{
			name:     "flat series centers around the value",
			series:   [][]float64{{1, 1, 1}},
			expected: domain.DisplayRange{Min: 0, Max: 2},
		},
		{
			name:   "narrow span uses the minimum margin",
			series: [][]float64{{2, 3}},
			// Span 1 with proportional margin 0.15 is below the 0.5 floor;
			// the padded floor then drops to keep zero visible.
			expected: domain.DisplayRange{Min: -0.2, Max: 3.5},
		},
		{
			name:     "wide span pads proportionally",
			series:   [][]float64{{-5, 5}},
			expected: domain.DisplayRange{Min: -6.5, Max: 6.5},
		},
		{
			name:   "all positive values pull the floor below zero",
			series: [][]float64{{4, 5, 6}},
			// Padded floor 3.5 sits above zero, so it drops to -0.2.
			expected: domain.DisplayRange{Min: -0.2, Max: 6.5},
		},
		{
			name:     "all negative values pull the ceiling above zero",
			series:   [][]float64{{-6, -5, -4}},
			expected: domain.DisplayRange{Min: -6.5, Max: 0.2},
		},
		{
			name:     "extreme values are excluded from pooling",
			series:   [][]float64{{2, 3, 1200}},
			expected: domain.DisplayRange{Min: -0.2, Max: 3.5},
		},
		{
			name:     "multiple series pool together",
			series:   [][]float64{{-1, 0}, {4}},
			expected: domain.DisplayRange{Min: -1.75, Max: 4.75},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := Compute(tt.series...)
			assert.InDelta(t, tt.expected.Min, r.Min, 1e-9)
			assert.InDelta(t, tt.expected.Max, r.Max, 1e-9)
		})
	}
}

func TestComputeZeroInclusion(t *testing.T) {
	// Whatever the input, zero stays close to the visible range.
	inputs := [][]float64{
		{0.5, 0.6},
		{12, 15, 18},
		{-9, -8},
		{1, 1, 1},
		{-0.05, 0.02},
	}
	for _, values := range inputs {
		r := Compute(values)
		assert.LessOrEqual(t, r.Min, 0.2, "input %v", values)
		assert.GreaterOrEqual(t, r.Max, -0.2, "input %v", values)
		assert.Less(t, r.Min, r.Max, "input %v", values)
	}
}

func TestComputeFromOptional(t *testing.T) {
	val := func(v float64) *float64 { return &v }

	t.Run("skips absent values", func(t *testing.T) {
		r := ComputeFromOptional([]*float64{val(-2), nil, val(3), nil})
		assert.InDelta(t, -2.75, r.Min, 1e-9)
		assert.InDelta(t, 3.75, r.Max, 1e-9)
	})

	t.Run("all absent falls back", func(t *testing.T) {
		r := ComputeFromOptional([]*float64{nil, nil})
		assert.Equal(t, domain.DisplayRange{Min: -1, Max: 5}, r)
	})
}
