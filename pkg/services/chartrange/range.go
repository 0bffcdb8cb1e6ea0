package chartrange

import (
	"math"

	"github.com/eco-tools/cpi-pulse/pkg/models/domain"
)

const (
	// Values at or beyond this magnitude are treated as data glitches and
	// excluded from range derivation.
	extremeCutoff = 1000.0
	minSpan       = 0.1
	marginRatio   = 0.15
	minMargin     = 0.5
)

// fallback is the range used when no usable values remain.
var fallback = domain.DisplayRange{Min: -1, Max: 5}

// Compute derives a stable y-axis range from one or more numeric series.
// NaN, Inf, and extreme values are pooled out first. The resulting range is
// padded proportionally to its span, and a zero-inclusion correction keeps
// the zero line visible even when every point shares one sign: inflation-rate
// charts are unreadable without a visible zero anchor.
//
// Compute is pure and must be called fresh per chart.
func Compute(seriesList ...[]float64) domain.DisplayRange {
	var pooled []float64
	for _, series := range seriesList {
		for _, v := range series {
			if math.IsNaN(v) || math.IsInf(v, 0) || math.Abs(v) >= extremeCutoff {
				continue
			}
			pooled = append(pooled, v)
		}
	}
	if len(pooled) == 0 {
		return fallback
	}

	low, high := pooled[0], pooled[0]
	for _, v := range pooled[1:] {
		if v < low {
			low = v
		}
		if v > high {
			high = v
		}
	}

	var r domain.DisplayRange
	if span := high - low; span > minSpan {
		margin := math.Max(span*marginRatio, minMargin)
		r = domain.DisplayRange{Min: low - margin, Max: high + margin}
	} else {
		center := (low + high) / 2
		r = domain.DisplayRange{Min: center - 1, Max: center + 1}
	}

	// Zero-inclusion correction.
	if r.Min > 0.1 {
		r.Min = math.Min(r.Min, -0.2)
	}
	if r.Max < -0.1 {
		r.Max = math.Max(r.Max, 0.2)
	}
	return r
}

// ComputeFromOptional pools nullable series, skipping absent values, then
// derives the range the same way as Compute.
func ComputeFromOptional(seriesList ...[]*float64) domain.DisplayRange {
	flattened := make([][]float64, 0, len(seriesList))
	for _, series := range seriesList {
		var values []float64
		for _, v := range series {
			if v != nil {
				values = append(values, *v)
			}
		}
		flattened = append(flattened, values)
	}
	return Compute(flattened...)
}
