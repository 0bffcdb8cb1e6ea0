package rates

import (
	"math"

	"github.com/eco-tools/cpi-pulse/pkg/models/domain"
)

// minDenominator guards change-rate divisions. Index levels are positive by
// domain convention, but the type cannot prove it, so a zero or near-zero
// prior level yields an absent rate instead of a blow-up.
const minDenominator = 1e-9

const volatilityWindow = 12

// PctChange returns the percentage change from prior to current, or nil when
// prior is not a usable denominator.
func PctChange(current, prior float64) *float64 {
	if prior <= 0 || math.Abs(prior) < minDenominator {
		return nil
	}
	pct := (current - prior) / prior * 100
	return &pct
}

// ComputeChangeRates derives period-over-period and year-over-year change
// rates for a timestamp-ascending series. MoM compares against the preceding
// observation; YoY compares against the observation exactly N periods earlier,
// N given by the series frequency. Rates with insufficient history are left
// nil rather than reported as zero.
func ComputeChangeRates(series []domain.Observation, frequency string) []domain.ChangeRate {
	if len(series) == 0 {
		return nil
	}

	periods := PeriodsForFrequency(frequency)
	result := make([]domain.ChangeRate, 0, len(series))

	for i, obs := range series {
		rate := domain.ChangeRate{
			EntityID:  obs.EntityID,
			Timestamp: obs.Timestamp,
			Level:     obs.Level,
		}
		if i >= 1 {
			rate.MoMPct = PctChange(obs.Level, series[i-1].Level)
		}
		if i >= periods {
			rate.YoYPct = PctChange(obs.Level, series[i-periods].Level)
		}
		result = append(result, rate)
	}
	return result
}

// Volatility reports the population standard deviation of the trailing MoM
// changes over the most recent 12 periods. Series shorter than 12 observations
// produce no value at all: a volatility figure from a handful of points is
// worse than none.
func Volatility(changeRates []domain.ChangeRate) *float64 {
	if len(changeRates) < volatilityWindow {
		return nil
	}

	var moms []float64
	for _, r := range changeRates {
		if r.MoMPct != nil {
			moms = append(moms, *r.MoMPct)
		}
	}
	if len(moms) == 0 {
		return nil
	}
	if len(moms) > volatilityWindow {
		moms = moms[len(moms)-volatilityWindow:]
	}

	var sum float64
	for _, m := range moms {
		sum += m
	}
	mean := sum / float64(len(moms))

	var sq float64
	for _, m := range moms {
		d := m - mean
		sq += d * d
	}
	stddev := math.Sqrt(sq / float64(len(moms)))
	return &stddev
}

// ThreeMonthAverageChange compares the mean of the last three levels against
// the mean of the three preceding them. With only 3-5 points the last-3 mean
// doubles as its own baseline. This is a smoothing heuristic for spotting
// short-run momentum, not a rate in the YoY/MoM sense; treat the result as an
// approximation.
func ThreeMonthAverageChange(series []domain.Observation) *float64 {
	if len(series) < 3 {
		return nil
	}

	recent := meanLevel(series[len(series)-3:])
	baseline := recent
	if len(series) >= 6 {
		baseline = meanLevel(series[len(series)-6 : len(series)-3])
	}
	return PctChange(recent, baseline)
}

func meanLevel(series []domain.Observation) float64 {
	var sum float64
	for _, obs := range series {
		sum += obs.Level
	}
	return sum / float64(len(series))
}

// ComputeMetrics summarizes a timestamp-ascending series into its latest-state
// metric set. Missing history flows forward as nil fields, never as an error.
func ComputeMetrics(series []domain.Observation, frequency string) domain.MetricSet {
	if len(series) == 0 {
		return domain.MetricSet{}
	}

	latest := series[len(series)-1]
	metrics := domain.MetricSet{
		EntityID:       latest.EntityID,
		CurrentLevel:   latest.Level,
		LatestDate:     latest.Timestamp,
		ObservationLen: len(series),
	}

	changeRates := ComputeChangeRates(series, frequency)
	last := changeRates[len(changeRates)-1]
	metrics.MoMPct = last.MoMPct
	metrics.YoYPct = last.YoYPct
	metrics.ThreeMonthPct = ThreeMonthAverageChange(series)
	metrics.VolatilityPct = Volatility(changeRates)

	return metrics
}

// TrendStatus buckets a YoY rate into the dashboard's inflation regimes.
func TrendStatus(yoyPct float64) string {
	switch {
	case yoyPct > 3:
		return "high"
	case yoyPct > 1:
		return "moderate"
	case yoyPct > 0:
		return "low"
	default:
		return "deflation"
	}
}
