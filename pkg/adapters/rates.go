package adapters

import (
	"github.com/eco-tools/cpi-pulse/pkg/models/api"
	"github.com/eco-tools/cpi-pulse/pkg/models/domain"
	"github.com/eco-tools/cpi-pulse/pkg/services/rates"
)

// Presentation icons per trend status. Kept out of the engine: the status
// string is the lookup key, the icon is display text.
var trendIcons = map[string]string{
	"high":      "⬆️",
	"moderate":  "📈",
	"low":       "📊",
	"deflation": "⬇️",
}

func MapChangeRateDomainToApi(rate domain.ChangeRate) api.ChangeRate {
	return api.ChangeRate{
		Date:   rate.Timestamp,
		Level:  rate.Level,
		MoMPct: rate.MoMPct,
		YoYPct: rate.YoYPct,
	}
}

func MapChangeRatesDomainToApi(changeRates []domain.ChangeRate) []api.ChangeRate {
	result := make([]api.ChangeRate, 0, len(changeRates))
	for _, rate := range changeRates {
		result = append(result, MapChangeRateDomainToApi(rate))
	}
	return result
}

func MapMetricSetDomainToApi(metrics domain.MetricSet) api.MetricSet {
	result := api.MetricSet{
		Product:       metrics.EntityID,
		CurrentLevel:  metrics.CurrentLevel,
		LatestDate:    metrics.LatestDate,
		MoMPct:        metrics.MoMPct,
		YoYPct:        metrics.YoYPct,
		ThreeMonthPct: metrics.ThreeMonthPct,
		VolatilityPct: metrics.VolatilityPct,
	}
	if metrics.YoYPct != nil {
		result.TrendStatus = rates.TrendStatus(*metrics.YoYPct)
		result.TrendIcon = trendIcons[result.TrendStatus]
	}
	return result
}

func MapDisplayRangeDomainToApi(r domain.DisplayRange) api.DisplayRange {
	return api.DisplayRange{Min: r.Min, Max: r.Max}
}
