package adapters

import (
	"github.com/eco-tools/cpi-pulse/pkg/models/api"
	"github.com/eco-tools/cpi-pulse/pkg/models/domain"
)

func MapContributionPointDomainToApi(point domain.ContributionPoint) api.ContributionPoint {
	return api.ContributionPoint{
		Date:            point.Timestamp,
		Category:        point.CategoryID,
		Label:           point.CategoryLabel,
		Weight:          point.Weight,
		ContributionPct: point.ContributionPct,
		CategoryYoYPct:  point.CategoryYoYPct,
		HeadlineYoYPct:  point.HeadlineYoYPct,
		CoreYoYPct:      point.CoreYoYPct,
		Color:           point.Color,
	}
}

func MapContributionPointsDomainToApi(points []domain.ContributionPoint) []api.ContributionPoint {
	result := make([]api.ContributionPoint, 0, len(points))
	for _, point := range points {
		result = append(result, MapContributionPointDomainToApi(point))
	}
	return result
}

func MapCategorySummaryDomainToApi(summary domain.CategorySummary) api.CategorySummary {
	return api.CategorySummary{
		Category:        summary.CategoryID,
		Label:           summary.Label,
		ContributionPct: summary.ContributionPct,
		CategoryYoYPct:  summary.CategoryYoYPct,
		Weight:          summary.Weight,
		Color:           summary.Color,
	}
}

func MapWaterfallBarDomainToApi(bar domain.WaterfallBar) api.WaterfallBar {
	return api.WaterfallBar{
		Category:        bar.CategoryID,
		Label:           bar.Label,
		ContributionPct: bar.ContributionPct,
		Present:         bar.Present,
		Color:           bar.Color,
	}
}
