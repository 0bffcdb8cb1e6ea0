package contribution

import (
	"time"

	"github.com/eco-tools/cpi-pulse/pkg/models/domain"
	"github.com/eco-tools/cpi-pulse/pkg/services/rates"
)

// Waterfall bar colors by contribution sign.
const (
	colorPositive = "#28a745"
	colorNegative = "#dc3545"
	colorAbsent   = "#6c757d"
)

// Options controls a single decomposition request.
type Options struct {
	// StartDate trims the emitted points to T >= StartDate. The input series
	// must still carry the lookback buffer before it so the first displayed
	// months have valid YoY values.
	StartDate *time.Time
	// IncludeCore attaches the core aggregate's YoY to every emitted point.
	IncludeCore bool
	Frequency   string
}

// Decomposer splits headline inflation into weighted category contributions.
// It is pure: category configuration is fixed at construction and every call
// works only on its inputs.
type Decomposer struct {
	headlineEntity string
	coreEntity     string
	categories     []domain.Category
}

func NewDecomposer(headlineEntity, coreEntity string, categories []domain.Category) *Decomposer {
	return &Decomposer{
		headlineEntity: headlineEntity,
		coreEntity:     coreEntity,
		categories:     categories,
	}
}

// Compute walks every timestamp of the headline series and emits one point per
// category whose representative has enough history there. A category with no
// observation for its designated representative at T contributes nothing at T;
// silently omitting a month is preferred over substituting a proxy, which
// would make the decomposition lie.
//
// The sum of contributions at T approximates the headline YoY at T. Weights
// are calibrated basket approximations, not exact shares, so reconciliation
// holds within a tolerance of about two percentage points, not exactly.
func (d *Decomposer) Compute(
	obsByEntity map[string][]domain.Observation,
	opts Options,
) []domain.ContributionPoint {
	headline := obsByEntity[d.headlineEntity]
	if len(headline) == 0 {
		return nil
	}

	periods := rates.PeriodsForFrequency(opts.Frequency)
	headlineRates := rates.ComputeChangeRates(headline, opts.Frequency)

	var coreYoY map[time.Time]*float64
	if opts.IncludeCore {
		coreYoY = yoyByTimestamp(obsByEntity[d.coreEntity], opts.Frequency)
	}

	repIndex := make(map[string]map[time.Time]int, len(d.categories))
	for _, cat := range d.categories {
		repIndex[cat.ID] = indexByTimestamp(obsByEntity[cat.Representative])
	}

	var points []domain.ContributionPoint
	for _, hr := range headlineRates {
		if hr.YoYPct == nil {
			continue
		}
		if opts.StartDate != nil && hr.Timestamp.Before(*opts.StartDate) {
			continue
		}

		for _, cat := range d.categories {
			repSeries := obsByEntity[cat.Representative]
			idx, ok := repIndex[cat.ID][hr.Timestamp]
			if !ok || idx < periods {
				continue
			}
			// The representative's YoY is recomputed from its own full
			// history, not the display window: the lag lookup needs N periods
			// of context that may fall before the window.
			yoy := rates.PctChange(repSeries[idx].Level, repSeries[idx-periods].Level)
			if yoy == nil {
				continue
			}

			point := domain.ContributionPoint{
				Timestamp:       hr.Timestamp,
				CategoryID:      cat.ID,
				CategoryLabel:   cat.Label,
				Weight:          cat.Weight,
				ContributionPct: cat.Weight * *yoy,
				CategoryYoYPct:  *yoy,
				HeadlineYoYPct:  *hr.YoYPct,
				Color:           cat.Color,
			}
			if opts.IncludeCore {
				point.CoreYoYPct = coreYoY[hr.Timestamp]
			}
			points = append(points, point)
		}
	}
	return points
}

// LatestSummary rolls the newest timestamp's points into a per-category map.
func LatestSummary(points []domain.ContributionPoint) map[string]domain.CategorySummary {
	if len(points) == 0 {
		return nil
	}

	var latest time.Time
	for _, p := range points {
		if p.Timestamp.After(latest) {
			latest = p.Timestamp
		}
	}

	summary := make(map[string]domain.CategorySummary)
	for _, p := range points {
		if !p.Timestamp.Equal(latest) {
			continue
		}
		summary[p.CategoryID] = domain.CategorySummary{
			CategoryID:      p.CategoryID,
			Label:           p.CategoryLabel,
			ContributionPct: p.ContributionPct,
			CategoryYoYPct:  p.CategoryYoYPct,
			Weight:          p.Weight,
			Color:           p.Color,
		}
	}
	return summary
}

// LatestTimestamp returns the newest timestamp present in the points.
func LatestTimestamp(points []domain.ContributionPoint) (time.Time, bool) {
	if len(points) == 0 {
		return time.Time{}, false
	}
	var latest time.Time
	for _, p := range points {
		if p.Timestamp.After(latest) {
			latest = p.Timestamp
		}
	}
	return latest, true
}

// WaterfallAt builds the decomposition bars for one timestamp in the given
// category order. Categories without a point at that timestamp still get a
// bar, zero-valued and marked absent, so the chart keeps its shape.
func (d *Decomposer) WaterfallAt(
	points []domain.ContributionPoint,
	at time.Time,
	order []string,
) []domain.WaterfallBar {
	byCategory := make(map[string]domain.ContributionPoint)
	for _, p := range points {
		if p.Timestamp.Equal(at) {
			byCategory[p.CategoryID] = p
		}
	}

	labels := make(map[string]string, len(d.categories))
	for _, cat := range d.categories {
		labels[cat.ID] = cat.Label
	}

	bars := make([]domain.WaterfallBar, 0, len(order))
	for _, id := range order {
		bar := domain.WaterfallBar{CategoryID: id, Label: labels[id], Color: colorAbsent}
		if p, ok := byCategory[id]; ok {
			bar.ContributionPct = p.ContributionPct
			bar.Present = true
			if p.ContributionPct >= 0 {
				bar.Color = colorPositive
			} else {
				bar.Color = colorNegative
			}
		}
		bars = append(bars, bar)
	}
	return bars
}

// FilterByCategories keeps only points whose category is in the selection.
// An empty selection keeps everything.
func FilterByCategories(points []domain.ContributionPoint, selected []string) []domain.ContributionPoint {
	if len(selected) == 0 {
		return points
	}
	keep := make(map[string]bool, len(selected))
	for _, id := range selected {
		keep[id] = true
	}
	var filtered []domain.ContributionPoint
	for _, p := range points {
		if keep[p.CategoryID] {
			filtered = append(filtered, p)
		}
	}
	return filtered
}

func indexByTimestamp(series []domain.Observation) map[time.Time]int {
	index := make(map[time.Time]int, len(series))
	for i, obs := range series {
		index[obs.Timestamp] = i
	}
	return index
}

func yoyByTimestamp(series []domain.Observation, frequency string) map[time.Time]*float64 {
	result := make(map[time.Time]*float64, len(series))
	for _, r := range rates.ComputeChangeRates(series, frequency) {
		result[r.Timestamp] = r.YoYPct
	}
	return result
}
