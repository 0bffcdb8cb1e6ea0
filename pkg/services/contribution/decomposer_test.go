package contribution

import (
	"math"
	"testing"
	"time"

	"github.com/eco-tools/cpi-pulse/pkg/models/domain"
	"github.com/eco-tools/cpi-pulse/pkg/services/config"
	"github.com/eco-tools/cpi-pulse/pkg/services/rates"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var seriesBase = time.Date(2023, time.January, 1, 0, 0, 0, 0, time.UTC)

func monthAt(offset int) time.Time {
	return seriesBase.AddDate(0, offset, 0)
}

// flatThenJump builds thirteen monthly points: a flat year at 100 followed by
// one point carrying the given YoY, so only the final timestamp has a rate.
func flatThenJump(entity string, yoyPct float64) []domain.Observation {
	series := make([]domain.Observation, 0, 13)
	for i := 0; i < 12; i++ {
		series = append(series, domain.Observation{EntityID: entity, Timestamp: monthAt(i), Level: 100})
	}
	series = append(series, domain.Observation{
		EntityID:  entity,
		Timestamp: monthAt(12),
		Level:     100 * (1 + yoyPct/100),
	})
	return series
}

func newTestDecomposer() *Decomposer {
	return NewDecomposer(config.HeadlineEntity, config.CoreEntity, config.ContributionCategories)
}

func TestDecomposerCompute(t *testing.T) {
	t.Run("contribution is weight times representative YoY", func(t *testing.T) {
		obsByEntity := map[string][]domain.Observation{
			config.HeadlineEntity: flatThenJump(config.HeadlineEntity, 3.0),
			"Energy":              flatThenJump("Energy", 10.0),
		}

		points := newTestDecomposer().Compute(obsByEntity, Options{Frequency: rates.FrequencyMonthly})

		require.Len(t, points, 1)
		p := points[0]
		assert.Equal(t, "energy", p.CategoryID)
		assert.InDelta(t, 0.08, p.Weight, 1e-9)
		assert.InDelta(t, 10.0, p.CategoryYoYPct, 1e-9)
		assert.InDelta(t, 0.8, p.ContributionPct, 1e-9)
		assert.InDelta(t, 3.0, p.HeadlineYoYPct, 1e-9)
	})

	t.Run("contributions reconcile with headline within two points", func(t *testing.T) {
		obsByEntity := map[string][]domain.Observation{
			config.HeadlineEntity: flatThenJump(config.HeadlineEntity, 3.0),
			"Services less energy services":               flatThenJump("Services less energy services", 4.0),
			"Commodities less food and energy commodities": flatThenJump("Commodities less food and energy commodities", 1.0),
			"Food":   flatThenJump("Food", 3.0),
			"Energy": flatThenJump("Energy", 2.0),
		}

		points := newTestDecomposer().Compute(obsByEntity, Options{Frequency: rates.FrequencyMonthly})

		require.Len(t, points, 4)
		var sum float64
		for _, p := range points {
			sum += p.ContributionPct
		}
		// 0.58*4 + 0.20*1 + 0.14*3 + 0.08*2 = 3.10
		assert.InDelta(t, 3.10, sum, 1e-9)
		assert.Less(t, math.Abs(sum-points[0].HeadlineYoYPct), 2.0)
	})

	t.Run("category without its representative is omitted", func(t *testing.T) {
		obsByEntity := map[string][]domain.Observation{
			config.HeadlineEntity: flatThenJump(config.HeadlineEntity, 3.0),
			"Food":                flatThenJump("Food", 2.0),
		}

		points := newTestDecomposer().Compute(obsByEntity, Options{Frequency: rates.FrequencyMonthly})

		require.Len(t, points, 1)
		assert.Equal(t, "food", points[0].CategoryID)
	})

	t.Run("representative with short history contributes nothing", func(t *testing.T) {
		short := flatThenJump("Energy", 2.0)[4:]
		obsByEntity := map[string][]domain.Observation{
			config.HeadlineEntity: flatThenJump(config.HeadlineEntity, 3.0),
			"Energy":              short,
		}

		points := newTestDecomposer().Compute(obsByEntity, Options{Frequency: rates.FrequencyMonthly})

		assert.Empty(t, points)
	})

	t.Run("start date trims points while lookback keeps YoY intact", func(t *testing.T) {
		// Two years of steady growth so every month past the first year has a
		// YoY value; the display window starts mid-way through year two.
		grow := func(entity string) []domain.Observation {
			series := make([]domain.Observation, 0, 25)
			for i := 0; i < 25; i++ {
				series = append(series, domain.Observation{
					EntityID:  entity,
					Timestamp: monthAt(i),
					Level:     100 * math.Pow(1.003, float64(i)),
				})
			}
			return series
		}
		obsByEntity := map[string][]domain.Observation{
			config.HeadlineEntity: grow(config.HeadlineEntity),
			"Food":                grow("Food"),
		}
		start := monthAt(18)

		points := newTestDecomposer().Compute(obsByEntity, Options{
			StartDate: &start,
			Frequency: rates.FrequencyMonthly,
		})

		// Months 18 through 24 inclusive.
		require.Len(t, points, 7)
		for _, p := range points {
			assert.False(t, p.Timestamp.Before(start))
			assert.Greater(t, p.CategoryYoYPct, 0.0)
		}
	})

	t.Run("core overlay attaches when requested", func(t *testing.T) {
		obsByEntity := map[string][]domain.Observation{
			config.HeadlineEntity: flatThenJump(config.HeadlineEntity, 3.0),
			config.CoreEntity:     flatThenJump(config.CoreEntity, 2.4),
			"Food":                flatThenJump("Food", 1.0),
		}

		points := newTestDecomposer().Compute(obsByEntity, Options{
			IncludeCore: true,
			Frequency:   rates.FrequencyMonthly,
		})

		require.Len(t, points, 1)
		require.NotNil(t, points[0].CoreYoYPct)
		assert.InDelta(t, 2.4, *points[0].CoreYoYPct, 1e-9)
	})

	t.Run("missing headline yields nil", func(t *testing.T) {
		assert.Nil(t, newTestDecomposer().Compute(nil, Options{Frequency: rates.FrequencyMonthly}))
	})
}

func TestLatestSummary(t *testing.T) {
	points := []domain.ContributionPoint{
		{Timestamp: monthAt(11), CategoryID: "food", ContributionPct: 0.3},
		{Timestamp: monthAt(12), CategoryID: "food", CategoryLabel: "Food", ContributionPct: 0.42, Weight: 0.14},
		{Timestamp: monthAt(12), CategoryID: "energy", CategoryLabel: "Energy", ContributionPct: -0.1, Weight: 0.08},
	}

	summary := LatestSummary(points)

	require.Len(t, summary, 2)
	assert.InDelta(t, 0.42, summary["food"].ContributionPct, 1e-9)
	assert.InDelta(t, -0.1, summary["energy"].ContributionPct, 1e-9)
	assert.Nil(t, LatestSummary(nil))
}

func TestWaterfallAt(t *testing.T) {
	points := []domain.ContributionPoint{
		{Timestamp: monthAt(12), CategoryID: "energy", ContributionPct: -0.16},
		{Timestamp: monthAt(12), CategoryID: "food", ContributionPct: 0.42},
	}

	bars := newTestDecomposer().WaterfallAt(points, monthAt(12), config.WaterfallOrder)

	require.Len(t, bars, len(config.WaterfallOrder))
	assert.Equal(t, "energy", bars[0].CategoryID)
	assert.True(t, bars[0].Present)
	assert.Equal(t, colorNegative, bars[0].Color)
	assert.Equal(t, "food", bars[1].CategoryID)
	assert.Equal(t, colorPositive, bars[1].Color)

	// Categories with no point at the timestamp keep a zero bar.
	assert.False(t, bars[2].Present)
	assert.Equal(t, colorAbsent, bars[2].Color)
	assert.Zero(t, bars[2].ContributionPct)
	assert.NotEmpty(t, bars[2].Label)
}

func TestFilterByCategories(t *testing.T) {
	points := []domain.ContributionPoint{
		{CategoryID: "food"},
		{CategoryID: "energy"},
		{CategoryID: "core_services"},
	}

	t.Run("empty selection keeps everything", func(t *testing.T) {
		assert.Len(t, FilterByCategories(points, nil), 3)
	})

	t.Run("selection keeps only named categories", func(t *testing.T) {
		filtered := FilterByCategories(points, []string{"food", "energy"})
		require.Len(t, filtered, 2)
		assert.Equal(t, "food", filtered[0].CategoryID)
		assert.Equal(t, "energy", filtered[1].CategoryID)
	})
}
