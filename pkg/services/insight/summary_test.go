package insight

import (
	"testing"
	"time"

	"github.com/eco-tools/cpi-pulse/pkg/models/domain"
	"github.com/stretchr/testify/assert"
)

func pct(v float64) *float64 { return &v }

func TestBuildMetricsSummary(t *testing.T) {
	metricSets := []domain.MetricSet{
		{
			EntityID:     "All items",
			CurrentLevel: 310.326,
			LatestDate:   time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC),
			YoYPct:       pct(3.25),
			MoMPct:       pct(-0.1),
		},
		{
			EntityID:     "Food",
			CurrentLevel: 125.4,
		},
		{
			// Unresolved product, no entity.
			CurrentLevel: 0,
		},
	}

	summary := BuildMetricsSummary(metricSets)

	assert.Contains(t, summary, "[All items]")
	assert.Contains(t, summary, "- current level: 310.3")
	assert.Contains(t, summary, "- yoy: +3.25%")
	assert.Contains(t, summary, "- mom: -0.10%")
	assert.Contains(t, summary, "[Food]")
	assert.Contains(t, summary, "- yoy: n/a")
	assert.NotContains(t, summary, "[]")
}

func TestBuildMetricsSummaryEmpty(t *testing.T) {
	assert.Empty(t, BuildMetricsSummary(nil))
}

func TestBuildAnalysisPrompt(t *testing.T) {
	prompt := BuildAnalysisPrompt([]string{"All items", "Energy"}, "[All items]\n- yoy: +3.25%")

	assert.Contains(t, prompt, "All items, Energy")
	assert.Contains(t, prompt, "- yoy: +3.25%")
	assert.Contains(t, prompt, "economist")
	assert.Contains(t, prompt, "outlook")
}
