package insight

import (
	"fmt"
	"strings"

	"github.com/eco-tools/cpi-pulse/pkg/models/domain"
)

// BuildMetricsSummary formats per-entity metrics into the plain-text hand-off
// string the AI text collaborator consumes. Absent metrics are reported as
// n/a rather than zero so the prose generator does not invent precision.
func BuildMetricsSummary(metricSets []domain.MetricSet) string {
	var b strings.Builder
	for _, metrics := range metricSets {
		if metrics.EntityID == "" {
			continue
		}
		fmt.Fprintf(&b, "[%s]\n", metrics.EntityID)
		fmt.Fprintf(&b, "- current level: %.1f\n", metrics.CurrentLevel)
		fmt.Fprintf(&b, "- yoy: %s\n", formatPct(metrics.YoYPct))
		fmt.Fprintf(&b, "- mom: %s\n", formatPct(metrics.MoMPct))
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

// BuildAnalysisPrompt wraps the metrics summary into the economist-analysis
// prompt sent to the text-completion service.
func BuildAnalysisPrompt(products []string, summary string) string {
	return fmt.Sprintf(`You are a professional economist analyzing Consumer Price Index data.

Products and services in scope:
%s

Latest CPI metrics:
%s

Provide:
1. A detailed read of each product's price trend.
2. The main drivers behind the monthly moves.
3. An assessment of underlying inflation pressure.
4. Policy implications for the central bank.
5. A 3-6 month outlook with key risk factors.

Keep the analysis concise and grounded in the numbers above.`,
		strings.Join(products, ", "), summary)
}

func formatPct(value *float64) string {
	if value == nil {
		return "n/a"
	}
	return fmt.Sprintf("%+.2f%%", *value)
}
