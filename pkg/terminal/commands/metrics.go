package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/eco-tools/cpi-pulse/pkg/models/domain"
	"github.com/eco-tools/cpi-pulse/pkg/services/analytics"
	"github.com/eco-tools/cpi-pulse/pkg/services/config"
	"github.com/eco-tools/cpi-pulse/pkg/services/rates"
	"github.com/eco-tools/cpi-pulse/pkg/store/warehouse"
	"github.com/eco-tools/cpi-pulse/pkg/terminal/export"
	"github.com/spf13/cobra"
)

type MetricsCmd struct {
	profilePath string
	profileName string
	platform    string
	product     string
	months      int
	registry    warehouse.Registry
	reporter    *export.Reporter
}

func NewMetricsCmd(registry warehouse.Registry, reporter *export.Reporter) *cobra.Command {
	mc := &MetricsCmd{registry: registry, reporter: reporter}
	cmd := &cobra.Command{
		Use:   "metrics",
		Short: "Show inflation metrics for a product",
		RunE:  mc.run,
	}

	cmd.Flags().StringVar(&mc.profilePath, "profiles", "", "Path to the warehouse profiles file")
	cmd.Flags().StringVar(&mc.profileName, "profile", "default", "Warehouse profile name")
	cmd.Flags().StringVar(&mc.platform, "platform", "snowflake", "Warehouse platform")
	cmd.Flags().StringVar(&mc.product, "product", config.HeadlineEntity, "Product to analyze")
	cmd.Flags().IntVar(&mc.months, "months", 24, "Analysis window in months")

	_ = cmd.MarkFlagRequired("profiles")

	return cmd
}

func (mc *MetricsCmd) run(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	explorer, err := buildExplorer(ctx, mc.registry, mc.platform, mc.profilePath, mc.profileName)
	if err != nil {
		return err
	}

	end := time.Now()
	start := end.AddDate(0, -mc.months, 0)

	metrics, err := explorer.GetMetrics(ctx, mc.product, start, end)
	if err != nil {
		return fmt.Errorf("failed to compute metrics: %w", err)
	}
	if metrics.ObservationLen == 0 {
		return fmt.Errorf("no observations found for product %q", mc.product)
	}

	return mc.reporter.Handle(export.Table{
		Title:    fmt.Sprintf("Inflation metrics: %s", mc.product),
		Subtitle: fmt.Sprintf("Latest observation: %s", metrics.LatestDate.Format("2006-01")),
		Rows:     metricsRows(metrics),
	})
}

func metricsRows(metrics *domain.MetricSet) []export.Row {
	rows := []export.Row{
		{Name: "Current level", Value: fmt.Sprintf("%.1f", metrics.CurrentLevel), Unit: "index"},
		{Name: "Year over year", Value: formatOptionalPct(metrics.YoYPct), Unit: "%"},
		{Name: "Month over month", Value: formatOptionalPct(metrics.MoMPct), Unit: "%"},
		{Name: "3-month average change", Value: formatOptionalPct(metrics.ThreeMonthPct), Unit: "%"},
		{Name: "Volatility (12m)", Value: formatOptionalPct(metrics.VolatilityPct), Unit: "%"},
	}
	if metrics.YoYPct != nil {
		rows = append(rows, export.Row{
			Name:  "Trend",
			Value: rates.TrendStatus(*metrics.YoYPct),
		})
	}
	return rows
}

func formatOptionalPct(value *float64) string {
	if value == nil {
		return "n/a"
	}
	return fmt.Sprintf("%+.2f", *value)
}

func buildExplorer(
	ctx context.Context,
	registry warehouse.Registry,
	platform, profilePath, profileName string,
) (analytics.Explorer, error) {
	profiles, err := config.NewRegistry(profilePath)
	if err != nil {
		return nil, fmt.Errorf("failed to load warehouse profiles: %w", err)
	}

	profile, err := profiles.GetProfile(ctx, profileName)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve warehouse profile: %w", err)
	}

	store, err := registry.Create(platform, profile)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s store: %w", platform, err)
	}

	return analytics.NewExplorer(store)
}
