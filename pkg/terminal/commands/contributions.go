package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/eco-tools/cpi-pulse/pkg/store/warehouse"
	"github.com/eco-tools/cpi-pulse/pkg/terminal/export"
	"github.com/spf13/cobra"
)

type ContributionsCmd struct {
	profilePath string
	profileName string
	platform    string
	months      int
	registry    warehouse.Registry
	reporter    *export.Reporter
}

func NewContributionsCmd(registry warehouse.Registry, reporter *export.Reporter) *cobra.Command {
	cc := &ContributionsCmd{registry: registry, reporter: reporter}
	cmd := &cobra.Command{
		Use:   "contributions",
		Short: "Show the latest headline inflation decomposition",
		RunE:  cc.run,
	}

	cmd.Flags().StringVar(&cc.profilePath, "profiles", "", "Path to the warehouse profiles file")
	cmd.Flags().StringVar(&cc.profileName, "profile", "default", "Warehouse profile name")
	cmd.Flags().StringVar(&cc.platform, "platform", "snowflake", "Warehouse platform")
	cmd.Flags().IntVar(&cc.months, "months", 24, "Analysis window in months")

	_ = cmd.MarkFlagRequired("profiles")

	return cmd
}

func (cc *ContributionsCmd) run(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	explorer, err := buildExplorer(ctx, cc.registry, cc.platform, cc.profilePath, cc.profileName)
	if err != nil {
		return err
	}

	end := time.Now()
	start := end.AddDate(0, -cc.months, 0)

	summary, err := explorer.GetContributionSummary(ctx, start, end)
	if err != nil {
		return fmt.Errorf("failed to compute contribution summary: %w", err)
	}
	if len(summary.Categories) == 0 {
		return fmt.Errorf("no contribution data available in the requested window")
	}

	var total float64
	rows := make([]export.Row, 0, len(summary.Categories)+1)
	for _, category := range summary.Categories {
		total += category.ContributionPct
		rows = append(rows, export.Row{
			Name:  fmt.Sprintf("%s (weight %.2f)", category.Label, category.Weight),
			Value: fmt.Sprintf("%+.2f", category.ContributionPct),
			Unit:  "pp",
		})
	}
	rows = append(rows, export.Row{
		Name:  "Sum of contributions",
		Value: fmt.Sprintf("%+.2f", total),
		Unit:  "pp",
	})

	return cc.reporter.Handle(export.Table{
		Title:    "Headline CPI decomposition",
		Subtitle: fmt.Sprintf("Month: %s", summary.Date.Format("2006-01")),
		Rows:     rows,
	})
}
