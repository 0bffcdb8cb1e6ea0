package main

import (
	"fmt"
	"os"

	"github.com/eco-tools/cpi-pulse/pkg/services/config"
	"github.com/eco-tools/cpi-pulse/pkg/store/databricks"
	"github.com/eco-tools/cpi-pulse/pkg/store/prices"
	"github.com/eco-tools/cpi-pulse/pkg/store/snowflake"
	"github.com/eco-tools/cpi-pulse/pkg/store/warehouse"
	"github.com/eco-tools/cpi-pulse/pkg/terminal/commands"
	"github.com/eco-tools/cpi-pulse/pkg/terminal/export"
	"github.com/spf13/cobra"
)

func main() {
	registry, err := warehouse.NewRegistry(map[string]warehouse.StoreFactory{
		"snowflake": func(profile *config.Profile) (prices.Store, error) {
			db, err := snowflake.NewDB(profile)
			if err != nil {
				return nil, err
			}
			return snowflake.NewStore(db), nil
		},
		"databricks": func(profile *config.Profile) (prices.Store, error) {
			db, err := databricks.NewDB(profile)
			if err != nil {
				return nil, err
			}
			return databricks.NewStore(db), nil
		},
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	reporter := export.NewReporter(os.Stdout)

	rootCmd := &cobra.Command{
		Use:   "cpi-pulse",
		Short: "CPI analytics from the command line",
	}
	rootCmd.AddCommand(commands.NewMetricsCmd(registry, reporter))
	rootCmd.AddCommand(commands.NewContributionsCmd(registry, reporter))

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
