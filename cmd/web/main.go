package main

import (
	"fmt"
	"os"

	"github.com/eco-tools/cpi-pulse/pkg/server"
	"github.com/eco-tools/cpi-pulse/pkg/services/config"
	"github.com/eco-tools/cpi-pulse/pkg/services/insight"
	"github.com/eco-tools/cpi-pulse/pkg/store/cache"
	"github.com/eco-tools/cpi-pulse/pkg/store/databricks"
	"github.com/eco-tools/cpi-pulse/pkg/store/prices"
	"github.com/eco-tools/cpi-pulse/pkg/store/snowflake"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	analyticssvc "github.com/eco-tools/cpi-pulse/pkg/services/analytics"
)

var cfgPath string

func main() {
	var rootCmd = &cobra.Command{
		Use:   "web",
		Short: "Start the CPI Pulse web server",
		RunE:  runServer,
	}

	rootCmd.Flags().StringVarP(&cfgPath, "config", "c", "cpi-pulse.yaml",
		"Path to the application config file")

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func runServer(cmd *cobra.Command, _ []string) error {
	if err := godotenv.Load(); err != nil {
		fmt.Printf("Error loading .env file: %v\n", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	registry, err := config.NewRegistry(cfg.Warehouse.ProfilePath)
	if err != nil {
		return fmt.Errorf("failed to load warehouse profiles: %w", err)
	}

	profile, err := registry.GetProfile(cmd.Context(), cfg.Warehouse.Profile)
	if err != nil {
		return fmt.Errorf("failed to resolve warehouse profile: %w", err)
	}

	var priceStore prices.Store
	var analyzer insight.Analyzer

	switch cfg.Warehouse.Platform {
	case "snowflake":
		db, err := snowflake.NewDB(profile)
		if err != nil {
			return err
		}
		priceStore = snowflake.NewStore(db)
		analyzer, err = insight.NewCortexAnalyzer(db, cfg.AI.Model)
		if err != nil {
			return err
		}
	case "databricks":
		db, err := databricks.NewDB(profile)
		if err != nil {
			return err
		}
		priceStore = databricks.NewStore(db)
		analyzer = insight.NewDisabledAnalyzer()
	default:
		return fmt.Errorf("unsupported warehouse platform %q", cfg.Warehouse.Platform)
	}

	cachedStore := cache.NewStore(priceStore, cfg.Cache.TTL)

	explorer, err := analyticssvc.NewExplorer(cachedStore)
	if err != nil {
		return err
	}

	logger.Info().
		Str("platform", cfg.Warehouse.Platform).
		Str("profile", profile.Name).
		Msg("warehouse connection configured")

	api := server.NewWebAPI(logger, server.Config{
		Addr:            cfg.Server.Addr,
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
		Dependencies: server.Dependencies{
			Explorer: explorer,
			Analyzer: analyzer,
		},
	})

	return api.Start()
}
