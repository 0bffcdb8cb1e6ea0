package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/eco-tools/cpi-pulse/pkg/adapters"
	"github.com/eco-tools/cpi-pulse/pkg/models/domain"
	"github.com/eco-tools/cpi-pulse/pkg/models/store"
	"github.com/eco-tools/cpi-pulse/pkg/services/chartrange"
	"github.com/eco-tools/cpi-pulse/pkg/services/config"
	"github.com/eco-tools/cpi-pulse/pkg/services/contribution"
	"github.com/eco-tools/cpi-pulse/pkg/services/rates"
	"github.com/eco-tools/cpi-pulse/pkg/services/series"
	"github.com/eco-tools/cpi-pulse/pkg/store/prices"
	"github.com/rs/zerolog"
)

// RatesResult is one product's change-rate table plus its chart range.
type RatesResult struct {
	Product string
	Rates   []domain.ChangeRate
	Range   domain.DisplayRange
}

// ContributionResult is the decomposition table plus its chart range.
type ContributionResult struct {
	Points []domain.ContributionPoint
	Range  domain.DisplayRange
}

// ContributionSummary is the latest-month rollup and waterfall.
type ContributionSummary struct {
	Date       time.Time
	Categories []domain.CategorySummary
	Waterfall  []domain.WaterfallBar
}

// Explorer is the analysis-request surface consumed by handlers and the CLI.
// Every call pulls a fresh window from the store and runs the pure engine over
// it; nothing is shared across requests.
type Explorer interface {
	ListProducts(ctx context.Context) ([]store.PriceAttribute, error)
	GetChangeRates(ctx context.Context, product string, start, end time.Time) (*RatesResult, error)
	GetMetrics(ctx context.Context, product string, start, end time.Time) (*domain.MetricSet, error)
	GetContributions(ctx context.Context, start, end time.Time, includeCore bool, categories []string) (*ContributionResult, error)
	GetContributionSummary(ctx context.Context, start, end time.Time) (*ContributionSummary, error)
}

type explorer struct {
	store      prices.Store
	decomposer *contribution.Decomposer
	frequency  string
}

// NewExplorer builds the analytics service over a price store. Category
// configuration is validated here, once, at initialization.
func NewExplorer(priceStore prices.Store) (Explorer, error) {
	if err := config.ValidateCategories(config.ContributionCategories); err != nil {
		return nil, fmt.Errorf("invalid category configuration: %w", err)
	}
	return &explorer{
		store:      priceStore,
		decomposer: contribution.NewDecomposer(config.HeadlineEntity, config.CoreEntity, config.ContributionCategories),
		frequency:  rates.FrequencyMonthly,
	}, nil
}

func (e *explorer) ListProducts(ctx context.Context) ([]store.PriceAttribute, error) {
	return e.store.ListPriceAttributes(ctx)
}

func (e *explorer) GetChangeRates(
	ctx context.Context,
	product string,
	start, end time.Time,
) (*RatesResult, error) {
	observations, frequency, err := e.loadProductSeries(ctx, product, start, end)
	if err != nil {
		return nil, err
	}

	aligned := series.Align(observations)
	changeRates := rates.ComputeChangeRates(aligned, frequency)

	var moms, yoys []*float64
	for _, r := range changeRates {
		moms = append(moms, r.MoMPct)
		yoys = append(yoys, r.YoYPct)
	}

	return &RatesResult{
		Product: product,
		Rates:   changeRates,
		Range:   chartrange.ComputeFromOptional(moms, yoys),
	}, nil
}

func (e *explorer) GetMetrics(
	ctx context.Context,
	product string,
	start, end time.Time,
) (*domain.MetricSet, error) {
	observations, frequency, err := e.loadProductSeries(ctx, product, start, end)
	if err != nil {
		return nil, err
	}

	metrics := rates.ComputeMetrics(series.Align(observations), frequency)
	if metrics.EntityID == "" {
		metrics.EntityID = product
	}
	return &metrics, nil
}

func (e *explorer) GetContributions(
	ctx context.Context,
	start, end time.Time,
	includeCore bool,
	categories []string,
) (*ContributionResult, error) {
	points, err := e.computeContributions(ctx, start, end, includeCore)
	if err != nil {
		return nil, err
	}
	points = contribution.FilterByCategories(points, categories)

	var contributions, headline []float64
	for _, p := range points {
		contributions = append(contributions, p.ContributionPct)
		headline = append(headline, p.HeadlineYoYPct)
	}

	return &ContributionResult{
		Points: points,
		Range:  chartrange.Compute(contributions, headline),
	}, nil
}

func (e *explorer) GetContributionSummary(
	ctx context.Context,
	start, end time.Time,
) (*ContributionSummary, error) {
	points, err := e.computeContributions(ctx, start, end, false)
	if err != nil {
		return nil, err
	}

	latest, ok := contribution.LatestTimestamp(points)
	if !ok {
		return &ContributionSummary{}, nil
	}

	byCategory := contribution.LatestSummary(points)
	categories := make([]domain.CategorySummary, 0, len(config.WaterfallOrder))
	for _, id := range config.WaterfallOrder {
		if summary, found := byCategory[id]; found {
			categories = append(categories, summary)
		}
	}

	return &ContributionSummary{
		Date:       latest,
		Categories: categories,
		Waterfall:  e.decomposer.WaterfallAt(points, latest, config.WaterfallOrder),
	}, nil
}

func (e *explorer) computeContributions(
	ctx context.Context,
	start, end time.Time,
	includeCore bool,
) ([]domain.ContributionPoint, error) {
	records, err := e.store.GetContributionTimeseries(
		ctx, config.ContributionEntities(), start, end, e.frequency)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, nil
	}

	obsByEntity := series.AlignByEntity(adapters.MapPriceRecordsToObservations(records))

	startDate := start
	return e.decomposer.Compute(obsByEntity, contribution.Options{
		StartDate:   &startDate,
		IncludeCore: includeCore,
		Frequency:   e.frequency,
	}), nil
}

// loadProductSeries resolves a product name to its preferred variable and
// fetches the window. Seasonally adjusted monthly variables win when a product
// has several.
func (e *explorer) loadProductSeries(
	ctx context.Context,
	product string,
	start, end time.Time,
) ([]domain.Observation, string, error) {
	logger := zerolog.Ctx(ctx)

	attrs, err := e.store.ListPriceAttributes(ctx)
	if err != nil {
		return nil, "", err
	}

	variable, frequency := pickVariable(attrs, product, e.frequency)
	if variable == "" {
		logger.Debug().Str("product", product).Msg("no variable found for product")
		return nil, e.frequency, nil
	}

	records, err := e.store.GetTimeseries(ctx, []string{variable}, start, end)
	if err != nil {
		return nil, "", err
	}
	return adapters.MapPriceRecordsToObservations(records), frequency, nil
}

func pickVariable(attrs []store.PriceAttribute, product, preferredFrequency string) (string, string) {
	var fallbackVariable, fallbackFrequency string
	for _, attr := range attrs {
		if attr.Product != product {
			continue
		}
		if attr.SeasonallyAdjusted && attr.Frequency == preferredFrequency {
			return attr.Variable, attr.Frequency
		}
		if fallbackVariable == "" {
			fallbackVariable = attr.Variable
			fallbackFrequency = attr.Frequency
		}
	}
	return fallbackVariable, fallbackFrequency
}
