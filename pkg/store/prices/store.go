package prices

import (
	"context"
	"time"

	"github.com/eco-tools/cpi-pulse/pkg/models/store"
)

// Store is the warehouse-facing data access contract. Implementations return
// already-materialized tabular results; all analytic logic lives downstream.
type Store interface {
	// ListPriceAttributes returns the catalog of available price variables.
	ListPriceAttributes(ctx context.Context) ([]store.PriceAttribute, error)

	// GetTimeseries returns observations for the given variables inside the
	// window, ordered by variable then date.
	GetTimeseries(ctx context.Context, variables []string, start, end time.Time) ([]store.PriceRecord, error)

	// GetContributionTimeseries returns observations for the given products at
	// the given frequency. The window is extended one year back from start so
	// year-over-year lookups have context before the display window.
	GetContributionTimeseries(ctx context.Context, products []string, start, end time.Time, frequency string) ([]store.PriceRecord, error)
}
