package databricks

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/databricks/databricks-sql-go"
	"github.com/eco-tools/cpi-pulse/pkg/models/store"
	"github.com/eco-tools/cpi-pulse/pkg/services/config"
	"github.com/eco-tools/cpi-pulse/pkg/store/prices"
	"github.com/rs/zerolog"
)

// Lakehouse mirror of the BLS price dataset.
const (
	attributesTable = "finance.bls.price_attributes"
	timeseriesTable = "finance.bls.price_timeseries"
)

type priceStore struct {
	db *sql.DB
}

// NewStore returns a prices.Store reading the BLS price mirror from a
// Databricks SQL warehouse.
func NewStore(db *sql.DB) prices.Store {
	return &priceStore{db: db}
}

// NewDB opens a Databricks SQL connection from a warehouse profile.
func NewDB(profile *config.Profile) (*sql.DB, error) {
	dsn := fmt.Sprintf("token:%s@%s%s", profile.Token, profile.Host, profile.HTTPPath)
	db, err := sql.Open("databricks", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open databricks connection: %w", err)
	}
	return db, nil
}

func (s *priceStore) ListPriceAttributes(ctx context.Context) ([]store.PriceAttribute, error) {
	logger := zerolog.Ctx(ctx)
	query := fmt.Sprintf(`
		SELECT DISTINCT
			variable,
			variable_name,
			product,
			seasonally_adjusted,
			frequency,
			unit,
			base_type
		FROM %s
		WHERE report = 'Consumer Price Index'
			AND variable_name IS NOT NULL
			AND product IS NOT NULL
		ORDER BY product, seasonally_adjusted DESC`, attributesTable)

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("price attributes query failed: %w", err)
	}
	defer closeRows(rows, logger)

	var attrs []store.PriceAttribute
	for rows.Next() {
		var a store.PriceAttribute
		var unit, baseType sql.NullString
		if err := rows.Scan(&a.Variable, &a.VariableName, &a.Product,
			&a.SeasonallyAdjusted, &a.Frequency, &unit, &baseType); err != nil {
			return nil, err
		}
		a.Unit = unit.String
		a.BaseType = baseType.String
		attrs = append(attrs, a)
	}
	return attrs, rows.Err()
}

func (s *priceStore) GetTimeseries(
	ctx context.Context,
	variables []string,
	start, end time.Time,
) ([]store.PriceRecord, error) {
	logger := zerolog.Ctx(ctx)
	if len(variables) == 0 {
		return nil, nil
	}

	query := fmt.Sprintf(`
		SELECT
			ts.variable,
			ts.date,
			ts.value,
			attr.product,
			attr.seasonally_adjusted,
			attr.frequency,
			attr.unit
		FROM %s ts
		JOIN %s attr ON ts.variable = attr.variable
		WHERE ts.variable IN (%s)
			AND ts.date >= ?
			AND ts.date <= ?
			AND ts.value IS NOT NULL
		ORDER BY ts.variable, ts.date`,
		timeseriesTable, attributesTable, placeholders(len(variables)))

	args := make([]any, 0, len(variables)+2)
	for _, v := range variables {
		args = append(args, v)
	}
	args = append(args, start, end)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("price timeseries query failed: %w", err)
	}
	defer closeRows(rows, logger)

	return scanPriceRecords(rows)
}

func (s *priceStore) GetContributionTimeseries(
	ctx context.Context,
	products []string,
	start, end time.Time,
	frequency string,
) ([]store.PriceRecord, error) {
	logger := zerolog.Ctx(ctx)
	if len(products) == 0 {
		return nil, nil
	}

	extendedStart := start.AddDate(-1, 0, 0)

	query := fmt.Sprintf(`
		SELECT
			ts.variable,
			ts.date,
			ts.value,
			attr.product,
			attr.seasonally_adjusted,
			attr.frequency,
			attr.unit
		FROM %s ts
		JOIN %s attr ON ts.variable = attr.variable
		WHERE attr.report = 'Consumer Price Index'
			AND attr.seasonally_adjusted = TRUE
			AND attr.frequency = ?
			AND ts.date >= ?
			AND ts.date <= ?
			AND ts.value IS NOT NULL
			AND attr.product IN (%s)
		ORDER BY ts.variable, ts.date`,
		timeseriesTable, attributesTable, placeholders(len(products)))

	args := make([]any, 0, len(products)+3)
	args = append(args, frequency, extendedStart, end)
	for _, p := range products {
		args = append(args, p)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("contribution timeseries query failed: %w", err)
	}
	defer closeRows(rows, logger)

	return scanPriceRecords(rows)
}

func scanPriceRecords(rows *sql.Rows) ([]store.PriceRecord, error) {
	var records []store.PriceRecord
	for rows.Next() {
		var r store.PriceRecord
		var unit sql.NullString
		if err := rows.Scan(&r.Variable, &r.Date, &r.Value, &r.Product,
			&r.SeasonallyAdjusted, &r.Frequency, &unit); err != nil {
			return nil, err
		}
		r.Unit = unit.String
		records = append(records, r)
	}
	return records, rows.Err()
}

func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}

func closeRows(rows *sql.Rows, logger *zerolog.Logger) {
	if err := rows.Close(); err != nil {
		logger.Warn().Err(err).Msg("failed to close query rows")
	}
}
