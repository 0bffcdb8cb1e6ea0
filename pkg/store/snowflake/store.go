package snowflake

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/eco-tools/cpi-pulse/pkg/models/store"
	"github.com/eco-tools/cpi-pulse/pkg/store/prices"
	"github.com/rs/zerolog"
)

const (
	attributesTable = "FINANCE__ECONOMICS.CYBERSYN.BUREAU_OF_LABOR_STATISTICS_PRICE_ATTRIBUTES"
	timeseriesTable = "FINANCE__ECONOMICS.CYBERSYN.BUREAU_OF_LABOR_STATISTICS_PRICE_TIMESERIES"
)

type priceStore struct {
	db *sql.DB
}

// NewStore returns a prices.Store backed by the Cybersyn BLS price tables.
func NewStore(db *sql.DB) prices.Store {
	return &priceStore{db: db}
}

func (s *priceStore) ListPriceAttributes(ctx context.Context) ([]store.PriceAttribute, error) {
	logger := zerolog.Ctx(ctx)
	query := fmt.Sprintf(`
		SELECT DISTINCT
			VARIABLE,
			VARIABLE_NAME,
			PRODUCT,
			SEASONALLY_ADJUSTED,
			FREQUENCY,
			UNIT,
			BASE_TYPE
		FROM %s
		WHERE REPORT = 'Consumer Price Index'
			AND VARIABLE_NAME IS NOT NULL
			AND PRODUCT IS NOT NULL
		ORDER BY PRODUCT, SEASONALLY_ADJUSTED DESC`, attributesTable)

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
			ts.VARIABLE,
			ts.DATE,
			ts.VALUE,
			attr.PRODUCT,
			attr.SEASONALLY_ADJUSTED,
			attr.FREQUENCY,
			attr.UNIT
		FROM %s ts
		JOIN %s attr ON ts.VARIABLE = attr.VARIABLE
		WHERE ts.VARIABLE IN (%s)
			AND ts.DATE >= ?
			AND ts.DATE <= ?
			AND ts.VALUE IS NOT NULL
		ORDER BY ts.VARIABLE, ts.DATE`,
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

	// One year of lookback before the display window so the first displayed
	// months still have valid YoY values.
	extendedStart := start.AddDate(-1, 0, 0)

	query := fmt.Sprintf(`
		SELECT
			ts.VARIABLE,
			ts.DATE,
			ts.VALUE,
			attr.PRODUCT,
			attr.SEASONALLY_ADJUSTED,
			attr.FREQUENCY,
			attr.UNIT
		FROM %s ts
		JOIN %s attr ON ts.VARIABLE = attr.VARIABLE
		WHERE attr.REPORT = 'Consumer Price Index'
			AND attr.SEASONALLY_ADJUSTED = TRUE
			AND attr.FREQUENCY = ?
			AND ts.DATE >= ?
			AND ts.DATE <= ?
			AND ts.VALUE IS NOT NULL
			AND attr.PRODUCT IN (%s)
		ORDER BY ts.VARIABLE, ts.DATE`,
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
