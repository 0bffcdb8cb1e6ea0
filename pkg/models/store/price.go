package store

import "time"

// PriceAttribute describes one variable from the warehouse attribute table.
type PriceAttribute struct {
	Variable           string
	VariableName       string
	Product            string
	SeasonallyAdjusted bool
	Frequency          string
	Unit               string
	BaseType           string
}

// PriceRecord is a single raw index observation as returned by the warehouse.
type PriceRecord struct {
	Variable           string
	Product            string
	Date               time.Time
	Value              float64
	SeasonallyAdjusted bool
	Frequency          string
	Unit               string
}
