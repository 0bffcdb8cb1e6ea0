package domain

import "time"

// Category is a static configuration entity mapping a basket slice to its
// representative sub-index. Defined once at process start, never mutated.
type Category struct {
	ID             string
	Label          string
	Icon           string
	Members        []string
	Representative string
	Weight         float64
	Color          string
}

// ContributionPoint is one category's weighted share of headline inflation at
// a single timestamp. CoreYoYPct is populated only when the core aggregate is
// in scope for the request.
type ContributionPoint struct {
	Timestamp       time.Time
	CategoryID      string
	CategoryLabel   string
	Weight          float64
	ContributionPct float64
	CategoryYoYPct  float64
	HeadlineYoYPct  float64
	CoreYoYPct      *float64
	Color           string
}

// CategorySummary is the latest-month rollup for one category.
type CategorySummary struct {
	CategoryID      string
	Label           string
	ContributionPct float64
	CategoryYoYPct  float64
	Weight          float64
	Color           string
}

// WaterfallBar is a single bar of the latest-month decomposition chart,
// emitted in a fixed category order so bars line up across renders.
type WaterfallBar struct {
	CategoryID      string
	Label           string
	ContributionPct float64
	Present         bool
	Color           string
}
