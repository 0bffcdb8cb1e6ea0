package api

import "time"

type Product struct {
	Variable           string `json:"variable"`
	Name               string `json:"name"`
	Product            string `json:"product"`
	SeasonallyAdjusted bool   `json:"seasonally_adjusted"`
	Frequency          string `json:"frequency"`
	Unit               string `json:"unit,omitempty"`
}

type ChangeRate struct {
	Date   time.Time `json:"date"`
	Level  float64   `json:"level"`
	MoMPct *float64  `json:"mom_pct,omitempty"`
	YoYPct *float64  `json:"yoy_pct,omitempty"`
}

type DisplayRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

type ChangeRateTable struct {
	Product string       `json:"product"`
	Rates   []ChangeRate `json:"rates"`
	Range   DisplayRange `json:"range"`
}

type MetricSet struct {
	Product       string    `json:"product"`
	CurrentLevel  float64   `json:"current_level"`
	LatestDate    time.Time `json:"latest_date"`
	MoMPct        *float64  `json:"mom_pct,omitempty"`
	YoYPct        *float64  `json:"yoy_pct,omitempty"`
	ThreeMonthPct *float64  `json:"three_month_pct,omitempty"`
	VolatilityPct *float64  `json:"volatility_pct,omitempty"`
	TrendStatus   string    `json:"trend_status,omitempty"`
	TrendIcon     string    `json:"trend_icon,omitempty"`
}

type ContributionPoint struct {
	Date            time.Time `json:"date"`
	Category        string    `json:"category"`
	Label           string    `json:"label"`
	Weight          float64   `json:"weight"`
	ContributionPct float64   `json:"contribution_pct"`
	CategoryYoYPct  float64   `json:"category_yoy_pct"`
	HeadlineYoYPct  float64   `json:"headline_yoy_pct"`
	CoreYoYPct      *float64  `json:"core_yoy_pct,omitempty"`
	Color           string    `json:"color"`
}

type ContributionTable struct {
	Points []ContributionPoint `json:"points"`
	Range  DisplayRange        `json:"range"`
}

type CategorySummary struct {
	Category        string  `json:"category"`
	Label           string  `json:"label"`
	ContributionPct float64 `json:"contribution_pct"`
	CategoryYoYPct  float64 `json:"category_yoy_pct"`
	Weight          float64 `json:"weight"`
	Color           string  `json:"color"`
}

type WaterfallBar struct {
	Category        string  `json:"category"`
	Label           string  `json:"label"`
	ContributionPct float64 `json:"contribution_pct"`
	Present         bool    `json:"present"`
	Color           string  `json:"color"`
}

type ContributionSummary struct {
	Date       time.Time         `json:"date"`
	Categories []CategorySummary `json:"categories"`
	Waterfall  []WaterfallBar    `json:"waterfall"`
}

type AnalysisRequest struct {
	Products []string `json:"products"`
	Model    string   `json:"model,omitempty"`
}

type AnalysisResponse struct {
	Model    string `json:"model"`
	Summary  string `json:"summary"`
	Analysis string `json:"analysis"`
}
