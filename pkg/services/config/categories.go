package config

import (
	"fmt"

	"github.com/eco-tools/cpi-pulse/pkg/models/domain"
)

// Entities the decomposition reconciles against.
const (
	HeadlineEntity = "All items"
	CoreEntity     = "All items less food and energy"
)

// WaterfallOrder is the fixed left-to-right bar order of the decomposition
// chart.
var WaterfallOrder = []string{"energy", "food", "core_goods", "core_services"}

// ContributionCategories is the static basket decomposition table. Weights
// are calibrated approximations of the headline basket composition and do not
// sum to exactly 1. Each category is proxied by a single representative
// sub-index rather than an average of its members. Keys are stable IDs; label,
// icon, and color are presentation attributes only.
var ContributionCategories = []domain.Category{
	{
		ID:             "core_services",
		Label:          "Core Services",
		Icon:           "🏠",
		Members:        []string{"Services less energy services", "Shelter", "Transportation services"},
		Representative: "Services less energy services",
		Weight:         0.58,
		Color:          "#4E8397",
	},
	{
		ID:             "core_goods",
		Label:          "Core Goods",
		Icon:           "📦",
		Members:        []string{"Commodities less food and energy commodities", "New vehicles", "Used vehicles and trucks"},
		Representative: "Commodities less food and energy commodities",
		Weight:         0.20,
		Color:          "#845EC2",
	},
	{
		ID:             "food",
		Label:          "Food",
		Icon:           "🍎",
		Members:        []string{"Food", "Food at home", "Food away from home"},
		Representative: "Food",
		Weight:         0.14,
		Color:          "#F18F01",
	},
	{
		ID:             "energy",
		Label:          "Energy",
		Icon:           "⚡",
		Members:        []string{"Energy", "Energy commodities", "Energy services", "Gasoline (all types)"},
		Representative: "Energy",
		Weight:         0.08,
		Color:          "#C73E1D",
	},
}

// ContributionEntities lists every entity the contribution store query must
// fetch: the two aggregates plus all category members.
func ContributionEntities() []string {
	entities := []string{HeadlineEntity, CoreEntity}
	seen := map[string]bool{HeadlineEntity: true, CoreEntity: true}
	for _, cat := range ContributionCategories {
		for _, member := range cat.Members {
			if !seen[member] {
				seen[member] = true
				entities = append(entities, member)
			}
		}
	}
	return entities
}

// ValidateCategories rejects malformed category configuration. This is the
// only place a "missing data" style condition raises, and it raises at
// initialization, never per request.
func ValidateCategories(categories []domain.Category) error {
	if len(categories) == 0 {
		return fmt.Errorf("category table is empty")
	}
	seen := make(map[string]bool, len(categories))
	for _, cat := range categories {
		if cat.ID == "" {
			return fmt.Errorf("category %q has no ID", cat.Label)
		}
		if seen[cat.ID] {
			return fmt.Errorf("duplicate category ID %q", cat.ID)
		}
		seen[cat.ID] = true
		if cat.Representative == "" {
			return fmt.Errorf("category %q has no representative entity", cat.ID)
		}
		if cat.Weight <= 0 || cat.Weight > 1 {
			return fmt.Errorf("category %q weight %v outside (0,1]", cat.ID, cat.Weight)
		}
	}
	return nil
}
