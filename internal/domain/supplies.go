package domain

import (
	"math"
	"strconv"
	"strings"
)

// Category groups supply items for planning and progress tracking.
type Category string

const (
	CategoryFood    Category = "food"
	CategoryMedical Category = "medical"
	CategoryTools   Category = "tools"
	CategoryShelter Category = "shelter"
)

// Categories lists all supply categories in display order.
var Categories = []Category{CategoryFood, CategoryMedical, CategoryTools, CategoryShelter}

// Defaults substituted when household size or duration is zero or negative.
const (
	DefaultHouseholdSize = 2
	DefaultDurationDays  = 14
)

// SupplyItem is one row of the computed supply list. Quantity is derived from
// the household size and duration; Checked is the only user-mutable field.
type SupplyItem struct {
	Category Category `json:"category"`
	Name     string   `json:"name"`
	Quantity int      `json:"quantity"`
	Unit     string   `json:"unit"`
	Checked  bool     `json:"checked"`
}

// catalogEntry defines one item's fixed name, unit, and quantity formula.
type catalogEntry struct {
	name     string
	unit     string
	quantity func(n, d int) int
}

// supplyCatalog is the fixed planning table. Formulas must not change: the
// quantities are part of the planner's published behavior.
var supplyCatalog = map[Category][]catalogEntry{
	CategoryFood: {
		{"Water", "gallons", func(n, d int) int { return n * d }},
		{"Non-perishable meals", "meals", func(n, d int) int { return n * d * 3 }},
		{"Canned goods", "cans", func(n, _ int) int { return n * 20 }},
		{"Energy bars", "bars", func(n, _ int) int { return n * 10 }},
		{"Dried fruits/nuts", "lbs", func(n, _ int) int { return n * 5 }},
	},
	CategoryMedical: {
		{"First aid kit", "kit", func(_, _ int) int { return 1 }},
		{"Prescription medications", "days supply", func(_, d int) int { return d }},
		{"Pain relievers", "bottles", func(_, _ int) int { return 2 }},
		{"Bandages", "count", func(_, _ int) int { return 20 }},
		{"Antiseptic", "bottles", func(_, _ int) int { return 3 }},
	},
	CategoryTools: {
		{"Flashlights", "count", func(n, _ int) int { return n }},
		{"Batteries", "count", func(_, _ int) int { return 20 }},
		{"Multi-tool", "count", func(_, _ int) int { return 2 }},
		{"Duct tape", "rolls", func(_, _ int) int { return 3 }},
		{"Rope", "feet", func(_, _ int) int { return 100 }},
	},
	CategoryShelter: {
		{"Emergency blankets", "count", func(n, _ int) int { return n * 2 }},
		{"Sleeping bags", "count", func(n, _ int) int { return n }},
		{"Tarps", "count", func(_, _ int) int { return 2 }},
		{"Warm clothing sets", "sets", func(n, _ int) int { return n }},
		{"Rain gear", "sets", func(n, _ int) int { return n }},
	},
}

// CheckedKey is the identity key of a supply item, used both for checked-state
// carryover across recomputes and as the persisted map key.
func CheckedKey(category Category, name string) string {
	return string(category) + "_" + name
}

// ComputeSupplies derives the full supply list for a household size and
// duration, restoring checked state from the given map by item key. Zero or
// negative inputs fall back to the defaults rather than failing.
func ComputeSupplies(householdSize, durationDays int, checked map[string]bool) []SupplyItem {
	if householdSize <= 0 {
		householdSize = DefaultHouseholdSize
	}
	if durationDays <= 0 {
		durationDays = DefaultDurationDays
	}

	items := make([]SupplyItem, 0, 20)
	for _, category := range Categories {
		for _, entry := range supplyCatalog[category] {
			items = append(items, SupplyItem{
				Category: category,
				Name:     entry.name,
				Quantity: entry.quantity(householdSize, durationDays),
				Unit:     entry.unit,
				Checked:  checked[CheckedKey(category, entry.name)],
			})
		}
	}
	return items
}

// HasSupplyItem reports whether the catalog contains an item with the given
// category and name.
func HasSupplyItem(category Category, name string) bool {
	for _, entry := range supplyCatalog[category] {
		if entry.name == name {
			return true
		}
	}
	return false
}

// ProgressLevel classifies a category's completion percentage.
type ProgressLevel string

const (
	ProgressGood     ProgressLevel = "good"     // >= 80%
	ProgressWarning  ProgressLevel = "warning"  // >= 50%
	ProgressCritical ProgressLevel = "critical" // below 50%
)

// ClassifyProgress maps a completion percentage to its three-tier level.
func ClassifyProgress(percent int) ProgressLevel {
	switch {
	case percent >= 80:
		return ProgressGood
	case percent >= 50:
		return ProgressWarning
	default:
		return ProgressCritical
	}
}

// CategoryProgress summarizes checked completion for one category.
type CategoryProgress struct {
	Category Category      `json:"category"`
	Checked  int           `json:"checked"`
	Total    int           `json:"total"`
	Percent  int           `json:"percent"`
	Level    ProgressLevel `json:"level"`
}

// Progress computes per-category completion in catalog order. A category with
// no items reports 0% critical.
func Progress(items []SupplyItem) []CategoryProgress {
	progress := make([]CategoryProgress, 0, len(Categories))
	for _, category := range Categories {
		var checked, total int
		for _, item := range items {
			if item.Category != category {
				continue
			}
			total++
			if item.Checked {
				checked++
			}
		}
		percent := 0
		if total > 0 {
			percent = int(math.Round(100 * float64(checked) / float64(total)))
		}
		progress = append(progress, CategoryProgress{
			Category: category,
			Checked:  checked,
			Total:    total,
			Percent:  percent,
			Level:    ClassifyProgress(percent),
		})
	}
	return progress
}

// CountChecked returns the checked and total item counts for a supply list.
func CountChecked(items []SupplyItem) (checked, total int) {
	for _, item := range items {
		total++
		if item.Checked {
			checked++
		}
	}
	return checked, total
}

// ExportSupplyList renders the supply list as plain text with COMPLETED and
// NEEDED sections, the format the export action downloads.
func ExportSupplyList(items []SupplyItem) string {
	var completed, needed []string
	for _, item := range items {
		line := item.Name + " - Need: " + strconv.Itoa(item.Quantity) + " " + item.Unit
		if item.Checked {
			completed = append(completed, "✓ "+line)
		} else {
			needed = append(needed, "○ "+line)
		}
	}

	var b strings.Builder
	b.WriteString("PREPAREDNESS PLANNER - SUPPLY LIST\n\n")
	b.WriteString("COMPLETED:\n")
	b.WriteString(strings.Join(completed, "\n"))
	b.WriteString("\n\nNEEDED:\n")
	b.WriteString(strings.Join(needed, "\n"))
	return b.String()
}
