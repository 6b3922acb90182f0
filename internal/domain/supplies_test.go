package domain

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func findItem(t *testing.T, items []SupplyItem, category Category, name string) SupplyItem {
	t.Helper()
	for _, item := range items {
		if item.Category == category && item.Name == name {
			return item
		}
	}
	t.Fatalf("item %s/%s not found", category, name)
	return SupplyItem{}
}

func TestComputeSupplies(t *testing.T) {
	t.Run("full catalog in category order", func(t *testing.T) {
		items := ComputeSupplies(2, 14, nil)

		require.Len(t, items, 20)
		assert.Equal(t, CategoryFood, items[0].Category)
		assert.Equal(t, CategoryShelter, items[19].Category)

		perCategory := map[Category]int{}
		for _, item := range items {
			perCategory[item.Category]++
		}
		for _, category := range Categories {
			assert.Equal(t, 5, perCategory[category], "category %s", category)
		}
	})

	t.Run("quantities for household of 2 over 14 days", func(t *testing.T) {
		items := ComputeSupplies(2, 14, nil)

		assert.Equal(t, 28, findItem(t, items, CategoryFood, "Water").Quantity)
		assert.Equal(t, "gallons", findItem(t, items, CategoryFood, "Water").Unit)
		assert.Equal(t, 84, findItem(t, items, CategoryFood, "Non-perishable meals").Quantity)
		assert.Equal(t, 40, findItem(t, items, CategoryFood, "Canned goods").Quantity)
		assert.Equal(t, 20, findItem(t, items, CategoryFood, "Energy bars").Quantity)
		assert.Equal(t, 10, findItem(t, items, CategoryFood, "Dried fruits/nuts").Quantity)

		assert.Equal(t, 1, findItem(t, items, CategoryMedical, "First aid kit").Quantity)
		assert.Equal(t, 14, findItem(t, items, CategoryMedical, "Prescription medications").Quantity)
		assert.Equal(t, 2, findItem(t, items, CategoryMedical, "Pain relievers").Quantity)
		assert.Equal(t, 20, findItem(t, items, CategoryMedical, "Bandages").Quantity)
		assert.Equal(t, 3, findItem(t, items, CategoryMedical, "Antiseptic").Quantity)

		assert.Equal(t, 2, findItem(t, items, CategoryTools, "Flashlights").Quantity)
		assert.Equal(t, 20, findItem(t, items, CategoryTools, "Batteries").Quantity)
		assert.Equal(t, 100, findItem(t, items, CategoryTools, "Rope").Quantity)

		assert.Equal(t, 4, findItem(t, items, CategoryShelter, "Emergency blankets").Quantity)
		assert.Equal(t, 2, findItem(t, items, CategoryShelter, "Sleeping bags").Quantity)
		assert.Equal(t, 2, findItem(t, items, CategoryShelter, "Warm clothing sets").Quantity)
	})

	t.Run("quantities scale with inputs", func(t *testing.T) {
		items := ComputeSupplies(10, 30, nil)

		assert.Equal(t, 300, findItem(t, items, CategoryFood, "Water").Quantity)
		assert.Equal(t, 900, findItem(t, items, CategoryFood, "Non-perishable meals").Quantity)
		assert.Equal(t, 200, findItem(t, items, CategoryFood, "Canned goods").Quantity)
		assert.Equal(t, 30, findItem(t, items, CategoryMedical, "Prescription medications").Quantity)
		assert.Equal(t, 10, findItem(t, items, CategoryTools, "Flashlights").Quantity)
		assert.Equal(t, 20, findItem(t, items, CategoryShelter, "Emergency blankets").Quantity)

		// Fixed quantities ignore the inputs.
		assert.Equal(t, 1, findItem(t, items, CategoryMedical, "First aid kit").Quantity)
		assert.Equal(t, 100, findItem(t, items, CategoryTools, "Rope").Quantity)
	})

	t.Run("non-positive inputs fall back to defaults", func(t *testing.T) {
		expected := ComputeSupplies(DefaultHouseholdSize, DefaultDurationDays, nil)

		assert.Equal(t, expected, ComputeSupplies(0, 0, nil))
		assert.Equal(t, expected, ComputeSupplies(-3, -1, nil))
	})

	t.Run("checked state carries over by item key", func(t *testing.T) {
		checked := map[string]bool{
			CheckedKey(CategoryFood, "Water"):      true,
			CheckedKey(CategoryTools, "Batteries"): true,
		}

		items := ComputeSupplies(2, 14, checked)
		assert.True(t, findItem(t, items, CategoryFood, "Water").Checked)
		assert.True(t, findItem(t, items, CategoryTools, "Batteries").Checked)
		assert.False(t, findItem(t, items, CategoryFood, "Canned goods").Checked)

		// Recomputing with different inputs keeps the same items checked.
		items = ComputeSupplies(6, 3, checked)
		assert.True(t, findItem(t, items, CategoryFood, "Water").Checked)
		assert.Equal(t, 18, findItem(t, items, CategoryFood, "Water").Quantity)
	})
}

func TestCheckedKey(t *testing.T) {
	assert.Equal(t, "food_Water", CheckedKey(CategoryFood, "Water"))
	assert.Equal(t, "medical_First aid kit", CheckedKey(CategoryMedical, "First aid kit"))
}

func TestHasSupplyItem(t *testing.T) {
	assert.True(t, HasSupplyItem(CategoryFood, "Water"))
	assert.True(t, HasSupplyItem(CategoryShelter, "Rain gear"))
	assert.False(t, HasSupplyItem(CategoryFood, "Rope"))
	assert.False(t, HasSupplyItem(Category("weapons"), "Water"))
	assert.False(t, HasSupplyItem(CategoryFood, "water"))
}

func TestClassifyProgress(t *testing.T) {
	tests := []struct {
		percent  int
		expected ProgressLevel
	}{
		{100, ProgressGood},
		{80, ProgressGood},
		{79, ProgressWarning},
		{50, ProgressWarning},
		{49, ProgressCritical},
		{0, ProgressCritical},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, ClassifyProgress(tt.percent), "percent %d", tt.percent)
	}
}

func TestProgress(t *testing.T) {
	checked := map[string]bool{
		CheckedKey(CategoryFood, "Water"):                true,
		CheckedKey(CategoryFood, "Non-perishable meals"): true,
		CheckedKey(CategoryFood, "Canned goods"):         true,
		CheckedKey(CategoryFood, "Energy bars"):          true,
		CheckedKey(CategoryMedical, "First aid kit"):     true,
		CheckedKey(CategoryMedical, "Bandages"):          true,
		CheckedKey(CategoryMedical, "Antiseptic"):        true,
	}
	items := ComputeSupplies(2, 14, checked)

	progress := Progress(items)
	require.Len(t, progress, 4)

	food := progress[0]
	assert.Equal(t, CategoryFood, food.Category)
	assert.Equal(t, 4, food.Checked)
	assert.Equal(t, 5, food.Total)
	assert.Equal(t, 80, food.Percent)
	assert.Equal(t, ProgressGood, food.Level)

	medical := progress[1]
	assert.Equal(t, 60, medical.Percent)
	assert.Equal(t, ProgressWarning, medical.Level)

	tools := progress[2]
	assert.Equal(t, 0, tools.Percent)
	assert.Equal(t, ProgressCritical, tools.Level)
}

func TestCountChecked(t *testing.T) {
	checked := map[string]bool{
		CheckedKey(CategoryFood, "Water"):        true,
		CheckedKey(CategoryTools, "Flashlights"): true,
	}
	items := ComputeSupplies(2, 14, checked)

	got, total := CountChecked(items)
	assert.Equal(t, 2, got)
	assert.Equal(t, 20, total)
}

func TestExportSupplyList(t *testing.T) {
	checked := map[string]bool{
		CheckedKey(CategoryFood, "Water"): true,
	}
	items := ComputeSupplies(2, 14, checked)

	out := ExportSupplyList(items)

	assert.True(t, strings.HasPrefix(out, "PREPAREDNESS PLANNER - SUPPLY LIST\n\nCOMPLETED:\n"))
	assert.Contains(t, out, "✓ Water - Need: 28 gallons")
	assert.Contains(t, out, "\n\nNEEDED:\n")
	assert.Contains(t, out, "○ Canned goods - Need: 40 cans")
	assert.NotContains(t, out, "○ Water")

	completedSection := out[:strings.Index(out, "NEEDED:")]
	assert.Equal(t, 1, strings.Count(completedSection, "✓"))
	assert.Equal(t, 19, strings.Count(out, "○"))
}
