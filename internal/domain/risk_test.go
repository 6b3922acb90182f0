package domain

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyRisk(t *testing.T) {
	tests := []struct {
		percent  int
		expected RiskLevel
	}{
		{100, RiskHigh},
		{71, RiskHigh},
		{70, RiskMedium},
		{41, RiskMedium},
		{40, RiskLow},
		{0, RiskLow},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, ClassifyRisk(tt.percent), "percent %d", tt.percent)
	}
}

func TestAnalyzeRisk(t *testing.T) {
	t.Run("scores stay in their ranges", func(t *testing.T) {
		for range 50 {
			report := AnalyzeRisk("Springfield")

			assert.Equal(t, "Springfield", report.Query)
			assert.GreaterOrEqual(t, report.Natural.Score, 30)
			assert.Less(t, report.Natural.Score, 70)
			assert.GreaterOrEqual(t, report.Population.Score, 25)
			assert.Less(t, report.Population.Score, 75)
			assert.GreaterOrEqual(t, report.Infrastructure.Score, 20)
			assert.Less(t, report.Infrastructure.Score, 80)
		}
	})

	t.Run("levels match their scores", func(t *testing.T) {
		report := AnalyzeRisk("anywhere")
		assert.Equal(t, ClassifyRisk(report.Natural.Score), report.Natural.Level)
		assert.Equal(t, ClassifyRisk(report.Population.Score), report.Population.Level)
		assert.Equal(t, ClassifyRisk(report.Infrastructure.Score), report.Infrastructure.Level)
	})

	t.Run("deterministic with a seeded source", func(t *testing.T) {
		SetRand(rand.New(rand.NewSource(11)))
		defer SetRand(nil)
		first := AnalyzeRisk("Springfield")

		SetRand(rand.New(rand.NewSource(11)))
		second := AnalyzeRisk("Springfield")

		assert.Equal(t, first, second)
	})
}

func TestSafeZones(t *testing.T) {
	zones := SafeZones()
	require.Len(t, zones, 4)
	assert.Equal(t, "Community Center", zones[0].Name)
	assert.Equal(t, "0.8 miles", zones[0].Distance)
	assert.Equal(t, "500 people", zones[0].Capacity)

	// Mutating the returned slice must not leak into the catalog.
	zones[0].Name = "changed"
	assert.Equal(t, "Community Center", SafeZones()[0].Name)
}

func TestEvacuationRoute(t *testing.T) {
	for _, direction := range []string{"north", "south", "east", "west"} {
		route, err := EvacuationRoute(direction)
		require.NoError(t, err, "direction %s", direction)
		assert.Contains(t, route, "miles to safety zone")
	}

	route, err := EvacuationRoute("north")
	require.NoError(t, err)
	assert.Equal(t, "Highway 101 North - Clear roads, 45 miles to safety zone", route)

	_, err = EvacuationRoute("up")
	require.Error(t, err)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "direction", verr.Field)
}
