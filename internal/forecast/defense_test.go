package forecast

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yourusername/points-forecast/internal/models"
)

func TestDefensePointsZeroCases(t *testing.T) {
	assert.Zero(t, defensePoints(models.PositionDefender, 0))
	assert.Zero(t, defensePoints(models.PositionManager, 15))
}

func TestDefensePointsAtThresholdMean(t *testing.T) {
	// Mean exactly at the threshold puts half the truncated mass above
	// it, worth one of the two points.
	assert.InDelta(t, 1.0, defensePoints(models.PositionDefender, 10), 1e-9)
	assert.InDelta(t, 1.0, defensePoints(models.PositionMidfielder, 12), 1e-9)
}

func TestDefensePointsAppliesToGoalkeepers(t *testing.T) {
	// Keepers qualify on the outfield threshold.
	assert.InDelta(t, 1.0, defensePoints(models.PositionGoalkeeper, 12), 1e-9)
	assert.Equal(t,
		defensePoints(models.PositionMidfielder, 9),
		defensePoints(models.PositionGoalkeeper, 9))
}

func TestDefensePointsMonotonicInActions(t *testing.T) {
	prev := 0.0
	for _, mu := range []float64{4, 8, 10, 12, 16} {
		got := defensePoints(models.PositionDefender, mu)
		assert.GreaterOrEqual(t, got, prev, "mu %v", mu)
		prev = got
	}
}

func TestDefensePointsBounded(t *testing.T) {
	for _, mu := range []float64{1, 5, 10, 20, 50} {
		got := defensePoints(models.PositionForward, mu)
		assert.GreaterOrEqual(t, got, 0.0)
		assert.LessOrEqual(t, got, 2.0)
	}
}

func TestDefenderThresholdLowerThanOutfield(t *testing.T) {
	assert.Greater(t,
		defensePoints(models.PositionDefender, 11),
		defensePoints(models.PositionMidfielder, 11))
}
