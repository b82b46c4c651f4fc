package forecast

import (
	"math"

	"github.com/yourusername/points-forecast/internal/models"
)

// Thresholds a player's defensive actions must clear in one match to
// earn the two contribution points.
const (
	defenderActionThreshold = 10
	outfieldActionThreshold = 12
)

// defensePoints estimates defensive-contribution points per match. The
// player's actions are modelled as a normal around their per-90 count
// with spread half the mean, truncated to the plausible range up to
// twice the mean. The estimate is two points times the probability mass
// above the position's threshold within that range. Every playing
// position qualifies; only managers are excluded.
func defensePoints(pos models.Position, actionsPer90 float64) float64 {
	if actionsPer90 <= 0 || pos == models.PositionManager {
		return 0
	}
	threshold := float64(outfieldActionThreshold)
	if pos == models.PositionDefender {
		threshold = float64(defenderActionThreshold)
	}

	mu := actionsPer90
	sigma := mu / 2
	span := normalCDF(2*mu, mu, sigma) - normalCDF(0, mu, sigma)
	if span <= 0 {
		return 0
	}
	above := normalCDF(2*mu, mu, sigma) - normalCDF(threshold, mu, sigma)
	p := 2 * above / span
	if p < 0 {
		return 0
	}
	return p
}

// normalCDF is the cumulative distribution of a normal with the given
// mean and standard deviation.
func normalCDF(x, mu, sigma float64) float64 {
	return 0.5 * math.Erfc(-(x-mu)/(sigma*math.Sqrt2))
}
