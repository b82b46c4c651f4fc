package odds

import (
	"github.com/yourusername/points-forecast/internal/models"
)

// DefaultMargin is the bookmaker overround removed from each price
// before it is inverted into a probability.
const DefaultMargin = 0.05

// Decoder converts cumulative over-threshold markets into discrete
// outcome distributions.
type Decoder struct {
	// Margin is the bookmaker overround. Zero disables the adjustment.
	Margin float64
}

// NewDecoder returns a decoder using the standard overround.
func NewDecoder() *Decoder {
	return &Decoder{Margin: DefaultMargin}
}

// Probability averages a market's prices into the implied probability
// of the outcome. Unparseable prices are dropped, outliers trimmed, and
// the bookmaker margin removed before inversion. An empty or fully
// discarded market yields probability zero.
func (d *Decoder) Probability(raw []string) (p float64, discarded int) {
	prices, discarded := ParsePrices(raw)
	trimmed := TrimOutliers(prices)
	discarded += len(prices) - len(trimmed)
	if len(trimmed) == 0 {
		return 0, discarded
	}
	price := meanOf(trimmed)
	if d.Margin > 0 && d.Margin < 1 {
		price /= 1 - d.Margin
	}
	return 1 / price, discarded
}

// Decode turns a set of cumulative over-threshold quotes into a
// probability mass per exact outcome count. The mass at zero is the
// complement of the lowest threshold; each interior count takes the
// drop between its neighbouring thresholds, clamped at zero; the bucket
// above the highest threshold absorbs that threshold's whole tail.
// When only the lower cumulative of a drop is quoted it stands in as
// the whole bucket mass; a bucket with no lower cumulative gets none,
// since its tail is already carried by the buckets above it. Totals may
// land away from one on thin markets.
func (d *Decoder) Decode(quotes []models.OddsQuote) (models.Distribution, int) {
	cum := map[int]float64{}
	highest := -1
	var discarded int
	for _, q := range quotes {
		p, n := d.Probability(q.Prices)
		discarded += n
		if p <= 0 {
			continue
		}
		cum[q.Threshold] = p
		if q.Threshold > highest {
			highest = q.Threshold
		}
	}

	dist := models.Distribution{}
	if highest < 0 {
		return dist, discarded
	}

	if p, ok := cum[0]; ok {
		dist[0] = 1 - p
	} else {
		dist[0] = 0
	}

	for t := 0; t < highest; t++ {
		lo, okLo := cum[t]
		if !okLo {
			continue
		}
		if hi, okHi := cum[t+1]; okHi {
			m := lo - hi
			if m < 0 {
				m = 0
			}
			dist[t+1] = m
		} else {
			dist[t+1] = lo
		}
	}
	dist[highest+1] = cum[highest]

	return dist, discarded
}
