package odds

import (
	"fmt"
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// ParsePrice converts a raw bookmaker price string to its decimal-odds
// value. Fractional quotes like "5/2" decode to a/b+1; anything else is
// parsed as a plain decimal price. Whitespace inside the quote is
// tolerated.
func ParsePrice(raw string) (float64, error) {
	s := strings.ReplaceAll(strings.TrimSpace(raw), " ", "")
	if s == "" {
		return 0, fmt.Errorf("empty price")
	}
	if num, den, ok := strings.Cut(s, "/"); ok {
		n, err := decimal.NewFromString(num)
		if err != nil {
			return 0, fmt.Errorf("parse fractional price %q: %w", raw, err)
		}
		d, err := decimal.NewFromString(den)
		if err != nil {
			return 0, fmt.Errorf("parse fractional price %q: %w", raw, err)
		}
		if d.IsZero() {
			return 0, fmt.Errorf("fractional price %q has zero denominator", raw)
		}
		v, _ := n.Div(d).Add(decimal.NewFromInt(1)).Float64()
		return v, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, fmt.Errorf("parse decimal price %q: %w", raw, err)
	}
	v, _ := d.Float64()
	return v, nil
}

// ParsePrices parses every quote it can and reports how many it could
// not. Unparseable quotes are dropped rather than failing the market.
func ParsePrices(raw []string) (prices []float64, discarded int) {
	for _, s := range raw {
		v, err := ParsePrice(s)
		if err != nil || v <= 1 {
			discarded++
			continue
		}
		prices = append(prices, v)
	}
	return prices, discarded
}

// TrimOutliers drops prices more than three standard deviations from
// the mean. Markets with two or fewer prices are returned untouched.
// The pass is applied once; reapplying it to its own output leaves the
// slice unchanged in practice since surviving prices sit well inside
// the band.
func TrimOutliers(prices []float64) []float64 {
	if len(prices) <= 2 {
		return prices
	}
	mean := meanOf(prices)
	var variance float64
	for _, p := range prices {
		variance += (p - mean) * (p - mean)
	}
	// Sample deviation; the market is a sample of books, not the
	// population of them.
	sd := math.Sqrt(variance / float64(len(prices)-1))

	kept := make([]float64, 0, len(prices))
	for _, p := range prices {
		if math.Abs(p-mean) <= 3*sd {
			kept = append(kept, p)
		}
	}
	return kept
}

func meanOf(prices []float64) float64 {
	var sum float64
	for _, p := range prices {
		sum += p
	}
	return sum / float64(len(prices))
}
