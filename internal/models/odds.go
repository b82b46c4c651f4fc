package models

import "sort"

// OddsQuote is one cumulative threshold market outcome ("over N") together
// with the raw prices collected from multiple bookmakers. Prices keep the
// exact strings the comparison site shows; parsing is the decoder's job.
type OddsQuote struct {
	Threshold int      `json:"threshold"`
	Prices    []string `json:"prices"`
}

// Distribution maps a discrete non-negative outcome count to its
// probability. Fully decoded distributions sum to 1 within tolerance;
// distributions built from incomplete markets may sum to less.
type Distribution map[int]float64

// Mass returns the probability of exactly k, 0 when unmodelled.
func (d Distribution) Mass(k int) float64 {
	return d[k]
}

// Mean returns the expected value of the distribution.
func (d Distribution) Mean() float64 {
	var mean float64
	for k, p := range d {
		mean += float64(k) * p
	}
	return mean
}

// Total returns the summed probability mass.
func (d Distribution) Total() float64 {
	var total float64
	for _, p := range d {
		total += p
	}
	return total
}

// Outcomes returns the modelled outcome counts in ascending order.
func (d Distribution) Outcomes() []int {
	out := make([]int, 0, len(d))
	for k := range d {
		out = append(out, k)
	}
	sort.Ints(out)
	return out
}

// MatchOdds holds the decoded win-market probabilities of one fixture.
type MatchOdds struct {
	HomeWin float64 `json:"home_win"`
	Draw    float64 `json:"draw"`
	AwayWin float64 `json:"away_win"`
}
