package models

// Rate is a numerator/denominator pair. Carrying the denominator lets
// callers distinguish "no observations" from "observed zero", which a bare
// float cannot express.
type Rate struct {
	Num float64 `json:"num"`
	Den float64 `json:"den"`
}

// Value returns Num/Den, or 0 when there are no observations.
func (r Rate) Value() float64 {
	if r.Den == 0 {
		return 0
	}
	return r.Num / r.Den
}

// Known reports whether the rate is backed by at least one observation.
func (r Rate) Known() bool {
	return r.Den > 0
}

// Or returns r when it is known, otherwise the fallback.
func (r Rate) Or(fallback Rate) Rate {
	if r.Known() {
		return r
	}
	return fallback
}

// Combined merges the observations of two rates into one.
func (r Rate) Combined(other Rate) Rate {
	return Rate{Num: r.Num + other.Num, Den: r.Den + other.Den}
}
