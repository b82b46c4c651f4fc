package history

import "fmt"

// Tier buckets opponents by their final league position. Tier 1 holds
// the strongest band; TierUnknown covers opponents with no recorded
// position.
type Tier int

const (
	// TierAny matches every tier when used in a Filter. It is the zero
	// value so an empty Filter sums all buckets.
	TierAny Tier = 0
	// TierUnknown marks an opponent whose league position is
	// unavailable.
	TierUnknown Tier = -1
)

// DefaultTierWidth is the band width used when a season specifies none.
const DefaultTierWidth = 4

func (t Tier) String() string {
	if t == TierUnknown {
		return "unknown"
	}
	return fmt.Sprintf("tier%d", int(t))
}

// TierOf maps a final league position to its band for the given width.
// Positions outside 1..20 and non-positive widths fall into TierUnknown.
func TierOf(position, width int) Tier {
	if width <= 0 {
		width = DefaultTierWidth
	}
	if position < 1 || position > 20 {
		return TierUnknown
	}
	return Tier((position-1)/width + 1)
}
