package contribution

// Tier buckets a completion percentage for chart coloring only.
type Tier string

const (
	TierLow    Tier = "low"
	TierMedium Tier = "medium"
	TierHigh   Tier = "high"
)

// TierOf maps completion to a tier: <50 low, 50-69 medium, >=70 high.
func TierOf(completion int) Tier {
	switch {
	case completion < 50:
		return TierLow
	case completion < 70:
		return TierMedium
	default:
		return TierHigh
	}
}

// Color is the bar fill used by the contribution chart.
func (t Tier) Color() string {
	switch t {
	case TierLow:
		return "#ef4444"
	case TierMedium:
		return "#facc15"
	default:
		return "#22c55e"
	}
}
