package offer

// Tier is the discrete urgency bucket derived from the share of the
// availability window still remaining. Every surface that renders urgency
// (merchant cards, customer detail, list summaries) shares these thresholds.
type Tier string

const (
	TierOK       Tier = "ok"
	TierWarning  Tier = "warning"
	TierCritical Tier = "critical"
)

const (
	// PercentRemaining below this is critical.
	CriticalBelowPercent = 33.0
	// PercentRemaining below this (and >= CriticalBelowPercent) is warning.
	WarningBelowPercent = 66.0
)

func (t Tier) String() string {
	return string(t)
}

func TierFor(percentRemaining float64) Tier {
	switch {
	case percentRemaining < CriticalBelowPercent:
		return TierCritical
	case percentRemaining < WarningBelowPercent:
		return TierWarning
	default:
		return TierOK
	}
}
