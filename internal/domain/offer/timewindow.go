package offer

import (
	"fmt"
	"time"
)

// Boundary constants for the remaining-time label format. Multiple
// independent views switch format at these points and must agree exactly.
const (
	DaysLabelFrom  = 48 * time.Hour
	HoursLabelFrom = time.Hour
)

const ExpiredLabel = "expired"

// TimeWindow annotates an availability window relative to a point in time.
// It is a pure function of its three inputs and is recomputed on every
// request; freshness defines correctness, so nothing here is cached.
type TimeWindow struct {
	Remaining        time.Duration
	PercentRemaining float64
	Tier             Tier
	Expired          bool
	Label            string
}

// AnnotateWindow derives countdown state for [from, until) at now. A
// malformed window (until <= from) is treated as already expired rather
// than risking a division by zero or a negative percentage.
func AnnotateWindow(from, until, now time.Time) TimeWindow {
	remaining := until.Sub(now)
	total := until.Sub(from)

	if remaining <= 0 || total <= 0 {
		return TimeWindow{
			Remaining:        0,
			PercentRemaining: 0,
			Tier:             TierCritical,
			Expired:          true,
			Label:            ExpiredLabel,
		}
	}

	elapsed := now.Sub(from)
	pct := float64(total-elapsed) / float64(total) * 100
	if pct < 0 {
		pct = 0
	}
	if pct > 100 {
		pct = 100
	}

	return TimeWindow{
		Remaining:        remaining,
		PercentRemaining: pct,
		Tier:             TierFor(pct),
		Expired:          false,
		Label:            formatRemaining(remaining),
	}
}

func formatRemaining(remaining time.Duration) string {
	days := int(remaining / (24 * time.Hour))
	hours := int(remaining/time.Hour) % 24
	minutes := int(remaining/time.Minute) % 60

	switch {
	case remaining >= DaysLabelFrom:
		return fmt.Sprintf("%d days %dh", days, hours)
	case remaining >= HoursLabelFrom:
		return fmt.Sprintf("%dh %dmin", int(remaining/time.Hour), minutes)
	default:
		return fmt.Sprintf("%d min", minutes)
	}
}
