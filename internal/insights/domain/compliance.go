package domain

import (
	tracking "github.com/felixgeelhaar/phoenix/internal/tracking/domain"
)

// WeeklyCompliance is the share of weekdays taken, in percent.
func WeeklyCompliance(h tracking.WeeklyHistory) float64 {
	return percent(h.Count(), 7)
}

// SupplementCompliance pairs a supplement with its weekly compliance.
type SupplementCompliance struct {
	Name       string
	Percent    float64
	TakenToday bool
}

// Compliance reports every supplement's weekly compliance in snapshot order.
func Compliance(s Snapshot) []SupplementCompliance {
	out := make([]SupplementCompliance, 0, len(s.Supplements))
	for _, sp := range s.Supplements {
		out = append(out, SupplementCompliance{
			Name:       sp.Name,
			Percent:    WeeklyCompliance(sp.History),
			TakenToday: sp.TakenToday,
		})
	}
	return out
}
