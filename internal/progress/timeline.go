package progress

import (
	"math"
	"time"

	"github.com/alexanderramin/cadence/internal/domain"
)

// Timeline is how far a project has moved through its calendar window.
type Timeline struct {
	ElapsedPct    int `json:"elapsedPct"`
	DaysRemaining int `json:"daysRemaining"`
	TotalDays     int `json:"totalDays"`
}

// TimeProgress measures elapsed calendar time between start and end at now.
// A zero-length window reports 0%.
func TimeProgress(start, end, now time.Time) Timeline {
	total := domain.DaysBetween(start, end)
	tl := Timeline{
		TotalDays:     max(0, total),
		DaysRemaining: max(0, domain.DaysBetween(now, end)),
	}
	if total <= 0 {
		return tl
	}
	pct := math.Round(float64(domain.DaysBetween(start, now)) / float64(total) * 100)
	tl.ElapsedPct = int(math.Max(0, math.Min(100, pct)))
	return tl
}
