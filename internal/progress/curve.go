package progress

import (
	"fmt"
	"math"
	"time"

	"github.com/alexanderramin/cadence/internal/domain"
)

// ChartPoint is one report's position on the planned vs actual curve.
type ChartPoint struct {
	Week        int    `json:"week"`
	Label       string `json:"label"`
	Planned     int    `json:"planned"`
	Actual      int    `json:"actual"`
	Incremental int    `json:"incremental"`
}

type Series struct {
	Points []ChartPoint `json:"points"`
	// PlannedDefined is false when the project window is too short to plan
	// against; Planned is then 0 for every point.
	PlannedDefined bool     `json:"plannedDefined"`
	TotalWeeks     int      `json:"totalWeeks"`
	Warnings       []string `json:"warnings,omitempty"`
}

// TotalProjectWeeks counts whole weeks between two dates, truncating partial weeks.
func TotalProjectWeeks(start, end time.Time) int {
	return domain.DaysBetween(start, end) / 7
}

// PlannedProgress is the linear expectation for a report week: week 1 is 0%
// and the curve reaches 100% once totalWeeks full weeks have passed.
func PlannedProgress(week, totalWeeks int) (int, error) {
	if totalWeeks <= 0 {
		return 0, &domain.ScheduleError{
			Field:   "totalWeeks",
			Message: fmt.Sprintf("project spans %d whole weeks", totalWeeks),
		}
	}
	planned := math.Round(float64(week-1) / float64(totalWeeks) * 100)
	return int(math.Max(0, math.Min(100, planned))), nil
}

// ChartSeries builds the planned, actual and incremental progress series for
// a project's reports. Reports may be passed in any order.
func ChartSeries(project *domain.Project, reports []*domain.WeeklyReport) Series {
	sorted := SortReports(reports)
	totalWeeks := TotalProjectWeeks(project.StartDate, project.EstimatedEndDate)

	series := Series{
		Points:         make([]ChartPoint, 0, len(sorted)),
		PlannedDefined: totalWeeks > 0,
		TotalWeeks:     totalWeeks,
	}
	if !series.PlannedDefined && len(sorted) > 0 {
		series.Warnings = append(series.Warnings,
			fmt.Sprintf("project spans less than one week (%s to %s); planned progress is undefined",
				domain.FormatDate(project.StartDate), domain.FormatDate(project.EstimatedEndDate)))
	}

	prev := 0
	for _, r := range sorted {
		pt := ChartPoint{
			Week:        r.Week,
			Label:       fmt.Sprintf("R%d", r.Week),
			Actual:      r.Progress,
			Incremental: max(0, r.Progress-prev),
		}
		if series.PlannedDefined {
			pt.Planned, _ = PlannedProgress(r.Week, totalWeeks)
		}
		series.Points = append(series.Points, pt)
		prev = r.Progress
	}
	return series
}
