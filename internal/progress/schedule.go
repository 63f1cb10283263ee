package progress

import (
	"fmt"
	"math"
	"time"

	"github.com/alexanderramin/cadence/internal/domain"
)

type State string

const (
	StateOnTime  State = "on_time"
	StateAtRisk  State = "at_risk"
	StateDelayed State = "delayed"
	StateFuture  State = "future"
)

// Badge is the retrospective verdict for a fully completed milestone.
type Badge string

const (
	BadgeOnTime Badge = "on_time"
	BadgeLate   Badge = "late"
)

func (b Badge) Label() string {
	if b == BadgeLate {
		return "Delayed"
	}
	return "On time"
}

func (s State) Label() string {
	switch s {
	case StateAtRisk:
		return "At risk"
	case StateDelayed:
		return "Delayed"
	case StateFuture:
		return "Not started"
	default:
		return "On time"
	}
}

// AtRiskThreshold is the elapsed share of a milestone window above which an
// in-flight milestone is flagged at risk.
const AtRiskThreshold = 0.75

type Evaluation struct {
	State          State  `json:"state"`
	DaysOverdue    int    `json:"daysOverdue"`
	DaysRemaining  int    `json:"daysRemaining"`
	DaysUntilStart int    `json:"daysUntilStart"`
	ElapsedPct     int    `json:"elapsedPct"`
	Detail         string `json:"detail"`
}

// EvaluateMilestoneStatus classifies an incomplete milestone against a
// reference date. Dates compare by calendar day, so the end date itself is
// still on time.
func EvaluateMilestoneStatus(start, end, ref time.Time) (Evaluation, error) {
	start, end, ref = domain.DateOf(start), domain.DateOf(end), domain.DateOf(ref)
	if start.After(end) {
		return Evaluation{}, &domain.ScheduleError{
			Field:   "milestone",
			Message: fmt.Sprintf("start %s is after end %s", domain.FormatDate(start), domain.FormatDate(end)),
		}
	}

	switch {
	case ref.After(end):
		overdue := domain.DaysBetween(end, ref)
		return Evaluation{
			State:       StateDelayed,
			DaysOverdue: overdue,
			ElapsedPct:  100,
			Detail:      fmt.Sprintf("Delayed. Was due %s ago.", pluralDays(overdue)),
		}, nil

	case ref.After(start) && ref.Before(end):
		elapsed := domain.DaysBetween(start, ref)
		total := domain.DaysBetween(start, end)
		ratio := float64(elapsed) / float64(total)
		remaining := domain.DaysBetween(ref, end)
		ev := Evaluation{
			State:         StateOnTime,
			DaysRemaining: remaining,
			ElapsedPct:    int(math.Round(ratio * 100)),
		}
		if ratio > AtRiskThreshold {
			ev.State = StateAtRisk
			ev.Detail = fmt.Sprintf("At risk. %d%% of the window used, %s left.", ev.ElapsedPct, pluralDays(remaining))
		} else {
			ev.Detail = fmt.Sprintf("On time. %s left.", pluralDays(remaining))
		}
		return ev, nil

	case ref.Before(start):
		until := domain.DaysBetween(ref, start)
		return Evaluation{
			State:          StateFuture,
			DaysUntilStart: until,
			DaysRemaining:  domain.DaysBetween(ref, end),
			Detail:         fmt.Sprintf("Starts in %s.", pluralDays(until)),
		}, nil
	}

	// ref sits on the start or end day.
	ev := Evaluation{State: StateOnTime, DaysRemaining: domain.DaysBetween(ref, end)}
	if ref.Equal(end) {
		ev.ElapsedPct = 100
		ev.Detail = "On time. Due today."
	} else {
		ev.Detail = "On time. Starts today."
	}
	return ev, nil
}

// EvaluateCompletion gives the retrospective badge for a milestone whose
// sub-milestones all carry a first-completion time. It returns false when any
// sub-milestone is still open or the list is empty.
func EvaluateCompletion(subIDs []string, firstCompletion map[string]time.Time, end time.Time) (Badge, bool) {
	if len(subIDs) == 0 {
		return "", false
	}
	var latest time.Time
	for _, id := range subIDs {
		at, ok := firstCompletion[id]
		if !ok {
			return "", false
		}
		if at.After(latest) {
			latest = at
		}
	}
	if domain.DateOf(latest).After(domain.DateOf(end)) {
		return BadgeLate, true
	}
	return BadgeOnTime, true
}

func pluralDays(n int) string {
	if n == 1 {
		return "1 day"
	}
	return fmt.Sprintf("%d days", n)
}
