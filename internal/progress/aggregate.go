package progress

import (
	"math"
	"sort"
	"time"

	"github.com/alexanderramin/cadence/internal/domain"
)

// CompletedSet is the set of sub-milestone ids marked done.
type CompletedSet map[string]struct{}

func NewCompletedSet(ids ...string) CompletedSet {
	s := make(CompletedSet, len(ids))
	s.Add(ids...)
	return s
}

func (s CompletedSet) Add(ids ...string) {
	for _, id := range ids {
		s[id] = struct{}{}
	}
}

func (s CompletedSet) Has(id string) bool {
	_, ok := s[id]
	return ok
}

// Sorted returns the members in lexical order.
func (s CompletedSet) Sorted() []string {
	out := make([]string, 0, len(s))
	for id := range s {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// MilestoneProgress is the completion state of one milestone template.
type MilestoneProgress struct {
	MilestoneID   string
	CompletedSubs int
	TotalSubs     int
	Percent       int
	AllComplete   bool
}

type Summary struct {
	// OverallProgress is the progress of the latest-week report, 0 without reports.
	OverallProgress    int
	Completed          CompletedSet
	TotalSubMilestones int
	// CompletedCount is the number of distinct completed ids that belong to
	// at least one of the milestones.
	CompletedCount int
	// FirstCompletion maps a sub-milestone id to the creation time of the
	// earliest-week report listing it.
	FirstCompletion map[string]time.Time
	Milestones      []MilestoneProgress
	// Reports holds the input ordered by ascending week.
	Reports []*domain.WeeklyReport
}

// Milestone returns the progress entry for a milestone id.
func (s Summary) Milestone(id string) (MilestoneProgress, bool) {
	for _, mp := range s.Milestones {
		if mp.MilestoneID == id {
			return mp, true
		}
	}
	return MilestoneProgress{}, false
}

// SortReports returns a copy of reports ordered by ascending week.
func SortReports(reports []*domain.WeeklyReport) []*domain.WeeklyReport {
	sorted := make([]*domain.WeeklyReport, 0, len(reports))
	for _, r := range reports {
		if r != nil {
			sorted = append(sorted, r)
		}
	}
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Week < sorted[j].Week
	})
	return sorted
}

// CompletedBefore is the union of completions of every report with a week
// strictly lower than week. These ids cannot be unchecked in that week.
func CompletedBefore(reports []*domain.WeeklyReport, week int) CompletedSet {
	set := NewCompletedSet()
	for _, r := range reports {
		if r != nil && r.Week < week {
			set.Add(r.CompletedSubMilestones...)
		}
	}
	return set
}

// Aggregate folds a project's weekly reports against its milestone templates.
// Neither input is mutated.
func Aggregate(reports []*domain.WeeklyReport, milestones []*domain.Milestone) Summary {
	sorted := SortReports(reports)

	s := Summary{
		Completed:       NewCompletedSet(),
		FirstCompletion: make(map[string]time.Time),
		Milestones:      make([]MilestoneProgress, 0, len(milestones)),
		Reports:         sorted,
	}

	for _, r := range sorted {
		for _, id := range r.CompletedSubMilestones {
			if !s.Completed.Has(id) {
				s.FirstCompletion[id] = r.CreatedAt
			}
			s.Completed.Add(id)
		}
	}
	if len(sorted) > 0 {
		s.OverallProgress = sorted[len(sorted)-1].Progress
	}

	counted := NewCompletedSet()
	for _, m := range milestones {
		if m == nil {
			continue
		}
		mp := MilestoneProgress{MilestoneID: m.ID, TotalSubs: len(m.SubMilestones)}
		for _, sm := range m.SubMilestones {
			if s.Completed.Has(sm.ID) {
				mp.CompletedSubs++
				counted.Add(sm.ID)
			}
		}
		// A milestone without sub-milestones has no evidence of work.
		mp.AllComplete = mp.TotalSubs > 0 && mp.CompletedSubs == mp.TotalSubs
		mp.Percent = Percent(mp.CompletedSubs, mp.TotalSubs)

		s.TotalSubMilestones += mp.TotalSubs
		s.Milestones = append(s.Milestones, mp)
	}
	s.CompletedCount = len(counted)

	return s
}

// Percent returns round(part/total*100), 0 when total is not positive.
func Percent(part, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(float64(part) / float64(total) * 100))
}
