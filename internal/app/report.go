package app

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/cadence/internal/domain"
)

// SubmitReportInput is the weekly report form. Progress is never supplied by
// the caller; it is derived from the checked sub-milestones.
type SubmitReportInput struct {
	ProjectID              string              `json:"projectId"`
	Week                   int                 `json:"week"`
	Summary                string              `json:"summary"`
	Status                 domain.ReportStatus `json:"status"`
	CompletedSubMilestones []string            `json:"completedSubMilestones"`
	MarkProjectCompleted   bool                `json:"markProjectCompleted"`
}

func (in SubmitReportInput) Validate() error {
	var errs domain.ValidationErrors
	if in.ProjectID == "" {
		errs.Add("projectId", "project is required")
	}
	if in.Week < 1 {
		errs.Add("week", "week must be 1 or greater")
	}
	if strings.TrimSpace(in.Summary) == "" {
		errs.Add("summary", "summary is required")
	}
	if !domain.ValidReportStatuses[in.Status] {
		errs.Add("status", fmt.Sprintf("invalid value %q", in.Status))
	}
	for i, id := range in.CompletedSubMilestones {
		if strings.TrimSpace(id) == "" {
			errs.Add(fmt.Sprintf("completedSubMilestones[%d]", i), "sub-milestone id cannot be empty")
		}
	}
	return errs.OrNil()
}

type SubmitReportResult struct {
	Report           *domain.WeeklyReport `json:"report"`
	Created          bool                 `json:"created"`
	AllComplete      bool                 `json:"allComplete"`
	ProjectCompleted bool                 `json:"projectCompleted"`
	// CarriedForward lists later saved weeks that gained this week's
	// completions.
	CarriedForward []int `json:"carriedForward,omitempty"`
}
