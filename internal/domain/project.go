package domain

import (
	"fmt"
	"strings"
	"time"
)

// ProjectMilestone binds a milestone template to concrete dates within one project.
type ProjectMilestone struct {
	ID          string
	MilestoneID string
	StartDate   time.Time
	EndDate     time.Time
}

type Project struct {
	ID               string
	Name             string
	ClientID         string
	ManagerID        string
	ProjectType      string
	StartDate        time.Time
	EstimatedEndDate time.Time
	Status           ProjectStatus
	Milestones       []ProjectMilestone
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// Validate checks required fields and the schedule window. Date problems are
// reported as a *ScheduleError, everything else as ValidationErrors.
func (p *Project) Validate() error {
	var errs ValidationErrors
	if strings.TrimSpace(p.Name) == "" {
		errs.Add("name", "project name is required")
	}
	if p.ClientID == "" {
		errs.Add("clientId", "client is required")
	}
	if p.ManagerID == "" {
		errs.Add("managerId", "manager is required")
	}
	if p.ProjectType == "" {
		errs.Add("projectType", "project type is required")
	}
	if !ValidProjectStatuses[p.Status] {
		errs.Add("status", fmt.Sprintf("invalid value %q", p.Status))
	}
	if p.StartDate.IsZero() {
		errs.Add("startDate", "start date is required")
	}
	if p.EstimatedEndDate.IsZero() {
		errs.Add("estimatedEndDate", "estimated end date is required")
	}

	seen := make(map[string]bool, len(p.Milestones))
	for i, pm := range p.Milestones {
		if pm.MilestoneID == "" {
			errs.Add(fmt.Sprintf("milestones[%d].milestoneId", i), "milestone is required")
			continue
		}
		if seen[pm.MilestoneID] {
			errs.Add(fmt.Sprintf("milestones[%d].milestoneId", i), fmt.Sprintf("milestone %q scheduled more than once", pm.MilestoneID))
		}
		seen[pm.MilestoneID] = true
		if pm.StartDate.IsZero() {
			errs.Add(fmt.Sprintf("milestones[%d].milestoneStartDate", i), "milestone start date is required")
		}
		if pm.EndDate.IsZero() {
			errs.Add(fmt.Sprintf("milestones[%d].milestoneEndDate", i), "milestone end date is required")
		}
	}
	if err := errs.OrNil(); err != nil {
		return err
	}
	return p.ValidateSchedule()
}

// ValidateSchedule checks start <= end for the project and that every
// milestone schedule is ordered and inside the project window.
func (p *Project) ValidateSchedule() error {
	start, end := DateOf(p.StartDate), DateOf(p.EstimatedEndDate)
	if start.After(end) {
		return &ScheduleError{Field: "startDate", Message: "project start date must be on or before the estimated end date"}
	}
	for i, pm := range p.Milestones {
		ms, me := DateOf(pm.StartDate), DateOf(pm.EndDate)
		field := fmt.Sprintf("milestones[%d]", i)
		if ms.After(me) {
			return &ScheduleError{Field: field, Message: "milestone start must be on or before its end"}
		}
		if ms.Before(start) || me.After(end) {
			return &ScheduleError{Field: field, Message: fmt.Sprintf("milestone dates must fall within %s..%s", FormatDate(start), FormatDate(end))}
		}
	}
	return nil
}

// ScheduleFor returns the scheduling link for a milestone template, if any.
func (p *Project) ScheduleFor(milestoneID string) (ProjectMilestone, bool) {
	for _, pm := range p.Milestones {
		if pm.MilestoneID == milestoneID {
			return pm, true
		}
	}
	return ProjectMilestone{}, false
}

// IsCompleted reports whether the project has been closed out.
func (p *Project) IsCompleted() bool {
	return p.Status == ProjectCompleted
}
