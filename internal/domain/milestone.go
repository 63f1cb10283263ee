package domain

import (
	"fmt"
	"strings"
	"time"
)

type ProjectType struct {
	ID        string
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (t *ProjectType) Validate() error {
	var errs ValidationErrors
	if strings.TrimSpace(t.Name) == "" {
		errs.Add("name", "project type name is required")
	}
	return errs.OrNil()
}

// SubMilestone is the smallest completable unit of work within a milestone.
type SubMilestone struct {
	ID   string
	Name string
}

// Milestone is a reusable template shared by every project of a matching type.
type Milestone struct {
	ID            string
	Name          string
	Description   string
	ProjectTypes  []string
	SubMilestones []SubMilestone
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (m *Milestone) Validate() error {
	var errs ValidationErrors
	if strings.TrimSpace(m.Name) == "" {
		errs.Add("name", "milestone name is required")
	}
	if strings.TrimSpace(m.Description) == "" {
		errs.Add("description", "description is required")
	}
	if len(m.ProjectTypes) == 0 {
		errs.Add("projectTypes", "at least one project type is required")
	}
	for i, pt := range m.ProjectTypes {
		if pt == "" {
			errs.Add(fmt.Sprintf("projectTypes[%d]", i), "project type id is required")
		}
	}
	if len(m.SubMilestones) == 0 {
		errs.Add("subMilestones", "at least one sub-milestone is required")
	}
	ids := make(map[string]bool, len(m.SubMilestones))
	for i, sm := range m.SubMilestones {
		if strings.TrimSpace(sm.Name) == "" {
			errs.Add(fmt.Sprintf("subMilestones[%d].name", i), "sub-milestone name cannot be empty")
		}
		if sm.ID == "" {
			errs.Add(fmt.Sprintf("subMilestones[%d].id", i), "sub-milestone id is required")
		} else if ids[sm.ID] {
			errs.Add(fmt.Sprintf("subMilestones[%d].id", i), fmt.Sprintf("duplicate id %q", sm.ID))
		}
		ids[sm.ID] = true
	}
	return errs.OrNil()
}

// AppliesTo reports whether the template is offered for the given project type.
func (m *Milestone) AppliesTo(projectType string) bool {
	for _, pt := range m.ProjectTypes {
		if pt == projectType {
			return true
		}
	}
	return false
}

// SubMilestoneIDs returns the ids of the milestone's sub-tasks in order.
func (m *Milestone) SubMilestoneIDs() []string {
	ids := make([]string, 0, len(m.SubMilestones))
	for _, sm := range m.SubMilestones {
		ids = append(ids, sm.ID)
	}
	return ids
}
