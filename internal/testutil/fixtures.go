package testutil

import (
	"strings"
	"time"

	"github.com/alexanderramin/cadence/internal/domain"
	"github.com/google/uuid"
)

// Day returns UTC midnight of the given date.
func Day(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func NewTestProjectType(name string) *domain.ProjectType {
	now := time.Now().UTC()
	return &domain.ProjectType{
		ID:        uuid.New().String(),
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// DefaultClientID is the client every NewTestProject belongs to.
const DefaultClientID = "client-1"

// NewTestClient builds a client with a fixed id so projects can point at it
// before it is stored.
func NewTestClient(id, name string) *domain.Client {
	now := time.Now().UTC()
	return &domain.Client{
		ID:        id,
		Name:      name,
		Email:     "contact@" + strings.ToLower(strings.ReplaceAll(name, " ", "")) + ".example",
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Milestone options
type MilestoneOption func(*domain.Milestone)

// WithSubs replaces the sub-milestones with ones named after the given ids.
func WithSubs(ids ...string) MilestoneOption {
	return func(m *domain.Milestone) {
		m.SubMilestones = nil
		for _, id := range ids {
			m.SubMilestones = append(m.SubMilestones, domain.SubMilestone{ID: id, Name: "Task " + id})
		}
	}
}

func WithProjectTypes(ids ...string) MilestoneOption {
	return func(m *domain.Milestone) {
		m.ProjectTypes = ids
	}
}

func WithDescription(d string) MilestoneOption {
	return func(m *domain.Milestone) {
		m.Description = d
	}
}

func NewTestMilestone(name, projectTypeID string, opts ...MilestoneOption) *domain.Milestone {
	now := time.Now().UTC()
	m := &domain.Milestone{
		ID:           uuid.New().String(),
		Name:         name,
		Description:  name + " phase",
		ProjectTypes: []string{projectTypeID},
		SubMilestones: []domain.SubMilestone{
			{ID: uuid.New().String(), Name: name + " task"},
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Project options
type ProjectOption func(*domain.Project)

func WithManager(id string) ProjectOption {
	return func(p *domain.Project) {
		p.ManagerID = id
	}
}

func WithClient(id string) ProjectOption {
	return func(p *domain.Project) {
		p.ClientID = id
	}
}

func WithProjectStatus(s domain.ProjectStatus) ProjectOption {
	return func(p *domain.Project) {
		p.Status = s
	}
}

func WithWindow(start, end time.Time) ProjectOption {
	return func(p *domain.Project) {
		p.StartDate = start
		p.EstimatedEndDate = end
	}
}

// WithSchedule schedules a milestone template inside the project.
func WithSchedule(milestoneID string, start, end time.Time) ProjectOption {
	return func(p *domain.Project) {
		p.Milestones = append(p.Milestones, domain.ProjectMilestone{
			ID:          uuid.New().String(),
			MilestoneID: milestoneID,
			StartDate:   start,
			EndDate:     end,
		})
	}
}

func NewTestProject(name, projectTypeID string, opts ...ProjectOption) *domain.Project {
	now := time.Now().UTC()
	p := &domain.Project{
		ID:               uuid.New().String(),
		Name:             name,
		ClientID:         DefaultClientID,
		ManagerID:        "manager-1",
		ProjectType:      projectTypeID,
		StartDate:        Day(2025, 1, 6),
		EstimatedEndDate: Day(2025, 3, 17),
		Status:           domain.ProjectOnTrack,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Report options
type ReportOption func(*domain.WeeklyReport)

func WithProgress(pct int) ReportOption {
	return func(r *domain.WeeklyReport) {
		r.Progress = pct
	}
}

func WithCompleted(ids ...string) ReportOption {
	return func(r *domain.WeeklyReport) {
		r.CompletedSubMilestones = ids
	}
}

func WithReportStatus(s domain.ReportStatus) ReportOption {
	return func(r *domain.WeeklyReport) {
		r.Status = s
	}
}

func WithCreatedAt(t time.Time) ReportOption {
	return func(r *domain.WeeklyReport) {
		r.CreatedAt = t
		r.UpdatedAt = t
	}
}

func NewTestReport(projectID string, week int, opts ...ReportOption) *domain.WeeklyReport {
	now := time.Now().UTC().Truncate(time.Second)
	r := &domain.WeeklyReport{
		ID:                     uuid.New().String(),
		ProjectID:              projectID,
		Week:                   week,
		Progress:               0,
		Summary:                "Week summary",
		Status:                 domain.ReportOnTrack,
		CompletedSubMilestones: []string{},
		CreatedAt:              now,
		UpdatedAt:              now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}
