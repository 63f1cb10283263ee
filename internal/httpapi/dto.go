package httpapi

import (
	"fmt"
	"time"

	"github.com/alexanderramin/cadence/internal/domain"
)

type projectTypeDTO struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type projectTypeRequest struct {
	Name string `json:"name"`
}

func toProjectTypeDTO(t *domain.ProjectType) projectTypeDTO {
	return projectTypeDTO{ID: t.ID, Name: t.Name, CreatedAt: t.CreatedAt, UpdatedAt: t.UpdatedAt}
}

type clientDTO struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type clientRequest struct {
	Name  string `json:"name" binding:"required"`
	Email string `json:"email" binding:"required,email"`
}

func toClientDTO(c *domain.Client) clientDTO {
	return clientDTO{ID: c.ID, Name: c.Name, Email: c.Email, CreatedAt: c.CreatedAt, UpdatedAt: c.UpdatedAt}
}

type subMilestoneDTO struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type milestoneDTO struct {
	ID            string            `json:"id"`
	Name          string            `json:"name"`
	Description   string            `json:"description"`
	ProjectTypes  []string          `json:"projectTypes"`
	SubMilestones []subMilestoneDTO `json:"subMilestones"`
	CreatedAt     time.Time         `json:"createdAt"`
	UpdatedAt     time.Time         `json:"updatedAt"`
}

type milestoneRequest struct {
	Name          string            `json:"name"`
	Description   string            `json:"description"`
	ProjectTypes  []string          `json:"projectTypes"`
	SubMilestones []subMilestoneDTO `json:"subMilestones"`
}

func toMilestoneDTO(m *domain.Milestone) milestoneDTO {
	dto := milestoneDTO{
		ID:            m.ID,
		Name:          m.Name,
		Description:   m.Description,
		ProjectTypes:  m.ProjectTypes,
		SubMilestones: make([]subMilestoneDTO, 0, len(m.SubMilestones)),
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
	for _, sm := range m.SubMilestones {
		dto.SubMilestones = append(dto.SubMilestones, subMilestoneDTO{ID: sm.ID, Name: sm.Name})
	}
	return dto
}

func (r milestoneRequest) toDomain(id string) *domain.Milestone {
	m := &domain.Milestone{ID: id, Name: r.Name, Description: r.Description, ProjectTypes: r.ProjectTypes}
	for _, sm := range r.SubMilestones {
		m.SubMilestones = append(m.SubMilestones, domain.SubMilestone{ID: sm.ID, Name: sm.Name})
	}
	return m
}

type scheduleDTO struct {
	ID                 string `json:"id,omitempty"`
	MilestoneID        string `json:"milestoneId"`
	MilestoneStartDate string `json:"milestoneStartDate"`
	MilestoneEndDate   string `json:"milestoneEndDate"`
}

type projectDTO struct {
	ID               string               `json:"id"`
	Name             string               `json:"name"`
	ClientID         string               `json:"clientId"`
	ManagerID        string               `json:"managerId"`
	ProjectType      string               `json:"projectType"`
	StartDate        string               `json:"startDate"`
	EstimatedEndDate string               `json:"estimatedEndDate"`
	Status           domain.ProjectStatus `json:"status"`
	Milestones       []scheduleDTO        `json:"milestones"`
	CreatedAt        time.Time            `json:"createdAt"`
	UpdatedAt        time.Time            `json:"updatedAt"`
}

type projectRequest struct {
	Name             string               `json:"name"`
	ClientID         string               `json:"clientId"`
	ManagerID        string               `json:"managerId"`
	ProjectType      string               `json:"projectType"`
	StartDate        string               `json:"startDate"`
	EstimatedEndDate string               `json:"estimatedEndDate"`
	Status           domain.ProjectStatus `json:"status"`
	Milestones       []scheduleDTO        `json:"milestones"`
}

func toProjectDTO(p *domain.Project) projectDTO {
	dto := projectDTO{
		ID:               p.ID,
		Name:             p.Name,
		ClientID:         p.ClientID,
		ManagerID:        p.ManagerID,
		ProjectType:      p.ProjectType,
		StartDate:        domain.FormatDate(p.StartDate),
		EstimatedEndDate: domain.FormatDate(p.EstimatedEndDate),
		Status:           p.Status,
		Milestones:       make([]scheduleDTO, 0, len(p.Milestones)),
		CreatedAt:        p.CreatedAt,
		UpdatedAt:        p.UpdatedAt,
	}
	for _, pm := range p.Milestones {
		dto.Milestones = append(dto.Milestones, scheduleDTO{
			ID:                 pm.ID,
			MilestoneID:        pm.MilestoneID,
			MilestoneStartDate: domain.FormatDate(pm.StartDate),
			MilestoneEndDate:   domain.FormatDate(pm.EndDate),
		})
	}
	return dto
}

// toDomain parses the request's calendar dates; unparseable ones are
// reported per field.
func (r projectRequest) toDomain(id string) (*domain.Project, error) {
	var errs domain.ValidationErrors
	parse := func(field, value string) time.Time {
		if value == "" {
			return time.Time{}
		}
		t, err := domain.ParseDate(value)
		if err != nil {
			errs.Add(field, err.Error())
		}
		return t
	}

	p := &domain.Project{
		ID:               id,
		Name:             r.Name,
		ClientID:         r.ClientID,
		ManagerID:        r.ManagerID,
		ProjectType:      r.ProjectType,
		StartDate:        parse("startDate", r.StartDate),
		EstimatedEndDate: parse("estimatedEndDate", r.EstimatedEndDate),
		Status:           r.Status,
	}
	for i, s := range r.Milestones {
		p.Milestones = append(p.Milestones, domain.ProjectMilestone{
			ID:          s.ID,
			MilestoneID: s.MilestoneID,
			StartDate:   parse(fmt.Sprintf("milestones[%d].milestoneStartDate", i), s.MilestoneStartDate),
			EndDate:     parse(fmt.Sprintf("milestones[%d].milestoneEndDate", i), s.MilestoneEndDate),
		})
	}
	if err := errs.OrNil(); err != nil {
		return nil, err
	}
	return p, nil
}

type reportDTO struct {
	ID                     string              `json:"id"`
	ProjectID              string              `json:"projectId"`
	Week                   int                 `json:"week"`
	Progress               int                 `json:"progress"`
	Summary                string              `json:"summary"`
	Status                 domain.ReportStatus `json:"status"`
	CompletedSubMilestones []string            `json:"completedSubMilestones"`
	CreatedAt              time.Time           `json:"createdAt"`
	UpdatedAt              time.Time           `json:"updatedAt"`
}

func toReportDTO(r *domain.WeeklyReport) reportDTO {
	return reportDTO{
		ID:                     r.ID,
		ProjectID:              r.ProjectID,
		Week:                   r.Week,
		Progress:               r.Progress,
		Summary:                r.Summary,
		Status:                 r.Status,
		CompletedSubMilestones: r.CompletedSubMilestones,
		CreatedAt:              r.CreatedAt,
		UpdatedAt:              r.UpdatedAt,
	}
}

type submitReportRequest struct {
	Summary                string              `json:"summary"`
	Status                 domain.ReportStatus `json:"status"`
	CompletedSubMilestones []string            `json:"completedSubMilestones"`
	MarkProjectCompleted   bool                `json:"markProjectCompleted"`
}

type submitReportResponse struct {
	Report           reportDTO `json:"report"`
	Created          bool      `json:"created"`
	AllComplete      bool      `json:"allComplete"`
	ProjectCompleted bool      `json:"projectCompleted"`
	CarriedForward   []int     `json:"carriedForward,omitempty"`
}
