package importer

import (
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/cadence/internal/domain"
)

// ValidateDocument checks a seed document before conversion and returns
// every problem found, each a domain.ValidationError keyed by its path.
func ValidateDocument(doc *Document) []error {
	var errs []error
	add := func(field, format string, args ...any) {
		errs = append(errs, domain.ValidationError{Field: field, Message: fmt.Sprintf(format, args...)})
	}

	clientRefs := make(map[string]bool, len(doc.Clients))
	for i, c := range doc.Clients {
		path := fmt.Sprintf("clients[%d]", i)
		if c.Ref == "" {
			add(path+".ref", "ref is required")
		} else if clientRefs[c.Ref] {
			add(path+".ref", "duplicate ref %q", c.Ref)
		}
		clientRefs[c.Ref] = true
		client := domain.Client{Name: c.Name, Email: c.Email}
		var verrs domain.ValidationErrors
		if errors.As(client.Validate(), &verrs) {
			for _, ve := range verrs {
				add(path+"."+ve.Field, "%s", ve.Message)
			}
		}
	}

	typeRefs := make(map[string]bool, len(doc.ProjectTypes))
	for i, pt := range doc.ProjectTypes {
		path := fmt.Sprintf("project_types[%d]", i)
		if pt.Ref == "" {
			add(path+".ref", "ref is required")
		} else if typeRefs[pt.Ref] {
			add(path+".ref", "duplicate ref %q", pt.Ref)
		}
		typeRefs[pt.Ref] = true
		if pt.Name == "" {
			add(path+".name", "name is required")
		}
	}

	milestones := make(map[string]*MilestoneImport, len(doc.Milestones))
	subOwner := make(map[string]string)
	for i := range doc.Milestones {
		m := &doc.Milestones[i]
		path := fmt.Sprintf("milestones[%d]", i)
		if m.Ref == "" {
			add(path+".ref", "ref is required")
		} else if milestones[m.Ref] != nil {
			add(path+".ref", "duplicate ref %q", m.Ref)
		} else {
			milestones[m.Ref] = m
		}
		if m.Name == "" {
			add(path+".name", "name is required")
		}
		if m.Description == "" {
			add(path+".description", "description is required")
		}
		if len(m.ProjectTypes) == 0 {
			add(path+".project_types", "at least one project type is required")
		}
		for j, ref := range m.ProjectTypes {
			if !typeRefs[ref] {
				add(fmt.Sprintf("%s.project_types[%d]", path, j), "unknown project type %q", ref)
			}
		}
		if len(m.SubMilestones) == 0 {
			add(path+".sub_milestones", "at least one sub-milestone is required")
		}
		for j, sm := range m.SubMilestones {
			sub := fmt.Sprintf("%s.sub_milestones[%d]", path, j)
			if sm.Ref == "" {
				add(sub+".ref", "ref is required")
			} else if _, dup := subOwner[sm.Ref]; dup {
				add(sub+".ref", "duplicate sub-milestone ref %q", sm.Ref)
			} else {
				subOwner[sm.Ref] = m.Ref
			}
			if sm.Name == "" {
				add(sub+".name", "name is required")
			}
		}
	}

	projectTypes := make(map[string]string, len(doc.Projects))
	for i, p := range doc.Projects {
		path := fmt.Sprintf("projects[%d]", i)
		if p.Ref == "" {
			add(path+".ref", "ref is required")
		} else if _, dup := projectTypes[p.Ref]; dup {
			add(path+".ref", "duplicate ref %q", p.Ref)
		} else {
			projectTypes[p.Ref] = p.ProjectType
		}
		if p.Name == "" {
			add(path+".name", "name is required")
		}
		if p.Client == "" {
			add(path+".client", "client is required")
		} else if !clientRefs[p.Client] {
			add(path+".client", "unknown client %q", p.Client)
		}
		if p.Manager == "" {
			add(path+".manager", "manager is required")
		}
		if !typeRefs[p.ProjectType] {
			add(path+".project_type", "unknown project type %q", p.ProjectType)
		}
		if p.Status != "" && !domain.ValidProjectStatuses[domain.ProjectStatus(p.Status)] {
			add(path+".status", "invalid value %q", p.Status)
		}
		start, okStart := parseField(add, path+".start_date", p.StartDate)
		end, okEnd := parseField(add, path+".estimated_end_date", p.EstimatedEndDate)
		window := okStart && okEnd
		if window && start.After(end) {
			add(path+".estimated_end_date", "must be on or after start_date %s", p.StartDate)
			window = false
		}

		scheduled := make(map[string]bool, len(p.Milestones))
		for j, s := range p.Milestones {
			sp := fmt.Sprintf("%s.milestones[%d]", path, j)
			m := milestones[s.Milestone]
			switch {
			case m == nil:
				add(sp+".milestone", "unknown milestone %q", s.Milestone)
			case !contains(m.ProjectTypes, p.ProjectType):
				add(sp+".milestone", "milestone %q does not apply to project type %q", s.Milestone, p.ProjectType)
			case scheduled[s.Milestone]:
				add(sp+".milestone", "milestone %q scheduled more than once", s.Milestone)
			}
			scheduled[s.Milestone] = true
			ms, okS := parseField(add, sp+".start_date", s.StartDate)
			me, okE := parseField(add, sp+".end_date", s.EndDate)
			if okS && okE {
				if ms.After(me) {
					add(sp+".end_date", "must be on or after start_date %s", s.StartDate)
				} else if window && (ms.Before(start) || me.After(end)) {
					add(sp, "dates must fall within %s..%s", p.StartDate, p.EstimatedEndDate)
				}
			}
		}
	}

	weeks := make(map[string]bool, len(doc.Reports))
	for i, r := range doc.Reports {
		path := fmt.Sprintf("reports[%d]", i)
		typeRef, ok := projectTypes[r.Project]
		if !ok {
			add(path+".project", "unknown project %q", r.Project)
		}
		if r.Week < 1 {
			add(path+".week", "week must be 1 or greater")
		}
		key := fmt.Sprintf("%s/%d", r.Project, r.Week)
		if weeks[key] {
			add(path+".week", "duplicate report for week %d", r.Week)
		}
		weeks[key] = true
		if r.Summary == "" {
			add(path+".summary", "summary is required")
		}
		if r.Status != "" && !domain.ValidReportStatuses[domain.ReportStatus(r.Status)] {
			add(path+".status", "invalid value %q", r.Status)
		}
		if r.Progress != nil && (*r.Progress < 0 || *r.Progress > 100) {
			add(path+".progress", "progress must be between 0 and 100")
		}
		if r.Submitted != "" {
			if _, err := time.Parse(time.RFC3339, r.Submitted); err != nil {
				add(path+".submitted", "invalid timestamp %q (expected RFC3339)", r.Submitted)
			}
		}
		for j, ref := range r.Completed {
			owner, known := subOwner[ref]
			if !known {
				add(fmt.Sprintf("%s.completed[%d]", path, j), "unknown sub-milestone %q", ref)
				continue
			}
			if m := milestones[owner]; ok && m != nil && !contains(m.ProjectTypes, typeRef) {
				add(fmt.Sprintf("%s.completed[%d]", path, j), "sub-milestone %q is not part of the project's templates", ref)
			}
		}
	}

	return errs
}

func parseField(add func(string, string, ...any), field, value string) (time.Time, bool) {
	if value == "" {
		add(field, "date is required")
		return time.Time{}, false
	}
	t, err := domain.ParseDate(value)
	if err != nil {
		add(field, "invalid date format %q (expected YYYY-MM-DD)", value)
		return time.Time{}, false
	}
	return t, true
}

func contains(values []string, v string) bool {
	for _, s := range values {
		if s == v {
			return true
		}
	}
	return false
}
