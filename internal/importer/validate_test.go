package importer

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/cadence/internal/domain"
)

func loadSeed(t *testing.T) *Document {
	t.Helper()
	doc, err := LoadDocument("testdata/seed.yaml")
	require.NoError(t, err)
	return doc
}

func fieldsOf(errs []error) []string {
	fields := make([]string, 0, len(errs))
	for _, err := range errs {
		var ve domain.ValidationError
		if errors.As(err, &ve) {
			fields = append(fields, ve.Field)
		}
	}
	return fields
}

func TestValidateDocument_Seed(t *testing.T) {
	doc := loadSeed(t)
	assert.Empty(t, ValidateDocument(doc))
	assert.Len(t, doc.Milestones, 2)
	assert.Equal(t, []string{"kickoff"}, doc.Reports[0].Completed)
}

func TestParse_JSONAndUnknownKeys(t *testing.T) {
	doc, err := Parse([]byte(`{"project_types": [{"ref": "web", "name": "Web"}]}`))
	require.NoError(t, err)
	require.Len(t, doc.ProjectTypes, 1)
	assert.Equal(t, "Web", doc.ProjectTypes[0].Name)

	_, err = Parse([]byte("projects:\n  - ref: p\n    colour: red\n"))
	assert.Error(t, err)
}

func TestValidateDocument_CollectsEveryProblem(t *testing.T) {
	doc := loadSeed(t)
	doc.Milestones[1].ProjectTypes = append(doc.Milestones[1].ProjectTypes, "desktop")
	doc.Projects[0].Milestones[1].EndDate = "2025-04-01"
	doc.Reports[1].Week = 1
	doc.Reports[1].Completed = []string{"nope"}

	fields := fieldsOf(ValidateDocument(doc))
	assert.Contains(t, fields, "milestones[1].project_types[1]")
	assert.Contains(t, fields, "projects[0].milestones[1]")
	assert.Contains(t, fields, "reports[1].week")
	assert.Contains(t, fields, "reports[1].completed[0]")
}

func TestValidateDocument_ScheduleRules(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(d *Document)
		field  string
	}{
		{"inverted window", func(d *Document) { d.Projects[0].EstimatedEndDate = "2025-01-01" }, "projects[0].estimated_end_date"},
		{"bad date", func(d *Document) { d.Projects[0].StartDate = "06/01/2025" }, "projects[0].start_date"},
		{"inverted milestone", func(d *Document) { d.Projects[0].Milestones[0].EndDate = "2025-01-05" }, "projects[0].milestones[0].end_date"},
		{"wrong type", func(d *Document) { d.Projects[0].ProjectType = "mobile" }, "projects[0].milestones[1].milestone"},
		{"scheduled twice", func(d *Document) {
			d.Projects[0].Milestones[1].Milestone = "discovery"
		}, "projects[0].milestones[1].milestone"},
		{"status", func(d *Document) { d.Projects[0].Status = "Done" }, "projects[0].status"},
		{"unknown client", func(d *Document) { d.Projects[0].Client = "client-zeta" }, "projects[0].client"},
		{"client email", func(d *Document) { d.Clients[0].Email = "acme" }, "clients[0].email"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			doc := loadSeed(t)
			tc.mutate(doc)
			assert.Contains(t, fieldsOf(ValidateDocument(doc)), tc.field)
		})
	}
}

func TestValidateDocument_DuplicateRefs(t *testing.T) {
	doc := loadSeed(t)
	doc.Clients = append(doc.Clients, ClientImport{Ref: "client-acme", Name: "Acme Again", Email: "again@acme.example"})
	doc.ProjectTypes = append(doc.ProjectTypes, ProjectTypeImport{Ref: "web", Name: "Again"})
	doc.Milestones[1].SubMilestones[0].Ref = "kickoff"

	fields := fieldsOf(ValidateDocument(doc))
	assert.Contains(t, fields, "clients[1].ref")
	assert.Contains(t, fields, "project_types[2].ref")
	assert.Contains(t, fields, "milestones[1].sub_milestones[0].ref")
}
