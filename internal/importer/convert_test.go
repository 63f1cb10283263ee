package importer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/cadence/internal/domain"
)

var importedAt = time.Date(2025, 2, 1, 12, 0, 0, 0, time.UTC)

func TestConvert_Seed(t *testing.T) {
	doc := loadSeed(t)
	require.Empty(t, ValidateDocument(doc))

	plan, err := Convert(doc, importedAt)
	require.NoError(t, err)

	require.Len(t, plan.Clients, 1)
	require.Len(t, plan.ProjectTypes, 2)
	require.Len(t, plan.Milestones, 2)
	require.Len(t, plan.Projects, 1)
	require.Len(t, plan.Reports, 2)

	web := plan.ProjectTypes[0]
	discovery, build := plan.Milestones[0], plan.Milestones[1]
	assert.ElementsMatch(t, []string{web.ID, plan.ProjectTypes[1].ID}, discovery.ProjectTypes)
	assert.Equal(t, []string{web.ID}, build.ProjectTypes)
	require.Len(t, build.SubMilestones, 3)
	assert.Equal(t, "Backend API", build.SubMilestones[0].Name)

	p := plan.Projects[0]
	assert.Equal(t, web.ID, p.ProjectType)
	assert.Equal(t, domain.ProjectOnTrack, p.Status)
	assert.Equal(t, "manager-1", p.ManagerID)
	assert.Equal(t, plan.Clients[0].ID, p.ClientID)
	require.NoError(t, plan.Clients[0].Validate())
	require.Len(t, p.Milestones, 2)
	assert.Equal(t, build.ID, p.Milestones[1].MilestoneID)
	assert.Equal(t, time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC), p.Milestones[1].EndDate)
	require.NoError(t, p.Validate())
	require.NoError(t, discovery.Validate())
}

func TestConvert_ReportsAccumulateAndDeriveProgress(t *testing.T) {
	doc := loadSeed(t)
	plan, err := Convert(doc, importedAt)
	require.NoError(t, err)

	kickoff := plan.Milestones[0].SubMilestones[0].ID
	requirements := plan.Milestones[0].SubMilestones[1].ID

	w1, w2 := plan.Reports[0], plan.Reports[1]
	assert.Equal(t, 1, w1.Week)
	assert.Equal(t, []string{kickoff}, w1.CompletedSubMilestones)
	assert.Equal(t, 20, w1.Progress, "1 of 5 sub-milestones")
	assert.Equal(t, domain.ReportOnTrack, w1.Status)
	assert.Equal(t, time.Date(2025, 1, 10, 16, 0, 0, 0, time.UTC), w1.CreatedAt)

	assert.ElementsMatch(t, []string{kickoff, requirements}, w2.CompletedSubMilestones)
	assert.Equal(t, 40, w2.Progress)
	for _, r := range plan.Reports {
		assert.NoError(t, r.Validate())
	}
}

func TestConvert_ExplicitProgressWins(t *testing.T) {
	doc := loadSeed(t)
	pct := 55
	doc.Reports[1].Progress = &pct
	doc.Reports[0].Submitted = ""

	plan, err := Convert(doc, importedAt)
	require.NoError(t, err)
	assert.Equal(t, 55, plan.Reports[1].Progress)
	assert.Equal(t, importedAt, plan.Reports[0].CreatedAt)
}
