package httpapi

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/alexanderramin/cadence/internal/app"
	"github.com/alexanderramin/cadence/internal/domain"
	"github.com/alexanderramin/cadence/internal/service"
)

type handler struct {
	types      service.ProjectTypeService
	clients    service.ClientService
	milestones service.MilestoneService
	projects   service.ProjectService
	reports    service.ReportService
	status     service.StatusService
	logger     *zap.Logger
	now        func() time.Time
}

func (h *handler) actor(c *gin.Context) domain.Actor {
	actor, _ := actorFrom(c)
	return actor
}

func (h *handler) bind(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		Error(c, http.StatusBadRequest, app.CodeValidation, "invalid request body: "+err.Error())
		return false
	}
	return true
}

func (h *handler) week(c *gin.Context) (int, bool) {
	week, err := strconv.Atoi(c.Param("week"))
	if err != nil || week < 1 {
		Error(c, http.StatusBadRequest, app.CodeValidation, "week must be a positive integer")
		return 0, false
	}
	return week, true
}

func (h *handler) listProjectTypes(c *gin.Context) {
	types, err := h.types.List(c.Request.Context())
	if err != nil {
		fail(c, h.logger, err)
		return
	}
	out := make([]projectTypeDTO, 0, len(types))
	for _, t := range types {
		out = append(out, toProjectTypeDTO(t))
	}
	Success(c, http.StatusOK, out)
}

func (h *handler) createProjectType(c *gin.Context) {
	var req projectTypeRequest
	if !h.bind(c, &req) {
		return
	}
	t := &domain.ProjectType{Name: req.Name}
	if err := h.types.Create(c.Request.Context(), h.actor(c), t); err != nil {
		fail(c, h.logger, err)
		return
	}
	Success(c, http.StatusCreated, toProjectTypeDTO(t))
}

func (h *handler) updateProjectType(c *gin.Context) {
	var req projectTypeRequest
	if !h.bind(c, &req) {
		return
	}
	ctx := c.Request.Context()
	t, err := h.types.Get(ctx, c.Param("id"))
	if err != nil {
		fail(c, h.logger, err)
		return
	}
	t.Name = req.Name
	if err := h.types.Update(ctx, h.actor(c), t); err != nil {
		fail(c, h.logger, err)
		return
	}
	Success(c, http.StatusOK, toProjectTypeDTO(t))
}

func (h *handler) deleteProjectType(c *gin.Context) {
	if err := h.types.Delete(c.Request.Context(), h.actor(c), c.Param("id")); err != nil {
		fail(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// listMilestones filters by ?projectType= through the template resolver.
func (h *handler) listMilestones(c *gin.Context) {
	ctx := c.Request.Context()
	var (
		ms  []*domain.Milestone
		err error
	)
	if pt := c.Query("projectType"); pt != "" {
		ms, err = h.milestones.Resolve(ctx, pt)
	} else {
		ms, err = h.milestones.List(ctx)
	}
	if err != nil {
		fail(c, h.logger, err)
		return
	}
	out := make([]milestoneDTO, 0, len(ms))
	for _, m := range ms {
		out = append(out, toMilestoneDTO(m))
	}
	Success(c, http.StatusOK, out)
}

func (h *handler) getMilestone(c *gin.Context) {
	m, err := h.milestones.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, h.logger, err)
		return
	}
	Success(c, http.StatusOK, toMilestoneDTO(m))
}

func (h *handler) createMilestone(c *gin.Context) {
	var req milestoneRequest
	if !h.bind(c, &req) {
		return
	}
	m := req.toDomain("")
	if err := h.milestones.Create(c.Request.Context(), h.actor(c), m); err != nil {
		fail(c, h.logger, err)
		return
	}
	Success(c, http.StatusCreated, toMilestoneDTO(m))
}

func (h *handler) updateMilestone(c *gin.Context) {
	var req milestoneRequest
	if !h.bind(c, &req) {
		return
	}
	m := req.toDomain(c.Param("id"))
	if err := h.milestones.Update(c.Request.Context(), h.actor(c), m); err != nil {
		fail(c, h.logger, err)
		return
	}
	Success(c, http.StatusOK, toMilestoneDTO(m))
}

func (h *handler) deleteMilestone(c *gin.Context) {
	if err := h.milestones.Delete(c.Request.Context(), h.actor(c), c.Param("id")); err != nil {
		fail(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *handler) listProjects(c *gin.Context) {
	ctx := c.Request.Context()
	var (
		projects []*domain.Project
		err      error
	)
	if mgr := c.Query("manager"); mgr != "" {
		projects, err = h.projects.ListByManager(ctx, mgr)
	} else {
		projects, err = h.projects.List(ctx)
	}
	if err != nil {
		fail(c, h.logger, err)
		return
	}
	out := make([]projectDTO, 0, len(projects))
	for _, p := range projects {
		out = append(out, toProjectDTO(p))
	}
	Success(c, http.StatusOK, out)
}

func (h *handler) getProject(c *gin.Context) {
	p, err := h.projects.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, h.logger, err)
		return
	}
	Success(c, http.StatusOK, toProjectDTO(p))
}

func (h *handler) createProject(c *gin.Context) {
	var req projectRequest
	if !h.bind(c, &req) {
		return
	}
	p, err := req.toDomain("")
	if err == nil {
		err = h.projects.Create(c.Request.Context(), h.actor(c), p)
	}
	if err != nil {
		fail(c, h.logger, err)
		return
	}
	Success(c, http.StatusCreated, toProjectDTO(p))
}

func (h *handler) updateProject(c *gin.Context) {
	var req projectRequest
	if !h.bind(c, &req) {
		return
	}
	p, err := req.toDomain(c.Param("id"))
	if err == nil {
		err = h.projects.Update(c.Request.Context(), h.actor(c), p)
	}
	if err != nil {
		fail(c, h.logger, err)
		return
	}
	Success(c, http.StatusOK, toProjectDTO(p))
}

func (h *handler) deleteProject(c *gin.Context) {
	if err := h.projects.Delete(c.Request.Context(), h.actor(c), c.Param("id")); err != nil {
		fail(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *handler) projectProgress(c *gin.Context) {
	summary, err := h.reports.Progress(c.Request.Context(), c.Param("id"), h.now())
	if err != nil {
		fail(c, h.logger, err)
		return
	}
	Success(c, http.StatusOK, summary)
}

func (h *handler) listReports(c *gin.Context) {
	ctx := c.Request.Context()
	id := c.Param("id")
	reports, err := h.reports.ListReports(ctx, id)
	if err != nil {
		fail(c, h.logger, err)
		return
	}
	next, err := h.reports.NextWeek(ctx, id)
	if err != nil {
		fail(c, h.logger, err)
		return
	}
	out := make([]reportDTO, 0, len(reports))
	for _, r := range reports {
		out = append(out, toReportDTO(r))
	}
	Success(c, http.StatusOK, gin.H{"reports": out, "nextWeek": next})
}

func (h *handler) generalReport(c *gin.Context) {
	view, err := h.reports.GetGeneral(c.Request.Context(), c.Param("id"), h.now())
	if err != nil {
		fail(c, h.logger, err)
		return
	}
	Success(c, http.StatusOK, view)
}

func (h *handler) weeklyReport(c *gin.Context) {
	week, ok := h.week(c)
	if !ok {
		return
	}
	view, err := h.reports.GetWeekly(c.Request.Context(), c.Param("id"), week, h.now())
	if err != nil {
		fail(c, h.logger, err)
		return
	}
	Success(c, http.StatusOK, view)
}

func (h *handler) submitReport(c *gin.Context) {
	week, ok := h.week(c)
	if !ok {
		return
	}
	var req submitReportRequest
	if !h.bind(c, &req) {
		return
	}
	res, err := h.reports.Submit(c.Request.Context(), h.actor(c), app.SubmitReportInput{
		ProjectID:              c.Param("id"),
		Week:                   week,
		Summary:                req.Summary,
		Status:                 req.Status,
		CompletedSubMilestones: req.CompletedSubMilestones,
		MarkProjectCompleted:   req.MarkProjectCompleted,
	})
	if err != nil {
		fail(c, h.logger, err)
		return
	}
	status := http.StatusOK
	if res.Created {
		status = http.StatusCreated
	}
	Success(c, status, submitReportResponse{
		Report:           toReportDTO(res.Report),
		Created:          res.Created,
		AllComplete:      res.AllComplete,
		ProjectCompleted: res.ProjectCompleted,
		CarriedForward:   res.CarriedForward,
	})
}

func (h *handler) deleteReport(c *gin.Context) {
	week, ok := h.week(c)
	if !ok {
		return
	}
	if err := h.reports.Delete(c.Request.Context(), h.actor(c), c.Param("id"), week); err != nil {
		fail(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *handler) dashboard(c *gin.Context) {
	stats, err := h.status.Dashboard(c.Request.Context(), h.actor(c), h.now())
	if err != nil {
		fail(c, h.logger, err)
		return
	}
	Success(c, http.StatusOK, stats)
}

func (h *handler) managerStats(c *gin.Context) {
	stats, err := h.status.ManagerStats(c.Request.Context(), h.actor(c), c.Param("id"))
	if err != nil {
		fail(c, h.logger, err)
		return
	}
	Success(c, http.StatusOK, stats)
}
