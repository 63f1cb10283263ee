package httpapi

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/alexanderramin/cadence/internal/metrics"
	"github.com/alexanderramin/cadence/internal/service"
)

// Deps carries everything the router needs. DB and Metrics are optional;
// without them /readyz and /metrics are not mounted.
type Deps struct {
	ProjectTypes service.ProjectTypeService
	Clients      service.ClientService
	Milestones   service.MilestoneService
	Projects     service.ProjectService
	Reports      service.ReportService
	Status       service.StatusService
	Tokens       TokenValidator
	DB           *sql.DB
	Metrics      *metrics.Metrics
	Logger       *zap.Logger
	Now          func() time.Time
}

func NewRouter(d Deps) *gin.Engine {
	logger := d.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	now := d.Now
	if now == nil {
		now = func() time.Time { return time.Now().UTC() }
	}
	h := &handler{
		types:      d.ProjectTypes,
		clients:    d.Clients,
		milestones: d.Milestones,
		projects:   d.Projects,
		reports:    d.Reports,
		status:     d.Status,
		logger:     logger,
		now:        now,
	}

	r := gin.New()
	r.Use(Recovery(logger), RequestLogger(logger))
	if d.Metrics != nil {
		r.Use(Metrics(d.Metrics))
		r.GET("/metrics", gin.WrapH(d.Metrics.Handler()))
	}

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	if d.DB != nil {
		r.GET("/readyz", func(c *gin.Context) {
			ctx, cancel := context.WithTimeout(c.Request.Context(), time.Second)
			defer cancel()
			if err := d.DB.PingContext(ctx); err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "db_not_ready"})
				return
			}
			c.JSON(http.StatusOK, gin.H{"status": "ready"})
		})
	}

	api := r.Group("/api/v1")
	api.Use(JWTAuth(d.Tokens))

	types := api.Group("/project-types")
	types.GET("", h.listProjectTypes)
	types.POST("", AdminOnly(), h.createProjectType)
	types.PUT("/:id", AdminOnly(), h.updateProjectType)
	types.DELETE("/:id", AdminOnly(), h.deleteProjectType)

	clients := api.Group("/clients")
	clients.GET("", h.listClients)
	clients.GET("/:id", h.getClient)
	clients.POST("", AdminOnly(), h.createClient)
	clients.PUT("/:id", AdminOnly(), h.updateClient)
	clients.DELETE("/:id", AdminOnly(), h.deleteClient)

	milestones := api.Group("/milestones")
	milestones.GET("", h.listMilestones)
	milestones.GET("/:id", h.getMilestone)
	milestones.POST("", AdminOnly(), h.createMilestone)
	milestones.PUT("/:id", AdminOnly(), h.updateMilestone)
	milestones.DELETE("/:id", AdminOnly(), h.deleteMilestone)

	projects := api.Group("/projects")
	projects.GET("", h.listProjects)
	projects.POST("", h.createProject)
	projects.GET("/:id", h.getProject)
	projects.PUT("/:id", h.updateProject)
	projects.DELETE("/:id", h.deleteProject)
	projects.GET("/:id/progress", h.projectProgress)
	projects.GET("/:id/reports", h.listReports)
	projects.GET("/:id/reports/general", h.generalReport)
	projects.GET("/:id/reports/weeks/:week", h.weeklyReport)
	projects.PUT("/:id/reports/weeks/:week", h.submitReport)
	projects.DELETE("/:id/reports/weeks/:week", h.deleteReport)

	stats := api.Group("/stats")
	stats.GET("", h.dashboard)
	stats.GET("/managers/:id", h.managerStats)

	return r
}
