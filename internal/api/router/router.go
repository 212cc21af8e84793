package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/sravivarmanvce/academic-activity-portal-sub000/config"
	"github.com/sravivarmanvce/academic-activity-portal-sub000/internal/api/handler"
	"github.com/sravivarmanvce/academic-activity-portal-sub000/internal/api/middleware"
	"github.com/sravivarmanvce/academic-activity-portal-sub000/internal/workflow"
)

// Setup builds the Gin engine with every route and middleware attached.
func Setup(cfg *config.Config, h *handler.Handler, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// ── Global middleware ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))

	// ── Health check ──
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// ── API v1 ──
	v1 := r.Group("/api/v1")
	v1.Use(middleware.Actor())
	{
		// Reference data
		v1.GET("/academic-years", h.Reference.ListAcademicYears)
		v1.GET("/departments", h.Reference.ListDepartments)
		v1.GET("/program-types", h.Reference.ListProgramTypes)

		// Budget entry module
		programCounts := v1.Group("/program-counts")
		{
			programCounts.GET("", h.ProgramCount.List)
			programCounts.POST("", h.ProgramCount.SubmitBudget)
			programCounts.PUT("/principal-remarks",
				middleware.RoleAuth(workflow.RolePrincipal, workflow.RoleAdmin),
				h.ProgramCount.SetPrincipalRemarks)
		}

		// Workflow state machine
		workflowStatus := v1.Group("/workflow-status")
		{
			workflowStatus.GET("", h.Workflow.GetStatus)
			workflowStatus.POST("/transition", h.Workflow.Transition)
			workflowStatus.GET("/summary/:yearID",
				middleware.RoleAuth(workflow.RolePrincipal, workflow.RoleAdmin),
				h.Workflow.StatusSummary)
		}

		// Module deadlines (admin maintains, everyone reads)
		deadlines := v1.Group("/module-deadlines")
		{
			deadlines.POST("", middleware.RoleAuth(workflow.RoleAdmin), h.Deadline.Set)
			deadlines.GET("/:yearID", h.Deadline.ListForYear)
			deadlines.GET("/:yearID/:module", h.Deadline.Get)
		}

		// Deadline overrides
		overrides := v1.Group("/deadline-overrides")
		{
			privileged := middleware.RoleAuth(workflow.RolePrincipal, workflow.RoleAdmin)
			overrides.POST("", privileged, h.Override.Grant)
			overrides.POST("/bulk", privileged, h.Override.BulkGrant)
			overrides.PUT("/extend", privileged, h.Override.Extend)
			overrides.DELETE("", privileged, h.Override.Revoke)
			overrides.GET("/check", h.Override.Check)
			overrides.GET("/:yearID", privileged, h.Override.List)
		}

		// Event planning module
		events := v1.Group("/events")
		{
			events.GET("", h.Event.List)
			events.POST("", h.Event.SaveEvents)
			events.POST("/generate-slots", h.Event.GenerateSlots)
			events.DELETE("", h.Event.ClearEvents)
			events.GET("/:id", h.Event.Get)
			events.PUT("/:id/status", h.Event.UpdateStatus)
			events.GET("/budget-summary", h.Event.BudgetSummary)
			events.GET("/calendar.ics", h.Event.ExportCalendar)
		}

		// Notification inbox
		notifications := v1.Group("/notifications")
		{
			notifications.GET("", h.Notification.Inbox)
			notifications.PUT("/:id/read", h.Notification.MarkRead)
		}

		// Editability resolver
		v1.GET("/editability", h.Editability.Resolve)

		// Deadline reminders
		v1.POST("/reminders",
			middleware.RoleAuth(workflow.RolePrincipal, workflow.RoleAdmin),
			h.Reminder.SendReminders)
	}

	return r
}
