package http

import (
	"time"

	"github.com/labstack/echo/v4"

	middleware "tidynotes.com/tidynotes/internal/http/middlewares"
)

func Register(e *echo.Echo, h *Handler, rateLimitPerMinute int) {
	e.Use(middleware.RateLimiter(rateLimitPerMinute, time.Minute))

	e.GET("/tasks", h.ListTasks)
	e.POST("/tasks", h.CreateTask)
	e.GET("/tasks/:id", h.GetTask)
	e.PUT("/tasks/:id", h.UpdateTask)
	e.DELETE("/tasks/:id", h.DeleteTask)
	e.PUT("/tasks/:id/priority", h.SetTaskPriority)
	e.PUT("/tasks/:id/reminder", h.SetTaskReminder)
	e.PUT("/tasks/:id/project", h.AssignTaskToProject)
	e.PUT("/tasks/:id/image", h.AttachTaskImage)

	e.GET("/projects", h.ListProjects)
	e.POST("/projects", h.CreateProject)
	e.GET("/projects/default", h.GetDefaultProject)
	e.GET("/projects/:id", h.GetProject)
	e.PUT("/projects/:id", h.UpdateProject)
	e.DELETE("/projects/:id", h.DeleteProject)

	e.GET("/users/:id/profile", h.GetProfile)
	e.PUT("/users/:id/profile", h.SaveProfile)
	e.DELETE("/users/:id/profile", h.DeleteProfileCache)

	e.POST("/migrate", h.MigrateToLocal)
	e.GET("/migrate/status", h.MigrationStatus)
	e.POST("/sync/:user_id", h.SyncFromCloud)
	e.POST("/sync/:user_id/push", h.PushToCloud)

	e.GET("/export", h.ExportAll)
	e.POST("/import", h.ImportAll)
}
