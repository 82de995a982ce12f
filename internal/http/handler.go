package http

import (
	"errors"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"

	"tidynotes.com/tidynotes/internal/constants"
	dto "tidynotes.com/tidynotes/internal/data_models"
	apperrors "tidynotes.com/tidynotes/internal/errors"
	"tidynotes.com/tidynotes/internal/http/validators"
	model "tidynotes.com/tidynotes/internal/models"
	repository "tidynotes.com/tidynotes/internal/repositories"
	"tidynotes.com/tidynotes/internal/services"
)

const maxImageBytes = 5 << 20

type Handler struct {
	factory  *repository.Factory
	migrator *services.Migrator
	sync     *services.SyncService
	profiles *services.ProfileService
	export   *services.ExportService
}

func NewHandler(
	factory *repository.Factory,
	migrator *services.Migrator,
	sync *services.SyncService,
	profiles *services.ProfileService,
	export *services.ExportService,
) *Handler {
	return &Handler{
		factory:  factory,
		migrator: migrator,
		sync:     sync,
		profiles: profiles,
		export:   export,
	}
}

func toHTTPError(err error) error {
	if errors.Is(err, services.ErrMigrationInFlight) {
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	}
	if errors.Is(err, services.ErrInvalidExportDocument) {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return echo.NewHTTPError(apperrors.StatusCode(err), err.Error())
}

// Tasks

func (h *Handler) ListTasks(c echo.Context) error {
	tasks, err := h.factory.Tasks().FetchAll(c.Request().Context(), c.QueryParam("user_id"))
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"count": len(tasks),
		"tasks": tasks,
	})
}

func (h *Handler) GetTask(c echo.Context) error {
	task, err := h.factory.Tasks().FetchByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, task)
}

func (h *Handler) CreateTask(c echo.Context) error {
	var req dto.TaskRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid JSON payload")
	}
	if err := validators.ValidateTaskRequest(&req); err != nil {
		return err
	}

	task := taskFromRequest(&req)
	created, err := h.factory.Tasks().Add(c.Request().Context(), task)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusCreated, created)
}

func (h *Handler) UpdateTask(c echo.Context) error {
	var req dto.TaskRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid JSON payload")
	}
	if err := validators.ValidateTaskRequest(&req); err != nil {
		return err
	}

	task := taskFromRequest(&req)
	task.ID = c.Param("id")
	updated, err := h.factory.Tasks().Update(c.Request().Context(), task)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, updated)
}

func (h *Handler) DeleteTask(c echo.Context) error {
	if err := h.sync.DeleteTask(c.Request().Context(), c.Param("id")); err != nil {
		return toHTTPError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) SetTaskPriority(c echo.Context) error {
	var req dto.PriorityRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid JSON payload")
	}

	task, err := h.factory.Tasks().SetPriority(c.Request().Context(), c.Param("id"), req.IsPriority)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, task)
}

func (h *Handler) SetTaskReminder(c echo.Context) error {
	var req dto.ReminderRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid JSON payload")
	}

	task, err := h.factory.Tasks().SetReminder(c.Request().Context(), c.Param("id"), req.IsReminderOn, req.ReminderDate)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, task)
}

func (h *Handler) AssignTaskToProject(c echo.Context) error {
	var req dto.AssignProjectRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid JSON payload")
	}
	if req.ProjectID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "project_id is required")
	}

	task, err := h.factory.Tasks().AssignToProject(c.Request().Context(), c.Param("id"), req.ProjectID)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, task)
}

func (h *Handler) AttachTaskImage(c echo.Context) error {
	data, err := io.ReadAll(io.LimitReader(c.Request().Body, maxImageBytes))
	if err != nil || len(data) == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "image body is required")
	}

	task, err := h.factory.Tasks().AttachImage(c.Request().Context(), c.Param("id"), data)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, task)
}

// Projects

func (h *Handler) ListProjects(c echo.Context) error {
	projects, err := h.factory.Projects().FetchAll(c.Request().Context())
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"count":    len(projects),
		"projects": projects,
	})
}

func (h *Handler) GetProject(c echo.Context) error {
	project, err := h.factory.Projects().FetchByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, project)
}

func (h *Handler) GetDefaultProject(c echo.Context) error {
	project, err := h.factory.Projects().GetDefault(c.Request().Context())
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, project)
}

func (h *Handler) CreateProject(c echo.Context) error {
	var req dto.ProjectRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid JSON payload")
	}
	if err := validators.ValidateProjectRequest(&req); err != nil {
		return err
	}

	project := projectFromRequest(&req)
	created, err := h.factory.Projects().Add(c.Request().Context(), project)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusCreated, created)
}

func (h *Handler) UpdateProject(c echo.Context) error {
	var req dto.ProjectRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid JSON payload")
	}
	if err := validators.ValidateProjectRequest(&req); err != nil {
		return err
	}

	project := projectFromRequest(&req)
	project.ID = c.Param("id")
	updated, err := h.factory.Projects().Update(c.Request().Context(), project)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, updated)
}

func (h *Handler) DeleteProject(c echo.Context) error {
	if err := h.factory.Projects().Delete(c.Request().Context(), c.Param("id")); err != nil {
		return toHTTPError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

// Profiles

func (h *Handler) GetProfile(c echo.Context) error {
	profile, err := h.profiles.Fetch(c.Request().Context(), c.Param("id"))
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, profile)
}

func (h *Handler) SaveProfile(c echo.Context) error {
	var req dto.ProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid JSON payload")
	}
	if err := validators.ValidateProfileRequest(&req); err != nil {
		return err
	}

	profile := &model.UserProfile{
		UserID:     c.Param("id"),
		Username:   req.Username,
		FirstName:  req.FirstName,
		LastName:   req.LastName,
		Email:      req.Email,
		Profession: req.Profession,
	}
	if err := h.profiles.Save(c.Request().Context(), profile); err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, profile)
}

func (h *Handler) DeleteProfileCache(c echo.Context) error {
	if err := h.profiles.DeleteLocal(c.Request().Context(), c.Param("id")); err != nil {
		return toHTTPError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

// Migration, sync, backup

func (h *Handler) MigrateToLocal(c echo.Context) error {
	if err := h.factory.SetBackend(c.Request().Context(), repository.BackendLocal); err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"backend": h.factory.Kind()})
}

func (h *Handler) MigrationStatus(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"state": h.migrator.State()})
}

func (h *Handler) SyncFromCloud(c echo.Context) error {
	if err := h.sync.SyncFromCloud(c.Request().Context(), c.Param("user_id")); err != nil {
		return toHTTPError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) PushToCloud(c echo.Context) error {
	if err := h.sync.PushToCloud(c.Request().Context(), c.Param("user_id")); err != nil {
		return toHTTPError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) ExportAll(c echo.Context) error {
	data, err := h.export.ExportAll(c.Request().Context())
	if err != nil {
		return toHTTPError(err)
	}
	return c.Blob(http.StatusOK, echo.MIMEApplicationJSON, data)
}

func (h *Handler) ImportAll(c echo.Context) error {
	data, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := h.export.ImportAll(c.Request().Context(), data); err != nil {
		return toHTTPError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

func taskFromRequest(req *dto.TaskRequest) *model.Task {
	return &model.Task{
		UserID:       req.UserID,
		ProjectID:    req.ProjectID,
		Title:        req.Title,
		Description:  req.Description,
		IsPriority:   req.IsPriority,
		DueDate:      req.DueDate,
		IsReminderOn: req.IsReminderOn,
		ReminderDate: req.ReminderDate,
		Status:       constants.TaskStatus(req.Status),
	}
}

func projectFromRequest(req *dto.ProjectRequest) *model.Project {
	return &model.Project{
		Name:      req.Name,
		Color:     req.Color,
		Icon:      req.Icon,
		IsDefault: req.IsDefault,
	}
}
