package validators

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"tidynotes.com/tidynotes/internal/constants"
	dto "tidynotes.com/tidynotes/internal/data_models"
)

func ValidateTaskRequest(r *dto.TaskRequest) error {
	if r.Title == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "title is required")
	}
	if r.Status != "" && !constants.TaskStatus(r.Status).Valid() {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid task status")
	}
	return nil
}

func ValidateProjectRequest(r *dto.ProjectRequest) error {
	if r.Name == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "name is required")
	}
	if r.Color != "" && !constants.ValidProjectColor(r.Color) {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid project color")
	}
	return nil
}

func ValidateProfileRequest(r *dto.ProfileRequest) error {
	if r.Username == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "username is required")
	}
	if r.Email == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "email is required")
	}
	return nil
}
