package errors

import "net/http"

var ErrProjectFetchFailed = &Exception{
	Message:    "failed to fetch projects",
	StatusCode: http.StatusInternalServerError,
}

var ErrProjectCreateFailed = &Exception{
	Message:    "failed to create project",
	StatusCode: http.StatusInternalServerError,
}

var ErrProjectUpdateFailed = &Exception{
	Message:    "failed to update project",
	StatusCode: http.StatusInternalServerError,
}

var ErrProjectDeleteFailed = &Exception{
	Message:    "failed to delete project",
	StatusCode: http.StatusInternalServerError,
}

var ErrProjectNotFound = &Exception{
	Message:    "project not found",
	StatusCode: http.StatusNotFound,
}

var ErrInvalidProject = &Exception{
	Message:    "invalid project data",
	StatusCode: http.StatusBadRequest,
}

var ErrCannotDeleteDefault = &Exception{
	Message:    "cannot delete default project",
	StatusCode: http.StatusConflict,
}
