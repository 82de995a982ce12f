package errors

import "net/http"

var ErrTaskFetchFailed = &Exception{
	Message:    "failed to fetch tasks",
	StatusCode: http.StatusInternalServerError,
}

var ErrTaskCreateFailed = &Exception{
	Message:    "failed to create task",
	StatusCode: http.StatusInternalServerError,
}

var ErrTaskUpdateFailed = &Exception{
	Message:    "failed to update task",
	StatusCode: http.StatusInternalServerError,
}

var ErrTaskDeleteFailed = &Exception{
	Message:    "failed to delete task",
	StatusCode: http.StatusInternalServerError,
}

var ErrTaskNotFound = &Exception{
	Message:    "task not found",
	StatusCode: http.StatusNotFound,
}

var ErrInvalidTask = &Exception{
	Message:    "invalid task data",
	StatusCode: http.StatusBadRequest,
}
