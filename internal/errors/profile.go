package errors

import "net/http"

var ErrProfileFetchFailed = &Exception{
	Message:    "failed to fetch user profile",
	StatusCode: http.StatusInternalServerError,
}

var ErrProfileSaveFailed = &Exception{
	Message:    "failed to save user profile",
	StatusCode: http.StatusInternalServerError,
}

var ErrProfileDeleteFailed = &Exception{
	Message:    "failed to delete user profile",
	StatusCode: http.StatusInternalServerError,
}

var ErrProfileNotFound = &Exception{
	Message:    "user profile not found",
	StatusCode: http.StatusNotFound,
}

var ErrUserNotLoggedIn = &Exception{
	Message:    "user is not logged in",
	StatusCode: http.StatusUnauthorized,
}

var ErrInvalidCredentials = &Exception{
	Message:    "invalid credentials",
	StatusCode: http.StatusUnauthorized,
}

// NetworkError wraps a remote-store failure with its detail message.
func NetworkError(detail string) *Exception {
	return &Exception{
		Message:    "network error: " + detail,
		StatusCode: http.StatusBadGateway,
	}
}
