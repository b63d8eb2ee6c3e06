package apperror

import (
	"errors"
	"net/http"
)

type HTTPError struct {
	Status  int
	Code    string
	Message string
	Details any
}

// ToHTTP classifies any error for the response envelope. Unknown errors map
// to a generic 500 so internals never leak to clients.
func ToHTTP(err error) HTTPError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return HTTPError{
			Status:  appErr.HTTPStatus,
			Code:    appErr.Code,
			Message: appErr.Message,
		}
	}

	return HTTPError{
		Status:  http.StatusInternalServerError,
		Code:    CodeInternalError,
		Message: "An unexpected error occurred",
	}
}
