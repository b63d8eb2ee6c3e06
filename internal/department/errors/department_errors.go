package departmenterrors

import (
	"net/http"

	"go-leave/internal/shared/apperror"
)

var (
	ErrDepartmentNotFound = apperror.New(
		apperror.CodeNotFound,
		"department not found",
		http.StatusNotFound,
	)
	ErrDepartmentNameTaken = apperror.New(
		apperror.CodeConflict,
		"a department with this name already exists",
		http.StatusConflict,
	)
	ErrInvalidDepartmentID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid department id",
		http.StatusBadRequest,
	)
	ErrUnknownHead = apperror.New(
		apperror.CodeInvalidInput,
		"the head of department must be an existing employee",
		http.StatusBadRequest,
	)
)
