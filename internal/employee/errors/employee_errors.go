package employeeerrors

import (
	"net/http"

	"go-leave/internal/shared/apperror"
)

var (
	ErrEmployeeNotFound = apperror.New(
		apperror.CodeNotFound,
		"employee not found",
		http.StatusNotFound,
	)
	ErrEmployeeEmailTaken = apperror.New(
		apperror.CodeConflict,
		"an employee with this email already exists",
		http.StatusConflict,
	)
	ErrEmployeeNumberTaken = apperror.New(
		apperror.CodeConflict,
		"this employee number is already assigned",
		http.StatusConflict,
	)
	ErrInvalidEmployeeID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid employee id",
		http.StatusBadRequest,
	)
	ErrInvalidRole = apperror.New(
		apperror.CodeInvalidInput,
		"role must be staff, hod or principal_secretary",
		http.StatusBadRequest,
	)
	ErrUnknownDepartment = apperror.New(
		apperror.CodeInvalidInput,
		"department does not exist",
		http.StatusBadRequest,
	)
	ErrInvalidHireDate = apperror.New(
		apperror.CodeInvalidInput,
		"hire date must use the YYYY-MM-DD format",
		http.StatusBadRequest,
	)
)
