package balanceerrors

import (
	"net/http"

	"go-leave/internal/shared/apperror"
)

var (
	ErrInvalidEmployeeID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid employee id",
		http.StatusBadRequest,
	)
	ErrInvalidDays = apperror.New(
		apperror.CodeInvalidInput,
		"days must be a positive number",
		http.StatusBadRequest,
	)
	ErrBalanceNotFound = apperror.New(
		apperror.CodeNotFound,
		"leave balance not found",
		http.StatusNotFound,
	)
	ErrInsufficientBalance = apperror.New(
		apperror.CodeConflict,
		"insufficient leave balance",
		http.StatusConflict,
	)
)
