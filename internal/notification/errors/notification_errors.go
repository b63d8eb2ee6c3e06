package notificationerrors

import (
	"net/http"

	"go-leave/internal/shared/apperror"
)

var (
	ErrInvalidNotificationID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid notification id",
		http.StatusBadRequest,
	)
	ErrInvalidRecipientID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid recipient id",
		http.StatusBadRequest,
	)
	ErrNotificationNotFound = apperror.New(
		apperror.CodeNotFound,
		"notification not found",
		http.StatusNotFound,
	)
	ErrNotRecipient = apperror.New(
		apperror.CodeForbidden,
		"notification belongs to another employee",
		http.StatusForbidden,
	)
)
