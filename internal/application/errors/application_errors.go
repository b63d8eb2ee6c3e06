package applicationerrors

import (
	"net/http"

	"go-leave/internal/shared/apperror"
)

var (
	ErrInvalidApplicationID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid application id",
		http.StatusBadRequest,
	)
	ErrInvalidEmployeeID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid employee id",
		http.StatusBadRequest,
	)
	ErrInvalidActorID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid actor id",
		http.StatusBadRequest,
	)
	ErrInvalidDateFormat = apperror.New(
		apperror.CodeInvalidInput,
		"dates must use the YYYY-MM-DD format",
		http.StatusBadRequest,
	)
	ErrInvalidDateRange = apperror.New(
		apperror.CodeInvalidInput,
		"start date must not be after end date",
		http.StatusBadRequest,
	)
	ErrStartDateInPast = apperror.New(
		apperror.CodeInvalidInput,
		"start date must not be in the past",
		http.StatusBadRequest,
	)
	ErrNoWorkingDays = apperror.New(
		apperror.CodeInvalidInput,
		"the requested period contains no working days",
		http.StatusBadRequest,
	)
	ErrOverlappingApplication = apperror.New(
		apperror.CodeConflict,
		"the period overlaps an existing pending or approved application",
		http.StatusConflict,
	)
	ErrDutyCoverUnavailable = apperror.New(
		apperror.CodeConflict,
		"the duty cover is on approved leave during the requested period",
		http.StatusConflict,
	)
	ErrUnsupportedApplicantRole = apperror.New(
		apperror.CodeInvalidState,
		"this role cannot submit leave applications",
		http.StatusUnprocessableEntity,
	)
	ErrApplicationNotFound = apperror.New(
		apperror.CodeNotFound,
		"application not found",
		http.StatusNotFound,
	)
	ErrWrongApprovalStage = apperror.New(
		apperror.CodeInvalidState,
		"the application is not awaiting a decision at your stage",
		http.StatusConflict,
	)
	ErrRoleMismatch = apperror.New(
		apperror.CodeForbidden,
		"you cannot decide applications from this applicant",
		http.StatusForbidden,
	)
	ErrInvalidAction = apperror.New(
		apperror.CodeInvalidInput,
		"action must be approve or reject",
		http.StatusBadRequest,
	)
	ErrNotApplicant = apperror.New(
		apperror.CodeForbidden,
		"only the applicant may cancel an application",
		http.StatusForbidden,
	)
	ErrNotCancellable = apperror.New(
		apperror.CodeInvalidState,
		"only pending applications can be cancelled",
		http.StatusConflict,
	)
	ErrNotAnApprover = apperror.New(
		apperror.CodeForbidden,
		"your role has no approval queue",
		http.StatusForbidden,
	)
	ErrNotApproved = apperror.New(
		apperror.CodeInvalidState,
		"only approved applications have a permission document",
		http.StatusConflict,
	)
)
