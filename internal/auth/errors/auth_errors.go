package autherrors

import (
	"net/http"

	"go-leave/internal/shared/apperror"
)

var (
	ErrInvalidCredentials = apperror.New(
		apperror.CodeUnauthorized,
		"invalid email or password",
		http.StatusUnauthorized,
	)
	ErrAccountDisabled = apperror.New(
		apperror.CodeForbidden,
		"this account has been disabled",
		http.StatusForbidden,
	)
	ErrInvalidToken = apperror.New(
		apperror.CodeUnauthorized,
		"invalid token",
		http.StatusUnauthorized,
	)
	ErrTokenExpired = apperror.New(
		apperror.CodeUnauthorized,
		"token has expired",
		http.StatusUnauthorized,
	)
	ErrInvalidRefreshToken = apperror.New(
		apperror.CodeUnauthorized,
		"invalid or expired refresh token",
		http.StatusUnauthorized,
	)
	ErrInvalidUserID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid user id",
		http.StatusBadRequest,
	)
	ErrUserNotFound = apperror.New(
		apperror.CodeNotFound,
		"user not found",
		http.StatusNotFound,
	)
	ErrTokenGenerationFailed = apperror.New(
		apperror.CodeInternalError,
		"could not generate token",
		http.StatusInternalServerError,
	)
	ErrEmailAlreadyRegistered = apperror.New(
		apperror.CodeConflict,
		"this email is already registered",
		http.StatusConflict,
	)
	ErrResetTokenInvalid = apperror.New(
		apperror.CodeUnauthorized,
		"invalid or expired password reset token",
		http.StatusUnauthorized,
	)
)
