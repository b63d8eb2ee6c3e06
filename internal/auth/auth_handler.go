package auth

import (
	"net/http"

	"go-leave/internal/shared/apperror"
	"go-leave/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("auth.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("auth.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("auth request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		mapped := apperror.ToHTTP(apperror.MapValidationError(err))
		response.Error(c, mapped.Status, mapped.Code, mapped.Message, nil)
		return
	}

	resp, err := h.service.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) RefreshToken(c *gin.Context) {
	var req RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		mapped := apperror.ToHTTP(apperror.MapValidationError(err))
		response.Error(c, mapped.Status, mapped.Code, mapped.Message, nil)
		return
	}

	resp, err := h.service.RefreshToken(c.Request.Context(), req.RefreshToken)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Me(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		response.Error(c, http.StatusUnauthorized, apperror.CodeUnauthorized, "unauthorized", nil)
		return
	}

	resp, err := h.service.GetMe(c.Request.Context(), userID)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		mapped := apperror.ToHTTP(apperror.MapValidationError(err))
		response.Error(c, mapped.Status, mapped.Code, mapped.Message, nil)
		return
	}

	resp, err := h.service.Register(c.Request.Context(), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, resp, nil)
}

// ForgotPassword always answers 200 so the endpoint cannot reveal which
// emails are registered. The token travels out of band.
func (h *Handler) ForgotPassword(c *gin.Context) {
	var req ForgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		mapped := apperror.ToHTTP(apperror.MapValidationError(err))
		response.Error(c, mapped.Status, mapped.Code, mapped.Message, nil)
		return
	}

	if _, err := h.service.ForgotPassword(c.Request.Context(), req.Email); err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"sent": true}, nil)
}

func (h *Handler) ResetPassword(c *gin.Context) {
	var req ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		mapped := apperror.ToHTTP(apperror.MapValidationError(err))
		response.Error(c, mapped.Status, mapped.Code, mapped.Message, nil)
		return
	}

	if err := h.service.ResetPassword(c.Request.Context(), req.Token, req.NewPassword); err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"reset": true}, nil)
}
