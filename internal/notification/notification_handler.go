package notification

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
	l := zap.L().Named("notification.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("notification.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("notification request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) ListMine(c *gin.Context) {
	employeeID := c.GetString("employee_id")
	unreadOnly := c.Query("unread") == "true"

	notifs, err := h.service.ListMine(c.Request.Context(), employeeID, unreadOnly)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, notifs, nil)
}

func (h *Handler) MarkRead(c *gin.Context) {
	employeeID := c.GetString("employee_id")

	if err := h.service.MarkRead(c.Request.Context(), employeeID, c.Param("id")); err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"read": true}, nil)
}

func (h *Handler) MarkAllRead(c *gin.Context) {
	employeeID := c.GetString("employee_id")

	updated, err := h.service.MarkAllRead(c.Request.Context(), employeeID)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, MarkAllReadResponse{Updated: updated}, nil)
}
