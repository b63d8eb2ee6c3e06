package application

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
	l := zap.L().Named("application.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("application.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("application request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) Submit(c *gin.Context) {
	var req SubmitApplicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		mapped := apperror.ToHTTP(apperror.MapValidationError(err))
		response.Error(c, mapped.Status, mapped.Code, mapped.Message, nil)
		return
	}

	resp, err := h.service.Submit(c.Request.Context(), c.GetString("employee_id"), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) Decide(c *gin.Context) {
	var req DecideApplicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		mapped := apperror.ToHTTP(apperror.MapValidationError(err))
		response.Error(c, mapped.Status, mapped.Code, mapped.Message, nil)
		return
	}

	resp, err := h.service.Decide(c.Request.Context(), c.Param("id"), c.GetString("employee_id"), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Cancel(c *gin.Context) {
	resp, err := h.service.Cancel(c.Request.Context(), c.Param("id"), c.GetString("employee_id"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) GetById(c *gin.Context) {
	resp, err := h.service.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) ListMine(c *gin.Context) {
	resp, err := h.service.ListMine(c.Request.Context(), c.GetString("employee_id"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) ListPending(c *gin.Context) {
	resp, err := h.service.ListPending(c.Request.Context(), c.GetString("employee_id"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

// Document streams the permission PDF for an approved application.
func (h *Handler) Document(c *gin.Context) {
	pdf, err := h.service.RenderDocument(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="leave-permission.pdf"`)
	c.Data(http.StatusOK, "application/pdf", pdf)
}
