package balance

import (
	"net/http"
	"time"

	"go-leave/internal/shared/apperror"
	"go-leave/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	ledger Ledger
	logger *zap.Logger
}

func NewHandler(ledger Ledger, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("balance.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("balance.handler")
	}
	return &Handler{ledger: ledger, logger: l}
}

// GetMine lists the caller's balances for the current year.
func (h *Handler) GetMine(c *gin.Context) {
	employeeID := c.GetString("employee_id")
	year := time.Now().UTC().Year()

	resp, err := h.ledger.GetForEmployee(c.Request.Context(), employeeID, year)
	if err != nil {
		httpErr := apperror.ToHTTP(err)
		h.logger.Warn("get balances failed",
			zap.String("employee_id", employeeID),
			zap.Int("status", httpErr.Status),
			zap.String("code", httpErr.Code),
		)
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}
