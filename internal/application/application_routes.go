package application

import (
	"go-leave/internal/middleware"
	"go-leave/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService rbac.Service,
	idempotency gin.HandlerFunc,
) {
	apps := r.Group("/applications")
	apps.Use(middleware.AuthMiddleware())
	{
		apps.POST("", middleware.Authorize(rbacService, "application", "submit"), idempotency, handler.Submit)
		apps.GET("/mine", middleware.Authorize(rbacService, "application", "read"), handler.ListMine)
		apps.GET("/pending", middleware.Authorize(rbacService, "application", "decide"), handler.ListPending)
		apps.GET("/:id", middleware.Authorize(rbacService, "application", "read"), handler.GetById)
		apps.GET("/:id/document", middleware.Authorize(rbacService, "application", "read"), handler.Document)
		apps.POST("/:id/decision", middleware.Authorize(rbacService, "application", "decide"), handler.Decide)
		apps.POST("/:id/cancel", middleware.Authorize(rbacService, "application", "submit"), handler.Cancel)
	}
}
