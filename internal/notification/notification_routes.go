package notification

import (
	"go-leave/internal/middleware"
	"go-leave/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService rbac.Service,
) {
	notifs := r.Group("/notifications")
	notifs.Use(middleware.AuthMiddleware())
	{
		notifs.GET("/mine", middleware.Authorize(rbacService, "notification", "read"), handler.ListMine)
		notifs.POST("/:id/read", middleware.Authorize(rbacService, "notification", "read"), handler.MarkRead)
		notifs.POST("/read-all", middleware.Authorize(rbacService, "notification", "read"), handler.MarkAllRead)
	}
}
