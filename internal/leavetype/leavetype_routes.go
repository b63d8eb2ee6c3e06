package leavetype

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
	types := r.Group("/leave-types")
	types.Use(middleware.AuthMiddleware())
	{
		types.GET("", middleware.Authorize(rbacService, "leave_type", "read"), handler.GetAll)
		types.GET("/:id", middleware.Authorize(rbacService, "leave_type", "read"), handler.GetById)
		types.POST("", middleware.Authorize(rbacService, "leave_type", "manage"), handler.Create)
		types.PUT("/:id", middleware.Authorize(rbacService, "leave_type", "manage"), handler.Update)
	}
}
