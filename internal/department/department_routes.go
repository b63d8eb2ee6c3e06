package department

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
	departments := r.Group("/departments")
	departments.Use(middleware.AuthMiddleware())
	{
		departments.GET("", middleware.Authorize(rbacService, "department", "read"), handler.GetAll)
		departments.GET("/:id", middleware.Authorize(rbacService, "department", "read"), handler.GetById)
		departments.POST("", middleware.Authorize(rbacService, "department", "manage"), handler.Create)
		departments.PUT("/:id", middleware.Authorize(rbacService, "department", "manage"), handler.Update)
		departments.DELETE("/:id", middleware.Authorize(rbacService, "department", "manage"), handler.Delete)
	}
}
