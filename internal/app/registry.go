package app

import (
	"context"
	"database/sql"

	"go-leave/internal/application"
	"go-leave/internal/auth"
	"go-leave/internal/balance"
	"go-leave/internal/department"
	"go-leave/internal/document"
	"go-leave/internal/employee"
	"go-leave/internal/holiday"
	"go-leave/internal/leavetype"
	"go-leave/internal/messaging/kafka"
	"go-leave/internal/middleware"
	"go-leave/internal/notification"
	"go-leave/internal/rbac"
	"go-leave/internal/shared/counter"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

func registerModules(
	ctx context.Context,
	router *gin.Engine,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
) error {
	// --- Repositories ---
	authRepo := auth.NewRepository(gormDB)
	departmentRepo := department.NewRepository(gormDB)
	employeeRepo := employee.NewRepository(gormDB)
	leaveTypeRepo := leavetype.NewRepository(gormDB)
	balanceRepo := balance.NewRepository(gormDB)
	applicationRepo := application.NewRepository(gormDB)
	notificationRepo := notification.NewRepository(gormDB)
	counterRepo := counter.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)

	// --- RBAC Core ---
	rbacService, err := rbac.NewService()
	if err != nil {
		return err
	}

	// --- Services ---
	calendar := holiday.NewCalendar()
	ledger := balance.NewLedger(balanceRepo)
	renderer := document.NewPDFRenderer()

	authService := auth.NewService(authRepo, employeeRepo)
	departmentService := department.NewService(db, departmentRepo)
	employeeService := employee.NewService(db, employeeRepo, counterRepo, rdb)
	leaveTypeService := leavetype.NewService(db, leaveTypeRepo)
	notificationService := notification.NewService(notificationRepo)
	applicationService := application.NewService(
		db,
		applicationRepo,
		leaveTypeRepo,
		ledger,
		calendar,
		employeeService,
		outboxRepo,
		renderer,
	)

	if err := leaveTypeService.Seed(ctx); err != nil {
		return err
	}

	// --- Handlers ---
	authHandler := auth.NewHandler(authService)
	departmentHandler := department.NewHandler(departmentService)
	employeeHandler := employee.NewHandler(employeeService)
	leaveTypeHandler := leavetype.NewHandler(leaveTypeService)
	balanceHandler := balance.NewHandler(ledger)
	applicationHandler := application.NewHandler(applicationService)
	notificationHandler := notification.NewHandler(notificationService)

	// --- Routes Registration ---
	api := router.Group("/api/v1")
	{
		auth.RegisterRoutes(api, authHandler)
		department.RegisterRoutes(api, departmentHandler, rbacService)
		employee.RegisterRoutes(api, employeeHandler, rbacService)
		leavetype.RegisterRoutes(api, leaveTypeHandler, rbacService)
		balance.RegisterRoutes(api, balanceHandler, rbacService)
		application.RegisterRoutes(api, applicationHandler, rbacService, middleware.Idempotency(rdb))
		notification.RegisterRoutes(api, notificationHandler, rbacService)
	}

	return nil
}
