package router

import (
	"time"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/phuoclv264/katrina-one-sub004/internal/config"
	"github.com/phuoclv264/katrina-one-sub004/internal/handler"
	"github.com/phuoclv264/katrina-one-sub004/internal/infra"
	"github.com/phuoclv264/katrina-one-sub004/internal/middleware"
	"github.com/phuoclv264/katrina-one-sub004/internal/repository"
	"github.com/phuoclv264/katrina-one-sub004/internal/service"
	"github.com/phuoclv264/katrina-one-sub004/internal/worker"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client, ocrCB *infra.CircuitBreaker) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(1000, time.Minute)) // 1000 req/min per IP

	// ── Infrastructure ───────────────────────────────────────────────────────
	ocrClient := infra.NewOCRClient(cfg.OCRSidecarURL)

	// ── Repositories ─────────────────────────────────────────────────────────
	userRepo := repository.NewUserRepository(db)
	expenseRepo := repository.NewExpenseRepository(db)
	revenueRepo := repository.NewRevenueRepository(db)
	handoverRepo := repository.NewHandoverRepository(db)
	shiftRepo := repository.NewShiftRepository(db)
	incidentRepo := repository.NewIncidentRepository(db)
	floatRepo := repository.NewFloatRepository(rdb)

	// Worker dispatcher — injected into services that enqueue async jobs
	dispatcher := worker.NewDispatcher(rdb)

	// ── Services ─────────────────────────────────────────────────────────────
	authSvc := service.NewAuthService(userRepo, cfg)
	floatSvc := service.NewFloatService(floatRepo)
	expenseSvc := service.NewExpenseService(expenseRepo, shiftRepo)
	revenueSvc := service.NewRevenueService(revenueRepo, shiftRepo)
	incidentSvc := service.NewIncidentService(incidentRepo, shiftRepo)
	handoverSvc := service.NewHandoverService(handoverRepo, shiftRepo, expenseRepo, revenueRepo, floatSvc, dispatcher)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	usersH := handler.NewUsersHandler(authSvc)
	expensesH := handler.NewExpensesHandler(expenseSvc)
	revenueH := handler.NewRevenueHandler(revenueSvc)
	incidentsH := handler.NewIncidentsHandler(incidentSvc)
	floatH := handler.NewFloatHandler(floatSvc)
	handoverH := handler.NewHandoverHandler(handoverSvc, ocrClient, ocrCB)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb, ocrCB))

	// Auth (public)
	auth := r.Group("/v1/auth")
	{
		auth.POST("/login", middleware.LoginRateLimiter(), authH.Login)
		auth.POST("/refresh", authH.Refresh)
	}

	// Protected routes
	jwtMW := middleware.JWTAuth(cfg.JWTSecret)
	v1 := r.Group("/v1", jwtMW)
	{
		// Shift operations — any authenticated staff role
		shift := middleware.RequireRole("cashier", "manager", "admin")

		shifts := v1.Group("/shifts/:date", shift)
		{
			shifts.GET("/summary", handoverH.DailySummary)
			shifts.GET("/status", handoverH.Status)

			shifts.GET("/expenses", expensesH.List)
			shifts.POST("/expenses", expensesH.Create)

			shifts.GET("/revenue", revenueH.List)
			shifts.POST("/revenue", revenueH.Create)

			shifts.GET("/counts", handoverH.ListCounts)
			shifts.POST("/counts", handoverH.CreateCount)

			shifts.GET("/incidents", incidentsH.List)
			shifts.POST("/incidents", incidentsH.Create)

			shifts.GET("/float", floatH.Get)
			shifts.PUT("/float", floatH.Set)

			shifts.POST("/handover/compare", handoverH.Compare)
			shifts.POST("/handover/finalize", handoverH.Finalize)
			shifts.POST("/handover/receipt/parse", handoverH.ParseReceipt)
		}

		// Mutations on existing records — creator/lock checks live in the services
		v1.PUT("/expenses/:id", shift, expensesH.Update)
		v1.DELETE("/expenses/:id", shift, expensesH.Delete)
		v1.PUT("/revenue/:id", shift, revenueH.Update)
		v1.DELETE("/revenue/:id", shift, revenueH.Delete)
		v1.PUT("/counts/:id", shift, handoverH.UpdateCount)
		v1.DELETE("/counts/:id", shift, handoverH.DeleteCount)
		v1.PUT("/incidents/:id", shift, incidentsH.Update)
		v1.DELETE("/incidents/:id", shift, incidentsH.Delete)

		users := v1.Group("/users", middleware.RequireRole("admin"))
		{
			users.POST("", usersH.Create)
			users.GET("", usersH.List)
			users.PUT("/:id", usersH.Update)
			users.DELETE("/:id", usersH.Deactivate)
			users.PATCH("/:id/reactivate", usersH.Reactivate)
		}
	}

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
