// Package router sets up the HTTP routing for the application.
package router

import (
	"github.com/gin-gonic/gin"

	"github.com/finance-tracker/ledgerd/internal/integration/entrypoint/controller"
	"github.com/finance-tracker/ledgerd/internal/integration/entrypoint/middleware"
)

// Router holds the Gin engine and controller dependencies.
type Router struct {
	engine                *gin.Engine
	healthController      *controller.HealthController
	transactionController *controller.TransactionController
	accountController     *controller.AccountController
	categoryController    *controller.CategoryController
	ruleController        *controller.RuleController
	importController      *controller.ImportController
	analyticsController   *controller.AnalyticsController
	authMiddleware        *middleware.AuthMiddleware
	rateLimiter           *middleware.RateLimiter
	corsAllowedOrigin     string
}

// NewRouter creates a new router instance with all dependencies.
func NewRouter(
	healthController *controller.HealthController,
	transactionController *controller.TransactionController,
	accountController *controller.AccountController,
	categoryController *controller.CategoryController,
	ruleController *controller.RuleController,
	importController *controller.ImportController,
	analyticsController *controller.AnalyticsController,
	authMiddleware *middleware.AuthMiddleware,
	rateLimiter *middleware.RateLimiter,
	corsAllowedOrigin string,
) *Router {
	return &Router{
		engine:                gin.New(),
		healthController:      healthController,
		transactionController: transactionController,
		accountController:     accountController,
		categoryController:    categoryController,
		ruleController:        ruleController,
		importController:      importController,
		analyticsController:   analyticsController,
		authMiddleware:        authMiddleware,
		rateLimiter:           rateLimiter,
		corsAllowedOrigin:     corsAllowedOrigin,
	}
}

// Engine returns the underlying Gin engine, ready to be handed to an
// http.Server.
func (r *Router) Engine() *gin.Engine {
	return r.engine
}

// Setup registers every route and middleware.
func (r *Router) Setup() {
	r.engine.Use(gin.Recovery())
	r.engine.Use(r.corsMiddleware())
	r.engine.Use(r.rateLimiter.Middleware())

	r.engine.GET("/healthz", r.healthController.Check)

	v1 := r.engine.Group("/api/v1")
	v1.Use(r.authMiddleware.Authenticate())
	{
		transactions := v1.Group("/transactions")
		{
			transactions.GET("", r.transactionController.List)
			transactions.GET("/:id", r.transactionController.Get)
			transactions.PATCH("/:id", r.transactionController.Patch)
			transactions.POST("/:id/split", r.transactionController.Split)
			transactions.POST("/:id/unsplit", r.transactionController.Unsplit)
			transactions.GET("/:id/splits", r.transactionController.Splits)
		}

		accounts := v1.Group("/accounts")
		{
			accounts.GET("", r.accountController.List)
			accounts.POST("", r.accountController.Create)
		}

		v1.GET("/categories", r.categoryController.List)

		rules := v1.Group("/rules")
		{
			rules.GET("", r.ruleController.List)
			rules.POST("", r.ruleController.Create)
			rules.PATCH("/:id", r.ruleController.Update)
			rules.DELETE("/:id", r.ruleController.Delete)
			rules.POST("/reorder", r.ruleController.Reorder)
			rules.POST("/suggestions/dismiss", r.ruleController.DismissSuggestion)
			rules.POST("/suggestions/accept", r.ruleController.AcceptSuggestion)
		}

		imports := v1.Group("/imports")
		{
			imports.POST("/upload", r.importController.Upload)
			imports.GET("", r.importController.List)
			imports.GET("/:id", r.importController.Get)
		}

		analytics := v1.Group("/analytics")
		{
			analytics.GET("/monthly", r.analyticsController.Monthly)
			analytics.GET("/trend", r.analyticsController.Trend)
			analytics.GET("/categories", r.analyticsController.Categories)
			analytics.GET("/accounts", r.analyticsController.Accounts)
		}
	}
}

// corsMiddleware allows the configured single origin when set; otherwise
// CORS headers are omitted and cross-origin browser calls are rejected
// by the browser itself.
func (r *Router) corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if r.corsAllowedOrigin != "" {
			c.Header("Access-Control-Allow-Origin", r.corsAllowedOrigin)
			c.Header("Access-Control-Allow-Methods", "GET, POST, PATCH, DELETE, OPTIONS")
			c.Header("Access-Control-Allow-Headers", "Authorization, Content-Type")
			if c.Request.Method == "OPTIONS" {
				c.AbortWithStatus(204)
				return
			}
		}
		c.Next()
	}
}
