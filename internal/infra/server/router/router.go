// Package router sets up the HTTP routing for the application.
package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/budget-tracker/backend/internal/integration/entrypoint/controller"
	"github.com/budget-tracker/backend/internal/integration/entrypoint/middleware"
)

// Router holds the Gin engine and controller dependencies.
type Router struct {
	engine                *gin.Engine
	healthController      *controller.HealthController
	authController        *controller.AuthController
	userController        *controller.UserController
	transactionController *controller.TransactionController
	summaryController     *controller.SummaryController
	householdController   *controller.HouseholdController
	adviceController      *controller.AdviceController
	loginRateLimiter      *middleware.RateLimiter
	adviceRateLimiter     *middleware.RateLimiter
	authMiddleware        *middleware.AuthMiddleware
	allowedOrigins        []string
}

// Controllers groups the controllers served by the router.
// Any controller left nil has its routes skipped.
type Controllers struct {
	Health      *controller.HealthController
	Auth        *controller.AuthController
	User        *controller.UserController
	Transaction *controller.TransactionController
	Summary     *controller.SummaryController
	Household   *controller.HouseholdController
	Advice      *controller.AdviceController
}

// Middlewares groups the middleware shared by the routes.
type Middlewares struct {
	Auth              *middleware.AuthMiddleware
	LoginRateLimiter  *middleware.RateLimiter
	AdviceRateLimiter *middleware.RateLimiter
	AllowedOrigins    []string
}

// NewRouter creates a new router instance with all dependencies.
func NewRouter(controllers Controllers, middlewares Middlewares) *Router {
	return &Router{
		healthController:      controllers.Health,
		authController:        controllers.Auth,
		userController:        controllers.User,
		transactionController: controllers.Transaction,
		summaryController:     controllers.Summary,
		householdController:   controllers.Household,
		adviceController:      controllers.Advice,
		loginRateLimiter:      middlewares.LoginRateLimiter,
		adviceRateLimiter:     middlewares.AdviceRateLimiter,
		authMiddleware:        middlewares.Auth,
		allowedOrigins:        middlewares.AllowedOrigins,
	}
}

// Setup configures and returns the Gin engine with all routes.
func (r *Router) Setup(environment string) *gin.Engine {
	switch environment {
	case "production":
		gin.SetMode(gin.ReleaseMode)
	case "test":
		gin.SetMode(gin.TestMode)
	}

	if environment == "test" {
		r.engine = gin.New()
		r.engine.Use(gin.Recovery())
	} else {
		r.engine = gin.Default()
	}

	if len(r.allowedOrigins) > 0 {
		r.engine.Use(cors.New(cors.Config{
			AllowOrigins:     r.allowedOrigins,
			AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
			AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
			ExposeHeaders:    []string{"Content-Length"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}

	r.setupHealthRoutes()
	r.setupAPIRoutes()

	return r.engine
}

// setupHealthRoutes configures health check endpoints.
func (r *Router) setupHealthRoutes() {
	if r.healthController != nil {
		r.engine.GET("/health", r.healthController.Check)
	}
}

// setupAPIRoutes configures the main API routes.
func (r *Router) setupAPIRoutes() {
	v1 := r.engine.Group("/api/v1")

	if r.authController != nil {
		auth := v1.Group("/auth")
		{
			auth.POST("/register", r.authController.Register)
			auth.POST("/login", r.limit(r.loginRateLimiter), r.authController.Login)
			auth.POST("/refresh", r.authController.RefreshToken)
			auth.POST("/logout", r.authController.Logout)
		}
	}

	// Everything below requires authentication.
	if r.authMiddleware == nil {
		return
	}

	if r.summaryController != nil {
		// The websocket route authenticates on its own so browsers can pass the token in the query.
		v1.GET("/summaries/ws", r.authMiddleware.AuthenticateWebSocket(), r.summaryController.Stream)
	}

	protected := v1.Group("")
	protected.Use(r.authMiddleware.Authenticate())

	if r.userController != nil {
		protected.GET("/users/me", r.userController.Me)
	}

	if r.transactionController != nil {
		transactions := protected.Group("/transactions")
		{
			transactions.GET("", r.transactionController.List)
			transactions.POST("", r.transactionController.Create)
			transactions.PATCH("/:id", r.transactionController.Update)
			transactions.DELETE("/:id", r.transactionController.Delete)
		}
	}

	if r.summaryController != nil {
		summaries := protected.Group("/summaries")
		{
			summaries.GET("", r.summaryController.Get)
			summaries.GET("/insights", r.summaryController.Insights)
			summaries.POST("/alerts", r.summaryController.SendAlert)
		}
	}

	if r.householdController != nil {
		protected.GET("/household", r.householdController.GetHousehold)
		protected.PUT("/household", r.householdController.SetHousehold)

		profile := protected.Group("/financial-profile")
		{
			profile.GET("", r.householdController.GetFinancialProfile)
			profile.PUT("", r.householdController.SetFinancialProfile)
			profile.GET("/health", r.householdController.EvaluateHealth)
		}

		targets := protected.Group("/savings-targets")
		{
			targets.GET("/:year", r.householdController.GetSavingsProgress)
			targets.PUT("/:year", r.householdController.SetSavingsTarget)
		}
	}

	if r.adviceController != nil {
		protected.POST("/advice", r.limit(r.adviceRateLimiter), r.adviceController.Ask)
	}
}

func (r *Router) limit(rl *middleware.RateLimiter) gin.HandlerFunc {
	if rl == nil {
		return func(c *gin.Context) { c.Next() }
	}
	return rl.Middleware()
}

// Engine returns the underlying Gin engine.
func (r *Router) Engine() *gin.Engine {
	return r.engine
}
