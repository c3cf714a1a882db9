// Package dependency provides dependency injection for the application.
package dependency

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/budget-tracker/backend/config"
	"github.com/budget-tracker/backend/internal/application/adapter"
	"github.com/budget-tracker/backend/internal/application/usecase/advice"
	"github.com/budget-tracker/backend/internal/application/usecase/auth"
	"github.com/budget-tracker/backend/internal/application/usecase/financial"
	"github.com/budget-tracker/backend/internal/application/usecase/household"
	"github.com/budget-tracker/backend/internal/application/usecase/savings"
	"github.com/budget-tracker/backend/internal/application/usecase/summary"
	"github.com/budget-tracker/backend/internal/application/usecase/transaction"
	"github.com/budget-tracker/backend/internal/infra/db"
	"github.com/budget-tracker/backend/internal/infra/server/router"
	"github.com/budget-tracker/backend/internal/integration/adapters"
	"github.com/budget-tracker/backend/internal/integration/cache"
	"github.com/budget-tracker/backend/internal/integration/email"
	"github.com/budget-tracker/backend/internal/integration/email/templates"
	"github.com/budget-tracker/backend/internal/integration/entrypoint/controller"
	"github.com/budget-tracker/backend/internal/integration/entrypoint/middleware"
	"github.com/budget-tracker/backend/internal/integration/persistence"
	"github.com/budget-tracker/backend/internal/integration/realtime"
)

// Injector holds all application dependencies.
type Injector struct {
	Config    *config.Config
	DB        *gorm.DB
	Redis     *redis.Client
	Router    *router.Router
	Hub       *realtime.Hub
	TokenRepo persistence.TokenRepository
	// Rate limiters are exposed so their in-memory counters can be cleaned up periodically.
	LoginRateLimiter  *middleware.RateLimiter
	AdviceRateLimiter *middleware.RateLimiter
}

// Option overrides an external service of the injector.
type Option func(*options)

type options struct {
	emailSender   adapter.EmailSender
	adviceService adapter.AdviceService
	predictor     adapter.PredictionService
	now           func() time.Time
}

// WithEmailSender replaces the Resend client.
func WithEmailSender(sender adapter.EmailSender) Option {
	return func(o *options) { o.emailSender = sender }
}

// WithAdviceService replaces the Gemini client.
func WithAdviceService(service adapter.AdviceService) Option {
	return func(o *options) { o.adviceService = service }
}

// WithPredictor replaces the built-in financial health predictor.
func WithPredictor(predictor adapter.PredictionService) Option {
	return func(o *options) { o.predictor = predictor }
}

// WithClock replaces the wall clock used to resolve the current period.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

// NewInjector creates a new dependency injector with all dependencies wired.
// redisClient may be nil, in which case summaries are recomputed on every read
// and rate limits are counted in memory.
func NewInjector(cfg *config.Config, database *gorm.DB, redisClient *redis.Client, opts ...Option) (*Injector, error) {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}

	location, err := cfg.Summary.Location()
	if err != nil {
		return nil, err
	}
	thresholds, err := config.LoadThresholds(cfg.Summary.ThresholdsFile)
	if err != nil {
		return nil, err
	}

	// Create repositories
	userRepo := persistence.NewUserRepository(database)
	tokenRepo := persistence.NewTokenRepository(database)
	transactionRepo := persistence.NewTransactionRepository(database)
	householdRepo := persistence.NewHouseholdRepository(database)
	profileRepo := persistence.NewFinancialProfileRepository(database)
	savingsRepo := persistence.NewSavingsTargetRepository(database)

	// Create adapters/services
	passwordService := adapters.NewPasswordService(cfg.JWT.BcryptCost)
	tokenService := adapters.NewTokenService(cfg.JWT.Secret, cfg.JWT.AccessTokenExpiry, cfg.JWT.RefreshTokenExpiry, tokenRepo)

	var summaryCache adapter.SummaryCache
	if redisClient != nil {
		summaryCache = cache.NewSummaryCache(redisClient, cfg.Summary.CacheTTL)
	}

	hub := realtime.NewHub()

	mailer, err := newAlertMailer(cfg, o.emailSender)
	if err != nil {
		return nil, err
	}

	adviceService := o.adviceService
	if adviceService == nil && cfg.Gemini.APIKey != "" {
		adviceService = adapters.NewGeminiService(cfg.Gemini.APIKey, cfg.Gemini.Model)
	}

	predictor := o.predictor
	if predictor == nil {
		predictor = adapters.NewLogisticPredictor()
	}

	// Create summary use cases
	engine := summary.NewEngine(transactionRepo, summaryCache, location, thresholds)
	getSummariesUseCase := summary.NewGetSummariesUseCase(engine)
	refreshSummariesUseCase := summary.NewRefreshSummariesUseCase(engine, hub)
	getInsightsUseCase := summary.NewGetInsightsUseCase(engine, householdRepo)
	sendBudgetAlertUseCase := summary.NewSendBudgetAlertUseCase(engine, userRepo, mailer)

	// Create auth use cases
	registerUseCase := auth.NewRegisterUserUseCase(userRepo, passwordService, tokenService)
	loginUseCase := auth.NewLoginUserUseCase(userRepo, passwordService, tokenService)
	refreshTokenUseCase := auth.NewRefreshTokenUseCase(userRepo, tokenService)
	logoutUseCase := auth.NewLogoutUserUseCase(tokenService)
	getCurrentUserUseCase := auth.NewGetCurrentUserUseCase(userRepo)

	// Create transaction use cases
	listTransactionsUseCase := transaction.NewListTransactionsUseCase(transactionRepo)
	createTransactionUseCase := transaction.NewCreateTransactionUseCase(transactionRepo, refreshSummariesUseCase)
	updateTransactionUseCase := transaction.NewUpdateTransactionUseCase(transactionRepo, refreshSummariesUseCase)
	deleteTransactionUseCase := transaction.NewDeleteTransactionUseCase(transactionRepo, refreshSummariesUseCase)

	// Create household use cases
	setHouseholdUseCase := household.NewSetHouseholdUseCase(householdRepo)
	getHouseholdUseCase := household.NewGetHouseholdUseCase(householdRepo)
	setFinancialProfileUseCase := financial.NewSetFinancialProfileUseCase(profileRepo)
	getFinancialProfileUseCase := financial.NewGetFinancialProfileUseCase(profileRepo)
	evaluateFinancialHealthUseCase := financial.NewEvaluateFinancialHealthUseCase(profileRepo, householdRepo, predictor)
	setSavingsTargetUseCase := savings.NewSetSavingsTargetUseCase(savingsRepo)
	getSavingsProgressUseCase := savings.NewGetSavingsProgressUseCase(savingsRepo, transactionRepo, location)
	getAdviceUseCase := advice.NewGetAdviceUseCase(profileRepo, householdRepo, adviceService)

	// Create controllers
	var cacheHealthChecker func() bool
	if redisClient != nil {
		cacheHealthChecker = db.RedisHealthCheck(redisClient)
	}
	healthController := controller.NewHealthController(db.PostgresHealthCheck(database), cacheHealthChecker)

	summaryController := controller.NewSummaryController(
		getSummariesUseCase,
		getInsightsUseCase,
		sendBudgetAlertUseCase,
		hub,
	)
	householdController := controller.NewHouseholdController(
		setHouseholdUseCase,
		getHouseholdUseCase,
		setFinancialProfileUseCase,
		getFinancialProfileUseCase,
		evaluateFinancialHealthUseCase,
		setSavingsTargetUseCase,
		getSavingsProgressUseCase,
	)
	if o.now != nil {
		summaryController.SetClock(o.now)
		householdController.SetClock(o.now)
	}

	controllers := router.Controllers{
		Health: healthController,
		Auth: controller.NewAuthController(
			registerUseCase,
			loginUseCase,
			refreshTokenUseCase,
			logoutUseCase,
		),
		User: controller.NewUserController(getCurrentUserUseCase),
		Transaction: controller.NewTransactionController(
			listTransactionsUseCase,
			createTransactionUseCase,
			updateTransactionUseCase,
			deleteTransactionUseCase,
		),
		Summary:   summaryController,
		Household: householdController,
		Advice:    controller.NewAdviceController(getAdviceUseCase),
	}

	// Create middleware
	// Use higher rate limits for E2E/test environments to prevent flaky tests
	var limiterOpts []middleware.RateLimiterOption
	if redisClient != nil {
		limiterOpts = append(limiterOpts, middleware.WithRedisStore(redisClient, "ratelimit:login"))
	}
	var loginRateLimiter *middleware.RateLimiter
	if cfg.Server.Environment == "e2e" || cfg.Server.Environment == "test" {
		loginRateLimiter = middleware.NewRateLimiterWithConfig(1000, cfg.RateLimit.LoginWindow, limiterOpts...)
	} else {
		loginRateLimiter = middleware.NewRateLimiterWithConfig(cfg.RateLimit.LoginMax, cfg.RateLimit.LoginWindow, limiterOpts...)
	}

	adviceOpts := []middleware.RateLimiterOption{middleware.PerUser()}
	if redisClient != nil {
		adviceOpts = append(adviceOpts, middleware.WithRedisStore(redisClient, "ratelimit:advice"))
	}
	adviceRateLimiter := middleware.NewRateLimiterWithConfig(cfg.RateLimit.AdviceMax, cfg.RateLimit.AdviceWindow, adviceOpts...)

	r := router.NewRouter(controllers, router.Middlewares{
		Auth:              middleware.NewAuthMiddleware(tokenService),
		LoginRateLimiter:  loginRateLimiter,
		AdviceRateLimiter: adviceRateLimiter,
		AllowedOrigins:    cfg.CORS.AllowedOrigins,
	})

	return &Injector{
		Config:            cfg,
		DB:                database,
		Redis:             redisClient,
		Router:            r,
		Hub:               hub,
		TokenRepo:         tokenRepo,
		LoginRateLimiter:  loginRateLimiter,
		AdviceRateLimiter: adviceRateLimiter,
	}, nil
}

func newAlertMailer(cfg *config.Config, sender adapter.EmailSender) (adapter.BudgetAlertMailer, error) {
	if sender == nil {
		if cfg.Email.ResendAPIKey == "" {
			slog.Warn("RESEND_API_KEY not set, budget alert emails are disabled")
			return nil, nil
		}
		sender = email.NewResendClient(cfg.Email.ResendAPIKey, cfg.Email.FromName, cfg.Email.FromEmail)
	}

	renderer, err := templates.NewRenderer()
	if err != nil {
		return nil, fmt.Errorf("failed to load email templates: %w", err)
	}

	return email.NewAlertService(sender, renderer, cfg.Email.AppBaseURL,
		email.WithRetry(cfg.Email.MaxAttempts, cfg.Email.RetryDelay),
	), nil
}
