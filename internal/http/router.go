package http

import (
	"context"
	"log/slog"
	"time"

	"github.com/geocoder89/fintrack/internal/auth"
	"github.com/geocoder89/fintrack/internal/cache"
	"github.com/geocoder89/fintrack/internal/config"
	"github.com/geocoder89/fintrack/internal/http/handlers"
	"github.com/geocoder89/fintrack/internal/http/middlewares"
	"github.com/geocoder89/fintrack/internal/observability"
	"github.com/geocoder89/fintrack/internal/repo/postgres"
	"github.com/geocoder89/fintrack/web"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

const maxBodyBytes = 1 << 20 // 1 MiB is plenty for credentials and transactions

func NewRouter(log *slog.Logger, pool *pgxpool.Pool, cfg config.Config) *gin.Engine {
	if cfg.Env != "dev" && cfg.Env != "test" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()

	// own registry per router so tests can build several routers
	reg := prometheus.NewRegistry()
	metrics := observability.NewProm(reg)

	// middleware

	r.Use(gin.Recovery())
	r.Use(middlewares.RequestID())
	r.Use(middlewares.RequestLogger(log))
	r.Use(otelgin.Middleware("fintrack"))
	r.Use(metrics.GinHandleMiddleware())
	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddleware(cfg.AllowedOrigins))
	r.Use(middlewares.RequireJSON())
	r.Use(middlewares.MaxBodyBytes(maxBodyBytes))

	// health
	ping := func() error {
		if pool == nil {
			return nil
		}

		ctx, cancel := context.WithTimeout(context.Background(), 1*time.Second)
		defer cancel()

		return pool.Ping(ctx)
	}

	h := handlers.NewHealthHandler(ping)
	r.GET("/healthz", h.Healthz)
	r.GET("/readyz", h.Readyz)
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))

	// docs + embedded dashboard page
	r.GET("/docs", handlers.DocsUI)
	r.GET("/docs/openapi.yaml", handlers.OpenAPISpec)
	r.GET("/", func(ctx *gin.Context) {
		page, err := web.StaticFS.ReadFile("static/index.html")
		if err != nil {
			handlers.RespondInternal(ctx, "Server error")
			return
		}
		ctx.Data(200, "text/html; charset=utf-8", page)
	})

	// wire up repositories
	usersRepo := postgres.NewUsersRepo(pool)
	transactionsRepo := postgres.NewTransactionsRepo(pool)

	// summary cache: shared redis when configured, in-process otherwise
	var summaries cache.SummaryCache
	cacheBackend := "memory"

	if cfg.RedisAddr != "" {
		summaries = cache.NewRedis(cache.RedisConfig{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
			TTL:      30 * time.Second,
		})
		cacheBackend = "redis"
	} else {
		summaries = cache.NewMemory(30 * time.Second)
	}

	jwtManager := auth.NewManager(cfg.JWTSecret, cfg.AccessTTL())

	authHandler := handlers.NewAuthHandler(usersRepo, usersRepo, jwtManager, log)
	transactionsHandler := handlers.NewTransactionsHandler(transactionsRepo, summaries, metrics, log, cacheBackend)
	authMiddleware := middlewares.NewAuthMiddleware(jwtManager)

	// credential endpoints are the brute-force target, keep the limit tight
	authLimiter := middlewares.NewRateLimiter(20, time.Minute)
	apiLimiter := middlewares.NewRateLimiter(120, time.Minute)

	authGroup := r.Group("/api/auth")
	authGroup.Use(authLimiter.RateLimiterMiddleware(middlewares.KeyByIP))
	{
		authGroup.POST("/register", authHandler.Register)
		authGroup.POST("/login", authHandler.Login)
	}

	apiGroup := r.Group("/api/transactions")
	apiGroup.Use(authMiddleware.RequireAuth())
	apiGroup.Use(apiLimiter.RateLimiterMiddleware(middlewares.KeyByUserOrIP))
	{
		apiGroup.POST("", transactionsHandler.Create)
		apiGroup.GET("", transactionsHandler.List)
		apiGroup.GET("/summary", transactionsHandler.Summary)
		apiGroup.PUT("/:id", transactionsHandler.Update)
		apiGroup.DELETE("/:id", transactionsHandler.Delete)
	}

	return r
}
