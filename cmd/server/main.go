package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"boardapi/internal/auth"
	"boardapi/internal/cache"
	"boardapi/internal/config"
	"boardapi/internal/db"
	"boardapi/internal/handler"
	"boardapi/internal/logger"
	"boardapi/internal/ratelimit"
	"boardapi/internal/repository"
	"boardapi/internal/router"
	"boardapi/internal/service"
	"boardapi/internal/telemetry"
)

// @title Board API
// @version 1.0
// @description Accounts, community board posts and saved images.
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the JWT.
func main() {
	cfg, err := config.Load()
	if err != nil {
		bootstrap, _ := zap.NewProduction()
		bootstrap.Fatal("load config", zap.Error(err))
	}

	log, err := logger.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		zap.NewExample().Fatal("init logger", zap.Error(err))
	}
	defer func() { _ = log.Sync() }()

	flushSentry, err := telemetry.InitSentry(cfg.SentryDSN, cfg.ServiceName)
	if err != nil {
		log.Fatal("init sentry", zap.Error(err))
	}
	defer flushSentry()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracer, err := telemetry.InitTracer(ctx, cfg.OTLPEndpoint, cfg.ServiceName)
	if err != nil {
		log.Fatal("init tracer", zap.Error(err))
	}

	gormDB, err := db.Open(cfg.Database)
	if err != nil {
		log.Fatal("database init", zap.Error(err), zap.String("driver", cfg.Database.Driver))
	}
	if err := db.Migrate(gormDB, cfg.Database.Reset, log); err != nil {
		log.Fatal("database migrate", zap.Error(err))
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		log.Fatal("database handle", zap.Error(err))
	}
	defer sqlDB.Close()

	// Redis backs the shared sign-up limiter and is otherwise optional.
	var (
		cacheClient *cache.Client
		redisPinger handler.Pinger
		signupStore middleware.RateLimiterStore
	)
	if cfg.RateLimit.Backend == "redis" {
		cacheClient = cache.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		defer cacheClient.Close()
		redisPinger = cacheClient

		pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
		if err := cacheClient.Ping(pingCtx); err != nil {
			log.Warn("redis unreachable, sign-up limiter will fail open", zap.Error(err), zap.String("addr", cfg.Redis.Addr))
		}
		cancel()
	}
	if cfg.RateLimit.Limit > 0 {
		if cacheClient != nil {
			signupStore = ratelimit.NewRedisStore(cacheClient, cfg.RateLimit.Limit, cfg.RateLimit.Window, log)
		} else {
			signupStore = ratelimit.NewMemoryStore(cfg.RateLimit.Limit, cfg.RateLimit.Window)
		}
	}

	// Initialize repositories
	accountRepo := repository.NewAccountRepository(gormDB)
	postRepo := repository.NewBoardPostRepository(gormDB)
	imageRepo := repository.NewSavedImageRepository(gormDB)

	// Initialize auth components
	jwtService := auth.NewJWTService(cfg.JWT.Secret, cfg.JWT.TTL)
	hasher := auth.NewBcryptHasher(cfg.BcryptCost)

	// Initialize services
	accountService := service.NewAccountService(accountRepo, hasher, jwtService, log.Named("accounts"))
	postService := service.NewBoardPostService(postRepo, log.Named("board_posts"))
	imageService := service.NewSavedImageService(imageRepo, cfg.SavedImagesAllowDuplicates, log.Named("saved_images"))

	e := echo.New()
	e.Server.ReadTimeout = 15 * time.Second
	e.Server.WriteTimeout = 30 * time.Second

	router.Register(e, cfg, log, jwtService, signupStore, router.Handlers{
		Account:    handler.NewAccountHandler(accountService),
		BoardPost:  handler.NewBoardPostHandler(postService),
		SavedImage: handler.NewSavedImageHandler(imageService),
		Health:     handler.NewHealthHandler(handler.PingFunc(sqlDB.PingContext), redisPinger, log.Named("health")),
	})

	log.Info("swagger documentation available", zap.String("url", swaggerURL(cfg)))

	go func() {
		addr := ":" + cfg.ServerPort
		log.Info("server starting", zap.String("addr", addr), zap.String("driver", cfg.Database.Driver))
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server start", zap.Error(err))
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error("server shutdown", zap.Error(err))
	}
	if err := shutdownTracer(shutdownCtx); err != nil {
		log.Warn("tracer shutdown", zap.Error(err))
	}
}

func swaggerURL(cfg *config.Config) string {
	host := cfg.SwaggerHost
	if host == "" {
		host = "localhost:" + cfg.ServerPort
	}
	if !strings.HasPrefix(host, "http://") && !strings.HasPrefix(host, "https://") {
		host = "http://" + host
	}
	return host + "/swagger/index.html"
}
