package main

import (
	"context"   // Context for startup checks and shutdown
	"errors"    // Server closed detection
	"net/http"  // HTTP server
	"os"        // Signals
	"os/signal" // Graceful shutdown
	"syscall"   // SIGTERM
	"time"      // Timeouts

	"rps_game/internal/api"        // HTTP handlers
	"rps_game/internal/config"     // Configuration
	"rps_game/internal/db"         // Database connection
	"rps_game/internal/middleware" // Request logging and rate limiting
	"rps_game/internal/payment"    // Telegram invoice links
	"rps_game/internal/service"    // Game, task, user and leaderboard logic
	"rps_game/internal/store"      // GORM repositories
	"rps_game/internal/utils"      // Redis cache, locks and logger setup

	"github.com/gin-contrib/cors"        // CORS middleware
	"github.com/gin-gonic/gin"           // Gin web framework
	"github.com/go-redis/redis_rate/v10" // Redis rate limiter
	"github.com/redis/go-redis/v9"       // Redis client
	"github.com/shopspring/decimal"      // Money amounts
	"github.com/sirupsen/logrus"         // Logrus for structured logging
	"golang.org/x/sync/errgroup"         // Server lifecycle
)

// Main function to set up and run the server
func main() {
	cfg := config.LoadConfig() // Load configuration

	// Setup logger
	utils.SetupLogger(cfg.IsProd, cfg.LogLevel)

	// Money goes over the wire as JSON numbers
	decimal.MarshalJSONWithoutQuotes = true

	// Connect to the database
	gdb, err := db.Open(cfg)
	if err != nil {
		logrus.Fatalf("failed to connect to DB: %v", err)
	}
	sqlDB, err := gdb.DB()
	if err != nil {
		logrus.Fatalf("failed to get DB handle: %v", err)
	}
	defer sqlDB.Close()

	// Setup Redis client
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr, // Redis server address
		Password: cfg.RedisPass, // Redis password
		DB:       cfg.RedisDB,   // Redis database number
	})
	defer redisClient.Close()

	// Test Redis connection
	if err := redisClient.Ping(context.Background()).Err(); err != nil {
		logrus.Fatalf("failed to connect to Redis: %v", err)
	}

	// Wire services
	st := store.New(gdb)
	cache := utils.NewRedisCache(redisClient, 0)
	locker := utils.NewRedisLocker(redisClient, cfg.SettlementLockTTL)

	services := api.Services{
		Users:       service.NewUserService(st, cache),
		Games:       service.NewGameService(st, locker, cache),
		Tasks:       service.NewTaskService(st),
		Leaderboard: service.NewLeaderboardService(st, cache, cfg.LeaderboardTTL),
		Health: map[string]api.Pinger{
			"db":    sqlDB.PingContext,
			"redis": func(ctx context.Context) error { return redisClient.Ping(ctx).Err() },
		},
	}
	if cfg.BotToken != "" {
		biller, err := payment.NewTelegramBiller(cfg.BotToken)
		if err != nil {
			logrus.Fatalf("failed to set up payments: %v", err)
		}
		services.Biller = biller
	} else {
		logrus.Warn("BOT_TOKEN is not set, /payment is disabled")
	}

	// Set Mode to Release if in production
	if cfg.IsProd {
		gin.SetMode(gin.ReleaseMode)
	}

	// Setup Gin
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger())

	// Set trusted proxies for Gin
	if err := r.SetTrustedProxies([]string{"127.0.0.1"}); err != nil {
		logrus.Fatalf("failed to set trusted proxies: %v", err)
	}

	corsConfig := cors.DefaultConfig()
	if len(cfg.CORSOrigins) == 1 && cfg.CORSOrigins[0] == "*" {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = cfg.CORSOrigins
	}
	r.Use(cors.New(corsConfig))

	if cfg.RateLimitPerMinute > 0 {
		r.Use(middleware.RateLimit(redis_rate.NewLimiter(redisClient), cfg.RateLimitPerMinute))
	}

	api.RegisterRoutes(r, services)

	srv := &http.Server{
		Addr:              ":" + cfg.AppPort,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logrus.WithField("port", cfg.AppPort).Info("Server running")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		logrus.Info("Shutting down server")
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logrus.Errorf("server stopped with error: %v", err)
	}
}
