package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/gigforge/marketplace/internal/api"
	"github.com/gigforge/marketplace/internal/api/middleware"
	"github.com/gigforge/marketplace/internal/core/ports"
	"github.com/gigforge/marketplace/internal/core/service"
	mongostore "github.com/gigforge/marketplace/internal/infrastructure/db/mongo"
	redisstore "github.com/gigforge/marketplace/internal/infrastructure/db/redis"
	"github.com/gigforge/marketplace/internal/infrastructure/http/handlers"
	"github.com/gigforge/marketplace/internal/infrastructure/mail"
	"github.com/gigforge/marketplace/internal/infrastructure/messaging/amqp"
	"github.com/gigforge/marketplace/internal/infrastructure/queue"
	"github.com/gigforge/marketplace/internal/infrastructure/scheduler"
	"github.com/gigforge/marketplace/internal/pkg/config"
	"github.com/gigforge/marketplace/pkg/logger"
)

const shutdownTimeout = 15 * time.Second

// @title        GigForge Marketplace API
// @version      1.0
// @description  Accounts, sessions and profiles for the GigForge freelance marketplace.
// @BasePath     /
func main() {
	// A missing .env is fine; real deployments use the environment.
	_ = godotenv.Load()

	cfg := config.Load()
	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "marketplace-api",
		Env:     cfg.Env,
	})

	if err := run(cfg, log); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}

func run(cfg *config.Config, log zerolog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// --- Stores ---
	store, err := mongostore.Connect(ctx, mongostore.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		return err
	}
	defer closeWithTimeout(log, "mongodb", store.Close)

	users := mongostore.NewUserRepository(store.Database())
	if err := users.EnsureIndexes(ctx); err != nil {
		return err
	}

	rdb, err := redisstore.Connect(ctx, redisstore.Config{
		Addr:         cfg.Redis.Addr,
		Password:     cfg.Redis.Password,
		DB:           cfg.Redis.DB,
		PoolSize:     cfg.Redis.PoolSize,
		DialTimeout:  cfg.Redis.DialTimeout,
		ReadTimeout:  cfg.Redis.ReadTimeout,
		WriteTimeout: cfg.Redis.WriteTimeout,
	})
	if err != nil {
		return err
	}
	defer func() { _ = rdb.Close() }()

	// --- Account event sinks ---
	var sinks []ports.AccountEventSink
	if cfg.AMQP.URL != "" {
		pub, err := amqp.Dial(cfg.AMQP.URL, cfg.AMQP.Queue)
		if err != nil {
			return err
		}
		defer func() { _ = pub.Close() }()
		sinks = append(sinks, pub)
	}
	if cfg.SMTP.Host != "" {
		sinks = append(sinks, mail.NewWelcomeSender(mail.Config{
			Host:     cfg.SMTP.Host,
			Port:     cfg.SMTP.Port,
			Username: cfg.SMTP.Username,
			Password: cfg.SMTP.Password,
			From:     cfg.SMTP.From,
		}, log))
	}
	log.Info().Int("sinks", len(sinks)).Msg("account event sinks configured")

	workerCtx, stopWorkers := context.WithCancel(context.Background())
	dispatcher := queue.NewDispatcher(cfg.Events.Workers, sinks, log)
	dispatcher.Start(workerCtx)

	// --- Services ---
	sessions := service.NewSessionManager(cfg.Session.JWTSecret, cfg.Session.TTL, cfg.Session.RememberTTL)
	authService := service.NewAuthService(users, sessions, dispatcher, service.AuthOptions{
		MinPasswordLength: cfg.Session.PasswordMinLength,
		BcryptCost:        cfg.Session.BcryptCost,
	}, log)
	profileService := service.NewProfileService(users, dispatcher, log)
	leaderboard := service.NewLeaderboardService(users, redisstore.NewLeaderboardCache(rdb), cfg.Board.Size, log)

	sched, err := scheduler.New(cfg.Board.RefreshSpec, leaderboard, log)
	if err != nil {
		stopWorkers()
		return err
	}
	sched.Start()

	var limiter ports.LoginLimiter
	if cfg.Throttle.Enabled {
		limiter = redisstore.NewLoginThrottle(rdb, cfg.Throttle.MaxAttempts, cfg.Throttle.Window)
	}

	e := api.NewRouter(api.Deps{
		Auth:        authService,
		Profiles:    profileService,
		Leaderboard: leaderboard,
		Sessions:    sessions,
		Limiter:     limiter,
		Cookie:      middleware.SessionCookie{Secure: cfg.Session.CookieSecure},
		Readiness: map[string]handlers.Pinger{
			"mongodb": store,
			"redis":   handlers.PingerFunc(func(ctx context.Context) error { return rdb.Ping(ctx).Err() }),
		},
		Registerer:     prometheus.DefaultRegisterer,
		Logger:         log,
		TrustedProxies: cfg.TrustedProxyNets(),
	})

	serverErr := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Msg("http server listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	var runErr error
	select {
	case <-ctx.Done():
		log.Info().Msg("shutdown signal received")
	case runErr = <-serverErr:
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("http shutdown")
	}
	sched.Stop(shutdownCtx)
	stopWorkers()
	dispatcher.Wait()

	log.Info().Msg("shutdown complete")
	return runErr
}

func closeWithTimeout(log zerolog.Logger, name string, closeFn func(context.Context) error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := closeFn(ctx); err != nil {
		log.Error().Err(err).Str("dependency", name).Msg("close failed")
	}
}
