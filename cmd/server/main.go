package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"resmatic/docs" // swagger docs
	"resmatic/internal/audit"
	"resmatic/internal/auth"
	"resmatic/internal/cache"
	"resmatic/internal/config"
	"resmatic/internal/db"
	"resmatic/internal/events"
	"resmatic/internal/handler"
	"resmatic/internal/logger"
	"resmatic/internal/rbac"
	"resmatic/internal/repository"
	"resmatic/internal/repository/memstore"
	"resmatic/internal/router"
	"resmatic/internal/seed"
	"resmatic/internal/service"
)

// @title Resmatic API
// @version 1.0
// @description Restaurant SaaS core: tenant RBAC, staff invites and refresh-token sessions.
// @host localhost:8080
// @BasePath /api/v1
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}
	logger.Setup(cfg.LogLevel, cfg.LogFormat)

	store, err := openStore(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("database init")
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB, "resmatic:")
	defer cacheClient.Close()
	if err := cacheClient.Ping(ctx); err != nil {
		log.Warn().Err(err).Msg("redis unavailable, access-token denylist disabled")
	}

	// Initialize auth components
	jwtService, err := auth.NewJWTService(cfg.JWTAccessSecret, cfg.JWTRefreshSecret, cfg.AccessTTL, cfg.RefreshTTL)
	if err != nil {
		log.Fatal().Err(err).Msg("jwt service")
	}
	tokenStore := auth.NewTokenStore(cacheClient)
	resolver := rbac.NewResolver(store)

	auditor := audit.NewDispatcher(audit.NewLogger(store.AuditLogs()), 0)
	defer auditor.Close()
	publisher := events.NewAMQPPublisher(cfg.AMQPURL, cfg.InviteQueue)

	// Initialize services
	authService := service.NewAuthService(store, jwtService, tokenStore, auditor, service.AuthConfig{
		MaxSessions: cfg.MaxSessions,
		BcryptCost:  cfg.BcryptCost,
	})
	restaurantService := service.NewRestaurantService(store, resolver, auditor)
	inviteService := service.NewInviteService(store, publisher, auditor, service.InviteConfig{TTL: cfg.InviteTTL})

	if cfg.SwaggerHost != "" {
		docs.SwaggerInfo.Host = cfg.SwaggerHost
	}

	e := echo.New()
	e.HideBanner = true
	router.Register(e, router.Deps{
		Verifier:          jwtService,
		Denylist:          tokenStore,
		Resolver:          resolver,
		AuthHandler:       handler.NewAuthHandler(authService),
		RestaurantHandler: handler.NewRestaurantHandler(restaurantService),
		InviteHandler:     handler.NewInviteHandler(inviteService),
	})

	addr := ":" + cfg.ServerPort
	go func() {
		log.Info().Str("addr", addr).Str("swagger", "http://"+docs.SwaggerInfo.Host+"/swagger/index.html").Msg("server starting")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server start")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown")
	}
}

func openStore(ctx context.Context, cfg *config.Config) (repository.Store, error) {
	if cfg.DBDriver == "memory" {
		store := memstore.New()
		if _, err := seed.Admin(ctx, store, cfg.SeedAdminEmail, cfg.SeedAdminPassword, cfg.BcryptCost); err != nil {
			return nil, err
		}
		log.Warn().Msg("using in-memory store, data is lost on restart")
		return store, nil
	}

	gormDB, err := db.Open(cfg.DBDriver, cfg.DatabaseDSN)
	if err != nil {
		return nil, err
	}
	if cfg.ResetDB {
		log.Warn().Msg("RESET_DB=true detected, dropping all tables")
		if err := db.Reset(gormDB); err != nil {
			return nil, err
		}
	}
	if err := db.Migrate(gormDB); err != nil {
		return nil, err
	}
	return repository.NewStore(gormDB), nil
}
