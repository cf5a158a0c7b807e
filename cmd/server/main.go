package main

import (
	"context"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "streamraiser-backend/docs"
	"streamraiser-backend/internal/common/config"
	"streamraiser-backend/internal/common/logger"
	"streamraiser-backend/internal/common/middleware"
	cataloghttp "streamraiser-backend/internal/features/catalog/delivery/http"
	catalogpg "streamraiser-backend/internal/features/catalog/repository/postgres"
	catalogservice "streamraiser-backend/internal/features/catalog/service"
	eventhttp "streamraiser-backend/internal/features/event/delivery/http"
	eventredis "streamraiser-backend/internal/features/event/repository/redis"
	eventservice "streamraiser-backend/internal/features/event/service"
	fundraiserhttp "streamraiser-backend/internal/features/fundraiser/delivery/http"
	fundraiserredis "streamraiser-backend/internal/features/fundraiser/repository/redis"
	fundraiserservice "streamraiser-backend/internal/features/fundraiser/service"
	redeemhttp "streamraiser-backend/internal/features/redeem/delivery/http"
	"streamraiser-backend/internal/features/redeem/engine"
	redeemredis "streamraiser-backend/internal/features/redeem/repository/redis"
	redeemservice "streamraiser-backend/internal/features/redeem/service"
	userhttp "streamraiser-backend/internal/features/user/delivery/http"
	userredis "streamraiser-backend/internal/features/user/repository/redis"
	"streamraiser-backend/internal/platform/db"
	redisplatform "streamraiser-backend/internal/platform/redis"
	"streamraiser-backend/internal/seed"
)

// @title           StreamRaiser API
// @version         1.0
// @description     Charity stream fundraising backend: events, fundraisers, viewer reward redeems.

// @host      localhost:8080
// @BasePath  /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Session token, sent as "Bearer <token>"

// @tag.name events
// @tag.description Charity events that fundraisers join

// @tag.name fundraisers
// @tag.description Fundraiser pages, donations

// @tag.name redeems
// @tag.description Viewer reward redeems and their lifecycle actions

// @tag.name rewards
// @tag.description Reward catalog templates

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.Load()
	logger.Init("streamraiser-backend", cfg.Debug)

	rdb, err := redisplatform.Open(ctx, cfg.Redis.Host, cfg.Redis.Port, cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		logger.Fatal().Err(err).Msg("redis connect failed")
	}
	defer rdb.Close()
	logger.Info().Str("host", cfg.Redis.Host).Msg("redis connected")

	pg, err := db.Open(ctx, cfg.Postgres.URL)
	if err != nil {
		logger.Fatal().Err(err).Msg("postgres connect failed")
	}
	defer pg.Close()
	if err := catalogpg.EnsureSchema(ctx, pg); err != nil {
		logger.Fatal().Err(err).Msg("schema migration failed")
	}
	logger.Info().Msg("postgres connected")

	// Repositories
	userRepo := userredis.NewUserRepository(rdb.Client)
	eventRepo := eventredis.NewEventRepository(rdb.Client)
	fundraiserRepo := fundraiserredis.NewFundraiserRepository(rdb.Client)
	collectionRepo := redeemredis.NewCollectionRepository(rdb.Client)
	rewardRepo := catalogpg.NewRewardRepository(pg)

	// Services
	eventSvc := eventservice.NewEventService(eventRepo)
	fundraiserSvc := fundraiserservice.NewFundraiserService(fundraiserRepo, eventRepo, collectionRepo)
	redeemSvc := redeemservice.NewRedeemService(engine.New(), collectionRepo, fundraiserRepo)
	catalogSvc := catalogservice.NewCatalogService(rewardRepo)

	sessionTTL := time.Duration(cfg.Auth.SessionTTLSec) * time.Second
	seeder := seed.NewSeeder(catalogSvc, eventSvc, fundraiserRepo, collectionRepo, userRepo, cfg.Auth.AdminToken, sessionTTL)

	if cfg.Seed.OnStart {
		result, err := seeder.Run(ctx)
		if err != nil {
			logger.Fatal().Err(err).Msg("startup seed failed")
		}
		logger.Info().Str("result", result).Msg("startup seed")
	}

	// Router
	if !cfg.Debug {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.Logger())

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{cfg.Server.Origin}
	corsConfig.AllowMethods = []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Content-Type", "Authorization", "Accept"}
	router.Use(cors.New(corsConfig))

	router.Use(middleware.Auth(userRepo))

	v1 := router.Group("/api/v1")
	eventhttp.NewEventHandler(eventSvc, fundraiserSvc).RegisterRoutes(v1)
	fundraiserhttp.NewFundraiserHandler(fundraiserSvc).RegisterRoutes(v1)
	timerRefresh := time.Duration(cfg.Timer.RefreshMs) * time.Millisecond
	redeemhttp.NewRedeemHandler(redeemSvc, timerRefresh).RegisterRoutes(v1)
	cataloghttp.NewCatalogHandler(catalogSvc).RegisterRoutes(v1)
	userhttp.NewUserHandler().RegisterRoutes(v1)
	seed.NewHandler(seeder).RegisterRoutes(v1)

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "ok",
			"timestamp": time.Now().UTC(),
			"service":   "streamraiser-backend",
		})
	})
	router.GET("/ready", func(c *gin.Context) {
		checkCtx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		if err := pg.PingContext(checkCtx); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unready", "error": "postgres unavailable"})
			return
		}
		if err := rdb.Ping(checkCtx).Err(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unready", "error": "redis unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info().Int("port", cfg.Server.Port).Msg("http server listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("http server failed")
		}
	}()

	<-ctx.Done()
	logger.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("forced shutdown")
	}
	logger.Info().Msg("server exited")
}
