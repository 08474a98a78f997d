package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"photoshare/docs"

	"github.com/labstack/echo/v4"

	"photoshare/internal/auth"
	"photoshare/internal/blob"
	"photoshare/internal/cache"
	"photoshare/internal/config"
	"photoshare/internal/db"
	"photoshare/internal/handler"
	"photoshare/internal/logging"
	"photoshare/internal/repository"
	"photoshare/internal/repository/memory"
	"photoshare/internal/router"
	"photoshare/internal/seed"
	"photoshare/internal/service"
)

// @title Photo Sharing API
// @version 1.0
// @description Photo sharing API with cookie sessions, uploads, comments and per-user statistics.
// @host localhost:3000
// @BasePath /
// @schemes http
func main() {
	cfg := config.Load()
	log := logging.New(cfg.LogLevel)
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fatal := func(msg string, err error) {
		log.Error(ctx, msg, "error", err)
		os.Exit(1)
	}

	if cfg.UsesDefaultSessionSecret() {
		log.Warn(ctx, "SESSION_SECRET not set, signing sessions with the development default")
	}

	var repos *repository.Set
	if cfg.DBDriver == config.DriverMemory {
		repos = memory.NewSet()
		ds, err := seed.Bundled()
		if err != nil {
			fatal("load dataset", err)
		}
		if _, err := seed.Load(ctx, repos, ds, log.With("component", "seed")); err != nil {
			fatal("seed memory store", err)
		}
	} else {
		gormDB, err := db.Open(cfg)
		if err != nil {
			fatal("database init", err)
		}
		if cfg.ResetDB {
			log.Warn(ctx, "RESET_DB=true detected, dropping all tables")
		}
		if err := db.Migrate(gormDB, cfg.ResetDB); err != nil {
			fatal("auto-migrate", err)
		}
		repos = repository.NewGormSet(gormDB)
	}

	var (
		cacheClient  *cache.Client
		sessionStore auth.SessionStore
	)
	if cfg.SessionStore == config.SessionMemory {
		sessionStore = auth.NewMemorySessionStore()
	} else {
		cacheClient = cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
		defer cacheClient.Close()
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		err := cacheClient.Ping(pingCtx)
		cancel()
		if err != nil {
			fatal("redis ping", err)
		}
		sessionStore = auth.NewRedisSessionStore(cacheClient)
	}

	var blobs blob.Store
	switch cfg.BlobBackend {
	case config.BlobS3:
		s3Store, err := blob.NewS3Store(ctx, blob.S3Config{
			Bucket:    cfg.S3Bucket,
			Region:    cfg.S3Region,
			Endpoint:  cfg.S3Endpoint,
			AccessKey: cfg.S3AccessKey,
			SecretKey: cfg.S3SecretKey,
		})
		if err != nil {
			fatal("s3 init", err)
		}
		blobs = s3Store
	default:
		fsStore, err := blob.NewFSStore(cfg.ImageDir)
		if err != nil {
			fatal("image dir init", err)
		}
		blobs = fsStore
	}

	sessions := auth.NewSessionManager(cfg.SessionSecret, sessionStore, cfg.SessionTTL)

	// Initialize services
	userService := service.NewUserService(repos.Users, cacheClient)
	photoService := service.NewPhotoService(repos.Photos, blobs)
	aggregationService := service.NewAggregationService(repos.Users, repos.Photos)
	infoService := service.NewInfoService(repos)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(userService, sessions, handler.CookieConfig{Secure: cfg.CookieSecure}, log)
	userHandler := handler.NewUserHandler(userService, log)
	photoHandler := handler.NewPhotoHandler(photoService, aggregationService, log)
	statsHandler := handler.NewStatsHandler(aggregationService, log)
	infoHandler := handler.NewInfoHandler(infoService, log)

	if cfg.SwaggerHost != "" {
		docs.SwaggerInfo.Host = cfg.SwaggerHost
	}

	e := echo.New()
	e.HideBanner = true
	router.Register(e, cfg, sessions, authHandler, userHandler, photoHandler, statsHandler, infoHandler)

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := e.Shutdown(shutdownCtx); err != nil {
			log.Error(shutdownCtx, "server shutdown", "error", err)
		}
	}()

	log.Info(ctx, "server starting",
		"port", cfg.ServerPort,
		"db_driver", cfg.DBDriver,
		"session_store", cfg.SessionStore,
		"blob_backend", cfg.BlobBackend,
		"swagger", "http://"+docs.SwaggerInfo.Host+"/swagger/index.html",
	)
	if err := e.Start(":" + cfg.ServerPort); err != nil && !errors.Is(err, http.ErrServerClosed) {
		fatal("server start", err)
	}
}
