package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	redisv9 "github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"catalog_backend/internal/app/config"
	"catalog_backend/internal/app/di"
	"catalog_backend/internal/app/router"
	authadapters "catalog_backend/internal/feature/auth/adapters"
	authentity "catalog_backend/internal/feature/auth/domain/entity"
	authhandler "catalog_backend/internal/feature/auth/transport/handler"
	authusecase "catalog_backend/internal/feature/auth/usecase"
	bookentity "catalog_backend/internal/feature/books/domain/entity"
	bookhandler "catalog_backend/internal/feature/books/transport/handler"
	bookusecase "catalog_backend/internal/feature/books/usecase"
	catalogadapters "catalog_backend/internal/feature/catalog/adapters"
	catalogentity "catalog_backend/internal/feature/catalog/domain/entity"
	cataloghandler "catalog_backend/internal/feature/catalog/transport/handler"
	catalogusecase "catalog_backend/internal/feature/catalog/usecase"
	digestadapters "catalog_backend/internal/feature/digest/adapters"
	digestusecase "catalog_backend/internal/feature/digest/usecase"
	infradb "catalog_backend/internal/platform/db"
	healthhandler "catalog_backend/internal/platform/http/handler"
	jwtmw "catalog_backend/internal/platform/jwt"
	"catalog_backend/internal/platform/logger"
	"catalog_backend/internal/platform/mail"
	"catalog_backend/internal/platform/password"
	infraredis "catalog_backend/internal/platform/redis"
	"catalog_backend/internal/platform/storage"
	"catalog_backend/internal/shared/ratelimiter"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg := config.Load()
	logger.Setup(cfg.LogFormat, cfg.LogLevel)
	if err := cfg.Validate(); err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}
	gin.SetMode(cfg.GinMode)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// db
	db, err := infradb.OpenDB(cfg.DB,
		&authentity.User{},
		&bookentity.Book{},
		&catalogentity.Category{},
		&catalogentity.Product{},
		&catalogentity.ProductImage{},
	)
	if err != nil {
		slog.Error("failed to open database", "error", err)
		os.Exit(1)
	}

	// Redis
	var rdb *redisv9.Client
	if cfg.RedisEnabled() {
		if tmp, err := infraredis.NewRedisClient(ctx, cfg.Redis.Host, cfg.Redis.Port, cfg.Redis.Password); err != nil {
			slog.Warn("Redis unavailable. Running without cache.", "error", err)
		} else {
			rdb = tmp
			defer func() {
				if err := rdb.Close(); err != nil {
					slog.Error("failed to close Redis client", "error", err)
				}
			}()
		}
	}

	// Platform
	tokens, err := jwtmw.NewService(cfg.Auth.JWTSecret, cfg.Auth.JWTAlgorithm, cfg.Auth.TokenTTL)
	if err != nil {
		slog.Error("failed to create token service", "error", err)
		os.Exit(1)
	}
	files, err := storage.NewLocal(cfg.StaticDir)
	if err != nil {
		slog.Error("failed to prepare static directory", "dir", cfg.StaticDir, "error", err)
		os.Exit(1)
	}
	publisher, closer := di.NewEventPublisher(cfg.AMQP.URL, cfg.AMQP.Queue)
	defer func() { _ = closer.Close() }()

	// Repository
	userRepo := authadapters.NewUserRepository(db)
	bookRepo := di.NewBookRepository(rdb, db, cfg.Redis.CacheTTL)
	categoryRepo := catalogadapters.NewCategoryRepository(db)
	productRepo := catalogadapters.NewProductRepository(db)

	// Usecase
	authUC := authusecase.NewAuthUsecase(userRepo, password.NewHasher(cfg.Auth.BcryptCost), tokens, cfg.Auth.TokenTTL)
	bookUC := bookusecase.NewBookUsecase(bookRepo)
	categoryUC := catalogusecase.NewCategoryUsecase(categoryRepo, files)
	productUC := catalogusecase.NewProductUsecase(productRepo, files, publisher)
	imageUC := catalogusecase.NewImageUsecase(categoryRepo, productRepo, files, publisher)

	// Handler
	handlers := router.Handlers{
		Auth:       authhandler.NewAuthHandler(authUC),
		Books:      bookhandler.NewBookHandler(bookUC),
		Categories: cataloghandler.NewCategoryHandler(categoryUC, imageUC, cfg.PublicBaseURL),
		Products:   cataloghandler.NewProductHandler(productUC, imageUC, cfg.PublicBaseURL),
	}

	// ルータ生成
	engine := router.NewRouter(handlers, router.Options{
		RequireAuth: jwtmw.AuthRequired(tokens, authUC),
		AuthLimiter: ratelimiter.NewRateLimiter(cfg.Auth.RateLimit, cfg.Auth.RateBurst).Middleware(),
		Ready:       healthhandler.Ready(func(ctx context.Context) error { return infradb.Ping(ctx, db) }),
		StaticDir:   files.Root(),
	})

	if cfg.SchedulerEnabled {
		go startDigest(ctx, cfg, db)
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		slog.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("graceful shutdown failed", "error", err)
	}
}

// startDigest mails the catalog report every DIGEST_INTERVAL until ctx ends.
func startDigest(ctx context.Context, cfg config.Config, db *gorm.DB) {
	if !cfg.MailEnabled() {
		slog.Warn("SCHEDULER_ENABLED is set but mail is not configured; digest disabled")
		return
	}
	uc := digestusecase.NewDigestUsecase(digestadapters.NewStatsRepository(db), mail.NewMailer(cfg.Mail), cfg.DigestRecipients)
	digestusecase.NewScheduler(cfg.DigestInterval, uc.Send).Run(ctx)
}
