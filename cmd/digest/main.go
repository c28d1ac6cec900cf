package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"catalog_backend/internal/app/config"
	bookentity "catalog_backend/internal/feature/books/domain/entity"
	catalogentity "catalog_backend/internal/feature/catalog/domain/entity"
	digestadapters "catalog_backend/internal/feature/digest/adapters"
	digestusecase "catalog_backend/internal/feature/digest/usecase"
	infradb "catalog_backend/internal/platform/db"
	"catalog_backend/internal/platform/logger"
	"catalog_backend/internal/platform/mail"
)

func main() {
	cfg := config.Load()
	logger.Setup(cfg.LogFormat, cfg.LogLevel)

	if !cfg.MailEnabled() {
		slog.Error("MAIL_SERVER and MAIL_FROM are required")
		os.Exit(1)
	}

	db, err := infradb.OpenDB(cfg.DB, &bookentity.Book{}, &catalogentity.Category{}, &catalogentity.Product{}, &catalogentity.ProductImage{})
	if err != nil {
		slog.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	uc := digestusecase.NewDigestUsecase(digestadapters.NewStatsRepository(db), mail.NewMailer(cfg.Mail), cfg.DigestRecipients)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	if err := uc.Send(ctx); err != nil {
		slog.Error("digest failed", "error", err)
		os.Exit(1)
	}
	slog.Info("digest ok")
}
