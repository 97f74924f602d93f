package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/avolkova/reviewhub/internal/config"
	"github.com/avolkova/reviewhub/internal/domain"
	"github.com/avolkova/reviewhub/internal/handler"
	"github.com/avolkova/reviewhub/internal/mail"
	"github.com/avolkova/reviewhub/internal/repository/sqlite"
	"github.com/avolkova/reviewhub/internal/service"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		slog.Error("configuration error", "error", err)
		os.Exit(1)
	}

	db, err := sqlite.New(cfg.DatabasePath)
	if err != nil {
		slog.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := db.Migrate(context.Background()); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}
	slog.Info("database migrations applied")

	var mailer domain.Mailer
	if cfg.SMTPAddr != "" {
		mailer = mail.NewSMTPMailer(cfg.SMTPAddr, cfg.MailFrom, cfg.SMTPUsername, cfg.SMTPPassword)
		slog.Info("using SMTP mailer", "addr", cfg.SMTPAddr)
	} else {
		mailer = mail.LogMailer{}
		slog.Warn("SMTP_ADDR not set, confirmation codes will be logged")
	}

	authService := service.NewAuthService(db.Users(), mailer, cfg.JWTSecret)
	userService := service.NewUserService(db.Users())
	catalogService := service.NewCatalogService(db.Categories(), db.Genres())
	titleService := service.NewTitleService(db.Titles(), db.Categories(), db.Genres())
	reviewService := service.NewReviewService(db.Titles(), db.Reviews(), db.Comments())

	router := handler.NewRouter(authService, userService, catalogService, titleService, reviewService)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
		MaxHeaderBytes:    1 << 20, // 1MB
	}

	// Graceful shutdown on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		slog.Info("server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server shutdown error", "error", err)
		os.Exit(1)
	}
	slog.Info("server stopped")
}
