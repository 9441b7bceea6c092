// Package main запускает HTTP-сервер демонстрационного банковского сервиса.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/mmeshcher/voicebank-system/internal/bank"
	"github.com/mmeshcher/voicebank-system/internal/config"
	"github.com/mmeshcher/voicebank-system/internal/handler"
	"github.com/mmeshcher/voicebank-system/internal/middleware"
	"github.com/mmeshcher/voicebank-system/internal/record"
)

func main() {
	logger, _ := zap.NewProduction()
	defer logger.Sync()

	sugar := logger.Sugar()

	cfg, err := config.Parse()
	if err != nil {
		sugar.Fatalw("configuration error", "error", err.Error())
	}

	store, err := newStore(cfg)
	if err != nil {
		sugar.Fatalw("record store initialization error", "error", err.Error())
	}

	svc := bank.NewService(store, cfg.LoginDelay)
	defer svc.Close()

	// Восстановление сессии, сохранённой прошлым запуском процесса
	if err := svc.Restore(context.Background()); err != nil {
		sugar.Warnw("session restore error", "error", err.Error())
	}

	authMiddleware := middleware.NewAuthMiddleware(cfg.AuthSecret)
	h := handler.NewHandler(svc, logger, authMiddleware)

	r := h.SetupRouter()

	server := &http.Server{
		Addr:    cfg.RunAddress,
		Handler: r,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)

	// Запуск HTTP-сервера
	g.Go(func() error {
		sugar.Infow("starting voicebank server", "addr", cfg.RunAddress)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	// Graceful shutdown при отмене контекста (сигнал или ошибка в другой горутине)
	g.Go(func() error {
		<-ctx.Done()
		sugar.Info("shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown error: %w", err)
		}
		sugar.Info("server stopped gracefully")
		return nil
	})

	if err := g.Wait(); err != nil {
		sugar.Fatalw("application terminated with error", "error", err)
	}
}

// newStore выбирает бэкенд хранилища записей: PostgreSQL, Redis или файл.
func newStore(cfg *config.Config) (record.Store, error) {
	switch {
	case cfg.DatabaseURI != "":
		return record.NewPostgresStore(cfg.DatabaseURI)
	case cfg.RedisAddress != "":
		return record.NewRedisStore(cfg.RedisAddress)
	default:
		return record.NewFileStore(cfg.StoreFile)
	}
}
