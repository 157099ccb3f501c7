// Package notesapp собирает все компоненты сервиса заметок в единое
// приложение: хранилище, миграции, кеш, ограничитель частоты запросов,
// сервисы и HTTP-сервер.
package notesapp

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"

	"github.com/gourav1008/NotesApp/internal/cache"
	"github.com/gourav1008/NotesApp/internal/config"
	"github.com/gourav1008/NotesApp/internal/lib/jwt"
	"github.com/gourav1008/NotesApp/internal/migrations"
	"github.com/gourav1008/NotesApp/internal/ratelimit"
	adminservice "github.com/gourav1008/NotesApp/internal/services/admin"
	auditservice "github.com/gourav1008/NotesApp/internal/services/audit"
	authservice "github.com/gourav1008/NotesApp/internal/services/auth"
	noteservice "github.com/gourav1008/NotesApp/internal/services/note"
	"github.com/gourav1008/NotesApp/internal/storage/repository"
)

// auditBuffer емкость очереди записей журнала между обработчиком и фоновым писателем.
const auditBuffer = 256

type App struct {
	server *http.Server
	logger *slog.Logger
	db     *repository.Storage
	audit  *auditservice.AuditService
}

func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := repository.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, err
	}
	if err = migrations.Run(db.DB, cfg.MigrationsPath); err != nil {
		return nil, err
	}

	cacheRedis, err := cache.InitServer(ctx, cfg.RedisConnection)
	if err != nil {
		return nil, err
	}

	limiter := ratelimit.New(cacheRedis.Db, cfg.RateLimit.Requests, cfg.RateLimit.Window, logger)
	jwtMaker := jwt.NewJWTMaker(cfg.JWTToken.JWTSecretKey, cfg.JWTToken.TokenTTL)

	authService := authservice.NewAuthService(db, jwtMaker)
	noteService := noteservice.NewNoteService(db, cacheRedis, logger)
	auditService := auditservice.NewAuditService(db, logger, auditBuffer)
	adminService := adminservice.NewAdminService(db, auditService, cacheRedis, logger)

	router := chi.NewRouter()
	RegisterRoutes(router, logger, authService, noteService, adminService, auditService, limiter)

	srv := &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &App{
		server: srv,
		logger: logger,
		db:     db,
		audit:  auditService,
	}, nil
}

func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		// дождаться, пока фоновый писатель журнала сбросит очередь
		a.audit.Close()
		if cerr := a.db.DB.Close(); cerr != nil && err == nil {
			err = cerr
		}
		return err
	}
}
