// Package portfolio собирает приложение портфолио-бэкенда: хранилище,
// сервисы, HTTP-сервер и маршруты.
package portfolio

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"

	"github.com/florienmf/portfolio-backend/internal/config"
	"github.com/florienmf/portfolio-backend/internal/http/httperr"
	"github.com/florienmf/portfolio-backend/internal/lib/jwt"
	"github.com/florienmf/portfolio-backend/internal/lib/smtp"
	authservice "github.com/florienmf/portfolio-backend/internal/services/auth"
	certservice "github.com/florienmf/portfolio-backend/internal/services/certification"
	contactservice "github.com/florienmf/portfolio-backend/internal/services/contact"
	expservice "github.com/florienmf/portfolio-backend/internal/services/experience"
	"github.com/florienmf/portfolio-backend/internal/services/mailer"
	refservice "github.com/florienmf/portfolio-backend/internal/services/reference"
	userservice "github.com/florienmf/portfolio-backend/internal/services/user"
	"github.com/florienmf/portfolio-backend/internal/storage/mongodb"
)

// App инкапсулирует HTTP-сервер и подключение к хранилищу.
type App struct {
	server *http.Server
	logger *slog.Logger
	db     *mongodb.Storage
}

// New создает приложение: подключается к MongoDB, создаёт индексы,
// собирает сервисы и регистрирует маршруты.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	const op = "portfolio.New"

	db, err := mongodb.New(ctx, cfg.MongoConnection.URI, cfg.MongoConnection.Database)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err = db.EnsureIndexes(ctx); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	norm := httperr.New(logger, cfg.IsProduction())
	jwtMaker := jwt.NewMaker(cfg.JWTSecretKey, cfg.TokenTTL)

	transport := smtp.NewTransport(cfg, logger)
	mailerService := mailer.NewService(cfg, logger, transport)

	authService := authservice.NewService(db, jwtMaker)
	userService := userservice.NewService(db)
	experienceService := expservice.NewService(db)
	referenceService := refservice.NewService(db)
	certificationService := certservice.NewService(db)
	contactService := contactservice.NewService(db, mailerService, logger)

	router := chi.NewRouter()
	RegisterRoutes(router, logger, norm, &Services{
		Auth:          authService,
		User:          userService,
		Experience:    experienceService,
		Reference:     referenceService,
		Certification: certificationService,
		Contact:       contactService,
	})

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
	}, nil
}

// Run запускает HTTP-сервер и блокируется до отмены контекста
// или ошибки сервера. При отмене контекста выполняет graceful shutdown.
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
		if dbErr := a.db.Close(timeoutCtx); dbErr != nil {
			a.logger.Error("failed to close storage", slog.Any("err", dbErr))
		}
		return err
	}
}
