// Package portfolio предоставляет маршруты основного приложения.
package portfolio

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/florienmf/portfolio-backend/internal/apperror"
	authhandler "github.com/florienmf/portfolio-backend/internal/http/handlers/auth"
	certhandler "github.com/florienmf/portfolio-backend/internal/http/handlers/certification"
	contacthandler "github.com/florienmf/portfolio-backend/internal/http/handlers/contact"
	exphandler "github.com/florienmf/portfolio-backend/internal/http/handlers/experience"
	refhandler "github.com/florienmf/portfolio-backend/internal/http/handlers/reference"
	userhandler "github.com/florienmf/portfolio-backend/internal/http/handlers/user"
	"github.com/florienmf/portfolio-backend/internal/http/httperr"
	"github.com/florienmf/portfolio-backend/internal/http/middlewarectx"
	"github.com/florienmf/portfolio-backend/internal/http/response"
	"github.com/florienmf/portfolio-backend/internal/models"
	authservice "github.com/florienmf/portfolio-backend/internal/services/auth"
)

// Services собирает бизнес-логику, необходимую маршрутам приложения.
type Services struct {
	Auth          *authservice.Service
	User          userhandler.Service
	Experience    exphandler.Service
	Reference     refhandler.Service
	Certification certhandler.Service
	Contact       contacthandler.Service
}

// RegisterRoutes регистрирует все маршруты приложения.
//
// Разделы портфолио открыты для чтения без аутентификации; изменение
// данных доступно только администратору. Контактная форма принимает
// обращения от всех посетителей.
func RegisterRoutes(r chi.Router, logger *slog.Logger, norm *httperr.Normalizer, svc *Services) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
	)
	r.Use(middlewarectx.RateLimitMiddleware(norm, logger))

	protect := middlewarectx.AuthMiddleware(svc.Auth, norm, logger)
	adminOnly := middlewarectx.RequireRoles(norm, models.RoleAdmin)

	authH := authhandler.New(logger, svc.Auth, norm)
	userH := userhandler.New(logger, svc.User, norm)
	expH := exphandler.New(logger, svc.Experience, norm)
	refH := refhandler.New(logger, svc.Reference, norm)
	certH := certhandler.New(logger, svc.Certification, norm)
	contactH := contacthandler.New(logger, svc.Contact, norm)

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		render.JSON(w, r, response.SuccessMessage("Welcome to Florien Portfolio Backend v1 API"))
	})

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", authH.Login)
			r.Post("/logout", authH.Logout)
			r.With(protect).Get("/me", authH.Me)
		})

		r.Route("/users", func(r chi.Router) {
			r.With(protect, adminOnly).Get("/", userH.List)
			r.With(protect, adminOnly).Post("/", userH.Create)
			r.Get("/{id}", userH.Read)
			r.With(protect, adminOnly).Patch("/{id}", userH.Update)
			r.With(protect, adminOnly).Delete("/{id}", userH.Remove)
			r.With(protect).Patch("/{id}/password", userH.UpdatePassword)
		})

		r.Route("/experiences", func(r chi.Router) {
			r.Get("/", expH.List)
			r.Get("/{id}", expH.Read)
			r.With(protect, adminOnly).Post("/", expH.Create)
			r.With(protect, adminOnly).Patch("/{id}", expH.Update)
			r.With(protect, adminOnly).Delete("/{id}", expH.Remove)
		})

		r.Route("/references", func(r chi.Router) {
			r.Get("/", refH.List)
			r.Get("/{id}", refH.Read)
			r.With(protect, adminOnly).Post("/", refH.Create)
			r.With(protect, adminOnly).Patch("/{id}", refH.Update)
			r.With(protect, adminOnly).Delete("/{id}", refH.Remove)
		})

		r.Route("/certifications", func(r chi.Router) {
			r.Get("/", certH.List)
			r.Get("/{id}", certH.Read)
			r.With(protect, adminOnly).Post("/", certH.Create)
			r.With(protect, adminOnly).Patch("/{id}", certH.Update)
			r.With(protect, adminOnly).Delete("/{id}", certH.Remove)
		})

		r.Route("/contacts", func(r chi.Router) {
			r.Post("/", contactH.Create)
			r.With(protect, adminOnly).Get("/", contactH.List)
			r.With(protect, adminOnly).Get("/{id}", contactH.Read)
			r.With(protect, adminOnly).Patch("/{id}", contactH.Update)
			r.With(protect, adminOnly).Delete("/{id}", contactH.Remove)
		})
	})

	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)

	notFound := func(w http.ResponseWriter, req *http.Request) {
		norm.Respond(w, req, apperror.New(http.StatusNotFound,
			fmt.Sprintf("Can't find %s on this server!", req.URL.Path)))
	}
	r.NotFound(notFound)
	r.MethodNotAllowed(notFound)
}
