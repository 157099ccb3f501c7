// Package notesapp предоставляет маршруты приложения.
package notesapp

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/gourav1008/NotesApp/internal/http/handlers/admin/adminnotecreate"
	"github.com/gourav1008/NotesApp/internal/http/handlers/admin/adminnotelist"
	"github.com/gourav1008/NotesApp/internal/http/handlers/admin/adminnoteremove"
	"github.com/gourav1008/NotesApp/internal/http/handlers/admin/adminnoteupdate"
	"github.com/gourav1008/NotesApp/internal/http/handlers/admin/block"
	"github.com/gourav1008/NotesApp/internal/http/handlers/admin/logs"
	"github.com/gourav1008/NotesApp/internal/http/handlers/admin/messagesend"
	"github.com/gourav1008/NotesApp/internal/http/handlers/admin/notelist"
	"github.com/gourav1008/NotesApp/internal/http/handlers/admin/noteremove"
	"github.com/gourav1008/NotesApp/internal/http/handlers/admin/noteupdate"
	"github.com/gourav1008/NotesApp/internal/http/handlers/admin/unblock"
	"github.com/gourav1008/NotesApp/internal/http/handlers/admin/userdelete"
	"github.com/gourav1008/NotesApp/internal/http/handlers/admin/userdetails"
	"github.com/gourav1008/NotesApp/internal/http/handlers/admin/userlist"
	"github.com/gourav1008/NotesApp/internal/http/handlers/admin/usernotes"
	"github.com/gourav1008/NotesApp/internal/http/handlers/admin/userstats"
	"github.com/gourav1008/NotesApp/internal/http/handlers/auth/login"
	"github.com/gourav1008/NotesApp/internal/http/handlers/auth/me"
	"github.com/gourav1008/NotesApp/internal/http/handlers/auth/register"
	"github.com/gourav1008/NotesApp/internal/http/handlers/message/inbox"
	"github.com/gourav1008/NotesApp/internal/http/handlers/note/create"
	"github.com/gourav1008/NotesApp/internal/http/handlers/note/list"
	"github.com/gourav1008/NotesApp/internal/http/handlers/note/read"
	"github.com/gourav1008/NotesApp/internal/http/handlers/note/remove"
	"github.com/gourav1008/NotesApp/internal/http/handlers/note/update"
	"github.com/gourav1008/NotesApp/internal/http/middlewarectx"
	adminservice "github.com/gourav1008/NotesApp/internal/services/admin"
	auditservice "github.com/gourav1008/NotesApp/internal/services/audit"
	authservice "github.com/gourav1008/NotesApp/internal/services/auth"
	noteservice "github.com/gourav1008/NotesApp/internal/services/note"
)

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger,
	authService *authservice.AuthService,
	noteService *noteservice.NoteService,
	adminService *adminservice.AdminService,
	auditService *auditservice.AuditService,
	limiter middlewarectx.Admitter,
) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
	)

	r.Route("/api", func(r chi.Router) {
		// Лимит запросов действует на все API, включая вход и регистрацию
		r.Use(middlewarectx.RateLimit(limiter, logger))

		// Открытые конечные точки
		r.Post("/auth/register", register.New(logger, authService).ServeHTTP)
		r.Post("/auth/login", login.New(logger, authService).ServeHTTP)

		// Группа с JWT аутентификацией
		r.Group(func(r chi.Router) {
			r.Use(
				middlewarectx.Auth(authService, logger),
				middlewarectx.RequireNotBlocked(logger),
			)

			r.Get("/auth/me", me.New(logger).ServeHTTP)

			r.Post("/notes", create.New(logger, noteService).ServeHTTP)
			r.Get("/notes", list.New(logger, noteService).ServeHTTP)
			r.Get("/notes/{id}", read.New(logger, noteService).ServeHTTP)
			r.Put("/notes/{id}", update.New(logger, noteService).ServeHTTP)
			r.Delete("/notes/{id}", remove.New(logger, noteService).ServeHTTP)

			// Административная консоль
			r.Route("/admin", func(r chi.Router) {
				// Входящие сообщения доступны любому вошедшему пользователю
				r.Get("/messages", inbox.New(logger, adminService).ServeHTTP)

				r.Group(func(r chi.Router) {
					r.Use(middlewarectx.RequireAdmin(logger))

					r.Get("/users", userlist.New(logger, adminService).ServeHTTP)
					r.Get("/user-stats", userstats.New(logger, adminService).ServeHTTP)
					r.Get("/user-details/{id}", userdetails.New(logger, adminService).ServeHTTP)
					r.Get("/user-notes/{id}", usernotes.New(logger, adminService).ServeHTTP)
					r.Delete("/users/{id}", userdelete.New(logger, adminService).ServeHTTP)
					r.Patch("/users/{id}/block", block.New(logger, adminService).ServeHTTP)
					r.Patch("/users/{id}/unblock", unblock.New(logger, adminService).ServeHTTP)

					r.Post("/users/{id}/notes", adminnotecreate.New(logger, adminService).ServeHTTP)
					r.Get("/users/{id}/notes", adminnotelist.New(logger, adminService).ServeHTTP)
					r.Put("/admin-notes/{id}", adminnoteupdate.New(logger, adminService).ServeHTTP)
					r.Delete("/admin-notes/{id}", adminnoteremove.New(logger, adminService).ServeHTTP)

					r.Get("/notes", notelist.New(logger, adminService).ServeHTTP)
					r.Put("/notes/{id}", noteupdate.New(logger, adminService).ServeHTTP)
					r.Delete("/notes/{id}", noteremove.New(logger, adminService).ServeHTTP)

					r.Post("/messages", messagesend.New(logger, adminService).ServeHTTP)

					r.Get("/logs", logs.New(logger, auditService).ServeHTTP)
				})
			})
		})
	})

	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
