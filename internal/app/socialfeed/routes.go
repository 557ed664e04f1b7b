// Package socialfeed предоставляет маршруты для основного приложения.
package socialfeed

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/magabrotheeeer/social-feed/internal/http/handlers/auth/forgotpassword"
	"github.com/magabrotheeeer/social-feed/internal/http/handlers/auth/getprofile"
	"github.com/magabrotheeeer/social-feed/internal/http/handlers/auth/login"
	"github.com/magabrotheeeer/social-feed/internal/http/handlers/auth/register"
	"github.com/magabrotheeeer/social-feed/internal/http/handlers/auth/updateprofile"
	"github.com/magabrotheeeer/social-feed/internal/http/handlers/health"
	likehandler "github.com/magabrotheeeer/social-feed/internal/http/handlers/like/like"
	"github.com/magabrotheeeer/social-feed/internal/http/handlers/like/listall"
	"github.com/magabrotheeeer/social-feed/internal/http/handlers/like/listbypost"
	"github.com/magabrotheeeer/social-feed/internal/http/handlers/like/unlike"
	"github.com/magabrotheeeer/social-feed/internal/http/handlers/post/create"
	"github.com/magabrotheeeer/social-feed/internal/http/handlers/post/list"
	"github.com/magabrotheeeer/social-feed/internal/http/handlers/post/read"
	"github.com/magabrotheeeer/social-feed/internal/http/handlers/post/remove"
	"github.com/magabrotheeeer/social-feed/internal/http/handlers/post/update"
	"github.com/magabrotheeeer/social-feed/internal/http/middlewarectx"
	authservice "github.com/magabrotheeeer/social-feed/internal/services/auth"
	likeservice "github.com/magabrotheeeer/social-feed/internal/services/like"
	postservice "github.com/magabrotheeeer/social-feed/internal/services/post"
)

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger,
	authService *authservice.Service,
	postService *postservice.Service,
	likeService *likeservice.Service,
) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
		cors.Handler(cors.Options{
			AllowedOrigins: []string{"*"},
			AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		}),
	)

	// Открытые конечные точки
	r.Get("/health", health.New().ServeHTTP)
	r.Post("/register", register.New(logger, authService).ServeHTTP)
	r.Post("/login", login.New(logger, authService).ServeHTTP)
	r.Post("/forgot-password", forgotpassword.New(logger, authService).ServeHTTP)

	// Группа с JWT аутентификацией
	r.Group(func(r chi.Router) {
		r.Use(middlewarectx.JWTMiddleware(authService, logger))

		r.Post("/posts", create.New(logger, postService).ServeHTTP)
		r.Get("/posts", list.New(logger, postService).ServeHTTP)
		r.Get("/posts/{id}", read.New(logger, postService).ServeHTTP)
		r.Put("/posts/{id}", update.New(logger, postService).ServeHTTP)
		r.Delete("/posts/{id}", remove.New(logger, postService).ServeHTTP)

		r.Post("/posts/{id}/like", likehandler.New(logger, likeService).ServeHTTP)
		r.Post("/posts/{id}/unlike", unlike.New(logger, likeService).ServeHTTP)
		r.Get("/posts/{id}/likes", listbypost.New(logger, likeService).ServeHTTP)
		r.Get("/likes", listall.New(logger, likeService).ServeHTTP)

		r.Put("/users/update-profile", updateprofile.New(logger, authService).ServeHTTP)
		r.Get("/users/get-profile", getprofile.New(logger, authService).ServeHTTP)
	})

	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
