// Package getprofile реализует HTTP-обработчик получения профиля текущего пользователя.
package getprofile

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/social-feed/internal/http/middlewarectx"
	"github.com/magabrotheeeer/social-feed/internal/http/response"
	"github.com/magabrotheeeer/social-feed/internal/lib/sl"
	"github.com/magabrotheeeer/social-feed/internal/models"
)

// Service описывает интерфейс сервиса получения профиля.
type Service interface {
	GetInfo(ctx context.Context, username string) (*models.UserInfo, error)
}

// Handler обрабатывает HTTP-запросы на получение профиля.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Профиль пользователя
// @Description Возвращает публичный профиль текущего пользователя.
// @Tags Users
// @Security BearerAuth
// @Produce  json
// @Success 200 {object} map[string]any "Профиль пользователя"
// @Failure 401 {object} response.ErrorResponse "Отсутствует или недействителен токен"
// @Failure 404 {object} response.ErrorResponse "Пользователь не найден"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /users/get-profile [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.getprofile"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	username, ok := r.Context().Value(middlewarectx.User).(string)
	if !ok || username == "" {
		log.Error("missing username in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	user, err := h.service.GetInfo(r.Context(), username)
	if err != nil {
		log.Error("failed to get profile", sl.Err(err))
		if errors.Is(err, models.ErrUserNotFound) {
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("user not found"))
			return
		}
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to get profile"))
		return
	}

	render.JSON(w, r, response.StatusOKWithData(user))
}
