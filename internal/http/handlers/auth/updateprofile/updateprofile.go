// Package updateprofile реализует HTTP-обработчик частичного обновления профиля.
//
// Имя пользователя берётся из контекста запроса после проверки JWT;
// обновляются только переданные поля, остальные сохраняют прежние значения.
package updateprofile

import (
	"context"
	"encoding/json"
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

// Request — структура входных данных для обновления профиля.
// Отсутствующие поля не изменяются.
type Request struct {
	DateOfBirth *string           `json:"dob,omitempty"`
	Image       *string           `json:"image,omitempty"`
	Extra       map[string]string `json:"extra,omitempty"`
}

// Service описывает интерфейс сервиса обновления профиля.
type Service interface {
	UpdateUser(ctx context.Context, username string, patch models.UserPatch) (*models.UserInfo, error)
}

// Handler обрабатывает HTTP-запросы на обновление профиля.
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
// @Summary Обновление профиля
// @Description Частично обновляет профиль текущего пользователя.
// @Tags Users
// @Security BearerAuth
// @Accept  json
// @Produce  json
// @Param request body Request true "Изменяемые поля профиля"
// @Success 200 {object} map[string]any "Обновленный профиль"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 401 {object} response.ErrorResponse "Отсутствует или недействителен токен"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /users/update-profile [put]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.updateprofile"

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

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	patch := models.UserPatch{
		DateOfBirth: req.DateOfBirth,
		Image:       req.Image,
		Extra:       req.Extra,
	}
	user, err := h.service.UpdateUser(r.Context(), username, patch)
	if err != nil {
		log.Error("failed to update profile", sl.Err(err))
		if errors.Is(err, models.ErrUserNotFound) {
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("user not found"))
			return
		}
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to update profile"))
		return
	}

	log.Info("profile updated", slog.String("username", username))
	render.JSON(w, r, response.StatusOKWithData(user))
}
