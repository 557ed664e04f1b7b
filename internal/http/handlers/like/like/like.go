// Package like реализует HTTP-обработчик добавления отметки «нравится».
//
// Повторная отметка той же публикации тем же пользователем отклоняется.
package like

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/social-feed/internal/http/middlewarectx"
	"github.com/magabrotheeeer/social-feed/internal/http/response"
	"github.com/magabrotheeeer/social-feed/internal/lib/sl"
	"github.com/magabrotheeeer/social-feed/internal/models"
)

// Service описывает интерфейс сервиса отметок.
type Service interface {
	Like(ctx context.Context, postID int, username string) (*models.LikeSummary, error)
}

// Handler обрабатывает HTTP-запросы на добавление отметки.
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
// @Summary Отметка «нравится»
// @Description Добавляет отметку текущего пользователя публикации.
// @Tags Likes
// @Security BearerAuth
// @Produce  json
// @Param id path int true "Идентификатор поста"
// @Success 200 {object} map[string]any "Состояние отметки"
// @Failure 400 {object} response.ErrorResponse "Некорректный идентификатор или повторная отметка"
// @Failure 401 {object} response.ErrorResponse "Отсутствует или недействителен токен"
// @Failure 404 {object} response.ErrorResponse "Пост не найден"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /posts/{id}/like [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.like.like"

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

	postID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		log.Error("invalid post id", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid post id"))
		return
	}

	summary, err := h.service.Like(r.Context(), postID, username)
	if err != nil {
		log.Error("failed to like post", sl.Err(err))
		switch {
		case errors.Is(err, models.ErrPostNotFound):
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("post not found"))
		case errors.Is(err, models.ErrAlreadyLiked):
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error("post already liked"))
		default:
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to like post"))
		}
		return
	}

	log.Info("post liked", slog.Int("post_id", postID), slog.String("username", username))
	render.JSON(w, r, response.StatusOKWithData(summary))
}
