// Package listbypost реализует HTTP-обработчик списка пользователей,
// отметивших публикацию.
package listbypost

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/social-feed/internal/http/response"
	"github.com/magabrotheeeer/social-feed/internal/lib/sl"
	"github.com/magabrotheeeer/social-feed/internal/models"
)

// Service описывает интерфейс сервиса отметок.
type Service interface {
	ListByPost(ctx context.Context, postID int) ([]string, error)
}

// Handler обрабатывает HTTP-запросы на получение отметок публикации.
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
// @Summary Отметки публикации
// @Description Возвращает имена пользователей, отметивших публикацию, в порядке появления отметок.
// @Tags Likes
// @Security BearerAuth
// @Produce  json
// @Param id path int true "Идентификатор поста"
// @Success 200 {object} map[string]any "Список пользователей"
// @Failure 400 {object} response.ErrorResponse "Некорректный идентификатор"
// @Failure 401 {object} response.ErrorResponse "Отсутствует или недействителен токен"
// @Failure 404 {object} response.ErrorResponse "Пост не найден"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /posts/{id}/likes [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.like.listbypost"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	postID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		log.Error("invalid post id", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid post id"))
		return
	}

	users, err := h.service.ListByPost(r.Context(), postID)
	if err != nil {
		log.Error("failed to list likes", sl.Err(err))
		if errors.Is(err, models.ErrPostNotFound) {
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("post not found"))
			return
		}
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to list likes"))
		return
	}

	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"post_id": postID,
		"count":   len(users),
		"users":   users,
	}))
}
