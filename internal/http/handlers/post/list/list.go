// Package list реализует HTTP-обработчик получения ленты постов.
package list

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/social-feed/internal/http/response"
	"github.com/magabrotheeeer/social-feed/internal/lib/sl"
	"github.com/magabrotheeeer/social-feed/internal/models"
)

// Service описывает интерфейс сервиса постов.
type Service interface {
	List(ctx context.Context) ([]*models.Post, error)
}

// Handler обрабатывает HTTP-запросы на получение списка постов.
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
// @Summary Лента постов
// @Description Возвращает все посты в порядке возрастания идентификаторов.
// @Tags Posts
// @Security BearerAuth
// @Produce  json
// @Success 200 {object} map[string]any "Список постов"
// @Failure 401 {object} response.ErrorResponse "Отсутствует или недействителен токен"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /posts [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.post.list"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	posts, err := h.service.List(r.Context())
	if err != nil {
		log.Error("failed to list posts", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to list posts"))
		return
	}

	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"count": len(posts),
		"posts": posts,
	}))
}
