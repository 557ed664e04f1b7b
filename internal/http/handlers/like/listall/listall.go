// Package listall реализует HTTP-обработчик полного списка отметок «нравится».
package listall

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

// Service описывает интерфейс сервиса отметок.
type Service interface {
	ListAll(ctx context.Context) ([]*models.Like, error)
}

// Handler обрабатывает HTTP-запросы на получение всех отметок.
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
// @Summary Все отметки
// @Description Возвращает полный список связей пост-пользователь.
// @Tags Likes
// @Security BearerAuth
// @Produce  json
// @Success 200 {object} map[string]any "Список отметок"
// @Failure 401 {object} response.ErrorResponse "Отсутствует или недействителен токен"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /likes [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.like.listall"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	likes, err := h.service.ListAll(r.Context())
	if err != nil {
		log.Error("failed to list likes", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to list likes"))
		return
	}

	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"count": len(likes),
		"likes": likes,
	}))
}
