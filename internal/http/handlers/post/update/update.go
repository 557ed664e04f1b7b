// Package update реализует HTTP-обработчик частичного обновления поста.
//
// Обновляются только переданные поля; автор поста не изменяется.
package update

import (
	"context"
	"encoding/json"
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

// Request — структура входных данных для обновления поста.
// Отсутствующие поля не изменяются.
type Request struct {
	Title   *string `json:"title,omitempty"`
	Content *string `json:"content,omitempty"`
	Status  *string `json:"status,omitempty"`
	Type    *string `json:"type,omitempty"`
}

// Service описывает интерфейс сервиса постов.
type Service interface {
	Update(ctx context.Context, id int, patch models.PostPatch) (*models.Post, error)
}

// Handler обрабатывает HTTP-запросы на обновление поста.
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
// @Summary Обновление поста
// @Description Частично обновляет пост по его идентификатору.
// @Tags Posts
// @Security BearerAuth
// @Accept  json
// @Produce  json
// @Param id path int true "Идентификатор поста"
// @Param request body Request true "Изменяемые поля поста"
// @Success 200 {object} map[string]any "Обновленный пост"
// @Failure 400 {object} response.ErrorResponse "Некорректный запрос"
// @Failure 401 {object} response.ErrorResponse "Отсутствует или недействителен токен"
// @Failure 404 {object} response.ErrorResponse "Пост не найден"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /posts/{id} [put]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.post.update"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		log.Error("invalid post id", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid post id"))
		return
	}

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	post, err := h.service.Update(r.Context(), id, models.PostPatch{
		Title:   req.Title,
		Content: req.Content,
		Status:  req.Status,
		Type:    req.Type,
	})
	if err != nil {
		log.Error("failed to update post", sl.Err(err))
		if errors.Is(err, models.ErrPostNotFound) {
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("post not found"))
			return
		}
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to update post"))
		return
	}

	log.Info("post updated", slog.Int("post_id", id))
	render.JSON(w, r, response.StatusOKWithData(post))
}
