// Package like содержит бизнес-логику отметок «нравится»: строгий
// toggle-инвариант пары (postID, username) и публикацию событий ленты.
package like

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/magabrotheeeer/social-feed/internal/models"
)

// Repository определяет методы для работы с отметками в хранилище.
type Repository interface {
	// AddLike вставляет пару и возвращает новое число отметок публикации;
	// повторная отметка — models.ErrAlreadyLiked.
	AddLike(ctx context.Context, postID int, username string) (int, error)
	// RemoveLike удаляет пару и возвращает оставшееся число отметок;
	// отсутствующая пара — models.ErrNotLiked.
	RemoveLike(ctx context.Context, postID int, username string) (int, error)
	// ListByPost возвращает имена в порядке появления отметок.
	ListByPost(ctx context.Context, postID int) ([]string, error)
	// ListAll возвращает полный список связей.
	ListAll(ctx context.Context) ([]*models.Like, error)
}

// PostProvider даёт доступ на чтение к публикациям: отметить можно
// только существующую публикацию.
type PostProvider interface {
	GetPost(ctx context.Context, id int) (*models.Post, error)
}

// EventPublisher публикует события ленты для потребителей уведомлений.
type EventPublisher interface {
	Publish(routingKey string, message any) error
}

// Event — событие отметки, уходящее в обменник feed.events.
type Event struct {
	PostID   int    `json:"post_id"`
	Username string `json:"username"`
	Count    int    `json:"count"`
}

// Service реализует бизнес-логику отметок «нравится».
type Service struct {
	repo   Repository
	posts  PostProvider
	events EventPublisher // может быть nil, тогда события не публикуются
	log    *slog.Logger
}

// New создает новый экземпляр Service.
func New(repo Repository, posts PostProvider, events EventPublisher, log *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		posts:  posts,
		events: events,
		log:    log,
	}
}

// Like добавляет отметку пользователя username публикации postID.
// Несуществующая публикация — models.ErrPostNotFound, повторная
// отметка — models.ErrAlreadyLiked.
func (s *Service) Like(ctx context.Context, postID int, username string) (*models.LikeSummary, error) {
	const op = "services.like.Like"

	if _, err := s.posts.GetPost(ctx, postID); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	count, err := s.repo.AddLike(ctx, postID, username)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("post liked", slog.Int("post_id", postID), slog.String("username", username))

	s.publish("like.created", Event{PostID: postID, Username: username, Count: count})
	return &models.LikeSummary{
		PostID:   postID,
		Username: username,
		Liked:    true,
		Count:    count,
	}, nil
}

// Unlike снимает отметку пользователя username с публикации postID.
// Отсутствующая отметка — models.ErrNotLiked.
func (s *Service) Unlike(ctx context.Context, postID int, username string) (*models.LikeSummary, error) {
	const op = "services.like.Unlike"

	count, err := s.repo.RemoveLike(ctx, postID, username)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("post unliked", slog.Int("post_id", postID), slog.String("username", username))

	s.publish("like.removed", Event{PostID: postID, Username: username, Count: count})
	return &models.LikeSummary{
		PostID:   postID,
		Username: username,
		Liked:    false,
		Count:    count,
	}, nil
}

// ListByPost возвращает имена пользователей, отметивших публикацию,
// в порядке появления отметок. Несуществующая публикация —
// models.ErrPostNotFound.
func (s *Service) ListByPost(ctx context.Context, postID int) ([]string, error) {
	const op = "services.like.ListByPost"

	if _, err := s.posts.GetPost(ctx, postID); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	users, err := s.repo.ListByPost(ctx, postID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return users, nil
}

// ListAll возвращает полный список связей для административной выдачи.
func (s *Service) ListAll(ctx context.Context) ([]*models.Like, error) {
	const op = "services.like.ListAll"

	likes, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return likes, nil
}

// publish отправляет событие ленты, сбой публикации не влияет на
// результат операции.
func (s *Service) publish(routingKey string, event Event) {
	if s.events == nil {
		return
	}
	if err := s.events.Publish(routingKey, event); err != nil {
		s.log.Warn("failed to publish feed event",
			slog.String("routing_key", routingKey), slog.Any("err", err))
	}
}
