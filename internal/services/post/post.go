// Package post содержит бизнес-логику для управления публикациями,
// включая кеширование горячих чтений и каскадную очистку отметок
// при удалении.
package post

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/social-feed/internal/models"
)

// Repository определяет методы для работы с публикациями в хранилище.
type Repository interface {
	// CreatePost добавляет новую публикацию и возвращает её ID.
	CreatePost(ctx context.Context, post models.Post) (int, error)
	// GetPost возвращает публикацию по ID или models.ErrPostNotFound.
	GetPost(ctx context.Context, id int) (*models.Post, error)
	// UpdatePost применяет patch и возвращает обновлённую запись.
	UpdatePost(ctx context.Context, id int, patch models.PostPatch) (*models.Post, error)
	// DeletePost удаляет публикацию по ID.
	DeletePost(ctx context.Context, id int) error
	// ListPosts возвращает все публикации, упорядоченные по ID.
	ListPosts(ctx context.Context) ([]*models.Post, error)
}

// LikeCleaner выполняет каскадную очистку отметок удалённой публикации.
type LikeCleaner interface {
	RemoveLikesByPost(ctx context.Context, postID int) (int, error)
}

// Cache описывает методы для кэширования данных.
type Cache interface {
	Get(key string, result any) (bool, error)
	Set(key string, value any, expiration time.Duration) error
	Invalidate(key string) error
}

// Service реализует бизнес-логику работы с публикациями.
type Service struct {
	repo  Repository
	likes LikeCleaner
	cache Cache // может быть nil, тогда кеширование отключено
	log   *slog.Logger
}

// New создает новый экземпляр Service.
func New(repo Repository, likes LikeCleaner, cache Cache, log *slog.Logger) *Service {
	return &Service{
		repo:  repo,
		likes: likes,
		cache: cache,
		log:   log,
	}
}

const (
	// cacheTTL — время жизни записи, положенной при создании или
	// обновлении публикации: такие записи заведомо свежие.
	cacheTTL = time.Hour
	// readTTL — время жизни записи, дописанной на промахе чтения.
	// Чтение, стартовавшее до удаления публикации, может положить её
	// в кеш уже после инвалидации; короткий срок ограничивает окно,
	// в котором удалённая публикация видна из кеша.
	readTTL = time.Minute
)

func cacheKey(id int) string {
	return fmt.Sprintf("post:%d", id)
}

// Create сохраняет публикацию от имени author и возвращает её.
// Операция всегда успешна при работоспособном хранилище.
func (s *Service) Create(ctx context.Context, author, title, content, status, postType string) (*models.Post, error) {
	const op = "services.post.Create"

	post := models.Post{
		Title:   title,
		Content: content,
		Author:  author,
		Status:  status,
		Type:    postType,
	}
	id, err := s.repo.CreatePost(ctx, post)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	post.ID = id
	s.log.Info("created new post", slog.Int("id", id), slog.String("author", author))

	if s.cache != nil {
		if err := s.cache.Set(cacheKey(id), post, cacheTTL); err != nil {
			s.log.Warn("failed to cache post", slog.String("key", cacheKey(id)), slog.Any("err", err))
		}
	}
	return &post, nil
}

// Read возвращает публикацию по ID, используя кеш или хранилище.
func (s *Service) Read(ctx context.Context, id int) (*models.Post, error) {
	const op = "services.post.Read"

	if s.cache != nil {
		var cached models.Post
		found, err := s.cache.Get(cacheKey(id), &cached)
		if err != nil {
			s.log.Warn("failed to read post from cache", slog.String("key", cacheKey(id)), slog.Any("err", err))
		} else if found {
			return &cached, nil
		}
	}

	post, err := s.repo.GetPost(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if s.cache != nil {
		if err := s.cache.Set(cacheKey(id), post, readTTL); err != nil {
			s.log.Warn("failed to cache post", slog.String("key", cacheKey(id)), slog.Any("err", err))
		}
	}
	return post, nil
}

// Update применяет patch к публикации, обновляет кеш и возвращает результат.
// Поля, отсутствующие в patch, остаются без изменений.
func (s *Service) Update(ctx context.Context, id int, patch models.PostPatch) (*models.Post, error) {
	const op = "services.post.Update"

	post, err := s.repo.UpdatePost(ctx, id, patch)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("updated post", slog.Int("id", id))

	if s.cache != nil {
		if err := s.cache.Set(cacheKey(id), post, cacheTTL); err != nil {
			s.log.Warn("failed to cache post", slog.String("key", cacheKey(id)), slog.Any("err", err))
		}
	}
	return post, nil
}

// Remove удаляет публикацию и каскадом очищает её отметки, чтобы
// не оставлять осиротевших связей. Хранилище отметок запоминает
// удалённую публикацию, так что отметка, успевшая пройти проверку
// существования до удаления, после каскада отклоняется.
func (s *Service) Remove(ctx context.Context, id int) error {
	const op = "services.post.Remove"

	if err := s.repo.DeletePost(ctx, id); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	removed, err := s.likes.RemoveLikesByPost(ctx, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("deleted post", slog.Int("id", id), slog.Int("likes_removed", removed))

	if s.cache != nil {
		if err := s.cache.Invalidate(cacheKey(id)); err != nil {
			s.log.Warn("failed to remove post from cache", slog.String("key", cacheKey(id)), slog.Any("err", err))
		}
	}
	return nil
}

// List возвращает все публикации, упорядоченные по ID.
func (s *Service) List(ctx context.Context) ([]*models.Post, error) {
	const op = "services.post.List"

	posts, err := s.repo.ListPosts(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return posts, nil
}
