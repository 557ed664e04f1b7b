package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/magabrotheeeer/social-feed/internal/models"
)

// LikeStore владеет связями (postID, username). Для каждой публикации
// имена хранятся в порядке появления отметок; пара уникальна.
// Одна блокировка на всё хранилище: каскадная очистка при удалении
// публикации удерживает её на всю длительность и потому атомарна
// относительно конкурентных like/unlike. Удалённые публикации
// запоминаются в deleted: проверка существования в сервисе и вставка
// отметки идут под разными блокировками, и без этой записи отметка,
// прошедшая проверку до каскада, осела бы у уже удалённой публикации.
type LikeStore struct {
	mu      sync.RWMutex
	byPost  map[int][]string
	deleted map[int]struct{}
}

// NewLikeStore создаёт пустое хранилище отметок.
func NewLikeStore() *LikeStore {
	return &LikeStore{
		byPost:  make(map[int][]string),
		deleted: make(map[int]struct{}),
	}
}

// AddLike добавляет пару (postID, username) и возвращает новое число
// отметок публикации. Повторная отметка — ошибка, не no-op.
func (s *LikeStore) AddLike(ctx context.Context, postID int, username string) (int, error) {
	const op = "storage.memory.AddLike"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, gone := s.deleted[postID]; gone {
		return 0, fmt.Errorf("%s: %w", op, models.ErrPostNotFound)
	}
	users := s.byPost[postID]
	for _, u := range users {
		if u == username {
			return 0, fmt.Errorf("%s: %w", op, models.ErrAlreadyLiked)
		}
	}
	s.byPost[postID] = append(users, username)
	return len(users) + 1, nil
}

// RemoveLike удаляет пару (postID, username) и возвращает оставшееся
// число отметок. Снятие несуществующей отметки — ошибка.
func (s *LikeStore) RemoveLike(ctx context.Context, postID int, username string) (int, error) {
	const op = "storage.memory.RemoveLike"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	users := s.byPost[postID]
	for i, u := range users {
		if u == username {
			users = append(users[:i], users[i+1:]...)
			if len(users) == 0 {
				delete(s.byPost, postID)
			} else {
				s.byPost[postID] = users
			}
			return len(users), nil
		}
	}
	return 0, fmt.Errorf("%s: %w", op, models.ErrNotLiked)
}

// ListByPost возвращает имена пользователей, отметивших публикацию,
// в порядке появления отметок. Для публикации без отметок — пустой срез.
func (s *LikeStore) ListByPost(ctx context.Context, postID int) ([]string, error) {
	const op = "storage.memory.ListByPost"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	users := s.byPost[postID]
	result := make([]string, len(users))
	copy(result, users)
	return result, nil
}

// ListAll возвращает полный список связей для административной выдачи,
// сгруппированный по возрастанию postID.
func (s *LikeStore) ListAll(ctx context.Context) ([]*models.Like, error) {
	const op = "storage.memory.ListAll"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]int, 0, len(s.byPost))
	for id := range s.byPost {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	var result []*models.Like
	for _, id := range ids {
		for _, username := range s.byPost[id] {
			result = append(result, &models.Like{PostID: id, Username: username})
		}
	}
	return result, nil
}

// RemoveLikesByPost удаляет все отметки публикации и возвращает их число.
// Используется каскадом при удалении публикации, чтобы не оставлять
// осиротевших связей. Публикация помечается удалённой: идентификаторы
// монотонны и не переиспользуются, поэтому последующий AddLike для неё —
// models.ErrPostNotFound.
func (s *LikeStore) RemoveLikesByPost(ctx context.Context, postID int) (int, error) {
	const op = "storage.memory.RemoveLikesByPost"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	removed := len(s.byPost[postID])
	delete(s.byPost, postID)
	s.deleted[postID] = struct{}{}
	return removed, nil
}
