package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/magabrotheeeer/social-feed/internal/models"
)

// PostStore хранит публикации, ключом служит целочисленный ID.
// Идентификаторы назначаются монотонно растущим счётчиком, который
// стартует выше любого предзаполненного значения.
type PostStore struct {
	mu     sync.RWMutex
	posts  map[int]models.Post
	nextID int
}

// NewPostStore создаёт хранилище публикаций, опционально предзаполняя
// его записями seed.
func NewPostStore(seed []models.Post) *PostStore {
	s := &PostStore{
		posts:  make(map[int]models.Post, len(seed)),
		nextID: 1,
	}
	for _, p := range seed {
		s.posts[p.ID] = p
		if p.ID >= s.nextID {
			s.nextID = p.ID + 1
		}
	}
	return s
}

// CreatePost сохраняет публикацию со свежим ID и возвращает его.
// Операция всегда успешна.
func (s *PostStore) CreatePost(ctx context.Context, post models.Post) (int, error) {
	const op = "storage.memory.CreatePost"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	post.ID = s.nextID
	s.nextID++
	s.posts[post.ID] = post
	return post.ID, nil
}

// GetPost возвращает публикацию по её ID.
func (s *PostStore) GetPost(ctx context.Context, id int) (*models.Post, error) {
	const op = "storage.memory.GetPost"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	post, ok := s.posts[id]
	if !ok {
		return nil, fmt.Errorf("%s: %w", op, models.ErrPostNotFound)
	}
	return &post, nil
}

// UpdatePost применяет patch к публикации и возвращает обновлённую запись.
// Поля с нулевыми указателями остаются без изменений.
func (s *PostStore) UpdatePost(ctx context.Context, id int, patch models.PostPatch) (*models.Post, error) {
	const op = "storage.memory.UpdatePost"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	post, ok := s.posts[id]
	if !ok {
		return nil, fmt.Errorf("%s: %w", op, models.ErrPostNotFound)
	}
	if patch.Title != nil {
		post.Title = *patch.Title
	}
	if patch.Content != nil {
		post.Content = *patch.Content
	}
	if patch.Status != nil {
		post.Status = *patch.Status
	}
	if patch.Type != nil {
		post.Type = *patch.Type
	}
	s.posts[id] = post
	return &post, nil
}

// DeletePost удаляет публикацию по ID.
func (s *PostStore) DeletePost(ctx context.Context, id int) error {
	const op = "storage.memory.DeletePost"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.posts[id]; !ok {
		return fmt.Errorf("%s: %w", op, models.ErrPostNotFound)
	}
	delete(s.posts, id)
	return nil
}

// ListPosts возвращает все публикации, упорядоченные по ID.
func (s *PostStore) ListPosts(ctx context.Context) ([]*models.Post, error) {
	const op = "storage.memory.ListPosts"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*models.Post, 0, len(s.posts))
	for _, post := range s.posts {
		p := post
		result = append(result, &p)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}
