// Package memory реализует хранилища данных в памяти процесса:
// пользователей, публикации и отметки «нравится». Каждое хранилище
// владеет своими записями и сериализует мутации собственным RWMutex;
// чтения выполняются конкурентно между собой.
package memory

import (
	"context"
	"fmt"
	"maps"
	"sync"

	"github.com/magabrotheeeer/social-feed/internal/models"
)

// UserStore хранит учётные записи, ключом служит username.
type UserStore struct {
	mu    sync.RWMutex
	users map[string]models.User
}

// NewUserStore создаёт пустое хранилище пользователей.
func NewUserStore() *UserStore {
	return &UserStore{
		users: make(map[string]models.User),
	}
}

// SaveUser сохраняет нового пользователя. Проверка уникальности и
// вставка выполняются под одной блокировкой, поэтому гонка двух
// одновременных регистраций одного username невозможна.
func (s *UserStore) SaveUser(ctx context.Context, user models.User) error {
	const op = "storage.memory.SaveUser"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[user.Username]; ok {
		return fmt.Errorf("%s: %w", op, models.ErrUserExists)
	}
	s.users[user.Username] = user
	return nil
}

// GetUserByUsername возвращает пользователя по его username.
// Карта Extra копируется: возвращённая запись не должна разделять
// состояние с хранилищем, иначе чтение у вызывающего гонится с
// конкурентным UpdateUser.
func (s *UserStore) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	const op = "storage.memory.GetUserByUsername"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.users[username]
	if !ok {
		return nil, fmt.Errorf("%s: %w", op, models.ErrUserNotFound)
	}
	user.Extra = maps.Clone(user.Extra)
	return &user, nil
}

// UpdateUser применяет patch к существующей записи и возвращает результат.
// Username неизменяем, пустые поля patch не затрагивают запись.
func (s *UserStore) UpdateUser(ctx context.Context, username string, patch models.UserPatch) (*models.User, error) {
	const op = "storage.memory.UpdateUser"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[username]
	if !ok {
		return nil, fmt.Errorf("%s: %w", op, models.ErrUserNotFound)
	}
	if patch.DateOfBirth != nil {
		user.DateOfBirth = *patch.DateOfBirth
	}
	if patch.Image != nil {
		user.Image = *patch.Image
	}
	if len(patch.Extra) > 0 {
		// Слияние выполняется в новой карте: ранее выданные копии
		// записи продолжают читать старую без гонки.
		extra := maps.Clone(user.Extra)
		if extra == nil {
			extra = make(map[string]string, len(patch.Extra))
		}
		for k, v := range patch.Extra {
			extra[k] = v
		}
		user.Extra = extra
	}
	s.users[username] = user
	user.Extra = maps.Clone(user.Extra)
	return &user, nil
}

// UpdatePassword заменяет хэш пароля пользователя.
func (s *UserStore) UpdatePassword(ctx context.Context, username, passwordHash string) error {
	const op = "storage.memory.UpdatePassword"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[username]
	if !ok {
		return fmt.Errorf("%s: %w", op, models.ErrUserNotFound)
	}
	user.PasswordHash = passwordHash
	s.users[username] = user
	return nil
}
