// Package auth содержит логику бизнес-уровня для работы с пользователями
// и сессионными токенами: регистрация, вход, сброс пароля, профиль и
// проверка токена.
package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/magabrotheeeer/social-feed/internal/lib/jwt"
	"github.com/magabrotheeeer/social-feed/internal/lib/password"
	"github.com/magabrotheeeer/social-feed/internal/models"
)

// UserRepository описывает контракт хранилища пользователей.
type UserRepository interface {
	// SaveUser сохраняет нового пользователя, возвращает
	// models.ErrUserExists при занятом username.
	SaveUser(ctx context.Context, user models.User) error

	// GetUserByUsername возвращает пользователя или models.ErrUserNotFound.
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)

	// UpdateUser применяет patch и возвращает обновлённую запись.
	UpdateUser(ctx context.Context, username string, patch models.UserPatch) (*models.User, error)

	// UpdatePassword заменяет хэш пароля пользователя.
	UpdatePassword(ctx context.Context, username, passwordHash string) error
}

// PasswordGenerator — стратегия генерации нового пароля при сбросе.
type PasswordGenerator func() string

// DefaultPasswordGenerator выдаёт короткий случайный пароль на основе uuid.
func DefaultPasswordGenerator() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
}

// Service отвечает за регистрацию, авторизацию, профиль и валидацию JWT.
type Service struct {
	users    UserRepository
	jwtMaker jwt.Maker
	generate PasswordGenerator
}

// New создает новый экземпляр Service. Если generate равен nil,
// используется DefaultPasswordGenerator.
func New(users UserRepository, jwtMaker jwt.Maker, generate PasswordGenerator) *Service {
	if generate == nil {
		generate = DefaultPasswordGenerator
	}
	return &Service{
		users:    users,
		jwtMaker: jwtMaker,
		generate: generate,
	}
}

// Register создает нового пользователя с хэшированием пароля и
// возвращает его публичное представление.
func (s *Service) Register(ctx context.Context, username, rawPassword, dob, image string) (*models.UserInfo, error) {
	const op = "services.auth.Register"

	hashed, err := password.GetHash(rawPassword)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	user := models.User{
		Username:     username,
		PasswordHash: hashed,
		DateOfBirth:  dob,
		Image:        image,
	}
	if err := s.users.SaveUser(ctx, user); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	info := user.Info()
	return &info, nil
}

// Login проверяет пароль пользователя и выпускает JWT.
// Несуществующий username и неверный пароль неразличимы для вызывающего.
// Сверка bcrypt выполняется без каких-либо блокировок хранилища,
// одновременные входы друг друга не сериализуют.
func (s *Service) Login(ctx context.Context, username, rawPassword string) (*models.UserInfo, string, error) {
	const op = "services.auth.Login"

	user, err := s.users.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, models.ErrUserNotFound) {
			return nil, "", fmt.Errorf("%s: %w", op, models.ErrInvalidCredentials)
		}
		return nil, "", fmt.Errorf("%s: %w", op, err)
	}
	if err := password.CompareHash(user.PasswordHash, rawPassword); err != nil {
		return nil, "", fmt.Errorf("%s: %w", op, models.ErrInvalidCredentials)
	}
	token, err := s.jwtMaker.GenerateToken(user.Username)
	if err != nil {
		return nil, "", fmt.Errorf("%s: %w", op, err)
	}
	info := user.Info()
	return &info, token, nil
}

// ResetPassword заменяет учётные данные пользователя новым паролем,
// полученным от настроенного генератора, и возвращает этот пароль.
// Ранее выпущенные токены остаются действительными до истечения TTL.
func (s *Service) ResetPassword(ctx context.Context, username string) (string, error) {
	const op = "services.auth.ResetPassword"

	if _, err := s.users.GetUserByUsername(ctx, username); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	newPassword := s.generate()
	hashed, err := password.GetHash(newPassword)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	if err := s.users.UpdatePassword(ctx, username, hashed); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return newPassword, nil
}

// UpdateUser применяет patch к профилю и возвращает публичное представление.
func (s *Service) UpdateUser(ctx context.Context, username string, patch models.UserPatch) (*models.UserInfo, error) {
	const op = "services.auth.UpdateUser"

	user, err := s.users.UpdateUser(ctx, username, patch)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	info := user.Info()
	return &info, nil
}

// GetInfo возвращает публичное представление пользователя.
func (s *Service) GetInfo(ctx context.Context, username string) (*models.UserInfo, error) {
	const op = "services.auth.GetInfo"

	user, err := s.users.GetUserByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	info := user.Info()
	return &info, nil
}

// ValidateToken проверяет JWT и возвращает имя пользователя из claims.
// Единственные ожидаемые исходы: имя пользователя либо одна из ошибок
// models.ErrTokenMissing, models.ErrTokenInvalid, models.ErrTokenExpired.
// Проверка — чистое вычисление без побочных эффектов.
func (s *Service) ValidateToken(_ context.Context, token string) (string, error) {
	const op = "services.auth.ValidateToken"

	if token == "" {
		return "", fmt.Errorf("%s: %w", op, models.ErrTokenMissing)
	}
	claims, err := s.jwtMaker.ParseToken(token)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return claims.Username, nil
}
