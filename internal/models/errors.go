package models

import "errors"

// Ожидаемые ошибки доменного уровня. Сервисы возвращают их обёрнутыми
// через fmt.Errorf("%s: %w", op, err), поэтому проверять следует
// errors.Is, а не сравнением.
var (
	ErrUserExists         = errors.New("user already exists")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")

	ErrTokenMissing = errors.New("token missing")
	ErrTokenInvalid = errors.New("token invalid")
	ErrTokenExpired = errors.New("token expired")

	ErrPostNotFound = errors.New("post not found")

	ErrAlreadyLiked = errors.New("post already liked")
	ErrNotLiked     = errors.New("post not liked")
)
