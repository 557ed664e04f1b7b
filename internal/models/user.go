// Package models содержит доменные модели системы: пользователей,
// публикации и отметки «нравится». Структуры используются в
// бизнес‑логике и при работе с хранилищем.
package models

// User представляет зарегистрированного пользователя системы.
type User struct {
	Username     string            // Имя пользователя (уникальное, неизменяемое)
	PasswordHash string            // Хэш пароля пользователя
	DateOfBirth  string            // Дата рождения (опционально)
	Image        string            // Ссылка на аватар (опционально)
	Extra        map[string]string // Дополнительные поля профиля
}

// UserInfo — публичное представление пользователя без учётных данных.
type UserInfo struct {
	Username    string            `json:"username"`
	DateOfBirth string            `json:"dob,omitempty"`
	Image       string            `json:"image,omitempty"`
	Extra       map[string]string `json:"extra,omitempty"`
}

// UserPatch описывает частичное обновление профиля.
// Нулевой указатель означает «поле не менять».
type UserPatch struct {
	DateOfBirth *string
	Image       *string
	Extra       map[string]string
}

// Info возвращает публичное представление пользователя.
func (u *User) Info() UserInfo {
	return UserInfo{
		Username:    u.Username,
		DateOfBirth: u.DateOfBirth,
		Image:       u.Image,
		Extra:       u.Extra,
	}
}
