package models

// Post представляет публикацию пользователя.
type Post struct {
	ID      int    `json:"id"`      // Уникальный идентификатор, назначается хранилищем
	Title   string `json:"title"`   // Заголовок
	Content string `json:"content"` // Текст публикации
	Author  string `json:"author"`  // Имя автора (username)
	Status  string `json:"status"`  // Статус, например draft или published
	Type    string `json:"type"`    // Тип публикации
}

// PostPatch описывает частичное обновление публикации.
// Нулевой указатель означает «поле не менять».
type PostPatch struct {
	Title   *string
	Content *string
	Status  *string
	Type    *string
}
