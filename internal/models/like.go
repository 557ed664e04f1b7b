package models

// Like представляет связь «пользователь отметил публикацию».
// Для любой пары (PostID, Username) существует не более одной записи.
type Like struct {
	PostID   int    `json:"post_id"`
	Username string `json:"username"`
}

// LikeSummary — результат операции like/unlike: состояние пары
// и актуальное количество отметок публикации.
type LikeSummary struct {
	PostID   int    `json:"post_id"`
	Username string `json:"username"`
	Liked    bool   `json:"liked"`
	Count    int    `json:"count"`
}
