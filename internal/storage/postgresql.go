// Package storage реализует хранилище данных на основе PostgreSQL
// для пользователей, публикаций и отметок «нравится». Реализует те же
// контракты репозиториев, что и хранилища в памяти, и используется,
// когда в конфигурации задана строка подключения.
package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	// Регистрация драйвера pgx для использования с database/sql.
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/magabrotheeeer/social-feed/internal/models"
)

// Storage инкапсулирует соединение с базой данных PostgreSQL
// и реализует методы работы с пользователями, публикациями и отметками.
type Storage struct {
	DB *sql.DB
}

// New создаёт подключение к PostgreSQL.
func New(storageConnectionString string) (*Storage, error) {
	const op = "storage.New"

	db, err := sql.Open("pgx", storageConnectionString)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err = db.PingContext(context.Background()); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Storage{
		DB: db,
	}, nil
}

// ===== USER METHODS =====

// SaveUser сохраняет нового пользователя. Уникальность username
// обеспечивается ограничением таблицы.
func (s *Storage) SaveUser(ctx context.Context, user models.User) error {
	const op = "storage.SaveUser"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	extra, err := json.Marshal(user.Extra)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	query := `INSERT INTO users (username, password_hash, date_of_birth, image, extra)
			  VALUES ($1, $2, $3, $4, $5)
			  ON CONFLICT (username) DO NOTHING`
	result, err := s.DB.ExecContext(ctx, query,
		user.Username, user.PasswordHash, user.DateOfBirth, user.Image, extra)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("%s: %w", op, models.ErrUserExists)
	}
	return nil
}

// GetUserByUsername возвращает пользователя по его username.
func (s *Storage) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	const op = "storage.GetUserByUsername"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT username, password_hash, date_of_birth, image, extra
			  FROM users
			  WHERE username = $1`
	u := &models.User{}
	var extra []byte
	row := s.DB.QueryRowContext(ctx, query, username)
	if err := row.Scan(&u.Username, &u.PasswordHash, &u.DateOfBirth, &u.Image, &extra); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, models.ErrUserNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if len(extra) > 0 {
		if err := json.Unmarshal(extra, &u.Extra); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
	}
	return u, nil
}

// UpdateUser применяет patch к записи пользователя и возвращает результат.
// Username неизменяем. Дополнительные поля профиля объединяются с уже
// сохранёнными.
func (s *Storage) UpdateUser(ctx context.Context, username string, patch models.UserPatch) (*models.User, error) {
	const op = "storage.UpdateUser"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var extra []byte
	if len(patch.Extra) > 0 {
		var err error
		extra, err = json.Marshal(patch.Extra)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
	}

	query := `UPDATE users
			  SET date_of_birth = COALESCE($1, date_of_birth),
			      image = COALESCE($2, image),
			      extra = CASE WHEN $3::jsonb IS NULL THEN extra ELSE extra || $3::jsonb END
			  WHERE username = $4
			  RETURNING username, password_hash, date_of_birth, image, extra`
	u := &models.User{}
	var gotExtra []byte
	row := s.DB.QueryRowContext(ctx, query, patch.DateOfBirth, patch.Image, extra, username)
	if err := row.Scan(&u.Username, &u.PasswordHash, &u.DateOfBirth, &u.Image, &gotExtra); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, models.ErrUserNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if len(gotExtra) > 0 {
		if err := json.Unmarshal(gotExtra, &u.Extra); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
	}
	return u, nil
}

// UpdatePassword заменяет хэш пароля пользователя.
func (s *Storage) UpdatePassword(ctx context.Context, username, passwordHash string) error {
	const op = "storage.UpdatePassword"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE users SET password_hash = $1 WHERE username = $2`
	result, err := s.DB.ExecContext(ctx, query, passwordHash, username)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("%s: %w", op, models.ErrUserNotFound)
	}
	return nil
}

// ===== POST METHODS =====

// CreatePost вставляет новую публикацию и возвращает её ID.
func (s *Storage) CreatePost(ctx context.Context, post models.Post) (int, error) {
	const op = "storage.CreatePost"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO posts (title, content, author, status, type)
			  VALUES ($1, $2, $3, $4, $5)
			  RETURNING id`
	var newID int
	err := s.DB.QueryRowContext(ctx, query,
		post.Title, post.Content, post.Author, post.Status, post.Type).Scan(&newID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// GetPost возвращает публикацию по её ID.
func (s *Storage) GetPost(ctx context.Context, id int) (*models.Post, error) {
	const op = "storage.GetPost"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, title, content, author, status, type
			  FROM posts WHERE id = $1`
	row := s.DB.QueryRowContext(ctx, query, id)

	var result models.Post
	if err := row.Scan(&result.ID, &result.Title, &result.Content,
		&result.Author, &result.Status, &result.Type); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, models.ErrPostNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &result, nil
}

// UpdatePost применяет patch к публикации и возвращает обновлённую запись.
func (s *Storage) UpdatePost(ctx context.Context, id int, patch models.PostPatch) (*models.Post, error) {
	const op = "storage.UpdatePost"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE posts
			  SET title = COALESCE($1, title),
			      content = COALESCE($2, content),
			      status = COALESCE($3, status),
			      type = COALESCE($4, type)
			  WHERE id = $5
			  RETURNING id, title, content, author, status, type`
	row := s.DB.QueryRowContext(ctx, query,
		patch.Title, patch.Content, patch.Status, patch.Type, id)

	var result models.Post
	if err := row.Scan(&result.ID, &result.Title, &result.Content,
		&result.Author, &result.Status, &result.Type); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, models.ErrPostNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &result, nil
}

// DeletePost удаляет публикацию по ID.
func (s *Storage) DeletePost(ctx context.Context, id int) error {
	const op = "storage.DeletePost"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `DELETE FROM posts WHERE id = $1`
	result, err := s.DB.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("%s: %w", op, models.ErrPostNotFound)
	}
	return nil
}

// ListPosts возвращает все публикации, упорядоченные по ID.
func (s *Storage) ListPosts(ctx context.Context) ([]*models.Post, error) {
	const op = "storage.ListPosts"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, title, content, author, status, type
			  FROM posts
			  ORDER BY id`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Post
	for rows.Next() {
		var p models.Post
		if err = rows.Scan(&p.ID, &p.Title, &p.Content, &p.Author, &p.Status, &p.Type); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &p)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// ===== LIKE METHODS =====

// AddLike добавляет пару (postID, username) и возвращает новое число
// отметок публикации. Уникальность пары обеспечивается ограничением
// таблицы, повторная отметка — ошибка. Внешний ключ likes.post_id
// закрывает гонку с удалением публикации: вставка после каскада
// падает с нарушением ссылочной целостности — models.ErrPostNotFound.
func (s *Storage) AddLike(ctx context.Context, postID int, username string) (int, error) {
	const op = "storage.AddLike"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO likes (post_id, username)
			  VALUES ($1, $2)
			  ON CONFLICT (post_id, username) DO NOTHING`
	result, err := s.DB.ExecContext(ctx, query, postID, username)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.ForeignKeyViolation {
			return 0, fmt.Errorf("%s: %w", op, models.ErrPostNotFound)
		}
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	if rowsAffected == 0 {
		return 0, fmt.Errorf("%s: %w", op, models.ErrAlreadyLiked)
	}
	return s.countLikes(ctx, postID)
}

// RemoveLike удаляет пару (postID, username) и возвращает оставшееся
// число отметок.
func (s *Storage) RemoveLike(ctx context.Context, postID int, username string) (int, error) {
	const op = "storage.RemoveLike"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `DELETE FROM likes WHERE post_id = $1 AND username = $2`
	result, err := s.DB.ExecContext(ctx, query, postID, username)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	if rowsAffected == 0 {
		return 0, fmt.Errorf("%s: %w", op, models.ErrNotLiked)
	}
	return s.countLikes(ctx, postID)
}

func (s *Storage) countLikes(ctx context.Context, postID int) (int, error) {
	const op = "storage.countLikes"

	var count int
	err := s.DB.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM likes WHERE post_id = $1`, postID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return count, nil
}

// ListByPost возвращает имена пользователей, отметивших публикацию,
// в порядке появления отметок.
func (s *Storage) ListByPost(ctx context.Context, postID int) ([]string, error) {
	const op = "storage.ListByPost"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT username FROM likes
			  WHERE post_id = $1
			  ORDER BY id`
	rows, err := s.DB.QueryContext(ctx, query, postID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	result := make([]string, 0)
	for rows.Next() {
		var username string
		if err = rows.Scan(&username); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, username)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// ListAll возвращает полный список связей для административной выдачи.
func (s *Storage) ListAll(ctx context.Context) ([]*models.Like, error) {
	const op = "storage.ListAll"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT post_id, username FROM likes
			  ORDER BY post_id, id`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Like
	for rows.Next() {
		var l models.Like
		if err = rows.Scan(&l.PostID, &l.Username); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &l)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// RemoveLikesByPost удаляет все отметки публикации и возвращает их
// число. Вызывается каскадом при удалении публикации.
func (s *Storage) RemoveLikesByPost(ctx context.Context, postID int) (int, error) {
	const op = "storage.RemoveLikesByPost"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `DELETE FROM likes WHERE post_id = $1`
	result, err := s.DB.ExecContext(ctx, query, postID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}
