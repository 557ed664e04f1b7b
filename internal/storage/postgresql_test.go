package storage

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/social-feed/internal/models"
)

func newMockStorage(t *testing.T) (*Storage, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return &Storage{DB: db}, mock
}

func TestStorage_SaveUser(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		s, mock := newMockStorage(t)
		mock.ExpectExec(regexp.QuoteMeta("INSERT INTO users")).
			WithArgs("alice", "hash", "", "", []byte("null")).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := s.SaveUser(context.Background(), models.User{Username: "alice", PasswordHash: "hash"})
		require.NoError(t, err)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("duplicate username", func(t *testing.T) {
		s, mock := newMockStorage(t)
		mock.ExpectExec(regexp.QuoteMeta("INSERT INTO users")).
			WithArgs("alice", "hash", "", "", []byte("null")).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := s.SaveUser(context.Background(), models.User{Username: "alice", PasswordHash: "hash"})
		require.Error(t, err)
		assert.True(t, errors.Is(err, models.ErrUserExists))
	})
}

func TestStorage_GetUserByUsername(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		s, mock := newMockStorage(t)
		rows := sqlmock.NewRows([]string{"username", "password_hash", "date_of_birth", "image", "extra"}).
			AddRow("alice", "hash", "01-01-1990", "avatar.png", []byte(`{"bio":"hi"}`))
		mock.ExpectQuery(regexp.QuoteMeta("SELECT username, password_hash, date_of_birth, image, extra")).
			WithArgs("alice").
			WillReturnRows(rows)

		user, err := s.GetUserByUsername(context.Background(), "alice")
		require.NoError(t, err)
		assert.Equal(t, "alice", user.Username)
		assert.Equal(t, "hi", user.Extra["bio"])
	})

	t.Run("not found", func(t *testing.T) {
		s, mock := newMockStorage(t)
		mock.ExpectQuery(regexp.QuoteMeta("SELECT username, password_hash, date_of_birth, image, extra")).
			WithArgs("ghost").
			WillReturnRows(sqlmock.NewRows([]string{"username", "password_hash", "date_of_birth", "image", "extra"}))

		user, err := s.GetUserByUsername(context.Background(), "ghost")
		require.Error(t, err)
		assert.Nil(t, user)
		assert.True(t, errors.Is(err, models.ErrUserNotFound))
	})
}

func TestStorage_DeletePost(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		s, mock := newMockStorage(t)
		mock.ExpectExec(regexp.QuoteMeta("DELETE FROM posts WHERE id = $1")).
			WithArgs(7).
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, s.DeletePost(context.Background(), 7))
	})

	t.Run("not found", func(t *testing.T) {
		s, mock := newMockStorage(t)
		mock.ExpectExec(regexp.QuoteMeta("DELETE FROM posts WHERE id = $1")).
			WithArgs(7).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := s.DeletePost(context.Background(), 7)
		assert.True(t, errors.Is(err, models.ErrPostNotFound))
	})
}

func TestStorage_AddLike(t *testing.T) {
	t.Run("success returns count", func(t *testing.T) {
		s, mock := newMockStorage(t)
		mock.ExpectExec(regexp.QuoteMeta("INSERT INTO likes")).
			WithArgs(1, "bob").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM likes WHERE post_id = $1")).
			WithArgs(1).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

		count, err := s.AddLike(context.Background(), 1, "bob")
		require.NoError(t, err)
		assert.Equal(t, 3, count)
	})

	t.Run("duplicate pair", func(t *testing.T) {
		s, mock := newMockStorage(t)
		mock.ExpectExec(regexp.QuoteMeta("INSERT INTO likes")).
			WithArgs(1, "bob").
			WillReturnResult(sqlmock.NewResult(0, 0))

		_, err := s.AddLike(context.Background(), 1, "bob")
		require.Error(t, err)
		assert.True(t, errors.Is(err, models.ErrAlreadyLiked))
	})

	t.Run("post deleted concurrently", func(t *testing.T) {
		s, mock := newMockStorage(t)
		// внешний ключ отклоняет вставку после каскадного удаления публикации
		mock.ExpectExec(regexp.QuoteMeta("INSERT INTO likes")).
			WithArgs(1, "bob").
			WillReturnError(&pgconn.PgError{Code: pgerrcode.ForeignKeyViolation})

		_, err := s.AddLike(context.Background(), 1, "bob")
		require.Error(t, err)
		assert.True(t, errors.Is(err, models.ErrPostNotFound))
	})
}

func TestStorage_RemoveLike(t *testing.T) {
	t.Run("not liked", func(t *testing.T) {
		s, mock := newMockStorage(t)
		mock.ExpectExec(regexp.QuoteMeta("DELETE FROM likes WHERE post_id = $1 AND username = $2")).
			WithArgs(1, "bob").
			WillReturnResult(sqlmock.NewResult(0, 0))

		_, err := s.RemoveLike(context.Background(), 1, "bob")
		require.Error(t, err)
		assert.True(t, errors.Is(err, models.ErrNotLiked))
	})
}

func TestStorage_ListByPost(t *testing.T) {
	s, mock := newMockStorage(t)
	rows := sqlmock.NewRows([]string{"username"}).
		AddRow("alice").
		AddRow("carol").
		AddRow("bob")
	mock.ExpectQuery(regexp.QuoteMeta("SELECT username FROM likes")).
		WithArgs(1).
		WillReturnRows(rows)

	users, err := s.ListByPost(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"alice", "carol", "bob"}, users)
}
