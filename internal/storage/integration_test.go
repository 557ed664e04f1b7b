//go:build integration

package storage

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/docker/go-connections/nat"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/magabrotheeeer/social-feed/internal/migrations"
	"github.com/magabrotheeeer/social-feed/internal/models"
)

func setupStorage(t *testing.T) *Storage {
	t.Helper()
	ctx := context.Background()

	container, err := tcpostgres.Run(ctx, "postgres:16-alpine",
		tcpostgres.WithDatabase("socialfeed"),
		tcpostgres.WithUsername("test"),
		tcpostgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForListeningPort(nat.Port("5432/tcp")).WithStartupTimeout(60*time.Second),
		),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(ctx) })

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	s, err := New(connStr)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.DB.Close() })

	require.NoError(t, migrations.Run(s.DB, "../../migrations"))
	return s
}

func TestStorage_Integration_UserLifecycle(t *testing.T) {
	ctx := context.Background()
	s := setupStorage(t)

	require.NoError(t, s.SaveUser(ctx, models.User{Username: "alice", PasswordHash: "hash"}))

	err := s.SaveUser(ctx, models.User{Username: "alice", PasswordHash: "other"})
	assert.True(t, errors.Is(err, models.ErrUserExists))

	dob := "01-01-1990"
	updated, err := s.UpdateUser(ctx, "alice", models.UserPatch{
		DateOfBirth: &dob,
		Extra:       map[string]string{"bio": "hello"},
	})
	require.NoError(t, err)
	assert.Equal(t, "01-01-1990", updated.DateOfBirth)
	assert.Equal(t, "hello", updated.Extra["bio"])

	require.NoError(t, s.UpdatePassword(ctx, "alice", "newhash"))
	got, err := s.GetUserByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, "newhash", got.PasswordHash)
}

func TestStorage_Integration_LikeToggleAndCascade(t *testing.T) {
	ctx := context.Background()
	s := setupStorage(t)

	id, err := s.CreatePost(ctx, models.Post{Title: "t", Content: "c", Author: "alice"})
	require.NoError(t, err)

	count, err := s.AddLike(ctx, id, "bob")
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	_, err = s.AddLike(ctx, id, "bob")
	assert.True(t, errors.Is(err, models.ErrAlreadyLiked))

	count, err = s.AddLike(ctx, id, "carol")
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	users, err := s.ListByPost(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, []string{"bob", "carol"}, users)

	removed, err := s.RemoveLikesByPost(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 2, removed)

	require.NoError(t, s.DeletePost(ctx, id))
	_, err = s.GetPost(ctx, id)
	assert.True(t, errors.Is(err, models.ErrPostNotFound))
}
