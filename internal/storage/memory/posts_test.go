package memory

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/social-feed/internal/models"
)

func TestPostStore_CreateAndGet(t *testing.T) {
	ctx := context.Background()
	store := NewPostStore(nil)

	id, err := store.CreatePost(ctx, models.Post{
		Title:   "first",
		Content: "hello",
		Author:  "alice",
		Status:  "published",
		Type:    "text",
	})
	require.NoError(t, err)
	assert.Equal(t, 1, id)

	got, err := store.GetPost(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "first", got.Title)
	assert.Equal(t, "alice", got.Author)
}

func TestPostStore_IDsAboveSeed(t *testing.T) {
	ctx := context.Background()
	seed := []models.Post{
		{ID: 3, Title: "seeded", Author: "alice"},
		{ID: 7, Title: "seeded too", Author: "bob"},
	}
	store := NewPostStore(seed)

	id, err := store.CreatePost(ctx, models.Post{Title: "new", Author: "alice"})
	require.NoError(t, err)
	assert.Equal(t, 8, id, "counter starts above any pre-seeded id")
}

func TestPostStore_UniqueMonotonicIDs(t *testing.T) {
	ctx := context.Background()
	store := NewPostStore(nil)

	const n = 50
	ids := make(chan int, n)
	var wg sync.WaitGroup
	for range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			id, err := store.CreatePost(ctx, models.Post{Title: "p", Author: "alice"})
			assert.NoError(t, err)
			ids <- id
		}()
	}
	wg.Wait()
	close(ids)

	seen := make(map[int]bool)
	for id := range ids {
		assert.False(t, seen[id], "id %d assigned twice", id)
		seen[id] = true
	}
	assert.Len(t, seen, n)
}

func TestPostStore_UpdateMergesPatch(t *testing.T) {
	ctx := context.Background()
	store := NewPostStore(nil)
	id, err := store.CreatePost(ctx, models.Post{
		Title:   "title",
		Content: "content",
		Author:  "alice",
		Status:  "draft",
		Type:    "text",
	})
	require.NoError(t, err)

	newTitle := "new title"
	updated, err := store.UpdatePost(ctx, id, models.PostPatch{Title: &newTitle})
	require.NoError(t, err)

	assert.Equal(t, "new title", updated.Title)
	assert.Equal(t, "content", updated.Content)
	assert.Equal(t, "draft", updated.Status)
	assert.Equal(t, "alice", updated.Author)
}

func TestPostStore_UpdateUnknown(t *testing.T) {
	store := NewPostStore(nil)

	_, err := store.UpdatePost(context.Background(), 99, models.PostPatch{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, models.ErrPostNotFound))
}

func TestPostStore_Delete(t *testing.T) {
	ctx := context.Background()
	store := NewPostStore(nil)
	id, err := store.CreatePost(ctx, models.Post{Title: "gone soon", Author: "alice"})
	require.NoError(t, err)

	require.NoError(t, store.DeletePost(ctx, id))

	_, err = store.GetPost(ctx, id)
	assert.True(t, errors.Is(err, models.ErrPostNotFound))

	err = store.DeletePost(ctx, id)
	assert.True(t, errors.Is(err, models.ErrPostNotFound))
}

func TestPostStore_ListOrderedByID(t *testing.T) {
	ctx := context.Background()
	store := NewPostStore(nil)
	for _, title := range []string{"a", "b", "c"} {
		_, err := store.CreatePost(ctx, models.Post{Title: title, Author: "alice"})
		require.NoError(t, err)
	}

	posts, err := store.ListPosts(ctx)
	require.NoError(t, err)
	require.Len(t, posts, 3)
	assert.Equal(t, "a", posts[0].Title)
	assert.Equal(t, "b", posts[1].Title)
	assert.Equal(t, "c", posts[2].Title)
}
