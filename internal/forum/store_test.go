package forum

import (
	"context"
	"testing"
	"time"

	"github.com/mauv0809/swiss-forum/internal/database"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestDB creates a forum store on a fresh in-memory database with a
// clock that advances one minute per post.
func setupTestDB(t *testing.T) (*store, func()) {
	t.Helper()

	db, teardown, err := database.InitDB(":memory:", "", "")
	require.NoError(t, err)

	clock := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	s := NewStore(db).(*store)
	s.now = func() time.Time {
		clock = clock.Add(time.Minute)
		return clock
	}
	return s, teardown
}

func TestAddAndGetPosts(t *testing.T) {
	s, teardown := setupTestDB(t)
	defer teardown()
	ctx := context.Background()

	posts, err := s.GetAllPosts(ctx)
	require.NoError(t, err)
	assert.Empty(t, posts)

	first, err := s.AddPost(ctx, "first!")
	require.NoError(t, err)
	assert.NotEmpty(t, first.ID)

	_, err = s.AddPost(ctx, "second")
	require.NoError(t, err)

	posts, err = s.GetAllPosts(ctx)
	require.NoError(t, err)
	require.Len(t, posts, 2)
	assert.Equal(t, "second", posts[0].Content, "newest post comes first")
	assert.Equal(t, "first!", posts[1].Content)
	assert.Equal(t, first.Time, posts[1].Time)
}

func TestAddPost_StoresContentVerbatim(t *testing.T) {
	s, teardown := setupTestDB(t)
	defer teardown()
	ctx := context.Background()

	content := `'); DELETE FROM posts; --`
	_, err := s.AddPost(ctx, "keep me")
	require.NoError(t, err)
	_, err = s.AddPost(ctx, content)
	require.NoError(t, err)

	posts, err := s.GetAllPosts(ctx)
	require.NoError(t, err)
	require.Len(t, posts, 2)
	assert.Equal(t, content, posts[0].Content)
}

func TestAddPost_Empty(t *testing.T) {
	s, teardown := setupTestDB(t)
	defer teardown()

	_, err := s.AddPost(context.Background(), " \n\t")
	assert.ErrorIs(t, err, ErrEmptyPost)
}

func TestDeletePosts(t *testing.T) {
	s, teardown := setupTestDB(t)
	defer teardown()
	ctx := context.Background()

	_, err := s.AddPost(ctx, "hello")
	require.NoError(t, err)
	require.NoError(t, s.DeletePosts(ctx))

	posts, err := s.GetAllPosts(ctx)
	require.NoError(t, err)
	assert.Empty(t, posts)
}
