package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/luthfir/posts-api/internal/domain"
	"github.com/luthfir/posts-api/internal/repository/postgres"
	"github.com/luthfir/posts-api/internal/service"
	"github.com/luthfir/posts-api/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostService_CRUD(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repos := postgres.NewRepositories(testDB.DB)
	postService := service.NewPostService(repos.Post)
	ctx := context.Background()

	t.Run("empty list is not an error", func(t *testing.T) {
		testDB.Truncate(t)

		posts, err := postService.List(ctx)
		require.NoError(t, err)
		assert.Empty(t, posts)
	})

	t.Run("create then fetch round-trips", func(t *testing.T) {
		testDB.Truncate(t)
		owner, _ := testutil.NewUserBuilder().Build(t, testDB.DB)

		created, err := postService.Create(ctx, service.PostInput{Title: "Hi", Body: "First post"}, owner.ID)
		require.NoError(t, err)
		assert.Equal(t, owner.ID, created.UserID)

		fetched, err := postService.Get(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, created.ID, fetched.ID)
		assert.Equal(t, "Hi", fetched.Title)
		assert.Equal(t, "First post", fetched.Body)
		assert.Equal(t, owner.ID, fetched.UserID)
	})

	t.Run("list returns exactly the persisted set", func(t *testing.T) {
		testDB.Truncate(t)
		owner, _ := testutil.NewUserBuilder().Build(t, testDB.DB)

		first := testutil.CreatePost(t, testDB.DB, owner, "one", "body")
		second := testutil.CreatePost(t, testDB.DB, owner, "two", "body")

		posts, err := postService.List(ctx)
		require.NoError(t, err)
		require.Len(t, posts, 2)

		ids := []uuid.UUID{posts[0].ID, posts[1].ID}
		assert.Contains(t, ids, first.ID)
		assert.Contains(t, ids, second.ID)
	})

	t.Run("get missing post", func(t *testing.T) {
		testDB.Truncate(t)

		_, err := postService.Get(ctx, uuid.New())
		assert.ErrorIs(t, err, domain.ErrPostNotFound)
	})

	t.Run("update preserves the owner", func(t *testing.T) {
		testDB.Truncate(t)
		owner, _ := testutil.NewUserBuilder().Build(t, testDB.DB)
		post := testutil.CreatePost(t, testDB.DB, owner, "before", "old body")

		updated, err := postService.Update(ctx, post.ID, service.PostInput{Title: "after", Body: "new body"})
		require.NoError(t, err)
		assert.Equal(t, "after", updated.Title)
		assert.Equal(t, "new body", updated.Body)
		assert.Equal(t, owner.ID, updated.UserID)
	})

	t.Run("update missing post", func(t *testing.T) {
		testDB.Truncate(t)

		_, err := postService.Update(ctx, uuid.New(), service.PostInput{Title: "x", Body: "y"})
		assert.ErrorIs(t, err, domain.ErrPostNotFound)
	})

	t.Run("delete removes the post", func(t *testing.T) {
		testDB.Truncate(t)
		owner, _ := testutil.NewUserBuilder().Build(t, testDB.DB)
		post := testutil.CreatePost(t, testDB.DB, owner, "bye", "body")

		require.NoError(t, postService.Delete(ctx, post.ID))

		_, err := postService.Get(ctx, post.ID)
		assert.ErrorIs(t, err, domain.ErrPostNotFound)
	})

	t.Run("delete missing post", func(t *testing.T) {
		testDB.Truncate(t)

		err := postService.Delete(ctx, uuid.New())
		assert.ErrorIs(t, err, domain.ErrPostNotFound)
	})
}
