package service

import (
	"Atelier/internal/model"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func seedPost(t *testing.T, repo *fakePostRepo, owner primitive.ObjectID) *model.Post {
	t.Helper()
	post := &model.Post{UserID: owner, Title: "hello"}
	require.NoError(t, repo.Create(context.Background(), post))
	return post
}

func TestToggleLikeIsAnInvolution(t *testing.T) {
	repo := newFakePostRepo()
	svc := NewPostActionService(repo)
	ctx := context.Background()

	owner := primitive.NewObjectID()
	liker := primitive.NewObjectID()
	post := seedPost(t, repo, owner)

	likes, err := svc.ToggleLike(ctx, post.ID.Hex(), liker.Hex())
	require.NoError(t, err)
	assert.Equal(t, []string{liker.Hex()}, likes)

	likes, err = svc.ToggleLike(ctx, post.ID.Hex(), liker.Hex())
	require.NoError(t, err)
	assert.Empty(t, likes)
}

func TestToggleLikeKeepsOtherUsers(t *testing.T) {
	repo := newFakePostRepo()
	svc := NewPostActionService(repo)
	ctx := context.Background()

	post := seedPost(t, repo, primitive.NewObjectID())
	u1 := primitive.NewObjectID()
	u2 := primitive.NewObjectID()

	_, err := svc.ToggleLike(ctx, post.ID.Hex(), u1.Hex())
	require.NoError(t, err)
	likes, err := svc.ToggleLike(ctx, post.ID.Hex(), u2.Hex())
	require.NoError(t, err)
	assert.Len(t, likes, 2)

	// u1 取消后 u2 保留
	likes, err = svc.ToggleLike(ctx, post.ID.Hex(), u1.Hex())
	require.NoError(t, err)
	assert.Equal(t, []string{u2.Hex()}, likes)

	count, err := svc.GetLikeCount(ctx, post.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestToggleLikeUnknownPost(t *testing.T) {
	svc := NewPostActionService(newFakePostRepo())
	_, err := svc.ToggleLike(context.Background(), primitive.NewObjectID().Hex(), primitive.NewObjectID().Hex())
	assert.ErrorIs(t, err, ErrPostNotFound)
}

func TestAddCommentAppendsInOrder(t *testing.T) {
	repo := newFakePostRepo()
	svc := NewPostActionService(repo)
	ctx := context.Background()

	post := seedPost(t, repo, primitive.NewObjectID())

	comments, err := svc.AddComment(ctx, post.ID.Hex(), "alice", "first")
	require.NoError(t, err)
	require.Len(t, comments, 1)

	comments, err = svc.AddComment(ctx, post.ID.Hex(), "bob", "second")
	require.NoError(t, err)
	require.Len(t, comments, 2)
	assert.Equal(t, "first", comments[0].Text)
	assert.Equal(t, "alice", comments[0].Author)
	assert.Equal(t, "second", comments[1].Text)
	assert.Equal(t, "bob", comments[1].Author)
	assert.False(t, comments[0].CreatedAt.IsZero())
}

func TestAddCommentRejectsBlankText(t *testing.T) {
	repo := newFakePostRepo()
	svc := NewPostActionService(repo)
	post := seedPost(t, repo, primitive.NewObjectID())

	_, err := svc.AddComment(context.Background(), post.ID.Hex(), "alice", "   ")
	assert.ErrorIs(t, err, ErrCommentEmpty)
	assert.Empty(t, post.Comments)
}
