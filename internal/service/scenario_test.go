package service

import (
	"Atelier/internal/api/dto"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 完整用户链路：注册 → 发帖 → 点赞开关 → 评论
func TestUserJourney(t *testing.T) {
	setTestConfig(t)
	userRepo := newFakeUserRepo()
	postRepo := newFakePostRepo()
	storage := newFakeStorage()

	userSvc := NewUserService(userRepo)
	postSvc := NewPostService(postRepo, storage)
	actionSvc := NewPostActionService(postRepo)
	ctx := context.Background()

	alice, err := userSvc.Register(ctx, &dto.RegisterDTO{
		Name:     "alice",
		Email:    "a@x.com",
		Password: "Secret!1",
	})
	require.NoError(t, err)
	require.NotEmpty(t, alice.Token)

	post, err := postSvc.Create(ctx, alice.ID, &dto.PostFormDTO{
		Title:       "Hi",
		Description: "World",
	}, nil)
	require.NoError(t, err)
	assert.Empty(t, post.MediaURLs)

	likes, err := actionSvc.ToggleLike(ctx, post.ID, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{alice.ID}, likes)

	likes, err = actionSvc.ToggleLike(ctx, post.ID, alice.ID)
	require.NoError(t, err)
	assert.Empty(t, likes)

	comments, err := actionSvc.AddComment(ctx, post.ID, "alice", "nice")
	require.NoError(t, err)
	require.Len(t, comments, 1)
	assert.Equal(t, "nice", comments[0].Text)
}
