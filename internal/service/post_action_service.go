package service

import (
	"Atelier/internal/api/dto"
	"Atelier/internal/model"
	"Atelier/internal/repository"
	"context"
	"errors"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
)

type PostActionService interface {
	ToggleLike(ctx context.Context, postID, userID string) ([]string, error)
	AddComment(ctx context.Context, postID, authorName, text string) ([]*dto.CommentDTO, error)
	GetLikeCount(ctx context.Context, postID string) (int, error)
}

type postActionServiceImpl struct {
	postRepo repository.PostRepo
}

func NewPostActionService(postRepo repository.PostRepo) PostActionService {
	return &postActionServiceImpl{
		postRepo: postRepo,
	}
}

// ToggleLike 纯开关语义：在集合中则移除，不在则加入。
// 元素级原子更新（$addToSet/$pull），跨用户并发互不丢失；
// 返回提交后的点赞集合，以服务端为准。
func (s *postActionServiceImpl) ToggleLike(ctx context.Context, postID, userID string) ([]string, error) {
	pid, ok := parseID(postID)
	if !ok {
		return nil, ErrPostNotFound
	}
	uid, ok := parseID(userID)
	if !ok {
		return nil, ErrUserNotFound
	}

	post, err := s.postRepo.GetByID(ctx, pid)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrPostNotFound
	}

	if post.LikedBy(uid) {
		err = s.postRepo.RemoveLike(ctx, pid, uid)
	} else {
		err = s.postRepo.AddLike(ctx, pid, uid)
	}
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}

	updated, err := s.postRepo.GetByID(ctx, pid)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, ErrPostNotFound
	}

	likes := make([]string, 0, len(updated.Likes))
	for _, id := range updated.Likes {
		likes = append(likes, id.Hex())
	}
	return likes, nil
}

// AddComment 追加评论并返回完整评论列表，便于调用方整体刷新视图
func (s *postActionServiceImpl) AddComment(ctx context.Context, postID, authorName, text string) ([]*dto.CommentDTO, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrCommentEmpty
	}

	pid, ok := parseID(postID)
	if !ok {
		return nil, ErrPostNotFound
	}

	post, err := s.postRepo.GetByID(ctx, pid)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrPostNotFound
	}

	comment := model.Comment{
		Author:    authorName,
		Text:      text,
		CreatedAt: time.Now(),
	}
	if err = s.postRepo.AppendComment(ctx, pid, comment); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}

	updated, err := s.postRepo.GetByID(ctx, pid)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, ErrPostNotFound
	}

	return toCommentDTOs(updated.Comments), nil
}

func (s *postActionServiceImpl) GetLikeCount(ctx context.Context, postID string) (int, error) {
	pid, ok := parseID(postID)
	if !ok {
		return 0, ErrPostNotFound
	}

	post, err := s.postRepo.GetByID(ctx, pid)
	if err != nil {
		return 0, err
	}
	if post == nil {
		return 0, ErrPostNotFound
	}
	return len(post.Likes), nil
}
