package handler

import (
	"Atelier/internal/api/dto"
	"Atelier/internal/pkg/consts"
	"Atelier/internal/pkg/response"
	"Atelier/internal/service"

	"github.com/gin-gonic/gin"
)

type PostActionHandler struct {
	actionSvc service.PostActionService
}

func NewPostActionHandler(actionSvc service.PostActionService) *PostActionHandler {
	return &PostActionHandler{actionSvc: actionSvc}
}

// ToggleLike 点赞开关：已赞则取消，未赞则添加，返回最新点赞列表
func (s *PostActionHandler) ToggleLike(c *gin.Context) {
	userID := c.GetString(consts.CtxUserID)
	likes, err := s.actionSvc.ToggleLike(c.Request.Context(), c.Param("post_id"), userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{
		"likes":      likes,
		"like_count": len(likes),
	})
}

func (s *PostActionHandler) LikeCount(c *gin.Context) {
	count, err := s.actionSvc.GetLikeCount(c.Request.Context(), c.Param("post_id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"like_count": count})
}

// AddComment 评论作者取自 Token，不信任请求体
func (s *PostActionHandler) AddComment(c *gin.Context) {
	var createDTO dto.CommentCreateDTO
	err := c.ShouldBind(&createDTO)
	if err != nil {
		response.Error(c, err)
		return
	}
	author := c.GetString(consts.CtxUserName)
	comments, err := s.actionSvc.AddComment(c.Request.Context(), c.Param("id"), author, createDTO.Text)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, comments)
}
