package handler

import (
	"Atelier/internal/api/dto"
	"Atelier/internal/pkg/consts"
	"Atelier/internal/pkg/response"
	"Atelier/internal/pkg/util"
	"Atelier/internal/service"
	"mime/multipart"
	"strings"

	"github.com/gin-gonic/gin"
)

type PostHandler struct {
	postSvc service.PostService
}

func NewPostHandler(postSvc service.PostService) *PostHandler {
	return &PostHandler{postSvc: postSvc}
}

func (s *PostHandler) Create(c *gin.Context) {
	userID := c.GetString(consts.CtxUserID)
	var form dto.PostFormDTO
	err := c.ShouldBind(&form)
	if err != nil {
		response.Error(c, err)
		return
	}

	files, closeFiles, err := collectMediaFiles(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	defer closeFiles()

	postDTO, err := s.postSvc.Create(c.Request.Context(), userID, &form, files)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, postDTO)
}

func (s *PostHandler) Get(c *gin.Context) {
	postDTO, err := s.postSvc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, postDTO)
}

// List 当前用户自己的帖子，按创建时间倒序
func (s *PostHandler) List(c *gin.Context) {
	userID := c.GetString(consts.CtxUserID)
	posts, err := s.postSvc.ListByOwner(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, posts)
}

func (s *PostHandler) Update(c *gin.Context) {
	userID := c.GetString(consts.CtxUserID)
	s.update(c, userID, false)
}

// AdminUpdate 管理员编辑任意帖子
func (s *PostHandler) AdminUpdate(c *gin.Context) {
	userID := c.GetString(consts.CtxUserID)
	s.update(c, userID, true)
}

func (s *PostHandler) update(c *gin.Context, callerID string, isAdmin bool) {
	var updateDTO dto.PostUpdateDTO
	err := c.ShouldBind(&updateDTO)
	if err != nil {
		response.Error(c, err)
		return
	}

	files, closeFiles, err := collectMediaFiles(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	defer closeFiles()

	postID := c.Param("id")
	if postID == "" {
		postID = c.Param("post_id")
	}
	postDTO, err := s.postSvc.Update(c.Request.Context(), callerID, isAdmin, postID, &updateDTO, files)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, postDTO)
}

func (s *PostHandler) Delete(c *gin.Context) {
	userID := c.GetString(consts.CtxUserID)
	err := s.postSvc.Delete(c.Request.Context(), userID, false, c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

// AdminDelete 管理员删除任意帖子
func (s *PostHandler) AdminDelete(c *gin.Context) {
	userID := c.GetString(consts.CtxUserID)
	err := s.postSvc.Delete(c.Request.Context(), userID, true, c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

// View 读取帖子并累加浏览计数
func (s *PostHandler) View(c *gin.Context) {
	postDTO, views, err := s.postSvc.View(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{
		"post":  postDTO,
		"views": views,
	})
}

// collectMediaFiles 读取 multipart 表单的 files 字段并做 MIME 嗅探，
// 仅放行图片与视频；返回的 close 函数在服务调用结束后释放句柄
func collectMediaFiles(c *gin.Context) ([]*service.MediaFile, func(), error) {
	noop := func() {}

	form, err := c.MultipartForm()
	if err != nil {
		// 无文件的纯表单更新也合法
		return nil, noop, nil
	}

	headers := form.File["files"]
	if len(headers) == 0 {
		return nil, noop, nil
	}

	var readers []multipart.File
	closeAll := func() {
		for _, r := range readers {
			_ = r.Close()
		}
	}

	files := make([]*service.MediaFile, 0, len(headers))
	for _, header := range headers {
		reader, err := header.Open()
		if err != nil {
			closeAll()
			return nil, noop, service.UnExpectedError
		}
		readers = append(readers, reader)

		contentType, err := util.GetSafeContentType(reader)
		if err != nil {
			closeAll()
			return nil, noop, service.UnExpectedError
		}
		if !strings.HasPrefix(contentType, consts.MimePrefixImage) &&
			!strings.HasPrefix(contentType, consts.MimePrefixVideo) {
			closeAll()
			return nil, noop, service.ErrFileNotSupported
		}

		files = append(files, &service.MediaFile{
			Filename:    header.Filename,
			Size:        header.Size,
			ContentType: contentType,
			Reader:      reader,
		})
	}

	return files, closeAll, nil
}
