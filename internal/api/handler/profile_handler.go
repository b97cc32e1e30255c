package handler

import (
	"Atelier/internal/api/dto"
	"Atelier/internal/pkg/consts"
	"Atelier/internal/pkg/response"
	"Atelier/internal/pkg/util"
	"Atelier/internal/service"
	"strings"

	"github.com/gin-gonic/gin"
)

type ProfileHandler struct {
	profileSvc service.ProfileService
}

func NewProfileHandler(profileSvc service.ProfileService) *ProfileHandler {
	return &ProfileHandler{profileSvc: profileSvc}
}

func (s *ProfileHandler) Create(c *gin.Context) {
	userID := c.GetString(consts.CtxUserID)
	var createDTO dto.ProfileCreateDTO
	err := c.ShouldBind(&createDTO)
	if err != nil {
		response.Error(c, err)
		return
	}
	if err = util.ValidateDTO(&createDTO); err != nil {
		response.Error(c, err)
		return
	}
	profileDTO, err := s.profileSvc.Create(c.Request.Context(), userID, &createDTO)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, profileDTO)
}

func (s *ProfileHandler) GetOwn(c *gin.Context) {
	userID := c.GetString(consts.CtxUserID)
	profileDTO, err := s.profileSvc.GetOwn(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, profileDTO)
}

func (s *ProfileHandler) Update(c *gin.Context) {
	userID := c.GetString(consts.CtxUserID)
	var updateDTO dto.ProfileUpdateDTO
	err := c.ShouldBind(&updateDTO)
	if err != nil {
		response.Error(c, err)
		return
	}
	if err = util.ValidateDTO(&updateDTO); err != nil {
		response.Error(c, err)
		return
	}
	profileDTO, err := s.profileSvc.Update(c.Request.Context(), userID, &updateDTO)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, profileDTO)
}

func (s *ProfileHandler) UploadAvatar(c *gin.Context) {
	userID := c.GetString(consts.CtxUserID)
	fileHeader, err := c.FormFile("file")
	if err != nil || fileHeader == nil {
		response.Error(c, service.ErrFieldsMissing)
		return
	}

	reader, err := fileHeader.Open()
	if err != nil {
		response.Error(c, service.UnExpectedError)
		return
	}
	defer func() { _ = reader.Close() }()

	contentType, err := util.GetSafeContentType(reader)
	if err != nil {
		response.Error(c, service.UnExpectedError)
		return
	}
	if !strings.HasPrefix(contentType, consts.MimePrefixImage) {
		response.Error(c, service.ErrFileNotSupported)
		return
	}

	file := &service.MediaFile{
		Filename:    fileHeader.Filename,
		Size:        fileHeader.Size,
		ContentType: contentType,
		Reader:      reader,
	}
	profileDTO, err := s.profileSvc.UpdateAvatar(c.Request.Context(), userID, file)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, profileDTO)
}

// PublicProfile 任何登录用户可查看他人主页
func (s *ProfileHandler) PublicProfile(c *gin.Context) {
	userID := c.Param("user_id")
	publicDTO, err := s.profileSvc.GetPublicProfile(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, publicDTO)
}
