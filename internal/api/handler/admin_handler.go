package handler

import (
	"Atelier/internal/api/dto"
	"Atelier/internal/pkg/response"
	"Atelier/internal/service"

	"github.com/gin-gonic/gin"
)

type AdminHandler struct {
	userSvc  service.UserService
	adminSvc service.AdminService
	postSvc  service.PostService
}

func NewAdminHandler(userSvc service.UserService, adminSvc service.AdminService, postSvc service.PostService) *AdminHandler {
	return &AdminHandler{
		userSvc:  userSvc,
		adminSvc: adminSvc,
		postSvc:  postSvc,
	}
}

// Login 管理员登录，非管理员账号返回 403
func (s *AdminHandler) Login(c *gin.Context) {
	var loginDTO dto.CredentialDTO
	err := c.ShouldBind(&loginDTO)
	if err != nil {
		response.Error(c, err)
		return
	}
	result, err := s.userSvc.AdminLogin(c.Request.Context(), &loginDTO)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

func (s *AdminHandler) ListPosts(c *gin.Context) {
	posts, err := s.adminSvc.ListAllPosts(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, posts)
}

func (s *AdminHandler) GetPost(c *gin.Context) {
	postDTO, err := s.postSvc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, postDTO)
}

func (s *AdminHandler) ListProfiles(c *gin.Context) {
	profiles, err := s.adminSvc.ListAllProfiles(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, profiles)
}

// UpdateRole 按请求值设置用户角色
func (s *AdminHandler) UpdateRole(c *gin.Context) {
	var roleDTO dto.RoleUpdateDTO
	err := c.ShouldBind(&roleDTO)
	if err != nil {
		response.Error(c, err)
		return
	}
	userDTO, err := s.adminSvc.PromoteRole(c.Request.Context(), roleDTO.ID, roleDTO.Role)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, userDTO)
}

// DeleteProfile 级联删除：帖子、档案、账号
func (s *AdminHandler) DeleteProfile(c *gin.Context) {
	result, err := s.adminSvc.DeleteProfileCascade(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}
