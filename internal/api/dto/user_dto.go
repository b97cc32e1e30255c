package dto

import "time"

// RegisterDTO 注册
type RegisterDTO struct {
	Name     string `json:"name" binding:"required" validate:"min=1,max=50"`
	Email    string `json:"email" binding:"required,email" validate:"max=254"`
	Password string `json:"password" binding:"required" validate:"min=6,max=72"`
}

// CredentialDTO 登录凭证
type CredentialDTO struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// AuthResultDTO 注册/登录结果，Token 随公开字段一并返回
type AuthResultDTO struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role,omitempty"`
	Token string `json:"token"`
}

// UserDTO 用户公开信息
type UserDTO struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// RoleUpdateDTO 管理员修改角色
type RoleUpdateDTO struct {
	ID   string `json:"id" binding:"required"`
	Role string `json:"role" binding:"required"`
}
