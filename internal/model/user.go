package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User 账号凭据，仅注册时创建，级联删除时移除
type User struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name      string             `bson:"name" json:"name"`
	Email     string             `bson:"email" json:"email"`
	Password  string             `bson:"password" json:"-"` // bcrypt 哈希，永不下发
	Role      string             `bson:"role" json:"role"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
}

// IsAdmin 角色判定
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// ValidRole 校验角色枚举值
func ValidRole(role string) bool {
	return role == RoleUser || role == RoleAdmin
}
