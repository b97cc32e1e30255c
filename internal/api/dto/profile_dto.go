package dto

import "time"

// ProfileCreateDTO 创建主页（注册后单独一步）
type ProfileCreateDTO struct {
	Bio         string            `json:"bio" validate:"max=500"`
	Skills      []string          `json:"skills" validate:"max=50,dive,max=50"`
	SocialLinks map[string]string `json:"social_links"`
}

// ProfileUpdateDTO 局部更新：nil 表示保持不变，空值表示写入空值
type ProfileUpdateDTO struct {
	Name        *string            `json:"name,omitempty"`
	Email       *string            `json:"email,omitempty"`
	Bio         *string            `json:"bio,omitempty" validate:"omitempty,max=500"`
	Skills      *[]string          `json:"skills,omitempty"`
	SocialLinks *map[string]string `json:"social_links,omitempty"`
}

// ProfileDTO 主页展示
type ProfileDTO struct {
	ID          string            `json:"id"`
	UserID      string            `json:"user_id"`
	Name        string            `json:"name"`
	Email       string            `json:"email"`
	Bio         string            `json:"bio"`
	Skills      []string          `json:"skills"`
	SocialLinks map[string]string `json:"social_links"`
	AvatarURL   string            `json:"avatar_url"`
	CreatedAt   time.Time         `json:"created_at"`
}

// PublicProfileDTO 公开主页 = 档案 + 该用户的帖子
type PublicProfileDTO struct {
	Profile *ProfileDTO `json:"profile"`
	Posts   []*PostDTO  `json:"posts"`
}
