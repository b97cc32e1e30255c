package dto

import "time"

// PostFormDTO 创建帖子（multipart 表单字段，文件单独读取）
type PostFormDTO struct {
	Title       string `form:"title"`
	Description string `form:"description"`
	Caption     string `form:"caption"`
	Hashtags    string `form:"hashtags"`
	Tags        string `form:"tags"`
	Location    string `form:"location"`
	Alt         string `form:"alt"`
}

// PostUpdateDTO 局部更新：nil 表示保持不变，空串是合法的写入值。
// 携带新文件时整组替换媒体列表。
type PostUpdateDTO struct {
	Title       *string `form:"title"`
	Description *string `form:"description"`
	Caption     *string `form:"caption"`
	Hashtags    *string `form:"hashtags"`
	Tags        *string `form:"tags"`
	Location    *string `form:"location"`
	Alt         *string `form:"alt"`
}

// PostDTO 帖子展示
type PostDTO struct {
	ID          string        `json:"id"`
	UserID      string        `json:"user_id"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Caption     string        `json:"caption"`
	Hashtags    string        `json:"hashtags"`
	Tags        string        `json:"tags"`
	Location    string        `json:"location"`
	Alt         string        `json:"alt"`
	MediaURLs   []string      `json:"media_urls"`
	Likes       []string      `json:"likes"`
	LikeCount   int           `json:"like_count"`
	Comments    []*CommentDTO `json:"comments"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}

// AdminPostDTO 管理端帖子视图，附带作者公开信息
type AdminPostDTO struct {
	PostDTO
	OwnerName  string `json:"owner_name"`
	OwnerEmail string `json:"owner_email"`
}

// CommentCreateDTO 追加评论
type CommentCreateDTO struct {
	Text string `json:"text" binding:"required"`
}

// CommentDTO 评论展示
type CommentDTO struct {
	Author    string    `json:"author"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}
