package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Post 帖子文档。Likes 是点赞用户 id 集合（去重），Comments 只追加不修改。
// Hashtags 保持作者提交的原始分隔串，不做规范化。
type Post struct {
	ID          primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	UserID      primitive.ObjectID   `bson:"user_id" json:"user_id"`
	Title       string               `bson:"title" json:"title"`
	Description string               `bson:"description" json:"description"`
	Caption     string               `bson:"caption,omitempty" json:"caption"`
	Hashtags    string               `bson:"hashtags,omitempty" json:"hashtags"`
	Tags        string               `bson:"tags,omitempty" json:"tags"`
	Location    string               `bson:"location,omitempty" json:"location"`
	Alt         string               `bson:"alt,omitempty" json:"alt"`
	MediaURLs   []string             `bson:"media_urls,omitempty" json:"media_urls"`
	Likes       []primitive.ObjectID `bson:"likes,omitempty" json:"likes"`
	Comments    []Comment            `bson:"comments,omitempty" json:"comments"`
	CreatedAt   time.Time            `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time            `bson:"updated_at" json:"updated_at"`
}

// Comment 内嵌评论
type Comment struct {
	Author    string    `bson:"author" json:"author"`
	Text      string    `bson:"text" json:"text"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}

// LikedBy 判断某用户是否已点赞
func (p *Post) LikedBy(userID primitive.ObjectID) bool {
	for _, id := range p.Likes {
		if id == userID {
			return true
		}
	}
	return false
}
