package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Profile 用户公开主页，user_id 唯一（一人一档）
type Profile struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID      primitive.ObjectID `bson:"user_id" json:"user_id"`
	Name        string             `bson:"name" json:"name"`
	Email       string             `bson:"email" json:"email"`
	Bio         string             `bson:"bio,omitempty" json:"bio"`
	Skills      []string           `bson:"skills,omitempty" json:"skills"`
	SocialLinks map[string]string  `bson:"social_links,omitempty" json:"social_links"`
	AvatarURL   string             `bson:"avatar_url,omitempty" json:"avatar_url"`
	CreatedAt   time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at" json:"updated_at"`
}
