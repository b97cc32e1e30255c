package service

import (
	"Atelier/internal/api/dto"
	"Atelier/internal/model"

	"github.com/jinzhu/copier"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// parseID 十六进制字符串转 ObjectID
func parseID(hex string) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(hex)
	if err != nil {
		return primitive.NilObjectID, false
	}
	return id, true
}

func toUserDTO(user *model.User) *dto.UserDTO {
	userDTO := &dto.UserDTO{}
	_ = copier.Copy(userDTO, user)
	userDTO.ID = user.ID.Hex()
	return userDTO
}

func toProfileDTO(profile *model.Profile) *dto.ProfileDTO {
	profileDTO := &dto.ProfileDTO{}
	_ = copier.Copy(profileDTO, profile)
	profileDTO.ID = profile.ID.Hex()
	profileDTO.UserID = profile.UserID.Hex()
	return profileDTO
}

func toPostDTO(post *model.Post) *dto.PostDTO {
	postDTO := &dto.PostDTO{}
	_ = copier.Copy(postDTO, post)
	postDTO.ID = post.ID.Hex()
	postDTO.UserID = post.UserID.Hex()

	postDTO.Likes = make([]string, 0, len(post.Likes))
	for _, id := range post.Likes {
		postDTO.Likes = append(postDTO.Likes, id.Hex())
	}
	postDTO.LikeCount = len(post.Likes)

	postDTO.Comments = toCommentDTOs(post.Comments)
	return postDTO
}

func toCommentDTOs(comments []model.Comment) []*dto.CommentDTO {
	out := make([]*dto.CommentDTO, 0, len(comments))
	for i := range comments {
		commentDTO := &dto.CommentDTO{}
		_ = copier.Copy(commentDTO, &comments[i])
		out = append(out, commentDTO)
	}
	return out
}

func toPostDTOs(posts []*model.Post) []*dto.PostDTO {
	out := make([]*dto.PostDTO, 0, len(posts))
	for _, p := range posts {
		out = append(out, toPostDTO(p))
	}
	return out
}
