package service

import (
	"Atelier/internal/api/dto"
	"Atelier/internal/model"
	"Atelier/internal/pkg/consts"
	"Atelier/internal/pkg/redis"
	"Atelier/internal/repository"
	"context"
	log "log/slog"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CascadeResultDTO 级联删除结果回执
type CascadeResultDTO struct {
	PostsDeleted   int64 `json:"posts_deleted"`
	ProfileDeleted bool  `json:"profile_deleted"`
	UserDeleted    bool  `json:"user_deleted"`
}

type AdminService interface {
	ListAllPosts(ctx context.Context) ([]*dto.AdminPostDTO, error)
	ListAllProfiles(ctx context.Context) ([]*dto.ProfileDTO, error)
	PromoteRole(ctx context.Context, userID, role string) (*dto.UserDTO, error)
	DeleteProfileCascade(ctx context.Context, userID string) (*CascadeResultDTO, error)
}

type AdminServiceImpl struct {
	userRepo    repository.UserRepo
	profileRepo repository.ProfileRepo
	postRepo    repository.PostRepo
	storage     MediaStorage
}

func NewAdminService(
	userRepo repository.UserRepo,
	profileRepo repository.ProfileRepo,
	postRepo repository.PostRepo,
	storage MediaStorage,
) AdminService {
	return &AdminServiceImpl{
		userRepo:    userRepo,
		profileRepo: profileRepo,
		postRepo:    postRepo,
		storage:     storage,
	}
}

// ListAllPosts 全量帖子，附作者公开字段；空库返回空列表而非错误
func (s *AdminServiceImpl) ListAllPosts(ctx context.Context) ([]*dto.AdminPostDTO, error) {
	posts, err := s.postRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	owners, err := s.ownerIndex(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]*dto.AdminPostDTO, 0, len(posts))
	for _, post := range posts {
		adminDTO := &dto.AdminPostDTO{PostDTO: *toPostDTO(post)}
		if owner, ok := owners[post.UserID]; ok {
			adminDTO.OwnerName = owner.Name
			adminDTO.OwnerEmail = owner.Email
		}
		out = append(out, adminDTO)
	}
	return out, nil
}

func (s *AdminServiceImpl) ListAllProfiles(ctx context.Context) ([]*dto.ProfileDTO, error) {
	profiles, err := s.profileRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]*dto.ProfileDTO, 0, len(profiles))
	for _, profile := range profiles {
		out = append(out, toProfileDTO(profile))
	}
	return out, nil
}

func (s *AdminServiceImpl) ownerIndex(ctx context.Context) (map[primitive.ObjectID]*model.User, error) {
	users, err := s.userRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	index := make(map[primitive.ObjectID]*model.User, len(users))
	for _, user := range users {
		index[user.ID] = user
	}
	return index, nil
}

// PromoteRole 按请求值设置角色，升降级均可
func (s *AdminServiceImpl) PromoteRole(ctx context.Context, userID, role string) (*dto.UserDTO, error) {
	if !model.ValidRole(role) {
		return nil, ErrRoleInvalid
	}

	id, ok := parseID(userID)
	if !ok {
		return nil, ErrUserNotFound
	}

	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	if err = s.userRepo.UpdateRole(ctx, id, role); err != nil {
		return nil, err
	}

	user.Role = role
	return toUserDTO(user), nil
}

// DeleteProfileCascade 子项优先的删除序列：帖子 → 档案 → 账号。
// 非事务，但可重入：部分失败后重跑不会因子项已删除而报错。
func (s *AdminServiceImpl) DeleteProfileCascade(ctx context.Context, userID string) (*CascadeResultDTO, error) {
	id, ok := parseID(userID)
	if !ok {
		return nil, ErrUserNotFound
	}

	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	// 先收集媒体对象，帖子删除后无从得知
	posts, err := s.postRepo.ListByUser(ctx, id)
	if err != nil {
		return nil, err
	}

	postsDeleted, err := s.postRepo.DeleteByUser(ctx, id)
	if err != nil {
		return nil, err
	}

	for _, post := range posts {
		s.deleteMedia(ctx, post.MediaURLs)
	}

	profileDeleted, err := s.profileRepo.DeleteByUserID(ctx, id)
	if err != nil {
		return nil, err
	}

	userDeleted, err := s.userRepo.Delete(ctx, id)
	if err != nil {
		return nil, err
	}

	if err = redis.DeleteKey(ctx, consts.PublicProfileKey+userID); err != nil {
		log.WarnContext(ctx, "failed to invalidate profile cache", "user_id", userID, "err", err)
	}

	return &CascadeResultDTO{
		PostsDeleted:   postsDeleted,
		ProfileDeleted: profileDeleted > 0,
		UserDeleted:    userDeleted > 0,
	}, nil
}

func (s *AdminServiceImpl) deleteMedia(ctx context.Context, urls []string) {
	for _, url := range urls {
		name := s.storage.ObjectNameFromURL(url)
		if name == "" {
			continue
		}
		if err := s.storage.Delete(ctx, name); err != nil {
			log.WarnContext(ctx, "failed to delete media object", "object", name, "err", err)
		}
	}
}
