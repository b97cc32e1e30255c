package service

import (
	"Atelier/internal/api/config"
	"Atelier/internal/api/dto"
	"Atelier/internal/model"
	"Atelier/internal/pkg/consts"
	"Atelier/internal/pkg/redis"
	"Atelier/internal/pkg/util"
	"Atelier/internal/repository"
	"bytes"
	"context"
	"io"
	log "log/slog"
	"time"

	"github.com/goccy/go-json"
	"go.mongodb.org/mongo-driver/mongo"
)

const profileCacheExpiration = time.Hour

type ProfileService interface {
	Create(ctx context.Context, userID string, createDTO *dto.ProfileCreateDTO) (*dto.ProfileDTO, error)
	GetOwn(ctx context.Context, userID string) (*dto.ProfileDTO, error)
	Update(ctx context.Context, userID string, updateDTO *dto.ProfileUpdateDTO) (*dto.ProfileDTO, error)
	UpdateAvatar(ctx context.Context, userID string, file *MediaFile) (*dto.ProfileDTO, error)
	GetPublicProfile(ctx context.Context, userID string) (*dto.PublicProfileDTO, error)
}

type ProfileServiceImpl struct {
	profileRepo repository.ProfileRepo
	postRepo    repository.PostRepo
	userRepo    repository.UserRepo
	storage     MediaStorage
}

func NewProfileService(
	profileRepo repository.ProfileRepo,
	postRepo repository.PostRepo,
	userRepo repository.UserRepo,
	storage MediaStorage,
) ProfileService {
	return &ProfileServiceImpl{
		profileRepo: profileRepo,
		postRepo:    postRepo,
		userRepo:    userRepo,
		storage:     storage,
	}
}

// Create 注册后的独立建档步骤，name/email 从账号冗余一份
func (s *ProfileServiceImpl) Create(ctx context.Context, userID string, createDTO *dto.ProfileCreateDTO) (*dto.ProfileDTO, error) {
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

	existing, err := s.profileRepo.GetByUserID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrProfileExists
	}

	profile := &model.Profile{
		UserID:      id,
		Name:        user.Name,
		Email:       user.Email,
		Bio:         createDTO.Bio,
		Skills:      createDTO.Skills,
		SocialLinks: createDTO.SocialLinks,
	}
	if err = s.profileRepo.Create(ctx, profile); err != nil {
		// user_id 唯一索引兜住并发建档
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrProfileExists
		}
		return nil, err
	}

	return toProfileDTO(profile), nil
}

func (s *ProfileServiceImpl) GetOwn(ctx context.Context, userID string) (*dto.ProfileDTO, error) {
	id, ok := parseID(userID)
	if !ok {
		return nil, ErrProfileNotFound
	}

	profile, err := s.profileRepo.GetByUserID(ctx, id)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, ErrProfileNotFound
	}
	return toProfileDTO(profile), nil
}

// Update 逐字段合并：nil 不动，非 nil 覆盖（空值也是合法覆盖值）
func (s *ProfileServiceImpl) Update(ctx context.Context, userID string, updateDTO *dto.ProfileUpdateDTO) (*dto.ProfileDTO, error) {
	id, ok := parseID(userID)
	if !ok {
		return nil, ErrProfileNotFound
	}

	profile, err := s.profileRepo.GetByUserID(ctx, id)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, ErrProfileNotFound
	}

	if updateDTO.Name != nil {
		profile.Name = *updateDTO.Name
	}
	if updateDTO.Email != nil {
		profile.Email = *updateDTO.Email
	}
	if updateDTO.Bio != nil {
		profile.Bio = *updateDTO.Bio
	}
	if updateDTO.Skills != nil {
		profile.Skills = *updateDTO.Skills
	}
	if updateDTO.SocialLinks != nil {
		profile.SocialLinks = *updateDTO.SocialLinks
	}

	if err = s.profileRepo.Save(ctx, profile); err != nil {
		return nil, err
	}

	s.invalidateCache(ctx, userID)
	return toProfileDTO(profile), nil
}

// UpdateAvatar 原图与缩略图先后入库，档案记录缩略图地址
func (s *ProfileServiceImpl) UpdateAvatar(ctx context.Context, userID string, file *MediaFile) (*dto.ProfileDTO, error) {
	id, ok := parseID(userID)
	if !ok {
		return nil, ErrProfileNotFound
	}

	profile, err := s.profileRepo.GetByUserID(ctx, id)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, ErrProfileNotFound
	}

	// 头像体积有限，整体读入以便同一份数据既传原图又出缩略图
	data, err := io.ReadAll(file.Reader)
	if err != nil {
		return nil, err
	}

	objectName := util.NewObjectName(file.Filename)
	if _, err = s.storage.Upload(ctx, objectName, bytes.NewReader(data), int64(len(data)), file.ContentType); err != nil {
		return nil, err
	}

	thumbSize := config.Cfg.Upload.AvatarThumbSize
	if thumbSize <= 0 {
		thumbSize = 256
	}

	thumbURL, err := s.makeThumbnail(ctx, objectName, data, thumbSize)
	if err != nil {
		// 缩略图失败退回原图地址
		log.WarnContext(ctx, "avatar thumbnail failed, falling back to original", "err", err)
		profile.AvatarURL = s.storage.PublicURL(objectName)
	} else {
		profile.AvatarURL = thumbURL
	}

	if err = s.profileRepo.Save(ctx, profile); err != nil {
		return nil, err
	}

	s.invalidateCache(ctx, userID)
	return toProfileDTO(profile), nil
}

func (s *ProfileServiceImpl) makeThumbnail(ctx context.Context, objectName string, data []byte, size int) (string, error) {
	buf, length, err := util.MakeThumbnail(bytes.NewReader(data), size)
	if err != nil {
		return "", err
	}

	thumbName := objectName + "_thumb.jpg"
	if _, err = s.storage.Upload(ctx, thumbName, buf, length, "image/jpeg"); err != nil {
		return "", err
	}
	return s.storage.PublicURL(thumbName), nil
}

// GetPublicProfile 档案部分走缓存（1小时），帖子实时读取
func (s *ProfileServiceImpl) GetPublicProfile(ctx context.Context, userID string) (*dto.PublicProfileDTO, error) {
	id, ok := parseID(userID)
	if !ok {
		return nil, ErrProfileNotFound
	}

	var profileDTO *dto.ProfileDTO

	key := consts.PublicProfileKey + userID
	cached, err := redis.GetValue(ctx, key)
	if err == nil && cached != "" {
		if err = json.Unmarshal([]byte(cached), &profileDTO); err != nil {
			profileDTO = nil
		}
	}

	if profileDTO == nil {
		profile, err := s.profileRepo.GetByUserID(ctx, id)
		if err != nil {
			return nil, err
		}
		if profile == nil {
			return nil, ErrProfileNotFound
		}
		profileDTO = toProfileDTO(profile)

		if jsonStr, err := json.Marshal(profileDTO); err == nil {
			_ = redis.SetWithExpiration(ctx, key, string(jsonStr), profileCacheExpiration)
		}
	}

	posts, err := s.postRepo.ListByUser(ctx, id)
	if err != nil {
		return nil, err
	}

	return &dto.PublicProfileDTO{
		Profile: profileDTO,
		Posts:   toPostDTOs(posts),
	}, nil
}

func (s *ProfileServiceImpl) invalidateCache(ctx context.Context, userID string) {
	if err := redis.DeleteKey(ctx, consts.PublicProfileKey+userID); err != nil {
		log.WarnContext(ctx, "failed to invalidate profile cache", "user_id", userID, "err", err)
	}
}
