package service

import (
	"Atelier/internal/api/config"
	"Atelier/internal/api/dto"
	"Atelier/internal/model"
	"Atelier/internal/pkg/consts"
	"Atelier/internal/pkg/redis"
	"Atelier/internal/pkg/util"
	"Atelier/internal/repository"
	"context"
	log "log/slog"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/pkg/errors"
)

const defaultMaxFilesPerPost = 10

type PostService interface {
	Create(ctx context.Context, userID string, form *dto.PostFormDTO, files []*MediaFile) (*dto.PostDTO, error)
	Get(ctx context.Context, postID string) (*dto.PostDTO, error)
	ListByOwner(ctx context.Context, userID string) ([]*dto.PostDTO, error)
	ListAll(ctx context.Context) ([]*dto.PostDTO, error)
	Update(ctx context.Context, callerID string, isAdmin bool, postID string, updateDTO *dto.PostUpdateDTO, files []*MediaFile) (*dto.PostDTO, error)
	Delete(ctx context.Context, callerID string, isAdmin bool, postID string) error
	View(ctx context.Context, postID string) (*dto.PostDTO, int64, error)
}

type PostServiceImpl struct {
	postRepo repository.PostRepo
	storage  MediaStorage
}

func NewPostService(postRepo repository.PostRepo, storage MediaStorage) PostService {
	return &PostServiceImpl{
		postRepo: postRepo,
		storage:  storage,
	}
}

func maxFilesPerPost() int {
	if config.Cfg != nil && config.Cfg.Upload.MaxFilesPerPost > 0 {
		return config.Cfg.Upload.MaxFilesPerPost
	}
	return defaultMaxFilesPerPost
}

// Create 校验先行：超限或缺少标题/描述时不落任何数据
func (s *PostServiceImpl) Create(ctx context.Context, userID string, form *dto.PostFormDTO, files []*MediaFile) (*dto.PostDTO, error) {
	ownerID, ok := parseID(userID)
	if !ok {
		return nil, ErrUserNotFound
	}

	if strings.TrimSpace(form.Title) == "" && strings.TrimSpace(form.Description) == "" {
		return nil, ErrPostContentRequired
	}
	if len(files) > maxFilesPerPost() {
		return nil, ErrTooManyFiles
	}

	mediaURLs, objectNames, err := s.uploadBatch(ctx, files)
	if err != nil {
		return nil, err
	}

	post := &model.Post{
		UserID:      ownerID,
		Title:       form.Title,
		Description: form.Description,
		Caption:     form.Caption,
		Hashtags:    form.Hashtags,
		Tags:        form.Tags,
		Location:    form.Location,
		Alt:         form.Alt,
		MediaURLs:   mediaURLs,
	}
	if err = s.postRepo.Create(ctx, post); err != nil {
		// 入库失败时回收本次上传的对象
		s.deleteObjects(ctx, objectNames)
		return nil, err
	}

	s.untrackTempMedia(ctx, objectNames)
	return toPostDTO(post), nil
}

// uploadBatch 顺序上传，任一文件失败即删除此前已上传的对象并中止
func (s *PostServiceImpl) uploadBatch(ctx context.Context, files []*MediaFile) ([]string, []string, error) {
	var mediaURLs []string
	var objectNames []string

	for _, file := range files {
		objectName := util.NewObjectName(file.Filename)

		key, err := s.storage.Upload(ctx, objectName, file.Reader, file.Size, file.ContentType)
		if err != nil {
			s.deleteObjects(ctx, objectNames)
			return nil, nil, errors.Wrapf(err, "upload %s failed", file.Filename)
		}

		s.trackTempMedia(ctx, key)
		objectNames = append(objectNames, key)
		mediaURLs = append(mediaURLs, s.storage.PublicURL(key))
	}

	return mediaURLs, objectNames, nil
}

func (s *PostServiceImpl) Get(ctx context.Context, postID string) (*dto.PostDTO, error) {
	post, err := s.loadPost(ctx, postID)
	if err != nil {
		return nil, err
	}
	return toPostDTO(post), nil
}

func (s *PostServiceImpl) ListByOwner(ctx context.Context, userID string) ([]*dto.PostDTO, error) {
	ownerID, ok := parseID(userID)
	if !ok {
		return nil, ErrUserNotFound
	}

	posts, err := s.postRepo.ListByUser(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	return toPostDTOs(posts), nil
}

func (s *PostServiceImpl) ListAll(ctx context.Context) ([]*dto.PostDTO, error) {
	posts, err := s.postRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return toPostDTOs(posts), nil
}

// Update 逐字段合并，nil 不动；携带新文件时媒体列表整组替换
func (s *PostServiceImpl) Update(ctx context.Context, callerID string, isAdmin bool, postID string, updateDTO *dto.PostUpdateDTO, files []*MediaFile) (*dto.PostDTO, error) {
	post, err := s.loadPost(ctx, postID)
	if err != nil {
		return nil, err
	}
	if !isAdmin && post.UserID.Hex() != callerID {
		return nil, ErrNotPostOwner
	}
	if len(files) > maxFilesPerPost() {
		return nil, ErrTooManyFiles
	}

	if updateDTO.Title != nil {
		post.Title = *updateDTO.Title
	}
	if updateDTO.Description != nil {
		post.Description = *updateDTO.Description
	}
	if updateDTO.Caption != nil {
		post.Caption = *updateDTO.Caption
	}
	if updateDTO.Hashtags != nil {
		post.Hashtags = *updateDTO.Hashtags
	}
	if updateDTO.Tags != nil {
		post.Tags = *updateDTO.Tags
	}
	if updateDTO.Location != nil {
		post.Location = *updateDTO.Location
	}
	if updateDTO.Alt != nil {
		post.Alt = *updateDTO.Alt
	}

	var replaced, uploaded []string
	if len(files) > 0 {
		mediaURLs, objectNames, err := s.uploadBatch(ctx, files)
		if err != nil {
			return nil, err
		}
		replaced = post.MediaURLs
		post.MediaURLs = mediaURLs
		uploaded = objectNames
	}

	if err = s.postRepo.Save(ctx, post); err != nil {
		// 落库失败时回收本次上传的对象，旧媒体保持不动
		s.deleteObjects(ctx, uploaded)
		return nil, err
	}

	s.untrackTempMedia(ctx, uploaded)

	// 旧媒体对象尽力回收，失败不影响本次更新
	s.deleteURLs(ctx, replaced)

	return toPostDTO(post), nil
}

// Delete 属主或管理员可删，越权删除被拒绝
func (s *PostServiceImpl) Delete(ctx context.Context, callerID string, isAdmin bool, postID string) error {
	post, err := s.loadPost(ctx, postID)
	if err != nil {
		return err
	}
	if !isAdmin && post.UserID.Hex() != callerID {
		return ErrNotPostOwner
	}

	if _, err = s.postRepo.Delete(ctx, post.ID); err != nil {
		return err
	}

	s.deleteURLs(ctx, post.MediaURLs)
	return nil
}

// View 读取帖子并累加浏览计数（计数尽力而为）
func (s *PostServiceImpl) View(ctx context.Context, postID string) (*dto.PostDTO, int64, error) {
	post, err := s.loadPost(ctx, postID)
	if err != nil {
		return nil, 0, err
	}

	views, err := redis.Incr(ctx, consts.PostViewKey+postID)
	if err != nil {
		log.WarnContext(ctx, "failed to bump view counter", "post_id", postID, "err", err)
		views = 0
	}

	return toPostDTO(post), views, nil
}

func (s *PostServiceImpl) loadPost(ctx context.Context, postID string) (*model.Post, error) {
	id, ok := parseID(postID)
	if !ok {
		return nil, ErrPostNotFound
	}

	post, err := s.postRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrPostNotFound
	}
	return post, nil
}

// trackTempMedia 上传后登记到临时清单，帖子落库成功后摘除；
// 落库前崩溃留下的孤儿对象由定时任务回收
func (s *PostServiceImpl) trackTempMedia(ctx context.Context, objectName string) {
	meta, _ := json.Marshal(map[string]int64{"created_at": time.Now().Unix()})
	if err := redis.HSet(ctx, consts.MediaTempKey, objectName, string(meta)); err != nil {
		log.WarnContext(ctx, "failed to track temp media", "object", objectName, "err", err)
	}
}

func (s *PostServiceImpl) untrackTempMedia(ctx context.Context, objectNames []string) {
	if len(objectNames) == 0 {
		return
	}
	if err := redis.HDel(ctx, consts.MediaTempKey, objectNames...); err != nil {
		log.WarnContext(ctx, "failed to untrack temp media", "err", err)
	}
}

func (s *PostServiceImpl) deleteObjects(ctx context.Context, objectNames []string) {
	for _, name := range objectNames {
		if err := s.storage.Delete(ctx, name); err != nil {
			log.WarnContext(ctx, "failed to delete media object", "object", name, "err", err)
		}
	}
	s.untrackTempMedia(ctx, objectNames)
}

func (s *PostServiceImpl) deleteURLs(ctx context.Context, urls []string) {
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
