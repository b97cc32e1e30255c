package service

import (
	"Atelier/internal/api/config"
	"Atelier/internal/model"
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

func setTestConfig(t *testing.T) {
	t.Helper()
	prev := config.Cfg
	config.Cfg = &config.Config{
		JWT: config.JWTConfig{
			Secret:          "test-secret",
			UserExpireHours: 720,
			AdminExpireHour: 24,
		},
		Upload: config.UploadConfig{
			MaxFilesPerPost: 10,
			AvatarThumbSize: 64,
		},
	}
	t.Cleanup(func() { config.Cfg = prev })
}

type fakeUserRepo struct {
	users map[primitive.ObjectID]*model.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[primitive.ObjectID]*model.User{}}
}

func (r *fakeUserRepo) Create(_ context.Context, user *model.User) error {
	// 与线上 (email, name) 组合唯一索引保持同一约束
	for _, u := range r.users {
		if u.Email == user.Email && u.Name == user.Name {
			return mongo.WriteException{WriteErrors: []mongo.WriteError{{
				Code:    11000,
				Message: "E11000 duplicate key error",
			}}}
		}
	}
	user.ID = primitive.NewObjectID()
	user.CreatedAt = time.Now()
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id primitive.ObjectID) (*model.User, error) {
	return r.users[id], nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) GetByEmailAndName(_ context.Context, email, name string) (*model.User, error) {
	for _, u := range r.users {
		if u.Email == email && u.Name == name {
			return u, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) ListAll(_ context.Context) ([]*model.User, error) {
	out := make([]*model.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, u)
	}
	return out, nil
}

func (r *fakeUserRepo) UpdateRole(_ context.Context, id primitive.ObjectID, role string) error {
	u, ok := r.users[id]
	if !ok {
		return mongo.ErrNoDocuments
	}
	u.Role = role
	return nil
}

func (r *fakeUserRepo) Delete(_ context.Context, id primitive.ObjectID) (int64, error) {
	if _, ok := r.users[id]; !ok {
		return 0, nil
	}
	delete(r.users, id)
	return 1, nil
}

type fakeProfileRepo struct {
	profiles map[primitive.ObjectID]*model.Profile
}

func newFakeProfileRepo() *fakeProfileRepo {
	return &fakeProfileRepo{profiles: map[primitive.ObjectID]*model.Profile{}}
}

func (r *fakeProfileRepo) Create(_ context.Context, profile *model.Profile) error {
	profile.ID = primitive.NewObjectID()
	profile.CreatedAt = time.Now()
	profile.UpdatedAt = profile.CreatedAt
	r.profiles[profile.UserID] = profile
	return nil
}

func (r *fakeProfileRepo) GetByUserID(_ context.Context, userID primitive.ObjectID) (*model.Profile, error) {
	return r.profiles[userID], nil
}

func (r *fakeProfileRepo) ListAll(_ context.Context) ([]*model.Profile, error) {
	out := make([]*model.Profile, 0, len(r.profiles))
	for _, p := range r.profiles {
		out = append(out, p)
	}
	return out, nil
}

func (r *fakeProfileRepo) Save(_ context.Context, profile *model.Profile) error {
	if _, ok := r.profiles[profile.UserID]; !ok {
		return mongo.ErrNoDocuments
	}
	profile.UpdatedAt = time.Now()
	r.profiles[profile.UserID] = profile
	return nil
}

func (r *fakeProfileRepo) DeleteByUserID(_ context.Context, userID primitive.ObjectID) (int64, error) {
	if _, ok := r.profiles[userID]; !ok {
		return 0, nil
	}
	delete(r.profiles, userID)
	return 1, nil
}

type fakePostRepo struct {
	posts []*model.Post
}

func newFakePostRepo() *fakePostRepo {
	return &fakePostRepo{}
}

func (r *fakePostRepo) Create(_ context.Context, post *model.Post) error {
	post.ID = primitive.NewObjectID()
	post.CreatedAt = time.Now()
	post.UpdatedAt = post.CreatedAt
	r.posts = append(r.posts, post)
	return nil
}

func (r *fakePostRepo) GetByID(_ context.Context, id primitive.ObjectID) (*model.Post, error) {
	for _, p := range r.posts {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, nil
}

func (r *fakePostRepo) ListByUser(_ context.Context, userID primitive.ObjectID) ([]*model.Post, error) {
	var out []*model.Post
	for _, p := range r.posts {
		if p.UserID == userID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *fakePostRepo) ListAll(_ context.Context) ([]*model.Post, error) {
	return append([]*model.Post{}, r.posts...), nil
}

func (r *fakePostRepo) Save(_ context.Context, post *model.Post) error {
	for i, p := range r.posts {
		if p.ID == post.ID {
			post.UpdatedAt = time.Now()
			r.posts[i] = post
			return nil
		}
	}
	return mongo.ErrNoDocuments
}

func (r *fakePostRepo) Delete(_ context.Context, id primitive.ObjectID) (int64, error) {
	for i, p := range r.posts {
		if p.ID == id {
			r.posts = append(r.posts[:i], r.posts[i+1:]...)
			return 1, nil
		}
	}
	return 0, nil
}

func (r *fakePostRepo) DeleteByUser(_ context.Context, userID primitive.ObjectID) (int64, error) {
	var kept []*model.Post
	var deleted int64
	for _, p := range r.posts {
		if p.UserID == userID {
			deleted++
			continue
		}
		kept = append(kept, p)
	}
	r.posts = kept
	return deleted, nil
}

func (r *fakePostRepo) AddLike(_ context.Context, postID, userID primitive.ObjectID) error {
	p, _ := r.GetByID(context.Background(), postID)
	if p == nil {
		return mongo.ErrNoDocuments
	}
	for _, id := range p.Likes {
		if id == userID {
			return nil
		}
	}
	p.Likes = append(p.Likes, userID)
	return nil
}

func (r *fakePostRepo) RemoveLike(_ context.Context, postID, userID primitive.ObjectID) error {
	p, _ := r.GetByID(context.Background(), postID)
	if p == nil {
		return mongo.ErrNoDocuments
	}
	for i, id := range p.Likes {
		if id == userID {
			p.Likes = append(p.Likes[:i], p.Likes[i+1:]...)
			return nil
		}
	}
	return nil
}

func (r *fakePostRepo) AppendComment(_ context.Context, postID primitive.ObjectID, comment model.Comment) error {
	p, _ := r.GetByID(context.Background(), postID)
	if p == nil {
		return mongo.ErrNoDocuments
	}
	p.Comments = append(p.Comments, comment)
	return nil
}

// fakeStorage 记录上传与删除，failAfter > 0 时第 failAfter+1 次上传报错
type fakeStorage struct {
	objects   map[string][]byte
	deleted   []string
	uploads   int
	failAfter int
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{objects: map[string][]byte{}, failAfter: -1}
}

func (s *fakeStorage) Upload(_ context.Context, objectName string, reader io.Reader, _ int64, _ string) (string, error) {
	if s.failAfter >= 0 && s.uploads >= s.failAfter {
		return "", errors.New("storage unavailable")
	}
	s.uploads++
	data, _ := io.ReadAll(reader)
	s.objects[objectName] = data
	return objectName, nil
}

func (s *fakeStorage) Delete(_ context.Context, objectName string) error {
	delete(s.objects, objectName)
	s.deleted = append(s.deleted, objectName)
	return nil
}

func (s *fakeStorage) PublicURL(objectName string) string {
	return "https://cdn.test/bucket/" + objectName
}

func (s *fakeStorage) ObjectNameFromURL(url string) string {
	const prefix = "https://cdn.test/bucket/"
	if len(url) <= len(prefix) {
		return ""
	}
	return url[len(prefix):]
}
