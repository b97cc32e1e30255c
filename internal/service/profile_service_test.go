package service

import (
	"Atelier/internal/api/dto"
	"Atelier/internal/model"
	"bytes"
	"context"
	"image"
	"image/jpeg"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func seedUser(t *testing.T, repo *fakeUserRepo) *model.User {
	t.Helper()
	user := &model.User{Name: "alice", Email: "alice@example.com", Role: model.RoleUser}
	require.NoError(t, repo.Create(context.Background(), user))
	return user
}

func newProfileService(userRepo *fakeUserRepo, profileRepo *fakeProfileRepo, postRepo *fakePostRepo, storage *fakeStorage) ProfileService {
	return NewProfileService(profileRepo, postRepo, userRepo, storage)
}

func TestCreateProfileDenormalizesAccountFields(t *testing.T) {
	setTestConfig(t)
	userRepo := newFakeUserRepo()
	profileRepo := newFakeProfileRepo()
	svc := newProfileService(userRepo, profileRepo, newFakePostRepo(), newFakeStorage())
	ctx := context.Background()

	user := seedUser(t, userRepo)
	profile, err := svc.Create(ctx, user.ID.Hex(), &dto.ProfileCreateDTO{
		Bio:    "hello",
		Skills: []string{"go", "mongodb"},
		SocialLinks: map[string]string{
			"github": "https://github.com/alice",
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "alice", profile.Name)
	assert.Equal(t, "alice@example.com", profile.Email)
	assert.Equal(t, []string{"go", "mongodb"}, profile.Skills)

	// 一人一档
	_, err = svc.Create(ctx, user.ID.Hex(), &dto.ProfileCreateDTO{})
	assert.ErrorIs(t, err, ErrProfileExists)

	_, err = svc.Create(ctx, primitive.NewObjectID().Hex(), &dto.ProfileCreateDTO{})
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestUpdateProfilePointerFieldSemantics(t *testing.T) {
	setTestConfig(t)
	userRepo := newFakeUserRepo()
	profileRepo := newFakeProfileRepo()
	svc := newProfileService(userRepo, profileRepo, newFakePostRepo(), newFakeStorage())
	ctx := context.Background()

	user := seedUser(t, userRepo)
	_, err := svc.Create(ctx, user.ID.Hex(), &dto.ProfileCreateDTO{Bio: "hello", Skills: []string{"go"}})
	require.NoError(t, err)

	empty := ""
	updated, err := svc.Update(ctx, user.ID.Hex(), &dto.ProfileUpdateDTO{Bio: &empty})
	require.NoError(t, err)

	// bio 显式清空，其余字段不动
	assert.Equal(t, "", updated.Bio)
	assert.Equal(t, "alice", updated.Name)
	assert.Equal(t, []string{"go"}, updated.Skills)

	name := "alice cooper"
	updated, err = svc.Update(ctx, user.ID.Hex(), &dto.ProfileUpdateDTO{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "alice cooper", updated.Name)
	assert.Equal(t, "", updated.Bio)
}

func TestUpdateProfileNotFound(t *testing.T) {
	setTestConfig(t)
	svc := newProfileService(newFakeUserRepo(), newFakeProfileRepo(), newFakePostRepo(), newFakeStorage())

	bio := "x"
	_, err := svc.Update(context.Background(), primitive.NewObjectID().Hex(), &dto.ProfileUpdateDTO{Bio: &bio})
	assert.ErrorIs(t, err, ErrProfileNotFound)
}

func TestGetPublicProfileIncludesPosts(t *testing.T) {
	setTestConfig(t)
	userRepo := newFakeUserRepo()
	profileRepo := newFakeProfileRepo()
	postRepo := newFakePostRepo()
	svc := newProfileService(userRepo, profileRepo, postRepo, newFakeStorage())
	ctx := context.Background()

	user := seedUser(t, userRepo)
	_, err := svc.Create(ctx, user.ID.Hex(), &dto.ProfileCreateDTO{Bio: "hello"})
	require.NoError(t, err)
	seedPost(t, postRepo, user.ID)
	seedPost(t, postRepo, user.ID)

	public, err := svc.GetPublicProfile(ctx, user.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, "hello", public.Profile.Bio)
	assert.Len(t, public.Posts, 2)

	_, err = svc.GetPublicProfile(ctx, primitive.NewObjectID().Hex())
	assert.ErrorIs(t, err, ErrProfileNotFound)
}

func jpegBytes(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 320, 240))
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, img, nil))
	return buf.Bytes()
}

func TestUpdateAvatarStoresThumbnail(t *testing.T) {
	setTestConfig(t)
	userRepo := newFakeUserRepo()
	profileRepo := newFakeProfileRepo()
	storage := newFakeStorage()
	svc := newProfileService(userRepo, profileRepo, newFakePostRepo(), storage)
	ctx := context.Background()

	user := seedUser(t, userRepo)
	_, err := svc.Create(ctx, user.ID.Hex(), &dto.ProfileCreateDTO{})
	require.NoError(t, err)

	data := jpegBytes(t)
	profile, err := svc.UpdateAvatar(ctx, user.ID.Hex(), &MediaFile{
		Filename:    "me.jpg",
		Size:        int64(len(data)),
		ContentType: "image/jpeg",
		Reader:      bytes.NewReader(data),
	})
	require.NoError(t, err)

	// 原图 + 缩略图两个对象，档案指向缩略图
	assert.Len(t, storage.objects, 2)
	assert.True(t, strings.HasSuffix(profile.AvatarURL, "_thumb.jpg"))
}

func TestUpdateAvatarFallsBackOnUndecodableImage(t *testing.T) {
	setTestConfig(t)
	userRepo := newFakeUserRepo()
	profileRepo := newFakeProfileRepo()
	storage := newFakeStorage()
	svc := newProfileService(userRepo, profileRepo, newFakePostRepo(), storage)
	ctx := context.Background()

	user := seedUser(t, userRepo)
	_, err := svc.Create(ctx, user.ID.Hex(), &dto.ProfileCreateDTO{})
	require.NoError(t, err)

	profile, err := svc.UpdateAvatar(ctx, user.ID.Hex(), &MediaFile{
		Filename:    "broken.jpg",
		Size:        9,
		ContentType: "image/jpeg",
		Reader:      strings.NewReader("not-a-jpg"),
	})
	require.NoError(t, err)

	// 缩略图失败时退回原图地址
	assert.Len(t, storage.objects, 1)
	assert.NotEmpty(t, profile.AvatarURL)
	assert.False(t, strings.HasSuffix(profile.AvatarURL, "_thumb.jpg"))
}
