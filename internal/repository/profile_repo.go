package repository

import (
	"Atelier/internal/model"
	db "Atelier/internal/pkg/mongo"
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type ProfileRepo interface {
	Create(ctx context.Context, profile *model.Profile) error
	GetByUserID(ctx context.Context, userID primitive.ObjectID) (*model.Profile, error)
	ListAll(ctx context.Context) ([]*model.Profile, error)
	Save(ctx context.Context, profile *model.Profile) error
	DeleteByUserID(ctx context.Context, userID primitive.ObjectID) (int64, error)
}

type profileRepoImpl struct {
	col *mongo.Collection
}

func NewProfileRepo(database *mongo.Database) ProfileRepo {
	return &profileRepoImpl{
		col: database.Collection(db.ProfileCollection),
	}
}

func (s *profileRepoImpl) Create(ctx context.Context, profile *model.Profile) error {
	profile.ID = primitive.NewObjectID()
	profile.CreatedAt = time.Now()
	profile.UpdatedAt = profile.CreatedAt
	_, err := s.col.InsertOne(ctx, profile)
	return err
}

func (s *profileRepoImpl) GetByUserID(ctx context.Context, userID primitive.ObjectID) (*model.Profile, error) {
	var profile model.Profile
	err := s.col.FindOne(ctx, bson.M{"user_id": userID}).Decode(&profile)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &profile, nil
}

func (s *profileRepoImpl) ListAll(ctx context.Context) ([]*model.Profile, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})

	cursor, err := s.col.Find(ctx, bson.M{}, findOptions)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = cursor.Close(ctx)
	}()

	var profiles []*model.Profile
	if err := cursor.All(ctx, &profiles); err != nil {
		return nil, err
	}
	return profiles, nil
}

// Save 整文档回写，字段级合并在 service 层完成
func (s *profileRepoImpl) Save(ctx context.Context, profile *model.Profile) error {
	profile.UpdatedAt = time.Now()
	res, err := s.col.ReplaceOne(ctx, bson.M{"_id": profile.ID}, profile)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (s *profileRepoImpl) DeleteByUserID(ctx context.Context, userID primitive.ObjectID) (int64, error) {
	res, err := s.col.DeleteOne(ctx, bson.M{"user_id": userID})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
