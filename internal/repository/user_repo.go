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
)

type UserRepo interface {
	Create(ctx context.Context, user *model.User) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	GetByEmailAndName(ctx context.Context, email, name string) (*model.User, error)
	ListAll(ctx context.Context) ([]*model.User, error)
	UpdateRole(ctx context.Context, id primitive.ObjectID, role string) error
	Delete(ctx context.Context, id primitive.ObjectID) (int64, error)
}

type userRepoImpl struct {
	col *mongo.Collection
}

func NewUserRepo(database *mongo.Database) UserRepo {
	return &userRepoImpl{
		col: database.Collection(db.UserCollection),
	}
}

func (s *userRepoImpl) Create(ctx context.Context, user *model.User) error {
	user.ID = primitive.NewObjectID()
	user.CreatedAt = time.Now()
	_, err := s.col.InsertOne(ctx, user)
	return err
}

func (s *userRepoImpl) GetByID(ctx context.Context, id primitive.ObjectID) (*model.User, error) {
	return s.findOne(ctx, bson.M{"_id": id})
}

func (s *userRepoImpl) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	return s.findOne(ctx, bson.M{"email": email})
}

// GetByEmailAndName 注册查重使用 (email, name) 组合条件
func (s *userRepoImpl) GetByEmailAndName(ctx context.Context, email, name string) (*model.User, error) {
	return s.findOne(ctx, bson.M{"email": email, "name": name})
}

func (s *userRepoImpl) findOne(ctx context.Context, filter bson.M) (*model.User, error) {
	var user model.User
	err := s.col.FindOne(ctx, filter).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (s *userRepoImpl) ListAll(ctx context.Context) ([]*model.User, error) {
	cursor, err := s.col.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = cursor.Close(ctx)
	}()

	var users []*model.User
	if err := cursor.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (s *userRepoImpl) UpdateRole(ctx context.Context, id primitive.ObjectID, role string) error {
	res, err := s.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"role": role}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// Delete 返回实际删除的条数，级联删除依赖该值保证幂等
func (s *userRepoImpl) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := s.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
