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

type PostRepo interface {
	Create(ctx context.Context, post *model.Post) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*model.Post, error)
	ListByUser(ctx context.Context, userID primitive.ObjectID) ([]*model.Post, error)
	ListAll(ctx context.Context) ([]*model.Post, error)
	Save(ctx context.Context, post *model.Post) error
	Delete(ctx context.Context, id primitive.ObjectID) (int64, error)
	DeleteByUser(ctx context.Context, userID primitive.ObjectID) (int64, error)
	AddLike(ctx context.Context, postID, userID primitive.ObjectID) error
	RemoveLike(ctx context.Context, postID, userID primitive.ObjectID) error
	AppendComment(ctx context.Context, postID primitive.ObjectID, comment model.Comment) error
}

type postRepoImpl struct {
	col *mongo.Collection
}

func NewPostRepo(database *mongo.Database) PostRepo {
	return &postRepoImpl{
		col: database.Collection(db.PostCollection),
	}
}

func (s *postRepoImpl) Create(ctx context.Context, post *model.Post) error {
	post.ID = primitive.NewObjectID()
	post.CreatedAt = time.Now()
	post.UpdatedAt = post.CreatedAt
	_, err := s.col.InsertOne(ctx, post)
	return err
}

func (s *postRepoImpl) GetByID(ctx context.Context, id primitive.ObjectID) (*model.Post, error) {
	var post model.Post
	err := s.col.FindOne(ctx, bson.M{"_id": id}).Decode(&post)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &post, nil
}

func (s *postRepoImpl) ListByUser(ctx context.Context, userID primitive.ObjectID) ([]*model.Post, error) {
	return s.find(ctx, bson.M{"user_id": userID})
}

func (s *postRepoImpl) ListAll(ctx context.Context) ([]*model.Post, error) {
	return s.find(ctx, bson.M{})
}

func (s *postRepoImpl) find(ctx context.Context, filter bson.M) ([]*model.Post, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})

	cursor, err := s.col.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = cursor.Close(ctx)
	}()

	var posts []*model.Post
	if err := cursor.All(ctx, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// Save 整文档回写，仅用于字段编辑；点赞与评论走原子更新
func (s *postRepoImpl) Save(ctx context.Context, post *model.Post) error {
	post.UpdatedAt = time.Now()
	res, err := s.col.ReplaceOne(ctx, bson.M{"_id": post.ID}, post)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (s *postRepoImpl) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := s.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

func (s *postRepoImpl) DeleteByUser(ctx context.Context, userID primitive.ObjectID) (int64, error) {
	res, err := s.col.DeleteMany(ctx, bson.M{"user_id": userID})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// AddLike $addToSet 保证点赞集合元素级去重，跨用户并发互不覆盖
func (s *postRepoImpl) AddLike(ctx context.Context, postID, userID primitive.ObjectID) error {
	res, err := s.col.UpdateOne(ctx,
		bson.M{"_id": postID},
		bson.M{"$addToSet": bson.M{"likes": userID}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (s *postRepoImpl) RemoveLike(ctx context.Context, postID, userID primitive.ObjectID) error {
	res, err := s.col.UpdateOne(ctx,
		bson.M{"_id": postID},
		bson.M{"$pull": bson.M{"likes": userID}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// AppendComment 评论只追加，不提供任何修改或删除入口
func (s *postRepoImpl) AppendComment(ctx context.Context, postID primitive.ObjectID, comment model.Comment) error {
	res, err := s.col.UpdateOne(ctx,
		bson.M{"_id": postID},
		bson.M{"$push": bson.M{"comments": comment}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}
