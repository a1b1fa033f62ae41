package repositories

import (
	"context"

	"github.com/scream-social/backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// LikeRepository defines the interface for like data operations
type LikeRepository interface {
	CreateLike(ctx context.Context, like *models.Like) error
	GetLike(ctx context.Context, handle, screamID string) (*models.Like, error)
	GetLikesByUserHandle(ctx context.Context, handle string) ([]models.Like, error)
	DeleteLike(ctx context.Context, id string) error
	DeleteByScreamID(ctx context.Context, screamID string) error
}

// MongoLikeRepository implements LikeRepository for MongoDB
type MongoLikeRepository struct {
	collection *mongo.Collection
}

// NewMongoLikeRepository creates a new MongoLikeRepository
func NewMongoLikeRepository(db *mongo.Database) *MongoLikeRepository {
	return &MongoLikeRepository{collection: db.Collection("likes")}
}

// CreateLike inserts a new like and fills in its generated id
func (r *MongoLikeRepository) CreateLike(ctx context.Context, like *models.Like) error {
	like.ID = primitive.NewObjectID()
	_, err := r.collection.InsertOne(ctx, like)
	return err
}

// GetLike retrieves the like a user placed on a scream, if any
func (r *MongoLikeRepository) GetLike(ctx context.Context, handle, screamID string) (*models.Like, error) {
	var like models.Like
	err := r.collection.FindOne(ctx, bson.M{"userHandle": handle, "screamId": screamID}).Decode(&like)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrLikeNotFound
		}
		return nil, err
	}
	return &like, nil
}

// GetLikesByUserHandle retrieves all likes placed by a user
func (r *MongoLikeRepository) GetLikesByUserHandle(ctx context.Context, handle string) ([]models.Like, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"userHandle": handle})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	likes := []models.Like{}
	if err = cursor.All(ctx, &likes); err != nil {
		return nil, err
	}
	return likes, nil
}

// DeleteLike deletes a like by id
func (r *MongoLikeRepository) DeleteLike(ctx context.Context, id string) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrLikeNotFound
	}

	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": objID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrLikeNotFound
	}
	return nil
}

// DeleteByScreamID removes all likes on a scream
func (r *MongoLikeRepository) DeleteByScreamID(ctx context.Context, screamID string) error {
	_, err := r.collection.DeleteMany(ctx, bson.M{"screamId": screamID})
	return err
}
