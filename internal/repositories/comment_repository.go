package repositories

import (
	"context"
	"time"

	"github.com/scream-social/backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// CommentRepository defines the interface for comment data operations
type CommentRepository interface {
	CreateComment(ctx context.Context, comment *models.Comment) error
	GetCommentsByScreamID(ctx context.Context, screamID string) ([]models.Comment, error)
	DeleteByScreamID(ctx context.Context, screamID string) error
}

// MongoCommentRepository implements CommentRepository for MongoDB
type MongoCommentRepository struct {
	collection *mongo.Collection
}

// NewMongoCommentRepository creates a new MongoCommentRepository
func NewMongoCommentRepository(db *mongo.Database) *MongoCommentRepository {
	return &MongoCommentRepository{collection: db.Collection("comments")}
}

// CreateComment inserts a new comment and fills in its generated id
func (r *MongoCommentRepository) CreateComment(ctx context.Context, comment *models.Comment) error {
	comment.ID = primitive.NewObjectID()
	comment.CreatedAt = time.Now().UTC()
	_, err := r.collection.InsertOne(ctx, comment)
	return err
}

// GetCommentsByScreamID retrieves all comments on a scream
func (r *MongoCommentRepository) GetCommentsByScreamID(ctx context.Context, screamID string) ([]models.Comment, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"screamId": screamID})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	comments := []models.Comment{}
	if err = cursor.All(ctx, &comments); err != nil {
		return nil, err
	}
	return comments, nil
}

// DeleteByScreamID removes all comments on a scream
func (r *MongoCommentRepository) DeleteByScreamID(ctx context.Context, screamID string) error {
	_, err := r.collection.DeleteMany(ctx, bson.M{"screamId": screamID})
	return err
}
