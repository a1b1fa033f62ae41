package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/scream-social/backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ScreamRepository defines the interface for scream data operations
type ScreamRepository interface {
	CreateScream(ctx context.Context, scream *models.Scream) error
	GetScreamByID(ctx context.Context, id string) (*models.Scream, error)
	GetAllScreams(ctx context.Context) ([]models.Scream, error)
	GetScreamsByUserHandle(ctx context.Context, handle string) ([]models.Scream, error)
	DeleteScream(ctx context.Context, id string) error
	AddToLikeCount(ctx context.Context, id string, delta int) (*models.Scream, error)
	AddToCommentCount(ctx context.Context, id string, delta int) (*models.Scream, error)
	UpdateUserImage(ctx context.Context, handle, imageURL string) error
}

// MongoScreamRepository implements ScreamRepository for MongoDB
type MongoScreamRepository struct {
	collection *mongo.Collection
}

// NewMongoScreamRepository creates a new MongoScreamRepository
func NewMongoScreamRepository(db *mongo.Database) *MongoScreamRepository {
	return &MongoScreamRepository{collection: db.Collection("screams")}
}

// CreateScream inserts a new scream and fills in its generated id
func (r *MongoScreamRepository) CreateScream(ctx context.Context, scream *models.Scream) error {
	scream.ID = primitive.NewObjectID()
	scream.CreatedAt = time.Now().UTC()
	_, err := r.collection.InsertOne(ctx, scream)
	return err
}

// GetScreamByID retrieves a scream by id
func (r *MongoScreamRepository) GetScreamByID(ctx context.Context, id string) (*models.Scream, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrScreamNotFound
	}

	var scream models.Scream
	err = r.collection.FindOne(ctx, bson.M{"_id": objID}).Decode(&scream)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrScreamNotFound
		}
		return nil, err
	}
	return &scream, nil
}

// GetAllScreams retrieves all screams, newest first
func (r *MongoScreamRepository) GetAllScreams(ctx context.Context) ([]models.Scream, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.D{}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	screams := []models.Scream{}
	if err = cursor.All(ctx, &screams); err != nil {
		return nil, err
	}
	return screams, nil
}

// GetScreamsByUserHandle retrieves a user's screams, newest first
func (r *MongoScreamRepository) GetScreamsByUserHandle(ctx context.Context, handle string) ([]models.Scream, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{"userHandle": handle}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	screams := []models.Scream{}
	if err = cursor.All(ctx, &screams); err != nil {
		return nil, err
	}
	return screams, nil
}

// DeleteScream deletes a scream by id
func (r *MongoScreamRepository) DeleteScream(ctx context.Context, id string) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrScreamNotFound
	}

	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": objID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrScreamNotFound
	}
	return nil
}

// AddToLikeCount atomically adjusts likeCount and returns the updated scream
func (r *MongoScreamRepository) AddToLikeCount(ctx context.Context, id string, delta int) (*models.Scream, error) {
	return r.addToCounter(ctx, id, "likeCount", delta)
}

// AddToCommentCount atomically adjusts commentCount and returns the updated scream
func (r *MongoScreamRepository) AddToCommentCount(ctx context.Context, id string, delta int) (*models.Scream, error) {
	return r.addToCounter(ctx, id, "commentCount", delta)
}

func (r *MongoScreamRepository) addToCounter(ctx context.Context, id, field string, delta int) (*models.Scream, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrScreamNotFound
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var scream models.Scream
	err = r.collection.FindOneAndUpdate(ctx,
		bson.M{"_id": objID},
		bson.M{"$inc": bson.M{field: delta}},
		opts,
	).Decode(&scream)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrScreamNotFound
		}
		return nil, fmt.Errorf("updating %s: %w", field, err)
	}
	return &scream, nil
}

// UpdateUserImage rewrites the denormalized author image on all of a user's screams
func (r *MongoScreamRepository) UpdateUserImage(ctx context.Context, handle, imageURL string) error {
	_, err := r.collection.UpdateMany(ctx,
		bson.M{"userHandle": handle},
		bson.M{"$set": bson.M{"userImage": imageURL}},
	)
	return err
}
