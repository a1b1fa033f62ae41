package repositories

import (
	"context"

	"github.com/scream-social/backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// UserRepository defines the interface for user profile operations
type UserRepository interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByHandle(ctx context.Context, handle string) (*models.User, error)
	GetUserByUserID(ctx context.Context, userID string) (*models.User, error)
	UpdateDetails(ctx context.Context, handle string, details map[string]interface{}) error
	UpdateImage(ctx context.Context, handle, imageURL string) error
}

// MongoUserRepository implements UserRepository for MongoDB
type MongoUserRepository struct {
	collection *mongo.Collection
}

// NewMongoUserRepository creates a new MongoUserRepository
func NewMongoUserRepository(db *mongo.Database) *MongoUserRepository {
	return &MongoUserRepository{collection: db.Collection("users")}
}

// CreateUser inserts a new profile document keyed by handle
func (r *MongoUserRepository) CreateUser(ctx context.Context, user *models.User) error {
	_, err := r.collection.InsertOne(ctx, user)
	return err
}

// GetUserByHandle retrieves a profile by handle
func (r *MongoUserRepository) GetUserByHandle(ctx context.Context, handle string) (*models.User, error) {
	var user models.User
	err := r.collection.FindOne(ctx, bson.M{"_id": handle}).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// GetUserByUserID retrieves the profile whose userId matches the
// identity-provider subject id
func (r *MongoUserRepository) GetUserByUserID(ctx context.Context, userID string) (*models.User, error) {
	var user models.User
	err := r.collection.FindOne(ctx, bson.M{"userId": userID}).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// UpdateDetails sets the given profile fields on a user document
func (r *MongoUserRepository) UpdateDetails(ctx context.Context, handle string, details map[string]interface{}) error {
	if len(details) == 0 {
		return nil
	}
	set := bson.M{}
	for field, value := range details {
		set[field] = value
	}
	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": handle}, bson.M{"$set": set})
	return err
}

// UpdateImage sets a user's profile image URL
func (r *MongoUserRepository) UpdateImage(ctx context.Context, handle, imageURL string) error {
	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": handle}, bson.M{"$set": bson.M{"imageUrl": imageURL}})
	return err
}
