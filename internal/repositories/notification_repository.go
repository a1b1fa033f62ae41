package repositories

import (
	"context"

	"github.com/scream-social/backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// NotificationRepository defines the interface for notification operations
type NotificationRepository interface {
	SetNotification(ctx context.Context, notification *models.Notification) error
	DeleteNotification(ctx context.Context, id string) error
	DeleteByScreamID(ctx context.Context, screamID string) error
	MarkRead(ctx context.Context, ids []string) error
}

// MongoNotificationRepository implements NotificationRepository for MongoDB
type MongoNotificationRepository struct {
	collection *mongo.Collection
}

// NewMongoNotificationRepository creates a new MongoNotificationRepository
func NewMongoNotificationRepository(db *mongo.Database) *MongoNotificationRepository {
	return &MongoNotificationRepository{collection: db.Collection("notifications")}
}

// SetNotification upserts a notification keyed by its source document id.
// Redelivered trigger events overwrite the same document.
func (r *MongoNotificationRepository) SetNotification(ctx context.Context, notification *models.Notification) error {
	opts := options.Replace().SetUpsert(true)
	_, err := r.collection.ReplaceOne(ctx, bson.M{"_id": notification.ID}, notification, opts)
	return err
}

// DeleteNotification removes a notification by id. Deleting an absent
// notification is a no-op.
func (r *MongoNotificationRepository) DeleteNotification(ctx context.Context, id string) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	return err
}

// DeleteByScreamID removes all notifications referencing a scream
func (r *MongoNotificationRepository) DeleteByScreamID(ctx context.Context, screamID string) error {
	_, err := r.collection.DeleteMany(ctx, bson.M{"screamId": screamID})
	return err
}

// MarkRead marks the given notifications as read
func (r *MongoNotificationRepository) MarkRead(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	_, err := r.collection.UpdateMany(ctx,
		bson.M{"_id": bson.M{"$in": ids}},
		bson.M{"$set": bson.M{"read": true}},
	)
	return err
}
