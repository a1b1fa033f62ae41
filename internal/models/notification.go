package models

import "time"

// Notification types
const (
	NotificationTypeLike    = "like"
	NotificationTypeComment = "comment"
)

// Notification represents a user notification. Its document key reuses the
// id of the like or comment that produced it, so fan-out writes are
// idempotent and the like-deletion trigger can find it without a query.
type Notification struct {
	ID        string    `json:"id" bson:"_id"`
	Recipient string    `json:"recipient" bson:"recipient"`
	Sender    string    `json:"sender" bson:"sender"`
	Type      string    `json:"type" bson:"type"`
	Read      bool      `json:"read" bson:"read"`
	ScreamID  string    `json:"screamId" bson:"screamId"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
}
