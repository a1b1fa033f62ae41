package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Comment represents a comment on a scream
type Comment struct {
	ID         primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	ScreamID   string             `json:"screamId" bson:"screamId"`
	UserHandle string             `json:"userHandle" bson:"userHandle"`
	UserImage  string             `json:"userImage" bson:"userImage"`
	Body       string             `json:"body" bson:"body"`
	CreatedAt  time.Time          `json:"createdAt" bson:"createdAt"`
}

// CreateCommentRequest defines the request body for commenting on a scream
type CreateCommentRequest struct {
	Body string `json:"body"`
}
