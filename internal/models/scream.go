package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Scream represents a post stored in the screams collection
type Scream struct {
	ID           primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	UserHandle   string             `json:"userHandle" bson:"userHandle"`
	Body         string             `json:"body" bson:"body"`
	UserImage    string             `json:"userImage" bson:"userImage"` // author's image URL at posting time
	CreatedAt    time.Time          `json:"createdAt" bson:"createdAt"`
	LikeCount    int                `json:"likeCount" bson:"likeCount"`
	CommentCount int                `json:"commentCount" bson:"commentCount"`
}

// CreateScreamRequest defines the request body for posting a scream
type CreateScreamRequest struct {
	Body string `json:"body"`
}
