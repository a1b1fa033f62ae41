package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Like represents a like on a scream. At most one exists per
// (userHandle, screamId) pair.
type Like struct {
	ID         primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	ScreamID   string             `json:"screamId" bson:"screamId"`
	UserHandle string             `json:"userHandle" bson:"userHandle"`
}
