package models

import (
	"strings"
	"time"
)

// User is the profile document stored in the users collection.
// The document key (_id) is the handle, so handles are unique and immutable.
type User struct {
	Handle    string    `json:"handle" bson:"_id"`
	Email     string    `json:"email" bson:"email"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
	UserID    string    `json:"userId" bson:"userId"` // identity-provider subject id
	ImageURL  string    `json:"imageUrl" bson:"imageUrl"`
	Bio       string    `json:"bio,omitempty" bson:"bio,omitempty"`
	Website   string    `json:"website,omitempty" bson:"website,omitempty"`
	Location  string    `json:"location,omitempty" bson:"location,omitempty"`
}

// SignupRequest defines the request body for creating a new account
type SignupRequest struct {
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required,min=5"`
	ConfirmPassword string `json:"confirmPassword" validate:"required,eqfield=Password"`
	Handle          string `json:"handle" validate:"required"`
}

// LoginRequest defines the request body for signing in
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UserDetailsRequest carries the optional profile fields a user may set
type UserDetailsRequest struct {
	Bio      string `json:"bio"`
	Website  string `json:"website"`
	Location string `json:"location"`
}

// Details reduces the request to the non-blank fields to be written.
// Bare websites get an http:// prefix.
func (r UserDetailsRequest) Details() map[string]interface{} {
	details := make(map[string]interface{})
	if bio := strings.TrimSpace(r.Bio); bio != "" {
		details["bio"] = r.Bio
	}
	if website := strings.TrimSpace(r.Website); website != "" {
		if !strings.HasPrefix(website, "http") {
			website = "http://" + website
		}
		details["website"] = website
	}
	if location := strings.TrimSpace(r.Location); location != "" {
		details["location"] = r.Location
	}
	return details
}
