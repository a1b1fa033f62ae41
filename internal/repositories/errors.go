package repositories

import "errors"

// Sentinel errors shared by the repository implementations
var (
	ErrScreamNotFound = errors.New("scream not found")
	ErrUserNotFound   = errors.New("user not found")
	ErrLikeNotFound   = errors.New("like not found")
)
