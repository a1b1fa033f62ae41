package triggers

import (
	"context"

	"github.com/scream-social/backend/internal/repositories"
)

// Cascade cleans up after scream deletions and propagates profile-image
// changes onto the author's screams
type Cascade struct {
	txn                    repositories.TxnRunner
	commentRepository      repositories.CommentRepository
	likeRepository         repositories.LikeRepository
	notificationRepository repositories.NotificationRepository
	screamRepository       repositories.ScreamRepository
}

// NewCascade creates a new Cascade
func NewCascade(
	txn repositories.TxnRunner,
	commentRepo repositories.CommentRepository,
	likeRepo repositories.LikeRepository,
	notificationRepo repositories.NotificationRepository,
	screamRepo repositories.ScreamRepository,
) *Cascade {
	return &Cascade{
		txn:                    txn,
		commentRepository:      commentRepo,
		likeRepository:         likeRepo,
		notificationRepository: notificationRepo,
		screamRepository:       screamRepo,
	}
}

// ScreamDeleted removes every comment, like and notification referencing the
// deleted scream in one atomic write scope
func (c *Cascade) ScreamDeleted(ctx context.Context, screamID string) error {
	return c.txn.WithTransaction(ctx, func(ctx context.Context) error {
		if err := c.commentRepository.DeleteByScreamID(ctx, screamID); err != nil {
			return err
		}
		if err := c.likeRepository.DeleteByScreamID(ctx, screamID); err != nil {
			return err
		}
		return c.notificationRepository.DeleteByScreamID(ctx, screamID)
	})
}

// UserImageChanged rewrites the denormalized author image on the user's
// screams. Comments and notifications keep their cached value.
func (c *Cascade) UserImageChanged(ctx context.Context, handle, imageURL string) error {
	return c.screamRepository.UpdateUserImage(ctx, handle, imageURL)
}
