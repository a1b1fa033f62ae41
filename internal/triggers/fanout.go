package triggers

import (
	"context"
	"errors"
	"time"

	"github.com/scream-social/backend/internal/models"
	"github.com/scream-social/backend/internal/repositories"
)

// Fanout reacts to like/comment writes by maintaining the author's
// notifications. Notification ids reuse the source document id, so every
// write here is an idempotent upsert.
type Fanout struct {
	screamRepository       repositories.ScreamRepository
	notificationRepository repositories.NotificationRepository
}

// NewFanout creates a new Fanout
func NewFanout(screamRepo repositories.ScreamRepository, notificationRepo repositories.NotificationRepository) *Fanout {
	return &Fanout{
		screamRepository:       screamRepo,
		notificationRepository: notificationRepo,
	}
}

// LikeCreated notifies a scream's author about a new like. Self-likes are
// silent, and a like on an already-deleted scream is ignored.
func (f *Fanout) LikeCreated(ctx context.Context, like models.Like) error {
	scream, err := f.screamRepository.GetScreamByID(ctx, like.ScreamID)
	if err != nil {
		if errors.Is(err, repositories.ErrScreamNotFound) {
			return nil
		}
		return err
	}

	if scream.UserHandle == like.UserHandle {
		return nil
	}

	return f.notificationRepository.SetNotification(ctx, &models.Notification{
		ID:        like.ID.Hex(),
		Recipient: scream.UserHandle,
		Sender:    like.UserHandle,
		Type:      models.NotificationTypeLike,
		Read:      false,
		ScreamID:  like.ScreamID,
		CreatedAt: time.Now().UTC(),
	})
}

// CommentCreated notifies a scream's author about a new comment
func (f *Fanout) CommentCreated(ctx context.Context, comment models.Comment) error {
	scream, err := f.screamRepository.GetScreamByID(ctx, comment.ScreamID)
	if err != nil {
		if errors.Is(err, repositories.ErrScreamNotFound) {
			return nil
		}
		return err
	}

	if scream.UserHandle == comment.UserHandle {
		return nil
	}

	return f.notificationRepository.SetNotification(ctx, &models.Notification{
		ID:        comment.ID.Hex(),
		Recipient: scream.UserHandle,
		Sender:    comment.UserHandle,
		Type:      models.NotificationTypeComment,
		Read:      false,
		ScreamID:  comment.ScreamID,
		CreatedAt: time.Now().UTC(),
	})
}

// LikeDeleted removes the notification created for a like, if any
func (f *Fanout) LikeDeleted(ctx context.Context, likeID string) error {
	return f.notificationRepository.DeleteNotification(ctx, likeID)
}
