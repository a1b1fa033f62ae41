package triggers_test

import (
	"context"
	"errors"

	"github.com/scream-social/backend/internal/models"
	"github.com/scream-social/backend/internal/repositories"
)

// Minimal in-memory stand-ins for the repository interfaces. Only the
// methods the triggers exercise do real work.

type memScreamRepo struct {
	screams map[string]*models.Scream
}

func newMemScreamRepo() *memScreamRepo {
	return &memScreamRepo{screams: make(map[string]*models.Scream)}
}

func (r *memScreamRepo) CreateScream(_ context.Context, scream *models.Scream) error {
	copied := *scream
	r.screams[scream.ID.Hex()] = &copied
	return nil
}

func (r *memScreamRepo) GetScreamByID(_ context.Context, id string) (*models.Scream, error) {
	scream, ok := r.screams[id]
	if !ok {
		return nil, repositories.ErrScreamNotFound
	}
	copied := *scream
	return &copied, nil
}

func (r *memScreamRepo) GetAllScreams(context.Context) ([]models.Scream, error) { return nil, nil }

func (r *memScreamRepo) GetScreamsByUserHandle(context.Context, string) ([]models.Scream, error) {
	return nil, nil
}

func (r *memScreamRepo) DeleteScream(_ context.Context, id string) error {
	delete(r.screams, id)
	return nil
}

func (r *memScreamRepo) AddToLikeCount(context.Context, string, int) (*models.Scream, error) {
	return nil, repositories.ErrScreamNotFound
}

func (r *memScreamRepo) AddToCommentCount(context.Context, string, int) (*models.Scream, error) {
	return nil, repositories.ErrScreamNotFound
}

func (r *memScreamRepo) UpdateUserImage(_ context.Context, handle, imageURL string) error {
	for _, s := range r.screams {
		if s.UserHandle == handle {
			s.UserImage = imageURL
		}
	}
	return nil
}

type memNotificationRepo struct {
	notifications map[string]*models.Notification
}

func newMemNotificationRepo() *memNotificationRepo {
	return &memNotificationRepo{notifications: make(map[string]*models.Notification)}
}

func (r *memNotificationRepo) SetNotification(_ context.Context, n *models.Notification) error {
	copied := *n
	r.notifications[n.ID] = &copied
	return nil
}

func (r *memNotificationRepo) DeleteNotification(_ context.Context, id string) error {
	delete(r.notifications, id)
	return nil
}

func (r *memNotificationRepo) DeleteByScreamID(_ context.Context, screamID string) error {
	for id, n := range r.notifications {
		if n.ScreamID == screamID {
			delete(r.notifications, id)
		}
	}
	return nil
}

func (r *memNotificationRepo) MarkRead(context.Context, []string) error { return nil }

type memCommentRepo struct {
	comments  []models.Comment
	deleteErr error
}

func (r *memCommentRepo) CreateComment(_ context.Context, comment *models.Comment) error {
	r.comments = append(r.comments, *comment)
	return nil
}

func (r *memCommentRepo) GetCommentsByScreamID(context.Context, string) ([]models.Comment, error) {
	return r.comments, nil
}

func (r *memCommentRepo) DeleteByScreamID(_ context.Context, screamID string) error {
	if r.deleteErr != nil {
		return r.deleteErr
	}
	kept := r.comments[:0]
	for _, c := range r.comments {
		if c.ScreamID != screamID {
			kept = append(kept, c)
		}
	}
	r.comments = kept
	return nil
}

type memLikeRepo struct {
	likes []models.Like
}

func (r *memLikeRepo) CreateLike(_ context.Context, like *models.Like) error {
	r.likes = append(r.likes, *like)
	return nil
}

func (r *memLikeRepo) GetLike(context.Context, string, string) (*models.Like, error) {
	return nil, repositories.ErrLikeNotFound
}

func (r *memLikeRepo) GetLikesByUserHandle(context.Context, string) ([]models.Like, error) {
	return nil, nil
}

func (r *memLikeRepo) DeleteLike(context.Context, string) error { return nil }

func (r *memLikeRepo) DeleteByScreamID(_ context.Context, screamID string) error {
	kept := r.likes[:0]
	for _, l := range r.likes {
		if l.ScreamID != screamID {
			kept = append(kept, l)
		}
	}
	r.likes = kept
	return nil
}

// passthroughTxn runs the callback directly, recording the calls
type passthroughTxn struct {
	calls int
}

func (t *passthroughTxn) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	t.calls++
	return fn(ctx)
}

var errDeleteFailed = errors.New("delete failed")
