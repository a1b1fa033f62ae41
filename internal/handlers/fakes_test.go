package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"sort"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/scream-social/backend/internal/identity"
	"github.com/scream-social/backend/internal/models"
	"github.com/scream-social/backend/internal/repositories"
	"github.com/scream-social/backend/internal/router"
	"github.com/scream-social/backend/validators"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type testServer struct {
	e *echo.Echo
}

// newEcho builds an Echo instance wired the way the server wires it
func newEcho() *echo.Echo {
	e := echo.New()
	e.Validator = validators.NewValidator()
	e.HTTPErrorHandler = router.JSONErrorHandler
	return e
}

// authStub stands in for the Firebase middleware; tests pick the caller via
// the X-Test-Handle and X-Test-Image request headers
func authStub() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			handle := c.Request().Header.Get("X-Test-Handle")
			if handle == "" {
				handle = "alice"
			}
			c.Set("firebaseUID", "uid-"+handle)
			c.Set("userHandle", handle)
			c.Set("userImage", c.Request().Header.Get("X-Test-Image"))
			return next(c)
		}
	}
}

func doJSON(e *echo.Echo, method, target string, body interface{}, headers map[string]string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != nil {
		b, _ := json.Marshal(body)
		reader = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, target, reader)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

type errorEnvelope struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
	Errors map[string]string `json:"errors"`
}

func decodeError(rec *httptest.ResponseRecorder) errorEnvelope {
	var env errorEnvelope
	_ = json.Unmarshal(rec.Body.Bytes(), &env)
	return env
}

// --- in-memory repositories ---

type fakeScreamRepo struct {
	screams map[string]*models.Scream
}

func newFakeScreamRepo() *fakeScreamRepo {
	return &fakeScreamRepo{screams: make(map[string]*models.Scream)}
}

func (r *fakeScreamRepo) CreateScream(_ context.Context, scream *models.Scream) error {
	scream.ID = primitive.NewObjectID()
	if scream.CreatedAt.IsZero() {
		scream.CreatedAt = time.Now().UTC()
	}
	copied := *scream
	r.screams[scream.ID.Hex()] = &copied
	return nil
}

func (r *fakeScreamRepo) GetScreamByID(_ context.Context, id string) (*models.Scream, error) {
	scream, ok := r.screams[id]
	if !ok {
		return nil, repositories.ErrScreamNotFound
	}
	copied := *scream
	return &copied, nil
}

func (r *fakeScreamRepo) GetAllScreams(context.Context) ([]models.Scream, error) {
	screams := []models.Scream{}
	for _, s := range r.screams {
		screams = append(screams, *s)
	}
	sort.Slice(screams, func(i, j int) bool { return screams[i].CreatedAt.After(screams[j].CreatedAt) })
	return screams, nil
}

func (r *fakeScreamRepo) GetScreamsByUserHandle(_ context.Context, handle string) ([]models.Scream, error) {
	screams := []models.Scream{}
	for _, s := range r.screams {
		if s.UserHandle == handle {
			screams = append(screams, *s)
		}
	}
	sort.Slice(screams, func(i, j int) bool { return screams[i].CreatedAt.After(screams[j].CreatedAt) })
	return screams, nil
}

func (r *fakeScreamRepo) DeleteScream(_ context.Context, id string) error {
	if _, ok := r.screams[id]; !ok {
		return repositories.ErrScreamNotFound
	}
	delete(r.screams, id)
	return nil
}

func (r *fakeScreamRepo) AddToLikeCount(_ context.Context, id string, delta int) (*models.Scream, error) {
	scream, ok := r.screams[id]
	if !ok {
		return nil, repositories.ErrScreamNotFound
	}
	scream.LikeCount += delta
	copied := *scream
	return &copied, nil
}

func (r *fakeScreamRepo) AddToCommentCount(_ context.Context, id string, delta int) (*models.Scream, error) {
	scream, ok := r.screams[id]
	if !ok {
		return nil, repositories.ErrScreamNotFound
	}
	scream.CommentCount += delta
	copied := *scream
	return &copied, nil
}

func (r *fakeScreamRepo) UpdateUserImage(_ context.Context, handle, imageURL string) error {
	for _, s := range r.screams {
		if s.UserHandle == handle {
			s.UserImage = imageURL
		}
	}
	return nil
}

type fakeCommentRepo struct {
	comments []models.Comment
}

func (r *fakeCommentRepo) CreateComment(_ context.Context, comment *models.Comment) error {
	comment.ID = primitive.NewObjectID()
	if comment.CreatedAt.IsZero() {
		comment.CreatedAt = time.Now().UTC()
	}
	r.comments = append(r.comments, *comment)
	return nil
}

func (r *fakeCommentRepo) GetCommentsByScreamID(_ context.Context, screamID string) ([]models.Comment, error) {
	comments := []models.Comment{}
	for _, c := range r.comments {
		if c.ScreamID == screamID {
			comments = append(comments, c)
		}
	}
	return comments, nil
}

func (r *fakeCommentRepo) DeleteByScreamID(_ context.Context, screamID string) error {
	kept := r.comments[:0]
	for _, c := range r.comments {
		if c.ScreamID != screamID {
			kept = append(kept, c)
		}
	}
	r.comments = kept
	return nil
}

type fakeLikeRepo struct {
	likes []models.Like
}

func (r *fakeLikeRepo) CreateLike(_ context.Context, like *models.Like) error {
	like.ID = primitive.NewObjectID()
	r.likes = append(r.likes, *like)
	return nil
}

func (r *fakeLikeRepo) GetLike(_ context.Context, handle, screamID string) (*models.Like, error) {
	for _, l := range r.likes {
		if l.UserHandle == handle && l.ScreamID == screamID {
			copied := l
			return &copied, nil
		}
	}
	return nil, repositories.ErrLikeNotFound
}

func (r *fakeLikeRepo) GetLikesByUserHandle(_ context.Context, handle string) ([]models.Like, error) {
	likes := []models.Like{}
	for _, l := range r.likes {
		if l.UserHandle == handle {
			likes = append(likes, l)
		}
	}
	return likes, nil
}

func (r *fakeLikeRepo) DeleteLike(_ context.Context, id string) error {
	for i, l := range r.likes {
		if l.ID.Hex() == id {
			r.likes = append(r.likes[:i], r.likes[i+1:]...)
			return nil
		}
	}
	return repositories.ErrLikeNotFound
}

func (r *fakeLikeRepo) DeleteByScreamID(_ context.Context, screamID string) error {
	kept := r.likes[:0]
	for _, l := range r.likes {
		if l.ScreamID != screamID {
			kept = append(kept, l)
		}
	}
	r.likes = kept
	return nil
}

type fakeUserRepo struct {
	users map[string]*models.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*models.User)}
}

func (r *fakeUserRepo) CreateUser(_ context.Context, user *models.User) error {
	copied := *user
	r.users[user.Handle] = &copied
	return nil
}

func (r *fakeUserRepo) GetUserByHandle(_ context.Context, handle string) (*models.User, error) {
	user, ok := r.users[handle]
	if !ok {
		return nil, repositories.ErrUserNotFound
	}
	copied := *user
	return &copied, nil
}

func (r *fakeUserRepo) GetUserByUserID(_ context.Context, userID string) (*models.User, error) {
	for _, u := range r.users {
		if u.UserID == userID {
			copied := *u
			return &copied, nil
		}
	}
	return nil, repositories.ErrUserNotFound
}

func (r *fakeUserRepo) UpdateDetails(_ context.Context, handle string, details map[string]interface{}) error {
	user, ok := r.users[handle]
	if !ok {
		return repositories.ErrUserNotFound
	}
	if bio, ok := details["bio"].(string); ok {
		user.Bio = bio
	}
	if website, ok := details["website"].(string); ok {
		user.Website = website
	}
	if location, ok := details["location"].(string); ok {
		user.Location = location
	}
	return nil
}

func (r *fakeUserRepo) UpdateImage(_ context.Context, handle, imageURL string) error {
	user, ok := r.users[handle]
	if !ok {
		return repositories.ErrUserNotFound
	}
	user.ImageURL = imageURL
	return nil
}

type fakeNotificationRepo struct {
	notifications map[string]*models.Notification
}

func newFakeNotificationRepo() *fakeNotificationRepo {
	return &fakeNotificationRepo{notifications: make(map[string]*models.Notification)}
}

func (r *fakeNotificationRepo) SetNotification(_ context.Context, n *models.Notification) error {
	copied := *n
	r.notifications[n.ID] = &copied
	return nil
}

func (r *fakeNotificationRepo) DeleteNotification(_ context.Context, id string) error {
	delete(r.notifications, id)
	return nil
}

func (r *fakeNotificationRepo) DeleteByScreamID(_ context.Context, screamID string) error {
	for id, n := range r.notifications {
		if n.ScreamID == screamID {
			delete(r.notifications, id)
		}
	}
	return nil
}

func (r *fakeNotificationRepo) MarkRead(_ context.Context, ids []string) error {
	for _, id := range ids {
		if n, ok := r.notifications[id]; ok {
			n.Read = true
		}
	}
	return nil
}

// fakeGateway is an in-memory identity provider
type fakeGateway struct {
	passwords map[string]string
}

func newFakeGateway() *fakeGateway {
	return &fakeGateway{passwords: make(map[string]string)}
}

func (g *fakeGateway) CreateUser(_ context.Context, email, password string) (string, error) {
	if _, ok := g.passwords[email]; ok {
		return "", identity.ErrEmailInUse
	}
	g.passwords[email] = password
	return "uid-" + email, nil
}

func (g *fakeGateway) SignInWithPassword(_ context.Context, email, password string) (string, error) {
	stored, ok := g.passwords[email]
	if !ok || stored != password {
		return "", identity.ErrWrongCredentials
	}
	return "token-" + email, nil
}

// fakeImageStore records saved images instead of talking to a bucket
type fakeImageStore struct {
	saved map[string]string // filename -> content type
}

func newFakeImageStore() *fakeImageStore {
	return &fakeImageStore{saved: make(map[string]string)}
}

func (s *fakeImageStore) Save(_ context.Context, filename, contentType string, r io.Reader) (string, error) {
	if _, err := io.Copy(io.Discard, r); err != nil {
		return "", err
	}
	s.saved[filename] = contentType
	return "https://firebasestorage.googleapis.com/v0/b/test-bucket/o/" + filename + "?alt=media", nil
}
