package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/scream-social/backend/internal/identity"
	"github.com/scream-social/backend/internal/models"
	"github.com/scream-social/backend/internal/repositories"
	"github.com/scream-social/backend/pkg/firebase"
	"github.com/scream-social/backend/validators"
)

const noImageFile = "no-image.png"

// IdentityGateway is the slice of the identity provider the auth routes use
type IdentityGateway interface {
	CreateUser(ctx context.Context, email, password string) (string, error)
	SignInWithPassword(ctx context.Context, email, password string) (string, error)
}

// AuthHandler handles signup and login
type AuthHandler struct {
	userRepository repositories.UserRepository
	gateway        IdentityGateway
	noImageURL     string
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(userRepo repositories.UserRepository, gateway IdentityGateway, storageBucket string) *AuthHandler {
	return &AuthHandler{
		userRepository: userRepo,
		gateway:        gateway,
		noImageURL:     firebase.PublicURL(storageBucket, noImageFile),
	}
}

// RegisterAuthRoutes registers authentication-related routes
func (h *AuthHandler) RegisterAuthRoutes(public *echo.Group) {
	public.POST("/signup", h.Signup)
	public.POST("/login", h.Login)
}

// Signup registers a new account with the identity provider, creates the
// profile document keyed by handle, and returns the issued token
func (h *AuthHandler) Signup(c echo.Context) error {
	var req models.SignupRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	req.Email = strings.TrimSpace(req.Email)
	req.Handle = strings.TrimSpace(req.Handle)

	if err := c.Validate(&req); err != nil {
		return err
	}

	// Handles are the document key; an existing document means taken
	_, err := h.userRepository.GetUserByHandle(c.Request().Context(), req.Handle)
	if err == nil {
		return validators.NewFieldErrors("Bad request", map[string]string{"handle": "This handle is already taken"})
	}
	if !errors.Is(err, repositories.ErrUserNotFound) {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	uid, err := h.gateway.CreateUser(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, identity.ErrEmailInUse) {
			return validators.NewFieldErrors("Email is already in use", map[string]string{"email": "Email is already in use"})
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	token, err := h.gateway.SignInWithPassword(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	user := &models.User{
		Handle:    req.Handle,
		Email:     req.Email,
		CreatedAt: time.Now().UTC(),
		UserID:    uid,
		ImageURL:  h.noImageURL,
	}
	if err := h.userRepository.CreateUser(c.Request().Context(), user); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusCreated, echo.Map{"uid": uid, "token": token})
}

// Login exchanges email/password credentials for a token
func (h *AuthHandler) Login(c echo.Context) error {
	var req models.LoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	if err := c.Validate(&req); err != nil {
		return err
	}

	token, err := h.gateway.SignInWithPassword(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, identity.ErrWrongCredentials) {
			return echo.NewHTTPError(http.StatusForbidden, "Wrong credentials, please try again")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{"token": token})
}
