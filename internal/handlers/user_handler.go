package handlers

import (
	"context"
	"errors"
	"io"
	"net/http"
	"path"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/scream-social/backend/internal/models"
	"github.com/scream-social/backend/internal/repositories"
)

// ImageStore persists an uploaded image and returns its public URL
type ImageStore interface {
	Save(ctx context.Context, filename, contentType string, r io.Reader) (string, error)
}

// UserHandler handles HTTP requests related to user profiles
type UserHandler struct {
	userRepository         repositories.UserRepository
	screamRepository       repositories.ScreamRepository
	likeRepository         repositories.LikeRepository
	notificationRepository repositories.NotificationRepository
	images                 ImageStore
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(
	userRepo repositories.UserRepository,
	screamRepo repositories.ScreamRepository,
	likeRepo repositories.LikeRepository,
	notificationRepo repositories.NotificationRepository,
	images ImageStore,
) *UserHandler {
	return &UserHandler{
		userRepository:         userRepo,
		screamRepository:       screamRepo,
		likeRepository:         likeRepo,
		notificationRepository: notificationRepo,
		images:                 images,
	}
}

// RegisterUserRoutes registers user profile routes
func (h *UserHandler) RegisterUserRoutes(public, protected *echo.Group) {
	protected.POST("/user/image", h.UploadImage)
	protected.POST("/user/", h.AddUserDetails)
	protected.GET("/user", h.GetAuthenticatedUser)
	public.GET("/user/:handle", h.GetUserDetails)
	protected.POST("/notifications", h.MarkNotificationsRead)
}

// UploadImage stores a new profile image under a random filename and points
// the user's imageUrl at it. Screams pick up the new URL via the image
// trigger, not here.
func (h *UserHandler) UploadImage(c echo.Context) error {
	userHandle := c.Get("userHandle").(string)

	file, err := c.FormFile("image")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Image file is required")
	}

	contentType := file.Header.Get("Content-Type")
	if contentType != "image/jpeg" && contentType != "image/png" {
		return echo.NewHTTPError(http.StatusBadRequest, "Wrong file type submitted")
	}

	src, err := file.Open()
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	defer src.Close()

	filename := uuid.NewString() + path.Ext(file.Filename)
	imageURL, err := h.images.Save(c.Request().Context(), filename, contentType, src)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if err := h.userRepository.UpdateImage(c.Request().Context(), userHandle, imageURL); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "Image uploaded successfully"})
}

// AddUserDetails sets the caller's optional profile fields
func (h *UserHandler) AddUserDetails(c echo.Context) error {
	userHandle := c.Get("userHandle").(string)

	var req models.UserDetailsRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	if err := h.userRepository.UpdateDetails(c.Request().Context(), userHandle, req.Details()); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "Details added successfully"})
}

// GetAuthenticatedUser returns the caller's credentials and likes
func (h *UserHandler) GetAuthenticatedUser(c echo.Context) error {
	userHandle := c.Get("userHandle").(string)

	user, err := h.userRepository.GetUserByHandle(c.Request().Context(), userHandle)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	likes, err := h.likeRepository.GetLikesByUserHandle(c.Request().Context(), userHandle)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{"credentials": user, "likes": likes})
}

// GetUserDetails returns a user's public profile with their screams
func (h *UserHandler) GetUserDetails(c echo.Context) error {
	handle := c.Param("handle")

	user, err := h.userRepository.GetUserByHandle(c.Request().Context(), handle)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "User not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	screams, err := h.screamRepository.GetScreamsByUserHandle(c.Request().Context(), handle)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{"user": user, "screams": screams})
}

// MarkNotificationsRead marks the given notification ids as read
func (h *UserHandler) MarkNotificationsRead(c echo.Context) error {
	var ids []string
	if err := c.Bind(&ids); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	if err := h.notificationRepository.MarkRead(c.Request().Context(), ids); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "Notifications marked read"})
}
