package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/scream-social/backend/internal/models"
	"github.com/scream-social/backend/internal/repositories"
	"golang.org/x/sync/errgroup"
)

// LikeHandler handles HTTP requests related to likes
type LikeHandler struct {
	likeRepository   repositories.LikeRepository
	screamRepository repositories.ScreamRepository
}

// NewLikeHandler creates a new LikeHandler
func NewLikeHandler(likeRepo repositories.LikeRepository, screamRepo repositories.ScreamRepository) *LikeHandler {
	return &LikeHandler{
		likeRepository:   likeRepo,
		screamRepository: screamRepo,
	}
}

// RegisterLikeRoutes registers like-related routes
func (h *LikeHandler) RegisterLikeRoutes(protected *echo.Group) {
	protected.POST("/screams/:screamId/like", h.LikeScream)
	protected.POST("/screams/:screamId/unlike", h.UnlikeScream)
}

// lookupScreamAndLike fetches the scream and the caller's like on it
// concurrently; the two reads have no ordering dependency
func (h *LikeHandler) lookupScreamAndLike(c echo.Context, handle, screamID string) (*models.Scream, *models.Like, error) {
	var (
		scream *models.Scream
		like   *models.Like
	)
	g, ctx := errgroup.WithContext(c.Request().Context())
	g.Go(func() error {
		var err error
		scream, err = h.screamRepository.GetScreamByID(ctx, screamID)
		return err
	})
	g.Go(func() error {
		found, err := h.likeRepository.GetLike(ctx, handle, screamID)
		if err != nil {
			if errors.Is(err, repositories.ErrLikeNotFound) {
				return nil
			}
			return err
		}
		like = found
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return scream, like, nil
}

// LikeScream places a like on a scream and returns it with the incremented
// like counter
func (h *LikeHandler) LikeScream(c echo.Context) error {
	userHandle := c.Get("userHandle").(string)
	screamID := c.Param("screamId")

	_, like, err := h.lookupScreamAndLike(c, userHandle, screamID)
	if err != nil {
		if errors.Is(err, repositories.ErrScreamNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Scream not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if like != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Scream already liked")
	}

	newLike := &models.Like{ScreamID: screamID, UserHandle: userHandle}
	if err := h.likeRepository.CreateLike(c.Request().Context(), newLike); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	updated, err := h.screamRepository.AddToLikeCount(c.Request().Context(), screamID, 1)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, updated)
}

// UnlikeScream removes the caller's like from a scream and returns it with
// the decremented like counter
func (h *LikeHandler) UnlikeScream(c echo.Context) error {
	userHandle := c.Get("userHandle").(string)
	screamID := c.Param("screamId")

	_, like, err := h.lookupScreamAndLike(c, userHandle, screamID)
	if err != nil {
		if errors.Is(err, repositories.ErrScreamNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Scream not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if like == nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Scream not liked")
	}

	if err := h.likeRepository.DeleteLike(c.Request().Context(), like.ID.Hex()); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	updated, err := h.screamRepository.AddToLikeCount(c.Request().Context(), screamID, -1)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, updated)
}
