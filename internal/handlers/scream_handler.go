package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/scream-social/backend/internal/models"
	"github.com/scream-social/backend/internal/repositories"
)

// ScreamHandler handles HTTP requests related to screams
type ScreamHandler struct {
	screamRepository  repositories.ScreamRepository
	commentRepository repositories.CommentRepository
}

// NewScreamHandler creates a new ScreamHandler
func NewScreamHandler(screamRepo repositories.ScreamRepository, commentRepo repositories.CommentRepository) *ScreamHandler {
	return &ScreamHandler{
		screamRepository:  screamRepo,
		commentRepository: commentRepo,
	}
}

// RegisterScreamRoutes registers scream-related routes
func (h *ScreamHandler) RegisterScreamRoutes(public, protected *echo.Group) {
	public.GET("/screams", h.GetScreams)
	protected.POST("/screams", h.CreateScream)
	protected.GET("/screams/:screamId", h.GetScream)
	protected.DELETE("/screams/:screamId", h.DeleteScream)
}

// GetScreams retrieves all screams, newest first
func (h *ScreamHandler) GetScreams(c echo.Context) error {
	screams, err := h.screamRepository.GetAllScreams(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{"screams": screams})
}

// CreateScream creates a new scream. The body is not validated; an empty
// scream is accepted.
func (h *ScreamHandler) CreateScream(c echo.Context) error {
	userHandle := c.Get("userHandle").(string)
	userImage := c.Get("userImage").(string)

	var req models.CreateScreamRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	scream := &models.Scream{
		UserHandle:   userHandle,
		Body:         req.Body,
		UserImage:    userImage,
		CreatedAt:    time.Now().UTC(),
		LikeCount:    0,
		CommentCount: 0,
	}

	if err := h.screamRepository.CreateScream(c.Request().Context(), scream); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, scream)
}

// GetScream retrieves a scream together with its comments
func (h *ScreamHandler) GetScream(c echo.Context) error {
	screamID := c.Param("screamId")

	scream, err := h.screamRepository.GetScreamByID(c.Request().Context(), screamID)
	if err != nil {
		if errors.Is(err, repositories.ErrScreamNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Scream not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	comments, err := h.commentRepository.GetCommentsByScreamID(c.Request().Context(), screamID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{"scream": scream, "comments": comments})
}

// DeleteScream deletes a scream. Only the author may delete it; children are
// cleaned up asynchronously by the cascade trigger.
func (h *ScreamHandler) DeleteScream(c echo.Context) error {
	userHandle := c.Get("userHandle").(string)
	screamID := c.Param("screamId")

	scream, err := h.screamRepository.GetScreamByID(c.Request().Context(), screamID)
	if err != nil {
		if errors.Is(err, repositories.ErrScreamNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Scream not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if scream.UserHandle != userHandle {
		return echo.NewHTTPError(http.StatusForbidden, "Unauthorized")
	}

	if err := h.screamRepository.DeleteScream(c.Request().Context(), screamID); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "Scream deleted successfully"})
}
