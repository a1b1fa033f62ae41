package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/scream-social/backend/internal/models"
	"github.com/scream-social/backend/internal/repositories"
)

// CommentHandler handles HTTP requests related to comments
type CommentHandler struct {
	commentRepository repositories.CommentRepository
	screamRepository  repositories.ScreamRepository
}

// NewCommentHandler creates a new CommentHandler
func NewCommentHandler(commentRepo repositories.CommentRepository, screamRepo repositories.ScreamRepository) *CommentHandler {
	return &CommentHandler{
		commentRepository: commentRepo,
		screamRepository:  screamRepo,
	}
}

// RegisterCommentRoutes registers comment-related routes
func (h *CommentHandler) RegisterCommentRoutes(protected *echo.Group) {
	protected.POST("/screams/:screamId/comments", h.CreateComment)
}

// CreateComment creates a comment on a scream and bumps its comment counter
func (h *CommentHandler) CreateComment(c echo.Context) error {
	userHandle := c.Get("userHandle").(string)
	userImage := c.Get("userImage").(string)
	screamID := c.Param("screamId")

	var req models.CreateCommentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	if strings.TrimSpace(req.Body) == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Must not be empty")
	}

	// Verify scream exists
	if _, err := h.screamRepository.GetScreamByID(c.Request().Context(), screamID); err != nil {
		if errors.Is(err, repositories.ErrScreamNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Scream not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	comment := &models.Comment{
		ScreamID:   screamID,
		UserHandle: userHandle,
		UserImage:  userImage,
		Body:       req.Body,
		CreatedAt:  time.Now().UTC(),
	}

	if err := h.commentRepository.CreateComment(c.Request().Context(), comment); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if _, err := h.screamRepository.AddToCommentCount(c.Request().Context(), screamID, 1); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusCreated, comment)
}
