package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"firebase.google.com/go/v4/auth"
	"github.com/labstack/echo/v4"
	"github.com/scream-social/backend/internal/repositories"
)

// TokenVerifier verifies a bearer ID token against the identity provider
type TokenVerifier interface {
	VerifyToken(ctx context.Context, idToken string) (*auth.Token, error)
}

// FirebaseAuthMiddleware creates an Echo middleware that verifies Firebase
// ID tokens and resolves the caller's profile. On success the request context
// carries "firebaseUID", "userHandle" and "userImage".
func FirebaseAuthMiddleware(verifier TokenVerifier, userRepo repositories.UserRepository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "Authorization header is missing")
			}

			tokenParts := strings.Split(authHeader, " ")
			if len(tokenParts) != 2 || !strings.EqualFold(tokenParts[0], "bearer") {
				return echo.NewHTTPError(http.StatusUnauthorized, "Authorization header must be in Bearer format")
			}

			token, err := verifier.VerifyToken(c.Request().Context(), tokenParts[1])
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid or expired ID token")
			}

			// A verified token without a matching profile document means
			// signup never finished; fail loudly instead of continuing
			// with an empty handle.
			user, err := userRepo.GetUserByUserID(c.Request().Context(), token.UID)
			if err != nil {
				if errors.Is(err, repositories.ErrUserNotFound) {
					return echo.NewHTTPError(http.StatusInternalServerError, "Authenticated user not found")
				}
				return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
			}

			c.Set("firebaseUID", token.UID)
			c.Set("userHandle", user.Handle)
			c.Set("userImage", user.ImageURL)

			return next(c)
		}
	}
}
