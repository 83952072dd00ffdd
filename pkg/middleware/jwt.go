package middleware

import (
	"bitwise74/notes-api/internal/model"
	"bitwise74/notes-api/internal/repository"
	"bitwise74/notes-api/pkg/security"
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// UserFinder looks up the account behind a token
type UserFinder interface {
	FindByID(ctx context.Context, id uint) (*model.User, error)
}

// NewJWTMiddleware only lets requests through that carry a valid auth token
// of an existing, verified user. The token is read from the Authorization
// header and, failing that, from the auth_token cookie. The user's ID is
// stored as userID.
func NewJWTMiddleware(tokens *security.Tokens, users UserFinder) gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.MustGet("requestID").(string)

		tokenStr := readToken(c)
		if tokenStr == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":     "Access denied! No token provided",
				"requestID": requestID,
			})
			return
		}

		claims, err := tokens.Parse(tokenStr)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":     "Authorization token invalid",
				"requestID": requestID,
			})

			zap.L().Debug("Rejected auth token", zap.Error(err), zap.String("requestID", requestID))
			return
		}

		// Tokens outlive deleted accounts, so the user has to be checked too
		user, err := users.FindByID(c.Request.Context(), claims.UserID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
					"error":     "User not found",
					"requestID": requestID,
				})
				return
			}

			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"error":     "Internal server error",
				"requestID": requestID,
			})

			zap.L().Error("Failed to check if user exists", zap.Error(err), zap.String("requestID", requestID))
			return
		}

		if !user.Verified {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":     "Please verify your account before using the service",
				"requestID": requestID,
			})
			return
		}

		c.Set("userID", user.ID)
		c.Next()
	}
}

func readToken(c *gin.Context) string {
	if h := c.GetHeader("Authorization"); h != "" {
		if t, ok := strings.CutPrefix(h, "Bearer "); ok {
			return strings.TrimSpace(t)
		}
	}

	if t, err := c.Cookie("auth_token"); err == nil {
		return t
	}

	return ""
}
