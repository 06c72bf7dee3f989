package middleware

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/sashafierce98/TGPTaskflow/internal/auth"
	"github.com/sashafierce98/TGPTaskflow/internal/model"
	"github.com/sashafierce98/TGPTaskflow/internal/repository"
)

const (
	UserIDKey    = "userID"
	UserKey      = "user"
	SessionIDKey = "sessionID"

	// SessionCookie holds the app session token set by the session exchange.
	SessionCookie = "session_token"
)

var (
	ErrNoToken     = errors.New("no session token")
	ErrTokenFormat = errors.New("malformed authorization header")
)

// TokenFromRequest prefers the session cookie and falls back to a Bearer
// Authorization header.
func TokenFromRequest(c *gin.Context) (string, error) {
	if token, err := c.Cookie(SessionCookie); err == nil && token != "" {
		return token, nil
	}

	header := c.GetHeader("Authorization")
	if header == "" {
		return "", ErrNoToken
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
		return "", ErrTokenFormat
	}
	return parts[1], nil
}

// SessionAuth authenticates the caller from the session token and loads the
// user. The stored session must still exist so logout and user removal take
// effect before the token expires.
func SessionAuth(
	issuer *auth.TokenIssuer,
	sessions repository.SessionRepositoryInterface,
	users repository.UserRepositoryInterface,
) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := TokenFromRequest(c)
		if errors.Is(err, ErrNoToken) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header is required"})
			return
		}
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header format must be Bearer {token}"})
			return
		}

		claims, err := issuer.Parse(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}

		userID, err := uuid.Parse(claims.UserID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid user ID in token"})
			return
		}
		sessionID, err := uuid.Parse(claims.SessionID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}

		session, err := sessions.GetByID(c.Request.Context(), sessionID)
		if err != nil {
			if errors.Is(err, repository.ErrSessionNotFound) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid session"})
				return
			}
			slog.Error("failed to load session", "err", err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to verify session"})
			return
		}
		if session.UserID != userID {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid session"})
			return
		}
		if session.Expired(time.Now()) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Session expired"})
			return
		}

		user, err := users.GetByID(c.Request.Context(), userID)
		if err != nil {
			if errors.Is(err, repository.ErrUserNotFound) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid session"})
				return
			}
			slog.Error("failed to load session user", "err", err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to verify session"})
			return
		}

		c.Set(UserIDKey, userID)
		c.Set(UserKey, user)
		c.Set(SessionIDKey, sessionID)
		c.Next()
	}
}

// RequireApproved keeps pending accounts out of board data.
func RequireApproved() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
			return
		}
		if !user.Approved && !user.IsAdmin() {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Account pending approval"})
			return
		}
		c.Next()
	}
}

func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
			return
		}
		if !user.IsAdmin() {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Admin only"})
			return
		}
		c.Next()
	}
}

// CurrentUser returns the user loaded by SessionAuth.
func CurrentUser(c *gin.Context) (*model.User, bool) {
	value, exists := c.Get(UserKey)
	if !exists {
		return nil, false
	}
	user, ok := value.(*model.User)
	return user, ok && user != nil
}
