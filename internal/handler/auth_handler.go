package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/sashafierce98/TGPTaskflow/internal/auth"
	"github.com/sashafierce98/TGPTaskflow/internal/config"
	"github.com/sashafierce98/TGPTaskflow/internal/middleware"
	"github.com/sashafierce98/TGPTaskflow/internal/model"
	"github.com/sashafierce98/TGPTaskflow/internal/repository"
)

type AuthHandler struct {
	userRepo    repository.UserRepositoryInterface
	sessionRepo repository.SessionRepositoryInterface
	issuer      *auth.TokenIssuer
	identity    auth.IdentityProvider
	cfg         *config.Config
}

func NewAuthHandler(
	userRepo repository.UserRepositoryInterface,
	sessionRepo repository.SessionRepositoryInterface,
	issuer *auth.TokenIssuer,
	identity auth.IdentityProvider,
	cfg *config.Config,
) *AuthHandler {
	return &AuthHandler{
		userRepo:    userRepo,
		sessionRepo: sessionRepo,
		issuer:      issuer,
		identity:    identity,
		cfg:         cfg,
	}
}

// CreateSession exchanges the identity provider's one-time session id for an
// app session. Unknown emails become new users; known ones get their profile
// refreshed.
func (h *AuthHandler) CreateSession(c *gin.Context) {
	externalID := c.GetHeader(auth.SessionHeader)
	if externalID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Session ID required"})
		return
	}

	profile, err := h.identity.Exchange(c.Request.Context(), externalID)
	if err != nil {
		if errors.Is(err, auth.ErrIdentityRejected) || errors.Is(err, auth.ErrIncompleteProfile) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid session"})
			return
		}
		slog.Error("identity exchange", "err", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "Identity provider unavailable"})
		return
	}

	user, err := h.upsertUser(c, profile)
	if err != nil {
		slog.Error("upsert user", "email", profile.Email, "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to sign in"})
		return
	}

	session := &model.Session{
		UserID:    user.ID,
		ExpiresAt: time.Now().Add(h.cfg.SessionTTL),
	}
	if err := h.sessionRepo.Create(c.Request.Context(), session); err != nil {
		slog.Error("create session", "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create session"})
		return
	}

	token, err := h.issuer.Generate(user.ID, session.ID, session.ExpiresAt)
	if err != nil {
		slog.Error("sign session token", "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create session"})
		return
	}

	h.setSessionCookie(c, token, int(h.cfg.SessionTTL.Seconds()))
	c.JSON(http.StatusOK, newUserResponse(user))
}

func (h *AuthHandler) upsertUser(c *gin.Context, profile *auth.Profile) (*model.User, error) {
	ctx := c.Request.Context()

	existing, err := h.userRepo.FindByEmail(ctx, profile.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		if err := h.userRepo.UpdateProfile(ctx, existing.ID, profile.Name, profile.Picture); err != nil {
			return nil, err
		}
		existing.Name = profile.Name
		existing.Picture = profile.Picture
		return existing, nil
	}

	user := &model.User{
		Email:   profile.Email,
		Name:    profile.Name,
		Picture: profile.Picture,
		Role:    model.RoleUser,
	}
	if h.cfg.IsAdminEmail(profile.Email) {
		user.Role = model.RoleAdmin
		user.Approved = true
	}
	if err := h.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	slog.Info("new user registered", "email", user.Email, "role", user.Role, "approved", user.Approved)
	return user, nil
}

// Me returns the caller, approved or not.
func (h *AuthHandler) Me(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}
	c.JSON(http.StatusOK, newUserResponse(user))
}

// Logout revokes the presented session, if any, and always clears the cookie.
func (h *AuthHandler) Logout(c *gin.Context) {
	if token, err := middleware.TokenFromRequest(c); err == nil {
		if claims, err := h.issuer.Parse(token); err == nil {
			if sessionID, err := uuid.Parse(claims.SessionID); err == nil {
				if err := h.sessionRepo.Delete(c.Request.Context(), sessionID); err != nil {
					slog.Error("delete session", "err", err)
				}
			}
		}
	}

	h.setSessionCookie(c, "", -1)
	c.JSON(http.StatusOK, MessageResponse{Message: "Logged out"})
}

func (h *AuthHandler) setSessionCookie(c *gin.Context, value string, maxAge int) {
	if h.cfg.CookieSecure {
		c.SetSameSite(http.SameSiteNoneMode)
	} else {
		c.SetSameSite(http.SameSiteLaxMode)
	}
	c.SetCookie(middleware.SessionCookie, value, maxAge, "/", "", h.cfg.CookieSecure, true)
}
