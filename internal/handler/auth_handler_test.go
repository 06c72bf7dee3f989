package handler_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sashafierce98/TGPTaskflow/internal/auth"
	"github.com/sashafierce98/TGPTaskflow/internal/config"
	"github.com/sashafierce98/TGPTaskflow/internal/handler"
	"github.com/sashafierce98/TGPTaskflow/internal/middleware"
	"github.com/sashafierce98/TGPTaskflow/internal/model"
	"github.com/sashafierce98/TGPTaskflow/internal/repository/mocks"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockIdentityProvider struct {
	mock.Mock
}

func (m *MockIdentityProvider) Exchange(ctx context.Context, sessionID string) (*auth.Profile, error) {
	args := m.Called(ctx, sessionID)
	profile, _ := args.Get(0).(*auth.Profile)
	return profile, args.Error(1)
}

type authFixture struct {
	router   *gin.Engine
	users    *mocks.UserRepository
	sessions *mocks.SessionRepository
	identity *MockIdentityProvider
	issuer   *auth.TokenIssuer
}

func setupAuth(cfg *config.Config) *authFixture {
	f := &authFixture{
		router:   newRouter(nil),
		users:    new(mocks.UserRepository),
		sessions: new(mocks.SessionRepository),
		identity: new(MockIdentityProvider),
		issuer:   auth.NewTokenIssuer("test-secret"),
	}
	if cfg.SessionTTL == 0 {
		cfg.SessionTTL = 7 * 24 * time.Hour
	}
	h := handler.NewAuthHandler(f.users, f.sessions, f.issuer, f.identity, cfg)
	f.router.POST("/auth/session", h.CreateSession)
	f.router.POST("/auth/logout", h.Logout)
	return f
}

func (f *authFixture) exchange(sessionID string) *httptest.ResponseRecorder {
	req, _ := http.NewRequest("POST", "/auth/session", nil)
	if sessionID != "" {
		req.Header.Set(auth.SessionHeader, sessionID)
	}
	resp := httptest.NewRecorder()
	f.router.ServeHTTP(resp, req)
	return resp
}

func sessionCookie(resp *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range resp.Result().Cookies() {
		if c.Name == middleware.SessionCookie {
			return c
		}
	}
	return nil
}

func TestCreateSession_NewUserStartsPending(t *testing.T) {
	// Arrange
	f := setupAuth(&config.Config{CookieSecure: true})
	profile := &auth.Profile{Email: "op@tgp.example", Name: "Operator"}

	f.identity.On("Exchange", mock.Anything, "one-time").Return(profile, nil)
	f.users.On("FindByEmail", mock.Anything, "op@tgp.example").Return(nil, nil)
	f.users.On("Create", mock.Anything, mock.MatchedBy(func(u *model.User) bool {
		return u.Role == model.RoleUser && !u.Approved
	})).Run(func(args mock.Arguments) {
		args.Get(1).(*model.User).ID = uuid.New()
	}).Return(nil)
	f.sessions.On("Create", mock.Anything, mock.AnythingOfType("*model.Session")).Return(nil)

	// Act
	resp := f.exchange("one-time")

	// Assert
	assert.Equal(t, http.StatusOK, resp.Code)

	var user handler.UserResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &user))
	assert.Equal(t, "op@tgp.example", user.Email)
	assert.Equal(t, "user", user.Role)
	assert.False(t, user.Approved)

	cookie := sessionCookie(resp)
	require.NotNil(t, cookie)
	assert.True(t, cookie.HttpOnly)
	assert.True(t, cookie.Secure)
	assert.Equal(t, http.SameSiteNoneMode, cookie.SameSite)

	claims, err := f.issuer.Parse(cookie.Value)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)

	f.identity.AssertExpectations(t)
	f.users.AssertExpectations(t)
	f.sessions.AssertExpectations(t)
}

func TestCreateSession_BootstrapAdmin(t *testing.T) {
	f := setupAuth(&config.Config{AdminEmails: []string{"Lead@TGP.example"}})

	f.identity.On("Exchange", mock.Anything, "abc").Return(&auth.Profile{Email: "lead@tgp.example", Name: "Lead"}, nil)
	f.users.On("FindByEmail", mock.Anything, "lead@tgp.example").Return(nil, nil)
	f.users.On("Create", mock.Anything, mock.MatchedBy(func(u *model.User) bool {
		return u.Role == model.RoleAdmin && u.Approved
	})).Return(nil)
	f.sessions.On("Create", mock.Anything, mock.Anything).Return(nil)

	resp := f.exchange("abc")

	assert.Equal(t, http.StatusOK, resp.Code)
	f.users.AssertExpectations(t)
}

func TestCreateSession_ExistingUserProfileRefreshed(t *testing.T) {
	f := setupAuth(&config.Config{})
	existing := approvedUser()

	f.identity.On("Exchange", mock.Anything, "abc").
		Return(&auth.Profile{Email: existing.Email, Name: "Renamed", Picture: "https://img/2.png"}, nil)
	f.users.On("FindByEmail", mock.Anything, existing.Email).Return(existing, nil)
	f.users.On("UpdateProfile", mock.Anything, existing.ID, "Renamed", "https://img/2.png").Return(nil)
	f.sessions.On("Create", mock.Anything, mock.MatchedBy(func(s *model.Session) bool {
		return s.UserID == existing.ID && s.ExpiresAt.After(time.Now().Add(6*24*time.Hour))
	})).Return(nil)

	resp := f.exchange("abc")

	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), "Renamed")
	f.users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	f.sessions.AssertExpectations(t)
}

func TestCreateSession_MissingHeader(t *testing.T) {
	f := setupAuth(&config.Config{})

	resp := f.exchange("")

	assert.Equal(t, http.StatusBadRequest, resp.Code)
	assert.Equal(t, "Session ID required", decodeError(resp))
}

func TestCreateSession_RejectedByProvider(t *testing.T) {
	f := setupAuth(&config.Config{})
	f.identity.On("Exchange", mock.Anything, "stale").Return(nil, auth.ErrIdentityRejected)

	resp := f.exchange("stale")

	assert.Equal(t, http.StatusUnauthorized, resp.Code)
	assert.Equal(t, "Invalid session", decodeError(resp))
	f.users.AssertNotCalled(t, "FindByEmail", mock.Anything, mock.Anything)
}

func TestCreateSession_ProviderDown(t *testing.T) {
	f := setupAuth(&config.Config{})
	f.identity.On("Exchange", mock.Anything, "abc").Return(nil, assert.AnError)

	resp := f.exchange("abc")

	assert.Equal(t, http.StatusBadGateway, resp.Code)
}

func TestLogout_RevokesSession(t *testing.T) {
	f := setupAuth(&config.Config{})
	sessionID := uuid.New()
	token, err := f.issuer.Generate(uuid.New(), sessionID, time.Now().Add(time.Hour))
	require.NoError(t, err)

	f.sessions.On("Delete", mock.Anything, sessionID).Return(nil)

	req, _ := http.NewRequest("POST", "/auth/logout", nil)
	req.AddCookie(&http.Cookie{Name: middleware.SessionCookie, Value: token})
	resp := httptest.NewRecorder()
	f.router.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusOK, resp.Code)
	cookie := sessionCookie(resp)
	require.NotNil(t, cookie)
	assert.Empty(t, cookie.Value)
	assert.True(t, cookie.MaxAge < 0)
	f.sessions.AssertExpectations(t)
}

func TestLogout_WithoutSession(t *testing.T) {
	f := setupAuth(&config.Config{})

	resp := doJSON(f.router, "POST", "/auth/logout", nil)

	assert.Equal(t, http.StatusOK, resp.Code)
	f.sessions.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}
