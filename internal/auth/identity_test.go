package auth_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sashafierce98/TGPTaskflow/internal/auth"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newIdentityServer(t *testing.T, handler http.HandlerFunc) *auth.IdentityClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return auth.NewIdentityClient(srv.URL, 5*time.Second)
}

func TestIdentityClient_Exchange(t *testing.T) {
	client := newIdentityServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "one-time-123", r.Header.Get(auth.SessionHeader))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"idp_1","email":"  Line.Lead@TGP.example ","name":"Line Lead","picture":"https://img/1.png","session_token":"opaque"}`))
	})

	profile, err := client.Exchange(context.Background(), "one-time-123")

	require.NoError(t, err)
	assert.Equal(t, "line.lead@tgp.example", profile.Email)
	assert.Equal(t, "Line Lead", profile.Name)
	assert.Equal(t, "https://img/1.png", profile.Picture)
}

func TestIdentityClient_Exchange_Rejected(t *testing.T) {
	client := newIdentityServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	_, err := client.Exchange(context.Background(), "stale")

	assert.ErrorIs(t, err, auth.ErrIdentityRejected)
}

func TestIdentityClient_Exchange_NoEmail(t *testing.T) {
	client := newIdentityServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"name":"Ghost"}`))
	})

	_, err := client.Exchange(context.Background(), "abc")

	assert.ErrorIs(t, err, auth.ErrIncompleteProfile)
}

func TestIdentityClient_Exchange_NameFallsBackToEmail(t *testing.T) {
	client := newIdentityServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"email":"op@tgp.example"}`))
	})

	profile, err := client.Exchange(context.Background(), "abc")

	require.NoError(t, err)
	assert.Equal(t, "op@tgp.example", profile.Name)
}
