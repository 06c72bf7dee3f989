package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// SessionHeader carries the one-time id handed out by the identity provider
// after its redirect.
const SessionHeader = "X-Session-ID"

var (
	ErrIdentityRejected  = errors.New("identity provider rejected the session")
	ErrIncompleteProfile = errors.New("identity provider returned no email")
)

// Profile is the verified identity the provider hands back.
type Profile struct {
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture"`
}

type IdentityProvider interface {
	Exchange(ctx context.Context, sessionID string) (*Profile, error)
}

// IdentityClient resolves one-time session ids against the provider's
// session-data endpoint.
type IdentityClient struct {
	url        string
	httpClient *http.Client
}

func NewIdentityClient(url string, timeout time.Duration) *IdentityClient {
	return &IdentityClient{
		url:        url,
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (c *IdentityClient) Exchange(ctx context.Context, sessionID string) (*Profile, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, fmt.Errorf("build identity request: %w", err)
	}
	req.Header.Set(SessionHeader, sessionID)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("identity provider: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, ErrIdentityRejected
	}

	var profile Profile
	if err := json.NewDecoder(resp.Body).Decode(&profile); err != nil {
		return nil, fmt.Errorf("decode identity profile: %w", err)
	}
	profile.Email = strings.ToLower(strings.TrimSpace(profile.Email))
	if profile.Email == "" {
		return nil, ErrIncompleteProfile
	}
	if profile.Name == "" {
		profile.Name = profile.Email
	}
	return &profile, nil
}
