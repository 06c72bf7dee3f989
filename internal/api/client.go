package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/net/publicsuffix"

	"github.com/sashafierce98/TGPTaskflow/internal/model"
)

const (
	SessionCookie = "session_token"
	SessionHeader = "X-Session-ID"

	defaultTimeout = 15 * time.Second
)

// Client talks to the Taskflow backend. The session travels as a cookie kept
// in the client's jar.
type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
}

type Option func(*Client)

// WithHTTPClient replaces the underlying client. A cookie jar is added when
// it has none.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// New returns a client for the backend rooted at baseURL, e.g.
// "http://localhost:8080/api".
func New(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("base url %q must be absolute", baseURL)
	}

	c := &Client{baseURL: u, httpClient: &http.Client{Timeout: defaultTimeout}}
	for _, opt := range opts {
		opt(c)
	}
	if c.httpClient.Jar == nil {
		jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
		if err != nil {
			return nil, fmt.Errorf("cookie jar: %w", err)
		}
		c.httpClient.Jar = jar
	}
	return c, nil
}

// Token returns the session token currently held, or "".
func (c *Client) Token() string {
	for _, cookie := range c.httpClient.Jar.Cookies(c.baseURL) {
		if cookie.Name == SessionCookie {
			return cookie.Value
		}
	}
	return ""
}

// SetToken installs a previously saved session token.
func (c *Client) SetToken(token string) {
	c.httpClient.Jar.SetCookies(c.baseURL, []*http.Cookie{{
		Name:  SessionCookie,
		Value: token,
		Path:  "/",
	}})
}

// ClearToken drops the session cookie.
func (c *Client) ClearToken() {
	c.httpClient.Jar.SetCookies(c.baseURL, []*http.Cookie{{
		Name:   SessionCookie,
		Path:   "/",
		MaxAge: -1,
	}})
}

// Auth

func (c *Client) CreateSession(ctx context.Context, sessionID string) (*User, error) {
	var user User
	err := c.do(ctx, http.MethodPost, "/auth/session", nil, &user, func(r *http.Request) {
		r.Header.Set(SessionHeader, sessionID)
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *Client) Me(ctx context.Context) (*User, error) {
	var user User
	if err := c.do(ctx, http.MethodGet, "/auth/me", nil, &user, nil); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *Client) Logout(ctx context.Context) error {
	err := c.do(ctx, http.MethodPost, "/auth/logout", nil, nil, nil)
	c.ClearToken()
	return err
}

// Boards

func (c *Client) ListBoards(ctx context.Context) ([]Board, error) {
	var boards []Board
	err := c.do(ctx, http.MethodGet, "/boards", nil, &boards, nil)
	return boards, err
}

func (c *Client) CreateBoard(ctx context.Context, req CreateBoardRequest) (*CreatedBoard, error) {
	var board CreatedBoard
	if err := c.do(ctx, http.MethodPost, "/boards", req, &board, nil); err != nil {
		return nil, err
	}
	return &board, nil
}

func (c *Client) GetBoard(ctx context.Context, boardID uuid.UUID) (*Board, error) {
	var board Board
	if err := c.do(ctx, http.MethodGet, "/boards/"+boardID.String(), nil, &board, nil); err != nil {
		return nil, err
	}
	return &board, nil
}

func (c *Client) UpdateBoard(ctx context.Context, boardID uuid.UUID, req UpdateBoardRequest) (*Board, error) {
	var board Board
	if err := c.do(ctx, http.MethodPut, "/boards/"+boardID.String(), req, &board, nil); err != nil {
		return nil, err
	}
	return &board, nil
}

func (c *Client) DeleteBoard(ctx context.Context, boardID uuid.UUID) error {
	return c.do(ctx, http.MethodDelete, "/boards/"+boardID.String(), nil, nil, nil)
}

// Columns

func (c *Client) ListColumns(ctx context.Context, boardID uuid.UUID) ([]Column, error) {
	var columns []Column
	err := c.do(ctx, http.MethodGet, "/boards/"+boardID.String()+"/columns", nil, &columns, nil)
	return columns, err
}

func (c *Client) CreateColumn(ctx context.Context, boardID uuid.UUID, req ColumnRequest) (*Column, error) {
	var column Column
	if err := c.do(ctx, http.MethodPost, "/boards/"+boardID.String()+"/columns", req, &column, nil); err != nil {
		return nil, err
	}
	return &column, nil
}

func (c *Client) UpdateColumn(ctx context.Context, columnID uuid.UUID, req ColumnRequest) (*Column, error) {
	var column Column
	if err := c.do(ctx, http.MethodPut, "/columns/"+columnID.String(), req, &column, nil); err != nil {
		return nil, err
	}
	return &column, nil
}

func (c *Client) DeleteColumn(ctx context.Context, columnID uuid.UUID) error {
	return c.do(ctx, http.MethodDelete, "/columns/"+columnID.String(), nil, nil, nil)
}

// Cards

func (c *Client) ListCards(ctx context.Context, boardID uuid.UUID) ([]Card, error) {
	var cards []Card
	err := c.do(ctx, http.MethodGet, "/boards/"+boardID.String()+"/cards", nil, &cards, nil)
	return cards, err
}

func (c *Client) CreateCard(ctx context.Context, boardID, columnID uuid.UUID, req CreateCardRequest) (*Card, error) {
	var card Card
	path := "/boards/" + boardID.String() + "/columns/" + columnID.String() + "/cards"
	if err := c.do(ctx, http.MethodPost, path, req, &card, nil); err != nil {
		return nil, err
	}
	return &card, nil
}

func (c *Client) UpdateCard(ctx context.Context, cardID uuid.UUID, patch CardPatch) (*Card, error) {
	var card Card
	if err := c.do(ctx, http.MethodPut, "/cards/"+cardID.String(), patch, &card, nil); err != nil {
		return nil, err
	}
	return &card, nil
}

func (c *Client) DeleteCard(ctx context.Context, cardID uuid.UUID) error {
	return c.do(ctx, http.MethodDelete, "/cards/"+cardID.String(), nil, nil, nil)
}

// Answer threads

func (c *Client) ListComments(ctx context.Context, cardID uuid.UUID) ([]Comment, error) {
	var comments []Comment
	err := c.do(ctx, http.MethodGet, "/cards/"+cardID.String()+"/comments", nil, &comments, nil)
	return comments, err
}

func (c *Client) CreateComment(ctx context.Context, cardID uuid.UUID, text string) (*Comment, error) {
	var comment Comment
	body := map[string]string{"text": text}
	if err := c.do(ctx, http.MethodPost, "/cards/"+cardID.String()+"/comments", body, &comment, nil); err != nil {
		return nil, err
	}
	return &comment, nil
}

func (c *Client) Notifications(ctx context.Context) ([]Notification, error) {
	var notifications []Notification
	err := c.do(ctx, http.MethodGet, "/notifications", nil, &notifications, nil)
	return notifications, err
}

// Admin

func (c *Client) ListUsers(ctx context.Context) ([]User, error) {
	var users []User
	err := c.do(ctx, http.MethodGet, "/admin/users", nil, &users, nil)
	return users, err
}

func (c *Client) SetRole(ctx context.Context, userID uuid.UUID, role model.Role) error {
	path := "/admin/users/" + userID.String() + "/role?role=" + url.QueryEscape(string(role))
	return c.do(ctx, http.MethodPut, path, nil, nil, nil)
}

func (c *Client) ApproveUser(ctx context.Context, userID uuid.UUID) error {
	return c.do(ctx, http.MethodPut, "/admin/users/"+userID.String()+"/approve", nil, nil, nil)
}

func (c *Client) DeleteUser(ctx context.Context, userID uuid.UUID) error {
	return c.do(ctx, http.MethodDelete, "/admin/users/"+userID.String(), nil, nil, nil)
}

func (c *Client) Analytics(ctx context.Context) (*Analytics, error) {
	var stats Analytics
	if err := c.do(ctx, http.MethodGet, "/admin/analytics", nil, &stats, nil); err != nil {
		return nil, err
	}
	return &stats, nil
}

// do sends one request. A non-2xx answer becomes *Error; out may be nil.
func (c *Client) do(ctx context.Context, method, path string, in, out any, prepare func(*http.Request)) error {
	target, err := c.baseURL.Parse(c.baseURL.Path + path)
	if err != nil {
		return fmt.Errorf("build url %s: %w", path, err)
	}

	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode %s %s: %w", method, path, err)
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, target.String(), body)
	if err != nil {
		return fmt.Errorf("build request %s %s: %w", method, path, err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if prepare != nil {
		prepare(req)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeError(resp)
	}
	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return nil
}

func decodeError(resp *http.Response) error {
	apiErr := &Error{Status: resp.StatusCode}
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))

	var body errorBody
	if json.Unmarshal(raw, &body) == nil && body.Error != "" {
		apiErr.Message = body.Error
	} else {
		apiErr.Message = strings.TrimSpace(string(raw))
	}
	if apiErr.Message == "" {
		apiErr.Message = http.StatusText(resp.StatusCode)
	}
	return apiErr
}
