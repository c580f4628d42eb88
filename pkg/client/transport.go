package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

// ErrSessionExpired is returned when the backend rejects the stored
// token. The controller clears credentials so the UI can redirect to
// login.
var ErrSessionExpired = errors.New("session expired")

type RemoteMessage struct {
	Sender    string    `json:"sender"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
}

type RemoteSession struct {
	Id        string          `json:"id"`
	Role      string          `json:"role"`
	Title     string          `json:"title"`
	Messages  []RemoteMessage `json:"messages"`
	CreatedAt time.Time       `json:"created_at"`
}

// ChatParams carries one chat turn to the backend. History holds the
// transcript so far, excluding the message being sent.
type ChatParams struct {
	Message     string
	Role        string
	RoleContext string
	History     []RemoteMessage
}

// API is the backend bridge the controller talks through.
type API interface {
	Chat(ctx context.Context, token string, params ChatParams) (string, error)
	SaveSession(ctx context.Context, token string, session RemoteSession) (*RemoteSession, error)
	ListSessions(ctx context.Context, token string) ([]RemoteSession, error)
	DeleteSession(ctx context.Context, token, sessionId string) error
}

type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
}

func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

type envelope struct {
	Success bool            `json:"success"`
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Details string          `json:"details"`
}

func (c *HTTPClient) do(ctx context.Context, method, path, token string, body interface{}, out interface{}) error {
	var reqBody bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&reqBody).Encode(body); err != nil {
			return err
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, &reqBody)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		return ErrSessionExpired
	}

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}

	if !env.Success {
		if env.Message != "" {
			return errors.New(env.Message)
		}
		return fmt.Errorf("request failed with status %d", resp.StatusCode)
	}

	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return fmt.Errorf("decode payload: %w", err)
		}
	}
	return nil
}

func (c *HTTPClient) Chat(ctx context.Context, token string, params ChatParams) (string, error) {
	payload := map[string]interface{}{
		"message":      params.Message,
		"role":         params.Role,
		"role_context": params.RoleContext,
	}
	if len(params.History) > 0 {
		payload["conversation_history"] = params.History
	}
	var out struct {
		Reply string `json:"reply"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/chat/", token, payload, &out); err != nil {
		return "", err
	}
	return out.Reply, nil
}

func (c *HTTPClient) SaveSession(ctx context.Context, token string, session RemoteSession) (*RemoteSession, error) {
	var out RemoteSession
	if err := c.do(ctx, http.MethodPost, "/api/sessions/", token, session, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) ListSessions(ctx context.Context, token string) ([]RemoteSession, error) {
	var out []RemoteSession
	if err := c.do(ctx, http.MethodGet, "/api/sessions/", token, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *HTTPClient) DeleteSession(ctx context.Context, token, sessionId string) error {
	return c.do(ctx, http.MethodDelete, "/api/sessions/"+sessionId, token, nil, nil)
}
