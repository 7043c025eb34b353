package artifact

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"time"
)

// HTTPConfig configures the remote artifact store client.
type HTTPConfig struct {
	BaseURL   string
	AuthToken string        // optional bearer token
	Timeout   time.Duration // per-request; zero means 15s
}

// HTTPStore talks to a remote artifact service. GET returns the current
// content plus a token; POST submits content with the last-seen token as
// a precondition and returns the new token, or a conflict status when
// the precondition is stale.
type HTTPStore struct {
	cfg  HTTPConfig
	http *http.Client
}

// NewHTTPStore creates a Store backed by the remote artifact service.
func NewHTTPStore(cfg HTTPConfig) *HTTPStore {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 15 * time.Second
	}
	return &HTTPStore{
		cfg: cfg,
		http: &http.Client{
			Transport: &http.Transport{
				DialContext: (&net.Dialer{
					Timeout: 5 * time.Second,
				}).DialContext,
			},
		},
	}
}

type getResponse struct {
	Content json.RawMessage `json:"content"`
	Token   string          `json:"token"`
}

type putRequest struct {
	Content      json.RawMessage `json:"content"`
	Precondition string          `json:"precondition"`
}

type putResponse struct {
	Token string `json:"token"`
}

type errorResponse struct {
	Message string `json:"message"`
}

func (s *HTTPStore) Get(ctx context.Context, key string) (*Document, error) {
	ctx, cancel := context.WithTimeout(ctx, s.cfg.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.artifactURL(key), nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	s.setHeaders(req)

	resp, err := s.http.Do(req)
	if err != nil {
		return nil, transportError(ctx, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return nil, ErrNotFound
	default:
		return nil, fmt.Errorf("artifact store returned status %d: %s", resp.StatusCode, serverMessage(body))
	}

	var out getResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}
	return &Document{Data: out.Content, Token: out.Token}, nil
}

func (s *HTTPStore) Put(ctx context.Context, key string, data []byte, precondition string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.cfg.Timeout)
	defer cancel()

	payload, err := json.Marshal(putRequest{Content: data, Precondition: precondition})
	if err != nil {
		return "", fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.artifactURL(key), bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	s.setHeaders(req)

	resp, err := s.http.Do(req)
	if err != nil {
		return "", transportError(ctx, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading response: %w", err)
	}

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusConflict:
		return "", fmt.Errorf("%w: %s", ErrConflict, serverMessage(body))
	case http.StatusNotFound:
		return "", ErrNotFound
	default:
		return "", fmt.Errorf("artifact store returned status %d: %s", resp.StatusCode, serverMessage(body))
	}

	var out putResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return "", fmt.Errorf("decoding response: %w", err)
	}
	return out.Token, nil
}

func (s *HTTPStore) artifactURL(key string) string {
	return s.cfg.BaseURL + "/artifacts/" + url.PathEscape(key)
}

func (s *HTTPStore) setHeaders(req *http.Request) {
	if s.cfg.AuthToken != "" {
		req.Header.Set("Authorization", "Bearer "+s.cfg.AuthToken)
	}
}

// serverMessage prefers the server-provided message and falls back to
// the raw body.
func serverMessage(body []byte) string {
	var e errorResponse
	if err := json.Unmarshal(body, &e); err == nil && e.Message != "" {
		return e.Message
	}
	return string(body)
}

func transportError(ctx context.Context, err error) error {
	if ctx.Err() != nil {
		return ErrTimeout
	}
	var netErr *net.OpError
	if errors.As(err, &netErr) {
		return ErrUnavailable
	}
	var urlErr *url.Error
	if errors.As(err, &urlErr) && urlErr.Timeout() {
		return ErrTimeout
	}
	return fmt.Errorf("%w: %v", ErrUnavailable, err)
}
