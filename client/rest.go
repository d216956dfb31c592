package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"
)

// ErrUnauthorized is returned whenever the server answers 401. The stored
// token is cleared before it is returned.
var ErrUnauthorized = errors.New("unauthorized")

// APIError carries the server's error envelope for non-401 failures.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("request failed with status %d", e.Status)
}

// TokenStore holds the bearer token between requests.
type TokenStore interface {
	Token() string
	SetToken(string)
	Clear()
}

// MemoryTokenStore is the default in-process TokenStore.
type MemoryTokenStore struct {
	mu    sync.Mutex
	token string
}

func (s *MemoryTokenStore) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

func (s *MemoryTokenStore) SetToken(t string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = t
}

func (s *MemoryTokenStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
}

// envelope is the server's response wrapper.
type envelope struct {
	Status  int             `json:"status"`
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data,omitempty"`
	Meta    json.RawMessage `json:"meta,omitempty"`
	Error   json.RawMessage `json:"error,omitempty"`
}

// Client is the REST client every SDK component goes through.
type Client struct {
	BaseURL string
	HTTP    *http.Client
	Tokens  TokenStore

	// OnUnauthorized runs after any 401 response, with the path that was
	// being requested so the caller can return there after re-login.
	OnUnauthorized func(rememberedPath string)

	Cache *QueryCache
}

func New(baseURL string) *Client {
	return &Client{
		BaseURL: baseURL,
		HTTP:    &http.Client{Timeout: 15 * time.Second},
		Tokens:  &MemoryTokenStore{},
		Cache:   NewQueryCache(queryCacheSize),
	}
}

// do issues one request and decodes the envelope's data field into out.
// A 401 anywhere clears the token, fires OnUnauthorized, and returns
// ErrUnauthorized.
func (c *Client) do(ctx context.Context, method, path string, body any, out any) (*envelope, error) {
	var reqBody *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		reqBody = bytes.NewReader(b)
	} else {
		reqBody = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, reqBody)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if t := c.Tokens.Token(); t != "" {
		req.Header.Set("Authorization", "Bearer "+t)
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		c.Tokens.Clear()
		if c.OnUnauthorized != nil {
			c.OnUnauthorized(path)
		}
		return nil, ErrUnauthorized
	}

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, &APIError{Status: resp.StatusCode}
	}
	if !env.Success {
		return &env, &APIError{Status: resp.StatusCode, Message: env.Message}
	}
	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return &env, err
		}
	}
	return &env, nil
}

// get serves reads through the query cache when a cache key is given.
func (c *Client) get(ctx context.Context, path, cacheKey string, out any) error {
	if cacheKey != "" && c.Cache != nil {
		if raw, ok := c.Cache.Get(cacheKey); ok {
			return json.Unmarshal(raw, out)
		}
	}
	env, err := c.do(ctx, http.MethodGet, path, nil, out)
	if err != nil {
		return err
	}
	if cacheKey != "" && c.Cache != nil && len(env.Data) > 0 {
		c.Cache.Set(cacheKey, env.Data)
	}
	return nil
}

// mutate issues a write and then applies the operation's invalidation rules.
func (c *Client) mutate(ctx context.Context, method, path, op string, body, out any) error {
	_, err := c.do(ctx, method, path, body, out)
	if err != nil {
		return err
	}
	if c.Cache != nil {
		c.Cache.InvalidateFor(op)
	}
	return nil
}
