package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"sync"
)

// Session owns the bearer token and its on-disk persistence. Hydrate restores
// a previous login; Clear removes both the in-memory token and the file.
type Session struct {
	mu        sync.RWMutex
	token     string
	user      *User
	tokenPath string
}

type sessionFile struct {
	Token string `json:"token"`
	User  *User  `json:"user,omitempty"`
}

func NewSession(tokenPath string) *Session {
	return &Session{tokenPath: tokenPath}
}

func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

func (s *Session) User() *User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user
}

func (s *Session) Authenticated() bool {
	return s.Token() != ""
}

// Hydrate loads the persisted token. A missing file is not an error; the
// session just stays logged out.
func (s *Session) Hydrate() error {
	if s.tokenPath == "" {
		return nil
	}
	raw, err := os.ReadFile(s.tokenPath)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read session file: %w", err)
	}
	var sf sessionFile
	if err := json.Unmarshal(raw, &sf); err != nil {
		return fmt.Errorf("parse session file: %w", err)
	}
	s.mu.Lock()
	s.token = sf.Token
	s.user = sf.User
	s.mu.Unlock()
	return nil
}

func (s *Session) set(token string, user *User) error {
	s.mu.Lock()
	s.token = token
	s.user = user
	s.mu.Unlock()
	if s.tokenPath == "" {
		return nil
	}
	raw, err := json.Marshal(sessionFile{Token: token, User: user})
	if err != nil {
		return fmt.Errorf("encode session file: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.tokenPath), 0o700); err != nil {
		return fmt.Errorf("create session dir: %w", err)
	}
	if err := os.WriteFile(s.tokenPath, raw, 0o600); err != nil {
		return fmt.Errorf("write session file: %w", err)
	}
	return nil
}

// Clear logs the session out locally and deletes the persisted token.
func (s *Session) Clear() error {
	s.mu.Lock()
	s.token = ""
	s.user = nil
	s.mu.Unlock()
	if s.tokenPath == "" {
		return nil
	}
	if err := os.Remove(s.tokenPath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove session file: %w", err)
	}
	return nil
}

type authResponse struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}

func (c *Client) Register(ctx context.Context, email, password, username string) (*User, error) {
	var resp authResponse
	err := c.do(ctx, http.MethodPost, "/api/auth/register", map[string]string{
		"email":    email,
		"password": password,
		"username": username,
	}, &resp)
	if err != nil {
		return nil, err
	}
	if err := c.session.set(resp.Token, resp.User); err != nil {
		return nil, err
	}
	return resp.User, nil
}

func (c *Client) Login(ctx context.Context, email, password string) (*User, error) {
	var resp authResponse
	err := c.do(ctx, http.MethodPost, "/api/auth/login", map[string]string{
		"email":    email,
		"password": password,
	}, &resp)
	if err != nil {
		return nil, err
	}
	if err := c.session.set(resp.Token, resp.User); err != nil {
		return nil, err
	}
	return resp.User, nil
}

// Logout is local only; the server keeps no token state.
func (c *Client) Logout() error {
	return c.session.Clear()
}
