package client

import (
	"context"
	"net/http"
	"sync"
)

// SettingsStore holds the accessibility settings for the logged-in user,
// updated from server responses on every save.
type SettingsStore struct {
	client *Client

	mu       sync.RWMutex
	settings *AccessibilitySettings
}

func NewSettingsStore(c *Client) *SettingsStore {
	return &SettingsStore{client: c}
}

func (ss *SettingsStore) Refresh(ctx context.Context) (*AccessibilitySettings, error) {
	var settings AccessibilitySettings
	if err := ss.client.do(ctx, http.MethodGet, "/api/accessibility/settings", nil, &settings); err != nil {
		return nil, err
	}
	ss.mu.Lock()
	ss.settings = &settings
	ss.mu.Unlock()
	return &settings, nil
}

func (ss *SettingsStore) Save(ctx context.Context, update SettingsUpdate) (*AccessibilitySettings, error) {
	var settings AccessibilitySettings
	if err := ss.client.do(ctx, http.MethodPut, "/api/accessibility/settings", update, &settings); err != nil {
		return nil, err
	}
	ss.mu.Lock()
	ss.settings = &settings
	ss.mu.Unlock()
	return &settings, nil
}

func (ss *SettingsStore) Current() *AccessibilitySettings {
	ss.mu.RLock()
	defer ss.mu.RUnlock()
	return ss.settings
}
