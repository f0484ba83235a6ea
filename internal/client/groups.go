// Package client provides an in-memory, concurrency-safe cache of a user's
// groups backed by the REST API. It mirrors the server's group collection
// for UI-style consumers that need synchronous reads.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"

	"twofactor-vault/internal/i18n"
	"twofactor-vault/internal/models"
)

// Subscriber is notified after every successful refresh of the cache.
type Subscriber func(items []models.Group)

// GroupStore caches the group collection fetched from the backend.
//
// The cache is replaced atomically on every successful Fetch; a failed
// Fetch leaves the previously cached items untouched so readers keep
// serving the last known good state.
type GroupStore struct {
	baseURL string
	token   string
	locale  string
	http    *http.Client

	mu          sync.RWMutex
	items       []models.Group
	subscribers []Subscriber
}

// Option configures a GroupStore.
type Option func(*GroupStore)

// WithHTTPClient overrides the HTTP client used for API calls.
func WithHTTPClient(c *http.Client) Option {
	return func(s *GroupStore) {
		s.http = c
	}
}

// WithLocale sets the locale sent to the backend and used for the
// fallback name of the synthetic "all" group.
func WithLocale(locale string) Option {
	return func(s *GroupStore) {
		s.locale = locale
	}
}

// NewGroupStore creates a group cache bound to the given API base URL and
// bearer token.
func NewGroupStore(baseURL, token string, opts ...Option) *GroupStore {
	s := &GroupStore{
		baseURL: baseURL,
		token:   token,
		locale:  "en",
		http:    &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Fetch retrieves the group collection from the backend and replaces the
// cached items. On any error the cache keeps its previous contents.
func (s *GroupStore) Fetch(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"/groups", nil)
	if err != nil {
		return fmt.Errorf("failed to build groups request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+s.token)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Accept-Language", s.locale)

	resp, err := s.http.Do(req)
	if err != nil {
		return fmt.Errorf("failed to fetch groups: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("failed to fetch groups: unexpected status %d", resp.StatusCode)
	}

	var items []models.Group
	if err := json.NewDecoder(resp.Body).Decode(&items); err != nil {
		return fmt.Errorf("failed to decode groups: %w", err)
	}

	s.mu.Lock()
	s.items = items
	subscribers := make([]Subscriber, len(s.subscribers))
	copy(subscribers, s.subscribers)
	s.mu.Unlock()

	for _, notify := range subscribers {
		notify(items)
	}

	return nil
}

// Items returns a copy of the cached groups in server order.
func (s *GroupStore) Items() []models.Group {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]models.Group, len(s.items))
	copy(items, s.items)
	return items
}

// Current resolves the display name of the active group. The activeGroup
// preference arrives as a string; anything that does not parse to the id
// of a cached group falls back to the localized "all" label.
func (s *GroupStore) Current(activeGroup string) string {
	id, err := strconv.ParseUint(activeGroup, 10, 32)
	if err == nil {
		s.mu.RLock()
		defer s.mu.RUnlock()

		for _, item := range s.items {
			if item.ID == uint(id) {
				return item.Name
			}
		}
	}

	return i18n.T(s.locale, i18n.KeyAllGroup)
}

// Subscribe registers a callback invoked after each successful Fetch.
func (s *GroupStore) Subscribe(fn Subscriber) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subscribers = append(s.subscribers, fn)
}
