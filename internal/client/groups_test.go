package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"twofactor-vault/internal/models"

	"github.com/stretchr/testify/suite"
)

type GroupStoreTestSuite struct {
	suite.Suite
	servers []*httptest.Server
}

func TestGroupStoreSuite(t *testing.T) {
	suite.Run(t, new(GroupStoreTestSuite))
}

func (s *GroupStoreTestSuite) TearDownTest() {
	for _, server := range s.servers {
		server.Close()
	}
	s.servers = nil
}

// newServer starts a backend stub answering GET /groups with the given
// status and body. Servers are closed in TearDownTest.
func (s *GroupStoreTestSuite) newServer(status int, body string) *httptest.Server {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.Equal("/groups", r.URL.Path)
		s.Equal("Bearer test-token", r.Header.Get("Authorization"))

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	s.servers = append(s.servers, server)
	return server
}

func (s *GroupStoreTestSuite) TestFetch() {
	server := s.newServer(http.StatusOK, `[
		{"id":0,"name":"All","twofaccounts_count":5},
		{"id":1,"name":"Work","twofaccounts_count":3},
		{"id":2,"name":"Personal","twofaccounts_count":2}
	]`)

	store := NewGroupStore(server.URL, "test-token")
	s.Require().NoError(store.Fetch(context.Background()))

	items := store.Items()
	s.Require().Len(items, 3)
	s.Equal(uint(0), items[0].ID)
	s.Equal("All", items[0].Name)
	s.Equal(int64(5), items[0].AccountCount)
	s.Equal("Work", items[1].Name)
}

func (s *GroupStoreTestSuite) TestFetch_ReplacesItems() {
	server := s.newServer(http.StatusOK, `[{"id":1,"name":"Work"}]`)

	store := NewGroupStore(server.URL, "test-token")
	s.Require().NoError(store.Fetch(context.Background()))

	second := s.newServer(http.StatusOK, `[{"id":2,"name":"Personal"}]`)
	store.baseURL = second.URL
	s.Require().NoError(store.Fetch(context.Background()))

	// The fetch replaces the collection, it does not merge
	items := store.Items()
	s.Require().Len(items, 1)
	s.Equal("Personal", items[0].Name)
}

func (s *GroupStoreTestSuite) TestFetch_ErrorKeepsCache() {
	server := s.newServer(http.StatusOK, `[{"id":1,"name":"Work"}]`)

	store := NewGroupStore(server.URL, "test-token")
	s.Require().NoError(store.Fetch(context.Background()))

	failing := s.newServer(http.StatusInternalServerError, `{"error":{}}`)
	store.baseURL = failing.URL
	s.Error(store.Fetch(context.Background()))

	// The last known good state survives a failed refresh
	items := store.Items()
	s.Require().Len(items, 1)
	s.Equal("Work", items[0].Name)
}

func (s *GroupStoreTestSuite) TestCurrent() {
	store := NewGroupStore("http://unused", "test-token")
	store.items = []models.Group{
		{ID: 0, Name: "All"},
		{ID: 1, Name: "Work"},
	}

	s.Equal("Work", store.Current("1"))
	s.Equal("All", store.Current("0"))

	// Unknown or unparsable preferences fall back to the "all" label
	s.Equal("All", store.Current("42"))
	s.Equal("All", store.Current(""))
	s.Equal("All", store.Current("not-a-number"))
}

func (s *GroupStoreTestSuite) TestCurrent_LocalizedFallback() {
	store := NewGroupStore("http://unused", "test-token", WithLocale("fr"))

	s.Equal("Tous", store.Current(""))
}

func (s *GroupStoreTestSuite) TestSubscribe() {
	server := s.newServer(http.StatusOK, `[{"id":1,"name":"Work"}]`)

	store := NewGroupStore(server.URL, "test-token")

	var notified []models.Group
	store.Subscribe(func(items []models.Group) {
		notified = items
	})

	s.Require().NoError(store.Fetch(context.Background()))
	s.Require().Len(notified, 1)
	s.Equal("Work", notified[0].Name)
}
