// Package client implements the chat session controller used by
// MockBot front ends: phase handling, transcript state, canned
// conversation starters, local persistence and the HTTP bridge to the
// backend.
package client

import (
	"github.com/patrickmn/go-cache"
)

// Store keys match the original browser localStorage layout so a
// migrated front end can hand sessions over without translation.
const (
	KeyLastSession   = "mockbot-session"
	KeySessionList   = "mockbot-sessions"
	KeyResumeSession = "mockbot-resume-session"
	KeySelectedRole  = "selectedRole"
	KeyToken         = "token"
)

// Store is the persistence surface the controller writes through. A
// browser front end backs it with localStorage; tests and the CLI use
// MemoryStore.
type Store interface {
	Get(key string) (string, bool)
	Set(key, value string)
	Delete(key string)
}

type MemoryStore struct {
	c *cache.Cache
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{c: cache.New(cache.NoExpiration, 0)}
}

func (s *MemoryStore) Get(key string) (string, bool) {
	if v, found := s.c.Get(key); found {
		return v.(string), true
	}
	return "", false
}

func (s *MemoryStore) Set(key, value string) {
	s.c.Set(key, value, cache.NoExpiration)
}

func (s *MemoryStore) Delete(key string) {
	s.c.Delete(key)
}
