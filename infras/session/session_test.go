package session_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"innkeep/config"
	"innkeep/infras/session"
)

func newStore() *session.Store {
	cfg := &config.Config{}
	cfg.Backend.APIKey = "anon-key"

	return session.NewStore(cfg)
}

func TestStore_TokenFallsBackToAnonKey(t *testing.T) {
	store := newStore()

	assert.False(t, store.SignedIn())
	assert.Equal(t, "anon-key", store.Token())

	store.Set(&session.Session{AccessToken: "user-token", Email: "ana@example.com"})

	assert.True(t, store.SignedIn())
	assert.Equal(t, "user-token", store.Token())

	store.Clear()

	assert.False(t, store.SignedIn())
	assert.Equal(t, "anon-key", store.Token())
}

func TestStore_CurrentReturnsCopy(t *testing.T) {
	store := newStore()
	store.Set(&session.Session{AccessToken: "token", Email: "ana@example.com"})

	current := store.Current()
	current.Email = "mutated@example.com"

	assert.Equal(t, "ana@example.com", store.Current().Email)
}

func TestStore_NotifiesListenersOnEveryTransition(t *testing.T) {
	store := newStore()

	var seen []*session.Session
	store.OnChange(func(current *session.Session) {
		seen = append(seen, current)
	})

	store.Set(&session.Session{AccessToken: "token"})
	store.Clear()

	assert.Len(t, seen, 2)
	assert.NotNil(t, seen[0])
	assert.Nil(t, seen[1])
}
