package studio

import (
	"sync"
	"time"

	"lumina/internal/domain"
	"lumina/internal/infra"
	"lumina/internal/providers/genai"
)

// Store keeps live sessions in memory, keyed by session id. Sessions left
// untouched beyond the idle TTL are swept.
type Store struct {
	mu          sync.Mutex
	sessions    map[string]*Session
	generator   Generator
	credentials genai.CredentialProvider
	logger      infra.Logger
	idleTTL     time.Duration
}

// NewStore builds a session store. idleTTL <= 0 disables expiry.
func NewStore(generator Generator, credentials genai.CredentialProvider, logger infra.Logger, idleTTL time.Duration) *Store {
	return &Store{
		sessions:    make(map[string]*Session),
		generator:   generator,
		credentials: credentials,
		logger:      logger,
		idleTTL:     idleTTL,
	}
}

// Create registers a new session with the given response locale.
func (st *Store) Create(locale string) *Session {
	session := NewSession(st.generator, st.credentials, locale, st.logger)
	st.mu.Lock()
	st.sessions[session.ID] = session
	st.mu.Unlock()
	return session
}

// Get looks up a live session.
func (st *Store) Get(id string) (*Session, error) {
	st.mu.Lock()
	defer st.mu.Unlock()
	session, ok := st.sessions[id]
	if !ok {
		return nil, domain.ValidationError("session not found")
	}
	return session, nil
}

// Delete removes a session outright.
func (st *Store) Delete(id string) {
	st.mu.Lock()
	delete(st.sessions, id)
	st.mu.Unlock()
}

// Sweep drops sessions idle past the TTL and reports how many were removed.
// Busy sessions are never swept.
func (st *Store) Sweep(now time.Time) int {
	if st.idleTTL <= 0 {
		return 0
	}
	st.mu.Lock()
	defer st.mu.Unlock()
	removed := 0
	for id, session := range st.sessions {
		if session.Busy() {
			continue
		}
		if now.Sub(session.TouchedAt()) > st.idleTTL {
			delete(st.sessions, id)
			removed++
		}
	}
	if removed > 0 {
		st.logger.Debug().Int("removed", removed).Msg("studio: swept idle sessions")
	}
	return removed
}

// StartSweeper runs Sweep on the given interval until stop is closed.
func (st *Store) StartSweeper(interval time.Duration, stop <-chan struct{}) {
	if st.idleTTL <= 0 || interval <= 0 {
		return
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-stop:
				return
			case now := <-ticker.C:
				st.Sweep(now)
			}
		}
	}()
}
