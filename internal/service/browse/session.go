package browse

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/skiphire/skip-browser/internal/domain/models"
)

// ErrSessionNotFound is returned for unknown or expired session identifiers.
var ErrSessionNotFound = errors.New("browse session not found")

// session is the per-visitor browse state: the submitted location, the fetch
// outcome, the active filters/sort and the current selection. The generation
// counter tags in-flight lookups so a superseded response can be discarded.
type session struct {
	id         string
	postcode   string
	area       string
	status     models.FetchStatus
	skips      []models.Skip
	filters    models.FilterState
	sort       models.SortKey
	selected   *int
	generation uint64
	touchedAt  time.Time
}

// SessionManager handles browse session states.
type SessionManager struct {
	sessions map[string]*session
	mu       sync.RWMutex
}

// NewSessionManager creates a new session manager.
func NewSessionManager() *SessionManager {
	return &SessionManager{
		sessions: make(map[string]*session),
	}
}

// Create registers a fresh session with default filter and sort state.
func (sm *SessionManager) Create() models.SessionSnapshot {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	s := &session{
		id:        uuid.NewString(),
		status:    models.FetchIdle,
		sort:      models.DefaultSortKey,
		touchedAt: time.Now(),
	}
	sm.sessions[s.id] = s
	return s.snapshot()
}

// Update runs fn against the session under the write lock and refreshes its
// idle timestamp. fn may return an error to abort the operation.
func (sm *SessionManager) Update(id string, fn func(*session) error) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	s, ok := sm.sessions[id]
	if !ok {
		return ErrSessionNotFound
	}
	if err := fn(s); err != nil {
		return err
	}
	s.touchedAt = time.Now()
	return nil
}

// View runs fn against the session under the read lock.
func (sm *SessionManager) View(id string, fn func(*session) error) error {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	s, ok := sm.sessions[id]
	if !ok {
		return ErrSessionNotFound
	}
	return fn(s)
}

// Delete removes a session.
func (sm *SessionManager) Delete(id string) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	delete(sm.sessions, id)
}

// EvictIdle removes sessions untouched for longer than maxIdle and reports
// how many were dropped.
func (sm *SessionManager) EvictIdle(maxIdle time.Duration) int {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	var evicted int
	for id, s := range sm.sessions {
		if time.Since(s.touchedAt) > maxIdle {
			delete(sm.sessions, id)
			evicted++
		}
	}
	return evicted
}

func (s *session) snapshot() models.SessionSnapshot {
	snap := models.SessionSnapshot{
		ID:       s.id,
		Postcode: s.postcode,
		Area:     s.area,
		Status:   s.status,
		Filters:  s.filters,
		Sort:     s.sort,
	}
	if s.selected != nil {
		id := *s.selected
		snap.SelectedSkipID = &id
	}
	return snap
}
