package live

import (
	"sync"
	"time"

	authModels "tennis-stats-api/packages/auth/models"
	"tennis-stats-api/pkg/metrics"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Registry holds the open live sessions of the process.
type Registry struct {
	store   Store
	log     *logrus.Entry
	metrics *metrics.Manager
	now     func() time.Time

	mu       sync.RWMutex
	sessions map[string]*Session
	// background tracks implicit saves of every session, evicted ones included.
	background sync.WaitGroup
}

func NewRegistry(store Store, log *logrus.Entry, m *metrics.Manager) *Registry {
	return &Registry{
		store:    store,
		log:      log,
		metrics:  m,
		now:      time.Now,
		sessions: make(map[string]*Session),
	}
}

func (r *Registry) Create(auth authModels.AuthContext) *Session {
	s := newSession(uuid.NewString(), auth, r.store, r.log, r.metrics, r.now, &r.background)

	r.mu.Lock()
	r.sessions[s.ID()] = s
	n := len(r.sessions)
	r.mu.Unlock()

	r.metrics.SetLiveSessions(n)
	return s
}

// Get returns the session only to the profile and team that opened it.
func (r *Registry) Get(id string, auth authModels.AuthContext) (*Session, error) {
	r.mu.RLock()
	s, ok := r.sessions[id]
	r.mu.RUnlock()
	if !ok || s.auth.ProfileID != auth.ProfileID || s.auth.TeamID != auth.TeamID {
		return nil, ErrSessionNotFound
	}
	return s, nil
}

// Remove closes a session, discarding unsaved edits.
func (r *Registry) Remove(id string, auth authModels.AuthContext) error {
	s, err := r.Get(id, auth)
	if err != nil {
		return err
	}
	s.Unselect()

	r.mu.Lock()
	delete(r.sessions, id)
	n := len(r.sessions)
	r.mu.Unlock()

	r.metrics.SetLiveSessions(n)
	return nil
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

// Sweep closes sessions untouched for longer than ttl and returns how many
// were closed. Unsaved edits of swept sessions are discarded.
func (r *Registry) Sweep(ttl time.Duration) int {
	cutoff := r.now().Add(-ttl)

	r.mu.Lock()
	var expired []*Session
	for id, s := range r.sessions {
		if s.idleSince().Before(cutoff) {
			expired = append(expired, s)
			delete(r.sessions, id)
		}
	}
	n := len(r.sessions)
	r.mu.Unlock()

	for _, s := range expired {
		s.Unselect()
	}
	if len(expired) > 0 {
		r.log.WithField("swept", len(expired)).Info("expired live sessions closed")
	}
	r.metrics.SetLiveSessions(n)
	r.metrics.AddSweptSessions(len(expired))
	return len(expired)
}

// Flush waits for every background save started so far, including those of
// sessions already removed or swept.
func (r *Registry) Flush() {
	r.background.Wait()
}
