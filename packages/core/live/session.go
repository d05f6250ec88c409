package live

import (
	"context"
	"sync"
	"time"

	authModels "tennis-stats-api/packages/auth/models"
	"tennis-stats-api/packages/core/models"
	"tennis-stats-api/packages/core/utils"
	"tennis-stats-api/pkg/metrics"

	"github.com/sirupsen/logrus"
)

// Session is the live entry state of one coach for one (set, match player)
// pair at a time. All methods are safe for concurrent use.
type Session struct {
	id      string
	auth    authModels.AuthContext
	store   Store
	log     *logrus.Entry
	metrics *metrics.Manager
	now     func() time.Time

	mu            sync.Mutex
	state         State
	setID         uint
	matchPlayerID uint
	counters      utils.EventCounters
	kpis          models.QuickKPIs
	detailed      models.SetStatsBundle
	lastErr       error
	lastSave      []models.TableOutcome
	lastActivity  time.Time
	// generation changes on every selection so a slow load can tell it was superseded.
	generation uint64
	// revision changes on every detailed edit so a finished save keeps newer input.
	revision uint64

	background *sync.WaitGroup
}

// View is a point-in-time copy of a session.
type View struct {
	ID            string                `json:"id"`
	State         State                 `json:"state"`
	SetID         uint                  `json:"set_id,omitempty"`
	MatchPlayerID uint                  `json:"match_player_id,omitempty"`
	Counters      utils.EventCounters   `json:"counters"`
	QuickKPIs     models.QuickKPIs      `json:"quick_kpis"`
	Detailed      models.SetStatsBundle `json:"detailed"`
	LastError     string                `json:"last_error,omitempty"`
	LastSave      []models.TableOutcome `json:"last_save,omitempty"`
}

func newSession(id string, auth authModels.AuthContext, store Store, log *logrus.Entry, m *metrics.Manager, now func() time.Time, background *sync.WaitGroup) *Session {
	return &Session{
		background:   background,
		id:           id,
		auth:         auth,
		store:        store,
		log:          log.WithField("session_id", id),
		metrics:      m,
		now:          now,
		state:        StateIdle,
		lastActivity: now(),
	}
}

func (s *Session) ID() string {
	return s.id
}

func (s *Session) Auth() authModels.AuthContext {
	return s.auth
}

func (s *Session) View() View {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.viewLocked()
}

func (s *Session) viewLocked() View {
	v := View{
		ID:            s.id,
		State:         s.state,
		SetID:         s.setID,
		MatchPlayerID: s.matchPlayerID,
		Counters:      s.counters,
		QuickKPIs:     s.kpis,
		Detailed:      s.detailed,
		LastSave:      s.lastSave,
	}
	if s.lastErr != nil {
		v.LastError = s.lastErr.Error()
	}
	return v
}

// Select switches the session to a new pair. When the outgoing pair has any
// activity its merged statistics are saved in the background first; that save
// never blocks or fails the switch. A zero id unselects.
func (s *Session) Select(ctx context.Context, setID, matchPlayerID uint) (View, error) {
	if setID == 0 || matchPlayerID == 0 {
		return s.Unselect(), nil
	}

	s.mu.Lock()
	s.lastActivity = s.now()
	if s.setID == setID && s.matchPlayerID == matchPlayerID && s.state != StateIdle {
		v := s.viewLocked()
		s.mu.Unlock()
		return v, nil
	}

	if s.state == StateReady || s.state == StateSaving {
		if utils.HasActivity(s.counters, s.detailed.Tech) {
			s.saveInBackground(s.mergedLocked())
		}
	}

	s.resetLocked()
	s.generation++
	generation := s.generation
	s.state = StateLoading
	s.setID, s.matchPlayerID = setID, matchPlayerID
	s.mu.Unlock()

	bundle, err := s.store.Load(ctx, s.auth, setID, matchPlayerID)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.generation != generation {
		// superseded by a later selection or an unselect
		return s.viewLocked(), nil
	}
	if err != nil {
		s.resetLocked()
		s.lastErr = err
		return s.viewLocked(), err
	}

	s.detailed = *bundle
	s.counters = utils.CountersFromTech(bundle.Tech)
	notes := ""
	if bundle.PhysicalMental.CoachNotes != nil {
		notes = *bundle.PhysicalMental.CoachNotes
	}
	s.kpis = utils.ParseQuickKPIs(notes)
	stripped := utils.StripQuickKPIs(notes)
	s.detailed.PhysicalMental.CoachNotes = &stripped
	s.state = StateReady
	return s.viewLocked(), nil
}

// Unselect drops the current pair and every unsaved edit.
func (s *Session) Unselect() View {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.generation++
	s.resetLocked()
	s.lastActivity = s.now()
	return s.viewLocked()
}

func (s *Session) resetLocked() {
	s.state = StateIdle
	s.setID, s.matchPlayerID = 0, 0
	s.counters = utils.EventCounters{}
	s.kpis = models.QuickKPIs{}
	s.detailed = models.SetStatsBundle{}
	s.lastErr = nil
	s.lastSave = nil
}

func (s *Session) editable() error {
	if s.state != StateReady && s.state != StateSaving {
		return ErrNotReady
	}
	return nil
}

func (s *Session) Increment(key utils.EventKey) (View, error) {
	return s.edit(func() error { return s.counters.Increment(key) })
}

// Decrement lowers a counter, never below zero.
func (s *Session) Decrement(key utils.EventKey) (View, error) {
	return s.edit(func() error { return s.counters.Decrement(key) })
}

func (s *Session) SetQuickKPIs(kpis models.QuickKPIs) (View, error) {
	return s.edit(func() error {
		s.kpis = kpis
		return nil
	})
}

// SetDetailed replaces the sections present in req. Counter-tracked fields
// edited here are overwritten by the counters on the next save.
func (s *Session) SetDetailed(req models.UpsertSetStatsRequest) (View, error) {
	return s.edit(func() error {
		if req.Tech != nil {
			s.detailed.Tech = utils.NormalizeTech(req.Tech)
		}
		if req.Tactical != nil {
			s.detailed.Tactical = utils.NormalizeTactical(req.Tactical)
		}
		if req.PhysicalMental != nil {
			s.detailed.PhysicalMental = utils.NormalizePhysicalMental(req.PhysicalMental)
		}
		if req.QuickKPIs != nil {
			s.kpis = *req.QuickKPIs
		}
		s.detailed.Key(s.setID, s.matchPlayerID)
		s.revision++
		return nil
	})
}

func (s *Session) edit(apply func() error) (View, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastActivity = s.now()
	if err := s.editable(); err != nil {
		return s.viewLocked(), err
	}
	if err := apply(); err != nil {
		return s.viewLocked(), err
	}
	return s.viewLocked(), nil
}

// mergedLocked builds the records a save writes: counters folded into the
// technical row and the quick KPIs embedded in the coach notes.
func (s *Session) mergedLocked() models.SetStatsBundle {
	bundle := utils.NormalizeBundle(s.detailed)
	bundle.Tech = utils.MergeCounters(s.counters, bundle.Tech)
	notes := utils.EmbedQuickKPIs(*bundle.PhysicalMental.CoachNotes, s.kpis)
	bundle.PhysicalMental.CoachNotes = &notes
	bundle.Key(s.setID, s.matchPlayerID)
	return bundle
}

// Save writes the current pair. A table that fails leaves the others written;
// the session returns to Ready either way with the failure recorded.
func (s *Session) Save(ctx context.Context) (models.SaveResult, View, error) {
	s.mu.Lock()
	s.lastActivity = s.now()
	if s.state == StateSaving {
		v := s.viewLocked()
		s.mu.Unlock()
		return models.SaveResult{}, v, ErrSaveInFlight
	}
	if s.state != StateReady {
		v := s.viewLocked()
		s.mu.Unlock()
		return models.SaveResult{}, v, ErrNotReady
	}
	bundle := s.mergedLocked()
	generation, revision := s.generation, s.revision
	s.state = StateSaving
	s.mu.Unlock()

	result := s.store.SaveAll(ctx, s.auth, bundle)
	s.metrics.ObserveStatsSave(metrics.SaveExplicit, result.FailedTables(), 3)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.generation != generation {
		return result, s.viewLocked(), nil
	}
	s.state = StateReady
	s.lastSave = result.Outcomes()
	s.lastErr = result.Err()
	if !result.Failed() && s.revision == revision {
		notes := utils.StripQuickKPIs(*bundle.PhysicalMental.CoachNotes)
		bundle.PhysicalMental.CoachNotes = &notes
		s.detailed = bundle
	}
	return result, s.viewLocked(), nil
}

func (s *Session) saveInBackground(bundle models.SetStatsBundle) {
	s.background.Add(1)
	go func() {
		defer s.background.Done()
		result := s.store.SaveAll(context.Background(), s.auth, bundle)
		s.metrics.ObserveStatsSave(metrics.SaveImplicit, result.FailedTables(), 3)
		if err := result.Err(); err != nil {
			s.log.WithFields(logrus.Fields{
				"set_id":          bundle.SetID,
				"match_player_id": bundle.MatchPlayerID,
			}).WithError(err).Warn("background save failed")
		}
	}()
}

// Flush waits for background saves started so far, including those of
// sessions sharing the same registry.
func (s *Session) Flush() {
	s.background.Wait()
}

func (s *Session) idleSince() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastActivity
}
