package services

import (
	"context"
	"errors"
	"fmt"

	authModels "tennis-stats-api/packages/auth/models"
	"tennis-stats-api/packages/core/models"
	"tennis-stats-api/packages/core/utils"
	"tennis-stats-api/pkg/cache"
	"tennis-stats-api/pkg/metrics"

	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var statsConflict = clause.OnConflict{
	Columns:   []clause.Column{{Name: "set_id"}, {Name: "match_player_id"}},
	UpdateAll: true,
}

// SetStatsService reads and writes the three statistic records of a
// (set, match player) pair. It backs both the detailed form and live sessions.
type SetStatsService struct {
	db      *gorm.DB
	cache   *QueryCache
	metrics *metrics.Manager
}

func NewSetStatsService(db *gorm.DB, qc *QueryCache, m *metrics.Manager) *SetStatsService {
	return &SetStatsService{
		db:      db,
		cache:   qc,
		metrics: m,
	}
}

// ValidatePair checks that the set belongs to a team match and that the
// match player takes part in that same match.
func (s *SetStatsService) ValidatePair(ctx context.Context, auth authModels.AuthContext, setID, matchPlayerID uint) error {
	var set models.Set
	err := s.db.WithContext(ctx).
		Joins("JOIN matches ON matches.id = sets.match_id").
		Where("matches.team_id = ?", auth.TeamID).
		First(&set, "sets.id = ?", setID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrSetNotFound
		}
		return fmt.Errorf("failed to load set: %w", err)
	}

	var mp models.MatchPlayer
	if err := s.db.WithContext(ctx).First(&mp, matchPlayerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrMatchPlayerNotFound
		}
		return fmt.Errorf("failed to load match player: %w", err)
	}
	if mp.MatchID != set.MatchID {
		return ErrStatsPairMismatch
	}
	return nil
}

func findPairRow(ctx context.Context, db *gorm.DB, setID, matchPlayerID uint, dest interface{}) (bool, error) {
	err := db.WithContext(ctx).
		Where("set_id = ? AND match_player_id = ?", setID, matchPlayerID).
		First(dest).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	return err == nil, err
}

// Load returns the three records normalized. Missing records come back as
// defaults.
func (s *SetStatsService) Load(ctx context.Context, auth authModels.AuthContext, setID, matchPlayerID uint) (*models.SetStatsBundle, error) {
	if err := s.ValidatePair(ctx, auth, setID, matchPlayerID); err != nil {
		return nil, err
	}

	var (
		tech     models.SetPlayerTechStats
		tactical models.SetPlayerTacticalStats
		physical models.SetPlayerPhysicalMentalStats
	)
	bundle := models.SetStatsBundle{}

	found, err := findPairRow(ctx, s.db, setID, matchPlayerID, &tech)
	if err != nil {
		return nil, fmt.Errorf("failed to load technical stats: %w", err)
	}
	if found {
		bundle.Tech = tech
	}
	found, err = findPairRow(ctx, s.db, setID, matchPlayerID, &tactical)
	if err != nil {
		return nil, fmt.Errorf("failed to load tactical stats: %w", err)
	}
	if found {
		bundle.Tactical = tactical
	}
	found, err = findPairRow(ctx, s.db, setID, matchPlayerID, &physical)
	if err != nil {
		return nil, fmt.Errorf("failed to load physical stats: %w", err)
	}
	if found {
		bundle.PhysicalMental = physical
	}

	bundle = utils.NormalizeBundle(bundle)
	bundle.Key(setID, matchPlayerID)
	return &bundle, nil
}

// SaveAll upserts the three records concurrently. Each table succeeds or
// fails on its own and nothing is rolled back. A pair that fails validation
// is reported as failed on every table.
func (s *SetStatsService) SaveAll(ctx context.Context, auth authModels.AuthContext, bundle models.SetStatsBundle) models.SaveResult {
	if err := s.ValidatePair(ctx, auth, bundle.SetID, bundle.MatchPlayerID); err != nil {
		return models.SaveResult{Tech: err, Tactical: err, PhysicalMental: err}
	}

	bundle = utils.NormalizeBundle(bundle)
	bundle.Key(bundle.SetID, bundle.MatchPlayerID)
	tech, tactical, physical := bundle.Tech, bundle.Tactical, bundle.PhysicalMental
	tech.ID, tactical.ID, physical.ID = 0, 0, 0

	var result models.SaveResult
	// errors are kept per table; no goroutine fails the group
	var g errgroup.Group
	g.Go(func() error {
		result.Tech = s.db.WithContext(ctx).Clauses(statsConflict).Create(&tech).Error
		return nil
	})
	g.Go(func() error {
		result.Tactical = s.db.WithContext(ctx).Clauses(statsConflict).Create(&tactical).Error
		return nil
	})
	g.Go(func() error {
		result.PhysicalMental = s.db.WithContext(ctx).Clauses(statsConflict).Create(&physical).Error
		return nil
	})
	_ = g.Wait()

	if len(result.FailedTables()) < 3 {
		s.cache.invalidate(ctx, cache.MatchesKey(auth.TeamID))
	}
	return result
}

// GetSetStats returns the records of a pair with the quick KPIs split out of
// the coach notes.
func (s *SetStatsService) GetSetStats(ctx context.Context, auth authModels.AuthContext, setID, matchPlayerID uint) (*models.SetStatsView, error) {
	bundle, err := s.Load(ctx, auth, setID, matchPlayerID)
	if err != nil {
		return nil, err
	}
	return splitQuickKPIs(*bundle), nil
}

func splitQuickKPIs(bundle models.SetStatsBundle) *models.SetStatsView {
	notes := ""
	if bundle.PhysicalMental.CoachNotes != nil {
		notes = *bundle.PhysicalMental.CoachNotes
	}
	kpis := utils.ParseQuickKPIs(notes)
	stripped := utils.StripQuickKPIs(notes)
	bundle.PhysicalMental.CoachNotes = &stripped
	return &models.SetStatsView{Stats: bundle, QuickKPIs: kpis}
}

// UpsertSetStats saves the detailed form. Sections left out of req are
// written as defaults. Without quick KPIs in req the stored ones are kept.
func (s *SetStatsService) UpsertSetStats(ctx context.Context, auth authModels.AuthContext, setID, matchPlayerID uint, req models.UpsertSetStatsRequest) (*models.SaveSetStatsResponse, models.SaveResult, error) {
	current, err := s.GetSetStats(ctx, auth, setID, matchPlayerID)
	if err != nil {
		return nil, models.SaveResult{}, err
	}

	bundle := models.SetStatsBundle{
		Tech:           utils.NormalizeTech(req.Tech),
		Tactical:       utils.NormalizeTactical(req.Tactical),
		PhysicalMental: utils.NormalizePhysicalMental(req.PhysicalMental),
	}
	bundle.Key(setID, matchPlayerID)

	kpis := current.QuickKPIs
	if req.QuickKPIs != nil {
		kpis = *req.QuickKPIs
	}
	notes := utils.EmbedQuickKPIs(*bundle.PhysicalMental.CoachNotes, kpis)
	bundle.PhysicalMental.CoachNotes = &notes

	result := s.SaveAll(ctx, auth, bundle)
	s.metrics.ObserveStatsSave(metrics.SaveExplicit, result.FailedTables(), 3)

	saved, err := s.GetSetStats(ctx, auth, setID, matchPlayerID)
	if err != nil {
		return nil, result, err
	}
	return &models.SaveSetStatsResponse{
		Outcomes:  result.Outcomes(),
		Stats:     saved.Stats,
		QuickKPIs: saved.QuickKPIs,
	}, result, nil
}
