package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	authModels "tennis-stats-api/packages/auth/models"
	"tennis-stats-api/packages/core/models"
	"tennis-stats-api/pkg/cache"

	"gorm.io/gorm"
)

type SetService struct {
	db      *gorm.DB
	matches *MatchService
	cache   *QueryCache
	now     func() time.Time
}

func NewSetService(db *gorm.DB, matches *MatchService, qc *QueryCache) *SetService {
	return &SetService{
		db:      db,
		matches: matches,
		cache:   qc,
		now:     time.Now,
	}
}

func (s *SetService) GetSets(ctx context.Context, auth authModels.AuthContext, matchID uint) ([]models.Set, error) {
	if _, err := s.matches.GetMatchByID(ctx, auth, matchID); err != nil {
		return nil, err
	}

	var sets []models.Set
	if err := s.db.WithContext(ctx).Where("match_id = ?", matchID).Order("set_number ASC").Find(&sets).Error; err != nil {
		return nil, fmt.Errorf("failed to list sets: %w", err)
	}
	return sets, nil
}

// getSet loads a set of a team match. matchID zero skips the match check.
func (s *SetService) getSet(ctx context.Context, teamID, matchID, setID uint) (*models.Set, error) {
	query := s.db.WithContext(ctx).
		Joins("JOIN matches ON matches.id = sets.match_id").
		Where("matches.team_id = ?", teamID)
	if matchID != 0 {
		query = query.Where("sets.match_id = ?", matchID)
	}

	var set models.Set
	if err := query.First(&set, "sets.id = ?", setID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSetNotFound
		}
		return nil, fmt.Errorf("failed to load set: %w", err)
	}
	return &set, nil
}

// CreateSet appends a planned set numbered after the highest existing one.
// The number is read then written without a lock, so two concurrent creates
// can pick the same number.
func (s *SetService) CreateSet(ctx context.Context, auth authModels.AuthContext, matchID uint) (*models.Set, error) {
	if _, err := s.matches.GetMatchByID(ctx, auth, matchID); err != nil {
		return nil, err
	}

	var maxNumber int
	if err := s.db.WithContext(ctx).Model(&models.Set{}).
		Where("match_id = ?", matchID).
		Select("COALESCE(MAX(set_number), 0)").
		Scan(&maxNumber).Error; err != nil {
		return nil, fmt.Errorf("failed to number set: %w", err)
	}

	set := models.Set{MatchID: matchID, SetNumber: maxNumber + 1}
	if err := s.db.WithContext(ctx).Omit("TechStats").Create(&set).Error; err != nil {
		return nil, fmt.Errorf("failed to create set: %w", err)
	}
	set.Status = set.DeriveStatus()

	s.cache.invalidate(ctx, cache.MatchesKey(auth.TeamID))
	return &set, nil
}

// StartSet stamps the start time. A scheduled match moves to in progress.
func (s *SetService) StartSet(ctx context.Context, auth authModels.AuthContext, matchID, setID uint) (*models.Set, error) {
	set, err := s.getSet(ctx, auth.TeamID, matchID, setID)
	if err != nil {
		return nil, err
	}
	if set.StartedAt != nil {
		return nil, ErrSetAlreadyStarted
	}

	now := s.now()
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Set{}).Where("id = ?", set.ID).Update("started_at", now).Error; err != nil {
			return err
		}
		return tx.Model(&models.Match{}).
			Where("id = ? AND status = ?", set.MatchID, models.MatchScheduled).
			Update("status", models.MatchInProgress).Error
	})
	if err != nil {
		return nil, fmt.Errorf("failed to start set: %w", err)
	}

	s.cache.invalidate(ctx, cache.MatchesKey(auth.TeamID))
	return s.getSet(ctx, auth.TeamID, matchID, setID)
}

// CompleteSet stamps the completion time, and the start time when the set
// was never started.
func (s *SetService) CompleteSet(ctx context.Context, auth authModels.AuthContext, matchID, setID uint) (*models.Set, error) {
	set, err := s.getSet(ctx, auth.TeamID, matchID, setID)
	if err != nil {
		return nil, err
	}
	if set.CompletedAt != nil {
		return nil, ErrSetAlreadyCompleted
	}

	now := s.now()
	updates := map[string]interface{}{"completed_at": now}
	if set.StartedAt == nil {
		updates["started_at"] = now
	}
	if err := s.db.WithContext(ctx).Model(&models.Set{}).Where("id = ?", set.ID).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to complete set: %w", err)
	}

	s.cache.invalidate(ctx, cache.MatchesKey(auth.TeamID))
	return s.getSet(ctx, auth.TeamID, matchID, setID)
}

func (s *SetService) UpdateSetScore(ctx context.Context, auth authModels.AuthContext, matchID, setID uint, req models.UpdateSetScoreRequest) (*models.Set, error) {
	set, err := s.getSet(ctx, auth.TeamID, matchID, setID)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if req.SideAGames != nil {
		updates["side_a_games"] = *req.SideAGames
	}
	if req.SideBGames != nil {
		updates["side_b_games"] = *req.SideBGames
	}
	if req.TiebreakA != nil {
		updates["tiebreak_a"] = *req.TiebreakA
	}
	if req.TiebreakB != nil {
		updates["tiebreak_b"] = *req.TiebreakB
	}
	if len(updates) > 0 {
		if err := s.db.WithContext(ctx).Model(&models.Set{}).Where("id = ?", set.ID).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("failed to update set score: %w", err)
		}
		s.cache.invalidate(ctx, cache.MatchesKey(auth.TeamID))
	}
	return s.getSet(ctx, auth.TeamID, matchID, setID)
}
