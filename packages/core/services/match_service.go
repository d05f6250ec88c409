package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	authModels "tennis-stats-api/packages/auth/models"
	"tennis-stats-api/packages/core/models"
	"tennis-stats-api/pkg/cache"

	"gorm.io/gorm"
)

var statusRank = map[string]int{
	models.MatchScheduled:  0,
	models.MatchInProgress: 1,
	models.MatchCompleted:  2,
}

var sideRoles = map[string]map[string]bool{
	models.SideA: {models.RolePlayer: true, models.RolePartner: true},
	models.SideB: {models.RoleOpponent1: true, models.RoleOpponent2: true},
}

type MatchService struct {
	db    *gorm.DB
	cache *QueryCache
}

func NewMatchService(db *gorm.DB, qc *QueryCache) *MatchService {
	return &MatchService{
		db:    db,
		cache: qc,
	}
}

func (s *MatchService) teamMatches(ctx context.Context, teamID uint) *gorm.DB {
	return s.db.WithContext(ctx).Model(&models.Match{}).Where("matches.team_id = ?", teamID)
}

func (s *MatchService) applyFilter(query *gorm.DB, f models.MatchFilter) *gorm.DB {
	if f.PlayerID != 0 {
		query = query.Where("matches.id IN (?)",
			s.db.Model(&models.MatchPlayer{}).Select("match_id").Where("player_id = ?", f.PlayerID))
	}
	if f.Surface != "" {
		query = query.Where("matches.surface = ?", f.Surface)
	}
	if f.Format != "" {
		query = query.Where("matches.format = ?", f.Format)
	}
	if f.Status != "" {
		query = query.Where("matches.status = ?", f.Status)
	}
	if f.From != "" {
		query = query.Where("matches.date >= ?", f.From)
	}
	if f.To != "" {
		query = query.Where("matches.date <= ?", f.To)
	}
	return query
}

func (s *MatchService) GetMatches(ctx context.Context, auth authModels.AuthContext, filter models.MatchFilter, page int, pageSize int) (*models.PaginatedMatchResponse, error) {
	key := fmt.Sprintf("%s:list:%d:%s:%s:%s:%s:%s:%d:%d", cache.MatchesKey(auth.TeamID),
		filter.PlayerID, filter.Surface, filter.Format, filter.Status, filter.From, filter.To, page, pageSize)

	var response models.PaginatedMatchResponse
	err := s.cache.remember(ctx, key, &response, func() error {
		var matches []models.Match
		var total int64

		base := s.applyFilter(s.teamMatches(ctx, auth.TeamID), filter)
		if err := base.Count(&total).Error; err != nil {
			return err
		}

		offset := (page - 1) * pageSize
		if err := base.Order("matches.date DESC").
			Order("matches.id DESC").
			Preload("MatchPlayers").
			Preload("MatchPlayers.Player").
			Offset(offset).
			Limit(pageSize).
			Find(&matches).Error; err != nil {
			return err
		}

		totalPages := int((total + int64(pageSize) - 1) / int64(pageSize))
		response = models.PaginatedMatchResponse{
			Data:       matches,
			Total:      total,
			Page:       page,
			PageSize:   pageSize,
			TotalPages: totalPages,
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list matches: %w", err)
	}
	return &response, nil
}

func (s *MatchService) GetMatchByID(ctx context.Context, auth authModels.AuthContext, id uint) (*models.Match, error) {
	var match models.Match
	err := s.cache.remember(ctx, cache.MatchKey(auth.TeamID, id), &match, func() error {
		return s.teamMatches(ctx, auth.TeamID).
			Preload("MatchPlayers").
			Preload("MatchPlayers.Player").
			Preload("Sets", func(db *gorm.DB) *gorm.DB { return db.Order("set_number ASC") }).
			First(&match, id).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMatchNotFound
		}
		return nil, fmt.Errorf("failed to load match: %w", err)
	}
	return &match, nil
}

// validateParticipants checks the line-up against the format and the team
// roster and returns the rows to insert.
func (s *MatchService) validateParticipants(ctx context.Context, teamID uint, format string, inputs []models.MatchPlayerInput) ([]models.MatchPlayer, error) {
	perSide := 1
	if format == models.FormatDoubles {
		perSide = 2
	}

	counts := map[string]int{}
	seenPlayers := map[uint]bool{}
	rows := make([]models.MatchPlayer, 0, len(inputs))
	for _, in := range inputs {
		if !sideRoles[in.Side][in.Role] {
			return nil, fmt.Errorf("%w: role %s cannot play on side %s", ErrInvalidParticipants, in.Role, in.Side)
		}
		counts[in.Side]++

		row := models.MatchPlayer{
			PlayerID:    in.PlayerID,
			DisplayName: strings.TrimSpace(in.DisplayName),
			Side:        in.Side,
			Role:        in.Role,
		}
		if in.PlayerID != nil {
			if seenPlayers[*in.PlayerID] {
				return nil, fmt.Errorf("%w: player %d listed twice", ErrInvalidParticipants, *in.PlayerID)
			}
			seenPlayers[*in.PlayerID] = true

			var player models.Player
			if err := s.db.WithContext(ctx).Where("team_id = ?", teamID).First(&player, *in.PlayerID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return nil, fmt.Errorf("%w: player %d is not on the roster", ErrInvalidParticipants, *in.PlayerID)
				}
				return nil, err
			}
			if row.DisplayName == "" {
				row.DisplayName = player.FullName()
			}
			row.IsTracked = in.Side == models.SideA
		} else if row.DisplayName == "" {
			return nil, fmt.Errorf("%w: a display name is required without a player", ErrInvalidParticipants)
		}
		rows = append(rows, row)
	}

	if counts[models.SideA] != perSide || counts[models.SideB] != perSide {
		return nil, fmt.Errorf("%w: %s needs %d per side", ErrInvalidParticipants, format, perSide)
	}
	return rows, nil
}

func (s *MatchService) CreateMatch(ctx context.Context, auth authModels.AuthContext, req models.CreateMatchRequest) (*models.Match, error) {
	participants, err := s.validateParticipants(ctx, auth.TeamID, req.Format, req.MatchPlayers)
	if err != nil {
		return nil, err
	}

	status := req.Status
	if status == "" {
		status = models.MatchScheduled
	}
	match := models.Match{
		TeamID:      auth.TeamID,
		Date:        req.Date,
		Surface:     req.Surface,
		Format:      req.Format,
		Status:      status,
		Notes:       req.Notes,
		FinalResult: req.FinalResult,
		Score:       req.Score,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("MatchPlayers", "Sets").Create(&match).Error; err != nil {
			return err
		}
		for i := range participants {
			participants[i].MatchID = match.ID
		}
		return tx.Omit("Player").Create(&participants).Error
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create match: %w", err)
	}

	s.cache.invalidate(ctx, cache.MatchesKey(auth.TeamID))
	return s.GetMatchByID(ctx, auth, match.ID)
}

func (s *MatchService) UpdateMatch(ctx context.Context, auth authModels.AuthContext, id uint, req models.UpdateMatchRequest) (*models.Match, error) {
	if _, err := s.GetMatchByID(ctx, auth, id); err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if req.Date != nil {
		updates["date"] = *req.Date
	}
	if req.Surface != nil {
		updates["surface"] = *req.Surface
	}
	if req.Notes != nil {
		updates["notes"] = *req.Notes
	}
	if req.FinalResult != nil {
		updates["final_result"] = *req.FinalResult
	}
	if req.Score != nil {
		updates["score"] = *req.Score
	}

	if len(updates) > 0 {
		if err := s.teamMatches(ctx, auth.TeamID).Where("id = ?", id).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("failed to update match: %w", err)
		}
		s.cache.invalidate(ctx, cache.MatchesKey(auth.TeamID))
	}
	return s.GetMatchByID(ctx, auth, id)
}

// UpdateMatchStatus moves a match along scheduled, in_progress, completed.
// Repeating the current status is allowed; going back is not.
func (s *MatchService) UpdateMatchStatus(ctx context.Context, auth authModels.AuthContext, id uint, req models.UpdateMatchStatusRequest) (*models.Match, error) {
	match, err := s.GetMatchByID(ctx, auth, id)
	if err != nil {
		return nil, err
	}
	if statusRank[req.Status] < statusRank[match.Status] {
		return nil, fmt.Errorf("%w: %s to %s", ErrInvalidStatusTransition, match.Status, req.Status)
	}

	updates := map[string]interface{}{"status": req.Status}
	if req.FinalResult != nil {
		updates["final_result"] = *req.FinalResult
	}
	if req.Score != nil {
		updates["score"] = *req.Score
	}
	if err := s.teamMatches(ctx, auth.TeamID).Where("id = ?", id).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to update match status: %w", err)
	}

	s.cache.invalidate(ctx, cache.MatchesKey(auth.TeamID))
	return s.GetMatchByID(ctx, auth, id)
}

// DeleteMatch removes the match with its participants, sets and statistics.
func (s *MatchService) DeleteMatch(ctx context.Context, auth authModels.AuthContext, id uint) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var match models.Match
		if err := tx.Where("team_id = ?", auth.TeamID).First(&match, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrMatchNotFound
			}
			return err
		}

		setIDs := tx.Model(&models.Set{}).Select("id").Where("match_id = ?", id)
		for _, row := range []interface{}{
			&models.SetPlayerTechStats{},
			&models.SetPlayerTacticalStats{},
			&models.SetPlayerPhysicalMentalStats{},
		} {
			if err := tx.Where("set_id IN (?)", setIDs).Delete(row).Error; err != nil {
				return err
			}
		}
		if err := tx.Where("match_id = ?", id).Delete(&models.Set{}).Error; err != nil {
			return err
		}
		if err := tx.Where("match_id = ?", id).Delete(&models.MatchPlayer{}).Error; err != nil {
			return err
		}
		return tx.Delete(&match).Error
	})
	if errors.Is(err, ErrMatchNotFound) {
		return err
	}
	if err != nil {
		return fmt.Errorf("failed to delete match: %w", err)
	}

	s.cache.invalidate(ctx, cache.MatchesKey(auth.TeamID))
	return nil
}

// GetTeamDataset loads every match of the team with participants, sets and
// technical rows, as the analytics expect.
func (s *MatchService) GetTeamDataset(ctx context.Context, teamID uint) ([]models.Match, error) {
	var matches []models.Match
	err := s.cache.remember(ctx, cache.MatchesKey(teamID)+":dataset", &matches, func() error {
		return s.teamMatches(ctx, teamID).
			Preload("MatchPlayers").
			Preload("MatchPlayers.Player").
			Preload("Sets", func(db *gorm.DB) *gorm.DB { return db.Order("set_number ASC") }).
			Preload("Sets.TechStats").
			Order("matches.date ASC").
			Order("matches.id ASC").
			Find(&matches).Error
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load team matches: %w", err)
	}
	return matches, nil
}

// GetMatchIDsForPlayer lists the team matches the player took part in.
func (s *MatchService) GetMatchIDsForPlayer(ctx context.Context, teamID, playerID uint) ([]uint, error) {
	var ids []uint
	err := s.db.WithContext(ctx).Model(&models.MatchPlayer{}).
		Joins("JOIN matches ON matches.id = match_players.match_id").
		Where("matches.team_id = ? AND match_players.player_id = ?", teamID, playerID).
		Distinct().
		Pluck("match_players.match_id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list player matches: %w", err)
	}
	return ids, nil
}

func (s *MatchService) GetMatchesByIDs(ctx context.Context, teamID uint, ids []uint) ([]models.Match, error) {
	var matches []models.Match
	if len(ids) == 0 {
		return matches, nil
	}
	err := s.teamMatches(ctx, teamID).
		Where("matches.id IN ?", ids).
		Preload("MatchPlayers").
		Find(&matches).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load matches: %w", err)
	}
	return matches, nil
}
