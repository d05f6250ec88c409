package services

import (
	"context"
	"errors"
	"fmt"

	authModels "tennis-stats-api/packages/auth/models"
	"tennis-stats-api/packages/core/models"
	"tennis-stats-api/pkg/cache"

	"gorm.io/gorm"
)

type PlayerService struct {
	db    *gorm.DB
	cache *QueryCache
}

func NewPlayerService(db *gorm.DB, qc *QueryCache) *PlayerService {
	return &PlayerService{
		db:    db,
		cache: qc,
	}
}

func (s *PlayerService) GetPlayerByID(ctx context.Context, auth authModels.AuthContext, id uint) (*models.Player, error) {
	var player models.Player

	result := s.db.WithContext(ctx).Where("team_id = ?", auth.TeamID).First(&player, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrPlayerNotFound
		}
		return nil, result.Error
	}

	return &player, nil
}

func (s *PlayerService) GetAllPlayers(ctx context.Context, auth authModels.AuthContext, orderBy string, direction string, page int, pageSize int) (*models.PaginatedPlayersResponse, error) {
	allowedOrderBy := map[string]bool{
		"created_at":  true,
		"last_name":   true,
		"first_name":  true,
		"skill_level": true,
	}
	if !allowedOrderBy[orderBy] {
		orderBy = "last_name"
	}
	if direction != "ASC" && direction != "DESC" {
		direction = "ASC"
	}

	key := fmt.Sprintf("%s:list:%s:%s:%d:%d", cache.PlayersKey(auth.TeamID), orderBy, direction, page, pageSize)
	var response models.PaginatedPlayersResponse
	err := s.cache.remember(ctx, key, &response, func() error {
		var players []models.Player
		var total int64

		base := s.db.WithContext(ctx).Model(&models.Player{}).Where("team_id = ?", auth.TeamID)
		if err := base.Count(&total).Error; err != nil {
			return err
		}

		offset := (page - 1) * pageSize
		if err := base.Order(orderBy + " " + direction).
			Order("id ASC").
			Offset(offset).
			Limit(pageSize).
			Find(&players).Error; err != nil {
			return err
		}

		totalPages := int((total + int64(pageSize) - 1) / int64(pageSize))
		response = models.PaginatedPlayersResponse{
			Data:       players,
			Total:      total,
			Page:       page,
			PageSize:   pageSize,
			TotalPages: totalPages,
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list players: %w", err)
	}
	return &response, nil
}

func (s *PlayerService) CreatePlayer(ctx context.Context, auth authModels.AuthContext, req models.CreatePlayerRequest) (*models.Player, error) {
	player := &models.Player{
		TeamID:       auth.TeamID,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		BirthDate:    req.BirthDate,
		Gender:       req.Gender,
		DominantHand: req.DominantHand,
		SkillLevel:   req.SkillLevel,
		AvatarURL:    req.AvatarURL,
	}

	if err := s.db.WithContext(ctx).Create(player).Error; err != nil {
		return nil, fmt.Errorf("failed to create player: %w", err)
	}

	s.cache.invalidate(ctx, cache.PlayersKey(auth.TeamID))
	return player, nil
}

func (s *PlayerService) UpdatePlayer(ctx context.Context, auth authModels.AuthContext, id uint, req models.UpdatePlayerRequest) (*models.Player, error) {
	player, err := s.GetPlayerByID(ctx, auth, id)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if req.FirstName != nil {
		updates["first_name"] = *req.FirstName
	}
	if req.LastName != nil {
		updates["last_name"] = *req.LastName
	}
	if req.BirthDate != nil {
		updates["birth_date"] = *req.BirthDate
	}
	if req.Gender != nil {
		updates["gender"] = *req.Gender
	}
	if req.DominantHand != nil {
		updates["dominant_hand"] = *req.DominantHand
	}
	if req.SkillLevel != nil {
		updates["skill_level"] = *req.SkillLevel
	}
	if req.AvatarURL != nil {
		updates["avatar_url"] = *req.AvatarURL
	}

	if len(updates) > 0 {
		if err := s.db.WithContext(ctx).Model(player).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("failed to update player: %w", err)
		}
		// names show up in match listings and rankings
		s.cache.invalidate(ctx, cache.PlayersKey(auth.TeamID), cache.MatchesKey(auth.TeamID))
	}

	return s.GetPlayerByID(ctx, auth, id)
}

// DeletePlayer removes the player row only. Match participations keep their
// display name; the schema sets their player_id to NULL.
func (s *PlayerService) DeletePlayer(ctx context.Context, auth authModels.AuthContext, id uint) error {
	result := s.db.WithContext(ctx).Where("team_id = ?", auth.TeamID).Delete(&models.Player{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete player: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrPlayerNotFound
	}

	s.cache.invalidate(ctx, cache.PlayersKey(auth.TeamID), cache.MatchesKey(auth.TeamID))
	return nil
}
