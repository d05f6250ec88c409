package models

import (
	"time"

	"gorm.io/gorm"
)

// Derived set statuses.
const (
	SetPlanned    = "planned"
	SetInProgress = "in_progress"
	SetFinished   = "finished"
)

type Set struct {
	ID          uint       `gorm:"primaryKey;autoIncrement" json:"id"`
	MatchID     uint       `gorm:"not null;index" json:"match_id"`
	SetNumber   int        `gorm:"not null" json:"set_number"`
	SideAGames  int        `gorm:"not null;default:0" json:"side_a_games"`
	SideBGames  int        `gorm:"not null;default:0" json:"side_b_games"`
	TiebreakA   *int       `json:"tiebreak_a"`
	TiebreakB   *int       `json:"tiebreak_b"`
	StartedAt   *time.Time `json:"started_at"`
	CompletedAt *time.Time `json:"completed_at"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	Status      string     `gorm:"-" json:"status"`

	TechStats []SetPlayerTechStats `gorm:"foreignKey:SetID" json:"tech_stats,omitempty"`
}

func (Set) TableName() string {
	return "sets"
}

// DeriveStatus computes the status from the timestamps.
func (s Set) DeriveStatus() string {
	switch {
	case s.CompletedAt != nil:
		return SetFinished
	case s.StartedAt != nil:
		return SetInProgress
	default:
		return SetPlanned
	}
}

func (s *Set) AfterFind(tx *gorm.DB) error {
	s.Status = s.DeriveStatus()
	return nil
}

type UpdateSetScoreRequest struct {
	SideAGames *int `json:"side_a_games,omitempty" binding:"omitempty,min=0"`
	SideBGames *int `json:"side_b_games,omitempty" binding:"omitempty,min=0"`
	TiebreakA  *int `json:"tiebreak_a,omitempty" binding:"omitempty,min=0"`
	TiebreakB  *int `json:"tiebreak_b,omitempty" binding:"omitempty,min=0"`
}
