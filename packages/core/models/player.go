package models

import (
	"strings"
	"time"
)

type Player struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	TeamID       uint      `gorm:"not null;index" json:"team_id"`
	FirstName    string    `gorm:"size:100;not null" json:"first_name"`
	LastName     string    `gorm:"size:100;not null" json:"last_name"`
	BirthDate    *string   `gorm:"size:10" json:"birth_date"`
	Gender       *string   `gorm:"size:20" json:"gender"`
	DominantHand *string   `gorm:"size:10" json:"dominant_hand"`
	SkillLevel   *string   `gorm:"size:30" json:"skill_level"`
	AvatarURL    *string   `gorm:"size:500" json:"avatar_url"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (Player) TableName() string {
	return "players"
}

func (p Player) FullName() string {
	return strings.TrimSpace(p.FirstName + " " + p.LastName)
}

type PaginatedPlayersResponse struct {
	Data       []Player `json:"data"`
	Total      int64    `json:"total"`
	Page       int      `json:"page"`
	PageSize   int      `json:"pageSize"`
	TotalPages int      `json:"totalPages"`
}

type CreatePlayerRequest struct {
	FirstName    string  `json:"first_name" binding:"required,max=100"`
	LastName     string  `json:"last_name" binding:"required,max=100"`
	BirthDate    *string `json:"birth_date,omitempty" binding:"omitempty,datetime=2006-01-02"`
	Gender       *string `json:"gender,omitempty" binding:"omitempty,max=20"`
	DominantHand *string `json:"dominant_hand,omitempty" binding:"omitempty,oneof=left right"`
	SkillLevel   *string `json:"skill_level,omitempty" binding:"omitempty,max=30"`
	AvatarURL    *string `json:"avatar_url,omitempty" binding:"omitempty,url"`
}

type UpdatePlayerRequest struct {
	FirstName    *string `json:"first_name,omitempty" binding:"omitempty,max=100"`
	LastName     *string `json:"last_name,omitempty" binding:"omitempty,max=100"`
	BirthDate    *string `json:"birth_date,omitempty" binding:"omitempty,datetime=2006-01-02"`
	Gender       *string `json:"gender,omitempty" binding:"omitempty,max=20"`
	DominantHand *string `json:"dominant_hand,omitempty" binding:"omitempty,oneof=left right"`
	SkillLevel   *string `json:"skill_level,omitempty" binding:"omitempty,max=30"`
	AvatarURL    *string `json:"avatar_url,omitempty" binding:"omitempty,url"`
}
