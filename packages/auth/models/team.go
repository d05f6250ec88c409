package models

import "time"

type Team struct {
	ID        uint      `json:"id" gorm:"primaryKey;autoIncrement"`
	Name      string    `json:"name" gorm:"size:255;not null"`
	Slug      string    `json:"slug" gorm:"size:255;uniqueIndex;not null"`
	CreatedBy string    `json:"created_by" gorm:"size:64;not null"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Team) TableName() string {
	return "teams"
}

type TeamMember struct {
	ID         uint      `json:"id" gorm:"primaryKey;autoIncrement"`
	TeamID     uint      `json:"team_id" gorm:"not null;uniqueIndex:idx_team_members_team_profile"`
	ProfileID  string    `json:"profile_id" gorm:"size:64;not null;uniqueIndex:idx_team_members_team_profile"`
	Role       string    `json:"role" gorm:"size:20;not null;default:coach"`
	Status     string    `json:"status" gorm:"size:20;not null;default:pending"`
	ReviewedBy *string   `json:"reviewed_by,omitempty" gorm:"size:64"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`

	Team    Team    `json:"team,omitempty" gorm:"foreignKey:TeamID"`
	Profile Profile `json:"profile,omitempty" gorm:"foreignKey:ProfileID"`
}

func (TeamMember) TableName() string {
	return "team_members"
}

func (m *TeamMember) IsApproved() bool {
	return m.Status == StatusApproved
}

type CreateTeamRequest struct {
	Name string `json:"name" binding:"required,max=255"`
}

type JoinTeamRequest struct {
	Slug string `json:"slug" binding:"required"`
}

type ReviewMemberRequest struct {
	Status string  `json:"status" binding:"required,oneof=approved rejected"`
	Role   *string `json:"role,omitempty" binding:"omitempty,oneof=admin coach"`
}
