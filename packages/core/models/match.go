package models

import "time"

// Match statuses, in lifecycle order.
const (
	MatchScheduled  = "scheduled"
	MatchInProgress = "in_progress"
	MatchCompleted  = "completed"
)

const (
	FormatSingles = "singles"
	FormatDoubles = "doubles"
)

const (
	ResultWin     = "win"
	ResultLoss    = "loss"
	ResultRetired = "retired"
)

const (
	SideA = "A"
	SideB = "B"
)

const (
	RolePlayer    = "player"
	RolePartner   = "partner"
	RoleOpponent1 = "opponent_1"
	RoleOpponent2 = "opponent_2"
)

// Match is one contest between side A (the team's entrants) and side B.
// Date is kept as the YYYY-MM-DD string the clients send.
type Match struct {
	ID          uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	TeamID      uint      `gorm:"not null;index" json:"team_id"`
	Date        string    `gorm:"size:10;not null;index" json:"date"`
	Surface     *string   `gorm:"size:30" json:"surface"`
	Format      string    `gorm:"size:10;not null;default:singles" json:"format"`
	Status      string    `gorm:"size:20;not null;default:scheduled" json:"status"`
	Notes       *string   `json:"notes"`
	FinalResult *string   `gorm:"size:20" json:"final_result"`
	Score       *string   `gorm:"size:100" json:"score"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	MatchPlayers []MatchPlayer `gorm:"foreignKey:MatchID" json:"match_players,omitempty"`
	Sets         []Set         `gorm:"foreignKey:MatchID" json:"sets,omitempty"`
}

func (Match) TableName() string {
	return "matches"
}

// MatchPlayer is a participant slot. PlayerID is nil for ad-hoc opponents.
type MatchPlayer struct {
	ID          uint    `gorm:"primaryKey;autoIncrement" json:"id"`
	MatchID     uint    `gorm:"not null;index" json:"match_id"`
	PlayerID    *uint   `gorm:"index" json:"player_id"`
	DisplayName string  `gorm:"size:255;not null" json:"display_name"`
	Side        string  `gorm:"size:1;not null" json:"side"`
	Role        string  `gorm:"size:20;not null" json:"role"`
	IsTracked   bool    `gorm:"not null;default:false" json:"is_tracked"`
	Player      *Player `gorm:"foreignKey:PlayerID" json:"player,omitempty"`
}

func (MatchPlayer) TableName() string {
	return "match_players"
}

type PaginatedMatchResponse struct {
	Data       []Match `json:"data"`
	Total      int64   `json:"total"`
	Page       int     `json:"page"`
	PageSize   int     `json:"pageSize"`
	TotalPages int     `json:"totalPages"`
}

type MatchPlayerInput struct {
	PlayerID    *uint  `json:"player_id,omitempty"`
	DisplayName string `json:"display_name,omitempty" binding:"max=255"`
	Side        string `json:"side" binding:"required,oneof=A B"`
	Role        string `json:"role" binding:"required,oneof=player partner opponent_1 opponent_2"`
}

type CreateMatchRequest struct {
	Date         string             `json:"date" binding:"required,datetime=2006-01-02"`
	Surface      *string            `json:"surface,omitempty" binding:"omitempty,max=30"`
	Format       string             `json:"format" binding:"required,oneof=singles doubles"`
	Status       string             `json:"status,omitempty" binding:"omitempty,oneof=scheduled in_progress completed"`
	Notes        *string            `json:"notes,omitempty"`
	FinalResult  *string            `json:"final_result,omitempty" binding:"omitempty,oneof=win loss retired"`
	Score        *string            `json:"score,omitempty" binding:"omitempty,max=100"`
	MatchPlayers []MatchPlayerInput `json:"match_players" binding:"required,min=2,dive"`
}

type UpdateMatchRequest struct {
	Date        *string `json:"date,omitempty" binding:"omitempty,datetime=2006-01-02"`
	Surface     *string `json:"surface,omitempty" binding:"omitempty,max=30"`
	Notes       *string `json:"notes,omitempty"`
	FinalResult *string `json:"final_result,omitempty" binding:"omitempty,oneof=win loss retired"`
	Score       *string `json:"score,omitempty" binding:"omitempty,max=100"`
}

type UpdateMatchStatusRequest struct {
	Status      string  `json:"status" binding:"required,oneof=scheduled in_progress completed"`
	FinalResult *string `json:"final_result,omitempty" binding:"omitempty,oneof=win loss retired"`
	Score       *string `json:"score,omitempty" binding:"omitempty,max=100"`
}

// MatchFilter narrows match listings. Zero values mean no filter.
type MatchFilter struct {
	PlayerID uint
	Surface  string
	Format   string
	Status   string
	From     string
	To       string
}
