package models

import (
	"errors"
	"fmt"
	"time"
)

// Statistic table names, as reported in save results.
const (
	TableTech           = "set_player_tech_stats"
	TableTactical       = "set_player_tactical_stats"
	TablePhysicalMental = "set_player_physical_mental_stats"
)

// SetPlayerTechStats is the technical box score of one player in one set.
// Columns are nullable; rows written by older clients may be sparse.
type SetPlayerTechStats struct {
	ID            uint `gorm:"primaryKey;autoIncrement" json:"id"`
	SetID         uint `gorm:"not null;uniqueIndex:idx_tech_set_player" json:"set_id"`
	MatchPlayerID uint `gorm:"not null;uniqueIndex:idx_tech_set_player" json:"match_player_id"`

	Aces                 *int `json:"aces"`
	DoubleFaults         *int `json:"double_faults"`
	FirstServeIn         *int `json:"first_serve_in"`
	FirstServeTotal      *int `json:"first_serve_total"`
	FirstServePointsWon  *int `json:"first_serve_points_won"`
	SecondServeIn        *int `json:"second_serve_in"`
	SecondServeTotal     *int `json:"second_serve_total"`
	SecondServePointsWon *int `json:"second_serve_points_won"`

	FirstReturnIn     *int `json:"first_return_in"`
	FirstReturnTotal  *int `json:"first_return_total"`
	SecondReturnIn    *int `json:"second_return_in"`
	SecondReturnTotal *int `json:"second_return_total"`
	ReturnPointsWon   *int `json:"return_points_won"`
	ReturnPointsTotal *int `json:"return_points_total"`

	ShortRalliesWon  *int `json:"short_rallies_won"`
	ShortRalliesLost *int `json:"short_rallies_lost"`
	LongRalliesWon   *int `json:"long_rallies_won"`
	LongRalliesLost  *int `json:"long_rallies_lost"`
	ForcedErrors     *int `json:"forced_errors"`
	UnforcedErrors   *int `json:"unforced_errors"`

	FhWinners        *int `json:"fh_winners"`
	FhUnforcedErrors *int `json:"fh_unforced_errors"`
	BhWinners        *int `json:"bh_winners"`
	BhUnforcedErrors *int `json:"bh_unforced_errors"`

	NetApproaches *int `json:"net_approaches"`
	NetPointsWon  *int `json:"net_points_won"`
	NetErrors     *int `json:"net_errors"`
	VolleyWinners *int `json:"volley_winners"`
	VolleyErrors  *int `json:"volley_errors"`
	SmashWinners  *int `json:"smash_winners"`
	SmashErrors   *int `json:"smash_errors"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (SetPlayerTechStats) TableName() string {
	return TableTech
}

type SetPlayerTacticalStats struct {
	ID            uint `gorm:"primaryKey;autoIncrement" json:"id"`
	SetID         uint `gorm:"not null;uniqueIndex:idx_tactical_set_player" json:"set_id"`
	MatchPlayerID uint `gorm:"not null;uniqueIndex:idx_tactical_set_player" json:"match_player_id"`

	DeuceGamesPlayed     *int `json:"deuce_games_played"`
	DeuceGamesWon        *int `json:"deuce_games_won"`
	BreakPointsFaced     *int `json:"break_points_faced"`
	BreakPointsSaved     *int `json:"break_points_saved"`
	BreakPointsCreated   *int `json:"break_points_created"`
	BreakPointsConverted *int `json:"break_points_converted"`

	CrossCourt    *int `json:"cross_court"`
	DownTheLine   *int `json:"down_the_line"`
	DropShots     *int `json:"drop_shots"`
	Lobs          *int `json:"lobs"`
	ApproachShots *int `json:"approach_shots"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (SetPlayerTacticalStats) TableName() string {
	return TableTactical
}

// SetPlayerPhysicalMentalStats holds 1-10 ratings and the coach's notes.
type SetPlayerPhysicalMentalStats struct {
	ID            uint `gorm:"primaryKey;autoIncrement" json:"id"`
	SetID         uint `gorm:"not null;uniqueIndex:idx_physical_set_player" json:"set_id"`
	MatchPlayerID uint `gorm:"not null;uniqueIndex:idx_physical_set_player" json:"match_player_id"`

	Energy     *int `json:"energy" binding:"omitempty,min=1,max=10"`
	Focus      *int `json:"focus" binding:"omitempty,min=1,max=10"`
	Composure  *int `json:"composure" binding:"omitempty,min=1,max=10"`
	Confidence *int `json:"confidence" binding:"omitempty,min=1,max=10"`
	Movement   *int `json:"movement" binding:"omitempty,min=1,max=10"`
	Resilience *int `json:"resilience" binding:"omitempty,min=1,max=10"`

	CoachNotes *string `json:"coach_notes"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (SetPlayerPhysicalMentalStats) TableName() string {
	return TablePhysicalMental
}

// SetStatsBundle groups the three records of one (set, match player) pair.
type SetStatsBundle struct {
	SetID          uint                         `json:"set_id"`
	MatchPlayerID  uint                         `json:"match_player_id"`
	Tech           SetPlayerTechStats           `json:"tech"`
	Tactical       SetPlayerTacticalStats       `json:"tactical"`
	PhysicalMental SetPlayerPhysicalMentalStats `json:"physical_mental"`
}

// Key stamps the pair on all three records.
func (b *SetStatsBundle) Key(setID, matchPlayerID uint) {
	b.SetID, b.MatchPlayerID = setID, matchPlayerID
	b.Tech.SetID, b.Tech.MatchPlayerID = setID, matchPlayerID
	b.Tactical.SetID, b.Tactical.MatchPlayerID = setID, matchPlayerID
	b.PhysicalMental.SetID, b.PhysicalMental.MatchPlayerID = setID, matchPlayerID
}

// SaveResult reports each table of a three-table upsert separately. The
// writes are independent: a failed table does not undo the others.
type SaveResult struct {
	Tech           error
	Tactical       error
	PhysicalMental error
}

type TableOutcome struct {
	Table string `json:"table"`
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}

func (r SaveResult) Outcomes() []TableOutcome {
	entries := []struct {
		table string
		err   error
	}{
		{TableTech, r.Tech},
		{TableTactical, r.Tactical},
		{TablePhysicalMental, r.PhysicalMental},
	}
	outcomes := make([]TableOutcome, 0, len(entries))
	for _, e := range entries {
		outcome := TableOutcome{Table: e.table, OK: e.err == nil}
		if e.err != nil {
			outcome.Error = e.err.Error()
		}
		outcomes = append(outcomes, outcome)
	}
	return outcomes
}

func (r SaveResult) FailedTables() []string {
	var failed []string
	for _, o := range r.Outcomes() {
		if !o.OK {
			failed = append(failed, o.Table)
		}
	}
	return failed
}

func (r SaveResult) Failed() bool {
	return r.Tech != nil || r.Tactical != nil || r.PhysicalMental != nil
}

// Partial reports a save where some but not all tables were written.
func (r SaveResult) Partial() bool {
	n := len(r.FailedTables())
	return n > 0 && n < 3
}

// Err joins the per-table errors, or returns nil when every table was written.
func (r SaveResult) Err() error {
	var errs []error
	if r.Tech != nil {
		errs = append(errs, fmt.Errorf("%s: %w", TableTech, r.Tech))
	}
	if r.Tactical != nil {
		errs = append(errs, fmt.Errorf("%s: %w", TableTactical, r.Tactical))
	}
	if r.PhysicalMental != nil {
		errs = append(errs, fmt.Errorf("%s: %w", TablePhysicalMental, r.PhysicalMental))
	}
	return errors.Join(errs...)
}

// UpsertSetStatsRequest is the body of a detailed statistics save. Sections
// left out are written as their defaults.
type UpsertSetStatsRequest struct {
	Tech           *SetPlayerTechStats           `json:"tech,omitempty"`
	Tactical       *SetPlayerTacticalStats       `json:"tactical,omitempty"`
	PhysicalMental *SetPlayerPhysicalMentalStats `json:"physical_mental,omitempty" binding:"omitempty"`
	QuickKPIs      *QuickKPIs                    `json:"quick_kpis,omitempty"`
}

// SetStatsView is a pair's records with the quick KPIs lifted out of the
// coach notes.
type SetStatsView struct {
	Stats     SetStatsBundle `json:"stats"`
	QuickKPIs QuickKPIs      `json:"quick_kpis"`
}

// SaveSetStatsResponse is returned by every statistics save.
type SaveSetStatsResponse struct {
	Outcomes  []TableOutcome `json:"outcomes"`
	Stats     SetStatsBundle `json:"stats"`
	QuickKPIs QuickKPIs      `json:"quick_kpis"`
}
