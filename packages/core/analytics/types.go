package analytics

// Record is a win/loss tally. WinRate is a percentage over Total, so results
// other than win or loss lower it without counting as losses.
type Record struct {
	Wins    int     `json:"wins"`
	Losses  int     `json:"losses"`
	Total   int     `json:"total"`
	WinRate float64 `json:"win_rate"`
}

type FormatBreakdown struct {
	Singles Record `json:"singles"`
	Doubles Record `json:"doubles"`
}

type MonthlyTrend struct {
	Month                  string  `json:"month"`
	Wins                   int     `json:"wins"`
	Losses                 int     `json:"losses"`
	Matches                int     `json:"matches"`
	WinRate                float64 `json:"win_rate"`
	FirstServePercentage   float64 `json:"first_serve_percentage"`
	UnforcedErrorsPerMatch float64 `json:"unforced_errors_per_match"`
}

type TechnicalAverages struct {
	FirstServePercentage   float64 `json:"first_serve_percentage"`
	WinnersPerMatch        float64 `json:"winners_per_match"`
	UnforcedErrorsPerMatch float64 `json:"unforced_errors_per_match"`
	NetSuccessPercentage   float64 `json:"net_success_percentage"`
}

type PlayerRanking struct {
	PlayerID uint    `json:"player_id"`
	Name     string  `json:"name"`
	Wins     int     `json:"wins"`
	Losses   int     `json:"losses"`
	Matches  int     `json:"matches"`
	WinRate  float64 `json:"win_rate"`
}

// Dashboard is every summary the analytics view renders, computed over one
// filtered match list.
type Dashboard struct {
	Overall    Record            `json:"overall"`
	BySurface  map[string]Record `json:"by_surface"`
	ByFormat   FormatBreakdown   `json:"by_format"`
	Trends     []MonthlyTrend    `json:"trends"`
	Technical  TechnicalAverages `json:"technical"`
	TopPlayers []PlayerRanking   `json:"top_players"`
}
