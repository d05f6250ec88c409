package analytics

import (
	"tennis-stats-api/packages/core/models"
)

// BuildDashboard filters the matches once and runs every aggregation over the result.
func BuildDashboard(matches []models.Match, f models.MatchFilter, minMatches int) Dashboard {
	filtered := FilterMatches(matches, f)
	return Dashboard{
		Overall:    ComputeOverallRecord(filtered),
		BySurface:  ComputeBySurface(filtered),
		ByFormat:   ComputeByFormat(filtered),
		Trends:     ComputeMonthlyTrends(filtered),
		Technical:  ComputeTechnicalAverages(filtered),
		TopPlayers: ComputeTopPlayers(filtered, minMatches),
	}
}
