package services

import (
	"context"

	authModels "tennis-stats-api/packages/auth/models"
	"tennis-stats-api/packages/core/analytics"
	"tennis-stats-api/packages/core/models"
)

type AnalyticsService struct {
	matches    *MatchService
	minMatches int
}

func NewAnalyticsService(matches *MatchService, minMatches int) *AnalyticsService {
	if minMatches <= 0 {
		minMatches = analytics.DefaultMinMatches
	}
	return &AnalyticsService{
		matches:    matches,
		minMatches: minMatches,
	}
}

func (s *AnalyticsService) GetDashboard(ctx context.Context, auth authModels.AuthContext, filter models.MatchFilter) (*analytics.Dashboard, error) {
	matches, err := s.matches.GetTeamDataset(ctx, auth.TeamID)
	if err != nil {
		return nil, err
	}
	dashboard := analytics.BuildDashboard(matches, filter, s.minMatches)
	return &dashboard, nil
}

// GetTopPlayers ranks the roster. A nil minMatches uses the configured
// minimum; zero applies none.
func (s *AnalyticsService) GetTopPlayers(ctx context.Context, auth authModels.AuthContext, filter models.MatchFilter, minMatches *int) ([]analytics.PlayerRanking, error) {
	matches, err := s.matches.GetTeamDataset(ctx, auth.TeamID)
	if err != nil {
		return nil, err
	}
	minimum := s.minMatches
	if minMatches != nil {
		minimum = *minMatches
	}
	return analytics.ComputeTopPlayers(analytics.FilterMatches(matches, filter), minimum), nil
}
