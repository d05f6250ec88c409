package services

import (
	"context"

	authModels "tennis-stats-api/packages/auth/models"
	"tennis-stats-api/packages/core/analytics"
)

type HeadToHeadService struct {
	players *PlayerService
	matches *MatchService
}

func NewHeadToHeadService(players *PlayerService, matches *MatchService) *HeadToHeadService {
	return &HeadToHeadService{
		players: players,
		matches: matches,
	}
}

// Compare intersects the match lists of both players and scores the common
// matches. Both players must be on the caller's roster.
func (s *HeadToHeadService) Compare(ctx context.Context, auth authModels.AuthContext, player1ID, player2ID uint) (*analytics.HeadToHead, error) {
	if player1ID == player2ID {
		return nil, ErrSamePlayer
	}
	for _, id := range []uint{player1ID, player2ID} {
		if _, err := s.players.GetPlayerByID(ctx, auth, id); err != nil {
			return nil, err
		}
	}

	ids1, err := s.matches.GetMatchIDsForPlayer(ctx, auth.TeamID, player1ID)
	if err != nil {
		return nil, err
	}
	ids2, err := s.matches.GetMatchIDsForPlayer(ctx, auth.TeamID, player2ID)
	if err != nil {
		return nil, err
	}

	common, err := s.matches.GetMatchesByIDs(ctx, auth.TeamID, analytics.IntersectIDs(ids1, ids2))
	if err != nil {
		return nil, err
	}

	h2h, err := analytics.CompareHeadToHead(player1ID, player2ID, common)
	if err != nil {
		return nil, err
	}
	return &h2h, nil
}
