package services

import (
	"context"
	"testing"

	"tennis-stats-api/packages/core/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetLifecycle(t *testing.T) {
	env := setupServices(t)
	ctx := context.Background()
	ana := env.createPlayer(t, team1Coach, "Ana", "Ruiz")
	match, err := env.matches.CreateMatch(ctx, team1Coach, models.CreateMatchRequest{
		Date:   "2024-05-04",
		Format: models.FormatSingles,
		MatchPlayers: []models.MatchPlayerInput{
			{PlayerID: uintPtr(ana.ID), Side: models.SideA, Role: models.RolePlayer},
			{DisplayName: "Opp", Side: models.SideB, Role: models.RoleOpponent1},
		},
	})
	require.NoError(t, err)

	first, err := env.sets.CreateSet(ctx, team1Coach, match.ID)
	require.NoError(t, err)
	second, err := env.sets.CreateSet(ctx, team1Coach, match.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, first.SetNumber)
	assert.Equal(t, 2, second.SetNumber)
	assert.Equal(t, models.SetPlanned, first.Status)

	started, err := env.sets.StartSet(ctx, team1Coach, match.ID, first.ID)
	require.NoError(t, err)
	assert.Equal(t, models.SetInProgress, started.Status)

	reloaded, err := env.matches.GetMatchByID(ctx, team1Coach, match.ID)
	require.NoError(t, err)
	assert.Equal(t, models.MatchInProgress, reloaded.Status)

	_, err = env.sets.StartSet(ctx, team1Coach, match.ID, first.ID)
	assert.ErrorIs(t, err, ErrSetAlreadyStarted)

	scored, err := env.sets.UpdateSetScore(ctx, team1Coach, match.ID, first.ID, models.UpdateSetScoreRequest{
		SideAGames: intPtr(7), SideBGames: intPtr(6), TiebreakA: intPtr(7), TiebreakB: intPtr(5),
	})
	require.NoError(t, err)
	assert.Equal(t, 7, scored.SideAGames)
	assert.Equal(t, 5, *scored.TiebreakB)

	finished, err := env.sets.CompleteSet(ctx, team1Coach, match.ID, first.ID)
	require.NoError(t, err)
	assert.Equal(t, models.SetFinished, finished.Status)
	_, err = env.sets.CompleteSet(ctx, team1Coach, match.ID, first.ID)
	assert.ErrorIs(t, err, ErrSetAlreadyCompleted)

	// completing a planned set stamps both times
	skipped, err := env.sets.CompleteSet(ctx, team1Coach, match.ID, second.ID)
	require.NoError(t, err)
	assert.NotNil(t, skipped.StartedAt)

	sets, err := env.sets.GetSets(ctx, team1Coach, match.ID)
	require.NoError(t, err)
	assert.Len(t, sets, 2)
}

func TestSetService_TeamScoped(t *testing.T) {
	env := setupServices(t)
	ctx := context.Background()
	ana := env.createPlayer(t, team1Coach, "Ana", "Ruiz")
	match := env.createSingles(t, team1Coach, ana.ID, "2024-01-10", "hard", models.ResultWin)
	set, err := env.sets.CreateSet(ctx, team1Coach, match.ID)
	require.NoError(t, err)

	_, err = env.sets.CreateSet(ctx, team2Coach, match.ID)
	assert.ErrorIs(t, err, ErrMatchNotFound)
	_, err = env.sets.StartSet(ctx, team2Coach, match.ID, set.ID)
	assert.ErrorIs(t, err, ErrSetNotFound)
	_, err = env.sets.StartSet(ctx, team1Coach, match.ID+1, set.ID)
	assert.ErrorIs(t, err, ErrSetNotFound)
}
