package live

import (
	"context"
	"testing"
	"time"

	authModels "tennis-stats-api/packages/auth/models"
	"tennis-stats-api/packages/core/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_GetScopedToOwner(t *testing.T) {
	reg := newTestRegistry(newFakeStore())
	s := reg.Create(coach)

	got, err := reg.Get(s.ID(), coach)
	require.NoError(t, err)
	assert.Same(t, s, got)

	otherProfile := coach
	otherProfile.ProfileID = "profile-2"
	_, err = reg.Get(s.ID(), otherProfile)
	assert.ErrorIs(t, err, ErrSessionNotFound)

	otherTeam := coach
	otherTeam.TeamID = 2
	_, err = reg.Get(s.ID(), otherTeam)
	assert.ErrorIs(t, err, ErrSessionNotFound)

	_, err = reg.Get("missing", coach)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestRegistry_Remove(t *testing.T) {
	reg := newTestRegistry(newFakeStore())
	s := reg.Create(coach)
	require.Equal(t, 1, reg.Len())

	require.NoError(t, reg.Remove(s.ID(), coach))
	assert.Equal(t, 0, reg.Len())
	assert.ErrorIs(t, reg.Remove(s.ID(), coach), ErrSessionNotFound)
}

func TestRegistry_SweepDiscardsIdleSessions(t *testing.T) {
	store := newFakeStore()
	reg := newTestRegistry(store)
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	reg.now = func() time.Time { return now }

	stale := reg.Create(coach)
	_, err := stale.Select(context.Background(), 1, 10)
	require.NoError(t, err)
	_, err = stale.Increment(utils.EventAces)
	require.NoError(t, err)

	now = now.Add(90 * time.Minute)
	fresh := reg.Create(authModels.AuthContext{ProfileID: "profile-2", TeamID: 1})

	swept := reg.Sweep(time.Hour)

	assert.Equal(t, 1, swept)
	assert.Equal(t, 1, reg.Len())
	_, err = reg.Get(fresh.ID(), fresh.Auth())
	assert.NoError(t, err)
	assert.Equal(t, StateIdle, stale.View().State)
	reg.Flush()
	assert.Empty(t, store.savedBundles())
}

func TestRegistry_FlushWaitsForEvictedSessions(t *testing.T) {
	store := newFakeStore()
	store.saveGate = make(chan struct{})
	reg := newTestRegistry(store)
	ctx := context.Background()

	s := reg.Create(coach)
	_, err := s.Select(ctx, 1, 10)
	require.NoError(t, err)
	_, err = s.Increment(utils.EventAces)
	require.NoError(t, err)
	_, err = s.Select(ctx, 1, 11)
	require.NoError(t, err)
	require.NoError(t, reg.Remove(s.ID(), coach))
	require.Equal(t, 0, reg.Len())

	flushed := make(chan struct{})
	go func() {
		reg.Flush()
		close(flushed)
	}()

	select {
	case <-flushed:
		t.Fatal("flush returned before the pending save finished")
	case <-time.After(20 * time.Millisecond):
	}

	close(store.saveGate)
	select {
	case <-flushed:
	case <-time.After(time.Second):
		t.Fatal("flush did not return")
	}

	saves := store.savedBundles()
	require.Len(t, saves, 1)
	assert.Equal(t, uint(10), saves[0].MatchPlayerID)
	assert.Equal(t, 1, *saves[0].Tech.Aces)
}
