package cron

import (
	"sync"
	"testing"
	"time"

	"tennis-stats-api/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSweeper struct {
	mu    sync.Mutex
	calls []time.Duration
}

func (f *fakeSweeper) Sweep(ttl time.Duration) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, ttl)
	return len(f.calls)
}

func (f *fakeSweeper) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func TestScheduler_RunNowUsesTTL(t *testing.T) {
	sweeper := &fakeSweeper{}
	s := NewScheduler(sweeper, "0 */5 * * * *", 30*time.Minute, logger.NewDiscard().WithField("component", "cron"))

	s.RunNow()

	require.Equal(t, 1, sweeper.count())
	assert.Equal(t, 30*time.Minute, sweeper.calls[0])
}

func TestScheduler_InvalidSchedule(t *testing.T) {
	s := NewScheduler(&fakeSweeper{}, "every five minutes", time.Minute, logger.NewDiscard().WithField("component", "cron"))

	assert.Error(t, s.Start())
}

func TestScheduler_RunsOnSchedule(t *testing.T) {
	sweeper := &fakeSweeper{}
	s := NewScheduler(sweeper, "* * * * * *", time.Minute, logger.NewDiscard().WithField("component", "cron"))

	require.NoError(t, s.Start())
	defer s.Stop()

	assert.Eventually(t, func() bool { return sweeper.count() > 0 }, 3*time.Second, 50*time.Millisecond)
}
