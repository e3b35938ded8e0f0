package scheduler

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type mockRecomputer struct {
	mock.Mock
	calls atomic.Int32
}

func (m *mockRecomputer) RecomputePending(ctx context.Context) (int, error) {
	m.calls.Add(1)
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func newTestScheduler(r Recomputer, cfg Config) *ProductionStatusScheduler {
	return NewProductionStatusScheduler(r, cfg, zap.NewNop())
}

func TestRunOnceDrainsUntilEmpty(t *testing.T) {
	r := &mockRecomputer{}
	r.On("RecomputePending", mock.Anything).Return(15, nil).Twice()
	r.On("RecomputePending", mock.Anything).Return(4, nil).Once()
	r.On("RecomputePending", mock.Anything).Return(0, nil).Once()

	s := newTestScheduler(r, Config{Enabled: true})
	assert.Equal(t, 34, s.RunOnce(context.Background()))
	r.AssertExpectations(t)
}

func TestRunOnceStopsAtBatchLimit(t *testing.T) {
	r := &mockRecomputer{}
	r.On("RecomputePending", mock.Anything).Return(15, nil)

	s := newTestScheduler(r, Config{Enabled: true, MaxBatchesPerRun: 3})
	assert.Equal(t, 45, s.RunOnce(context.Background()))
	assert.Equal(t, int32(3), r.calls.Load())
}

func TestRunOnceStopsOnError(t *testing.T) {
	r := &mockRecomputer{}
	r.On("RecomputePending", mock.Anything).Return(2, nil).Once()
	r.On("RecomputePending", mock.Anything).Return(0, errors.New("connection refused")).Once()

	s := newTestScheduler(r, Config{Enabled: true})
	assert.Equal(t, 2, s.RunOnce(context.Background()))
	r.AssertExpectations(t)
}

func TestRunOnceAppliesJobTimeout(t *testing.T) {
	r := &mockRecomputer{}
	r.On("RecomputePending", mock.MatchedBy(func(ctx context.Context) bool {
		_, ok := ctx.Deadline()
		return ok
	})).Return(0, nil).Once()

	s := newTestScheduler(r, Config{Enabled: true, JobTimeout: time.Second})
	assert.Zero(t, s.RunOnce(context.Background()))
	r.AssertExpectations(t)
}

func TestSchedulerDisabled(t *testing.T) {
	s := newTestScheduler(&mockRecomputer{}, Config{Enabled: false})
	require.NoError(t, s.Start(context.Background()))
	assert.False(t, s.IsRunning())
	assert.ErrorIs(t, s.Trigger(), ErrSchedulerNotRunning)
	assert.NoError(t, s.Stop(context.Background()))
}

func TestSchedulerTriggerAndStop(t *testing.T) {
	r := &mockRecomputer{}
	r.On("RecomputePending", mock.Anything).Return(0, nil)

	s := newTestScheduler(r, Config{Enabled: true, PollInterval: time.Hour})
	require.NoError(t, s.Start(context.Background()))
	require.NoError(t, s.Start(context.Background()))
	assert.True(t, s.IsRunning())

	require.NoError(t, s.Trigger())
	assert.Eventually(t, func() bool { return r.calls.Load() >= 1 }, 2*time.Second, 10*time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, s.Stop(ctx))
	assert.False(t, s.IsRunning())
	assert.ErrorIs(t, s.Trigger(), ErrSchedulerNotRunning)
}

func TestSchedulerPolls(t *testing.T) {
	r := &mockRecomputer{}
	r.On("RecomputePending", mock.Anything).Return(0, nil)

	s := newTestScheduler(r, Config{Enabled: true, PollInterval: 20 * time.Millisecond})
	require.NoError(t, s.Start(context.Background()))
	t.Cleanup(func() { _ = s.Stop(context.Background()) })

	assert.Eventually(t, func() bool { return r.calls.Load() >= 2 }, 2*time.Second, 10*time.Millisecond)
}
