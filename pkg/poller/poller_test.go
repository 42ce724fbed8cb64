package poller

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/pepwatch/pepwatch/pkg/models"
	"github.com/pepwatch/pepwatch/pkg/peplink"
)

func okSnapshot() *models.Snapshot {
	return &models.Snapshot{
		Timestamp: time.Now(),
		Status: map[models.Section]models.SectionStatus{
			models.SectionWAN: {OK: true, LastSuccess: time.Now()},
		},
	}
}

func TestPoller_Refresh_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockRefresher := NewMockRefresher(ctrl)

	p := newPoller(Config{}, mockRefresher)

	snap := okSnapshot()
	mockRefresher.EXPECT().Refresh(gomock.Any(), gomock.Nil(), true).Return(snap, nil)

	require.NoError(t, p.Refresh(context.Background()))

	assert.Same(t, snap, p.Snapshot())
	assert.True(t, p.Available())
	assert.Equal(t, StateIdle, p.State())
	assert.Zero(t, p.FailureCount())
}

func TestPoller_Refresh_PassesPreviousSnapshot(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockRefresher := NewMockRefresher(ctrl)

	p := newPoller(Config{}, mockRefresher)

	first := okSnapshot()
	second := okSnapshot()
	mockRefresher.EXPECT().Refresh(gomock.Any(), gomock.Nil(), true).Return(first, nil)
	mockRefresher.EXPECT().Refresh(gomock.Any(), first, true).Return(second, nil)

	require.NoError(t, p.Refresh(context.Background()))
	require.NoError(t, p.Refresh(context.Background()))

	assert.Same(t, second, p.Snapshot())
}

func TestPoller_FailureThreshold(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockRefresher := NewMockRefresher(ctrl)

	p := newPoller(Config{FailureThreshold: 3}, mockRefresher)
	ctx := context.Background()

	snap := okSnapshot()
	mockRefresher.EXPECT().Refresh(gomock.Any(), gomock.Any(), true).Return(snap, nil)
	require.NoError(t, p.Refresh(ctx))
	require.True(t, p.Available())

	cycleErr := &CycleError{Cause: peplink.ErrConnectivity, Failures: map[models.Section]error{}}
	mockRefresher.EXPECT().Refresh(gomock.Any(), gomock.Any(), true).Return(nil, cycleErr).Times(3)

	// Two failures: still available on the last good snapshot.
	require.Error(t, p.Refresh(ctx))
	require.Error(t, p.Refresh(ctx))
	assert.True(t, p.Available())
	assert.Equal(t, 2, p.FailureCount())
	assert.Equal(t, StateBackoff, p.State())
	assert.Same(t, snap, p.Snapshot(), "last good snapshot survives failed cycles")

	// Third consecutive failure crosses the threshold.
	require.Error(t, p.Refresh(ctx))
	assert.False(t, p.Available())
	assert.Equal(t, 3, p.FailureCount())
}

func TestPoller_RecoveryResetsFailures(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockRefresher := NewMockRefresher(ctrl)

	p := newPoller(Config{FailureThreshold: 2}, mockRefresher)
	ctx := context.Background()

	cycleErr := &CycleError{Cause: peplink.ErrConnectivity, Failures: map[models.Section]error{}}
	mockRefresher.EXPECT().Refresh(gomock.Any(), gomock.Any(), true).Return(nil, cycleErr).Times(2)
	require.Error(t, p.Refresh(ctx))
	require.Error(t, p.Refresh(ctx))
	require.False(t, p.Available())

	mockRefresher.EXPECT().Refresh(gomock.Any(), gomock.Any(), true).Return(okSnapshot(), nil)
	require.NoError(t, p.Refresh(ctx))

	assert.True(t, p.Available())
	assert.Zero(t, p.FailureCount())
	assert.Equal(t, StateIdle, p.State())
}

func TestPoller_Refresh_InFlight(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockRefresher := NewMockRefresher(ctrl)

	p := newPoller(Config{}, mockRefresher)

	release := make(chan struct{})
	started := make(chan struct{})
	mockRefresher.EXPECT().Refresh(gomock.Any(), gomock.Any(), true).DoAndReturn(
		func(context.Context, *models.Snapshot, bool) (*models.Snapshot, error) {
			close(started)
			<-release
			return okSnapshot(), nil
		})

	done := make(chan error, 1)
	go func() { done <- p.Refresh(context.Background()) }()

	<-started
	assert.ErrorIs(t, p.Refresh(context.Background()), ErrRefreshInFlight)
	assert.Equal(t, StateRefreshing, p.State())

	close(release)
	require.NoError(t, <-done)
}

func TestPoller_Subscribe(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockRefresher := NewMockRefresher(ctrl)

	p := newPoller(Config{}, mockRefresher)

	ch, cancel := p.Subscribe()
	defer cancel()

	snap := okSnapshot()
	mockRefresher.EXPECT().Refresh(gomock.Any(), gomock.Any(), true).Return(snap, nil)
	require.NoError(t, p.Refresh(context.Background()))

	select {
	case got := <-ch:
		assert.Same(t, snap, got)
	case <-time.After(time.Second):
		t.Fatal("no notification delivered")
	}
}

func TestPoller_Subscribe_SlowConsumerGetsLatest(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockRefresher := NewMockRefresher(ctrl)

	p := newPoller(Config{}, mockRefresher)

	ch, cancel := p.Subscribe()
	defer cancel()

	first := okSnapshot()
	second := okSnapshot()
	mockRefresher.EXPECT().Refresh(gomock.Any(), gomock.Any(), true).Return(first, nil)
	mockRefresher.EXPECT().Refresh(gomock.Any(), gomock.Any(), true).Return(second, nil)

	// The consumer never reads between cycles; the stale value is replaced.
	require.NoError(t, p.Refresh(context.Background()))
	require.NoError(t, p.Refresh(context.Background()))

	assert.Same(t, second, <-ch)
}

func TestPoller_Subscribe_CancelIdempotent(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockRefresher := NewMockRefresher(ctrl)

	p := newPoller(Config{}, mockRefresher)

	ch, cancel := p.Subscribe()
	cancel()
	cancel()

	_, open := <-ch
	assert.False(t, open)

	// A cycle after unsubscribe must not panic on the closed channel.
	mockRefresher.EXPECT().Refresh(gomock.Any(), gomock.Any(), true).Return(okSnapshot(), nil)
	require.NoError(t, p.Refresh(context.Background()))
}

func TestPoller_Start_TickCadence(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockRefresher := NewMockRefresher(ctrl)

	p := newPoller(Config{
		FastInterval: 10 * time.Millisecond,
		SlowInterval: 30 * time.Millisecond,
	}, mockRefresher)

	var full, fast atomic.Int32

	mockRefresher.EXPECT().Refresh(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, _ *models.Snapshot, includeSlow bool) (*models.Snapshot, error) {
			if includeSlow {
				full.Add(1)
			} else {
				fast.Add(1)
			}

			return okSnapshot(), nil
		}).AnyTimes()

	ctx, cancel := context.WithTimeout(context.Background(), 120*time.Millisecond)
	defer cancel()

	err := p.Start(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	// Let any cycle that was in flight when the loop stopped drain.
	for i := 0; i < 100 && p.State() == StateRefreshing; i++ {
		time.Sleep(time.Millisecond)
	}

	// The immediate first cycle is always a full refresh; the tick loop
	// then interleaves fast-only cycles between full ones.
	assert.GreaterOrEqual(t, full.Load(), int32(1))
	assert.Greater(t, fast.Load(), full.Load())
}

func TestPoller_Start_InvalidInterval(t *testing.T) {
	p := &Poller{cfg: Config{FastInterval: -1}}

	assert.ErrorIs(t, p.Start(context.Background()), ErrInvalidInterval)
}

func TestCycleError_Unwrap(t *testing.T) {
	err := &CycleError{
		Cause: peplink.ErrAuthFailed,
		Failures: map[models.Section]error{
			models.SectionWAN: peplink.ErrAuthFailed,
		},
	}

	assert.ErrorIs(t, err, ErrCycleFailed)
	assert.ErrorIs(t, err, peplink.ErrAuthFailed)
	assert.Contains(t, err.Error(), "all 1 sections failed")
}
