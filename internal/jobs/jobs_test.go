package jobs

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"otcdesk/internal/core/domain/model/kernel"
	"otcdesk/internal/core/ports"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type countingRefresher struct {
	calls atomic.Int32
	err   error
}

func (r *countingRefresher) Refresh(context.Context) ([]ports.Price, error) {
	r.calls.Add(1)
	if r.err != nil {
		return nil, r.err
	}
	return []ports.Price{
		{Asset: kernel.AssetWBTC, USD: decimal.NewFromInt(97500), Fallback: true},
		{Asset: kernel.AssetUSDC, USD: decimal.NewFromInt(1)},
	}, nil
}

type stubJob struct {
	startErr error
	started  bool
	stopped  bool
}

func (j *stubJob) Start() error {
	j.started = j.startErr == nil
	return j.startErr
}

func (j *stubJob) Stop() { j.stopped = true }

func TestPriceRefreshJob_Run(t *testing.T) {
	t.Run("refreshes", func(t *testing.T) {
		core, logs := observer.New(zap.DebugLevel)
		r := &countingRefresher{}

		NewPriceRefreshJob(r, "", zap.New(core)).run()

		assert.Equal(t, int32(1), r.calls.Load())
		entries := logs.FilterMessage("prices refreshed").All()
		require.Len(t, entries, 1)
		assert.Equal(t, int64(1), entries[0].ContextMap()["fallbacks"])
	})

	t.Run("logs failures", func(t *testing.T) {
		core, logs := observer.New(zap.DebugLevel)
		r := &countingRefresher{err: errors.New("rpc down")}

		NewPriceRefreshJob(r, "", zap.New(core)).run()

		assert.Equal(t, 1, logs.FilterMessage("price refresh failed").Len())
	})
}

func TestPriceRefreshJob_Schedule(t *testing.T) {
	t.Run("default", func(t *testing.T) {
		j := NewPriceRefreshJob(&countingRefresher{}, "", zap.NewNop())
		assert.Equal(t, DefaultPriceRefreshSchedule, j.schedule)
	})

	t.Run("invalid expression", func(t *testing.T) {
		j := NewPriceRefreshJob(&countingRefresher{}, "every now and then", zap.NewNop())
		require.Error(t, j.Start())
	})

	t.Run("fires on schedule", func(t *testing.T) {
		r := &countingRefresher{}
		j := NewPriceRefreshJob(r, "@every 1s", zap.NewNop())
		require.NoError(t, j.Start())
		defer j.Stop()

		assert.Eventually(t, func() bool { return r.calls.Load() > 0 }, 3*time.Second, 50*time.Millisecond)
	})
}

func TestJobManager(t *testing.T) {
	t.Run("stops started jobs when one fails", func(t *testing.T) {
		first := &stubJob{}
		failing := &stubJob{startErr: errors.New("boom")}
		jm := &JobManager{jobs: []Job{first, failing}, logger: zap.NewNop()}

		err := jm.StartAll()

		require.Error(t, err)
		assert.True(t, first.stopped)
		assert.False(t, failing.stopped)
	})

	t.Run("start and stop all", func(t *testing.T) {
		extra := &stubJob{}
		jm := NewJobManager(&countingRefresher{}, "@every 1h", zap.NewNop(), extra)

		require.NoError(t, jm.StartAll())
		jm.StopAll()

		assert.True(t, extra.started)
		assert.True(t, extra.stopped)
	})
}
