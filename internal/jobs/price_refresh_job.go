package jobs

import (
	"context"
	"time"

	"otcdesk/internal/core/ports"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// DefaultPriceRefreshSchedule keeps the cache warm ahead of its 30s TTL.
const DefaultPriceRefreshSchedule = "@every 20s"

// PriceRefresher reloads every quote from the oracle.
type PriceRefresher interface {
	Refresh(ctx context.Context) ([]ports.Price, error)
}

// PriceRefreshJob reloads the price cache on a schedule so that API reads
// rarely wait on the oracle.
type PriceRefreshJob struct {
	refresher PriceRefresher
	schedule  string
	timeout   time.Duration
	cron      *cron.Cron
	logger    *zap.Logger
}

func NewPriceRefreshJob(refresher PriceRefresher, schedule string, logger *zap.Logger) *PriceRefreshJob {
	if schedule == "" {
		schedule = DefaultPriceRefreshSchedule
	}
	return &PriceRefreshJob{
		refresher: refresher,
		schedule:  schedule,
		timeout:   10 * time.Second,
		cron:      cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		logger:    logger.With(zap.String("component", "price_refresh_job")),
	}
}

// Start registers the job and starts the scheduler. It fails on an invalid
// schedule expression.
func (j *PriceRefreshJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, j.run); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.Info("price refresh job started", zap.String("schedule", j.schedule))
	return nil
}

// Stop waits for a running refresh to finish.
func (j *PriceRefreshJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.Info("price refresh job stopped")
}

func (j *PriceRefreshJob) run() {
	ctx, cancel := context.WithTimeout(context.Background(), j.timeout)
	defer cancel()

	prices, err := j.refresher.Refresh(ctx)
	if err != nil {
		j.logger.Error("price refresh failed", zap.Error(err))
		return
	}

	fallbacks := 0
	for _, p := range prices {
		if p.Fallback {
			fallbacks++
		}
	}
	j.logger.Debug("prices refreshed", zap.Int("count", len(prices)), zap.Int("fallbacks", fallbacks))
}
