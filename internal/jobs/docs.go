// Package jobs holds the scheduled background tasks of the OTC desk, built on
// github.com/robfig/cron/v3.
//
// PriceRefreshJob reloads the oracle price cache on PRICE_REFRESH_SCHEDULE
// (standard five field cron or a descriptor such as "@every 20s"). A refresh
// that is still running when the next tick fires is skipped. Oracle failures
// are absorbed by the cache, which serves fallback quotes; the job only logs.
//
//	jm := jobs.NewJobManager(priceCache, cfg.PriceRefreshSchedule, logger)
//	if err := jm.StartAll(); err != nil {
//		return err
//	}
//	defer jm.StopAll()
package jobs
