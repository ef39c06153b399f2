package cache

import (
	"context"

	"github.com/robfig/cron/v3"

	"github.com/okian/wbdash/pkg/logger"
	"github.com/okian/wbdash/pkg/metrics"
)

// Janitor purges expired cache entries on a cron schedule.
type Janitor struct {
	store Store
	cron  *cron.Cron
	log   logger.Logger
}

// NewJanitor schedules purges of store. schedule uses the robfig/cron
// syntax, including descriptors such as "@every 10m".
func NewJanitor(store Store, schedule string, log logger.Logger) (*Janitor, error) {
	j := &Janitor{
		store: store,
		cron:  cron.New(),
		log:   log,
	}
	if _, err := j.cron.AddFunc(schedule, func() { j.Run(context.Background()) }); err != nil {
		return nil, err
	}
	return j, nil
}

// Start begins running scheduled purges.
func (j *Janitor) Start() {
	j.cron.Start()
}

// Stop halts the scheduler and waits for a running purge to finish.
func (j *Janitor) Stop() {
	<-j.cron.Stop().Done()
}

// Run purges once.
func (j *Janitor) Run(ctx context.Context) int {
	n, err := j.store.Purge(ctx)
	if err != nil {
		j.log.Error(ctx, "cache purge failed", logger.Error(err))
		metrics.RecordErrorByComponent("cache", "purge")
		return 0
	}
	metrics.RecordCachePurged(n)
	metrics.UpdateCacheEntries(j.store.Len())
	if n > 0 {
		j.log.Info(ctx, "purged expired cache entries", logger.Int("removed", n))
	}
	return n
}
