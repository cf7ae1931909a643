package session

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/BerylCAtieno/drawing-quote-analyzer/internal/utils"
)

// Janitor expires idle sessions on a cron schedule.
type Janitor struct {
	store  *Store
	ttl    time.Duration
	cron   *cron.Cron
	logger *utils.Logger

	// OnExpire receives the sessions removed by each sweep. Set it before Start.
	OnExpire func(expired []*Session)
}

// NewJanitor validates schedule (standard five-field cron syntax or a descriptor such as
// "@every 5m") and registers the sweep. Call Start to begin.
func NewJanitor(store *Store, ttl time.Duration, schedule string, logger *utils.Logger) (*Janitor, error) {
	if ttl <= 0 {
		return nil, fmt.Errorf("session ttl must be positive, got %s", ttl)
	}
	sched, err := cron.ParseStandard(schedule)
	if err != nil {
		return nil, fmt.Errorf("invalid sweep schedule %q: %w", schedule, err)
	}

	j := &Janitor{
		store:  store,
		ttl:    ttl,
		cron:   cron.New(),
		logger: logger,
	}
	j.cron.Schedule(sched, cron.FuncJob(j.Sweep))
	return j, nil
}

// Sweep runs one expiry pass.
func (j *Janitor) Sweep() {
	removed := j.store.Sweep(j.ttl)
	if len(removed) == 0 {
		return
	}
	j.logger.Info("Expired idle sessions", "count", len(removed), "remaining", j.store.Len())
	if j.OnExpire != nil {
		j.OnExpire(removed)
	}
}

func (j *Janitor) Start() {
	j.cron.Start()
	j.logger.Info("Session janitor started", "ttl", j.ttl.String())
}

// Stop halts the schedule and returns a context that is done once a running sweep finishes.
func (j *Janitor) Stop() context.Context {
	return j.cron.Stop()
}
