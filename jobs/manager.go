package jobs

import (
	"context"
	"sync"
	"time"

	"github.com/hashicorp/go-hclog"
)

// DefaultRefreshInterval is how often the trending snapshot is refreshed
const DefaultRefreshInterval = 30 * time.Minute

// JobManager handles background job execution
type JobManager struct {
	trendingJob *TrendingJob
	interval    time.Duration
	logger      hclog.Logger
	ctx         context.Context
	cancel      context.CancelFunc
	wg          sync.WaitGroup
	running     bool
	stopped     bool
	mu          sync.RWMutex
}

// NewJobManager creates a new job manager. A non-positive interval uses
// DefaultRefreshInterval.
func NewJobManager(trendingJob *TrendingJob, interval time.Duration, logger hclog.Logger) *JobManager {
	if interval <= 0 {
		interval = DefaultRefreshInterval
	}
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &JobManager{
		trendingJob: trendingJob,
		interval:    interval,
		logger:      logger,
	}
}

// Start begins the job manager background processing
func (jm *JobManager) Start() {
	jm.mu.Lock()
	defer jm.mu.Unlock()

	if jm.running {
		jm.logger.Warn("job manager is already running")
		return
	}

	jm.ctx, jm.cancel = context.WithCancel(context.Background())
	jm.running = true
	jm.stopped = false
	jm.logger.Info("starting job manager", "interval", jm.interval)

	jm.wg.Add(1)
	go jm.runPeriodicRefresh(jm.ctx)
}

// Stop stops the job manager and waits for running jobs
func (jm *JobManager) Stop() {
	jm.mu.Lock()
	if !jm.running {
		jm.mu.Unlock()
		return
	}
	jm.logger.Info("stopping job manager")
	jm.cancel()
	jm.running = false
	jm.stopped = true
	jm.mu.Unlock()

	jm.wg.Wait()
	jm.logger.Info("job manager stopped")
}

// IsRunning returns whether the job manager is currently running
func (jm *JobManager) IsRunning() bool {
	jm.mu.RLock()
	defer jm.mu.RUnlock()
	return jm.running
}

// TriggerRefresh immediately refreshes the trending snapshot in the
// background. It works before Start; once the manager is stopped it is a
// no-op until the next Start.
func (jm *JobManager) TriggerRefresh() {
	if jm.trendingJob == nil {
		jm.logger.Warn("cannot trigger refresh: no trending job configured")
		return
	}

	jm.mu.Lock()
	defer jm.mu.Unlock()
	if jm.stopped {
		jm.logger.Warn("cannot trigger refresh: job manager is stopped")
		return
	}
	ctx := context.Background()
	if jm.running {
		ctx = jm.ctx
	}

	jm.wg.Add(1)
	go func() {
		defer jm.wg.Done()
		if err := jm.trendingJob.Refresh(ctx); err != nil {
			jm.logger.Error("trending refresh failed", "error", err)
		}
	}()
}

// Wait blocks until triggered and periodic jobs have returned
func (jm *JobManager) Wait() {
	jm.wg.Wait()
}

// runPeriodicRefresh runs the trending job immediately and then on a ticker
func (jm *JobManager) runPeriodicRefresh(ctx context.Context) {
	defer jm.wg.Done()

	if jm.trendingJob == nil {
		jm.logger.Info("no trending job configured, skipping periodic refresh")
		<-ctx.Done()
		return
	}

	if err := jm.trendingJob.Refresh(ctx); err != nil {
		jm.logger.Error("initial trending refresh failed", "error", err)
	}

	ticker := time.NewTicker(jm.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			jm.logger.Debug("periodic trending refresh stopped")
			return
		case <-ticker.C:
			if err := jm.trendingJob.Refresh(ctx); err != nil {
				jm.logger.Error("periodic trending refresh failed", "error", err)
			}
		}
	}
}
