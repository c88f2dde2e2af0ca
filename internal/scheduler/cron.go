package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"github.com/voxatlas/weather-location-backend/internal/services"
	"github.com/voxatlas/weather-location-backend/pkg/metrics"
)

type CronScheduler struct {
	cron           *cron.Cron
	geo            *services.GeolocationService
	metrics        *metrics.Metrics
	logger         *logrus.Logger
	pruneInterval  time.Duration
	jobTimeout     time.Duration
	activeJobs     sync.WaitGroup
	shutdownCtx    context.Context
	shutdownCancel context.CancelFunc
}

func NewCronScheduler(
	geo *services.GeolocationService,
	pruneInterval time.Duration,
	m *metrics.Metrics,
	logger *logrus.Logger,
) *CronScheduler {
	ctx, cancel := context.WithCancel(context.Background())

	return &CronScheduler{
		cron:           cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DefaultLogger))),
		geo:            geo,
		metrics:        m,
		logger:         logger,
		pruneInterval:  pruneInterval,
		jobTimeout:     1 * time.Minute,
		shutdownCtx:    ctx,
		shutdownCancel: cancel,
	}
}

func (s *CronScheduler) Start() {
	// Prune expired geocode cache entries on a fixed interval. Expiry
	// is otherwise lazy, so without this job entries for places nobody
	// asks about again would sit in memory forever.
	spec := fmt.Sprintf("@every %s", s.pruneInterval)
	_, err := s.cron.AddFunc(spec, s.createJobWrapper("Cache Prune", func(ctx context.Context) error {
		searchPruned, reversePruned := s.geo.PruneCaches()
		s.logger.WithFields(logrus.Fields{
			"search_evicted":  searchPruned,
			"reverse_evicted": reversePruned,
		}).Info("Pruned expired geocode cache entries")
		return nil
	}))
	if err != nil {
		s.logger.WithError(err).Error("Failed to schedule cache prune")
	}

	s.cron.Start()
	s.logger.Info("Cron scheduler started successfully")
}

// createJobWrapper wraps a job with context, timeout, logging, metrics
// and panic recovery
func (s *CronScheduler) createJobWrapper(jobName string, jobFunc func(context.Context) error) func() {
	return func() {
		s.activeJobs.Add(1)
		defer s.activeJobs.Done()

		ctx, cancel := context.WithTimeout(s.shutdownCtx, s.jobTimeout)
		defer cancel()

		startTime := time.Now()

		s.logger.WithFields(logrus.Fields{
			"job":       jobName,
			"timestamp": startTime.UTC(),
		}).Info("Starting scheduled job")

		defer func() {
			if r := recover(); r != nil {
				s.metrics.RecordSchedulerJob(jobName, false, time.Since(startTime))
				s.logger.WithFields(logrus.Fields{
					"job":   jobName,
					"panic": r,
				}).Error("Job panicked")
			}
		}()

		err := jobFunc(ctx)

		duration := time.Since(startTime)
		s.metrics.RecordSchedulerJob(jobName, err == nil, duration)

		if err != nil {
			s.logger.WithFields(logrus.Fields{
				"job":      jobName,
				"duration": duration.String(),
				"error":    err.Error(),
			}).Error("Job failed")
		} else {
			s.logger.WithFields(logrus.Fields{
				"job":      jobName,
				"duration": duration.String(),
			}).Info("Job completed successfully")
		}

		if ctx.Err() == context.DeadlineExceeded {
			s.logger.WithFields(logrus.Fields{
				"job":     jobName,
				"timeout": s.jobTimeout.String(),
			}).Warn("Job timed out")
		}
	}
}

func (s *CronScheduler) Stop() {
	s.logger.Info("Stopping cron scheduler...")

	// Stop accepting new jobs
	ctx := s.cron.Stop()

	// Cancel all running jobs
	s.shutdownCancel()

	// Wait for running jobs to complete (with timeout)
	done := make(chan struct{})
	go func() {
		s.activeJobs.Wait()
		close(done)
	}()

	select {
	case <-done:
		s.logger.Info("All jobs completed, cron scheduler stopped")
	case <-ctx.Done():
		s.logger.Info("Cron scheduler stopped")
	case <-time.After(1 * time.Minute):
		s.logger.Warn("Timeout waiting for jobs to complete, forcing shutdown")
	}
}

// GetSchedulerStatus returns the current status of the scheduler
func (s *CronScheduler) GetSchedulerStatus() map[string]interface{} {
	entries := s.cron.Entries()

	jobs := make([]map[string]interface{}, 0, len(entries))
	for _, entry := range entries {
		jobs = append(jobs, map[string]interface{}{
			"next_run": entry.Next,
			"prev_run": entry.Prev,
		})
	}

	return map[string]interface{}{
		"running":   len(entries) > 0,
		"job_count": len(entries),
		"jobs":      jobs,
	}
}
