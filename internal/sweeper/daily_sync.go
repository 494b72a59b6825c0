package sweeper

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/feral-file/ff-crm-sync/internal/adapter"
	"github.com/feral-file/ff-crm-sync/internal/domain"
	"github.com/feral-file/ff-crm-sync/internal/logger"
	"github.com/feral-file/ff-crm-sync/internal/workflows"
)

// DailySyncConfig holds the UTC times of day the cycles are started at, formatted HH:MM
type DailySyncConfig struct {
	InboundAt     string
	OutboundAt    string
	CheckInterval time.Duration
	// Regions is passed to every scheduled outbound cycle; nil means the worker's list
	Regions []domain.Region
}

// dailyJob is one cycle started once per day
type dailyJob struct {
	direction domain.Direction
	at        time.Duration
	// lastDay is the last UTC day the job was started for
	lastDay string
}

// dailySyncSweeper starts the inbound and outbound cycles once per day
type dailySyncSweeper struct {
	config    DailySyncConfig
	launcher  workflows.Launcher
	clock     adapter.Clock
	jobs      []*dailyJob
	running   atomic.Bool
	stopChan  chan struct{}
	stoppedCh chan struct{}
}

// NewDailySyncSweeper creates the daily sync scheduler
func NewDailySyncSweeper(config DailySyncConfig, launcher workflows.Launcher, clock adapter.Clock) (Sweeper, error) {
	inboundAt, err := parseTimeOfDay(config.InboundAt)
	if err != nil {
		return nil, fmt.Errorf("invalid inbound time: %w", err)
	}
	outboundAt, err := parseTimeOfDay(config.OutboundAt)
	if err != nil {
		return nil, fmt.Errorf("invalid outbound time: %w", err)
	}
	if config.CheckInterval <= 0 {
		config.CheckInterval = time.Minute
	}

	return &dailySyncSweeper{
		config:   config,
		launcher: launcher,
		clock:    clock,
		jobs: []*dailyJob{
			{direction: domain.DirectionInbound, at: inboundAt},
			{direction: domain.DirectionOutbound, at: outboundAt},
		},
		stopChan:  make(chan struct{}),
		stoppedCh: make(chan struct{}),
	}, nil
}

func parseTimeOfDay(s string) (time.Duration, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, err
	}
	return time.Duration(t.Hour())*time.Hour + time.Duration(t.Minute())*time.Minute, nil
}

// Name returns the sweeper's name
func (s *dailySyncSweeper) Name() string {
	return "daily-sync-sweeper"
}

// Start checks the schedule right away, then on every check interval
func (s *dailySyncSweeper) Start(ctx context.Context) error {
	if !s.running.CompareAndSwap(false, true) {
		return fmt.Errorf("sweeper already running")
	}
	defer func() {
		s.running.Store(false)
		close(s.stoppedCh)
	}()

	logger.InfoCtx(ctx, "Starting daily sync sweeper",
		zap.String("inbound_at", s.config.InboundAt),
		zap.String("outbound_at", s.config.OutboundAt),
		zap.Duration("check_interval", s.config.CheckInterval),
	)

	ticker := s.clock.NewTicker(s.config.CheckInterval)
	defer ticker.Stop()

	for {
		s.check(ctx)

		select {
		case <-ctx.Done():
			logger.InfoCtx(ctx, "Daily sync sweeper stopping due to context cancellation", zap.Error(ctx.Err()))
			return nil
		case <-s.stopChan:
			logger.InfoCtx(ctx, "Daily sync sweeper stop requested")
			return nil
		case <-ticker.C:
		}
	}
}

// Stop gracefully stops the sweeper with timeout support
func (s *dailySyncSweeper) Stop(ctx context.Context) error {
	if !s.running.CompareAndSwap(true, false) {
		return nil
	}

	logger.InfoCtx(ctx, "Stopping daily sync sweeper")
	close(s.stopChan)

	select {
	case <-s.stoppedCh:
		logger.InfoCtx(ctx, "Daily sync sweeper stopped gracefully")
		return nil
	case <-ctx.Done():
		logger.WarnCtx(ctx, "Daily sync sweeper stop interrupted by context timeout")
		return ctx.Err()
	}
}

// check starts every job whose time of day has passed and that has not run today.
// A failed start is retried on the next check.
func (s *dailySyncSweeper) check(ctx context.Context) {
	now := s.clock.Now().UTC()
	midnight := now.Truncate(24 * time.Hour)
	day := midnight.Format("20060102")

	for _, job := range s.jobs {
		if job.lastDay == day || now.Before(midnight.Add(job.at)) {
			continue
		}

		trigger := workflows.Trigger{At: now, Scheduled: true}
		var (
			exec *workflows.Execution
			err  error
		)
		switch job.direction {
		case domain.DirectionInbound:
			exec, err = s.launcher.StartInbound(ctx, trigger, false)
		default:
			exec, err = s.launcher.StartOutbound(ctx, trigger, s.config.Regions)
		}

		switch {
		case errors.Is(err, workflows.ErrAlreadyStarted):
			logger.InfoCtx(ctx, "Sync already started today", zap.String("direction", string(job.direction)))
			job.lastDay = day
		case err != nil:
			logger.ErrorCtx(ctx, err, zap.String("direction", string(job.direction)))
		default:
			logger.InfoCtx(ctx, "Scheduled sync started",
				zap.String("direction", string(job.direction)),
				zap.String("workflow_id", exec.WorkflowID))
			job.lastDay = day
		}
	}
}
