// Package scheduler runs background jobs of the production service.
package scheduler

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/thirty33/DELICIUS-FOOD-CRM-sub000/internal/infrastructure/telemetry"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// ErrSchedulerNotRunning is returned when triggering a stopped scheduler
var ErrSchedulerNotRunning = errors.New("scheduler is not running")

// Recomputer processes one batch of pending production status updates and
// reports how many orders it updated
type Recomputer interface {
	RecomputePending(ctx context.Context) (int, error)
}

// Config holds the production status scheduler configuration
type Config struct {
	Enabled      bool
	PollInterval time.Duration
	JobTimeout   time.Duration
	// MaxBatchesPerRun bounds how many batches one wake-up drains
	MaxBatchesPerRun int
}

// DefaultConfig returns the default configuration
func DefaultConfig() Config {
	return Config{
		Enabled:          true,
		PollInterval:     30 * time.Second,
		JobTimeout:       2 * time.Minute,
		MaxBatchesPerRun: 10,
	}
}

// ProductionStatusScheduler drains the production status queue on a fixed
// interval and on demand
type ProductionStatusScheduler struct {
	recomputer Recomputer
	config     Config
	logger     *zap.Logger

	trigger   chan struct{}
	cancel    context.CancelFunc
	wg        sync.WaitGroup
	mu        sync.Mutex
	isRunning bool
}

// NewProductionStatusScheduler creates a scheduler; zero config values take
// the defaults
func NewProductionStatusScheduler(recomputer Recomputer, config Config, logger *zap.Logger) *ProductionStatusScheduler {
	defaults := DefaultConfig()
	if config.PollInterval <= 0 {
		config.PollInterval = defaults.PollInterval
	}
	if config.JobTimeout <= 0 {
		config.JobTimeout = defaults.JobTimeout
	}
	if config.MaxBatchesPerRun <= 0 {
		config.MaxBatchesPerRun = defaults.MaxBatchesPerRun
	}
	return &ProductionStatusScheduler{
		recomputer: recomputer,
		config:     config,
		logger:     logger.Named("production_status_scheduler"),
		trigger:    make(chan struct{}, 1),
	}
}

// Start begins polling. It is a no-op when disabled or already running.
func (s *ProductionStatusScheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.isRunning {
		s.mu.Unlock()
		return nil
	}
	if !s.config.Enabled {
		s.mu.Unlock()
		s.logger.Info("Production status scheduler is disabled")
		return nil
	}
	s.isRunning = true
	ctx, s.cancel = context.WithCancel(ctx)
	s.mu.Unlock()

	s.wg.Add(1)
	go s.loop(ctx)

	s.logger.Info("Production status scheduler started",
		zap.Duration("poll_interval", s.config.PollInterval),
		zap.Duration("job_timeout", s.config.JobTimeout),
	)
	return nil
}

// Stop cancels the loop and waits for the running batch, bounded by ctx
func (s *ProductionStatusScheduler) Stop(ctx context.Context) error {
	s.mu.Lock()
	if !s.isRunning {
		s.mu.Unlock()
		return nil
	}
	s.isRunning = false
	cancel := s.cancel
	s.mu.Unlock()

	cancel()

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		s.logger.Info("Production status scheduler stopped gracefully")
		return nil
	case <-ctx.Done():
		s.logger.Warn("Production status scheduler stop timed out")
		return ctx.Err()
	}
}

// Trigger asks the loop to run now. Triggers arriving while one is pending
// are merged.
func (s *ProductionStatusScheduler) Trigger() error {
	s.mu.Lock()
	running := s.isRunning
	s.mu.Unlock()
	if !running {
		return ErrSchedulerNotRunning
	}
	select {
	case s.trigger <- struct{}{}:
	default:
	}
	return nil
}

// IsRunning reports whether the loop is active
func (s *ProductionStatusScheduler) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.isRunning
}

func (s *ProductionStatusScheduler) loop(ctx context.Context) {
	defer s.wg.Done()

	ticker := time.NewTicker(s.config.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		case <-s.trigger:
		}
		s.RunOnce(ctx)
	}
}

// RunOnce drains batches until one comes back empty, an error occurs, or
// MaxBatchesPerRun is reached. It returns the number of orders updated.
func (s *ProductionStatusScheduler) RunOnce(ctx context.Context) int {
	ctx, span := telemetry.StartSpan(ctx, "production_status.run")
	total := 0
	var runErr error
	defer func() {
		span.SetAttributes(attribute.Int("production_status.updated", total))
		telemetry.EndSpan(span, runErr)
	}()

	for batch := 0; batch < s.config.MaxBatchesPerRun; batch++ {
		if ctx.Err() != nil {
			return total
		}
		n, err := s.runBatch(ctx)
		if err != nil {
			runErr = err
			s.logger.Error("Production status recompute failed", zap.Error(err))
			return total
		}
		total += n
		if n == 0 {
			break
		}
	}
	if total > 0 {
		s.logger.Info("Production status run completed", zap.Int("updated", total))
	}
	return total
}

func (s *ProductionStatusScheduler) runBatch(ctx context.Context) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, s.config.JobTimeout)
	defer cancel()
	return s.recomputer.RecomputePending(ctx)
}
