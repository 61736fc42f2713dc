package sweeper

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/alitto/pond/v2"
	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"

	"github.com/chainpass/ticketing/internal/adapter"
	"github.com/chainpass/ticketing/internal/domain"
	"github.com/chainpass/ticketing/internal/logger"
	"github.com/chainpass/ticketing/internal/registration"
	"github.com/chainpass/ticketing/internal/store"
)

const (
	DEFAULT_SWEEP_INTERVAL = 10 * time.Minute
	DEFAULT_BATCH_SIZE     = 200
	DEFAULT_POOL_SIZE      = 8
)

// OwnershipSweeperConfig holds configuration for the ownership sweeper
type OwnershipSweeperConfig struct {
	Interval       time.Duration // Pause between cycles
	BatchSize      int           // Requests loaded per page
	WorkerPoolSize int           // Concurrent ledger balance checks
}

// ownershipSweeper periodically compares live registration requests with ticket balances on chain
type ownershipSweeper struct {
	config    OwnershipSweeperConfig
	store     store.Store
	checker   registration.Service
	clock     adapter.Clock
	pool      pond.Pool
	running   atomic.Bool
	stopChan  chan struct{}
	stoppedCh chan struct{}
}

// NewOwnershipSweeper creates an ownership sweeper. Each request is checked with
// checker.CheckOwnership, which promotes pending requests whose wallet already holds the ticket.
func NewOwnershipSweeper(
	config OwnershipSweeperConfig,
	st store.Store,
	checker registration.Service,
	clock adapter.Clock,
) Sweeper {
	if config.Interval <= 0 {
		config.Interval = DEFAULT_SWEEP_INTERVAL
	}
	if config.BatchSize <= 0 {
		config.BatchSize = DEFAULT_BATCH_SIZE
	}
	if config.WorkerPoolSize <= 0 {
		config.WorkerPoolSize = DEFAULT_POOL_SIZE
	}

	return &ownershipSweeper{
		config:    config,
		store:     st,
		checker:   checker,
		clock:     clock,
		stopChan:  make(chan struct{}),
		stoppedCh: make(chan struct{}),
	}
}

func (s *ownershipSweeper) Name() string {
	return "ownership-sweeper"
}

func (s *ownershipSweeper) Start(ctx context.Context) error {
	if !s.running.CompareAndSwap(false, true) {
		return fmt.Errorf("sweeper already running")
	}
	defer func() {
		s.running.Store(false)
		close(s.stoppedCh)
	}()

	logger.InfoCtx(ctx, "Starting ownership sweeper",
		zap.Duration("interval", s.config.Interval),
		zap.Int("batch_size", s.config.BatchSize),
		zap.Int("worker_pool_size", s.config.WorkerPoolSize),
	)

	s.pool = pond.NewPool(
		s.config.WorkerPoolSize,
		pond.WithQueueSize(s.config.BatchSize),
		pond.WithContext(ctx),
	)
	defer s.pool.StopAndWait()

	for {
		select {
		case <-ctx.Done():
			logger.InfoCtx(ctx, "Ownership sweeper stopping due to context cancellation", zap.Error(ctx.Err()))
			return nil
		case <-s.stopChan:
			logger.InfoCtx(ctx, "Ownership sweeper stop requested")
			return nil
		default:
			if _, err := s.runSweepCycle(ctx); err != nil && !errors.Is(err, context.Canceled) {
				logger.ErrorCtx(ctx, err)
			}

			// the next select observes a cancellation that cut the pause short
			s.sleep(ctx, s.config.Interval)
		}
	}
}

func (s *ownershipSweeper) Stop(ctx context.Context) error {
	if !s.running.Load() {
		return nil
	}

	logger.InfoCtx(ctx, "Stopping ownership sweeper")

	select {
	case <-s.stopChan:
	default:
		close(s.stopChan)
	}

	select {
	case <-s.stoppedCh:
		logger.InfoCtx(ctx, "Ownership sweeper stopped gracefully")
		return nil
	case <-ctx.Done():
		logger.WarnCtx(ctx, "Ownership sweeper stop interrupted by context timeout")
		return ctx.Err()
	}
}

// runSweepCycle checks every pending and approved request once
func (s *ownershipSweeper) runSweepCycle(ctx context.Context) (*registration.ReconcileReport, error) {
	startTime := s.clock.Now()
	logger.InfoCtx(ctx, "Starting ownership sweep cycle")

	var mu sync.Mutex
	report := &registration.ReconcileReport{StartedAt: startTime.UTC()}

	filter := store.RegistrationRequestFilter{
		Statuses: []domain.RequestStatus{domain.RequestStatusPending, domain.RequestStatusApproved},
		Limit:    s.config.BatchSize,
	}

	for {
		requests, total, err := s.store.ListRegistrationRequests(ctx, filter)
		if err != nil {
			return nil, fmt.Errorf("failed to list registration requests: %w", err)
		}
		if len(requests) == 0 {
			break
		}

		group := s.pool.NewGroup()
		for _, request := range requests {
			group.Submit(func() {
				finding, err := s.checker.CheckOwnership(ctx, request)
				if err != nil {
					logger.WarnCtx(ctx, "Failed to check ticket ownership",
						zap.Uint64("request_id", request.RequestID),
						zap.Error(err),
					)
				}

				mu.Lock()
				report.Add(request.RequestID, finding)
				mu.Unlock()
			})
		}
		if err := group.Wait(); err != nil {
			return nil, err
		}

		filter.Offset += uint64(len(requests))
		if filter.Offset >= total {
			break
		}
	}

	report.FinishedAt = s.clock.Now().UTC()

	if err := s.recordRunWithRetry(ctx, report.FinishedAt); err != nil {
		logger.ErrorCtx(ctx, fmt.Errorf("failed to record reconciliation time: %w", err))
	}

	logger.InfoCtx(ctx, "Ownership sweep cycle completed",
		zap.Duration("duration", s.clock.Since(startTime)),
		zap.Int("checked", report.Checked),
		zap.Int("promoted", len(report.Promoted)),
		zap.Uint64s("missing_asset", report.MissingAsset),
		zap.Int("errors", report.Findings[registration.FindingError]),
	)

	return report, nil
}

// recordRunWithRetry stores the cycle end time so operators can see the sweeper is alive
func (s *ownershipSweeper) recordRunWithRetry(ctx context.Context, finishedAt time.Time) error {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = time.Second
	b.MaxInterval = 15 * time.Second
	b.MaxElapsedTime = time.Minute

	operation := func() error {
		return s.store.SetKeyValue(ctx, registration.LastReconciliationKey, finishedAt.Format(time.RFC3339))
	}

	notify := func(err error, next time.Duration) {
		logger.WarnCtx(ctx, "Recording reconciliation time failed, retrying",
			zap.Error(err),
			zap.Duration("next_retry_in", next),
		)
	}

	return backoff.RetryNotify(operation, backoff.WithContext(b, ctx), notify)
}

// sleep waits for duration unless ctx or Stop interrupts it
func (s *ownershipSweeper) sleep(ctx context.Context, duration time.Duration) {
	select {
	case <-s.clock.After(duration):
	case <-ctx.Done():
	case <-s.stopChan:
	}
}
