package ratelimit

import (
	"context"
	"fmt"
	"math/rand/v2"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/chainpass/ticketing/internal/adapter"
	"github.com/chainpass/ticketing/internal/logger"
)

// DEFAULT_KEY_PREFIX namespaces the shared buckets in Redis
const DEFAULT_KEY_PREFIX = "chainpass:throttle:"

// NodeLimit is the request budget of one upstream node
type NodeLimit struct {
	RequestsPerSecond int
	Burst             int
	// MaxWait bounds how long a caller queues for a token
	MaxWait time.Duration
}

// Config holds throttle configuration
type Config struct {
	Nodes     map[string]NodeLimit
	KeyPrefix string
	// LocalFallbackMultiplier scales each node's rate while Redis is unreachable,
	// since every replica then spends its own budget
	LocalFallbackMultiplier float64
	// HealthCheckInterval is how often an unreachable Redis is probed. Zero disables probing.
	HealthCheckInterval time.Duration
}

// Throttle paces outbound requests to rate limited upstream nodes.
// Replicas share one budget through Redis and fall back to a local budget when it is down.
//
//go:generate mockgen -source=throttle.go -destination=../mocks/throttle.go -package=mocks -mock_names=Throttle=MockThrottle
type Throttle interface {
	// Wait blocks until a request to node may be sent
	Wait(ctx context.Context, node string) error

	// Close stops the health probe
	Close()
}

type nodeLimiter struct {
	name      string
	limit     NodeLimit
	local     *rate.Limiter
	preFilter *rate.Limiter
}

type throttle struct {
	config         Config
	limiters       map[string]*nodeLimiter
	redis          adapter.RedisClient
	distributed    adapter.RedisRateLimiter
	clock          adapter.Clock
	redisAvailable atomic.Bool
	done           chan struct{}
	closeOnce      sync.Once
}

// NewThrottle creates a Throttle. A nil redis client paces each process on its own.
func NewThrottle(cfg Config, redis adapter.RedisClient, clock adapter.Clock) (Throttle, error) {
	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid throttle configuration: %w", err)
	}

	t := &throttle{
		config:   cfg,
		limiters: make(map[string]*nodeLimiter, len(cfg.Nodes)),
		redis:    redis,
		clock:    clock,
		done:     make(chan struct{}),
	}

	localMultiplier := 1.0
	if redis != nil {
		t.distributed = redis.RateLimiter()
		localMultiplier = cfg.LocalFallbackMultiplier

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		err := redis.Ping(ctx)
		cancel()
		if err != nil {
			logger.Warn("Redis unavailable, ledger throttle starts on local budgets", zap.Error(err))
		}
		t.redisAvailable.Store(err == nil)
	}

	for name, limit := range cfg.Nodes {
		localRate := max(float64(limit.RequestsPerSecond)*localMultiplier, 1.0)
		t.limiters[name] = &nodeLimiter{
			name:  name,
			limit: limit,
			local: rate.NewLimiter(rate.Limit(localRate), limit.Burst),
			// keeps a single replica from hammering Redis for tokens it cannot get
			preFilter: rate.NewLimiter(rate.Limit(limit.RequestsPerSecond), limit.Burst),
		}
	}

	if redis != nil && cfg.HealthCheckInterval > 0 {
		go t.monitorRedisHealth()
	}

	logger.Info("Ledger throttle initialized",
		zap.Int("nodes", len(cfg.Nodes)),
		zap.Bool("distributed", redis != nil),
	)

	return t, nil
}

func (t *throttle) Wait(ctx context.Context, node string) error {
	limiter, ok := t.limiters[node]
	if !ok {
		// unconfigured nodes are not paced
		return nil
	}

	waitCtx, cancel := context.WithTimeout(ctx, limiter.limit.MaxWait)
	defer cancel()

	for {
		if err := waitCtx.Err(); err != nil {
			return fmt.Errorf("throttled waiting for %s: %w", node, err)
		}

		if t.distributed == nil || !t.redisAvailable.Load() {
			if err := limiter.local.Wait(waitCtx); err != nil {
				return fmt.Errorf("throttled waiting for %s: %w", node, err)
			}
			return nil
		}

		allowed, retryAfter, err := t.tryDistributed(waitCtx, limiter)
		if err != nil {
			if waitCtx.Err() != nil {
				continue
			}
			t.redisAvailable.Store(false)
			logger.WarnCtx(ctx, "Redis throttle error, falling back to local budget",
				zap.String("node", node),
				zap.Error(err),
			)
			continue
		}
		if allowed {
			return nil
		}

		// spread retries over 50-150% of the advised wait
		jitter := time.Duration(float64(retryAfter) * (0.5 + rand.Float64())) //nolint:gosec,G404
		select {
		case <-waitCtx.Done():
		case <-t.clock.After(jitter):
		}
	}
}

func (t *throttle) tryDistributed(ctx context.Context, limiter *nodeLimiter) (bool, time.Duration, error) {
	if err := limiter.preFilter.Wait(ctx); err != nil {
		return false, 0, err
	}

	decision, err := t.distributed.AllowPerSecond(ctx, t.config.KeyPrefix+limiter.name, limiter.limit.RequestsPerSecond, limiter.limit.Burst)
	if err != nil {
		return false, 0, err
	}
	if !decision.Allowed {
		logger.Debug("Ledger throttle token unavailable, waiting",
			zap.String("node", limiter.name),
			zap.Duration("retry_after", decision.RetryAfter),
		)
		retryAfter := decision.RetryAfter
		if retryAfter <= 0 {
			retryAfter = 50 * time.Millisecond
		}
		return false, retryAfter, nil
	}

	return true, 0, nil
}

func (t *throttle) monitorRedisHealth() {
	for {
		select {
		case <-t.done:
			return
		case <-t.clock.After(t.config.HealthCheckInterval):
		}

		if t.redisAvailable.Load() {
			continue
		}

		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		err := t.redis.Ping(ctx)
		cancel()

		if err == nil {
			t.redisAvailable.Store(true)
			logger.Info("Redis connection restored, ledger throttle is shared again")
		}
	}
}

func (t *throttle) Close() {
	t.closeOnce.Do(func() {
		close(t.done)
	})
}

func validateConfig(cfg *Config) error {
	for name, limit := range cfg.Nodes {
		if limit.RequestsPerSecond <= 0 {
			return fmt.Errorf("node %s: requests_per_second must be positive", name)
		}
		if limit.Burst <= 0 {
			limit.Burst = limit.RequestsPerSecond
		}
		if limit.MaxWait <= 0 {
			limit.MaxWait = 30 * time.Second
		}
		cfg.Nodes[name] = limit
	}

	if cfg.KeyPrefix == "" {
		cfg.KeyPrefix = DEFAULT_KEY_PREFIX
	}
	if cfg.LocalFallbackMultiplier <= 0 {
		cfg.LocalFallbackMultiplier = 0.5
	}

	return nil
}
