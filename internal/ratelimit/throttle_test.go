package ratelimit_test

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chainpass/ticketing/internal/adapter"
	"github.com/chainpass/ticketing/internal/logger"
	"github.com/chainpass/ticketing/internal/mocks"
	"github.com/chainpass/ticketing/internal/ratelimit"
)

func TestMain(m *testing.M) {
	if err := logger.Initialize(logger.Config{Debug: false}); err != nil {
		panic(err)
	}

	os.Exit(m.Run())
}

type testThrottleMocks struct {
	ctrl        *gomock.Controller
	redisClient *mocks.MockRedisClient
	limiter     *mocks.MockRedisRateLimiter
	clock       *mocks.MockClock
}

func setupTestThrottle(t *testing.T) *testThrottleMocks {
	ctrl := gomock.NewController(t)

	return &testThrottleMocks{
		ctrl:        ctrl,
		redisClient: mocks.NewMockRedisClient(ctrl),
		limiter:     mocks.NewMockRedisRateLimiter(ctrl),
		clock:       mocks.NewMockClock(ctrl),
	}
}

func testConfig() ratelimit.Config {
	return ratelimit.Config{
		Nodes: map[string]ratelimit.NodeLimit{
			"algod": {RequestsPerSecond: 10, Burst: 20, MaxWait: time.Second},
		},
	}
}

// newDistributedThrottle builds a throttle whose Redis answered the startup ping with pingErr
func newDistributedThrottle(t *testing.T, tm *testThrottleMocks, pingErr error) ratelimit.Throttle {
	tm.redisClient.EXPECT().RateLimiter().Return(tm.limiter)
	tm.redisClient.EXPECT().Ping(gomock.Any()).Return(pingErr)

	throttle, err := ratelimit.NewThrottle(testConfig(), tm.redisClient, tm.clock)
	require.NoError(t, err)
	t.Cleanup(throttle.Close)

	return throttle
}

func TestNewThrottle_InvalidConfig(t *testing.T) {
	_, err := ratelimit.NewThrottle(ratelimit.Config{
		Nodes: map[string]ratelimit.NodeLimit{"algod": {RequestsPerSecond: 0}},
	}, nil, adapter.NewClock())
	assert.Error(t, err)
}

func TestThrottle_LocalOnly(t *testing.T) {
	throttle, err := ratelimit.NewThrottle(testConfig(), nil, adapter.NewClock())
	require.NoError(t, err)
	defer throttle.Close()

	ctx := context.Background()
	for range 5 {
		assert.NoError(t, throttle.Wait(ctx, "algod"))
	}

	// nodes without a budget are not paced
	assert.NoError(t, throttle.Wait(ctx, "indexer"))
}

func TestThrottle_Distributed(t *testing.T) {
	t.Run("allowed", func(t *testing.T) {
		tm := setupTestThrottle(t)
		throttle := newDistributedThrottle(t, tm, nil)

		tm.limiter.EXPECT().AllowPerSecond(gomock.Any(), ratelimit.DEFAULT_KEY_PREFIX+"algod", 10, 20).
			Return(adapter.RateDecision{Allowed: true, Remaining: 19}, nil)

		assert.NoError(t, throttle.Wait(context.Background(), "algod"))
	})

	t.Run("waits for the shared budget", func(t *testing.T) {
		tm := setupTestThrottle(t)
		throttle := newDistributedThrottle(t, tm, nil)

		fired := make(chan time.Time, 1)
		fired <- time.Now()

		gomock.InOrder(
			tm.limiter.EXPECT().AllowPerSecond(gomock.Any(), gomock.Any(), 10, 20).
				Return(adapter.RateDecision{Allowed: false, RetryAfter: 100 * time.Millisecond}, nil),
			tm.clock.EXPECT().After(gomock.Any()).Return(fired),
			tm.limiter.EXPECT().AllowPerSecond(gomock.Any(), gomock.Any(), 10, 20).
				Return(adapter.RateDecision{Allowed: true}, nil),
		)

		assert.NoError(t, throttle.Wait(context.Background(), "algod"))
	})

	t.Run("falls back to local budget on redis error", func(t *testing.T) {
		tm := setupTestThrottle(t)
		throttle := newDistributedThrottle(t, tm, nil)

		tm.limiter.EXPECT().AllowPerSecond(gomock.Any(), gomock.Any(), 10, 20).
			Return(adapter.RateDecision{}, errors.New("connection reset by peer"))

		assert.NoError(t, throttle.Wait(context.Background(), "algod"))
		// later calls stay local until the health probe sees Redis again
		assert.NoError(t, throttle.Wait(context.Background(), "algod"))
	})

	t.Run("starts local when redis is down", func(t *testing.T) {
		tm := setupTestThrottle(t)
		throttle := newDistributedThrottle(t, tm, errors.New("dial tcp: connection refused"))

		assert.NoError(t, throttle.Wait(context.Background(), "algod"))
	})

	t.Run("gives up after max wait", func(t *testing.T) {
		tm := setupTestThrottle(t)
		tm.redisClient.EXPECT().RateLimiter().Return(tm.limiter)
		tm.redisClient.EXPECT().Ping(gomock.Any()).Return(nil)

		throttle, err := ratelimit.NewThrottle(ratelimit.Config{
			Nodes: map[string]ratelimit.NodeLimit{
				"indexer": {RequestsPerSecond: 10, Burst: 10, MaxWait: 20 * time.Millisecond},
			},
		}, tm.redisClient, tm.clock)
		require.NoError(t, err)
		defer throttle.Close()

		tm.limiter.EXPECT().AllowPerSecond(gomock.Any(), gomock.Any(), 10, 10).
			Return(adapter.RateDecision{Allowed: false, RetryAfter: time.Second}, nil).AnyTimes()
		tm.clock.EXPECT().After(gomock.Any()).Return(make(chan time.Time)).AnyTimes()

		err = throttle.Wait(context.Background(), "indexer")
		assert.ErrorIs(t, err, context.DeadlineExceeded)
	})
}
