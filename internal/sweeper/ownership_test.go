package sweeper_test

import (
	"context"
	"errors"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chainpass/ticketing/internal/domain"
	"github.com/chainpass/ticketing/internal/logger"
	"github.com/chainpass/ticketing/internal/mocks"
	"github.com/chainpass/ticketing/internal/registration"
	"github.com/chainpass/ticketing/internal/store"
	"github.com/chainpass/ticketing/internal/store/schema"
	"github.com/chainpass/ticketing/internal/sweeper"
)

func TestMain(m *testing.M) {
	if err := logger.Initialize(logger.Config{Debug: false}); err != nil {
		panic(err)
	}

	os.Exit(m.Run())
}

// testSweeperMocks contains all the mocks needed for testing the sweeper
type testSweeperMocks struct {
	store   *mocks.MockStore
	checker *mocks.MockRegistrationService
	clock   *mocks.MockClock
	sweeper sweeper.Sweeper
}

func setupTestSweeper(t *testing.T, batchSize int) *testSweeperMocks {
	ctrl := gomock.NewController(t)

	tm := &testSweeperMocks{
		store:   mocks.NewMockStore(ctrl),
		checker: mocks.NewMockRegistrationService(ctrl),
		clock:   mocks.NewMockClock(ctrl),
	}

	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	tm.clock.EXPECT().Now().Return(now).AnyTimes()
	tm.clock.EXPECT().Since(now).Return(time.Second).AnyTimes()
	// the pause between cycles never ends on its own, Stop interrupts it
	tm.clock.EXPECT().After(gomock.Any()).Return(make(chan time.Time)).AnyTimes()

	tm.sweeper = sweeper.NewOwnershipSweeper(sweeper.OwnershipSweeperConfig{
		Interval:       time.Minute,
		BatchSize:      batchSize,
		WorkerPoolSize: 2,
	}, tm.store, tm.checker, tm.clock)

	return tm
}

func request(id uint64, status domain.RequestStatus) *store.RegistrationRequestWithEmail {
	return &store.RegistrationRequestWithEmail{
		RegistrationRequest: schema.RegistrationRequest{RequestID: id, EventID: 7, Status: status},
	}
}

// runOneCycle starts the sweeper and stops it once the cycle has recorded its end time
func runOneCycle(t *testing.T, tm *testSweeperMocks) {
	done := make(chan struct{})
	tm.store.EXPECT().
		SetKeyValue(gomock.Any(), registration.LastReconciliationKey, "2024-06-01T12:00:00Z").
		DoAndReturn(func(context.Context, string, string) error {
			close(done)
			return nil
		})

	errCh := make(chan error, 1)
	go func() {
		errCh <- tm.sweeper.Start(context.Background())
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("sweep cycle did not finish")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, tm.sweeper.Stop(ctx))
	require.NoError(t, <-errCh)
}

func TestOwnershipSweeper_Name(t *testing.T) {
	tm := setupTestSweeper(t, 10)
	assert.Equal(t, "ownership-sweeper", tm.sweeper.Name())
}

func TestOwnershipSweeper_ChecksEveryPage(t *testing.T) {
	tm := setupTestSweeper(t, 2)

	pages := [][]*store.RegistrationRequestWithEmail{
		{request(1, domain.RequestStatusPending), request(2, domain.RequestStatusApproved)},
		{request(3, domain.RequestStatusApproved)},
	}
	gomock.InOrder(
		tm.store.EXPECT().ListRegistrationRequests(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, filter store.RegistrationRequestFilter) ([]*store.RegistrationRequestWithEmail, uint64, error) {
				assert.Equal(t, 2, filter.Limit)
				assert.Equal(t, uint64(0), filter.Offset)
				assert.ElementsMatch(t, []domain.RequestStatus{domain.RequestStatusPending, domain.RequestStatusApproved}, filter.Statuses)
				return pages[0], 3, nil
			}),
		tm.store.EXPECT().ListRegistrationRequests(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, filter store.RegistrationRequestFilter) ([]*store.RegistrationRequestWithEmail, uint64, error) {
				assert.Equal(t, uint64(2), filter.Offset)
				return pages[1], 3, nil
			}),
	)

	var mu sync.Mutex
	checked := []uint64{}
	tm.checker.EXPECT().CheckOwnership(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, r *store.RegistrationRequestWithEmail) (registration.Finding, error) {
			mu.Lock()
			defer mu.Unlock()
			checked = append(checked, r.RequestID)

			switch r.RequestID {
			case 1:
				return registration.FindingPromoted, nil
			case 3:
				return registration.FindingError, errors.New("indexer unavailable")
			default:
				return registration.FindingInSync, nil
			}
		}).Times(3)

	runOneCycle(t, tm)

	mu.Lock()
	defer mu.Unlock()
	assert.ElementsMatch(t, []uint64{1, 2, 3}, checked)
}

func TestOwnershipSweeper_NothingToCheck(t *testing.T) {
	tm := setupTestSweeper(t, 10)

	tm.store.EXPECT().ListRegistrationRequests(gomock.Any(), gomock.Any()).Return(nil, uint64(0), nil)

	runOneCycle(t, tm)
}

func TestOwnershipSweeper_StopWhenNotRunning(t *testing.T) {
	tm := setupTestSweeper(t, 10)
	assert.NoError(t, tm.sweeper.Stop(context.Background()))
}
