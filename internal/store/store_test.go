package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	"github.com/chainpass/ticketing/internal/domain"
)

const (
	walletA = "7ZUECA7HFLZTXENRV24SHLU4AVPUTMTTDUFUBNBD64C73F3UHRTHAIOF6Q"
	walletB = "HZ57J3K46JIJXILONBBZOHX6BKPXEM2VVXNRFSUED6DKFD5ZD24PMJ3MVA"
)

// RunStoreTests runs every store test against the store returned by initDB
func RunStoreTests(t *testing.T, initDB func(t *testing.T) Store) {
	t.Run("CreateRegistrationRequest", func(t *testing.T) { testCreateRegistrationRequest(t, initDB(t)) })
	t.Run("CreateRegistrationRequest reuses live request", func(t *testing.T) { testCreateRegistrationRequestReuse(t, initDB(t)) })
	t.Run("LatestAndList", func(t *testing.T) { testLatestAndList(t, initDB(t)) })
	t.Run("ConditionalTransitions", func(t *testing.T) { testConditionalTransitions(t, initDB(t)) })
	t.Run("TransferSubmission", func(t *testing.T) { testTransferSubmission(t, initDB(t)) })
	t.Run("AdminNotes", func(t *testing.T) { testAdminNotes(t, initDB(t)) })
	t.Run("CheckIns", func(t *testing.T) { testCheckIns(t, initDB(t)) })
	t.Run("KeyValue", func(t *testing.T) { testKeyValue(t, initDB(t)) })
}

func testCreateRegistrationRequest(t *testing.T, s Store) {
	ctx := context.Background()
	assetID := uint64(555)
	requestedAt := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

	request, created, err := s.CreateRegistrationRequest(ctx, CreateRegistrationRequestInput{
		EventID:       7,
		WalletAddress: " " + walletA + " ",
		Email:         "ada@example.com",
		AssetID:       &assetID,
		RequestedAt:   requestedAt,
	})
	require.NoError(t, err)
	assert.True(t, created)
	assert.NotZero(t, request.RequestID)
	assert.Equal(t, walletA, request.WalletAddress)
	assert.Equal(t, domain.RequestStatusPending, request.Status)
	require.NotNil(t, request.UserID)

	user, err := s.GetUserByWallet(ctx, walletA)
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, "ada@example.com", user.Email)

	loaded, err := s.GetRegistrationRequest(ctx, request.RequestID)
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, "ada@example.com", loaded.Email)
	assert.Equal(t, uint64(7), loaded.EventID)
	require.NotNil(t, loaded.AssetID)
	assert.Equal(t, assetID, *loaded.AssetID)
	assert.True(t, requestedAt.Equal(loaded.RequestedAt))

	missing, err := s.GetRegistrationRequest(ctx, request.RequestID+1000)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func testCreateRegistrationRequestReuse(t *testing.T, s Store) {
	ctx := context.Background()

	first, created, err := s.CreateRegistrationRequest(ctx, CreateRegistrationRequestInput{EventID: 7, WalletAddress: walletA, Email: "old@example.com"})
	require.NoError(t, err)
	require.True(t, created)

	again, created, err := s.CreateRegistrationRequest(ctx, CreateRegistrationRequestInput{EventID: 7, WalletAddress: walletA, Email: "new@example.com"})
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, first.RequestID, again.RequestID)

	// a rejected request does not block a new one
	ok, err := s.MarkRegistrationRequestRejected(ctx, first.RequestID, time.Now())
	require.NoError(t, err)
	require.True(t, ok)

	fresh, created, err := s.CreateRegistrationRequest(ctx, CreateRegistrationRequestInput{EventID: 7, WalletAddress: walletA, Email: "new@example.com"})
	require.NoError(t, err)
	assert.True(t, created)
	assert.NotEqual(t, first.RequestID, fresh.RequestID)

	user, err := s.GetUserByWallet(ctx, walletA)
	require.NoError(t, err)
	assert.Equal(t, "new@example.com", user.Email)
}

func testLatestAndList(t *testing.T, s Store) {
	ctx := context.Background()
	base := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

	older, _, err := s.CreateRegistrationRequest(ctx, CreateRegistrationRequestInput{EventID: 9, WalletAddress: walletA, RequestedAt: base})
	require.NoError(t, err)
	_, err = s.MarkRegistrationRequestRejected(ctx, older.RequestID, base.Add(time.Minute))
	require.NoError(t, err)

	newer, _, err := s.CreateRegistrationRequest(ctx, CreateRegistrationRequestInput{EventID: 9, WalletAddress: walletA, RequestedAt: base.Add(time.Hour)})
	require.NoError(t, err)
	_, _, err = s.CreateRegistrationRequest(ctx, CreateRegistrationRequestInput{EventID: 9, WalletAddress: walletB, Email: "b@example.com", RequestedAt: base.Add(2 * time.Hour)})
	require.NoError(t, err)

	latest, err := s.GetLatestRegistrationRequest(ctx, 9, walletA)
	require.NoError(t, err)
	require.NotNil(t, latest)
	assert.Equal(t, newer.RequestID, latest.RequestID)

	none, err := s.GetLatestRegistrationRequest(ctx, 10, walletA)
	require.NoError(t, err)
	assert.Nil(t, none)

	eventID := uint64(9)
	all, total, err := s.ListRegistrationRequests(ctx, RegistrationRequestFilter{EventID: &eventID})
	require.NoError(t, err)
	assert.Equal(t, uint64(3), total)
	require.Len(t, all, 3)
	assert.Equal(t, walletB, all[0].WalletAddress)
	assert.Equal(t, "b@example.com", all[0].Email)

	pending, total, err := s.ListRegistrationRequests(ctx, RegistrationRequestFilter{
		EventID:  &eventID,
		Statuses: []domain.RequestStatus{domain.RequestStatusPending},
		Limit:    1,
	})
	require.NoError(t, err)
	assert.Equal(t, uint64(2), total)
	assert.Len(t, pending, 1)
}

func testConditionalTransitions(t *testing.T, s Store) {
	ctx := context.Background()
	txID := "TXID"

	request, _, err := s.CreateRegistrationRequest(ctx, CreateRegistrationRequestInput{EventID: 11, WalletAddress: walletA})
	require.NoError(t, err)

	ok, err := s.MarkRegistrationRequestApproved(ctx, ApproveRequestInput{RequestID: request.RequestID, AssetID: 555, TransferTxID: &txID, ReviewedAt: time.Now()})
	require.NoError(t, err)
	assert.True(t, ok)

	// terminal states never change
	ok, err = s.MarkRegistrationRequestApproved(ctx, ApproveRequestInput{RequestID: request.RequestID, AssetID: 556, ReviewedAt: time.Now()})
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = s.MarkRegistrationRequestRejected(ctx, request.RequestID, time.Now())
	require.NoError(t, err)
	assert.False(t, ok)

	loaded, err := s.GetRegistrationRequest(ctx, request.RequestID)
	require.NoError(t, err)
	assert.Equal(t, domain.RequestStatusApproved, loaded.Status)
	require.NotNil(t, loaded.TransferTxID)
	assert.Equal(t, txID, *loaded.TransferTxID)
	assert.Equal(t, uint64(555), *loaded.AssetID)
	assert.NotNil(t, loaded.ReviewedAt)
}

func testTransferSubmission(t *testing.T, s Store) {
	ctx := context.Background()

	request, _, err := s.CreateRegistrationRequest(ctx, CreateRegistrationRequestInput{EventID: 13, WalletAddress: walletA})
	require.NoError(t, err)

	ok, err := s.RecordTransferSubmission(ctx, request.RequestID, 777, "SUBMITTED")
	require.NoError(t, err)
	assert.True(t, ok)

	// the submission is kept while the request waits for confirmation
	loaded, err := s.GetRegistrationRequest(ctx, request.RequestID)
	require.NoError(t, err)
	assert.Equal(t, domain.RequestStatusPending, loaded.Status)
	require.NotNil(t, loaded.TransferTxID)
	assert.Equal(t, "SUBMITTED", *loaded.TransferTxID)
	assert.Equal(t, uint64(777), *loaded.AssetID)
	assert.Nil(t, loaded.ReviewedAt)

	ok, err = s.MarkRegistrationRequestRejected(ctx, request.RequestID, time.Now())
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = s.RecordTransferSubmission(ctx, request.RequestID, 777, "LATE")
	require.NoError(t, err)
	assert.False(t, ok)
}

func testAdminNotes(t *testing.T, s Store) {
	ctx := context.Background()

	request, _, err := s.CreateRegistrationRequest(ctx, CreateRegistrationRequestInput{EventID: 12, WalletAddress: walletA})
	require.NoError(t, err)

	require.NoError(t, s.UpdateRegistrationRequestNotes(ctx, request.RequestID, "VIP guest"))

	loaded, err := s.GetRegistrationRequest(ctx, request.RequestID)
	require.NoError(t, err)
	require.NotNil(t, loaded.AdminNotes)
	assert.Equal(t, "VIP guest", *loaded.AdminNotes)
	assert.Equal(t, domain.RequestStatusPending, loaded.Status)

	require.NoError(t, s.UpdateRegistrationRequestNotes(ctx, request.RequestID, ""))
	loaded, err = s.GetRegistrationRequest(ctx, request.RequestID)
	require.NoError(t, err)
	assert.Nil(t, loaded.AdminNotes)

	err = s.UpdateRegistrationRequestNotes(ctx, request.RequestID+1000, "x")
	assert.ErrorIs(t, err, domain.ErrRequestNotFound)
}

func testCheckIns(t *testing.T, s Store) {
	ctx := context.Background()
	first := time.Date(2024, 6, 1, 18, 0, 0, 0, time.UTC)

	checkIn, created, err := s.CreateCheckIn(ctx, CreateCheckInInput{
		EventID:         7,
		WalletAddress:   walletA,
		AssetID:         555,
		SignatureStatus: domain.SignatureStatusVerified,
		SessionID:       "2b1f7c1e-1111-4e4e-9a9a-000000000001",
		ScanPayload:     datatypes.JSON(`{"payload":{"assetId":555}}`),
		CheckedInAt:     first,
	})
	require.NoError(t, err)
	assert.True(t, created)
	assert.NotZero(t, checkIn.ID)

	again, created, err := s.CreateCheckIn(ctx, CreateCheckInInput{
		EventID:         7,
		WalletAddress:   walletA,
		SignatureStatus: domain.SignatureStatusUnsigned,
		CheckedInAt:     first.Add(time.Hour),
	})
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, checkIn.ID, again.ID)
	assert.True(t, first.Equal(again.CheckedInAt))
	assert.Equal(t, domain.SignatureStatusVerified, again.SignatureStatus)

	none, err := s.GetCheckIn(ctx, 7, walletB)
	require.NoError(t, err)
	assert.Nil(t, none)
}

func testKeyValue(t *testing.T, s Store) {
	ctx := context.Background()

	value, err := s.GetKeyValue(ctx, "reconcile:last_run")
	require.NoError(t, err)
	assert.Empty(t, value)

	require.NoError(t, s.SetKeyValue(ctx, "reconcile:last_run", "2024-01-01T00:00:00Z"))
	require.NoError(t, s.SetKeyValue(ctx, "reconcile:last_run", "2024-01-02T00:00:00Z"))

	value, err = s.GetKeyValue(ctx, "reconcile:last_run")
	require.NoError(t, err)
	assert.Equal(t, "2024-01-02T00:00:00Z", value)
}

func TestNormalizeConnectionPoolSettings(t *testing.T) {
	open, idle, lifetime, idleTime := NormalizeConnectionPoolSettings(0, 0, 0, 0)
	assert.Equal(t, 20, open)
	assert.Equal(t, 5, idle)
	assert.Equal(t, 5*time.Minute, lifetime)
	assert.Equal(t, 10*time.Minute, idleTime)

	open, idle, _, _ = NormalizeConnectionPoolSettings(3, 10, time.Minute, time.Minute)
	assert.Equal(t, 3, open)
	assert.Equal(t, 3, idle)
}
