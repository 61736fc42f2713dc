package ledger_test

import (
	"context"
	"encoding/base64"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/algorand/go-algorand-sdk/v2/abi"
	"github.com/algorand/go-algorand-sdk/v2/client/v2/common/models"
	"github.com/algorand/go-algorand-sdk/v2/crypto"
	"github.com/algorand/go-algorand-sdk/v2/encoding/msgpack"
	"github.com/algorand/go-algorand-sdk/v2/mnemonic"
	"github.com/algorand/go-algorand-sdk/v2/types"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chainpass/ticketing/internal/domain"
	"github.com/chainpass/ticketing/internal/ledger"
	"github.com/chainpass/ticketing/internal/logger"
	"github.com/chainpass/ticketing/internal/mocks"
)

func TestMain(m *testing.M) {
	if err := logger.Initialize(logger.Config{Debug: false}); err != nil {
		panic(err)
	}

	os.Exit(m.Run())
}

type testLedgerMocks struct {
	ctrl    *gomock.Controller
	algod   *mocks.MockAlgodClient
	indexer *mocks.MockIndexerClient
	ledger  ledger.Ledger
}

func setupTestLedger(t *testing.T, organizerMnemonic string) *testLedgerMocks {
	ctrl := gomock.NewController(t)

	tm := &testLedgerMocks{
		ctrl:    ctrl,
		algod:   mocks.NewMockAlgodClient(ctrl),
		indexer: mocks.NewMockIndexerClient(ctrl),
	}

	l, err := ledger.NewAlgorandLedger(tm.algod, tm.indexer, ledger.Config{
		OrganizerMnemonic: organizerMnemonic,
		MaxRetryElapsed:   time.Millisecond,
	})
	require.NoError(t, err)
	tm.ledger = l

	return tm
}

func encodeEventConfig(t *testing.T, id uint64, name string, creator types.Address, max, registered, appID uint64) []byte {
	t.Helper()

	typ, err := abi.TypeOf(ledger.EventConfigABI)
	require.NoError(t, err)

	value, err := typ.Encode([]interface{}{
		id, name, "Conference", creator[:], "ipfs://bafyevent", uint64(0), max,
		"Berlin", uint64(1735725600), uint64(1735740000), registered, appID,
	})
	require.NoError(t, err)

	return value
}

func TestDecodeEventConfig(t *testing.T) {
	creator := crypto.GenerateAccount()
	value := encodeEventConfig(t, 7, "Demo Con", creator.Address, 100, 12, 739825314)

	cfg, err := ledger.DecodeEventConfig(value)
	require.NoError(t, err)

	assert.Equal(t, uint64(7), cfg.EventID)
	assert.Equal(t, "Demo Con", cfg.Name)
	assert.Equal(t, "Conference", cfg.Category)
	assert.Equal(t, creator.Address.String(), cfg.CreatorAddress)
	assert.Equal(t, "ipfs://bafyevent", cfg.ImageRef)
	assert.Equal(t, uint64(100), cfg.MaxParticipants)
	assert.Equal(t, uint64(12), cfg.RegisteredCount)
	assert.Equal(t, uint64(88), cfg.Available())
	assert.Equal(t, "Berlin", cfg.Location)
	assert.Equal(t, time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC), cfg.StartTime)
	assert.Equal(t, uint64(739825314), cfg.TicketAppID)

	_, err = ledger.DecodeEventConfig([]byte{0x01, 0x02})
	assert.Error(t, err)
}

func TestABIString(t *testing.T) {
	value, err := ledger.EncodeABIString("ada@example.com")
	require.NoError(t, err)
	assert.Equal(t, []byte{0x00, 0x0f}, value[:2])

	s, err := ledger.DecodeABIString(value)
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", s)
}

func TestAlgorandLedger_ReadBoxes(t *testing.T) {
	tm := setupTestLedger(t, "")
	ctx := context.Background()

	gomock.InOrder(
		tm.indexer.EXPECT().SearchForApplicationBoxes(ctx, uint64(10), uint64(1000), "").
			Return(models.BoxesResponse{Boxes: []models.BoxDescriptor{{Name: []byte("a")}, {Name: []byte("b")}}, NextToken: "page-2"}, nil),
		tm.indexer.EXPECT().SearchForApplicationBoxes(ctx, uint64(10), uint64(1000), "page-2").
			Return(models.BoxesResponse{Boxes: []models.BoxDescriptor{{Name: []byte("c")}}}, nil),
	)
	tm.indexer.EXPECT().LookupApplicationBoxByIDAndName(ctx, uint64(10), []byte("a")).
		Return(models.Box{Name: []byte("a"), Value: []byte("1")}, nil)
	tm.indexer.EXPECT().LookupApplicationBoxByIDAndName(ctx, uint64(10), []byte("b")).
		Return(models.Box{}, errors.New("HTTP 404: box not found"))
	tm.indexer.EXPECT().LookupApplicationBoxByIDAndName(ctx, uint64(10), []byte("c")).
		Return(models.Box{Name: []byte("c"), Value: []byte("3")}, nil)

	boxes, err := tm.ledger.ReadBoxes(ctx, 10)
	require.NoError(t, err)
	assert.Equal(t, []ledger.Box{
		{Name: []byte("a"), Value: []byte("1")},
		{Name: []byte("c"), Value: []byte("3")},
	}, boxes)
}

func TestAlgorandLedger_ReadBoxes_Transient(t *testing.T) {
	tm := setupTestLedger(t, "")
	ctx := context.Background()

	tm.indexer.EXPECT().SearchForApplicationBoxes(ctx, uint64(10), uint64(1000), "").
		Return(models.BoxesResponse{}, errors.New("connection reset by peer")).MinTimes(1)

	_, err := tm.ledger.ReadBoxes(ctx, 10)
	assert.ErrorIs(t, err, domain.ErrLedgerTransient)
}

func TestAlgorandLedger_ReadBox(t *testing.T) {
	tm := setupTestLedger(t, "")
	ctx := context.Background()

	tm.algod.EXPECT().GetApplicationBoxByName(ctx, uint64(10), []byte("found")).
		Return(models.Box{Value: []byte("v")}, nil)
	tm.algod.EXPECT().GetApplicationBoxByName(ctx, uint64(10), []byte("missing")).
		Return(models.Box{}, errors.New("HTTP 404: box not found"))

	value, err := tm.ledger.ReadBox(ctx, 10, []byte("found"))
	require.NoError(t, err)
	assert.Equal(t, []byte("v"), value)

	_, err = tm.ledger.ReadBox(ctx, 10, []byte("missing"))
	assert.ErrorIs(t, err, domain.ErrBoxNotFound)
}

func TestAlgorandLedger_GlobalUint(t *testing.T) {
	tm := setupTestLedger(t, "")
	ctx := context.Background()

	app := models.Application{
		Params: models.ApplicationParams{
			GlobalState: []models.TealKeyValue{
				{Key: base64.StdEncoding.EncodeToString([]byte("other")), Value: models.TealValue{Type: 2, Uint: 1}},
				{Key: base64.StdEncoding.EncodeToString([]byte("assetID")), Value: models.TealValue{Type: 2, Uint: 555}},
			},
		},
	}
	tm.algod.EXPECT().GetApplicationByID(ctx, uint64(20)).Return(app, nil).Times(2)

	assetID, err := tm.ledger.GlobalUint(ctx, 20, domain.ASSET_ID_GLOBAL_KEY)
	require.NoError(t, err)
	assert.Equal(t, uint64(555), assetID)

	_, err = tm.ledger.GlobalUint(ctx, 20, "missing")
	assert.ErrorIs(t, err, domain.ErrEventNotFound)
}

func TestAlgorandLedger_AssetBalance(t *testing.T) {
	tm := setupTestLedger(t, "")
	ctx := context.Background()

	tm.algod.EXPECT().AccountAssetInformation(ctx, "HOLDER", uint64(5)).
		Return(models.AccountAssetResponse{AssetHolding: models.AssetHolding{Amount: 1}}, nil)
	tm.algod.EXPECT().AccountAssetInformation(ctx, "NOT_OPTED_IN", uint64(5)).
		Return(models.AccountAssetResponse{}, errors.New("HTTP 404: account asset info not found"))

	balance, err := tm.ledger.AssetBalance(ctx, "HOLDER", 5)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), balance)

	balance, err = tm.ledger.AssetBalance(ctx, "NOT_OPTED_IN", 5)
	require.NoError(t, err)
	assert.Zero(t, balance)
}

func TestAlgorandLedger_Throttle(t *testing.T) {
	ctrl := gomock.NewController(t)
	algod := mocks.NewMockAlgodClient(ctrl)
	indexer := mocks.NewMockIndexerClient(ctrl)
	throttle := mocks.NewMockThrottle(ctrl)
	ctx := context.Background()

	l, err := ledger.NewAlgorandLedger(algod, indexer, ledger.Config{
		MaxRetryElapsed: time.Millisecond,
		Throttle:        throttle,
	})
	require.NoError(t, err)

	t.Run("paces reads per node", func(t *testing.T) {
		gomock.InOrder(
			throttle.EXPECT().Wait(ctx, ledger.AlgodNode).Return(nil),
			algod.EXPECT().AccountAssetInformation(ctx, "HOLDER", uint64(5)).
				Return(models.AccountAssetResponse{AssetHolding: models.AssetHolding{Amount: 1}}, nil),
		)

		balance, err := l.AssetBalance(ctx, "HOLDER", 5)
		require.NoError(t, err)
		assert.Equal(t, uint64(1), balance)
	})

	t.Run("gives up without calling the node", func(t *testing.T) {
		throttle.EXPECT().Wait(ctx, ledger.IndexerNode).Return(context.DeadlineExceeded)

		_, err := l.ReadBoxes(ctx, 42)
		assert.ErrorIs(t, err, domain.ErrLedgerTransient)
	})
}

func TestAlgorandLedger_TransferAsset(t *testing.T) {
	organizer := crypto.GenerateAccount()
	mn, err := mnemonic.FromPrivateKey(organizer.PrivateKey)
	require.NoError(t, err)
	receiver := crypto.GenerateAccount()

	tm := setupTestLedger(t, mn)
	ctx := context.Background()
	assert.Equal(t, organizer.Address.String(), tm.ledger.OrganizerAddress())

	tm.algod.EXPECT().SuggestedParams(ctx).Return(types.SuggestedParams{
		Fee:             1000,
		FlatFee:         true,
		MinFee:          1000,
		GenesisID:       "testnet-v1.0",
		GenesisHash:     make([]byte, 32),
		FirstRoundValid: 100,
		LastRoundValid:  1100,
	}, nil)
	var sent types.SignedTxn
	tm.algod.EXPECT().SendRawTransaction(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, raw []byte) (string, error) {
			require.NoError(t, msgpack.Decode(raw, &sent))
			return "server-tx-id", nil
		})

	lease := [32]byte{1, 2, 3}
	txID, err := tm.ledger.TransferAsset(ctx, ledger.Transfer{
		AssetID:  5,
		Receiver: receiver.Address.String(),
		Amount:   domain.TICKET_TRANSFER_AMOUNT,
		Lease:    lease,
	})
	require.NoError(t, err)
	assert.Len(t, txID, 52)
	assert.Equal(t, lease, sent.Txn.Lease)
	assert.Equal(t, types.MicroAlgos(1000), sent.Txn.Fee)
	assert.Equal(t, types.AssetIndex(5), sent.Txn.XferAsset)
}

func TestAlgorandLedger_TransferAsset_Errors(t *testing.T) {
	t.Run("no organizer", func(t *testing.T) {
		tm := setupTestLedger(t, "")

		_, err := tm.ledger.TransferAsset(context.Background(), ledger.Transfer{AssetID: 5, Amount: 1})
		assert.ErrorIs(t, err, domain.ErrConfiguration)
	})

	t.Run("submission failure is transient", func(t *testing.T) {
		organizer := crypto.GenerateAccount()
		mn, err := mnemonic.FromPrivateKey(organizer.PrivateKey)
		require.NoError(t, err)

		tm := setupTestLedger(t, mn)
		ctx := context.Background()

		tm.algod.EXPECT().SuggestedParams(ctx).Return(types.SuggestedParams{
			Fee:             1000,
			FlatFee:         true,
			GenesisHash:     make([]byte, 32),
			FirstRoundValid: 1,
			LastRoundValid:  1000,
		}, nil)
		tm.algod.EXPECT().SendRawTransaction(ctx, gomock.Any()).Return("", errors.New("network unreachable"))

		_, err = tm.ledger.TransferAsset(ctx, ledger.Transfer{AssetID: 5, Receiver: crypto.GenerateAccount().Address.String(), Amount: 1})
		assert.ErrorIs(t, err, domain.ErrLedgerTransient)
	})

	t.Run("lease conflict means a transfer is in flight", func(t *testing.T) {
		organizer := crypto.GenerateAccount()
		mn, err := mnemonic.FromPrivateKey(organizer.PrivateKey)
		require.NoError(t, err)

		tm := setupTestLedger(t, mn)
		ctx := context.Background()

		tm.algod.EXPECT().SuggestedParams(ctx).Return(types.SuggestedParams{
			Fee:             0,
			MinFee:          1000,
			GenesisHash:     make([]byte, 32),
			FirstRoundValid: 1,
			LastRoundValid:  1000,
		}, nil)
		tm.algod.EXPECT().SendRawTransaction(ctx, gomock.Any()).
			Return("", errors.New("HTTP 400: TransactionPool.Remember: transaction XYZ using an overlapping lease"))

		_, err = tm.ledger.TransferAsset(ctx, ledger.Transfer{
			AssetID:  5,
			Receiver: crypto.GenerateAccount().Address.String(),
			Amount:   1,
			Lease:    [32]byte{9},
		})
		assert.ErrorIs(t, err, domain.ErrTransferInFlight)
		assert.ErrorIs(t, err, domain.ErrLedgerTransient)
	})

	t.Run("invalid mnemonic", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		_, err := ledger.NewAlgorandLedger(mocks.NewMockAlgodClient(ctrl), mocks.NewMockIndexerClient(ctrl), ledger.Config{
			OrganizerMnemonic: "not a mnemonic",
		})
		assert.ErrorIs(t, err, domain.ErrConfiguration)
	})
}

func TestAlgorandLedger_WaitForConfirmation(t *testing.T) {
	tm := setupTestLedger(t, "")
	ctx := context.Background()

	tm.algod.EXPECT().WaitForConfirmation(ctx, "TX1", uint64(4)).
		Return(models.PendingTransactionInfoResponse{ConfirmedRound: 1234}, nil)
	tm.algod.EXPECT().WaitForConfirmation(ctx, "TX2", uint64(4)).
		Return(models.PendingTransactionInfoResponse{}, errors.New("Wait for transaction id TX2 timed out"))
	tm.algod.EXPECT().WaitForConfirmation(ctx, "TX3", uint64(4)).
		Return(models.PendingTransactionInfoResponse{PoolError: "overspend"}, nil)
	tm.algod.EXPECT().WaitForConfirmation(ctx, "TX4", uint64(4)).
		Return(models.PendingTransactionInfoResponse{PoolError: "overspend"}, errors.New("Transaction rejected: overspend"))
	tm.algod.EXPECT().WaitForConfirmation(ctx, "TX5", uint64(4)).
		Return(models.PendingTransactionInfoResponse{}, errors.New("connection reset by peer"))

	confirmation, err := tm.ledger.WaitForConfirmation(ctx, "TX1", 0)
	require.NoError(t, err)
	assert.Equal(t, ledger.Confirmation{TxID: "TX1", ConfirmedRound: 1234}, confirmation)

	_, err = tm.ledger.WaitForConfirmation(ctx, "TX2", 4)
	assert.ErrorIs(t, err, domain.ErrConfirmationTimeout)
	assert.ErrorIs(t, err, domain.ErrLedgerTransient)

	_, err = tm.ledger.WaitForConfirmation(ctx, "TX3", 4)
	assert.ErrorIs(t, err, domain.ErrTransferRejected)
	assert.NotErrorIs(t, err, domain.ErrLedgerTransient)

	// the node reports a pool rejection as an error alongside the pool error
	_, err = tm.ledger.WaitForConfirmation(ctx, "TX4", 4)
	assert.ErrorIs(t, err, domain.ErrTransferRejected)
	assert.NotErrorIs(t, err, domain.ErrLedgerTransient)
	assert.ErrorContains(t, err, "overspend")

	_, err = tm.ledger.WaitForConfirmation(ctx, "TX5", 4)
	assert.ErrorIs(t, err, domain.ErrLedgerTransient)
	assert.NotErrorIs(t, err, domain.ErrConfirmationTimeout)
}

func TestAlgorandLedger_TransactionStatus(t *testing.T) {
	tests := []struct {
		name     string
		info     models.PendingTransactionInfoResponse
		err      error
		expected ledger.TxStatus
	}{
		{
			name:     "confirmed",
			info:     models.PendingTransactionInfoResponse{ConfirmedRound: 88},
			expected: ledger.TxStatus{TxID: "TX", State: ledger.TxConfirmed, ConfirmedRound: 88},
		},
		{
			name:     "still in the pool",
			info:     models.PendingTransactionInfoResponse{PoolError: ""},
			expected: ledger.TxStatus{TxID: "TX", State: ledger.TxPending},
		},
		{
			name:     "kicked out of the pool",
			info:     models.PendingTransactionInfoResponse{PoolError: "txn dead: round 1200 outside of 100--1100"},
			expected: ledger.TxStatus{TxID: "TX", State: ledger.TxRejected, PoolError: "txn dead: round 1200 outside of 100--1100"},
		},
		{
			name:     "no longer tracked",
			err:      errors.New("HTTP 404: txn does not exist"),
			expected: ledger.TxStatus{TxID: "TX", State: ledger.TxUnknown},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tm := setupTestLedger(t, "")
			ctx := context.Background()

			tm.algod.EXPECT().PendingTransactionInformation(ctx, "TX").Return(tt.info, tt.err)

			status, err := tm.ledger.TransactionStatus(ctx, "TX")
			require.NoError(t, err)
			assert.Equal(t, tt.expected, status)
		})
	}

	t.Run("node down is transient", func(t *testing.T) {
		tm := setupTestLedger(t, "")
		ctx := context.Background()

		tm.algod.EXPECT().PendingTransactionInformation(ctx, "TX").
			Return(models.PendingTransactionInfoResponse{}, errors.New("connection refused")).MinTimes(1)

		_, err := tm.ledger.TransactionStatus(ctx, "TX")
		assert.ErrorIs(t, err, domain.ErrLedgerTransient)
	})
}

func TestEventDirectory(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockLedger := mocks.NewMockLedger(ctrl)
	clock := mocks.NewMockClock(ctrl)
	clock.EXPECT().Now().Return(time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)).AnyTimes()
	ctx := context.Background()
	creator := crypto.GenerateAccount()

	mockLedger.EXPECT().ReadBoxes(gomock.Any(), uint64(99)).Return([]ledger.Box{
		{Name: []byte("e9"), Value: encodeEventConfig(t, 9, "Later", creator.Address, 10, 10, 2)},
		{Name: []byte("junk"), Value: []byte("not a tuple")},
		{Name: []byte("e7"), Value: encodeEventConfig(t, 7, "Demo Con", creator.Address, 100, 1, 1)},
	}, nil).Times(1)

	dir := ledger.NewEventDirectory(mockLedger, 99, ledger.DirectoryConfig{}, clock)

	events, err := dir.List(ctx)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, uint64(7), events[0].EventID)
	assert.Equal(t, uint64(9), events[1].EventID)
	assert.False(t, events[1].HasCapacity())

	event, err := dir.Get(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, "Demo Con", event.Name)

	_, err = dir.Get(ctx, 8)
	assert.ErrorIs(t, err, domain.ErrEventNotFound)

	_, err = ledger.NewEventDirectory(mockLedger, 0, ledger.DirectoryConfig{}, clock).List(ctx)
	assert.ErrorIs(t, err, domain.ErrConfiguration)
}

func TestEventDirectory_Cache(t *testing.T) {
	creator := crypto.GenerateAccount()
	start := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	registry := func(registered uint64) []ledger.Box {
		return []ledger.Box{{Name: []byte("e7"), Value: encodeEventConfig(t, 7, "Demo Con", creator.Address, 100, registered, 1)}}
	}
	config := ledger.DirectoryConfig{TTL: 30 * time.Second, StaleWindow: 5 * time.Minute}

	setup := func(t *testing.T) (*mocks.MockLedger, *time.Time, ledger.EventDirectory) {
		ctrl := gomock.NewController(t)
		mockLedger := mocks.NewMockLedger(ctrl)
		clock := mocks.NewMockClock(ctrl)
		now := start
		clock.EXPECT().Now().DoAndReturn(func() time.Time { return now }).AnyTimes()
		return mockLedger, &now, ledger.NewEventDirectory(mockLedger, 99, config, clock)
	}

	t.Run("reuses a read within the ttl", func(t *testing.T) {
		mockLedger, now, dir := setup(t)
		ctx := context.Background()

		mockLedger.EXPECT().ReadBoxes(gomock.Any(), uint64(99)).Return(registry(1), nil).Times(1)

		_, err := dir.Get(ctx, 7)
		require.NoError(t, err)
		*now = now.Add(29 * time.Second)
		event, err := dir.Get(ctx, 7)
		require.NoError(t, err)
		assert.Equal(t, uint64(1), event.RegisteredCount)
	})

	t.Run("refreshes after the ttl", func(t *testing.T) {
		mockLedger, now, dir := setup(t)
		ctx := context.Background()

		gomock.InOrder(
			mockLedger.EXPECT().ReadBoxes(gomock.Any(), uint64(99)).Return(registry(1), nil),
			mockLedger.EXPECT().ReadBoxes(gomock.Any(), uint64(99)).Return(registry(2), nil),
		)

		_, err := dir.Get(ctx, 7)
		require.NoError(t, err)
		*now = now.Add(31 * time.Second)
		event, err := dir.Get(ctx, 7)
		require.NoError(t, err)
		assert.Equal(t, uint64(2), event.RegisteredCount)
	})

	t.Run("serves stale data while the ledger is down", func(t *testing.T) {
		mockLedger, now, dir := setup(t)
		ctx := context.Background()

		gomock.InOrder(
			mockLedger.EXPECT().ReadBoxes(gomock.Any(), uint64(99)).Return(registry(1), nil),
			mockLedger.EXPECT().ReadBoxes(gomock.Any(), uint64(99)).Return(nil, domain.ErrLedgerTransient).Times(2),
		)

		_, err := dir.Get(ctx, 7)
		require.NoError(t, err)

		*now = now.Add(time.Minute)
		event, err := dir.Get(ctx, 7)
		require.NoError(t, err)
		assert.Equal(t, uint64(1), event.RegisteredCount)

		*now = now.Add(5 * time.Minute)
		_, err = dir.Get(ctx, 7)
		assert.ErrorIs(t, err, domain.ErrLedgerTransient)
	})

	t.Run("fresh reads bypass the cache", func(t *testing.T) {
		mockLedger, _, dir := setup(t)
		ctx := context.Background()

		gomock.InOrder(
			mockLedger.EXPECT().ReadBoxes(gomock.Any(), uint64(99)).Return(registry(1), nil),
			mockLedger.EXPECT().ReadBoxes(gomock.Any(), uint64(99)).Return(registry(100), nil),
			mockLedger.EXPECT().ReadBoxes(gomock.Any(), uint64(99)).Return(nil, domain.ErrLedgerTransient),
		)

		_, err := dir.Get(ctx, 7)
		require.NoError(t, err)

		event, err := dir.GetFresh(ctx, 7)
		require.NoError(t, err)
		assert.False(t, event.HasCapacity())

		// the fresh read refreshed the cache
		event, err = dir.Get(ctx, 7)
		require.NoError(t, err)
		assert.Equal(t, uint64(100), event.RegisteredCount)

		_, err = dir.GetFresh(ctx, 7)
		assert.ErrorIs(t, err, domain.ErrLedgerTransient)
	})

	t.Run("one caller cancelling does not fail the read", func(t *testing.T) {
		mockLedger, _, dir := setup(t)

		cancelled, cancel := context.WithCancel(context.Background())
		cancel()

		release := make(chan struct{})
		mockLedger.EXPECT().ReadBoxes(gomock.Any(), uint64(99)).
			DoAndReturn(func(ctx context.Context, _ uint64) ([]ledger.Box, error) {
				<-release
				assert.NoError(t, ctx.Err())
				return registry(1), nil
			})

		_, err := dir.Get(cancelled, 7)
		assert.ErrorIs(t, err, context.Canceled)
		close(release)

		// the next caller joins or reuses the same read
		event, err := dir.Get(context.Background(), 7)
		require.NoError(t, err)
		assert.Equal(t, "Demo Con", event.Name)
	})
}
