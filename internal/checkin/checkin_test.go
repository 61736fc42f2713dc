package checkin_test

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chainpass/ticketing/internal/adapter"
	"github.com/chainpass/ticketing/internal/checkin"
	"github.com/chainpass/ticketing/internal/domain"
	"github.com/chainpass/ticketing/internal/ledger"
	"github.com/chainpass/ticketing/internal/logger"
	"github.com/chainpass/ticketing/internal/metrics"
	"github.com/chainpass/ticketing/internal/mocks"
	"github.com/chainpass/ticketing/internal/qrcode"
	"github.com/chainpass/ticketing/internal/registrants"
	"github.com/chainpass/ticketing/internal/store"
	"github.com/chainpass/ticketing/internal/store/schema"
	"github.com/chainpass/ticketing/internal/ticket"
)

func TestMain(m *testing.M) {
	if err := logger.Initialize(logger.Config{Debug: false}); err != nil {
		panic(err)
	}

	os.Exit(m.Run())
}

const (
	eventID     = uint64(7)
	ticketAppID = uint64(739825314)
	walletA     = "7ZUECA7HFLZTXENRV24SHLU4AVPUTMTTDUFUBNBD64C73F3UHRTHAIOF6Q"
	walletB     = "HZ57J3K46JIJXILONBBZOHX6BKPXEM2VVXNRFSUED6DKFD5ZD24PMJ3MVA"
)

var scannedAt = time.Date(2024, 6, 1, 18, 0, 0, 0, time.UTC)

type testVerifierMocks struct {
	cache     *mocks.MockRegistrantCache
	store     *mocks.MockStore
	publisher *mocks.MockPublisher
	clock     *mocks.MockClock
	signer    ticket.Signer
	verifier  checkin.Verifier
}

func setupTestVerifier(t *testing.T, mode domain.RedemptionMode) *testVerifierMocks {
	ctrl := gomock.NewController(t)

	encoder := ticket.NewEncoder(adapter.NewJCS())
	seed, public, err := ticket.GenerateKey()
	require.NoError(t, err)
	signer, err := ticket.NewSigner(seed, encoder)
	require.NoError(t, err)
	signatures, err := ticket.NewVerifier([]string{public}, encoder)
	require.NoError(t, err)

	tm := &testVerifierMocks{
		cache:     mocks.NewMockRegistrantCache(ctrl),
		store:     mocks.NewMockStore(ctrl),
		publisher: mocks.NewMockPublisher(ctrl),
		clock:     mocks.NewMockClock(ctrl),
		signer:    signer,
	}
	tm.clock.EXPECT().Now().Return(scannedAt).AnyTimes()

	tm.verifier = checkin.NewVerifier(
		qrcode.NewCodec(adapter.NewJCS(), 0),
		signatures,
		tm.cache,
		tm.store,
		tm.publisher,
		tm.clock,
		metrics.NewRecorder(prometheus.NewRegistry()),
		checkin.Config{EventID: eventID, SessionID: "session-1", RedemptionMode: mode},
	)

	return tm
}

func (tm *testVerifierMocks) signedQR(t *testing.T, wallet string) string {
	signed, err := tm.signer.Issue(ticket.NewPayload(42, wallet, ticket.StringEventID("7"), "Demo Con", scannedAt.Add(-time.Hour)))
	require.NoError(t, err)

	raw, err := json.Marshal(signed)
	require.NoError(t, err)
	return string(raw)
}

func legacyQR(wallet string, signature string) string {
	fields := map[string]interface{}{
		"assetId":     42,
		"userAddress": wallet,
		"eventId":     7,
		"eventName":   "Demo Con",
		"timestamp":   "2024-06-01T17:00:00.000Z",
	}
	if signature != "" {
		fields["signature"] = signature
	}
	raw, _ := json.Marshal(fields)
	return string(raw)
}

func TestScan_MalformedPayload(t *testing.T) {
	tm := setupTestVerifier(t, domain.RedemptionModeFlag)

	// no registrant lookup and no store write for garbage
	decision := tm.verifier.Scan(context.Background(), "not json")

	assert.Equal(t, domain.ScanStatusError, decision.Status)
	assert.False(t, decision.Admitted)
	assert.Equal(t, checkin.ReasonMalformedPayload, decision.Reason)
	assert.Contains(t, decision.Message, "Invalid QR code format")
	assert.Equal(t, eventID, decision.EventID)
}

func TestScan_MissingAddress(t *testing.T) {
	tm := setupTestVerifier(t, domain.RedemptionModeFlag)

	decision := tm.verifier.Scan(context.Background(),
		`{"assetId":42,"eventId":"7","eventName":"Demo Con","timestamp":"2024-06-01T17:00:00.000Z"}`)

	assert.Equal(t, domain.ScanStatusError, decision.Status)
	assert.Equal(t, checkin.ReasonMissingAddress, decision.Reason)
}

func TestScan_VerifiedRegistrant(t *testing.T) {
	tm := setupTestVerifier(t, domain.RedemptionModeFlag)
	ctx := context.Background()

	tm.cache.EXPECT().Lookup(ctx, strings.ToLower(walletA)).
		Return(domain.Registrant{Address: walletA, Email: "ada@example.com"}, registrants.SourceCache, true, nil)
	tm.store.EXPECT().CreateCheckIn(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, input store.CreateCheckInInput) (*schema.CheckIn, bool, error) {
			assert.Equal(t, eventID, input.EventID)
			assert.Equal(t, walletA, input.WalletAddress)
			assert.Equal(t, uint64(42), input.AssetID)
			assert.Equal(t, domain.SignatureStatusVerified, input.SignatureStatus)
			assert.Equal(t, "session-1", input.SessionID)
			assert.Contains(t, string(input.ScanPayload), `"format":"current"`)
			return &schema.CheckIn{ID: 1, CheckedInAt: scannedAt}, true, nil
		})
	tm.publisher.EXPECT().PublishTicketEvent(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, event *domain.TicketEvent) error {
			assert.Equal(t, domain.TicketEventTicketCheckedIn, event.Type)
			return nil
		})

	// addresses compare case-insensitively
	decision := tm.verifier.Scan(ctx, tm.signedQR(t, strings.ToLower(walletA)))

	assert.Equal(t, domain.ScanStatusSuccess, decision.Status)
	assert.True(t, decision.Admitted)
	assert.Equal(t, domain.SignatureStatusVerified, decision.Signature)
	assert.Equal(t, registrants.SourceCache, decision.Source)
	assert.Equal(t, walletA, decision.WalletAddress)
	assert.Equal(t, uint64(42), decision.AssetID)
	assert.Contains(t, decision.Message, "Signature verified")
}

func TestScan_TamperedSignatureIsAWarning(t *testing.T) {
	tm := setupTestVerifier(t, domain.RedemptionModeOff)
	ctx := context.Background()

	var signed ticket.SignedTicket
	require.NoError(t, json.Unmarshal([]byte(tm.signedQR(t, walletA)), &signed))
	signed.Payload.EventName = "Other Con"
	raw, err := json.Marshal(signed)
	require.NoError(t, err)

	tm.cache.EXPECT().Lookup(ctx, walletA).
		Return(domain.Registrant{Address: walletA}, registrants.SourceLedger, true, nil)
	tm.publisher.EXPECT().PublishTicketEvent(ctx, gomock.Any()).Return(nil)

	decision := tm.verifier.Scan(ctx, string(raw))

	assert.Equal(t, domain.ScanStatusWarning, decision.Status)
	assert.True(t, decision.Admitted)
	assert.Equal(t, domain.SignatureStatusUnverified, decision.Signature)
	assert.Equal(t, checkin.ReasonSignatureInvalid, decision.Reason)
	assert.Contains(t, decision.Message, "proceed with caution")
}

func TestScan_LegacyUnsignedTicket(t *testing.T) {
	tm := setupTestVerifier(t, domain.RedemptionModeOff)
	ctx := context.Background()

	tm.cache.EXPECT().Lookup(ctx, walletA).
		Return(domain.Registrant{Address: walletA}, registrants.SourceCache, true, nil)
	tm.publisher.EXPECT().PublishTicketEvent(ctx, gomock.Any()).Return(errors.New("broker down"))

	decision := tm.verifier.Scan(ctx, legacyQR(walletA, ""))

	assert.Equal(t, domain.ScanStatusWarning, decision.Status)
	assert.True(t, decision.Admitted)
	assert.Equal(t, domain.SignatureStatusUnsigned, decision.Signature)
	assert.Equal(t, ticket.FormatLegacy, decision.Format)
}

func TestScan_NotRegistered(t *testing.T) {
	tm := setupTestVerifier(t, domain.RedemptionModeFlag)
	ctx := context.Background()

	tm.cache.EXPECT().Lookup(ctx, walletB).Return(domain.Registrant{}, registrants.Source(""), false, nil)

	decision := tm.verifier.Scan(ctx, tm.signedQR(t, walletB))

	assert.Equal(t, domain.ScanStatusError, decision.Status)
	assert.False(t, decision.Admitted)
	assert.Equal(t, checkin.ReasonNotRegistered, decision.Reason)
	// the signature is still reported
	assert.Equal(t, domain.SignatureStatusVerified, decision.Signature)
}

func TestScan_LookupFailure(t *testing.T) {
	tm := setupTestVerifier(t, domain.RedemptionModeFlag)
	ctx := context.Background()

	tm.cache.EXPECT().Lookup(ctx, walletA).Return(domain.Registrant{}, registrants.Source(""), false, domain.ErrLedgerTransient)

	decision := tm.verifier.Scan(ctx, tm.signedQR(t, walletA))

	assert.Equal(t, domain.ScanStatusError, decision.Status)
	assert.Equal(t, checkin.ReasonLookupFailed, decision.Reason)
}

func TestScan_WrongEvent(t *testing.T) {
	tm := setupTestVerifier(t, domain.RedemptionModeFlag)

	signed, err := tm.signer.Issue(ticket.NewPayload(42, walletA, ticket.NumericEventID(8), "Other Con", scannedAt))
	require.NoError(t, err)
	raw, err := json.Marshal(signed)
	require.NoError(t, err)

	decision := tm.verifier.Scan(context.Background(), string(raw))

	assert.Equal(t, domain.ScanStatusError, decision.Status)
	assert.Equal(t, checkin.ReasonWrongEvent, decision.Reason)
	assert.Equal(t, "8", decision.TicketEventID)
}

func TestScan_Redemption(t *testing.T) {
	first := scannedAt.Add(-10 * time.Minute)

	tests := []struct {
		name     string
		mode     domain.RedemptionMode
		status   domain.ScanStatus
		admitted bool
	}{
		{name: "flag", mode: domain.RedemptionModeFlag, status: domain.ScanStatusWarning, admitted: true},
		{name: "reject", mode: domain.RedemptionModeReject, status: domain.ScanStatusError, admitted: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tm := setupTestVerifier(t, tt.mode)
			ctx := context.Background()

			tm.cache.EXPECT().Lookup(ctx, walletA).
				Return(domain.Registrant{Address: walletA}, registrants.SourceCache, true, nil)
			tm.store.EXPECT().CreateCheckIn(ctx, gomock.Any()).
				Return(&schema.CheckIn{ID: 1, CheckedInAt: first}, false, nil)

			decision := tm.verifier.Scan(ctx, tm.signedQR(t, walletA))

			assert.Equal(t, tt.status, decision.Status)
			assert.Equal(t, tt.admitted, decision.Admitted)
			assert.Equal(t, checkin.ReasonAlreadyCheckedIn, decision.Reason)
			require.NotNil(t, decision.FirstCheckedInAt)
			assert.True(t, first.Equal(*decision.FirstCheckedInAt))
			assert.Contains(t, decision.Message, first.Format(time.RFC3339))
		})
	}
}

func TestScan_RedemptionStoreFailureStillAdmits(t *testing.T) {
	tm := setupTestVerifier(t, domain.RedemptionModeReject)
	ctx := context.Background()

	tm.cache.EXPECT().Lookup(ctx, walletA).
		Return(domain.Registrant{Address: walletA}, registrants.SourceCache, true, nil)
	tm.store.EXPECT().CreateCheckIn(ctx, gomock.Any()).Return(nil, false, errors.New("connection refused"))

	decision := tm.verifier.Scan(ctx, tm.signedQR(t, walletA))

	assert.True(t, decision.Admitted)
	assert.Equal(t, domain.ScanStatusWarning, decision.Status)
	assert.Equal(t, checkin.ReasonRedemptionFailure, decision.Reason)
}

type testSessionMocks struct {
	directory *mocks.MockEventDirectory
	ledger    *mocks.MockLedger
	store     *mocks.MockStore
	publisher *mocks.MockPublisher
	clock     *mocks.MockClock
	manager   checkin.SessionManager

	mu  sync.Mutex
	now time.Time
}

func (tm *testSessionMocks) advance(d time.Duration) {
	tm.mu.Lock()
	defer tm.mu.Unlock()
	tm.now = tm.now.Add(d)
}

func setupTestSessions(t *testing.T) *testSessionMocks {
	ctrl := gomock.NewController(t)

	tm := &testSessionMocks{
		directory: mocks.NewMockEventDirectory(ctrl),
		ledger:    mocks.NewMockLedger(ctrl),
		store:     mocks.NewMockStore(ctrl),
		publisher: mocks.NewMockPublisher(ctrl),
		clock:     mocks.NewMockClock(ctrl),
		now:       scannedAt,
	}
	tm.clock.EXPECT().Now().DoAndReturn(func() time.Time {
		tm.mu.Lock()
		defer tm.mu.Unlock()
		return tm.now
	}).AnyTimes()
	tm.clock.EXPECT().Since(gomock.Any()).DoAndReturn(func(t0 time.Time) time.Duration {
		tm.mu.Lock()
		defer tm.mu.Unlock()
		return tm.now.Sub(t0)
	}).AnyTimes()

	encoder := ticket.NewEncoder(adapter.NewJCS())
	_, public, err := ticket.GenerateKey()
	require.NoError(t, err)
	signatures, err := ticket.NewVerifier([]string{public}, encoder)
	require.NoError(t, err)

	tm.manager = checkin.NewSessionManager(
		tm.directory,
		tm.ledger,
		qrcode.NewCodec(adapter.NewJCS(), 0),
		signatures,
		tm.store,
		tm.publisher,
		tm.clock,
		metrics.NewRecorder(prometheus.NewRegistry()),
		checkin.SessionConfig{
			ScanCooldown:   2 * time.Second,
			IdleTimeout:    time.Hour,
			RedemptionMode: domain.RedemptionModeOff,
		},
	)

	return tm
}

func TestSessions_ScanLifecycle(t *testing.T) {
	tm := setupTestSessions(t)
	ctx := context.Background()

	tm.directory.EXPECT().Get(ctx, eventID).Return(domain.EventConfig{EventID: eventID, Name: "Demo Con", TicketAppID: ticketAppID}, nil)
	tm.ledger.EXPECT().ReadBoxes(gomock.Any(), ticketAppID).Return([]ledger.Box{}, nil).Times(1)

	info, err := tm.manager.Open(ctx, eventID)
	require.NoError(t, err)
	assert.NotEmpty(t, info.ID)
	assert.True(t, info.Scanner.Armed)
	assert.Equal(t, domain.RedemptionModeOff, info.Mode)

	// a malformed read is rejected and pauses the scanner without touching the ledger or the store
	result, err := tm.manager.Scan(ctx, info.ID, "not json")
	require.NoError(t, err)
	require.NotNil(t, result.Decision)
	assert.Equal(t, checkin.ReasonMalformedPayload, result.Decision.Reason)
	assert.False(t, result.Scanner.Armed)

	// the same code read again during the cooldown is dropped
	result, err = tm.manager.Scan(ctx, info.ID, "not json")
	require.NoError(t, err)
	assert.True(t, result.Ignored)
	assert.Nil(t, result.Decision)

	// the scanner resumes on its own after the cooldown
	tm.advance(2 * time.Second)
	result, err = tm.manager.Scan(ctx, info.ID, "still not json")
	require.NoError(t, err)
	assert.False(t, result.Ignored)

	// reset re-arms immediately and clears the last result
	reset, err := tm.manager.Reset(info.ID)
	require.NoError(t, err)
	assert.True(t, reset.Scanner.Armed)
	assert.Nil(t, reset.LastDecision)

	require.NoError(t, tm.manager.Close(info.ID))
	_, err = tm.manager.Get(info.ID)
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
	assert.ErrorIs(t, tm.manager.Close(info.ID), domain.ErrSessionNotFound)
}

func TestSessions_Refresh(t *testing.T) {
	tm := setupTestSessions(t)
	ctx := context.Background()

	tm.directory.EXPECT().Get(ctx, eventID).Return(domain.EventConfig{EventID: eventID, TicketAppID: ticketAppID}, nil)
	tm.ledger.EXPECT().ReadBoxes(gomock.Any(), ticketAppID).Return([]ledger.Box{}, nil).Times(2)

	info, err := tm.manager.Open(ctx, eventID)
	require.NoError(t, err)

	_, err = tm.manager.Refresh(info.ID)
	require.NoError(t, err)
}

func TestSessions_IdleExpiry(t *testing.T) {
	tm := setupTestSessions(t)
	ctx := context.Background()

	tm.directory.EXPECT().Get(ctx, eventID).Return(domain.EventConfig{EventID: eventID, TicketAppID: ticketAppID}, nil)
	tm.ledger.EXPECT().ReadBoxes(gomock.Any(), ticketAppID).Return([]ledger.Box{}, nil)

	info, err := tm.manager.Open(ctx, eventID)
	require.NoError(t, err)

	tm.advance(time.Hour)

	_, err = tm.manager.Scan(ctx, info.ID, "not json")
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}

func TestSessions_OpenUnknownEvent(t *testing.T) {
	tm := setupTestSessions(t)
	ctx := context.Background()

	tm.directory.EXPECT().Get(ctx, uint64(99)).Return(domain.EventConfig{}, domain.ErrEventNotFound)

	_, err := tm.manager.Open(ctx, 99)
	assert.ErrorIs(t, err, domain.ErrEventNotFound)
}
