package ledger

import (
	"context"
	"crypto/ed25519"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/algorand/go-algorand-sdk/v2/client/v2/common/models"
	"github.com/algorand/go-algorand-sdk/v2/crypto"
	"github.com/algorand/go-algorand-sdk/v2/mnemonic"
	"github.com/algorand/go-algorand-sdk/v2/transaction"
	"github.com/algorand/go-algorand-sdk/v2/types"
	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"

	"github.com/chainpass/ticketing/internal/adapter"
	"github.com/chainpass/ticketing/internal/config"
	"github.com/chainpass/ticketing/internal/domain"
	"github.com/chainpass/ticketing/internal/logger"
	"github.com/chainpass/ticketing/internal/ratelimit"
)

// boxPageSize is the number of box names requested per indexer page
const boxPageSize = 1000

// Throttle node names
const (
	AlgodNode   = "algod"
	IndexerNode = "indexer"
)

// Config holds the ledger client configuration
type Config struct {
	// OrganizerMnemonic is the 25-word mnemonic of the account that distributes tickets.
	// Without it the ledger is read-only and TransferAsset fails with domain.ErrConfiguration.
	OrganizerMnemonic string

	// MaxRetryElapsed bounds retries of a single read
	MaxRetryElapsed time.Duration

	// Throttle paces requests to AlgodNode and IndexerNode. Nil sends them unpaced.
	Throttle ratelimit.Throttle
}

type algorandLedger struct {
	algod     adapter.AlgodClient
	indexer   adapter.IndexerClient
	config    Config
	organizer *crypto.Account
}

// NewAlgorandLedger creates a Ledger backed by an algod node and an indexer
func NewAlgorandLedger(algod adapter.AlgodClient, indexer adapter.IndexerClient, cfg Config) (Ledger, error) {
	l := &algorandLedger{
		algod:   algod,
		indexer: indexer,
		config:  cfg,
	}

	if strings.TrimSpace(cfg.OrganizerMnemonic) != "" {
		sk, err := mnemonic.ToPrivateKey(strings.TrimSpace(cfg.OrganizerMnemonic))
		if err != nil {
			return nil, fmt.Errorf("%w: invalid organizer mnemonic: %v", domain.ErrConfiguration, err)
		}
		account, err := crypto.AccountFromPrivateKey(ed25519.PrivateKey(sk))
		if err != nil {
			return nil, fmt.Errorf("%w: invalid organizer key: %v", domain.ErrConfiguration, err)
		}
		l.organizer = &account
	}

	return l, nil
}

func (l *algorandLedger) OrganizerAddress() string {
	if l.organizer == nil {
		return ""
	}
	return l.organizer.Address.String()
}

func (l *algorandLedger) ReadBoxes(ctx context.Context, appID uint64) ([]Box, error) {
	var names [][]byte
	next := ""
	for {
		var resp models.BoxesResponse
		err := l.retry(ctx, IndexerNode, "search application boxes", func() error {
			var err error
			resp, err = l.indexer.SearchForApplicationBoxes(ctx, appID, boxPageSize, next)
			return err
		})
		if err != nil {
			if errors.Is(err, errNotFound) {
				return nil, fmt.Errorf("%w: application %d", domain.ErrEventNotFound, appID)
			}
			return nil, fmt.Errorf("failed to list boxes of app %d: %w", appID, err)
		}

		for _, d := range resp.Boxes {
			names = append(names, d.Name)
		}
		if resp.NextToken == "" || resp.NextToken == next || len(resp.Boxes) == 0 {
			break
		}
		next = resp.NextToken
	}

	boxes := make([]Box, 0, len(names))
	for _, name := range names {
		var box models.Box
		err := l.retry(ctx, IndexerNode, "lookup application box", func() error {
			var err error
			box, err = l.indexer.LookupApplicationBoxByIDAndName(ctx, appID, name)
			return err
		})
		if errors.Is(err, errNotFound) {
			// deleted between listing and reading
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read box of app %d: %w", appID, err)
		}
		boxes = append(boxes, Box{Name: name, Value: box.Value})
	}

	return boxes, nil
}

func (l *algorandLedger) ReadBox(ctx context.Context, appID uint64, name []byte) ([]byte, error) {
	var value []byte
	err := l.retry(ctx, AlgodNode, "read application box", func() error {
		box, err := l.algod.GetApplicationBoxByName(ctx, appID, name)
		if err != nil {
			return err
		}
		value = box.Value
		return nil
	})
	if err != nil {
		if errors.Is(err, errNotFound) {
			return nil, fmt.Errorf("%w: app %d box %x", domain.ErrBoxNotFound, appID, name)
		}
		return nil, fmt.Errorf("failed to read box of app %d: %w", appID, err)
	}

	return value, nil
}

func (l *algorandLedger) GlobalUint(ctx context.Context, appID uint64, key string) (uint64, error) {
	var value uint64
	found := false
	err := l.retry(ctx, AlgodNode, "read application global state", func() error {
		app, err := l.algod.GetApplicationByID(ctx, appID)
		if err != nil {
			return err
		}
		want := base64.StdEncoding.EncodeToString([]byte(key))
		for _, kv := range app.Params.GlobalState {
			if kv.Key == want {
				value = kv.Value.Uint
				found = true
				return nil
			}
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, errNotFound) {
			return 0, fmt.Errorf("%w: application %d", domain.ErrEventNotFound, appID)
		}
		return 0, fmt.Errorf("failed to read global state of app %d: %w", appID, err)
	}
	if !found {
		return 0, fmt.Errorf("%w: application %d has no global key %q", domain.ErrEventNotFound, appID, key)
	}

	return value, nil
}

func (l *algorandLedger) AssetBalance(ctx context.Context, address string, assetID uint64) (uint64, error) {
	var amount uint64
	err := l.retry(ctx, AlgodNode, "read asset holding", func() error {
		resp, err := l.algod.AccountAssetInformation(ctx, address, assetID)
		if err != nil {
			return err
		}
		amount = resp.AssetHolding.Amount
		return nil
	})
	if err != nil {
		if errors.Is(err, errNotFound) {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to read holding of asset %d: %w", assetID, err)
	}

	return amount, nil
}

func (l *algorandLedger) TransferAsset(ctx context.Context, t Transfer) (string, error) {
	if l.organizer == nil {
		return "", fmt.Errorf("%w: organizer account is not configured", domain.ErrConfiguration)
	}
	if _, err := types.DecodeAddress(t.Receiver); err != nil {
		return "", fmt.Errorf("invalid receiver address %q: %w", t.Receiver, err)
	}

	if err := l.wait(ctx, AlgodNode); err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrLedgerTransient, err)
	}
	params, err := l.algod.SuggestedParams(ctx)
	if err != nil {
		return "", fmt.Errorf("%w: failed to get suggested params: %v", domain.ErrLedgerTransient, err)
	}

	txn, err := transaction.MakeAssetTransferTxn(
		l.organizer.Address.String(),
		t.Receiver,
		t.Amount,
		t.Note,
		params,
		"",
		t.AssetID,
	)
	if err != nil {
		return "", fmt.Errorf("failed to build asset transfer: %w", err)
	}
	if t.Lease != ([32]byte{}) {
		if params.FlatFee {
			txn.AddLeaseWithFlatFee(t.Lease, uint64(txn.Fee))
		} else {
			txn.AddLease(t.Lease, uint64(params.Fee))
		}
	}

	txID, signed, err := crypto.SignTransaction(l.organizer.PrivateKey, txn)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrSigning, err)
	}

	// Submission is never retried here: a lost response could mean the transfer landed
	if err := l.wait(ctx, AlgodNode); err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrLedgerTransient, err)
	}
	if _, err := l.algod.SendRawTransaction(ctx, signed); err != nil {
		if isLeaseConflict(err) {
			return "", fmt.Errorf("%w: %s: %v", domain.ErrTransferInFlight, txID, err)
		}
		return "", fmt.Errorf("%w: failed to submit transaction %s: %v", domain.ErrLedgerTransient, txID, err)
	}

	logger.InfoCtx(ctx, "Submitted asset transfer",
		zap.String("tx_id", txID),
		zap.Uint64("asset_id", t.AssetID),
		zap.String("receiver", t.Receiver),
	)

	return txID, nil
}

func (l *algorandLedger) WaitForConfirmation(ctx context.Context, txID string, maxRounds uint64) (Confirmation, error) {
	if maxRounds == 0 {
		maxRounds = domain.DEFAULT_CONFIRMATION_ROUNDS
	}

	info, err := l.algod.WaitForConfirmation(ctx, txID, maxRounds)
	// the pool drops a rejected transaction for good, waiting again cannot confirm it
	if info.PoolError != "" {
		return Confirmation{}, fmt.Errorf("%w: %s: %s", domain.ErrTransferRejected, txID, info.PoolError)
	}
	if err != nil {
		msg := strings.ToLower(err.Error())
		switch {
		case strings.Contains(msg, "transaction rejected"):
			return Confirmation{}, fmt.Errorf("%w: %s: %v", domain.ErrTransferRejected, txID, err)
		case ctx.Err() == nil && strings.Contains(msg, "timed out"):
			return Confirmation{}, fmt.Errorf("%w: %s after %d rounds", domain.ErrConfirmationTimeout, txID, maxRounds)
		}
		return Confirmation{}, fmt.Errorf("%w: waiting for %s: %v", domain.ErrLedgerTransient, txID, err)
	}

	return Confirmation{TxID: txID, ConfirmedRound: info.ConfirmedRound}, nil
}

func (l *algorandLedger) TransactionStatus(ctx context.Context, txID string) (TxStatus, error) {
	status := TxStatus{TxID: txID}

	var info models.PendingTransactionInfoResponse
	err := l.retry(ctx, AlgodNode, "read pending transaction", func() error {
		var err error
		info, err = l.algod.PendingTransactionInformation(ctx, txID)
		return err
	})
	if err != nil {
		if errors.Is(err, errNotFound) {
			status.State = TxUnknown
			return status, nil
		}
		return status, fmt.Errorf("failed to read transaction %s: %w", txID, err)
	}

	switch {
	case info.ConfirmedRound > 0:
		status.State = TxConfirmed
		status.ConfirmedRound = info.ConfirmedRound
	case info.PoolError != "":
		status.State = TxRejected
		status.PoolError = info.PoolError
	default:
		status.State = TxPending
	}

	return status, nil
}

// wait takes a throttle token for node
func (l *algorandLedger) wait(ctx context.Context, node string) error {
	if l.config.Throttle == nil {
		return nil
	}
	return l.config.Throttle.Wait(ctx, node)
}

// retry runs a read against node with exponential backoff. Not-found answers are final and wrap errNotFound.
func (l *algorandLedger) retry(ctx context.Context, node, op string, fn func() error) error {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 200 * time.Millisecond
	b.MaxInterval = 2 * time.Second
	b.MaxElapsedTime = l.config.MaxRetryElapsed
	if b.MaxElapsedTime <= 0 {
		b.MaxElapsedTime = 10 * time.Second
	}

	var attempts int
	operation := func() error {
		if err := l.wait(ctx, node); err != nil {
			return backoff.Permanent(err)
		}
		err := fn()
		if err != nil && isNotFound(err) {
			return backoff.Permanent(fmt.Errorf("%w: %v", errNotFound, err))
		}
		return err
	}
	notify := func(err error, next time.Duration) {
		attempts++
		logger.WarnCtx(ctx, "Ledger read failed, retrying",
			zap.String("operation", op),
			zap.Error(err),
			zap.Int("attempt", attempts),
			zap.Duration("next_retry_in", next),
		)
	}

	err := backoff.RetryNotify(operation, backoff.WithContext(b, ctx), notify)
	if err != nil {
		if errors.Is(err, errNotFound) {
			return err
		}
		return fmt.Errorf("%w: %s: %v", domain.ErrLedgerTransient, op, err)
	}

	return nil
}

var errNotFound = errors.New("not found on ledger")

// isLeaseConflict reports whether the node refused a transaction because an
// earlier one with the same lease or id is already pending or committed
func isLeaseConflict(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "overlapping lease") || strings.Contains(msg, "already in ledger")
}

// isNotFound reports whether the node or indexer answered 404
func isNotFound(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "404") || strings.Contains(msg, "not found") || strings.Contains(msg, "does not exist")
}

// NewThrottle paces AlgodNode and IndexerNode at the configured rates. A nil redis
// client keeps the budget per process.
func NewThrottle(cfg config.ThrottleConfig, redis adapter.RedisClient, clock adapter.Clock) (ratelimit.Throttle, error) {
	nodes := make(map[string]ratelimit.NodeLimit)
	if cfg.AlgodRequestsPerSecond > 0 {
		nodes[AlgodNode] = ratelimit.NodeLimit{RequestsPerSecond: cfg.AlgodRequestsPerSecond, MaxWait: cfg.MaxWait}
	}
	if cfg.IndexerRequestsPerSecond > 0 {
		nodes[IndexerNode] = ratelimit.NodeLimit{RequestsPerSecond: cfg.IndexerRequestsPerSecond, MaxWait: cfg.MaxWait}
	}

	return ratelimit.NewThrottle(ratelimit.Config{
		Nodes:               nodes,
		HealthCheckInterval: 10 * time.Second,
	}, redis, clock)
}
