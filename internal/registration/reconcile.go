package registration

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/chainpass/ticketing/internal/domain"
	"github.com/chainpass/ticketing/internal/logger"
	"github.com/chainpass/ticketing/internal/store"
)

// LastReconciliationKey is the key-value entry holding the time of the last completed reconciliation
const LastReconciliationKey = "registration.last_reconciliation"

const reconcilePageSize = 100

// Finding is the result of comparing one request with the ledger
type Finding string

const (
	// FindingInSync means the store and the ledger agree
	FindingInSync Finding = "in_sync"
	// FindingAwaitingReview is a pending request whose wallet holds no ticket
	FindingAwaitingReview Finding = "awaiting_review"
	// FindingPromoted is a pending request whose wallet already held the ticket. It was approved.
	FindingPromoted Finding = "promoted"
	// FindingMissingAsset is an approved request whose wallet holds no ticket. It is only reported.
	FindingMissingAsset Finding = "missing_asset"
	// FindingError means the request could not be checked
	FindingError Finding = "error"
)

// ReconcileReport summarizes one reconciliation run
type ReconcileReport struct {
	Checked      int             `json:"checked"`
	Findings     map[Finding]int `json:"findings"`
	MissingAsset []uint64        `json:"missingAsset"`
	Promoted     []uint64        `json:"promoted"`
	StartedAt    time.Time       `json:"startedAt"`
	FinishedAt   time.Time       `json:"finishedAt"`
}

// Add folds one finding into the report
func (r *ReconcileReport) Add(requestID uint64, finding Finding) {
	if r.Findings == nil {
		r.Findings = make(map[Finding]int)
	}
	r.Checked++
	r.Findings[finding]++

	switch finding {
	case FindingMissingAsset:
		r.MissingAsset = append(r.MissingAsset, requestID)
	case FindingPromoted:
		r.Promoted = append(r.Promoted, requestID)
	}
}

func (s *service) CheckOwnership(ctx context.Context, request *store.RegistrationRequestWithEmail) (Finding, error) {
	if request.Status == domain.RequestStatusRejected {
		return FindingInSync, nil
	}

	event, err := s.directory.Get(ctx, request.EventID)
	if err != nil {
		return FindingError, err
	}

	assetID, err := s.requestAssetID(ctx, request.AssetID, event)
	if err != nil {
		return FindingError, err
	}

	balance, err := s.ledger.AssetBalance(ctx, request.WalletAddress, assetID)
	if err != nil {
		return FindingError, err
	}

	var finding Finding
	switch {
	case request.Status == domain.RequestStatusApproved && balance > 0:
		finding = FindingInSync
	case request.Status == domain.RequestStatusApproved:
		// the holder may have moved the ticket on, an organizer decides what to do
		finding = FindingMissingAsset
		logger.WarnCtx(ctx, "Approved request without ticket on chain",
			zap.Uint64("request_id", request.RequestID),
			zap.String("wallet", request.WalletAddress),
			zap.Uint64("asset_id", assetID))
	case balance > 0:
		outcome, err := s.markApproved(ctx, request, assetID, request.TransferTxID, Outcome{
			RequestID:     request.RequestID,
			EventID:       request.EventID,
			WalletAddress: request.WalletAddress,
			AssetID:       assetID,
		})
		if err != nil {
			return FindingError, err
		}
		finding = FindingPromoted
		if outcome.Result == ResultAlreadyApproved {
			finding = FindingInSync
		}
	default:
		finding = FindingAwaitingReview
	}

	s.metrics.Reconciled(string(finding))
	return finding, nil
}

func (s *service) Reconcile(ctx context.Context, eventID *uint64) (*ReconcileReport, error) {
	report := &ReconcileReport{
		Findings:  make(map[Finding]int),
		StartedAt: s.clock.Now().UTC(),
	}

	filter := store.RegistrationRequestFilter{
		EventID:  eventID,
		Statuses: []domain.RequestStatus{domain.RequestStatusPending, domain.RequestStatusApproved},
		Limit:    reconcilePageSize,
	}

	for {
		requests, total, err := s.store.ListRegistrationRequests(ctx, filter)
		if err != nil {
			return nil, fmt.Errorf("failed to list registration requests: %w", err)
		}

		for _, request := range requests {
			if err := ctx.Err(); err != nil {
				return nil, err
			}

			finding, err := s.CheckOwnership(ctx, request)
			if err != nil {
				logger.WarnCtx(ctx, "Failed to reconcile request",
					zap.Uint64("request_id", request.RequestID),
					zap.Error(err))
				s.metrics.Reconciled(string(FindingError))
			}
			report.Add(request.RequestID, finding)
		}

		filter.Offset += uint64(len(requests))
		if len(requests) == 0 || filter.Offset >= total {
			break
		}
	}

	report.FinishedAt = s.clock.Now().UTC()

	if err := s.store.SetKeyValue(ctx, LastReconciliationKey, report.FinishedAt.Format(time.RFC3339)); err != nil {
		logger.WarnCtx(ctx, "Failed to record reconciliation time", zap.Error(err))
	}

	logger.InfoCtx(ctx, "Reconciliation finished",
		zap.Int("checked", report.Checked),
		zap.Int("promoted", len(report.Promoted)),
		zap.Int("missing_asset", len(report.MissingAsset)))

	return report, nil
}
