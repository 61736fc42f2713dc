package registration

import (
	"context"
	"crypto/sha256"
	"fmt"
	"strconv"

	"go.uber.org/zap"

	"github.com/chainpass/ticketing/internal/domain"
	"github.com/chainpass/ticketing/internal/ledger"
	"github.com/chainpass/ticketing/internal/logger"
	"github.com/chainpass/ticketing/internal/notification"
	"github.com/chainpass/ticketing/internal/store"
)

const (
	actionApprove = "approve"
	actionReject  = "reject"
)

func (s *service) Approve(ctx context.Context, requestIDs []uint64) []Outcome {
	ids := uniqueIDs(requestIDs)
	outcomes := make([]Outcome, 0, len(ids))

	transferred := false
	for _, id := range ids {
		if err := ctx.Err(); err != nil {
			outcomes = append(outcomes, Outcome{RequestID: id}.fail(err, "approval batch cancelled"))
			continue
		}

		// transfers are spaced out so the organizer account is not flooded
		if transferred && s.config.SubmissionDelay > 0 {
			if err := s.clock.Sleep(ctx, s.config.SubmissionDelay); err != nil {
				outcomes = append(outcomes, Outcome{RequestID: id}.fail(err, "approval batch cancelled"))
				continue
			}
		}

		outcome, didTransfer := s.approveOnce(ctx, id)
		transferred = transferred || didTransfer
		s.metrics.Reviewed(actionApprove, string(outcome.Result))
		outcomes = append(outcomes, outcome)
	}

	return outcomes
}

type approval struct {
	outcome     Outcome
	transferred bool
}

// approveOnce runs approveOne for requestID unless it is already running, in
// which case the caller waits for and shares that run's outcome.
func (s *service) approveOnce(ctx context.Context, requestID uint64) (Outcome, bool) {
	v, _, shared := s.approvals.Do(strconv.FormatUint(requestID, 10), func() (interface{}, error) {
		outcome, transferred := s.approveOne(ctx, requestID)
		return approval{outcome: outcome, transferred: transferred}, nil
	})
	if shared {
		logger.DebugCtx(ctx, "Joined running approval", zap.Uint64("request_id", requestID))
	}

	a := v.(approval)
	return a.outcome, a.transferred
}

// approveOne moves one request to approved. The second return value reports
// whether a ledger transfer was submitted.
func (s *service) approveOne(ctx context.Context, requestID uint64) (Outcome, bool) {
	outcome := Outcome{RequestID: requestID}

	request, err := s.store.GetRegistrationRequest(ctx, requestID)
	if err != nil {
		return outcome.fail(err, "failed to load request"), false
	}
	if request == nil {
		return outcome.fail(fmt.Errorf("%w: %d", domain.ErrRequestNotFound, requestID), "request not found"), false
	}

	outcome.EventID = request.EventID
	outcome.WalletAddress = request.WalletAddress
	if request.AssetID != nil {
		outcome.AssetID = *request.AssetID
	}

	switch request.Status {
	case domain.RequestStatusApproved:
		if request.TransferTxID != nil {
			outcome.TxID = *request.TransferTxID
		}
		return outcome.succeed(ResultAlreadyApproved, "request was already approved"), false
	case domain.RequestStatusRejected:
		err := fmt.Errorf("%w: request %d is rejected", domain.ErrInvalidTransition, requestID)
		return outcome.fail(err, "a rejected request cannot be approved"), false
	}

	event, err := s.directory.Get(ctx, request.EventID)
	if err != nil {
		return outcome.fail(err, "failed to load event"), false
	}

	assetID, err := s.requestAssetID(ctx, request.AssetID, event)
	if err != nil {
		return outcome.fail(err, "failed to resolve ticket asset"), false
	}
	outcome.AssetID = assetID

	// an earlier attempt submitted a transfer, follow it up before sending anything
	submitted := request.TransferTxID
	if submitted != nil {
		outcome.TxID = *submitted
		status, err := s.ledger.TransactionStatus(ctx, *submitted)
		if err != nil {
			return outcome.fail(err, "failed to check earlier ticket transfer"), false
		}

		switch status.State {
		case ledger.TxConfirmed:
			logger.InfoCtx(ctx, "Earlier ticket transfer confirmed",
				zap.Uint64("request_id", requestID),
				zap.String("tx_id", status.TxID),
				zap.Uint64("confirmed_round", status.ConfirmedRound))
			outcome, _ = s.markApproved(ctx, request, assetID, submitted, outcome)
			return outcome, false
		case ledger.TxPending:
			err := fmt.Errorf("%w: %s", domain.ErrTransferInFlight, status.TxID)
			return outcome.fail(err, "earlier ticket transfer is still pending, request left pending"), false
		case ledger.TxRejected:
			submitted = nil
			outcome.TxID = ""
		}

		logger.InfoCtx(ctx, "Earlier ticket transfer not confirmed, checking balance",
			zap.Uint64("request_id", requestID),
			zap.String("tx_id", status.TxID),
			zap.String("state", string(status.State)),
			zap.String("pool_error", status.PoolError))
	}

	balance, err := s.ledger.AssetBalance(ctx, request.WalletAddress, assetID)
	if err != nil {
		return outcome.fail(err, "failed to read ticket balance"), false
	}

	// the wallet already holds a ticket, so a transfer would hand out a second seat
	if balance > 0 {
		logger.InfoCtx(ctx, "Requester already holds ticket, approving without transfer",
			zap.Uint64("request_id", requestID),
			zap.Uint64("asset_id", assetID))

		outcome, err = s.markApproved(ctx, request, assetID, submitted, outcome)
		if err != nil {
			return outcome, false
		}
		if outcome.Result == ResultApproved {
			outcome.Result = ResultReconciled
			outcome.Message = "requester already held the ticket"
		}
		return outcome, false
	}

	txID, err := s.transfer(ctx, request.RequestID, request.WalletAddress, assetID)
	if err != nil {
		outcome.TxID = txID
		return outcome.fail(err, "ticket transfer was not confirmed, request left pending"), txID != ""
	}
	outcome.TxID = txID

	outcome, _ = s.markApproved(ctx, request, assetID, &txID, outcome)
	return outcome, true
}

// transfer submits the ticket and waits for it to be confirmed.
// A submitted but unconfirmed transaction is returned with the error so it can be traced.
func (s *service) transfer(ctx context.Context, requestID uint64, wallet string, assetID uint64) (string, error) {
	note := ticketNote(requestID)
	txID, err := s.ledger.TransferAsset(ctx, ledger.Transfer{
		AssetID:  assetID,
		Receiver: wallet,
		Amount:   domain.TICKET_TRANSFER_AMOUNT,
		Note:     []byte(note),
		Lease:    sha256.Sum256([]byte(note)),
	})
	if err != nil {
		return "", fmt.Errorf("failed to submit ticket transfer: %w", err)
	}

	recorded, err := s.store.RecordTransferSubmission(ctx, requestID, assetID, txID)
	if err != nil || !recorded {
		// the lease still keeps a retry from delivering a second ticket
		logger.WarnCtx(ctx, "Ticket transfer submission not recorded",
			zap.Uint64("request_id", requestID),
			zap.String("tx_id", txID),
			zap.Bool("recorded", recorded),
			zap.Error(err))
	}

	start := s.clock.Now()
	confirmation, err := s.ledger.WaitForConfirmation(ctx, txID, s.config.ConfirmationRounds)
	s.metrics.ConfirmationObserved(s.clock.Since(start), err)
	if err != nil {
		logger.WarnCtx(ctx, "Ticket transfer not confirmed",
			zap.Uint64("request_id", requestID),
			zap.String("tx_id", txID),
			zap.Error(err))
		return txID, err
	}

	logger.InfoCtx(ctx, "Ticket transfer confirmed",
		zap.Uint64("request_id", requestID),
		zap.String("tx_id", txID),
		zap.Uint64("confirmed_round", confirmation.ConfirmedRound))

	return txID, nil
}

// ticketNote tags every transfer attempt for one request. Its hash is the
// transfer lease, so only one attempt can confirm while the lease is held.
func ticketNote(requestID uint64) string {
	return "chainpass:ticket:" + strconv.FormatUint(requestID, 10)
}

// markApproved records the approval and runs the side effects of a fresh approval.
// A request approved concurrently by someone else resolves to ResultAlreadyApproved.
func (s *service) markApproved(
	ctx context.Context,
	request *store.RegistrationRequestWithEmail,
	assetID uint64,
	txID *string,
	outcome Outcome,
) (Outcome, error) {
	updated, err := s.store.MarkRegistrationRequestApproved(ctx, store.ApproveRequestInput{
		RequestID:    request.RequestID,
		AssetID:      assetID,
		TransferTxID: txID,
		ReviewedAt:   s.clock.Now(),
	})
	if err != nil {
		// the ledger side is done, the next approve or reconcile will record it
		logger.ErrorCtx(ctx, fmt.Errorf("failed to record approval: %w", err),
			zap.Uint64("request_id", request.RequestID))
		return outcome.fail(err, "ticket delivered but approval was not recorded"), err
	}

	if !updated {
		current, err := s.store.GetRegistrationRequest(ctx, request.RequestID)
		if err != nil {
			return outcome.fail(err, "failed to reload request"), err
		}
		if current != nil && current.Status == domain.RequestStatusApproved {
			return outcome.succeed(ResultAlreadyApproved, "request was approved concurrently"), nil
		}
		err = fmt.Errorf("%w: request %d is no longer pending", domain.ErrInvalidTransition, request.RequestID)
		return outcome.fail(err, "request changed during approval"), err
	}

	s.dispatchTicketEmail(ctx, request, assetID)
	s.publish(ctx, domain.TicketEventRegistrationApproved, &request.RequestID, request.EventID, request.WalletAddress, assetID, outcome.TxID)

	logger.InfoCtx(ctx, "Approved registration request",
		zap.Uint64("request_id", request.RequestID),
		zap.Uint64("event_id", request.EventID))

	return outcome.succeed(ResultApproved, "ticket transferred"), nil
}

// dispatchTicketEmail is best effort. A failure is logged and never undoes the approval.
func (s *service) dispatchTicketEmail(ctx context.Context, request *store.RegistrationRequestWithEmail, assetID uint64) {
	if request.Email == "" {
		logger.WarnCtx(ctx, "Approved request has no email, skipping ticket email",
			zap.Uint64("request_id", request.RequestID))
		return
	}

	emailReq := notification.TicketEmailRequest{
		RequestID:     request.RequestID,
		EventID:       request.EventID,
		WalletAddress: request.WalletAddress,
		Email:         request.Email,
		AssetID:       assetID,
	}
	if event, err := s.directory.Get(ctx, request.EventID); err == nil {
		emailReq.EventName = event.Name
		emailReq.Location = event.Location
		emailReq.StartTime = event.StartTime
	}

	err := s.dispatcher.DispatchTicketEmail(ctx, emailReq)
	s.metrics.EmailDispatched(err)
	if err != nil {
		logger.WarnCtx(ctx, "Failed to dispatch ticket email",
			zap.Uint64("request_id", request.RequestID),
			zap.Error(err))
	}
}

func (s *service) Reject(ctx context.Context, requestIDs []uint64) []Outcome {
	ids := uniqueIDs(requestIDs)
	outcomes := make([]Outcome, 0, len(ids))

	for _, id := range ids {
		outcome := s.rejectOne(ctx, id)
		s.metrics.Reviewed(actionReject, string(outcome.Result))
		outcomes = append(outcomes, outcome)
	}

	return outcomes
}

func (s *service) rejectOne(ctx context.Context, requestID uint64) Outcome {
	outcome := Outcome{RequestID: requestID}

	request, err := s.store.GetRegistrationRequest(ctx, requestID)
	if err != nil {
		return outcome.fail(err, "failed to load request")
	}
	if request == nil {
		return outcome.fail(fmt.Errorf("%w: %d", domain.ErrRequestNotFound, requestID), "request not found")
	}

	outcome.EventID = request.EventID
	outcome.WalletAddress = request.WalletAddress

	switch request.Status {
	case domain.RequestStatusRejected:
		return outcome.succeed(ResultAlreadyRejected, "request was already rejected")
	case domain.RequestStatusApproved:
		err := fmt.Errorf("%w: request %d is approved", domain.ErrInvalidTransition, requestID)
		return outcome.fail(err, "an approved request cannot be rejected")
	}

	updated, err := s.store.MarkRegistrationRequestRejected(ctx, requestID, s.clock.Now())
	if err != nil {
		return outcome.fail(err, "failed to record rejection")
	}
	if !updated {
		current, err := s.store.GetRegistrationRequest(ctx, requestID)
		if err != nil {
			return outcome.fail(err, "failed to reload request")
		}
		if current != nil && current.Status == domain.RequestStatusRejected {
			return outcome.succeed(ResultAlreadyRejected, "request was rejected concurrently")
		}
		err = fmt.Errorf("%w: request %d is no longer pending", domain.ErrInvalidTransition, requestID)
		return outcome.fail(err, "request changed during rejection")
	}

	s.publish(ctx, domain.TicketEventRegistrationRejected, &request.RequestID, request.EventID, request.WalletAddress, 0, "")

	logger.InfoCtx(ctx, "Rejected registration request",
		zap.Uint64("request_id", requestID),
		zap.Uint64("event_id", request.EventID))

	return outcome.succeed(ResultRejected, "request rejected")
}
