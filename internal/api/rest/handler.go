package rest

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/chainpass/ticketing/internal/adapter"
	"github.com/chainpass/ticketing/internal/api/middleware"
	"github.com/chainpass/ticketing/internal/api/shared/dto"
	"github.com/chainpass/ticketing/internal/checkin"
	"github.com/chainpass/ticketing/internal/domain"
	"github.com/chainpass/ticketing/internal/ledger"
	"github.com/chainpass/ticketing/internal/logger"
	"github.com/chainpass/ticketing/internal/notification"
	"github.com/chainpass/ticketing/internal/qrcode"
	"github.com/chainpass/ticketing/internal/registration"
	"github.com/chainpass/ticketing/internal/store"
	"github.com/chainpass/ticketing/internal/ticket"
)

// Handler defines the interface for REST API handlers
// This interface allows for easy mocking and testing
//
//go:generate mockgen -source=handler.go -destination=../../mocks/api_handler.go -package=mocks -mock_names=Handler=MockAPIHandler
type Handler interface {
	// ListEvents lists events from the on-chain registry
	// GET /api/v1/events
	ListEvents(c *gin.Context)

	// GetEvent retrieves one event
	// GET /api/v1/events/:eventId
	GetEvent(c *gin.Context)

	// SubmitRegistration requests a ticket for an event
	// POST /api/v1/events/:eventId/registrations
	SubmitRegistration(c *gin.Context)

	// GetLatestRequest retrieves the most recent request of a wallet
	// GET /api/v1/events/:eventId/registrations/latest?wallet=<address>
	GetLatestRequest(c *gin.Context)

	// GetTicket issues a signed QR ticket for an approved request
	// GET /api/v1/events/:eventId/ticket?wallet=<address>
	GetTicket(c *gin.Context)

	// ListRequests lists requests of an event for organizers
	// GET /api/v1/events/:eventId/registrations?status=<status1>,<status2>&wallet=<address>&limit=<limit>&offset=<offset>
	ListRequests(c *gin.Context)

	// ApproveRequests approves a batch of requests in order
	// POST /api/v1/registrations/approve
	ApproveRequests(c *gin.Context)

	// RejectRequests rejects a batch of requests in order
	// POST /api/v1/registrations/reject
	RejectRequests(c *gin.Context)

	// UpdateNotes replaces the admin notes of a request
	// PATCH /api/v1/registrations/:requestId/notes
	UpdateNotes(c *gin.Context)

	// Reconcile re-checks ticket ownership of an event's live requests
	// POST /api/v1/events/:eventId/reconcile
	Reconcile(c *gin.Context)

	// SignTicket signs an organizer supplied payload
	// POST /api/v1/tickets/sign
	SignTicket(c *gin.Context)

	// GetPublicKeys lists the keys tickets verify against
	// GET /api/v1/tickets/public-keys
	GetPublicKeys(c *gin.Context)

	// SendCustomEmail sends an organizer written email
	// POST /api/v1/notifications/custom
	SendCustomEmail(c *gin.Context)

	// OpenCheckinSession starts a check-in session for an event
	// POST /api/v1/events/:eventId/checkin/sessions
	OpenCheckinSession(c *gin.Context)

	// GetCheckinSession describes a check-in session
	// GET /api/v1/events/:eventId/checkin/sessions/:sessionId
	GetCheckinSession(c *gin.Context)

	// ScanTicket offers a camera read to a check-in session
	// POST /api/v1/events/:eventId/checkin/sessions/:sessionId/scan
	ScanTicket(c *gin.Context)

	// ResetCheckinSession re-arms the scanner of a session
	// POST /api/v1/events/:eventId/checkin/sessions/:sessionId/reset
	ResetCheckinSession(c *gin.Context)

	// RefreshCheckinSession reloads the registrants of a session
	// POST /api/v1/events/:eventId/checkin/sessions/:sessionId/refresh
	RefreshCheckinSession(c *gin.Context)

	// CloseCheckinSession ends a check-in session
	// DELETE /api/v1/events/:eventId/checkin/sessions/:sessionId
	CloseCheckinSession(c *gin.Context)

	// HealthCheck returns the health status of the API
	// GET /health
	HealthCheck(c *gin.Context)
}

// Dependencies are the services the handler serves
type Dependencies struct {
	Registration registration.Service
	Sessions     checkin.SessionManager
	Directory    ledger.EventDirectory
	Signer       ticket.Signer
	Verifier     ticket.Verifier
	Codec        qrcode.Codec
	Mailer       notification.Mailer
	Clock        adapter.Clock
}

// handler implements the Handler interface
type handler struct {
	debug       bool
	ipfsGateway string
	deps        Dependencies
}

// NewHandler creates a new REST API handler
func NewHandler(debug bool, ipfsGateway string, deps Dependencies) Handler {
	return &handler{
		debug:       debug,
		ipfsGateway: ipfsGateway,
		deps:        deps,
	}
}

func (h *handler) ListEvents(c *gin.Context) {
	events, err := h.deps.Directory.List(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to list events")
		return
	}

	resp := dto.EventListResponse{Events: make([]dto.EventResponse, 0, len(events))}
	for _, e := range events {
		resp.Events = append(resp.Events, dto.MapEventToDTO(e, h.ipfsGateway))
	}

	c.JSON(http.StatusOK, resp)
}

func (h *handler) GetEvent(c *gin.Context) {
	eventID, err := parseUintParam(c, "eventId")
	if err != nil {
		respondBadRequest(c, "Invalid event ID", err.Error())
		return
	}

	event, err := h.deps.Directory.Get(c.Request.Context(), eventID)
	if err != nil {
		respondError(c, err, "Failed to get event")
		return
	}

	c.JSON(http.StatusOK, dto.MapEventToDTO(event, h.ipfsGateway))
}

func (h *handler) SubmitRegistration(c *gin.Context) {
	eventID, err := parseUintParam(c, "eventId")
	if err != nil {
		respondBadRequest(c, "Invalid event ID", err.Error())
		return
	}

	var req dto.SubmitRegistrationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request body", err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		respondError(c, err, "Invalid request body")
		return
	}

	result, err := h.deps.Registration.Submit(c.Request.Context(), registration.SubmitInput{
		EventID:       eventID,
		WalletAddress: req.WalletAddress,
		Email:         req.Email,
	})
	if err != nil {
		respondError(c, err, "Failed to submit registration", zap.Uint64("event_id", eventID))
		return
	}

	status := http.StatusOK
	if result.Created {
		status = http.StatusCreated
	}

	c.JSON(status, dto.SubmitRegistrationResponse{
		Request: dto.MapRequestToDTO(result.Request),
		Created: result.Created,
	})
}

func (h *handler) GetLatestRequest(c *gin.Context) {
	eventID, err := parseUintParam(c, "eventId")
	if err != nil {
		respondBadRequest(c, "Invalid event ID", err.Error())
		return
	}

	var query WalletQueryParams
	if err := c.ShouldBindQuery(&query); err != nil {
		respondValidationError(c, "wallet is required")
		return
	}

	request, err := h.deps.Registration.LatestRequest(c.Request.Context(), eventID, query.Wallet)
	if err != nil {
		respondError(c, err, "Registration request not found")
		return
	}

	c.JSON(http.StatusOK, dto.MapRequestToDTO(request))
}

func (h *handler) GetTicket(c *gin.Context) {
	eventID, err := parseUintParam(c, "eventId")
	if err != nil {
		respondBadRequest(c, "Invalid event ID", err.Error())
		return
	}

	var query WalletQueryParams
	if err := c.ShouldBindQuery(&query); err != nil {
		respondValidationError(c, "wallet is required")
		return
	}

	issued, err := h.deps.Registration.IssueTicket(c.Request.Context(), eventID, query.Wallet)
	if err != nil {
		respondError(c, err, "Failed to issue ticket", zap.Uint64("event_id", eventID))
		return
	}

	c.JSON(http.StatusOK, dto.TicketResponse{
		Success:   true,
		QRCode:    issued.QRCode,
		Payload:   issued.Ticket.Payload,
		Signature: issued.Ticket.Signature,
	})
}

func (h *handler) ListRequests(c *gin.Context) {
	eventID, err := parseUintParam(c, "eventId")
	if err != nil {
		respondBadRequest(c, "Invalid event ID", err.Error())
		return
	}

	query, err := ParseListRequestsQuery(c)
	if err != nil {
		respondValidationError(c, err.Error())
		return
	}

	statuses, err := query.RequestStatuses()
	if err != nil {
		respondValidationError(c, err.Error())
		return
	}

	filter := store.RegistrationRequestFilter{
		EventID:  &eventID,
		Statuses: statuses,
		Limit:    query.Limit,
		Offset:   query.Offset,
	}
	if query.Wallet != "" {
		wallet, err := registration.ValidateWallet(query.Wallet)
		if err != nil {
			respondError(c, err, "Invalid wallet")
			return
		}
		filter.WalletAddress = wallet
	}

	requests, total, err := h.deps.Registration.ListRequests(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err, "Failed to list registration requests")
		return
	}

	resp := dto.RegistrationRequestListResponse{
		Requests: make([]dto.RegistrationRequestResponse, 0, len(requests)),
		Total:    total,
		Offset:   query.Offset,
	}
	for _, r := range requests {
		resp.Requests = append(resp.Requests, dto.MapRequestWithEmailToDTO(r))
	}

	c.JSON(http.StatusOK, resp)
}

func (h *handler) ApproveRequests(c *gin.Context) {
	h.review(c, "approve", h.deps.Registration.Approve)
}

func (h *handler) RejectRequests(c *gin.Context) {
	h.review(c, "reject", h.deps.Registration.Reject)
}

// review runs a batch action. The response is 200 even when some items failed;
// each outcome carries its own result.
func (h *handler) review(c *gin.Context, action string, run func(ctx context.Context, ids []uint64) []registration.Outcome) {
	var req dto.ReviewRequestsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request body", err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		respondError(c, err, "Invalid request body")
		return
	}

	outcomes := run(c.Request.Context(), req.RequestIDs)
	resp := dto.NewReviewResponse(outcomes)

	logger.InfoCtx(c.Request.Context(), "Reviewed registration requests",
		zap.String("action", action),
		zap.Int("succeeded", resp.Succeeded),
		zap.Int("failed", resp.Failed),
		zap.String("reviewer", reviewer(c)),
	)

	c.JSON(http.StatusOK, resp)
}

func (h *handler) UpdateNotes(c *gin.Context) {
	requestID, err := parseUintParam(c, "requestId")
	if err != nil {
		respondBadRequest(c, "Invalid request ID", err.Error())
		return
	}

	var req dto.UpdateNotesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request body", err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		respondError(c, err, "Invalid request body")
		return
	}

	request, err := h.deps.Registration.UpdateNotes(c.Request.Context(), requestID, req.Notes)
	if err != nil {
		respondError(c, err, "Failed to update notes", zap.Uint64("request_id", requestID))
		return
	}

	c.JSON(http.StatusOK, dto.MapRequestWithEmailToDTO(request))
}

func (h *handler) Reconcile(c *gin.Context) {
	eventID, err := parseUintParam(c, "eventId")
	if err != nil {
		respondBadRequest(c, "Invalid event ID", err.Error())
		return
	}

	report, err := h.deps.Registration.Reconcile(c.Request.Context(), &eventID)
	if err != nil {
		respondError(c, err, "Failed to reconcile registrations", zap.Uint64("event_id", eventID))
		return
	}

	c.JSON(http.StatusOK, report)
}

func (h *handler) SignTicket(c *gin.Context) {
	var req dto.SignTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request body", err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		respondError(c, err, "Invalid request body")
		return
	}

	payload := ticket.NewPayload(req.AssetID, strings.TrimSpace(req.UserAddress), req.EventID, req.EventName, h.deps.Clock.Now())
	signed, err := h.deps.Signer.Issue(payload)
	if err != nil {
		respondError(c, err, "Failed to sign ticket")
		return
	}

	qr, err := h.deps.Codec.EncodeDataURL(signed)
	if err != nil {
		respondError(c, err, "Failed to render QR code")
		return
	}

	c.JSON(http.StatusOK, dto.TicketResponse{
		Success:   true,
		QRCode:    qr,
		Payload:   signed.Payload,
		Signature: signed.Signature,
	})
}

func (h *handler) GetPublicKeys(c *gin.Context) {
	c.JSON(http.StatusOK, dto.PublicKeysResponse{
		Current: h.deps.Signer.PublicKey(),
		Keys:    h.deps.Verifier.PublicKeys(),
	})
}

func (h *handler) SendCustomEmail(c *gin.Context) {
	var req dto.CustomEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request body", err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		respondError(c, err, "Invalid request body")
		return
	}

	id, err := h.deps.Mailer.SendCustomEmail(c.Request.Context(), req.To, req.Subject, req.HTML)
	if err != nil {
		respondError(c, err, "Failed to send email", zap.Int("recipients", len(req.To)))
		return
	}

	c.JSON(http.StatusOK, dto.EmailSentResponse{Success: true, MessageID: id})
}

func (h *handler) OpenCheckinSession(c *gin.Context) {
	eventID, err := parseUintParam(c, "eventId")
	if err != nil {
		respondBadRequest(c, "Invalid event ID", err.Error())
		return
	}

	info, err := h.deps.Sessions.Open(c.Request.Context(), eventID)
	if err != nil {
		respondError(c, err, "Failed to open check-in session", zap.Uint64("event_id", eventID))
		return
	}

	c.JSON(http.StatusCreated, info)
}

func (h *handler) GetCheckinSession(c *gin.Context) {
	info, ok := h.sessionForEvent(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, info)
}

func (h *handler) ScanTicket(c *gin.Context) {
	info, ok := h.sessionForEvent(c)
	if !ok {
		return
	}

	var req dto.ScanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request body", err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		respondError(c, err, "Invalid request body")
		return
	}

	result, err := h.deps.Sessions.Scan(c.Request.Context(), info.ID, req.Data)
	if err != nil {
		respondError(c, err, "Failed to scan ticket", zap.String("session_id", info.ID))
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *handler) ResetCheckinSession(c *gin.Context) {
	info, ok := h.sessionForEvent(c)
	if !ok {
		return
	}

	info, err := h.deps.Sessions.Reset(info.ID)
	if err != nil {
		respondError(c, err, "Failed to reset check-in session")
		return
	}

	c.JSON(http.StatusOK, info)
}

func (h *handler) RefreshCheckinSession(c *gin.Context) {
	info, ok := h.sessionForEvent(c)
	if !ok {
		return
	}

	info, err := h.deps.Sessions.Refresh(info.ID)
	if err != nil {
		respondError(c, err, "Failed to refresh check-in session")
		return
	}

	c.JSON(http.StatusOK, info)
}

func (h *handler) CloseCheckinSession(c *gin.Context) {
	info, ok := h.sessionForEvent(c)
	if !ok {
		return
	}

	if err := h.deps.Sessions.Close(info.ID); err != nil {
		respondError(c, err, "Failed to close check-in session")
		return
	}

	c.Status(http.StatusNoContent)
}

// sessionForEvent resolves the session of the path, answering 404 when it belongs to another event
func (h *handler) sessionForEvent(c *gin.Context) (*checkin.SessionInfo, bool) {
	eventID, err := parseUintParam(c, "eventId")
	if err != nil {
		respondBadRequest(c, "Invalid event ID", err.Error())
		return nil, false
	}

	sessionID := c.Param("sessionId")
	info, err := h.deps.Sessions.Get(sessionID)
	if err == nil && info.EventID != eventID {
		err = fmt.Errorf("%w: %s is not a session of event %d", domain.ErrSessionNotFound, sessionID, eventID)
	}
	if err != nil {
		respondError(c, err, "Check-in session not found")
		return nil, false
	}

	return info, true
}

// HealthCheck returns the health status of the API
func (h *handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, dto.HealthResponse{Status: "ok"})
}

// reviewer names the authenticated organizer for audit logs
func reviewer(c *gin.Context) string {
	if subject := c.GetString(middleware.AUTH_SUBJECT_KEY); subject != "" {
		return subject
	}
	return c.GetString(middleware.AUTH_TYPE_KEY)
}
