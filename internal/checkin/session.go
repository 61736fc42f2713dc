package checkin

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/chainpass/ticketing/internal/adapter"
	"github.com/chainpass/ticketing/internal/domain"
	"github.com/chainpass/ticketing/internal/ledger"
	"github.com/chainpass/ticketing/internal/logger"
	"github.com/chainpass/ticketing/internal/messaging"
	"github.com/chainpass/ticketing/internal/metrics"
	"github.com/chainpass/ticketing/internal/qrcode"
	"github.com/chainpass/ticketing/internal/registrants"
	"github.com/chainpass/ticketing/internal/store"
	"github.com/chainpass/ticketing/internal/ticket"
)

// DefaultSessionIdleTimeout is how long a session lives without scans
const DefaultSessionIdleTimeout = 2 * time.Hour

// SessionInfo describes an open check-in session
type SessionInfo struct {
	ID           string                `json:"id"`
	EventID      uint64                `json:"eventId"`
	EventName    string                `json:"eventName"`
	TicketAppID  uint64                `json:"ticketAppId"`
	Registrants  int                   `json:"registrants"`
	Scanner      qrcode.ScannerState   `json:"scanner"`
	LastDecision *Decision             `json:"lastDecision,omitempty"`
	Mode         domain.RedemptionMode `json:"redemptionMode"`
	OpenedAt     time.Time             `json:"openedAt"`
	LastActiveAt time.Time             `json:"lastActiveAt"`
}

// ScanResult is the answer to one camera read
type ScanResult struct {
	// Ignored is true when the scanner was cooling down and the read was dropped
	Ignored  bool                `json:"ignored"`
	Decision *Decision           `json:"decision,omitempty"`
	Scanner  qrcode.ScannerState `json:"scanner"`
}

// SessionManager owns the check-in sessions of a process. A session pairs a
// debouncing scanner with the registrant cache of one event.
//
//go:generate mockgen -source=session.go -destination=../mocks/checkin_sessions.go -package=mocks -mock_names=SessionManager=MockSessionManager
type SessionManager interface {
	// Open starts a session for eventID and warms its registrant cache
	Open(ctx context.Context, eventID uint64) (*SessionInfo, error)

	// Get describes a session
	Get(sessionID string) (*SessionInfo, error)

	// Scan offers a camera read to the session
	Scan(ctx context.Context, sessionID string, raw string) (*ScanResult, error)

	// Reset clears the last result and re-arms the scanner
	Reset(sessionID string) (*SessionInfo, error)

	// Refresh drops the cached registrants and reloads them from the ledger
	Refresh(sessionID string) (*SessionInfo, error)

	// Close ends a session
	Close(sessionID string) error

	// Run expires idle sessions until ctx is done
	Run(ctx context.Context)
}

// SessionConfig holds configuration for check-in sessions
type SessionConfig struct {
	RegistrantCacheTTL time.Duration
	ScanCooldown       time.Duration
	IdleTimeout        time.Duration
	RedemptionMode     domain.RedemptionMode
}

type session struct {
	id       string
	event    domain.EventConfig
	openedAt time.Time
	scanner  *qrcode.Scanner
	cache    registrants.Cache
	verifier Verifier

	mu           sync.Mutex
	lastActiveAt time.Time
	lastDecision *Decision
}

type sessionManager struct {
	directory  ledger.EventDirectory
	ledger     ledger.Ledger
	codec      qrcode.Codec
	signatures ticket.Verifier
	store      store.Store
	publisher  messaging.Publisher
	clock      adapter.Clock
	metrics    *metrics.Recorder
	config     SessionConfig

	mu       sync.RWMutex
	sessions map[string]*session
}

// NewSessionManager creates a session manager with no open sessions
func NewSessionManager(
	directory ledger.EventDirectory,
	l ledger.Ledger,
	codec qrcode.Codec,
	signatures ticket.Verifier,
	store store.Store,
	publisher messaging.Publisher,
	clock adapter.Clock,
	recorder *metrics.Recorder,
	config SessionConfig,
) SessionManager {
	if config.IdleTimeout <= 0 {
		config.IdleTimeout = DefaultSessionIdleTimeout
	}
	if !domain.IsValidRedemptionMode(config.RedemptionMode) {
		config.RedemptionMode = domain.RedemptionModeFlag
	}

	return &sessionManager{
		directory:  directory,
		ledger:     l,
		codec:      codec,
		signatures: signatures,
		store:      store,
		publisher:  publisher,
		clock:      clock,
		metrics:    recorder,
		config:     config,
		sessions:   make(map[string]*session),
	}
}

func (m *sessionManager) Open(ctx context.Context, eventID uint64) (*SessionInfo, error) {
	event, err := m.directory.Get(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if event.TicketAppID == 0 {
		return nil, fmt.Errorf("%w: event %d has no ticket application", domain.ErrConfiguration, eventID)
	}

	id := uuid.NewString()
	now := m.clock.Now()

	cache := registrants.NewCache(m.ledger, m.clock, registrants.Config{
		AppID: event.TicketAppID,
		TTL:   m.config.RegistrantCacheTTL,
	})
	if _, err := cache.Registrants(ctx); err != nil {
		// scans fall back to box lookups until a reload succeeds
		logger.WarnCtx(ctx, "Failed to warm registrant cache",
			zap.String("session_id", id),
			zap.Uint64("event_id", eventID),
			zap.Error(err))
	}

	verifier := NewVerifier(m.codec, m.signatures, cache, m.store, m.publisher, m.clock, m.metrics, Config{
		EventID:        eventID,
		SessionID:      id,
		RedemptionMode: m.config.RedemptionMode,
	})

	s := &session{
		id:           id,
		event:        event,
		openedAt:     now,
		scanner:      qrcode.NewScanner(m.clock, m.config.ScanCooldown),
		cache:        cache,
		verifier:     verifier,
		lastActiveAt: now,
	}

	m.mu.Lock()
	m.sessions[id] = s
	m.mu.Unlock()
	m.metrics.SessionOpened()

	logger.InfoCtx(ctx, "Opened check-in session",
		zap.String("session_id", id),
		zap.Uint64("event_id", eventID),
		zap.Uint64("ticket_app_id", event.TicketAppID))

	return m.describe(ctx, s), nil
}

func (m *sessionManager) Get(sessionID string) (*SessionInfo, error) {
	s, err := m.session(sessionID)
	if err != nil {
		return nil, err
	}
	return m.describe(context.Background(), s), nil
}

func (m *sessionManager) Scan(ctx context.Context, sessionID string, raw string) (*ScanResult, error) {
	s, err := m.session(sessionID)
	if err != nil {
		return nil, err
	}
	s.touch(m.clock.Now())

	if !s.scanner.Detect(raw) {
		return &ScanResult{Ignored: true, Scanner: s.scanner.State()}, nil
	}

	decision := s.verifier.Scan(ctx, raw)

	s.mu.Lock()
	s.lastDecision = &decision
	s.mu.Unlock()

	return &ScanResult{Decision: &decision, Scanner: s.scanner.State()}, nil
}

func (m *sessionManager) Reset(sessionID string) (*SessionInfo, error) {
	s, err := m.session(sessionID)
	if err != nil {
		return nil, err
	}
	s.touch(m.clock.Now())

	s.scanner.Reset()
	s.mu.Lock()
	s.lastDecision = nil
	s.mu.Unlock()

	return m.describe(context.Background(), s), nil
}

func (m *sessionManager) Refresh(sessionID string) (*SessionInfo, error) {
	s, err := m.session(sessionID)
	if err != nil {
		return nil, err
	}
	s.touch(m.clock.Now())
	s.cache.Invalidate()

	logger.Info("Invalidated registrant cache", zap.String("session_id", sessionID))

	return m.describe(context.Background(), s), nil
}

func (m *sessionManager) Close(sessionID string) error {
	m.mu.Lock()
	_, ok := m.sessions[sessionID]
	delete(m.sessions, sessionID)
	m.mu.Unlock()

	if !ok {
		return fmt.Errorf("%w: %s", domain.ErrSessionNotFound, sessionID)
	}

	m.metrics.SessionClosed()
	logger.Info("Closed check-in session", zap.String("session_id", sessionID))
	return nil
}

func (m *sessionManager) Run(ctx context.Context) {
	interval := m.config.IdleTimeout / 4
	if interval < time.Second {
		interval = time.Second
	}

	for {
		select {
		case <-ctx.Done():
			return
		case <-m.clock.After(interval):
			if n := m.expireIdle(); n > 0 {
				logger.Info("Expired idle check-in sessions", zap.Int("count", n))
			}
		}
	}
}

// expireIdle removes sessions idle for longer than the idle timeout
func (m *sessionManager) expireIdle() int {
	now := m.clock.Now()

	m.mu.Lock()
	defer m.mu.Unlock()

	expired := 0
	for id, s := range m.sessions {
		if s.idleSince(now) >= m.config.IdleTimeout {
			delete(m.sessions, id)
			m.metrics.SessionClosed()
			expired++
		}
	}
	return expired
}

// session returns an open session. An idle session found here is expired on the spot.
func (m *sessionManager) session(sessionID string) (*session, error) {
	m.mu.RLock()
	s, ok := m.sessions[sessionID]
	m.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrSessionNotFound, sessionID)
	}

	if s.idleSince(m.clock.Now()) >= m.config.IdleTimeout {
		m.mu.Lock()
		if _, still := m.sessions[sessionID]; still {
			delete(m.sessions, sessionID)
			m.metrics.SessionClosed()
		}
		m.mu.Unlock()
		return nil, fmt.Errorf("%w: %s expired", domain.ErrSessionNotFound, sessionID)
	}

	return s, nil
}

func (m *sessionManager) describe(ctx context.Context, s *session) *SessionInfo {
	info := &SessionInfo{
		ID:          s.id,
		EventID:     s.event.EventID,
		EventName:   s.event.Name,
		TicketAppID: s.event.TicketAppID,
		Scanner:     s.scanner.State(),
		Mode:        m.config.RedemptionMode,
		OpenedAt:    s.openedAt,
	}

	if list, err := s.cache.Registrants(ctx); err == nil {
		info.Registrants = len(list)
	}

	s.mu.Lock()
	info.LastActiveAt = s.lastActiveAt
	info.LastDecision = s.lastDecision
	s.mu.Unlock()

	return info
}

func (s *session) touch(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastActiveAt = now
}

func (s *session) idleSince(now time.Time) time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return now.Sub(s.lastActiveAt)
}
