package qrcode

import (
	"sync"
	"time"

	"github.com/chainpass/ticketing/internal/adapter"
)

// DefaultScanCooldown is how long a scanner stays paused after accepting a read
const DefaultScanCooldown = 2 * time.Second

// ScannerState is a snapshot of a scanner for operators
type ScannerState struct {
	Armed      bool      `json:"armed"`
	LastRaw    string    `json:"lastRaw,omitempty"`
	DetectedAt time.Time `json:"detectedAt,omitempty"`
	ResumesAt  time.Time `json:"resumesAt,omitempty"`
}

// Scanner debounces a continuous stream of camera reads.
// After a read is accepted it pauses, ignores everything until the cooldown
// elapses, then re-arms on its own. Reset re-arms immediately.
type Scanner struct {
	clock    adapter.Clock
	cooldown time.Duration

	mu         sync.Mutex
	paused     bool
	lastRaw    string
	detectedAt time.Time
}

// NewScanner creates an armed scanner
func NewScanner(clock adapter.Clock, cooldown time.Duration) *Scanner {
	if cooldown <= 0 {
		cooldown = DefaultScanCooldown
	}
	return &Scanner{clock: clock, cooldown: cooldown}
}

// Detect offers a read to the scanner and reports whether it was accepted
func (s *Scanner) Detect(raw string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock.Now()
	s.rearmIfCooledDown(now)
	if s.paused {
		return false
	}

	s.paused = true
	s.lastRaw = raw
	s.detectedAt = now
	return true
}

// Ready reports whether the next read would be accepted
func (s *Scanner) Ready() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.rearmIfCooledDown(s.clock.Now())
	return !s.paused
}

// Reset clears the last result and arms the scanner for a new read
func (s *Scanner) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.paused = false
	s.lastRaw = ""
	s.detectedAt = time.Time{}
}

// State returns a snapshot of the scanner
func (s *Scanner) State() ScannerState {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.rearmIfCooledDown(s.clock.Now())

	state := ScannerState{
		Armed:      !s.paused,
		LastRaw:    s.lastRaw,
		DetectedAt: s.detectedAt,
	}
	if s.paused {
		state.ResumesAt = s.detectedAt.Add(s.cooldown)
	}
	return state
}

// rearmIfCooledDown must be called with mu held.
// The last result stays visible until the next accepted read or a Reset.
func (s *Scanner) rearmIfCooledDown(now time.Time) {
	if s.paused && now.Sub(s.detectedAt) >= s.cooldown {
		s.paused = false
	}
}
