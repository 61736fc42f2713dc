package ledger

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/chainpass/ticketing/internal/adapter"
	"github.com/chainpass/ticketing/internal/domain"
	"github.com/chainpass/ticketing/internal/logger"
)

const (
	DefaultDirectoryTTL         = 30 * time.Second
	DefaultDirectoryStaleWindow = 5 * time.Minute

	// directoryLoadTimeout bounds one shared registry read
	directoryLoadTimeout = time.Minute
)

// EventDirectory reads event descriptors from the events registry application
//
//go:generate mockgen -source=directory.go -destination=../mocks/event_directory.go -package=mocks -mock_names=EventDirectory=MockEventDirectory
type EventDirectory interface {
	// Get returns the event with eventID or domain.ErrEventNotFound, potentially from cache
	Get(ctx context.Context, eventID uint64) (domain.EventConfig, error)

	// GetFresh reads the registry from the ledger and returns the event with eventID.
	// Use it where a stale registered count matters, such as capacity checks.
	GetFresh(ctx context.Context, eventID uint64) (domain.EventConfig, error)

	// List returns every decodable event ordered by id, potentially from cache
	List(ctx context.Context) ([]domain.EventConfig, error)
}

// DirectoryConfig holds configuration for the event directory cache
type DirectoryConfig struct {
	// TTL is how long a registry read is reused
	TTL time.Duration

	// StaleWindow is how long a cached registry is served when a refresh fails
	StaleWindow time.Duration
}

type registrySnapshot struct {
	events    []domain.EventConfig
	fetchedAt time.Time
}

type eventDirectory struct {
	ledger Ledger
	appID  uint64
	config DirectoryConfig
	clock  adapter.Clock

	loads    singleflight.Group
	mu       sync.RWMutex
	snapshot *registrySnapshot
}

// NewEventDirectory creates a cached directory over the registry application appID
func NewEventDirectory(ledger Ledger, appID uint64, config DirectoryConfig, clock adapter.Clock) EventDirectory {
	if config.TTL <= 0 {
		config.TTL = DefaultDirectoryTTL
	}
	if config.StaleWindow < config.TTL {
		config.StaleWindow = config.TTL
	}

	return &eventDirectory{
		ledger: ledger,
		appID:  appID,
		config: config,
		clock:  clock,
	}
}

func (d *eventDirectory) Get(ctx context.Context, eventID uint64) (domain.EventConfig, error) {
	events, err := d.List(ctx)
	if err != nil {
		return domain.EventConfig{}, err
	}

	return findEvent(events, eventID)
}

func (d *eventDirectory) GetFresh(ctx context.Context, eventID uint64) (domain.EventConfig, error) {
	events, err := d.refresh(ctx)
	if err != nil {
		return domain.EventConfig{}, err
	}

	return findEvent(events, eventID)
}

func (d *eventDirectory) List(ctx context.Context) ([]domain.EventConfig, error) {
	d.mu.RLock()
	cached := d.snapshot
	d.mu.RUnlock()

	now := d.clock.Now()
	if cached != nil && now.Sub(cached.fetchedAt) < d.config.TTL {
		return cached.events, nil
	}

	events, err := d.refresh(ctx)
	if err != nil {
		if cached != nil && now.Sub(cached.fetchedAt) < d.config.StaleWindow {
			logger.WarnCtx(ctx, "Serving stale event registry",
				zap.Uint64("app_id", d.appID),
				zap.Duration("age", now.Sub(cached.fetchedAt)),
				zap.Error(err),
			)
			return cached.events, nil
		}
		return nil, err
	}

	return events, nil
}

// refresh reads the registry once for every concurrent caller and stores the result
func (d *eventDirectory) refresh(ctx context.Context) ([]domain.EventConfig, error) {
	if d.appID == 0 {
		return nil, fmt.Errorf("%w: events registry application id is not set", domain.ErrConfiguration)
	}

	result := d.loads.DoChan("registry", func() (interface{}, error) {
		// one caller going away must not fail the others sharing this read
		loadCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), directoryLoadTimeout)
		defer cancel()

		events, err := d.load(loadCtx)
		if err != nil {
			return nil, err
		}

		d.mu.Lock()
		d.snapshot = &registrySnapshot{events: events, fetchedAt: d.clock.Now()}
		d.mu.Unlock()

		return events, nil
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case r := <-result:
		if r.Err != nil {
			return nil, r.Err
		}
		return r.Val.([]domain.EventConfig), nil
	}
}

func (d *eventDirectory) load(ctx context.Context) ([]domain.EventConfig, error) {
	boxes, err := d.ledger.ReadBoxes(ctx, d.appID)
	if err != nil {
		return nil, err
	}

	events := make([]domain.EventConfig, 0, len(boxes))
	for _, box := range boxes {
		cfg, err := DecodeEventConfig(box.Value)
		if err != nil {
			// other box kinds share the registry
			logger.DebugCtx(ctx, "Skipping undecodable registry box",
				zap.Binary("box_name", box.Name),
				zap.Error(err),
			)
			continue
		}
		events = append(events, cfg)
	}

	sort.Slice(events, func(i, j int) bool {
		return events[i].EventID < events[j].EventID
	})

	return events, nil
}

func findEvent(events []domain.EventConfig, eventID uint64) (domain.EventConfig, error) {
	for _, e := range events {
		if e.EventID == eventID {
			return e, nil
		}
	}

	return domain.EventConfig{}, fmt.Errorf("%w: %d", domain.ErrEventNotFound, eventID)
}
