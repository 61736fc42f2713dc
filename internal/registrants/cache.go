package registrants

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/algorand/go-algorand-sdk/v2/types"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/chainpass/ticketing/internal/adapter"
	"github.com/chainpass/ticketing/internal/domain"
	"github.com/chainpass/ticketing/internal/ledger"
	"github.com/chainpass/ticketing/internal/logger"
)

// DefaultTTL is how long a loaded registrant set is trusted
const DefaultTTL = 5 * time.Minute

// loadTimeout bounds one shared registrant scan
const loadTimeout = 2 * time.Minute

// Source tells where a registrant was found
type Source string

const (
	SourceCache  Source = "cache"
	SourceLedger Source = "ledger"
)

// Cache is the registrant set of one ticket application, shared by the scans of a check-in session.
//
//go:generate mockgen -source=cache.go -destination=../mocks/registrant_cache.go -package=mocks -mock_names=Cache=MockRegistrantCache
type Cache interface {
	// Lookup finds address among the registrants. On a cache miss it reads the
	// registrant box directly, so a registration made after the load is still found.
	Lookup(ctx context.Context, address string) (domain.Registrant, Source, bool, error)

	// Registrants returns the cached set, loading it when empty or expired
	Registrants(ctx context.Context) ([]domain.Registrant, error)

	// Invalidate drops the cached set so the next call reloads it
	Invalidate()
}

// Config holds configuration for the registrant cache
type Config struct {
	// AppID is the ticket application whose boxes hold the registrants
	AppID uint64

	// TTL is how long a loaded set is used before reloading
	TTL time.Duration
}

type cache struct {
	ledger ledger.Ledger
	clock  adapter.Clock
	config Config

	// loads collapses concurrent loads into one ledger scan
	loads singleflight.Group

	mu       sync.RWMutex
	byAddr   map[string]domain.Registrant
	loadedAt time.Time
	loaded   bool

	// generation changes on every Invalidate. A load started under an older
	// generation is thrown away when it finishes.
	generation uint64
}

// NewCache creates an empty registrant cache
func NewCache(l ledger.Ledger, clock adapter.Clock, config Config) Cache {
	if config.TTL <= 0 {
		config.TTL = DefaultTTL
	}
	return &cache{
		ledger: l,
		clock:  clock,
		config: config,
		byAddr: make(map[string]domain.Registrant),
	}
}

func (c *cache) Lookup(ctx context.Context, address string) (domain.Registrant, Source, bool, error) {
	key := normalize(address)
	if key == "" {
		return domain.Registrant{}, "", false, nil
	}

	if err := c.ensureLoaded(ctx); err != nil {
		// the direct lookup below still answers for this address
		logger.WarnCtx(ctx, "Failed to load registrants, falling back to box lookup",
			zap.Uint64("app_id", c.config.AppID),
			zap.Error(err),
		)
	}

	c.mu.RLock()
	r, ok := c.byAddr[key]
	c.mu.RUnlock()
	if ok {
		return r, SourceCache, true, nil
	}

	r, ok, err := c.lookupBox(ctx, key)
	if err != nil || !ok {
		return domain.Registrant{}, "", false, err
	}

	c.mu.Lock()
	c.byAddr[key] = r
	c.mu.Unlock()

	return r, SourceLedger, true, nil
}

func (c *cache) Registrants(ctx context.Context) ([]domain.Registrant, error) {
	if err := c.ensureLoaded(ctx); err != nil {
		return nil, err
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]domain.Registrant, 0, len(c.byAddr))
	for _, r := range c.byAddr {
		out = append(out, r)
	}
	return out, nil
}

func (c *cache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.loaded = false
	c.byAddr = make(map[string]domain.Registrant)
	c.generation++
}

func (c *cache) fresh() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.loaded && c.clock.Since(c.loadedAt) < c.config.TTL
}

func (c *cache) ensureLoaded(ctx context.Context) error {
	if c.fresh() {
		return nil
	}

	c.mu.RLock()
	generation := c.generation
	c.mu.RUnlock()

	// callers after an Invalidate never join a load started before it
	result := c.loads.DoChan(strconv.FormatUint(generation, 10), func() (interface{}, error) {
		// another caller may have finished a load while this one waited
		if c.fresh() {
			return nil, nil
		}

		// the scan is shared, so it must outlive the caller that started it
		loadCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), loadTimeout)
		defer cancel()

		return nil, c.load(loadCtx, generation)
	})

	select {
	case <-ctx.Done():
		return ctx.Err()
	case r := <-result:
		return r.Err
	}
}

func (c *cache) load(ctx context.Context, generation uint64) error {
	boxes, err := c.ledger.ReadBoxes(ctx, c.config.AppID)
	if err != nil {
		return fmt.Errorf("failed to read registrant boxes: %w", err)
	}

	byAddr := make(map[string]domain.Registrant, len(boxes))
	for _, box := range boxes {
		r, ok := decodeRegistrant(box)
		if !ok {
			continue
		}
		byAddr[normalize(r.Address)] = r
	}

	c.mu.Lock()
	if c.generation != generation {
		c.mu.Unlock()
		logger.DebugCtx(ctx, "Discarding registrants loaded before invalidation",
			zap.Uint64("app_id", c.config.AppID))
		return nil
	}
	c.byAddr = byAddr
	c.loadedAt = c.clock.Now()
	c.loaded = true
	c.mu.Unlock()

	logger.InfoCtx(ctx, "Loaded registrants",
		zap.Uint64("app_id", c.config.AppID),
		zap.Int("count", len(byAddr)),
	)

	return nil
}

func (c *cache) lookupBox(ctx context.Context, address string) (domain.Registrant, bool, error) {
	addr, err := types.DecodeAddress(address)
	if err != nil {
		// not a ledger address, so it cannot own a box
		return domain.Registrant{}, false, nil
	}

	value, err := c.ledger.ReadBox(ctx, c.config.AppID, addr[:])
	if errors.Is(err, domain.ErrBoxNotFound) {
		return domain.Registrant{}, false, nil
	}
	if err != nil {
		return domain.Registrant{}, false, err
	}

	r, _ := decodeRegistrant(ledger.Box{Name: addr[:], Value: value})
	return r, true, nil
}

// decodeRegistrant maps a box keyed by an account public key to a registrant.
// Boxes with other names are not registrations.
func decodeRegistrant(box ledger.Box) (domain.Registrant, bool) {
	if len(box.Name) != domain.REGISTRANT_BOX_NAME_LENGTH {
		return domain.Registrant{}, false
	}

	address, err := types.EncodeAddress(box.Name)
	if err != nil {
		return domain.Registrant{}, false
	}

	email, err := ledger.DecodeABIString(box.Value)
	if err != nil {
		email = ""
	}

	return domain.Registrant{Address: address, Email: email}, true
}

func normalize(address string) string {
	return strings.ToUpper(strings.TrimSpace(address))
}
