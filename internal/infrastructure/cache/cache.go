// Package cache is the keyed read cache shared by repository reads.
//
// Entries are grouped by logical entity. Invalidating an entity drops every
// entry for it across filter variants and tenants, and bumps a generation so
// fetches already in flight cannot write stale results back.
package cache

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/elitemotors/detailing-api/pkg/logger"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"
)

// TTLs groups the staleness windows per kind of read
type TTLs struct {
	Transactional time.Duration
	Dashboard     time.Duration
	Reports       time.Duration
}

// DefaultTTLs are used when configuration leaves them unset
var DefaultTTLs = TTLs{
	Transactional: time.Minute,
	Dashboard:     5 * time.Minute,
	Reports:       10 * time.Minute,
}

type entry struct {
	entity  string
	value   any
	expires time.Time
}

// QueryCache memoizes reads and deduplicates concurrent fetches
type QueryCache struct {
	mu      sync.Mutex
	entries map[string]entry
	gens    map[string]uint64
	global  uint64

	group  singleflight.Group
	bus    InvalidationBus
	origin string
	ttls   TTLs
	now    func() time.Time
	log    *logrus.Entry
}

// New creates a cache that fans invalidations out through bus.
// A nil bus means this process is the only instance.
func New(bus InvalidationBus, ttls TTLs) *QueryCache {
	if bus == nil {
		bus = NopBus{}
	}
	if ttls.Transactional <= 0 {
		ttls.Transactional = DefaultTTLs.Transactional
	}
	if ttls.Dashboard <= 0 {
		ttls.Dashboard = DefaultTTLs.Dashboard
	}
	if ttls.Reports <= 0 {
		ttls.Reports = DefaultTTLs.Reports
	}
	return &QueryCache{
		entries: make(map[string]entry),
		gens:    make(map[string]uint64),
		bus:     bus,
		origin:  uuid.NewString(),
		ttls:    ttls,
		now:     time.Now,
		log:     logger.WithComponent("cache"),
	}
}

// TTLs returns the configured staleness windows
func (c *QueryCache) TTLs() TTLs {
	return c.ttls
}

// generation must be called with mu held
func (c *QueryCache) generation(entity string) uint64 {
	return c.global + c.gens[entity]
}

// Fetch returns the cached value for key or runs fn once for all concurrent
// callers. fn runs with a context detached from the first caller's
// cancellation so one aborted request does not fail the others.
func Fetch[T any](ctx context.Context, c *QueryCache, key Key, ttl time.Duration, fn func(ctx context.Context) (T, error)) (T, error) {
	k := key.String()

	c.mu.Lock()
	if e, ok := c.entries[k]; ok && c.now().Before(e.expires) {
		if v, ok := e.value.(T); ok {
			c.mu.Unlock()
			return v, nil
		}
	}
	gen := c.generation(key.Entity)
	c.mu.Unlock()

	res, err, _ := c.group.Do(fmt.Sprintf("%s#%d", k, gen), func() (any, error) {
		v, err := fn(context.WithoutCancel(ctx))
		if err != nil {
			return nil, err
		}

		c.mu.Lock()
		if c.generation(key.Entity) == gen {
			c.entries[k] = entry{entity: key.Entity, value: v, expires: c.now().Add(ttl)}
		}
		c.mu.Unlock()
		return v, nil
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return res.(T), nil
}

// Invalidate drops the entities and their dependent aggregates, locally and
// on every other instance.
func (c *QueryCache) Invalidate(ctx context.Context, entities ...string) {
	if len(entities) == 0 {
		return
	}
	expanded := Expand(entities...)
	c.invalidateLocal(expanded)
	c.publish(ctx, Message{Entities: expanded})
}

// InvalidateAll drops every cached read
func (c *QueryCache) InvalidateAll(ctx context.Context) {
	c.invalidateAllLocal()
	c.publish(ctx, Message{All: true})
}

func (c *QueryCache) invalidateLocal(entities []string) {
	set := make(map[string]struct{}, len(entities))
	for _, e := range entities {
		set[e] = struct{}{}
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	for e := range set {
		c.gens[e]++
	}
	for k, e := range c.entries {
		if _, ok := set[e.entity]; ok {
			delete(c.entries, k)
		}
	}
}

func (c *QueryCache) invalidateAllLocal() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.global++
	c.entries = make(map[string]entry)
}

func (c *QueryCache) publish(ctx context.Context, msg Message) {
	msg.Origin = c.origin
	if err := c.bus.Publish(ctx, msg); err != nil {
		c.log.WithError(err).WithField("entities", msg.Entities).Warn("failed to publish cache invalidation")
	}
}

// Listen applies invalidations published by other instances until ctx ends
func (c *QueryCache) Listen(ctx context.Context) error {
	msgs, cleanup, err := c.bus.Subscribe(ctx)
	if err != nil {
		return fmt.Errorf("cache.QueryCache.Listen: %w", err)
	}

	go func() {
		defer cleanup()
		for msg := range msgs {
			c.apply(msg)
		}
	}()
	return nil
}

func (c *QueryCache) apply(msg Message) {
	if msg.Origin == c.origin {
		return
	}
	if msg.All {
		c.invalidateAllLocal()
		return
	}
	c.invalidateLocal(msg.Entities)
}

// Len reports the number of live entries
func (c *QueryCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
