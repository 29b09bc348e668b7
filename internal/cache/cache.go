// Package cache holds a time-boxed in-memory snapshot of the team catalog.
package cache

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"sync"
	"time"

	"football_bot/internal/model"
	"football_bot/internal/normalize"
)

// DefaultTTL is how long a snapshot is served before the next read refreshes it.
const DefaultTTL = 30 * time.Minute

// Loader reads the full catalog from its backing store.
type Loader interface {
	LoadTeams(ctx context.Context) ([]model.Team, error)
}

// State is the freshness of the current snapshot.
type State int

// Snapshot states.
const (
	Stale State = iota
	Fresh
)

func (s State) String() string {
	if s == Fresh {
		return "fresh"
	}
	return "stale"
}

// Snapshot is a point-in-time copy of the catalog.
type Snapshot struct {
	Teams     []model.Team
	FetchedAt time.Time
}

// Option configures a Cache.
type Option func(*Cache)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(c *Cache) { c.now = now }
}

// WithLogger sets the logger used for refresh failures.
func WithLogger(log *slog.Logger) Option {
	return func(c *Cache) { c.log = log }
}

// Cache is a read-through cache over a Loader. It is safe for concurrent use.
// Concurrent readers observing a stale snapshot may each trigger a refresh;
// the last one to finish wins.
type Cache struct {
	loader Loader
	ttl    time.Duration
	now    func() time.Time
	log    *slog.Logger

	mu       sync.RWMutex
	snapshot *Snapshot
	gen      uint64
}

// New creates a Cache. A non-positive ttl means DefaultTTL.
func New(loader Loader, ttl time.Duration, opts ...Option) *Cache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	c := &Cache{
		loader: loader,
		ttl:    ttl,
		now:    time.Now,
		log:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// State reports whether the current snapshot is still within its TTL.
func (c *Cache) State() State {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.stateLocked()
}

func (c *Cache) stateLocked() State {
	if c.snapshot == nil || c.now().Sub(c.snapshot.FetchedAt) >= c.ttl {
		return Stale
	}
	return Fresh
}

// Snapshot returns the current snapshot without refreshing, or nil.
func (c *Cache) Snapshot() *Snapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.snapshot == nil {
		return nil
	}
	cp := *c.snapshot
	return &cp
}

// Invalidate forces the next read to refresh. The old snapshot stays available
// as a fallback if that refresh fails. A refresh already in flight is not stored.
func (c *Cache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gen++
	if c.snapshot != nil {
		c.snapshot.FetchedAt = time.Time{}
	}
}

// GetAll returns every team of the current snapshot, refreshing it first when stale.
// A failed refresh keeps the previous snapshot; with none, the result is empty.
func (c *Cache) GetAll(ctx context.Context) []model.Team {
	c.mu.RLock()
	if c.stateLocked() == Fresh {
		teams := c.snapshot.Teams
		c.mu.RUnlock()
		return teams
	}
	gen := c.gen
	c.mu.RUnlock()

	teams, err := c.loader.LoadTeams(ctx)
	if err != nil {
		c.log.Error("refresh team cache", "error", err)
		c.mu.RLock()
		defer c.mu.RUnlock()
		if c.snapshot != nil {
			return c.snapshot.Teams
		}
		return nil
	}

	snap := &Snapshot{Teams: teams, FetchedAt: c.now()}
	c.mu.Lock()
	if c.gen != gen {
		// Invalidated while loading; the result may predate the write.
		c.mu.Unlock()
		c.log.Debug("team cache refresh discarded", "teams", len(teams))
		return teams
	}
	c.snapshot = snap
	c.mu.Unlock()

	c.log.Debug("team cache refreshed", "teams", len(teams))
	return teams
}

// Search returns teams whose name or alternate name contains query, ignoring case.
// An empty result means the caller should consult the catalog provider.
func (c *Cache) Search(ctx context.Context, query string) []model.Team {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return nil
	}
	var out []model.Team
	for _, t := range c.GetAll(ctx) {
		if strings.Contains(strings.ToLower(t.Name), q) ||
			(t.AlternateName != "" && strings.Contains(strings.ToLower(t.AlternateName), q)) {
			out = append(out, t)
		}
	}
	return out
}

// ByLeague returns teams whose league equals leagueName, ignoring case.
func (c *Cache) ByLeague(ctx context.Context, leagueName string) []model.Team {
	name := strings.TrimSpace(leagueName)
	if name == "" {
		return nil
	}
	var out []model.Team
	for _, t := range c.GetAll(ctx) {
		if strings.EqualFold(t.League, name) {
			out = append(out, t)
		}
	}
	return out
}

// Lookup returns the first team with the given id.
func (c *Cache) Lookup(ctx context.Context, id string) (model.Team, bool) {
	id = normalize.ID(id)
	for _, t := range c.GetAll(ctx) {
		if t.ID == id {
			return t, true
		}
	}
	return model.Team{}, false
}
