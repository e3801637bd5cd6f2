package avc

import (
	"sync/atomic"

	"github.com/skipor/avc/internal/engine"
	"github.com/skipor/avc/internal/tag"
	"github.com/skipor/avc/log"
)

// Handler is the narrow interface cmd/avcctl's debug console programs
// against, so the console code stays independent of any one cache
// implementation.
type Handler interface {
	HashStatsText() string
	SSReset(seqno uint32) error
	PolicySeqno() uint32
	Disable()
	SetTunables(cacheThreshold int64, reclaimBatch int)
}

// Options configures a Cache at construction time.
type Options struct {
	// CacheThreshold is the node count above which the evictor runs.
	// Zero uses engine.DefaultThreshold (512).
	CacheThreshold int64
	// ReclaimBatch is the max nodes one evictor pass unlinks. Zero uses
	// engine.ReclaimBatch (16).
	ReclaimBatch int
	Log          log.Logger
}

// Cache is the in-process Access Vector Cache: the public facade over the
// bucket-table engine, wired to a SecurityServer and an Auditor. Lifecycle
// is init (New) -> serve (HasPerm*/HasOperation) -> Disable.
type Cache struct {
	store     *engine.Store
	ss        SecurityServer
	auditor   Auditor
	log       log.Logger
	callbacks callbackTable

	disabled atomic.Bool
}

// New builds a Cache consulting ss for misses and auditor for decisions.
func New(ss SecurityServer, auditor Auditor, opts Options) *Cache {
	l := opts.Log
	if l == nil {
		l = log.NewNop()
	}
	if auditor == nil {
		auditor = NopAuditor{}
	}
	return &Cache{
		store:   engine.NewStore(opts.CacheThreshold, opts.ReclaimBatch, l),
		ss:      ss,
		auditor: auditor,
		log:     l,
	}
}

// PolicySeqno returns the newest policy version the cache has observed.
func (c *Cache) PolicySeqno() uint32 { return c.store.LatestSeqno() }

// HashStatsText renders a human-readable bucket-occupancy and counters dump.
func (c *Cache) HashStatsText() string { return c.store.StatsText() }

// AddCallback registers a one-shot invalidation callback. Only
// call this during initialisation, before the cache serves traffic.
func (c *Cache) AddCallback(cb Callback) {
	c.callbacks.Add(cb)
}

// SSReset is invoked when the policy changes: flush, notify RESET
// callbacks, then bump latest_seqno to the monotonic max of its current
// value and seqno. Callback errors are collected (first
// non-nil) and returned, but never abort the reset.
func (c *Cache) SSReset(seqno uint32) error {
	c.store.Flush()
	err := c.callbacks.RunReset(seqno)
	// Bumping latest_seqno after running callbacks (rather than before) is
	// intentional: see DESIGN.md's note on the resulting race window. A
	// concurrent insert carrying the new seqno can slip in ahead of this
	// bump; that is treated as valid under the new policy.
	c.store.BumpSeqno(seqno)
	c.log.Debugf("ss_reset seqno=%d", seqno)
	return err
}

// Disable flushes the cache and marks it disabled. In release builds
// subsequent decisions still work exactly as on a cold cache: the first
// call per key recomputes through the SecurityServer and re-populates the
// cache. Calling HasPerm*/HasOperation on a disabled cache is a caller
// bug, so debug builds (-tags avcdebug) panic on it instead. See DESIGN.md
// for the reasoning.
func (c *Cache) Disable() {
	c.store.Flush()
	c.disabled.Store(true)
}

// SetTunables applies new eviction tunables to the running cache, for the
// debug console's RELOAD command picking up an operator's on-disk edit
// without restarting the process. A non-positive value leaves the
// corresponding tunable unchanged.
func (c *Cache) SetTunables(cacheThreshold int64, reclaimBatch int) {
	c.store.SetTunables(cacheThreshold, reclaimBatch)
}

// checkEnabled enforces the debug-build assertion described on Disable.
func (c *Cache) checkEnabled() {
	if tag.Debug && c.disabled.Load() {
		panic("avc: operation on disabled Cache")
	}
}
