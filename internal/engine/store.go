package engine

import (
	"sync"
	"sync/atomic"

	"golang.org/x/sys/cpu"

	"github.com/skipor/avc/log"
)

// NSlots is the fixed number of hash buckets.
const NSlots = 512

// DefaultThreshold is the node count above which the evictor runs.
const DefaultThreshold = 512

// ReclaimBatch is the maximum number of nodes one evictor pass unlinks.
const ReclaimBatch = 16

type bucket struct {
	mu   sync.Mutex
	head atomic.Pointer[node]
}

// Store is the bucket table plus the shared counters guarding it: a
// lock-free-read, per-bucket-locked-write hash table of cache entries. It
// has no notion of permissions, audit, or the decision protocol — that
// lives one layer up, in Cache.
type Store struct {
	buckets [NSlots]bucket

	activeCount atomic.Int64
	lruHint     atomic.Uint64
	latestSeqno atomic.Uint32

	// _ pads the hot per-lookup counters below onto their own cache line,
	// away from activeCount/lruHint/latestSeqno above: every lookup touches
	// lookups (and misses, on a miss), and without this gap those writes
	// would share a line with the eviction/seqno fields mutated by a
	// completely different set of goroutines, causing needless invalidation
	// traffic between cores under concurrent load.
	_ cpu.CacheLinePad

	lookups atomic.Uint64
	misses  atomic.Uint64
	evicted atomic.Uint64

	threshold    atomic.Int64
	reclaimBatch atomic.Int32

	reclaimer *Reclaimer
	log       log.Logger
}

// NewStore builds a Store with the given eviction threshold and batch size.
// A zero threshold or batch falls back to the package defaults.
func NewStore(threshold int64, reclaimBatch int, l log.Logger) *Store {
	if threshold <= 0 {
		threshold = DefaultThreshold
	}
	if reclaimBatch <= 0 {
		reclaimBatch = ReclaimBatch
	}
	if l == nil {
		l = log.NewNop()
	}
	s := &Store{
		reclaimer: NewReclaimer(),
		log:       l,
	}
	s.threshold.Store(threshold)
	s.reclaimBatch.Store(int32(reclaimBatch))
	return s
}

// SetTunables updates the eviction threshold and batch size in place, for
// an operator adjusting them at runtime (the debug console's RELOAD
// command) without restarting the process. A non-positive value leaves
// the corresponding tunable unchanged.
func (s *Store) SetTunables(threshold int64, reclaimBatch int) {
	if threshold > 0 {
		s.threshold.Store(threshold)
	}
	if reclaimBatch > 0 {
		s.reclaimBatch.Store(int32(reclaimBatch))
	}
}

func hash(k Key) uint32 {
	h := uint32(k.Ssid) ^ (uint32(k.Tsid) << 2) ^ (uint32(k.Tclass) << 4)
	return h % NSlots
}

// ActiveCount returns the number of currently linked nodes.
func (s *Store) ActiveCount() int64 { return s.activeCount.Load() }

// LatestSeqno returns the newest policy version whose invalidation has been
// observed (the seqno gate used by Insert).
func (s *Store) LatestSeqno() uint32 { return s.latestSeqno.Load() }

// BumpSeqno advances latest_seqno to the monotonic max of its current value
// and seqno.
func (s *Store) BumpSeqno(seqno uint32) {
	for {
		cur := s.latestSeqno.Load()
		if seqno <= cur {
			return
		}
		if s.latestSeqno.CompareAndSwap(cur, seqno) {
			return
		}
	}
}

// LookupStats returns lifetime lookup and miss counts.
func (s *Store) LookupStats() (lookups, misses uint64) {
	return s.lookups.Load(), s.misses.Load()
}

// EvictedCount returns the lifetime number of nodes the evictor reclaimed.
func (s *Store) EvictedCount() uint64 { return s.evicted.Load() }

// Reclaimer exposes the underlying deferred-free machinery so the decision
// protocol can bracket its own reader critical sections around a lookup
// plus whatever it does with the returned snapshot.
func (s *Store) Reclaimer() *Reclaimer { return s.reclaimer }
