package engine

import (
	"math"
	"sync"
	"sync/atomic"
)

// Reclaimer defers freeing unlinked nodes until every reader critical
// section that started before the unlink has ended, then returns the node
// to a sync.Pool instead of leaking it to the garbage collector, so
// steady-state inserts and updates can reuse nodes. The node's
// OperationNode is dropped on reset, not pooled.
//
// The scheme is a single-counter access-barrier (quiescent-state
// reclamation), the same shape as the one guarding skiplist node deletion in
// Couchbase's indexing service: readers bump a generation's live counter on
// Enter and drop it on Exit; retiring a batch of nodes closes the current
// generation (tagging it with the batch) and opens a fresh one; a closed
// generation's batch is freed once its live counter has drained back to
// exactly the flush offset, and only once every older generation has
// already been freed — generations can close out of order (a later one
// can drain before an earlier, slower one), but they must be freed in
// order, since a straggling reader from generation N can still be walking
// through nodes whose owning chain is structurally shared with generation
// N+1's.
type Reclaimer struct {
	mu        sync.Mutex
	cur       atomic.Pointer[generation]
	nextSeqno uint64
	freeSeqno uint64
	retireQ   []*generation

	cleaning atomic.Bool

	nodePool sync.Pool

	retired   atomic.Uint64
	reclaimed atomic.Uint64
}

// flushOffset is added to a generation's live counter when it closes, so
// that any reader who entered before the close (and will eventually call
// Exit) can be distinguished from one who raced in afterwards: a decrement
// landing exactly on flushOffset is the last departing pre-close reader.
const flushOffset = math.MaxInt32 / 2

type generation struct {
	live    int32 // manipulated only via atomic ops
	seqno   uint64
	retired []*node
}

// NewReclaimer returns a ready-to-use Reclaimer with an empty generation 0.
func NewReclaimer() *Reclaimer {
	r := &Reclaimer{}
	r.cur.Store(&generation{seqno: 0})
	r.nodePool.New = func() any { return new(node) }
	return r
}

// Session is the reader-side token returned by Enter and consumed by Exit.
type Session struct{ gen *generation }

// Enter marks the start of a reader critical section. No node reachable
// through the chains at the moment of Enter can be freed until the
// matching Exit (and every Exit of every reader that entered no later)
// has returned.
func (r *Reclaimer) Enter() Session {
	for {
		g := r.cur.Load()
		live := atomic.AddInt32(&g.live, 1)
		if live <= flushOffset {
			return Session{gen: g}
		}
		// Raced into a generation that is mid-close; back off and retry
		// against whatever is current now.
		r.exit(g)
	}
}

// Exit ends a reader critical section started by Enter.
func (r *Reclaimer) Exit(s Session) {
	if s.gen == nil {
		return
	}
	r.exit(s.gen)
}

func (r *Reclaimer) exit(g *generation) {
	live := atomic.AddInt32(&g.live, -1)
	switch {
	case live == flushOffset:
		r.seal(g)
	case live < 0 || live == flushOffset-1:
		panic("avc: reclaimer: unbalanced reader section")
	}
}

// Retire hands already-unlinked nodes to the reclaimer. It closes the
// current generation around them and opens a fresh one for subsequent
// readers, mirroring FlushSession in the grounding access-barrier: callers
// must already have unlinked these nodes; every caller in this package
// calls Retire after releasing the bucket lock it unlinked them under.
func (r *Reclaimer) Retire(retired ...*node) {
	if len(retired) == 0 {
		return
	}
	r.retired.Add(uint64(len(retired)))

	r.mu.Lock()
	old := r.cur.Load()
	next := &generation{}
	r.cur.Store(next)
	r.nextSeqno++
	// The closing generation is the one stamped with the next sequence
	// number, not the fresh one replacing it: seqno order must match close
	// order, and we only know this generation is closing right now.
	old.seqno = r.nextSeqno
	old.retired = retired
	r.mu.Unlock()

	// Account for readers who entered "old" before this close, then
	// release our own virtual acquire; if nobody else is outstanding this
	// immediately seals and drains old.
	atomic.AddInt32(&old.live, flushOffset+1)
	r.exit(old)
}

// Discard immediately returns a node that was allocated but never linked
// (e.g. an update aborted because its key/seqno was no longer current) to
// the pool. It bypasses deferral: no reader could ever have observed it.
func (r *Reclaimer) Discard(n *node) {
	if n == nil {
		return
	}
	n.reset()
	r.nodePool.Put(n)
}

// Alloc returns a zeroed node, reusing a freed one when available.
func (r *Reclaimer) Alloc() *node {
	return r.nodePool.Get().(*node)
}

func (r *Reclaimer) seal(g *generation) {
	r.mu.Lock()
	r.retireQ = append(r.retireQ, g)
	r.mu.Unlock()
	r.drain()
}

// drain frees every sealed generation that is contiguous with the last
// freed seqno. Generations can seal out of order (a later-opened
// generation's readers can all exit before an earlier one's do), so
// retireQ is not necessarily seqno-ordered by append time; this scans for
// whichever entry is next rather than assuming the queue's front is it.
// Only one goroutine drains at a time; others skip, trusting the drainer
// to make progress through everything currently sealed.
func (r *Reclaimer) drain() {
	if !r.cleaning.CompareAndSwap(false, true) {
		return
	}
	defer r.cleaning.Store(false)

	r.mu.Lock()
	defer r.mu.Unlock()

	for {
		idx := -1
		for i, g := range r.retireQ {
			if g.seqno == r.freeSeqno+1 {
				idx = i
				break
			}
		}
		if idx == -1 {
			return
		}
		g := r.retireQ[idx]
		r.retireQ = append(r.retireQ[:idx], r.retireQ[idx+1:]...)
		r.freeSeqno++
		for _, n := range g.retired {
			n.reset()
			r.nodePool.Put(n)
		}
		r.reclaimed.Add(uint64(len(g.retired)))
	}
}

// Stats returns lifetime counts of nodes handed to Retire and nodes freed
// back to the pool after their grace period elapsed.
func (r *Reclaimer) Stats() (retired, reclaimed uint64) {
	return r.retired.Load(), r.reclaimed.Load()
}
