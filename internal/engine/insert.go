package engine

// Insert installs avd/ops under key. It refuses (ok=false) if
// avd.Seqno is older than the latest observed policy version — the
// candidate is known-stale, most likely racing a concurrent ss_reset.
//
// The returned node is only valid to read while holding a Session from
// Enter (the usual case: the caller just computed avd after a miss inside
// its own reader section and wants to hand it straight back to its caller).
func (s *Store) Insert(key Key, avd Decision, ops *OperationNode) (*node, bool) {
	if avd.Seqno < s.LatestSeqno() {
		return nil, false
	}

	nn := s.reclaimer.Alloc()
	nn.key = key
	nn.decision = avd
	nn.ops = ops.clone()

	b := &s.buckets[hash(key)]
	b.mu.Lock()
	var prev *node
	cur := b.head.Load()
	for cur != nil && !cur.matches(key) {
		prev = cur
		cur = cur.next.Load()
	}

	var old *node
	if cur != nil {
		// Replace in place: publish nn with a single atomic pointer store.
		// A concurrent reader sees either the old node or nn, never both,
		// never neither.
		old = cur
		nn.next.Store(cur.next.Load())
		if prev == nil {
			b.head.Store(nn)
		} else {
			prev.next.Store(nn)
		}
	} else {
		nn.next.Store(b.head.Load())
		b.head.Store(nn)
	}
	b.mu.Unlock()

	if old != nil {
		s.reclaimer.Retire(old)
	} else {
		s.activeCount.Add(1)
	}

	if s.activeCount.Load() > s.threshold.Load() {
		s.evictOnce()
	}
	return nn, true
}
