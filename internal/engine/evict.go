package engine

// evictOnce runs one approximate-LRU pass: starting at the
// rotating lru_hint, try-lock buckets (skipping contended ones) and unlink
// up to reclaimBatch nodes in hint order, handing each to the reclaimer.
// It never waits on a bucket lock; it does allocate (the slice of unlinked
// nodes, and the new generation Reclaimer.Retire opens). It is
// deliberately approximate, not an exact LRU: within a bucket it unlinks
// from the chain head, and Insert prepends, so the most recently added
// nodes of a bucket go first.
func (s *Store) evictOnce() {
	batch := int(s.reclaimBatch.Load())
	count := 0
	for attempt := 0; attempt < NSlots; attempt++ {
		idx := uint32(s.lruHint.Add(1)-1) % NSlots
		b := &s.buckets[idx]
		if !b.mu.TryLock() {
			continue
		}

		head := b.head.Load()
		if head == nil {
			b.mu.Unlock()
			continue
		}

		var retired []*node
		n := head
		for n != nil && count < batch {
			next := n.next.Load()
			retired = append(retired, n)
			count++
			n = next
		}
		// n is nil (whole chain consumed) or the first still-linked node.
		b.head.Store(n)
		b.mu.Unlock()

		s.activeCount.Add(-int64(len(retired)))
		s.evicted.Add(uint64(len(retired)))
		s.reclaimer.Retire(retired...)

		if count >= batch {
			return
		}
	}
}
