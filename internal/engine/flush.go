package engine

// Flush unlinks every node in every bucket and hands them to the reclaimer.
// It touches no other shared state: latest_seqno is bumped separately by
// the caller as part of the reset protocol.
func (s *Store) Flush() {
	for i := range s.buckets {
		b := &s.buckets[i]
		b.mu.Lock()
		head := b.head.Load()
		if head == nil {
			b.mu.Unlock()
			continue
		}
		var retired []*node
		for n := head; n != nil; n = n.next.Load() {
			retired = append(retired, n)
		}
		b.head.Store(nil)
		b.mu.Unlock()

		s.activeCount.Add(-int64(len(retired)))
		s.reclaimer.Retire(retired...)
	}
}
