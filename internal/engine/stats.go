package engine

import "fmt"

// ChainHistogram returns, for each observed chain length, how many buckets
// have that many linked nodes. It briefly takes each bucket's lock in turn
// (this is a diagnostic dump, not a hot path).
func (s *Store) ChainHistogram() map[int]int {
	hist := make(map[int]int)
	for i := range s.buckets {
		b := &s.buckets[i]
		b.mu.Lock()
		n := 0
		for cur := b.head.Load(); cur != nil; cur = cur.next.Load() {
			n++
		}
		b.mu.Unlock()
		hist[n]++
	}
	return hist
}

// StatsText renders a hash_stats_text()-style dump: bucket occupancy
// histogram plus the lookup/miss/eviction/reclaim counters.
func (s *Store) StatsText() string {
	lookups, misses := s.LookupStats()
	retired, reclaimed := s.reclaimer.Stats()
	hist := s.ChainHistogram()

	out := fmt.Sprintf(
		"entries: %d  slots: %d  threshold: %d\n"+
			"lookups: %d  misses: %d  hit_ratio: %.4f\n"+
			"evicted: %d  retired: %d  reclaimed: %d\n",
		s.ActiveCount(), NSlots, s.threshold.Load(),
		lookups, misses, hitRatio(lookups, misses),
		s.EvictedCount(), retired, reclaimed,
	)
	for length := 0; length <= longestChain(hist); length++ {
		if c, ok := hist[length]; ok {
			out += fmt.Sprintf("  chains of length %d: %d buckets\n", length, c)
		}
	}
	return out
}

func hitRatio(lookups, misses uint64) float64 {
	if lookups == 0 {
		return 0
	}
	return float64(lookups-misses) / float64(lookups)
}

func longestChain(hist map[int]int) int {
	max := 0
	for length := range hist {
		if length > max {
			max = length
		}
	}
	return max
}
