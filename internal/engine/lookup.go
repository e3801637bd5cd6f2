package engine

// Enter starts a reader critical section. The returned Session must be
// passed to Exit exactly once. No node returned by Lookup within this
// section will be freed before Exit returns.
func (s *Store) Enter() Session { return s.reclaimer.Enter() }

// Exit ends a reader critical section started by Enter.
func (s *Store) Exit(sess Session) { s.reclaimer.Exit(sess) }

// Lookup walks the chain at hash(key) for the first node matching key. The
// caller must already hold a Session from Enter, and must stop using the
// returned *node before calling Exit.
func (s *Store) Lookup(key Key) *node {
	s.lookups.Add(1)
	b := &s.buckets[hash(key)]
	for n := b.head.Load(); n != nil; n = n.next.Load() {
		if n.matches(key) {
			return n
		}
	}
	s.misses.Add(1)
	return nil
}

// Snapshot copies out the two fields callers need from a node found by
// Lookup: the coarse Decision (a value type, copied) and the OperationNode
// pointer (read-only and safe to dereference until Exit, since nodes are
// immutable once linked).
func Snapshot(n *node) (Decision, *OperationNode) {
	if n == nil {
		return Decision{}, nil
	}
	return n.decision, n.ops
}
