// Package engine implements the concurrent cache mechanics behind avc.Cache:
// the bucket table, node chains, lookup/insert/update, the approximate-LRU
// evictor and the quiescent-state reclaimer. None of this package's API is
// exported outside the module; avc.Cache is the public facade.
package engine

// SID is an opaque 32-bit security identifier for a subject or object.
type SID uint32

// WildSID matches any id in callback filters.
const WildSID SID = 0xFFFFFFFF

// Class is a 16-bit object-class tag indexing a static permission-name table.
type Class uint16

// PermSet is a 32-bit bitmap of permission bits within one object class.
type PermSet uint32

// Key identifies one cache entry: a (source, target, class) triple.
type Key struct {
	Ssid   SID
	Tsid   SID
	Tclass Class
}

// DecisionFlag bits live in Decision.Flags.
type DecisionFlag uint32

const (
	// FlagPermissive marks a decision computed under a permissive policy
	// for this specific context (as opposed to the global enforcing flag).
	FlagPermissive DecisionFlag = 1 << iota
)

// Decision is the coarse per-Key result: allow/audit-allow/audit-deny
// bitmaps, flags, and the policy version (Seqno) that produced it.
type Decision struct {
	Allowed    PermSet
	AuditAllow PermSet
	AuditDeny  PermSet
	Flags      DecisionFlag
	Seqno      uint32
}

// Cmd identifies one fine-grained operation within a class: an 8-bit type
// and an 8-bit number within that type.
type Cmd struct {
	Type   uint8
	Number uint8
}

// OperationSpecified is the bitset over {ALLOWED, AUDITALLOW, DONTAUDIT}
// recorded in OperationDecision.Specified, indicating which of its three
// bitmaps are meaningful.
type OperationSpecified uint8

const (
	OperationAllowed OperationSpecified = 1 << iota
	OperationAuditAllow
	OperationDontAudit
)

// OperationBitmap is a fixed 256-bit set, one bit per operation number
// n in [0,255], or (reused) per operation type in OperationNode.TypeMask.
type OperationBitmap [8]uint32

func (b *OperationBitmap) Set(n uint8)   { b[n>>5] |= 1 << (n & 31) }
func (b *OperationBitmap) Clear(n uint8) { b[n>>5] &^= 1 << (n & 31) }
func (b OperationBitmap) IsSet(n uint8) bool {
	return b[n>>5]&(1<<(n&31)) != 0
}

// Word returns the 32-bit slice containing bit n, the unit the fast path
// in has_operation copies instead of the whole 256-bit bitmap.
func (b OperationBitmap) Word(n uint8) uint32 { return b[n>>5] }

// OperationDecision carries fine-grained decisions for one operation type.
type OperationDecision struct {
	Type       uint8
	Specified  OperationSpecified
	Allowed    OperationBitmap
	AuditAllow OperationBitmap
	DontAudit  OperationBitmap
}

func (d *OperationDecision) clone() *OperationDecision {
	cp := *d
	return &cp
}

// OperationNode is the optional per-entry lazy table of OperationDecisions.
// TypeMask records which operation types have ever been computed for this
// entry; List holds at most one OperationDecision per type.
type OperationNode struct {
	TypeMask OperationBitmap
	List     []*OperationDecision
}

// NewOperationNode returns an empty OperationNode.
func NewOperationNode() *OperationNode {
	return &OperationNode{}
}

// find returns the OperationDecision for t, or nil.
func (o *OperationNode) find(t uint8) *OperationDecision {
	if o == nil {
		return nil
	}
	for _, d := range o.List {
		if d.Type == t {
			return d
		}
	}
	return nil
}

// clone deep-copies o and every OperationDecision it owns. Required by every
// update: OperationNode and its OperationDecisions are exclusively owned by
// one AvcNode and are never shared across nodes.
func (o *OperationNode) clone() *OperationNode {
	if o == nil {
		return nil
	}
	cp := &OperationNode{
		TypeMask: o.TypeMask,
		List:     make([]*OperationDecision, len(o.List)),
	}
	for i, d := range o.List {
		cp.List[i] = d.clone()
	}
	return cp
}

// upsert replaces the entry for d.Type if present, else appends d. The real
// AVC never lets more than one OperationDecision per type coexist, since
// TypeMask is a set: this enforces that invariant explicitly.
func (o *OperationNode) upsert(d *OperationDecision) {
	for i, existing := range o.List {
		if existing.Type == d.Type {
			o.List[i] = d
			return
		}
	}
	o.List = append(o.List, d)
}
