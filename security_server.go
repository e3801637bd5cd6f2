package avc

import "context"

// SecurityServer is the external collaborator that computes authorisation
// decisions. It is the only potentially blocking dependency in the decision
// protocol; every call into it happens outside a reader critical section.
type SecurityServer interface {
	// ComputeAV computes a fresh coarse decision for (ssid,tsid,tclass)
	// and the (initially empty) OperationNode it should be cached with.
	ComputeAV(ctx context.Context, ssid, tsid SID, tclass Class) (Decision, *OperationNode, error)

	// ComputeOperation computes fine-grained decisions for one operation
	// type within (ssid,tsid,tclass).
	ComputeOperation(ctx context.Context, ssid, tsid SID, tclass Class, opType uint8) (OperationDecision, error)

	// SidToContext renders sid as its textual security context, for audit
	// records only.
	SidToContext(ctx context.Context, sid SID) (string, error)

	// Enforcing reports whether the policy is globally in enforcing mode.
	Enforcing() bool

	// ClassInfo returns the human-readable name of tclass and its 32
	// permission names (index i is the name of permission bit 1<<i, empty
	// if unused).
	ClassInfo(tclass Class) (name string, permNames [32]string, ok bool)
}
