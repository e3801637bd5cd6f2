// Package avc implements an in-process Access Vector Cache: a bounded,
// hash-bucketed, concurrent memoisation of authorisation decisions produced
// by an external security server. See SPEC_FULL.md for the full design.
package avc

import "github.com/skipor/avc/internal/engine"

// SID is an opaque 32-bit security identifier for a subject or object.
type SID = engine.SID

// Class is a 16-bit object-class tag indexing a static permission-name table.
type Class = engine.Class

// WildSID matches any id in callback filters.
const WildSID SID = engine.WildSID

// PermSet is a 32-bit bitmap of permission bits within one object class.
type PermSet = engine.PermSet

// Decision is the coarse per-(ssid,tsid,tclass) result.
type Decision = engine.Decision

// DecisionFlag bits live in Decision.Flags.
type DecisionFlag = engine.DecisionFlag

const (
	// FlagPermissive marks a decision computed under a permissive (non-
	// enforcing) policy for this specific context.
	FlagPermissive DecisionFlag = engine.FlagPermissive
)

// OperationSpecified is the bitset over {ALLOWED, AUDITALLOW, DONTAUDIT}
// recorded in OperationDecision.Specified.
type OperationSpecified = engine.OperationSpecified

const (
	OperationAllowed    OperationSpecified = engine.OperationAllowed
	OperationAuditAllow OperationSpecified = engine.OperationAuditAllow
	OperationDontAudit  OperationSpecified = engine.OperationDontAudit
)

// OperationBitmap is a fixed 256-bit set, one bit per operation number.
type OperationBitmap = engine.OperationBitmap

// OperationDecision carries fine-grained decisions for one operation type.
type OperationDecision = engine.OperationDecision

// OperationNode is the optional per-entry lazy table of OperationDecisions.
type OperationNode = engine.OperationNode

// NewOperationNode returns an empty OperationNode ready to be populated and
// passed to Insert or to an ADD_OPERATION update event.
func NewOperationNode() *OperationNode { return engine.NewOperationNode() }

// Cmd identifies one fine-grained operation: an 8-bit type and an 8-bit
// number within that type.
type Cmd = engine.Cmd

// Key identifies one cache entry.
type Key = engine.Key
