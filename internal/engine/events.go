package engine

import "errors"

// ErrNotFound is returned by UpdateNode when no node matching both key and
// seqno is currently linked — benign: it means a concurrent insert already
// replaced the entry with a newer one, so this update is stale and
// discarded.
var ErrNotFound = errors.New("avc: update target not found")

// EventKind is the kind of in-place mutation UpdateNode applies.
type EventKind int

const (
	EventGrant EventKind = iota
	EventRevoke
	EventTryRevoke
	EventAuditAllowEnable
	EventAuditAllowDisable
	EventAuditDenyEnable
	EventAuditDenyDisable
	EventAddOperation
)

// Event describes one update to apply to a cached entry.
type Event struct {
	Kind   EventKind
	Perms  PermSet
	HasCmd bool
	Cmd    Cmd
	// Op is required (and only used) for EventAddOperation.
	Op *OperationDecision
}

// applyEvent mutates a not-yet-linked candidate node in place; this is safe
// because the candidate has no other observers until UpdateNode publishes
// it into the chain.
func applyEvent(cand *node, ev Event) {
	d := &cand.decision
	switch ev.Kind {
	case EventGrant:
		d.Allowed |= ev.Perms
		if ev.HasCmd {
			if cand.ops == nil {
				cand.ops = NewOperationNode()
			}
			opd := cand.ops.find(ev.Cmd.Type)
			if opd == nil {
				opd = &OperationDecision{Type: ev.Cmd.Type, Specified: OperationAllowed}
				cand.ops.upsert(opd)
			}
			opd.Specified |= OperationAllowed
			opd.Allowed.Set(ev.Cmd.Number)
			cand.ops.TypeMask.Set(ev.Cmd.Type)
		}
	case EventRevoke, EventTryRevoke:
		d.Allowed &^= ev.Perms
	case EventAuditAllowEnable:
		d.AuditAllow |= ev.Perms
	case EventAuditAllowDisable:
		d.AuditAllow &^= ev.Perms
	case EventAuditDenyEnable:
		d.AuditDeny |= ev.Perms
	case EventAuditDenyDisable:
		d.AuditDeny &^= ev.Perms
	case EventAddOperation:
		if cand.ops == nil {
			cand.ops = NewOperationNode()
		}
		cand.ops.upsert(ev.Op.clone())
		cand.ops.TypeMask.Set(ev.Op.Type)
	}
}
