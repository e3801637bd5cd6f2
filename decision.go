package avc

import (
	"context"

	"github.com/google/uuid"

	"github.com/skipor/avc/internal/engine"
)

// HasPermNoAudit runs the decision protocol without emitting an
// audit record, and hands back the effective Decision alongside the
// permission verdict — used by callers (and by HasPermFlags) that need the
// full bitmap, not just an allow/deny bool.
func (c *Cache) HasPermNoAudit(ctx context.Context, ssid, tsid SID, tclass Class, requested PermSet, flags Flags) (Decision, error) {
	c.checkEnabled()
	key := engine.Key{Ssid: ssid, Tsid: tsid, Tclass: tclass}

	sess := c.store.Enter()
	n := c.store.Lookup(key)
	var avd Decision
	if n != nil {
		avd, _ = engine.Snapshot(n)
		c.store.Exit(sess)
	} else {
		c.store.Exit(sess)

		computed, ops, err := c.ss.ComputeAV(ctx, ssid, tsid, tclass)
		if err != nil {
			return Decision{}, err
		}
		avd = computed

		sess = c.store.Enter()
		// insert may refuse (stale seqno); the just-computed avd is used
		// regardless, since it is still correct for this call even if it
		// never lands in the cache.
		c.store.Insert(key, computed, ops)
		c.store.Exit(sess)
	}

	denied := requested &^ avd.Allowed
	if denied == 0 {
		return avd, nil
	}

	if flags&FlagStrict != 0 {
		return avd, ErrPermissionDenied
	}

	if !c.ss.Enforcing() || avd.Flags&FlagPermissive != 0 {
		// Either the system is globally non-enforcing, or this context was
		// computed under a permissive policy of its own: self-patch the
		// cache to record the grant so the next identical call is a hit.
		updated, err := c.store.UpdateNode(key, avd.Seqno, engine.Event{Kind: engine.EventGrant, Perms: denied})
		if err == nil {
			sess = c.store.Enter()
			avd, _ = engine.Snapshot(updated)
			c.store.Exit(sess)
		}
		return avd, nil
	}

	return avd, ErrPermissionDenied
}

// HasPermFlags runs the decision protocol and emits an audit record.
func (c *Cache) HasPermFlags(ctx context.Context, ssid, tsid SID, tclass Class, requested PermSet, flags Flags) error {
	avd, decErr := c.HasPermNoAudit(ctx, ssid, tsid, tclass, requested, flags)
	return c.audit(ctx, ssid, tsid, tclass, requested, avd, decErr, flags)
}

// HasOperation runs the fine-grained operation sub-protocol
// layered on top of the coarse decision, then emits an audit record.
func (c *Cache) HasOperation(ctx context.Context, ssid, tsid SID, tclass Class, requested PermSet, cmd Cmd, flags Flags) error {
	c.checkEnabled()
	key := engine.Key{Ssid: ssid, Tsid: tsid, Tclass: tclass}

	sess := c.store.Enter()
	n := c.store.Lookup(key)
	var avd Decision
	var ops *OperationNode
	if n != nil {
		avd, ops = engine.Snapshot(n)
		c.store.Exit(sess)
	} else {
		c.store.Exit(sess)
		computed, computedOps, err := c.ss.ComputeAV(ctx, ssid, tsid, tclass)
		if err != nil {
			return err
		}
		avd, ops = computed, computedOps
		sess = c.store.Enter()
		c.store.Insert(key, computed, computedOps)
		c.store.Exit(sess)
	}

	avd = c.applyOperationMask(ctx, key, avd, ops, requested, cmd)

	denied := requested &^ avd.Allowed
	var decErr error
	if denied != 0 {
		if flags&FlagStrict != 0 {
			decErr = ErrPermissionDenied
		} else if !c.ss.Enforcing() || avd.Flags&FlagPermissive != 0 {
			ev := engine.Event{Kind: engine.EventGrant, Perms: denied}
			if flags&FlagOperationCmd != 0 {
				// Caller opted in to letting the patch adjust this cmd's
				// per-operation allow bit too, not just the coarse mask.
				ev.HasCmd = true
				ev.Cmd = cmd
			}
			updated, err := c.store.UpdateNode(key, avd.Seqno, ev)
			if err == nil {
				sess = c.store.Enter()
				avd, _ = engine.Snapshot(updated)
				c.store.Exit(sess)
			}
		} else {
			decErr = ErrPermissionDenied
		}
	}

	return c.audit(ctx, ssid, tsid, tclass, requested, avd, decErr, flags)
}

// applyOperationMask consults (or computes-and-attaches) the
// OperationDecision for cmd.Type, and masks requested out of avd.Allowed if
// the fine-grained bit for cmd.Number denies it. TypeMask is kept in sync
// with List (a bit is set exactly when an entry for that type exists), so
// it doubles as an O(1) "is this type already attached" check ahead of the
// linear scan: on a TypeMask miss, ComputeOperation runs exactly once and
// the result is attached via an ADD_OPERATION update, so every later call
// for the same (entry, type) takes the fast path instead of recomputing.
func (c *Cache) applyOperationMask(ctx context.Context, key engine.Key, avd Decision, ops *OperationNode, requested PermSet, cmd Cmd) Decision {
	var (
		hit       bool
		specified OperationSpecified
		word      uint32
	)
	if ops != nil && ops.TypeMask.IsSet(cmd.Type) {
		for _, d := range ops.List {
			if d.Type == cmd.Type {
				// Copy only the 32-bit slice holding cmd.Number.
				hit, specified, word = true, d.Specified, d.Allowed.Word(cmd.Number)
				break
			}
		}
	}

	if !hit {
		computed, err := c.ss.ComputeOperation(ctx, key.Ssid, key.Tsid, key.Tclass, cmd.Type)
		if err != nil {
			avd.Allowed &^= requested
			return avd
		}
		specified, word = computed.Specified, computed.Allowed.Word(cmd.Number)
		c.store.UpdateNode(key, avd.Seqno, engine.Event{Kind: engine.EventAddOperation, Op: &computed})
	}

	if specified&OperationAllowed != 0 && word&(1<<(cmd.Number&31)) == 0 {
		avd.Allowed &^= requested
	}
	return avd
}

func (c *Cache) audit(ctx context.Context, ssid, tsid SID, tclass Class, requested PermSet, avd Decision, decErr error, flags Flags) error {
	granted := decErr == nil

	name, permNames, _ := c.ss.ClassInfo(tclass)
	// SidToContext is for audit rendering only; a failure to render must
	// not itself affect the decision already reached, so the record just
	// carries an empty string for whichever side failed to resolve.
	scontext, _ := c.ss.SidToContext(ctx, ssid)
	tcontext, _ := c.ss.SidToContext(ctx, tsid)
	rec := AuditRecord{
		ID:         uuid.New(),
		Granted:    granted,
		Requested:  requested,
		Decided:    avd.Allowed,
		Ssid:       ssid,
		Tsid:       tsid,
		Tclass:     tclass,
		Scontext:   scontext,
		Tcontext:   tcontext,
		Permissive: !c.ss.Enforcing() || avd.Flags&FlagPermissive != 0,
		ClassName:  name,
		PermNames:  permNames,
	}

	mayNotBlock := flags&FlagMayNotBlock != 0
	if auditErr := c.auditor.Emit(ctx, rec, mayNotBlock); auditErr != nil {
		return auditErr
	}
	return decErr
}
