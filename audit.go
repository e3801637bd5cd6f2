package avc

import (
	"context"

	"github.com/google/uuid"
)

// AuditRecord carries everything needed to render one audit line: "avc:
// denied|granted {perm, ...} scontext=... tcontext=... tclass=...
// permissive=0|1".
type AuditRecord struct {
	// ID correlates this record with other log lines emitted for the same
	// decision (e.g. a debug-level cache-miss trace and the audit record
	// it eventually produces).
	ID         uuid.UUID
	Granted    bool
	Requested  PermSet
	Decided    PermSet
	Ssid, Tsid SID
	Tclass     Class
	// Scontext and Tcontext are the human-readable renderings of Ssid and
	// Tsid, produced via SecurityServer.SidToContext for audit text only —
	// nothing in the decision path keys off them.
	Scontext, Tcontext string
	Permissive         bool
	ClassName          string
	PermNames          [32]string
}

// Auditor is the external audit subsystem the cache emits structured
// records to. MayNotBlock mirrors FlagMayNotBlock: Emit must not allocate
// sleepable memory when it is true, returning ErrTryAgainNonblocking
// instead of blocking.
type Auditor interface {
	Emit(ctx context.Context, rec AuditRecord, mayNotBlock bool) error
}

// NopAuditor discards every record; useful for tests and for callers who
// only want enforcement, not logging.
type NopAuditor struct{}

func (NopAuditor) Emit(context.Context, AuditRecord, bool) error { return nil }
