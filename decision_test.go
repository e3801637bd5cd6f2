package avc_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/skipor/avc"
	"github.com/skipor/avc/internal/avcmock"
)

func newTestCache(t *testing.T, ss avc.SecurityServer) *avc.Cache {
	t.Helper()
	return avc.New(ss, avc.NopAuditor{}, avc.Options{CacheThreshold: 64, ReclaimBatch: 4})
}

// Scenario 1: miss, compute, cache, allow.
func TestHasPermMissComputesAndCaches(t *testing.T) {
	ctrl := gomock.NewController(t)
	ss := avcmock.NewMockSecurityServer(ctrl)
	ss.EXPECT().ComputeAV(gomock.Any(), avc.SID(1), avc.SID(2), avc.Class(3)).
		Return(avc.Decision{Allowed: 0x3, Seqno: 1}, nil, nil).Times(1)
	ss.EXPECT().Enforcing().Return(true).AnyTimes()
	ss.EXPECT().ClassInfo(gomock.Any()).Return("class", [32]string{}, true).AnyTimes()
	ss.EXPECT().SidToContext(gomock.Any(), gomock.Any()).Return("ctx", nil).AnyTimes()

	c := newTestCache(t, ss)

	err := c.HasPermFlags(context.Background(), 1, 2, 3, 0x1, 0)
	require.NoError(t, err)

	// Second call with the same key must hit the cache, not call ComputeAV
	// again (the mock's Times(1) above enforces this).
	err = c.HasPermFlags(context.Background(), 1, 2, 3, 0x2, 0)
	require.NoError(t, err)
}

// Scenario 2: enforcing deny, even though nothing is permissive.
func TestHasPermEnforcingDeny(t *testing.T) {
	ctrl := gomock.NewController(t)
	ss := avcmock.NewMockSecurityServer(ctrl)
	ss.EXPECT().ComputeAV(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(avc.Decision{Allowed: 0x1, Seqno: 1}, nil, nil)
	ss.EXPECT().Enforcing().Return(true).AnyTimes()
	ss.EXPECT().ClassInfo(gomock.Any()).Return("class", [32]string{}, true).AnyTimes()
	ss.EXPECT().SidToContext(gomock.Any(), gomock.Any()).Return("ctx", nil).AnyTimes()

	c := newTestCache(t, ss)
	err := c.HasPermFlags(context.Background(), 1, 2, 3, 0x2, 0)
	require.ErrorIs(t, err, avc.ErrPermissionDenied)
}

// Scenario 3: permissive decision self-patches the cache on a denied
// permission, so the next identical call is a clean hit with the grant
// already recorded.
func TestHasPermPermissiveGrantSelfPatches(t *testing.T) {
	ctrl := gomock.NewController(t)
	ss := avcmock.NewMockSecurityServer(ctrl)
	ss.EXPECT().ComputeAV(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(avc.Decision{Allowed: 0x1, Seqno: 1, Flags: avc.FlagPermissive}, nil, nil).Times(1)
	ss.EXPECT().Enforcing().Return(false).AnyTimes()
	ss.EXPECT().ClassInfo(gomock.Any()).Return("class", [32]string{}, true).AnyTimes()
	ss.EXPECT().SidToContext(gomock.Any(), gomock.Any()).Return("ctx", nil).AnyTimes()

	c := newTestCache(t, ss)
	err := c.HasPermFlags(context.Background(), 1, 2, 3, 0x2, 0)
	require.NoError(t, err, "permissive policy must not deny")

	avd, err := c.HasPermNoAudit(context.Background(), 1, 2, 3, 0x2, 0)
	require.NoError(t, err)
	require.EqualValues(t, 0x3, avd.Allowed, "the grant from the first call must have been recorded")
}

// A per-entry FlagPermissive decision must grant even while the system is
// globally enforcing — the per-entry bit is the SELinux permissive-types
// override, not merely a restatement of Enforcing()==false.
func TestHasPermPermissiveFlagOverridesGlobalEnforcing(t *testing.T) {
	ctrl := gomock.NewController(t)
	ss := avcmock.NewMockSecurityServer(ctrl)
	ss.EXPECT().ComputeAV(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(avc.Decision{Allowed: 0x1, Seqno: 1, Flags: avc.FlagPermissive}, nil, nil)
	ss.EXPECT().Enforcing().Return(true).AnyTimes()

	c := newTestCache(t, ss)
	_, err := c.HasPermNoAudit(context.Background(), 1, 2, 3, 0x2, 0)
	require.NoError(t, err, "a permissive-typed context must grant even under global enforcing")
}

// A globally non-enforcing system must grant regardless of whether this
// particular entry carries FlagPermissive.
func TestHasPermGlobalNonEnforcingGrantsWithoutPerEntryFlag(t *testing.T) {
	ctrl := gomock.NewController(t)
	ss := avcmock.NewMockSecurityServer(ctrl)
	ss.EXPECT().ComputeAV(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(avc.Decision{Allowed: 0x1, Seqno: 1}, nil, nil)
	ss.EXPECT().Enforcing().Return(false).AnyTimes()

	c := newTestCache(t, ss)
	_, err := c.HasPermNoAudit(context.Background(), 1, 2, 3, 0x2, 0)
	require.NoError(t, err, "a globally non-enforcing system must grant even without the per-entry flag")
}

// FlagStrict overrides the permissive self-patch path and denies outright.
func TestHasPermStrictFlagOverridesPermissive(t *testing.T) {
	ctrl := gomock.NewController(t)
	ss := avcmock.NewMockSecurityServer(ctrl)
	ss.EXPECT().ComputeAV(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(avc.Decision{Allowed: 0x1, Seqno: 1, Flags: avc.FlagPermissive}, nil, nil)
	ss.EXPECT().Enforcing().Return(false).AnyTimes()

	c := newTestCache(t, ss)
	_, err := c.HasPermNoAudit(context.Background(), 1, 2, 3, 0x2, avc.FlagStrict)
	require.ErrorIs(t, err, avc.ErrPermissionDenied)
}

// Scenario 5/6: a miss with no ops_node at all calls ComputeOperation
// exactly once, attaches the resulting OperationDecision, and a second
// identical call takes the fast path instead of recomputing.
func TestHasOperationComputesAndAttachesOnFirstUseThenFastPaths(t *testing.T) {
	ctrl := gomock.NewController(t)
	ss := avcmock.NewMockSecurityServer(ctrl)

	ss.EXPECT().ComputeAV(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(avc.Decision{Allowed: 0xFF, Seqno: 1}, nil, nil)
	ss.EXPECT().Enforcing().Return(true).AnyTimes()
	ss.EXPECT().ClassInfo(gomock.Any()).Return("class", [32]string{}, true).AnyTimes()
	ss.EXPECT().SidToContext(gomock.Any(), gomock.Any()).Return("ctx", nil).AnyTimes()

	opDecision := avc.OperationDecision{Type: 5, Specified: avc.OperationAllowed}
	// bit 42 left clear: the requested operation number is denied.
	ss.EXPECT().ComputeOperation(gomock.Any(), avc.SID(1), avc.SID(2), avc.Class(3), uint8(5)).
		Return(opDecision, nil).Times(1)

	c := newTestCache(t, ss)
	cmd := avc.Cmd{Type: 5, Number: 42}

	err := c.HasOperation(context.Background(), 1, 2, 3, 0x1, cmd, 0)
	require.ErrorIs(t, err, avc.ErrPermissionDenied, "first call: ComputeOperation denies bit 42")

	// Second call for the same (type, number) must hit the attached entry
	// and not call ComputeOperation again (enforced by .Times(1) above).
	err = c.HasOperation(context.Background(), 1, 2, 3, 0x1, cmd, 0)
	require.ErrorIs(t, err, avc.ErrPermissionDenied)
}

func TestSSResetFlushesBumpsSeqnoAndRunsCallbacks(t *testing.T) {
	ctrl := gomock.NewController(t)
	ss := avcmock.NewMockSecurityServer(ctrl)
	ss.EXPECT().ComputeAV(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(avc.Decision{Allowed: 0x1, Seqno: 1}, nil, nil)
	ss.EXPECT().Enforcing().Return(true).AnyTimes()
	ss.EXPECT().ClassInfo(gomock.Any()).Return("class", [32]string{}, true).AnyTimes()
	ss.EXPECT().SidToContext(gomock.Any(), gomock.Any()).Return("ctx", nil).AnyTimes()

	c := newTestCache(t, ss)
	require.NoError(t, c.HasPermFlags(context.Background(), 1, 2, 3, 0x1, 0))

	var notifiedSeqno uint32
	c.AddCallback(avc.Callback{
		Fn:           func(seqno uint32) error { notifiedSeqno = seqno; return nil },
		Events:       avc.EventReset,
		FilterSsid:   avc.WildSID,
		FilterTsid:   avc.WildSID,
		FilterTclass: avc.WildClass,
	})

	require.NoError(t, c.SSReset(5))
	require.EqualValues(t, 5, notifiedSeqno)
	require.EqualValues(t, 5, c.PolicySeqno())
}

func TestFlushIsIdempotent(t *testing.T) {
	ctrl := gomock.NewController(t)
	ss := avcmock.NewMockSecurityServer(ctrl)
	c := newTestCache(t, ss)

	require.NoError(t, c.SSReset(1))
	require.NoError(t, c.SSReset(1))
	require.EqualValues(t, 1, c.PolicySeqno())
}
