package avc_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/skipor/avc"
	"github.com/skipor/avc/internal/avcmock"
)

func TestDisableFlushesCache(t *testing.T) {
	ctrl := gomock.NewController(t)
	ss := avcmock.NewMockSecurityServer(ctrl)
	ss.EXPECT().ComputeAV(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(avc.Decision{Allowed: 0x1, Seqno: 1}, nil, nil)
	ss.EXPECT().Enforcing().Return(true).AnyTimes()
	ss.EXPECT().ClassInfo(gomock.Any()).Return("class", [32]string{}, true).AnyTimes()
	ss.EXPECT().SidToContext(gomock.Any(), gomock.Any()).Return("ctx", nil).AnyTimes()

	c := newTestCache(t, ss)
	require.NoError(t, c.HasPermFlags(context.Background(), 1, 2, 3, 0x1, 0))

	c.Disable()

	stats := c.HashStatsText()
	require.Contains(t, stats, "entries: 0")
}

func TestHashStatsTextReportsCounters(t *testing.T) {
	ctrl := gomock.NewController(t)
	ss := avcmock.NewMockSecurityServer(ctrl)
	ss.EXPECT().ComputeAV(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(avc.Decision{Allowed: 0x1, Seqno: 1}, nil, nil)
	ss.EXPECT().Enforcing().Return(true).AnyTimes()
	ss.EXPECT().ClassInfo(gomock.Any()).Return("class", [32]string{}, true).AnyTimes()
	ss.EXPECT().SidToContext(gomock.Any(), gomock.Any()).Return("ctx", nil).AnyTimes()

	c := newTestCache(t, ss)
	require.NoError(t, c.HasPermFlags(context.Background(), 1, 2, 3, 0x1, 0))
	require.NoError(t, c.HasPermFlags(context.Background(), 1, 2, 3, 0x1, 0))

	stats := c.HashStatsText()
	require.Contains(t, stats, "entries: 1")
	require.Contains(t, stats, "lookups:")
}
