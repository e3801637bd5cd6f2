//go:build avcdebug

package avc_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/skipor/avc/internal/avcmock"
)

func TestDisabledCachePanicsOnUseInDebugBuilds(t *testing.T) {
	ctrl := gomock.NewController(t)
	ss := avcmock.NewMockSecurityServer(ctrl)

	c := newTestCache(t, ss)
	c.Disable()

	require.Panics(t, func() {
		_, _ = c.HasPermNoAudit(context.Background(), 1, 2, 3, 0x1, 0)
	})
}
