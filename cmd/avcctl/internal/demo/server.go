// Package demo provides a toy SecurityServer for avcctl so the debug
// console has something to poke at without a real policy backend.
package demo

import (
	"context"
	"fmt"

	"github.com/skipor/avc"
)

// NewSecurityServer returns a SecurityServer that allows everything and
// never denies, so an operator driving avcctl interactively can watch
// entries populate the cache and observe RESET/STATS behaviour.
func NewSecurityServer() avc.SecurityServer { return server{} }

type server struct{}

func (server) ComputeAV(_ context.Context, ssid, tsid avc.SID, tclass avc.Class) (avc.Decision, *avc.OperationNode, error) {
	return avc.Decision{
		Allowed: 0xFFFFFFFF,
		Seqno:   0,
	}, nil, nil
}

func (server) ComputeOperation(_ context.Context, ssid, tsid avc.SID, tclass avc.Class, opType uint8) (avc.OperationDecision, error) {
	d := avc.OperationDecision{Type: opType, Specified: avc.OperationAllowed}
	for n := 0; n < 256; n++ {
		d.Allowed.Set(uint8(n))
	}
	return d, nil
}

func (server) SidToContext(_ context.Context, sid avc.SID) (string, error) {
	return fmt.Sprintf("demo_u:demo_r:demo_t:sid%d", sid), nil
}

func (server) Enforcing() bool { return false }

func (server) ClassInfo(tclass avc.Class) (string, [32]string, bool) {
	var names [32]string
	names[0] = "read"
	names[1] = "write"
	return "demo_class", names, true
}
