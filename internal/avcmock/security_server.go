// Package avcmock contains a hand-maintained mock of avc.SecurityServer in
// the shape go.uber.org/mock's mockgen would generate for it, so tests
// don't need the mockgen binary to regenerate it whenever the interface
// changes in lockstep with this file.
package avcmock

import (
	"context"
	"reflect"

	"go.uber.org/mock/gomock"

	"github.com/skipor/avc"
)

// MockSecurityServer is a mock of avc.SecurityServer.
type MockSecurityServer struct {
	ctrl     *gomock.Controller
	recorder *MockSecurityServerMockRecorder
}

// MockSecurityServerMockRecorder is the recorder for MockSecurityServer.
type MockSecurityServerMockRecorder struct {
	mock *MockSecurityServer
}

// NewMockSecurityServer creates a new mock instance.
func NewMockSecurityServer(ctrl *gomock.Controller) *MockSecurityServer {
	m := &MockSecurityServer{ctrl: ctrl}
	m.recorder = &MockSecurityServerMockRecorder{m}
	return m
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockSecurityServer) EXPECT() *MockSecurityServerMockRecorder {
	return m.recorder
}

func (m *MockSecurityServer) ComputeAV(ctx context.Context, ssid, tsid avc.SID, tclass avc.Class) (avc.Decision, *avc.OperationNode, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "ComputeAV", ctx, ssid, tsid, tclass)
	ret0, _ := ret[0].(avc.Decision)
	ret1, _ := ret[1].(*avc.OperationNode)
	ret2, _ := ret[2].(error)
	return ret0, ret1, ret2
}

func (mr *MockSecurityServerMockRecorder) ComputeAV(ctx, ssid, tsid, tclass interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "ComputeAV", reflect.TypeOf((*MockSecurityServer)(nil).ComputeAV), ctx, ssid, tsid, tclass)
}

func (m *MockSecurityServer) ComputeOperation(ctx context.Context, ssid, tsid avc.SID, tclass avc.Class, opType uint8) (avc.OperationDecision, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "ComputeOperation", ctx, ssid, tsid, tclass, opType)
	ret0, _ := ret[0].(avc.OperationDecision)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

func (mr *MockSecurityServerMockRecorder) ComputeOperation(ctx, ssid, tsid, tclass, opType interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "ComputeOperation", reflect.TypeOf((*MockSecurityServer)(nil).ComputeOperation), ctx, ssid, tsid, tclass, opType)
}

func (m *MockSecurityServer) SidToContext(ctx context.Context, sid avc.SID) (string, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "SidToContext", ctx, sid)
	ret0, _ := ret[0].(string)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

func (mr *MockSecurityServerMockRecorder) SidToContext(ctx, sid interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "SidToContext", reflect.TypeOf((*MockSecurityServer)(nil).SidToContext), ctx, sid)
}

func (m *MockSecurityServer) Enforcing() bool {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Enforcing")
	ret0, _ := ret[0].(bool)
	return ret0
}

func (mr *MockSecurityServerMockRecorder) Enforcing() *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Enforcing", reflect.TypeOf((*MockSecurityServer)(nil).Enforcing))
}

func (m *MockSecurityServer) ClassInfo(tclass avc.Class) (string, [32]string, bool) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "ClassInfo", tclass)
	ret0, _ := ret[0].(string)
	ret1, _ := ret[1].([32]string)
	ret2, _ := ret[2].(bool)
	return ret0, ret1, ret2
}

func (mr *MockSecurityServerMockRecorder) ClassInfo(tclass interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "ClassInfo", reflect.TypeOf((*MockSecurityServer)(nil).ClassInfo), tclass)
}

var _ avc.SecurityServer = (*MockSecurityServer)(nil)
