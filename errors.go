package avc

import "errors"

// Sentinel error kinds. Callers compare with errors.Is; none of
// these except ErrPermissionDenied and ErrTryAgainNonblocking are meant to
// reach a caller of the decision protocol — cache-management failures are
// never fatal to a permission check.
var (
	// ErrPermissionDenied: the policy result is deny, and the cache is
	// enforcing (or the caller passed FlagStrict).
	ErrPermissionDenied = errors.New("avc: permission denied")

	// ErrNotFound: an update targeted a node that no longer exists.
	// Benign; the update is discarded.
	ErrNotFound = errors.New("avc: update target not found")

	// ErrTryAgainNonblocking: the audit path needed to allocate sleepable
	// memory while FlagMayNotBlock was set.
	ErrTryAgainNonblocking = errors.New("avc: try again, non-blocking context")
)
