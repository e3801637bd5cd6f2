package avc

// Flags is a bitmask of caller-recognised behaviour switches.
type Flags uint32

const (
	// FlagStrict: on deny, never self-patch via a GRANT update even under
	// a permissive decision; fail immediately instead.
	FlagStrict Flags = 1 << iota

	// FlagOperationCmd: the caller's update may adjust per-operation
	// allow bits. HasOperation does not set it; without it, a self-patch
	// grants only the coarse permission bits.
	FlagOperationCmd

	// FlagMayNotBlock: the audit path must not allocate sleepable memory;
	// it returns ErrTryAgainNonblocking instead.
	FlagMayNotBlock
)
