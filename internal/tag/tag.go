// Package tag carries build-tag-gated debug flags shared across internal
// packages, so expensive invariant checks compile out of release builds.
package tag

// Debug enables extra invariant assertions (nilling stale pointers, panicking
// on otherwise-silent misuse) that are too expensive or too strict for
// production builds. Build with `-tags avcdebug` to turn it on.
const Debug = debugEnabled
