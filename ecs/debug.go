//go:build ecsdebug

package ecs

// DebugAsserts is true when the package is built with the ecsdebug tag.
// Internal invariant checks panic instead of being skipped.
const DebugAsserts = true
