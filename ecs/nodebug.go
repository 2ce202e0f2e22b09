//go:build !ecsdebug

package ecs

// DebugAsserts is true when the package is built with the ecsdebug tag.
const DebugAsserts = false
