package ecs

import "fmt"

// assert panics with a formatted message when cond is false and the package
// was built with the ecsdebug tag. Release builds skip the check.
func assert(cond bool, format string, args ...any) {
	if DebugAsserts && !cond {
		panic(fmt.Sprintf("ecs: "+format, args...))
	}
}
