package cardio

import "fmt"

// assertf panics with a formatted message when cond is false. Used only for
// facade-contract violations (an out-of-order sample index) that spec.md §7
// classifies as programming bugs, never for conditions a caller could
// recover from at runtime. Producer overrun is not checked.
func assertf(cond bool, format string, args ...any) {
	if !cond {
		panic(fmt.Sprintf(format, args...))
	}
}
