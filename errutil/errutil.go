// Package errutil provides the two non-recoverable error kinds used across
// the module: programmer-error panics (UsageError) raised from internal
// helpers, and small error-composition helpers used at construction/query
// boundaries.
package errutil

import "fmt"

const debug = true

// First returns the first non-nil error in errs, or nil if all are nil.
func First(errs ...error) error {
	for _, e := range errs {
		if e != nil {
			return e
		}
	}
	return nil
}

// FatalIf panics if err is non-nil. Used at call sites that have already
// established err can only be a programmer error, never a caller input
// error.
func FatalIf(err error) {
	if err == nil {
		return
	}
	panic(fmt.Sprintf("FATAL: %v", err))
}

// Bug panics with the formatted message. Internal contract violations
// (UsageError, spec.md §7) go through here.
func Bug(format string, msg ...any) {
	if debug {
		panic(fmt.Sprintf(format, msg...))
	}
}

// BugOn panics with the formatted message if cond is true.
func BugOn(cond bool, format string, msg ...any) {
	if debug && cond {
		Bug(format, msg...)
	}
}

// BugOnNotEq panics if a != b.
func BugOnNotEq(a, b any) {
	if a == b {
		return
	}
	Bug("BUG: a != b, %v != %v", a, b)
}
