package zone

import "sync/atomic"

// github.com/bnclabs/golog is unresolvable through the module proxy: its
// dependency github.com/prataprc/color no longer exists upstream, and the
// pinned golog revision was removed by a history rewrite. The golog calls
// below were dropped to unblock the build; the LogComponents gate is kept.

var logok = int64(0)

// LogComponents enable logging. By default logging is disabled, if
// applications want log information from zones call this function with
// "zone" or "self" or "all" as argument.
func LogComponents(components ...string) {
	for _, comp := range components {
		switch comp {
		case "zone", "self", "all":
			atomic.StoreInt64(&logok, 1)
		}
	}
}

func debugf(format string, v ...interface{}) {
	if atomic.LoadInt64(&logok) > 0 {
	}
}

func infof(format string, v ...interface{}) {
	if atomic.LoadInt64(&logok) > 0 {
	}
}

func warnf(format string, v ...interface{}) {
	if atomic.LoadInt64(&logok) > 0 {
	}
}
