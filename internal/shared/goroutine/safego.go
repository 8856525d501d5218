// Package goroutine launches background work that must never crash the process.
package goroutine

import (
	"fmt"
	"runtime/debug"

	"github.com/procureflow/procureflow/internal/shared/logger"
)

// SafeGo runs fn in a new goroutine and logs any panic with its stack.
func SafeGo(log logger.Interface, name string, fn func()) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				log.Errorw("goroutine panicked",
					"goroutine", name,
					"panic", fmt.Sprintf("%v", r),
					"stack", string(debug.Stack()),
				)
			}
		}()
		fn()
	}()
}
