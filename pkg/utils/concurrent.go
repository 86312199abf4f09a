package utils

import (
	// 外部依赖
	"fmt"
	"runtime/debug"
)

// SafelyRun invokes function and converts a panic into an error carrying
// the stack trace.
func SafelyRun(function func()) (err error) {
	defer func() {
		if r := recover(); r != nil {
			if e, ok := r.(error); ok {
				err = fmt.Errorf("%w\n%s", e, string(debug.Stack()))
			} else {
				err = fmt.Errorf("panic: %v\n%s", r, string(debug.Stack()))
			}
		}
	}()

	function()

	return nil
}

// SafelyGo runs function on its own goroutine. A panic is recovered and
// handed to handleError instead of crashing the process.
func SafelyGo(function func(), handleError func(error)) {
	go func() {
		if err := SafelyRun(function); err != nil {
			handleError(err)
		}
	}()
}
