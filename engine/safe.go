package engine

import (
	"context"
	"fmt"
	"runtime/debug"
)

// PanicError is returned when the oracle panics. Stack is the goroutine
// stack captured at recovery.
type PanicError struct {
	Value any
	Stack []byte
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("oracle panicked: %v", e.Value)
}

// evaluateSafe calls the oracle and recovers a panic into a *PanicError.
func evaluateSafe(ctx context.Context, oracle Oracle, features []string) (score float64, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &PanicError{Value: r, Stack: debug.Stack()}
		}
	}()
	return oracle.Evaluate(ctx, features)
}
