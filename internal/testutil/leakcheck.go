// Package testutil provides testing utilities for the event dispatcher.
package testutil

import (
	"testing"

	"go.uber.org/goleak"
)

// VerifyNoLeaks should be deferred at the start of tests that spawn goroutines.
// It verifies that no goroutines were leaked during the test.
func VerifyNoLeaks(t *testing.T, opts ...goleak.Option) {
	t.Helper()
	goleak.VerifyNone(t, opts...)
}

// IgnoreCurrent returns goleak options ignoring goroutines already running when
// the test starts, such as those of parallel tests in the same package.
func IgnoreCurrent() []goleak.Option {
	return []goleak.Option{
		goleak.IgnoreCurrent(),
	}
}
