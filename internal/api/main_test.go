// ABOUTME: Package test entry point.
// ABOUTME: Fails the run if tests leave goroutines behind.

package api

import (
	"testing"

	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}
