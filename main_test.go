package segment

import (
	"testing"

	"go.uber.org/goleak"
)

// The engine is single-threaded; no test may leave a goroutine behind.
func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}
