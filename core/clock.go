package core

import (
	"github.com/benbjohnson/clock"
)

// Clock supplies the monotonic block timestamp spec.md requires for
// end_time_ms/expiry comparisons. A real deployment wires the host's wall
// clock; tests wire a mock so boundary scenarios (spec.md's anti-snipe and
// expiry edge cases) run instantly and deterministically.
type Clock interface {
	NowMs() uint64
}

// SystemClock wraps clock.Clock (the real clock by default) and reports
// time as Unix milliseconds.
type SystemClock struct {
	C clock.Clock
}

// NewSystemClock returns a SystemClock backed by the real wall clock.
func NewSystemClock() *SystemClock {
	return &SystemClock{C: clock.New()}
}

// NowMs returns the current time as Unix milliseconds.
func (s *SystemClock) NowMs() uint64 {
	return uint64(s.C.Now().UnixMilli())
}

// MockClock wraps clock.Mock for deterministic tests.
type MockClock struct {
	M *clock.Mock
}

// NewMockClock returns a MockClock initialized to the Unix epoch.
func NewMockClock() *MockClock {
	return &MockClock{M: clock.NewMock()}
}

// NowMs returns the mock's current time as Unix milliseconds.
func (m *MockClock) NowMs() uint64 {
	return uint64(m.M.Now().UnixMilli())
}
