package testrom

import (
	"testing"

	"nesgo/internal/bus"
)

func newAttachedMonitor() (*Monitor, *bus.Bus) {
	b := bus.New(nil)
	m := NewMonitor()
	m.Attach(b)
	return m, b
}

func TestStartedReflectsRunningStatus(t *testing.T) {
	m, b := newAttachedMonitor()
	if m.Started() {
		t.Fatal("fresh monitor should not report started")
	}
	b.Write(0x6000, 0x80)
	if !m.Started() {
		t.Fatal("monitor should report started once $6000 = $80")
	}
}

func TestDoneRequiresExactMagicSequence(t *testing.T) {
	m, b := newAttachedMonitor()
	b.Write(0x6001, 0xDE)
	b.Write(0x6002, 0xB0)
	if m.Done() {
		t.Fatal("Done should require all three magic bytes")
	}
	b.Write(0x6003, 0x61)
	if !m.Done() {
		t.Fatal("Done should be true once all three magic bytes are present")
	}
}

func TestPassedRequiresStatusZeroAndMagic(t *testing.T) {
	m, b := newAttachedMonitor()
	b.Write(0x6000, 0x00)
	b.Write(0x6001, 0xDE)
	b.Write(0x6002, 0xB0)
	b.Write(0x6003, 0x61)
	if !m.Passed() {
		t.Fatal("status 0 plus magic sequence should report Passed")
	}
	if _, failed := m.Failed(); failed {
		t.Fatal("a passing result should not also report Failed")
	}
}

func TestFailedReturnsStatusCode(t *testing.T) {
	m, b := newAttachedMonitor()
	b.Write(0x6000, 0x05)
	b.Write(0x6001, 0xDE)
	b.Write(0x6002, 0xB0)
	b.Write(0x6003, 0x61)
	code, failed := m.Failed()
	if !failed {
		t.Fatal("nonzero status with magic sequence should report Failed")
	}
	if code != 5 {
		t.Fatalf("failure code = %d, want 5", code)
	}
	if m.Passed() {
		t.Fatal("a failing result should not also report Passed")
	}
}

func TestMessageReadsNulTerminatedString(t *testing.T) {
	m, b := newAttachedMonitor()
	msg := "ok"
	for i, ch := range []byte(msg) {
		b.Write(uint16(0x6004+i), ch)
	}
	if got := m.Message(); got != msg {
		t.Fatalf("Message() = %q, want %q", got, msg)
	}
}

func TestFailedFalseWhileStillRunning(t *testing.T) {
	m, b := newAttachedMonitor()
	b.Write(0x6000, 0x80)
	if _, failed := m.Failed(); failed {
		t.Fatal("a running test (status $80, no magic yet) should not report Failed")
	}
	if m.Passed() {
		t.Fatal("a running test should not report Passed")
	}
}
