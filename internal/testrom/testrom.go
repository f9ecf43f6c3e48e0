// Package testrom implements the headless Blargg-style test-automation
// convention named in spec §6: a test ROM signals its own progress and
// result by writing to a handful of fixed addresses in the cartridge's
// save-RAM window ($6000-$7FFF), which this package observes from outside
// the core by registering an ordinary bus.Handler (spec §6, "implemented
// atop the bus").
package testrom

import "nesgo/internal/bus"

// Status mirrors the value a test ROM leaves at $6000 once it has started
// signaling results: 0x80 means "running", 0x00 means pass, anything else
// in [0x01, 0x7F] is a failure code.
type Status uint8

const (
	StatusRunning Status = 0x80
	StatusPass    Status = 0x00
)

const (
	addrStatus  = 0x6000
	addrMagic0  = 0x6001
	addrMagic1  = 0x6002
	addrMagic2  = 0x6003
	addrMessage = 0x6004

	magic0 = 0xDE
	magic1 = 0xB0
	magic2 = 0x61
)

// Monitor watches $6000-$7FFF for the result-reporting convention. It owns
// the underlying RAM bytes itself (the convention piggybacks on whatever
// backs that window — PRG-RAM on a battery cartridge, or a bare scratch
// region on a test image with none) so it can be registered standalone
// without a real mapper's save RAM.
type Monitor struct {
	ram [0x2000]uint8
}

// NewMonitor creates an empty $6000-$7FFF observer.
func NewMonitor() *Monitor { return &Monitor{} }

// Attach registers the monitor on b at $6000-$7FFF. It should be registered
// before the cartridge's own handler for that range if the cartridge has no
// real save RAM there, or used standalone against a plain internal/bus.Bus
// in unit tests that never construct a full Console.
func (m *Monitor) Attach(b *bus.Bus) {
	b.Register(&bus.Handler{
		Name:  "testrom",
		Start: 0x6000,
		End:   0x7FFF,
		Read:  func(addr uint16) uint8 { return m.ram[addr-0x6000] },
		Write: func(addr uint16, v uint8) { m.ram[addr-0x6000] = v },
	})
}

// Status returns the current value at $6000.
func (m *Monitor) Status() Status { return Status(m.ram[addrStatus-0x6000]) }

// Started reports whether the test ROM has begun signaling at all: real
// test images leave $6000 at $80 before anything else is meaningful.
func (m *Monitor) Started() bool { return m.Status() == StatusRunning }

// Done reports whether the magic byte sequence $DE $B0 $61 is present at
// $6001-$6003, which a test ROM writes once it has a final result ready.
func (m *Monitor) Done() bool {
	return m.ram[addrMagic0-0x6000] == magic0 &&
		m.ram[addrMagic1-0x6000] == magic1 &&
		m.ram[addrMagic2-0x6000] == magic2
}

// Message returns the NUL-terminated ASCII string starting at $6004.
func (m *Monitor) Message() string {
	end := addrMessage - 0x6000
	for end < len(m.ram) && m.ram[end] != 0 {
		end++
	}
	return string(m.ram[addrMessage-0x6000 : end])
}

// Passed reports whether the test has finished and reported success.
func (m *Monitor) Passed() bool {
	return m.Done() && m.Status() == StatusPass
}

// Failed reports whether the test has finished and reported failure,
// returning the failure code.
func (m *Monitor) Failed() (code uint8, failed bool) {
	if !m.Done() {
		return 0, false
	}
	s := m.Status()
	if s == StatusPass || s == StatusRunning {
		return 0, false
	}
	return uint8(s), true
}
