// Package bus implements the NES CPU address bus: a handler-dispatched
// read/write mapping over the 16-bit address space with per-handler
// mirroring, as described by spec §4.1. Dispatch is O(1): a 256-entry page
// table keyed by the address's high byte is rebuilt whenever a handler is
// registered.
package bus

import "fmt"

// ReadFunc services a bus read at addr, which has already had mirroring
// folded in by the Bus (it is the handler's "effective address").
type ReadFunc func(addr uint16) uint8

// WriteFunc services a bus write at addr (already mirror-folded) with val.
type WriteFunc func(addr uint16, val uint8)

// Handler describes one registered address-range responder.
type Handler struct {
	Name  string
	Start uint16
	End   uint16

	// MirrorSize, when non-zero, folds any address in [Start, End] down to
	// Start + ((addr - Start) mod MirrorSize) before Read/Write is called.
	MirrorSize uint16

	Read  ReadFunc
	Write WriteFunc
}

func (h *Handler) covers(addr uint16) bool {
	return addr >= h.Start && addr <= h.End
}

func (h *Handler) effective(addr uint16) uint16 {
	if h.MirrorSize == 0 {
		return addr
	}
	return h.Start + (addr-h.Start)%h.MirrorSize
}

// Bus is a 16-bit address bus with open-bus fallback.
type Bus struct {
	handlers []*Handler
	page     [256]*Handler

	// openBus is consulted for addresses no handler covers. It is normally
	// supplied by the CPU so unmapped reads reproduce the open-bus latch.
	openBus func() uint8
}

// New creates an empty Bus. openBus supplies the value returned by reads to
// addresses with no registered handler; it may be nil, in which case
// unmapped reads return 0.
func New(openBus func() uint8) *Bus {
	return &Bus{openBus: openBus}
}

// Register attaches h to its address range. Per spec §3, the first
// registered handler covering a given address wins: a later registration
// that overlaps an already-covered page does not override it there.
func (b *Bus) Register(h *Handler) {
	b.handlers = append(b.handlers, h)
	for page := int(h.Start >> 8); page <= int(h.End>>8); page++ {
		if b.page[page] == nil {
			b.page[page] = h
		}
	}
}

// Read dispatches a CPU read through the page table.
func (b *Bus) Read(addr uint16) uint8 {
	h := b.page[addr>>8]
	if h == nil || !h.covers(addr) {
		return b.openBusValue()
	}
	return h.Read(h.effective(addr))
}

// Write dispatches a CPU write through the page table.
func (b *Bus) Write(addr uint16, val uint8) {
	h := b.page[addr>>8]
	if h == nil || !h.covers(addr) {
		return
	}
	h.Write(h.effective(addr), val)
}

func (b *Bus) openBusValue() uint8 {
	if b.openBus == nil {
		return 0
	}
	return b.openBus()
}

// HandlerAt returns the symbolic name of the handler covering addr, or ""
// if the address is unmapped. Intended for debuggers/tracers.
func (b *Bus) HandlerAt(addr uint16) string {
	h := b.page[addr>>8]
	if h == nil || !h.covers(addr) {
		return ""
	}
	return h.Name
}

// String renders the registered handler table, for diagnostics.
func (b *Bus) String() string {
	s := ""
	for _, h := range b.handlers {
		s += fmt.Sprintf("%-12s $%04X-$%04X mirror=%d\n", h.Name, h.Start, h.End, h.MirrorSize)
	}
	return s
}
