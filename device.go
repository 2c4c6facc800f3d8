package mbslave

import "github.com/GoAethereal/mbslave/internal/heap"

// defaultHeapSize is the production region size, matching the reference
// device's 2 KiB slab.
const defaultHeapSize = 2048

// BitMap is a window over a caller-owned byte slice addressed as Modbus
// bits: bit a lives at Backing[a/8], mask 0x80>>(a mod 8). Start and End
// bound the byte index a/8 must fall in, not the bit address itself.
type BitMap struct {
	Start, End uint16
	Backing    []byte
}

func (m BitMap) byteInRange(byteIdx uint16) bool {
	return byteIdx >= m.Start && byteIdx < m.End
}

// RegisterMap is a window over a caller-owned 16-bit word slice, addressed
// directly by register index. Start and End bound the register address.
type RegisterMap struct {
	Start, End uint16
	Backing    []uint16
}

func (m RegisterMap) addrInRange(addr uint16) bool {
	return addr >= m.Start && addr < m.End
}

// Counters are the eight Modbus diagnostic counters, each wrapping on
// overflow like the reference device's uint16 counters.
type Counters struct {
	BusMsg         uint16
	BusComErr      uint16
	ExcErr         uint16
	SlaveMsg       uint16
	SlaveNoResp    uint16
	SlaveNAK       uint16
	SlaveBusy      uint16
	BusCharOverrun uint16
}

// reset zeroes every counter, used by diagnostic sub-codes 0x01 (restart
// comms) and 0x0A. Sub-code 0x14 clears only the overrun counter and does
// not call reset; a new Device starts with zeroed counters.
func (c *Counters) reset() {
	*c = Counters{}
}

// Options configures a Device. Coils, DiscreteInputs, Holding, and Input
// describe the four address-map windows over storage the caller owns; the
// core never resizes or reallocates them. Send delivers one fully-formed
// response frame synchronously. HeapSize defaults to 2048 bytes
// (defaultHeapSize) when zero.
type Options struct {
	Address        byte
	Coils          BitMap
	DiscreteInputs BitMap
	Holding        RegisterMap
	Input          RegisterMap
	Send           func([]byte)
	Logger         Logger
	HeapSize       int
	// Functions, if non-nil, replaces the built-in function registry
	// entirely. Most embedders leave this nil and get defaultRegistry().
	Functions []functionEntry
}

// Verify checks Options for the combinations the core cannot operate
// with, returning ErrInvalidParameter on any violation.
func (o Options) Verify() error {
	if o.Address == 0 {
		// address 0 is reserved for broadcast; a device cannot bind it
		return ErrInvalidParameter
	}
	if o.Send == nil {
		return ErrInvalidParameter
	}
	if o.Coils.End < o.Coils.Start || o.DiscreteInputs.End < o.DiscreteInputs.Start {
		return ErrInvalidParameter
	}
	if o.Holding.End < o.Holding.Start || o.Input.End < o.Input.Start {
		return ErrInvalidParameter
	}
	return nil
}

// Device is a single logical Modbus RTU slave bound to one transport. It is
// constructed once by New and is immutable thereafter except for the
// counters, exception status, and busy flag the dispatcher mutates.
//
// HandleRequest is not safe for concurrent invocation: callers on
// multi-threaded hosts must serialize calls with an external mutex, per the
// single-threaded contract the core assumes internally.
type Device struct {
	address        byte
	coils          BitMap
	discreteInputs BitMap
	holding        RegisterMap
	input          RegisterMap
	send           func([]byte)
	logger         Logger
	heap           *heap.Heap
	registry       []functionEntry

	busy            bool
	counters        Counters
	exceptionStatus byte
}

// New validates opts and constructs a Device ready to accept requests via
// HandleRequest. The returned Device is immutable: its address and address
// maps never change for the life of the program.
func New(opts Options) (*Device, error) {
	if err := opts.Verify(); err != nil {
		return nil, err
	}
	size := opts.HeapSize
	if size == 0 {
		size = defaultHeapSize
	}
	logger := opts.Logger
	if logger == nil {
		logger = nopLogger{}
	}
	registry := opts.Functions
	if registry == nil {
		registry = defaultRegistry()
	}
	d := &Device{
		address:        opts.Address,
		coils:          opts.Coils,
		discreteInputs: opts.DiscreteInputs,
		holding:        opts.Holding,
		input:          opts.Input,
		send:           opts.Send,
		logger:         logger,
		heap:           heap.New(size),
		registry:       registry,
	}
	return d, nil
}

// Counters returns a snapshot of the eight diagnostic counters.
func (d *Device) Counters() Counters {
	return d.counters
}

// ExceptionStatus returns the current exception-status byte.
func (d *Device) ExceptionStatus() byte {
	return d.exceptionStatus
}
