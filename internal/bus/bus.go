// Package bus is a flat 64KiB address space that satisfies the memory
// interface of the CPU. It maps only what a headless program runner needs:
// an optional write-protected region for the program image, the serial port
// at FF01/FF02 and the interrupt registers at FF0F and FFFF.
package bus

import (
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/FabianRolfMatthiasNoll/lr35902/internal/cpu"
)

// Addresses of the registers the bus treats specially.
const (
	SB uint16 = 0xff01 // serial transfer data
	SC uint16 = 0xff02 // serial transfer control
	IF uint16 = 0xff0f
	IE uint16 = 0xffff
)

// ErrReadOnly is wrapped by the FaultError returned for a write to protected
// memory.
var ErrReadOnly = errors.New("bus: memory is read-only")

// FaultError is returned by Write() when the write was refused.
type FaultError struct {
	Address uint16
	Data    uint8
	Err     error
}

func (e *FaultError) Error() string {
	return fmt.Sprintf("bus: write of %#02x to (%#04x): %v", e.Data, e.Address, e.Err)
}

func (e *FaultError) Unwrap() error {
	return e.Err
}

// InterruptRegisters is implemented by the CPU, which holds IF and IE.
type InterruptRegisters interface {
	InterruptFlags() uint8
	SetInterruptFlags(v uint8)
	InterruptEnable() uint8
	SetInterruptEnable(v uint8)

	// RequestInterrupt sets one IF bit without disturbing the others.
	RequestInterrupt(line cpu.Interrupt)
}

// Bus is safe for concurrent use.
type Bus struct {
	mu  sync.RWMutex
	mem [0x10000]uint8

	// writes to addresses below readOnly fail
	readOnly int

	serial io.Writer
	irq    InterruptRegisters
}

// New returns a bus with image copied to address zero. Images larger than
// the address space are truncated.
func New(image []byte) *Bus {
	b := &Bus{}
	copy(b.mem[:], image)
	return b
}

// Load copies data into memory starting at address, ignoring write
// protection. It is an error for data to run past the end of the address
// space.
func (b *Bus) Load(address uint16, data []byte) error {
	if int(address)+len(data) > len(b.mem) {
		return fmt.Errorf("bus: %d bytes at (%#04x) overruns address space", len(data), address)
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	copy(b.mem[address:], data)
	return nil
}

// SetReadOnly protects the addresses below limit from writes by the CPU. A
// limit of zero removes the protection.
func (b *Bus) SetReadOnly(limit int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.readOnly = max(0, min(limit, len(b.mem)))
}

// SetSerialWriter connects a writer to receive bytes sent over the serial
// port. Test programs report results this way.
func (b *Bus) SetSerialWriter(w io.Writer) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.serial = w
}

// ConnectInterrupts maps IF and IE to the registers held by irq. Until it is
// called they are ordinary memory.
func (b *Bus) ConnectInterrupts(irq InterruptRegisters) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.irq = irq
}

// Read implements the cpu.Memory interface. Reads never fail.
func (b *Bus) Read(address uint16) (uint8, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.irq != nil {
		switch address {
		case IF:
			return 0xe0 | b.irq.InterruptFlags(), nil
		case IE:
			return b.irq.InterruptEnable(), nil
		}
	}
	return b.mem[address], nil
}

// Peek returns the byte at address without side effects.
func (b *Bus) Peek(address uint16) uint8 {
	v, _ := b.Read(address)
	return v
}

// Write implements the cpu.Memory interface.
func (b *Bus) Write(address uint16, data uint8) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if int(address) < b.readOnly {
		return &FaultError{Address: address, Data: data, Err: ErrReadOnly}
	}

	if b.irq != nil {
		switch address {
		case IF:
			b.irq.SetInterruptFlags(data)
			return nil
		case IE:
			b.irq.SetInterruptEnable(data)
			return nil
		}
	}

	b.mem[address] = data

	// a transfer started with the internal clock completes at once
	if address == SC && data&0x81 == 0x81 {
		if b.serial != nil {
			_, _ = b.serial.Write([]byte{b.mem[SB]})
		}
		b.mem[SC] = data &^ 0x80
		if b.irq != nil {
			b.irq.RequestInterrupt(cpu.Serial)
		}
	}

	return nil
}
