package led

import (
	"fmt"
	"sync"

	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
	"periph.io/x/conn/v3/spi/spireg"
)

// WS2812 bit encoding over a byte-oriented SPI port. Each logical color bit
// is oversampled into one symbol byte, shifted out MSB first at symbolRate so
// a byte's transmission time matches one protocol bit slot: 0b11000000 is the
// short high pulse the chips read as 0, 0b11111100 the long pulse they read
// as 1. The zero preamble holds the line low past the chips' minimum reset
// duration before data starts; 42 bytes is ~51us at 6.5MHz and must be
// recomputed from the datasheet if symbolRate changes.
const (
	zeroSymbol = 0b1100_0000
	oneSymbol  = 0b1111_1100

	preambleLen = 42

	symbolRate = 6500 * physic.KiloHertz
)

// SPI drives a WS2812 strip through an SPI port. It owns the port handle and
// the frame buffers for its entire lifetime.
type SPI struct {
	mu     sync.Mutex
	port   spi.PortCloser // nil when built on a port the caller owns
	conn   spi.Conn
	count  int
	frame  []byte // preamble + 24 symbol bytes per LED, reused across writes
	reset  []byte // precomputed all-off frame, never mutated after build
	closed bool
}

// NewSPI prepares a WS2812 driver on p, configured for mode 0, 8 bits per
// word at the symbol rate. If p also implements spi.PortCloser the driver
// takes ownership and Close releases it.
func NewSPI(p spi.Port, count int) (*SPI, error) {
	if count < 0 {
		return nil, fmt.Errorf("invalid LED count %d", count)
	}
	c, err := p.Connect(symbolRate, spi.Mode0, 8)
	if err != nil {
		return nil, fmt.Errorf("spi connect: %w", err)
	}
	d := &SPI{
		conn:  c,
		count: count,
		frame: make([]byte, preambleLen+count*24),
		reset: make([]byte, preambleLen+count*24),
	}
	if pc, ok := p.(spi.PortCloser); ok {
		d.port = pc
	}
	for i := preambleLen; i < len(d.reset); i++ {
		d.reset[i] = zeroSymbol
	}
	return d, nil
}

// Open acquires the named SPI port from the host registry ("" picks the
// first available) and hands it to NewSPI. The returned driver owns the
// port; callers must Close it on every exit path.
func Open(name string, count int) (*SPI, error) {
	p, err := spireg.Open(name)
	if err != nil {
		return nil, fmt.Errorf("open spi port: %w", err)
	}
	d, err := NewSPI(p, count)
	if err != nil {
		_ = p.Close()
		return nil, err
	}
	return d, nil
}

// Write expands each bit of the GRB buffer, MSB first, into its symbol byte
// and transmits the whole frame, preamble included, as one transaction.
func (d *SPI) Write(grb []byte) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return ErrClosed
	}
	if len(grb) != d.count*3 {
		return fmt.Errorf("got %d bytes, want %d for %d LEDs: %w",
			len(grb), d.count*3, d.count, ErrInvalidBufferLength)
	}
	data := d.frame[preambleLen:]
	for i, b := range grb {
		for bit := 0; bit < 8; bit++ {
			if b&(0x80>>bit) != 0 {
				data[i*8+bit] = oneSymbol
			} else {
				data[i*8+bit] = zeroSymbol
			}
		}
	}
	if err := d.conn.Tx(d.frame, nil); err != nil {
		return fmt.Errorf("spi write: %w", err)
	}
	return nil
}

// Clear transmits the precomputed all-off frame.
func (d *SPI) Clear() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return ErrClosed
	}
	if err := d.conn.Tx(d.reset, nil); err != nil {
		return fmt.Errorf("spi clear: %w", err)
	}
	return nil
}

func (d *SPI) LedCount() int { return d.count }

// Close releases the underlying port if the driver owns it. Safe to call
// more than once.
func (d *SPI) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return nil
	}
	d.closed = true
	if d.port != nil {
		return d.port.Close()
	}
	return nil
}
