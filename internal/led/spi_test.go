package led_test

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
	"periph.io/x/conn/v3/spi/spitest"

	"github.com/coreman2200/funtimes-ledstrip/internal/led"
)

const (
	zeroSym     = 0b1100_0000
	oneSym      = 0b1111_1100
	preambleLen = 42
)

// decodeFrame walks one recorded transmission back through the symbol table
// and returns the GRB bytes it carried.
func decodeFrame(t *testing.T, raw []byte, count int) []byte {
	t.Helper()
	require.Len(t, raw, preambleLen+count*24)
	for i, b := range raw[:preambleLen] {
		require.EqualValues(t, 0, b, "preamble byte %d", i)
	}
	out := make([]byte, count*3)
	for i := range out {
		var v byte
		for bit := 0; bit < 8; bit++ {
			switch raw[preambleLen+i*8+bit] {
			case oneSym:
				v |= 0x80 >> bit
			case zeroSym:
			default:
				t.Fatalf("unexpected symbol 0x%02X at data byte %d bit %d",
					raw[preambleLen+i*8+bit], i, bit)
			}
		}
		out[i] = v
	}
	return out
}

func TestWriteFrameShape(t *testing.T) {
	buf := bytes.Buffer{}
	d, err := led.NewSPI(spitest.NewRecordRaw(&buf), 3)
	require.NoError(t, err)

	grb := []byte{0, 255, 0, 255, 0, 0, 0, 0, 255}
	require.NoError(t, d.Write(grb))

	assert.Equal(t, preambleLen+3*24, buf.Len())
	assert.Equal(t, grb, decodeFrame(t, buf.Bytes(), 3))
}

func TestWriteSymbolPatterns(t *testing.T) {
	buf := bytes.Buffer{}
	d, err := led.NewSPI(spitest.NewRecordRaw(&buf), 1)
	require.NoError(t, err)

	require.NoError(t, d.Write([]byte{0x00, 0xFF, 0xAA}))

	want := make([]byte, 0, preambleLen+24)
	want = append(want, make([]byte, preambleLen)...)
	for i := 0; i < 8; i++ {
		want = append(want, zeroSym)
	}
	for i := 0; i < 8; i++ {
		want = append(want, oneSym)
	}
	// 0xAA = 10101010, MSB first.
	for i := 0; i < 4; i++ {
		want = append(want, oneSym, zeroSym)
	}
	assert.Equal(t, want, buf.Bytes())
}

func TestStripThroughSPI(t *testing.T) {
	buf := bytes.Buffer{}
	d, err := led.NewSPI(spitest.NewRecordRaw(&buf), 1)
	require.NoError(t, err)

	s := led.NewStrip(d)
	require.NoError(t, s.SetPixel(0, led.Color{R: 200, G: 100, B: 50}))
	s.SetBrightness(0.4)
	require.NoError(t, s.Show())

	assert.Equal(t, []byte{40, 80, 20}, decodeFrame(t, buf.Bytes(), 1))
}

func TestWriteLengthMismatch(t *testing.T) {
	buf := bytes.Buffer{}
	d, err := led.NewSPI(spitest.NewRecordRaw(&buf), 2)
	require.NoError(t, err)

	err = d.Write([]byte{1, 2, 3})
	assert.True(t, errors.Is(err, led.ErrInvalidBufferLength), "got %v", err)
	assert.Zero(t, buf.Len(), "nothing must reach the wire on a bad buffer")
}

func TestClearFrameIdempotent(t *testing.T) {
	buf := bytes.Buffer{}
	d, err := led.NewSPI(spitest.NewRecordRaw(&buf), 2)
	require.NoError(t, err)

	require.NoError(t, d.Clear())
	require.NoError(t, d.Clear())

	frameLen := preambleLen + 2*24
	require.Equal(t, 2*frameLen, buf.Len())
	first := buf.Bytes()[:frameLen]
	second := buf.Bytes()[frameLen:]
	assert.Equal(t, first, second)
	assert.Equal(t, []byte{0, 0, 0, 0, 0, 0}, decodeFrame(t, first, 2))
}

func TestEmptyStrip(t *testing.T) {
	buf := bytes.Buffer{}
	d, err := led.NewSPI(spitest.NewRecordRaw(&buf), 0)
	require.NoError(t, err)

	// A zero-length strip still transmits the reset preamble.
	require.NoError(t, d.Write([]byte{}))
	assert.Equal(t, make([]byte, preambleLen), buf.Bytes())
}

func TestNegativeCount(t *testing.T) {
	buf := bytes.Buffer{}
	_, err := led.NewSPI(spitest.NewRecordRaw(&buf), -1)
	assert.Error(t, err)
}

func TestWriteAfterClose(t *testing.T) {
	d, err := led.NewSPI(stubPort{}, 1)
	require.NoError(t, err)

	require.NoError(t, d.Close())
	require.NoError(t, d.Close(), "close must be safe to repeat")

	assert.True(t, errors.Is(d.Write([]byte{1, 2, 3}), led.ErrClosed))
	assert.True(t, errors.Is(d.Clear(), led.ErrClosed))
}

func TestWriteTransportFailure(t *testing.T) {
	boom := errors.New("bus fell over")
	d, err := led.NewSPI(stubPort{err: boom}, 1)
	require.NoError(t, err)

	assert.True(t, errors.Is(d.Write([]byte{1, 2, 3}), boom))
	assert.True(t, errors.Is(d.Clear(), boom))
}

func TestOpenMissingPort(t *testing.T) {
	_, err := led.Open("definitely-not-a-port", 4)
	assert.Error(t, err)
}

// stubPort is an spi.Port whose connection fails every transfer with err
// (or accepts everything silently when err is nil).
type stubPort struct {
	err error
}

func (p stubPort) String() string { return "stub" }
func (p stubPort) Connect(f physic.Frequency, m spi.Mode, bits int) (spi.Conn, error) {
	return stubConn{err: p.err}, nil
}

type stubConn struct {
	err error
}

func (c stubConn) String() string                 { return "stub" }
func (c stubConn) Tx(w, r []byte) error           { return c.err }
func (c stubConn) TxPackets(p []spi.Packet) error { return c.err }
func (c stubConn) Duplex() conn.Duplex            { return conn.Half }
