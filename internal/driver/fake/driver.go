// Package fake provides an in-memory led.Driver for headless runs and tests.
package fake

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/coreman2200/funtimes-ledstrip/internal/led"
)

// Driver records every frame pushed through it, useful to assert on wire
// bytes without hardware. It logs a compact per-frame summary when given a
// logger.
type Driver struct {
	Count  int
	Frames [][]byte
	Clears int
	Log    zerolog.Logger
}

func New(count int) *Driver {
	return &Driver{Count: count, Log: zerolog.Nop()}
}

func (d *Driver) Write(grb []byte) error {
	if len(grb) != d.Count*3 {
		return fmt.Errorf("got %d bytes, want %d: %w", len(grb), d.Count*3, led.ErrInvalidBufferLength)
	}
	frame := make([]byte, len(grb))
	copy(frame, grb)
	d.Frames = append(d.Frames, frame)

	var g, r, b int
	for i := 0; i+2 < len(frame); i += 3 {
		g += int(frame[i])
		r += int(frame[i+1])
		b += int(frame[i+2])
	}
	n := d.Count
	if n == 0 {
		n = 1
	}
	d.Log.Debug().
		Int("frame", len(d.Frames)).
		Float64("avg_r", float64(r)/float64(n)).
		Float64("avg_g", float64(g)/float64(n)).
		Float64("avg_b", float64(b)/float64(n)).
		Msg("frame")
	return nil
}

func (d *Driver) Clear() error {
	d.Clears++
	d.Log.Debug().Int("clears", d.Clears).Msg("clear")
	return nil
}

func (d *Driver) LedCount() int { return d.Count }

// Last returns the most recent frame, or nil when nothing was written.
func (d *Driver) Last() []byte {
	if len(d.Frames) == 0 {
		return nil
	}
	return d.Frames[len(d.Frames)-1]
}
