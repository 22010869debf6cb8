// Package drawer adapts a periph display.Drawer to the led.Driver contract,
// so the strip can render through periph's nrzled device on hardware or the
// console screen device when no SPI port is around.
package drawer

import (
	"fmt"
	"image"
	"image/color"

	"periph.io/x/conn/v3/display"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
	"periph.io/x/devices/v3/nrzled"
	"periph.io/x/extra/devices/screen"

	"github.com/coreman2200/funtimes-ledstrip/internal/led"
)

type Driver struct {
	d     display.Drawer
	count int
}

func New(d display.Drawer, count int) *Driver {
	return &Driver{d: d, count: count}
}

// NewNRZ builds the adapter on periph's nrzled device, which carries its own
// NRZ encoder.
func NewNRZ(p spi.Port, count int) (*Driver, error) {
	opts := nrzled.Opts{
		NumPixels: count,
		Channels:  3,
		// 3 SPI bits per protocol bit at the 800kHz WS2812 rate, plus margin.
		Freq: 2500 * physic.KiloHertz,
	}
	dev, err := nrzled.NewSPI(p, &opts)
	if err != nil {
		return nil, fmt.Errorf("nrzled: %w", err)
	}
	return New(dev, count), nil
}

// NewScreen renders the strip as a row of ANSI-colored cells on stdout.
func NewScreen(count int) *Driver {
	return New(screen.New(count), count)
}

// Write converts the GRB wire buffer back into an RGB image row; drawers
// take logical colors, not wire order.
func (d *Driver) Write(grb []byte) error {
	if len(grb) != d.count*3 {
		return fmt.Errorf("got %d bytes, want %d: %w", len(grb), d.count*3, led.ErrInvalidBufferLength)
	}
	img := image.NewNRGBA(image.Rect(0, 0, d.count, 1))
	for i := 0; i < d.count; i++ {
		img.SetNRGBA(i, 0, color.NRGBA{
			R: grb[i*3+1],
			G: grb[i*3+0],
			B: grb[i*3+2],
			A: 255,
		})
	}
	if err := d.d.Draw(d.d.Bounds(), img, image.Point{}); err != nil {
		return fmt.Errorf("draw: %w", err)
	}
	return nil
}

// Clear halts the drawer, which for nrzled turns every LED off.
func (d *Driver) Clear() error {
	if err := d.d.Halt(); err != nil {
		return fmt.Errorf("halt: %w", err)
	}
	return nil
}

func (d *Driver) LedCount() int { return d.count }
