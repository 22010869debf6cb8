package led

import "fmt"

// Strip buffers per-pixel colors and a global brightness scalar for a
// Driver. Mutations stay in the buffer until Show transmits a frame.
type Strip struct {
	pixels     []Color
	brightness float64
	drv        Driver
}

// NewStrip binds a fresh all-off strip at full brightness to d.
func NewStrip(d Driver) *Strip {
	return &Strip{
		pixels:     make([]Color, d.LedCount()),
		brightness: 1.0,
		drv:        d,
	}
}

// SetPixel stores c at index i without transmitting.
func (s *Strip) SetPixel(i int, c Color) error {
	if i < 0 || i >= len(s.pixels) {
		return fmt.Errorf("set pixel %d of %d: %w", i, len(s.pixels), ErrIndexOutOfRange)
	}
	s.pixels[i] = c
	return nil
}

// Pixel returns the buffered color at index i.
func (s *Strip) Pixel(i int) (Color, error) {
	if i < 0 || i >= len(s.pixels) {
		return Color{}, fmt.Errorf("get pixel %d of %d: %w", i, len(s.pixels), ErrIndexOutOfRange)
	}
	return s.pixels[i], nil
}

// SetAll replaces every pixel with c without transmitting.
func (s *Strip) SetAll(c Color) {
	for i := range s.pixels {
		s.pixels[i] = c
	}
}

// SetBrightness clamps b into [0, 1] and stores it. Buffer contents are
// untouched; brightness applies at Show time only.
func (s *Strip) SetBrightness(b float64) {
	if b < 0 {
		b = 0
	}
	if b > 1 {
		b = 1
	}
	s.brightness = b
}

func (s *Strip) Brightness() float64 { return s.brightness }

func (s *Strip) NumPixels() int { return len(s.pixels) }

// Show scales each channel by brightness, truncating toward zero, and pushes
// the frame in GRB wire order. Callers never see the reordering.
func (s *Strip) Show() error {
	buf := make([]byte, 0, len(s.pixels)*3)
	for _, p := range s.pixels {
		buf = append(buf,
			byte(float64(p.G)*s.brightness),
			byte(float64(p.R)*s.brightness),
			byte(float64(p.B)*s.brightness),
		)
	}
	return s.drv.Write(buf)
}

// Clear resets the buffer to all-off and sends the driver's reset frame.
func (s *Strip) Clear() error {
	for i := range s.pixels {
		s.pixels[i] = Color{}
	}
	return s.drv.Clear()
}
