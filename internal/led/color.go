package led

// Color is one pixel in logical RGB order. Channel reordering for the wire
// happens in Strip.Show, never here.
type Color struct {
	R, G, B uint8
}

var (
	Off   = Color{}
	White = Color{R: 255, G: 255, B: 255}
	Blue  = Color{B: 255}
	Green = Color{G: 255}
)
