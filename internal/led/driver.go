package led

// Driver abstracts an LED output sink.
type Driver interface {
	// Write pushes one frame to hardware. The buffer holds one GRB byte
	// triple per LED; len(grb) must be 3*LedCount().
	Write(grb []byte) error
	// Clear turns every LED off.
	Clear() error
	// LedCount reports the strip length the driver was built for.
	LedCount() int
}
