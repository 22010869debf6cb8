package led

import "errors"

var (
	// ErrIndexOutOfRange is returned for a pixel index outside [0, count).
	ErrIndexOutOfRange = errors.New("pixel index out of range")

	// ErrInvalidBufferLength is returned when a wire buffer does not hold
	// exactly three bytes per LED.
	ErrInvalidBufferLength = errors.New("invalid buffer length")

	// ErrClosed is returned when transmitting through a closed driver.
	ErrClosed = errors.New("driver closed")
)
