// Package effects sequences timed color programs over a Strip. Effects only
// use the strip's public operations; the wire format never shows here.
package effects

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/coreman2200/funtimes-ledstrip/internal/led"
)

// Runner steps effects on a strip with a pluggable frame delay. Tests inject
// a no-op Sleep to run sequences instantly. Every frame loop checks the
// context between frames, so a signal can stop a running effect.
type Runner struct {
	Strip *led.Strip
	Sleep func(time.Duration)
	Log   zerolog.Logger

	RotateDelay  time.Duration
	BreatheDelay time.Duration
	Pause        time.Duration
}

func NewRunner(s *led.Strip) *Runner {
	return &Runner{
		Strip:        s,
		Sleep:        time.Sleep,
		Log:          zerolog.Nop(),
		RotateDelay:  100 * time.Millisecond,
		BreatheDelay: 50 * time.Millisecond,
		Pause:        2 * time.Second,
	}
}

// AllWhiteOn lights the whole strip white at current brightness.
func (r *Runner) AllWhiteOn() error {
	r.Strip.SetAll(led.White)
	return r.Strip.Show()
}

// AllOff blanks the strip.
func (r *Runner) AllOff() error { return r.Strip.Clear() }

func (r *Runner) AllBlueOn() error {
	r.Strip.SetAll(led.Blue)
	return r.Strip.Show()
}

func (r *Runner) AllGreenOn() error {
	r.Strip.SetAll(led.Green)
	return r.Strip.Show()
}

// WhiteRotate walks a single white pixel around the strip, one index per
// frame. iterations <= 0 defaults to five laps.
func (r *Runner) WhiteRotate(ctx context.Context, iterations int, delay time.Duration) error {
	n := r.Strip.NumPixels()
	if n == 0 {
		return nil
	}
	if iterations <= 0 {
		iterations = n * 5
	}
	pattern := make([]led.Color, n)
	pattern[0] = led.White
	for it := 0; it < iterations; it++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		last := pattern[n-1]
		copy(pattern[1:], pattern[:n-1])
		pattern[0] = last
		for i, c := range pattern {
			if err := r.Strip.SetPixel(i, c); err != nil {
				return err
			}
		}
		if err := r.Strip.Show(); err != nil {
			return err
		}
		r.Sleep(delay)
	}
	return nil
}

// WhiteBreathing ramps brightness from off to full and back, cycles times,
// then restores the brightness that was set before the effect ran.
func (r *Runner) WhiteBreathing(ctx context.Context, cycles, steps int, delay time.Duration) error {
	if cycles <= 0 {
		cycles = 5
	}
	if steps < 2 {
		steps = 50
	}
	prev := r.Strip.Brightness()
	defer r.Strip.SetBrightness(prev)
	for c := 0; c < cycles; c++ {
		for step := 0; step < steps; step++ {
			if err := ctx.Err(); err != nil {
				return err
			}
			r.Strip.SetBrightness(float64(step) / float64(steps-1))
			if err := r.AllWhiteOn(); err != nil {
				return err
			}
			r.Sleep(delay)
		}
		for step := 0; step < steps; step++ {
			if err := ctx.Err(); err != nil {
				return err
			}
			r.Strip.SetBrightness(1 - float64(step)/float64(steps-1))
			if err := r.AllWhiteOn(); err != nil {
				return err
			}
			r.Sleep(delay)
		}
	}
	r.Strip.SetBrightness(prev)
	return r.AllWhiteOn()
}

// Demo runs the fixed showcase sequence: white, off, rotation, blue, green,
// breathing, then off.
func (r *Runner) Demo(ctx context.Context) error {
	steps := []struct {
		name string
		run  func() error
	}{
		{"all white on", r.AllWhiteOn},
		{"all off", r.AllOff},
		{"white rotate", func() error { return r.WhiteRotate(ctx, 0, r.RotateDelay) }},
		{"all blue on", r.AllBlueOn},
		{"all green on", r.AllGreenOn},
		{"white breathing", func() error { return r.WhiteBreathing(ctx, 3, 50, r.BreatheDelay) }},
	}
	for _, st := range steps {
		if err := ctx.Err(); err != nil {
			return err
		}
		r.Log.Info().Str("effect", st.name).Msg("running")
		if err := st.run(); err != nil {
			return err
		}
		r.Sleep(r.Pause)
	}
	r.Log.Info().Msg("sequence done, strip off")
	return r.AllOff()
}
