package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"periph.io/x/conn/v3/spi/spireg"
	"periph.io/x/host/v3"

	"github.com/coreman2200/funtimes-ledstrip/internal/config"
	"github.com/coreman2200/funtimes-ledstrip/internal/driver/drawer"
	"github.com/coreman2200/funtimes-ledstrip/internal/driver/fake"
	"github.com/coreman2200/funtimes-ledstrip/internal/effects"
	"github.com/coreman2200/funtimes-ledstrip/internal/led"
)

func main() {
	// ---- Flags (config.yaml can override) ----
	var (
		driver     = flag.String("driver", "spi", "driver: spi | nrz | screen | fake")
		spiPort    = flag.String("spi-port", "", "SPI port name (empty = first available)")
		count      = flag.Int("leds", 24, "number of LEDs on the strip")
		brightness = flag.Float64("brightness", 1.0, "global brightness 0..1")
		configPath = flag.String("config", "config.yaml", "path to config.yaml")
	)
	flag.Parse()

	// ---- Logging ----
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.Kitchen})

	// ---- Load config.yaml (optional) ----
	var cfg *config.Config
	if c, err := config.Load(*configPath); err != nil {
		log.Warn().Err(err).Str("path", *configPath).Msg("config load failed; proceeding with flags")
	} else {
		cfg = c
	}
	if cfg != nil {
		if cfg.Driver != "" {
			*driver = cfg.Driver
		}
		if cfg.SPIPort != "" {
			*spiPort = cfg.SPIPort
		}
		if cfg.LedCount > 0 {
			*count = cfg.LedCount
		}
		if cfg.Brightness > 0 {
			*brightness = cfg.Brightness
		}
	}

	if _, err := host.Init(); err != nil {
		log.Fatal().Err(err).Msg("host init")
	}

	drv, release, err := openDriver(*driver, *spiPort, *count)
	if err != nil {
		log.Fatal().Err(err).Str("driver", *driver).Msg("driver init")
	}
	defer release()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	strip := led.NewStrip(drv)
	strip.SetBrightness(*brightness)

	r := effects.NewRunner(strip)
	r.Log = log.Logger
	if cfg != nil {
		if cfg.Demo.RotateDelayMs > 0 {
			r.RotateDelay = time.Duration(cfg.Demo.RotateDelayMs) * time.Millisecond
		}
		if cfg.Demo.BreatheDelayMs > 0 {
			r.BreatheDelay = time.Duration(cfg.Demo.BreatheDelayMs) * time.Millisecond
		}
		if cfg.Demo.PauseMs > 0 {
			r.Pause = time.Duration(cfg.Demo.PauseMs) * time.Millisecond
		}
	}

	if err := r.Demo(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.Error().Err(err).Msg("demo aborted")
	}
}

// openDriver selects the output variant. "spi" and "nrz" fall back to the
// console screen when no SPI port is found.
func openDriver(kind, port string, count int) (led.Driver, func(), error) {
	switch kind {
	case "spi":
		d, err := led.Open(port, count)
		if err != nil {
			log.Warn().Err(err).Msg("no SPI port, printing at the console")
			return drawer.NewScreen(count), func() {}, nil
		}
		return d, func() {
			if err := d.Close(); err != nil {
				log.Warn().Err(err).Msg("spi close")
			}
		}, nil

	case "nrz":
		p, err := spireg.Open(port)
		if err != nil {
			log.Warn().Err(err).Msg("no SPI port, printing at the console")
			return drawer.NewScreen(count), func() {}, nil
		}
		d, err := drawer.NewNRZ(p, count)
		if err != nil {
			_ = p.Close()
			return nil, nil, err
		}
		return d, func() { _ = p.Close() }, nil

	case "screen":
		return drawer.NewScreen(count), func() {}, nil

	case "fake":
		f := fake.New(count)
		f.Log = log.Logger
		return f, func() {}, nil

	default:
		return nil, nil, fmt.Errorf("unknown driver %q", kind)
	}
}
