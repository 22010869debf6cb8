package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// Demo holds the frame delays of the showcase sequence, in milliseconds.
// Zero values keep the built-in defaults.
type Demo struct {
	RotateDelayMs  int `yaml:"rotate_delay_ms"`
	BreatheDelayMs int `yaml:"breathe_delay_ms"`
	PauseMs        int `yaml:"pause_ms"`
}

type Config struct {
	Driver     string  `yaml:"driver"`   // "spi" | "nrz" | "screen" | "fake"
	SPIPort    string  `yaml:"spi_port"` // e.g. /dev/spidev0.0; "" = first available
	LedCount   int     `yaml:"led_count"`
	Brightness float64 `yaml:"brightness"`

	Demo Demo `yaml:"demo,omitempty"`
}

func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, err
	}
	return &c, nil
}

func Save(path string, c *Config) error {
	b, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0644)
}
