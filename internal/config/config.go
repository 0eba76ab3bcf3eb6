package config

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"simple-image-editor/internal/algorithms"
	"simple-image-editor/internal/preview"
)

type Window struct {
	Width  float32 `yaml:"width"`
	Height float32 `yaml:"height"`
}

type Preview struct {
	MaxWidth  int `yaml:"max_width"`
	MaxHeight int `yaml:"max_height"`
}

type Blur struct {
	KernelSize int `yaml:"kernel_size"`
}

type Edges struct {
	Low  float64 `yaml:"low"`
	High float64 `yaml:"high"`
}

type Log struct {
	Level string `yaml:"level"` // logrus level name, empty keeps the flag-selected level
}

// Config holds the editor's tunable defaults. It is only ever read.
type Config struct {
	Window  Window  `yaml:"window"`
	Preview Preview `yaml:"preview"`
	Blur    Blur    `yaml:"blur"`
	Edges   Edges   `yaml:"edges"`
	Log     Log     `yaml:"log"`
}

func Default() *Config {
	p := algorithms.DefaultParams()
	return &Config{
		Window:  Window{Width: 1100, Height: 650},
		Preview: Preview{MaxWidth: preview.DefaultMaxWidth, MaxHeight: preview.DefaultMaxHeight},
		Blur:    Blur{KernelSize: p.BlurKernelSize},
		Edges:   Edges{Low: p.EdgeLow, High: p.EdgeHigh},
	}
}

// Load reads path over the defaults; keys missing from the file keep their
// default values.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	c := Default()
	if err := yaml.Unmarshal(b, c); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

func (c *Config) Validate() error {
	switch {
	case c.Window.Width <= 0 || c.Window.Height <= 0:
		return fmt.Errorf("invalid window size %gx%g", c.Window.Width, c.Window.Height)
	case c.Preview.MaxWidth <= 0 || c.Preview.MaxHeight <= 0:
		return fmt.Errorf("invalid preview bounds %dx%d", c.Preview.MaxWidth, c.Preview.MaxHeight)
	}
	if c.Log.Level != "" {
		if _, err := logrus.ParseLevel(c.Log.Level); err != nil {
			return err
		}
	}
	return nil
}

// Params returns the transform defaults. Kernel size and thresholds are
// coerced by the transforms themselves, so any value is accepted here.
func (c *Config) Params() algorithms.Params {
	return algorithms.Params{
		BlurKernelSize: c.Blur.KernelSize,
		EdgeLow:        c.Edges.Low,
		EdgeHigh:       c.Edges.High,
	}
}
