// Package config loads the YAML configuration of wavescope.
package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/olivier-w/wavescope/internal/canvas"
	"github.com/olivier-w/wavescope/internal/outlet"
	"github.com/olivier-w/wavescope/internal/render"
	"github.com/olivier-w/wavescope/internal/waveview"
)

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("invalid config")

type Config struct {
	SampleRate float64        `yaml:"sample_rate"`
	Render     RenderConfig   `yaml:"render"`
	View       ViewConfig     `yaml:"view"`
	OSC        OSCConfig      `yaml:"osc"`
	Log        LogConfig      `yaml:"log"`
	Audition   AuditionConfig `yaml:"audition"`
}

type RenderConfig struct {
	ChunkSize     int `yaml:"chunk_size"`
	ChunkPeriodMs int `yaml:"chunk_period_ms"`
}

type ViewConfig struct {
	Height      int          `yaml:"height"`
	ShowRMS     bool         `yaml:"show_rms"`
	ShowLabels  bool         `yaml:"show_labels"`
	LabelTop    string       `yaml:"label_top"`
	LabelBottom string       `yaml:"label_bottom"`
	Colors      ColorsConfig `yaml:"colors"`
}

type ColorsConfig struct {
	Wave       string `yaml:"wave"`
	Cursor     string `yaml:"cursor"`
	Selection  string `yaml:"selection"`
	Background string `yaml:"background"`
}

type OSCConfig struct {
	Send   string `yaml:"send"`
	Listen string `yaml:"listen"`
	Prefix string `yaml:"prefix"`
}

type LogConfig struct {
	File string `yaml:"file"`
}

type AuditionConfig struct {
	Enabled bool `yaml:"enabled"`
}

// Default returns the built-in configuration.
func Default() *Config {
	colors := waveview.DefaultColors()
	return &Config{
		SampleRate: 44100,
		Render: RenderConfig{
			ChunkSize:     render.DefaultChunkSize,
			ChunkPeriodMs: int(render.DefaultPeriod / time.Millisecond),
		},
		View: ViewConfig{
			Height:      12,
			LabelTop:    "1",
			LabelBottom: "-1",
			Colors: ColorsConfig{
				Wave:       colors.Wave.Hex(),
				Cursor:     colors.Cursor.Hex(),
				Selection:  colors.Selection.Hex(),
				Background: colors.Background.Hex(),
			},
		},
		OSC:      OSCConfig{Prefix: outlet.DefaultPrefix},
		Audition: AuditionConfig{Enabled: true},
	}
}

// Load reads path over the defaults. Keys missing from the file keep their
// default values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks ranges, colours and addresses.
func (c *Config) Validate() error {
	if c.SampleRate < 0 {
		return fmt.Errorf("%w: sample_rate %g is negative", ErrInvalidConfig, c.SampleRate)
	}
	if c.Render.ChunkSize <= 0 {
		return fmt.Errorf("%w: render.chunk_size must be positive", ErrInvalidConfig)
	}
	if c.Render.ChunkPeriodMs <= 0 {
		return fmt.Errorf("%w: render.chunk_period_ms must be positive", ErrInvalidConfig)
	}
	if c.View.Height <= 0 {
		return fmt.Errorf("%w: view.height must be positive", ErrInvalidConfig)
	}
	if _, err := c.Colors(); err != nil {
		return err
	}
	if c.OSC.Send != "" {
		if _, _, err := c.SendAddr(); err != nil {
			return err
		}
	}
	return nil
}

// RenderOptions returns the chunking options.
func (c *Config) RenderOptions() render.Options {
	return render.Options{
		ChunkSize: c.Render.ChunkSize,
		Period:    time.Duration(c.Render.ChunkPeriodMs) * time.Millisecond,
	}
}

// Colors parses the view colours.
func (c *Config) Colors() (waveview.Colors, error) {
	var out waveview.Colors
	var err error
	if out.Wave, err = canvas.ParseColor(c.View.Colors.Wave); err != nil {
		return out, fmt.Errorf("%w: view.colors.wave: %v", ErrInvalidConfig, err)
	}
	if out.Cursor, err = canvas.ParseColor(c.View.Colors.Cursor); err != nil {
		return out, fmt.Errorf("%w: view.colors.cursor: %v", ErrInvalidConfig, err)
	}
	if out.Selection, err = canvas.ParseColor(c.View.Colors.Selection); err != nil {
		return out, fmt.Errorf("%w: view.colors.selection: %v", ErrInvalidConfig, err)
	}
	if out.Background, err = canvas.ParseColor(c.View.Colors.Background); err != nil {
		return out, fmt.Errorf("%w: view.colors.background: %v", ErrInvalidConfig, err)
	}
	return out, nil
}

// SendAddr splits osc.send into host and port.
func (c *Config) SendAddr() (string, int, error) {
	host, portStr, err := net.SplitHostPort(c.OSC.Send)
	if err != nil {
		return "", 0, fmt.Errorf("%w: osc.send %q: %v", ErrInvalidConfig, c.OSC.Send, err)
	}
	port, err := strconv.Atoi(portStr)
	if err != nil || port <= 0 || port > 65535 {
		return "", 0, fmt.Errorf("%w: osc.send port %q", ErrInvalidConfig, portStr)
	}
	if host == "" {
		host = "127.0.0.1"
	}
	return host, port, nil
}

// ViewOptions returns the waveview options described by the config.
func (c *Config) ViewOptions() (waveview.Options, error) {
	colors, err := c.Colors()
	if err != nil {
		return waveview.Options{}, err
	}
	return waveview.Options{
		SampleRate:  c.SampleRate,
		Render:      c.RenderOptions(),
		Colors:      &colors,
		ShowRMS:     c.View.ShowRMS,
		ShowLabels:  c.View.ShowLabels,
		LabelTop:    c.View.LabelTop,
		LabelBottom: c.View.LabelBottom,
	}, nil
}
