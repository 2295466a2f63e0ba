package sapling

import (
	"bytes"
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// RunConfig configures Run. The zero value is usable; unset fields take the
// defaults listed on each field.
type RunConfig struct {
	// Title is the window title. Default "sapling".
	Title string `toml:"title"`
	// Width and Height are the window and scene size. Default 640×480.
	Width  int `toml:"width"`
	Height int `toml:"height"`
	// Background is a CSS hex color painted under the stage. Default "#fff".
	Background string `toml:"background"`
	// BackgroundAlpha multiplies the background alpha. Default 1.
	BackgroundAlpha float64 `toml:"background_alpha"`
	// ShowFPS adds an FPS readout to the stage.
	ShowFPS bool `toml:"show_fps"`
	// Debug enables the scene's debug mode.
	Debug bool `toml:"debug"`
	// ScreenshotDir is where Scene.Screenshot writes PNGs. Default "screenshots".
	ScreenshotDir string `toml:"screenshot_dir"`
	// TPS is the update rate in ticks per second. Default 60.
	TPS int `toml:"tps"`
}

// DefaultRunConfig returns a RunConfig with every default filled in.
func DefaultRunConfig() RunConfig {
	return RunConfig{}.withDefaults()
}

func (c RunConfig) withDefaults() RunConfig {
	if c.Title == "" {
		c.Title = "sapling"
	}
	if c.Width <= 0 {
		c.Width = 640
	}
	if c.Height <= 0 {
		c.Height = 480
	}
	if c.Background == "" {
		c.Background = "#fff"
	}
	if c.BackgroundAlpha == 0 {
		c.BackgroundAlpha = 1
	}
	if c.ScreenshotDir == "" {
		c.ScreenshotDir = defaultScreenshotDir
	}
	if c.TPS <= 0 {
		c.TPS = 60
	}
	return c
}

// Validate reports the first invalid field.
func (c RunConfig) Validate() error {
	if c.Width < 0 || c.Height < 0 {
		return fmt.Errorf("sapling: config: negative size %dx%d", c.Width, c.Height)
	}
	if c.Background != "" {
		if _, err := ParseColor(c.Background); err != nil {
			return fmt.Errorf("sapling: config: %w", err)
		}
	}
	if c.BackgroundAlpha < 0 || c.BackgroundAlpha > 1 {
		return fmt.Errorf("sapling: config: background_alpha %v out of [0, 1]", c.BackgroundAlpha)
	}
	return nil
}

// ParseConfig decodes a TOML document into a RunConfig with defaults
// applied. Unknown keys are an error.
func ParseConfig(data []byte) (RunConfig, error) {
	var cfg RunConfig
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		return RunConfig{}, fmt.Errorf("sapling: parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return RunConfig{}, err
	}
	return cfg.withDefaults(), nil
}

// LoadConfig reads and parses a TOML config file.
func LoadConfig(path string) (RunConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return RunConfig{}, fmt.Errorf("sapling: load config: %w", err)
	}
	return ParseConfig(data)
}

// SceneConfig returns the scene settings carried by c.
func (c RunConfig) SceneConfig() SceneConfig {
	c = c.withDefaults()
	return SceneConfig{
		Width:           c.Width,
		Height:          c.Height,
		Background:      c.Background,
		BackgroundAlpha: c.BackgroundAlpha,
	}
}
