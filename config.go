package barchart

import (
	"errors"
	"fmt"
	"math"
	"os"
	"sort"

	"github.com/tanema/gween/ease"
	"gopkg.in/yaml.v3"
)

const (
	DefaultTitle        = "barchart"
	DefaultTPS          = 60
	DefaultFeedInterval = 1.0
)

// Config is the file-backed configuration of the demo application.
type Config struct {
	Title  string `yaml:"title"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	TPS    int    `yaml:"tps"`

	// Duration is the transition length in seconds.
	Duration float64 `yaml:"duration"`
	// FeedInterval is the time between data batches in seconds.
	FeedInterval float64 `yaml:"feed_interval"`
	// Churn is the probability that the random feed leaves a key out of a
	// batch.
	Churn float64 `yaml:"churn"`

	Spacing  float64 `yaml:"spacing"`
	BarWidth float64 `yaml:"bar_width"`
	BarDepth float64 `yaml:"bar_depth"`
	Easing   string  `yaml:"easing"`
	// ToggleOpacity makes updated bars blink on every join.
	ToggleOpacity bool   `yaml:"toggle_opacity"`
	Duplicates    string `yaml:"duplicates"`

	Camera CameraConfig `yaml:"camera"`
	Light  LightConfig  `yaml:"light"`

	Background    string `yaml:"background"`
	Seed          uint64 `yaml:"seed"`
	ScreenshotDir string `yaml:"screenshot_dir"`
	Debug         bool   `yaml:"debug"`
	ShowFPS       bool   `yaml:"show_fps"`

	// Records is the first batch shown before the feed takes over.
	Records []Record `yaml:"records"`
}

// CameraConfig positions the orthographic camera. Angles are in degrees.
type CameraConfig struct {
	HalfHeight float64 `yaml:"half_height"`
	Yaw        float64 `yaml:"yaw"`
	Pitch      float64 `yaml:"pitch"`
	// Follow pans the camera to the middle of the bars after every join.
	Follow bool `yaml:"follow"`
}

// LightConfig places the point light.
type LightConfig struct {
	X       float64 `yaml:"x"`
	Y       float64 `yaml:"y"`
	Z       float64 `yaml:"z"`
	Ambient float64 `yaml:"ambient"`
}

// DefaultConfig returns a 512x512 window showing three countries, with new
// data every second.
func DefaultConfig() *Config {
	light := DefaultLight()
	return &Config{
		Title:         DefaultTitle,
		Width:         MaxStageSize,
		Height:        MaxStageSize,
		TPS:           DefaultTPS,
		Duration:      float64(DefaultDuration),
		FeedInterval:  DefaultFeedInterval,
		Spacing:       1,
		BarWidth:      0.8,
		BarDepth:      0.8,
		Easing:        "linear",
		ToggleOpacity: true,
		Duplicates:    DuplicateLastWins.String(),
		Camera: CameraConfig{
			HalfHeight: DefaultHalfHeight,
			Yaw:        45,
			Pitch:      math.Asin(1/math.Sqrt(3)) * 180 / math.Pi,
			Follow:     true,
		},
		Light: LightConfig{
			X:       light.Position.X,
			Y:       light.Position.Y,
			Z:       light.Position.Z,
			Ambient: light.Ambient,
		},
		Background:    "white",
		ScreenshotDir: "screenshots",
		Records: []Record{
			{Key: "USA", Color: "red", Value: 320},
			{Key: "France", Color: "green", Value: 66},
			{Key: "Japan", Color: "blue", Value: 127},
		},
	}
}

// LoadConfig reads a YAML config file. Fields missing from the file keep
// their defaults.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("load config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("load config %s: %w", path, err)
	}
	return cfg, nil
}

// MarshalConfig encodes cfg as YAML.
func MarshalConfig(cfg *Config) ([]byte, error) {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("marshal config: %w", err)
	}
	return data, nil
}

// SaveConfig writes cfg to path as YAML.
func SaveConfig(path string, cfg *Config) error {
	data, err := MarshalConfig(cfg)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("save config: %w", err)
	}
	return nil
}

// Validate reports every field with an unusable value.
func (c *Config) Validate() error {
	var errs []error
	if c.Width <= 0 || c.Height <= 0 {
		errs = append(errs, fmt.Errorf("window size %dx%d must be positive", c.Width, c.Height))
	}
	if c.TPS <= 0 {
		errs = append(errs, fmt.Errorf("tps %d must be positive", c.TPS))
	}
	if c.Duration <= 0 {
		errs = append(errs, fmt.Errorf("duration %v must be positive", c.Duration))
	}
	if c.FeedInterval <= 0 {
		errs = append(errs, fmt.Errorf("feed_interval %v must be positive", c.FeedInterval))
	}
	if c.Churn < 0 || c.Churn >= 1 {
		errs = append(errs, fmt.Errorf("churn %v must be in [0, 1)", c.Churn))
	}
	if c.Spacing <= 0 || c.BarWidth <= 0 || c.BarDepth <= 0 {
		errs = append(errs, errors.New("spacing, bar_width and bar_depth must be positive"))
	}
	if _, err := EasingByName(c.Easing); err != nil {
		errs = append(errs, err)
	}
	if _, err := ParseDuplicatePolicy(c.Duplicates); err != nil {
		errs = append(errs, err)
	}
	if c.Camera.HalfHeight <= 0 {
		errs = append(errs, fmt.Errorf("camera.half_height %v must be positive", c.Camera.HalfHeight))
	}
	if c.Light.Ambient < 0 || c.Light.Ambient > 1 {
		errs = append(errs, fmt.Errorf("light.ambient %v must be in [0, 1]", c.Light.Ambient))
	}
	if _, err := ParseColor(c.Background); err != nil {
		errs = append(errs, fmt.Errorf("background: %w", err))
	}
	return errors.Join(errs...)
}

// ChartOptions converts the config into options for NewChart. The config
// must be valid.
func (c *Config) ChartOptions() ChartOptions {
	fn, _ := EasingByName(c.Easing)
	dup, _ := ParseDuplicatePolicy(c.Duplicates)
	return ChartOptions{
		Duration:      float32(c.Duration),
		Easing:        fn,
		Spacing:       c.Spacing,
		BarWidth:      c.BarWidth,
		BarDepth:      c.BarDepth,
		ToggleOpacity: c.ToggleOpacity,
		Duplicates:    dup,
	}
}

// ApplyScene configures the scene's camera, light and background. The config
// must be valid.
func (c *Config) ApplyScene(s *Scene) {
	cam := s.Camera()
	cam.HalfHeight = c.Camera.HalfHeight
	cam.Yaw = c.Camera.Yaw * math.Pi / 180
	cam.Pitch = math.Max(minPitch, math.Min(maxPitch, c.Camera.Pitch*math.Pi/180))
	s.Light = Light{
		Position: Vec3{c.Light.X, c.Light.Y, c.Light.Z},
		Ambient:  c.Light.Ambient,
	}
	if bg, err := ParseColor(c.Background); err == nil {
		s.ClearColor = bg
	}
	s.ScreenshotDir = c.ScreenshotDir
}

var easings = map[string]ease.TweenFunc{
	"linear":       ease.Linear,
	"in-quad":      ease.InQuad,
	"out-quad":     ease.OutQuad,
	"in-out-quad":  ease.InOutQuad,
	"out-cubic":    ease.OutCubic,
	"in-out-cubic": ease.InOutCubic,
	"in-out-sine":  ease.InOutSine,
	"out-bounce":   ease.OutBounce,
	"out-elastic":  ease.OutElastic,
}

// EasingByName returns the easing function for name. The empty name means
// linear.
func EasingByName(name string) (ease.TweenFunc, error) {
	if name == "" {
		return ease.Linear, nil
	}
	if fn, ok := easings[name]; ok {
		return fn, nil
	}
	return nil, fmt.Errorf("unknown easing %q (known: %v)", name, EasingNames())
}

// EasingNames returns the accepted easing names, sorted.
func EasingNames() []string {
	names := make([]string, 0, len(easings))
	for n := range easings {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// AppOptions converts the config into options for NewApp. The config must be
// valid.
func (c *Config) AppOptions() AppOptions {
	return AppOptions{
		Chart:        c.ChartOptions(),
		FeedInterval: float32(c.FeedInterval),
		Initial:      c.Records,
		Follow:       c.Camera.Follow,
		ShowFPS:      c.ShowFPS,
	}
}

// RunConfig converts the config into window settings for Run.
func (c *Config) RunConfig() RunConfig {
	return RunConfig{
		Title:     c.Title,
		Width:     c.Width,
		Height:    c.Height,
		TPS:       c.TPS,
		Resizable: true,
	}
}
