package config

import (
	"flag"
	"image/color"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/pkg/errors"
	"golang.org/x/image/colornames"
)

const (
	WindowWidth  = 480
	WindowHeight = 800

	// Anchor circle
	Radius    = 50
	Padding   = 20
	TopOffset = 50

	// Drag and trigger zone
	MaxDistance = 1000
	TriggerMin  = 0.33
	TriggerMax  = 0.75

	// Animations
	StickyDuration  = 300 * time.Millisecond
	LoadingDuration = 2000 * time.Millisecond
	LoadingSweep    = 200

	// Indicator
	IdleArcFraction = 0.75
	ArcSweepDegrees = 359.9
	StrokeWidth     = 5
	ArrowSize       = 5

	CircleColor     = "#00ffad"
	IndicatorColor  = "white"
	BackgroundColor = "#101820"
)

// Duration is a time.Duration that reads "300ms" style strings or plain
// millisecond numbers from JSON.
type Duration struct {
	time.Duration
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(d.String())), nil
}

func (d *Duration) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	if unq, err := strconv.Unquote(s); err == nil {
		v, err := time.ParseDuration(unq)
		if err != nil {
			return errors.Wrapf(err, "duration %s", s)
		}
		d.Duration = v
		return nil
	}
	ms, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return errors.Wrapf(err, "duration %s", s)
	}
	d.Duration = time.Duration(ms * float64(time.Millisecond))
	return nil
}

// Set implements flag.Value.
func (d *Duration) Set(s string) error {
	v, err := time.ParseDuration(s)
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// Config holds every tunable of the sticky circle and its hosts.
type Config struct {
	WindowWidth  int `json:"window_width"`
	WindowHeight int `json:"window_height"`

	Radius    float64 `json:"radius"`
	Padding   float64 `json:"padding"`
	TopOffset float64 `json:"top_offset"`

	MaxDistance float64 `json:"max_distance"`
	TriggerMin  float64 `json:"trigger_min"`
	TriggerMax  float64 `json:"trigger_max"`

	StickyDuration  Duration `json:"sticky_duration"`
	LoadingDuration Duration `json:"loading_duration"`
	LoadingSweep    float64  `json:"loading_sweep"`

	IdleArcFraction float64 `json:"idle_arc_fraction"`
	ArcSweepDegrees float64 `json:"arc_sweep_degrees"`
	StrokeWidth     float64 `json:"stroke_width"`
	ArrowSize       float64 `json:"arrow_size"`

	CircleColor     string `json:"circle_color"`
	IndicatorColor  string `json:"indicator_color"`
	BackgroundColor string `json:"background_color"`

	Sound string `json:"sound"`
	Mute  bool   `json:"mute"`
	Toast bool   `json:"toast"`
}

// Default returns the stock configuration.
func Default() *Config {
	return &Config{
		WindowWidth:     WindowWidth,
		WindowHeight:    WindowHeight,
		Radius:          Radius,
		Padding:         Padding,
		TopOffset:       TopOffset,
		MaxDistance:     MaxDistance,
		TriggerMin:      TriggerMin,
		TriggerMax:      TriggerMax,
		StickyDuration:  Duration{StickyDuration},
		LoadingDuration: Duration{LoadingDuration},
		LoadingSweep:    LoadingSweep,
		IdleArcFraction: IdleArcFraction,
		ArcSweepDegrees: ArcSweepDegrees,
		StrokeWidth:     StrokeWidth,
		ArrowSize:       ArrowSize,
		CircleColor:     CircleColor,
		IndicatorColor:  IndicatorColor,
		BackgroundColor: BackgroundColor,
		Toast:           true,
	}
}

// Clone returns a copy of c.
func (c *Config) Clone() *Config {
	cp := *c
	return &cp
}

// InTriggerZone reports whether a drag distance qualifies as a reload
// trigger. Both bounds are inclusive.
func (c *Config) InTriggerZone(distance float64) bool {
	return distance <= c.MaxDistance*c.TriggerMax && distance >= c.MaxDistance*c.TriggerMin
}

// Validate checks the values the geometry divides by or compares against.
func (c *Config) Validate() error {
	switch {
	case c.Radius <= 0:
		return errors.Errorf("radius must be positive, got %v", c.Radius)
	case c.MaxDistance <= 0:
		return errors.Errorf("max distance must be positive, got %v", c.MaxDistance)
	case c.TriggerMin <= 0:
		return errors.Errorf("trigger min must be positive, got %v", c.TriggerMin)
	case c.TriggerMin > c.TriggerMax:
		return errors.Errorf("trigger zone [%v, %v] is empty", c.TriggerMin, c.TriggerMax)
	case c.StickyDuration.Duration <= 0:
		return errors.Errorf("sticky duration must be positive, got %v", c.StickyDuration)
	case c.LoadingDuration.Duration <= 0:
		return errors.Errorf("loading duration must be positive, got %v", c.LoadingDuration)
	case c.Padding >= c.Radius:
		return errors.Errorf("padding %v leaves no room inside radius %v", c.Padding, c.Radius)
	case c.WindowWidth <= 0 || c.WindowHeight <= 0:
		return errors.Errorf("window size %dx%d", c.WindowWidth, c.WindowHeight)
	}
	for name, s := range map[string]string{
		"circle color":     c.CircleColor,
		"indicator color":  c.IndicatorColor,
		"background color": c.BackgroundColor,
	} {
		if _, err := ParseColor(s); err != nil {
			return errors.Wrap(err, name)
		}
	}
	return nil
}

// Colors returns the parsed circle, indicator and background colors.
// Unparseable values fall back to the defaults.
func (c *Config) Colors() (circle, indicator, background color.RGBA) {
	parse := func(s, def string) color.RGBA {
		if v, err := ParseColor(s); err == nil {
			return v
		}
		v, _ := ParseColor(def)
		return v
	}
	return parse(c.CircleColor, CircleColor),
		parse(c.IndicatorColor, IndicatorColor),
		parse(c.BackgroundColor, BackgroundColor)
}

// ParseColor accepts #rgb, #rrggbb, #rrggbbaa or an SVG color name.
func ParseColor(s string) (color.RGBA, error) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "#") {
		if v, ok := colornames.Map[strings.ToLower(s)]; ok {
			return v, nil
		}
		return color.RGBA{}, errors.Errorf("unknown color %q", s)
	}
	hex := s[1:]
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) == 6 {
		hex += "ff"
	}
	if len(hex) != 8 {
		return color.RGBA{}, errors.Errorf("bad color %q", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.RGBA{}, errors.Wrapf(err, "bad color %q", s)
	}
	return color.RGBA{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}, nil
}

// Load reads a JSON config file on top of the defaults and validates it.
func Load(path string) (*Config, error) {
	c := Default()
	if err := c.LoadFile(path); err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, errors.Wrap(err, path)
	}
	return c, nil
}

// LoadFile overlays the JSON file at path onto c.
func (c *Config) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrap(err, "read config")
	}
	if err := sonic.ConfigStd.Unmarshal(data, c); err != nil {
		return errors.Wrapf(err, "parse config %s", path)
	}
	return nil
}

// JSON encodes c as indented JSON.
func (c *Config) JSON() ([]byte, error) {
	b, err := sonic.ConfigStd.MarshalIndent(c, "", "  ")
	return b, errors.Wrap(err, "encode config")
}

// Flags binds the config fields to a flag set.
func (c *Config) Flags(fs *flag.FlagSet) {
	fs.IntVar(&c.WindowWidth, "width", c.WindowWidth, "window width")
	fs.IntVar(&c.WindowHeight, "height", c.WindowHeight, "window height")
	fs.Float64Var(&c.Radius, "radius", c.Radius, "anchor circle radius")
	fs.Float64Var(&c.Padding, "padding", c.Padding, "indicator padding inside the anchor")
	fs.Float64Var(&c.MaxDistance, "max-distance", c.MaxDistance, "drag distance that maps to scale 1")
	fs.Float64Var(&c.TriggerMin, "trigger-min", c.TriggerMin, "trigger zone start, fraction of max distance")
	fs.Float64Var(&c.TriggerMax, "trigger-max", c.TriggerMax, "trigger zone end, fraction of max distance")
	fs.Var(&c.StickyDuration, "sticky-duration", "sticky return duration")
	fs.Var(&c.LoadingDuration, "loading-duration", "loading cycle duration")
	fs.StringVar(&c.CircleColor, "circle-color", c.CircleColor, "circle color, hex or name")
	fs.StringVar(&c.IndicatorColor, "indicator-color", c.IndicatorColor, "indicator color, hex or name")
	fs.StringVar(&c.BackgroundColor, "background-color", c.BackgroundColor, "background color, hex or name")
	fs.StringVar(&c.Sound, "sound", c.Sound, "wav, mp3 or flac file played on reload")
	fs.BoolVar(&c.Mute, "mute", c.Mute, "no reload sound")
	fs.BoolVar(&c.Toast, "toast", c.Toast, "desktop notification on reload")
}

// Parse builds a config from defaults, the file named by -config and the
// remaining flags, in that order of precedence.
func Parse(fs *flag.FlagSet, args []string) (*Config, string, error) {
	c := Default()
	c.Flags(fs)
	path := fs.String("config", "", "JSON config file")
	if err := fs.Parse(args); err != nil {
		return nil, "", err
	}
	if *path == "" {
		return c, "", c.Validate()
	}

	set := map[string]string{}
	fs.Visit(func(f *flag.Flag) { set[f.Name] = f.Value.String() })

	if err := c.LoadFile(*path); err != nil {
		return nil, *path, err
	}
	for name, v := range set {
		if err := fs.Set(name, v); err != nil {
			return nil, *path, errors.Wrapf(err, "flag -%s", name)
		}
	}
	return c, *path, c.Validate()
}
