package config

import (
	"flag"
	"image/color"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/davecgh/go-spew/spew"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sticky.json")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
}

func TestInTriggerZone(t *testing.T) {
	c := Default()
	tests := []struct {
		distance float64
		want     bool
	}{
		{0, false},
		{329.999, false},
		{330, true},
		{400, true},
		{750, true},
		{750.001, false},
		{1200, false},
	}
	for _, tt := range tests {
		if got := c.InTriggerZone(tt.distance); got != tt.want {
			t.Errorf("InTriggerZone(%v) = %v, want %v", tt.distance, got, tt.want)
		}
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"zero radius", func(c *Config) { c.Radius = 0 }},
		{"zero max distance", func(c *Config) { c.MaxDistance = 0 }},
		{"zero trigger min", func(c *Config) { c.TriggerMin = 0 }},
		{"inverted zone", func(c *Config) { c.TriggerMin, c.TriggerMax = 0.8, 0.4 }},
		{"zero sticky", func(c *Config) { c.StickyDuration.Duration = 0 }},
		{"negative loading", func(c *Config) { c.LoadingDuration.Duration = -time.Second }},
		{"padding too large", func(c *Config) { c.Padding = 60 }},
		{"bad color", func(c *Config) { c.CircleColor = "#12345" }},
		{"unknown color name", func(c *Config) { c.IndicatorColor = "blurple" }},
		{"no window", func(c *Config) { c.WindowWidth = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Default()
			tt.mutate(c)
			if err := c.Validate(); err == nil {
				t.Fatalf("expected error for %s", spew.Sdump(c))
			}
		})
	}
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in   string
		want color.RGBA
	}{
		{"#00ffad", color.RGBA{0x00, 0xff, 0xad, 0xff}},
		{"#fff", color.RGBA{0xff, 0xff, 0xff, 0xff}},
		{"#10182080", color.RGBA{0x10, 0x18, 0x20, 0x80}},
		{"White", color.RGBA{0xff, 0xff, 0xff, 0xff}},
		{" red ", color.RGBA{0xff, 0x00, 0x00, 0xff}},
	}
	for _, tt := range tests {
		got, err := ParseColor(tt.in)
		if err != nil {
			t.Errorf("ParseColor(%q): %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseColor(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
	for _, bad := range []string{"", "#", "#zzzzzz", "#1234567"} {
		if _, err := ParseColor(bad); err == nil {
			t.Errorf("ParseColor(%q) succeeded", bad)
		}
	}
}

func TestLoad(t *testing.T) {
	path := writeFile(t, `{
		"radius": 40,
		"max_distance": 800,
		"sticky_duration": "450ms",
		"loading_duration": 1500,
		"circle_color": "tomato"
	}`)
	c, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if c.Radius != 40 || c.MaxDistance != 800 {
		t.Errorf("numbers not loaded: %s", spew.Sdump(c))
	}
	if c.StickyDuration.Duration != 450*time.Millisecond {
		t.Errorf("sticky = %v", c.StickyDuration)
	}
	if c.LoadingDuration.Duration != 1500*time.Millisecond {
		t.Errorf("loading = %v", c.LoadingDuration)
	}
	if c.Padding != Padding || c.TriggerMax != TriggerMax {
		t.Errorf("unset fields lost their defaults: %s", spew.Sdump(c))
	}
	if circle, _, _ := c.Colors(); circle != (color.RGBA{0xff, 0x63, 0x47, 0xff}) {
		t.Errorf("circle color = %v", circle)
	}
}

func TestLoad_Errors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("expected error for missing file")
	}
	if _, err := Load(writeFile(t, `{"radius": `)); err == nil {
		t.Error("expected error for truncated JSON")
	}
	if _, err := Load(writeFile(t, `{"sticky_duration": "soon"}`)); err == nil {
		t.Error("expected error for bad duration")
	}
	if _, err := Load(writeFile(t, `{"trigger_min": 0.9}`)); err == nil {
		t.Error("expected validation error")
	}
}

func TestJSONRoundTrip(t *testing.T) {
	c := Default()
	c.StickyDuration.Duration = 123 * time.Millisecond
	b, err := c.JSON()
	if err != nil {
		t.Fatal(err)
	}
	path := writeFile(t, string(b))
	got, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if *got != *c {
		t.Fatalf("round trip mismatch:\n%s", spew.Sdump(c, got))
	}
}

func TestParse_Precedence(t *testing.T) {
	path := writeFile(t, `{"radius": 40, "max_distance": 800}`)

	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	c, got, err := Parse(fs, []string{"-config", path, "-radius", "60", "-sticky-duration", "1s"})
	if err != nil {
		t.Fatal(err)
	}
	if got != path {
		t.Errorf("path = %q", got)
	}
	if c.Radius != 60 {
		t.Errorf("flag should win over file, radius = %v", c.Radius)
	}
	if c.MaxDistance != 800 {
		t.Errorf("file should win over default, max distance = %v", c.MaxDistance)
	}
	if c.StickyDuration.Duration != time.Second {
		t.Errorf("sticky = %v", c.StickyDuration)
	}
}

func TestParse_NoFile(t *testing.T) {
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	c, path, err := Parse(fs, []string{"-trigger-min", "0.2"})
	if err != nil {
		t.Fatal(err)
	}
	if path != "" || c.TriggerMin != 0.2 {
		t.Errorf("path=%q trigger min=%v", path, c.TriggerMin)
	}

	fs = flag.NewFlagSet("test", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	if _, _, err := Parse(fs, []string{"-radius", "-3"}); err == nil {
		t.Error("expected validation error")
	}
}
