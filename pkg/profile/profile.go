// Package profile holds the layout primitives shared by every page generator:
// device page geometry, typographic density and colour schemes.
//
// Profiles are plain values with no behaviour beyond a few derived
// measurements. Named presets are looked up with [LookupDevice],
// [LookupDensity] and [LookupColors]; the planner configuration can override
// individual fields of a preset.
//
// All lengths are PDF points (1/72 inch).
package profile

import (
	"math"
	"sort"
)

// RGB is a colour with components in [0, 1].
type RGB struct {
	R, G, B float64
}

// Bytes converts the colour to 0-255 components.
func (c RGB) Bytes() (int, int, int) {
	return channel(c.R), channel(c.G), channel(c.B)
}

// Valid reports whether every component lies in [0, 1].
func (c RGB) Valid() bool {
	for _, v := range []float64{c.R, c.G, c.B} {
		if v < 0 || v > 1 || math.IsNaN(v) {
			return false
		}
	}
	return true
}

func channel(v float64) int {
	return int(math.Round(math.Max(0, math.Min(1, v)) * 255))
}

// Gray returns a neutral colour of the given lightness.
func Gray(v float64) RGB { return RGB{v, v, v} }

// Device describes the physical page of a target tablet.
type Device struct {
	Name   string  `json:"name"`
	Label  string  `json:"label"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Margin float64 `json:"margin"`
}

// Density controls line spacing and type sizes.
type Density struct {
	Name       string  `json:"name"`
	LineHeight float64 `json:"line_height"`
	FontSize   float64 `json:"font_size"`
	HeaderSize float64 `json:"header_size"`
	Spacing    float64 `json:"spacing"`
}

// Row is the base row pitch: line height scaled by the spacing multiplier.
func (d Density) Row() float64 { return d.LineHeight * d.Spacing }

// ColorScheme is the palette every page is drawn with.
type ColorScheme struct {
	Name       string `json:"name"`
	Background RGB    `json:"background"`
	Text       RGB    `json:"text"`
	Muted      RGB    `json:"muted"`
	Line       RGB    `json:"line"`
	FaintLine  RGB    `json:"faint_line"`
	Dot        RGB    `json:"dot"`
	Accent     RGB    `json:"accent"`
}

// Padding is extra inset per page side, applied inside the device margin.
type Padding struct {
	Top    float64 `json:"top" toml:"top"`
	Right  float64 `json:"right" toml:"right"`
	Bottom float64 `json:"bottom" toml:"bottom"`
	Left   float64 `json:"left" toml:"left"`
}

// Edge names the page side a device toolbar overlaps.
type Edge string

const (
	EdgeNone   Edge = "none"
	EdgeLeft   Edge = "left"
	EdgeRight  Edge = "right"
	EdgeTop    Edge = "top"
	EdgeBottom Edge = "bottom"
)

// ValidEdges is the set of accepted toolbar edges.
var ValidEdges = map[Edge]bool{
	EdgeNone:   true,
	EdgeLeft:   true,
	EdgeRight:  true,
	EdgeTop:    true,
	EdgeBottom: true,
}

// DefaultToolbarWidth is reserved on the toolbar edge when no width is given.
const DefaultToolbarWidth = 36.0

// Devices are the built-in device presets.
var Devices = map[string]Device{
	"remarkable2":   {Name: "remarkable2", Label: "reMarkable 2", Width: 445, Height: 594, Margin: 12},
	"remarkable-pp": {Name: "remarkable-pp", Label: "reMarkable Paper Pro", Width: 509, Height: 679, Margin: 14},
	"supernote-a5x": {Name: "supernote-a5x", Label: "Supernote A5 X", Width: 468, Height: 624, Margin: 12},
	"boox-air":      {Name: "boox-air", Label: "Boox Note Air", Width: 445, Height: 594, Margin: 12},
	"kindle-scribe": {Name: "kindle-scribe", Label: "Kindle Scribe", Width: 475, Height: 634, Margin: 14},
	"a5":            {Name: "a5", Label: "A5 paper", Width: 420, Height: 595, Margin: 18},
	"letter":        {Name: "letter", Label: "US Letter", Width: 612, Height: 792, Margin: 24},
}

// Densities are the built-in density presets.
var Densities = map[string]Density{
	"compact":  {Name: "compact", LineHeight: 14, FontSize: 7.5, HeaderSize: 13, Spacing: 1.0},
	"normal":   {Name: "normal", LineHeight: 17, FontSize: 9, HeaderSize: 16, Spacing: 1.1},
	"relaxed":  {Name: "relaxed", LineHeight: 20, FontSize: 10.5, HeaderSize: 18, Spacing: 1.25},
	"spacious": {Name: "spacious", LineHeight: 24, FontSize: 12, HeaderSize: 20, Spacing: 1.35},
}

// ColorSchemes are the built-in palettes.
var ColorSchemes = map[string]ColorScheme{
	"light": {
		Name:       "light",
		Background: Gray(1),
		Text:       Gray(0.08),
		Muted:      Gray(0.45),
		Line:       Gray(0.55),
		FaintLine:  Gray(0.82),
		Dot:        Gray(0.6),
		Accent:     RGB{0.12, 0.33, 0.62},
	},
	"eink": {
		Name:       "eink",
		Background: Gray(1),
		Text:       Gray(0),
		Muted:      Gray(0.35),
		Line:       Gray(0.4),
		FaintLine:  Gray(0.7),
		Dot:        Gray(0.45),
		Accent:     Gray(0),
	},
	"sepia": {
		Name:       "sepia",
		Background: RGB{0.98, 0.95, 0.88},
		Text:       RGB{0.24, 0.18, 0.12},
		Muted:      RGB{0.5, 0.42, 0.33},
		Line:       RGB{0.62, 0.54, 0.44},
		FaintLine:  RGB{0.84, 0.78, 0.68},
		Dot:        RGB{0.66, 0.58, 0.48},
		Accent:     RGB{0.6, 0.3, 0.12},
	},
	"dark": {
		Name:       "dark",
		Background: Gray(0.1),
		Text:       Gray(0.92),
		Muted:      Gray(0.6),
		Line:       Gray(0.5),
		FaintLine:  Gray(0.28),
		Dot:        Gray(0.4),
		Accent:     RGB{0.45, 0.7, 0.95},
	},
}

// LookupDevice returns the named device preset.
func LookupDevice(name string) (Device, bool) {
	d, ok := Devices[name]
	return d, ok
}

// LookupDensity returns the named density preset.
func LookupDensity(name string) (Density, bool) {
	d, ok := Densities[name]
	return d, ok
}

// LookupColors returns the named colour scheme.
func LookupColors(name string) (ColorScheme, bool) {
	c, ok := ColorSchemes[name]
	return c, ok
}

// DeviceNames returns the device preset names in sorted order.
func DeviceNames() []string { return sortedKeys(Devices) }

// DensityNames returns the density preset names in sorted order.
func DensityNames() []string { return sortedKeys(Densities) }

// ColorSchemeNames returns the colour scheme names in sorted order.
func ColorSchemeNames() []string { return sortedKeys(ColorSchemes) }

func sortedKeys[V any](m map[string]V) []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
