// Package config defines the planner configuration: device, date range,
// enabled sections, density, colours, padding and toolbar placement.
//
// Configurations are decoded from TOML files ([Load], [Parse]) or JSON
// request bodies ([ParseJSON]). Decoding always starts from [Default], so a
// file only needs the fields it changes. Named presets from pkg/profile may be
// overridden field by field with the [page], [typography] and [palette]
// tables.
//
// Validation is limited to what the layout engine needs to run: known
// presets, known enum values and positive geometry. Semantic checks such as
// date ordering are left to the caller; a range whose end precedes its start
// simply produces no date-based pages.
package config

import (
	"bytes"
	"encoding/json"
	"os"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/planwright/pkg/errors"
	"github.com/matzehuels/planwright/pkg/profile"
)

// Daily page writing styles.
const (
	StyleLined  = "lined"
	StyleDotted = "dotted"
	StyleBlank  = "blank"
)

// ValidDailyStyles is the set of accepted daily page styles.
var ValidDailyStyles = map[string]bool{
	StyleLined:  true,
	StyleDotted: true,
	StyleBlank:  true,
}

// Default values for a new configuration.
const (
	DefaultTitle       = "Planner"
	DefaultDevice      = "remarkable2"
	DefaultDensity     = "normal"
	DefaultColors      = "light"
	DefaultDailyStyle  = StyleLined
	DefaultCollections = 4
)

// Upper bounds on the counted sections.
const (
	MaxFutureMonths = 120
	MaxCollections  = 1000
)

// Sections toggles the optional planner sections.
type Sections struct {
	Index       bool `toml:"index" json:"index"`
	Key         bool `toml:"key" json:"key"`
	Future      bool `toml:"future" json:"future"`
	Monthly     bool `toml:"monthly" json:"monthly"`
	Weekly      bool `toml:"weekly" json:"weekly"`
	Daily       bool `toml:"daily" json:"daily"`
	Collections bool `toml:"collections" json:"collections"`
}

// PageOverride replaces individual fields of the device preset. Zero fields
// keep the preset value.
type PageOverride struct {
	Width  float64 `toml:"width" json:"width,omitempty"`
	Height float64 `toml:"height" json:"height,omitempty"`
	Margin float64 `toml:"margin" json:"margin,omitempty"`
}

// TypographyOverride replaces individual fields of the density preset.
type TypographyOverride struct {
	LineHeight float64 `toml:"line_height" json:"line_height,omitempty"`
	FontSize   float64 `toml:"font_size" json:"font_size,omitempty"`
	HeaderSize float64 `toml:"header_size" json:"header_size,omitempty"`
	Spacing    float64 `toml:"spacing" json:"spacing,omitempty"`
}

// Config is a complete planner configuration.
type Config struct {
	Title string `toml:"title" json:"title"`
	Start Date   `toml:"start" json:"start"`
	End   Date   `toml:"end" json:"end"`

	Device  string `toml:"device" json:"device"`
	Density string `toml:"density" json:"density"`
	Colors  string `toml:"colors" json:"colors"`

	ToolbarEdge  profile.Edge `toml:"toolbar_edge" json:"toolbar_edge"`
	ToolbarWidth float64      `toml:"toolbar_width" json:"toolbar_width,omitempty"`

	Cover           bool     `toml:"cover" json:"cover"`
	IncludeWeekends bool     `toml:"include_weekends" json:"include_weekends"`
	DailyStyle      string   `toml:"daily_style" json:"daily_style"`
	FutureMonths    int      `toml:"future_months" json:"future_months,omitempty"`
	Collections     int      `toml:"collections" json:"collections"`
	CollectionNames []string `toml:"collection_names" json:"collection_names,omitempty"`

	Sections Sections        `toml:"sections" json:"sections"`
	Padding  profile.Padding `toml:"padding" json:"padding"`

	Page       PageOverride         `toml:"page" json:"page"`
	Typography TypographyOverride   `toml:"typography" json:"typography"`
	Palette    map[string][]float64 `toml:"palette" json:"palette,omitempty"`
}

// Default returns a configuration for the current calendar year with every
// section enabled.
func Default() Config {
	year := time.Now().UTC().Year()
	return Config{
		Title:           DefaultTitle,
		Start:           NewDate(time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)),
		End:             NewDate(time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC)),
		Device:          DefaultDevice,
		Density:         DefaultDensity,
		Colors:          DefaultColors,
		ToolbarEdge:     profile.EdgeNone,
		IncludeWeekends: true,
		DailyStyle:      DefaultDailyStyle,
		Collections:     DefaultCollections,
		Sections: Sections{
			Index:       true,
			Key:         true,
			Future:      true,
			Monthly:     true,
			Weekly:      true,
			Daily:       true,
			Collections: true,
		},
	}
}

// Load reads and validates a TOML configuration file.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Config{}, errors.Wrap(errors.ErrCodeNotFound, err, "config file %s", path)
		}
		return Config{}, errors.Wrap(errors.ErrCodeInvalidPath, err, "read config %s", path)
	}
	return Parse(data)
}

// Parse decodes a TOML document on top of [Default] and validates the result.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	md, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse toml")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return Config{}, errors.New(errors.ErrCodeInvalidConfig, "unknown config key %q", undecoded[0].String())
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// ParseJSON decodes a JSON document on top of [Default] and validates it.
func ParseJSON(data []byte) (Config, error) {
	cfg := Default()
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse json")
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Encode writes cfg as TOML.
func (c Config) Encode() ([]byte, error) {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(c); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode toml")
	}
	return buf.Bytes(), nil
}
