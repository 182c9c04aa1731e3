package config

import (
	"fmt"
	"slices"
	"time"

	"github.com/matzehuels/planwright/pkg/errors"
	"github.com/matzehuels/planwright/pkg/pageref"
	"github.com/matzehuels/planwright/pkg/profile"
)

// PaletteKeys are the colour names accepted in the [palette] table.
var PaletteKeys = []string{"background", "text", "muted", "line", "faint_line", "dot", "accent"}

// Validate checks presets, enum values and geometry.
func (c Config) Validate() error {
	if err := errors.ValidateLabel("title", c.Title); err != nil {
		return err
	}
	if c.Start.IsZero() || c.End.IsZero() {
		return errors.New(errors.ErrCodeInvalidDate, "start and end dates are required")
	}

	dev, err := c.ResolveDevice()
	if err != nil {
		return err
	}
	dens, err := c.ResolveDensity()
	if err != nil {
		return err
	}
	if _, err := c.ResolveColors(); err != nil {
		return err
	}

	if !profile.ValidEdges[c.ToolbarEdge] {
		return errors.New(errors.ErrCodeInvalidConfig, "invalid toolbar_edge %q (want none, left, right, top or bottom)", c.ToolbarEdge)
	}
	if c.ToolbarWidth < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "toolbar_width must not be negative")
	}
	if !ValidDailyStyles[c.DailyStyle] {
		return errors.New(errors.ErrCodeInvalidConfig, "invalid daily_style %q (want lined, dotted or blank)", c.DailyStyle)
	}
	if c.Collections < 0 || c.FutureMonths < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "collections and future_months must not be negative")
	}
	if c.FutureMonths > MaxFutureMonths {
		return errors.New(errors.ErrCodeInvalidConfig, "future_months must be at most %d, got %d", MaxFutureMonths, c.FutureMonths)
	}
	if c.Collections > MaxCollections || len(c.CollectionNames) > MaxCollections {
		return errors.New(errors.ErrCodeInvalidConfig, "at most %d collections are supported", MaxCollections)
	}
	for _, name := range c.CollectionNames {
		if err := errors.ValidateLabel("collection name", name); err != nil {
			return err
		}
	}

	p := c.Padding
	if p.Top < 0 || p.Right < 0 || p.Bottom < 0 || p.Left < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "padding must not be negative")
	}
	w := dev.Width - 2*dev.Margin - p.Left - p.Right
	h := dev.Height - 2*dev.Margin - p.Top - p.Bottom
	switch c.ToolbarEdge {
	case profile.EdgeLeft, profile.EdgeRight:
		w -= c.ToolbarSize()
	case profile.EdgeTop, profile.EdgeBottom:
		h -= c.ToolbarSize()
	}
	// Header band plus at least a handful of rows must fit.
	if w <= 0 || h <= dens.HeaderSize*3+dens.Row()*4 {
		return errors.New(errors.ErrCodeInvalidConfig, "content area %.0fx%.0fpt too small after margins, padding and toolbar", w, h)
	}
	return nil
}

// ResolveDevice returns the device preset with [page] overrides applied.
func (c Config) ResolveDevice() (profile.Device, error) {
	d, ok := profile.LookupDevice(c.Device)
	if !ok {
		return profile.Device{}, errors.New(errors.ErrCodeInvalidDevice, "unknown device %q", c.Device)
	}
	if c.Page.Width != 0 {
		d.Width = c.Page.Width
	}
	if c.Page.Height != 0 {
		d.Height = c.Page.Height
	}
	if c.Page.Margin != 0 {
		d.Margin = c.Page.Margin
	}
	if d.Width <= 0 || d.Height <= 0 || d.Margin < 0 {
		return profile.Device{}, errors.New(errors.ErrCodeInvalidDevice, "page size must be positive, got %gx%g margin %g", d.Width, d.Height, d.Margin)
	}
	return d, nil
}

// ResolveDensity returns the density preset with [typography] overrides.
func (c Config) ResolveDensity() (profile.Density, error) {
	d, ok := profile.LookupDensity(c.Density)
	if !ok {
		return profile.Density{}, errors.New(errors.ErrCodeInvalidDensity, "unknown density %q", c.Density)
	}
	t := c.Typography
	if t.LineHeight != 0 {
		d.LineHeight = t.LineHeight
	}
	if t.FontSize != 0 {
		d.FontSize = t.FontSize
	}
	if t.HeaderSize != 0 {
		d.HeaderSize = t.HeaderSize
	}
	if t.Spacing != 0 {
		d.Spacing = t.Spacing
	}
	if d.LineHeight <= 0 || d.FontSize <= 0 || d.HeaderSize <= 0 || d.Spacing <= 0 {
		return profile.Density{}, errors.New(errors.ErrCodeInvalidDensity, "typography values must be positive")
	}
	return d, nil
}

// ResolveColors returns the colour scheme with [palette] overrides.
func (c Config) ResolveColors() (profile.ColorScheme, error) {
	s, ok := profile.LookupColors(c.Colors)
	if !ok {
		return profile.ColorScheme{}, errors.New(errors.ErrCodeInvalidColorScheme, "unknown color scheme %q", c.Colors)
	}
	for key, v := range c.Palette {
		if len(v) != 3 {
			return profile.ColorScheme{}, errors.New(errors.ErrCodeInvalidColorScheme, "palette.%s needs 3 components, got %d", key, len(v))
		}
		rgb := profile.RGB{R: v[0], G: v[1], B: v[2]}
		if !rgb.Valid() {
			return profile.ColorScheme{}, errors.New(errors.ErrCodeInvalidColorScheme, "palette.%s components must lie in [0, 1]", key)
		}
		slot, err := paletteSlot(&s, key)
		if err != nil {
			return profile.ColorScheme{}, err
		}
		*slot = rgb
	}
	return s, nil
}

func paletteSlot(s *profile.ColorScheme, key string) (*profile.RGB, error) {
	switch key {
	case "background":
		return &s.Background, nil
	case "text":
		return &s.Text, nil
	case "muted":
		return &s.Muted, nil
	case "line":
		return &s.Line, nil
	case "faint_line":
		return &s.FaintLine, nil
	case "dot":
		return &s.Dot, nil
	case "accent":
		return &s.Accent, nil
	}
	return nil, errors.New(errors.ErrCodeInvalidColorScheme, "unknown palette key %q (want one of %v)", key, PaletteKeys)
}

// ToolbarSize is the width reserved on the toolbar edge.
func (c Config) ToolbarSize() float64 {
	if c.ToolbarEdge == profile.EdgeNone || c.ToolbarEdge == "" {
		return 0
	}
	if c.ToolbarWidth > 0 {
		return c.ToolbarWidth
	}
	return profile.DefaultToolbarWidth
}

// Days returns the planner days in order, dropping Saturdays and Sundays
// when weekends are excluded.
func (c Config) Days() []time.Time {
	days := pageref.Days(c.Start.Time(), c.End.Time())
	if c.IncludeWeekends {
		return days
	}
	return slices.DeleteFunc(days, func(d time.Time) bool {
		return d.Weekday() == time.Saturday || d.Weekday() == time.Sunday
	})
}

// Months returns the first day of every month the range touches.
func (c Config) Months() []time.Time {
	return pageref.Months(c.Start.Time(), c.End.Time())
}

// FutureLogMonths returns the months listed in the future log: the range's
// months, or FutureMonths months from the start when set.
func (c Config) FutureLogMonths() []time.Time {
	if c.FutureMonths == 0 {
		return c.Months()
	}
	if c.End.Time().Before(c.Start.Time()) {
		return nil
	}
	first := time.Date(c.Start.Time().Year(), c.Start.Time().Month(), 1, 0, 0, 0, 0, time.UTC)
	months := make([]time.Time, c.FutureMonths)
	for i := range months {
		months[i] = first.AddDate(0, i, 0)
	}
	return months
}

// CollectionLabels returns the collection page titles. Named collections
// take precedence over the plain count.
func (c Config) CollectionLabels() []string {
	if len(c.CollectionNames) > 0 {
		labels := make([]string, len(c.CollectionNames))
		for i, name := range c.CollectionNames {
			if name == "" {
				name = fmt.Sprintf("Collection %d", i+1)
			}
			labels[i] = name
		}
		return labels
	}
	labels := make([]string, c.Collections)
	for i := range labels {
		labels[i] = fmt.Sprintf("Collection %d", i+1)
	}
	return labels
}
