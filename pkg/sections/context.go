// Package sections generates the content pages of a planner: the key
// legend, the future log, monthly calendars and task lists, weekly reviews,
// daily logs, collections and the optional cover.
//
// Every generator appends pages to a [Book] and returns the page references
// it created. A reference's page index is the number of content pages that
// existed when its page was appended, so indices are gap-free and
// increasing. Index pages are inserted later by the engine, which shifts
// every reference once.
//
// Navigation rows are drawn through [Context.Nav]. Clickable regions inside
// page content (calendar days, week numbers, future-log months) are not
// recorded while drawing; [Anchors] recomputes them from a page reference
// with the same layout functions the generators use.
package sections

import (
	"time"

	"github.com/matzehuels/planwright/pkg/config"
	"github.com/matzehuels/planwright/pkg/doc"
	"github.com/matzehuels/planwright/pkg/layout/nav"
	"github.com/matzehuels/planwright/pkg/pageref"
	"github.com/matzehuels/planwright/pkg/profile"
)

// Context is the layout state shared by every generator.
type Context struct {
	Config   config.Config
	Device   profile.Device
	Density  profile.Density
	Colors   profile.ColorScheme
	Sections nav.Sections
	Measurer doc.Measurer

	// Frame is the drawable area after margins, padding and toolbar.
	Frame doc.Rect

	days         []time.Time
	months       []time.Time
	futureMonths []time.Time
}

// NewContext resolves the configuration's presets and computes the page
// frame. Sections whose content is empty (no months in range, zero
// collections) are reported as disabled so navigation never shows a label
// that cannot resolve.
func NewContext(cfg config.Config, m doc.Measurer) (*Context, error) {
	dev, err := cfg.ResolveDevice()
	if err != nil {
		return nil, err
	}
	dens, err := cfg.ResolveDensity()
	if err != nil {
		return nil, err
	}
	colors, err := cfg.ResolveColors()
	if err != nil {
		return nil, err
	}

	c := &Context{
		Config:       cfg,
		Device:       dev,
		Density:      dens,
		Colors:       colors,
		Measurer:     m,
		Frame:        frame(cfg, dev),
		days:         cfg.Days(),
		months:       cfg.Months(),
		futureMonths: cfg.FutureLogMonths(),
	}
	s := cfg.Sections
	c.Sections = nav.Sections{
		Index:       s.Index,
		Key:         s.Key,
		Future:      s.Future && len(c.futureMonths) > 0,
		Monthly:     s.Monthly && len(c.months) > 0,
		Weekly:      s.Weekly && len(c.months) > 0,
		Daily:       s.Daily && len(c.days) > 0,
		Collections: s.Collections && len(cfg.CollectionLabels()) > 0,
	}
	return c, nil
}

func frame(cfg config.Config, dev profile.Device) doc.Rect {
	p := cfg.Padding
	r := doc.Rect{
		X: dev.Margin + p.Left,
		Y: dev.Margin + p.Bottom,
		W: dev.Width - 2*dev.Margin - p.Left - p.Right,
		H: dev.Height - 2*dev.Margin - p.Top - p.Bottom,
	}
	tb := cfg.ToolbarSize()
	switch cfg.ToolbarEdge {
	case profile.EdgeLeft:
		r.X += tb
		r.W -= tb
	case profile.EdgeRight:
		r.W -= tb
	case profile.EdgeBottom:
		r.Y += tb
		r.H -= tb
	case profile.EdgeTop:
		r.H -= tb
	}
	return r
}

// Days returns the planner days (weekends removed when excluded).
func (c *Context) Days() []time.Time { return c.days }

// Months returns the months the date range touches.
func (c *Context) Months() []time.Time { return c.months }

// FutureMonths returns the months listed in the future log.
func (c *Context) FutureMonths() []time.Time { return c.futureMonths }

// Weeks returns the Sunday of every week touching the date range.
func (c *Context) Weeks() []time.Time {
	start, end := c.Config.Start.Time(), c.Config.End.Time()
	var weeks []time.Time
	if end.Before(start) {
		return weeks
	}
	for s := pageref.WeekStart(start); !s.After(end); s = s.AddDate(0, 0, 7) {
		weeks = append(weeks, s)
	}
	return weeks
}

// InRange reports whether t lies inside the configured date range.
func (c *Context) InRange(t time.Time) bool {
	return !t.Before(c.Config.Start.Time()) && !t.After(c.Config.End.Time())
}

func (c *Context) navBaseline() float64 {
	return c.Frame.Top() - c.Density.FontSize*1.1
}

func (c *Context) titleBaseline() float64 {
	return c.navBaseline() - c.Density.FontSize*1.2 - c.Density.HeaderSize
}

func (c *Context) ruleY() float64 {
	return c.titleBaseline() - c.Density.HeaderSize*0.45
}

// Content is the area below the page header available to section layouts.
func (c *Context) Content() doc.Rect {
	top := c.ruleY() - c.Density.LineHeight*0.5
	return doc.Rect{X: c.Frame.X, Y: c.Frame.Y, W: c.Frame.W, H: top - c.Frame.Y}
}

// Nav lays out the navigation row of a page. Generators draw the result;
// the link pass calls it again with the same arguments to place hit regions.
func (c *Context) Nav(kind pageref.Kind, slot nav.Slot) (nav.Bar, []nav.Placed) {
	items := nav.Items(kind, c.Sections, slot)
	bar := nav.Bar{
		Baseline: c.navBaseline(),
		Size:     c.Density.FontSize,
		Gap:      c.Density.FontSize * 1.4,
	}
	bar.X = c.Frame.Right() - bar.Width(items, c.Measurer)
	return bar, bar.Layout(items, c.Measurer)
}

// NewPage starts a page with its navigation row, running title and header.
// Title and subtitle may be empty.
func (c *Context) NewPage(kind pageref.Kind, label string, slot nav.Slot, title, subtitle string) *doc.Page {
	p := &doc.Page{Kind: string(kind), Label: label}

	bar, placed := c.Nav(kind, slot)
	p.Draw(bar.Ops(placed, c.Colors.Text, c.Colors.Muted)...)

	// The running title is dropped when it would collide with the nav row.
	if t := c.Config.Title; t != "" {
		w := c.Measurer.TextWidth(t, c.Density.FontSize, false)
		limit := c.Frame.Right()
		if len(placed) > 0 {
			limit = placed[0].X - bar.Gap
		}
		if c.Frame.X+w <= limit {
			p.Draw(doc.Text{X: c.Frame.X, Y: bar.Baseline, Size: c.Density.FontSize, Color: c.Colors.Muted, Value: t})
		}
	}

	if title != "" {
		p.Draw(doc.Text{X: c.Frame.X, Y: c.titleBaseline(), Size: c.Density.HeaderSize, Bold: true, Color: c.Colors.Text, Value: title})
	}
	if subtitle != "" {
		w := c.Measurer.TextWidth(title, c.Density.HeaderSize, true)
		p.Draw(doc.Text{
			X:     c.Frame.X + w + c.Density.FontSize,
			Y:     c.titleBaseline(),
			Size:  c.Density.FontSize,
			Color: c.Colors.Muted,
			Value: subtitle,
		})
	}
	y := c.ruleY()
	p.Draw(doc.Line{X1: c.Frame.X, Y1: y, X2: c.Frame.Right(), Y2: y, Width: 0.8, Color: c.Colors.Line})
	return p
}

// centerBaseline returns the baseline that vertically centres text of the
// given size in r.
func centerBaseline(r doc.Rect, size float64) float64 {
	return r.Y + r.H/2 - size*0.35
}

// textRect is the clickable area over a text run.
func textRect(x, baseline, width, size float64) doc.Rect {
	return doc.Rect{X: x - size*0.2, Y: baseline - size*0.35, W: width + size*0.4, H: size * 1.4}
}

// ruled draws horizontal faint lines every pitch points down box.
func (c *Context) ruled(p *doc.Page, box doc.Rect, pitch float64) {
	for y := box.Top() - pitch; y >= box.Y-1e-9; y -= pitch {
		p.Draw(doc.Line{X1: box.X, Y1: y, X2: box.Right(), Y2: y, Width: 0.4, Color: c.Colors.FaintLine})
	}
}

// dotted draws a dot grid with the given pitch.
func (c *Context) dotted(p *doc.Page, box doc.Rect, pitch float64) {
	for y := box.Top() - pitch; y >= box.Y-1e-9; y -= pitch {
		for x := box.X; x <= box.Right()+1e-9; x += pitch {
			p.Draw(doc.Circle{X: x, Y: y, R: 0.6, Fill: true, Color: c.Colors.Dot})
		}
	}
}
