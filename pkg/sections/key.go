package sections

import (
	"github.com/matzehuels/planwright/pkg/config"
	"github.com/matzehuels/planwright/pkg/doc"
	"github.com/matzehuels/planwright/pkg/layout/nav"
	"github.com/matzehuels/planwright/pkg/pageref"
	"github.com/matzehuels/planwright/pkg/profile"
)

// Glyph is one entry of the bullet legend.
type Glyph struct {
	Name      string
	Meaning   string
	Signifier bool
}

// Glyphs is the legend drawn on the key page, bullets first.
var Glyphs = []Glyph{
	{Name: "task", Meaning: "task"},
	{Name: "done", Meaning: "task completed"},
	{Name: "migrated", Meaning: "task moved to a collection"},
	{Name: "scheduled", Meaning: "task moved to the future log"},
	{Name: "cancelled", Meaning: "task no longer relevant"},
	{Name: "note", Meaning: "note"},
	{Name: "event", Meaning: "event"},
	{Name: "priority", Meaning: "priority", Signifier: true},
	{Name: "inspiration", Meaning: "inspiration", Signifier: true},
	{Name: "explore", Meaning: "explore further", Signifier: true},
}

// Key appends the legend page.
func Key(c *Context, b *Book) []pageref.Ref {
	ref := pageref.Key{Base: base("Key", b.Len())}
	p := c.NewPage(pageref.KindKey, ref.Name, nav.Slot{}, "Key", "bullets and signifiers")

	box := c.Content()
	row := c.Density.Row() * 1.5
	size := c.Density.FontSize
	y := box.Top() - row
	for i, g := range Glyphs {
		if i > 0 && g.Signifier && !Glyphs[i-1].Signifier {
			y -= row / 2
			p.Draw(doc.Text{X: box.X, Y: y + row*0.4, Size: size, Bold: true, Color: c.Colors.Muted, Value: "Signifiers"})
			y -= row / 2
		}
		if y < box.Y {
			break
		}
		r := doc.Rect{X: box.X, Y: y, W: box.W, H: row}
		cx, cy := box.X+size, centerBaseline(r, size)+size*0.35
		p.Draw(glyphOps(g.Name, cx, cy, size*0.5, c.Colors.Text)...)
		p.Draw(doc.Text{X: box.X + size*3, Y: centerBaseline(r, size), Size: size, Color: c.Colors.Text, Value: g.Meaning})
		p.Draw(doc.Line{X1: box.X, Y1: y, X2: box.Right(), Y2: y, Width: 0.4, Color: c.Colors.FaintLine})
		y -= row
	}

	b.add(p, ref, nav.Slot{})
	return []pageref.Ref{ref}
}

// glyphOps draws a legend symbol centred at (x, y) with radius r.
func glyphOps(name string, x, y, r float64, col profile.RGB) []doc.Op {
	w := r * 0.35
	switch name {
	case "task":
		return []doc.Op{doc.Circle{X: x, Y: y, R: r * 0.45, Fill: true, Color: col}}
	case "done":
		return []doc.Op{
			doc.Line{X1: x - r*0.6, Y1: y - r*0.6, X2: x + r*0.6, Y2: y + r*0.6, Width: w, Color: col},
			doc.Line{X1: x - r*0.6, Y1: y + r*0.6, X2: x + r*0.6, Y2: y - r*0.6, Width: w, Color: col},
		}
	case "migrated":
		return []doc.Op{
			doc.Line{X1: x - r*0.4, Y1: y + r*0.6, X2: x + r*0.4, Y2: y, Width: w, Color: col},
			doc.Line{X1: x + r*0.4, Y1: y, X2: x - r*0.4, Y2: y - r*0.6, Width: w, Color: col},
		}
	case "scheduled":
		return []doc.Op{
			doc.Line{X1: x + r*0.4, Y1: y + r*0.6, X2: x - r*0.4, Y2: y, Width: w, Color: col},
			doc.Line{X1: x - r*0.4, Y1: y, X2: x + r*0.4, Y2: y - r*0.6, Width: w, Color: col},
		}
	case "cancelled":
		return []doc.Op{
			doc.Circle{X: x, Y: y, R: r * 0.45, Fill: true, Color: col},
			doc.Line{X1: x - r, Y1: y, X2: x + r, Y2: y, Width: w, Color: col},
		}
	case "note":
		return []doc.Op{doc.Line{X1: x - r*0.6, Y1: y, X2: x + r*0.6, Y2: y, Width: w, Color: col}}
	case "event":
		return []doc.Op{doc.Circle{X: x, Y: y, R: r * 0.55, Width: w, Color: col}}
	case "priority":
		return []doc.Op{
			doc.Line{X1: x, Y1: y - r*0.7, X2: x, Y2: y + r*0.7, Width: w, Color: col},
			doc.Line{X1: x - r*0.6, Y1: y - r*0.35, X2: x + r*0.6, Y2: y + r*0.35, Width: w, Color: col},
			doc.Line{X1: x - r*0.6, Y1: y + r*0.35, X2: x + r*0.6, Y2: y - r*0.35, Width: w, Color: col},
		}
	case "inspiration":
		return []doc.Op{
			doc.Line{X1: x, Y1: y - r*0.2, X2: x, Y2: y + r*0.8, Width: w * 1.3, Color: col},
			doc.Circle{X: x, Y: y - r*0.65, R: w * 0.8, Fill: true, Color: col},
		}
	case "explore":
		return []doc.Op{
			doc.Circle{X: x, Y: y, R: r * 0.7, Width: w, Color: col},
			doc.Circle{X: x, Y: y, R: r * 0.25, Fill: true, Color: col},
		}
	}
	return nil
}

// Cover draws the front page. It is not part of the content book and has no
// page reference; its only navigation label leads to the index.
func Cover(c *Context) Sheet {
	title := c.Config.Title
	if title == "" {
		title = config.DefaultTitle
	}
	p := c.NewPage(nav.KindCover, "Cover", nav.Slot{}, "", "")

	size := c.Density.HeaderSize * 1.8
	box := c.Content()
	w := c.Measurer.TextWidth(title, size, true)
	y := box.Y + box.H*0.6
	p.Draw(doc.Text{X: box.X + (box.W-w)/2, Y: y, Size: size, Bold: true, Color: c.Colors.Text, Value: title})

	span := c.Config.Start.String() + " to " + c.Config.End.String()
	sw := c.Measurer.TextWidth(span, c.Density.FontSize, false)
	p.Draw(doc.Text{X: box.X + (box.W-sw)/2, Y: y - size, Size: c.Density.FontSize, Color: c.Colors.Muted, Value: span})
	p.Draw(doc.Line{X1: box.X + box.W*0.3, Y1: y - size*0.45, X2: box.Right() - box.W*0.3, Y2: y - size*0.45, Width: 0.8, Color: c.Colors.Accent})

	return Sheet{Kind: nav.KindCover, Page: p}
}
