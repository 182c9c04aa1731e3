package index

import (
	"fmt"

	"github.com/matzehuels/planwright/pkg/doc"
	"github.com/matzehuels/planwright/pkg/layout/nav"
	"github.com/matzehuels/planwright/pkg/pageref"
	"github.com/matzehuels/planwright/pkg/sections"
)

// Refs returns the references of the index pages when the first index page
// sits at physical index offset.
func Refs(l Layout, offset int) []pageref.Ref {
	refs := make([]pageref.Ref, l.PageCount())
	for i := range refs {
		refs[i] = pageref.Index{Base: pageref.Base{Name: label(i, l.PageCount()), Index: offset + i}, Part: i}
	}
	return refs
}

func label(part, n int) string {
	if n == 1 {
		return "Index"
	}
	return fmt.Sprintf("Index (%d/%d)", part+1, n)
}

// Draw renders the index pages. lookup resolves an entry's target to its
// final page index for the printed page numbers; entries that do not
// resolve are printed without a number.
func Draw(c *sections.Context, l Layout, offset int, lookup func(pageref.Target) (int, bool)) []sections.Sheet {
	refs := Refs(l, offset)
	n := l.PageCount()
	sheets := make([]sections.Sheet, n)
	for i, pg := range l.Pages {
		slot := nav.Slot{HasPrev: i > 0, HasNext: i < n-1}
		subtitle := ""
		if n > 1 {
			subtitle = fmt.Sprintf("%d/%d", i+1, n)
		}
		p := c.NewPage(pageref.KindIndex, label(i, n), slot, "Index", subtitle)
		for _, pr := range pg.Rows {
			drawRow(c, p, pr, lookup)
		}
		sheets[i] = sections.Sheet{Kind: pageref.KindIndex, Page: p, Ref: refs[i], Slot: slot}
	}
	return sheets
}

func drawRow(c *sections.Context, p *doc.Page, pr Placed, lookup func(pageref.Target) (int, bool)) {
	size := c.Density.FontSize
	baseline := pr.Rect.Y + pr.Rect.H/2 - size*0.35
	for _, cell := range pr.Row.Cells {
		col := c.Colors.Text
		if cell.Muted {
			col = c.Colors.Muted
		}
		p.Draw(doc.Text{X: cell.X + size*0.2, Y: baseline, Size: size, Bold: cell.Bold, Color: col, Value: cell.Text})
		if cell.PageNo && cell.Target != nil {
			if page, ok := lookup(*cell.Target); ok {
				num := fmt.Sprint(page + 1)
				w := c.Measurer.TextWidth(num, size, false)
				p.Draw(doc.Text{X: cell.X + cell.W - w - size*0.2, Y: baseline, Size: size, Color: c.Colors.Muted, Value: num})
			}
			p.Draw(doc.Line{X1: cell.X, Y1: pr.Rect.Y, X2: cell.X + cell.W, Y2: pr.Rect.Y, Width: 0.4, Color: c.Colors.FaintLine})
		}
	}
	if pr.Row.Heading {
		r := pr.Rect
		p.Draw(doc.Line{X1: r.X, Y1: r.Y, X2: r.Right(), Y2: r.Y, Width: 0.8, Color: c.Colors.Line})
	}
}

// Anchors returns the clickable cells of index page part.
func Anchors(l Layout, part int) []sections.Anchor {
	if part < 0 || part >= l.PageCount() {
		return nil
	}
	var anchors []sections.Anchor
	for _, pr := range l.Pages[part].Rows {
		for _, cell := range pr.Row.Cells {
			if cell.Target == nil {
				continue
			}
			anchors = append(anchors, sections.Anchor{
				Rect:   doc.Rect{X: cell.X, Y: pr.Rect.Y, W: cell.W, H: pr.Rect.H},
				Target: *cell.Target,
			})
		}
	}
	return anchors
}
