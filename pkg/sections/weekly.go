package sections

import (
	"fmt"
	"time"

	"github.com/matzehuels/planwright/pkg/doc"
	"github.com/matzehuels/planwright/pkg/layout/paginate"
	"github.com/matzehuels/planwright/pkg/pageref"
)

// weekPlan gives the seven days of a week equal rows on a single page.
func weekPlan(c *Context) paginate.Plan {
	h := c.Content().H
	return paginate.New(h, h/7, h/7, 7)
}

// weekDayCell is the clickable day label at the top-left of a weekly row.
func (c *Context) weekDayCell(r doc.Rect) doc.Rect {
	h := c.Density.Row()
	return doc.Rect{X: r.X, Y: r.Top() - h, W: c.Density.FontSize * 7, H: h}
}

// Weekly appends one review page per Sunday-first week touching the range.
func Weekly(c *Context, b *Book) []pageref.Ref {
	weeks := c.Weeks()
	plan := weekPlan(c)
	box := c.Content()

	refs := make([]pageref.Ref, 0, len(weeks))
	for i, start := range weeks {
		key := pageref.WeekOf(start)
		month := start
		if !c.InRange(month) {
			month = c.Config.Start.Time()
		}
		end := start.AddDate(0, 0, 6)

		label := fmt.Sprintf("%d Week %d", key.Year, key.Week)
		ref := pageref.Weekly{
			Base:  base(label, b.Len()),
			Start: start,
			Week:  key,
			Month: pageref.YearMonthOf(month),
		}
		slot := slotOf(i, len(weeks))
		subtitle := fmt.Sprintf("%s - %s", start.Format("Jan 2"), end.Format("Jan 2, 2006"))
		p := c.NewPage(pageref.KindWeekly, label, slot, fmt.Sprintf("Week %d", key.Week), subtitle)

		for s := 0; s < 7; s++ {
			c.drawWeekDay(p, plan.RowRect(box, 0, s), start.AddDate(0, 0, s))
		}
		b.add(p, ref, slot)
		refs = append(refs, ref)
	}
	return refs
}

func (c *Context) drawWeekDay(p *doc.Page, r doc.Rect, day time.Time) {
	cell := c.weekDayCell(r)
	size := c.Density.FontSize
	col := c.Colors.Text
	if !c.InRange(day) {
		col = c.Colors.Muted
	}
	p.Draw(doc.Text{X: cell.X + size*0.2, Y: centerBaseline(cell, size), Size: size, Bold: true, Color: col, Value: day.Format("Mon Jan 2")})
	c.ruled(p, doc.Rect{X: r.X, Y: r.Y, W: r.W, H: cell.Y - r.Y}, c.Density.Row())
	p.Draw(doc.Line{X1: r.X, Y1: r.Y, X2: r.Right(), Y2: r.Y, Width: 0.8, Color: c.Colors.Line})
}

// weekAnchors links every day label of a weekly page to its daily page.
func weekAnchors(c *Context, ref pageref.Weekly) []Anchor {
	plan := weekPlan(c)
	box := c.Content()
	anchors := make([]Anchor, 0, 7)
	for s := 0; s < 7; s++ {
		day := ref.Start.AddDate(0, 0, s)
		anchors = append(anchors, Anchor{
			Rect:   c.weekDayCell(plan.RowRect(box, 0, s)),
			Target: pageref.DailyTarget(day),
		})
	}
	return anchors
}
