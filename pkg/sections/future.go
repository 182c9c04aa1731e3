package sections

import (
	"fmt"
	"time"

	"github.com/matzehuels/planwright/pkg/doc"
	"github.com/matzehuels/planwright/pkg/layout/paginate"
	"github.com/matzehuels/planwright/pkg/pageref"
)

// futurePlan paginates the future log: one block per month, ideally seven
// lines tall, never fewer than four.
func futurePlan(c *Context) paginate.Plan {
	row := c.Density.Row()
	return paginate.New(c.Content().H, row*4, row*7, len(c.futureMonths))
}

// futureHeading returns the month name's baseline and size inside block r.
func (c *Context) futureHeading(r doc.Rect) (baseline, size float64) {
	size = c.Density.FontSize * 1.2
	return r.Top() - size*1.3, size
}

// FutureLog appends the future log pages.
func FutureLog(c *Context, b *Book) []pageref.Ref {
	plan := futurePlan(c)
	box := c.Content()
	n := plan.PageCount()

	refs := make([]pageref.Ref, 0, n)
	for i, pg := range plan.Pages {
		months := c.futureMonths[pg.First : pg.First+pg.Count]
		keys := make([]pageref.YearMonth, len(months))
		for j, m := range months {
			keys[j] = pageref.YearMonthOf(m)
		}

		label := "Future Log"
		subtitle := months[0].Format("Jan 2006")
		if len(months) > 1 {
			subtitle += " - " + months[len(months)-1].Format("Jan 2006")
		}
		if n > 1 {
			label = fmt.Sprintf("Future Log (%d/%d)", i+1, n)
		}

		ref := pageref.Future{Base: base(label, b.Len()), Part: i, Months: keys}
		slot := slotOf(i, n)
		p := c.NewPage(pageref.KindFuture, label, slot, "Future Log", subtitle)
		for s, m := range months {
			c.drawFutureMonth(p, plan.RowRect(box, i, s), m)
		}
		b.add(p, ref, slot)
		refs = append(refs, ref)
	}
	return refs
}

func (c *Context) drawFutureMonth(p *doc.Page, r doc.Rect, m time.Time) {
	baseline, size := c.futureHeading(r)
	p.Draw(doc.Text{X: r.X, Y: baseline, Size: size, Bold: true, Color: c.Colors.Text, Value: m.Format("January 2006")})

	lines := doc.Rect{X: r.X, Y: r.Y, W: r.W, H: baseline - size*0.5 - r.Y}
	c.ruled(p, lines, c.Density.Row())
	p.Draw(doc.Line{X1: r.X, Y1: r.Y, X2: r.Right(), Y2: r.Y, Width: 0.8, Color: c.Colors.Line})
}

// futureAnchors links every month heading on a future-log page to the
// month's calendar.
func futureAnchors(c *Context, ref pageref.Future) []Anchor {
	plan := futurePlan(c)
	if ref.Part < 0 || ref.Part >= plan.PageCount() {
		return nil
	}
	box := c.Content()
	pg := plan.Pages[ref.Part]
	anchors := make([]Anchor, 0, pg.Count)
	for s := 0; s < pg.Count; s++ {
		m := c.futureMonths[pg.First+s]
		r := plan.RowRect(box, ref.Part, s)
		baseline, size := c.futureHeading(r)
		w := c.Measurer.TextWidth(m.Format("January 2006"), size, true)
		anchors = append(anchors, Anchor{
			Rect:   textRect(r.X, baseline, w, size),
			Target: pageref.MonthlyTarget(pageref.YearMonthOf(m)),
		})
	}
	return anchors
}
