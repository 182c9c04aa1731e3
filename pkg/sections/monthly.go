package sections

import (
	"fmt"
	"time"

	"github.com/matzehuels/planwright/pkg/doc"
	"github.com/matzehuels/planwright/pkg/layout/paginate"
	"github.com/matzehuels/planwright/pkg/pageref"
)

// monthLayout is the geometry of one month: a row per calendar day,
// paginated, and the area holding the month's task list.
type monthLayout struct {
	month    time.Time
	days     []time.Time
	plan     paginate.Plan
	combined bool
	cal      doc.Rect
	tasks    doc.Rect
}

// layoutMonth computes a month's layout. When all day rows fit on one page
// the calendar and the task list share it side by side; otherwise the
// calendar spans full-width pages and the tasks get a page of their own.
func (c *Context) layoutMonth(month time.Time) monthLayout {
	box := c.Content()
	row := c.Density.Row()
	n := pageref.DaysIn(month)

	ml := monthLayout{
		month: month,
		days:  make([]time.Time, n),
		plan:  paginate.New(box.H, row, row*1.25, n),
		cal:   box,
		tasks: box,
	}
	for i := range ml.days {
		ml.days[i] = month.AddDate(0, 0, i)
	}
	ml.combined = ml.plan.Single()
	if ml.combined {
		cal, tasks := box.SplitX(0.58)
		gutter := c.Density.FontSize * 1.5
		tasks.X += gutter
		tasks.W -= gutter
		ml.cal, ml.tasks = cal, tasks
	}
	return ml
}

// dayRow splits a calendar row into the day area and the week number cell.
func (c *Context) dayRow(r doc.Rect) (day, week doc.Rect) {
	ww := c.Density.FontSize * 3.2
	return doc.Rect{X: r.X, Y: r.Y, W: r.W - ww, H: r.H}, doc.Rect{X: r.Right() - ww, Y: r.Y, W: ww, H: r.H}
}

// showsWeek reports whether a calendar row carries a week number: Sundays
// and the first row of every page.
func (c *Context) showsWeek(day time.Time, slot int) bool {
	return c.Sections.Weekly && (slot == 0 || day.Weekday() == time.Sunday)
}

// Monthly appends calendar and task pages for every month in range.
func Monthly(c *Context, b *Book) []pageref.Ref {
	layouts := make([]monthLayout, len(c.months))
	calPages := 0
	for i, m := range c.months {
		layouts[i] = c.layoutMonth(m)
		calPages += layouts[i].plan.PageCount()
	}

	var refs []pageref.Ref
	cal := 0
	for mi, ml := range layouts {
		ym := pageref.YearMonthOf(ml.month)
		name := ml.month.Format("January 2006")
		parts := ml.plan.PageCount()

		for part := range ml.plan.Pages {
			label := name
			subtitle := ""
			if parts > 1 {
				subtitle = fmt.Sprintf("%d/%d", part+1, parts)
				label = fmt.Sprintf("%s (%s)", name, subtitle)
			}
			idx := b.Len()
			ref := pageref.Monthly{Base: base(label, idx), Month: ym, Part: part, Parts: parts}
			slot := slotOf(cal, calPages)
			slot.Combined = ml.combined
			cal++

			p := c.NewPage(pageref.KindMonthly, label, slot, name, subtitle)
			c.drawCalendar(p, ml, part)
			if !ml.combined {
				b.add(p, ref, slot)
				refs = append(refs, ref)
				continue
			}
			tasks := pageref.MonthlyTasks{Base: base(name+" Tasks", idx), Month: ym, Combined: true}
			c.drawTasks(p, ml.tasks, true)
			b.add(p, ref, slot, tasks)
			refs = append(refs, ref, tasks)
		}

		if ml.combined {
			continue
		}
		label := name + " Tasks"
		tasks := pageref.MonthlyTasks{Base: base(label, b.Len()), Month: ym}
		slot := slotOf(mi, len(layouts))
		p := c.NewPage(pageref.KindMonthlyTasks, label, slot, name, "tasks")
		c.drawTasks(p, ml.tasks, false)
		b.add(p, tasks, slot)
		refs = append(refs, tasks)
	}
	return refs
}

func (c *Context) drawCalendar(p *doc.Page, ml monthLayout, part int) {
	pg := ml.plan.Pages[part]
	size := c.Density.FontSize
	for s := 0; s < pg.Count; s++ {
		day := ml.days[pg.First+s]
		r := ml.plan.RowRect(ml.cal, part, s)
		dayCell, weekCell := c.dayRow(r)
		baseline := centerBaseline(r, size)

		col := c.Colors.Text
		if day.Weekday() == time.Saturday || day.Weekday() == time.Sunday {
			col = c.Colors.Muted
		}
		p.Draw(
			doc.Text{X: dayCell.X + size*0.2, Y: baseline, Size: size, Bold: true, Color: col, Value: fmt.Sprintf("%2d", day.Day())},
			doc.Text{X: dayCell.X + size*1.8, Y: baseline, Size: size, Color: c.Colors.Muted, Value: day.Format("Mon")[:2]},
		)
		if c.showsWeek(day, s) {
			w := c.Measurer.TextWidth(weekLabel(day), size, false)
			p.Draw(doc.Text{X: weekCell.Right() - w - size*0.2, Y: baseline, Size: size, Color: c.Colors.Accent, Value: weekLabel(day)})
		}

		lineCol, width := c.Colors.FaintLine, 0.4
		if day.Weekday() == time.Saturday {
			lineCol, width = c.Colors.Line, 0.8
		}
		p.Draw(doc.Line{X1: r.X, Y1: r.Y, X2: r.Right(), Y2: r.Y, Width: width, Color: lineCol})
	}
}

func weekLabel(day time.Time) string {
	return fmt.Sprintf("W%02d", pageref.WeekOf(day).Week)
}

// drawTasks draws a checklist filling box.
func (c *Context) drawTasks(p *doc.Page, box doc.Rect, heading bool) {
	size := c.Density.FontSize
	pitch := c.Density.Row()
	top := box.Top()
	if heading {
		p.Draw(doc.Text{X: box.X, Y: top - size*1.2, Size: size, Bold: true, Color: c.Colors.Text, Value: "Tasks"})
		top -= pitch
	}
	sq := size * 0.8
	for y := top - pitch; y >= box.Y-1e-9; y -= pitch {
		p.Draw(
			doc.Box{Rect: doc.Rect{X: box.X, Y: y + (pitch-sq)/2, W: sq, H: sq}, Width: 0.5, Color: c.Colors.Muted},
			doc.Line{X1: box.X + sq*1.6, Y1: y, X2: box.Right(), Y2: y, Width: 0.4, Color: c.Colors.FaintLine},
		)
	}
}

// monthAnchors links each calendar row to its daily page and each week
// number to its weekly page.
func monthAnchors(c *Context, ref pageref.Monthly) []Anchor {
	first, err := ref.Month.Time()
	if err != nil {
		return nil
	}
	ml := c.layoutMonth(first)
	if ref.Part < 0 || ref.Part >= ml.plan.PageCount() {
		return nil
	}
	pg := ml.plan.Pages[ref.Part]
	anchors := make([]Anchor, 0, pg.Count)
	for s := 0; s < pg.Count; s++ {
		day := ml.days[pg.First+s]
		dayCell, weekCell := c.dayRow(ml.plan.RowRect(ml.cal, ref.Part, s))
		anchors = append(anchors, Anchor{Rect: dayCell, Target: pageref.DailyTarget(day)})
		if c.showsWeek(day, s) {
			anchors = append(anchors, Anchor{Rect: weekCell, Target: pageref.WeeklyTarget(pageref.WeekOf(day))})
		}
	}
	return anchors
}
