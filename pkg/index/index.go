// Package index builds the planner's index pages: a directory of every
// section with clickable entries.
//
// Building happens in two steps so that the number of index pages is final
// before any page number or link exists. [Plan] collects rows from the
// content references and paginates them; it needs no page indices, only
// semantic targets. The engine then shifts content references by the index
// page count, builds the registry, and calls [Draw] to render the pages with
// resolved page numbers. [Anchors] recomputes the clickable cells of one
// index page from the same plan.
package index

import (
	"fmt"
	"time"

	"github.com/matzehuels/planwright/pkg/doc"
	"github.com/matzehuels/planwright/pkg/pageref"
	"github.com/matzehuels/planwright/pkg/sections"
)

// Cell is one piece of text on an index row.
type Cell struct {
	X, W   float64
	Text   string
	Bold   bool
	Muted  bool
	Target *pageref.Target // nil when the cell does not link anywhere

	// PageNo draws the target's page number right-aligned in the cell.
	PageNo bool
}

// Row is one line of the index.
type Row struct {
	Cells   []Cell
	Heading bool
}

// Placed is a row positioned on an index page.
type Placed struct {
	Row  Row
	Rect doc.Rect
}

// Page is one index page.
type Page struct {
	Rows []Placed
}

// Layout is the paginated index.
type Layout struct {
	Pages []Page
}

// PageCount returns the number of index pages. It is at least one.
func (l Layout) PageCount() int { return len(l.Pages) }

// Plan collects and paginates the index for the given content references.
func Plan(c *sections.Context, refs []pageref.Ref) Layout {
	return Paginate(c, Collect(c, refs))
}

// Paginate stacks rows top to bottom and starts a new page whenever the
// space left is smaller than one row. A heading is never left as the last
// row of a page. The result always has at least one page.
func Paginate(c *sections.Context, rows []Row) Layout {
	box := c.Content()
	h := c.Density.Row()
	l := Layout{Pages: []Page{{}}}
	y := box.Top()

	for i, row := range rows {
		need := h
		if row.Heading && i+1 < len(rows) {
			need = 2 * h
		}
		if y-need < box.Y-1e-9 && len(l.Pages[len(l.Pages)-1].Rows) > 0 {
			l.Pages = append(l.Pages, Page{})
			y = box.Top()
		}
		y -= h
		cur := &l.Pages[len(l.Pages)-1]
		cur.Rows = append(cur.Rows, Placed{Row: row, Rect: doc.Rect{X: box.X, Y: y, W: box.W, H: h}})
	}
	return l
}

// Collect builds the index rows grouped by section.
func Collect(c *sections.Context, refs []pageref.Ref) []Row {
	var (
		key      []pageref.Key
		future   []pageref.Future
		months   []pageref.YearMonth
		seen     = map[pageref.YearMonth]bool{}
		weeks    = map[pageref.YearMonth][]pageref.Weekly{}
		days     = map[pageref.DateKey]bool{}
		dayMonth []pageref.YearMonth
		daySeen  = map[pageref.YearMonth]bool{}
		colls    []pageref.Collection
	)
	for _, ref := range refs {
		switch v := ref.(type) {
		case pageref.Key:
			key = append(key, v)
		case pageref.Future:
			future = append(future, v)
		case pageref.Monthly:
			if !seen[v.Month] {
				seen[v.Month] = true
				months = append(months, v.Month)
			}
		case pageref.Weekly:
			if !seen[v.Month] {
				seen[v.Month] = true
				months = append(months, v.Month)
			}
			weeks[v.Month] = append(weeks[v.Month], v)
		case pageref.Daily:
			days[v.Day] = true
			if !daySeen[v.Month] {
				daySeen[v.Month] = true
				dayMonth = append(dayMonth, v.Month)
			}
		case pageref.Collection:
			colls = append(colls, v)
		}
	}

	box := c.Content()
	var rows []Row
	heading := func(text string) {
		rows = append(rows, Row{Heading: true, Cells: []Cell{{X: box.X, W: box.W, Text: text, Bold: true}}})
	}
	entry := func(text string, t pageref.Target) {
		rows = append(rows, Row{Cells: []Cell{{X: box.X, W: box.W, Text: text, Target: &t, PageNo: true}}})
	}

	if len(key) > 0 || len(future) > 0 {
		heading("Key & Future Log")
		for range key {
			entry("Key", pageref.Target{Kind: pageref.KindKey})
		}
		for i, f := range future {
			entry(f.Label(), pageref.Target{Kind: pageref.KindFuture, Ordinal: i})
		}
	}

	if len(months) > 0 {
		heading("Months & Weeks")
		rows = append(rows, monthRows(c, box, months, weeks)...)
	}

	if len(dayMonth) > 0 {
		heading("Daily Log")
		for _, m := range dayMonth {
			rows = append(rows, dayGrid(c, box, m, days)...)
		}
	}

	if len(colls) > 0 {
		heading("Collections")
		cw := c.Density.FontSize * 2.6
		perRow := max(1, int(box.W/cw))
		var cells []Cell
		for i, col := range colls {
			t := pageref.Target{Kind: pageref.KindCollection, Ordinal: i}
			cells = append(cells, Cell{X: box.X + float64(i%perRow)*cw, W: cw, Text: fmt.Sprint(col.Number), Target: &t})
			if len(cells) == perRow {
				rows = append(rows, Row{Cells: cells})
				cells = nil
			}
		}
		if len(cells) > 0 {
			rows = append(rows, Row{Cells: cells})
		}
	}
	return rows
}

// monthRows is the two-column month/week table.
func monthRows(c *sections.Context, box doc.Rect, months []pageref.YearMonth, weeks map[pageref.YearMonth][]pageref.Weekly) []Row {
	left, right := box.SplitX(0.45)
	cw := c.Density.FontSize * 2.8
	perRow := max(1, int(right.W/cw))

	var rows []Row
	for _, m := range months {
		t, err := m.Time()
		if err != nil {
			continue
		}
		name := Cell{X: left.X, W: left.W, Text: t.Format("January 2006")}
		if c.Sections.Monthly {
			target := pageref.MonthlyTarget(m)
			name.Target = &target
		}
		row := Row{Cells: []Cell{name}}
		for i, w := range weeks[m] {
			if i > 0 && i%perRow == 0 {
				rows = append(rows, row)
				row = Row{}
			}
			target := pageref.WeeklyTarget(w.Week)
			row.Cells = append(row.Cells, Cell{
				X: right.X + float64(i%perRow)*cw, W: cw,
				Text: fmt.Sprintf("W%02d", w.Week.Week), Target: &target,
			})
		}
		rows = append(rows, row)
	}
	return rows
}

var weekdayInitials = []string{"S", "M", "T", "W", "T", "F", "S"}

// dayGrid is a Sunday-first grid of one month's day numbers. Days with a
// daily page link to it; the others are drawn muted.
func dayGrid(c *sections.Context, box doc.Rect, m pageref.YearMonth, days map[pageref.DateKey]bool) []Row {
	first, err := m.Time()
	if err != nil {
		return nil
	}
	cw := min(box.W/8, c.Density.FontSize*3)
	x0 := box.X + cw

	rows := []Row{{Cells: []Cell{{X: box.X, W: box.W, Text: first.Format("January 2006"), Bold: true, Muted: true}}}}
	head := Row{}
	for i, s := range weekdayInitials {
		head.Cells = append(head.Cells, Cell{X: x0 + float64(i)*cw, W: cw, Text: s, Muted: true})
	}
	rows = append(rows, head)

	row := Row{}
	n := pageref.DaysIn(first)
	for d := 0; d < n; d++ {
		day := first.AddDate(0, 0, d)
		col := int(day.Weekday())
		if col == int(time.Sunday) && len(row.Cells) > 0 {
			rows = append(rows, row)
			row = Row{}
		}
		cell := Cell{X: x0 + float64(col)*cw, W: cw, Text: fmt.Sprint(day.Day()), Muted: true}
		if days[pageref.DateKeyOf(day)] {
			t := pageref.DailyTarget(day)
			cell.Target = &t
			cell.Muted = false
		}
		row.Cells = append(row.Cells, cell)
	}
	if len(row.Cells) > 0 {
		rows = append(rows, row)
	}
	return rows
}
