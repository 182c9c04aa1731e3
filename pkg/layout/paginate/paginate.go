// Package paginate splits N logical rows across fixed-height pages.
//
// The policy is shared by every section that lays out rows (monthly day
// rows, weekly day rows, future-log months):
//
//   - If all rows fit at the preferred height (N*pref <= H), use one page and
//     stretch each row to H/N.
//   - Otherwise place floor(H/min) rows per page over ceil(N/rowsPerPage)
//     pages, and give every page, including a partially filled last page, a
//     row height of H/rowsOnThatPage.
//
// A [Plan] is a pure function of its inputs, so any component that needs a
// row's rectangle later (for example to link a calendar day to its daily
// page) rebuilds the plan with [New] and calls [Plan.RowRect] instead of
// remembering drawn geometry.
package paginate

import (
	"math"

	"github.com/matzehuels/planwright/pkg/doc"
)

// epsilon absorbs floating point noise in the fit comparisons.
const epsilon = 1e-9

// Page is one page worth of rows.
type Page struct {
	First     int     // index of the first row on the page
	Count     int     // rows on the page
	RowHeight float64 // height of every row on the page
}

// Plan is the pagination of Rows rows under a Height budget.
type Plan struct {
	Height  float64
	RowMin  float64
	RowPref float64
	Rows    int
	Pages   []Page
}

// New computes the pagination plan. n <= 0 or a non-positive height yields a
// plan with no pages.
func New(height, rowMin, rowPref float64, n int) Plan {
	p := Plan{Height: height, RowMin: rowMin, RowPref: rowPref, Rows: n}
	if n <= 0 || height <= 0 {
		return p
	}

	if float64(n)*rowPref <= height+epsilon {
		p.Pages = []Page{{First: 0, Count: n, RowHeight: height / float64(n)}}
		return p
	}

	per := RowsPerPage(height, rowMin)
	pages := (n + per - 1) / per
	p.Pages = make([]Page, 0, pages)
	for first := 0; first < n; first += per {
		count := min(per, n-first)
		p.Pages = append(p.Pages, Page{First: first, Count: count, RowHeight: height / float64(count)})
	}
	return p
}

// RowsPerPage is floor(height/rowMin), never less than one.
func RowsPerPage(height, rowMin float64) int {
	if rowMin <= 0 {
		return 1
	}
	per := int(math.Floor(height/rowMin + epsilon))
	if per < 1 {
		return 1
	}
	return per
}

// PageCount returns the number of pages in the plan.
func (p Plan) PageCount() int { return len(p.Pages) }

// Single reports whether every row fits on one page.
func (p Plan) Single() bool { return len(p.Pages) == 1 }

// Locate returns the page and the slot on that page holding row.
func (p Plan) Locate(row int) (page, slot int, ok bool) {
	for i, pg := range p.Pages {
		if row >= pg.First && row < pg.First+pg.Count {
			return i, row - pg.First, true
		}
	}
	return 0, 0, false
}

// RowRect returns the rectangle of slot on page, stacking rows downward from
// the top of box. box.H should equal the plan height.
func (p Plan) RowRect(box doc.Rect, page, slot int) doc.Rect {
	h := p.Pages[page].RowHeight
	return doc.Rect{
		X: box.X,
		Y: box.Top() - float64(slot+1)*h,
		W: box.W,
		H: h,
	}
}

// Rect locates row and returns its rectangle together with its page.
func (p Plan) Rect(box doc.Rect, row int) (doc.Rect, int, bool) {
	page, slot, ok := p.Locate(row)
	if !ok {
		return doc.Rect{}, 0, false
	}
	return p.RowRect(box, page, slot), page, true
}
