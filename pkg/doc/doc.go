// Package doc is the in-memory drawing model of a generated planner.
//
// A [Document] is an ordered list of fixed-size [Page] values. Each page
// holds vector drawing operations and internal link annotations. The model
// uses PDF user space: the origin is the bottom-left corner of the page and
// y grows upward. Sinks (see pkg/render/pdf) translate to their own
// coordinate systems when serialising.
//
// Generators append pages in document order; the engine may insert pages
// (index pages) before the document is frozen and links are emitted.
package doc

import "github.com/matzehuels/planwright/pkg/profile"

// Rect is an axis-aligned rectangle anchored at its bottom-left corner.
type Rect struct {
	X, Y, W, H float64
}

// Top returns the y coordinate of the upper edge.
func (r Rect) Top() float64 { return r.Y + r.H }

// Right returns the x coordinate of the right edge.
func (r Rect) Right() float64 { return r.X + r.W }

// Contains reports whether the point lies inside r (edges inclusive).
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.Right() && y >= r.Y && y <= r.Top()
}

// Inset shrinks r by d on every side.
func (r Rect) Inset(d float64) Rect {
	return Rect{X: r.X + d, Y: r.Y + d, W: r.W - 2*d, H: r.H - 2*d}
}

// SplitX divides r at fraction f of its width and returns both halves.
func (r Rect) SplitX(f float64) (Rect, Rect) {
	w := r.W * f
	return Rect{X: r.X, Y: r.Y, W: w, H: r.H}, Rect{X: r.X + w, Y: r.Y, W: r.W - w, H: r.H}
}

// Measurer reports the advance width of a string in the document font.
type Measurer interface {
	TextWidth(text string, size float64, bold bool) float64
}

// Op is a single drawing operation.
type Op interface {
	op()
}

// Line is a straight stroke.
type Line struct {
	X1, Y1, X2, Y2 float64
	Width          float64
	Color          profile.RGB
}

// Circle is a filled or stroked circle centred at (X, Y).
type Circle struct {
	X, Y, R float64
	Fill    bool
	Width   float64
	Color   profile.RGB
}

// Box is a filled or stroked rectangle.
type Box struct {
	Rect
	Fill  bool
	Width float64
	Color profile.RGB
}

// Text is a single-line text run; Y is the baseline.
type Text struct {
	X, Y  float64
	Size  float64
	Bold  bool
	Color profile.RGB
	Value string
}

func (Line) op()   {}
func (Circle) op() {}
func (Box) op()    {}
func (Text) op()   {}

// Link is an invisible clickable region that jumps to the top-left corner of
// page Dest (zero-based) without changing the zoom.
type Link struct {
	Rect Rect
	Dest int
}

// Page is one physical page.
type Page struct {
	// Kind and Label describe the page for inspection and export; they are not drawn.
	Kind  string
	Label string

	Ops   []Op
	Links []Link
}

// Draw appends drawing operations.
func (p *Page) Draw(ops ...Op) {
	p.Ops = append(p.Ops, ops...)
}

// AddLink registers a borderless jump region over r targeting page dest.
func (p *Page) AddLink(r Rect, dest int) {
	p.Links = append(p.Links, Link{Rect: r, Dest: dest})
}

// Document is a finished, ordered set of pages of identical size.
type Document struct {
	Title      string
	Width      float64
	Height     float64
	Background profile.RGB
	Pages      []*Page
}

// PageCount returns the number of pages.
func (d *Document) PageCount() int { return len(d.Pages) }

// LinkCount returns the total number of link annotations.
func (d *Document) LinkCount() int {
	n := 0
	for _, p := range d.Pages {
		n += len(p.Links)
	}
	return n
}
