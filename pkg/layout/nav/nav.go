// Package nav computes the navigation row drawn at the top of every page.
//
// Two functions carry the whole contract. [Items] decides which labels a
// page shows; it depends only on the page kind, the enabled sections and the
// page's position among its siblings, never on the page registry, so it can
// run while pages are still being generated. [Bar.Layout] turns those labels
// into horizontal positions. Both the page generators (to draw text) and the
// link pass (to place clickable regions) call the same two functions with
// the same inputs, so drawn labels and hit regions cannot drift apart.
package nav

import (
	"github.com/matzehuels/planwright/pkg/doc"
	"github.com/matzehuels/planwright/pkg/pageref"
	"github.com/matzehuels/planwright/pkg/profile"
)

// Target is the kind of destination a navigation item jumps to.
type Target string

const (
	TargetIndex        Target = "index"
	TargetFuture       Target = "future"
	TargetMonthly      Target = "monthly"
	TargetMonthlyTasks Target = "monthly-tasks"
	TargetWeekly       Target = "weekly"
	TargetPrev         Target = "prev"
	TargetNext         Target = "next"
)

// KindCover is the page kind of the optional cover page. The cover is front
// matter and has no page reference of its own.
const KindCover pageref.Kind = "cover"

// Item is one navigation label. Key optionally overrides the key taken from
// the current page when the target is resolved.
type Item struct {
	Label  string
	Target Target
	Key    string
}

// Sections reports which optional sections exist in the planner.
type Sections struct {
	Index       bool
	Key         bool
	Future      bool
	Monthly     bool
	Weekly      bool
	Daily       bool
	Collections bool
}

// Slot describes a page's position among the pages of its kind.
type Slot struct {
	HasPrev bool
	HasNext bool

	// Combined marks a monthly page that also holds the month's tasks.
	Combined bool
}

// Items returns the ordered navigation labels for a page of the given kind.
func Items(kind pageref.Kind, s Sections, slot Slot) []Item {
	var items []Item
	add := func(ok bool, label string, t Target) {
		if ok {
			items = append(items, Item{Label: label, Target: t})
		}
	}

	switch kind {
	case KindCover:
		add(s.Index, "Index", TargetIndex)
		return items
	case pageref.KindIndex:
		add(s.Future, "Future", TargetFuture)
	case pageref.KindKey:
		add(s.Index, "Index", TargetIndex)
		return items
	case pageref.KindFuture, pageref.KindCollection:
		add(s.Index, "Index", TargetIndex)
	case pageref.KindMonthly:
		add(s.Index, "Index", TargetIndex)
		add(s.Future, "Future", TargetFuture)
		add(!slot.Combined, "Tasks", TargetMonthlyTasks)
	case pageref.KindMonthlyTasks:
		add(s.Index, "Index", TargetIndex)
		add(s.Future, "Future", TargetFuture)
		add(s.Monthly, "Month", TargetMonthly)
	case pageref.KindWeekly:
		add(s.Index, "Index", TargetIndex)
		add(s.Monthly, "Month", TargetMonthly)
	case pageref.KindDaily:
		add(s.Index, "Index", TargetIndex)
		add(s.Monthly, "Month", TargetMonthly)
		add(s.Weekly, "Week", TargetWeekly)
	}

	add(slot.HasPrev, "Prev", TargetPrev)
	add(slot.HasNext, "Next", TargetNext)
	return items
}

// Bar is the geometry of a navigation row.
type Bar struct {
	X        float64 // left edge of the first label
	Baseline float64
	Size     float64
	Gap      float64 // space between consecutive labels
}

// Placed is a label positioned on the bar.
type Placed struct {
	Item  Item
	X     float64
	Width float64
}

// Layout positions items left to right starting at b.X.
func (b Bar) Layout(items []Item, m doc.Measurer) []Placed {
	placed := make([]Placed, 0, len(items))
	x := b.X
	for _, it := range items {
		w := m.TextWidth(it.Label, b.Size, false)
		placed = append(placed, Placed{Item: it, X: x, Width: w})
		x += w + b.Gap
	}
	return placed
}

// Width returns the total width items occupy on a bar of the given size.
func (b Bar) Width(items []Item, m doc.Measurer) float64 {
	placed := b.Layout(items, m)
	if len(placed) == 0 {
		return 0
	}
	last := placed[len(placed)-1]
	return last.X + last.Width - b.X
}

// HitRect returns the clickable region over a placed label. Neighbouring
// regions never overlap because the horizontal pad is a quarter of the gap.
func (b Bar) HitRect(p Placed) doc.Rect {
	pad := b.Gap / 4
	return doc.Rect{
		X: p.X - pad,
		Y: b.Baseline - 0.35*b.Size,
		W: p.Width + 2*pad,
		H: 1.4 * b.Size,
	}
}

// Ops returns the drawing operations for placed labels, with small
// separator dots centred in the gaps.
func (b Bar) Ops(placed []Placed, text, sep profile.RGB) []doc.Op {
	ops := make([]doc.Op, 0, 2*len(placed))
	for i, p := range placed {
		ops = append(ops, doc.Text{X: p.X, Y: b.Baseline, Size: b.Size, Color: text, Value: p.Item.Label})
		if i < len(placed)-1 {
			ops = append(ops, doc.Circle{
				X:     p.X + p.Width + b.Gap/2,
				Y:     b.Baseline + 0.3*b.Size,
				R:     0.06 * b.Size,
				Fill:  true,
				Color: sep,
			})
		}
	}
	return ops
}
