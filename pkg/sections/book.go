package sections

import (
	"github.com/matzehuels/planwright/pkg/doc"
	"github.com/matzehuels/planwright/pkg/layout/nav"
	"github.com/matzehuels/planwright/pkg/pageref"
)

// Sheet is one physical page together with the reference that drives its
// navigation row. Ref is nil for the cover.
type Sheet struct {
	Kind pageref.Kind
	Page *doc.Page
	Ref  pageref.Ref
	Slot nav.Slot
}

// Shifted returns the sheet with its reference moved by delta pages.
func (s Sheet) Shifted(delta int) Sheet {
	if s.Ref != nil {
		s.Ref = pageref.Shift([]pageref.Ref{s.Ref}, delta)[0]
	}
	return s
}

// Book collects generated pages in order. Refs holds every reference,
// including the second reference of a combined monthly page.
type Book struct {
	Sheets []Sheet
	Refs   []pageref.Ref
}

// Len returns the number of pages appended so far.
func (b *Book) Len() int { return len(b.Sheets) }

func (b *Book) add(page *doc.Page, ref pageref.Ref, slot nav.Slot, extra ...pageref.Ref) {
	b.Sheets = append(b.Sheets, Sheet{Kind: ref.Kind(), Page: page, Ref: ref, Slot: slot})
	b.Refs = append(b.Refs, ref)
	b.Refs = append(b.Refs, extra...)
}

func slotOf(i, n int) nav.Slot {
	return nav.Slot{HasPrev: i > 0, HasNext: i < n-1}
}

func base(label string, index int) pageref.Base {
	return pageref.Base{Name: label, Index: index}
}
