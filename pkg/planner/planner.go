// Package planner assembles a complete planner document from a
// configuration.
//
// Generation runs in a fixed order of stages:
//
//  1. Content: section generators append pages with gap-free indices
//     starting at zero.
//  2. Index plan: the index is collected and paginated from the content
//     references. Its page count is final from here on.
//  3. Shift: every content reference moves by the number of pages inserted
//     in front of it (cover plus index pages).
//  4. Registry: built once from the index and shifted content references.
//  5. Index draw: index pages print page numbers looked up in the registry.
//  6. Link pass: navigation rows and content anchors of every page are
//     resolved against the registry and emitted as link annotations.
//
// Nothing is linked before the registry exists, so no stage ever observes a
// page index that later changes.
package planner

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/planwright/pkg/config"
	"github.com/matzehuels/planwright/pkg/doc"
	"github.com/matzehuels/planwright/pkg/errors"
	"github.com/matzehuels/planwright/pkg/index"
	"github.com/matzehuels/planwright/pkg/pageref"
	"github.com/matzehuels/planwright/pkg/registry"
	"github.com/matzehuels/planwright/pkg/render/pdf"
	"github.com/matzehuels/planwright/pkg/sections"
)

// Option configures a generation.
type Option func(*options)

type options struct {
	logger   *log.Logger
	measurer doc.Measurer
}

// WithLogger sets the logger for stage transitions. Stages log at debug
// level.
func WithLogger(l *log.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithMeasurer replaces the font metrics used for layout. The default uses
// the PDF core fonts.
func WithMeasurer(m doc.Measurer) Option {
	return func(o *options) { o.measurer = m }
}

// Stats summarises a generation.
type Stats struct {
	Pages        int
	ContentPages int
	IndexPages   int
	Links        int
	Unresolved   int // navigation labels or anchors whose target had no page
	Duration     time.Duration
}

// Result is a generated planner.
type Result struct {
	Document *doc.Document
	Registry *registry.Registry

	// Refs holds every page reference with its final page index, index
	// pages first.
	Refs   []pageref.Ref
	Sheets []sections.Sheet
	Stats  Stats
}

// Generate builds the planner described by cfg. Invalid configurations are
// rejected with a coded validation error; a failed internal consistency
// check aborts with INTERNAL_ERROR and no document.
func Generate(cfg config.Config, opts ...Option) (*Result, error) {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	if o.measurer == nil {
		o.measurer = pdf.NewMeasurer()
	}
	logger := o.logger
	start := time.Now()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	c, err := sections.NewContext(cfg, o.measurer)
	if err != nil {
		return nil, err
	}

	book := sections.Generate(c)
	logger.Debug("generated content", "pages", book.Len(), "refs", len(book.Refs))

	insertOffset := 0
	if cfg.Cover {
		insertOffset = 1
	}
	var plan index.Layout
	if c.Sections.Index {
		plan = index.Plan(c, book.Refs)
	}
	delta := insertOffset + plan.PageCount()
	logger.Debug("planned index", "pages", plan.PageCount(), "shift", delta)

	refs := append(index.Refs(plan, insertOffset), pageref.Shift(book.Refs, delta)...)
	reg := registry.Build(refs)
	logger.Debug("built registry", "refs", len(refs), "keys", len(reg.Keys()))

	var sheets []sections.Sheet
	if cfg.Cover {
		sheets = append(sheets, sections.Cover(c))
	}
	if c.Sections.Index {
		sheets = append(sheets, index.Draw(c, plan, insertOffset, reg.Lookup)...)
	}
	for _, s := range book.Sheets {
		sheets = append(sheets, s.Shifted(delta))
	}

	d := &doc.Document{
		Title:      cfg.Title,
		Width:      c.Device.Width,
		Height:     c.Device.Height,
		Background: c.Colors.Background,
		Pages:      make([]*doc.Page, len(sheets)),
	}
	for i, s := range sheets {
		d.Pages[i] = s.Page
	}

	lp := linker{ctx: c, reg: reg, plan: plan, pages: len(sheets)}
	if err := lp.run(sheets); err != nil {
		return nil, err
	}

	res := &Result{
		Document: d,
		Registry: reg,
		Refs:     refs,
		Sheets:   sheets,
		Stats: Stats{
			Pages:        d.PageCount(),
			ContentPages: book.Len(),
			IndexPages:   plan.PageCount(),
			Links:        d.LinkCount(),
			Unresolved:   lp.unresolved,
			Duration:     time.Since(start),
		},
	}
	logger.Debug("linked pages",
		"links", res.Stats.Links,
		"unresolved", res.Stats.Unresolved,
		"duration", res.Stats.Duration)
	return res, nil
}

// linker emits every link annotation of a document in a single pass.
type linker struct {
	ctx        *sections.Context
	reg        *registry.Registry
	plan       index.Layout
	pages      int
	unresolved int
}

func (l *linker) run(sheets []sections.Sheet) error {
	for i, s := range sheets {
		if s.Ref != nil {
			if s.Ref.Page() != i {
				return errors.New(errors.ErrCodeInternal, "page %d carries the reference of page %d (%s)", i, s.Ref.Page(), s.Ref.Label())
			}
			slot := l.reg.Slot(s.Ref)
			if slot.HasPrev != s.Slot.HasPrev || slot.HasNext != s.Slot.HasNext {
				return errors.New(errors.ErrCodeInternal, "page %d (%s) was drawn with siblings %+v, registry has %+v", i, s.Ref.Label(), s.Slot, slot)
			}
		}
		if err := l.nav(s); err != nil {
			return err
		}
		if err := l.anchors(s); err != nil {
			return err
		}
	}
	return nil
}

// nav places hit regions over the navigation row exactly where the
// generator drew it.
func (l *linker) nav(s sections.Sheet) error {
	bar, placed := l.ctx.Nav(s.Kind, s.Slot)
	for _, p := range placed {
		dest, ok := registry.Resolve(p.Item, s.Ref, l.reg)
		if !ok {
			l.unresolved++
			continue
		}
		if err := l.link(s.Page, bar.HitRect(p), dest); err != nil {
			return err
		}
	}
	return nil
}

func (l *linker) anchors(s sections.Sheet) error {
	if s.Ref == nil {
		return nil
	}
	var anchors []sections.Anchor
	if ix, ok := s.Ref.(pageref.Index); ok {
		anchors = index.Anchors(l.plan, ix.Part)
	} else {
		anchors = sections.Anchors(l.ctx, s.Ref)
	}
	for _, a := range anchors {
		dest, ok := l.reg.Lookup(a.Target)
		if !ok {
			l.unresolved++
			continue
		}
		if err := l.link(s.Page, a.Rect, dest); err != nil {
			return err
		}
	}
	return nil
}

func (l *linker) link(p *doc.Page, r doc.Rect, dest int) error {
	if dest < 0 || dest >= l.pages {
		return errors.New(errors.ErrCodeInternal, "link on %q targets page %d of %d", p.Label, dest, l.pages)
	}
	p.AddLink(r, dest)
	return nil
}
