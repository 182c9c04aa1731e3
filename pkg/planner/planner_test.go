package planner

import (
	"bytes"
	"slices"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/planwright/pkg/config"
	"github.com/matzehuels/planwright/pkg/doc"
	"github.com/matzehuels/planwright/pkg/errors"
	"github.com/matzehuels/planwright/pkg/layout/nav"
	"github.com/matzehuels/planwright/pkg/pageref"
	"github.com/matzehuels/planwright/pkg/registry"
	"github.com/matzehuels/planwright/pkg/render/pdf"
	"github.com/matzehuels/planwright/pkg/sections"
)

type fakeMeasurer struct{}

func (fakeMeasurer) TextWidth(s string, size float64, _ bool) float64 {
	return float64(len(s)) * size * 0.5
}

func rangeConfig(start, end string) config.Config {
	cfg := config.Default()
	cfg.Start = config.MustDate(start)
	cfg.End = config.MustDate(end)
	return cfg
}

func generate(t *testing.T, cfg config.Config) *Result {
	t.Helper()
	res, err := Generate(cfg, WithMeasurer(fakeMeasurer{}))
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	return res
}

func TestShiftPlacesContentAfterFrontMatter(t *testing.T) {
	for _, cover := range []bool{false, true} {
		cfg := rangeConfig("2025-01-01", "2025-01-31")
		cfg.Cover = cover
		res := generate(t, cfg)

		c, err := sections.NewContext(cfg, fakeMeasurer{})
		if err != nil {
			t.Fatal(err)
		}
		pre := sections.Generate(c).Refs

		offset := 0
		if cover {
			offset = 1
		}
		m := res.Stats.IndexPages
		post := res.Refs[m:]
		if len(post) != len(pre) {
			t.Fatalf("cover=%v: %d content refs, want %d", cover, len(post), len(pre))
		}
		for i := range pre {
			if got, want := post[i].Page(), offset+m+pre[i].Page(); got != want {
				t.Errorf("cover=%v: %s %q at page %d, want %d", cover, pre[i].Kind(), pre[i].Label(), got, want)
			}
		}
		for i, ref := range res.Refs[:m] {
			if ref.Page() != offset+i {
				t.Errorf("cover=%v: index part %d at page %d, want %d", cover, i, ref.Page(), offset+i)
			}
		}
	}
}

func TestKeyPageFollowsFrontMatter(t *testing.T) {
	// A key, one future log page and two monthly pages, with a cover and a
	// two-page index in front of them.
	refs := []pageref.Ref{
		pageref.Key{Base: pageref.Base{Name: "Key", Index: 0}},
		pageref.Future{Base: pageref.Base{Name: "Future Log", Index: 1}},
		pageref.Monthly{Base: pageref.Base{Name: "January 2025", Index: 2}, Month: "2025-01", Parts: 1},
		pageref.Monthly{Base: pageref.Base{Name: "February 2025", Index: 3}, Month: "2025-02", Parts: 1},
	}
	reg := registry.Build(pageref.Shift(refs, 1+2))
	if reg.KeyPage == nil || *reg.KeyPage != 3 {
		t.Fatalf("KeyPage = %v, want 3", reg.KeyPage)
	}

	cfg := rangeConfig("2025-01-01", "2025-02-28")
	cfg.Cover = true
	res := generate(t, cfg)
	if got, want := *res.Registry.KeyPage, 1+res.Stats.IndexPages; got != want {
		t.Errorf("generated KeyPage = %d, want %d", got, want)
	}
}

func TestCalendarDayLinksReachTheirDailyPage(t *testing.T) {
	cfg := rangeConfig("2025-01-01", "2025-01-31")
	res := generate(t, cfg)
	c, err := sections.NewContext(cfg, fakeMeasurer{})
	if err != nil {
		t.Fatal(err)
	}

	checked := 0
	for i, s := range res.Sheets {
		ref, ok := s.Ref.(pageref.Monthly)
		if !ok {
			continue
		}
		for _, a := range sections.Anchors(c, ref) {
			if a.Target.Kind != pageref.KindDaily {
				continue
			}
			dest := -1
			for _, l := range res.Document.Pages[i].Links {
				if l.Rect == a.Rect {
					dest = l.Dest
				}
			}
			if dest < 0 {
				t.Errorf("no link over the %s row", a.Target.Key)
				continue
			}
			daily, ok := res.Sheets[dest].Ref.(pageref.Daily)
			if !ok || string(daily.Day) != a.Target.Key {
				t.Errorf("%s row links to page %d (%v)", a.Target.Key, dest, res.Sheets[dest].Ref)
			}
			checked++
		}
	}
	if checked != 31 {
		t.Errorf("checked %d day rows, want 31", checked)
	}
}

func TestBoundaryNavigationDoesNotWrap(t *testing.T) {
	res := generate(t, rangeConfig("2025-01-01", "2025-01-31"))

	var dailies []pageref.Ref
	for _, s := range res.Sheets {
		if s.Kind == pageref.KindDaily {
			dailies = append(dailies, s.Ref)
		}
	}
	if len(dailies) != 31 {
		t.Fatalf("daily pages = %d, want 31", len(dailies))
	}
	first, last := dailies[0], dailies[len(dailies)-1]
	if _, ok := registry.Resolve(nav.Item{Target: nav.TargetPrev}, first, res.Registry); ok {
		t.Error("first daily page resolves Prev")
	}
	if _, ok := registry.Resolve(nav.Item{Target: nav.TargetNext}, last, res.Registry); ok {
		t.Error("last daily page resolves Next")
	}
	if p, ok := registry.Resolve(nav.Item{Target: nav.TargetNext}, first, res.Registry); !ok || p != dailies[1].Page() {
		t.Errorf("Next from first daily = %d, %v, want %d", p, ok, dailies[1].Page())
	}
}

func TestEveryDrawnNavLabelIsLinked(t *testing.T) {
	cfg := rangeConfig("2025-01-01", "2025-03-31")
	cfg.Cover = true
	res := generate(t, cfg)
	c, err := sections.NewContext(cfg, fakeMeasurer{})
	if err != nil {
		t.Fatal(err)
	}

	for i, s := range res.Sheets {
		bar, placed := c.Nav(s.Kind, s.Slot)
		links := res.Document.Pages[i].Links
		for _, p := range placed {
			hit := bar.HitRect(p)
			found := slices.ContainsFunc(links, func(l doc.Link) bool { return l.Rect == hit })
			if !found {
				t.Errorf("page %d (%s): label %q has no link", i, s.Page.Label, p.Item.Label)
			}
		}
	}
}

func TestGenerateIsIdempotent(t *testing.T) {
	cfg := rangeConfig("2025-01-01", "2025-02-28")
	a := generate(t, cfg)
	b := generate(t, cfg)

	if !slices.Equal(a.Registry.Keys(), b.Registry.Keys()) {
		t.Error("registry keys differ between runs")
	}
	if a.Stats.Pages != b.Stats.Pages || a.Stats.Links != b.Stats.Links {
		t.Errorf("stats differ: %+v vs %+v", a.Stats, b.Stats)
	}
	pa, err := pdf.Render(a.Document)
	if err != nil {
		t.Fatal(err)
	}
	pb, err := pdf.Render(b.Document)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(pa, pb) {
		t.Error("rendered PDFs differ between runs")
	}
}

func TestIndexOverflowResolvedBeforeLinks(t *testing.T) {
	cfg := rangeConfig("2025-01-01", "2025-12-31")
	cfg.Cover = true
	res := generate(t, cfg)

	if res.Stats.IndexPages < 2 {
		t.Fatalf("IndexPages = %d, want a year index to overflow", res.Stats.IndexPages)
	}
	if res.Registry.IndexPage != 1 {
		t.Errorf("IndexPage = %d, want 1", res.Registry.IndexPage)
	}
	for i, s := range res.Sheets {
		if s.Ref != nil && s.Ref.Page() != i {
			t.Errorf("sheet %d carries ref for page %d", i, s.Ref.Page())
		}
	}
	for day, page := range res.Registry.DailyPages {
		ref, ok := res.Sheets[page].Ref.(pageref.Daily)
		if !ok || ref.Day != day {
			t.Errorf("DailyPages[%s] = %d, which holds %v", day, page, res.Sheets[page].Ref)
		}
	}
	if got, want := *res.Registry.KeyPage, 1+res.Stats.IndexPages; got != want {
		t.Errorf("KeyPage = %d, want %d", got, want)
	}
}

func TestLinksStayInsideTheDocument(t *testing.T) {
	cfg := rangeConfig("2024-12-15", "2025-02-10")
	cfg.IncludeWeekends = false
	cfg.Cover = true
	res := generate(t, cfg)

	w, h := res.Document.Width, res.Document.Height
	for i, p := range res.Document.Pages {
		for _, l := range p.Links {
			if l.Dest < 0 || l.Dest >= res.Stats.Pages {
				t.Errorf("page %d links to %d of %d", i, l.Dest, res.Stats.Pages)
			}
			if l.Rect.X < 0 || l.Rect.Right() > w || l.Rect.Y < 0 || l.Rect.Top() > h {
				t.Errorf("page %d link rect %+v outside the page", i, l.Rect)
			}
		}
	}
	if res.Stats.Links != res.Document.LinkCount() {
		t.Errorf("Stats.Links = %d, want %d", res.Stats.Links, res.Document.LinkCount())
	}
	// Weekend rows on the calendar have no daily page to jump to.
	if res.Stats.Unresolved == 0 {
		t.Error("Unresolved = 0, want weekend calendar rows to be counted")
	}
}

func TestEmptyRange(t *testing.T) {
	res := generate(t, rangeConfig("2025-02-01", "2025-01-01"))
	// Key, index and four collections.
	if res.Stats.Pages != 6 {
		t.Errorf("Pages = %d, want 6", res.Stats.Pages)
	}
	for _, kind := range []pageref.Kind{pageref.KindMonthly, pageref.KindWeekly, pageref.KindDaily, pageref.KindFuture} {
		if n := res.Registry.Count(kind); n != 0 {
			t.Errorf("Count(%s) = %d, want 0", kind, n)
		}
	}
}

func TestIndexDisabled(t *testing.T) {
	cfg := rangeConfig("2025-01-01", "2025-01-31")
	cfg.Sections.Index = false
	res := generate(t, cfg)
	if res.Stats.IndexPages != 0 || res.Registry.IndexPage != registry.NoPage {
		t.Errorf("index pages = %d, IndexPage = %d", res.Stats.IndexPages, res.Registry.IndexPage)
	}
	if res.Sheets[0].Kind != pageref.KindKey || res.Sheets[0].Ref.Page() != 0 {
		t.Errorf("first sheet = %s, want the key page at 0", res.Sheets[0].Kind)
	}
}

func TestGenerateRejectsInvalidConfig(t *testing.T) {
	cfg := rangeConfig("2025-01-01", "2025-01-31")
	cfg.Device = "typewriter"
	_, err := Generate(cfg, WithMeasurer(fakeMeasurer{}))
	if !errors.Is(err, errors.ErrCodeInvalidDevice) {
		t.Errorf("Generate() error = %v, want INVALID_DEVICE", err)
	}
}

func TestGenerateRejectsHugeCounts(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*config.Config)
	}{
		{"future months", func(c *config.Config) { c.FutureMonths = 1 << 60 }},
		{"collections", func(c *config.Config) { c.Collections = 1 << 60 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := rangeConfig("2025-01-01", "2025-01-31")
			tt.mutate(&cfg)
			res, err := Generate(cfg, WithMeasurer(fakeMeasurer{}))
			if !errors.Is(err, errors.ErrCodeInvalidConfig) {
				t.Errorf("Generate() error = %v, want INVALID_CONFIG", err)
			}
			if res != nil {
				t.Error("Generate() returned a partial result")
			}
		})
	}
}

func TestGenerateWithDefaults(t *testing.T) {
	var logs bytes.Buffer
	logger := log.NewWithOptions(&logs, log.Options{Level: log.DebugLevel})
	res, err := Generate(rangeConfig("2025-03-01", "2025-03-31"), WithLogger(logger))
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if res.Stats.Pages != res.Document.PageCount() {
		t.Errorf("Stats.Pages = %d, want %d", res.Stats.Pages, res.Document.PageCount())
	}
	if !bytes.Contains(logs.Bytes(), []byte("linked pages")) {
		t.Errorf("debug log missing final stage:\n%s", logs.String())
	}
}
