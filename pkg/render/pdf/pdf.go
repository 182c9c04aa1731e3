// Package pdf serialises a [doc.Document] with gofpdf and supplies the
// matching font metrics to the layout stage.
//
// Every page is written at the document size in point units with the
// Helvetica core fonts. Link annotations are borderless and jump to the top
// of their destination page with an /XYZ destination. Output is byte-stable
// for a given document and creation date.
package pdf

import (
	"bytes"
	"io"
	"time"

	"github.com/jung-kurt/gofpdf"

	"github.com/matzehuels/planwright/pkg/doc"
	"github.com/matzehuels/planwright/pkg/errors"
	"github.com/matzehuels/planwright/pkg/profile"
)

const fontFamily = "Helvetica"

// DefaultCreationDate is stamped into documents rendered without
// [WithCreationDate].
var DefaultCreationDate = time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC)

// Option configures rendering.
type Option func(*writer)

type writer struct {
	created  time.Time
	compress bool
	creator  string
}

// WithCreationDate sets the document's creation date.
func WithCreationDate(t time.Time) Option { return func(w *writer) { w.created = t } }

// WithCompression toggles page stream compression (on by default).
func WithCompression(on bool) Option { return func(w *writer) { w.compress = on } }

// WithCreator sets the creator metadata.
func WithCreator(s string) Option { return func(w *writer) { w.creator = s } }

// Render returns the PDF bytes of d.
func Render(d *doc.Document, opts ...Option) ([]byte, error) {
	var buf bytes.Buffer
	if err := Write(&buf, d, opts...); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Write serialises d to out. Nothing is written when the document is
// inconsistent, for example a link pointing past the last page.
func Write(out io.Writer, d *doc.Document, opts ...Option) error {
	w := writer{created: DefaultCreationDate, compress: true, creator: "planwright"}
	for _, opt := range opts {
		opt(&w)
	}
	if d == nil || d.PageCount() == 0 {
		return errors.New(errors.ErrCodeInternal, "document has no pages")
	}

	f := gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           gofpdf.SizeType{Wd: d.Width, Ht: d.Height},
	})
	f.SetCreationDate(w.created)
	f.SetCatalogSort(true)
	f.SetCompression(w.compress)
	f.SetAutoPageBreak(false, 0)
	f.SetMargins(0, 0, 0)
	f.SetCreator(w.creator, false)
	f.SetTitle(d.Title, true)
	f.SetLineCapStyle("round")

	c := canvas{f: f, h: d.Height, tr: f.UnicodeTranslatorFromDescriptor("")}

	dests := make([]int, d.PageCount())
	for i := range dests {
		dests[i] = f.AddLink()
	}
	for i, p := range d.Pages {
		f.AddPage()
		f.SetLink(dests[i], 0, i+1)
		if d.Background != profile.Gray(1) {
			c.fill(d.Background)
			f.Rect(0, 0, d.Width, d.Height, "F")
		}
		for _, op := range p.Ops {
			c.draw(op)
		}
		for _, l := range p.Links {
			if l.Dest < 0 || l.Dest >= len(dests) {
				return errors.New(errors.ErrCodeInternal, "page %d links to page %d of %d", i, l.Dest, len(dests))
			}
			f.Link(l.Rect.X, c.y(l.Rect.Top()), l.Rect.W, l.Rect.H, dests[l.Dest])
		}
	}

	if f.Err() {
		return errors.Wrap(errors.ErrCodeInternal, f.Error(), "build pdf")
	}
	var buf bytes.Buffer
	if err := f.Output(&buf); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "build pdf")
	}
	if _, err := out.Write(buf.Bytes()); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "write pdf")
	}
	return nil
}

// canvas draws doc operations onto a gofpdf page. gofpdf measures y from
// the top edge.
type canvas struct {
	f  *gofpdf.Fpdf
	h  float64
	tr func(string) string
}

func (c canvas) y(v float64) float64 { return c.h - v }

func (c canvas) fill(col profile.RGB) {
	r, g, b := col.Bytes()
	c.f.SetFillColor(r, g, b)
}

func (c canvas) stroke(col profile.RGB, width float64) {
	r, g, b := col.Bytes()
	c.f.SetDrawColor(r, g, b)
	c.f.SetLineWidth(width)
}

func (c canvas) draw(op doc.Op) {
	switch v := op.(type) {
	case doc.Line:
		c.stroke(v.Color, v.Width)
		c.f.Line(v.X1, c.y(v.Y1), v.X2, c.y(v.Y2))
	case doc.Circle:
		style := "D"
		if v.Fill {
			c.fill(v.Color)
			style = "F"
		} else {
			c.stroke(v.Color, v.Width)
		}
		c.f.Circle(v.X, c.y(v.Y), v.R, style)
	case doc.Box:
		style := "D"
		if v.Fill {
			c.fill(v.Color)
			style = "F"
		} else {
			c.stroke(v.Color, v.Width)
		}
		c.f.Rect(v.X, c.y(v.Top()), v.W, v.H, style)
	case doc.Text:
		if v.Value == "" {
			return
		}
		r, g, b := v.Color.Bytes()
		c.f.SetTextColor(r, g, b)
		c.f.SetFont(fontFamily, fontStyle(v.Bold), v.Size)
		c.f.Text(v.X, c.y(v.Y), c.tr(v.Value))
	}
}

func fontStyle(bold bool) string {
	if bold {
		return "B"
	}
	return ""
}
