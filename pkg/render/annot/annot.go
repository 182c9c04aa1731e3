// Package annot exports the link annotations of a planner document as JSON.
//
// The export lists every page with its kind, label and clickable regions so
// a preview can overlay hit areas on rasterised pages without parsing the
// PDF. Rectangles use PDF user space (bottom-left origin) unless
// [WithTopLeft] is given.
package annot

import (
	"encoding/json"

	"github.com/matzehuels/planwright/pkg/doc"
	"github.com/matzehuels/planwright/pkg/errors"
)

// Option configures the export.
type Option func(*exporter)

type exporter struct {
	topLeft bool
}

// WithTopLeft reports rectangles with the origin at the top-left corner and
// y growing downward.
func WithTopLeft() Option { return func(e *exporter) { e.topLeft = true } }

// Document is the exported form of a planner.
type Document struct {
	Title  string  `json:"title"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Origin string  `json:"origin"`
	Pages  []Page  `json:"pages"`
	Links  int     `json:"link_count"`
}

// Page is one page of the export.
type Page struct {
	Index int    `json:"index"`
	Kind  string `json:"kind"`
	Label string `json:"label"`
	Links []Link `json:"links"`
}

// Link is a clickable region and the zero-based page it jumps to.
type Link struct {
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
	W    float64 `json:"w"`
	H    float64 `json:"h"`
	Dest int     `json:"dest"`
}

// Origin values.
const (
	OriginBottomLeft = "bottom-left"
	OriginTopLeft    = "top-left"
)

// Export converts d to its annotation form.
func Export(d *doc.Document, opts ...Option) Document {
	e := exporter{}
	for _, opt := range opts {
		opt(&e)
	}
	out := Document{
		Title:  d.Title,
		Width:  d.Width,
		Height: d.Height,
		Origin: OriginBottomLeft,
		Pages:  make([]Page, len(d.Pages)),
		Links:  d.LinkCount(),
	}
	if e.topLeft {
		out.Origin = OriginTopLeft
	}
	for i, p := range d.Pages {
		links := make([]Link, len(p.Links))
		for j, l := range p.Links {
			y := l.Rect.Y
			if e.topLeft {
				y = d.Height - l.Rect.Top()
			}
			links[j] = Link{X: l.Rect.X, Y: y, W: l.Rect.W, H: l.Rect.H, Dest: l.Dest}
		}
		out.Pages[i] = Page{Index: i, Kind: p.Kind, Label: p.Label, Links: links}
	}
	return out
}

// RenderJSON returns the indented JSON export of d.
func RenderJSON(d *doc.Document, opts ...Option) ([]byte, error) {
	if d == nil {
		return nil, errors.New(errors.ErrCodeInternal, "no document to export")
	}
	data, err := json.MarshalIndent(Export(d, opts...), "", "  ")
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode annotations")
	}
	return data, nil
}

// Parse decodes an export produced by [RenderJSON].
func Parse(data []byte) (Document, error) {
	var d Document
	if err := json.Unmarshal(data, &d); err != nil {
		return Document{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode annotations")
	}
	return d, nil
}
