// Package render groups the output sinks of a generated planner.
//
// # Overview
//
// The planner engine produces a [doc.Document]: fixed-size pages of vector
// operations plus internal link annotations. Sinks serialise that model:
//
//   - [pdf]: the PDF itself, written with gofpdf, and the Helvetica metrics
//     the layout stage measures text with
//   - [annot]: a JSON listing of every page's clickable regions, for
//     previews that overlay hit areas on rasterised pages
//   - [linkgraph]: the page hyperlink graph as Graphviz DOT, SVG or PNG
//
// # Usage
//
//	res, err := planner.Generate(cfg)
//	data, err := pdf.Render(res.Document)
//	links, err := annot.RenderJSON(res.Document, annot.WithTopLeft())
//	svg, err := linkgraph.RenderSVG(ctx, linkgraph.ToDOT(res.Document, linkgraph.Options{}))
//
// Sinks never change the document. A document whose links point outside
// it is rejected with an INTERNAL_ERROR before anything is written.
//
// [doc.Document]: github.com/matzehuels/planwright/pkg/doc
// [pdf]: github.com/matzehuels/planwright/pkg/render/pdf
// [annot]: github.com/matzehuels/planwright/pkg/render/annot
// [linkgraph]: github.com/matzehuels/planwright/pkg/render/linkgraph
package render
