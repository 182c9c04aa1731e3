package pipeline

import (
	"context"

	"github.com/matzehuels/planwright/pkg/errors"
	"github.com/matzehuels/planwright/pkg/planner"
	"github.com/matzehuels/planwright/pkg/render/annot"
	"github.com/matzehuels/planwright/pkg/render/linkgraph"
	"github.com/matzehuels/planwright/pkg/render/pdf"
)

// Render serialises a generated planner in one format.
func Render(ctx context.Context, res *planner.Result, format string, opts Options) ([]byte, error) {
	d := res.Document
	switch format {
	case FormatPDF:
		return pdf.Render(d)
	case FormatJSON:
		var aopts []annot.Option
		if opts.TopLeft {
			aopts = append(aopts, annot.WithTopLeft())
		}
		return annot.RenderJSON(d, aopts...)
	case FormatDOT:
		return []byte(linkgraph.ToDOT(d, linkgraph.Options{Kinds: opts.GraphKinds})), nil
	case FormatSVG:
		return linkgraph.RenderSVG(ctx, linkgraph.ToDOT(d, linkgraph.Options{Kinds: opts.GraphKinds}))
	}
	return nil, errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q", format)
}
