package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/planwright/pkg/errors"
	"github.com/matzehuels/planwright/pkg/planner"
	"github.com/matzehuels/planwright/pkg/render/linkgraph"
)

// linksOpts holds the command-line flags for the links command.
type linksOpts struct {
	configPath string
	output     string
	format     string  // dot, svg or png
	kinds      string  // comma-separated page kinds
	detailed   bool    // page numbers and link counts
	scale      float64 // png only
}

// linksCommand creates the links command, which exports the page hyperlink
// graph of a planner.
func (c *CLI) linksCommand() *cobra.Command {
	opts := linksOpts{format: "svg", scale: 2}

	cmd := &cobra.Command{
		Use:   "links",
		Short: "Export the page hyperlink graph",
		Long: `Export the page hyperlink graph of a planner.

Every page becomes a node, colored by kind, and every distinct link between
two pages an edge. Restrict large planners with --kinds, for example
--kinds monthly,weekly.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runLinks(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVarP(&opts.configPath, "config", "c", "", "planner configuration file (TOML)")
	cmd.Flags().StringVarP(&opts.output, "out", "o", "", "output file (default planner.graph.<format>)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", opts.format, "output format: svg (default), dot, png")
	cmd.Flags().StringVar(&opts.kinds, "kinds", "", "only include pages of these kinds (comma-separated)")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "show page numbers and link counts")
	cmd.Flags().Float64Var(&opts.scale, "scale", opts.scale, "png zoom factor")

	return cmd
}

func (c *CLI) runLinks(ctx context.Context, opts linksOpts) error {
	cfg, err := loadConfig(opts.configPath)
	if err != nil {
		return err
	}
	res, err := planner.Generate(cfg, planner.WithLogger(c.Logger))
	if err != nil {
		return err
	}

	dot := linkgraph.ToDOT(res.Document, linkgraph.Options{
		Kinds:    splitList(opts.kinds),
		Detailed: opts.detailed,
	})

	var data []byte
	switch opts.format {
	case "dot":
		data = []byte(dot)
	case "svg":
		data, err = linkgraph.RenderSVG(ctx, dot)
	case "png":
		data, err = linkgraph.RenderPNG(ctx, dot, opts.scale)
	default:
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: dot, svg, png)", opts.format)
	}
	if err != nil {
		return err
	}

	path := opts.output
	if path == "" {
		path = fmt.Sprintf("%s.graph.%s", basePath("", c.settings().OutputDir), opts.format)
	}
	if err := writeFile(data, path); err != nil {
		return err
	}
	printSuccess("Wrote link graph")
	printFile(path)
	return nil
}
