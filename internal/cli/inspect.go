package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/gosuri/uitable"
	"github.com/spf13/cobra"

	"github.com/matzehuels/planwright/pkg/planner"
	"github.com/matzehuels/planwright/pkg/profile"
)

// inspectCommand creates the inspect command, which lists every page of a
// generated planner without writing the PDF.
func (c *CLI) inspectCommand() *cobra.Command {
	var (
		configPath string
		kinds      string
	)

	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "List the pages of a planner with their links",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runInspect(cmd.Context(), os.Stdout, configPath, splitList(kinds))
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "planner configuration file (TOML)")
	cmd.Flags().StringVar(&kinds, "kinds", "", "only list pages of these kinds (comma-separated)")

	return cmd
}

func (c *CLI) runInspect(ctx context.Context, w io.Writer, configPath string, kinds []string) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	res, err := planner.Generate(cfg, planner.WithLogger(c.Logger))
	if err != nil {
		return err
	}

	keep := make(map[string]bool, len(kinds))
	for _, k := range kinds {
		keep[k] = true
	}

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow("PAGE", "KIND", "LABEL", "LINKS")
	for i, p := range res.Document.Pages {
		if len(keep) > 0 && !keep[p.Kind] {
			continue
		}
		tbl.AddRow(strconv.Itoa(i+1), p.Kind, p.Label, strconv.Itoa(len(p.Links)))
	}
	tbl.RightAlign(0)
	tbl.RightAlign(3)
	fmt.Fprintln(w, tbl)

	s := res.Stats
	fmt.Fprintf(w, "\n%d pages (%d index, %d content), %d links, %d unresolved\n",
		s.Pages, s.IndexPages, s.ContentPages, s.Links, s.Unresolved)
	return nil
}

// presetsCommand lists the built-in presets.
func (c *CLI) presetsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "presets",
		Short: "List device, density and color presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			writePresets(os.Stdout)
			return nil
		},
	}
}

func writePresets(w io.Writer) {
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow("DEVICE", "PAGE (pt)", "")
	for _, name := range profile.DeviceNames() {
		d := profile.Devices[name]
		tbl.AddRow(name, fmt.Sprintf("%.0f x %.0f", d.Width, d.Height), d.Label)
	}
	tbl.AddRow("", "", "")
	tbl.AddRow("DENSITY", "LINE (pt)", "")
	for _, name := range profile.DensityNames() {
		d := profile.Densities[name]
		tbl.AddRow(name, fmt.Sprintf("%.1f", d.Row()), "")
	}
	tbl.AddRow("", "", "")
	tbl.AddRow("COLORS", "", "")
	for _, name := range profile.ColorSchemeNames() {
		tbl.AddRow(name, "", "")
	}
	fmt.Fprintln(w, tbl)
}

// splitList splits a comma-separated flag value, dropping empty items.
func splitList(s string) []string {
	var out []string
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
