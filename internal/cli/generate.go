package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/planwright/pkg/config"
	"github.com/matzehuels/planwright/pkg/errors"
	"github.com/matzehuels/planwright/pkg/pipeline"
)

// generateOpts holds the command-line flags for the generate command.
type generateOpts struct {
	configPath string
	output     string // output file (single format) or base path (multiple)
	formats    []string
	topLeft    bool
	noCache    bool
	refresh    bool
}

// generateCommand creates the generate command.
func (c *CLI) generateCommand() *cobra.Command {
	var (
		formatsStr string
		opts       generateOpts
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a planner PDF from a configuration file",
		Long: `Generate a planner PDF from a configuration file.

The configuration is a TOML file naming a device, density and color preset,
the date range and the sections to include. Without --config the defaults
are used: the current calendar year for a reMarkable 2.

Results are cached locally, keyed by the configuration, so regenerating an
unchanged planner is instant. Use --refresh to regenerate anyway.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.formats = parseFormats(formatsStr)
			if err := pipeline.ValidateFormats(opts.formats); err != nil {
				return err
			}
			return c.runGenerate(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVarP(&opts.configPath, "config", "c", "", "planner configuration file (TOML)")
	cmd.Flags().StringVarP(&opts.output, "out", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): pdf (default), json, dot, svg (comma-separated)")
	cmd.Flags().BoolVar(&opts.topLeft, "top-left", false, "report annotation rectangles with a top-left origin (json)")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "regenerate even when cached")

	return cmd
}

// loadConfig reads the planner configuration, or returns the defaults when
// path is empty.
func loadConfig(path string) (config.Config, error) {
	if path == "" {
		return config.Default(), nil
	}
	p, err := expandPath(path)
	if err != nil {
		return config.Config{}, err
	}
	return config.Load(p)
}

// runGenerate loads the configuration, runs the pipeline and writes every
// artifact.
func (c *CLI) runGenerate(ctx context.Context, opts generateOpts) error {
	cfg, err := loadConfig(opts.configPath)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(ctx, opts.noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	prog := newProgress(c.Logger)
	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Generating %s...", cfg.Title))
	spinner.Start()

	res, err := runner.Execute(ctx, pipeline.Options{
		Config:  cfg,
		Formats: opts.formats,
		TopLeft: opts.topLeft,
		Refresh: opts.refresh,
		Logger:  c.Logger,
	})
	if err != nil {
		spinner.StopWithError("Generation failed")
		return err
	}
	spinner.Stop()

	base := basePath(opts.output, c.settings().OutputDir)
	for _, format := range opts.formats {
		path := outputPath(opts.output, base, format, len(opts.formats))
		if err := writeFile(res.Artifacts[format], path); err != nil {
			return err
		}
		printFile(path)
	}
	printStats(res.Stats.Pages, res.Stats.Links, res.CacheInfo.Hit)
	if res.Stats.Unresolved > 0 {
		printDetail("%d navigation targets not present in this planner", res.Stats.Unresolved)
	}
	prog.done("Generated " + cfg.Title)
	return nil
}

// basePath derives the output stem: the --out value without a known format
// extension, or the default name inside the output directory.
func basePath(output, outputDir string) string {
	if output == "" {
		return filepath.Join(outputDir, defaultBase)
	}
	ext := filepath.Ext(output)
	if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

// outputPath returns where one format is written. A single format honours
// --out verbatim.
func outputPath(output, base, format string, n int) string {
	if output != "" && n == 1 && filepath.Ext(output) != "" {
		return output
	}
	return pipeline.Filename(base, format)
}

// writeFile writes data, creating parent directories.
func writeFile(data []byte, path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidPath, err, "create %s", dir)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidPath, err, "write %s", path)
	}
	return nil
}
