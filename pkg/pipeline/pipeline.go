// Package pipeline runs a planner generation end to end for the CLI and the
// API: validate, generate, render every requested format, with artifact
// caching, run IDs and observability hooks.
//
// # Stages
//
//  1. Lookup: every requested format is looked up in the cache under a key
//     derived from the configuration hash. When all are present the run
//     ends here.
//  2. Generate: the planner document is built (see pkg/planner).
//  3. Render: each format is serialised and written back to the cache.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Config:  cfg,
//	    Formats: []string{pipeline.FormatPDF, pipeline.FormatJSON},
//	})
//	pdf := result.Artifacts[pipeline.FormatPDF]
package pipeline

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/planwright/pkg/buildinfo"
	"github.com/matzehuels/planwright/pkg/cache"
	"github.com/matzehuels/planwright/pkg/config"
	"github.com/matzehuels/planwright/pkg/errors"
	"github.com/matzehuels/planwright/pkg/planner"
)

// Output formats.
const (
	FormatPDF  = "pdf"  // the planner
	FormatJSON = "json" // link annotations
	FormatDOT  = "dot"  // link graph source
	FormatSVG  = "svg"  // link graph drawing
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatPDF:  true,
	FormatJSON: true,
	FormatDOT:  true,
	FormatSVG:  true,
}

// ContentTypes maps formats to their MIME types.
var ContentTypes = map[string]string{
	FormatPDF:  "application/pdf",
	FormatJSON: "application/json",
	FormatDOT:  "text/vnd.graphviz",
	FormatSVG:  "image/svg+xml",
}

// Options configures one run.
type Options struct {
	Config  config.Config `json:"config"`
	Formats []string      `json:"formats,omitempty"`

	// TopLeft reports annotation rectangles with a top-left origin.
	TopLeft bool `json:"top_left,omitempty"`

	// GraphKinds restricts the link graph to these page kinds.
	GraphKinds []string `json:"graph_kinds,omitempty"`

	// Refresh skips the cache lookup; results are still stored.
	Refresh bool `json:"refresh,omitempty"`

	Logger *log.Logger `json:"-"`

	validated bool
}

// Result is the outcome of a run.
type Result struct {
	RunID string

	// ConfigHash identifies the configuration in cache keys.
	ConfigHash string

	// Planner is the generated planner; nil when every artifact came from
	// the cache.
	Planner *planner.Result

	Artifacts map[string][]byte
	Stats     Stats
	CacheInfo CacheInfo
}

// Stats contains run statistics. Page and link counts are restored from
// the cache on a hit.
type Stats struct {
	Pages        int           `json:"pages"`
	IndexPages   int           `json:"index_pages"`
	Links        int           `json:"links"`
	Unresolved   int           `json:"unresolved"`
	GenerateTime time.Duration `json:"-"`
	RenderTime   time.Duration `json:"-"`
}

// CacheInfo tracks cache use.
type CacheInfo struct {
	Hit bool // every artifact came from the cache
}

// ValidateFormat checks that a format is supported.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: pdf, json, dot, svg)", format)
	}
	return nil
}

// ValidateFormats checks every format.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateAndSetDefaults checks the options and fills defaults. Calling it
// again is a no-op.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatPDF}
	}
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if err := o.Config.Validate(); err != nil {
		return err
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	o.validated = true
	return nil
}

// ConfigHash returns the hash identifying the configuration.
func (o *Options) ConfigHash() (string, error) {
	data, err := o.Config.Encode()
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInternal, err, "encode config")
	}
	return cache.Hash(data), nil
}

// ArtifactKeyOpts returns the cache key options for format.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	opts := cache.ArtifactKeyOpts{Format: format, Version: buildinfo.Version}
	switch format {
	case FormatJSON:
		opts.TopLeft = o.TopLeft
	case FormatDOT, FormatSVG:
		opts.Kinds = o.GraphKinds
	}
	return opts
}

// Filename returns the conventional output file name for format.
func Filename(base, format string) string {
	switch format {
	case FormatJSON:
		return fmt.Sprintf("%s.links.json", base)
	case FormatDOT, FormatSVG:
		return fmt.Sprintf("%s.graph.%s", base, format)
	}
	return fmt.Sprintf("%s.%s", base, format)
}
