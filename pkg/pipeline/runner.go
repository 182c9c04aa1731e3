package pipeline

import (
	"context"
	"encoding/json"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/planwright/pkg/cache"
	"github.com/matzehuels/planwright/pkg/observability"
	"github.com/matzehuels/planwright/pkg/planner"
)

// statsFormat is the pseudo-format under which run statistics are cached
// next to the artifacts.
const statsFormat = "stats"

// Runner executes runs against a cache. It holds no per-run state, so one
// Runner may serve concurrent requests.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner. A nil cache disables caching, a nil keyer
// means cache.DefaultKeyer and a nil logger means log.Default().
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Cache: c, Keyer: keyer, Logger: logger}
}

// Execute runs lookup, generation and rendering.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	hash, err := opts.ConfigHash()
	if err != nil {
		return nil, err
	}

	result := &Result{
		RunID:      uuid.NewString(),
		ConfigHash: hash,
		Artifacts:  make(map[string][]byte),
	}
	logger := opts.Logger.With("run", result.RunID)

	if !opts.Refresh && r.lookup(ctx, opts, result) {
		result.CacheInfo.Hit = true
		logger.Info("served from cache", "formats", opts.Formats, "pages", result.Stats.Pages)
		return result, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Generate
	hooks := observability.Pipeline()
	start := time.Now()
	hooks.OnGenerateStart(ctx, result.RunID, len(opts.Config.Days()))
	res, err := planner.Generate(opts.Config, planner.WithLogger(logger))
	result.Stats.GenerateTime = time.Since(start)
	if err != nil {
		hooks.OnGenerateComplete(ctx, result.RunID, 0, 0, result.Stats.GenerateTime, err)
		return nil, err
	}
	hooks.OnGenerateComplete(ctx, result.RunID, res.Stats.Pages, res.Stats.Links, result.Stats.GenerateTime, nil)
	result.Planner = res
	result.Stats.Pages = res.Stats.Pages
	result.Stats.IndexPages = res.Stats.IndexPages
	result.Stats.Links = res.Stats.Links
	result.Stats.Unresolved = res.Stats.Unresolved

	logger.Info("generated planner",
		"pages", res.Stats.Pages,
		"links", res.Stats.Links,
		"duration", result.Stats.GenerateTime)

	// Render
	start = time.Now()
	for _, format := range opts.Formats {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		t := time.Now()
		hooks.OnRenderStart(ctx, result.RunID, format)
		data, err := Render(ctx, res, format, opts)
		hooks.OnRenderComplete(ctx, result.RunID, format, len(data), time.Since(t), err)
		if err != nil {
			return nil, err
		}
		result.Artifacts[format] = data
		r.store(ctx, opts, hash, format, data)
	}
	result.Stats.RenderTime = time.Since(start)
	if stats, err := json.Marshal(result.Stats); err == nil {
		r.store(ctx, opts, hash, statsFormat, stats)
	}

	logger.Info("rendered outputs",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)
	return result, nil
}

// lookup fills result from the cache and reports whether every format was
// found.
func (r *Runner) lookup(ctx context.Context, opts Options, result *Result) bool {
	hooks := observability.Cache()
	found := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		data, hit, err := r.Cache.Get(ctx, r.Keyer.ArtifactKey(result.ConfigHash, opts.ArtifactKeyOpts(format)))
		if err != nil {
			r.Logger.Warn("cache lookup failed", "format", format, "err", err)
		}
		if err != nil || !hit {
			hooks.OnCacheMiss(ctx, format)
			return false
		}
		hooks.OnCacheHit(ctx, format)
		found[format] = data
	}

	if data, hit, err := r.Cache.Get(ctx, r.Keyer.ArtifactKey(result.ConfigHash, opts.ArtifactKeyOpts(statsFormat))); err == nil && hit {
		_ = json.Unmarshal(data, &result.Stats)
	}
	result.Artifacts = found
	return true
}

// store writes an artifact to the cache. Failures are logged, not returned.
func (r *Runner) store(ctx context.Context, opts Options, hash, format string, data []byte) {
	key := r.Keyer.ArtifactKey(hash, opts.ArtifactKeyOpts(format))
	if err := r.Cache.Set(ctx, key, data, cache.TTLArtifact); err != nil {
		r.Logger.Warn("cache write failed", "format", format, "err", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, format, len(data))
}

// Close releases the cache.
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}
