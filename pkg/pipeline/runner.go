package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/stltree/pkg/cache"
	"github.com/matzehuels/stltree/pkg/io"
	"github.com/matzehuels/stltree/pkg/observability"
	"github.com/matzehuels/stltree/pkg/stl"
)

const keyTypeArtifact = "artifact"

// Runner encapsulates pipeline execution with caching.
// Both CLI and server use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
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
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute renders n with caching.
//
// Artifacts are keyed by the canonical JSON of the tree and the options that
// affect the output. Failed renders, including trees with unsupported
// operators, are never cached. With opts.Refresh the cache is not read but
// the fresh artifact is still stored.
func (r *Runner) Execute(ctx context.Context, n stl.Node, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	if err := stl.Validate(n); err != nil {
		return nil, err
	}

	canonical, err := io.Canonical(n)
	if err != nil {
		return nil, err
	}
	result := &Result{
		Format:   opts.Format,
		TreeHash: cache.Hash(canonical),
		Stats: Stats{
			NodeCount: stl.Size(n),
			Depth:     stl.Depth(n),
		},
	}
	key := r.Keyer.ArtifactKey(result.TreeHash, opts.ArtifactKeyOpts())

	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, opts.Format, result.Stats.NodeCount)
	start := time.Now()

	if !opts.Refresh {
		data, hit, err := r.Cache.Get(ctx, key)
		if err != nil {
			r.Logger.Warn("cache read failed", "error", err)
		}
		if err == nil && hit {
			observability.Cache().OnCacheHit(ctx, keyTypeArtifact)
			result.Artifact = data
			result.Cached = true
			result.Stats.RenderTime = time.Since(start)
			hooks.OnRenderComplete(ctx, opts.Format, result.Stats.RenderTime, nil)
			r.Logger.Debug("artifact from cache", "format", opts.Format, "hash", result.TreeHash[:12])
			return result, nil
		}
		observability.Cache().OnCacheMiss(ctx, keyTypeArtifact)
	}

	data, err := Render(ctx, n, opts)
	result.Stats.RenderTime = time.Since(start)
	hooks.OnRenderComplete(ctx, opts.Format, result.Stats.RenderTime, err)
	if err != nil {
		return nil, err
	}
	result.Artifact = data

	if err := r.Cache.Set(ctx, key, data, opts.TTL); err != nil {
		r.Logger.Warn("cache write failed", "error", err)
	} else {
		observability.Cache().OnCacheSet(ctx, keyTypeArtifact, len(data))
	}

	r.Logger.Debug("rendered artifact",
		"format", opts.Format,
		"nodes", result.Stats.NodeCount,
		"depth", result.Stats.Depth,
		"bytes", len(data),
		"duration", result.Stats.RenderTime)

	return result, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}
