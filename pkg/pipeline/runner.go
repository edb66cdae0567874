package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/lockgraph/pkg/config"
	"github.com/matzehuels/lockgraph/pkg/errors"
	"github.com/matzehuels/lockgraph/pkg/graph"
	"github.com/matzehuels/lockgraph/pkg/observability"
	"github.com/matzehuels/lockgraph/pkg/render"
)

// Runner executes the pipeline and reports progress.
//
// The Runner holds no per-run state, so one instance can serve several runs.
type Runner struct {
	Logger *log.Logger
}

// NewRunner creates a runner. A nil logger falls back to log.Default().
func NewRunner(logger *log.Logger) *Runner {
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Logger: logger}
}

// Execute runs load -> build -> render for cfg.
func (r *Runner) Execute(ctx context.Context, cfg config.Config) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	result := &Result{RunID: uuid.NewString()}
	logger := r.Logger.With("run", result.RunID[:8])
	hooks := observability.Pipeline()

	// Stage 1: Load
	loadStart := time.Now()
	hooks.OnLoadStart(ctx, cfg.PackagePath)
	logger.Debug("loading manifest", "dir", cfg.PackagePath)
	m, err := LoadManifest(cfg)
	result.Timings.Load = time.Since(loadStart)
	hooks.OnLoadComplete(ctx, cfg.PackagePath, m.Len(), result.Timings.Load, err)
	if err != nil {
		return nil, fmt.Errorf("load manifest: %w", err)
	}
	result.Manifest = m

	logger.Info("loaded manifest",
		"project", m.Project.Name,
		"lockfile", m.LockfileVersion,
		"packages", m.Len(),
		"duration", result.Timings.Load)

	// Stage 2: Build
	buildStart := time.Now()
	result.Edges = BuildGraph(m)
	result.Stats = graph.Summarize(m, result.Edges)
	result.Timings.Build = time.Since(buildStart)
	hooks.OnBuildComplete(ctx, len(result.Edges), result.Timings.Build)

	logger.Info("built graph",
		"nodes", result.Stats.Nodes,
		"edges", result.Stats.Edges,
		"unique", result.Stats.Unique,
		"duration", result.Timings.Build)

	if cfg.JSONPath != "" {
		if err := graph.WriteJSONFile(cfg.JSONPath, m, result.Edges); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInternal, err, "export graph")
		}
		result.JSONPath = cfg.JSONPath
		logger.Debug("exported graph", "path", cfg.JSONPath)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Stage 3: Render
	opts := RenderOptions(cfg, m.Project)
	format := opts.Format
	if format == "" {
		format = render.FormatFromPath(opts.OutputPath)
	}

	renderStart := time.Now()
	hooks.OnRenderStart(ctx, string(opts.Engine), format)
	logger.Debug("rendering", "engine", opts.Engine, "graphviz", opts.GraphvizPath, "format", format)
	res, err := RenderGraph(ctx, cfg, m, result.Edges)
	result.Timings.Render = time.Since(renderStart)
	hooks.OnRenderComplete(ctx, cfg.OutputPath, result.Timings.Render, err)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Render = res

	logger.Info("rendered image",
		"dot", res.DOTPath,
		"image", res.ImagePath,
		"bytes", res.Bytes,
		"duration", result.Timings.Render)

	return result, nil
}
