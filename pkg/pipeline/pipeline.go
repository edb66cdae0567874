// Package pipeline runs the lockgraph stages in order.
//
// # Architecture
//
// The pipeline consists of three stages, each a plain function of its inputs:
//
//  1. Load: read package.json and package-lock.json ([LoadManifest])
//  2. Build: derive the cycle-safe edge list ([BuildGraph])
//  3. Render: write the DOT file and lay it out into an image ([RenderGraph])
//
// The [Runner] chains them for one [config.Config], logging and reporting
// each stage through the observability hooks. Any failure aborts the run;
// nothing is retried.
//
// # Usage
//
//	cfg, err := config.Load("lockgraph.csv")
//	if err != nil {
//	    return err
//	}
//	runner := pipeline.NewRunner(logger)
//	result, err := runner.Execute(ctx, cfg)
//
// [config.Config]: github.com/matzehuels/lockgraph/pkg/config.Config
package pipeline

import (
	"context"
	"time"

	"github.com/matzehuels/lockgraph/pkg/config"
	"github.com/matzehuels/lockgraph/pkg/graph"
	"github.com/matzehuels/lockgraph/pkg/manifest"
	"github.com/matzehuels/lockgraph/pkg/render"
)

// Result is everything one run produced.
type Result struct {
	RunID    string
	Manifest *manifest.Manifest
	Edges    []graph.Edge
	Stats    graph.Stats
	Render   *render.Result
	JSONPath string // empty unless a JSON export was requested

	Timings Timings
}

// Timings records the wall time of each stage.
type Timings struct {
	Load   time.Duration
	Build  time.Duration
	Render time.Duration
}

// LoadManifest reads the manifest from the configured package directory.
func LoadManifest(cfg config.Config) (*manifest.Manifest, error) {
	return manifest.Load(cfg.PackagePath)
}

// BuildGraph derives the edge list for m.
func BuildGraph(m *manifest.Manifest) []graph.Edge {
	return graph.Build(m)
}

// RenderGraph writes the description and image for edges.
func RenderGraph(ctx context.Context, cfg config.Config, m *manifest.Manifest, edges []graph.Edge) (*render.Result, error) {
	var project manifest.Project
	if m != nil {
		project = m.Project
	}
	return render.Render(ctx, edges, RenderOptions(cfg, project))
}

// RenderOptions maps a config onto renderer options. The project name, with
// its version when known, becomes the graph label.
func RenderOptions(cfg config.Config, project manifest.Project) render.Options {
	opts := render.Options{
		Engine:       render.EngineExec,
		GraphvizPath: cfg.GraphvizPath,
		OutputPath:   cfg.OutputPath,
		Format:       cfg.Format,
		DOT: render.DOTOptions{
			RankDir: cfg.RankDir,
			Strict:  cfg.Strict,
			Label:   projectLabel(project),
		},
	}
	if cfg.Builtin() {
		opts.Engine = render.EngineEmbedded
		opts.GraphvizPath = ""
	}
	return opts
}

func projectLabel(p manifest.Project) string {
	if p.Name == "" {
		return ""
	}
	if p.Version == "" {
		return p.Name
	}
	return p.Name + "@" + p.Version
}
