package cli

import (
	"context"
	"fmt"

	"github.com/matzehuels/lockgraph/pkg/config"
	"github.com/matzehuels/lockgraph/pkg/pipeline"
)

// runGraph loads the config at configPath and runs the pipeline.
func (c *CLI) runGraph(ctx context.Context, configPath string) error {
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	c.Logger.Debug("loaded config",
		"path", configPath,
		"graphviz", cfg.GraphvizPath,
		"package", cfg.PackagePath,
		"output", cfg.OutputPath)

	prog := newProgress(c.Logger)
	spinner := newSpinner(ctx, c.Err, "Rendering dependency graph...")
	spinner.Start()

	result, err := pipeline.NewRunner(c.Logger).Execute(ctx, cfg)
	spinner.Stop()
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Rendered %d edges", len(result.Edges)))

	printSuccess(c.Out, "Graph saved")
	printFile(c.Out, result.Render.ImagePath)
	printFile(c.Out, result.Render.DOTPath)
	if result.JSONPath != "" {
		printFile(c.Out, result.JSONPath)
	}
	printStats(c.Out, result.Stats)
	return nil
}
