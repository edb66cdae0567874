// Package pkg provides the core libraries for lockgraph dependency visualization.
//
// # Overview
//
// Lockgraph turns an npm lock file into a Graphviz drawing of the transitive
// dependency graph. The pkg directory is organized by pipeline stage:
//
//  1. [config] - Run settings from CSV, TOML or YAML files
//  2. [manifest] - Package records decoded from package-lock.json
//  3. [graph] - Cycle-safe edge construction, statistics and JSON export
//  4. [render] - DOT serialization and Graphviz invocation
//  5. [pipeline] - Orchestration (load → build → render)
//
// Supporting packages:
//
//   - [errors] - Structured error codes and process exit statuses
//   - [observability] - Stage hooks for logging and instrumentation
//   - [buildinfo] - Version information injected via ldflags
//
// # Architecture
//
// The typical data flow through lockgraph:
//
//	config file
//	     ↓
//	[config] package (graphviz_path, package_path, output_path)
//	     ↓
//	[manifest] package (package.json + package-lock.json)
//	     ↓
//	[graph] package (edge list, one walk per manifest entry)
//	     ↓
//	[render] package (.dot file + Graphviz image)
//
// # Quick Start
//
//	import (
//	    "context"
//	    "github.com/matzehuels/lockgraph/pkg/config"
//	    "github.com/matzehuels/lockgraph/pkg/pipeline"
//	)
//
//	cfg, err := config.Load("config.csv")
//	if err != nil {
//	    return err
//	}
//	result, err := pipeline.NewRunner(nil).Execute(context.Background(), cfg)
//	if err != nil {
//	    return err
//	}
//	fmt.Println(result.Render.ImagePath)
//
// [config]: https://pkg.go.dev/github.com/matzehuels/lockgraph/pkg/config
// [manifest]: https://pkg.go.dev/github.com/matzehuels/lockgraph/pkg/manifest
// [graph]: https://pkg.go.dev/github.com/matzehuels/lockgraph/pkg/graph
// [render]: https://pkg.go.dev/github.com/matzehuels/lockgraph/pkg/render
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/lockgraph/pkg/pipeline
// [errors]: https://pkg.go.dev/github.com/matzehuels/lockgraph/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/lockgraph/pkg/observability
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/lockgraph/pkg/buildinfo
package pkg
