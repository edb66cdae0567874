// Package graph turns a dependency manifest into an ordered edge list.
//
// # Overview
//
// [Build] walks every top-level package of a [manifest.Manifest] depth first
// and emits one [Edge] per declared dependency. The result is the input of the
// DOT writer in pkg/render.
//
// # Cycle Safety
//
// Lock files routinely contain cycles (peer dependencies, circular optional
// dependencies). During each traversal the builder keeps the set of names on
// the active path, the ancestors of the node being expanded. An edge pointing
// at a name already on that path is emitted but not descended into, which
// guarantees termination on any finite manifest.
//
// Traversal uses an explicit frame stack instead of native recursion, so very
// deep dependency chains cannot exhaust the goroutine stack.
//
// # Duplicates
//
// Edges are not deduplicated globally. Each top-level package starts a fresh
// traversal, and a child reached from several parents yields one edge per
// parent. Use a strict digraph at render time to merge them visually.
//
// # Leaves
//
// A dependency name with no record in the manifest is a leaf: its edge is
// emitted and nothing further happens. A record with an empty dependency
// list behaves the same way.
//
// # Example
//
//	m, _ := manifest.Load("./my-app")
//	edges := graph.Build(m)
//	stats := graph.Summarize(m, edges)
//
// [manifest.Manifest]: github.com/matzehuels/lockgraph/pkg/manifest.Manifest
package graph
