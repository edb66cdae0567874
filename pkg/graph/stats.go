package graph

import "github.com/matzehuels/lockgraph/pkg/manifest"

// Stats summarizes one build.
type Stats struct {
	Nodes  int // distinct names appearing in edges or as manifest roots
	Edges  int // emitted edges, duplicates included
	Unique int // distinct (from, to) pairs
	Leaves int // nodes without a record or with no dependencies
}

// Nodes returns the distinct node names of edges in first-appearance order.
func Nodes(edges []Edge) []string {
	seen := make(map[string]bool)
	var out []string
	add := func(n string) {
		if !seen[n] {
			seen[n] = true
			out = append(out, n)
		}
	}
	for _, e := range edges {
		add(e.From)
		add(e.To)
	}
	return out
}

// Summarize computes Stats for edges built from m. Manifest roots without
// any edges still count as nodes.
func Summarize(m *manifest.Manifest, edges []Edge) Stats {
	names := Nodes(edges)
	seen := make(map[string]bool, len(names))
	for _, n := range names {
		seen[n] = true
	}
	for _, n := range m.Names() {
		if !seen[n] {
			seen[n] = true
			names = append(names, n)
		}
	}

	pairs := make(map[Edge]bool, len(edges))
	for _, e := range edges {
		pairs[e] = true
	}

	s := Stats{Nodes: len(names), Edges: len(edges), Unique: len(pairs)}
	for _, n := range names {
		if rec, ok := m.Lookup(n); !ok || len(rec.Dependencies) == 0 {
			s.Leaves++
		}
	}
	return s
}
