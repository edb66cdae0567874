package render

import (
	"bytes"
	"fmt"
	"io"

	"github.com/matzehuels/lockgraph/pkg/graph"
)

// DefaultRankDir is used when DOTOptions.RankDir is empty.
const DefaultRankDir = "LR"

// DOTOptions configures the graph description.
type DOTOptions struct {
	// RankDir is the Graphviz layout direction (TB, LR, BT, RL).
	RankDir string
	// Strict emits a strict digraph, which makes Graphviz merge repeated edges.
	Strict bool
	// Label is drawn as the graph title when non-empty.
	Label string
}

// ToDOT converts edges to Graphviz DOT source.
// An empty edge list yields a valid graph with only the preamble.
func ToDOT(edges []graph.Edge, opts DOTOptions) string {
	rankdir := opts.RankDir
	if rankdir == "" {
		rankdir = DefaultRankDir
	}

	var buf bytes.Buffer
	if opts.Strict {
		buf.WriteString("strict ")
	}
	buf.WriteString("digraph G {\n")
	fmt.Fprintf(&buf, "    graph [rankdir=%s];\n", rankdir)
	buf.WriteString("    node [shape=box, style=rounded];\n")
	if opts.Label != "" {
		fmt.Fprintf(&buf, "    label=%q;\n", opts.Label)
		buf.WriteString("    labelloc=t;\n")
	}

	for _, e := range edges {
		fmt.Fprintf(&buf, "    %q -> %q;\n", e.From, e.To)
	}

	buf.WriteString("}\n")
	return buf.String()
}

// WriteDOT writes the DOT source for edges to w.
func WriteDOT(w io.Writer, edges []graph.Edge, opts DOTOptions) error {
	_, err := io.WriteString(w, ToDOT(edges, opts))
	return err
}
