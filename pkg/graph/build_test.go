package graph

import (
	"fmt"
	"slices"
	"testing"

	"github.com/matzehuels/lockgraph/pkg/manifest"
)

type pkg struct {
	name string
	deps []string
}

func newManifest(pkgs ...pkg) *manifest.Manifest {
	m := manifest.New()
	for _, p := range pkgs {
		m.Add(manifest.Record{Name: p.name, Dependencies: p.deps})
	}
	return m
}

func edges(pairs ...string) []Edge {
	out := []Edge{}
	for i := 0; i+1 < len(pairs); i += 2 {
		out = append(out, Edge{From: pairs[i], To: pairs[i+1]})
	}
	return out
}

func TestBuild(t *testing.T) {
	tests := []struct {
		name string
		m    *manifest.Manifest
		want []Edge
	}{
		{
			name: "empty",
			m:    manifest.New(),
			want: edges(),
		},
		{
			name: "nil manifest",
			m:    nil,
			want: edges(),
		},
		{
			name: "two-node cycle",
			m:    newManifest(pkg{"A", []string{"B"}}, pkg{"B", []string{"A"}}),
			want: edges("A", "B", "B", "A", "B", "A", "A", "B"),
		},
		{
			name: "diamond keeps per-parent edges",
			m: newManifest(
				pkg{"A", []string{"B", "C"}},
				pkg{"B", []string{"C"}},
				pkg{"C", nil},
			),
			want: edges("A", "B", "B", "C", "A", "C", "B", "C"),
		},
		{
			name: "missing dependency is a leaf",
			m:    newManifest(pkg{"A", []string{"ghost"}}),
			want: edges("A", "ghost"),
		},
		{
			name: "self dependency",
			m:    newManifest(pkg{"A", []string{"A"}}),
			want: edges("A", "A"),
		},
		{
			name: "triangle cycle",
			m: newManifest(
				pkg{"A", []string{"B"}},
				pkg{"B", []string{"C"}},
				pkg{"C", []string{"A"}},
			),
			want: edges(
				"A", "B", "B", "C", "C", "A",
				"B", "C", "C", "A", "A", "B",
				"C", "A", "A", "B", "B", "C",
			),
		},
		{
			name: "declaration order drives emission order",
			m: newManifest(
				pkg{"root", []string{"z", "a", "m"}},
			),
			want: edges("root", "z", "root", "a", "root", "m"),
		},
		{
			name: "cycle below the root is cut at the repeated name",
			m: newManifest(
				pkg{"app", []string{"x"}},
				pkg{"x", []string{"y"}},
				pkg{"y", []string{"x", "leaf"}},
			),
			want: edges(
				"app", "x", "x", "y", "y", "x", "y", "leaf",
				"x", "y", "y", "x", "y", "leaf",
				"y", "x", "x", "y", "y", "leaf",
			),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Build(tt.m)
			if got == nil {
				t.Fatal("Build() returned nil slice")
			}
			if !slices.Equal(got, tt.want) {
				t.Errorf("Build() =\n  %v\nwant\n  %v", got, tt.want)
			}
		})
	}
}

// expand is the unguarded recursive definition; it only terminates on
// acyclic manifests.
func expand(m *manifest.Manifest, name string, out []Edge) []Edge {
	rec, ok := m.Lookup(name)
	if !ok {
		return out
	}
	for _, d := range rec.Dependencies {
		out = append(out, Edge{From: name, To: d})
		out = expand(m, d, out)
	}
	return out
}

func TestBuild_AcyclicMatchesRecursiveExpansion(t *testing.T) {
	m := newManifest(
		pkg{"express", []string{"body-parser", "debug", "ghost"}},
		pkg{"body-parser", []string{"debug", "bytes", "qs"}},
		pkg{"debug", []string{"ms"}},
		pkg{"ms", nil},
		pkg{"qs", []string{"side-channel"}},
		pkg{"side-channel", []string{"ms"}},
	)

	var want []Edge
	for _, n := range m.Names() {
		want = expand(m, n, want)
	}

	if got := Build(m); !slices.Equal(got, want) {
		t.Errorf("Build() =\n  %v\nwant\n  %v", got, want)
	}
}

func TestBuild_Idempotent(t *testing.T) {
	m := newManifest(
		pkg{"a", []string{"b", "c"}},
		pkg{"b", []string{"a", "c"}},
		pkg{"c", []string{"b", "d"}},
	)

	first := Build(m)
	second := Build(m)
	if !slices.Equal(first, second) {
		t.Errorf("Build() is not deterministic:\n  %v\n  %v", first, second)
	}

	rec, _ := m.Lookup("a")
	if !slices.Equal(rec.Dependencies, []string{"b", "c"}) {
		t.Errorf("Build() mutated the manifest: %v", rec.Dependencies)
	}
}

func TestBuild_EdgesReferenceManifestOrLeaves(t *testing.T) {
	m := newManifest(
		pkg{"a", []string{"b", "peer"}},
		pkg{"b", []string{"a", "optional"}},
	)

	for _, e := range Build(m) {
		if _, ok := m.Lookup(e.From); !ok {
			t.Errorf("edge %v: parent %q is not in the manifest", e, e.From)
		}
	}
}

func TestBuild_DeepChain(t *testing.T) {
	const depth = 100000
	m := manifest.New()
	for i := range depth {
		var deps []string
		if i+1 < depth {
			deps = []string{fmt.Sprintf("p%d", i+1)}
		}
		m.Add(manifest.Record{Name: fmt.Sprintf("p%d", i), Dependencies: deps})
	}

	// Only the first root is interesting; restrict to it to keep the test fast.
	edges := walk(m, "p0", nil)
	if len(edges) != depth-1 {
		t.Fatalf("walk() produced %d edges, want %d", len(edges), depth-1)
	}
	if last := edges[len(edges)-1]; last.To != fmt.Sprintf("p%d", depth-1) {
		t.Errorf("last edge = %v", last)
	}
}

func TestBuild_CompleteGraphTerminates(t *testing.T) {
	names := []string{"a", "b", "c", "d"}
	m := manifest.New()
	for _, n := range names {
		m.Add(manifest.Record{Name: n, Dependencies: names})
	}

	got := Build(m)
	if len(got) == 0 {
		t.Fatal("Build() produced no edges")
	}
	for _, e := range got {
		if !slices.Contains(names, e.To) {
			t.Errorf("unexpected edge %v", e)
		}
	}
}
