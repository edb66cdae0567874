package pipeline

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/lockgraph/pkg/config"
	"github.com/matzehuels/lockgraph/pkg/errors"
	"github.com/matzehuels/lockgraph/pkg/graph"
	"github.com/matzehuels/lockgraph/pkg/manifest"
	"github.com/matzehuels/lockgraph/pkg/observability"
	"github.com/matzehuels/lockgraph/pkg/render"
)

const sampleLock = `{
  "name": "demo",
  "lockfileVersion": 1,
  "dependencies": {
    "a": {"version": "1.0.0", "requires": {"b": "^1"}},
    "b": {"version": "1.0.0", "requires": {"a": "^1", "ghost": "*"}}
  }
}`

func writeProject(t *testing.T, lock string) string {
	t.Helper()
	dir := t.TempDir()
	files := map[string]string{
		manifest.PackageFileName: `{"name": "demo", "version": "0.1.0"}`,
		manifest.LockFileName:    lock,
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func fakeGraphviz(t *testing.T, body string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell scripts are not executable on windows")
	}
	path := filepath.Join(t.TempDir(), "fake-dot")
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"+body+"\n"), 0o755); err != nil {
		t.Fatal(err)
	}
	return path
}

type recordingHooks struct {
	observability.NoopPipelineHooks
	mu     sync.Mutex
	events []string
}

func (h *recordingHooks) record(e string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.events = append(h.events, e)
}

func (h *recordingHooks) OnLoadStart(context.Context, string) { h.record("load-start") }
func (h *recordingHooks) OnLoadComplete(_ context.Context, _ string, _ int, _ time.Duration, err error) {
	if err != nil {
		h.record("load-error")
		return
	}
	h.record("load-done")
}
func (h *recordingHooks) OnBuildComplete(context.Context, int, time.Duration) { h.record("build-done") }
func (h *recordingHooks) OnRenderStart(context.Context, string, string)       { h.record("render-start") }
func (h *recordingHooks) OnRenderComplete(_ context.Context, _ string, _ time.Duration, err error) {
	if err != nil {
		h.record("render-error")
		return
	}
	h.record("render-done")
}

func quietLogger() (*log.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	return log.NewWithOptions(&buf, log.Options{Level: log.DebugLevel}), &buf
}

func TestExecute(t *testing.T) {
	hooks := &recordingHooks{}
	observability.SetPipelineHooks(hooks)
	t.Cleanup(observability.Reset)

	out := filepath.Join(t.TempDir(), "deps.png")
	cfg := config.Config{
		GraphvizPath: fakeGraphviz(t, `cp "$2" "$4"`),
		PackagePath:  writeProject(t, sampleLock),
		OutputPath:   out,
		RankDir:      "LR",
		JSONPath:     filepath.Join(t.TempDir(), "graph.json"),
	}

	logger, logs := quietLogger()
	res, err := NewRunner(logger).Execute(context.Background(), cfg)
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}

	if res.RunID == "" {
		t.Error("RunID should be set")
	}

	want := []graph.Edge{
		{From: "a", To: "b"}, {From: "b", To: "a"}, {From: "b", To: "ghost"},
		{From: "b", To: "a"}, {From: "a", To: "b"}, {From: "b", To: "ghost"},
	}
	if !slices.Equal(res.Edges, want) {
		t.Errorf("Edges = %v, want %v", res.Edges, want)
	}
	if res.Stats.Nodes != 3 || res.Stats.Unique != 3 {
		t.Errorf("Stats = %+v", res.Stats)
	}

	dot, err := os.ReadFile(res.Render.DOTPath)
	if err != nil {
		t.Fatalf("read DOT: %v", err)
	}
	if !strings.Contains(string(dot), `label="demo@0.1.0";`) {
		t.Errorf("DOT should carry the project label:\n%s", dot)
	}
	if _, err := os.Stat(res.JSONPath); err != nil {
		t.Errorf("JSON export missing: %v", err)
	}

	wantEvents := []string{"load-start", "load-done", "build-done", "render-start", "render-done"}
	if !slices.Equal(hooks.events, wantEvents) {
		t.Errorf("hook events = %v, want %v", hooks.events, wantEvents)
	}

	for _, msg := range []string{"loaded manifest", "built graph", "rendered image"} {
		if !strings.Contains(logs.String(), msg) {
			t.Errorf("log output missing %q:\n%s", msg, logs.String())
		}
	}
}

func TestExecute_Errors(t *testing.T) {
	bin := fakeGraphviz(t, `echo "boom" >&2; exit 1`)

	tests := []struct {
		name   string
		cfg    func(t *testing.T) config.Config
		code   errors.Code
		events []string
	}{
		{
			name: "invalid config",
			cfg: func(t *testing.T) config.Config {
				return config.Config{GraphvizPath: bin}
			},
			code: errors.ErrCodeConfig,
		},
		{
			name: "missing manifest",
			cfg: func(t *testing.T) config.Config {
				return config.Config{GraphvizPath: bin, PackagePath: t.TempDir(), OutputPath: filepath.Join(t.TempDir(), "x.png")}
			},
			code:   errors.ErrCodeNotFound,
			events: []string{"load-start", "load-error"},
		},
		{
			name: "malformed lock",
			cfg: func(t *testing.T) config.Config {
				return config.Config{GraphvizPath: bin, PackagePath: writeProject(t, `{`), OutputPath: filepath.Join(t.TempDir(), "x.png")}
			},
			code:   errors.ErrCodeParse,
			events: []string{"load-start", "load-error"},
		},
		{
			name: "renderer fails",
			cfg: func(t *testing.T) config.Config {
				return config.Config{GraphvizPath: bin, PackagePath: writeProject(t, sampleLock), OutputPath: filepath.Join(t.TempDir(), "x.png")}
			},
			code:   errors.ErrCodeRender,
			events: []string{"load-start", "load-done", "build-done", "render-start", "render-error"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hooks := &recordingHooks{}
			observability.SetPipelineHooks(hooks)
			t.Cleanup(observability.Reset)

			logger, _ := quietLogger()
			_, err := NewRunner(logger).Execute(context.Background(), tt.cfg(t))
			if !errors.Is(err, tt.code) {
				t.Fatalf("Execute() error = %v, want %s", err, tt.code)
			}
			if !slices.Equal(hooks.events, tt.events) {
				t.Errorf("hook events = %v, want %v", hooks.events, tt.events)
			}
		})
	}
}

func TestExecute_EmptyManifest(t *testing.T) {
	out := filepath.Join(t.TempDir(), "deps.png")
	cfg := config.Config{
		GraphvizPath: fakeGraphviz(t, `cp "$2" "$4"`),
		PackagePath:  writeProject(t, `{"lockfileVersion": 1, "dependencies": {}}`),
		OutputPath:   out,
	}

	logger, _ := quietLogger()
	res, err := NewRunner(logger).Execute(context.Background(), cfg)
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if len(res.Edges) != 0 {
		t.Errorf("Edges = %v, want none", res.Edges)
	}

	dot, _ := os.ReadFile(res.Render.DOTPath)
	if strings.Contains(string(dot), "->") {
		t.Errorf("empty manifest should produce an empty body:\n%s", dot)
	}
}

func TestRenderOptions(t *testing.T) {
	cfg := config.Config{
		GraphvizPath: "/usr/bin/dot",
		OutputPath:   "/tmp/out.svg",
		RankDir:      "TB",
		Strict:       true,
	}

	opts := RenderOptions(cfg, manifest.Project{Name: "demo"})
	if opts.Engine != render.EngineExec || opts.GraphvizPath != "/usr/bin/dot" {
		t.Errorf("exec options = %+v", opts)
	}
	if opts.DOT != (render.DOTOptions{RankDir: "TB", Strict: true, Label: "demo"}) {
		t.Errorf("DOT options = %+v", opts.DOT)
	}

	cfg.GraphvizPath = "builtin"
	opts = RenderOptions(cfg, manifest.Project{})
	if opts.Engine != render.EngineEmbedded || opts.GraphvizPath != "" {
		t.Errorf("builtin options = %+v", opts)
	}
	if opts.DOT.Label != "" {
		t.Errorf("Label = %q, want empty", opts.DOT.Label)
	}
}
