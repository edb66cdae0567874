package render

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/matzehuels/lockgraph/pkg/errors"
	"github.com/matzehuels/lockgraph/pkg/graph"
)

// DefaultFormat is used when neither Options.Format nor the output extension
// names a format.
const DefaultFormat = "png"

// Engine selects how the DOT description is laid out.
type Engine string

const (
	// EngineExec runs an external Graphviz executable.
	EngineExec Engine = "exec"
	// EngineEmbedded renders in process with go-graphviz.
	EngineEmbedded Engine = "embedded"
)

// Options configures Render.
type Options struct {
	Engine       Engine
	GraphvizPath string // executable for EngineExec
	OutputPath   string // image path
	Format       string // image format; derived from OutputPath when empty
	DOT          DOTOptions
}

// Result describes the files Render produced.
type Result struct {
	DOTPath   string
	ImagePath string
	Format    string
	Bytes     int64 // size of the image
}

// Render writes the DOT description for edges next to opts.OutputPath and
// lays it out into the image at opts.OutputPath.
//
// All failures are ErrCodeRender errors, except a cancelled ctx, which is
// returned as is.
func Render(ctx context.Context, edges []graph.Edge, opts Options) (*Result, error) {
	if opts.OutputPath == "" {
		return nil, errors.New(errors.ErrCodeRender, "no output path")
	}

	format := opts.Format
	if format == "" {
		format = FormatFromPath(opts.OutputPath)
	}
	res := &Result{
		DOTPath:   DOTPath(opts.OutputPath),
		ImagePath: opts.OutputPath,
		Format:    format,
	}

	if err := os.MkdirAll(filepath.Dir(opts.OutputPath), 0o755); err != nil {
		return nil, errors.Wrap(errors.ErrCodeRender, err, "create output directory")
	}

	dot := ToDOT(edges, opts.DOT)
	if err := writeFileAtomic(res.DOTPath, []byte(dot)); err != nil {
		return nil, errors.Wrap(errors.ErrCodeRender, err, "write %s", res.DOTPath)
	}

	var err error
	switch opts.Engine {
	case EngineEmbedded:
		err = renderEmbedded(ctx, []byte(dot), format, res.ImagePath)
	case EngineExec, "":
		err = runGraphviz(ctx, opts.GraphvizPath, format, res.DOTPath, res.ImagePath)
	default:
		return nil, errors.New(errors.ErrCodeRender, "unknown render engine %q", opts.Engine)
	}
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, errors.Wrap(errors.ErrCodeRender, err, "render %s", res.ImagePath)
	}

	info, err := os.Stat(res.ImagePath)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeRender, err, "renderer produced no image")
	}
	res.Bytes = info.Size()
	return res, nil
}

// FormatFromPath returns the lower-cased extension of p, or DefaultFormat.
func FormatFromPath(p string) string {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(p), "."))
	if ext == "" || ext == "dot" || ext == "gv" {
		return DefaultFormat
	}
	return ext
}

// DOTPath returns the description path for an image path: the same base name
// with a .dot extension. An image path that already ends in .dot gets a
// second .dot suffix so the two files never collide.
func DOTPath(imagePath string) string {
	ext := filepath.Ext(imagePath)
	if strings.EqualFold(ext, ".dot") {
		return imagePath + ".dot"
	}
	return strings.TrimSuffix(imagePath, ext) + ".dot"
}

// writeFileAtomic writes data to a temporary file in the target directory and
// renames it over path.
func writeFileAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".lockgraph-*.dot")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("rename: %w", err)
	}
	return nil
}
