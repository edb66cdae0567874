// Package observability provides hooks for instrumenting pipeline runs.
//
// The package keeps lockgraph free of any particular metrics or tracing
// backend. Consumers register a [PipelineHooks] implementation at startup and
// the pipeline reports every stage through it. The default is a no-op.
//
// # Usage
//
//	func main() {
//	    observability.SetPipelineHooks(&myHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Pipeline().OnLoadStart(ctx, dir)
//	// ... load manifest ...
//	observability.Pipeline().OnLoadComplete(ctx, dir, m.Len(), time.Since(start), err)
package observability

import (
	"context"
	"sync"
	"time"
)

// PipelineHooks receives events from the load -> build -> render pipeline.
type PipelineHooks interface {
	// Manifest loading
	OnLoadStart(ctx context.Context, dir string)
	OnLoadComplete(ctx context.Context, dir string, packages int, duration time.Duration, err error)

	// Graph construction never fails, so it only reports completion.
	OnBuildComplete(ctx context.Context, edges int, duration time.Duration)

	// Rendering
	OnRenderStart(ctx context.Context, engine, format string)
	OnRenderComplete(ctx context.Context, output string, duration time.Duration, err error)
}

// NoopPipelineHooks is a no-op implementation of PipelineHooks.
type NoopPipelineHooks struct{}

func (NoopPipelineHooks) OnLoadStart(context.Context, string)                               {}
func (NoopPipelineHooks) OnLoadComplete(context.Context, string, int, time.Duration, error) {}
func (NoopPipelineHooks) OnBuildComplete(context.Context, int, time.Duration)               {}
func (NoopPipelineHooks) OnRenderStart(context.Context, string, string)                     {}
func (NoopPipelineHooks) OnRenderComplete(context.Context, string, time.Duration, error)    {}

var (
	pipelineHooks PipelineHooks = NoopPipelineHooks{}
	hooksMu       sync.RWMutex
)

// SetPipelineHooks registers custom pipeline hooks.
// This should be called once at application startup before any pipeline runs.
// A nil h is ignored.
func SetPipelineHooks(h PipelineHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		pipelineHooks = h
	}
}

// Pipeline returns the registered pipeline hooks.
func Pipeline() PipelineHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return pipelineHooks
}

// Reset restores the no-op default.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	pipelineHooks = NoopPipelineHooks{}
}
