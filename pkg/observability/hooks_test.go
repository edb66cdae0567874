package observability

import (
	"context"
	"testing"
	"time"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	p := NoopPipelineHooks{}
	p.OnLoadStart(ctx, "/srv/app")
	p.OnLoadComplete(ctx, "/srv/app", 42, time.Second, nil)
	p.OnBuildComplete(ctx, 100, time.Millisecond)
	p.OnRenderStart(ctx, "exec", "png")
	p.OnRenderComplete(ctx, "/tmp/deps.png", time.Second, nil)
}

type testPipelineHooks struct {
	NoopPipelineHooks
	builds int
}

func (h *testPipelineHooks) OnBuildComplete(context.Context, int, time.Duration) {
	h.builds++
}

func TestGlobalHooksRegistry(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	if _, ok := Pipeline().(NoopPipelineHooks); !ok {
		t.Error("Pipeline() should return NoopPipelineHooks by default")
	}

	custom := &testPipelineHooks{}
	SetPipelineHooks(custom)
	if Pipeline() != custom {
		t.Error("SetPipelineHooks should set custom hooks")
	}

	Pipeline().OnBuildComplete(context.Background(), 3, 0)
	if custom.builds != 1 {
		t.Errorf("custom hook called %d times, want 1", custom.builds)
	}

	SetPipelineHooks(nil)
	if Pipeline() != custom {
		t.Error("SetPipelineHooks(nil) should keep the current hooks")
	}

	Reset()
	if _, ok := Pipeline().(NoopPipelineHooks); !ok {
		t.Error("Reset() should restore NoopPipelineHooks")
	}
}
