package observability

import (
	"context"
	"testing"
	"time"
)

type countingRenderHooks struct {
	starts    int
	completes int
	fallbacks int
}

func (h *countingRenderHooks) OnRenderStart(context.Context, string, int, int) { h.starts++ }
func (h *countingRenderHooks) OnRenderComplete(context.Context, string, time.Duration, error) {
	h.completes++
}
func (h *countingRenderHooks) OnLayerFallback(context.Context, int, error)                { h.fallbacks++ }
func (h *countingRenderHooks) OnFontResolve(context.Context, string, bool, time.Duration) {}

func TestRenderHooksRegistration(t *testing.T) {
	t.Cleanup(Reset)

	hooks := &countingRenderHooks{}
	SetRenderHooks(hooks)

	ctx := context.Background()
	Render().OnRenderStart(ctx, "abc", 1080, 1920)
	Render().OnRenderComplete(ctx, "abc", time.Millisecond, nil)
	Render().OnLayerFallback(ctx, 2, nil)

	if hooks.starts != 1 || hooks.completes != 1 || hooks.fallbacks != 1 {
		t.Errorf("hook counts = %d/%d/%d, want 1/1/1", hooks.starts, hooks.completes, hooks.fallbacks)
	}
}

func TestSetNilKeepsExisting(t *testing.T) {
	t.Cleanup(Reset)

	hooks := &countingRenderHooks{}
	SetRenderHooks(hooks)
	SetRenderHooks(nil)

	Render().OnRenderStart(context.Background(), "x", 1, 1)
	if hooks.starts != 1 {
		t.Error("nil registration should not replace existing hooks")
	}
}

func TestReset(t *testing.T) {
	hooks := &countingRenderHooks{}
	SetRenderHooks(hooks)
	Reset()

	Render().OnRenderStart(context.Background(), "x", 1, 1)
	if hooks.starts != 0 {
		t.Error("Reset should restore no-op hooks")
	}
}

func TestDefaultsAreNoop(t *testing.T) {
	Reset()
	// Must not panic.
	ctx := context.Background()
	Render().OnRenderComplete(ctx, "h", 0, nil)
	Cache().OnCacheHit(ctx, "render")
	Cache().OnCacheMiss(ctx, "font")
	HTTP().OnRequest(ctx, "GET", "fonts.gstatic.com", "/s/inter")
}
