// Package observability provides hooks for metrics, tracing, and logging.
//
// Consumers register hooks at startup to receive events about grid rebuilds,
// frame cache operations, and live viewer sessions. The library itself never
// depends on a metrics backend; every hook defaults to a no-op.
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetRebuildHooks(&myRebuildHooks{})
//	    observability.SetCacheHooks(&myCacheHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Rebuild().OnRebuildStart(ctx, engineID, "resize")
//	// ... compute metrics and render ...
//	observability.Rebuild().OnRebuildComplete(ctx, engineID, cols, rows, duration)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Rebuild Hooks
// =============================================================================

// RebuildHooks receives events from grid engines.
type RebuildHooks interface {
	// OnRebuildStart fires before metrics are computed. Trigger is one of
	// "init", "input", "resize", or "explicit".
	OnRebuildStart(ctx context.Context, engineID, trigger string)

	// OnRebuildComplete fires after the frame has been committed.
	OnRebuildComplete(ctx context.Context, engineID string, columns, rows int, duration time.Duration)

	// OnResizeDeferred fires when a resize signal (re)arms the debounce timer.
	OnResizeDeferred(ctx context.Context, engineID string)
}

// =============================================================================
// Cache Hooks
// =============================================================================

// CacheHooks receives events from frame cache operations.
type CacheHooks interface {
	// OnCacheHit records a cache hit.
	OnCacheHit(ctx context.Context, format string)

	// OnCacheMiss records a cache miss.
	OnCacheMiss(ctx context.Context, format string)

	// OnCacheSet records a cache write.
	OnCacheSet(ctx context.Context, format string, size int)
}

// =============================================================================
// Session Hooks
// =============================================================================

// SessionHooks receives events from the live viewer.
type SessionHooks interface {
	OnSessionOpen(ctx context.Context, sessionID string)
	OnSessionClose(ctx context.Context, sessionID string, frames int, lifetime time.Duration)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopRebuildHooks is a no-op implementation of RebuildHooks.
type NoopRebuildHooks struct{}

func (NoopRebuildHooks) OnRebuildStart(context.Context, string, string) {}
func (NoopRebuildHooks) OnRebuildComplete(context.Context, string, int, int, time.Duration) {
}
func (NoopRebuildHooks) OnResizeDeferred(context.Context, string) {}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// NoopSessionHooks is a no-op implementation of SessionHooks.
type NoopSessionHooks struct{}

func (NoopSessionHooks) OnSessionOpen(context.Context, string)                      {}
func (NoopSessionHooks) OnSessionClose(context.Context, string, int, time.Duration) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	rebuildHooks RebuildHooks = NoopRebuildHooks{}
	cacheHooks   CacheHooks   = NoopCacheHooks{}
	sessionHooks SessionHooks = NoopSessionHooks{}
	hooksMu      sync.RWMutex
)

// SetRebuildHooks registers custom rebuild hooks. Nil is ignored.
func SetRebuildHooks(h RebuildHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		rebuildHooks = h
	}
}

// SetCacheHooks registers custom cache hooks. Nil is ignored.
func SetCacheHooks(h CacheHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		cacheHooks = h
	}
}

// SetSessionHooks registers custom session hooks. Nil is ignored.
func SetSessionHooks(h SessionHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		sessionHooks = h
	}
}

// Rebuild returns the registered rebuild hooks.
func Rebuild() RebuildHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return rebuildHooks
}

// Cache returns the registered cache hooks.
func Cache() CacheHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return cacheHooks
}

// Session returns the registered session hooks.
func Session() SessionHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return sessionHooks
}

// Reset restores all hooks to their no-op defaults.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	rebuildHooks = NoopRebuildHooks{}
	cacheHooks = NoopCacheHooks{}
	sessionHooks = NoopSessionHooks{}
}
