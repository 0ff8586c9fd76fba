// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard dependencies
// on specific observability backends. Consumers can register hooks at startup
// to receive events about gather runs, cache operations, and API calls.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// This approach:
//   - Avoids import cycles (hooks are registered by main, not by libraries)
//   - Keeps the core library dependency-free from observability frameworks
//   - Allows different backends (OpenTelemetry, Prometheus, DataDog, etc.)
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetGatherHooks(&myGatherHooks{})
//	    observability.SetCacheHooks(&myCacheHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Gather().OnDependencyStart(ctx, "com.squareup.okio:okio")
//	// ... resolve descriptor ...
//	observability.Gather().OnDependencyComplete(ctx, "com.squareup.okio:okio", "resolved", duration, nil)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Gather Hooks
// =============================================================================

// GatherHooks receives events from a dependency gather run.
type GatherHooks interface {
	// Run events
	OnRunStart(ctx context.Context, runID string, dependencyCount int)
	OnRunComplete(ctx context.Context, runID string, libraries, licenses int, duration time.Duration, err error)

	// Per-dependency events. status is one of "resolved", "skipped", "failed".
	OnDependencyStart(ctx context.Context, uniqueID string)
	OnDependencyComplete(ctx context.Context, uniqueID, status string, duration time.Duration, err error)

	// OnBudget records the remaining remote lookup budget after an enrichment call.
	OnBudget(ctx context.Context, remaining int)
}

// =============================================================================
// Cache Hooks
// =============================================================================

// CacheHooks receives events from cache operations.
type CacheHooks interface {
	// OnCacheHit records a cache hit.
	OnCacheHit(ctx context.Context, keyType string)

	// OnCacheMiss records a cache miss.
	OnCacheMiss(ctx context.Context, keyType string)

	// OnCacheSet records a cache write.
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// =============================================================================
// HTTP Hooks
// =============================================================================

// HTTPHooks receives events from HTTP client operations.
type HTTPHooks interface {
	// OnRequest records an outgoing HTTP request.
	OnRequest(ctx context.Context, method, host, path string)

	// OnResponse records an HTTP response.
	OnResponse(ctx context.Context, method, host, path string, statusCode int, duration time.Duration)

	// OnError records an HTTP error (network failure, timeout).
	OnError(ctx context.Context, method, host, path string, err error)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopGatherHooks is a no-op implementation of GatherHooks.
type NoopGatherHooks struct{}

func (NoopGatherHooks) OnRunStart(context.Context, string, int) {}
func (NoopGatherHooks) OnRunComplete(context.Context, string, int, int, time.Duration, error) {
}
func (NoopGatherHooks) OnDependencyStart(context.Context, string) {}
func (NoopGatherHooks) OnDependencyComplete(context.Context, string, string, time.Duration, error) {
}
func (NoopGatherHooks) OnBudget(context.Context, int) {}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// NoopHTTPHooks is a no-op implementation of HTTPHooks.
type NoopHTTPHooks struct{}

func (NoopHTTPHooks) OnRequest(context.Context, string, string, string)                      {}
func (NoopHTTPHooks) OnResponse(context.Context, string, string, string, int, time.Duration) {}
func (NoopHTTPHooks) OnError(context.Context, string, string, string, error)                 {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	gatherHooks   GatherHooks   = NoopGatherHooks{}
	cacheHooks    CacheHooks    = NoopCacheHooks{}
	httpHooks     HTTPHooks     = NoopHTTPHooks{}
	hooksMu       sync.RWMutex
)

// SetGatherHooks registers custom gather hooks.
// This should be called once at application startup before any gather run.
func SetGatherHooks(h GatherHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		gatherHooks = h
	}
}

// SetCacheHooks registers custom cache hooks.
// This should be called once at application startup before any cache operations.
func SetCacheHooks(h CacheHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		cacheHooks = h
	}
}

// SetHTTPHooks registers custom HTTP hooks.
// This should be called once at application startup before any HTTP operations.
func SetHTTPHooks(h HTTPHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		httpHooks = h
	}
}

// Gather returns the registered gather hooks.
func Gather() GatherHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return gatherHooks
}

// Cache returns the registered cache hooks.
func Cache() CacheHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return cacheHooks
}

// HTTP returns the registered HTTP hooks.
func HTTP() HTTPHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return httpHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	gatherHooks = NoopGatherHooks{}
	cacheHooks = NoopCacheHooks{}
	httpHooks = NoopHTTPHooks{}
}
