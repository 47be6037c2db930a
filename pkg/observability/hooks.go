// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard dependencies
// on specific observability backends. Consumers can register hooks at startup
// to receive events about atlas composition and the HTTP API.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// Hooks are registered by main, not by libraries, so the composition
// packages never import an observability backend.
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetCompositionHooks(&myCompositionHooks{})
//	    observability.SetHTTPHooks(&myHTTPHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	start := time.Now()
//	img, err := codec.Probe(path)
//	observability.Composition().OnProbe(ctx, path, time.Since(start), err)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Composition Hooks
// =============================================================================

// CompositionHooks receives events from atlas composition.
type CompositionHooks interface {
	// OnProbe records one source image being decoded.
	OnProbe(ctx context.Context, path string, duration time.Duration, err error)

	// OnPack records one packing pass.
	OnPack(ctx context.Context, arrangement string, rects, width, height int, duration time.Duration)

	// OnEncode records an atlas being written.
	OnEncode(ctx context.Context, path string, duration time.Duration, err error)
}

// =============================================================================
// HTTP Hooks
// =============================================================================

// HTTPHooks receives events from the HTTP API server.
type HTTPHooks interface {
	// OnRequest records an incoming request.
	OnRequest(ctx context.Context, method, path string)

	// OnResponse records the response sent for a request.
	OnResponse(ctx context.Context, method, path string, statusCode int, duration time.Duration)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopCompositionHooks is a no-op implementation of CompositionHooks.
type NoopCompositionHooks struct{}

func (NoopCompositionHooks) OnProbe(context.Context, string, time.Duration, error)          {}
func (NoopCompositionHooks) OnPack(context.Context, string, int, int, int, time.Duration) {}
func (NoopCompositionHooks) OnEncode(context.Context, string, time.Duration, error)         {}

// NoopHTTPHooks is a no-op implementation of HTTPHooks.
type NoopHTTPHooks struct{}

func (NoopHTTPHooks) OnRequest(context.Context, string, string)                       {}
func (NoopHTTPHooks) OnResponse(context.Context, string, string, int, time.Duration) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	compositionHooks CompositionHooks = NoopCompositionHooks{}
	httpHooks        HTTPHooks        = NoopHTTPHooks{}
	hooksMu          sync.RWMutex
)

// SetCompositionHooks registers custom composition hooks.
// This should be called once at application startup before any atlas is composed.
func SetCompositionHooks(h CompositionHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		compositionHooks = h
	}
}

// SetHTTPHooks registers custom HTTP hooks.
// This should be called once at application startup before the server starts.
func SetHTTPHooks(h HTTPHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		httpHooks = h
	}
}

// Composition returns the registered composition hooks.
func Composition() CompositionHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return compositionHooks
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
	compositionHooks = NoopCompositionHooks{}
	httpHooks = NoopHTTPHooks{}
}
