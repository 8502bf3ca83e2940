package types

import (
	"context"
	"io"
	"time"
)

// ServiceType names the abstract contract being resolved, for example
// "client.Builder". It is the key under which providers register themselves.
type ServiceType string

// Constructor builds a zero-argument instance of a provider implementation.
// A constructor that panics is treated as a construction failure by the
// finder, never as a crash of the resolution call.
type Constructor func() (any, error)

// Loader is a resolution scope: a place to look up named types, enumerate
// provider registrations, and open named resources. Implementations must be
// safe for concurrent use.
type Loader interface {
	// LookupType resolves a fully-qualified type name to its constructor.
	// The second return reports whether the name is known to this scope.
	LookupType(name string) (Constructor, bool)

	// Providers returns the type names registered for the given service,
	// in registration order. The order must be stable across calls.
	Providers(service ServiceType) ([]string, error)

	// OpenResource opens a named resource within this scope. Callers own
	// the returned reader and must close it.
	OpenResource(name string) (io.ReadCloser, error)
}

// PropertyReader reads a single named value from process-wide configuration.
// The bool reports presence; the error reports a failure to even attempt the
// read (for example a permission problem), which the finder logs and skips.
type PropertyReader interface {
	LookupProperty(key string) (string, bool, error)
}

// ModuleLoaders is the optional modular-runtime collaborator. Load returns
// the module-aware loader when the module system is present in the
// deployment, and (nil, false) when it is not. Absence is an expected
// outcome, not an error.
type ModuleLoaders interface {
	Load(ctx context.Context) (Loader, bool)
}

// ModuleLoadersFunc adapts a plain function to the ModuleLoaders interface.
type ModuleLoadersFunc func(ctx context.Context) (Loader, bool)

// Load implements ModuleLoaders.
func (f ModuleLoadersFunc) Load(ctx context.Context) (Loader, bool) {
	return f(ctx)
}

// ResolutionEventType categorizes resolution metric events
type ResolutionEventType string

const (
	// ResolutionEventAttempt is emitted once per Find call.
	ResolutionEventAttempt ResolutionEventType = "attempt"
	// ResolutionEventHit is emitted when a strategy produces an instance.
	ResolutionEventHit ResolutionEventType = "hit"
	// ResolutionEventMiss is emitted when a strategy abstains.
	ResolutionEventMiss ResolutionEventType = "miss"
	// ResolutionEventFailure is emitted when a Find call fails.
	ResolutionEventFailure ResolutionEventType = "failure"
)

// ResolutionEvent describes one observable step of a resolution.
type ResolutionEvent struct {
	Type         ResolutionEventType
	ResolutionID string // correlates events of a single Find call
	FactoryID    string
	Service      ServiceType
	Strategy     string // which discovery strategy produced the event
	TypeName     string // resolved implementation name, when known
	Timestamp    time.Time
	Latency      time.Duration
	ErrorMessage string
}

// MetricsCollector receives resolution events. Implementations must be safe
// for concurrent use; RecordEvent must not block the resolution path.
type MetricsCollector interface {
	RecordEvent(ctx context.Context, event ResolutionEvent) error
}
