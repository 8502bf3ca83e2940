package loader

import (
	"fmt"
	"io"
	"io/fs"

	"github.com/cecil-the-coder/provider-finder/pkg/registry"
	"github.com/cecil-the-coder/provider-finder/pkg/types"
)

// ScopeLoader adapts a registry scope to the types.Loader contract,
// optionally serving named resources from an fs.FS. It is the loader
// implementation used both for the finder's defining scope and for
// module-aware loaders backed by embedded filesystems.
type ScopeLoader struct {
	scope     *registry.Scope
	resources fs.FS
}

// Option configures a ScopeLoader.
type Option func(*ScopeLoader)

// WithResources serves OpenResource calls from the given filesystem.
// Resource names are fs.FS paths, for example "META-INF/services/client.builder".
func WithResources(fsys fs.FS) Option {
	return func(l *ScopeLoader) { l.resources = fsys }
}

// NewScopeLoader creates a loader over the given registration scope.
func NewScopeLoader(scope *registry.Scope, opts ...Option) *ScopeLoader {
	l := &ScopeLoader{scope: scope}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Default returns a loader over the process-wide default registration scope.
func Default() *ScopeLoader {
	return NewScopeLoader(registry.Default())
}

// LookupType resolves a fully-qualified type name within this scope.
func (l *ScopeLoader) LookupType(name string) (types.Constructor, bool) {
	return l.scope.LookupType(name)
}

// Providers enumerates provider registrations for the service.
func (l *ScopeLoader) Providers(service types.ServiceType) ([]string, error) {
	return l.scope.Providers(service)
}

// OpenResource opens a named resource from the loader's filesystem.
// Loaders constructed without WithResources serve no resources.
func (l *ScopeLoader) OpenResource(name string) (io.ReadCloser, error) {
	if l.resources == nil {
		return nil, fmt.Errorf("loader: no resources in scope, cannot open %s", name)
	}
	f, err := l.resources.Open(name)
	if err != nil {
		return nil, fmt.Errorf("loader: open resource %s: %w", name, err)
	}
	return f, nil
}
