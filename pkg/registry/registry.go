package registry

import (
	"fmt"
	"sync"

	"github.com/cecil-the-coder/provider-finder/pkg/types"
)

// Scope is one provider registration scope: a table of named constructors
// plus, per service type, the ordered list of provider registrations.
// It is safe for concurrent use.
type Scope struct {
	mu           sync.RWMutex
	constructors map[string]types.Constructor
	providers    map[types.ServiceType][]string
}

// NewScope creates an empty registration scope.
func NewScope() *Scope {
	return &Scope{
		constructors: make(map[string]types.Constructor),
		providers:    make(map[types.ServiceType][]string),
	}
}

// RegisterType binds a fully-qualified type name to its constructor.
// Re-registering an existing name replaces the previous constructor.
func (s *Scope) RegisterType(name string, ctor types.Constructor) error {
	if name == "" {
		return fmt.Errorf("registry: empty type name")
	}
	if ctor == nil {
		return fmt.Errorf("registry: nil constructor for type %s", name)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.constructors[name] = ctor
	return nil
}

// RegisterProvider appends a provider registration for the given service.
// The type name does not have to be registered yet; a registration naming a
// type this scope never learns about surfaces as an enumeration error.
func (s *Scope) RegisterProvider(service types.ServiceType, typeName string) error {
	if service == "" {
		return fmt.Errorf("registry: empty service type")
	}
	if typeName == "" {
		return fmt.Errorf("registry: empty provider type name for service %s", service)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.providers[service] = append(s.providers[service], typeName)
	return nil
}

// Providers returns the provider type names registered for the service, in
// registration order. A registration naming an unknown type is reported as
// an error so callers can treat the registration as malformed.
func (s *Scope) Providers(service types.ServiceType) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := s.providers[service]
	for _, name := range names {
		if _, ok := s.constructors[name]; !ok {
			return nil, fmt.Errorf("registry: provider %s registered for service %s has no constructor", name, service)
		}
	}

	out := make([]string, len(names))
	copy(out, names)
	return out, nil
}

// LookupType returns the constructor bound to the given type name.
func (s *Scope) LookupType(name string) (types.Constructor, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ctor, ok := s.constructors[name]
	return ctor, ok
}

// TypeNames returns all registered type names. Intended for diagnostics.
func (s *Scope) TypeNames() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, 0, len(s.constructors))
	for name := range s.constructors {
		names = append(names, name)
	}
	return names
}

// defaultScope is the process-wide registration scope, the scope that owns
// the resolution code itself. Implementations typically register here from
// an init function, in the manner of database/sql drivers.
var defaultScope = NewScope()

// Default returns the process-wide registration scope.
func Default() *Scope {
	return defaultScope
}

// RegisterType binds a type name to a constructor in the default scope.
// It panics on invalid input, matching driver-registration conventions
// where a bad registration is a programming error.
func RegisterType(name string, ctor types.Constructor) {
	if err := defaultScope.RegisterType(name, ctor); err != nil {
		panic(err)
	}
}

// RegisterProvider registers a provider for a service in the default scope.
func RegisterProvider(service types.ServiceType, typeName string) {
	if err := defaultScope.RegisterProvider(service, typeName); err != nil {
		panic(err)
	}
}
