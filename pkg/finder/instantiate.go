package finder

import (
	"fmt"
	"log/slog"

	"github.com/cecil-the-coder/provider-finder/pkg/types"
)

// newInstance resolves typeName to a constructor and builds an instance.
// Resolution is a two-attempt policy: the primary loader first, then the
// finder's defining scope. Deployments where the caller's scope and the
// implementation's packaging scope disagree rely on this exact ordering.
func (f *Finder) newInstance(factoryID, typeName string, primary types.Loader, log *slog.Logger) (any, error) {
	var (
		ctor types.Constructor
		ok   bool
	)

	if primary != nil {
		ctor, ok = primary.LookupType(typeName)
		if !ok {
			log.Debug("unable to resolve provider type in primary scope, retrying with defining scope",
				"type", typeName)
		}
	}
	if !ok && f.defining != nil {
		ctor, ok = f.defining.LookupType(typeName)
	}
	if !ok {
		return nil, types.NewNotFoundError(factoryID,
			fmt.Sprintf("provider type %s cannot be located", typeName)).WithTypeName(typeName)
	}

	return construct(factoryID, typeName, ctor)
}

// construct runs a constructor, converting both returned errors and panics
// into an instantiation failure. A located-but-broken candidate is always
// surfaced, never swallowed by callers that propagate errors.
func construct(factoryID, typeName string, ctor types.Constructor) (inst any, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			inst = nil
			err = types.NewInstantiationError(factoryID, typeName, fmt.Errorf("constructor panic: %v", rec))
		}
	}()

	inst, cerr := ctor()
	if cerr != nil {
		return nil, types.NewInstantiationError(factoryID, typeName, cerr)
	}
	return inst, nil
}
