package finder

import (
	"context"

	"github.com/cecil-the-coder/provider-finder/pkg/types"
)

type loaderContextKey struct{}

// WithLoader returns a context carrying the caller's ambient loader. The
// finder consults this loader before its own defining scope.
func WithLoader(ctx context.Context, l types.Loader) context.Context {
	return context.WithValue(ctx, loaderContextKey{}, l)
}

// LoaderFromContext returns the ambient loader carried by ctx, if any.
func LoaderFromContext(ctx context.Context) (types.Loader, bool) {
	l, ok := ctx.Value(loaderContextKey{}).(types.Loader)
	return l, ok
}

// contextLoader acquires the ambient loader. It never fails: a nil context
// or any panic while reading context values degrades to "no ambient loader"
// with a rate-limited warning, so a hostile or broken context implementation
// cannot abort resolution.
func (f *Finder) contextLoader(ctx context.Context) (l types.Loader) {
	defer func() {
		if rec := recover(); rec != nil {
			f.warn(f.log, "unable to get ambient context loader", "error", rec)
			l = nil
		}
	}()

	if ctx == nil {
		return nil
	}
	l, _ = LoaderFromContext(ctx)
	return l
}
