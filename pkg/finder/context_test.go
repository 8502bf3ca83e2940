package finder

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cecil-the-coder/provider-finder/pkg/loader"
	"github.com/cecil-the-coder/provider-finder/pkg/registry"
	"github.com/cecil-the-coder/provider-finder/pkg/types"
)

func TestWithLoader_RoundTrip(t *testing.T) {
	l := loader.NewScopeLoader(registry.NewScope())
	ctx := WithLoader(context.Background(), l)

	got, ok := LoaderFromContext(ctx)
	require.True(t, ok)
	assert.Same(t, types.Loader(l), got)
}

func TestLoaderFromContext_Absent(t *testing.T) {
	_, ok := LoaderFromContext(context.Background())
	assert.False(t, ok)
}

func TestContextLoader_NeverPanics(t *testing.T) {
	f := New()

	assert.NotPanics(t, func() {
		assert.Nil(t, f.contextLoader(nil))
	})
	assert.NotPanics(t, func() {
		assert.Nil(t, f.contextLoader(panickyContext{}))
	})
}

// panickyContext models a context implementation that blows up on Value,
// the moral equivalent of a security manager denying the read.
type panickyContext struct{}

func (panickyContext) Deadline() (time.Time, bool) { return time.Time{}, false }
func (panickyContext) Done() <-chan struct{}       { return nil }
func (panickyContext) Err() error                  { return nil }
func (panickyContext) Value(any) any               { panic("access denied") }
