package finder

import (
	"bufio"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/cecil-the-coder/provider-finder/internal/props"
	"github.com/cecil-the-coder/provider-finder/pkg/loader"
	"github.com/cecil-the-coder/provider-finder/pkg/types"
)

const (
	// DefaultConfigName is the base name of the installation configuration
	// file, looked up as <runtime-home>/lib/<name>.properties.
	DefaultConfigName = "providers"

	// RuntimeHomeKey is the property naming the runtime installation root.
	RuntimeHomeKey = "runtime.home"

	moduleServicePrefix = "META-INF/services/"
)

// Strategy names, used in logs and metric events.
const (
	StrategyRegistryAmbient  = "registry-ambient"
	StrategyRegistryDefining = "registry-defining"
	StrategyInstallConfig    = "install-config"
	StrategyProcessProperty  = "process-property"
	StrategyModuleResource   = "module-resource"
	StrategyFallback         = "fallback"
)

// Finder resolves a logical factory identifier to a concrete provider
// instance by trying a fixed, ordered sequence of discovery strategies and
// stopping at the first success. It holds no state across calls beyond its
// configuration and is safe for concurrent use.
type Finder struct {
	defining    types.Loader
	properties  types.PropertyReader
	modules     types.ModuleLoaders
	installHome string
	configName  string
	log         *slog.Logger
	collector   types.MetricsCollector
	warnLimit   *rate.Limiter
}

// Option configures a Finder.
type Option func(*Finder)

// WithDefiningLoader replaces the loader owning the resolution code itself.
// The default is the process-wide registration scope.
func WithDefiningLoader(l types.Loader) Option {
	return func(f *Finder) { f.defining = l }
}

// WithPropertyReader replaces the process-wide configuration reader.
// The default reads environment variables.
func WithPropertyReader(r types.PropertyReader) Option {
	return func(f *Finder) { f.properties = r }
}

// WithModuleLoaders supplies the optional modular-runtime collaborator.
// Without it the module-resource strategy is skipped.
func WithModuleLoaders(m types.ModuleLoaders) Option {
	return func(f *Finder) { f.modules = m }
}

// WithInstallHome pins the runtime installation root instead of deriving it
// from the property reader or the executable location.
func WithInstallHome(home string) Option {
	return func(f *Finder) { f.installHome = home }
}

// WithConfigName overrides the installation configuration file base name.
func WithConfigName(name string) Option {
	return func(f *Finder) { f.configName = name }
}

// WithLogger sets the structured logger used for strategy diagnostics.
func WithLogger(log *slog.Logger) Option {
	return func(f *Finder) { f.log = log }
}

// WithMetricsCollector attaches a collector receiving resolution events.
func WithMetricsCollector(c types.MetricsCollector) Option {
	return func(f *Finder) { f.collector = c }
}

// New creates a Finder with the given options applied over the defaults.
func New(opts ...Option) *Finder {
	f := &Finder{
		defining:   loader.Default(),
		properties: EnvPropertyReader{},
		configName: DefaultConfigName,
		log:        slog.Default(),
		// Ambient read failures tend to repeat on every call; keep the
		// warnings visible without letting them flood the log.
		warnLimit: rate.NewLimiter(rate.Every(10*time.Second), 5),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Find locates and instantiates the provider for factoryID. Strategies are
// tried in a fixed order: provider registry via the ambient context loader,
// registry via the defining loader, the installation configuration file, a
// process property, a modular-runtime resource, and finally fallbackName if
// one was supplied. A strategy failing never aborts the chain; only an
// instantiation failure for an explicitly configured candidate, or
// exhaustion of every strategy, is surfaced to the caller.
//
// An empty fallbackName means no fallback. Exactly one instance is returned
// per call; nothing is cached across calls.
func (f *Finder) Find(ctx context.Context, factoryID, fallbackName string, service types.ServiceType) (any, error) {
	start := time.Now()
	resolutionID := uuid.NewString()
	log := f.log.With("factory_id", factoryID, "resolution_id", resolutionID)

	f.record(ctx, types.ResolutionEvent{
		Type:         types.ResolutionEventAttempt,
		ResolutionID: resolutionID,
		FactoryID:    factoryID,
		Service:      service,
		Timestamp:    start,
	})

	ambient := f.contextLoader(ctx)

	if inst, typeName, ok := f.fromRegistry(ambient, factoryID, service, StrategyRegistryAmbient, log); ok {
		f.recordHit(ctx, resolutionID, factoryID, service, StrategyRegistryAmbient, typeName, start)
		return inst, nil
	}
	f.recordMiss(ctx, resolutionID, factoryID, service, StrategyRegistryAmbient)

	if inst, typeName, ok := f.fromRegistry(f.defining, factoryID, service, StrategyRegistryDefining, log); ok {
		f.recordHit(ctx, resolutionID, factoryID, service, StrategyRegistryDefining, typeName, start)
		return inst, nil
	}
	f.recordMiss(ctx, resolutionID, factoryID, service, StrategyRegistryDefining)

	if inst, typeName, done, err := f.fromInstallConfig(ambient, factoryID, log); done {
		return f.finish(ctx, resolutionID, factoryID, service, StrategyInstallConfig, typeName, start, inst, err)
	}
	f.recordMiss(ctx, resolutionID, factoryID, service, StrategyInstallConfig)

	if inst, typeName, done, err := f.fromProcessProperty(ambient, factoryID, log); done {
		return f.finish(ctx, resolutionID, factoryID, service, StrategyProcessProperty, typeName, start, inst, err)
	}
	f.recordMiss(ctx, resolutionID, factoryID, service, StrategyProcessProperty)

	if inst, typeName, ok := f.fromModuleResource(ctx, factoryID, log); ok {
		f.recordHit(ctx, resolutionID, factoryID, service, StrategyModuleResource, typeName, start)
		return inst, nil
	}
	f.recordMiss(ctx, resolutionID, factoryID, service, StrategyModuleResource)

	if fallbackName == "" {
		err := types.NewNotFoundError(factoryID, "provider for factory identifier cannot be found")
		f.recordFailure(ctx, resolutionID, factoryID, service, err)
		return nil, err
	}

	inst, err := f.newInstance(factoryID, fallbackName, ambient, log)
	return f.finish(ctx, resolutionID, factoryID, service, StrategyFallback, fallbackName, start, inst, err)
}

// fromRegistry tries a provider-registry lookup through one loader scope.
// Every failure here, including a failure to construct the first registered
// provider, makes the strategy abstain.
func (f *Finder) fromRegistry(l types.Loader, factoryID string, service types.ServiceType, strategy string, log *slog.Logger) (any, string, bool) {
	if l == nil {
		return nil, "", false
	}

	names, err := l.Providers(service)
	if err != nil {
		log.Debug("failed to enumerate registered providers",
			"strategy", strategy, "service", string(service), "error", err)
		return nil, "", false
	}
	if len(names) == 0 {
		return nil, "", false
	}

	ctor, ok := l.LookupType(names[0])
	if !ok {
		log.Debug("registered provider has no constructor in scope",
			"strategy", strategy, "type", names[0])
		return nil, "", false
	}

	inst, err := construct(factoryID, names[0], ctor)
	if err != nil {
		log.Debug("failed to construct registered provider",
			"strategy", strategy, "type", names[0], "error", err)
		return nil, "", false
	}
	return inst, names[0], true
}

// fromInstallConfig tries <runtime-home>/lib/<config-name>.properties. The
// done return reports whether the strategy produced an outcome: once the
// file names an implementation for factoryID, its instantiation result is
// final, success or not. Explicit misconfiguration is surfaced, absence is
// not.
func (f *Finder) fromInstallConfig(ambient types.Loader, factoryID string, log *slog.Logger) (inst any, typeName string, done bool, err error) {
	path, ok := f.installConfigPath(log)
	if !ok {
		return nil, "", false, nil
	}

	file, err := os.Open(path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Debug("failed to open installation configuration", "path", path, "error", err)
		}
		return nil, "", false, nil
	}
	defer file.Close()

	entries, err := props.Parse(file)
	if err != nil {
		log.Debug("failed to parse installation configuration", "path", path, "error", err)
		return nil, "", false, nil
	}

	typeName, present := entries[factoryID]
	if !present {
		return nil, "", false, nil
	}

	inst, err = f.newInstance(factoryID, typeName, ambient, log)
	return inst, typeName, true, err
}

// installConfigPath resolves the installation file location: an explicit
// override, then the runtime.home property, then the executable's directory.
func (f *Finder) installConfigPath(log *slog.Logger) (string, bool) {
	home := f.installHome
	if home == "" {
		v, ok, err := f.properties.LookupProperty(RuntimeHomeKey)
		if err != nil {
			f.warn(log, "unable to read runtime home property", "key", RuntimeHomeKey, "error", err)
		} else if ok {
			home = v
		}
	}
	if home == "" {
		exe, err := os.Executable()
		if err != nil {
			log.Debug("unable to determine executable location", "error", err)
			return "", false
		}
		home = filepath.Dir(exe)
	}
	return filepath.Join(home, "lib", f.configName+".properties"), true
}

// fromProcessProperty tries the process property keyed by factoryID. Like
// the installation file, a present non-empty value is a final outcome.
func (f *Finder) fromProcessProperty(ambient types.Loader, factoryID string, log *slog.Logger) (inst any, typeName string, done bool, err error) {
	value, ok, err := f.properties.LookupProperty(factoryID)
	if err != nil {
		f.warn(log, "unable to read process property", "key", factoryID, "error", err)
		return nil, "", false, nil
	}
	if !ok || value == "" {
		return nil, "", false, nil
	}

	inst, err = f.newInstance(factoryID, value, ambient, log)
	return inst, value, true, err
}

// fromModuleResource tries META-INF/services/<factoryID> through the
// module-aware loader. The strategy is best effort; every failure is
// swallowed, instantiation included.
func (f *Finder) fromModuleResource(ctx context.Context, factoryID string, log *slog.Logger) (any, string, bool) {
	if f.modules == nil {
		return nil, "", false
	}
	ml, ok := f.modules.Load(ctx)
	if !ok || ml == nil {
		return nil, "", false
	}

	rc, err := ml.OpenResource(moduleServicePrefix + factoryID)
	if err != nil {
		return nil, "", false
	}
	defer rc.Close()

	scanner := bufio.NewScanner(rc)
	if !scanner.Scan() {
		return nil, "", false
	}
	typeName := strings.TrimSpace(scanner.Text())
	if typeName == "" {
		return nil, "", false
	}

	inst, err := f.newInstance(factoryID, typeName, ml, log)
	if err != nil {
		log.Debug("failed to instantiate module-declared provider",
			"strategy", StrategyModuleResource, "type", typeName, "error", err)
		return nil, "", false
	}
	return inst, typeName, true
}

// finish records the terminal event for an outcome-producing strategy.
func (f *Finder) finish(ctx context.Context, resolutionID, factoryID string, service types.ServiceType, strategy, typeName string, start time.Time, inst any, err error) (any, error) {
	if err != nil {
		f.recordFailure(ctx, resolutionID, factoryID, service, err)
		return nil, err
	}
	f.recordHit(ctx, resolutionID, factoryID, service, strategy, typeName, start)
	return inst, nil
}

// warn logs at Warn severity under the finder's rate limit.
func (f *Finder) warn(log *slog.Logger, msg string, args ...any) {
	if f.warnLimit == nil || f.warnLimit.Allow() {
		log.Warn(msg, args...)
	}
}

func (f *Finder) record(ctx context.Context, event types.ResolutionEvent) {
	if f.collector == nil {
		return
	}
	_ = f.collector.RecordEvent(ctx, event)
}

func (f *Finder) recordHit(ctx context.Context, resolutionID, factoryID string, service types.ServiceType, strategy, typeName string, start time.Time) {
	f.record(ctx, types.ResolutionEvent{
		Type:         types.ResolutionEventHit,
		ResolutionID: resolutionID,
		FactoryID:    factoryID,
		Service:      service,
		Strategy:     strategy,
		TypeName:     typeName,
		Timestamp:    time.Now(),
		Latency:      time.Since(start),
	})
}

func (f *Finder) recordMiss(ctx context.Context, resolutionID, factoryID string, service types.ServiceType, strategy string) {
	f.record(ctx, types.ResolutionEvent{
		Type:         types.ResolutionEventMiss,
		ResolutionID: resolutionID,
		FactoryID:    factoryID,
		Service:      service,
		Strategy:     strategy,
		Timestamp:    time.Now(),
	})
}

func (f *Finder) recordFailure(ctx context.Context, resolutionID, factoryID string, service types.ServiceType, err error) {
	f.record(ctx, types.ResolutionEvent{
		Type:         types.ResolutionEventFailure,
		ResolutionID: resolutionID,
		FactoryID:    factoryID,
		Service:      service,
		Timestamp:    time.Now(),
		ErrorMessage: err.Error(),
	})
}
