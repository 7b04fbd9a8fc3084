// Package registry maps logger names to loggers, with a lazily created
// default logger. A Registry is an explicit, shareable object; the
// package also keeps one lazily initialized process-wide instance for
// callers that want ambient access.
package registry

import (
	"errors"
	"os"
	"sort"
	"sync"

	"github.com/fmtlog/fmtlog/pkg/level"
	"github.com/fmtlog/fmtlog/pkg/logger"
	"github.com/fmtlog/fmtlog/pkg/sink"
)

// DefaultName is the name of the distinguished default logger.
const DefaultName = "default"

// Registry is a concurrency-safe name-to-logger directory. Loggers
// created by the registry are owned by it; explicitly constructed
// loggers registered into it are shared with the caller.
type Registry struct {
	mu      sync.Mutex
	loggers map[string]*logger.Logger
	strict  bool
}

// Option configures a Registry.
type Option func(*Registry)

// WithStrict makes Register fail with DuplicateNameError instead of
// reconfiguring an existing logger in place.
func WithStrict() Option {
	return func(r *Registry) {
		r.strict = true
	}
}

// New creates an empty registry.
func New(opts ...Option) *Registry {
	r := &Registry{loggers: make(map[string]*logger.Logger)}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Default returns the registry's default logger, creating it on first
// access with the built-in pattern, a plain console sink on stdout and
// an info threshold. Creation races are first-writer-wins under the
// registry lock.
func (r *Registry) Default() *logger.Logger {
	r.mu.Lock()
	defer r.mu.Unlock()
	if l, ok := r.loggers[DefaultName]; ok {
		return l
	}
	l, err := logger.New(logger.Config{
		Name:      DefaultName,
		Threshold: level.Info,
		Sinks:     []sink.Sink{sink.NewConsole(os.Stdout)},
	})
	if err != nil {
		// The built-in config is statically valid.
		panic(err)
	}
	r.loggers[DefaultName] = l
	return l
}

// Register creates or replaces the logger named name. When the name is
// already taken, the existing logger is reconfigured in place so every
// previously obtained reference observes the new configuration; in
// strict mode registration fails with DuplicateNameError instead. On
// invalid configuration nothing is registered or mutated.
func (r *Registry) Register(name string, cfg logger.Config) (*logger.Logger, error) {
	if name == "" {
		return nil, logger.ErrEmptyName
	}
	cfg.Name = name

	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.loggers[name]; ok {
		if r.strict {
			return nil, &DuplicateNameError{Name: name}
		}
		if err := existing.Reconfigure(cfg); err != nil {
			return nil, err
		}
		return existing, nil
	}

	l, err := logger.New(cfg)
	if err != nil {
		return nil, err
	}
	r.loggers[name] = l
	return l, nil
}

// Lookup returns the logger named name, or a NotFoundError.
func (r *Registry) Lookup(name string) (*logger.Logger, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if l, ok := r.loggers[name]; ok {
		return l, nil
	}
	return nil, &NotFoundError{Name: name}
}

// GetOrCreate returns the logger named name, creating it with the
// default configuration (built-in pattern, plain console sink on
// stdout, info threshold) when absent. The options apply only on
// creation; an existing logger is returned as-is.
func (r *Registry) GetOrCreate(name string, opts ...logger.Option) (*logger.Logger, error) {
	if name == "" {
		return nil, logger.ErrEmptyName
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if l, ok := r.loggers[name]; ok {
		return l, nil
	}
	l, err := logger.New(logger.Config{
		Name:      name,
		Threshold: level.Info,
		Sinks:     []sink.Sink{sink.NewConsole(os.Stdout)},
	}, opts...)
	if err != nil {
		return nil, err
	}
	r.loggers[name] = l
	return l, nil
}

// Names returns the registered logger names in sorted order.
func (r *Registry) Names() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	names := make([]string, 0, len(r.loggers))
	for name := range r.loggers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Drop removes the logger named name, reporting whether it existed.
// References held elsewhere keep working; the registry just forgets it.
func (r *Registry) Drop(name string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.loggers[name]; !ok {
		return false
	}
	delete(r.loggers, name)
	return true
}

// DropAll removes every registered logger, the default included.
func (r *Registry) DropAll() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.loggers = make(map[string]*logger.Logger)
}

// FlushAll flushes every registered logger, joining any failures.
func (r *Registry) FlushAll() error {
	r.mu.Lock()
	loggers := make([]*logger.Logger, 0, len(r.loggers))
	for _, l := range r.loggers {
		loggers = append(loggers, l)
	}
	r.mu.Unlock()

	var errs []error
	for _, l := range loggers {
		if err := l.Flush(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

var (
	processOnce     sync.Once
	processRegistry *Registry
)

// Process returns the lazily initialized process-wide registry.
func Process() *Registry {
	processOnce.Do(func() {
		processRegistry = New()
	})
	return processRegistry
}
