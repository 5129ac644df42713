package sandbox

import (
	stderrors "errors"

	"github.com/arthur-debert/sandbox/pkg/errors"
	"github.com/arthur-debert/sandbox/pkg/logging"
	"github.com/arthur-debert/sandbox/pkg/registry"
	"github.com/rs/zerolog"
)

// Sandbox is the module registry. Build one with New and pass it to whatever
// needs to register or start modules.
type Sandbox struct {
	modules  registry.Registry[*Module]
	proto    *Prototype
	logger   zerolog.Logger
	building map[string]bool
}

// Option configures a Sandbox.
type Option func(*Sandbox)

// WithLogger sets the logger used for lifecycle events.
func WithLogger(logger zerolog.Logger) Option {
	return func(s *Sandbox) { s.logger = logger }
}

// WithLibrary sets the base library handle exposed as the "lib" member.
func WithLibrary(lib any) Option {
	return func(s *Sandbox) { s.proto.Set(LibMember, lib) }
}

// New creates an empty Sandbox.
func New(opts ...Option) *Sandbox {
	s := &Sandbox{
		modules:  registry.New[*Module](),
		proto:    newPrototype(),
		logger:   logging.GetLogger("sandbox"),
		building: make(map[string]bool),
	}
	s.proto.Set(LibMember, nil)
	s.proto.Set(InstanceMember, func(name string) any {
		instance, _ := s.Instance(name)
		return instance
	})
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Register stores a module that is not started yet. Registering a name twice
// fails with ErrDuplicateModule and leaves the first registration in place.
func (s *Sandbox) Register(name string, factory Factory, requires ...Dependency) (*Module, error) {
	if name == "" {
		return nil, errors.New(errors.ErrInvalidInput, "module name cannot be empty")
	}
	if s.modules.Has(name) {
		return nil, errors.Newf(errors.ErrDuplicateModule, "module %s is already registered", name).
			WithDetail("module", name)
	}

	mod := &Module{
		name:     name,
		factory:  factory,
		requires: append([]Dependency(nil), requires...),
	}
	if err := s.modules.Register(name, mod); err != nil {
		return nil, err
	}

	s.logger.Debug().
		Str("module", name).
		Int("requires", len(requires)).
		Int("registered", s.modules.Count()).
		Msg("Module registered")
	return mod, nil
}

// Start returns the module instance, creating it and its missing dependencies
// first if needed. The factory of a started module is never called again
// until the module is stopped.
func (s *Sandbox) Start(name string, args ...any) (any, error) {
	mod, ok := s.modules.Lookup(name)
	if !ok || mod.factory == nil {
		return nil, errors.Newf(errors.ErrUnknownModule, "module %s could not be started", name).
			WithDetail("module", name)
	}
	if mod.started {
		return mod.instance, nil
	}
	if s.building[name] {
		return nil, cycleError([]string{name, name})
	}

	if _, err := s.plan(mod.requires, []string{name}); err != nil {
		return nil, err
	}
	return s.instantiate(mod, args, true)
}

// Run calls factory with a Toolbox built from requires without registering
// anything. The factory result is returned as is.
func (s *Sandbox) Run(factory Factory, requires ...Dependency) (any, error) {
	return s.RunWith(factory, requires)
}

// RunWith is Run with extra factory arguments.
func (s *Sandbox) RunWith(factory Factory, requires []Dependency, args ...any) (any, error) {
	if factory == nil {
		return nil, errors.New(errors.ErrRun, "module could not be run: no factory")
	}
	if _, err := s.plan(requires, nil); err != nil {
		return nil, err
	}

	tb, err := s.build(requires)
	if err != nil {
		return nil, err
	}

	instance, err := factory(tb, args...)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrFactory, "anonymous module failed")
	}
	return instance, nil
}

// Use registers a module and starts it right away.
func (s *Sandbox) Use(name string, factory Factory, requires []Dependency, args ...any) (any, error) {
	if _, err := s.Register(name, factory, requires...); err != nil {
		return nil, err
	}
	return s.Start(name, args...)
}

// StartAll starts every registered module, in name order. It stops at the
// first failure.
func (s *Sandbox) StartAll() error {
	done := logging.LogOperationStart(s.logger, "startAll")
	defer done()

	for _, name := range s.modules.List() {
		// a factory may have removed it meanwhile
		if !s.modules.Has(name) {
			continue
		}
		if _, err := s.Start(name); err != nil {
			return err
		}
	}
	return nil
}

// Stop destroys the module instance. The record stays registered so the
// module can be started again. Unknown or stopped modules are ignored.
func (s *Sandbox) Stop(name string, args ...any) error {
	mod, ok := s.modules.Lookup(name)
	if !ok || !mod.started {
		return nil
	}

	instance := mod.instance
	mod.reset()
	s.logger.Debug().Str("module", name).Msg("Module stopped")

	if d, ok := instance.(Destroyer); ok {
		if err := d.Destroy(args...); err != nil {
			return errors.Wrapf(err, errors.ErrDestroy, "destroy for module %s failed", name).
				WithDetail("module", name)
		}
	}
	return nil
}

// StopAll stops every module. Hook failures are collected and every module
// is stopped regardless.
func (s *Sandbox) StopAll() error {
	var errs []error
	for _, name := range s.modules.List() {
		if err := s.Stop(name); err != nil {
			errs = append(errs, err)
		}
	}
	return stderrors.Join(errs...)
}

// Remove stops the module and deletes its record.
func (s *Sandbox) Remove(name string, args ...any) error {
	err := s.Stop(name, args...)
	if rmErr := s.modules.Remove(name); rmErr != nil {
		if !errors.IsErrorCode(rmErr, errors.ErrNotFound) {
			err = stderrors.Join(err, rmErr)
		}
		return err
	}
	s.logger.Debug().Str("module", name).Int("registered", s.modules.Count()).Msg("Module removed")
	return err
}

// RemoveAll removes every module, leaving the sandbox empty.
func (s *Sandbox) RemoveAll() error {
	var errs []error
	for _, name := range s.modules.List() {
		if err := s.Remove(name); err != nil {
			errs = append(errs, err)
		}
	}
	return stderrors.Join(errs...)
}

// Instance returns the instance of a started module without starting it.
func (s *Sandbox) Instance(name string) (any, bool) {
	mod, ok := s.modules.Lookup(name)
	if !ok || !mod.started {
		return nil, false
	}
	return mod.instance, true
}

// Module returns the record registered under name.
func (s *Sandbox) Module(name string) (*Module, bool) {
	return s.modules.Lookup(name)
}

// Modules returns the registered module names, sorted.
func (s *Sandbox) Modules() []string {
	return s.modules.List()
}

// Prototype returns the members shared by every Toolbox.
func (s *Sandbox) Prototype() *Prototype {
	return s.proto
}
