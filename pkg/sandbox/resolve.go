package sandbox

import (
	"strings"

	"github.com/arthur-debert/sandbox/pkg/errors"
)

// Plan returns the modules that starting name would instantiate, dependencies
// first and name last. Nothing is instantiated. A started module plans to an
// empty list.
func (s *Sandbox) Plan(name string) ([]string, error) {
	mod, ok := s.modules.Lookup(name)
	if !ok || !mod.Startable() {
		return nil, errors.Newf(errors.ErrUnknownModule, "module %s could not be planned", name).
			WithDetail("module", name)
	}
	if mod.started {
		return []string{}, nil
	}
	order, err := s.plan(mod.requires, []string{name})
	if err != nil {
		return nil, err
	}
	return append(order, name), nil
}

// PlanRequires is Plan for an anonymous module, as run by Run.
func (s *Sandbox) PlanRequires(requires ...Dependency) ([]string, error) {
	return s.plan(requires, nil)
}

func (s *Sandbox) plan(requires []Dependency, path []string) ([]string, error) {
	p := &planner{sandbox: s, planned: make(map[string]bool), order: []string{}}
	if err := p.walk(requires, path); err != nil {
		return nil, err
	}
	return p.order, nil
}

// planner validates a dependency tree the way build will walk it: same keys,
// same skips. It catches conflicts and cycles before any factory runs.
type planner struct {
	sandbox *Sandbox
	planned map[string]bool
	order   []string
}

func (p *planner) walk(requires []Dependency, path []string) error {
	tb := newToolbox(p.sandbox.proto)

	for _, dep := range requires {
		switch dep.kind {
		case moduleRef:
			mod, ok := p.sandbox.modules.Lookup(dep.name)
			if !ok || !mod.Startable() {
				continue
			}
			if err := tb.bind(dep.name, nil); err != nil {
				return withPath(err, path)
			}
			if mod.started || p.planned[dep.name] {
				continue
			}
			if contains(path, dep.name) || p.sandbox.building[dep.name] {
				return cycleError(append(append([]string(nil), path...), dep.name))
			}
			next := append(append([]string(nil), path...), dep.name)
			if err := p.walk(mod.requires, next); err != nil {
				return err
			}
			p.planned[dep.name] = true
			p.order = append(p.order, dep.name)

		case instanceAlias:
			for _, alias := range dep.Aliases() {
				if err := tb.bind(alias, nil); err != nil {
					return withPath(err, path)
				}
			}
		}
	}
	return nil
}

// build resolves requires into a fresh Toolbox, instantiating dependencies
// that are not started yet.
func (s *Sandbox) build(requires []Dependency) (*Toolbox, error) {
	tb := newToolbox(s.proto)

	for _, dep := range requires {
		switch dep.kind {
		case moduleRef:
			mod, ok := s.modules.Lookup(dep.name)
			if !ok || !mod.Startable() {
				s.logger.Trace().Str("dependency", dep.name).Msg("Skipping unregistered dependency")
				continue
			}
			if tb.Has(dep.name) {
				return nil, conflictError(dep.name)
			}
			instance, err := s.instantiate(mod, nil, false)
			if err != nil {
				return nil, err
			}
			if err := tb.bind(dep.name, instance); err != nil {
				return nil, err
			}

		case instanceAlias:
			for _, alias := range dep.Aliases() {
				if err := tb.bind(alias, dep.instances[alias]); err != nil {
					return nil, err
				}
			}
		}
	}
	return tb, nil
}

// instantiate builds mod and caches the result. Only an explicitly started
// module gets its Init hook; dependencies are cached and bound as built.
func (s *Sandbox) instantiate(mod *Module, args []any, runInit bool) (any, error) {
	if mod.started {
		return mod.instance, nil
	}
	if s.building[mod.name] {
		return nil, cycleError([]string{mod.name, mod.name})
	}

	s.building[mod.name] = true
	defer delete(s.building, mod.name)

	tb, err := s.build(mod.requires)
	if err != nil {
		return nil, err
	}

	instance, err := mod.factory(tb, args...)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFactory, "factory for module %s failed", mod.name).
			WithDetail("module", mod.name)
	}

	mod.instance = instance
	mod.started = true

	if init, ok := instance.(Initializer); ok && runInit {
		if err := init.Init(args...); err != nil {
			mod.reset()
			return nil, errors.Wrapf(err, errors.ErrInit, "init for module %s failed", mod.name).
				WithDetail("module", mod.name)
		}
	}

	s.logger.Debug().Str("module", mod.name).Msg("Module started")
	return instance, nil
}

func cycleError(path []string) error {
	return errors.Newf(errors.ErrCyclicDependency, "cyclic dependency: %s", strings.Join(path, " -> ")).
		WithDetail("module", path[0]).
		WithDetail("path", path)
}

func withPath(err error, path []string) error {
	if sbErr, ok := err.(*errors.SandboxError); ok && len(path) > 0 {
		sbErr.WithDetail("module", path[len(path)-1])
	}
	return err
}

func contains(names []string, name string) bool {
	for _, n := range names {
		if n == name {
			return true
		}
	}
	return false
}
