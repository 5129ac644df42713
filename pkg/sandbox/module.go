package sandbox

// Factory creates a module instance from its Toolbox. Extra args are the ones
// given to Start or Use; dependencies started implicitly receive none.
type Factory func(tb *Toolbox, args ...any) (any, error)

// Initializer is implemented by instances that need a hook right after Start
// caches them.
type Initializer interface {
	Init(args ...any) error
}

// Destroyer is implemented by instances that release resources on stop.
type Destroyer interface {
	Destroy(args ...any) error
}

// Module is a registry record. The registry owns it; callers get read access.
type Module struct {
	name     string
	factory  Factory
	requires []Dependency
	instance any
	started  bool
}

// Name returns the registration name.
func (m *Module) Name() string { return m.name }

// Requires returns a copy of the declared dependencies.
func (m *Module) Requires() []Dependency {
	return append([]Dependency(nil), m.requires...)
}

// Startable reports whether the module has a factory.
func (m *Module) Startable() bool { return m.factory != nil }

// Started reports whether the module currently holds an instance. A factory
// returning nil still counts as started.
func (m *Module) Started() bool { return m.started }

// Instance returns the cached instance, or nil when not started.
func (m *Module) Instance() any { return m.instance }

func (m *Module) reset() {
	m.instance = nil
	m.started = false
}
