package bootstrap

import (
	"github.com/arthur-debert/sandbox/pkg/errors"
	"github.com/arthur-debert/sandbox/pkg/registry"
	"github.com/arthur-debert/sandbox/pkg/sandbox"
)

// Observer is called with the module name and its bound dependency names
// right before a factory loaded from the catalog runs.
type Observer func(module string, deps []string)

// Catalog maps manifest names to factories and alias values.
type Catalog struct {
	factories registry.Registry[sandbox.Factory]
	values    registry.Registry[any]
	observer  Observer
}

// NewCatalog returns an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{
		factories: registry.New[sandbox.Factory](),
		values:    registry.New[any](),
	}
}

// AddFactory registers a factory under name.
func (c *Catalog) AddFactory(name string, factory sandbox.Factory) error {
	if factory == nil {
		return errors.Newf(errors.ErrInvalidInput, "factory %s is nil", name).
			WithDetail("factory", name)
	}
	return c.factories.Register(name, factory)
}

// AddValue registers a value manifests can alias.
func (c *Catalog) AddValue(name string, value any) error {
	return c.values.Register(name, value)
}

// Observe sets the function called before each catalog factory runs.
func (c *Catalog) Observe(fn Observer) {
	c.observer = fn
}

// Factory returns the factory registered under name.
func (c *Catalog) Factory(name string) (sandbox.Factory, error) {
	factory, ok := c.factories.Lookup(name)
	if !ok {
		return nil, errors.Newf(errors.ErrNotFound, "factory %s is not in the catalog", name).
			WithDetail("factory", name)
	}
	return factory, nil
}

// Value returns the value registered under name.
func (c *Catalog) Value(name string) (any, error) {
	value, ok := c.values.Lookup(name)
	if !ok {
		return nil, errors.Newf(errors.ErrNotFound, "value %s is not in the catalog", name).
			WithDetail("value", name)
	}
	return value, nil
}

// Factories returns the factory names, sorted.
func (c *Catalog) Factories() []string {
	return c.factories.List()
}

// Values returns the value names, sorted.
func (c *Catalog) Values() []string {
	return c.values.List()
}

// bind returns the factory for module, wrapped with the observer if any.
func (c *Catalog) bind(module, name string) (sandbox.Factory, error) {
	factory, err := c.Factory(name)
	if err != nil {
		return nil, err
	}
	if c.observer == nil {
		return factory, nil
	}
	observe := c.observer
	return func(tb *sandbox.Toolbox, args ...any) (any, error) {
		observe(module, tb.Names())
		return factory(tb, args...)
	}, nil
}
