package bootstrap

import (
	"github.com/arthur-debert/sandbox/pkg/config"
	"github.com/arthur-debert/sandbox/pkg/sandbox"
)

// Probe is the instance built by a tracing catalog factory.
type Probe struct {
	Factory string
	Deps    []string
	Args    []any
}

// Step is one recorded instantiation.
type Step struct {
	Module string
	Deps   []string
}

// Recorder collects the instantiations of a tracing catalog.
type Recorder struct {
	steps []Step
}

// Steps returns the instantiations in order.
func (r *Recorder) Steps() []Step {
	return append([]Step(nil), r.steps...)
}

// Order returns the instantiated module names in order.
func (r *Recorder) Order() []string {
	order := make([]string, 0, len(r.steps))
	for _, step := range r.steps {
		order = append(order, step.Module)
	}
	return order
}

// Reset forgets the recorded steps.
func (r *Recorder) Reset() {
	r.steps = nil
}

// TracingCatalog returns a catalog that satisfies every factory and value
// named by specs with probes, so a manifest can be started without its real
// code. The Recorder sees every instantiation.
func TracingCatalog(specs []config.ModuleSpec) (*Catalog, *Recorder) {
	catalog := NewCatalog()
	rec := &Recorder{}

	for _, spec := range specs {
		name := spec.FactoryName()
		if !catalog.factories.Has(name) {
			_ = catalog.AddFactory(name, probeFactory(name))
		}
		for _, valueName := range spec.Aliases {
			if !catalog.values.Has(valueName) {
				_ = catalog.AddValue(valueName, valueName)
			}
		}
	}

	catalog.Observe(func(module string, deps []string) {
		rec.steps = append(rec.steps, Step{Module: module, Deps: deps})
	})
	return catalog, rec
}

func probeFactory(name string) sandbox.Factory {
	return func(tb *sandbox.Toolbox, args ...any) (any, error) {
		return &Probe{Factory: name, Deps: tb.Names(), Args: args}, nil
	}
}
