package sandbox

import (
	"fmt"
	"strings"
)

type dependencyKind int

const (
	moduleRef dependencyKind = iota
	instanceAlias
)

// Dependency is one entry of a module's requires list: either a reference to
// another registered module or a set of aliased instances.
type Dependency struct {
	kind      dependencyKind
	name      string
	instances map[string]any
}

// Ref declares a dependency on the module registered under name.
func Ref(name string) Dependency {
	return Dependency{kind: moduleRef, name: name}
}

// Refs is shorthand for a list of module references.
func Refs(names ...string) []Dependency {
	deps := make([]Dependency, 0, len(names))
	for _, name := range names {
		deps = append(deps, Ref(name))
	}
	return deps
}

// Instances declares values injected under their map keys without going
// through the registry. The map is copied.
func Instances(values map[string]any) Dependency {
	cp := make(map[string]any, len(values))
	for k, v := range values {
		cp[k] = v
	}
	return Dependency{kind: instanceAlias, instances: cp}
}

// IsRef reports whether d references a module.
func (d Dependency) IsRef() bool { return d.kind == moduleRef }

// Name is the referenced module name; empty for instance aliases.
func (d Dependency) Name() string { return d.name }

// Aliases returns the alias names of an Instances dependency, sorted.
func (d Dependency) Aliases() []string {
	return sortedKeys(d.instances)
}

func (d Dependency) String() string {
	switch d.kind {
	case moduleRef:
		return d.name
	case instanceAlias:
		return fmt.Sprintf("{%s}", strings.Join(d.Aliases(), ", "))
	default:
		return "<invalid dependency>"
	}
}
