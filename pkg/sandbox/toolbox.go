package sandbox

import (
	"fmt"
	"sort"

	"github.com/arthur-debert/sandbox/pkg/errors"
)

// Names of the members every Prototype starts with.
const (
	LibMember      = "lib"
	InstanceMember = "instance"
)

// Prototype holds the members shared by every Toolbox of one Sandbox.
type Prototype struct {
	members map[string]any
}

func newPrototype() *Prototype {
	return &Prototype{members: make(map[string]any)}
}

// Set adds or replaces a member. It bypasses the conflict check done by
// Sandbox.Extend.
func (p *Prototype) Set(name string, member any) {
	p.members[name] = member
}

// Get returns a member.
func (p *Prototype) Get(name string) (any, bool) {
	member, ok := p.members[name]
	return member, ok
}

// Has reports whether name is a member.
func (p *Prototype) Has(name string) bool {
	_, ok := p.members[name]
	return ok
}

// Names returns the member names, sorted.
func (p *Prototype) Names() []string {
	return sortedKeys(p.members)
}

// Toolbox is the per-instantiation context handed to a factory. It holds the
// module's resolved dependencies and falls back to the sandbox Prototype for
// everything else. A factory must not keep it after returning.
type Toolbox struct {
	bindings map[string]any
	proto    *Prototype
}

func newToolbox(proto *Prototype) *Toolbox {
	return &Toolbox{
		bindings: make(map[string]any),
		proto:    proto,
	}
}

func (tb *Toolbox) bind(name string, value any) error {
	if tb.Has(name) {
		return conflictError(name)
	}
	tb.bindings[name] = value
	return nil
}

func conflictError(name string) *errors.SandboxError {
	return errors.Newf(errors.ErrContextConflict, "%s already exists in the toolbox", name).
		WithDetail("key", name)
}

// Get returns the dependency or prototype member bound to name.
func (tb *Toolbox) Get(name string) (any, bool) {
	if v, ok := tb.bindings[name]; ok {
		return v, true
	}
	return tb.proto.Get(name)
}

// Has reports whether name resolves in this toolbox.
func (tb *Toolbox) Has(name string) bool {
	_, ok := tb.Get(name)
	return ok
}

// MustGet is Get for factories that declared name as a dependency. It panics
// when name does not resolve.
func (tb *Toolbox) MustGet(name string) any {
	v, ok := tb.Get(name)
	if !ok {
		panic(fmt.Sprintf("sandbox: %s is not in the toolbox", name))
	}
	return v
}

// Names returns the names bound by the dependency list, sorted. Prototype
// members are not included.
func (tb *Toolbox) Names() []string {
	return sortedKeys(tb.bindings)
}

// Lib returns the base library handle given to the sandbox.
func (tb *Toolbox) Lib() any {
	v, _ := tb.proto.Get(LibMember)
	return v
}

// Instance returns the instance of an already-started module, or nil. Modules
// should declare dependencies instead; this exists for late lookups.
func (tb *Toolbox) Instance(name string) any {
	v, _ := tb.proto.Get(InstanceMember)
	if lookup, ok := v.(func(string) any); ok {
		return lookup(name)
	}
	return nil
}

// Get returns the value bound to name converted to T.
func Get[T any](tb *Toolbox, name string) (T, error) {
	var zero T
	v, ok := tb.Get(name)
	if !ok {
		return zero, errors.Newf(errors.ErrNotFound, "%s is not in the toolbox", name).
			WithDetail("key", name)
	}
	typed, ok := v.(T)
	if !ok {
		return zero, errors.Newf(errors.ErrInvalidInput, "%s is a %T, not a %T", name, v, zero).
			WithDetail("key", name)
	}
	return typed, nil
}

func sortedKeys[V any](m map[string]V) []string {
	names := make([]string, 0, len(m))
	for k := range m {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}
