package testutil

import "github.com/arthur-debert/sandbox/pkg/sandbox"

// Instance is the default value built by Counter factories.
type Instance struct {
	Name string
	From string
}

// Counter records how many times each factory ran, in order.
type Counter struct {
	Calls map[string]int
	Order []string
}

func NewCounter() *Counter {
	return &Counter{Calls: make(map[string]int)}
}

// Factory counts every run of name. A nil fn builds an *Instance.
func (c *Counter) Factory(name string, fn func(tb *sandbox.Toolbox, args ...any) any) sandbox.Factory {
	return func(tb *sandbox.Toolbox, args ...any) (any, error) {
		c.Calls[name]++
		c.Order = append(c.Order, name)
		if fn == nil {
			return &Instance{Name: name}, nil
		}
		return fn(tb, args...), nil
	}
}

// Hooked is a module instance that records its lifecycle hooks.
type Hooked struct {
	Name        string
	InitArgs    []any
	Inits       int
	DestroyArgs []any
	Destroys    int
	InitErr     error
	DestroyErr  error
}

func (h *Hooked) Init(args ...any) error {
	h.Inits++
	h.InitArgs = args
	return h.InitErr
}

func (h *Hooked) Destroy(args ...any) error {
	h.Destroys++
	h.DestroyArgs = args
	return h.DestroyErr
}

// Factory returns a factory that always builds h.
func (h *Hooked) Factory() sandbox.Factory {
	return func(*sandbox.Toolbox, ...any) (any, error) {
		return h, nil
	}
}
