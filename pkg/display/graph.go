package display

import (
	"github.com/arthur-debert/sandbox/pkg/errors"
	"github.com/arthur-debert/sandbox/pkg/sandbox"
)

// NodeKind tells what a graph node stands for.
type NodeKind string

const (
	KindModule NodeKind = "module"
	// KindAlias is a value injected through Instances.
	KindAlias NodeKind = "alias"
	// KindMissing is a reference to a name with no startable module; it is
	// skipped when the toolbox is built.
	KindMissing NodeKind = "missing"
	// KindCycle closes a dependency cycle; its children are not expanded.
	KindCycle NodeKind = "cycle"
)

// Node is one vertex of a dependency tree.
type Node struct {
	Name     string   `json:"name" yaml:"name" toml:"name"`
	Kind     NodeKind `json:"kind" yaml:"kind" toml:"kind"`
	Started  bool     `json:"started,omitempty" yaml:"started,omitempty" toml:"started,omitempty"`
	Children []*Node  `json:"children,omitempty" yaml:"children,omitempty" toml:"children,omitempty"`
}

// BuildGraph returns the dependency tree rooted at name. Shared dependencies
// appear under every module that requires them.
func BuildGraph(sb *sandbox.Sandbox, name string) (*Node, error) {
	if _, ok := sb.Module(name); !ok {
		return nil, errors.Newf(errors.ErrUnknownModule, "module %s is not registered", name).
			WithDetail("module", name)
	}
	return buildNode(sb, name, nil), nil
}

func buildNode(sb *sandbox.Sandbox, name string, path []string) *Node {
	mod, ok := sb.Module(name)
	if !ok || !mod.Startable() {
		return &Node{Name: name, Kind: KindMissing}
	}
	for _, p := range path {
		if p == name {
			return &Node{Name: name, Kind: KindCycle}
		}
	}

	node := &Node{Name: name, Kind: KindModule, Started: mod.Started()}
	next := append(append([]string(nil), path...), name)

	for _, dep := range mod.Requires() {
		if dep.IsRef() {
			node.Children = append(node.Children, buildNode(sb, dep.Name(), next))
			continue
		}
		for _, alias := range dep.Aliases() {
			node.Children = append(node.Children, &Node{Name: alias, Kind: KindAlias})
		}
	}
	return node
}

// Edge is a directed dependency from a module to what it requires.
type Edge struct {
	From string
	To   string
}

// Flatten returns the distinct nodes and edges of the tree, in depth-first
// order. Alias nodes get the id "<module>.<alias>" since aliases are local to
// the module that declares them.
func (n *Node) Flatten() ([]*Node, []Edge) {
	var nodes []*Node
	var edges []Edge
	seenNode := make(map[string]bool)
	seenEdge := make(map[Edge]bool)

	var walk func(node *Node, id string)
	walk = func(node *Node, id string) {
		if !seenNode[id] {
			seenNode[id] = true
			nodes = append(nodes, &Node{Name: id, Kind: node.Kind, Started: node.Started})
		}
		for _, child := range node.Children {
			childID := child.Name
			if child.Kind == KindAlias {
				childID = id + "." + child.Name
			}
			edge := Edge{From: id, To: childID}
			if !seenEdge[edge] {
				seenEdge[edge] = true
				edges = append(edges, edge)
			}
			walk(child, childID)
		}
	}
	walk(n, n.Name)
	return nodes, edges
}
