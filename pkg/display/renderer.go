package display

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/arthur-debert/sandbox/pkg/errors"
	"github.com/beevik/etree"
	"github.com/pelletier/go-toml/v2"
	"github.com/pterm/pterm"
	"gopkg.in/yaml.v3"
)

// Renderer writes reports to w in a fixed format. FormatAuto must be resolved
// before building one; it renders as plain text.
type Renderer struct {
	w      io.Writer
	format Format
	style  styler
}

// NewRenderer creates a renderer for format.
func NewRenderer(w io.Writer, format Format) *Renderer {
	return &Renderer{
		w:      w,
		format: format,
		style:  styler{enabled: format == FormatTerminal},
	}
}

// Format returns the output format.
func (r *Renderer) Format() Format {
	return r.format
}

// Status renders a status report.
func (r *Renderer) Status(report StatusReport) error {
	if r.format.Structured() {
		return r.structured(report)
	}

	var b strings.Builder
	b.WriteString(r.style.render(titleStyle, "Modules") + "\n")
	if len(report.Modules) == 0 {
		b.WriteString(r.style.render(mutedStyle, "  (none registered)") + "\n")
		return r.write(b.String())
	}

	width := 0
	for _, m := range report.Modules {
		width = max(width, len(m.Name))
	}
	for _, m := range report.Modules {
		name := r.style.render(moduleStyle, fmt.Sprintf("%-*s", width, m.Name))
		state := r.style.render(stateStyle(m.State), fmt.Sprintf("%-11s", m.State))
		line := fmt.Sprintf("  %s  %s", name, state)
		if len(m.Requires) > 0 {
			line += "  " + r.style.render(mutedStyle, "requires "+strings.Join(m.Requires, ", "))
		}
		b.WriteString(strings.TrimRight(line, " ") + "\n")
	}
	fmt.Fprintf(&b, "\n%d registered, %d started\n", len(report.Modules), report.Count(StateStarted))
	return r.write(b.String())
}

// Plan renders an instantiation order.
func (r *Renderer) Plan(report PlanReport) error {
	if r.format.Structured() {
		return r.structured(report)
	}

	var b strings.Builder
	title := "Start order"
	if len(report.Targets) > 0 {
		title += " for " + strings.Join(report.Targets, ", ")
	}
	b.WriteString(r.style.render(titleStyle, title) + "\n")
	if len(report.Order) == 0 {
		b.WriteString(r.style.render(mutedStyle, "  nothing to start") + "\n")
	}
	for i, name := range report.Order {
		fmt.Fprintf(&b, "  %d. %s\n", i+1, r.style.render(moduleStyle, name))
	}
	return r.write(b.String())
}

// Check renders the result of checking every module.
func (r *Renderer) Check(report CheckReport) error {
	if r.format.Structured() {
		return r.structured(report)
	}

	var b strings.Builder
	for _, res := range report.Results {
		if res.OK {
			fmt.Fprintf(&b, "%s %s %s\n",
				r.style.render(startedStyle, "✓"),
				r.style.render(moduleStyle, res.Module),
				r.style.render(mutedStyle, strings.Join(res.Plan, " -> ")))
			continue
		}
		fmt.Fprintf(&b, "%s %s %s\n",
			r.style.render(errorStyle, "✗"),
			r.style.render(moduleStyle, res.Module),
			res.Error)
	}
	fmt.Fprintf(&b, "\n%d modules, %d failed\n", len(report.Results), report.Failed)
	return r.write(b.String())
}

// Graph renders a dependency tree.
func (r *Renderer) Graph(root *Node) error {
	switch r.format {
	case FormatGraphML:
		return r.graphML(root)
	case FormatJSON, FormatYAML, FormatTOML:
		return r.structured(root)
	}

	tree := pterm.DefaultTree.WithRoot(pterm.TreeNode{Children: []pterm.TreeNode{r.treeNode(root)}})
	if !r.style.enabled {
		tree = tree.WithTreeStyle(pterm.NewStyle()).WithTextStyle(pterm.NewStyle())
	}
	out, err := tree.Srender()
	if err != nil {
		return errors.Wrap(err, errors.ErrInternal, "failed to render tree")
	}
	return r.write(out)
}

func (r *Renderer) treeNode(n *Node) pterm.TreeNode {
	label := n.Name
	switch n.Kind {
	case KindModule:
		label = r.style.render(moduleStyle, n.Name)
		if n.Started {
			label += " " + r.style.render(startedStyle, "(started)")
		}
	case KindAlias:
		label = r.style.render(mutedStyle, n.Name+" (alias)")
	case KindMissing:
		label = r.style.render(stoppedStyle, n.Name+" (not registered, skipped)")
	case KindCycle:
		label = r.style.render(errorStyle, n.Name+" (cycle)")
	}

	node := pterm.TreeNode{Text: label}
	for _, child := range n.Children {
		node.Children = append(node.Children, r.treeNode(child))
	}
	return node
}

func (r *Renderer) graphML(root *Node) error {
	nodes, edges := root.Flatten()

	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	graphml := doc.CreateElement("graphml")
	graphml.CreateAttr("xmlns", "http://graphml.graphdrawing.org/xmlns")
	addKey(graphml, "kind", "string")
	addKey(graphml, "started", "boolean")

	graph := graphml.CreateElement("graph")
	graph.CreateAttr("id", root.Name)
	graph.CreateAttr("edgedefault", "directed")

	for _, n := range nodes {
		el := graph.CreateElement("node")
		el.CreateAttr("id", n.Name)
		addData(el, "kind", string(n.Kind))
		addData(el, "started", fmt.Sprintf("%t", n.Started))
	}
	for i, e := range edges {
		el := graph.CreateElement("edge")
		el.CreateAttr("id", fmt.Sprintf("e%d", i))
		el.CreateAttr("source", e.From)
		el.CreateAttr("target", e.To)
	}

	doc.Indent(2)
	if _, err := doc.WriteTo(r.w); err != nil {
		return errors.Wrap(err, errors.ErrInternal, "failed to write graphml")
	}
	return nil
}

func addKey(parent *etree.Element, name, typ string) {
	key := parent.CreateElement("key")
	key.CreateAttr("id", name)
	key.CreateAttr("for", "node")
	key.CreateAttr("attr.name", name)
	key.CreateAttr("attr.type", typ)
}

func addData(parent *etree.Element, key, value string) {
	data := parent.CreateElement("data")
	data.CreateAttr("key", key)
	data.SetText(value)
}

// Data renders any value. Text formats fall back to TOML.
func (r *Renderer) Data(v any) error {
	if r.format == FormatText || r.format == FormatTerminal {
		return NewRenderer(r.w, FormatTOML).structured(v)
	}
	return r.structured(v)
}

func (r *Renderer) structured(v any) error {
	var (
		out []byte
		err error
	)
	switch r.format {
	case FormatJSON:
		out, err = json.MarshalIndent(v, "", "  ")
		out = append(out, '\n')
	case FormatYAML:
		out, err = yaml.Marshal(v)
	case FormatTOML:
		out, err = toml.Marshal(v)
	default:
		return errors.Newf(errors.ErrInvalidInput, "format %s cannot render this report", r.format).
			WithDetail("format", r.format.String())
	}
	if err != nil {
		return errors.Wrapf(err, errors.ErrInternal, "failed to encode %s", r.format)
	}
	return r.write(string(out))
}

func (r *Renderer) write(s string) error {
	_, err := io.WriteString(r.w, s)
	return err
}
