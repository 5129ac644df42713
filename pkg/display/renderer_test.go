package display_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/arthur-debert/sandbox/pkg/display"
	"github.com/arthur-debert/sandbox/pkg/errors"
	"github.com/arthur-debert/sandbox/pkg/sandbox"
	"github.com/beevik/etree"
	"github.com/pelletier/go-toml/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func value(v any) sandbox.Factory {
	return func(*sandbox.Toolbox, ...any) (any, error) { return v, nil }
}

// fixture registers App -> Store -> Config, App -> {clock}, App -> Metrics
// (unregistered), a Ghost record without factory and a Loop cycle.
func fixture(t *testing.T) *sandbox.Sandbox {
	t.Helper()
	sb := sandbox.New(sandbox.WithLogger(zerolog.Nop()))
	_, err := sb.Register("Config", value("cfg"))
	require.NoError(t, err)
	_, err = sb.Register("Store", value("store"), sandbox.Ref("Config"))
	require.NoError(t, err)
	_, err = sb.Register("App", value("app"),
		sandbox.Ref("Store"), sandbox.Ref("Metrics"), sandbox.Instances(map[string]any{"clock": "utc"}))
	require.NoError(t, err)
	_, err = sb.Register("Ghost", nil)
	require.NoError(t, err)
	_, err = sb.Register("Loop", value("loop"), sandbox.Ref("Loop"))
	require.NoError(t, err)

	_, err = sb.Start("Config")
	require.NoError(t, err)
	return sb
}

func TestCollectStatus(t *testing.T) {
	report := display.CollectStatus(fixture(t))

	require.Len(t, report.Modules, 5)
	assert.Equal(t, display.ModuleStatus{
		Name:     "App",
		State:    display.StateStopped,
		Requires: []string{"Store", "Metrics", "{clock}"},
	}, report.Modules[0])
	assert.Equal(t, display.StateStarted, report.Modules[1].State)
	assert.Equal(t, "Config", report.Modules[1].Name)
	assert.Equal(t, display.StateUnstartable, report.Modules[2].State)
	assert.Equal(t, 1, report.Count(display.StateStarted))
}

func TestRenderStatusText(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, display.NewRenderer(&buf, display.FormatText).Status(display.CollectStatus(fixture(t))))

	out := buf.String()
	assert.Contains(t, out, "Modules\n")
	assert.Contains(t, out, "  App     stopped      requires Store, Metrics, {clock}\n")
	assert.Contains(t, out, "  Config  started\n")
	assert.Contains(t, out, "  Ghost   unstartable\n")
	assert.Contains(t, out, "5 registered, 1 started")
	assert.NotContains(t, out, "\x1b[", "plain text has no escape codes")

	buf.Reset()
	require.NoError(t, display.NewRenderer(&buf, display.FormatText).Status(display.StatusReport{}))
	assert.Contains(t, buf.String(), "(none registered)")
}

func TestRenderStructured(t *testing.T) {
	report := display.CollectStatus(fixture(t))

	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, display.NewRenderer(&buf, display.FormatJSON).Status(report))
		var got display.StatusReport
		require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
		assert.Equal(t, report, got)
	})

	t.Run("yaml", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, display.NewRenderer(&buf, display.FormatYAML).Status(report))
		var got display.StatusReport
		require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))
		assert.Equal(t, report, got)
	})

	t.Run("toml", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, display.NewRenderer(&buf, display.FormatTOML).Status(report))
		assert.Contains(t, buf.String(), "[[modules]]")
		var got display.StatusReport
		require.NoError(t, toml.Unmarshal(buf.Bytes(), &got))
		assert.Equal(t, report, got)
	})

	t.Run("graphml is for graphs only", func(t *testing.T) {
		var buf bytes.Buffer
		err := display.NewRenderer(&buf, display.FormatGraphML).Status(report)
		assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput), "got %v", err)
	})
}

func TestPlan(t *testing.T) {
	sb := fixture(t)

	report, err := display.CollectPlan(sb, []string{"Store", "App"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Store", "App"}, report.Order)

	var buf bytes.Buffer
	require.NoError(t, display.NewRenderer(&buf, display.FormatText).Plan(report))
	assert.Equal(t, "Start order for Store, App\n  1. Store\n  2. App\n", buf.String())

	_, err = display.CollectPlan(sb, []string{"Loop"})
	assert.True(t, errors.IsErrorCode(err, errors.ErrCyclicDependency), "got %v", err)

	buf.Reset()
	require.NoError(t, display.NewRenderer(&buf, display.FormatText).Plan(display.PlanReport{}))
	assert.Equal(t, "Start order\n  nothing to start\n", buf.String())
}

func TestCheck(t *testing.T) {
	report := display.CollectCheck(fixture(t))

	assert.False(t, report.OK())
	assert.Equal(t, 2, report.Failed)

	byModule := make(map[string]display.CheckResult)
	for _, res := range report.Results {
		byModule[res.Module] = res
	}
	assert.True(t, byModule["App"].OK)
	assert.Equal(t, []string{"Store", "App"}, byModule["App"].Plan)
	assert.Equal(t, "CYCLIC_DEPENDENCY", byModule["Loop"].Code)
	assert.Equal(t, "UNKNOWN_MODULE", byModule["Ghost"].Code)
	assert.True(t, byModule["Config"].OK)
	assert.Empty(t, byModule["Config"].Plan, "already started")

	var buf bytes.Buffer
	require.NoError(t, display.NewRenderer(&buf, display.FormatText).Check(report))
	assert.Contains(t, buf.String(), "✓ App Store -> App\n")
	assert.Contains(t, buf.String(), "✗ Loop ")
	assert.Contains(t, buf.String(), "5 modules, 2 failed")
}

func TestBuildGraph(t *testing.T) {
	sb := fixture(t)

	root, err := display.BuildGraph(sb, "App")
	require.NoError(t, err)
	assert.Equal(t, &display.Node{
		Name: "App",
		Kind: display.KindModule,
		Children: []*display.Node{
			{Name: "Store", Kind: display.KindModule, Children: []*display.Node{
				{Name: "Config", Kind: display.KindModule, Started: true},
			}},
			{Name: "Metrics", Kind: display.KindMissing},
			{Name: "clock", Kind: display.KindAlias},
		},
	}, root)

	loop, err := display.BuildGraph(sb, "Loop")
	require.NoError(t, err)
	require.Len(t, loop.Children, 1)
	assert.Equal(t, display.KindCycle, loop.Children[0].Kind)

	_, err = display.BuildGraph(sb, "Nope")
	assert.True(t, errors.IsErrorCode(err, errors.ErrUnknownModule))
}

func TestFlattenDeduplicates(t *testing.T) {
	sb := sandbox.New(sandbox.WithLogger(zerolog.Nop()))
	_, _ = sb.Register("D", value(1))
	_, _ = sb.Register("B", value(1), sandbox.Ref("D"))
	_, _ = sb.Register("C", value(1), sandbox.Ref("D"))
	_, _ = sb.Register("A", value(1), sandbox.Refs("B", "C")...)

	root, err := display.BuildGraph(sb, "A")
	require.NoError(t, err)

	nodes, edges := root.Flatten()
	names := make([]string, 0, len(nodes))
	for _, n := range nodes {
		names = append(names, n.Name)
	}
	assert.Equal(t, []string{"A", "B", "D", "C"}, names)
	assert.Equal(t, []display.Edge{
		{From: "A", To: "B"},
		{From: "B", To: "D"},
		{From: "A", To: "C"},
		{From: "C", To: "D"},
	}, edges)
}

func TestRenderGraph(t *testing.T) {
	root, err := display.BuildGraph(fixture(t), "App")
	require.NoError(t, err)

	t.Run("tree", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, display.NewRenderer(&buf, display.FormatText).Graph(root))
		out := buf.String()
		for _, want := range []string{"App", "Store", "Config (started)", "Metrics (not registered, skipped)", "clock (alias)"} {
			assert.Contains(t, out, want)
		}
	})

	t.Run("graphml", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, display.NewRenderer(&buf, display.FormatGraphML).Graph(root))

		doc := etree.NewDocument()
		require.NoError(t, doc.ReadFromBytes(buf.Bytes()))
		graph := doc.FindElement("/graphml/graph")
		require.NotNil(t, graph)
		assert.Equal(t, "directed", graph.SelectAttrValue("edgedefault", ""))
		assert.Len(t, graph.SelectElements("node"), 5)
		assert.Len(t, graph.SelectElements("edge"), 4)

		alias := graph.FindElement("node[@id='App.clock']")
		require.NotNil(t, alias)
		assert.Equal(t, "alias", alias.FindElement("data[@key='kind']").Text())
	})

	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, display.NewRenderer(&buf, display.FormatJSON).Graph(root))
		var got display.Node
		require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
		assert.Equal(t, *root, got)
	})
}

func TestRenderData(t *testing.T) {
	type settings struct {
		Format string `toml:"format" json:"format"`
	}

	var buf bytes.Buffer
	require.NoError(t, display.NewRenderer(&buf, display.FormatText).Data(settings{Format: "auto"}))
	var got settings
	require.NoError(t, toml.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, "auto", got.Format)

	buf.Reset()
	require.NoError(t, display.NewRenderer(&buf, display.FormatJSON).Data(settings{Format: "auto"}))
	assert.JSONEq(t, `{"format":"auto"}`, buf.String())
}

func TestFormatError(t *testing.T) {
	err := errors.New(errors.ErrUnknownModule, "module X could not be started")
	assert.Equal(t, "Error: [UNKNOWN_MODULE] module X could not be started", display.FormatError(err, false))
}
