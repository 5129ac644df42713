package cli

import (
	"os"

	"github.com/arthur-debert/sandbox/pkg/bootstrap"
	"github.com/arthur-debert/sandbox/pkg/config"
	"github.com/arthur-debert/sandbox/pkg/display"
	"github.com/arthur-debert/sandbox/pkg/logging"
	"github.com/arthur-debert/sandbox/pkg/sandbox"
	"github.com/spf13/cobra"
)

// environment is a sandbox loaded from the manifest with probe factories.
type environment struct {
	cfg      *config.Config
	sandbox  *sandbox.Sandbox
	recorder *bootstrap.Recorder
	renderer *display.Renderer
}

func (o *rootOptions) environment(cmd *cobra.Command) (*environment, error) {
	renderer, err := o.renderer(cmd)
	if err != nil {
		return nil, err
	}

	sb := sandbox.New(sandbox.WithLogger(logging.GetLogger("sandbox")))
	catalog, rec := bootstrap.TracingCatalog(o.cfg.Modules)
	if err := bootstrap.Load(sb, o.cfg, catalog); err != nil {
		return nil, err
	}

	return &environment{
		cfg:      o.cfg,
		sandbox:  sb,
		recorder: rec,
		renderer: renderer,
	}, nil
}

// renderer picks the --format flag, then the configured format. Auto is
// resolved against stdout; any other writer gets plain text.
func (o *rootOptions) renderer(cmd *cobra.Command) (*display.Renderer, error) {
	name := o.format
	if name == "" && o.cfg != nil {
		name = o.cfg.Output.Format
	}

	format, err := display.ParseFormat(name)
	if err != nil {
		return nil, err
	}

	out := cmd.OutOrStdout()
	if file, ok := out.(*os.File); ok {
		format = display.Resolve(format, file)
	} else if format == display.FormatAuto {
		format = display.FormatText
	}
	return display.NewRenderer(out, format), nil
}

// moduleNamesCompletion completes module names from the manifest.
func (o *rootOptions) moduleNamesCompletion(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	cfg, err := o.loadConfig(cmd)
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}

	used := make(map[string]bool, len(args))
	for _, arg := range args {
		used[arg] = true
	}

	var names []string
	for _, name := range cfg.ModuleNames() {
		if !used[name] {
			names = append(names, name)
		}
	}
	return names, cobra.ShellCompDirectiveNoFileComp
}
