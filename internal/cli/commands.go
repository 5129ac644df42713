package cli

import (
	"fmt"
	"os"

	"github.com/arthur-debert/sandbox/internal/version"
	"github.com/arthur-debert/sandbox/pkg/bootstrap"
	"github.com/arthur-debert/sandbox/pkg/config"
	"github.com/arthur-debert/sandbox/pkg/display"
	"github.com/arthur-debert/sandbox/pkg/errors"
	"github.com/arthur-debert/sandbox/pkg/logging"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"
)

func manifestAnnotation() map[string]string {
	return map[string]string{needsManifest: "true"}
}

func newPlanCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:               "plan [modules...]",
		Short:             MsgPlanShort,
		Long:              MsgPlanLong,
		Example:           MsgPlanExample,
		GroupID:           "core",
		Annotations:       manifestAnnotation(),
		ValidArgsFunction: opts.moduleNamesCompletion,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := opts.environment(cmd)
			if err != nil {
				return err
			}

			targets := args
			if len(targets) == 0 {
				targets = env.cfg.Autostart
			}
			if len(targets) == 0 {
				targets = env.sandbox.Modules()
			}

			done := logging.LogOperationStart(log.Logger, "plan")
			for _, target := range targets {
				if _, err := env.sandbox.Start(target); err != nil {
					return err
				}
			}
			done()

			return env.renderer.Plan(display.PlanReport{
				Targets: targets,
				Order:   env.recorder.Order(),
			})
		},
	}
}

func newCheckCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:         "check",
		Short:       MsgCheckShort,
		Long:        MsgCheckLong,
		Args:        cobra.NoArgs,
		GroupID:     "core",
		Annotations: manifestAnnotation(),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := opts.environment(cmd)
			if err != nil {
				return err
			}

			report := display.CollectCheck(env.sandbox)
			if err := env.renderer.Check(report); err != nil {
				return err
			}
			if !report.OK() {
				return errors.Newf(errors.ErrConfigValid, MsgErrCheckFailed, report.Failed, len(report.Results))
			}
			return nil
		},
	}
}

func newGraphCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:               "graph <module>",
		Short:             MsgGraphShort,
		Long:              MsgGraphLong,
		Example:           MsgGraphExample,
		Args:              cobra.ExactArgs(1),
		GroupID:           "core",
		Annotations:       manifestAnnotation(),
		ValidArgsFunction: opts.moduleNamesCompletion,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := opts.environment(cmd)
			if err != nil {
				return err
			}

			root, err := display.BuildGraph(env.sandbox, args[0])
			if err != nil {
				return err
			}
			return env.renderer.Graph(root)
		},
	}
}

func newStatusCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:         "status",
		Short:       MsgStatusShort,
		Long:        MsgStatusLong,
		Args:        cobra.NoArgs,
		GroupID:     "core",
		Annotations: manifestAnnotation(),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := opts.environment(cmd)
			if err != nil {
				return err
			}

			if err := bootstrap.Autostart(env.sandbox, env.cfg); err != nil {
				return err
			}
			return env.renderer.Status(display.CollectStatus(env.sandbox))
		},
	}
}

func newConfigCmd(opts *rootOptions) *cobra.Command {
	var defaults bool

	cmd := &cobra.Command{
		Use:         "config",
		Short:       MsgConfigShort,
		Args:        cobra.NoArgs,
		GroupID:     "misc",
		Annotations: manifestAnnotation(),
		RunE: func(cmd *cobra.Command, args []string) error {
			if defaults {
				_, err := fmt.Fprint(cmd.OutOrStdout(), config.DefaultsContent())
				return err
			}

			renderer, err := opts.renderer(cmd)
			if err != nil {
				return err
			}
			return renderer.Data(opts.cfg)
		},
	}

	cmd.Flags().BoolVar(&defaults, "defaults", false, MsgFlagDefaults)
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "version",
		Short:   MsgVersionShort,
		Args:    cobra.NoArgs,
		GroupID: "misc",
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, MsgVersionFormat, version.Version)
			if version.Commit != "" {
				_, _ = fmt.Fprintf(out, MsgCommitFormat, version.Commit)
			}
			if version.Date != "" {
				_, _ = fmt.Fprintf(out, MsgBuiltFormat, version.Date)
			}
		},
	}
}

func newCompletionCmd() *cobra.Command {
	return &cobra.Command{
		Use:                   "completion [bash|zsh|fish|powershell]",
		Short:                 MsgCompletionShort,
		Long:                  MsgCompletionLong,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		GroupID:               "misc",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(out)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
			return nil
		},
	}
}

func newManCmd() *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:     "man",
		Short:   MsgManShort,
		Args:    cobra.NoArgs,
		GroupID: "misc",
		Hidden:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			header := &doc.GenManHeader{
				Title:   "SANDBOX",
				Section: "1",
				Source:  "sandbox " + version.Version,
				Manual:  "sandbox manual",
			}

			root := cmd.Root()
			if dir == "" {
				if err := doc.GenMan(root, header, cmd.OutOrStdout()); err != nil {
					return errors.Wrap(err, errors.ErrInternal, "failed to generate man page")
				}
				return nil
			}

			if err := os.MkdirAll(dir, 0755); err != nil {
				return errors.Wrapf(err, errors.ErrInternal, "failed to create %s", dir)
			}
			if err := doc.GenManTree(root, header, dir); err != nil {
				return errors.Wrap(err, errors.ErrInternal, "failed to generate man pages")
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&dir, "dir", "", MsgFlagManDir)
	return cmd
}
