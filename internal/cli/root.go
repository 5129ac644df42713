package cli

import (
	"embed"

	"github.com/arthur-debert/sandbox/internal/version"
	"github.com/arthur-debert/sandbox/pkg/cobrax/topics"
	"github.com/arthur-debert/sandbox/pkg/config"
	"github.com/arthur-debert/sandbox/pkg/errors"
	"github.com/arthur-debert/sandbox/pkg/logging"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

//go:embed topics
var topicsFS embed.FS

// needsManifest marks commands that load the configuration before running.
const needsManifest = "manifest"

type rootOptions struct {
	verbosity int
	config    string
	format    string

	cfg *config.Config
}

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	initTemplateFormatting()

	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:     "sandbox",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Version: version.Version,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if _, ok := cmd.Annotations[needsManifest]; !ok {
				logging.SetupLogger(opts.verbosity, "")
				log.Debug().Str("command", cmd.Name()).Msg("Command started")
				return nil
			}

			cfg, err := opts.loadConfig(cmd)
			if err != nil {
				logging.SetupLogger(opts.verbosity, "")
				return err
			}
			logging.SetupLogger(int(cfg.Logging.Verbosity), cfg.Logging.File)
			log.Debug().
				Str("command", cmd.Name()).
				Str("manifest", opts.config).
				Int("modules", len(cfg.Modules)).
				Msg("Command started")

			opts.cfg = cfg
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			_ = cmd.Help()
			return errors.New(errors.ErrInvalidInput, MsgErrNoCommand)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		DisableAutoGenTag: true,
	}

	// Global flags
	rootCmd.PersistentFlags().CountVarP(&opts.verbosity, "verbose", "v", MsgFlagVerbose)
	rootCmd.PersistentFlags().StringVarP(&opts.config, "config", "c", "", MsgFlagConfig)
	rootCmd.PersistentFlags().StringVarP(&opts.format, "format", "f", "", MsgFlagFormat)

	rootCmd.AddGroup(&cobra.Group{ID: "core", Title: "COMMANDS:"})
	rootCmd.AddGroup(&cobra.Group{ID: "misc", Title: "MISC:"})
	rootCmd.SetUsageTemplate(MsgUsageTemplate)

	rootCmd.AddCommand(newPlanCmd(opts))
	rootCmd.AddCommand(newCheckCmd(opts))
	rootCmd.AddCommand(newGraphCmd(opts))
	rootCmd.AddCommand(newStatusCmd(opts))
	rootCmd.AddCommand(newConfigCmd(opts))
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newCompletionCmd())
	rootCmd.AddCommand(newManCmd())

	if _, err := topics.InitializeWithOptions(rootCmd, topicsFS, "topics", topics.Options{
		Extensions: []string{".md", ".txt"},
		Renderer:   topics.NewGlamourRenderer(),
	}); err != nil {
		log.Warn().Err(err).Msg("Help topics unavailable")
	}

	return rootCmd
}

// loadConfig merges the configuration layers. -v overrides the configured
// verbosity only when given.
func (o *rootOptions) loadConfig(cmd *cobra.Command) (*config.Config, error) {
	overrides := map[string]interface{}{}
	if cmd.Flags().Changed("verbose") {
		overrides["logging.verbosity"] = o.verbosity
	}
	return config.Load(config.Options{
		Manifest:  o.config,
		Overrides: overrides,
	})
}
