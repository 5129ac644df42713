package cli

import (
	_ "embed"
	"strings"
)

// Short messages (one-liners)
const (
	MsgRootShort       = "Inspect and dry-run sandbox module manifests"
	MsgPlanShort       = "Print the order modules would be started in"
	MsgCheckShort      = "Check every module for cycles and conflicts"
	MsgGraphShort      = "Show the dependency tree of a module"
	MsgStatusShort     = "Start the autostart modules and list module states"
	MsgConfigShort     = "Print the merged configuration"
	MsgVersionShort    = "Print version information"
	MsgCompletionShort = "Generate shell completion script"
	MsgManShort        = "Generate man pages"

	MsgFlagVerbose  = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagConfig   = "Manifest file (.toml, .yaml or .yml)"
	MsgFlagFormat   = "Output format: auto, term, text, json, yaml, toml (graph also takes graphml)"
	MsgFlagDefaults = "Print the built-in defaults instead of the merged configuration"
	MsgFlagManDir   = "Write one page per command into this directory instead of stdout"

	MsgVersionFormat = "sandbox version %s\n"
	MsgCommitFormat  = "  commit: %s\n"
	MsgBuiltFormat   = "  built:  %s\n"

	MsgErrNoCommand   = "no command specified"
	MsgErrCheckFailed = "%d of %d modules failed the check"
)

// Embedded message files
var (
	//go:embed msgs/root-long.txt
	msgRootLongRaw string
	MsgRootLong    = strings.TrimSpace(msgRootLongRaw)

	//go:embed msgs/plan-long.txt
	msgPlanLongRaw string
	MsgPlanLong    = strings.TrimSpace(msgPlanLongRaw)

	//go:embed msgs/plan-example.txt
	msgPlanExampleRaw string
	MsgPlanExample    = strings.TrimRight(msgPlanExampleRaw, "\n")

	//go:embed msgs/check-long.txt
	msgCheckLongRaw string
	MsgCheckLong    = strings.TrimSpace(msgCheckLongRaw)

	//go:embed msgs/graph-long.txt
	msgGraphLongRaw string
	MsgGraphLong    = strings.TrimSpace(msgGraphLongRaw)

	//go:embed msgs/graph-example.txt
	msgGraphExampleRaw string
	MsgGraphExample    = strings.TrimRight(msgGraphExampleRaw, "\n")

	//go:embed msgs/status-long.txt
	msgStatusLongRaw string
	MsgStatusLong    = strings.TrimSpace(msgStatusLongRaw)

	//go:embed msgs/completion-long.txt
	msgCompletionLongRaw string
	MsgCompletionLong    = strings.TrimSpace(msgCompletionLongRaw)

	//go:embed msgs/usage-template.txt
	msgUsageTemplateRaw string
	MsgUsageTemplate    = strings.TrimSpace(msgUsageTemplateRaw)
)
