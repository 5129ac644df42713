// Package config loads sandbox configuration and module manifests.
//
// Configuration is layered with koanf, later layers winning: the embedded
// defaults, the user config file under $XDG_CONFIG_HOME/sandbox, an explicit
// manifest (TOML or YAML), SANDBOX_* environment variables and finally
// programmatic overrides such as command line flags.
package config
