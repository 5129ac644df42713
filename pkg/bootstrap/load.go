package bootstrap

import (
	"github.com/arthur-debert/sandbox/pkg/config"
	"github.com/arthur-debert/sandbox/pkg/errors"
	"github.com/arthur-debert/sandbox/pkg/logging"
	"github.com/arthur-debert/sandbox/pkg/sandbox"
)

// Load registers every module of cfg, in manifest order. It stops at the first
// failure; modules registered before it stay registered.
func Load(sb *sandbox.Sandbox, cfg *config.Config, catalog *Catalog) error {
	logger := logging.GetLogger("bootstrap")

	for _, spec := range cfg.Modules {
		requires, err := Requires(spec, catalog)
		if err != nil {
			return err
		}

		factory, err := catalog.bind(spec.Name, spec.FactoryName())
		if err != nil {
			return withModule(err, spec.Name)
		}

		if _, err := sb.Register(spec.Name, factory, requires...); err != nil {
			return err
		}
		logger.Debug().
			Str("module", spec.Name).
			Str("factory", spec.FactoryName()).
			Strs("requires", spec.Requires).
			Msg("Manifest module loaded")
	}
	return nil
}

// Requires converts the requires and aliases of spec into dependencies. The
// aliases become a single Instances entry after the module references.
func Requires(spec config.ModuleSpec, catalog *Catalog) ([]sandbox.Dependency, error) {
	requires := sandbox.Refs(spec.Requires...)
	if len(spec.Aliases) == 0 {
		return requires, nil
	}

	instances := make(map[string]any, len(spec.Aliases))
	for alias, valueName := range spec.Aliases {
		value, err := catalog.Value(valueName)
		if err != nil {
			return nil, withModule(err, spec.Name)
		}
		instances[alias] = value
	}
	return append(requires, sandbox.Instances(instances)), nil
}

// Autostart starts the modules listed in cfg.Autostart, in order.
func Autostart(sb *sandbox.Sandbox, cfg *config.Config) error {
	for _, name := range cfg.Autostart {
		if _, err := sb.Start(name); err != nil {
			return err
		}
	}
	return nil
}

func withModule(err error, module string) error {
	if sbErr, ok := err.(*errors.SandboxError); ok {
		return sbErr.WithDetail("module", module)
	}
	return err
}
