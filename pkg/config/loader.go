package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strconv"
	"strings"

	"github.com/adrg/xdg"
	"github.com/arthur-debert/sandbox/pkg/errors"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const (
	// AppName names the XDG directories.
	AppName = "sandbox"
	// FileName is the user config file name.
	FileName = "sandbox.toml"
	// EnvPrefix prefixes environment overrides: SANDBOX_LOGGING_VERBOSITY sets logging.verbosity.
	EnvPrefix = "SANDBOX_"
)

// Options selects the optional layers of Load.
type Options struct {
	// Manifest is a .toml, .yaml or .yml file. It must exist when set.
	Manifest string
	// UserConfig overrides the XDG user config path. "none" skips the layer.
	UserConfig string
	// Overrides are dotted keys applied last, e.g. "output.format".
	Overrides map[string]interface{}
}

// UserConfigPath returns $XDG_CONFIG_HOME/sandbox/sandbox.toml.
func UserConfigPath() string {
	xdg.Reload()
	return filepath.Join(xdg.ConfigHome, AppName, FileName)
}

// Load merges every configuration layer and validates the result.
func Load(opts Options) (*Config, error) {
	k := koanf.New(".")

	// 1. Embedded defaults
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to load defaults")
	}

	// 2. User config, if present
	userConfig := opts.UserConfig
	if userConfig == "" {
		userConfig = UserConfigPath()
	}
	if userConfig != "none" {
		if _, err := os.Stat(userConfig); err == nil {
			if err := loadFile(k, userConfig); err != nil {
				return nil, err
			}
		}
	}

	// 3. Manifest
	if opts.Manifest != "" {
		if _, err := os.Stat(opts.Manifest); err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigLoad, "manifest %s cannot be read", opts.Manifest).
				WithDetail("path", opts.Manifest)
		}
		if err := loadFile(k, opts.Manifest); err != nil {
			return nil, err
		}
	}

	// 4. Env vars
	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load env vars")
	}

	// 5. Overrides
	if len(opts.Overrides) > 0 {
		if err := k.Load(confmap.Provider(opts.Overrides, "."), nil); err != nil {
			return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load overrides")
		}
	}

	cfg, err := unmarshal(k)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Default returns the embedded defaults only.
func Default() *Config {
	cfg, err := Load(Options{UserConfig: "none"})
	if err != nil {
		return &Config{Output: Output{Format: "auto"}}
	}
	return cfg
}

func loadFile(k *koanf.Koanf, path string) error {
	parser, err := parserFor(path)
	if err != nil {
		return err
	}
	if err := k.Load(file.Provider(path), parser); err != nil {
		return errors.Wrapf(err, errors.ErrConfigParse, "failed to parse %s", path).
			WithDetail("path", path)
	}
	return nil
}

func parserFor(path string) (koanf.Parser, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return toml.Parser(), nil
	case ".yaml", ".yml":
		return yaml.Parser(), nil
	default:
		return nil, errors.Newf(errors.ErrConfigLoad, "unsupported config format %q", filepath.Ext(path)).
			WithDetail("path", path)
	}
}

// envKey maps SANDBOX_LOGGING_VERBOSITY to logging.verbosity.
func envKey(s string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "_", ".")
}

func unmarshal(k *koanf.Koanf) (*Config, error) {
	var cfg Config
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				verbosityHookFunc(),
				mapstructure.StringToSliceHookFunc(","),
			),
		},
	}
	if err := k.UnmarshalWithConf("", &cfg, unmarshalConf); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to unmarshal configuration")
	}

	cfg.Output.Format = strings.ToLower(strings.TrimSpace(cfg.Output.Format))
	return &cfg, nil
}

// verbosityHookFunc accepts level names ("debug") and numeric strings for Verbosity.
func verbosityHookFunc() mapstructure.DecodeHookFunc {
	return func(f reflect.Type, t reflect.Type, data interface{}) (interface{}, error) {
		if f.Kind() != reflect.String || t != reflect.TypeOf(Verbosity(0)) {
			return data, nil
		}
		s := strings.ToLower(strings.TrimSpace(reflect.ValueOf(data).String()))
		if v, ok := verbosityNames[s]; ok {
			return v, nil
		}
		n, err := strconv.Atoi(s)
		if err != nil {
			return nil, errors.Newf(errors.ErrConfigParse, "unknown verbosity %q", s)
		}
		return Verbosity(n), nil
	}
}
