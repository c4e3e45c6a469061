package logfront

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

const (
	// EnvPrefix prefixes environment overrides, e.g. LOGFRONT_LEVEL.
	EnvPrefix = "LOGFRONT_"
	// EnvConfigPath names the config file read by NewDynamicFactory.
	EnvConfigPath = EnvPrefix + "CONFIG"
	// DefaultConfigFile is looked up in the working directory when
	// EnvConfigPath is unset.
	DefaultConfigFile = "logfront.yaml"

	// OutputStdout and OutputStderr are the non-file values of Config.Output.
	OutputStdout = "stdout"
	OutputStderr = "stderr"
)

// Flags holds CLI flag names for logging configuration, allowing callers to
// customize flag names while keeping sensible defaults via [NewConfig].
type Flags struct {
	Level   string
	Adapter string
	Output  string
}

// Config selects the adapter, output and default level of a Factory.
//
// Load it from YAML and the environment with [LoadConfig], or bind CLI flags
// with [Config.RegisterFlags]. An empty Adapter means "console" when that
// adapter is registered, and "discard" otherwise.
type Config struct {
	Level   string `koanf:"level" validate:"required,loglevel"`
	Adapter string `koanf:"adapter"`
	Output  string `koanf:"output" validate:"required"`

	Flags Flags `koanf:"-"`
}

// NewConfig returns a Config with default values and flag names.
func NewConfig() *Config {
	return &Config{
		Level:  "info",
		Output: OutputStdout,
		Flags: Flags{
			Level:   "log-level",
			Adapter: "log-adapter",
			Output:  "log-output",
		},
	}
}

func configDefaults() map[string]any {
	return map[string]any{
		"level":   "info",
		"adapter": "",
		"output":  OutputStdout,
	}
}

// LoadConfig reads configuration with priority, highest first:
//  1. LOGFRONT_* environment variables
//  2. the YAML file at path (skipped when path is empty)
//  3. defaults
func LoadConfig(path string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(configDefaults(), "."), nil); err != nil {
		return nil, errors.Wrap(err, "load defaults")
	}

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, errors.Wrapf(err, "load %s", path)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	}), nil); err != nil {
		return nil, errors.Wrap(err, "load environment")
	}

	cfg := NewConfig()
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, errors.Wrap(err, "unmarshal config")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// Validate checks field constraints and that the adapter is registered.
func (c *Config) Validate() error {
	validateOnce.Do(func() {
		validate = validator.New()
		// Accept exactly what ParseLevel accepts, in any case.
		_ = validate.RegisterValidation("loglevel", func(fl validator.FieldLevel) bool {
			_, err := ParseLevel(fl.Field().String())
			return err == nil
		})
	})
	if err := validate.Struct(c); err != nil {
		return errors.Wrap(err, "invalid logging configuration")
	}
	if c.Adapter != "" {
		if _, err := LookupAdapterFactory(c.Adapter); err != nil {
			return errors.Wrap(err, "invalid logging configuration")
		}
	}
	return nil
}

// RegisterFlags adds logging flags to the given [*pflag.FlagSet].
func (c *Config) RegisterFlags(flags *pflag.FlagSet) {
	flags.StringVar(&c.Level, c.Flags.Level, c.Level,
		fmt.Sprintf("log level, one of: %s", strings.Join(AllLevelStrings(), ", ")))
	flags.StringVar(&c.Adapter, c.Flags.Adapter, c.Adapter,
		fmt.Sprintf("log adapter, one of: %s", strings.Join(AdapterNames(), ", ")))
	flags.StringVar(&c.Output, c.Flags.Output, c.Output,
		"log output: stdout, stderr or a file path")
}

// RegisterCompletions registers shell completions for logging flags on cmd.
func (c *Config) RegisterCompletions(cmd *cobra.Command) error {
	err := cmd.RegisterFlagCompletionFunc(c.Flags.Level,
		cobra.FixedCompletions(AllLevelStrings(), cobra.ShellCompDirectiveNoFileComp))
	if err != nil {
		return errors.Wrap(err, "registering log-level completion")
	}

	err = cmd.RegisterFlagCompletionFunc(c.Flags.Adapter,
		cobra.FixedCompletions(AdapterNames(), cobra.ShellCompDirectiveNoFileComp))
	if err != nil {
		return errors.Wrap(err, "registering log-adapter completion")
	}

	return nil
}

// NewFactory validates c, opens the output and builds a Factory on the
// configured adapter. Close the Factory to release a file output.
func (c *Config) NewFactory(reg *Registry) (*Factory, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	level, err := ParseLevel(c.Level)
	if err != nil {
		return nil, err
	}

	name := c.Adapter
	if name == "" {
		name = "discard"
		if _, err := LookupAdapterFactory("console"); err == nil {
			name = "console"
		}
	}
	newAdapter, err := LookupAdapterFactory(name)
	if err != nil {
		return nil, err
	}

	w, closer, err := openOutput(c.Output)
	if err != nil {
		return nil, err
	}

	return NewFactory(FactoryConfig{
		// Loggers filter; the shared adapter accepts everything.
		Adapter:      newAdapter(w, LevelTrace),
		DefaultLevel: level,
		Registry:     reg,
		Output:       closer,
	}), nil
}

func openOutput(out string) (io.Writer, io.Closer, error) {
	switch strings.ToLower(out) {
	case "", OutputStdout:
		return os.Stdout, nil, nil
	case OutputStderr:
		return os.Stderr, nil, nil
	}
	f, err := os.OpenFile(out, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "open log output %s", out)
	}
	return f, f, nil
}

// NewDynamicFactory picks a configuration the way an application started
// without explicit setup expects:
//
//   - the YAML file named by $LOGFRONT_CONFIG, else ./logfront.yaml if present
//   - LOGFRONT_* environment overrides
//   - otherwise the "console" adapter on stdout, or Discard when no console
//     adapter is registered
//
// Configuration errors are reported on stderr and the factory falls back to
// the defaults. Registered listeners receive events in every case.
func NewDynamicFactory() *Factory {
	path := os.Getenv(EnvConfigPath)
	if path == "" {
		if _, err := os.Stat(DefaultConfigFile); err == nil {
			path = DefaultConfigFile
		}
	}

	cfg, err := LoadConfig(path)
	if err == nil {
		var f *Factory
		if f, err = cfg.NewFactory(nil); err == nil {
			return f
		}
	}
	defaultErrorHandler(err)

	f, err := NewConfig().NewFactory(nil)
	if err != nil {
		return NewFactory(FactoryConfig{})
	}
	return f
}
