package logfront

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "logfront.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	return path
}

func TestLoadConfig(t *testing.T) {
	tcs := map[string]struct {
		file    string
		env     map[string]string
		want    Config
		wantErr string
	}{
		"defaults": {
			want: Config{Level: "info", Output: OutputStdout},
		},
		"file": {
			file: "level: debug\nadapter: discard\noutput: stderr\n",
			want: Config{Level: "debug", Adapter: "discard", Output: OutputStderr},
		},
		"env overrides file": {
			file: "level: debug\n",
			env:  map[string]string{"LOGFRONT_LEVEL": "error"},
			want: Config{Level: "error", Output: OutputStdout},
		},
		"uppercase file level": {
			file: "level: WARN\n",
			want: Config{Level: "WARN", Output: OutputStdout},
		},
		"uppercase env level": {
			env:  map[string]string{"LOGFRONT_LEVEL": "INFO"},
			want: Config{Level: "INFO", Output: OutputStdout},
		},
		"warning alias": {
			env:  map[string]string{"LOGFRONT_LEVEL": "Warning"},
			want: Config{Level: "Warning", Output: OutputStdout},
		},
		"bad level": {
			file:    "level: loud\n",
			wantErr: "invalid logging configuration",
		},
		"unknown adapter": {
			env:     map[string]string{"LOGFRONT_ADAPTER": "carrier-pigeon"},
			wantErr: "unknown adapter",
		},
		"bad yaml": {
			file:    "level: [\n",
			wantErr: "load",
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			for k, v := range tc.env {
				t.Setenv(k, v)
			}

			path := ""
			if tc.file != "" {
				path = writeConfig(t, tc.file)
			}

			cfg, err := LoadConfig(path)
			if tc.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tc.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want.Level, cfg.Level)
			assert.Equal(t, tc.want.Adapter, cfg.Adapter)
			assert.Equal(t, tc.want.Output, cfg.Output)
		})
	}
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
}

func TestConfig_RegisterFlags(t *testing.T) {
	t.Parallel()

	cfg := NewConfig()
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	cfg.RegisterFlags(fs)

	require.NoError(t, fs.Parse([]string{"--log-level=warn", "--log-adapter=discard", "--log-output=stderr"}))
	assert.Equal(t, "warn", cfg.Level)
	assert.Equal(t, "discard", cfg.Adapter)
	assert.Equal(t, OutputStderr, cfg.Output)
	require.NoError(t, cfg.Validate())
}

func TestConfig_MixedCaseLevel(t *testing.T) {
	t.Parallel()

	cfg := NewConfig()
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	cfg.RegisterFlags(fs)
	require.NoError(t, fs.Parse([]string{"--log-level=DEBUG", "--log-adapter=discard"}))

	f, err := cfg.NewFactory(nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = f.Close() })

	assert.Equal(t, LevelDebug, f.DefaultLevel())
}

func TestNewDynamicFactory_KeepsUppercaseLevel(t *testing.T) {
	t.Setenv(EnvConfigPath, writeConfig(t, "adapter: discard\n"))
	t.Setenv("LOGFRONT_LEVEL", "ERROR")

	f := NewDynamicFactory()
	t.Cleanup(func() { _ = f.Close() })

	assert.Equal(t, LevelError, f.DefaultLevel())
}

func TestConfig_RegisterCompletions(t *testing.T) {
	t.Parallel()

	cfg := NewConfig()
	cmd := &cobra.Command{Use: "test"}
	cfg.RegisterFlags(cmd.Flags())

	require.NoError(t, cfg.RegisterCompletions(cmd))

	// Unknown flag names fail.
	cfg.Flags.Level = "nope"
	require.Error(t, cfg.RegisterCompletions(cmd))
}

func TestConfig_NewFactory(t *testing.T) {
	t.Parallel()

	out := filepath.Join(t.TempDir(), "app.log")
	cfg := NewConfig()
	cfg.Level = "debug"
	cfg.Adapter = "discard"
	cfg.Output = out

	reg := NewRegistry()
	rec := &recorder{}
	reg.Register(rec)

	f, err := cfg.NewFactory(reg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = f.Close() })

	assert.Equal(t, LevelDebug, f.DefaultLevel())
	assert.Same(t, reg, f.Registry())
	assert.FileExists(t, out)

	f.Logger("cfg").Debug().Msg("hello")
	require.Len(t, rec.all(), 1)
	require.NoError(t, f.Close())
}

func TestConfig_NewFactory_Invalid(t *testing.T) {
	t.Parallel()

	cfg := NewConfig()
	cfg.Level = ""
	_, err := cfg.NewFactory(nil)
	require.Error(t, err)

	cfg = NewConfig()
	cfg.Output = filepath.Join(t.TempDir(), "missing", "dir", "app.log")
	_, err = cfg.NewFactory(nil)
	require.Error(t, err)
}

func TestNewDynamicFactory(t *testing.T) {
	path := writeConfig(t, "level: warn\nadapter: discard\n")
	t.Setenv(EnvConfigPath, path)

	f := NewDynamicFactory()
	assert.Equal(t, LevelWarn, f.DefaultLevel())
	assert.Equal(t, Discard, f.Adapter())

	// Broken configuration falls back to defaults.
	t.Setenv(EnvConfigPath, filepath.Join(t.TempDir(), "absent.yaml"))
	f = NewDynamicFactory()
	assert.Equal(t, LevelInfo, f.DefaultLevel())

}
