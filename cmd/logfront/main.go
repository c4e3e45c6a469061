// Package main provides the logfront CLI, which writes log events through a
// configured adapter. It is useful for checking a logfront.yaml or
// comparing adapter output.
package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/trickstertwo/logfront"
	_ "github.com/trickstertwo/logfront/adapter/console"
	_ "github.com/trickstertwo/logfront/adapter/slog"
	_ "github.com/trickstertwo/logfront/adapter/zap"
	_ "github.com/trickstertwo/logfront/adapter/zerolog"
)

type emitOptions struct {
	name  string
	level string
	count int
	field []string
}

func main() {
	cfg := logfront.NewConfig()
	configPath := ""

	rootCmd := &cobra.Command{
		Use:           "logfront",
		Short:         "Emit log events through a configured logfront adapter",
		SilenceErrors: true,
		SilenceUsage:  true,
	}
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "",
		"YAML config file; flags override its values")
	cfg.RegisterFlags(rootCmd.PersistentFlags())

	completionErr := cfg.RegisterCompletions(rootCmd)
	if completionErr != nil {
		fmt.Fprintf(os.Stderr, "register completions: %v\n", completionErr)
	}

	rootCmd.AddCommand(newEmitCmd(cfg, &configPath), newAdaptersCmd())

	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}

func newAdaptersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "adapters",
		Short: "List registered adapters",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			for _, name := range logfront.AdapterNames() {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		},
	}
}

func newEmitCmd(cfg *logfront.Config, configPath *string) *cobra.Command {
	opts := emitOptions{}

	cmd := &cobra.Command{
		Use:   "emit [flags] <message> [message ...]",
		Short: "Emit each message as one log event",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			resolved, err := resolveConfig(cmd, cfg, *configPath)
			if err != nil {
				return err
			}
			return emit(resolved, opts, args, cmd.ErrOrStderr())
		},
	}

	cmd.Flags().StringVar(&opts.name, "name", "logfront", "logger name")
	cmd.Flags().StringVar(&opts.level, "at", "info",
		fmt.Sprintf("event level, one of: %s", strings.Join(logfront.AllLevelStrings(), ", ")))
	cmd.Flags().IntVar(&opts.count, "count", 1, "times to emit each message")
	cmd.Flags().StringSliceVar(&opts.field, "field", nil, "key=value field added to every event")

	err := cmd.RegisterFlagCompletionFunc("at",
		cobra.FixedCompletions(logfront.AllLevelStrings(), cobra.ShellCompDirectiveNoFileComp))
	if err != nil {
		fmt.Fprintf(os.Stderr, "register completions: %v\n", err)
	}

	return cmd
}

// resolveConfig loads the config file, if any, and reapplies flags the user
// set explicitly on top of it.
func resolveConfig(cmd *cobra.Command, flagCfg *logfront.Config, path string) (*logfront.Config, error) {
	if path == "" {
		return flagCfg, nil
	}

	fileCfg, err := logfront.LoadConfig(path)
	if err != nil {
		return nil, err
	}
	fileCfg.Flags = flagCfg.Flags

	flags := cmd.Flags()
	if flags.Changed(flagCfg.Flags.Level) {
		fileCfg.Level = flagCfg.Level
	}
	if flags.Changed(flagCfg.Flags.Adapter) {
		fileCfg.Adapter = flagCfg.Adapter
	}
	if flags.Changed(flagCfg.Flags.Output) {
		fileCfg.Output = flagCfg.Output
	}
	return fileCfg, nil
}

func emit(cfg *logfront.Config, opts emitOptions, msgs []string, summary io.Writer) error {
	level, err := logfront.ParseLevel(opts.level)
	if err != nil {
		return err
	}

	fields := make([]logfront.Field, 0, len(opts.field))
	for _, kv := range opts.field {
		k, v, ok := strings.Cut(kv, "=")
		if !ok || k == "" {
			return errors.Errorf("invalid field %q, want key=value", kv)
		}
		fields = append(fields, logfront.Str(k, v))
	}

	reg := logfront.NewRegistry()
	counts := map[logfront.Level]int{}
	counter := logfront.ListenerFunc(func(e logfront.LogEvent) { counts[e.Level()]++ })
	reg.Register(counter)
	defer reg.Deregister(counter)

	f, err := cfg.NewFactory(reg)
	if err != nil {
		return err
	}
	defer f.Close()

	start := time.Now()
	l := f.Logger(opts.name).With(fields...)
	for i := range opts.count {
		for _, msg := range msgs {
			l.At(level).Int("seq", i).Msg(msg)
		}
	}

	fmt.Fprintf(summary, "dispatched %d %s event(s) in %s\n",
		counts[level], level, time.Since(start).Round(time.Microsecond))
	return nil
}
