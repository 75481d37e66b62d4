// FILE: cmd/wfconfig/main.go
package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/wordfence/config"
	"github.com/wordfence/config/internal/logging"
	"github.com/wordfence/config/options"
)

// version is overridden at link time
var version = "dev"

func main() {
	reg, err := options.NewRegistry()
	if err != nil {
		fmt.Fprintln(os.Stderr, "invalid option declarations:", err)
		os.Exit(2)
	}

	cmd, err := newRootCommand(reg, os.Stdout, os.Stderr)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		if errors.Is(err, config.ErrInvalidValue) || errors.Is(err, config.ErrCLIParse) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}

// newRootCommand builds the command tree from the registry. Every command
// binds the full merged option set of its subcommand as local flags.
func newRootCommand(reg *config.Registry, stdout, stderr io.Writer) (*cobra.Command, error) {
	root := &cobra.Command{
		Use:           "wfconfig",
		Short:         "Resolve and print the Wordfence CLI configuration",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, reg, "", args, stdout, stderr)
		},
	}
	root.CompletionOptions.DisableDefaultCmd = true
	root.SetOut(stdout)
	root.SetErr(stderr)

	if err := config.BindFlags(root.Flags(), reg.Global()); err != nil {
		return nil, err
	}

	for _, sc := range reg.Subcommands() {
		defs, _, err := reg.ForSubcommand(sc.Name)
		if err != nil {
			return nil, err
		}
		name := sc.Name
		sub := &cobra.Command{
			Use:   name + " [paths...]",
			Short: sc.Description,
			RunE: func(cmd *cobra.Command, args []string) error {
				return run(cmd, reg, name, args, stdout, stderr)
			},
		}
		if err := config.BindFlags(sub.Flags(), defs); err != nil {
			return nil, fmt.Errorf("subcommand %s: %w", name, err)
		}
		root.AddCommand(sub)
	}

	return root, nil
}

func run(cmd *cobra.Command, reg *config.Registry, subcommand string, args []string, stdout, stderr io.Writer) error {
	defs, _, err := reg.ForSubcommand(subcommand)
	if err != nil {
		return err
	}
	src, err := config.CLISourceFromFlags(cmd.Flags(), defs, args)
	if err != nil {
		return err
	}

	// The debug flag is needed before resolution to log resolution itself
	level := logging.WarnLevel
	if _, ok := src.Occurrences("debug"); ok {
		level = logging.DebugLevel
	}
	logCfg := logging.DefaultConfig()
	logCfg.Output = stderr
	logCfg.Level = level
	logger := logging.NewLogger(logCfg)

	opts := &options.Options{}
	result, err := config.NewBuilder(reg).
		WithCLISource(subcommand, src).
		WithFileDiscovery(options.DiscoveryOptions()).
		WithEnvPrefix(options.EnvPrefix).
		WithLogger(logger).
		WithValidator(requirePaths).
		Build(opts)
	if err != nil {
		return err
	}

	if opts.Version {
		fmt.Fprintf(stdout, "Wordfence CLI configuration resolver %s\n", version)
		return nil
	}

	logCfg.Level = opts.LogLevel(isTerminal(os.Stderr))
	logger = logging.NewLogger(logCfg)
	logger.Info("configuration resolved",
		"subcommand", result.SubcommandName(),
		"file", result.FilePath,
		"read_stdin", opts.ReadStdinEnabled(isTerminal(os.Stdin)),
	)
	if opts.Debug {
		fmt.Fprint(stderr, result.Debug(opts))
	}

	return config.Dump(stdout, opts)
}

// requirePaths enforces --require-path for the subcommands that declare it.
func requirePaths(target config.Target, result *config.Result) error {
	opts, ok := target.(*options.Options)
	if !ok || !opts.RequirePath {
		return nil
	}
	if opts.HasPaths() || opts.ReadStdinEnabled(isTerminal(os.Stdin)) {
		return nil
	}
	return fmt.Errorf("%s requires at least one path", result.SubcommandName())
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
