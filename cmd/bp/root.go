package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/lmittmann/tint"
	"github.com/spf13/cobra"

	"github.com/aretw0/bptrack"
	"github.com/aretw0/bptrack/pkg/core"
)

// errNoCommand ends a bare invocation after help was printed.
var errNoCommand = errors.New("no command given")

// notFoundError reports a delete of an unknown id.
type notFoundError struct {
	id int
}

func (e *notFoundError) Error() string {
	return fmt.Sprintf("Reading with ID %d not found", e.id)
}

func (e *notFoundError) Is(target error) bool {
	return target == core.ErrNotFound
}

// app carries global flags and the resolved configuration to the subcommands.
type app struct {
	file       string
	versioning bool
	verbose    bool

	cfg    bptrack.Config
	logger *slog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}

	cmd := &cobra.Command{
		Use:   "bp",
		Short: "Track blood pressure readings from the command line",
		Long: `bp records blood pressure readings in a local JSON file.
Readings are validated on entry, listed newest first and summarized with stats.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
		RunE: func(cmd *cobra.Command, args []string) error {
			_ = cmd.Help()
			return errNoCommand
		},
	}

	cmd.PersistentFlags().StringVarP(&a.file, "file", "f", "", "Data file (default: bp_data.json, or data_file from .bptrack.yaml)")
	cmd.PersistentFlags().BoolVar(&a.versioning, "versioning", false, "Commit the data file to git after every change")
	cmd.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "Enable verbose logging")

	cmd.SetFlagErrorFunc(func(c *cobra.Command, err error) error {
		return &core.ValidationError{Field: "flags", Message: err.Error()}
	})

	cmd.AddCommand(
		newAddCmd(a),
		newListCmd(a),
		newDeleteCmd(a),
		newClearCmd(a),
		newStatsCmd(a),
		newInitCmd(a),
		newWatchCmd(a),
		newStatusCmd(a),
		newVersionCmd(),
	)
	return cmd
}

// setup resolves the configuration and installs the default logger.
// Precedence: flags, then BPTRACK_FILE, then .bptrack.yaml, then defaults.
func (a *app) setup(cmd *cobra.Command, args []string) error {
	wd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get working directory: %w", err)
	}

	cfg, err := bptrack.ResolveConfig(wd)
	if err != nil {
		return err
	}
	if a.file != "" {
		cfg.DataFile = a.file
	}
	if cmd.Flags().Changed("versioning") {
		cfg.Versioning = a.versioning
	}

	level, err := bptrack.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	if a.verbose {
		level = slog.LevelDebug
	}

	a.logger = slog.New(tint.NewHandler(cmd.ErrOrStderr(), &tint.Options{
		Level:      level,
		TimeFormat: time.Kitchen,
	}))
	slog.SetDefault(a.logger)
	a.cfg = cfg

	a.logger.Debug("configuration resolved", "data_file", cfg.DataFile, "versioning", cfg.Versioning, "source", cfg.Source)
	return nil
}

func (a *app) open(opts ...bptrack.Option) (*core.Service, error) {
	base := []bptrack.Option{
		bptrack.WithLogger(a.logger),
		bptrack.WithVersioning(a.cfg.Versioning),
	}
	return bptrack.New(a.cfg.DataFile, append(base, opts...)...)
}

// Execute runs the bp command tree against the process arguments and
// returns the exit code. This is called by main.main().
func Execute() int {
	return run(context.Background(), os.Args[1:], os.Stdout, os.Stderr)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	if args == nil {
		// cobra falls back to os.Args on nil
		args = []string{}
	}
	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	return report(stdout, cmd.ExecuteContext(ctx))
}

// report prints err in the user-facing format and maps it to an exit code.
func report(w io.Writer, err error) int {
	var nf *notFoundError
	switch {
	case err == nil:
		return 0
	case errors.Is(err, errNoCommand):
	case errors.As(err, &nf):
		fmt.Fprintf(w, "✗ %s\n", nf)
	case errors.Is(err, core.ErrValidation):
		fmt.Fprintf(w, "✗ Error: %s\n", err)
	default:
		fmt.Fprintf(w, "✗ Unexpected error: %s\n", err)
	}
	return 1
}

// exactArgs is cobra.ExactArgs with a message naming the expected arguments.
func exactArgs(names ...string) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) == len(names) {
			return nil
		}
		if len(names) == 0 {
			return &core.ValidationError{
				Field:   "args",
				Message: fmt.Sprintf("%s takes no arguments, got %q", cmd.CommandPath(), args),
			}
		}
		return &core.ValidationError{
			Field:   "args",
			Message: fmt.Sprintf("expected %d argument(s) <%s>, got %d", len(names), strings.Join(names, "> <"), len(args)),
		}
	}
}

func parseIntArg(name, value string) (int, error) {
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, &core.ValidationError{
			Field:   name,
			Message: fmt.Sprintf("invalid %s value %q: must be an integer", name, value),
		}
	}
	return n, nil
}

func noReadingsMessage(cmd *cobra.Command) string {
	return fmt.Sprintf("No readings found. Add your first reading with '%s add <systolic> <diastolic>'", cmd.Root().Name())
}
