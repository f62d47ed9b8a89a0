// Package commands wires the wirecodec CLI.
package commands

import (
	"fmt"
	"io"
	"runtime"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	wirecodec "github.com/reoring/wirecodec"
	"github.com/reoring/wirecodec/examples/blueprint"
	"github.com/reoring/wirecodec/internal/cli/config"
	"github.com/reoring/wirecodec/internal/cli/ui"
	"github.com/reoring/wirecodec/source/gojson"
)

var (
	// Version information - set at build time
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

type app struct {
	v   *viper.Viper
	cfg *config.Config
	log *zap.Logger
	// colorOff is color.NoColor as detected before this run.
	colorOff bool
}

func newApp() *app {
	return &app{v: config.New(), log: zap.NewNop(), colorOff: color.NoColor}
}

// Execute runs the CLI with the given arguments and streams and returns the
// process exit code. Errors are rendered to stderr. The global color setting
// is restored before Execute returns.
func Execute(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	a := newApp()
	defer func() { color.NoColor = a.colorOff }()
	root := newRootCommand(a)
	root.SetArgs(args)
	root.SetIn(stdin)
	root.SetOut(stdout)
	root.SetErr(stderr)
	if err := root.Execute(); err != nil {
		typeName, noColor := "", false
		if a.cfg != nil {
			typeName, noColor = a.cfg.Type, a.cfg.NoColor
		}
		fmt.Fprint(stderr, ui.DecodeError(err, typeName, noColor))
		return 1
	}
	return 0
}

// NewRootCommand creates the root command
func NewRootCommand() *cobra.Command {
	return newRootCommand(newApp())
}

func newRootCommand(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "wirecodec",
		Short: "Decode, validate and describe documents with typed codecs",
		Long: `wirecodec decodes JSON, YAML or MessagePack documents through the
registered record and union codecs, reports the first failure with its
location, and prints the canonical encoding or the JSON Schema.

Every flag can also be set through a WIRECODEC_* environment variable
(for example WIRECODEC_MAX_DEPTH=64) or a wirecodec.yaml file.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
		PersistentPostRun: func(*cobra.Command, []string) { _ = a.log.Sync() },
	}

	pf := root.PersistentFlags()
	pf.String("driver", "go-json", "JSON tokenizer: go-json or encoding/json")
	pf.String("dup-keys", "ignore", "duplicate object keys: ignore, warn or error")
	pf.Int("max-depth", 0, "maximum container nesting (0 = unlimited)")
	pf.Int64("max-bytes", 0, "maximum input size in bytes (0 = unlimited)")
	pf.Bool("no-color", false, "disable colored output")
	pf.BoolP("verbose", "v", false, "log diagnostics to stderr")

	root.AddCommand(newDecodeCommand(a))
	root.AddCommand(newValidateCommand(a))
	root.AddCommand(newSchemaCommand(a))
	root.AddCommand(newListCommand())
	root.AddCommand(NewVersionCommand())
	return root
}

func (a *app) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(a.v, cmd.Flags())
	if err != nil {
		return err
	}
	a.cfg = cfg
	color.NoColor = a.colorOff || cfg.NoColor
	if cfg.Verbose {
		if l, err := zap.NewDevelopment(); err == nil {
			a.log = l
		}
	}
	switch cfg.Driver {
	case "encoding/json":
		wirecodec.UseDefaultJSONDriver()
	default:
		wirecodec.SetJSONDriver(gojson.Driver())
	}
	a.log.Debug("configuration loaded",
		zap.String("driver", wirecodec.CurrentJSONDriver().Name()),
		zap.String("dup_keys", cfg.DupKeys),
		zap.Int("max_depth", cfg.MaxDepth),
		zap.Int64("max_bytes", cfg.MaxBytes),
	)
	return nil
}

func (a *app) lookup() (blueprint.Schema, error) {
	name := a.cfg.Type
	if name == "" {
		return blueprint.Schema{}, fmt.Errorf("--type is required (one of: %v)", blueprint.Names())
	}
	s, ok := blueprint.Lookup(name)
	if !ok {
		return blueprint.Schema{}, &ui.UnknownTypeError{Name: name, Suggestions: ui.FindSimilar(name, blueprint.Names())}
	}
	return s, nil
}

func newListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List registered schemas",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			for _, n := range blueprint.Names() {
				fmt.Fprintln(cmd.OutOrStdout(), n)
			}
		},
	}
}

// NewVersionCommand creates the version command
func NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			w := cmd.OutOrStdout()
			title := color.New(color.FgCyan, color.Bold)
			title.Fprint(w, "wirecodec version: ")
			fmt.Fprintln(w, Version)
			title.Fprint(w, "Git commit: ")
			fmt.Fprintln(w, GitCommit)
			title.Fprint(w, "Build date: ")
			fmt.Fprintln(w, BuildDate)
			title.Fprint(w, "Go version: ")
			fmt.Fprintln(w, runtime.Version())
		},
	}
}
