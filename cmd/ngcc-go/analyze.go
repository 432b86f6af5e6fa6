package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"github.com/spf13/cobra"

	"ngcc-go/packages/compiler-cli/config"
	"ngcc-go/packages/compiler-cli/logging"
	"ngcc-go/packages/compiler-cli/ngcc/analyzer"
	"ngcc-go/packages/compiler-cli/ngcc/parsing"
	"ngcc-go/packages/compiler-cli/ngtsc/diagnostics"
	"ngcc-go/packages/compiler-cli/ngtsc/host"
	"ngcc-go/packages/compiler-cli/ngtsc/resource"
	"ngcc-go/packages/compiler/output"
)

// errHasErrors is returned when the run produced error diagnostics. They have
// already been printed.
var errHasErrors = errors.New("analysis produced errors")

var analyzeCmd = &cobra.Command{
	Use:   "analyze <manifest>...",
	Short: "Analyze the classes of one or more declaration manifests",
	Long: `Loads every manifest, indexes and analyzes all classes, and prints the diagnostics.
With --emit the compiled definitions are printed as well. The command fails when
any error diagnostic was produced.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAnalyze,
}

var (
	analyzeConfig       string
	analyzeWorkers      int
	analyzeResourceRoot string
	analyzeEmit         bool
	analyzeLogLevel     string
)

func init() {
	analyzeCmd.Flags().StringVarP(&analyzeConfig, "config", "c", "", "Configuration file path (TOML)")
	analyzeCmd.Flags().IntVarP(&analyzeWorkers, "workers", "w", 0, "Number of files analyzed concurrently (overrides config)")
	analyzeCmd.Flags().StringVar(&analyzeResourceRoot, "resource-root", "", "Directory templateUrl and styleUrls are resolved against (overrides config)")
	analyzeCmd.Flags().BoolVar(&analyzeEmit, "emit", false, "Print the compiled definitions")
	analyzeCmd.Flags().StringVar(&analyzeLogLevel, "log-level", "", "Log level: debug, info, warn or error (overrides config)")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	var opts []config.Option
	if cmd.Flags().Changed("workers") {
		opts = append(opts, config.WithWorkers(analyzeWorkers))
	}
	if cmd.Flags().Changed("resource-root") {
		opts = append(opts, config.WithResourceRoot(analyzeResourceRoot))
	}
	if cmd.Flags().Changed("log-level") {
		opts = append(opts, config.WithLogLevel(analyzeLogLevel))
	}
	cfg, err := config.Load(analyzeConfig, opts...)
	if err != nil {
		return err
	}

	files, err := analyzeManifests(cmd.Context(), cfg, args, analyzeEmit, cmd.OutOrStdout(), cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	var all []diagnostics.Diagnostic
	for _, f := range files {
		all = append(all, f.AllDiagnostics()...)
	}
	if diagnostics.HasErrors(all) {
		return errHasErrors
	}
	return nil
}

// analyzeManifests runs the analyzer over every manifest and prints diagnostics to
// stderr and, when emitDefs is set, the compiled definitions to stdout
func analyzeManifests(ctx context.Context, cfg *config.Config, paths []string, emitDefs bool, stdout, stderr io.Writer) ([]*analyzer.AnalyzedFile, error) {
	logger := logging.NewWithWriter(cfg.Logging, stderr)

	var sources []*host.SourceFile
	for _, path := range paths {
		files, err := parsing.LoadManifest(path)
		if err != nil {
			return nil, err
		}
		logger.Debug().Str("manifest", path).Int("files", len(files)).Msg("loaded manifest")
		sources = append(sources, files...)
	}

	root := cfg.ResourceRoot
	if root == "" {
		root = filepath.Dir(paths[0])
	}

	a, err := analyzer.NewAnalyzer(
		host.NewProgramChecker(sources),
		resource.NewFileResourceLoader(root),
		analyzer.WithLogger(logger),
		analyzer.WithHandlerNames(cfg.Handlers...),
		analyzer.WithStrictDecoratorImport(cfg.StrictDecoratorImport),
		analyzer.WithWorkers(cfg.Workers),
	)
	if err != nil {
		return nil, err
	}

	results, err := a.AnalyzeProgram(ctx, sources)
	if err != nil {
		return nil, err
	}

	for _, f := range results {
		for _, d := range f.AllDiagnostics() {
			fmt.Fprintln(stderr, d.String())
		}
		if emitDefs {
			emit(stdout, f)
		}
	}
	return results, nil
}

// emit prints each artifact as its supporting statements followed by the field
// assignment. A typed artifact is annotated with a JSDoc type comment.
func emit(w io.Writer, f *analyzer.AnalyzedFile) {
	for _, clazz := range f.AnalyzedClasses {
		for _, entry := range clazz.Entries {
			for _, res := range entry.Compilation {
				for _, stmt := range res.Statements {
					fmt.Fprintln(w, output.PrintStatement(stmt))
				}
				if typ := output.PrintType(res.Type); typ != "" {
					fmt.Fprintf(w, "/** @type {%s} */\n", typ)
				}
				fmt.Fprintf(w, "%s.%s = %s;\n", clazz.Declaration.Name, res.Name, output.PrintExpression(res.Initializer))
			}
		}
	}
}
