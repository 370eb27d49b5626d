package cmd

import (
	"fmt"

	"repopack/pkg/collect"
	"repopack/pkg/logging"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
)

// collectCmd runs the collection pipeline over a project tree.
var collectCmd = &cobra.Command{
	Use:   "collect",
	Short: "Collect a project tree into annotated text documents",
	Long: `Collect walks the project tree, filters out binary, oversized and excluded
paths, orders the remaining files by relevance, and packs them into one or
more text documents with per-file language fences and a structural index.`,
	RunE: runCollect,
}

func init() {
	flags := collectCmd.Flags()
	flags.StringP("root", "r", ".", "Project root directory to collect from")
	flags.StringP("output", "o", collect.DefaultOutputPrefix, "Output prefix; produces <prefix>.txt or <prefix>.part<N>.txt")
	flags.StringSlice("exclude", nil, "Glob patterns to exclude (repeatable or comma-separated)")
	flags.StringSlice("include-ext", nil, "Extension allow-list; when set, only these extensions are collected")
	flags.StringSlice("exclude-ext", nil, "Extensions to exclude explicitly")
	flags.StringSlice("ignored-dirs", nil, "Directory names to prune in addition to the defaults")
	flags.Bool("no-default-excludes", false, "Disable the built-in excludes (.git, node_modules, .env, *.log, ...)")
	flags.Int64("max-bytes", collect.DefaultMaxFileBytes, "Per-file size ceiling in bytes; 0 for unlimited")
	flags.Int("chunk-bytes", 0, "Per-chunk byte budget; 0 for a single unbounded chunk")
	flags.String("header-line", collect.DefaultHeaderLine, "Separator line between path and fenced content")
	flags.String("config", "", "Optional YAML config file; flags override its values")
	flags.BoolP("verbose", "v", false, "Enable verbose (development) logging")

	RootCmd.AddCommand(collectCmd)
}

func runCollect(cmd *cobra.Command, args []string) error {
	flags := cmd.Flags()

	verbose, _ := flags.GetBool("verbose")
	logger := rootLogger
	if verbose {
		if err := logging.Setup(true, "Repopack", "dev"); err == nil {
			logger = logging.Logger
		}
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	cfg, err := buildConfig(flags)
	if err != nil {
		return err
	}

	summary, err := collect.Run(cfg, collect.NewDirSink(logger), logger)
	if err != nil {
		logger.Error("Collection failed", zap.Error(err))
		return err
	}

	printSummary(cmd, summary)
	return nil
}

// buildConfig assembles the run configuration: defaults, then the optional
// config file, then any flag explicitly set on the command line.
func buildConfig(flags *pflag.FlagSet) (*collect.Config, error) {
	cfg := collect.DefaultConfig()

	if configPath, _ := flags.GetString("config"); configPath != "" {
		loaded, err := collect.LoadConfigFile(configPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if flags.Changed("root") {
		cfg.Root, _ = flags.GetString("root")
	}
	if flags.Changed("output") {
		cfg.OutputPrefix, _ = flags.GetString("output")
	}
	if flags.Changed("exclude") {
		cfg.Exclude, _ = flags.GetStringSlice("exclude")
	}
	if flags.Changed("include-ext") {
		cfg.IncludeExt, _ = flags.GetStringSlice("include-ext")
	}
	if flags.Changed("exclude-ext") {
		cfg.DenyExt, _ = flags.GetStringSlice("exclude-ext")
	}
	if flags.Changed("ignored-dirs") {
		cfg.IgnoredDirs, _ = flags.GetStringSlice("ignored-dirs")
	}
	if flags.Changed("no-default-excludes") {
		cfg.NoDefaultExcludes, _ = flags.GetBool("no-default-excludes")
	}
	if flags.Changed("max-bytes") {
		cfg.MaxFileBytes, _ = flags.GetInt64("max-bytes")
	}
	if flags.Changed("chunk-bytes") {
		cfg.ChunkBytes, _ = flags.GetInt("chunk-bytes")
	}
	if flags.Changed("header-line") {
		cfg.HeaderLine, _ = flags.GetString("header-line")
	}

	return cfg, nil
}

// printSummary reports the run outcome on stdout. Color degrades to plain
// text automatically when stdout is not a terminal.
func printSummary(cmd *cobra.Command, summary *collect.Summary) {
	success := color.New(color.FgGreen)
	for _, name := range summary.ChunkNames {
		success.Fprintf(cmd.OutOrStdout(), "✔ wrote %s\n", name)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Files included: %d\n", summary.IncludedFiles)
	fmt.Fprintf(cmd.OutOrStdout(), "Paths omitted:  %d\n", summary.OmittedFiles)
	fmt.Fprintf(cmd.OutOrStdout(), "Chunks:         %d\n", summary.Chunks)
	fmt.Fprintf(cmd.OutOrStdout(), "Block bytes:    %s\n", humanize.IBytes(uint64(summary.BlockBytes)))
}
