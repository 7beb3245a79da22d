package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/coolbeans/gff2sbol/pkg/config"
	"github.com/coolbeans/gff2sbol/pkg/convert"
	"github.com/coolbeans/gff2sbol/pkg/gffio"
	"github.com/coolbeans/gff2sbol/pkg/roles"
	"github.com/coolbeans/gff2sbol/pkg/sbol"
	"github.com/coolbeans/gff2sbol/pkg/watch"
)

var version = "0.1.0"

// flagKeys maps command line flags onto configuration keys.
var flagKeys = map[string]string{
	"contig":            "contig",
	"uri-prefix":        "namespace.uri_prefix",
	"annotation-prefix": "namespace.annotation_prefix",
	"format":            "output.format",
	"roles-dir":         "roles.dir",
	"watch-roles":       "roles.watch",
	"debounce":          "watch.debounce",
	"log-level":         "log.level",
	"log-format":        "log.format",
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "gff2sbol",
		Short: "Convert annotated GFF3 files into SBOL documents",
		Long: `gff2sbol converts a GFF3 annotation file, with its embedded FASTA sequence
and provenance comments, into an SBOL2 document.

Each feature becomes a SequenceAnnotation on a root ComponentDefinition named
after the contig. Genes, CDSs and chromosomes also get their own definition.
Comments of the form "# <product> created from <source> <YYMMDD> by <agent>
(<description>)" become prov:Activity resources.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().String("config", "", "Config file (default ./gff2sbol.yaml)")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().String("log-format", "", "Log format: text or json")

	rootCmd.AddCommand(convertCmd())
	rootCmd.AddCommand(watchCmd())
	rootCmd.AddCommand(rolesCmd())
	rootCmd.AddCommand(initCmd())
	rootCmd.AddCommand(docsCmd(rootCmd))

	return rootCmd
}

// loadConfig resolves the configuration for cmd, binding whichever of its
// flags map onto configuration keys.
func loadConfig(cmd *cobra.Command) (*config.Config, *slog.Logger, error) {
	v := viper.New()
	for flag, key := range flagKeys {
		if f := cmd.Flags().Lookup(flag); f != nil {
			if err := v.BindPFlag(key, f); err != nil {
				return nil, nil, fmt.Errorf("binding --%s: %w", flag, err)
			}
		}
	}

	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(v, path)
	if err != nil {
		return nil, nil, err
	}

	logger := cfg.Logger(cmd.ErrOrStderr())
	slog.SetDefault(logger)
	return cfg, logger, nil
}

func addConversionFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("format", "f", "", "Output format: rdfxml, turtle, jsonld, dot (default rdfxml)")
	cmd.Flags().String("contig", "", "Name of the root definition (default yeast_chr11_3_34)")
	cmd.Flags().String("uri-prefix", "", "URI prefix for generated resources")
	cmd.Flags().String("annotation-prefix", "", "Namespace for GFF3 specific annotations")
	cmd.Flags().String("roles-dir", "", "Directory of YAML role tables layered over the built-in table")
}

func loadRoles(cfg *config.Config, logger *slog.Logger) (*roles.Registry, error) {
	if cfg.Roles.Dir == "" {
		return roles.NewRegistry(), nil
	}
	registry, err := roles.NewRegistryWithDirectory(cfg.Roles.Dir)
	if err != nil {
		return nil, err
	}
	registry.SetLogger(logger)
	logger.Debug("Loaded role tables",
		slog.String("dir", cfg.Roles.Dir),
		slog.Int("roles", registry.Count()))
	return registry, nil
}

// convertFile converts input and writes the document to output in format.
func convertFile(c *convert.Converter, input, output string, format sbol.Format) (convert.Stats, error) {
	lines, err := gffio.ReadFile(input)
	if err != nil {
		return convert.Stats{}, err
	}

	doc, err := c.Convert(lines)
	if err != nil {
		return convert.Stats{}, fmt.Errorf("%s: %w", input, err)
	}

	w, err := gffio.Create(output)
	if err != nil {
		return convert.Stats{}, err
	}
	if err := doc.Serialize(w, format, c.Prefixes()...); err != nil {
		w.Close()
		return convert.Stats{}, err
	}
	if err := w.Close(); err != nil {
		return convert.Stats{}, fmt.Errorf("closing %s: %w", output, err)
	}
	return c.Stats(), nil
}

func convertCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "convert [input.gff3]",
		Short: "Convert a GFF3 file into an SBOL document",
		Long: `Convert a GFF3 file into an SBOL document.

The input may be gzip compressed. With no input, or "-", standard input is
read. The document is written to standard output unless --output is given.

Example:
  gff2sbol convert chr11.gff3 -o chr11.xml
  gff2sbol convert chr11.gff3.gz --format turtle --contig chrXI --stats`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			output, _ := cmd.Flags().GetString("output")
			showStats, _ := cmd.Flags().GetBool("stats")

			input := gffio.Stdin
			if len(args) > 0 {
				input = args[0]
			}

			registry, err := loadRoles(cfg, logger)
			if err != nil {
				return err
			}
			opts := cfg.ConvertOptions()
			opts.Roles = registry
			opts.Logger = logger

			stats, err := convertFile(convert.New(opts), input, output, cfg.Format())
			if err != nil {
				return err
			}

			if showStats {
				printStats(cmd.ErrOrStderr(), input, stats)
			}
			return nil
		},
	}

	addConversionFlags(cmd)
	cmd.Flags().StringP("output", "o", "", "Output file (default stdout)")
	cmd.Flags().Bool("stats", false, "Print conversion statistics to stderr")

	return cmd
}

func printStats(w io.Writer, input string, stats convert.Stats) {
	heading := color.New(color.FgCyan, color.Bold)
	label := color.New(color.FgGreen)

	heading.Fprintf(w, "Converted %s\n", input)
	rows := []struct {
		name  string
		value int
	}{
		{"Lines", stats.Lines},
		{"Records", stats.Records},
		{"Annotations", stats.Annotations},
		{"Locations", stats.Locations},
		{"Definitions", stats.Definitions},
		{"Components", stats.Components},
		{"Activities", stats.Activities},
		{"Placeholders", stats.Placeholders},
		{"Adopted", stats.AdoptedPlaceholders},
		{"Ignored comments", stats.IgnoredComments},
		{"Sequence length", stats.SequenceLength},
	}
	for _, row := range rows {
		label.Fprintf(w, "  %-18s", row.name+":")
		fmt.Fprintf(w, "%d\n", row.value)
	}
}

func watchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch [input.gff3...]",
		Short: "Reconvert GFF3 files whenever they change",
		Long: `Watch GFF3 files and reconvert each one after it changes.

Sources come from the arguments, from a sources file, or both. Each output is
written next to its input with the extension of the output format unless the
sources file names one.

Example:
  gff2sbol watch chr11.gff3 chr4.gff3 --format turtle
  gff2sbol watch --sources sources.yaml --roles-dir roles --watch-roles`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			sourcesPath, _ := cmd.Flags().GetString("sources")

			sources := &watch.SourcesConfig{}
			if sourcesPath != "" {
				if sources, err = watch.LoadSourcesConfig(sourcesPath); err != nil {
					return err
				}
			}
			for _, arg := range args {
				sources.Sources = append(sources.Sources, watch.SourceConfig{Input: arg})
			}
			if len(sources.Sources) == 0 {
				return fmt.Errorf("nothing to watch: pass input files or --sources")
			}
			if err := sources.Validate(); err != nil {
				return err
			}

			registry, err := loadRoles(cfg, logger)
			if err != nil {
				return err
			}

			monitor := watch.NewMonitor(sources, cfg.Watch.Debounce)
			monitor.SetLogger(logger)
			monitor.OnChange(func(change watch.Change) error {
				return reconvert(cfg, registry, logger, change.Source)
			})

			if cfg.Roles.Watch && cfg.Roles.Dir != "" {
				registry.SetOnChange(func(event, path string) {
					logger.Info("Role tables changed, reconverting", slog.String("path", path))
					checkSources(monitor, sources, logger)
				})
				if err := registry.Watch(); err != nil {
					return err
				}
				defer registry.StopWatch()
			}

			// Bring every output up to date before waiting for changes.
			checkSources(monitor, sources, logger)

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			logger.Info("Watching sources", slog.Int("count", len(sources.Sources)))
			if err := monitor.Run(ctx); err != nil && ctx.Err() == nil {
				return err
			}
			return nil
		},
	}

	addConversionFlags(cmd)
	cmd.Flags().String("sources", "", "YAML file listing the sources to watch")
	cmd.Flags().Duration("debounce", 0, "Quiet period before a change is converted (default 250ms)")
	cmd.Flags().Bool("watch-roles", false, "Reload role tables and reconvert when they change")

	return cmd
}

// checkSources converts every enabled source now. Failures are logged and
// recorded in the monitor's status.
func checkSources(monitor *watch.Monitor, sources *watch.SourcesConfig, logger *slog.Logger) {
	for _, source := range sources.Sources {
		err := monitor.CheckNow(source.Name)
		switch {
		case errors.Is(err, watch.ErrSourceDisabled):
			logger.Debug("Skipping disabled source", slog.String("source", source.Name))
		case err != nil:
			logger.Warn("Conversion failed",
				slog.String("source", source.Name),
				slog.String("error", err.Error()))
		}
	}
}

func reconvert(cfg *config.Config, registry *roles.Registry, logger *slog.Logger, source watch.SourceConfig) error {
	format := cfg.Format()
	if source.Format != "" {
		f, err := sbol.ParseFormat(source.Format)
		if err != nil {
			return err
		}
		format = f
	}

	opts := cfg.ConvertOptions()
	if source.Contig != "" {
		opts.Contig = source.Contig
	}
	opts.Roles = registry
	opts.Logger = logger

	output := source.Output
	if output == "" {
		output = gffio.OutputPath(source.Input, format.Extension())
	}

	stats, err := convertFile(convert.New(opts), source.Input, output, format)
	if err != nil {
		return err
	}
	logger.Info("Reconverted",
		slog.String("source", source.Name),
		slog.String("output", output),
		slog.Any("stats", stats))
	return nil
}

func rolesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "roles",
		Short: "Show the feature type to role table",
		Long: `Show the effective feature type to SBOL role table: the built-in
Sequence Ontology mappings overlaid with any tables from --roles-dir.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			registry, err := loadRoles(cfg, logger)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			typeColor := color.New(color.FgYellow)
			for _, m := range registry.Entries() {
				typeColor.Fprintf(w, "%-45s", m.Type)
				fmt.Fprintln(w, m.Role)
			}
			fmt.Fprintf(w, "\n%d feature types\n", registry.Count())
			return nil
		},
	}

	cmd.Flags().String("roles-dir", "", "Directory of YAML role tables layered over the built-in table")
	cmd.AddCommand(rolesExportCmd())
	return cmd
}

func rolesExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export <path>",
		Short: "Write the effective role table as YAML",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			registry, err := loadRoles(cfg, logger)
			if err != nil {
				return err
			}
			if err := registry.SaveTable(args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d roles to %s\n", registry.Count(), args[0])
			return nil
		},
	}
	cmd.Flags().String("roles-dir", "", "Directory of YAML role tables layered over the built-in table")
	return cmd
}

func initCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init [directory]",
		Short: "Create a config file and a role table directory",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}

			configPath := filepath.Join(dir, config.FileName)
			if _, err := os.Stat(configPath); err == nil {
				return fmt.Errorf("%s already exists", configPath)
			}

			rolesDir := filepath.Join(dir, "roles")
			if err := os.MkdirAll(rolesDir, 0755); err != nil {
				return fmt.Errorf("failed to create directory %s: %w", rolesDir, err)
			}
			rolesPath := filepath.Join(rolesDir, "default.yaml")
			if err := roles.NewRegistry().SaveTable(rolesPath); err != nil {
				return err
			}

			cfg := config.DefaultConfig()
			cfg.Roles.Dir = "roles"
			if err := cfg.SaveToFile(configPath); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Initialized gff2sbol project in %s\n", dir)
			fmt.Fprintf(out, "  - %s\n", configPath)
			fmt.Fprintf(out, "  - %s\n", rolesPath)
			fmt.Fprintf(out, "\nNext steps:\n")
			fmt.Fprintf(out, "  1. Edit the contig and namespace in %s\n", configPath)
			fmt.Fprintf(out, "  2. Run: gff2sbol convert your-file.gff3 -o your-file.xml\n")
			return nil
		},
	}
}
