package main

import (
	"io"
	"os"
	"path/filepath"

	"github.com/go-json-experiment/json"
	"github.com/go-json-experiment/json/jsontext"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/Yamashou/dartgenc/config"
	"github.com/Yamashou/dartgenc/dartsrc"
	"github.com/Yamashou/dartgenc/errors"
	"github.com/Yamashou/dartgenc/logger"
	"github.com/Yamashou/dartgenc/lsp"
	"github.com/Yamashou/dartgenc/plugins"
)

type targetFlags struct {
	classes []string
	line    int
	write   bool
	plan    bool
}

func (f *targetFlags) register(flags *pflag.FlagSet) {
	flags.IntVar(&f.line, "line", 0, "1-based line inside the target class")
	flags.BoolVarP(&f.write, "write", "w", false, "write the result back to the file")
	flags.BoolVar(&f.plan, "plan", false, "print the planned fragments as JSON instead of the source")
}

func newJSONCmd(g *globalFlags) *cobra.Command {
	var (
		target     targetFlags
		samplePath string
		className  string
	)

	cmd := &cobra.Command{
		Use:   "json <file.dart>",
		Short: "Infer fields and nested classes from a JSON sample",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sample, err := readSample(cmd.InOrStdin(), samplePath)
			if err != nil {
				return err
			}
			if className != "" {
				target.classes = []string{className}
			}
			return run(cmd, g, &target, args[0], plugins.Request{Mode: plugins.JSONMode, Sample: sample})
		},
	}

	cmd.Flags().StringVar(&samplePath, "sample", "", "JSON sample file, - for stdin")
	cmd.Flags().StringVar(&className, "class", "", "target class (default: class at --line, else the first class)")
	target.register(cmd.Flags())
	_ = cmd.MarkFlagRequired("sample")

	return cmd
}

func newFieldsCmd(g *globalFlags) *cobra.Command {
	var target targetFlags

	cmd := &cobra.Command{
		Use:   "fields <file.dart>",
		Short: "Generate missing members from the fields already declared",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, g, &target, args[0], plugins.Request{Mode: plugins.FieldsMode})
		},
	}

	cmd.Flags().StringSliceVar(&target.classes, "class", nil, "target classes (default: class at --line, else every class)")
	target.register(cmd.Flags())

	return cmd
}

func newLSPCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "lsp",
		Short: "Start the Language Server Protocol server on stdio",
		RunE: func(cmd *cobra.Command, args []string) error {
			server := lsp.NewServer(version, func(dir string) (*config.Config, error) {
				return loadConfig(cmd.Flags(), g, dir)
			})
			return server.RunStdio()
		},
	}
}

func run(cmd *cobra.Command, g *globalFlags, target *targetFlags, path string, req plugins.Request) error {
	cfg, err := loadConfig(cmd.Flags(), g, filepath.Dir(path))
	if err != nil {
		return errors.Wrap(err, "failed to load config file")
	}

	src, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrap(err, "failed to read dart file")
	}

	req.Source = src
	req.ClassNames = target.classes
	req.Offset = plugins.NoOffset
	if target.line > 0 {
		req.Offset = dartsrc.LineOffset(src, target.line)
	}

	logger.Logger.Infow("generating", logger.FieldFile, path, logger.FieldMode, req.Mode.String())

	result, err := plugins.GenerateCode(cfg, req)
	if err != nil {
		return errors.Wrap(err, "failed to generate code")
	}

	switch {
	case target.plan:
		data, err := json.Marshal(result, jsontext.WithIndent("  "))
		if err != nil {
			return errors.Wrap(err, "failed to encode plan")
		}
		_, err = cmd.OutOrStdout().Write(append(data, '\n'))
		return err
	case target.write:
		info, err := os.Stat(path)
		if err != nil {
			return errors.Wrap(err, "failed to stat dart file")
		}
		if err := os.WriteFile(path, result.Source, info.Mode().Perm()); err != nil {
			return errors.Wrap(err, "failed to write dart file")
		}
		return nil
	default:
		_, err = cmd.OutOrStdout().Write(result.Source)
		return err
	}
}

// loadConfig reads the explicit or nearest config file and applies the
// generator flags that were set on the command line.
func loadConfig(flags *pflag.FlagSet, g *globalFlags, dir string) (*config.Config, error) {
	cfgFile := g.configFile
	if cfgFile == "" {
		found, err := config.FindConfigFile(dir, config.DefaultConfigFilenames)
		if err != nil {
			return nil, err
		}
		cfgFile = found
	}

	cfg := &config.Config{}
	if cfgFile != "" {
		loaded, err := config.LoadConfig(cfgFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
		logger.Logger.Debugw("loaded config", logger.FieldFile, cfgFile)
	}

	opts := &cfg.Generator
	if flags.Changed("suffix") {
		opts.Suffix = g.suffix
	}
	if flags.Changed("null-safe") {
		opts.NullSafe = g.nullSafe
	}
	if flags.Changed("serializable") {
		opts.GeneratorSerializable = g.serializable
	}
	if flags.Changed("doc") {
		opts.GeneratorDoc = g.doc
	}
	if flags.Changed("from-list") {
		opts.CreateFromList = g.fromList
	}
	if flags.Changed("converters") {
		opts.SetConverters = g.converters != ""
		opts.ConvertersValue = g.converters
	}

	if err := opts.Validate(); err != nil {
		return nil, err
	}
	cfg.Generator = opts.Normalize()

	return cfg, nil
}

func readSample(stdin io.Reader, path string) ([]byte, error) {
	if path == "-" {
		data, err := io.ReadAll(stdin)
		return data, errors.Wrap(err, "failed to read sample from stdin")
	}
	data, err := os.ReadFile(path)
	return data, errors.Wrap(err, "failed to read sample")
}
