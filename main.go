package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Yamashou/dartgenc/logger"
)

const version = "0.1.0"

// globalFlags are the persistent flags shared by every subcommand. Generator
// flags override the config file only when set explicitly.
type globalFlags struct {
	configFile   string
	suffix       string
	nullSafe     bool
	serializable bool
	doc          bool
	fromList     bool
	converters   string
	verbose      int
	logJSON      bool
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	g := &globalFlags{}

	rootCmd := &cobra.Command{
		Use:           "dartgenc",
		Short:         "Generate json_serializable members for Dart data classes",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return logger.InitializeTo(cmd.ErrOrStderr(), g.logJSON, g.verbose)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			logger.Sync()
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&g.configFile, "config", "", "config file (default: nearest .dartgenc.yml upward from the target)")
	pf.StringVar(&g.suffix, "suffix", "", "suffix appended to generated class names")
	pf.BoolVar(&g.nullSafe, "null-safe", false, "declare inferred fields non-nullable")
	pf.BoolVar(&g.serializable, "serializable", false, "generate fromJson, toJson and @JsonSerializable")
	pf.BoolVar(&g.doc, "doc", false, "emit key descriptions as doc comments")
	pf.BoolVar(&g.fromList, "from-list", false, "generate the static fromJsonList decoder")
	pf.StringVar(&g.converters, "converters", "", "converters expression for @JsonSerializable, e.g. [EpochConverter()]")
	pf.CountVarP(&g.verbose, "verbose", "v", "increase log verbosity (-v info, -vv debug)")
	pf.BoolVar(&g.logJSON, "log-json", false, "write logs as JSON")

	rootCmd.AddCommand(newJSONCmd(g))
	rootCmd.AddCommand(newFieldsCmd(g))
	rootCmd.AddCommand(newLSPCmd(g))

	return rootCmd
}
