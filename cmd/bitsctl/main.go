package main

import (
	"fmt"
	"os"

	"github.com/danmuck/bitsctl/internal/logging"
	"github.com/spf13/cobra"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
)

type rootOptions struct {
	configPath      string
	input           string
	logLevel        string
	metricsTextfile string
}

func main() {
	logging.ConfigureRuntime()
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "bitsctl: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	rootCmd := &cobra.Command{
		Use:   "bitsctl",
		Short: "Decode and evaluate BITS packet transmissions",
		Long: `bitsctl decodes a hexadecimal BITS transmission into its packet tree.

Input is taken from the first argument, then --input (or the config
file's input key), then stdin.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&opts.configPath, "config", "c", "", "path to bitsctl.toml")
	flags.StringVarP(&opts.input, "input", "i", "", "file holding the hex transmission")
	flags.StringVar(&opts.logLevel, "log-level", "", "log level (trace, debug, info, warn, error, off)")
	flags.StringVar(&opts.metricsTextfile, "metrics-textfile", "", "write prometheus metrics to this file after the run")

	rootCmd.AddCommand(
		solveCmd(opts),
		decodeCmd(opts),
		initCmd(),
		versionCmd(),
	)
	return rootCmd
}
