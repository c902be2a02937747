package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Global flags.
var (
	flagRoot     string
	flagLogLevel string
	flagNoCache  bool
	flagNoColor  bool
	flagColor    string
)

var rootCmd = &cobra.Command{
	Use:   "foilview",
	Short: "foilview: airfoil coordinate file parser and plotter",
	Long: "Parses Selig and Lednicer airfoil coordinate files and renders them as\n" +
		"chord/thickness plots. Decoded files are cached in .foilview/cache.db.",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		setColor(resolveColor(flagColor, flagNoColor))
	},
}

// projectRoot returns the directory holding .foilview/ (cwd by default).
func projectRoot() string {
	if flagRoot != "" {
		return flagRoot
	}
	dir, err := os.Getwd()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	return dir
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flagRoot, "root", "", "project directory holding .foilview/ (default: current directory)")
	pf.StringVar(&flagLogLevel, "log-level", "", "log level: debug, info, warn, error, off (default from config)")
	pf.BoolVar(&flagNoCache, "no-cache", false, "do not read or write the parse cache")
	pf.BoolVar(&flagNoColor, "no-color", false, "disable colored output")
	pf.StringVar(&flagColor, "color", "auto", "color output: auto, always, never")

	rootCmd.AddCommand(parseCmd)
	rootCmd.AddCommand(renderCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(cacheCmd)
	rootCmd.AddCommand(configCmd)
}
