package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

var parseJSON bool

var parseCmd = &cobra.Command{
	Use:   "parse <file>...",
	Short: "Parse coordinate files and print a summary",
	Long: "Parses each file as Selig or Lednicer (auto-detected unless --format is given)\n" +
		"and prints name, point counts and basic geometry. Exit status 2 means a file\n" +
		"could not be parsed.",
	Args: cobra.MinimumNArgs(1),
	RunE: runParse,
}

func init() {
	parseCmd.Flags().String("format", "auto", "file layout: auto, selig, lednicer")
	parseCmd.Flags().Bool("strict", false, "reject Lednicer files whose surfaces do not share a leading edge")
	parseCmd.Flags().BoolVar(&parseJSON, "json", false, "print the parsed airfoil as JSON")
}

func runParse(cmd *cobra.Command, args []string) error {
	s, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	lib, err := s.library(projectRoot())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for i, path := range args {
		a, err := lib.LoadFile(path)
		if err != nil {
			return err
		}
		if parseJSON {
			data, err := json.MarshalIndent(a, "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(out, string(data))
			continue
		}
		if i > 0 {
			fmt.Fprintln(out)
		}
		fmt.Fprint(out, formatSummary(path, a))
	}
	return nil
}
