// foilview parses airfoil coordinate files (Selig and Lednicer layouts) and
// renders them as chord/thickness plots.
package main

import (
	"fmt"
	"os"

	"github.com/corey/foilview/cmd/foilview/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(cmd.ExitCode(err))
	}
}
