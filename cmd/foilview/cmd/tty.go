package cmd

import (
	"os"

	"golang.org/x/term"
)

func isStdoutTTY() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// resolveColor decides whether output is colored. --no-color and a set
// NO_COLOR variable always win; otherwise mode is "always", "never" or
// "auto" (color only on a terminal).
func resolveColor(mode string, noColor bool) bool {
	if noColor || os.Getenv("NO_COLOR") != "" {
		return false
	}
	switch mode {
	case "always":
		return true
	case "never":
		return false
	}
	return isStdoutTTY()
}
