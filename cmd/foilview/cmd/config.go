package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show configuration",
	Long: "Shows resolved paths and the effective configuration after merging\n" +
		".foilview/config.yaml, .foilview/.env, FOILVIEW_* variables and flags.",
	Args: cobra.NoArgs,
	RunE: runConfig,
}

func runConfig(cmd *cobra.Command, args []string) error {
	s, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	p := s.paths
	cacheStatus := fmt.Sprintf("%s✗ disabled%s", colorYellow, colorReset)
	if s.store != nil {
		cacheStatus = fmt.Sprintf("%s✓ %s%s", colorGreen, p.CacheDB, colorReset)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s⚡ foilview config%s\n", colorBold, colorReset)
	fmt.Fprintf(out, "  Root:       %s\n", p.Project)
	fmt.Fprintf(out, "  Config:     %s%s\n", p.Config, existsMark(p.Config))
	fmt.Fprintf(out, "  Env file:   %s%s\n", p.EnvFile, existsMark(p.EnvFile))
	fmt.Fprintf(out, "  Cache:      %s\n", cacheStatus)
	if portData, err := os.ReadFile(p.PortFile); err == nil {
		fmt.Fprintf(out, "  Preview:    http://localhost:%s\n", strings.TrimSpace(string(portData)))
	}

	data, err := s.cfg.YAML()
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "\n%s# effective settings%s\n%s", colorGray, colorReset, data)
	return nil
}

func existsMark(path string) string {
	if _, err := os.Stat(path); err != nil {
		return fmt.Sprintf(" %s(absent)%s", colorGray, colorReset)
	}
	return ""
}
