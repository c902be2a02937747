package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Inspect or clear the parse cache",
}

var cacheListCmd = &cobra.Command{
	Use:   "list",
	Short: "List cached airfoils",
	Args:  cobra.NoArgs,
	RunE:  runCacheList,
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove every cached airfoil",
	Args:  cobra.NoArgs,
	RunE:  runCacheClear,
}

func init() {
	cacheCmd.AddCommand(cacheListCmd)
	cacheCmd.AddCommand(cacheClearCmd)
}

// errNoCache is returned when a cache command runs without a usable cache.
var errNoCache = errors.New("cache unavailable (disabled by --no-cache or config, or locked by another foilview)")

func runCacheList(cmd *cobra.Command, args []string) error {
	s, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer s.Close()
	if s.store == nil {
		return errNoCache
	}

	infos, err := s.store.ListAirfoils()
	if err != nil {
		return err
	}
	fmt.Fprint(cmd.OutOrStdout(), formatCacheList(infos))
	return nil
}

func runCacheClear(cmd *cobra.Command, args []string) error {
	s, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer s.Close()
	if s.store == nil {
		return errNoCache
	}

	n, err := s.store.Clear()
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "⚡ removed %d cached airfoils\n", n)
	return nil
}
